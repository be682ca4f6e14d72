package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/tudgoi/pika/internal/adapters/driven/config/file"
	"github.com/tudgoi/pika/internal/core/domain"
	"github.com/tudgoi/pika/internal/logger"
)

var (
	schemaShowJSON  bool
	schemaLoadWatch bool
)

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Manage schema definitions",
}

var schemaLoadCmd = &cobra.Command{
	Use:   "load [dir]",
	Short: "Register schema definitions from a TOML directory",
	Long: `Parses every .toml file in the directory as a schema definition (the file
stem is the schema name) and registers the schemas, parents before children.
Already-registered schemas are skipped. With --watch the directory is
re-loaded whenever a definition file changes.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSchemaLoad,
}

var schemaListCmd = &cobra.Command{
	Use:   "list",
	Short: "List registered schemas",
	Args:  cobra.NoArgs,
	RunE:  runSchemaList,
}

var schemaShowCmd = &cobra.Command{
	Use:   "show [name]",
	Short: "Show a schema's resolved property set",
	Args:  cobra.ExactArgs(1),
	RunE:  runSchemaShow,
}

func init() {
	schemaLoadCmd.Flags().BoolVar(&schemaLoadWatch, "watch", false, "keep watching the directory for changes")
	schemaShowCmd.Flags().BoolVar(&schemaShowJSON, "json", false, "output as JSON")
	schemaCmd.AddCommand(schemaLoadCmd)
	schemaCmd.AddCommand(schemaListCmd)
	schemaCmd.AddCommand(schemaShowCmd)
	rootCmd.AddCommand(schemaCmd)
}

func runSchemaLoad(cmd *cobra.Command, args []string) error {
	dir := ""
	if len(args) > 0 {
		dir = args[0]
	} else {
		dir = configStore.GetString(file.KeySchemaDir)
	}
	if dir == "" {
		return fmt.Errorf("no schema directory given and %s not configured", file.KeySchemaDir)
	}

	logger.Section("schema load")
	ctx := cmd.Context()
	schemas, err := file.LoadSchemaDir(dir)
	if err != nil {
		return err
	}

	defined, err := schemaLoader.Register(ctx, schemas)
	if err != nil {
		return err
	}
	cmd.Printf("Registered %d schemas (%d already present).\n", defined, len(schemas)-defined)

	if !schemaLoadWatch {
		return nil
	}

	cmd.Printf("Watching %s for changes. Ctrl-C to stop.\n", dir)
	err = file.WatchSchemaDir(ctx, dir, func(schemas []domain.Schema) {
		defined, err := schemaLoader.Register(ctx, schemas)
		if err != nil {
			logger.Warn("registering reloaded schemas: %v", err)
			return
		}
		if defined > 0 {
			cmd.Printf("Registered %d new schemas.\n", defined)
		}
	})
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func runSchemaList(cmd *cobra.Command, _ []string) error {
	schemas, err := schemaService.List(cmd.Context())
	if err != nil {
		return err
	}
	if len(schemas) == 0 {
		cmd.Println("No schemas registered.")
		return nil
	}
	for _, schema := range schemas {
		line := schema.Name
		if schema.Abstract {
			line += " (abstract)"
		}
		if schema.Extends != "" {
			line += " extends " + schema.Extends
		}
		cmd.Printf("  %s: %d properties\n", line, len(schema.Properties))
	}
	return nil
}

func runSchemaShow(cmd *cobra.Command, args []string) error {
	resolved, err := schemaService.Resolve(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	props := make([]domain.ResolvedProperty, 0, len(resolved.Properties))
	for _, prop := range resolved.Properties {
		props = append(props, prop)
	}
	sort.Slice(props, func(i, j int) bool { return props[i].Name < props[j].Name })

	if schemaShowJSON {
		out := struct {
			Name       string                    `json:"name"`
			Abstract   bool                      `json:"abstract"`
			Properties []domain.ResolvedProperty `json:"properties"`
		}{resolved.Name, resolved.Abstract, props}
		data, err := json.MarshalIndent(out, "", "  ")
		if err != nil {
			return fmt.Errorf("marshalling schema: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	cmd.Printf("%s (abstract=%v)\n", resolved.Name, resolved.Abstract)
	for _, prop := range props {
		cmd.Printf("  %s: %s", prop.Name, prop.Type)
		if prop.DeclaredBy != resolved.Name {
			cmd.Printf(" (from %s)", prop.DeclaredBy)
		}
		cmd.Println()
	}
	return nil
}
