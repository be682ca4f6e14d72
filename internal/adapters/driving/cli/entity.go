package cli

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var (
	entityCreateID string
	entityGetJSON  bool
)

var entityCmd = &cobra.Command{
	Use:   "entity",
	Short: "Manage entities",
}

var entityCreateCmd = &cobra.Command{
	Use:   "create [schema]",
	Short: "Create an entity of a schema",
	Long: `Creates an entity of the given schema. The schema must be registered and
not abstract. Without --id a generated identifier is assigned.`,
	Args: cobra.ExactArgs(1),
	RunE: runEntityCreate,
}

var entitySetCmd = &cobra.Command{
	Use:   "set [schema] [id] [property-schema] [property] [value]",
	Short: "Set a property value on an entity",
	Long: `Sets a property on an entity. The property must be declared on the
entity's schema or an ancestor, and property-schema names the declaring
schema. Setting an already-set property overwrites the value.`,
	Args: cobra.ExactArgs(5),
	RunE: runEntitySet,
}

var entityGetCmd = &cobra.Command{
	Use:   "get [schema] [id]",
	Short: "Show an entity and its properties",
	Args:  cobra.ExactArgs(2),
	RunE:  runEntityGet,
}

var entityDeleteCmd = &cobra.Command{
	Use:   "delete [schema] [id]",
	Short: "Delete an entity and all its properties",
	Args:  cobra.ExactArgs(2),
	RunE:  runEntityDelete,
}

func init() {
	entityCreateCmd.Flags().StringVar(&entityCreateID, "id", "", "entity identifier (default: generated)")
	entityGetCmd.Flags().BoolVar(&entityGetJSON, "json", false, "output as JSON")
	entityCmd.AddCommand(entityCreateCmd)
	entityCmd.AddCommand(entitySetCmd)
	entityCmd.AddCommand(entityGetCmd)
	entityCmd.AddCommand(entityDeleteCmd)
	rootCmd.AddCommand(entityCmd)
}

func runEntityCreate(cmd *cobra.Command, args []string) error {
	id := entityCreateID
	if id == "" {
		id = uuid.NewString()
	}

	entity, err := entityService.Create(cmd.Context(), args[0], id)
	if err != nil {
		return err
	}
	cmd.Printf("Created %s/%s\n", entity.SchemaName, entity.ID)
	return nil
}

func runEntitySet(cmd *cobra.Command, args []string) error {
	return entityService.SetProperty(cmd.Context(), args[0], args[1], args[2], args[3], args[4])
}

func runEntityGet(cmd *cobra.Command, args []string) error {
	entity, err := entityService.Get(cmd.Context(), args[0], args[1])
	if err != nil {
		return err
	}

	if entityGetJSON {
		data, err := json.MarshalIndent(entity, "", "  ")
		if err != nil {
			return fmt.Errorf("marshalling entity: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	cmd.Printf("%s/%s\n", entity.SchemaName, entity.ID)
	schemas := make([]string, 0, len(entity.Properties))
	for schema := range entity.Properties {
		schemas = append(schemas, schema)
	}
	sort.Strings(schemas)
	for _, schema := range schemas {
		names := make([]string, 0, len(entity.Properties[schema]))
		for name := range entity.Properties[schema] {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			cmd.Printf("  %s.%s = %s\n", schema, name, entity.Properties[schema][name])
		}
	}
	return nil
}

func runEntityDelete(cmd *cobra.Command, args []string) error {
	return entityService.Delete(cmd.Context(), args[0], args[1])
}
