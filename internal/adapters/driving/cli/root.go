// Package cli implements the cobra command tree for pika.
//
// Commands talk to core services through the driving port interfaces;
// wiring of the SQLite store and services happens once in the root
// command's PersistentPreRunE.
package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/tudgoi/pika/internal/adapters/driven/config/file"
	"github.com/tudgoi/pika/internal/adapters/driven/storage/sqlite"
	"github.com/tudgoi/pika/internal/core/ports/driving"
	"github.com/tudgoi/pika/internal/core/services"
	"github.com/tudgoi/pika/internal/logger"
)

var (
	version = "dev"

	flagDataDir string
	flagVerbose bool
)

// Services wired in initServices and shared by the commands.
var (
	store           *sqlite.Store
	configStore     *file.ConfigStore
	schemaService   driving.SchemaService
	entityService   driving.EntityService
	documentService driving.DocumentService
	sourceService   driving.SourceService
	schemaLoader    *services.SchemaLoader
)

var rootCmd = &cobra.Command{
	Use:   "pika",
	Short: "Schema-driven entity store with searchable crawled documents",
	Long: `Pika stores schema-validated entities and crawled documents.

Schemas declare typed properties and may extend one parent schema; entities
are validated against the resolved property set. Documents are deduplicated
by content hash and stay full-text searchable through an index maintained in
the same transaction as every document write.`,
	SilenceUsage:      true,
	PersistentPreRunE: initServices,
	PersistentPostRunE: func(_ *cobra.Command, _ []string) error {
		if store != nil {
			return store.Close()
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagDataDir, "data-dir", "", "database directory (default ~/.pika/data)")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "enable verbose logging")
}

// initServices opens the store and wires the core services.
func initServices(_ *cobra.Command, _ []string) error {
	logger.SetVerbose(flagVerbose)

	var err error
	configStore, err = file.NewConfigStore("")
	if err != nil {
		return fmt.Errorf("opening config: %w", err)
	}

	dataDir := flagDataDir
	if dataDir == "" {
		dataDir = configStore.GetString(file.KeyDataDir)
	}

	store, err = sqlite.NewStore(dataDir)
	if err != nil {
		return fmt.Errorf("opening store: %w", err)
	}
	logger.Debug("store open at %s", store.Path())

	crawlInterval := time.Duration(configStore.GetInt(file.KeyCrawlIntervalHours)) * time.Hour

	schemaService = services.NewSchemaService(store.SchemaStore())
	entityService = services.NewEntityService(store.EntityStore(), schemaService)
	documentService = services.NewDocumentService(store.DocumentStore(), store.SourceStore())
	sourceService = services.NewSourceService(store.SourceStore(), crawlInterval)
	schemaLoader = services.NewSchemaLoader(schemaService)
	return nil
}

// ExecuteContext runs the root command under the given context, so a
// long-running command like schema load --watch stops on interrupt.
func ExecuteContext(ctx context.Context, v string) error {
	if v != "" {
		version = v
	}
	return rootCmd.ExecuteContext(ctx)
}
