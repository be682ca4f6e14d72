package file

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/pelletier/go-toml/v2"

	"github.com/tudgoi/pika/internal/core/domain"
	"github.com/tudgoi/pika/internal/logger"
)

// schemaFile is the TOML shape of a schema definition. The schema name is
// the file stem, not a field:
//
//	abstract = false
//	extends = "agent"
//
//	[properties.name]
//	type = "string"
type schemaFile struct {
	Abstract   bool                          `toml:"abstract"`
	Extends    string                        `toml:"extends"`
	Properties map[string]schemaFileProperty `toml:"properties"`
}

type schemaFileProperty struct {
	Type string `toml:"type"`
}

// LoadSchemaDir parses every .toml file in dir into a schema definition.
// Results are ordered by name; registration order is the loader's concern.
func LoadSchemaDir(dir string) ([]domain.Schema, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading schema directory: %w", err)
	}

	var schemas []domain.Schema //nolint:prealloc // non-toml entries are skipped
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".toml") {
			continue
		}

		raw, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			return nil, fmt.Errorf("reading schema file %s: %w", name, err)
		}

		var def schemaFile
		if err := toml.Unmarshal(raw, &def); err != nil {
			return nil, fmt.Errorf("parsing schema file %s: %w", name, err)
		}

		schemas = append(schemas, domain.Schema{
			Name:       strings.TrimSuffix(name, ".toml"),
			Abstract:   def.Abstract,
			Extends:    def.Extends,
			Properties: sortedProperties(def.Properties),
		})
	}

	sort.Slice(schemas, func(i, j int) bool {
		return schemas[i].Name < schemas[j].Name
	})
	return schemas, nil
}

// sortedProperties flattens the TOML property table deterministically.
func sortedProperties(props map[string]schemaFileProperty) []domain.SchemaProperty {
	out := make([]domain.SchemaProperty, 0, len(props))
	for name, prop := range props {
		out = append(out, domain.SchemaProperty{Name: name, Type: prop.Type})
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Name < out[j].Name
	})
	return out
}

// WatchSchemaDir reloads the schema directory whenever a .toml file in it
// changes and hands the parsed definitions to apply. It blocks until ctx is
// cancelled. Parse errors are logged and the previous state kept.
func WatchSchemaDir(ctx context.Context, dir string, apply func([]domain.Schema)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("watching %s: %w", dir, err)
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !strings.HasSuffix(event.Name, ".toml") {
				continue
			}
			if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) && !event.Has(fsnotify.Rename) {
				continue
			}
			logger.Debug("schema dir change: %s", event)
			schemas, err := LoadSchemaDir(dir)
			if err != nil {
				logger.Warn("reloading schema dir: %v", err)
				continue
			}
			apply(schemas)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("schema dir watcher: %v", err)
		}
	}
}
