// Package file provides file-based configuration and schema definition
// loading.
//
// ConfigStore persists tool settings as TOML in the pika config directory.
// LoadSchemaDir parses a directory of TOML schema definition files into
// domain schemas; WatchSchemaDir re-parses on filesystem changes.
package file
