// Package cli constructs the repometa command-line interface. It wires the
// Cobra root command, the Viper configuration loader, zap logging, and the
// metadata extractor, and renders the extracted record as JSON or YAML.
package cli
