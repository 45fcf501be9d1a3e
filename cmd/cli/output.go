package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/temirov/repometa/internal/repometa"
)

const (
	jsonIndentConstant                      = "  "
	yamlIndentSpacesConstant                = 2
	unsupportedOutputFormatTemplateConstant = "unsupported output format: %s"
	metadataEncodingErrorTemplateConstant   = "unable to encode metadata as %s: %w"
)

// OutputFormat enumerates the supported metadata serializations.
type OutputFormat string

// Supported output formats.
const (
	OutputFormatJSON OutputFormat = "json"
	OutputFormatYAML OutputFormat = "yaml"
)

// ParseOutputFormat normalizes a configured output format name.
func ParseOutputFormat(value string) (OutputFormat, error) {
	switch OutputFormat(strings.ToLower(strings.TrimSpace(value))) {
	case OutputFormatJSON:
		return OutputFormatJSON, nil
	case OutputFormatYAML:
		return OutputFormatYAML, nil
	default:
		return "", fmt.Errorf(unsupportedOutputFormatTemplateConstant, value)
	}
}

// RenderMetadata writes metadata to writer in the requested format.
func RenderMetadata(writer io.Writer, format OutputFormat, metadata repometa.RepositoryMetadata) error {
	switch format {
	case OutputFormatJSON:
		encoder := json.NewEncoder(writer)
		encoder.SetIndent("", jsonIndentConstant)
		if encodeError := encoder.Encode(metadata); encodeError != nil {
			return fmt.Errorf(metadataEncodingErrorTemplateConstant, format, encodeError)
		}
		return nil
	case OutputFormatYAML:
		encoder := yaml.NewEncoder(writer)
		encoder.SetIndent(yamlIndentSpacesConstant)
		if encodeError := encoder.Encode(metadata); encodeError != nil {
			return fmt.Errorf(metadataEncodingErrorTemplateConstant, format, encodeError)
		}
		if closeError := encoder.Close(); closeError != nil {
			return fmt.Errorf(metadataEncodingErrorTemplateConstant, format, closeError)
		}
		return nil
	default:
		return fmt.Errorf(unsupportedOutputFormatTemplateConstant, format)
	}
}
