package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/offerlens/offerql/internal/queryir"
	"github.com/offerlens/offerql/internal/schema"
)

// LoadDocument reads a query document from path as JSON bytes. YAML
// documents are converted to JSON first, so the rest of the pipeline
// (schema validation, decoding) sees one format.
func LoadDocument(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read document: %w", err)
	}

	switch filepath.Ext(path) {
	case ".yaml", ".yml":
		var doc any
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("parse yaml: %w", err)
		}
		converted, err := json.Marshal(doc)
		if err != nil {
			return nil, fmt.Errorf("convert yaml to json: %w", err)
		}
		return converted, nil
	default:
		return data, nil
	}
}

// LoadQuery loads, schema-validates, decodes, and IR-validates a query
// document. This is the full front door every command shares.
func LoadQuery(path string) (*queryir.Query, error) {
	data, err := LoadDocument(path)
	if err != nil {
		return nil, err
	}
	if err := schema.ValidateDocument(data); err != nil {
		return nil, err
	}
	return queryir.Decode(data)
}
