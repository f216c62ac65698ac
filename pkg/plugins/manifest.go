package plugins

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

//go:embed schemas/*.schema.json
var schemaFS embed.FS

var (
	commandSchema    = mustCompileSchema("schemas/command.schema.json")
	middlewareSchema = mustCompileSchema("schemas/middleware.schema.json")
)

// CommandManifest is the decoded content of command.json
type CommandManifest struct {
	Settings      map[string]any `json:"settings"`
	Localizations map[string]any `json:"localizations"`
}

// LoadCommandManifest reads, schema-validates and decodes a command manifest
func LoadCommandManifest(fsys fs.FS, path string) (*CommandManifest, error) {
	data, err := readValidated(fsys, path, commandSchema)
	if err != nil {
		return nil, err
	}

	var manifest CommandManifest
	if err := json.Unmarshal(data, &manifest); err != nil {
		return nil, &ManifestError{Path: path, Err: fmt.Errorf("failed to decode manifest: %w", err)}
	}

	return &manifest, nil
}

// LoadMiddlewareManifest reads and validates a middleware manifest. The whole
// object is returned as settings.
func LoadMiddlewareManifest(fsys fs.FS, path string) (map[string]any, error) {
	data, err := readValidated(fsys, path, middlewareSchema)
	if err != nil {
		return nil, err
	}

	var settings map[string]any
	if err := json.Unmarshal(data, &settings); err != nil {
		return nil, &ManifestError{Path: path, Err: fmt.Errorf("failed to decode manifest: %w", err)}
	}

	return settings, nil
}

// readValidated returns the raw manifest bytes once they pass schema validation
func readValidated(fsys fs.FS, path string, schema *jsonschema.Schema) ([]byte, error) {
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, &ManifestError{Path: path, Err: fmt.Errorf("failed to read manifest: %w", err)}
	}

	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return nil, &ManifestError{Path: path, Err: fmt.Errorf("failed to parse manifest: %w", err)}
	}

	if err := schema.Validate(doc); err != nil {
		return nil, &ManifestError{Path: path, Err: err}
	}

	return data, nil
}

func mustCompileSchema(name string) *jsonschema.Schema {
	raw, err := schemaFS.ReadFile(name)
	if err != nil {
		panic(fmt.Sprintf("read schema %s: %v", name, err))
	}

	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		panic(fmt.Sprintf("parse schema %s: %v", name, err))
	}

	c := jsonschema.NewCompiler()
	if err := c.AddResource(name, doc); err != nil {
		panic(fmt.Sprintf("add schema %s: %v", name, err))
	}

	sch, err := c.Compile(name)
	if err != nil {
		panic(fmt.Sprintf("compile schema %s: %v", name, err))
	}

	return sch
}
