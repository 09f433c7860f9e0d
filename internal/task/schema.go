package task

import (
	"bytes"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"
)

//go:embed schema/*.json
var schemaFS embed.FS

var (
	indexSchema = mustCompileSchema("index.schema.json")
	taskSchema  = mustCompileSchema("task.schema.json")
)

// indexDoc is the on-disk shape of the index file.
type indexDoc struct {
	Meta  metaDoc    `yaml:"meta"`
	Tasks []entryDoc `yaml:"tasks"`
}

type metaDoc struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description,omitempty"`
}

// entryDoc is one task's status and history inside the index.
type entryDoc struct {
	ID       int    `yaml:"id"`
	Status   Status `yaml:"status"`
	Archived bool   `yaml:"archived,omitempty"`
	Changes  Ledger `yaml:"changes"`
}

// detailDoc is the on-disk shape of a task file.
type detailDoc struct {
	Title       string   `yaml:"title"`
	Description string   `yaml:"description,omitempty"`
	Labels      []string `yaml:"labels,omitempty"`
}

// ValidationError represents a schema violation with its document path.
type ValidationError struct {
	Path string // dotted path to the error location
	Err  error  // Underlying error
}

func (e *ValidationError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s", e.Path, e.Err)
	}
	return e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// SchemaJSON returns the JSON Schema source for "index" or "task" documents.
func SchemaJSON(name string) ([]byte, error) {
	return schemaFS.ReadFile("schema/" + name + ".schema.json")
}

func mustCompileSchema(name string) *jsonschema.Schema {
	data, err := schemaFS.ReadFile("schema/" + name)
	if err != nil {
		panic(fmt.Sprintf("read embedded schema %s: %v", name, err))
	}
	compiler := jsonschema.NewCompiler()
	compiler.AssertFormat = true
	if err := compiler.AddResource(name, bytes.NewReader(data)); err != nil {
		panic(fmt.Sprintf("add embedded schema %s: %v", name, err))
	}
	return compiler.MustCompile(name)
}

// decodeDocument parses YAML data, validates it against schema and
// decodes it strictly into out. Every failure is a CorruptStateError.
func decodeDocument(path string, data []byte, schema *jsonschema.Schema, out any) error {
	node, err := parseSingleDocument(data)
	if err != nil {
		return &CorruptStateError{Path: path, Err: err}
	}
	if err := checkScalars(node); err != nil {
		return &CorruptStateError{Path: path, Err: err}
	}
	var raw any
	if err := node.Decode(&raw); err != nil {
		return corrupt(path, "parse: %w", err)
	}

	// Round-trip through JSON so the validator sees plain JSON values.
	jsonData, err := json.Marshal(raw)
	if err != nil {
		return corrupt(path, "unsupported document shape: %w", err)
	}
	var doc any
	if err := json.Unmarshal(jsonData, &doc); err != nil {
		return corrupt(path, "unsupported document shape: %w", err)
	}
	if err := schema.Validate(doc); err != nil {
		return &CorruptStateError{Path: path, Err: schemaErrors(err)}
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(out); err != nil {
		return corrupt(path, "decode: %w", err)
	}
	return nil
}

// parseSingleDocument parses data and requires exactly one YAML document.
func parseSingleDocument(data []byte) (*yaml.Node, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	var node yaml.Node
	if err := dec.Decode(&node); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("empty document")
		}
		return nil, fmt.Errorf("parse: %w", err)
	}
	var extra yaml.Node
	switch err := dec.Decode(&extra); {
	case errors.Is(err, io.EOF):
		return &node, nil
	case err != nil:
		return nil, fmt.Errorf("parse: %w", err)
	default:
		return nil, fmt.Errorf("line %d: unexpected extra YAML document", extra.Line)
	}
}

// checkScalars rejects values that YAML accepts but the file format does
// not: non-integer numbers and timestamps that are not RFC 3339.
func checkScalars(n *yaml.Node) error {
	if n.Kind == yaml.ScalarNode {
		switch n.ShortTag() {
		case "!!float":
			return fmt.Errorf("line %d: %q is not an integer", n.Line, n.Value)
		case "!!timestamp":
			if _, err := time.Parse(time.RFC3339Nano, n.Value); err != nil {
				return fmt.Errorf("line %d: %q is not an RFC 3339 timestamp", n.Line, n.Value)
			}
		}
		return nil
	}
	for _, child := range n.Content {
		if err := checkScalars(child); err != nil {
			return err
		}
	}
	return nil
}

// encodeDocument renders v as YAML with 2-space indentation.
func encodeDocument(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// schemaErrors flattens a jsonschema error tree into ValidationErrors.
func schemaErrors(err error) error {
	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return err
	}
	var errs []error
	collectSchemaErrors(&errs, ve)
	if len(errs) == 0 {
		return err
	}
	return errors.Join(errs...)
}

func collectSchemaErrors(errs *[]error, err *jsonschema.ValidationError) {
	if len(err.Causes) == 0 {
		*errs = append(*errs, &ValidationError{
			Path: jsonPointerToPath(err.InstanceLocation),
			Err:  errors.New(err.Message),
		})
		return
	}
	for _, cause := range err.Causes {
		collectSchemaErrors(errs, cause)
	}
}

func jsonPointerToPath(ptr string) string {
	ptr = strings.TrimPrefix(ptr, "#")
	ptr = strings.TrimPrefix(ptr, "/")
	if ptr == "" {
		return ""
	}

	path := ""
	for _, part := range strings.Split(ptr, "/") {
		part = strings.ReplaceAll(part, "~1", "/")
		part = strings.ReplaceAll(part, "~0", "~")
		if part == "" {
			continue
		}
		if idx, err := strconv.Atoi(part); err == nil {
			path += fmt.Sprintf("[%d]", idx)
			continue
		}
		if path == "" {
			path = part
		} else {
			path += "." + part
		}
	}
	return path
}
