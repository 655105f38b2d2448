package store

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/nibzard/reminders/internal/todo"
)

// SchemaVersion is the task file format version written by Save.
const SchemaVersion = 1

// Document is the on-disk task file structure.
type Document struct {
	SchemaVersion int           `json:"schema_version" toml:"schema_version" yaml:"schema_version"`
	Tasks         []todo.Record `json:"tasks" toml:"tasks" yaml:"tasks"`
}

// Codec encodes and decodes task files in one format.
type Codec interface {
	// Name returns the format name used in config ("json", "toml", "yaml").
	Name() string
	Marshal(v any) ([]byte, error)
	Unmarshal(data []byte, v any) error
}

// Format names.
const (
	FormatJSON = "json"
	FormatTOML = "toml"
	FormatYAML = "yaml"
)

// JSONCodec writes 2-space indented JSON with a trailing newline.
type JSONCodec struct{}

func (JSONCodec) Name() string { return FormatJSON }

func (JSONCodec) Marshal(v any) ([]byte, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

func (JSONCodec) Unmarshal(data []byte, v any) error {
	return json.Unmarshal(data, v)
}

// TOMLCodec stores tasks as a [[tasks]] array of tables.
type TOMLCodec struct{}

func (TOMLCodec) Name() string { return FormatTOML }

func (TOMLCodec) Marshal(v any) ([]byte, error) {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (TOMLCodec) Unmarshal(data []byte, v any) error {
	_, err := toml.Decode(string(data), v)
	return err
}

// YAMLCodec stores tasks as a YAML sequence.
type YAMLCodec struct{}

func (YAMLCodec) Name() string { return FormatYAML }

func (YAMLCodec) Marshal(v any) ([]byte, error) {
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

func (YAMLCodec) Unmarshal(data []byte, v any) error {
	return yaml.Unmarshal(data, v)
}

// CodecByName returns the codec for a format name.
func CodecByName(name string) (Codec, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case FormatJSON:
		return JSONCodec{}, nil
	case FormatTOML:
		return TOMLCodec{}, nil
	case FormatYAML, "yml":
		return YAMLCodec{}, nil
	default:
		return nil, fmt.Errorf("unknown task file format %q (expected json, toml or yaml)", name)
	}
}

// CodecFor picks a codec from the file extension.
func CodecFor(path string) (Codec, error) {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	if ext == "" {
		return nil, fmt.Errorf("cannot infer task file format from %q: no extension", path)
	}
	return CodecByName(ext)
}

// decode unmarshals data with c, validates it against the task file schema
// and converts it to a Document.
func decode(c Codec, data []byte) (Document, error) {
	raw := map[string]any{}
	if err := c.Unmarshal(data, &raw); err != nil {
		return Document{}, fmt.Errorf("parse %s task file: %w", c.Name(), err)
	}

	// Round-trip through JSON so every codec yields the value shapes the
	// schema validator expects (float64 numbers, []any arrays).
	normalized, err := json.Marshal(raw)
	if err != nil {
		return Document{}, fmt.Errorf("normalize %s task file: %w", c.Name(), err)
	}
	var instance any
	if err := json.Unmarshal(normalized, &instance); err != nil {
		return Document{}, fmt.Errorf("normalize %s task file: %w", c.Name(), err)
	}
	if err := Validate(instance); err != nil {
		return Document{}, err
	}

	var doc Document
	if err := json.Unmarshal(normalized, &doc); err != nil {
		return Document{}, fmt.Errorf("decode task file: %w", err)
	}
	return doc, nil
}

// encode builds the document for records and marshals it with c.
func encode(c Codec, records []todo.Record) ([]byte, error) {
	if records == nil {
		records = []todo.Record{}
	}
	data, err := c.Marshal(Document{SchemaVersion: SchemaVersion, Tasks: records})
	if err != nil {
		return nil, fmt.Errorf("marshal %s task file: %w", c.Name(), err)
	}
	return data, nil
}
