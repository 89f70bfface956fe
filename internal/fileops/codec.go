package fileops

import (
	"encoding/json"

	"github.com/pelletier/go-toml/v2"
)

// Codec encodes and decodes a configuration document. The safe-edit engine
// is codec-agnostic; JSON covers most agents, TOML covers Codex.
type Codec interface {
	// Marshal encodes a document, including any trailing newline the format
	// conventionally carries.
	Marshal(doc map[string]any) ([]byte, error)

	// Unmarshal decodes data into doc.
	Unmarshal(data []byte, doc *map[string]any) error

	// Name identifies the codec in error messages ("json", "toml").
	Name() string
}

// JSON is the codec for 2-space pretty-printed JSON documents.
var JSON Codec = jsonCodec{}

// TOML is the codec for TOML documents.
var TOML Codec = tomlCodec{}

type jsonCodec struct{}

func (jsonCodec) Marshal(doc map[string]any) ([]byte, error) {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, err
	}
	// Trailing newline for POSIX compliance
	return append(data, '\n'), nil
}

func (jsonCodec) Unmarshal(data []byte, doc *map[string]any) error {
	return json.Unmarshal(data, doc)
}

func (jsonCodec) Name() string { return "json" }

type tomlCodec struct{}

func (tomlCodec) Marshal(doc map[string]any) ([]byte, error) {
	return toml.Marshal(doc)
}

func (tomlCodec) Unmarshal(data []byte, doc *map[string]any) error {
	return toml.Unmarshal(data, doc)
}

func (tomlCodec) Name() string { return "toml" }
