package store

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// EnvelopeVersion is the document format written by this build. Values
// written before envelopes existed decode as version 0.
const EnvelopeVersion = 1

type envelope struct {
	Version int             `json:"version"`
	Data    json.RawMessage `json:"data"`
}

func encode(v any) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("marshal value: %w", err)
	}
	return json.Marshal(envelope{Version: EnvelopeVersion, Data: data})
}

// decode unmarshals raw into v and returns the document version.
func decode(raw []byte, v any) (int, error) {
	data, version := raw, 0
	if trimmed := bytes.TrimSpace(raw); len(trimmed) > 0 && trimmed[0] == '{' {
		var probe struct {
			Version *int            `json:"version"`
			Data    json.RawMessage `json:"data"`
		}
		if err := json.Unmarshal(trimmed, &probe); err == nil && probe.Version != nil && probe.Data != nil {
			data, version = probe.Data, *probe.Version
		}
	}
	if version > EnvelopeVersion {
		return version, fmt.Errorf("unsupported document version %d", version)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return version, fmt.Errorf("unmarshal value: %w", err)
	}
	return version, nil
}
