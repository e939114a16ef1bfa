// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package storage

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/chiilog/nursery-visits/core"
)

// NurseryDocument is the whole persisted nursery mapping: id → Nursery.
// It keeps the insertion order of its keys so that listing operations
// return nurseries in the order they were first stored, matching the key
// order of the JSON object on disk.
type NurseryDocument struct {
	order   []string
	entries map[string]*core.Nursery
}

// NewNurseryDocument returns an empty document.
func NewNurseryDocument() *NurseryDocument {
	return &NurseryDocument{
		entries: make(map[string]*core.Nursery),
	}
}

// Get returns the nursery under id, or nil if absent.
func (d *NurseryDocument) Get(id string) *core.Nursery {
	return d.entries[id]
}

// Set stores a nursery under id. A new id is appended to the key order;
// an existing id keeps its position.
func (d *NurseryDocument) Set(id string, nursery *core.Nursery) {
	if _, ok := d.entries[id]; !ok {
		d.order = append(d.order, id)
	}
	d.entries[id] = nursery
}

// Delete removes the nursery under id. Returns false if the id was absent.
func (d *NurseryDocument) Delete(id string) bool {
	if _, ok := d.entries[id]; !ok {
		return false
	}
	delete(d.entries, id)
	for i, key := range d.order {
		if key == id {
			d.order = append(d.order[:i], d.order[i+1:]...)
			break
		}
	}
	return true
}

// All returns every nursery in insertion order. Never nil.
func (d *NurseryDocument) All() []*core.Nursery {
	nurseries := make([]*core.Nursery, 0, len(d.order))
	for _, id := range d.order {
		nurseries = append(nurseries, d.entries[id])
	}
	return nurseries
}

// Len returns the number of stored nurseries.
func (d *NurseryDocument) Len() int {
	return len(d.entries)
}

// EncodeNurseryDocument serializes the document as a JSON object whose key
// order is the document's insertion order. Date fields are emitted as
// RFC 3339 strings by the entity codec.
func EncodeNurseryDocument(doc *NurseryDocument) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, id := range doc.order {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(id)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrWriteFailed, err)
		}
		buf.Write(key)
		buf.WriteByte(':')
		value, err := json.Marshal(doc.entries[id])
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrWriteFailed, err)
		}
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// DecodeNurseryDocument parses a stored nursery document, preserving key
// order. Empty or absent data decodes to an empty document. Anything that
// is not a JSON object of nurseries fails with ErrReadFailed; there is no
// partial recovery of salvageable entries.
func DecodeNurseryDocument(data []byte) (*NurseryDocument, error) {
	doc := NewNurseryDocument()
	if len(data) == 0 {
		return doc, nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrReadFailed, err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("%w: stored document is not a JSON object", ErrReadFailed)
	}

	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrReadFailed, err)
		}
		id, ok := keyTok.(string)
		if !ok {
			return nil, fmt.Errorf("%w: unexpected document key %v", ErrReadFailed, keyTok)
		}

		var nursery core.Nursery
		if err := dec.Decode(&nursery); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrReadFailed, err)
		}
		doc.Set(id, &nursery)
	}

	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrReadFailed, err)
	}

	return doc, nil
}

// EncodePrivacySettings serializes the consent record.
func EncodePrivacySettings(settings *core.PrivacySettings) ([]byte, error) {
	data, err := json.Marshal(settings)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrWriteFailed, err)
	}
	return data, nil
}

// DecodePrivacySettings parses a stored consent record. Callers decide the
// fallback policy; a decode failure here does not imply defaults.
func DecodePrivacySettings(data []byte) (*core.PrivacySettings, error) {
	var settings core.PrivacySettings
	if err := json.Unmarshal(data, &settings); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrReadFailed, err)
	}
	return &settings, nil
}
