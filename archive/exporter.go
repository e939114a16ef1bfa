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


package archive

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/chiilog/nursery-visits/storage"
)

// FormatVersion is the archive envelope version written by this build.
const FormatVersion = 1

// Envelope is the on-disk archive format. Nurseries holds the nursery
// document as the store serializes it; Checksum is the BLAKE2b digest of
// that document's compact encoding, independent of how the envelope
// itself is indented.
type Envelope struct {
	Version    int             `json:"version"`
	ExportedAt time.Time       `json:"exportedAt"`
	Checksum   string          `json:"checksum"`
	Nurseries  json.RawMessage `json:"nurseries"`
}

// Exporter writes archive files from a nursery repository.
type Exporter struct {
	repository storage.NurseryRepository
	logger     *slog.Logger
}

// ExporterOption configures an Exporter.
type ExporterOption func(*Exporter)

// WithExportLogger sets a custom logger. Default is slog.Default().
func WithExportLogger(logger *slog.Logger) ExporterOption {
	return func(e *Exporter) {
		if logger == nil {
			logger = slog.Default()
		}
		e.logger = logger
	}
}

// NewExporter creates a new Exporter.
func NewExporter(repository storage.NurseryRepository, opts ...ExporterOption) (*Exporter, error) {
	if repository == nil {
		return nil, ErrRepositoryRequired
	}

	e := &Exporter{
		repository: repository,
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Export writes the whole nursery document to w as an archive envelope.
func (e *Exporter) Export(ctx context.Context, w io.Writer) error {
	nurseries, err := e.repository.GetAllNurseries(ctx)
	if err != nil {
		return err
	}

	doc := storage.NewNurseryDocument()
	for _, nursery := range nurseries {
		doc.Set(nursery.ID, nursery)
	}
	payload, err := storage.EncodeNurseryDocument(doc)
	if err != nil {
		return err
	}

	envelope := Envelope{
		Version:    FormatVersion,
		ExportedAt: time.Now().UTC(),
		Checksum:   payloadChecksum(payload),
		Nurseries:  payload,
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(envelope); err != nil {
		return err
	}

	e.logger.Info("exported archive", "nurseries", doc.Len())
	return nil
}

// ExportFile writes an archive to the given path.
func (e *Exporter) ExportFile(ctx context.Context, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := e.Export(ctx, f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
