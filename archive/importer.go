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
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime"
	"sync"

	"github.com/panjf2000/ants/v2"

	"github.com/chiilog/nursery-visits/core"
	"github.com/chiilog/nursery-visits/storage"
)

// Importer restores archive files into a nursery repository.
// Parsing and verification of multiple files runs concurrently on a
// worker pool; the resulting upserts are applied sequentially.
type Importer struct {
	repository storage.NurseryRepository
	pool       *ants.Pool
	logger     *slog.Logger
}

// Option configures an Importer.
type Option func(*Importer) error

// WithPoolSize sets the worker pool size for concurrent file parsing.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(imp *Importer) error {
		if size < 1 {
			size = 1
		}

		if imp.pool != nil {
			imp.pool.Release()
		}

		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		imp.pool = pool
		return nil
	}
}

// WithLogger sets a custom logger. Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(imp *Importer) error {
		if logger == nil {
			logger = slog.Default()
		}
		imp.logger = logger
		return nil
	}
}

// NewImporter creates a new Importer.
func NewImporter(repository storage.NurseryRepository, opts ...Option) (*Importer, error) {
	if repository == nil {
		return nil, ErrRepositoryRequired
	}

	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}
	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	imp := &Importer{
		repository: repository,
		pool:       pool,
		logger:     slog.Default(),
	}

	for _, opt := range opts {
		if optErr := opt(imp); optErr != nil {
			imp.Release()
			return nil, optErr
		}
	}

	return imp, nil
}

// Release releases the worker pool. The importer should not be used after
// calling Release.
func (imp *Importer) Release() {
	if imp.pool != nil {
		imp.pool.Release()
	}
}

// Import restores a single archive into the repository and returns the
// number of nurseries upserted.
func (imp *Importer) Import(ctx context.Context, r io.Reader) (int, error) {
	doc, err := decodeArchive(r)
	if err != nil {
		return 0, err
	}
	if err := imp.apply(ctx, doc); err != nil {
		return 0, err
	}
	return doc.Len(), nil
}

// ImportFiles restores several archive files. Files are parsed and
// verified concurrently; upserts are applied in argument order. The first
// failure aborts before anything is written, so a bad file never leaves a
// partial restore behind.
func (imp *Importer) ImportFiles(ctx context.Context, paths ...string) (int, error) {
	type parsed struct {
		doc *storage.NurseryDocument
		err error
	}

	results := make([]parsed, len(paths))
	var wg sync.WaitGroup
	for i, path := range paths {
		wg.Add(1)
		i, path := i, path
		if err := imp.pool.Submit(func() {
			defer wg.Done()
			doc, err := parseArchiveFile(path)
			results[i] = parsed{doc: doc, err: err}
		}); err != nil {
			results[i] = parsed{err: err}
			wg.Done()
		}
	}
	wg.Wait()

	for i, result := range results {
		if result.err != nil {
			return 0, fmt.Errorf("%s: %w", paths[i], result.err)
		}
	}

	total := 0
	for _, result := range results {
		if err := imp.apply(ctx, result.doc); err != nil {
			return total, err
		}
		total += result.doc.Len()
	}

	imp.logger.Info("imported archives", "files", len(paths), "nurseries", total)
	return total, nil
}

func (imp *Importer) apply(ctx context.Context, doc *storage.NurseryDocument) error {
	return imp.repository.PutNurseries(ctx, doc.All()...)
}

func parseArchiveFile(path string) (*storage.NurseryDocument, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return decodeArchive(f)
}

// decodeArchive reads an envelope, verifies version and checksum, decodes
// the nursery payload, and validates every entry.
func decodeArchive(r io.Reader) (*storage.NurseryDocument, error) {
	var envelope Envelope
	if err := json.NewDecoder(r).Decode(&envelope); err != nil {
		return nil, err
	}

	if envelope.Version != FormatVersion {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedVersion, envelope.Version)
	}

	// The envelope is written indented, which reformats the embedded
	// payload. The checksum covers the canonical compact encoding, so
	// compact before comparing.
	var payload bytes.Buffer
	if err := json.Compact(&payload, envelope.Nurseries); err != nil {
		return nil, err
	}
	if payloadChecksum(payload.Bytes()) != envelope.Checksum {
		return nil, ErrChecksumMismatch
	}

	doc, err := storage.DecodeNurseryDocument(payload.Bytes())
	if err != nil {
		return nil, err
	}
	for _, nursery := range doc.All() {
		if err := core.ValidateNursery(nursery); err != nil {
			return nil, err
		}
	}
	return doc, nil
}
