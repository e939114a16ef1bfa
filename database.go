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


// Package nurseryvisits is the local persistent store for nursery-school
// visit tracking: nurseries, their visit sessions, per-session questions
// and insights, plus the analytics consent record. Database wires the
// storage backend and repositories together; all data lives in a local
// BadgerDB directory with no server component.
package nurseryvisits

import (
	"log/slog"

	"github.com/chiilog/nursery-visits/archive"
	"github.com/chiilog/nursery-visits/search"
	"github.com/chiilog/nursery-visits/storage"
	"github.com/chiilog/nursery-visits/storage/badger"
)

// Database owns the backend and both repositories. Opening a Database is
// the only supported way to get a handle on the store; passing the
// repositories around explicitly keeps test instances isolated instead of
// hiding a process-wide singleton.
type Database struct {
	backend     *badger.Backend
	nurseryRepo storage.NurseryRepository
	consentRepo storage.ConsentRepository
	logger      *slog.Logger
}

// DatabaseOption configures a Database.
type DatabaseOption func(*databaseOptions)

type databaseOptions struct {
	inMemory bool
	logger   *slog.Logger
}

// WithInMemory opens the backend in memory, discarding everything on
// Close. Intended for tests.
func WithInMemory() DatabaseOption {
	return func(o *databaseOptions) {
		o.inMemory = true
	}
}

// WithDatabaseLogger sets a custom logger. Default is slog.Default().
func WithDatabaseLogger(logger *slog.Logger) DatabaseOption {
	return func(o *databaseOptions) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// NewDatabase opens the store at filePath and wires the repositories.
func NewDatabase(filePath string, opts ...DatabaseOption) (*Database, error) {
	options := &databaseOptions{
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(options)
	}

	backend, err := badger.OpenBackend(filePath, options.inMemory)
	if err != nil {
		return nil, err
	}

	return &Database{
		backend:     backend,
		nurseryRepo: badger.NewNurseryRepository(backend),
		consentRepo: badger.NewConsentRepository(backend),
		logger:      options.logger,
	}, nil
}

// Close closes the repositories and the backend.
func (db *Database) Close() error {
	if err := db.nurseryRepo.Close(); err != nil {
		db.logger.Error("error closing nursery repository", "err", err)
		return err
	}
	if err := db.consentRepo.Close(); err != nil {
		db.logger.Error("error closing consent repository", "err", err)
		return err
	}
	if err := db.backend.Close(); err != nil {
		db.logger.Error("error closing backend storage", "err", err)
		return err
	}
	return nil
}

// NurseryRepository returns the nursery store.
func (db *Database) NurseryRepository() storage.NurseryRepository {
	return db.nurseryRepo
}

// ConsentRepository returns the consent store.
func (db *Database) ConsentRepository() storage.ConsentRepository {
	return db.consentRepo
}

// NewSearcher creates a searcher over this database.
func (db *Database) NewSearcher(opts ...search.Option) (*search.Searcher, error) {
	return search.NewSearcher(db.nurseryRepo, opts...)
}

// NewExporter creates an archive exporter over this database.
func (db *Database) NewExporter(opts ...archive.ExporterOption) (*archive.Exporter, error) {
	return archive.NewExporter(db.nurseryRepo, opts...)
}

// NewImporter creates an archive importer over this database.
// The caller must Release it.
func (db *Database) NewImporter(opts ...archive.Option) (*archive.Importer, error) {
	return archive.NewImporter(db.nurseryRepo, opts...)
}
