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


package badger

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sync"

	"github.com/dgraph-io/badger/v4"
	"github.com/dgraph-io/badger/v4/options"

	"github.com/chiilog/nursery-visits/storage"
)

// Backend wraps a BadgerDB instance and provides whole-document
// operations. Every stored document lives under a single key and is read
// and written in full; there is no partial-key update primitive.
type Backend struct {
	db     *badger.DB
	logger *slog.Logger

	// docMu is the single-document lock: every read-modify-write cycle
	// holds it from read to write, so sequential callers within one
	// process are strictly ordered. Separate processes on the same
	// database are not coordinated (last writer wins).
	docMu sync.Mutex
}

// badgerLoggerAdapter adapts slog.Logger to badger.Logger interface.
type badgerLoggerAdapter struct {
	logger *slog.Logger
}

var _ badger.Logger = (*badgerLoggerAdapter)(nil)

func (bl *badgerLoggerAdapter) Errorf(msg string, items ...any) {
	bl.logger.Error(fmt.Sprintf(msg, items...))
}

func (bl *badgerLoggerAdapter) Warningf(msg string, items ...any) {
	bl.logger.Warn(fmt.Sprintf(msg, items...))
}

func (bl *badgerLoggerAdapter) Infof(msg string, items ...any) {
	bl.logger.Info(fmt.Sprintf(msg, items...))
}

func (bl *badgerLoggerAdapter) Debugf(msg string, items ...any) {
	bl.logger.Debug(fmt.Sprintf(msg, items...))
}

// OpenBackend opens a BadgerDB database at the specified path.
// Creates the directory if it doesn't exist.
func OpenBackend(filePath string, inMemory bool) (*Backend, error) {
	var opts badger.Options

	if inMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		// Ensure directory exists
		info, err := os.Stat(filePath)
		if err != nil {
			if os.IsNotExist(err) {
				if err := os.MkdirAll(filePath, 0755); err != nil {
					return nil, err
				}
				info, err = os.Stat(filePath)
				if err != nil {
					return nil, err
				}
			} else {
				return nil, err
			}
		}
		if !info.IsDir() {
			return nil, fmt.Errorf("%s is not a directory", filePath)
		}
		opts = badger.DefaultOptions(filePath)
	}

	opts.Logger = &badgerLoggerAdapter{logger: slog.Default()}
	opts.Compression = options.None

	db, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}

	return &Backend{
		db:     db,
		logger: slog.Default(),
	}, nil
}

// Close closes the BadgerDB database.
func (b *Backend) Close() error {
	return b.db.Close()
}

// IsClosed returns true if the database is closed.
func (b *Backend) IsClosed() bool {
	return b.db.IsClosed()
}

// ReadDocument returns the raw document stored under key, or nil if the
// key is absent. An absent document is not an error; backend access
// failures are wrapped in storage.ErrReadFailed.
func (b *Backend) ReadDocument(key string) ([]byte, error) {
	if b.db.IsClosed() {
		return nil, fmt.Errorf("%w: %w", storage.ErrReadFailed, storage.ErrStorageClosed)
	}
	var data []byte
	err := b.db.View(func(tx *badger.Txn) error {
		item, err := tx.Get([]byte(key))
		if err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return nil
			}
			return err
		}
		data, err = item.ValueCopy(nil)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", storage.ErrReadFailed, err)
	}
	return data, nil
}

// WriteDocument stores the raw document under key. Any backend failure
// (capacity, permission, closed database) is wrapped in
// storage.ErrWriteFailed.
func (b *Backend) WriteDocument(key string, data []byte) error {
	if b.db.IsClosed() {
		return fmt.Errorf("%w: %w", storage.ErrWriteFailed, storage.ErrStorageClosed)
	}
	err := b.db.Update(func(tx *badger.Txn) error {
		return tx.Set([]byte(key), data)
	})
	if err != nil {
		return fmt.Errorf("%w: %w", storage.ErrWriteFailed, err)
	}
	return nil
}

// DeleteDocument removes the document under key. Deleting an absent key is
// not an error.
func (b *Backend) DeleteDocument(key string) error {
	if b.db.IsClosed() {
		return fmt.Errorf("%w: %w", storage.ErrWriteFailed, storage.ErrStorageClosed)
	}
	err := b.db.Update(func(tx *badger.Txn) error {
		return tx.Delete([]byte(key))
	})
	if err != nil {
		return fmt.Errorf("%w: %w", storage.ErrWriteFailed, err)
	}
	return nil
}

// UpdateDocument runs a whole-document read-modify-write cycle under the
// single-document lock: fn receives the current document (nil when
// absent) and returns the replacement. An error from fn aborts the cycle
// without writing and is returned unwrapped.
func (b *Backend) UpdateDocument(key string, fn func(data []byte) ([]byte, error)) error {
	b.docMu.Lock()
	defer b.docMu.Unlock()

	current, err := b.ReadDocument(key)
	if err != nil {
		return err
	}

	next, err := fn(current)
	if err != nil {
		return err
	}

	return b.WriteDocument(key, next)
}
