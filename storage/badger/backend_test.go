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
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chiilog/nursery-visits/storage"
)

func TestOpenBackend_InMemory(t *testing.T) {
	backend, err := OpenBackend("", true)
	require.NoError(t, err)
	require.NotNil(t, backend)
	defer backend.Close()

	assert.False(t, backend.IsClosed())
}

func TestOpenBackend_FileSystem(t *testing.T) {
	tmpDir := t.TempDir()
	backend, err := OpenBackend(tmpDir, false)
	require.NoError(t, err)
	require.NotNil(t, backend)
	defer backend.Close()

	assert.False(t, backend.IsClosed())
}

func TestOpenBackend_NotADirectory(t *testing.T) {
	tmpFile := filepath.Join(t.TempDir(), "file.txt")
	require.NoError(t, os.WriteFile(tmpFile, []byte("data"), 0644))

	backend, err := OpenBackend(tmpFile, false)
	if err == nil {
		backend.Close()
		t.Fatal("Expected an error for a file path")
	}
}

func TestBackendClose(t *testing.T) {
	backend, err := OpenBackend("", true)
	require.NoError(t, err)
	require.NotNil(t, backend)

	assert.False(t, backend.IsClosed())

	err = backend.Close()
	require.NoError(t, err)

	assert.True(t, backend.IsClosed())
}

func TestReadDocument_AbsentKey(t *testing.T) {
	backend, err := OpenBackend("", true)
	require.NoError(t, err)
	defer backend.Close()

	data, err := backend.ReadDocument("missing")
	require.NoError(t, err)
	assert.Nil(t, data)
}

func TestWriteReadDocument(t *testing.T) {
	backend, err := OpenBackend("", true)
	require.NoError(t, err)
	defer backend.Close()

	require.NoError(t, backend.WriteDocument("doc", []byte(`{"hello":"world"}`)))

	data, err := backend.ReadDocument("doc")
	require.NoError(t, err)
	assert.Equal(t, `{"hello":"world"}`, string(data))
}

func TestDeleteDocument(t *testing.T) {
	backend, err := OpenBackend("", true)
	require.NoError(t, err)
	defer backend.Close()

	require.NoError(t, backend.WriteDocument("doc", []byte("x")))
	require.NoError(t, backend.DeleteDocument("doc"))

	data, err := backend.ReadDocument("doc")
	require.NoError(t, err)
	assert.Nil(t, data)

	// Deleting an absent key is not an error.
	require.NoError(t, backend.DeleteDocument("doc"))
}

func TestUpdateDocument(t *testing.T) {
	backend, err := OpenBackend("", true)
	require.NoError(t, err)
	defer backend.Close()

	err = backend.UpdateDocument("doc", func(data []byte) ([]byte, error) {
		assert.Nil(t, data)
		return []byte("first"), nil
	})
	require.NoError(t, err)

	err = backend.UpdateDocument("doc", func(data []byte) ([]byte, error) {
		assert.Equal(t, "first", string(data))
		return append(data, []byte("+second")...), nil
	})
	require.NoError(t, err)

	data, err := backend.ReadDocument("doc")
	require.NoError(t, err)
	assert.Equal(t, "first+second", string(data))
}

func TestUpdateDocument_FnErrorAbortsWrite(t *testing.T) {
	backend, err := OpenBackend("", true)
	require.NoError(t, err)
	defer backend.Close()

	require.NoError(t, backend.WriteDocument("doc", []byte("before")))

	wantErr := errors.New("abort")
	err = backend.UpdateDocument("doc", func(data []byte) ([]byte, error) {
		return nil, wantErr
	})
	require.ErrorIs(t, err, wantErr)

	data, err := backend.ReadDocument("doc")
	require.NoError(t, err)
	assert.Equal(t, "before", string(data))
}

func TestWriteDocument_ClosedBackend(t *testing.T) {
	backend, err := OpenBackend("", true)
	require.NoError(t, err)
	require.NoError(t, backend.Close())

	err = backend.WriteDocument("doc", []byte("data"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, storage.ErrWriteFailed), "expected ErrWriteFailed, got %v", err)
	assert.True(t, errors.Is(err, storage.ErrStorageClosed), "expected ErrStorageClosed, got %v", err)
}

func TestReadDocument_ClosedBackend(t *testing.T) {
	backend, err := OpenBackend("", true)
	require.NoError(t, err)
	require.NoError(t, backend.Close())

	_, err = backend.ReadDocument("doc")
	require.Error(t, err)
	assert.True(t, errors.Is(err, storage.ErrReadFailed), "expected ErrReadFailed, got %v", err)
	assert.True(t, errors.Is(err, storage.ErrStorageClosed), "expected ErrStorageClosed, got %v", err)
}
