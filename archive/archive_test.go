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
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chiilog/nursery-visits/core"
	"github.com/chiilog/nursery-visits/storage"
	storagebadger "github.com/chiilog/nursery-visits/storage/badger"
)

func newTestRepository(t *testing.T) storage.NurseryRepository {
	t.Helper()
	nurseryRepo, consentRepo, backend, err := storagebadger.NewMemoryStores()
	require.NoError(t, err)
	t.Cleanup(func() {
		consentRepo.Close()
		nurseryRepo.Close()
		backend.Close()
	})
	return nurseryRepo
}

func seedNurseries(t *testing.T, repo storage.NurseryRepository, names ...string) {
	t.Helper()
	ctx := context.Background()
	for _, name := range names {
		id, err := repo.CreateNursery(ctx, core.CreateNurseryInput{Name: name})
		require.NoError(t, err)
		sessionID, err := repo.CreateVisitSession(ctx, id, core.CreateVisitSessionInput{})
		require.NoError(t, err)
		_, err = repo.AddQuestion(ctx, id, sessionID, core.CreateQuestionInput{Text: "延長保育はありますか？"})
		require.NoError(t, err)
	}
}

func TestExportImportRoundTrip(t *testing.T) {
	ctx := context.Background()
	source := newTestRepository(t)
	seedNurseries(t, source, "さくら保育園", "ひまわり保育園")

	exporter, err := NewExporter(source)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, exporter.Export(ctx, &buf))

	var envelope Envelope
	require.NoError(t, json.Unmarshal(buf.Bytes(), &envelope))
	assert.Equal(t, FormatVersion, envelope.Version)
	assert.NotEmpty(t, envelope.Checksum)
	assert.False(t, envelope.ExportedAt.IsZero())

	target := newTestRepository(t)
	importer, err := NewImporter(target)
	require.NoError(t, err)
	defer importer.Release()

	count, err := importer.Import(ctx, &buf)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	originals, err := source.GetAllNurseries(ctx)
	require.NoError(t, err)
	restored, err := target.GetAllNurseries(ctx)
	require.NoError(t, err)
	require.Len(t, restored, 2)
	for i, nursery := range restored {
		assert.Equal(t, originals[i].ID, nursery.ID)
		assert.Equal(t, originals[i].Name, nursery.Name)
		assert.True(t, originals[i].CreatedAt.Equal(nursery.CreatedAt))
		require.Len(t, nursery.VisitSessions, 1)
		require.Len(t, nursery.VisitSessions[0].Questions, 1)
		assert.Equal(t, "延長保育はありますか？", nursery.VisitSessions[0].Questions[0].Text)
	}
}

func TestImport_ReindentedEnvelope(t *testing.T) {
	// The checksum covers the compact payload encoding; reformatting the
	// archive file must not invalidate it.
	ctx := context.Background()
	source := newTestRepository(t)
	seedNurseries(t, source, "さくら保育園")

	exporter, err := NewExporter(source)
	require.NoError(t, err)
	var buf bytes.Buffer
	require.NoError(t, exporter.Export(ctx, &buf))

	var envelope Envelope
	require.NoError(t, json.Unmarshal(buf.Bytes(), &envelope))
	reindented, err := json.MarshalIndent(envelope, "", "\t")
	require.NoError(t, err)

	importer, err := NewImporter(newTestRepository(t))
	require.NoError(t, err)
	defer importer.Release()

	count, err := importer.Import(ctx, bytes.NewReader(reindented))
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestImport_ChecksumMismatch(t *testing.T) {
	ctx := context.Background()
	source := newTestRepository(t)
	seedNurseries(t, source, "さくら保育園")

	exporter, err := NewExporter(source)
	require.NoError(t, err)
	var buf bytes.Buffer
	require.NoError(t, exporter.Export(ctx, &buf))

	var envelope Envelope
	require.NoError(t, json.Unmarshal(buf.Bytes(), &envelope))
	envelope.Checksum = "0000000000000000"
	tampered, err := json.Marshal(envelope)
	require.NoError(t, err)

	importer, err := NewImporter(newTestRepository(t))
	require.NoError(t, err)
	defer importer.Release()

	_, err = importer.Import(ctx, bytes.NewReader(tampered))
	assert.ErrorIs(t, err, ErrChecksumMismatch)
}

func TestImport_UnsupportedVersion(t *testing.T) {
	importer, err := NewImporter(newTestRepository(t))
	require.NoError(t, err)
	defer importer.Release()

	payload := []byte(`{"version":99,"checksum":"","nurseries":{}}`)
	_, err = importer.Import(context.Background(), bytes.NewReader(payload))
	assert.ErrorIs(t, err, ErrUnsupportedVersion)
}

func TestImport_InvalidEntry(t *testing.T) {
	// An entry with an empty name must be rejected before anything is written.
	payload := []byte(`{"nursery-bad":{"id":"nursery-bad","name":"","visitSessions":[]}}`)
	envelope := Envelope{
		Version:   FormatVersion,
		Checksum:  payloadChecksum(payload),
		Nurseries: payload,
	}
	data, err := json.Marshal(envelope)
	require.NoError(t, err)

	ctx := context.Background()
	target := newTestRepository(t)
	importer, err := NewImporter(target)
	require.NoError(t, err)
	defer importer.Release()

	_, err = importer.Import(ctx, bytes.NewReader(data))
	assert.ErrorIs(t, err, core.ErrEmptyName)

	restored, err := target.GetAllNurseries(ctx)
	require.NoError(t, err)
	assert.Empty(t, restored)
}

func TestImportFiles(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	paths := make([]string, 0, 2)
	for i, name := range []string{"さくら保育園", "ひまわり保育園"} {
		source := newTestRepository(t)
		seedNurseries(t, source, name)
		exporter, err := NewExporter(source)
		require.NoError(t, err)
		path := filepath.Join(dir, "archive-"+string(rune('a'+i))+".json")
		require.NoError(t, exporter.ExportFile(ctx, path))
		paths = append(paths, path)
	}

	target := newTestRepository(t)
	importer, err := NewImporter(target, WithPoolSize(2))
	require.NoError(t, err)
	defer importer.Release()

	count, err := importer.ImportFiles(ctx, paths...)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	restored, err := target.GetAllNurseries(ctx)
	require.NoError(t, err)
	require.Len(t, restored, 2)
	assert.Equal(t, "さくら保育園", restored[0].Name)
	assert.Equal(t, "ひまわり保育園", restored[1].Name)
}

func TestImportFiles_FailsBeforeWriting(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	source := newTestRepository(t)
	seedNurseries(t, source, "さくら保育園")
	exporter, err := NewExporter(source)
	require.NoError(t, err)
	good := filepath.Join(dir, "good.json")
	require.NoError(t, exporter.ExportFile(ctx, good))

	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte("not an archive"), 0o644))

	target := newTestRepository(t)
	importer, err := NewImporter(target)
	require.NoError(t, err)
	defer importer.Release()

	_, err = importer.ImportFiles(ctx, good, bad)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad.json")

	restored, err := target.GetAllNurseries(ctx)
	require.NoError(t, err)
	assert.Empty(t, restored, "a failed batch must not write anything")
}

func TestNewImporter_RequiresRepository(t *testing.T) {
	_, err := NewImporter(nil)
	assert.ErrorIs(t, err, ErrRepositoryRequired)

	_, err = NewExporter(nil)
	assert.ErrorIs(t, err, ErrRepositoryRequired)
}

func TestPayloadChecksum(t *testing.T) {
	a := payloadChecksum([]byte(`{"x":1}`))
	b := payloadChecksum([]byte(`{"x":2}`))
	assert.NotEqual(t, a, b)
	assert.Equal(t, a, payloadChecksum([]byte(`{"x":1}`)))
	assert.Len(t, a, 16)
}
