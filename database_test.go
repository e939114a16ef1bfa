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


package nurseryvisits

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chiilog/nursery-visits/core"
)

func TestNewDatabase(t *testing.T) {
	db, err := NewDatabase(filepath.Join(t.TempDir(), "nursery-data"))
	require.NoError(t, err)
	defer db.Close()

	assert.NotNil(t, db.NurseryRepository())
	assert.NotNil(t, db.ConsentRepository())
}

func TestDatabase_Persistence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nursery-data")
	ctx := context.Background()

	db, err := NewDatabase(path)
	require.NoError(t, err)
	id, err := db.NurseryRepository().CreateNursery(ctx, core.CreateNurseryInput{Name: "さくら保育園"})
	require.NoError(t, err)
	require.NoError(t, db.Close())

	// Reopen and read back.
	db, err = NewDatabase(path)
	require.NoError(t, err)
	defer db.Close()

	nursery, err := db.NurseryRepository().GetNursery(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, nursery)
	assert.Equal(t, "さくら保育園", nursery.Name)
}

func TestDatabase_InMemory(t *testing.T) {
	db, err := NewDatabase("", WithInMemory())
	require.NoError(t, err)
	defer db.Close()

	ctx := context.Background()
	_, err = db.NurseryRepository().CreateNursery(ctx, core.CreateNurseryInput{Name: "ひまわり保育園"})
	require.NoError(t, err)

	all, err := db.NurseryRepository().GetAllNurseries(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestDatabase_Factories(t *testing.T) {
	db, err := NewDatabase("", WithInMemory())
	require.NoError(t, err)
	defer db.Close()

	ctx := context.Background()
	_, err = db.NurseryRepository().CreateNursery(ctx, core.CreateNurseryInput{Name: "さくら保育園"})
	require.NoError(t, err)

	searcher, err := db.NewSearcher()
	require.NoError(t, err)
	matches, err := searcher.Search(ctx, "さくら", 0)
	require.NoError(t, err)
	assert.Len(t, matches, 1)

	exporter, err := db.NewExporter()
	require.NoError(t, err)
	var buf bytes.Buffer
	require.NoError(t, exporter.Export(ctx, &buf))
	assert.NotZero(t, buf.Len())

	importer, err := db.NewImporter()
	require.NoError(t, err)
	defer importer.Release()
	count, err := importer.Import(ctx, &buf)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestDatabase_ConsentRoundTrip(t *testing.T) {
	db, err := NewDatabase("", WithInMemory())
	require.NoError(t, err)
	defer db.Close()

	ctx := context.Background()
	consent := db.ConsentRepository()

	valid, err := consent.IsConsentValid(ctx)
	require.NoError(t, err)
	assert.False(t, valid)

	require.NoError(t, consent.SaveSettings(ctx, &core.PrivacySettings{GoogleAnalytics: true}))

	valid, err = consent.IsConsentValid(ctx)
	require.NoError(t, err)
	assert.True(t, valid)
}
