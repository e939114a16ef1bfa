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
	"context"

	"github.com/chiilog/nursery-visits/core"
)

// NurseryRepository provides CRUD over the nursery → visit session →
// question entity graph. Every operation is a whole-document
// read-modify-write; mutating operations refresh UpdatedAt on the mutated
// node and on every ancestor up to the nursery.
//
// Update operations on a missing id return the matching not-found error,
// the same contract as the create operations. Delete operations are
// idempotent: deleting an id that no longer exists is not an error.
type NurseryRepository interface {
	// CreateNursery allocates a nursery id, stores a nursery with an empty
	// session list, and returns the new id.
	CreateNursery(ctx context.Context, input core.CreateNurseryInput) (string, error)

	// GetNursery retrieves a nursery by id.
	// Returns nil, nil if the nursery does not exist.
	GetNursery(ctx context.Context, id string) (*core.Nursery, error)

	// GetAllNurseries retrieves every nursery in the stored document's
	// insertion order. Returns an empty slice for an empty store.
	GetAllNurseries(ctx context.Context) ([]*core.Nursery, error)

	// UpdateNursery merges a partial update into an existing nursery.
	// A VisitSessions field in the update replaces the list wholesale.
	// Returns ErrNurseryNotFound if the id does not exist.
	UpdateNursery(ctx context.Context, id string, update core.NurseryUpdate) error

	// DeleteNursery removes a nursery and, implicitly, all of its sessions
	// and questions. Idempotent.
	DeleteNursery(ctx context.Context, id string) error

	// PutNurseries upserts whole nursery entries preserving their ids and
	// timestamps. Used by the import path.
	PutNurseries(ctx context.Context, nurseries ...*core.Nursery) error

	// CreateVisitSession appends a new session to the given nursery and
	// returns the session id. Returns ErrNurseryNotFound if the nursery
	// does not exist.
	CreateVisitSession(ctx context.Context, nurseryID string, input core.CreateVisitSessionInput) (string, error)

	// UpdateVisitSession merges a partial update into an existing session.
	// Sessions are not independently keyed; resolution scans all nurseries.
	// Returns ErrSessionNotFound if the session does not exist.
	UpdateVisitSession(ctx context.Context, sessionID string, update core.VisitSessionUpdate) error

	// DeleteVisitSession removes a session from its owning nursery.
	// Idempotent.
	DeleteVisitSession(ctx context.Context, sessionID string) error

	// AddQuestion appends a new question to the given nursery and session
	// pair and returns the question id. Returns ErrNurseryNotFound or
	// ErrSessionNotFound if the pair cannot be resolved.
	AddQuestion(ctx context.Context, nurseryID, sessionID string, input core.CreateQuestionInput) (string, error)

	// UpdateQuestion merges a partial update into an existing question.
	// Saving a non-empty answer marks the question answered and stamps
	// AnsweredAt; saving an empty answer clears the answer state.
	// Returns the matching not-found error if any id cannot be resolved.
	UpdateQuestion(ctx context.Context, nurseryID, sessionID, questionID string, update core.QuestionUpdate) error

	// DeleteQuestion removes a question from its session. Idempotent.
	DeleteQuestion(ctx context.Context, nurseryID, sessionID, questionID string) error

	// AddInsight appends a free-text insight to the given session.
	// Returns ErrSessionNotFound if the session does not exist.
	AddInsight(ctx context.Context, sessionID, insight string) error

	// RemoveInsight removes the insight at index from the given session.
	// Removing a missing session or an out-of-range index is a no-op.
	RemoveInsight(ctx context.Context, sessionID string, index int) error

	// Close releases repository resources.
	Close() error
}

// ConsentRepository manages the analytics consent record. Its failure
// policy is deliberately more forgiving than NurseryRepository's: a
// missing or unreadable record is absorbed into defaults, never surfaced,
// because losing consent state must not block the application.
type ConsentRepository interface {
	// LoadSettings retrieves the stored privacy settings. Corrupt,
	// missing, or wrong-typed data falls back to
	// core.DefaultPrivacySettings; the error result covers backend access
	// failures only and is nil in the fallback cases.
	LoadSettings(ctx context.Context) (*core.PrivacySettings, error)

	// SaveSettings persists the privacy settings, stamping
	// ConsentTimestamp and ConsentVersion when unset.
	SaveSettings(ctx context.Context, settings *core.PrivacySettings) error

	// IsConsentValid reports whether a stored consent record exists, is
	// readable, and is younger than one calendar year. The boundary is
	// exclusive: a record exactly one year old is no longer valid.
	IsConsentValid(ctx context.Context) (bool, error)

	// ClearSettings removes the stored record, forcing a re-prompt.
	ClearSettings(ctx context.Context) error

	// LegacyConsent returns the legacy single-flag consent value
	// ("accepted", "declined", or "" when unset). The legacy key stores
	// the literal string, not JSON.
	LegacyConsent(ctx context.Context) (string, error)

	// SetLegacyConsent stores the legacy consent flag. The value must be
	// core.ConsentAccepted or core.ConsentDeclined.
	SetLegacyConsent(ctx context.Context, value string) error

	// Close releases repository resources.
	Close() error
}
