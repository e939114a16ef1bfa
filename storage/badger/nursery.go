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
	"context"
	"log/slog"
	"time"

	"github.com/chiilog/nursery-visits/core"
	"github.com/chiilog/nursery-visits/storage"
)

// NurseryRepository implements storage.NurseryRepository over a single
// whole-document key. The document is small (one user's data), so nested
// ids are resolved by linear scan instead of a secondary index.
type NurseryRepository struct {
	backend *Backend
	logger  *slog.Logger
}

var _ storage.NurseryRepository = (*NurseryRepository)(nil)

// NewNurseryRepository creates a new NurseryRepository.
func NewNurseryRepository(backend *Backend) storage.NurseryRepository {
	return &NurseryRepository{
		backend: backend,
		logger:  slog.Default(),
	}
}

// Close releases repository resources. The backend is owned by the caller
// and stays open.
func (r *NurseryRepository) Close() error {
	return nil
}

// readDocument loads and decodes the whole nursery document.
func (r *NurseryRepository) readDocument() (*storage.NurseryDocument, error) {
	data, err := r.backend.ReadDocument(nurseriesKey)
	if err != nil {
		return nil, err
	}
	return storage.DecodeNurseryDocument(data)
}

// updateDocument runs fn against the decoded document and writes the
// re-encoded result back, all under the backend's single-document lock.
func (r *NurseryRepository) updateDocument(fn func(doc *storage.NurseryDocument) error) error {
	return r.backend.UpdateDocument(nurseriesKey, func(data []byte) ([]byte, error) {
		doc, err := storage.DecodeNurseryDocument(data)
		if err != nil {
			return nil, err
		}
		if err := fn(doc); err != nil {
			return nil, err
		}
		return storage.EncodeNurseryDocument(doc)
	})
}

// CreateNursery allocates a nursery id and stores a new nursery with an
// empty session list.
func (r *NurseryRepository) CreateNursery(ctx context.Context, input core.CreateNurseryInput) (string, error) {
	id := core.NewNurseryID()
	err := r.updateDocument(func(doc *storage.NurseryDocument) error {
		now := time.Now().UTC()
		doc.Set(id, &core.Nursery{
			ID:            id,
			Name:          input.Name,
			Address:       input.Address,
			PhoneNumber:   input.PhoneNumber,
			Website:       input.Website,
			Notes:         input.Notes,
			VisitSessions: []core.VisitSession{},
			CreatedAt:     now,
			UpdatedAt:     now,
		})
		return nil
	})
	if err != nil {
		return "", err
	}
	return id, nil
}

// GetNursery retrieves a nursery by id. Returns nil, nil when absent.
func (r *NurseryRepository) GetNursery(ctx context.Context, id string) (*core.Nursery, error) {
	doc, err := r.readDocument()
	if err != nil {
		return nil, err
	}
	return doc.Get(id), nil
}

// GetAllNurseries retrieves every nursery in stored order.
func (r *NurseryRepository) GetAllNurseries(ctx context.Context) ([]*core.Nursery, error) {
	doc, err := r.readDocument()
	if err != nil {
		return nil, err
	}
	return doc.All(), nil
}

// UpdateNursery merges a partial update into an existing nursery.
func (r *NurseryRepository) UpdateNursery(ctx context.Context, id string, update core.NurseryUpdate) error {
	return r.updateDocument(func(doc *storage.NurseryDocument) error {
		nursery := doc.Get(id)
		if nursery == nil {
			return storage.ErrNurseryNotFound
		}
		applyNurseryUpdate(nursery, update)
		nursery.UpdatedAt = time.Now().UTC()
		return nil
	})
}

// DeleteNursery removes a nursery and all of its embedded descendants.
// Idempotent.
func (r *NurseryRepository) DeleteNursery(ctx context.Context, id string) error {
	return r.updateDocument(func(doc *storage.NurseryDocument) error {
		doc.Delete(id)
		return nil
	})
}

// PutNurseries upserts whole nursery entries preserving ids and timestamps.
func (r *NurseryRepository) PutNurseries(ctx context.Context, nurseries ...*core.Nursery) error {
	if len(nurseries) == 0 {
		return nil
	}
	return r.updateDocument(func(doc *storage.NurseryDocument) error {
		for _, nursery := range nurseries {
			if nursery.VisitSessions == nil {
				nursery.VisitSessions = []core.VisitSession{}
			}
			doc.Set(nursery.ID, nursery)
		}
		return nil
	})
}

// CreateVisitSession appends a new session to the given nursery.
func (r *NurseryRepository) CreateVisitSession(ctx context.Context, nurseryID string, input core.CreateVisitSessionInput) (string, error) {
	id := core.NewSessionID()
	err := r.updateDocument(func(doc *storage.NurseryDocument) error {
		nursery := doc.Get(nurseryID)
		if nursery == nil {
			return storage.ErrNurseryNotFound
		}
		status := input.Status
		if status == "" {
			status = core.SessionStatusPlanned
		}
		now := time.Now().UTC()
		nursery.VisitSessions = append(nursery.VisitSessions, core.VisitSession{
			ID:        id,
			VisitDate: input.VisitDate,
			Status:    status,
			Notes:     input.Notes,
			Questions: []core.Question{},
			Insights:  []string{},
			CreatedAt: now,
			UpdatedAt: now,
		})
		nursery.UpdatedAt = now
		return nil
	})
	if err != nil {
		return "", err
	}
	return id, nil
}

// UpdateVisitSession merges a partial update into an existing session.
// Sessions are not independently keyed, so the owner is found by scanning
// all nurseries.
func (r *NurseryRepository) UpdateVisitSession(ctx context.Context, sessionID string, update core.VisitSessionUpdate) error {
	return r.updateDocument(func(doc *storage.NurseryDocument) error {
		nursery, session := findSession(doc, sessionID)
		if session == nil {
			return storage.ErrSessionNotFound
		}
		applySessionUpdate(session, update)
		now := time.Now().UTC()
		session.UpdatedAt = now
		nursery.UpdatedAt = now
		return nil
	})
}

// DeleteVisitSession removes a session from its owning nursery. Idempotent.
func (r *NurseryRepository) DeleteVisitSession(ctx context.Context, sessionID string) error {
	return r.updateDocument(func(doc *storage.NurseryDocument) error {
		for _, nursery := range doc.All() {
			for i := range nursery.VisitSessions {
				if nursery.VisitSessions[i].ID != sessionID {
					continue
				}
				nursery.VisitSessions = append(nursery.VisitSessions[:i], nursery.VisitSessions[i+1:]...)
				nursery.UpdatedAt = time.Now().UTC()
				return nil
			}
		}
		return nil
	})
}

// AddQuestion appends a new question under the given nursery and session.
func (r *NurseryRepository) AddQuestion(ctx context.Context, nurseryID, sessionID string, input core.CreateQuestionInput) (string, error) {
	id := core.NewQuestionID()
	err := r.updateDocument(func(doc *storage.NurseryDocument) error {
		nursery := doc.Get(nurseryID)
		if nursery == nil {
			return storage.ErrNurseryNotFound
		}
		session := sessionByID(nursery, sessionID)
		if session == nil {
			return storage.ErrSessionNotFound
		}
		now := time.Now().UTC()
		session.Questions = append(session.Questions, core.Question{
			ID:         id,
			Text:       input.Text,
			Category:   input.Category,
			Priority:   input.Priority,
			OrderIndex: input.OrderIndex,
			CreatedAt:  now,
			UpdatedAt:  now,
		})
		session.UpdatedAt = now
		nursery.UpdatedAt = now
		return nil
	})
	if err != nil {
		return "", err
	}
	return id, nil
}

// UpdateQuestion merges a partial update into an existing question,
// deriving the answered state from the answer field.
func (r *NurseryRepository) UpdateQuestion(ctx context.Context, nurseryID, sessionID, questionID string, update core.QuestionUpdate) error {
	return r.updateDocument(func(doc *storage.NurseryDocument) error {
		nursery := doc.Get(nurseryID)
		if nursery == nil {
			return storage.ErrNurseryNotFound
		}
		session := sessionByID(nursery, sessionID)
		if session == nil {
			return storage.ErrSessionNotFound
		}
		question := questionByID(session, questionID)
		if question == nil {
			return storage.ErrQuestionNotFound
		}
		now := time.Now().UTC()
		applyQuestionUpdate(question, update, now)
		question.UpdatedAt = now
		session.UpdatedAt = now
		nursery.UpdatedAt = now
		return nil
	})
}

// DeleteQuestion removes a question from its session. Idempotent.
func (r *NurseryRepository) DeleteQuestion(ctx context.Context, nurseryID, sessionID, questionID string) error {
	return r.updateDocument(func(doc *storage.NurseryDocument) error {
		nursery := doc.Get(nurseryID)
		if nursery == nil {
			return nil
		}
		session := sessionByID(nursery, sessionID)
		if session == nil {
			return nil
		}
		for i := range session.Questions {
			if session.Questions[i].ID != questionID {
				continue
			}
			session.Questions = append(session.Questions[:i], session.Questions[i+1:]...)
			now := time.Now().UTC()
			session.UpdatedAt = now
			nursery.UpdatedAt = now
			return nil
		}
		return nil
	})
}

// AddInsight appends a free-text insight to the given session.
func (r *NurseryRepository) AddInsight(ctx context.Context, sessionID, insight string) error {
	return r.updateDocument(func(doc *storage.NurseryDocument) error {
		nursery, session := findSession(doc, sessionID)
		if session == nil {
			return storage.ErrSessionNotFound
		}
		session.Insights = append(session.Insights, insight)
		now := time.Now().UTC()
		session.UpdatedAt = now
		nursery.UpdatedAt = now
		return nil
	})
}

// RemoveInsight removes the insight at index from the given session.
// A missing session or an out-of-range index is a no-op.
func (r *NurseryRepository) RemoveInsight(ctx context.Context, sessionID string, index int) error {
	return r.updateDocument(func(doc *storage.NurseryDocument) error {
		nursery, session := findSession(doc, sessionID)
		if session == nil {
			return nil
		}
		if index < 0 || index >= len(session.Insights) {
			return nil
		}
		session.Insights = append(session.Insights[:index], session.Insights[index+1:]...)
		now := time.Now().UTC()
		session.UpdatedAt = now
		nursery.UpdatedAt = now
		return nil
	})
}

// findSession resolves a session id to its owning nursery and the session
// itself by scanning every nursery. Returns nil, nil when unresolved.
func findSession(doc *storage.NurseryDocument, sessionID string) (*core.Nursery, *core.VisitSession) {
	for _, nursery := range doc.All() {
		if session := sessionByID(nursery, sessionID); session != nil {
			return nursery, session
		}
	}
	return nil, nil
}

func sessionByID(nursery *core.Nursery, sessionID string) *core.VisitSession {
	for i := range nursery.VisitSessions {
		if nursery.VisitSessions[i].ID == sessionID {
			return &nursery.VisitSessions[i]
		}
	}
	return nil
}

func questionByID(session *core.VisitSession, questionID string) *core.Question {
	for i := range session.Questions {
		if session.Questions[i].ID == questionID {
			return &session.Questions[i]
		}
	}
	return nil
}

func applyNurseryUpdate(nursery *core.Nursery, update core.NurseryUpdate) {
	if update.Name != nil {
		nursery.Name = *update.Name
	}
	if update.Address != nil {
		nursery.Address = *update.Address
	}
	if update.PhoneNumber != nil {
		nursery.PhoneNumber = *update.PhoneNumber
	}
	if update.Website != nil {
		nursery.Website = *update.Website
	}
	if update.Notes != nil {
		nursery.Notes = *update.Notes
	}
	if update.VisitSessions != nil {
		nursery.VisitSessions = *update.VisitSessions
	}
}

func applySessionUpdate(session *core.VisitSession, update core.VisitSessionUpdate) {
	if update.ClearVisitDate {
		session.VisitDate = nil
	} else if update.VisitDate != nil {
		session.VisitDate = update.VisitDate
	}
	if update.Status != nil {
		session.Status = *update.Status
	}
	if update.Notes != nil {
		session.Notes = *update.Notes
	}
	if update.Insights != nil {
		session.Insights = *update.Insights
	}
}

func applyQuestionUpdate(question *core.Question, update core.QuestionUpdate, now time.Time) {
	if update.Text != nil {
		question.Text = *update.Text
	}
	if update.Answer != nil {
		if *update.Answer == "" {
			question.Answer = ""
			question.IsAnswered = false
			question.AnsweredAt = nil
			question.AnsweredBy = ""
		} else {
			question.Answer = *update.Answer
			question.IsAnswered = true
			answeredAt := now
			question.AnsweredAt = &answeredAt
		}
	}
	if update.Category != nil {
		question.Category = *update.Category
	}
	if update.Priority != nil {
		question.Priority = *update.Priority
	}
	if update.OrderIndex != nil {
		question.OrderIndex = *update.OrderIndex
	}
	if update.AnsweredBy != nil {
		question.AnsweredBy = *update.AnsweredBy
	}
}
