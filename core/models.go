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


package core

import (
	"encoding/json"
	"time"
)

// SessionStatus describes the lifecycle state of a visit session.
type SessionStatus string

const (
	// SessionStatusPlanned is a visit that has been scheduled but not held yet.
	SessionStatusPlanned SessionStatus = "planned"
	// SessionStatusCompleted is a visit that already took place.
	SessionStatusCompleted SessionStatus = "completed"
	// SessionStatusCancelled is a visit that was called off.
	SessionStatusCancelled SessionStatus = "cancelled"
)

// QuestionPriority classifies how important a question is to the parent.
type QuestionPriority string

const (
	PriorityHigh   QuestionPriority = "high"
	PriorityMedium QuestionPriority = "medium"
	PriorityLow    QuestionPriority = "low"
)

// Nursery is the root entity of the data model. It exclusively owns its
// visit sessions; deleting a nursery removes all of them.
type Nursery struct {
	ID            string         `json:"id"`
	Name          string         `json:"name"`
	Address       string         `json:"address,omitempty"`
	PhoneNumber   string         `json:"phoneNumber,omitempty"`
	Website       string         `json:"website,omitempty"`
	Notes         string         `json:"notes,omitempty"`
	VisitSessions []VisitSession `json:"visitSessions"`
	CreatedAt     time.Time      `json:"createdAt"`
	UpdatedAt     time.Time      `json:"updatedAt"`

	// Extra holds fields found in stored data that are not part of the
	// schema. They survive a decode/encode round trip untouched.
	Extra map[string]json.RawMessage `json:"-"`
}

// VisitSession is a single (planned or held) visit to a nursery. It owns
// its questions and free-form insights and never exists outside a Nursery.
type VisitSession struct {
	ID        string        `json:"id"`
	VisitDate *time.Time    `json:"visitDate"`
	Status    SessionStatus `json:"status"`
	Notes     string        `json:"notes,omitempty"`
	Questions []Question    `json:"questions"`
	Insights  []string      `json:"insights"`
	CreatedAt time.Time     `json:"createdAt"`
	UpdatedAt time.Time     `json:"updatedAt"`

	Extra map[string]json.RawMessage `json:"-"`
}

// Question is something the parent wants to ask during a visit.
// IsAnswered is true iff an answer was explicitly saved.
type Question struct {
	ID         string           `json:"id"`
	Text       string           `json:"text"`
	Answer     string           `json:"answer,omitempty"`
	IsAnswered bool             `json:"isAnswered"`
	Category   string           `json:"category,omitempty"`
	Priority   QuestionPriority `json:"priority,omitempty"`
	OrderIndex int              `json:"orderIndex"`
	AnsweredAt *time.Time       `json:"answeredAt,omitempty"`
	AnsweredBy string           `json:"answeredBy,omitempty"`
	CreatedAt  time.Time        `json:"createdAt"`
	UpdatedAt  time.Time        `json:"updatedAt"`

	Extra map[string]json.RawMessage `json:"-"`
}

// PrivacySettings is the analytics consent record. It lives under its own
// storage key and is independent of the nursery document.
type PrivacySettings struct {
	GoogleAnalytics  bool      `json:"googleAnalytics"`
	MicrosoftClarity bool      `json:"microsoftClarity"`
	ConsentTimestamp time.Time `json:"consentTimestamp"`
	ConsentVersion   string    `json:"consentVersion"`

	Extra map[string]json.RawMessage `json:"-"`
}

// Legacy single-flag cookie consent values. The legacy key stores these
// literal strings, not JSON.
const (
	ConsentAccepted = "accepted"
	ConsentDeclined = "declined"
)

// CurrentConsentVersion is stamped on newly saved privacy settings.
const CurrentConsentVersion = "1.0"

// DefaultPrivacySettings returns the fallback consent record used whenever
// the stored one is missing or unreadable: everything declined, stamped now.
func DefaultPrivacySettings() *PrivacySettings {
	return &PrivacySettings{
		GoogleAnalytics:  false,
		MicrosoftClarity: false,
		ConsentTimestamp: time.Now().UTC(),
		ConsentVersion:   CurrentConsentVersion,
	}
}

// CreateNurseryInput holds the caller-supplied fields for a new nursery.
type CreateNurseryInput struct {
	Name        string
	Address     string
	PhoneNumber string
	Website     string
	Notes       string
}

// NurseryUpdate is a partial update; nil fields are left unchanged.
// VisitSessions, when set, replaces the session list wholesale.
type NurseryUpdate struct {
	Name          *string
	Address       *string
	PhoneNumber   *string
	Website       *string
	Notes         *string
	VisitSessions *[]VisitSession
}

// CreateVisitSessionInput holds the caller-supplied fields for a new
// visit session. An empty Status defaults to planned.
type CreateVisitSessionInput struct {
	VisitDate *time.Time
	Status    SessionStatus
	Notes     string
}

// VisitSessionUpdate is a partial update; nil fields are left unchanged.
// ClearVisitDate resets the visit date to unscheduled and wins over
// VisitDate when both are set.
type VisitSessionUpdate struct {
	VisitDate      *time.Time
	ClearVisitDate bool
	Status         *SessionStatus
	Notes          *string
	Insights       *[]string
}

// CreateQuestionInput holds the caller-supplied fields for a new question.
type CreateQuestionInput struct {
	Text       string
	Category   string
	Priority   QuestionPriority
	OrderIndex int
}

// QuestionUpdate is a partial update; nil fields are left unchanged.
// Saving a non-empty Answer marks the question answered and stamps
// AnsweredAt; saving an empty Answer clears the answer state.
type QuestionUpdate struct {
	Text       *string
	Answer     *string
	Category   *string
	Priority   *QuestionPriority
	OrderIndex *int
	AnsweredBy *string
}
