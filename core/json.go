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

import "encoding/json"

// Stored documents may have been written by older or newer application
// versions, so decoding must not drop fields it does not recognize. Each
// entity registers its schema fields here; anything else read from storage
// lands in the entity's Extra map and is written back verbatim on encode.
// A new Date-bearing field therefore requires an explicit registration in
// both the struct and its field set before it is revived as time.Time.

var nurseryFields = fieldSet(
	"id", "name", "address", "phoneNumber", "website", "notes",
	"visitSessions", "createdAt", "updatedAt",
)

var visitSessionFields = fieldSet(
	"id", "visitDate", "status", "notes", "questions", "insights",
	"createdAt", "updatedAt",
)

var questionFields = fieldSet(
	"id", "text", "answer", "isAnswered", "category", "priority",
	"orderIndex", "answeredAt", "answeredBy", "createdAt", "updatedAt",
)

var privacySettingsFields = fieldSet(
	"googleAnalytics", "microsoftClarity", "consentTimestamp", "consentVersion",
)

func fieldSet(names ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(names))
	for _, name := range names {
		set[name] = struct{}{}
	}
	return set
}

// splitExtra returns the object keys in data that are not schema fields.
// Returns nil when every key is known.
func splitExtra(data []byte, known map[string]struct{}) (map[string]json.RawMessage, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	for key := range raw {
		if _, ok := known[key]; ok {
			delete(raw, key)
		}
	}
	if len(raw) == 0 {
		return nil, nil
	}
	return raw, nil
}

// mergeExtra folds preserved unknown fields back into an encoded object.
// Schema fields always win on key collision.
func mergeExtra(data []byte, extra map[string]json.RawMessage) ([]byte, error) {
	if len(extra) == 0 {
		return data, nil
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	for key, value := range extra {
		if _, ok := raw[key]; !ok {
			raw[key] = value
		}
	}
	return json.Marshal(raw)
}

type nurseryAlias Nursery

func (n *Nursery) UnmarshalJSON(data []byte) error {
	var a nurseryAlias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	extra, err := splitExtra(data, nurseryFields)
	if err != nil {
		return err
	}
	a.Extra = extra
	if a.VisitSessions == nil {
		a.VisitSessions = []VisitSession{}
	}
	*n = Nursery(a)
	return nil
}

func (n Nursery) MarshalJSON() ([]byte, error) {
	data, err := json.Marshal(nurseryAlias(n))
	if err != nil {
		return nil, err
	}
	return mergeExtra(data, n.Extra)
}

type visitSessionAlias VisitSession

func (s *VisitSession) UnmarshalJSON(data []byte) error {
	var a visitSessionAlias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	extra, err := splitExtra(data, visitSessionFields)
	if err != nil {
		return err
	}
	a.Extra = extra
	if a.Questions == nil {
		a.Questions = []Question{}
	}
	if a.Insights == nil {
		a.Insights = []string{}
	}
	*s = VisitSession(a)
	return nil
}

func (s VisitSession) MarshalJSON() ([]byte, error) {
	data, err := json.Marshal(visitSessionAlias(s))
	if err != nil {
		return nil, err
	}
	return mergeExtra(data, s.Extra)
}

type questionAlias Question

func (q *Question) UnmarshalJSON(data []byte) error {
	var a questionAlias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	extra, err := splitExtra(data, questionFields)
	if err != nil {
		return err
	}
	a.Extra = extra
	*q = Question(a)
	return nil
}

func (q Question) MarshalJSON() ([]byte, error) {
	data, err := json.Marshal(questionAlias(q))
	if err != nil {
		return nil, err
	}
	return mergeExtra(data, q.Extra)
}

type privacySettingsAlias PrivacySettings

func (p *PrivacySettings) UnmarshalJSON(data []byte) error {
	var a privacySettingsAlias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	extra, err := splitExtra(data, privacySettingsFields)
	if err != nil {
		return err
	}
	a.Extra = extra
	*p = PrivacySettings(a)
	return nil
}

func (p PrivacySettings) MarshalJSON() ([]byte, error) {
	data, err := json.Marshal(privacySettingsAlias(p))
	if err != nil {
		return nil, err
	}
	return mergeExtra(data, p.Extra)
}
