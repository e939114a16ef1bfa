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
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNurseryJSON_RoundTrip(t *testing.T) {
	now := time.Now().UTC().Truncate(time.Second)
	visitDate := now.AddDate(0, 0, 7)

	original := Nursery{
		ID:      NewNurseryID(),
		Name:    "さくら保育園",
		Address: "東京都世田谷区桜1-2-3",
		VisitSessions: []VisitSession{
			{
				ID:        NewSessionID(),
				VisitDate: &visitDate,
				Status:    SessionStatusPlanned,
				Questions: []Question{
					{
						ID:         NewQuestionID(),
						Text:       "延長保育はありますか？",
						Answer:     "19時まで",
						IsAnswered: true,
						AnsweredAt: &now,
						CreatedAt:  now,
						UpdatedAt:  now,
					},
				},
				Insights:  []string{"園庭が広い"},
				CreatedAt: now,
				UpdatedAt: now,
			},
		},
		CreatedAt: now,
		UpdatedAt: now,
	}

	data, err := json.Marshal(original)
	require.NoError(t, err)

	var decoded Nursery
	require.NoError(t, json.Unmarshal(data, &decoded))

	assert.Equal(t, original, decoded)
	require.Len(t, decoded.VisitSessions, 1)
	require.NotNil(t, decoded.VisitSessions[0].VisitDate)
	assert.True(t, decoded.VisitSessions[0].VisitDate.Equal(visitDate))
}

func TestNurseryJSON_UnknownFieldsPassThrough(t *testing.T) {
	stored := `{
		"id": "nursery-1",
		"name": "さくら保育園",
		"starRating": 5,
		"visitSessions": [
			{"id": "session-1", "status": "planned", "visitDate": null, "mapPin": {"lat": 35.6}, "createdAt": "2025-01-15T09:00:00Z", "updatedAt": "2025-01-15T09:00:00Z"}
		],
		"createdAt": "2025-01-15T09:00:00Z",
		"updatedAt": "2025-01-15T09:00:00Z"
	}`

	var nursery Nursery
	require.NoError(t, json.Unmarshal([]byte(stored), &nursery))

	require.Contains(t, nursery.Extra, "starRating")
	require.Len(t, nursery.VisitSessions, 1)
	require.Contains(t, nursery.VisitSessions[0].Extra, "mapPin")

	// Re-encoding keeps the unknown fields.
	data, err := json.Marshal(nursery)
	require.NoError(t, err)

	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Contains(t, raw, "starRating")
	assert.JSONEq(t, `5`, string(raw["starRating"]))
}

func TestNurseryJSON_MissingCollectionsDefaultEmpty(t *testing.T) {
	stored := `{"id": "nursery-1", "name": "たんぽぽ保育園", "createdAt": "2025-01-15T09:00:00Z", "updatedAt": "2025-01-15T09:00:00Z"}`

	var nursery Nursery
	require.NoError(t, json.Unmarshal([]byte(stored), &nursery))

	assert.NotNil(t, nursery.VisitSessions)
	assert.Empty(t, nursery.VisitSessions)
	assert.Nil(t, nursery.Extra)
}

func TestVisitSessionJSON_MissingCollectionsDefaultEmpty(t *testing.T) {
	stored := `{"id": "session-1", "status": "completed", "visitDate": null, "createdAt": "2025-01-15T09:00:00Z", "updatedAt": "2025-01-15T09:00:00Z"}`

	var session VisitSession
	require.NoError(t, json.Unmarshal([]byte(stored), &session))

	assert.NotNil(t, session.Questions)
	assert.Empty(t, session.Questions)
	assert.NotNil(t, session.Insights)
	assert.Empty(t, session.Insights)
	assert.Nil(t, session.VisitDate)
}

func TestPrivacySettingsJSON_RoundTrip(t *testing.T) {
	now := time.Now().UTC().Truncate(time.Second)
	original := PrivacySettings{
		GoogleAnalytics:  true,
		MicrosoftClarity: false,
		ConsentTimestamp: now,
		ConsentVersion:   CurrentConsentVersion,
	}

	data, err := json.Marshal(original)
	require.NoError(t, err)

	var decoded PrivacySettings
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, original, decoded)
}
