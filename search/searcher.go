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


package search

import (
	"context"
	"log/slog"

	"github.com/chiilog/nursery-visits/core"
	"github.com/chiilog/nursery-visits/storage"
)

// MatchKind identifies which entity a match was found on.
type MatchKind string

const (
	MatchNursery  MatchKind = "nursery"
	MatchSession  MatchKind = "session"
	MatchQuestion MatchKind = "question"
	MatchInsight  MatchKind = "insight"
)

// Match is a single search hit. Nursery is always set; Session and
// Question are set when the hit is on a nested entity. Value is the
// original (unnormalized) text that matched.
type Match struct {
	Kind     MatchKind
	Nursery  *core.Nursery
	Session  *core.VisitSession
	Question *core.Question
	Field    string
	Value    string
}

// Searcher performs free-text lookup over a nursery repository.
type Searcher struct {
	repository storage.NurseryRepository
	logger     *slog.Logger
}

// Option configures a Searcher.
type Option func(*Searcher) error

// WithLogger sets a custom logger. Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Searcher) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
		return nil
	}
}

// NewSearcher creates a new searcher.
func NewSearcher(repository storage.NurseryRepository, opts ...Option) (*Searcher, error) {
	if repository == nil {
		return nil, ErrRepositoryRequired
	}

	s := &Searcher{
		repository: repository,
		logger:     slog.Default(),
	}

	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// Search returns up to maxHits matches for the query in document order.
// maxHits <= 0 means no limit.
func (s *Searcher) Search(ctx context.Context, query string, maxHits int) ([]*Match, error) {
	terms := queryTerms(query)
	if len(terms) == 0 {
		return nil, ErrEmptyQuery
	}

	nurseries, err := s.repository.GetAllNurseries(ctx)
	if err != nil {
		return nil, err
	}

	matches := []*Match{}
	add := func(m *Match) bool {
		matches = append(matches, m)
		return maxHits > 0 && len(matches) >= maxHits
	}

	for _, nursery := range nurseries {
		for _, candidate := range []struct {
			field string
			value string
		}{
			{"name", nursery.Name},
			{"address", nursery.Address},
			{"notes", nursery.Notes},
		} {
			if containsAllTerms(normalize(candidate.value), terms) {
				if add(&Match{Kind: MatchNursery, Nursery: nursery, Field: candidate.field, Value: candidate.value}) {
					return matches, nil
				}
			}
		}

		for i := range nursery.VisitSessions {
			session := &nursery.VisitSessions[i]
			if containsAllTerms(normalize(session.Notes), terms) {
				if add(&Match{Kind: MatchSession, Nursery: nursery, Session: session, Field: "notes", Value: session.Notes}) {
					return matches, nil
				}
			}
			for _, insight := range session.Insights {
				if containsAllTerms(normalize(insight), terms) {
					if add(&Match{Kind: MatchInsight, Nursery: nursery, Session: session, Field: "insight", Value: insight}) {
						return matches, nil
					}
				}
			}
			for j := range session.Questions {
				question := &session.Questions[j]
				for _, candidate := range []struct {
					field string
					value string
				}{
					{"text", question.Text},
					{"answer", question.Answer},
				} {
					if containsAllTerms(normalize(candidate.value), terms) {
						if add(&Match{Kind: MatchQuestion, Nursery: nursery, Session: session, Question: question, Field: candidate.field, Value: candidate.value}) {
							return matches, nil
						}
					}
				}
			}
		}
	}

	s.logger.Debug("search finished", "terms", len(terms), "hits", len(matches))
	return matches, nil
}
