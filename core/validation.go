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
	"fmt"
	"unicode/utf8"
)

// MaxNurseryNameLength is the maximum nursery name length in runes.
const MaxNurseryNameLength = 100

// ValidateNursery validates a Nursery according to domain rules.
//
// Validation rules:
//   - Name must not be empty and must be at most MaxNurseryNameLength runes
//   - every owned VisitSession must be valid
//
// The repository itself does not call this: form input is validated before
// it reaches the store. Import paths and the CLI validate explicitly.
func ValidateNursery(nursery *Nursery) error {
	if nursery == nil {
		return fmt.Errorf("%w: nursery is nil", ErrInvalidNursery)
	}

	if nursery.Name == "" {
		return fmt.Errorf("%w: %w", ErrInvalidNursery, ErrEmptyName)
	}

	if utf8.RuneCountInString(nursery.Name) > MaxNurseryNameLength {
		return fmt.Errorf("%w: %w", ErrInvalidNursery, ErrNameTooLong)
	}

	for i := range nursery.VisitSessions {
		if err := ValidateVisitSession(&nursery.VisitSessions[i]); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidNursery, err)
		}
	}

	return nil
}

// ValidateVisitSession validates a VisitSession according to domain rules.
//
// Validation rules:
//   - Status must be a known SessionStatus
//   - every owned Question must be valid
func ValidateVisitSession(session *VisitSession) error {
	if session == nil {
		return fmt.Errorf("%w: session is nil", ErrInvalidVisitSession)
	}

	if err := ValidateSessionStatus(session.Status); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidVisitSession, err)
	}

	for i := range session.Questions {
		if err := ValidateQuestion(&session.Questions[i]); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidVisitSession, err)
		}
	}

	return nil
}

// ValidateQuestion validates a Question according to domain rules.
//
// Validation rules:
//   - Text must not be empty
//
// NOT validated: Answer and the answered metadata (derived by the store).
func ValidateQuestion(question *Question) error {
	if question == nil {
		return fmt.Errorf("%w: question is nil", ErrInvalidQuestion)
	}

	if question.Text == "" {
		return fmt.Errorf("%w: %w", ErrInvalidQuestion, ErrEmptyQuestionText)
	}

	return nil
}

// ValidateSessionStatus validates that a SessionStatus has a known value.
func ValidateSessionStatus(status SessionStatus) error {
	switch status {
	case SessionStatusPlanned, SessionStatusCompleted, SessionStatusCancelled:
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrInvalidSessionStatus, status)
	}
}

// ValidateLegacyConsent validates a legacy cookie-consent flag value.
func ValidateLegacyConsent(value string) error {
	switch value {
	case ConsentAccepted, ConsentDeclined:
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrInvalidConsentValue, value)
	}
}
