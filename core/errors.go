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

import "errors"

// Domain validation errors
var (
	// ErrInvalidNursery indicates a Nursery failed validation.
	ErrInvalidNursery = errors.New("invalid nursery")

	// ErrInvalidVisitSession indicates a VisitSession failed validation.
	ErrInvalidVisitSession = errors.New("invalid visit session")

	// ErrInvalidQuestion indicates a Question failed validation.
	ErrInvalidQuestion = errors.New("invalid question")

	// ErrEmptyName indicates the nursery Name field is empty.
	ErrEmptyName = errors.New("name cannot be empty")

	// ErrNameTooLong indicates the nursery Name exceeds MaxNurseryNameLength.
	ErrNameTooLong = errors.New("name is too long")

	// ErrInvalidSessionStatus indicates an unknown SessionStatus value.
	ErrInvalidSessionStatus = errors.New("invalid session status")

	// ErrEmptyQuestionText indicates the question Text field is empty.
	ErrEmptyQuestionText = errors.New("question text cannot be empty")

	// ErrInvalidConsentValue indicates a legacy consent flag that is neither
	// accepted nor declined.
	ErrInvalidConsentValue = errors.New("invalid consent value")
)
