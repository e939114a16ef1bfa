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

import "github.com/google/uuid"

// Entity id prefixes. A full id is "<prefix>-<uuid>".
const (
	NurseryIDPrefix  = "nursery"
	SessionIDPrefix  = "session"
	QuestionIDPrefix = "question"
)

// NewID returns a random version-4 UUID string. Collision resistance comes
// from the 122 random bits; uniqueness is never checked against the store.
// Panics if the platform's secure random source is unavailable.
func NewID() string {
	return uuid.NewString()
}

// NewPrefixedID returns "<prefix>-<uuid>". The prefix is used verbatim;
// no validation is performed.
func NewPrefixedID(prefix string) string {
	return prefix + "-" + NewID()
}

// NewNurseryID returns a fresh nursery id.
func NewNurseryID() string {
	return NewPrefixedID(NurseryIDPrefix)
}

// NewSessionID returns a fresh visit session id.
func NewSessionID() string {
	return NewPrefixedID(SessionIDPrefix)
}

// NewQuestionID returns a fresh question id.
func NewQuestionID() string {
	return NewPrefixedID(QuestionIDPrefix)
}
