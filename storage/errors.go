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

import "errors"

var (
	// ErrReadFailed indicates stored data could not be read or decoded.
	// The message is shown to the user as-is by the UI layer.
	ErrReadFailed = errors.New("データの読み込みに失敗しました")

	// ErrWriteFailed indicates the underlying storage rejected a write
	// (capacity, permission, or any other backend failure). The in-memory
	// state being written is left unpersisted but not corrupted.
	ErrWriteFailed = errors.New("データの保存に失敗しました")

	// ErrNurseryNotFound indicates the target nursery id does not exist.
	ErrNurseryNotFound = errors.New("nursery not found")

	// ErrSessionNotFound indicates the target visit session id does not
	// exist under any nursery.
	ErrSessionNotFound = errors.New("visit session not found")

	// ErrQuestionNotFound indicates the target question id does not exist
	// under the given nursery and session.
	ErrQuestionNotFound = errors.New("question not found")

	// ErrStorageClosed indicates the storage backend is closed.
	ErrStorageClosed = errors.New("storage is closed")
)
