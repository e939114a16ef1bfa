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


// Package storage provides the storage abstraction layer for the nursery
// visit tracker.
//
// This package defines repository interfaces that decouple storage
// implementation from business logic, plus the JSON codec for the
// persisted documents. It allows for different storage backends (BadgerDB,
// in-memory, etc.) to be used interchangeably.
//
// # Constructor Return Type Pattern
//
// This package follows a strict "return interface" pattern for all public
// constructors to enforce abstraction and enable multiple storage backend
// implementations:
//
//	repo := badger.NewNurseryRepository(backend)  // returns storage.NurseryRepository
//
// # Architecture
//
// The storage layer follows the Repository pattern over a whole-document
// model: each repository round-trips a single JSON document through the
// backend on every operation. There is no cache and no partial-key update
// primitive.
//
//   - NurseryRepository: CRUD over the nursery → visit session → question graph
//   - ConsentRepository: the independent analytics consent record
//
// # Document Codec
//
// NurseryDocument is an insertion-ordered id → Nursery mapping. Its JSON
// form is a plain object, and decode preserves the stored key order so
// listing operations are stable. Date fields travel as RFC 3339 strings;
// unknown fields pass through unchanged (see the core package codec).
//
// # Context Support
//
// All repository methods accept context.Context for API uniformity with
// future backends; the BadgerDB implementation completes synchronously.
package storage
