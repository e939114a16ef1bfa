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


package archive

import "errors"

var (
	// ErrRepositoryRequired is returned when a nursery repository is not provided.
	ErrRepositoryRequired = errors.New("nursery repository required")

	// ErrUnsupportedVersion is returned for an archive format version this
	// build does not understand.
	ErrUnsupportedVersion = errors.New("unsupported archive version")

	// ErrChecksumMismatch is returned when the archive payload does not
	// match its recorded checksum.
	ErrChecksumMismatch = errors.New("archive checksum mismatch")
)
