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


// Package search provides free-text lookup across the nursery data.
//
// The Searcher type walks every nursery, session, and question and matches
// each whitespace-separated query term as a substring of the candidate
// text. Matching is case-insensitive and folds full-width and half-width
// character forms, so ＡＢＣ matches abc — the data is predominantly
// Japanese and terms cannot be found by word tokenization alone.
package search
