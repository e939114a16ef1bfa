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
	"strings"

	"golang.org/x/text/width"
)

// normalize lowercases text and folds width variants so that full-width
// romaji and half-width katakana compare equal to their canonical forms.
func normalize(text string) string {
	return strings.ToLower(width.Fold.String(text))
}

// queryTerms splits a query into normalized whitespace-separated terms.
func queryTerms(query string) []string {
	fields := strings.Fields(query)
	terms := make([]string, 0, len(fields))
	for _, field := range fields {
		if term := normalize(field); term != "" {
			terms = append(terms, term)
		}
	}
	return terms
}

// containsAllTerms checks if every query term appears in the document.
// The document must already be normalized. Substring containment is used
// instead of word tokenization because Japanese text has no word breaks.
func containsAllTerms(document string, terms []string) bool {
	if len(terms) == 0 {
		return false
	}
	for _, term := range terms {
		if !strings.Contains(document, term) {
			return false
		}
	}
	return true
}
