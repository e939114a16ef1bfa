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


package badger

// Document keys. Each store owns exactly one key; the keys are the only
// shared resources between repositories.
const (
	// nurseriesKey holds the whole nursery document (JSON object, id → Nursery).
	nurseriesKey = "nurseries"

	// privacySettingsKey holds the consent record (single JSON object).
	privacySettingsKey = "privacySettings"

	// cookieConsentKey holds the legacy consent flag as a literal string
	// ("accepted" / "declined"), not JSON.
	cookieConsentKey = "cookie-consent"
)
