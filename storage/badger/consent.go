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

import (
	"context"
	"log/slog"
	"time"

	"github.com/chiilog/nursery-visits/core"
	"github.com/chiilog/nursery-visits/storage"
)

// ConsentRepository implements storage.ConsentRepository. Unlike the
// nursery store it absorbs every decode failure into defaults: consent
// gating must degrade to re-asking, never block the application.
type ConsentRepository struct {
	backend *Backend
	logger  *slog.Logger
}

var _ storage.ConsentRepository = (*ConsentRepository)(nil)

// NewConsentRepository creates a new ConsentRepository.
func NewConsentRepository(backend *Backend) storage.ConsentRepository {
	return &ConsentRepository{
		backend: backend,
		logger:  slog.Default(),
	}
}

// Close releases repository resources. The backend is owned by the caller
// and stays open.
func (r *ConsentRepository) Close() error {
	return nil
}

// LoadSettings retrieves the stored privacy settings, falling back to
// defaults when the record is missing, unreadable, or wrong-shaped.
func (r *ConsentRepository) LoadSettings(ctx context.Context) (*core.PrivacySettings, error) {
	settings, _ := r.loadStored()
	if settings == nil {
		return core.DefaultPrivacySettings(), nil
	}
	return settings, nil
}

// SaveSettings persists the privacy settings, stamping the timestamp and
// version when unset.
func (r *ConsentRepository) SaveSettings(ctx context.Context, settings *core.PrivacySettings) error {
	if settings.ConsentTimestamp.IsZero() {
		settings.ConsentTimestamp = time.Now().UTC()
	}
	if settings.ConsentVersion == "" {
		settings.ConsentVersion = core.CurrentConsentVersion
	}
	data, err := storage.EncodePrivacySettings(settings)
	if err != nil {
		return err
	}
	return r.backend.WriteDocument(privacySettingsKey, data)
}

// IsConsentValid reports whether a readable consent record exists and is
// younger than one calendar year. The threshold is a calendar-year
// increment, not a fixed number of seconds, and the boundary is
// exclusive: a record saved exactly one year ago must be re-asked.
func (r *ConsentRepository) IsConsentValid(ctx context.Context) (bool, error) {
	settings, stored := r.loadStored()
	if !stored || settings == nil {
		return false, nil
	}
	return time.Now().Before(settings.ConsentTimestamp.AddDate(1, 0, 0)), nil
}

// ClearSettings removes the stored consent record.
func (r *ConsentRepository) ClearSettings(ctx context.Context) error {
	return r.backend.DeleteDocument(privacySettingsKey)
}

// LegacyConsent returns the legacy consent flag, or "" when unset.
func (r *ConsentRepository) LegacyConsent(ctx context.Context) (string, error) {
	data, err := r.backend.ReadDocument(cookieConsentKey)
	if err != nil {
		r.logger.Warn("legacy consent unreadable, treating as unset", "err", err)
		return "", nil
	}
	return string(data), nil
}

// SetLegacyConsent stores the legacy consent flag as a literal string.
func (r *ConsentRepository) SetLegacyConsent(ctx context.Context, value string) error {
	if err := core.ValidateLegacyConsent(value); err != nil {
		return err
	}
	return r.backend.WriteDocument(cookieConsentKey, []byte(value))
}

// loadStored reads and decodes the consent record. The bool result is
// false when no usable record exists; decode failures are logged and
// absorbed, never returned.
func (r *ConsentRepository) loadStored() (*core.PrivacySettings, bool) {
	data, err := r.backend.ReadDocument(privacySettingsKey)
	if err != nil {
		r.logger.Warn("consent record unreadable, using defaults", "err", err)
		return nil, false
	}
	if len(data) == 0 {
		return nil, false
	}
	settings, err := storage.DecodePrivacySettings(data)
	if err != nil {
		r.logger.Warn("consent record corrupt, using defaults", "err", err)
		return nil, false
	}
	// A record without a timestamp or version was not written by this
	// application; treat it as absent.
	if settings.ConsentTimestamp.IsZero() || settings.ConsentVersion == "" {
		return nil, false
	}
	return settings, true
}
