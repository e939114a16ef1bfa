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

import "github.com/chiilog/nursery-visits/storage"

// NewMemoryStores creates in-memory nursery and consent repositories for
// testing. Returns nurseryRepo, consentRepo, backend, and error.
// Caller must close both repos and the backend when done.
func NewMemoryStores() (storage.NurseryRepository, storage.ConsentRepository, *Backend, error) {
	backend, err := OpenBackend("", true)
	if err != nil {
		return nil, nil, nil, err
	}

	nurseryRepo := NewNurseryRepository(backend)
	consentRepo := NewConsentRepository(backend)

	return nurseryRepo, consentRepo, backend, nil
}
