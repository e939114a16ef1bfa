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

import (
	"encoding/hex"

	"github.com/go-crypt/x/blake2b"
)

// checksumSize is the BLAKE2b digest size in bytes.
const checksumSize = 8

// payloadChecksum returns the hex BLAKE2b digest of an archive payload.
func payloadChecksum(payload []byte) string {
	h, _ := blake2b.New(checksumSize, nil)
	h.Write(payload)
	return hex.EncodeToString(h.Sum(nil))
}
