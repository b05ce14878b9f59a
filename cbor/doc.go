// Copyright 2026 Blink Labs Software
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

// Package cbor encodes and decodes CBOR (RFC 8949) for Cardano data
// structures.
//
// Reader and Writer work one token at a time. A Reader tracks open arrays
// and maps so that it can report the end of a container, reject reads past
// its last item and verify the break of indefinite-length items. A Writer
// counts the items given to each definite-length container and refuses to
// produce output while a container is still open. Failures on both sides
// leave the position unchanged and wrap the error kinds of the root package.
//
// Struct encoding goes through github.com/fxamacker/cbor/v2 via Encode and
// Decode. Embed StructAsArray to encode a struct as an array.
//
// # Cached encodings
//
// Types covered by a hash or signature embed DecodeStoreCbor and keep the
// exact bytes they were decoded from:
//
//	func (e *Entity) UnmarshalCBOR(data []byte) error {
//		r := cbor.NewReader(data)
//		return e.CaptureCbor(r, e.readFields)
//	}
//
//	func (e *Entity) MarshalCBOR() ([]byte, error) {
//		w := cbor.NewWriter()
//		if err := cbor.WriteCachedOr(w, e, e.writeFields); err != nil {
//			return nil, err
//		}
//		return w.Encode()
//	}
//
// Setters must call ClearCborCache so that the next encoding reflects the
// new field values.
//
// # Constructors
//
// Plutus constructor alternatives map to tags 121-127, 1280-1400 and the
// general form 102 [alternative, fields]. See AlternativeToTag and
// ReadConstructorTag.
package cbor
