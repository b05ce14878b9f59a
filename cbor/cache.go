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

package cbor

import (
	"bytes"
)

// DecodeStoreCborInterface is implemented by types that keep their original CBOR
type DecodeStoreCborInterface interface {
	Cbor() []byte
}

// CborCacher is implemented by types whose encoding replays cached bytes
// until the cache is cleared
type CborCacher interface {
	Cbor() []byte
	ClearCborCache()
}

// DecodeStoreCbor keeps the exact bytes an object was decoded from. Embed it
// in types whose encoding must survive a decode/encode round trip unchanged,
// such as anything covered by a signature or hash.
type DecodeStoreCbor struct {
	cborData []byte
}

// SetCbor stores a copy of the original CBOR for the object. A nil or empty
// argument clears it.
func (d *DecodeStoreCbor) SetCbor(cborData []byte) {
	if len(cborData) == 0 {
		d.cborData = nil
		return
	}
	d.cborData = bytes.Clone(cborData)
}

// Cbor returns the original CBOR for the object
func (d *DecodeStoreCbor) Cbor() []byte {
	return d.cborData
}

// HasCbor reports whether original CBOR is stored
func (d *DecodeStoreCbor) HasCbor() bool {
	return len(d.cborData) > 0
}

// ClearCborCache drops the stored CBOR so that the next encoding is built
// from the current field values
func (d *DecodeStoreCbor) ClearCborCache() {
	d.cborData = nil
}

// CaptureCbor runs fn against r and stores the bytes it consumed
func (d *DecodeStoreCbor) CaptureCbor(r *Reader, fn func(*Reader) error) error {
	data, err := r.ReadCaptured(fn)
	if err != nil {
		return err
	}
	d.cborData = data
	return nil
}

// UnmarshalCborGeneric decodes the specified CBOR into the destination object without using the
// destination object's UnmarshalCBOR() function, and stores the original CBOR
func (d *DecodeStoreCbor) UnmarshalCborGeneric(cborData []byte, dest DecodeStoreCborInterface) error {
	if err := DecodeGeneric(cborData, dest); err != nil {
		return err
	}
	// This must be done after DecodeGeneric, which copies over the embedding struct
	d.SetCbor(cborData)
	return nil
}

// WriteCachedOr writes the cached encoding of c when there is one and runs
// encode otherwise
func WriteCachedOr(w *Writer, c CborCacher, encode func(*Writer) error) error {
	if data := c.Cbor(); len(data) > 0 {
		return w.WriteEncoded(data)
	}
	return encode(w)
}
