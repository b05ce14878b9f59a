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

// Package gocardano is the core of a Cardano client library: a streaming
// CBOR reader and writer with cached-encoding support, an arbitrary-precision
// integer type, a growable byte buffer and byte-order primitives.
//
// # Package layout
//
//   - endian: fixed-width integer and float conversion in explicit byte order
//   - buffer: growable, reference-counted byte buffer with a read cursor
//   - bigint: arbitrary-precision signed integers
//   - cbor: Reader, Writer and the DecodeStoreCbor cached-encoding helper
//   - ledger/common: ledger entities built on the codec (Redeemer, PlutusData, Value)
//   - provider: the interface network backends implement
//
// This package itself only holds the error kinds shared by the others. Every
// error returned from this module wraps one of them, so use errors.Is:
//
//	if errors.Is(err, gocardano.ErrInsufficientBufferSize) {
//	    // grow the output and retry
//	}
package gocardano

// Version of the library
const Version = "0.1.0"
