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

// DefaultMaxDepth matches the nesting limit of the package decode mode
const DefaultMaxDepth = 256

// ReaderOptionFunc is a type that represents functions that modify the Reader config
type ReaderOptionFunc func(*Reader)

// WithMaxDepth limits how deeply arrays and maps may nest. Starting a
// container beyond the limit fails with ErrInvalidCborValue.
func WithMaxDepth(depth int) ReaderOptionFunc {
	return func(r *Reader) {
		if depth > 0 {
			r.maxDepth = depth
		}
	}
}

// WithStrictCanonical makes the Reader reject heads whose argument is not
// encoded in the shortest form, along with indefinite-length items. The same
// rules apply to nested content consumed by SkipValue and ReadEncodedValue.
func WithStrictCanonical(strict bool) ReaderOptionFunc {
	return func(r *Reader) {
		r.strict = strict
	}
}

// WriterOptionFunc is a type that represents functions that modify the Writer config
type WriterOptionFunc func(*Writer)

// WithInitialCapacity sets the initial size of the Writer output buffer
func WithInitialCapacity(capacity int) WriterOptionFunc {
	return func(w *Writer) {
		w.initialCapacity = capacity
	}
}

// WithWriterMaxDepth limits how deeply the Writer lets containers nest
func WithWriterMaxDepth(depth int) WriterOptionFunc {
	return func(w *Writer) {
		if depth > 0 {
			w.maxDepth = depth
		}
	}
}
