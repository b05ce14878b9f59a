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

// Package buffer provides a growable byte buffer with a read cursor. It backs
// the CBOR writer and is shared between owners through reference counting.
package buffer

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"io"
	"math"

	"github.com/blinklabs-io/gocardano"
	"github.com/blinklabs-io/gocardano/internal/refcount"
)

const (
	// DefaultCapacity is used when a buffer is created with zero capacity
	DefaultCapacity = 64

	// MaxCapacity bounds growth. Requests beyond it fail with ErrMemoryAllocationFailed.
	MaxCapacity int = min(1<<32, math.MaxInt)
)

// Buffer owns a contiguous byte region. size <= capacity and head <= size
// hold at all times.
//
// Any write may reallocate the storage, so slices obtained from Bytes must be
// re-fetched after writing.
type Buffer struct {
	refcount.Counter
	data     []byte
	head     int
	released bool
}

// New returns an empty buffer with the given initial capacity
func New(capacity int) (*Buffer, error) {
	if capacity < 0 || capacity > MaxCapacity {
		return nil, fmt.Errorf(
			"%w: cannot allocate buffer with capacity %d",
			gocardano.ErrMemoryAllocationFailed,
			capacity,
		)
	}
	if capacity == 0 {
		capacity = DefaultCapacity
	}
	return &Buffer{
		data: make([]byte, 0, capacity),
	}, nil
}

// NewFromBytes returns a buffer holding a copy of data
func NewFromBytes(data []byte) *Buffer {
	capacity := len(data)
	if capacity == 0 {
		capacity = DefaultCapacity
	}
	b := &Buffer{
		data: make([]byte, len(data), capacity),
	}
	copy(b.data, data)
	return b
}

// NewFromHex returns a buffer holding the decoded bytes of a hex string
func NewFromHex(hexData string) (*Buffer, error) {
	data, err := hex.DecodeString(hexData)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", gocardano.ErrInvalidArgument, err)
	}
	return NewFromBytes(data), nil
}

func (b *Buffer) live() error {
	if b == nil || b.released {
		return fmt.Errorf("%w: buffer has been released", gocardano.ErrPointerIsNull)
	}
	return nil
}

// Unref drops a reference. The storage is released with the last one, after
// which every operation fails with ErrPointerIsNull.
func (b *Buffer) Unref() {
	if b == nil {
		return
	}
	if b.Counter.Unref() {
		b.data = nil
		b.head = 0
		b.released = true
	}
}

// RefCount returns the number of outstanding references
func (b *Buffer) RefCount() int64 {
	if b == nil {
		return 0
	}
	return b.Count()
}

// grow makes room for n more bytes, doubling capacity until it fits
func (b *Buffer) grow(n int) error {
	need := len(b.data) + n
	if need < len(b.data) || need > MaxCapacity {
		return fmt.Errorf(
			"%w: buffer cannot grow to %d bytes",
			gocardano.ErrMemoryAllocationFailed,
			need,
		)
	}
	if cap(b.data) >= need {
		return nil
	}
	c := cap(b.data)
	if c == 0 {
		c = DefaultCapacity
	}
	for c < need {
		if c > MaxCapacity/2 {
			c = MaxCapacity
			break
		}
		c <<= 1
	}
	nb := make([]byte, len(b.data), c)
	copy(nb, b.data)
	b.data = nb
	return nil
}

// Write appends p to the buffer. It implements io.Writer.
func (b *Buffer) Write(p []byte) (int, error) {
	if err := b.live(); err != nil {
		return 0, err
	}
	if err := b.grow(len(p)); err != nil {
		return 0, err
	}
	b.data = append(b.data, p...)
	return len(p), nil
}

// WriteByte appends a single byte
func (b *Buffer) WriteByte(c byte) error {
	if err := b.live(); err != nil {
		return err
	}
	if err := b.grow(1); err != nil {
		return err
	}
	b.data = append(b.data, c)
	return nil
}

// WriteString appends the bytes of s
func (b *Buffer) WriteString(s string) (int, error) {
	return b.Write([]byte(s))
}

// extend grows the buffer by n bytes and returns the new region
func (b *Buffer) extend(n int) ([]byte, error) {
	if err := b.live(); err != nil {
		return nil, err
	}
	if err := b.grow(n); err != nil {
		return nil, err
	}
	old := len(b.data)
	b.data = b.data[:old+n]
	return b.data[old:], nil
}

// ReadExact copies len(out) bytes from the read cursor into out and advances
// the cursor. Reading up to and including the last byte is allowed.
func (b *Buffer) ReadExact(out []byte) error {
	if err := b.live(); err != nil {
		return err
	}
	if len(out) > len(b.data)-b.head {
		return fmt.Errorf(
			"%w: cannot read %d bytes at position %d of %d",
			gocardano.ErrOutOfBoundsMemoryRead,
			len(out),
			b.head,
			len(b.data),
		)
	}
	copy(out, b.data[b.head:])
	b.head += len(out)
	return nil
}

// Read implements io.Reader. Unlike ReadExact it allows short reads.
func (b *Buffer) Read(p []byte) (int, error) {
	if err := b.live(); err != nil {
		return 0, err
	}
	if b.head >= len(b.data) {
		if len(p) == 0 {
			return 0, nil
		}
		return 0, io.EOF
	}
	n := copy(p, b.data[b.head:])
	b.head += n
	return n, nil
}

// Bytes returns the written bytes. The slice aliases the buffer storage and
// is only valid until the next write.
func (b *Buffer) Bytes() []byte {
	if b == nil {
		return nil
	}
	return b.data
}

// CopyBytes returns a copy of the written bytes
func (b *Buffer) CopyBytes() []byte {
	if b == nil || b.data == nil {
		return nil
	}
	return bytes.Clone(b.data)
}

// Size returns the number of bytes written
func (b *Buffer) Size() int {
	if b == nil {
		return 0
	}
	return len(b.data)
}

// Capacity returns the currently allocated capacity
func (b *Buffer) Capacity() int {
	if b == nil {
		return 0
	}
	return cap(b.data)
}

// Head returns the read cursor position
func (b *Buffer) Head() int {
	if b == nil {
		return 0
	}
	return b.head
}

// Remaining returns the number of unread bytes
func (b *Buffer) Remaining() int {
	if b == nil {
		return 0
	}
	return len(b.data) - b.head
}

// Seek moves the read cursor to an absolute position
func (b *Buffer) Seek(pos int) error {
	if err := b.live(); err != nil {
		return err
	}
	if pos < 0 || pos > len(b.data) {
		return fmt.Errorf(
			"%w: seek to %d in buffer of %d bytes",
			gocardano.ErrOutOfBoundsMemoryRead,
			pos,
			len(b.data),
		)
	}
	b.head = pos
	return nil
}

// Reset empties the buffer and rewinds the cursor, keeping the allocation
func (b *Buffer) Reset() {
	if b == nil || b.released {
		return
	}
	b.data = b.data[:0]
	b.head = 0
}

// Slice returns a new buffer holding a copy of [start, end)
func (b *Buffer) Slice(start int, end int) (*Buffer, error) {
	if err := b.live(); err != nil {
		return nil, err
	}
	if start >= end {
		return nil, fmt.Errorf(
			"%w: slice start %d must be less than end %d",
			gocardano.ErrInvalidArgument,
			start,
			end,
		)
	}
	if start < 0 || end > len(b.data) {
		return nil, fmt.Errorf(
			"%w: slice [%d:%d) of buffer with %d bytes",
			gocardano.ErrOutOfBoundsMemoryRead,
			start,
			end,
			len(b.data),
		)
	}
	return NewFromBytes(b.data[start:end]), nil
}

// Concat returns a new buffer holding the bytes of lhs followed by rhs.
// Neither input is aliased.
func Concat(lhs *Buffer, rhs *Buffer) (*Buffer, error) {
	if err := lhs.live(); err != nil {
		return nil, err
	}
	if err := rhs.live(); err != nil {
		return nil, err
	}
	ret, err := New(lhs.Size() + rhs.Size())
	if err != nil {
		return nil, err
	}
	ret.data = append(ret.data, lhs.data...)
	ret.data = append(ret.data, rhs.data...)
	return ret, nil
}

// Hex returns the written bytes as a lowercase hex string
func (b *Buffer) Hex() string {
	if b == nil {
		return ""
	}
	return hex.EncodeToString(b.data)
}

// String implements fmt.Stringer
func (b *Buffer) String() string {
	return b.Hex()
}

// Equal reports whether both buffers hold the same bytes
func (b *Buffer) Equal(other *Buffer) bool {
	return bytes.Equal(b.Bytes(), other.Bytes())
}

// Compare compares the written bytes lexicographically
func (b *Buffer) Compare(other *Buffer) int {
	return bytes.Compare(b.Bytes(), other.Bytes())
}
