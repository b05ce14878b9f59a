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

package buffer_test

import (
	"io"
	"math"
	"testing"

	"github.com/blinklabs-io/gocardano"
	"github.com/blinklabs-io/gocardano/buffer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	b, err := buffer.New(16)
	require.NoError(t, err)
	assert.Equal(t, 0, b.Size())
	assert.Equal(t, 16, b.Capacity())
	assert.Equal(t, int64(1), b.RefCount())

	_, err = buffer.New(-1)
	assert.ErrorIs(t, err, gocardano.ErrMemoryAllocationFailed)
}

func TestMaxCapacity(t *testing.T) {
	assert.LessOrEqual(t, buffer.MaxCapacity, math.MaxInt)
	c := buffer.MaxCapacity
	if c == math.MaxInt {
		t.Skip("capacity limit is the platform int limit")
	}
	_, err := buffer.New(c + 1)
	assert.ErrorIs(t, err, gocardano.ErrMemoryAllocationFailed)
}

func TestGrowth(t *testing.T) {
	b, err := buffer.New(4)
	require.NoError(t, err)
	data := make([]byte, 37)
	for i := range data {
		data[i] = byte(i)
	}
	n, err := b.Write(data)
	require.NoError(t, err)
	assert.Equal(t, 37, n)
	assert.Equal(t, 37, b.Size())
	// 4 -> 8 -> 16 -> 32 -> 64
	assert.Equal(t, 64, b.Capacity())
	assert.Equal(t, data, b.Bytes())
}

func TestReadExactBoundary(t *testing.T) {
	b := buffer.NewFromBytes([]byte{1, 2, 3, 4})
	out := make([]byte, 2)
	require.NoError(t, b.ReadExact(out))
	assert.Equal(t, []byte{1, 2}, out)
	// Reading exactly to the end is allowed
	require.NoError(t, b.ReadExact(out))
	assert.Equal(t, []byte{3, 4}, out)
	assert.Equal(t, 0, b.Remaining())
	err := b.ReadExact(make([]byte, 1))
	assert.ErrorIs(t, err, gocardano.ErrOutOfBoundsMemoryRead)
	// A failed read leaves the cursor alone
	assert.Equal(t, 4, b.Head())
}

func TestIoReader(t *testing.T) {
	b := buffer.NewFromBytes([]byte("hello"))
	data, err := io.ReadAll(b)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(data))
	n, err := b.Read(make([]byte, 1))
	assert.Equal(t, 0, n)
	assert.ErrorIs(t, err, io.EOF)
}

func TestTypedReadWrite(t *testing.T) {
	b, err := buffer.New(1)
	require.NoError(t, err)
	require.NoError(t, b.WriteUint16BE(0x0102))
	require.NoError(t, b.WriteUint32LE(0x03040506))
	require.NoError(t, b.WriteInt64BE(-1))
	require.NoError(t, b.WriteFloat64LE(2.5))
	assert.Equal(t, 2+4+8+8, b.Size())
	assert.Equal(t, []byte{0x01, 0x02, 0x06, 0x05, 0x04, 0x03}, b.Bytes()[:6])

	u16, err := b.ReadUint16BE()
	require.NoError(t, err)
	assert.Equal(t, uint16(0x0102), u16)
	u32, err := b.ReadUint32LE()
	require.NoError(t, err)
	assert.Equal(t, uint32(0x03040506), u32)
	i64, err := b.ReadInt64BE()
	require.NoError(t, err)
	assert.Equal(t, int64(-1), i64)
	f64, err := b.ReadFloat64LE()
	require.NoError(t, err)
	assert.Equal(t, 2.5, f64)
	_, err = b.ReadUint16LE()
	assert.ErrorIs(t, err, gocardano.ErrOutOfBoundsMemoryRead)
}

func TestConcat(t *testing.T) {
	lhs := buffer.NewFromBytes([]byte{1, 2})
	rhs := buffer.NewFromBytes([]byte{3})
	out, err := buffer.Concat(lhs, rhs)
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2, 3}, out.Bytes())
	// No aliasing
	out.Bytes()[0] = 9
	assert.Equal(t, byte(1), lhs.Bytes()[0])
}

func TestSlice(t *testing.T) {
	b := buffer.NewFromBytes([]byte{0, 1, 2, 3, 4})
	s, err := b.Slice(1, 4)
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2, 3}, s.Bytes())
	s.Bytes()[0] = 0xff
	assert.Equal(t, byte(1), b.Bytes()[1])

	testDefs := []struct {
		start, end int
		err        error
	}{
		{start: 2, end: 2, err: gocardano.ErrInvalidArgument},
		{start: 3, end: 1, err: gocardano.ErrInvalidArgument},
		{start: -1, end: 2, err: gocardano.ErrOutOfBoundsMemoryRead},
		{start: 0, end: 6, err: gocardano.ErrOutOfBoundsMemoryRead},
	}
	for _, td := range testDefs {
		_, err := b.Slice(td.start, td.end)
		assert.ErrorIs(t, err, td.err, "slice [%d:%d)", td.start, td.end)
	}
}

func TestRefCounting(t *testing.T) {
	b := buffer.NewFromBytes([]byte{1})
	b.Ref()
	assert.Equal(t, int64(2), b.RefCount())
	b.Unref()
	_, err := b.Write([]byte{2})
	require.NoError(t, err)
	b.Unref()
	assert.Equal(t, int64(0), b.RefCount())
	_, err = b.Write([]byte{3})
	assert.ErrorIs(t, err, gocardano.ErrPointerIsNull)
	assert.Nil(t, b.Bytes())
}

func TestMove(t *testing.T) {
	b := buffer.NewFromBytes([]byte{1})
	b.Move()
	assert.Equal(t, int64(0), b.RefCount())
	// Still usable: ownership was handed off, not released
	_, err := b.Write([]byte{2})
	require.NoError(t, err)
	b.Ref()
	b.Unref()
	assert.Equal(t, int64(0), b.RefCount())
	_, err = b.Write([]byte{3})
	assert.ErrorIs(t, err, gocardano.ErrPointerIsNull)
}

func TestHexAndCompare(t *testing.T) {
	b, err := buffer.NewFromHex("deadBEEF")
	require.NoError(t, err)
	assert.Equal(t, "deadbeef", b.Hex())
	other := buffer.NewFromBytes([]byte{0xde, 0xad, 0xbe, 0xef})
	assert.True(t, b.Equal(other))
	assert.Equal(t, 0, b.Compare(other))
	_, err = buffer.NewFromHex("zz")
	assert.ErrorIs(t, err, gocardano.ErrInvalidArgument)
}

func TestSeekAndReset(t *testing.T) {
	b := buffer.NewFromBytes([]byte{1, 2, 3})
	require.NoError(t, b.Seek(2))
	assert.Equal(t, 1, b.Remaining())
	assert.ErrorIs(t, b.Seek(4), gocardano.ErrOutOfBoundsMemoryRead)
	b.Reset()
	assert.Equal(t, 0, b.Size())
	assert.Equal(t, 0, b.Head())
}
