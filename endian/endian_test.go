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

package endian_test

import (
	"errors"
	"math"
	"testing"

	"github.com/blinklabs-io/gocardano"
	"github.com/blinklabs-io/gocardano/endian"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteReadUint32(t *testing.T) {
	buf := make([]byte, 6)
	require.NoError(t, endian.WriteUint32BE(0x01020304, buf, 1))
	assert.Equal(t, []byte{0x00, 0x01, 0x02, 0x03, 0x04, 0x00}, buf)
	v, err := endian.ReadUint32BE(buf, 1)
	require.NoError(t, err)
	assert.Equal(t, uint32(0x01020304), v)

	require.NoError(t, endian.WriteUint32LE(0x01020304, buf, 2))
	assert.Equal(t, []byte{0x00, 0x01, 0x04, 0x03, 0x02, 0x01}, buf)
	v, err = endian.ReadUint32LE(buf, 2)
	require.NoError(t, err)
	assert.Equal(t, uint32(0x01020304), v)
}

func TestSignedAndFloat(t *testing.T) {
	buf := make([]byte, 8)
	require.NoError(t, endian.WriteInt16BE(-2, buf, 0))
	assert.Equal(t, []byte{0xff, 0xfe}, buf[:2])
	i16, err := endian.ReadInt16BE(buf, 0)
	require.NoError(t, err)
	assert.Equal(t, int16(-2), i16)

	require.NoError(t, endian.WriteInt64LE(math.MinInt64, buf, 0))
	assert.Equal(t, []byte{0, 0, 0, 0, 0, 0, 0, 0x80}, buf)
	i64, err := endian.ReadInt64LE(buf, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(math.MinInt64), i64)

	require.NoError(t, endian.WriteFloat64BE(1.5, buf, 0))
	assert.Equal(t, []byte{0x3f, 0xf8, 0, 0, 0, 0, 0, 0}, buf)
	f64, err := endian.ReadFloat64BE(buf, 0)
	require.NoError(t, err)
	assert.Equal(t, 1.5, f64)

	require.NoError(t, endian.WriteFloat32LE(float32(-0.25), buf, 4))
	f32, err := endian.ReadFloat32LE(buf, 4)
	require.NoError(t, err)
	assert.Equal(t, float32(-0.25), f32)
}

func TestBounds(t *testing.T) {
	buf := make([]byte, 4)
	testDefs := []struct {
		name   string
		offset int
		err    bool
	}{
		{name: "fits", offset: 0},
		{name: "exact end", offset: 2},
		{name: "one past", offset: 3, err: true},
		{name: "negative", offset: -1, err: true},
		{name: "far past", offset: math.MaxInt, err: true},
	}
	for _, td := range testDefs {
		t.Run(td.name, func(t *testing.T) {
			err := endian.WriteUint16LE(0xbeef, buf, td.offset)
			_, readErr := endian.ReadUint16LE(buf, td.offset)
			if td.err {
				assert.True(t, errors.Is(err, gocardano.ErrInsufficientBufferSize))
				assert.True(t, errors.Is(readErr, gocardano.ErrInsufficientBufferSize))
				return
			}
			assert.NoError(t, err)
			assert.NoError(t, readErr)
		})
	}
}

func TestUnknownOrder(t *testing.T) {
	buf := make([]byte, 8)
	err := endian.Write(endian.ByteOrder(9), uint64(1), buf, 0)
	assert.ErrorIs(t, err, gocardano.ErrInvalidArgument)
}

func TestNativeOrder(t *testing.T) {
	if endian.IsLittleEndian() {
		assert.Equal(t, endian.LittleEndian, endian.NativeOrder())
	} else {
		assert.Equal(t, endian.BigEndian, endian.NativeOrder())
	}
}

func TestSizeOf(t *testing.T) {
	assert.Equal(t, 2, endian.SizeOf[int16]())
	assert.Equal(t, 4, endian.SizeOf[float32]())
	assert.Equal(t, 8, endian.SizeOf[uint64]())
}
