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

package buffer

import (
	"fmt"

	"github.com/blinklabs-io/gocardano"
	"github.com/blinklabs-io/gocardano/endian"
)

// WriteFixed appends v to the buffer in the given byte order
func WriteFixed[T endian.Fixed](b *Buffer, order endian.ByteOrder, v T) error {
	dst, err := b.extend(endian.SizeOf[T]())
	if err != nil {
		return err
	}
	return endian.Write(order, v, dst, 0)
}

// ReadFixed reads a value of type T at the read cursor and advances it
func ReadFixed[T endian.Fixed](b *Buffer, order endian.ByteOrder) (T, error) {
	var ret T
	if err := b.live(); err != nil {
		return ret, err
	}
	size := endian.SizeOf[T]()
	if size > b.Remaining() {
		return ret, fmt.Errorf(
			"%w: cannot read %d bytes at position %d of %d",
			gocardano.ErrOutOfBoundsMemoryRead,
			size,
			b.head,
			len(b.data),
		)
	}
	ret, err := endian.Read[T](order, b.data, b.head)
	if err != nil {
		return ret, err
	}
	b.head += size
	return ret, nil
}

func (b *Buffer) WriteUint16BE(value uint16) error {
	return WriteFixed(b, endian.BigEndian, value)
}

func (b *Buffer) ReadUint16BE() (uint16, error) {
	return ReadFixed[uint16](b, endian.BigEndian)
}

func (b *Buffer) WriteUint16LE(value uint16) error {
	return WriteFixed(b, endian.LittleEndian, value)
}

func (b *Buffer) ReadUint16LE() (uint16, error) {
	return ReadFixed[uint16](b, endian.LittleEndian)
}

func (b *Buffer) WriteUint32BE(value uint32) error {
	return WriteFixed(b, endian.BigEndian, value)
}

func (b *Buffer) ReadUint32BE() (uint32, error) {
	return ReadFixed[uint32](b, endian.BigEndian)
}

func (b *Buffer) WriteUint32LE(value uint32) error {
	return WriteFixed(b, endian.LittleEndian, value)
}

func (b *Buffer) ReadUint32LE() (uint32, error) {
	return ReadFixed[uint32](b, endian.LittleEndian)
}

func (b *Buffer) WriteUint64BE(value uint64) error {
	return WriteFixed(b, endian.BigEndian, value)
}

func (b *Buffer) ReadUint64BE() (uint64, error) {
	return ReadFixed[uint64](b, endian.BigEndian)
}

func (b *Buffer) WriteUint64LE(value uint64) error {
	return WriteFixed(b, endian.LittleEndian, value)
}

func (b *Buffer) ReadUint64LE() (uint64, error) {
	return ReadFixed[uint64](b, endian.LittleEndian)
}

func (b *Buffer) WriteInt16BE(value int16) error {
	return WriteFixed(b, endian.BigEndian, value)
}

func (b *Buffer) ReadInt16BE() (int16, error) {
	return ReadFixed[int16](b, endian.BigEndian)
}

func (b *Buffer) WriteInt16LE(value int16) error {
	return WriteFixed(b, endian.LittleEndian, value)
}

func (b *Buffer) ReadInt16LE() (int16, error) {
	return ReadFixed[int16](b, endian.LittleEndian)
}

func (b *Buffer) WriteInt32BE(value int32) error {
	return WriteFixed(b, endian.BigEndian, value)
}

func (b *Buffer) ReadInt32BE() (int32, error) {
	return ReadFixed[int32](b, endian.BigEndian)
}

func (b *Buffer) WriteInt32LE(value int32) error {
	return WriteFixed(b, endian.LittleEndian, value)
}

func (b *Buffer) ReadInt32LE() (int32, error) {
	return ReadFixed[int32](b, endian.LittleEndian)
}

func (b *Buffer) WriteInt64BE(value int64) error {
	return WriteFixed(b, endian.BigEndian, value)
}

func (b *Buffer) ReadInt64BE() (int64, error) {
	return ReadFixed[int64](b, endian.BigEndian)
}

func (b *Buffer) WriteInt64LE(value int64) error {
	return WriteFixed(b, endian.LittleEndian, value)
}

func (b *Buffer) ReadInt64LE() (int64, error) {
	return ReadFixed[int64](b, endian.LittleEndian)
}

func (b *Buffer) WriteFloat32BE(value float32) error {
	return WriteFixed(b, endian.BigEndian, value)
}

func (b *Buffer) ReadFloat32BE() (float32, error) {
	return ReadFixed[float32](b, endian.BigEndian)
}

func (b *Buffer) WriteFloat32LE(value float32) error {
	return WriteFixed(b, endian.LittleEndian, value)
}

func (b *Buffer) ReadFloat32LE() (float32, error) {
	return ReadFixed[float32](b, endian.LittleEndian)
}

func (b *Buffer) WriteFloat64BE(value float64) error {
	return WriteFixed(b, endian.BigEndian, value)
}

func (b *Buffer) ReadFloat64BE() (float64, error) {
	return ReadFixed[float64](b, endian.BigEndian)
}

func (b *Buffer) WriteFloat64LE(value float64) error {
	return WriteFixed(b, endian.LittleEndian, value)
}

func (b *Buffer) ReadFloat64LE() (float64, error) {
	return ReadFixed[float64](b, endian.LittleEndian)
}
