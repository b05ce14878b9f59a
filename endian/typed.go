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

package endian

// Named wrappers for each supported type and byte order

func WriteUint16BE(value uint16, buf []byte, offset int) error {
	return Write(BigEndian, value, buf, offset)
}

func ReadUint16BE(buf []byte, offset int) (uint16, error) {
	return Read[uint16](BigEndian, buf, offset)
}

func WriteUint16LE(value uint16, buf []byte, offset int) error {
	return Write(LittleEndian, value, buf, offset)
}

func ReadUint16LE(buf []byte, offset int) (uint16, error) {
	return Read[uint16](LittleEndian, buf, offset)
}

func WriteUint32BE(value uint32, buf []byte, offset int) error {
	return Write(BigEndian, value, buf, offset)
}

func ReadUint32BE(buf []byte, offset int) (uint32, error) {
	return Read[uint32](BigEndian, buf, offset)
}

func WriteUint32LE(value uint32, buf []byte, offset int) error {
	return Write(LittleEndian, value, buf, offset)
}

func ReadUint32LE(buf []byte, offset int) (uint32, error) {
	return Read[uint32](LittleEndian, buf, offset)
}

func WriteUint64BE(value uint64, buf []byte, offset int) error {
	return Write(BigEndian, value, buf, offset)
}

func ReadUint64BE(buf []byte, offset int) (uint64, error) {
	return Read[uint64](BigEndian, buf, offset)
}

func WriteUint64LE(value uint64, buf []byte, offset int) error {
	return Write(LittleEndian, value, buf, offset)
}

func ReadUint64LE(buf []byte, offset int) (uint64, error) {
	return Read[uint64](LittleEndian, buf, offset)
}

func WriteInt16BE(value int16, buf []byte, offset int) error {
	return Write(BigEndian, value, buf, offset)
}

func ReadInt16BE(buf []byte, offset int) (int16, error) {
	return Read[int16](BigEndian, buf, offset)
}

func WriteInt16LE(value int16, buf []byte, offset int) error {
	return Write(LittleEndian, value, buf, offset)
}

func ReadInt16LE(buf []byte, offset int) (int16, error) {
	return Read[int16](LittleEndian, buf, offset)
}

func WriteInt32BE(value int32, buf []byte, offset int) error {
	return Write(BigEndian, value, buf, offset)
}

func ReadInt32BE(buf []byte, offset int) (int32, error) {
	return Read[int32](BigEndian, buf, offset)
}

func WriteInt32LE(value int32, buf []byte, offset int) error {
	return Write(LittleEndian, value, buf, offset)
}

func ReadInt32LE(buf []byte, offset int) (int32, error) {
	return Read[int32](LittleEndian, buf, offset)
}

func WriteInt64BE(value int64, buf []byte, offset int) error {
	return Write(BigEndian, value, buf, offset)
}

func ReadInt64BE(buf []byte, offset int) (int64, error) {
	return Read[int64](BigEndian, buf, offset)
}

func WriteInt64LE(value int64, buf []byte, offset int) error {
	return Write(LittleEndian, value, buf, offset)
}

func ReadInt64LE(buf []byte, offset int) (int64, error) {
	return Read[int64](LittleEndian, buf, offset)
}

func WriteFloat32BE(value float32, buf []byte, offset int) error {
	return Write(BigEndian, value, buf, offset)
}

func ReadFloat32BE(buf []byte, offset int) (float32, error) {
	return Read[float32](BigEndian, buf, offset)
}

func WriteFloat32LE(value float32, buf []byte, offset int) error {
	return Write(LittleEndian, value, buf, offset)
}

func ReadFloat32LE(buf []byte, offset int) (float32, error) {
	return Read[float32](LittleEndian, buf, offset)
}

func WriteFloat64BE(value float64, buf []byte, offset int) error {
	return Write(BigEndian, value, buf, offset)
}

func ReadFloat64BE(buf []byte, offset int) (float64, error) {
	return Read[float64](BigEndian, buf, offset)
}

func WriteFloat64LE(value float64, buf []byte, offset int) error {
	return Write(LittleEndian, value, buf, offset)
}

func ReadFloat64LE(buf []byte, offset int) (float64, error) {
	return Read[float64](LittleEndian, buf, offset)
}
