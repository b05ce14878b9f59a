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

// Package endian reads and writes fixed-width integers and floats at an
// offset in a caller-provided byte slice, in an explicitly chosen byte order.
//
// All conversions are explicit, so the host byte order never affects results.
// IsLittleEndian is provided for diagnostics only.
package endian

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/blinklabs-io/gocardano"
	"golang.org/x/sys/cpu"
)

// ByteOrder selects the byte order used for a conversion
type ByteOrder uint8

const (
	BigEndian ByteOrder = iota
	LittleEndian
)

func (o ByteOrder) String() string {
	switch o {
	case BigEndian:
		return "big-endian"
	case LittleEndian:
		return "little-endian"
	default:
		return fmt.Sprintf("ByteOrder(%d)", uint8(o))
	}
}

func (o ByteOrder) binaryOrder() (binary.ByteOrder, error) {
	switch o {
	case BigEndian:
		return binary.BigEndian, nil
	case LittleEndian:
		return binary.LittleEndian, nil
	default:
		return nil, fmt.Errorf("%w: unknown byte order %d", gocardano.ErrInvalidArgument, uint8(o))
	}
}

// IsLittleEndian reports whether the host stores multi-byte values little-endian first
func IsLittleEndian() bool {
	return !cpu.IsBigEndian
}

// NativeOrder returns the host byte order
func NativeOrder() ByteOrder {
	if cpu.IsBigEndian {
		return BigEndian
	}
	return LittleEndian
}

// Fixed is the set of types handled by this package
type Fixed interface {
	~uint16 | ~uint32 | ~uint64 | ~int16 | ~int32 | ~int64 | ~float32 | ~float64
}

// SizeOf returns the encoded width in bytes of values of type T
func SizeOf[T Fixed]() int {
	var v T
	return binary.Size(v)
}

func checkBounds(bufLen int, offset int, size int) error {
	if offset < 0 || size > bufLen || offset > bufLen-size {
		return fmt.Errorf(
			"%w: need %d bytes at offset %d, buffer holds %d",
			gocardano.ErrInsufficientBufferSize,
			size,
			offset,
			bufLen,
		)
	}
	return nil
}

// Write stores value into buf at offset using the given byte order
func Write[T Fixed](order ByteOrder, value T, buf []byte, offset int) error {
	bo, err := order.binaryOrder()
	if err != nil {
		return err
	}
	size := SizeOf[T]()
	if err := checkBounds(len(buf), offset, size); err != nil {
		return err
	}
	dst := buf[offset : offset+size]
	switch v := any(value).(type) {
	case uint16:
		bo.PutUint16(dst, v)
	case int16:
		bo.PutUint16(dst, uint16(v))
	case uint32:
		bo.PutUint32(dst, v)
	case int32:
		bo.PutUint32(dst, uint32(v))
	case float32:
		bo.PutUint32(dst, math.Float32bits(v))
	case uint64:
		bo.PutUint64(dst, v)
	case int64:
		bo.PutUint64(dst, uint64(v))
	case float64:
		bo.PutUint64(dst, math.Float64bits(v))
	default:
		// Named types built on the supported kinds
		if _, err := binary.Encode(dst, bo, value); err != nil {
			return fmt.Errorf("%w: %w", gocardano.ErrInvalidArgument, err)
		}
	}
	return nil
}

// Read loads a value of type T from buf at offset using the given byte order
func Read[T Fixed](order ByteOrder, buf []byte, offset int) (T, error) {
	var ret T
	bo, err := order.binaryOrder()
	if err != nil {
		return ret, err
	}
	size := SizeOf[T]()
	if err := checkBounds(len(buf), offset, size); err != nil {
		return ret, err
	}
	src := buf[offset : offset+size]
	switch any(ret).(type) {
	case uint16:
		return any(bo.Uint16(src)).(T), nil
	case int16:
		return any(int16(bo.Uint16(src))).(T), nil
	case uint32:
		return any(bo.Uint32(src)).(T), nil
	case int32:
		return any(int32(bo.Uint32(src))).(T), nil
	case float32:
		return any(math.Float32frombits(bo.Uint32(src))).(T), nil
	case uint64:
		return any(bo.Uint64(src)).(T), nil
	case int64:
		return any(int64(bo.Uint64(src))).(T), nil
	case float64:
		return any(math.Float64frombits(bo.Uint64(src))).(T), nil
	default:
		if _, err := binary.Decode(src, bo, &ret); err != nil {
			return ret, fmt.Errorf("%w: %w", gocardano.ErrInvalidArgument, err)
		}
		return ret, nil
	}
}
