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
	"encoding/hex"
	"fmt"
	"math"

	"github.com/blinklabs-io/gocardano"
	"github.com/blinklabs-io/gocardano/bigint"
	"github.com/blinklabs-io/gocardano/buffer"
	"github.com/blinklabs-io/gocardano/endian"
	"github.com/blinklabs-io/gocardano/internal/refcount"
	"github.com/x448/float16"
)

type writeFrame struct {
	major MajorType
	// remaining counts items still owed to a definite container, -1 when
	// indefinite. Map entries count as two items.
	remaining int64
	items     int64
	// tags counts tag heads written whose content has not been written yet
	tags int
}

// Writer encodes CBOR one token at a time into a growable buffer.
//
// Integer and length arguments always use the shortest head. Definite-length
// containers must receive exactly the declared number of items, and every
// container must be ended before the output can be extracted.
type Writer struct {
	refcount.Counter
	buf             *buffer.Buffer
	frames          []writeFrame
	initialCapacity int
	maxDepth        int
	lastErr         string
	rootTags        int
}

// NewWriter returns an empty Writer
func NewWriter(opts ...WriterOptionFunc) *Writer {
	w := &Writer{
		maxDepth: DefaultMaxDepth,
	}
	for _, opt := range opts {
		opt(w)
	}
	buf, err := buffer.New(w.initialCapacity)
	if err != nil {
		// Out of range capacities fall back to the default
		buf, _ = buffer.New(0)
	}
	w.buf = buf
	return w
}

// Unref drops a reference. The last one releases the output buffer.
func (w *Writer) Unref() {
	if w == nil {
		return
	}
	if w.Counter.Unref() {
		w.buf.Unref()
		w.frames = nil
	}
}

func (w *Writer) RefCount() int64 {
	if w == nil {
		return 0
	}
	return w.Count()
}

// LastError returns the message of the most recent failure
func (w *Writer) LastError() string {
	return w.lastErr
}

// Depth returns the number of open arrays and maps
func (w *Writer) Depth() int {
	return len(w.frames)
}

// Buffer returns the output buffer with an added reference, which the caller
// must drop with Unref
func (w *Writer) Buffer() *buffer.Buffer {
	w.buf.Ref()
	return w.buf
}

// Reset discards all output and open containers
func (w *Writer) Reset() {
	w.buf.Reset()
	w.frames = nil
	w.lastErr = ""
	w.rootTags = 0
}

func (w *Writer) fail(err error) error {
	w.lastErr = err.Error()
	return err
}

func (w *Writer) top() *writeFrame {
	if len(w.frames) == 0 {
		return nil
	}
	return &w.frames[len(w.frames)-1]
}

// beginItem checks that the enclosing container accepts another item
func (w *Writer) beginItem() error {
	if f := w.top(); f != nil && f.remaining == 0 {
		return invalidValue("%s already holds its declared number of items", f.major)
	}
	return nil
}

// pendingTags returns the counter of tags awaiting content at the current level
func (w *Writer) pendingTags() *int {
	if f := w.top(); f != nil {
		return &f.tags
	}
	return &w.rootTags
}

// endItem accounts for a completed item, which is also the content of any
// tags written before it
func (w *Writer) endItem() {
	*w.pendingTags() = 0
	f := w.top()
	if f == nil {
		return
	}
	if f.remaining > 0 {
		f.remaining--
	} else {
		f.items++
	}
}

// writeHead writes an initial byte and argument using the shortest form
func (w *Writer) writeHead(major MajorType, arg uint64) error {
	mt := uint8(major) << 5
	var err error
	switch {
	case arg <= uint64(CborMaxUintSimple):
		err = w.buf.WriteByte(mt | uint8(arg))
	case arg <= math.MaxUint8:
		if err = w.buf.WriteByte(mt | CborInfoUint8); err == nil {
			err = w.buf.WriteByte(uint8(arg))
		}
	case arg <= math.MaxUint16:
		if err = w.buf.WriteByte(mt | CborInfoUint16); err == nil {
			err = w.buf.WriteUint16BE(uint16(arg))
		}
	case arg <= math.MaxUint32:
		if err = w.buf.WriteByte(mt | CborInfoUint32); err == nil {
			err = w.buf.WriteUint32BE(uint32(arg))
		}
	default:
		if err = w.buf.WriteByte(mt | CborInfoUint64); err == nil {
			err = w.buf.WriteUint64BE(arg)
		}
	}
	return err
}

// item runs fn as the encoding of one complete data item
func (w *Writer) item(fn func() error) error {
	if err := w.beginItem(); err != nil {
		return w.fail(err)
	}
	if err := fn(); err != nil {
		return w.fail(err)
	}
	w.endItem()
	return nil
}

func (w *Writer) WriteUint(v uint64) error {
	return w.item(func() error {
		return w.writeHead(MajorTypeUnsignedInt, v)
	})
}

func (w *Writer) WriteInt(v int64) error {
	return w.item(func() error {
		if v >= 0 {
			return w.writeHead(MajorTypeUnsignedInt, uint64(v))
		}
		// -1-v without overflow
		return w.writeHead(MajorTypeNegativeInt, uint64(^v))
	})
}

// WriteBigInt writes v as a plain integer when it fits in a 64-bit head and
// as a bignum (tag 2 or 3 over the minimal big-endian magnitude) otherwise
func (w *Writer) WriteBigInt(v *bigint.BigInt) error {
	if v == nil {
		return w.fail(fmt.Errorf("%w: nil bigint", gocardano.ErrPointerIsNull))
	}
	return w.item(func() error {
		if v.Sign() >= 0 {
			if v.IsUint64() {
				return w.writeHead(MajorTypeUnsignedInt, v.Uint64())
			}
			return w.writeBignum(CborTagBignumPos, v.Bytes(endian.BigEndian))
		}
		// Negative integers carry -1-v
		n := bigint.New().Neg(v)
		n.Decrement()
		if n.IsUint64() {
			return w.writeHead(MajorTypeNegativeInt, n.Uint64())
		}
		return w.writeBignum(CborTagBignumNeg, n.Bytes(endian.BigEndian))
	})
}

func (w *Writer) writeBignum(tag uint64, magnitude []byte) error {
	if err := w.writeHead(MajorTypeTag, tag); err != nil {
		return err
	}
	if err := w.writeHead(MajorTypeByteString, uint64(len(magnitude))); err != nil {
		return err
	}
	_, err := w.buf.Write(magnitude)
	return err
}

func (w *Writer) WriteBool(v bool) error {
	if v {
		return w.WriteSimpleValue(CborSimpleTrue)
	}
	return w.WriteSimpleValue(CborSimpleFalse)
}

func (w *Writer) WriteNull() error {
	return w.WriteSimpleValue(CborSimpleNull)
}

func (w *Writer) WriteUndefined() error {
	return w.WriteSimpleValue(CborSimpleUndefined)
}

// WriteSimpleValue writes a simple value. Values 24 through 31 are reserved
// and rejected.
func (w *Writer) WriteSimpleValue(v uint8) error {
	if v >= CborInfoUint8 && v < 32 {
		return w.fail(fmt.Errorf("%w: simple value %d is reserved", gocardano.ErrInvalidArgument, v))
	}
	return w.item(func() error {
		if v < CborInfoUint8 {
			return w.buf.WriteByte(CborTypeSimple | v)
		}
		if err := w.buf.WriteByte(CborTypeSimple | CborInfoUint8); err != nil {
			return err
		}
		return w.buf.WriteByte(v)
	})
}

// WriteFloat16 writes v as a half-precision float, rounding to the nearest
// representable value
func (w *Writer) WriteFloat16(v float32) error {
	return w.item(func() error {
		if err := w.buf.WriteByte(CborTypeSimple | CborInfoUint16); err != nil {
			return err
		}
		return w.buf.WriteUint16BE(float16.Fromfloat32(v).Bits())
	})
}

func (w *Writer) WriteFloat32(v float32) error {
	return w.item(func() error {
		if err := w.buf.WriteByte(CborTypeSimple | CborInfoUint32); err != nil {
			return err
		}
		return w.buf.WriteFloat32BE(v)
	})
}

func (w *Writer) WriteFloat64(v float64) error {
	return w.item(func() error {
		if err := w.buf.WriteByte(CborTypeSimple | CborInfoUint64); err != nil {
			return err
		}
		return w.buf.WriteFloat64BE(v)
	})
}

// WriteByteString writes a definite-length byte string
func (w *Writer) WriteByteString(data []byte) error {
	return w.item(func() error {
		if err := w.writeHead(MajorTypeByteString, uint64(len(data))); err != nil {
			return err
		}
		_, err := w.buf.Write(data)
		return err
	})
}

// WriteIndefiniteByteString writes data as an indefinite-length byte string
// made of chunks of at most chunkSize bytes
func (w *Writer) WriteIndefiniteByteString(data []byte, chunkSize int) error {
	if chunkSize <= 0 {
		return w.fail(fmt.Errorf("%w: chunk size must be positive", gocardano.ErrInvalidArgument))
	}
	return w.item(func() error {
		if err := w.buf.WriteByte(CborTypeByteString | CborInfoIndefinite); err != nil {
			return err
		}
		for len(data) > 0 {
			n := min(chunkSize, len(data))
			if err := w.writeHead(MajorTypeByteString, uint64(n)); err != nil {
				return err
			}
			if _, err := w.buf.Write(data[:n]); err != nil {
				return err
			}
			data = data[n:]
		}
		return w.buf.WriteByte(CborBreak)
	})
}

// WriteTextString writes a definite-length text string
func (w *Writer) WriteTextString(s string) error {
	return w.item(func() error {
		if err := w.writeHead(MajorTypeTextString, uint64(len(s))); err != nil {
			return err
		}
		_, err := w.buf.WriteString(s)
		return err
	})
}

// WriteTag writes a tag number. The tagged item must be written next.
func (w *Writer) WriteTag(tag uint64) error {
	if err := w.beginItem(); err != nil {
		return w.fail(err)
	}
	if err := w.writeHead(MajorTypeTag, tag); err != nil {
		return w.fail(err)
	}
	*w.pendingTags()++
	return nil
}

// WriteEncoded writes data verbatim as one item. data must hold exactly one
// well-formed data item.
func (w *Writer) WriteEncoded(data []byte) error {
	if err := wellformed(data, w.maxDepth-len(w.frames)); err != nil {
		return w.fail(err)
	}
	return w.item(func() error {
		_, err := w.buf.Write(data)
		return err
	})
}

// WriteValue encodes v with Encode and writes the result as one item
func (w *Writer) WriteValue(v any) error {
	data, err := Encode(v)
	if err != nil {
		return w.fail(fmt.Errorf("%w: %w", gocardano.ErrInvalidArgument, err))
	}
	return w.item(func() error {
		_, err := w.buf.Write(data)
		return err
	})
}

func (w *Writer) startContainer(major MajorType, count int64) error {
	if count < IndefiniteLength || (major == MajorTypeMap && count > math.MaxInt64/2) {
		return w.fail(fmt.Errorf("%w: invalid %s length %d", gocardano.ErrInvalidArgument, major, count))
	}
	if len(w.frames) >= w.maxDepth {
		return w.fail(invalidValue("nesting depth exceeds %d", w.maxDepth))
	}
	err := w.item(func() error {
		if count == IndefiniteLength {
			return w.buf.WriteByte(uint8(major)<<5 | CborInfoIndefinite)
		}
		return w.writeHead(major, uint64(count))
	})
	if err != nil {
		return err
	}
	remaining := count
	if major == MajorTypeMap && count > 0 {
		remaining = count * 2
	}
	w.frames = append(w.frames, writeFrame{major: major, remaining: remaining})
	return nil
}

func (w *Writer) endContainer(major MajorType) error {
	f := w.top()
	if f == nil {
		return w.fail(invalidValue("no open %s", major))
	}
	if f.major != major {
		return w.fail(invalidValue("cannot end %s while inside %s", major, f.major))
	}
	if f.tags > 0 {
		return w.fail(invalidValue("cannot end %s after a tag without content", major))
	}
	if f.remaining > 0 {
		return w.fail(invalidValue("%s is missing %d items", major, f.remaining))
	}
	if f.remaining < 0 {
		if major == MajorTypeMap && f.items%2 != 0 {
			return w.fail(invalidValue("map key without a value"))
		}
		if err := w.buf.WriteByte(CborBreak); err != nil {
			return w.fail(err)
		}
	}
	w.frames = w.frames[:len(w.frames)-1]
	return nil
}

// WriteStartArray starts an array of count items, or an indefinite-length
// array when count is IndefiniteLength
func (w *Writer) WriteStartArray(count int64) error {
	return w.startContainer(MajorTypeArray, count)
}

func (w *Writer) WriteEndArray() error {
	return w.endContainer(MajorTypeArray)
}

// WriteStartMap starts a map of count entries, or an indefinite-length map
// when count is IndefiniteLength
func (w *Writer) WriteStartMap(count int64) error {
	return w.startContainer(MajorTypeMap, count)
}

func (w *Writer) WriteEndMap() error {
	return w.endContainer(MajorTypeMap)
}

func (w *Writer) complete() error {
	if f := w.top(); f != nil {
		return w.fail(invalidValue("%d containers still open, innermost %s", len(w.frames), f.major))
	}
	if w.rootTags > 0 {
		return w.fail(invalidValue("tag without content"))
	}
	return nil
}

// EncodeSize returns the number of bytes written so far
func (w *Writer) EncodeSize() int {
	return w.buf.Size()
}

// Encode returns a copy of the encoded bytes
func (w *Writer) Encode() ([]byte, error) {
	if err := w.complete(); err != nil {
		return nil, err
	}
	return w.buf.CopyBytes(), nil
}

// EncodeInto copies the encoded bytes into out and returns the count.
// out must hold at least EncodeSize bytes.
func (w *Writer) EncodeInto(out []byte) (int, error) {
	if err := w.complete(); err != nil {
		return 0, err
	}
	if len(out) < w.buf.Size() {
		return 0, w.fail(fmt.Errorf(
			"%w: need %d bytes, have %d",
			gocardano.ErrInsufficientBufferSize,
			w.buf.Size(),
			len(out),
		))
	}
	return copy(out, w.buf.Bytes()), nil
}

// HexSize returns the length of the hex encoding of the output
func (w *Writer) HexSize() int {
	return hex.EncodedLen(w.buf.Size())
}

// EncodeHex returns the output as a lowercase hex string
func (w *Writer) EncodeHex() (string, error) {
	if err := w.complete(); err != nil {
		return "", err
	}
	return w.buf.Hex(), nil
}

// EncodeHexInto writes the lowercase hex encoding of the output into out.
// out must hold at least HexSize bytes.
func (w *Writer) EncodeHexInto(out []byte) (int, error) {
	if err := w.complete(); err != nil {
		return 0, err
	}
	if len(out) < w.HexSize() {
		return 0, w.fail(fmt.Errorf(
			"%w: need %d bytes, have %d",
			gocardano.ErrInsufficientBufferSize,
			w.HexSize(),
			len(out),
		))
	}
	return hex.Encode(out, w.buf.Bytes()), nil
}
