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
	"encoding/hex"
	"fmt"
	"math"
	"slices"
	"unicode/utf8"

	"github.com/blinklabs-io/gocardano"
	"github.com/blinklabs-io/gocardano/bigint"
	"github.com/blinklabs-io/gocardano/endian"
	"github.com/blinklabs-io/gocardano/internal/refcount"
	"github.com/x448/float16"
)

// header is a decoded initial byte plus its argument
type header struct {
	major      MajorType
	info       uint8
	arg        uint64
	size       int
	indefinite bool
}

type readFrame struct {
	major MajorType
	// remaining counts data items left in a definite container, -1 when indefinite.
	// Map entries count as two items.
	remaining int64
	// items counts data items consumed in an indefinite container
	items int64
	// tags counts tag heads read whose content has not been read yet
	tags int
}

// Reader decodes a CBOR byte sequence one token at a time.
//
// Each read validates the major type of the next item and the container
// bookkeeping of the enclosing array or map. A failed read leaves the
// position unchanged and records a message for LastError.
//
// The input slice is not copied and must not be modified while the Reader is
// in use. Bytes returned by the Reader never alias the input.
type Reader struct {
	refcount.Counter
	data     []byte
	pos      int
	frames   []readFrame
	maxDepth int
	strict   bool
	lastErr  string
	rootTags int
}

// NewReader returns a Reader positioned at the start of data
func NewReader(data []byte, opts ...ReaderOptionFunc) *Reader {
	r := &Reader{
		data:     data,
		maxDepth: DefaultMaxDepth,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// NewReaderFromHex returns a Reader over the decoded bytes of a hex string
func NewReaderFromHex(hexData string, opts ...ReaderOptionFunc) (*Reader, error) {
	data, err := hex.DecodeString(hexData)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", gocardano.ErrInvalidArgument, err)
	}
	return NewReader(data, opts...), nil
}

// Unref drops a reference. The last one releases the input.
func (r *Reader) Unref() {
	if r == nil {
		return
	}
	if r.Counter.Unref() {
		r.data = nil
		r.pos = 0
		r.frames = nil
	}
}

func (r *Reader) RefCount() int64 {
	if r == nil {
		return 0
	}
	return r.Count()
}

// Clone returns an independent Reader at the same position, useful for
// lookahead. The input is shared.
func (r *Reader) Clone() *Reader {
	return &Reader{
		data:     r.data,
		pos:      r.pos,
		frames:   slices.Clone(r.frames),
		maxDepth: r.maxDepth,
		strict:   r.strict,
		lastErr:  r.lastErr,
		rootTags: r.rootTags,
	}
}

// LastError returns the message of the most recent failure. It is meant for
// diagnostics; use errors.Is on the returned error to branch.
func (r *Reader) LastError() string {
	return r.lastErr
}

// Position returns the offset of the next unread byte
func (r *Reader) Position() int {
	return r.pos
}

func (r *Reader) BytesRemaining() int {
	return len(r.data) - r.pos
}

// RemainderBytes returns a copy of the unread input
func (r *Reader) RemainderBytes() []byte {
	return bytes.Clone(r.data[r.pos:])
}

// Depth returns the number of open arrays and maps
func (r *Reader) Depth() int {
	return len(r.frames)
}

func (r *Reader) fail(err error) error {
	r.lastErr = err.Error()
	return err
}

func (r *Reader) top() *readFrame {
	if len(r.frames) == 0 {
		return nil
	}
	return &r.frames[len(r.frames)-1]
}

func (r *Reader) readArg(at int, n int) (uint64, error) {
	switch n {
	case 1:
		return uint64(r.data[at]), nil
	case 2:
		v, err := endian.ReadUint16BE(r.data, at)
		return uint64(v), err
	case 4:
		v, err := endian.ReadUint32BE(r.data, at)
		return uint64(v), err
	default:
		return endian.ReadUint64BE(r.data, at)
	}
}

// parseHeader decodes the head of the item at offset at without consuming it
func (r *Reader) parseHeader(at int) (header, error) {
	if at >= len(r.data) {
		return header{}, unexpectedEnd(1, at, 0)
	}
	b := r.data[at]
	h := header{
		major: MajorType(b >> 5),
		info:  b & 0x1f,
		size:  1,
	}
	switch {
	case h.info < CborInfoUint8:
		h.arg = uint64(h.info)
	case h.info <= CborInfoUint64:
		n := 1 << (h.info - CborInfoUint8)
		if avail := len(r.data) - at - 1; avail < n {
			return header{}, unexpectedEnd(n, at+1, avail)
		}
		arg, err := r.readArg(at+1, n)
		if err != nil {
			return header{}, err
		}
		h.arg = arg
		h.size += n
	case h.info == CborInfoIndefinite:
		switch h.major {
		case MajorTypeByteString, MajorTypeTextString, MajorTypeArray, MajorTypeMap, MajorTypeSimple:
			h.indefinite = true
		default:
			return header{}, invalidValue("indefinite length is not allowed for %s at offset %d", h.major, at)
		}
	default:
		return header{}, invalidValue("reserved additional info %d at offset %d", h.info, at)
	}
	if h.major == MajorTypeSimple && h.info == CborInfoUint8 && h.arg < 32 {
		return header{}, invalidValue("simple value %d must use a one byte head at offset %d", h.arg, at)
	}
	if r.strict && h.major != MajorTypeSimple {
		if h.indefinite {
			return header{}, invalidValue("indefinite-length %s at offset %d in canonical input", h.major, at)
		}
		if !minimalHead(h) {
			return header{}, invalidValue("non-canonical argument %d for %s at offset %d", h.arg, h.major, at)
		}
	}
	return h, nil
}

func minimalHead(h header) bool {
	switch h.info {
	case CborInfoUint8:
		return h.arg >= uint64(CborInfoUint8)
	case CborInfoUint16:
		return h.arg > math.MaxUint8
	case CborInfoUint32:
		return h.arg > math.MaxUint16
	case CborInfoUint64:
		return h.arg > math.MaxUint32
	default:
		return true
	}
}

// beginItem checks that the enclosing container has room for another item
func (r *Reader) beginItem() error {
	f := r.top()
	if f == nil {
		if r.pos >= len(r.data) {
			return unexpectedEnd(1, r.pos, 0)
		}
		return nil
	}
	if f.remaining == 0 {
		return invalidValue("%s has no more items at offset %d", f.major, r.pos)
	}
	if f.remaining < 0 {
		if r.pos >= len(r.data) {
			return unexpectedEnd(1, r.pos, 0)
		}
		if r.data[r.pos] == CborBreak {
			return invalidValue("unexpected break in %s at offset %d", f.major, r.pos)
		}
	}
	return nil
}

// pendingTags returns the counter of tags awaiting content at the current level
func (r *Reader) pendingTags() *int {
	if f := r.top(); f != nil {
		return &f.tags
	}
	return &r.rootTags
}

func danglingTag(offset int) error {
	return invalidValue("tag without content at offset %d", offset)
}

// endItem accounts for a completely consumed item in the enclosing container.
// The item is also the content of any tags read before it.
func (r *Reader) endItem() {
	*r.pendingTags() = 0
	f := r.top()
	if f == nil {
		return
	}
	if f.remaining > 0 {
		f.remaining--
	} else {
		f.items++
	}
}

// next parses the head of the next item and checks its major type
func (r *Reader) next(expected MajorType) (header, error) {
	if err := r.beginItem(); err != nil {
		return header{}, err
	}
	h, err := r.parseHeader(r.pos)
	if err != nil {
		return header{}, err
	}
	if h.major != expected {
		return header{}, &MajorTypeError{
			Expected: expected,
			Got:      h.major,
			Offset:   r.pos,
		}
	}
	return h, nil
}

func (r *Reader) consume(h header) {
	r.pos += h.size
	r.endItem()
}

// PeekState reports what the next read will return without consuming input.
// It returns StateFinished once all top-level items have been read.
func (r *Reader) PeekState() (ReaderState, error) {
	if f := r.top(); f != nil {
		endState := StateEndArray
		if f.major == MajorTypeMap {
			endState = StateEndMap
		}
		atEnd := f.remaining == 0 ||
			(f.remaining < 0 && r.pos < len(r.data) && r.data[r.pos] == CborBreak)
		if atEnd {
			if f.tags > 0 {
				return StateUndefined, r.fail(danglingTag(r.pos))
			}
			return endState, nil
		}
	}
	if r.pos >= len(r.data) {
		if len(r.frames) == 0 {
			if r.rootTags > 0 {
				return StateUndefined, r.fail(unexpectedEnd(1, r.pos, 0))
			}
			return StateFinished, nil
		}
		return StateUndefined, r.fail(unexpectedEnd(1, r.pos, 0))
	}
	if r.data[r.pos] == CborBreak {
		return StateUndefined, r.fail(invalidValue("unexpected break at offset %d", r.pos))
	}
	h, err := r.parseHeader(r.pos)
	if err != nil {
		return StateUndefined, r.fail(err)
	}
	switch h.major {
	case MajorTypeUnsignedInt:
		return StateUnsignedInteger, nil
	case MajorTypeNegativeInt:
		return StateNegativeInteger, nil
	case MajorTypeByteString:
		if h.indefinite {
			return StateStartIndefiniteByteString, nil
		}
		return StateByteString, nil
	case MajorTypeTextString:
		if h.indefinite {
			return StateStartIndefiniteTextString, nil
		}
		return StateTextString, nil
	case MajorTypeArray:
		return StateStartArray, nil
	case MajorTypeMap:
		return StateStartMap, nil
	case MajorTypeTag:
		return StateTag, nil
	}
	switch h.info {
	case CborSimpleFalse, CborSimpleTrue:
		return StateBoolean, nil
	case CborSimpleNull:
		return StateNull, nil
	case CborSimpleUndefined:
		return StateUndefinedValue, nil
	case CborInfoUint16:
		return StateHalfFloat, nil
	case CborInfoUint32:
		return StateSingleFloat, nil
	case CborInfoUint64:
		return StateDoubleFloat, nil
	}
	return StateSimpleValue, nil
}

// ReadUint reads an unsigned integer (major type 0)
func (r *Reader) ReadUint() (uint64, error) {
	h, err := r.next(MajorTypeUnsignedInt)
	if err != nil {
		return 0, r.fail(err)
	}
	r.consume(h)
	return h.arg, nil
}

// ReadInt reads an integer of either sign that fits in an int64
func (r *Reader) ReadInt() (int64, error) {
	if err := r.beginItem(); err != nil {
		return 0, r.fail(err)
	}
	h, err := r.parseHeader(r.pos)
	if err != nil {
		return 0, r.fail(err)
	}
	var ret int64
	switch h.major {
	case MajorTypeUnsignedInt:
		if h.arg > math.MaxInt64 {
			return 0, r.fail(fmt.Errorf("%w: %d overflows int64", gocardano.ErrConversionFailed, h.arg))
		}
		ret = int64(h.arg)
	case MajorTypeNegativeInt:
		if h.arg > math.MaxInt64 {
			return 0, r.fail(fmt.Errorf("%w: -1-%d overflows int64", gocardano.ErrConversionFailed, h.arg))
		}
		ret = -1 - int64(h.arg)
	default:
		return 0, r.fail(&MajorTypeError{Expected: MajorTypeUnsignedInt, Got: h.major, Offset: r.pos})
	}
	r.consume(h)
	return ret, nil
}

// ReadBigInt reads an integer of any size. Both plain integers and the
// bignum tags 2 and 3 are accepted.
func (r *Reader) ReadBigInt() (*bigint.BigInt, error) {
	if err := r.beginItem(); err != nil {
		return nil, r.fail(err)
	}
	h, err := r.parseHeader(r.pos)
	if err != nil {
		return nil, r.fail(err)
	}
	switch h.major {
	case MajorTypeUnsignedInt:
		r.consume(h)
		return bigint.FromUint64(h.arg), nil
	case MajorTypeNegativeInt:
		r.consume(h)
		ret := bigint.FromUint64(h.arg)
		return ret.Increment().Neg(ret), nil
	case MajorTypeTag:
		if h.arg != CborTagBignumPos && h.arg != CborTagBignumNeg {
			return nil, r.fail(invalidValue("tag %d at offset %d is not a bignum", h.arg, r.pos))
		}
		data, next, err := r.readStringBody(MajorTypeByteString, r.pos+h.size)
		if err != nil {
			return nil, r.fail(err)
		}
		r.pos = next
		r.endItem()
		ret, err := bigint.FromBytes(data, endian.BigEndian)
		if err != nil {
			return nil, r.fail(err)
		}
		if h.arg == CborTagBignumNeg {
			ret.Increment().Neg(ret)
		}
		return ret, nil
	default:
		return nil, r.fail(&MajorTypeError{Expected: MajorTypeUnsignedInt, Got: h.major, Offset: r.pos})
	}
}

// readStringBody reads a byte or text string starting at offset at and
// returns its content and the offset following it. Indefinite-length strings
// are joined from their chunks.
func (r *Reader) readStringBody(major MajorType, at int) ([]byte, int, error) {
	h, err := r.parseHeader(at)
	if err != nil {
		return nil, at, err
	}
	if h.major != major {
		return nil, at, &MajorTypeError{Expected: major, Got: h.major, Offset: at}
	}
	if !h.indefinite {
		start := at + h.size
		if avail := uint64(len(r.data) - start); h.arg > avail {
			return nil, at, fmt.Errorf(
				"%w: %s at offset %d declares %d bytes, %d remaining",
				gocardano.ErrUnexpectedEndOfData,
				major,
				at,
				h.arg,
				avail,
			)
		}
		end := start + int(h.arg) //nolint:gosec
		return bytes.Clone(r.data[start:end]), end, nil
	}
	ret := []byte{}
	cur := at + h.size
	for {
		if cur >= len(r.data) {
			return nil, at, unexpectedEnd(1, cur, 0)
		}
		if r.data[cur] == CborBreak {
			return ret, cur + 1, nil
		}
		chunk, err := r.parseHeader(cur)
		if err != nil {
			return nil, at, err
		}
		if chunk.major != major || chunk.indefinite {
			return nil, at, invalidValue("invalid chunk in indefinite-length %s at offset %d", major, cur)
		}
		data, next, err := r.readStringBody(major, cur)
		if err != nil {
			return nil, at, err
		}
		ret = append(ret, data...)
		cur = next
	}
}

// ReadByteString reads a byte string. Indefinite-length byte strings are
// returned as the concatenation of their chunks.
func (r *Reader) ReadByteString() ([]byte, error) {
	if _, err := r.next(MajorTypeByteString); err != nil {
		return nil, r.fail(err)
	}
	data, next, err := r.readStringBody(MajorTypeByteString, r.pos)
	if err != nil {
		return nil, r.fail(err)
	}
	r.pos = next
	r.endItem()
	return data, nil
}

// ReadTextString reads a UTF-8 text string
func (r *Reader) ReadTextString() (string, error) {
	if _, err := r.next(MajorTypeTextString); err != nil {
		return "", r.fail(err)
	}
	data, next, err := r.readStringBody(MajorTypeTextString, r.pos)
	if err != nil {
		return "", r.fail(err)
	}
	if !utf8.Valid(data) {
		return "", r.fail(invalidValue("text string at offset %d is not valid UTF-8", r.pos))
	}
	r.pos = next
	r.endItem()
	return string(data), nil
}

// ReadTag reads a tag number. The tagged item follows and is read separately.
func (r *Reader) ReadTag() (uint64, error) {
	h, err := r.next(MajorTypeTag)
	if err != nil {
		return 0, r.fail(err)
	}
	r.pos += h.size
	*r.pendingTags()++
	return h.arg, nil
}

// PeekTag returns the next tag number without consuming it
func (r *Reader) PeekTag() (uint64, error) {
	h, err := r.next(MajorTypeTag)
	if err != nil {
		return 0, r.fail(err)
	}
	return h.arg, nil
}

func (r *Reader) peekSimple() (header, error) {
	h, err := r.next(MajorTypeSimple)
	if err != nil {
		return header{}, err
	}
	if h.indefinite {
		return header{}, invalidValue("unexpected break at offset %d", r.pos)
	}
	if h.info >= CborInfoUint16 {
		return header{}, invalidValue("found float where a simple value was expected at offset %d", r.pos)
	}
	return h, nil
}

// ReadSimpleValue reads a simple value (major type 7), including booleans,
// null and undefined
func (r *Reader) ReadSimpleValue() (uint8, error) {
	h, err := r.peekSimple()
	if err != nil {
		return 0, r.fail(err)
	}
	r.consume(h)
	return uint8(h.arg), nil //nolint:gosec
}

func (r *Reader) readSimpleExpecting(name string, values ...uint8) (uint8, error) {
	h, err := r.peekSimple()
	if err != nil {
		return 0, r.fail(err)
	}
	v := uint8(h.arg) //nolint:gosec
	if !slices.Contains(values, v) {
		return 0, r.fail(invalidValue("expected %s, found simple value %d at offset %d", name, v, r.pos))
	}
	r.consume(h)
	return v, nil
}

func (r *Reader) ReadBool() (bool, error) {
	v, err := r.readSimpleExpecting("boolean", CborSimpleFalse, CborSimpleTrue)
	return v == CborSimpleTrue, err
}

func (r *Reader) ReadNull() error {
	_, err := r.readSimpleExpecting("null", CborSimpleNull)
	return err
}

func (r *Reader) ReadUndefined() error {
	_, err := r.readSimpleExpecting("undefined", CborSimpleUndefined)
	return err
}

// ReadDouble reads a half, single or double precision float
func (r *Reader) ReadDouble() (float64, error) {
	h, err := r.next(MajorTypeSimple)
	if err != nil {
		return 0, r.fail(err)
	}
	var ret float64
	switch h.info {
	case CborInfoUint16:
		ret = float64(float16.Frombits(uint16(h.arg)).Float32()) //nolint:gosec
	case CborInfoUint32:
		ret = float64(math.Float32frombits(uint32(h.arg))) //nolint:gosec
	case CborInfoUint64:
		ret = math.Float64frombits(h.arg)
	default:
		return 0, r.fail(invalidValue("expected float at offset %d", r.pos))
	}
	r.consume(h)
	return ret, nil
}

func (r *Reader) startContainer(major MajorType) (int64, error) {
	h, err := r.next(major)
	if err != nil {
		return 0, r.fail(err)
	}
	if len(r.frames) >= r.maxDepth {
		return 0, r.fail(invalidValue("nesting depth exceeds %d at offset %d", r.maxDepth, r.pos))
	}
	remaining := IndefiniteLength
	if !h.indefinite {
		// Every item takes at least one byte
		avail := uint64(len(r.data) - r.pos - h.size)
		items := h.arg
		if major == MajorTypeMap {
			if items > avail/2 {
				return 0, r.fail(fmt.Errorf(
					"%w: map at offset %d declares %d entries, %d bytes remaining",
					gocardano.ErrUnexpectedEndOfData,
					r.pos,
					h.arg,
					avail,
				))
			}
			items *= 2
		} else if items > avail {
			return 0, r.fail(fmt.Errorf(
				"%w: array at offset %d declares %d items, %d bytes remaining",
				gocardano.ErrUnexpectedEndOfData,
				r.pos,
				h.arg,
				avail,
			))
		}
		remaining = int64(items) //nolint:gosec
	}
	// The container is one item of its parent
	r.consume(h)
	r.frames = append(r.frames, readFrame{major: major, remaining: remaining})
	if h.indefinite {
		return IndefiniteLength, nil
	}
	return int64(h.arg), nil //nolint:gosec
}

func (r *Reader) endContainer(major MajorType) error {
	f := r.top()
	if f == nil {
		return r.fail(invalidValue("no open %s at offset %d", major, r.pos))
	}
	if f.major != major {
		return r.fail(invalidValue("cannot end %s while inside %s", major, f.major))
	}
	if f.tags > 0 {
		return r.fail(danglingTag(r.pos))
	}
	if f.remaining > 0 {
		return r.fail(invalidValue("%s still holds %d unread items at offset %d", major, f.remaining, r.pos))
	}
	if f.remaining < 0 {
		if r.pos >= len(r.data) {
			return r.fail(unexpectedEnd(1, r.pos, 0))
		}
		if r.data[r.pos] != CborBreak {
			return r.fail(invalidValue("expected break at offset %d", r.pos))
		}
		if major == MajorTypeMap && f.items%2 != 0 {
			return r.fail(invalidValue("map key without a value at offset %d", r.pos))
		}
		r.pos++
	}
	r.frames = r.frames[:len(r.frames)-1]
	return nil
}

// ReadStartArray enters an array and returns its length, or IndefiniteLength
func (r *Reader) ReadStartArray() (int64, error) {
	return r.startContainer(MajorTypeArray)
}

// ReadEndArray leaves the current array. All items must have been read, and
// the break of an indefinite-length array is consumed here.
func (r *Reader) ReadEndArray() error {
	return r.endContainer(MajorTypeArray)
}

// ReadStartMap enters a map and returns its number of entries, or
// IndefiniteLength
func (r *Reader) ReadStartMap() (int64, error) {
	return r.startContainer(MajorTypeMap)
}

// ReadEndMap leaves the current map
func (r *Reader) ReadEndMap() error {
	return r.endContainer(MajorTypeMap)
}

// HasMoreItems reports whether the current container has unread items. At
// the top level it reports whether input remains.
func (r *Reader) HasMoreItems() (bool, error) {
	f := r.top()
	if f == nil {
		if r.rootTags > 0 && r.pos >= len(r.data) {
			return false, r.fail(unexpectedEnd(1, r.pos, 0))
		}
		return r.pos < len(r.data), nil
	}
	if f.remaining >= 0 {
		return f.remaining > 0, nil
	}
	if r.pos >= len(r.data) {
		return false, r.fail(unexpectedEnd(1, r.pos, 0))
	}
	if r.data[r.pos] == CborBreak {
		if f.tags > 0 {
			return false, r.fail(danglingTag(r.pos))
		}
		return false, nil
	}
	return true, nil
}

// encodedLength returns the size of the well-formed item at offset at
func (r *Reader) encodedLength(at int) (int, error) {
	return r.itemLength(at, r.maxDepth-len(r.frames))
}

func containerTooLong(h header, offset int, avail uint64) error {
	return fmt.Errorf(
		"%w: %s at offset %d declares %d items, %d bytes remaining",
		gocardano.ErrUnexpectedEndOfData,
		h.major,
		offset,
		h.arg,
		avail,
	)
}

// skipLevel tracks an open array, map or tag while walking an item
type skipLevel struct {
	// remaining counts items still owed, IndefiniteLength until a break
	remaining int64
	items     int64
	container bool
	isMap     bool
}

// itemLength walks the item at offset at without decoding it and returns its
// size. Heads are checked with the same rules as the typed reads, including
// strict mode, and at most maxDepth arrays and maps may nest inside it.
func (r *Reader) itemLength(at int, maxDepth int) (int, error) {
	pos := at
	depth := 0
	stack := []skipLevel{{remaining: 1}}
	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		if top.remaining == 0 {
			if top.container {
				depth--
			}
			stack = stack[:len(stack)-1]
			continue
		}
		if pos >= len(r.data) {
			return 0, unexpectedEnd(1, pos, 0)
		}
		if r.data[pos] == CborBreak {
			if !top.container || top.remaining != IndefiniteLength {
				return 0, invalidValue("unexpected break at offset %d", pos)
			}
			if top.isMap && top.items%2 != 0 {
				return 0, invalidValue("map key without a value at offset %d", pos)
			}
			pos++
			depth--
			stack = stack[:len(stack)-1]
			continue
		}
		h, err := r.parseHeader(pos)
		if err != nil {
			return 0, err
		}
		if top.remaining > 0 {
			top.remaining--
		} else {
			top.items++
		}
		start := pos
		pos += h.size
		switch h.major {
		case MajorTypeByteString, MajorTypeTextString:
			data, next, err := r.readStringBody(h.major, start)
			if err != nil {
				return 0, err
			}
			if h.major == MajorTypeTextString && !utf8.Valid(data) {
				return 0, invalidValue("text string at offset %d is not valid UTF-8", start)
			}
			pos = next
		case MajorTypeArray, MajorTypeMap:
			if depth >= maxDepth {
				return 0, invalidValue("nesting depth exceeds %d at offset %d", maxDepth, start)
			}
			depth++
			lvl := skipLevel{
				remaining: IndefiniteLength,
				container: true,
				isMap:     h.major == MajorTypeMap,
			}
			if !h.indefinite {
				// Every item takes at least one byte
				avail := uint64(len(r.data) - pos)
				items := h.arg
				if lvl.isMap {
					if items > avail/2 {
						return 0, containerTooLong(h, start, avail)
					}
					items *= 2
				} else if items > avail {
					return 0, containerTooLong(h, start, avail)
				}
				lvl.remaining = int64(items) //nolint:gosec
			}
			stack = append(stack, lvl)
		case MajorTypeTag:
			stack = append(stack, skipLevel{remaining: 1})
		}
	}
	return pos - at, nil
}

// ReadEncodedValue returns a copy of the complete encoding of the next item,
// including any nested content
func (r *Reader) ReadEncodedValue() ([]byte, error) {
	if err := r.beginItem(); err != nil {
		return nil, r.fail(err)
	}
	n, err := r.encodedLength(r.pos)
	if err != nil {
		return nil, r.fail(err)
	}
	ret := bytes.Clone(r.data[r.pos : r.pos+n])
	r.pos += n
	r.endItem()
	return ret, nil
}

// SkipValue consumes the next item, including any nested content
func (r *Reader) SkipValue() error {
	_, err := r.ReadEncodedValue()
	return err
}

// ReadValue decodes the next item into dest with Decode
func (r *Reader) ReadValue(dest any) error {
	if err := r.beginItem(); err != nil {
		return r.fail(err)
	}
	n, err := r.encodedLength(r.pos)
	if err != nil {
		return r.fail(err)
	}
	if _, err := Decode(r.data[r.pos:r.pos+n], dest); err != nil {
		return r.fail(fmt.Errorf("%w: item at offset %d: %w", gocardano.ErrInvalidCborValue, r.pos, err))
	}
	r.pos += n
	r.endItem()
	return nil
}

// ReadCaptured runs fn and returns a copy of the exact bytes it consumed.
// It is the basis of cached encodings: a decoder wraps its field reads with
// it and keeps the result.
func (r *Reader) ReadCaptured(fn func(*Reader) error) ([]byte, error) {
	start := r.pos
	if err := fn(r); err != nil {
		return nil, err
	}
	return bytes.Clone(r.data[start:r.pos]), nil
}
