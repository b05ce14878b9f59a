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

// Package bigint provides an arbitrary-precision signed integer.
//
// Arithmetic follows the math/big convention: the receiver holds the result
// and is returned, and it may alias any operand. Operands are never modified.
//
//	z := bigint.New().Add(x, y)
//	z.Mul(z, y)
//
// Division truncates toward zero and Rem takes the sign of the dividend.
// Mod is the Euclidean modulus and is never negative.
package bigint

import (
	"errors"
	"fmt"
	"math/big"
	"math/bits"

	"github.com/blinklabs-io/gocardano"
	"github.com/blinklabs-io/gocardano/endian"
	"github.com/blinklabs-io/gocardano/internal/refcount"
	utxorpc "github.com/utxorpc/go-codegen/utxorpc/v1alpha/cardano"
)

var ErrDivisionByZero = fmt.Errorf("%w: division by zero", gocardano.ErrInvalidArgument)

var mask64 = new(big.Int).SetUint64(^uint64(0))

// BigInt is a reference-counted arbitrary-precision signed integer. The zero
// value is 0 and holds one reference.
type BigInt struct {
	refcount.Counter
	v big.Int
}

// New returns a BigInt set to 0
func New() *BigInt {
	return &BigInt{}
}

func FromInt64(i int64) *BigInt {
	ret := &BigInt{}
	ret.v.SetInt64(i)
	return ret
}

func FromUint64(u uint64) *BigInt {
	ret := &BigInt{}
	ret.v.SetUint64(u)
	return ret
}

// FromBig returns a BigInt holding a copy of b. A nil b yields 0.
func FromBig(b *big.Int) *BigInt {
	ret := &BigInt{}
	if b != nil {
		ret.v.Set(b)
	}
	return ret
}

// FromString parses s in the given base (2 to 62). A leading sign is allowed.
func FromString(s string, base int) (*BigInt, error) {
	if base < 2 || base > big.MaxBase {
		return nil, fmt.Errorf("%w: unsupported base %d", gocardano.ErrInvalidArgument, base)
	}
	ret := &BigInt{}
	if _, ok := ret.v.SetString(s, base); !ok {
		return nil, fmt.Errorf("%w: cannot parse %q as a base %d integer", gocardano.ErrConversionFailed, s, base)
	}
	return ret, nil
}

// FromBytes interprets data as an unsigned magnitude in the given byte order
func FromBytes(data []byte, order endian.ByteOrder) (*BigInt, error) {
	ret := &BigInt{}
	switch order {
	case endian.BigEndian:
		ret.v.SetBytes(data)
	case endian.LittleEndian:
		ret.v.SetBytes(reversed(data))
	default:
		return nil, fmt.Errorf("%w: unknown byte order %d", gocardano.ErrInvalidArgument, uint8(order))
	}
	return ret, nil
}

func reversed(data []byte) []byte {
	ret := make([]byte, len(data))
	for i, b := range data {
		ret[len(data)-1-i] = b
	}
	return ret
}

// Clone returns an independent copy with a fresh reference count
func (x *BigInt) Clone() *BigInt {
	if x == nil {
		return nil
	}
	ret := &BigInt{}
	ret.v.Set(&x.v)
	return ret
}

// Unref drops a reference. The last one releases the internal storage and
// leaves the value at 0.
func (x *BigInt) Unref() {
	if x == nil {
		return
	}
	if x.Counter.Unref() {
		x.v = big.Int{}
	}
}

func (x *BigInt) RefCount() int64 {
	if x == nil {
		return 0
	}
	return x.Count()
}

// Big returns a copy of the value as a *big.Int
func (x *BigInt) Big() *big.Int {
	return new(big.Int).Set(&x.v)
}

// Text returns the value in the given base, using lowercase letters for
// digits above 9
func (x *BigInt) Text(base int) string {
	if x == nil {
		return "<nil>"
	}
	return x.v.Text(base)
}

func (x *BigInt) String() string {
	return x.Text(10)
}

// StringSize returns the number of bytes PutString needs for base
func (x *BigInt) StringSize(base int) int {
	return len(x.v.Text(base))
}

// PutString writes the text form of x into dst and returns the number of
// bytes written. dst must hold at least StringSize(base) bytes.
func (x *BigInt) PutString(dst []byte, base int) (int, error) {
	if base < 2 || base > big.MaxBase {
		return 0, fmt.Errorf("%w: unsupported base %d", gocardano.ErrInvalidArgument, base)
	}
	s := x.v.Text(base)
	if len(dst) < len(s) {
		return 0, fmt.Errorf(
			"%w: need %d bytes, have %d",
			gocardano.ErrInsufficientBufferSize,
			len(s),
			len(dst),
		)
	}
	return copy(dst, s), nil
}

// low64 returns x modulo 2^64 in two's complement
func (x *BigInt) low64() uint64 {
	var tmp big.Int
	tmp.Abs(&x.v)
	ret := tmp.And(&tmp, mask64).Uint64()
	if x.v.Sign() < 0 {
		ret = -ret
	}
	return ret
}

// Int64 returns the low 64 bits of x as an int64. Values outside the int64
// range wrap; use IsInt64 to check first.
func (x *BigInt) Int64() int64 {
	if x.v.IsInt64() {
		return x.v.Int64()
	}
	return int64(x.low64()) //nolint:gosec
}

// Uint64 returns the low 64 bits of x. Negative values and values above
// MaxUint64 wrap; use IsUint64 to check first.
func (x *BigInt) Uint64() uint64 {
	if x.v.IsUint64() {
		return x.v.Uint64()
	}
	return x.low64()
}

func (x *BigInt) IsInt64() bool {
	return x.v.IsInt64()
}

func (x *BigInt) IsUint64() bool {
	return x.v.IsUint64()
}

// BytesSize returns the length of the minimal magnitude produced by Bytes
func (x *BigInt) BytesSize() int {
	return (x.v.BitLen() + 7) / 8
}

// Bytes returns the minimal magnitude of |x| in the given byte order. An
// unknown order yields big-endian.
func (x *BigInt) Bytes(order endian.ByteOrder) []byte {
	ret := x.v.Bytes()
	if order == endian.LittleEndian {
		return reversed(ret)
	}
	return ret
}

// PutBytes writes the magnitude of |x| into dst, which must be exactly
// BytesSize() long
func (x *BigInt) PutBytes(dst []byte, order endian.ByteOrder) error {
	if len(dst) != x.BytesSize() {
		return fmt.Errorf(
			"%w: magnitude needs %d bytes, got %d",
			gocardano.ErrInsufficientBufferSize,
			x.BytesSize(),
			len(dst),
		)
	}
	switch order {
	case endian.BigEndian:
		x.v.FillBytes(dst)
	case endian.LittleEndian:
		x.v.FillBytes(dst)
		for i, j := 0, len(dst)-1; i < j; i, j = i+1, j-1 {
			dst[i], dst[j] = dst[j], dst[i]
		}
	default:
		return fmt.Errorf("%w: unknown byte order %d", gocardano.ErrInvalidArgument, uint8(order))
	}
	return nil
}

func (z *BigInt) Add(x, y *BigInt) *BigInt {
	z.v.Add(&x.v, &y.v)
	return z
}

func (z *BigInt) Sub(x, y *BigInt) *BigInt {
	z.v.Sub(&x.v, &y.v)
	return z
}

func (z *BigInt) Mul(x, y *BigInt) *BigInt {
	z.v.Mul(&x.v, &y.v)
	return z
}

// Div sets z to x/y truncated toward zero
func (z *BigInt) Div(x, y *BigInt) (*BigInt, error) {
	if y.v.Sign() == 0 {
		return nil, ErrDivisionByZero
	}
	z.v.Quo(&x.v, &y.v)
	return z, nil
}

// Rem sets z to the truncated remainder x - y*(x/y), which has the sign of x
func (z *BigInt) Rem(x, y *BigInt) (*BigInt, error) {
	if y.v.Sign() == 0 {
		return nil, ErrDivisionByZero
	}
	z.v.Rem(&x.v, &y.v)
	return z, nil
}

// DivRem sets z to the truncated quotient and r to the remainder. z and r
// must be distinct.
func (z *BigInt) DivRem(x, y, r *BigInt) (*BigInt, *BigInt, error) {
	if y.v.Sign() == 0 {
		return nil, nil, ErrDivisionByZero
	}
	if z == r {
		return nil, nil, fmt.Errorf("%w: quotient and remainder must be distinct", gocardano.ErrInvalidArgument)
	}
	z.v.QuoRem(&x.v, &y.v, &r.v)
	return z, r, nil
}

// Mod sets z to the Euclidean modulus of x by y, so 0 <= z < |y|
func (z *BigInt) Mod(x, y *BigInt) (*BigInt, error) {
	if y.v.Sign() == 0 {
		return nil, ErrDivisionByZero
	}
	z.v.Mod(&x.v, &y.v)
	return z, nil
}

// ModPow sets z to x**e mod m. m must be positive. A negative exponent
// requires x to be invertible modulo m.
func (z *BigInt) ModPow(x, e, m *BigInt) (*BigInt, error) {
	if m.v.Sign() <= 0 {
		return nil, fmt.Errorf("%w: modulus must be positive", gocardano.ErrInvalidArgument)
	}
	var tmp big.Int
	if tmp.Exp(&x.v, &e.v, &m.v) == nil {
		return nil, fmt.Errorf("%w: %s has no inverse modulo %s", gocardano.ErrInvalidArgument, x, m)
	}
	z.v.Set(&tmp)
	return z, nil
}

// ModInverse sets z to the multiplicative inverse of x modulo m
func (z *BigInt) ModInverse(x, m *BigInt) (*BigInt, error) {
	if m.v.Sign() <= 0 {
		return nil, fmt.Errorf("%w: modulus must be positive", gocardano.ErrInvalidArgument)
	}
	var tmp big.Int
	if tmp.ModInverse(&x.v, &m.v) == nil {
		return nil, fmt.Errorf("%w: %s has no inverse modulo %s", gocardano.ErrInvalidArgument, x, m)
	}
	z.v.Set(&tmp)
	return z, nil
}

func (z *BigInt) Neg(x *BigInt) *BigInt {
	z.v.Neg(&x.v)
	return z
}

func (z *BigInt) Abs(x *BigInt) *BigInt {
	z.v.Abs(&x.v)
	return z
}

// GCD sets z to the greatest common divisor of x and y, which is never
// negative. GCD(0, 0) is 0.
func (z *BigInt) GCD(x, y *BigInt) *BigInt {
	z.v.GCD(nil, nil, &x.v, &y.v)
	return z
}

// Pow sets z to base**exp
func (z *BigInt) Pow(base *BigInt, exp uint64) *BigInt {
	var e big.Int
	e.SetUint64(exp)
	z.v.Exp(&base.v, &e, nil)
	return z
}

// Bitwise operations use infinite two's complement for negative values

func (z *BigInt) And(x, y *BigInt) *BigInt {
	z.v.And(&x.v, &y.v)
	return z
}

func (z *BigInt) Or(x, y *BigInt) *BigInt {
	z.v.Or(&x.v, &y.v)
	return z
}

func (z *BigInt) Xor(x, y *BigInt) *BigInt {
	z.v.Xor(&x.v, &y.v)
	return z
}

// Not sets z to ^x, which is -x-1
func (z *BigInt) Not(x *BigInt) *BigInt {
	z.v.Not(&x.v)
	return z
}

func (x *BigInt) TestBit(i uint) bool {
	return x.v.Bit(int(i)) == 1 //nolint:gosec
}

// SetBit sets bit i of x in place
func (x *BigInt) SetBit(i uint) *BigInt {
	x.v.SetBit(&x.v, int(i), 1) //nolint:gosec
	return x
}

// ClearBit clears bit i of x in place
func (x *BigInt) ClearBit(i uint) *BigInt {
	x.v.SetBit(&x.v, int(i), 0) //nolint:gosec
	return x
}

// FlipBit toggles bit i of x in place
func (x *BigInt) FlipBit(i uint) *BigInt {
	x.v.SetBit(&x.v, int(i), x.v.Bit(int(i))^1) //nolint:gosec
	return x
}

func (z *BigInt) Lsh(x *BigInt, n uint) *BigInt {
	z.v.Lsh(&x.v, n)
	return z
}

// Rsh sets z to x >> n, rounding toward negative infinity
func (z *BigInt) Rsh(x *BigInt, n uint) *BigInt {
	z.v.Rsh(&x.v, n)
	return z
}

// BitCount returns the number of set bits in |x|
func (x *BigInt) BitCount() int {
	var ret int
	for _, w := range x.v.Bits() {
		ret += bits.OnesCount(uint(w))
	}
	return ret
}

// BitLength returns the length of |x| in bits. BitLength of 0 is 0.
func (x *BigInt) BitLength() int {
	return x.v.BitLen()
}

func (x *BigInt) Equal(y *BigInt) bool {
	if x == nil || y == nil {
		return x == y
	}
	return x.v.Cmp(&y.v) == 0
}

// Cmp returns -1, 0 or +1 as x is less than, equal to or greater than y
func (x *BigInt) Cmp(y *BigInt) int {
	return x.v.Cmp(&y.v)
}

// Sign returns -1, 0 or +1
func (x *BigInt) Sign() int {
	return x.v.Sign()
}

func (x *BigInt) IsZero() bool {
	return x.v.Sign() == 0
}

// Increment adds 1 to x in place
func (x *BigInt) Increment() *BigInt {
	x.v.Add(&x.v, big.NewInt(1))
	return x
}

// Decrement subtracts 1 from x in place
func (x *BigInt) Decrement() *BigInt {
	x.v.Sub(&x.v, big.NewInt(1))
	return x
}

// Assign copies the value of src into x. The reference count of x is
// unaffected.
func (x *BigInt) Assign(src *BigInt) *BigInt {
	x.v.Set(&src.v)
	return x
}

// SetInt64 sets x to i in place
func (x *BigInt) SetInt64(i int64) *BigInt {
	x.v.SetInt64(i)
	return x
}

// SetBig copies b into x in place
func (x *BigInt) SetBig(b *big.Int) *BigInt {
	x.v.Set(b)
	return x
}

func (x *BigInt) MarshalJSON() ([]byte, error) {
	return x.v.MarshalJSON()
}

func (x *BigInt) UnmarshalJSON(data []byte) error {
	if err := x.v.UnmarshalJSON(data); err != nil {
		return errors.Join(gocardano.ErrConversionFailed, err)
	}
	return nil
}

// Utxorpc converts x into its UTxO RPC representation
func (x *BigInt) Utxorpc() *utxorpc.BigInt {
	if x == nil {
		return &utxorpc.BigInt{
			BigInt: &utxorpc.BigInt_Int{Int: 0},
		}
	}
	// If it fits in int64, use the compact representation
	if x.v.IsInt64() {
		return &utxorpc.BigInt{
			BigInt: &utxorpc.BigInt_Int{Int: x.v.Int64()},
		}
	}
	if x.v.Sign() < 0 {
		// Negative bignums carry -1-n like CBOR tag 3
		var n big.Int
		n.Neg(&x.v)
		n.Sub(&n, big.NewInt(1))
		return &utxorpc.BigInt{
			BigInt: &utxorpc.BigInt_BigNInt{
				BigNInt: n.Bytes(),
			},
		}
	}
	return &utxorpc.BigInt{
		BigInt: &utxorpc.BigInt_BigUInt{
			BigUInt: x.v.Bytes(),
		},
	}
}
