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

package common

import (
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/blinklabs-io/gocardano"
	"github.com/blinklabs-io/gocardano/cbor"
	"github.com/blinklabs-io/plutigo/data"
	"golang.org/x/crypto/blake2b"
)

const (
	Blake2b256Size = 32
	Blake2b224Size = 28
)

type Blake2b256 [Blake2b256Size]byte

func NewBlake2b256(data []byte) Blake2b256 {
	b := Blake2b256{}
	copy(b[:], data)
	return b
}

// NewBlake2b256FromHex parses a hex-encoded Blake2b-256 hash
func NewBlake2b256FromHex(hexData string) (Blake2b256, error) {
	var ret Blake2b256
	err := decodeHashHex(ret[:], hexData)
	return ret, err
}

func (b Blake2b256) String() string {
	return hex.EncodeToString(b[:])
}

func (b Blake2b256) Bytes() []byte {
	return b[:]
}

func (b Blake2b256) ToPlutusData() data.PlutusData {
	return data.NewByteString(b[:])
}

func (b Blake2b256) MarshalJSON() ([]byte, error) {
	return json.Marshal(b.String())
}

func (b Blake2b256) MarshalCBOR() ([]byte, error) {
	return marshalHash(b[:])
}

func (b *Blake2b256) UnmarshalCBOR(cborData []byte) error {
	return unmarshalHash(b[:], cborData)
}

// Blake2b256Hash generates a Blake2b-256 hash from the provided data
func Blake2b256Hash(data []byte) Blake2b256 {
	tmpHash, err := blake2b.New(Blake2b256Size, nil)
	if err != nil {
		panic(
			fmt.Sprintf(
				"unexpected error generating empty blake2b hash: %s",
				err,
			),
		)
	}
	tmpHash.Write(data)
	return Blake2b256(tmpHash.Sum(nil))
}

type Blake2b224 [Blake2b224Size]byte

func NewBlake2b224(data []byte) Blake2b224 {
	b := Blake2b224{}
	copy(b[:], data)
	return b
}

// NewBlake2b224FromHex parses a hex-encoded Blake2b-224 hash
func NewBlake2b224FromHex(hexData string) (Blake2b224, error) {
	var ret Blake2b224
	err := decodeHashHex(ret[:], hexData)
	return ret, err
}

func (b Blake2b224) String() string {
	return hex.EncodeToString(b[:])
}

func (b Blake2b224) Bytes() []byte {
	return b[:]
}

func (b Blake2b224) ToPlutusData() data.PlutusData {
	return data.NewByteString(b[:])
}

func (b Blake2b224) MarshalJSON() ([]byte, error) {
	return json.Marshal(b.String())
}

func (b Blake2b224) MarshalCBOR() ([]byte, error) {
	return marshalHash(b[:])
}

func (b *Blake2b224) UnmarshalCBOR(cborData []byte) error {
	return unmarshalHash(b[:], cborData)
}

// Blake2b224Hash generates a Blake2b-224 hash from the provided data
func Blake2b224Hash(data []byte) Blake2b224 {
	tmpHash, err := blake2b.New(Blake2b224Size, nil)
	if err != nil {
		panic(
			fmt.Sprintf(
				"unexpected error generating empty blake2b hash: %s",
				err,
			),
		)
	}
	tmpHash.Write(data)
	return Blake2b224(tmpHash.Sum(nil))
}

type (
	DatumHash = Blake2b256
	PolicyId  = Blake2b224
	TxHash    = Blake2b256
)

func decodeHashHex(dst []byte, hexData string) error {
	raw, err := hex.DecodeString(hexData)
	if err != nil {
		return fmt.Errorf("%w: %w", gocardano.ErrInvalidArgument, err)
	}
	if len(raw) != len(dst) {
		return fmt.Errorf(
			"%w: expected %d byte hash, got %d bytes",
			gocardano.ErrInvalidArgument,
			len(dst),
			len(raw),
		)
	}
	copy(dst, raw)
	return nil
}

func marshalHash(hash []byte) ([]byte, error) {
	w := cbor.NewWriter()
	defer w.Unref()
	if err := w.WriteByteString(hash); err != nil {
		return nil, err
	}
	return w.Encode()
}

func unmarshalHash(dst []byte, cborData []byte) error {
	r := cbor.NewReader(cborData)
	raw, err := r.ReadByteString()
	if err != nil {
		return err
	}
	if len(raw) != len(dst) {
		return fmt.Errorf(
			"%w: expected %d byte hash, got %d bytes",
			gocardano.ErrInvalidCborValue,
			len(dst),
			len(raw),
		)
	}
	copy(dst, raw)
	return nil
}
