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

package provider

import (
	"fmt"

	"github.com/blinklabs-io/gocardano"
	"github.com/blinklabs-io/gocardano/cbor"
	"github.com/blinklabs-io/gocardano/ledger/common"
)

// CborEncoder is implemented by entities that write themselves to a Writer
type CborEncoder interface {
	ToCbor(w *cbor.Writer) error
}

// EncodeHexPayload encodes v as a hex string for a request body
func EncodeHexPayload(v CborEncoder) (string, error) {
	w := cbor.NewWriter()
	defer w.Unref()
	if err := v.ToCbor(w); err != nil {
		return "", err
	}
	return w.EncodeHex()
}

func decodeHexPayload(payload string, fromCbor func(*cbor.Reader) error) error {
	r, err := cbor.NewReaderFromHex(payload)
	if err != nil {
		return err
	}
	defer r.Unref()
	if err := fromCbor(r); err != nil {
		return err
	}
	if r.BytesRemaining() > 0 {
		return fmt.Errorf(
			"%w: %d trailing bytes in payload",
			gocardano.ErrInvalidCborValue,
			r.BytesRemaining(),
		)
	}
	return nil
}

// DecodeRedeemersHex decodes a hex redeemer list from a response body
func DecodeRedeemersHex(payload string) (*common.RedeemerList, error) {
	ret := new(common.RedeemerList)
	if err := decodeHexPayload(payload, ret.FromCbor); err != nil {
		return nil, err
	}
	return ret, nil
}

// DecodePlutusDataHex decodes a hex datum from a response body
func DecodePlutusDataHex(payload string) (*common.PlutusData, error) {
	ret := new(common.PlutusData)
	if err := decodeHexPayload(payload, ret.FromCbor); err != nil {
		return nil, err
	}
	return ret, nil
}

// DecodeTxHex decodes a hex transaction into raw CBOR, checking that it
// holds exactly one well-formed item
func DecodeTxHex(payload string) ([]byte, error) {
	var ret []byte
	err := decodeHexPayload(payload, func(r *cbor.Reader) error {
		var err error
		ret, err = r.ReadEncodedValue()
		return err
	})
	if err != nil {
		return nil, err
	}
	return ret, nil
}
