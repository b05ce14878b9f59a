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

package main

import (
	"bytes"
	"fmt"

	"github.com/blinklabs-io/gocardano/cbor"
	"github.com/blinklabs-io/gocardano/ledger/common"
	"github.com/blinklabs-io/gocardano/provider"
)

func cmdStructure(input string) (string, error) {
	r, err := cbor.NewReaderFromHex(input)
	if err != nil {
		return "", err
	}
	defer r.Unref()
	var ret bytes.Buffer
	if err := dumpStructure(r, &ret, ""); err != nil {
		return "", err
	}
	return ret.String(), nil
}

// dumpStructure writes an indented outline of the next item. Byte strings
// are summarized by length.
func dumpStructure(r *cbor.Reader, out *bytes.Buffer, prefix string) error {
	state, err := r.PeekState()
	if err != nil {
		return err
	}
	switch state {
	case cbor.StateUnsignedInteger:
		v, err := r.ReadUint()
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "%s0x%x (%d),\n", prefix, v, v)
	case cbor.StateNegativeInteger:
		v, err := r.ReadBigInt()
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "%s%s,\n", prefix, v.String())
	case cbor.StateByteString, cbor.StateStartIndefiniteByteString:
		v, err := r.ReadByteString()
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "%s<bytes> (length %d),\n", prefix, len(v))
	case cbor.StateTextString, cbor.StateStartIndefiniteTextString:
		v, err := r.ReadTextString()
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "%s%q,\n", prefix, v)
	case cbor.StateStartArray:
		if _, err := r.ReadStartArray(); err != nil {
			return err
		}
		fmt.Fprintf(out, "%s[\n", prefix)
		if err := dumpItems(r, out, prefix+"  ", 1); err != nil {
			return err
		}
		if err := r.ReadEndArray(); err != nil {
			return err
		}
		fmt.Fprintf(out, "%s],\n", prefix)
	case cbor.StateStartMap:
		if _, err := r.ReadStartMap(); err != nil {
			return err
		}
		fmt.Fprintf(out, "%s{\n", prefix)
		if err := dumpItems(r, out, prefix+"  ", 2); err != nil {
			return err
		}
		if err := r.ReadEndMap(); err != nil {
			return err
		}
		fmt.Fprintf(out, "%s},\n", prefix)
	case cbor.StateTag:
		tagNum, err := r.ReadTag()
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "%stag %d:\n", prefix, tagNum)
		return dumpStructure(r, out, prefix+"  ")
	case cbor.StateHalfFloat, cbor.StateSingleFloat, cbor.StateDoubleFloat:
		v, err := r.ReadDouble()
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "%s%v,\n", prefix, v)
	case cbor.StateBoolean:
		v, err := r.ReadBool()
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "%s%t,\n", prefix, v)
	case cbor.StateNull:
		if err := r.ReadNull(); err != nil {
			return err
		}
		fmt.Fprintf(out, "%snull,\n", prefix)
	case cbor.StateUndefinedValue:
		if err := r.ReadUndefined(); err != nil {
			return err
		}
		fmt.Fprintf(out, "%sundefined,\n", prefix)
	default:
		v, err := r.ReadSimpleValue()
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "%ssimple(%d),\n", prefix, v)
	}
	return nil
}

// dumpItems writes container contents. Map entries are written as key and
// value on consecutive lines, with the value indented further.
func dumpItems(r *cbor.Reader, out *bytes.Buffer, prefix string, perEntry int) error {
	for {
		more, err := r.HasMoreItems()
		if err != nil {
			return err
		}
		if !more {
			return nil
		}
		if err := dumpStructure(r, out, prefix); err != nil {
			return err
		}
		if perEntry == 2 {
			if err := dumpStructure(r, out, prefix+"  "); err != nil {
				return err
			}
		}
	}
}

func cmdDatum(input string) (string, error) {
	datum, err := provider.DecodePlutusDataHex(input)
	if err != nil {
		return "", err
	}
	hash, err := datum.Hash()
	if err != nil {
		return "", err
	}
	var ret bytes.Buffer
	fmt.Fprintf(
		&ret,
		"kind: %s\nhash: %s\ndatum: %s\n",
		datum.Kind(),
		hash.String(),
		datum.String(),
	)
	if datum.Kind() != common.PlutusDataKindConstr {
		return ret.String(), nil
	}
	// Raw constructor fields, as stored on the wire
	datumCbor, err := datum.MarshalCBOR()
	if err != nil {
		return "", err
	}
	var constr cbor.ConstructorDecoder
	if err := constr.UnmarshalCBOR(datumCbor); err != nil {
		return "", err
	}
	fmt.Fprintf(&ret, "constructor: %d\nfields: %x\n", constr.Tag(), []byte(constr.Fields()))
	return ret.String(), nil
}

func cmdRedeemers(input string) (string, error) {
	redeemers, err := provider.DecodeRedeemersHex(input)
	if err != nil {
		return "", err
	}
	var ret bytes.Buffer
	fmt.Fprintf(&ret, "format: %s\n", redeemers.Format())
	for redeemer := range redeemers.Sorted() {
		fmt.Fprintf(
			&ret,
			"%s[%d]: %s %s\n",
			redeemer.Tag(),
			redeemer.Index(),
			redeemer.ExUnits(),
			redeemer.Data(),
		)
	}
	total, err := redeemers.TotalExUnits()
	if err != nil {
		return "", err
	}
	hash, err := redeemers.Hash()
	if err != nil {
		return "", err
	}
	fmt.Fprintf(&ret, "total: %s\nhash: %s\n", total, hash)
	return ret.String(), nil
}

func cmdValue(input string) (string, error) {
	r, err := cbor.NewReaderFromHex(input)
	if err != nil {
		return "", err
	}
	defer r.Unref()
	var value common.Value
	if err := value.FromCbor(r); err != nil {
		return "", err
	}
	return value.String() + "\n", nil
}
