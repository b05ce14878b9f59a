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
	"fmt"

	"github.com/blinklabs-io/gocardano"
	"github.com/blinklabs-io/gocardano/cbor"
	utxorpc "github.com/utxorpc/go-codegen/utxorpc/v1alpha/cardano"
)

// ExUnits represents the memory and steps budget for script execution,
// encoded as [mem, steps].
//
// The decoded encoding is kept until ClearCborCache is called. Code that
// assigns Memory or Steps directly on a decoded value must clear it.
type ExUnits struct {
	cbor.StructAsArray
	cbor.DecodeStoreCbor
	Memory uint64
	Steps  uint64
}

func NewExUnits(memory uint64, steps uint64) ExUnits {
	return ExUnits{Memory: memory, Steps: steps}
}

func (e *ExUnits) UnmarshalCBOR(cborData []byte) error {
	return e.UnmarshalCborGeneric(cborData, e)
}

func (e *ExUnits) MarshalCBOR() ([]byte, error) {
	w := cbor.NewWriter()
	defer w.Unref()
	if err := e.ToCbor(w); err != nil {
		return nil, err
	}
	return w.Encode()
}

// FromCbor decodes the next item of r
func (e *ExUnits) FromCbor(r *cbor.Reader) error {
	return e.CaptureCbor(r, func(r *cbor.Reader) error {
		count, err := r.ReadStartArray()
		if err != nil {
			return err
		}
		if count != 2 && count != cbor.IndefiniteLength {
			return fmt.Errorf("%w: ex units must have 2 elements, got %d", gocardano.ErrInvalidCborValue, count)
		}
		if e.Memory, err = r.ReadUint(); err != nil {
			return err
		}
		if e.Steps, err = r.ReadUint(); err != nil {
			return err
		}
		return r.ReadEndArray()
	})
}

// ToCbor writes the cached encoding when there is one
func (e *ExUnits) ToCbor(w *cbor.Writer) error {
	return cbor.WriteCachedOr(w, e, func(w *cbor.Writer) error {
		if err := w.WriteStartArray(2); err != nil {
			return err
		}
		if err := w.WriteUint(e.Memory); err != nil {
			return err
		}
		if err := w.WriteUint(e.Steps); err != nil {
			return err
		}
		return w.WriteEndArray()
	})
}

// Add returns the sum of both budgets
func (e ExUnits) Add(other ExUnits) (ExUnits, error) {
	mem := e.Memory + other.Memory
	steps := e.Steps + other.Steps
	if mem < e.Memory || steps < e.Steps {
		return ExUnits{}, fmt.Errorf("%w: ex units overflow", gocardano.ErrConversionFailed)
	}
	return NewExUnits(mem, steps), nil
}

// Equal compares the budgets, ignoring any cached encoding
func (e ExUnits) Equal(other ExUnits) bool {
	return e.Memory == other.Memory && e.Steps == other.Steps
}

func (e ExUnits) String() string {
	return fmt.Sprintf("ExUnits{mem: %d, steps: %d}", e.Memory, e.Steps)
}

func (e ExUnits) Utxorpc() *utxorpc.ExUnits {
	return &utxorpc.ExUnits{
		Memory: e.Memory,
		Steps:  e.Steps,
	}
}
