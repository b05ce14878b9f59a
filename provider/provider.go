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

// Package provider defines the interface between transaction tooling and a
// Cardano network backend. Implementations exchange CBOR payloads with the
// backend; this package only carries the interface, a logging decorator
// and helpers for the hex payloads most HTTP backends use.
package provider

import (
	"context"

	"github.com/blinklabs-io/gocardano/ledger/common"
)

// Provider is a Cardano network backend
type Provider interface {
	// Name identifies the backend in logs
	Name() string
	NetworkMagic() uint32
	// SubmitTransaction submits a signed transaction and returns its hash
	SubmitTransaction(ctx context.Context, txCbor []byte) (common.TxHash, error)
	// EvaluateTransaction returns the redeemers of a transaction with the
	// execution budgets the backend computed for them
	EvaluateTransaction(ctx context.Context, txCbor []byte) (*common.RedeemerList, error)
	GetDatum(ctx context.Context, hash common.DatumHash) (*common.PlutusData, error)
}
