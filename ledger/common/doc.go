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

// Package common provides the ledger entities that travel with a
// transaction: datums, redeemers, execution budgets and multi-asset values.
//
// Every entity decodes with FromCbor from a cbor.Reader and keeps the exact
// bytes it was decoded from. ToCbor replays those bytes until a setter
// changes the entity, so hashes computed over decoded data stay valid even
// when this package would have chosen a different encoding. Fresh entities
// are encoded from their fields.
//
// MarshalCBOR and UnmarshalCBOR wrap the same logic for use as fields of
// larger structs decoded with cbor.Decode.
package common
