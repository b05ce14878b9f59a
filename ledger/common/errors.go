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
	"errors"
	"fmt"

	"github.com/blinklabs-io/gocardano"
)

var (
	ErrUnknownRedeemerTag = errors.New("unknown redeemer tag")
	ErrRedeemerNotFound   = errors.New("redeemer not found")
)

// UnknownRedeemerTagError indicates a redeemer tag outside the known purposes
type UnknownRedeemerTagError struct {
	Tag uint64
}

func (e UnknownRedeemerTagError) Error() string {
	return fmt.Sprintf("unknown redeemer tag %d", e.Tag)
}

func (UnknownRedeemerTagError) Unwrap() error { return gocardano.ErrInvalidCborValue }

func (UnknownRedeemerTagError) Is(target error) bool {
	return target == ErrUnknownRedeemerTag
}

// RedeemerNotFoundError indicates that a list has no redeemer for a purpose
type RedeemerNotFoundError struct {
	Tag   RedeemerTag
	Index uint64
}

func (e RedeemerNotFoundError) Error() string {
	return fmt.Sprintf("no redeemer for %s index %d", e.Tag, e.Index)
}

func (RedeemerNotFoundError) Unwrap() error { return gocardano.ErrInvalidArgument }

func (RedeemerNotFoundError) Is(target error) bool {
	return target == ErrRedeemerNotFound
}
