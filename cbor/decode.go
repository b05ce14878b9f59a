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
	"errors"
	"fmt"
	"math"
	"reflect"
	"sync"

	"github.com/blinklabs-io/gocardano"
	_cbor "github.com/fxamacker/cbor/v2"
	"github.com/jinzhu/copier"
)

// maxContainerItems is the largest element count the decode mode accepts
const maxContainerItems = math.MaxInt32

var (
	cachedDecMode     _cbor.DecMode
	cachedDecModeErr  error
	cachedDecModeOnce sync.Once
)

// getDecMode returns a cached DecMode, initializing it on first use
func getDecMode() (_cbor.DecMode, error) {
	cachedDecModeOnce.Do(func() {
		decOptions := _cbor.DecOptions{
			ExtraReturnErrors: _cbor.ExtraDecErrorUnknownField,
			// This defaults to 32, but there is ledger data in the wild using >64 nested levels
			MaxNestedLevels: DefaultMaxDepth,
			// Container sizes are bounded by the input length, as in Reader
			MaxArrayElements: maxContainerItems,
			MaxMapPairs:      maxContainerItems,
		}
		cachedDecMode, cachedDecModeErr = decOptions.DecModeWithTags(customTagSet)
	})
	return cachedDecMode, cachedDecModeErr
}

// Decode decodes the first data item in dataBytes into dest and returns the
// number of bytes it occupied
func Decode(dataBytes []byte, dest any) (int, error) {
	data := bytes.NewReader(dataBytes)
	decMode, err := getDecMode()
	if err != nil {
		return 0, err
	}
	if decMode == nil {
		return 0, errors.New("CBOR decoder mode not initialized")
	}
	dec := decMode.NewDecoder(data)
	err = dec.Decode(dest)
	return dec.NumBytesRead(), err
}

// wellformed checks that data holds exactly one well-formed data item with
// at most maxDepth nested arrays and maps
func wellformed(data []byte, maxDepth int) error {
	r := &Reader{data: data, maxDepth: maxDepth}
	n, err := r.itemLength(0, maxDepth)
	if err != nil {
		if errors.Is(err, gocardano.ErrInvalidCborValue) {
			return err
		}
		return fmt.Errorf("%w: %w", gocardano.ErrInvalidCborValue, err)
	}
	if n != len(data) {
		return invalidValue("%d trailing bytes after encoded item", len(data)-n)
	}
	return nil
}

// ListLength returns the declared length of the CBOR array at the start of
// cborData, or IndefiniteLength
func ListLength(cborData []byte) (int, error) {
	r := NewReader(cborData)
	ret, err := r.ReadStartArray()
	if err != nil {
		return 0, err
	}
	return int(ret), nil
}

var (
	decodeGenericTypeCache      = map[reflect.Type]reflect.Type{}
	decodeGenericTypeCacheMutex sync.RWMutex
)

// DecodeGeneric decodes the specified CBOR into the destination object without using the
// destination object's UnmarshalCBOR() function
func DecodeGeneric(cborData []byte, dest any) error {
	valueDest := reflect.ValueOf(dest)
	if valueDest.Kind() != reflect.Pointer ||
		valueDest.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("%w: destination must be a pointer to a struct", gocardano.ErrInvalidArgument)
	}
	typeDest := valueDest.Elem().Type()
	decodeGenericTypeCacheMutex.RLock()
	tmpTypeDest, ok := decodeGenericTypeCache[typeDest]
	decodeGenericTypeCacheMutex.RUnlock()
	if !ok {
		// Build a struct type with the same exported fields so that decoding
		// bypasses any custom UnmarshalCBOR() on the destination
		destTypeFields := []reflect.StructField{}
		for i := range typeDest.NumField() {
			tmpField := typeDest.Field(i)
			if tmpField.IsExported() && tmpField.Name != "DecodeStoreCbor" {
				destTypeFields = append(destTypeFields, tmpField)
			}
		}
		tmpTypeDest = reflect.StructOf(destTypeFields)
		decodeGenericTypeCacheMutex.Lock()
		decodeGenericTypeCache[typeDest] = tmpTypeDest
		decodeGenericTypeCacheMutex.Unlock()
	}
	tmpDest := reflect.New(tmpTypeDest)
	if _, err := Decode(cborData, tmpDest.Interface()); err != nil {
		return err
	}
	// Copy values from temporary object into destination object
	if err := copier.Copy(dest, tmpDest.Interface()); err != nil {
		return err
	}
	return nil
}
