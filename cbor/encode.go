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
	"fmt"
	"reflect"
	"sync"

	"github.com/blinklabs-io/gocardano"
	_cbor "github.com/fxamacker/cbor/v2"
	"github.com/jinzhu/copier"
)

var (
	cachedEncMode     _cbor.EncMode
	cachedEncModeErr  error
	cachedEncModeOnce sync.Once
)

func getEncMode() (_cbor.EncMode, error) {
	cachedEncModeOnce.Do(func() {
		opts := _cbor.EncOptions{
			// Make sure that maps have ordered keys
			Sort: _cbor.SortCoreDeterministic,
		}
		cachedEncMode, cachedEncModeErr = opts.EncModeWithTags(customTagSet)
	})
	return cachedEncMode, cachedEncModeErr
}

// Encode encodes data to CBOR with deterministic map key ordering
func Encode(data any) ([]byte, error) {
	buf := bytes.NewBuffer(nil)
	em, err := getEncMode()
	if err != nil {
		return nil, err
	}
	enc := em.NewEncoder(buf)
	err = enc.Encode(data)
	return buf.Bytes(), err
}

var (
	encodeGenericTypeCache      = map[reflect.Type]reflect.Type{}
	encodeGenericTypeCacheMutex sync.RWMutex
)

// EncodeGeneric encodes the specified object to CBOR without using the source object's
// MarshalCBOR() function
func EncodeGeneric(src any) ([]byte, error) {
	valueSrc := reflect.ValueOf(src)
	if valueSrc.Kind() != reflect.Pointer ||
		valueSrc.Elem().Kind() != reflect.Struct {
		return nil, fmt.Errorf("%w: source must be a pointer to a struct", gocardano.ErrInvalidArgument)
	}
	typeSrc := valueSrc.Elem().Type()
	encodeGenericTypeCacheMutex.RLock()
	tmpTypeSrc, ok := encodeGenericTypeCache[typeSrc]
	encodeGenericTypeCacheMutex.RUnlock()
	if !ok {
		srcTypeFields := []reflect.StructField{}
		for i := range typeSrc.NumField() {
			tmpField := typeSrc.Field(i)
			if tmpField.IsExported() && tmpField.Name != "DecodeStoreCbor" {
				srcTypeFields = append(srcTypeFields, tmpField)
			}
		}
		tmpTypeSrc = reflect.StructOf(srcTypeFields)
		encodeGenericTypeCacheMutex.Lock()
		encodeGenericTypeCache[typeSrc] = tmpTypeSrc
		encodeGenericTypeCacheMutex.Unlock()
	}
	tmpSrc := reflect.New(tmpTypeSrc)
	if err := copier.Copy(tmpSrc.Interface(), src); err != nil {
		return nil, err
	}
	return Encode(tmpSrc.Interface())
}

// IndefLengthList encodes as an indefinite-length array
type IndefLengthList []any

func (i IndefLengthList) MarshalCBOR() ([]byte, error) {
	w := NewWriter()
	if err := w.WriteStartArray(IndefiniteLength); err != nil {
		return nil, err
	}
	for _, item := range i {
		if err := w.WriteValue(item); err != nil {
			return nil, err
		}
	}
	if err := w.WriteEndArray(); err != nil {
		return nil, err
	}
	return w.Encode()
}

// IndefLengthByteString encodes as an indefinite-length byte string with one
// chunk per element
type IndefLengthByteString [][]byte

func (i IndefLengthByteString) MarshalCBOR() ([]byte, error) {
	ret := []byte{CborTypeByteString | CborInfoIndefinite}
	for _, chunk := range i {
		data, err := Encode(chunk)
		if err != nil {
			return nil, err
		}
		ret = append(ret, data...)
	}
	return append(ret, CborBreak), nil
}
