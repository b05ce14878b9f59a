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

// ReaderState describes the next token a Reader will produce
type ReaderState uint8

const (
	StateUndefined ReaderState = iota
	StateUnsignedInteger
	StateNegativeInteger
	StateByteString
	StateStartIndefiniteByteString
	StateTextString
	StateStartIndefiniteTextString
	StateStartArray
	StateEndArray
	StateStartMap
	StateEndMap
	StateTag
	StateSimpleValue
	StateHalfFloat
	StateSingleFloat
	StateDoubleFloat
	StateNull
	StateBoolean
	StateUndefinedValue
	StateFinished
)

var readerStateNames = map[ReaderState]string{
	StateUndefined:                 "undefined",
	StateUnsignedInteger:           "unsigned integer",
	StateNegativeInteger:           "negative integer",
	StateByteString:                "byte string",
	StateStartIndefiniteByteString: "start of indefinite byte string",
	StateTextString:                "text string",
	StateStartIndefiniteTextString: "start of indefinite text string",
	StateStartArray:                "start of array",
	StateEndArray:                  "end of array",
	StateStartMap:                  "start of map",
	StateEndMap:                    "end of map",
	StateTag:                       "tag",
	StateSimpleValue:               "simple value",
	StateHalfFloat:                 "half-precision float",
	StateSingleFloat:               "single-precision float",
	StateDoubleFloat:               "double-precision float",
	StateNull:                      "null",
	StateBoolean:                   "boolean",
	StateUndefinedValue:            "undefined value",
	StateFinished:                  "finished",
}

func (s ReaderState) String() string {
	if name, ok := readerStateNames[s]; ok {
		return name
	}
	return "unknown"
}

// IsInteger reports whether the state is either integer kind
func (s ReaderState) IsInteger() bool {
	return s == StateUnsignedInteger || s == StateNegativeInteger
}
