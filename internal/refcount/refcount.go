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

// Package refcount provides an embeddable reference counter for objects that
// are shared between owners and release their storage explicitly
package refcount

import "sync/atomic"

// Counter tracks outstanding references to an object. The zero value holds a
// single reference, so embedding types don't need to initialize it.
type Counter struct {
	// refs stores the reference count minus one
	refs atomic.Int64
}

// Ref adds a reference
func (c *Counter) Ref() {
	c.refs.Add(1)
}

// Unref drops a reference and reports whether it was the last one. The caller
// is expected to release the object's storage when this returns true.
func (c *Counter) Unref() bool {
	for {
		cur := c.refs.Load()
		if cur < 0 {
			return false
		}
		if c.refs.CompareAndSwap(cur, cur-1) {
			return cur == 0
		}
	}
}

// Move drops a reference without reporting release. It supports handing
// ownership to a function that takes its own reference.
func (c *Counter) Move() {
	for {
		cur := c.refs.Load()
		if cur < 0 || c.refs.CompareAndSwap(cur, cur-1) {
			return
		}
	}
}

// Count returns the number of outstanding references
func (c *Counter) Count() int64 {
	return c.refs.Load() + 1
}
