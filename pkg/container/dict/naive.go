// Copyright 2024 Hashlab
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package dict

import (
	"github.com/hashlab/hashkit/pkg/common/hkerr"
)

// NaiveDict resolves every operation by scanning an unsorted entry
// sequence. It is the O(n) baseline the hashed variants are measured
// against.
type NaiveDict[V any] struct {
	entries []Entry[V]
}

// NewNaive creates an empty naive dictionary. The capacity only sizes the
// initial allocation; the entry sequence grows without bound.
func NewNaive[V any](capacity int) *NaiveDict[V] {
	return &NaiveDict[V]{
		entries: make([]Entry[V], 0, normalizeCapacity(capacity)),
	}
}

func (d *NaiveDict[V]) Search(key uint32) (V, error) {
	if i := d.indexOf(key); i >= 0 {
		return d.entries[i].Value, nil
	}
	var zero V
	return zero, hkerr.NewKeyNotFound(key)
}

func (d *NaiveDict[V]) Set(key uint32, value V) error {
	if i := d.indexOf(key); i >= 0 {
		d.entries[i].Value = value
		return nil
	}
	d.entries = append(d.entries, Entry[V]{Key: key, Value: value})
	return nil
}

func (d *NaiveDict[V]) Cardinality() uint64 {
	return uint64(len(d.entries))
}

func (d *NaiveDict[V]) indexOf(key uint32) int {
	for i := range d.entries {
		if d.entries[i].Key == key {
			return i
		}
	}
	return -1
}
