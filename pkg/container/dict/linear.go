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
	"math/rand"

	"github.com/hashlab/hashkit/pkg/common/hkerr"
	"github.com/hashlab/hashkit/pkg/container/hashfn"
)

// LPDict is an open-addressing table: exactly capacity slots, collisions
// resolved by probing forward with wraparound. There is no deletion, so a
// run of occupied slots never has holes punched into it and Search may
// stop at the first empty slot.
type LPDict[V any] struct {
	slots   []cell[V]
	h       hasher
	elemCnt uint64
}

// NewLinearProbing creates an empty linear-probing dictionary with exactly
// capacity slots. The degree-4 polynomial hash is drawn from rnd and stays
// fixed for the dictionary's lifetime.
func NewLinearProbing[V any](capacity int, rnd *rand.Rand) *LPDict[V] {
	return &LPDict[V]{
		slots: make([]cell[V], normalizeCapacity(capacity)),
		h:     hashfn.NewPoly4(ensureSource(rnd)),
	}
}

func (d *LPDict[V]) Search(key uint32) (V, error) {
	var zero V
	idx := d.slotOf(key)
	// a full table has no empty slot to stop at, hence the probe bound
	for probes := 0; probes < len(d.slots); probes++ {
		s := &d.slots[idx]
		if !s.used {
			break
		}
		if s.entry.Key == key {
			return s.entry.Value, nil
		}
		if idx++; idx == len(d.slots) {
			idx = 0
		}
	}
	return zero, hkerr.NewKeyNotFound(key)
}

func (d *LPDict[V]) Set(key uint32, value V) error {
	idx := d.slotOf(key)
	// the bounded probe visits every slot once, so it doubles as the
	// fullness check: falling out of the loop means capacity slots all
	// hold other keys
	for probes := 0; probes < len(d.slots); probes++ {
		s := &d.slots[idx]
		if !s.used {
			s.used = true
			s.entry = Entry[V]{Key: key, Value: value}
			d.elemCnt++
			return nil
		}
		if s.entry.Key == key {
			s.entry.Value = value
			return nil
		}
		if idx++; idx == len(d.slots) {
			idx = 0
		}
	}
	return hkerr.NewCapacityExceeded("linear-probing dict", len(d.slots))
}

func (d *LPDict[V]) Cardinality() uint64 {
	return d.elemCnt
}

func (d *LPDict[V]) slotOf(key uint32) int {
	return int(d.h.Hash(key) % uint32(len(d.slots)))
}
