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
	"math"
	"math/rand"

	"go.uber.org/zap"

	"github.com/hashlab/hashkit/pkg/common/hkerr"
	"github.com/hashlab/hashkit/pkg/container/hashfn"
	"github.com/hashlab/hashkit/pkg/logutil"
)

const (
	// cuckooRehashConstant is the c in the c*ln(capacity) eviction budget.
	cuckooRehashConstant = 5
	// cuckooMaxRehash bounds consecutive rehash attempts before an insert
	// is rejected. Each attempt draws two fresh tabular functions, so
	// repeated failure means the tables are genuinely too loaded.
	cuckooMaxRehash = 8
)

// CuckooDict keeps two tables of capacity slots, each with its own tabular
// hash function, so every key has exactly two home slots. Insertion evicts
// occupants back and forth between the tables; chains that run past the
// eviction budget force a full rehash under freshly drawn functions.
type CuckooDict[V any] struct {
	capacity int
	tables   [2][]cell[V]
	h        [2]hasher
	// newHash draws a replacement hash function during a rehash.
	newHash func() hasher
	// t is the table the next placement starts in. It deliberately
	// carries over between calls.
	t int
	// lc accumulates eviction steps across calls; once it reaches
	// threshold the next Set starts with a rehash.
	lc        uint64
	threshold uint64
	elemCnt   uint64
}

// NewCuckoo creates an empty cuckoo dictionary with two tables of capacity
// slots each. Both tabular hash functions are drawn from rnd, as are any
// replacements drawn by later rehashes.
func NewCuckoo[V any](capacity int, rnd *rand.Rand) *CuckooDict[V] {
	capacity = normalizeCapacity(capacity)
	rnd = ensureSource(rnd)
	d := &CuckooDict[V]{
		capacity:  capacity,
		threshold: rehashThreshold(capacity),
		newHash:   func() hasher { return hashfn.NewTabular(rnd) },
	}
	d.tables[0] = make([]cell[V], capacity)
	d.tables[1] = make([]cell[V], capacity)
	d.h[0] = d.newHash()
	d.h[1] = d.newHash()
	return d
}

func rehashThreshold(capacity int) uint64 {
	threshold := uint64(cuckooRehashConstant * math.Log(float64(capacity)))
	if threshold < 1 {
		// ln(1) == 0 would force a rehash on every Set
		threshold = 1
	}
	return threshold
}

func (d *CuckooDict[V]) Search(key uint32) (V, error) {
	if s := &d.tables[0][d.slotOf(0, key)]; s.used && s.entry.Key == key {
		return s.entry.Value, nil
	}
	if s := &d.tables[1][d.slotOf(1, key)]; s.used && s.entry.Key == key {
		return s.entry.Value, nil
	}
	var zero V
	return zero, hkerr.NewKeyNotFound(key)
}

func (d *CuckooDict[V]) Set(key uint32, value V) error {
	// the budget is only consulted between calls; an earlier call may
	// have left lc at or past it
	if d.lc >= d.threshold {
		if err := d.rehash(nil); err != nil {
			return err
		}
	}

	// an existing entry is overwritten in whichever table holds it, never
	// duplicated into the other one
	if s := &d.tables[0][d.slotOf(0, key)]; s.used && s.entry.Key == key {
		s.entry.Value = value
		return nil
	}
	if s := &d.tables[1][d.slotOf(1, key)]; s.used && s.entry.Key == key {
		s.entry.Value = value
		return nil
	}

	if d.elemCnt == uint64(2*d.capacity) {
		return hkerr.NewCapacityExceeded("cuckoo dict", 2*d.capacity)
	}

	e := Entry[V]{Key: key, Value: value}
	if !d.placeNew(e) {
		// eviction chain exceeded the budget mid-call: rehash now, with
		// the new entry folded in
		if err := d.rehash(&e); err != nil {
			return err
		}
	}
	d.elemCnt++
	return nil
}

func (d *CuckooDict[V]) Cardinality() uint64 {
	return d.elemCnt
}

// place runs the eviction chain for e: claim the home slot in the current
// table, or swap with its occupant and chase the evictee into the other
// table. It gives up once the chain has spent the eviction budget.
func (d *CuckooDict[V]) place(e Entry[V]) bool {
	for steps := uint64(0); ; steps++ {
		s := &d.tables[d.t][d.slotOf(d.t, e.Key)]
		if !s.used {
			s.used = true
			s.entry = e
			return true
		}
		if steps == d.threshold {
			return false
		}
		s.entry, e = e, s.entry
		d.t = 1 - d.t
		d.lc++
	}
}

// placeNew is the Set-path variant of place. A failed chain is unwound
// slot by slot, so the tables come out holding exactly the membership they
// held going in and the subsequent rehash replays a consistent snapshot.
func (d *CuckooDict[V]) placeNew(e Entry[V]) bool {
	startT := d.t
	var chain []*cell[V]
	for steps := uint64(0); ; steps++ {
		s := &d.tables[d.t][d.slotOf(d.t, e.Key)]
		if !s.used {
			s.used = true
			s.entry = e
			return true
		}
		if steps == d.threshold {
			for i := len(chain) - 1; i >= 0; i-- {
				chain[i].entry, e = e, chain[i].entry
			}
			d.t = startT
			return false
		}
		chain = append(chain, s)
		s.entry, e = e, s.entry
		d.t = 1 - d.t
		d.lc++
	}
}

// rehash redraws both hash functions, clears the tables and replays the
// placement of every held entry, plus extra if non-nil. Attempts whose
// replay runs into another over-long chain are thrown away and retried
// under yet another draw, up to cuckooMaxRehash times.
func (d *CuckooDict[V]) rehash(extra *Entry[V]) error {
	entries := make([]Entry[V], 0, d.elemCnt+1)
	for ti := range d.tables {
		for i := range d.tables[ti] {
			if d.tables[ti][i].used {
				entries = append(entries, d.tables[ti][i].entry)
			}
		}
	}
	if extra != nil {
		entries = append(entries, *extra)
	}

	oldTables := d.tables
	oldH := d.h
	oldT := d.t

	for attempt := 1; attempt <= cuckooMaxRehash; attempt++ {
		d.tables[0] = make([]cell[V], d.capacity)
		d.tables[1] = make([]cell[V], d.capacity)
		d.h[0] = d.newHash()
		d.h[1] = d.newHash()
		d.lc = 0
		d.t = 0

		if d.replay(entries) {
			logutil.Debug("cuckoo rehash",
				zap.Int("entries", len(entries)),
				zap.Int("attempt", attempt),
				zap.Uint64("evictionSteps", d.lc))
			return nil
		}
	}

	// no draw could place every entry; put the old state back so held
	// entries stay reachable. lc goes to zero so later overwrites are not
	// dragged into another doomed rehash.
	d.tables = oldTables
	d.h = oldH
	d.t = oldT
	d.lc = 0
	return hkerr.NewCapacityExceeded("cuckoo dict", 2*d.capacity)
}

func (d *CuckooDict[V]) replay(entries []Entry[V]) bool {
	for i := range entries {
		if !d.place(entries[i]) {
			return false
		}
	}
	return true
}

func (d *CuckooDict[V]) slotOf(table int, key uint32) int {
	return int(d.h[table].Hash(key) % uint32(d.capacity))
}
