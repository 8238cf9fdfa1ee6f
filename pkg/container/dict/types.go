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

// Package dict implements four dictionaries over uint32 keys, one per
// collision-resolution strategy: unsorted scan (NaiveDict), separate
// chaining (ChainDict), linear-probing open addressing (LPDict) and
// two-table cuckoo hashing (CuckooDict). They share one contract so the
// strategies can be compared against each other.
//
// All variants are single-threaded; callers sharing a dictionary across
// goroutines must serialize access themselves.
package dict

import (
	"math/rand"
	"time"
)

// Dictionary is the uniform contract over the strategy variants.
type Dictionary[V any] interface {
	// Search returns the value associated with key, or a KeyNotFound
	// error when the key is absent.
	Search(key uint32) (V, error)
	// Set associates key with value, replacing any previous association.
	// Only the fixed-capacity variants can return CapacityExceeded.
	Set(key uint32, value V) error
	// Cardinality returns the number of live entries.
	Cardinality() uint64
}

var (
	_ Dictionary[int] = &NaiveDict[int]{}
	_ Dictionary[int] = &ChainDict[int]{}
	_ Dictionary[int] = &LPDict[int]{}
	_ Dictionary[int] = &CuckooDict[int]{}
)

// Entry is one owned key/value pair. A dictionary holds at most one live
// entry per distinct key.
type Entry[V any] struct {
	Key   uint32
	Value V
}

// cell is a tagged slot in the fixed-capacity variants. Keys may be zero,
// so occupancy is an explicit flag rather than a key sentinel.
type cell[V any] struct {
	used  bool
	entry Entry[V]
}

// hasher is the hash capability consulted by the hashed variants. The
// constructors always assign a hashfn instance; tests substitute
// deterministic stand-ins to force collisions.
type hasher interface {
	Hash(key uint32) uint32
}

func normalizeCapacity(capacity int) int {
	if capacity < 1 {
		capacity = 1
	}
	return capacity
}

func ensureSource(rnd *rand.Rand) *rand.Rand {
	if rnd != nil {
		return rnd
	}
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}
