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

// ChainDict hashes each key to one of a fixed number of buckets and scans
// only that bucket. Buckets grow without bound, so Set never fails; a
// badly loaded table degrades to long chains instead.
type ChainDict[V any] struct {
	buckets [][]Entry[V]
	h       hasher
	elemCnt uint64
}

// NewChained creates an empty chained dictionary with the given bucket
// count. The degree-1 polynomial hash is drawn from rnd and stays fixed
// for the dictionary's lifetime.
func NewChained[V any](capacity int, rnd *rand.Rand) *ChainDict[V] {
	return &ChainDict[V]{
		buckets: make([][]Entry[V], normalizeCapacity(capacity)),
		h:       hashfn.NewPoly1(ensureSource(rnd)),
	}
}

func (d *ChainDict[V]) Search(key uint32) (V, error) {
	bucket := d.buckets[d.bucketOf(key)]
	for i := range bucket {
		if bucket[i].Key == key {
			return bucket[i].Value, nil
		}
	}
	var zero V
	return zero, hkerr.NewKeyNotFound(key)
}

func (d *ChainDict[V]) Set(key uint32, value V) error {
	b := d.bucketOf(key)
	bucket := d.buckets[b]
	for i := range bucket {
		if bucket[i].Key == key {
			bucket[i].Value = value
			return nil
		}
	}
	d.buckets[b] = append(bucket, Entry[V]{Key: key, Value: value})
	d.elemCnt++
	return nil
}

func (d *ChainDict[V]) Cardinality() uint64 {
	return d.elemCnt
}

func (d *ChainDict[V]) bucketOf(key uint32) int {
	return int(d.h.Hash(key) % uint32(len(d.buckets)))
}
