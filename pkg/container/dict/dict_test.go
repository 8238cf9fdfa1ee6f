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
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hashlab/hashkit/pkg/common/hkerr"
)

// constHash sends every key to one slot; identHash exposes the raw key.
// Both stand in for hashfn instances where a test needs collisions on
// purpose.
type constHash uint32

func (c constHash) Hash(uint32) uint32 { return uint32(c) }

type identHash struct{}

func (identHash) Hash(key uint32) uint32 { return key }

type dictCase struct {
	name  string
	build func(capacity int, seed int64) Dictionary[string]
}

func allVariants() []dictCase {
	return []dictCase{
		{"naive", func(capacity int, seed int64) Dictionary[string] {
			return NewNaive[string](capacity)
		}},
		{"chained", func(capacity int, seed int64) Dictionary[string] {
			return NewChained[string](capacity, rand.New(rand.NewSource(seed)))
		}},
		{"linear", func(capacity int, seed int64) Dictionary[string] {
			return NewLinearProbing[string](capacity, rand.New(rand.NewSource(seed)))
		}},
		{"cuckoo", func(capacity int, seed int64) Dictionary[string] {
			return NewCuckoo[string](capacity, rand.New(rand.NewSource(seed)))
		}},
	}
}

func TestAbsence(t *testing.T) {
	for _, tt := range allVariants() {
		t.Run(tt.name, func(t *testing.T) {
			d := tt.build(16, 1)
			for _, key := range []uint32{0, 1, 7, 255, 1<<32 - 1} {
				_, err := d.Search(key)
				require.True(t, hkerr.IsKeyNotFound(err))
			}
			require.Equal(t, uint64(0), d.Cardinality())
		})
	}
}

func TestRoundTrip(t *testing.T) {
	// keys include 0 and the max value; load stays low enough that even
	// the fixed-capacity variants place everything
	keys := []uint32{0, 1, 2, 3, 5, 8, 13, 21, 34, 55, 89, 144, 1000, 4096, 1 << 20, 1<<32 - 1}
	for _, tt := range allVariants() {
		t.Run(tt.name, func(t *testing.T) {
			d := tt.build(64, 2)
			for _, key := range keys {
				require.NoError(t, d.Set(key, fmt.Sprintf("v%d", key)))
			}
			require.Equal(t, uint64(len(keys)), d.Cardinality())
			for _, key := range keys {
				got, err := d.Search(key)
				require.NoError(t, err)
				require.Equal(t, fmt.Sprintf("v%d", key), got)
			}
		})
	}
}

func TestOverwriteNotDuplicate(t *testing.T) {
	for _, tt := range allVariants() {
		t.Run(tt.name, func(t *testing.T) {
			d := tt.build(16, 3)
			for _, key := range []uint32{0, 9, 1<<32 - 1} {
				require.NoError(t, d.Set(key, "first"))
				require.NoError(t, d.Set(key, "second"))
				got, err := d.Search(key)
				require.NoError(t, err)
				require.Equal(t, "second", got)
			}
			require.Equal(t, uint64(3), d.Cardinality())
		})
	}
}

func TestSearchMiss(t *testing.T) {
	for _, tt := range allVariants() {
		t.Run(tt.name, func(t *testing.T) {
			d := tt.build(16, 4)
			require.NoError(t, d.Set(10, "x"))
			_, err := d.Search(11)
			require.True(t, hkerr.IsKeyNotFound(err))
		})
	}
}

func TestCapacityClamp(t *testing.T) {
	for _, tt := range allVariants() {
		t.Run(tt.name, func(t *testing.T) {
			d := tt.build(0, 5)
			require.NoError(t, d.Set(1, "one"))
			got, err := d.Search(1)
			require.NoError(t, err)
			require.Equal(t, "one", got)
		})
	}
}
