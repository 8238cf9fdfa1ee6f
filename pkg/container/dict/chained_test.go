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
	"testing"

	"github.com/stretchr/testify/require"
)

func TestChainSingleBucketDegeneration(t *testing.T) {
	// a constant hash funnels everything into bucket 0; the dictionary
	// slows down but never refuses an insert
	d := NewChained[int](4, rand.New(rand.NewSource(1)))
	d.h = constHash(0)

	for i := 0; i < 50; i++ {
		require.NoError(t, d.Set(uint32(i), i))
	}
	require.Equal(t, uint64(50), d.Cardinality())
	require.Equal(t, 50, len(d.buckets[0]))
	for b := 1; b < 4; b++ {
		require.Empty(t, d.buckets[b])
	}
	for i := 0; i < 50; i++ {
		got, err := d.Search(uint32(i))
		require.NoError(t, err)
		require.Equal(t, i, got)
	}
}

func TestChainBucketScoping(t *testing.T) {
	d := NewChained[string](4, rand.New(rand.NewSource(2)))
	d.h = identHash{}

	// 1 and 5 share bucket 1, 2 is alone in bucket 2
	require.NoError(t, d.Set(1, "one"))
	require.NoError(t, d.Set(5, "five"))
	require.NoError(t, d.Set(2, "two"))
	require.Equal(t, 2, len(d.buckets[1]))
	require.Equal(t, 1, len(d.buckets[2]))

	// overwriting scans only the target bucket and replaces in place
	require.NoError(t, d.Set(5, "FIVE"))
	require.Equal(t, 2, len(d.buckets[1]))
	got, err := d.Search(5)
	require.NoError(t, err)
	require.Equal(t, "FIVE", got)
	require.Equal(t, uint64(3), d.Cardinality())
}
