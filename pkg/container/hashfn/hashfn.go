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

// Package hashfn provides randomly drawn hash functions over uint32 keys.
// Each instance is fixed at construction; drawing a fresh instance from the
// same family is how callers escape a bad draw (see the cuckoo rehash).
//
// The polynomial families compute in uint32 arithmetic on purpose: the
// wraparound is part of the universal-hashing construction, not an overflow
// bug.
package hashfn

import (
	"math/rand"
	"time"
)

// LargePrime is the largest prime below 2^31. Polynomial coefficients are
// drawn uniformly from [0, LargePrime).
const LargePrime = 2147483647

// Func is the contract shared by all hash-function variants: a pure,
// deterministic function of the key and the instance's frozen random state.
type Func interface {
	Hash(key uint32) uint32
}

var (
	_ Func = &Poly1{}
	_ Func = &Poly4{}
	_ Func = &Tabular{}
)

// ensureSource returns rnd, or a time-seeded source when rnd is nil.
func ensureSource(rnd *rand.Rand) *rand.Rand {
	if rnd != nil {
		return rnd
	}
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}

func coefficient(rnd *rand.Rand) uint32 {
	return uint32(rnd.Int31n(LargePrime))
}

// Poly1 is the degree-1 polynomial h(x) = a0 + a1*x.
type Poly1 struct {
	a0 uint32
	a1 uint32
}

func NewPoly1(rnd *rand.Rand) *Poly1 {
	rnd = ensureSource(rnd)
	return &Poly1{
		a0: coefficient(rnd),
		a1: coefficient(rnd),
	}
}

func (h *Poly1) Hash(key uint32) uint32 {
	return h.a0 + h.a1*key
}

// Poly4 is the degree-4 polynomial
// h(x) = a0 + a1*x + a2*x^2 + a3*x^3 + a4*x^4.
type Poly4 struct {
	a [5]uint32
}

func NewPoly4(rnd *rand.Rand) *Poly4 {
	rnd = ensureSource(rnd)
	h := &Poly4{}
	for i := range h.a {
		h.a[i] = coefficient(rnd)
	}
	return h
}

func (h *Poly4) Hash(key uint32) uint32 {
	x2 := key * key
	x3 := x2 * key
	x4 := x3 * key
	return h.a[0] + h.a[1]*key + h.a[2]*x2 + h.a[3]*x3 + h.a[4]*x4
}

// Tabular is a byte-sliced tabulation hash: four tables of 256 random
// values, one per key byte, XORed together. Byte 0 is the least
// significant byte of the key.
type Tabular struct {
	t [4][256]uint32
}

func NewTabular(rnd *rand.Rand) *Tabular {
	rnd = ensureSource(rnd)
	h := &Tabular{}
	for i := range h.t {
		for j := range h.t[i] {
			h.t[i][j] = rnd.Uint32()
		}
	}
	return h
}

func (h *Tabular) Hash(key uint32) uint32 {
	return h.t[0][byte(key)] ^
		h.t[1][byte(key>>8)] ^
		h.t[2][byte(key>>16)] ^
		h.t[3][byte(key>>24)]
}
