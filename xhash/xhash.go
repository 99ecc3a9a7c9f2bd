// Copyright (C) 2020  Nexedi SA and Contributors.
//                     Kirill Smelkov <kirr@nexedi.com>
//
// This program is free software: you can Use, Study, Modify and Redistribute
// it under the terms of the GNU General Public License version 3, or (at your
// option) any later version, as published by the Free Software Foundation.
//
// You can also Link and Combine this program with other software covered by
// the terms of any of the Free Software licenses or any of the Open Source
// Initiative approved licenses and Convey the resulting work. Corresponding
// source of such a combination shall include the source code for all other
// software used.
//
// This program is distributed WITHOUT ANY WARRANTY; without even the implied
// warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
//
// See COPYING file for full licensing terms.
// See https://www.nexedi.com/licensing for rationale and options.

// Package xhash provides hash accumulation for keys of hashed data structures.
//
// Unlike hash/maphash the result is deterministic: equal sequences of blended
// values give equal sums in every process. Values of a composite key are
// blended one after another into the same Value:
//
//	h := xhash.New()
//	h.BlendString(k.name)
//	h.BlendUint64(k.id)
//	sum := h.Sum64()
package xhash

import (
	"encoding/binary"
	"math/bits"
)

// seed is initial, non-zero, state of a Value.
const seed = 0x5a3c96e7

// byteTable maps every byte to a random 64-bit word.
//
// It is generated, not random, so that sums stay the same across runs.
var byteTable [256]uint64

func init() {
	// splitmix64
	x := uint64(seed)
	for i := range byteTable {
		x += 0x9e3779b97f4a7c15
		z := x
		z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
		z = (z ^ (z >> 27)) * 0x94d049bb133111eb
		byteTable[i] = z ^ (z >> 31)
	}
}

// Value accumulates hash of blended in data.
//
// The zero Value is not seeded; use New.
type Value struct {
	v uint64
}

// New returns new Value ready to blend data into.
func New() Value {
	return Value{v: seed}
}

// Sum64 returns hash of everything blended so far.
func (h *Value) Sum64() uint64 { return h.v }

// blendByte mixes one byte into h.
func (h *Value) blendByte(b byte) {
	h.v = bits.RotateLeft64(h.v, 1) ^ byteTable[b]
}

// BlendBytes blends data into h.
func (h *Value) BlendBytes(data []byte) {
	for _, b := range data {
		h.blendByte(b)
	}
}

// BlendString blends s into h.
//
// s is terminated with NUL, so that blending "ab", "c" and "a", "bc" give
// different sums.
func (h *Value) BlendString(s string) {
	for i := 0; i < len(s); i++ {
		h.blendByte(s[i])
	}
	h.blendByte(0)
}

// BlendUint16 blends v into h.
func (h *Value) BlendUint16(v uint16) {
	var b [2]byte
	binary.LittleEndian.PutUint16(b[:], v)
	h.BlendBytes(b[:])
}

// BlendUint64 blends v into h.
func (h *Value) BlendUint64(v uint64) {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], v)
	h.BlendBytes(b[:])
}

// ----------------------------------------

// Hashable is implemented by keys which know how to hash themselves.
type Hashable interface {
	// Hash blends the key into h.
	Hash(h *Value)
}

// String is a string key.
type String string

func (s String) Hash(h *Value) { h.BlendString(string(s)) }

// Uint64 is an unsigned integer key.
type Uint64 uint64

func (u Uint64) Hash(h *Value) { h.BlendUint64(uint64(u)) }

// HashUint64 blends *p into h.
//
// It has the shape of a function hashing a key given by address, to be used
// together with key projections.
func HashUint64(h *Value, p *uint64) { h.BlendUint64(*p) }

// HashString blends *p into h.
func HashString(h *Value, p *string) { h.BlendString(*p) }

// Sum returns hash of one Hashable key.
func Sum(k Hashable) uint64 {
	h := New()
	k.Hash(&h)
	return h.Sum64()
}
