// Cratedigger - Crate Digging Album Discovery API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cratedigger

package discovery

import (
	"math/rand/v2"
	"sync"
)

const lowercase = "abcdefghijklmnopqrstuvwxyz"

// lockedRand serializes access to a *rand.Rand, which is not safe for
// concurrent use.
type lockedRand struct {
	mu sync.Mutex
	r  *rand.Rand
}

func newLockedRand(r *rand.Rand) *lockedRand {
	if r == nil {
		r = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &lockedRand{r: r}
}

// intN returns a value in [0, n).
func (l *lockedRand) intN(n int) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.r.IntN(n)
}

// intRange returns a value in [lo, hi].
func (l *lockedRand) intRange(lo, hi int) int {
	return lo + l.intN(hi-lo+1)
}

func (l *lockedRand) shuffle(n int, swap func(i, j int)) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.r.Shuffle(n, swap)
}

// sampleIndexes returns k distinct indexes of [0, n) in random order.
func (l *lockedRand) sampleIndexes(n, k int) []int {
	l.mu.Lock()
	perm := l.r.Perm(n)
	l.mu.Unlock()
	if k > n {
		k = n
	}
	return perm[:k]
}

// letters returns a random lowercase string of length n.
func (l *lockedRand) letters(n int) string {
	l.mu.Lock()
	defer l.mu.Unlock()

	b := make([]byte, n)
	for i := range b {
		b[i] = lowercase[l.r.IntN(len(lowercase))]
	}
	return string(b)
}

// shuffleSlice shuffles s in place.
func shuffleSlice[T any](l *lockedRand, s []T) {
	l.shuffle(len(s), func(i, j int) { s[i], s[j] = s[j], s[i] })
}
