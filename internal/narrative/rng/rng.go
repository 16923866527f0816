// Package rng implements the seeded randomness source for the narration
// pipeline.
package rng

import (
	"hash/fnv"
	"math/rand"
	"strconv"
)

// seedMask keeps derived seeds inside the positive 31-bit space shared with
// the host platform's journal replay tooling.
const seedMask = 1<<31 - 1

// DeriveSeed hashes the declared invocation identity into a 31-bit seed.
//
// # Determinism
//
// DeriveSeed is a pure function of its arguments. Identical
// (campaignSeed, sessionID, eventID) triples always yield the same seed;
// no wall-clock or process entropy is ever folded in. The returned seed
// identifies one narration invocation and everything downstream derives
// from it.
func DeriveSeed(campaignSeed int64, sessionID, eventID string) int64 {
	h := fnv.New64a()
	h.Write([]byte(strconv.FormatInt(campaignSeed, 10)))
	h.Write([]byte{0})
	h.Write([]byte(sessionID))
	h.Write([]byte{0})
	h.Write([]byte(eventID))
	return int64(h.Sum64()) & seedMask
}

// FoldLabel folds a draw label into a seed, producing the sub-seed a labeled
// stream generates from. Distinct labels under one seed yield draw sequences
// that look independent of each other.
func FoldLabel(seed int64, label string) int64 {
	h := fnv.New64a()
	h.Write([]byte(label))
	folded := seed ^ (int64(h.Sum64()) & seedMask)
	return folded & seedMask
}

// Draw records a single consumed random value and the label of the stream
// that produced it.
type Draw struct {
	Label string
	Value float64
}

// Journal accumulates every draw made during one narration call, in call
// order. The composer copies it into the debug trace; tests replay against
// it. A nil Journal disables recording.
type Journal struct {
	draws []Draw
}

// NewJournal returns an empty draw journal.
func NewJournal() *Journal {
	return &Journal{}
}

// Draws returns a copy of the recorded draws in call order.
func (j *Journal) Draws() []Draw {
	if j == nil {
		return nil
	}
	out := make([]Draw, len(j.draws))
	copy(out, j.draws)
	return out
}

// Len returns the number of recorded draws.
func (j *Journal) Len() int {
	if j == nil {
		return 0
	}
	return len(j.draws)
}

func (j *Journal) record(label string, value float64) {
	if j == nil {
		return
	}
	j.draws = append(j.draws, Draw{Label: label, Value: value})
}

// Stream is a labeled deterministic draw source.
//
// # Determinism
//
// A Stream is constructed fresh per decision from a plain seed and a label;
// it carries no hidden or global state. Identical (seed, label) pairs always
// produce identical draw sequences, so a draw's value is a pure function of
// the pair regardless of how many other streams were consumed first. This is
// the property replay tests lean on: re-running a call with one input changed
// still draws the same value at every shared label.
type Stream struct {
	label   string
	rng     *rand.Rand
	journal *Journal
}

// Derive constructs the stream for (seed, label), recording draws into
// journal. A nil journal is valid and disables recording.
func Derive(seed int64, label string, journal *Journal) *Stream {
	return &Stream{
		label:   label,
		rng:     rand.New(rand.NewSource(FoldLabel(seed, label))),
		journal: journal,
	}
}

// Next01 draws a float64 in [0, 1).
func (s *Stream) Next01() float64 {
	value := s.rng.Float64()
	s.journal.record(s.label, value)
	return value
}

// Intn draws an int in [0, n). It panics if n <= 0, matching math/rand.
func (s *Stream) Intn(n int) int {
	value := s.rng.Intn(n)
	s.journal.record(s.label, float64(value))
	return value
}

// Pick draws one entry from pool. An empty pool returns the empty string
// without consuming a draw.
func (s *Stream) Pick(pool []string) string {
	if len(pool) == 0 {
		return ""
	}
	return pool[s.Intn(len(pool))]
}

// WeightedIndex draws an index proportional to the non-negative weights.
// Entries with zero or negative weight are never chosen. When no positive
// weight exists it returns -1 without consuming a draw.
func (s *Stream) WeightedIndex(weights []float64) int {
	total := 0.0
	for _, w := range weights {
		if w > 0 {
			total += w
		}
	}
	if total <= 0 {
		return -1
	}

	target := s.Next01() * total
	acc := 0.0
	last := -1
	for i, w := range weights {
		if w <= 0 {
			continue
		}
		acc += w
		last = i
		if target < acc {
			return i
		}
	}
	// Floating-point accumulation can leave target a hair past acc; the last
	// positive-weight entry absorbs it.
	return last
}
