// Package selector implements weighted choice over keyed tables, including
// the no-immediate-repeat variant the tone and voice engines select with.
package selector

import (
	"github.com/wrenfield/skald/internal/narrative/rng"
)

// Entry pairs a selectable key with its weight. Entries with zero or
// negative weight are never chosen.
type Entry struct {
	Key    string
	Weight float64
}

// WeightedPick draws one key proportional to the positive weights using the
// provided stream. It reports false when no entry has positive weight.
func WeightedPick(stream *rng.Stream, entries []Entry) (string, bool) {
	weights := make([]float64, len(entries))
	for i, entry := range entries {
		weights[i] = entry.Weight
	}
	index := stream.WeightedIndex(weights)
	if index < 0 {
		return "", false
	}
	return entries[index].Key, true
}

// WeightedPickWithoutImmediateRepeat draws a key from the stream derived at
// (seed, seedKey+salt) and refuses to return lastValue when any alternative
// with positive weight exists. On a collision it re-draws exactly once from a
// "#1"-salted sub-stream with the colliding key's weight zeroed, so the
// repeat survives only when it is the sole positive-weight key. The base
// stream is never advanced past its single draw; replay of other labels is
// unaffected by whether the re-draw happened.
func WeightedPickWithoutImmediateRepeat(seed int64, journal *rng.Journal, entries []Entry, seedKey, lastValue, salt string) (string, bool) {
	stream := rng.Derive(seed, seedKey+salt, journal)
	first, ok := WeightedPick(stream, entries)
	if !ok {
		return "", false
	}
	if first != lastValue {
		return first, true
	}

	hasAlternative := false
	for _, entry := range entries {
		if entry.Key != lastValue && entry.Weight > 0 {
			hasAlternative = true
			break
		}
	}
	if !hasAlternative {
		// Accept the repeat: forcing a different key would mean inventing one.
		return first, true
	}

	reduced := make([]Entry, len(entries))
	copy(reduced, entries)
	for i := range reduced {
		if reduced[i].Key == lastValue {
			reduced[i].Weight = 0
		}
	}
	redraw := rng.Derive(seed, seedKey+salt+"#1", journal)
	second, ok := WeightedPick(redraw, reduced)
	if !ok {
		return first, true
	}
	return second, true
}
