// Package narrative houses the deterministic core behind the public
// narration pipeline.
//
// Every subpackage obeys one contract: no clock or entropy source, and
// no reads of ambient state. All randomness flows from a seed derived off the
// (campaign, session, event) identity, and every decision draws from its
// own labeled stream, so a draw's value depends only on the seed and the
// label. Identical inputs therefore reproduce byte-identical prose and an
// identical draw trace.
//
// The subpackages, in composition order:
//
//   - rng: seed derivation, labeled streams, and the draw journal
//   - selector: weighted picks with immediate-repeat avoidance
//   - event: raw gameplay records mapped to typed events
//   - templates: the prose template catalog, scored per event type
//   - tone: moment and narration tone selection from board pressure
//   - voice: verbosity, mood, and flavor line derivation
//   - history: the caller-owned anti-repetition line buffer
//   - guardrail: the content-safety predicate behind recomposition
package narrative
