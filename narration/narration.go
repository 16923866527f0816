// Package narration composes one line of game-master flavor text per
// gameplay beat. Composition is a pure function of the request: the same
// seed inputs and snapshot always produce byte-identical text and an
// identical draw trace, which is what makes narration replayable in tests
// and across processes.
package narration

// History is the caller-owned anti-repetition buffer, threaded through
// calls. Leave Cap or SimilarityThreshold zero to use the built-in
// defaults (24 lines, 0.72 Jaccard cutoff). Fragments may be omitted; they
// are recomputed from Lines when absent or stale.
type History struct {
	Lines               []string
	Fragments           []string
	Cap                 int
	SimilarityThreshold float64
}

// ToneVector is the world's standing mood on a [0,1] scale per axis.
// Out-of-range values are clamped.
type ToneVector struct {
	Darkness  float64
	Whimsy    float64
	Brutality float64
	Wonder    float64
	Levity    float64
}

// Classifier is an optional external content classifier consulted alongside
// the built-in banned-term list. Nil means built-ins only.
type Classifier interface {
	Forbidden(text string) bool
}

// Request carries everything one composition depends on. Seed identity is
// (CampaignSeed, SessionID, EventID); the rest is the input snapshot.
type Request struct {
	CampaignSeed int64
	SessionID    string
	EventID      string

	BoardType     string
	Biome         string
	ToneHint      string
	IntensityHint string

	// Pressure signals feeding the moment-tone weights. HPPercent is on a
	// 0-100 scale; zero means unreported.
	Tension       int
	BossPresent   bool
	HPPercent     float64
	ThemeKeywords []string

	RawEvents    []map[string]any
	StateChanges []string

	Objective      string
	Rumor          string
	ActionSummary  string
	RecoveryBeat   string
	BoardAnchor    string
	BoardNarration string

	SessionOpening bool
	SuppressError  bool
	ErrorText      string

	History       History
	LastTone      string
	LastVoiceMood string
	ToneVector    ToneVector
	Classifier    Classifier
}

// Draw is one recorded randomness draw. The label names the decision; the
// sequence of draws is a stable contract replay fixtures assert against.
type Draw struct {
	Label string
	Value float64
}

// Debug is the composition trace. It is load-bearing: tests assert on the
// exact draw sequence, not only the final string.
type Debug struct {
	Seed          int64
	Draws         []Draw
	TemplateID    string
	TemplateTags  []string
	Tone          string
	MomentTone    string
	VoiceMood     string
	Verbosity     float64
	EventIDs      []string
	EventTypes    []string
	HistoryBefore []string
	HistoryAfter  []string
	Retries       int
	FallbackUsed  bool
	DroppedLines  []string
}

// Result is the composed narration. TemplateID is empty when the safe
// fallback produced the text; TemplateIDs lists every template attempted in
// order.
type Result struct {
	Text        string
	TemplateID  string
	TemplateIDs []string
	Debug       Debug
}
