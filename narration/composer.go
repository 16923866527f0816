package narration

import (
	"fmt"
	"strings"

	"github.com/wrenfield/skald/internal/narrative/event"
	"github.com/wrenfield/skald/internal/narrative/guardrail"
	"github.com/wrenfield/skald/internal/narrative/history"
	"github.com/wrenfield/skald/internal/narrative/rng"
	"github.com/wrenfield/skald/internal/narrative/templates"
	"github.com/wrenfield/skald/internal/narrative/tone"
	"github.com/wrenfield/skald/internal/narrative/voice"
)

// maxRetries bounds guardrail-driven recomposition. The cap plus the
// unconditional terminal fallback is what keeps Narrate total.
const maxRetries = 4

// genericAnchor ends the fallback ladder when the board supplies no anchor.
const genericAnchor = "The story steadies itself and carries on."

// Session openers - drawn at compose.intro when no board narration is given.
var introOpeners = []string{
	"The table quiets and the tale leans in.",
	"A new chapter opens its first page.",
	"The session gathers its breath and begins.",
	"Candles lit, maps unrolled, the story resumes.",
}

// Narrate composes the flavor text for one gameplay beat.
//
// # Determinism
//
// The draw seed derives from (CampaignSeed, SessionID, EventID). Every
// downstream decision draws from its own labeled stream under that seed, so
// a draw's value depends only on the seed and the label, never on how many
// draws other decisions made. Identical requests produce byte-identical
// text and an identical Debug.Draws sequence.
//
// # Failure
//
// Narrate never fails. Malformed fields fall back to safe defaults,
// guardrail retries are capped at four, and the terminal fallback line is
// emitted unchecked, so the returned text is always non-empty.
func Narrate(req Request) Result {
	seed := rng.DeriveSeed(req.CampaignSeed, req.SessionID, req.EventID)
	journal := rng.NewJournal()

	narrTone := tone.NormalizeNarration(req.ToneHint, seed, journal, tone.Narration(strings.ToLower(strings.TrimSpace(req.LastTone))))

	fallbackID := strings.TrimSpace(req.EventID)
	if fallbackID == "" {
		fallbackID = "event"
	}
	events := event.MapRecords(req.RawEvents, fallbackID)
	primary := syntheticPrimary(fallbackID)
	if len(events) > 0 {
		primary = events[0]
	}

	momentTone := tone.PickMoment(seed, journal, tone.Signals{
		BoardType:     req.BoardType,
		Biome:         req.Biome,
		Tension:       req.Tension,
		BossPresent:   req.BossPresent,
		HPPercent:     req.HPPercent,
		ThemeKeywords: req.ThemeKeywords,
	}, "tone.moment", "")

	profile := voice.DeriveProfile(seed, journal, voice.ToneVector(req.ToneVector), narrTone, strings.ToLower(strings.TrimSpace(req.LastVoiceMood)))

	c := &composer{
		req:        req,
		seed:       seed,
		journal:    journal,
		narrTone:   narrTone,
		momentTone: momentTone,
		profile:    profile,
		events:     events,
		primary:    primary,
		biome:      strings.ToLower(strings.TrimSpace(req.Biome)),
		intensity:  normalizeIntensity(req.IntensityHint, events, req.BossPresent),
		checker:    guardrail.NewChecker(req.Classifier),
		snapshot:   history.NewBuffer(req.History.Lines, req.History.Fragments, req.History.Cap, req.History.SimilarityThreshold),
		fill:       templates.DrawFillers(seed, journal),
	}
	return c.run()
}

type composer struct {
	req        Request
	seed       int64
	journal    *rng.Journal
	narrTone   tone.Narration
	momentTone tone.Moment
	profile    voice.Profile
	events     []event.Event
	primary    event.Event
	biome      string
	intensity  string
	checker    guardrail.Checker
	snapshot   history.Buffer
	fill       templates.Fillers
}

// run walks compose, validate, retry, finalize.
func (c *composer) run() Result {
	candidates := templates.ByEventType(c.primary.Type)

	result := Result{
		TemplateIDs: []string{},
		Debug: Debug{
			Seed:          c.seed,
			Tone:          string(c.narrTone),
			MomentTone:    string(c.momentTone),
			VoiceMood:     c.profile.Mood,
			Verbosity:     c.profile.Verbosity,
			EventIDs:      eventIDs(c.events),
			EventTypes:    eventTypes(c.events),
			HistoryBefore: append([]string(nil), c.snapshot.Lines...),
		},
	}

	var finalBuffer history.Buffer
	accepted := false
	rejections := 0
	dropped := []string{}

	for attempt := 0; attempt <= maxRetries; attempt++ {
		salt := ""
		if attempt > 0 {
			salt = fmt.Sprintf(".retry%d", attempt)
		}

		tmpl, ok := templates.PickScored(rng.Derive(c.seed, "template.pick"+salt, c.journal), candidates, string(c.narrTone), c.biome, c.intensity, excludedSet(result.TemplateIDs))
		if !ok {
			break
		}
		result.TemplateIDs = append(result.TemplateIDs, tmpl.ID)

		candidate, working, droppedLines := c.compose(tmpl, salt)
		dropped = droppedLines
		if candidate == "" {
			break
		}
		if c.checker.IsForbidden(candidate) {
			rejections++
			continue
		}

		result.Text = candidate
		result.TemplateID = tmpl.ID
		result.Debug.TemplateID = tmpl.ID
		result.Debug.TemplateTags = append([]string(nil), tmpl.Tags...)
		finalBuffer = working
		accepted = true
		break
	}

	if !accepted {
		text, fbBuffer := c.fallback()
		result.Text = text
		result.Debug.FallbackUsed = true
		finalBuffer = fbBuffer
	}

	result.Debug.Retries = min(rejections, maxRetries)
	result.Debug.DroppedLines = dropped
	result.Debug.HistoryAfter = append([]string(nil), finalBuffer.Lines...)
	result.Debug.Draws = publicDraws(c.journal)
	return result
}

// compose builds one candidate in fixed line order: error, intro, primary,
// voice, secondary, aside. Each line is checked against the working history
// (prior lines plus lines accepted earlier in this candidate) and dropped on
// rejection. Gate draws happen whether or not a line results, keeping the
// trace shape uniform.
func (c *composer) compose(tmpl templates.Template, salt string) (string, history.Buffer, []string) {
	working := c.snapshot
	lines := make([]string, 0, 8)
	dropped := []string{}

	add := func(line string) {
		line = strings.TrimSpace(line)
		if line == "" {
			return
		}
		if working.ShouldReject(line) {
			dropped = append(dropped, line)
			return
		}
		lines = append(lines, line)
		working = working.Append(line)
	}

	if c.req.ErrorText != "" && !c.req.SuppressError {
		add(fmt.Sprintf("(The board stutters: %s)", ensurePeriod(c.req.ErrorText)))
	}
	if c.req.SessionOpening {
		intro := c.req.BoardNarration
		if intro == "" {
			intro = rng.Derive(c.seed, "compose.intro"+salt, c.journal).Pick(introOpeners)
		}
		add(ensurePeriod(intro))
	}

	add(tmpl.Render(c.primary.Context, c.fill))

	for _, line := range voice.Lines(c.seed, c.journal, c.profile, c.momentTone, salt) {
		add(line)
	}

	if rng.Derive(c.seed, "compose.secondary"+salt, c.journal).Next01() <= 0.58 {
		add(ensurePeriod(c.secondary(salt)))
	}
	if rng.Derive(c.seed, "compose.aside"+salt, c.journal).Next01() <= 0.12 {
		add(c.aside())
	}

	return strings.Join(lines, " "), working, dropped
}

// secondary picks the factual recap line: the caller's action summary, a
// drawn state change, or the event mapper's own summary.
func (c *composer) secondary(salt string) string {
	if c.req.ActionSummary != "" {
		return c.req.ActionSummary
	}
	if len(c.req.StateChanges) > 0 {
		return rng.Derive(c.seed, "compose.secondary.pick"+salt, c.journal).Pick(c.req.StateChanges)
	}
	if len(c.events) > 1 {
		return event.Summary(c.events[1])
	}
	return event.Summary(c.primary)
}

func (c *composer) aside() string {
	if c.req.Rumor != "" {
		return "A rumor threads the air: " + ensurePeriod(c.req.Rumor)
	}
	if c.req.Objective != "" {
		return "The goal holds: " + ensurePeriod(c.req.Objective)
	}
	return ""
}

// fallback builds the terminal safe line: first voice line plus the
// caller's recovery beat, or the board anchor when history still collides.
// It is never guardrail-checked; its parts come from curated banks and
// caller-owned fields.
func (c *composer) fallback() (string, history.Buffer) {
	voiceLines := voice.Lines(c.seed, c.journal, c.profile, c.momentTone, ".fallback")
	first := ""
	if len(voiceLines) > 0 {
		first = voiceLines[0]
	}

	candidate := first
	if beat := strings.TrimSpace(c.req.RecoveryBeat); beat != "" {
		candidate = strings.TrimSpace(first + " " + ensurePeriod(beat))
	}
	if candidate == "" || c.snapshot.ShouldReject(candidate) {
		anchor := c.req.BoardAnchor
		if anchor == "" {
			anchor = genericAnchor
		}
		candidate = ensurePeriod(anchor)
	}
	return candidate, c.snapshot.Append(candidate)
}

func syntheticPrimary(id string) event.Event {
	return event.Event{ID: id, Type: event.TypeBoardTransition, Context: event.Context{Actor: "You"}}
}

// normalizeIntensity accepts a low/medium/high hint as-is and otherwise
// derives intensity from the mapped events.
func normalizeIntensity(hint string, events []event.Event, boss bool) string {
	switch folded := strings.ToLower(strings.TrimSpace(hint)); folded {
	case "low", "medium", "high":
		return folded
	}
	if boss {
		return "high"
	}
	combat := false
	maxAmount := 0
	for _, e := range events {
		if e.Type == event.TypeAttackResolved || e.Type == event.TypeStatusTick {
			combat = true
		}
		if e.Context.Amount > maxAmount {
			maxAmount = e.Context.Amount
		}
	}
	switch {
	case maxAmount >= 25:
		return "high"
	case !combat && maxAmount == 0:
		return "low"
	default:
		return "medium"
	}
}

func eventIDs(events []event.Event) []string {
	ids := make([]string, 0, len(events))
	for _, e := range events {
		ids = append(ids, e.ID)
	}
	return ids
}

func eventTypes(events []event.Event) []string {
	types := make([]string, 0, len(events))
	for _, e := range events {
		types = append(types, string(e.Type))
	}
	return types
}

func excludedSet(ids []string) map[string]bool {
	if len(ids) == 0 {
		return nil
	}
	set := make(map[string]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set
}

func publicDraws(journal *rng.Journal) []Draw {
	internal := journal.Draws()
	draws := make([]Draw, len(internal))
	for i, d := range internal {
		draws[i] = Draw{Label: d.Label, Value: d.Value}
	}
	return draws
}

func ensurePeriod(s string) string {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return ""
	}
	switch trimmed[len(trimmed)-1] {
	case '.', '!', '?', ')':
		return trimmed
	}
	return trimmed + "."
}
