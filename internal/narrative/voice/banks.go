package voice

import "github.com/wrenfield/skald/internal/narrative/tone"

// Mood bias per narration tone - added to the flat base weight of 1.
var moodBias = map[tone.Narration]map[string]float64{
	tone.NarrationDark:        {MoodSomber: 0.9, MoodStark: 0.6},
	tone.NarrationGrim:        {MoodStark: 0.9, MoodSomber: 0.6},
	tone.NarrationComic:       {MoodWry: 1.0, MoodLyrical: 0.3},
	tone.NarrationMischievous: {MoodWry: 1.1},
	tone.NarrationHeroic:      {MoodFervent: 1.0, MoodLyrical: 0.5},
	tone.NarrationTactical:    {MoodStark: 0.8, MoodWry: 0.3},
}

// Mood phrasing banks - one voice per mood.
var moodPhrases = map[string][]string{
	MoodSomber: {
		"The quiet here has weight, and it is not kind.",
		"Whatever was lost in this place has not finished leaving.",
		"Every footfall sounds like an apology.",
		"The air tastes of endings.",
		"Grief keeps its own maps, and they are being followed.",
		"Nothing in this hour forgives easily.",
	},
	MoodWry: {
		"Someone will write a song about this, and it will get everything wrong.",
		"As plans go, this one has the advantage of already being ruined.",
		"Heroism, it turns out, smells a lot like wet rope.",
		"The odds decline to comment.",
		"History is watching, possibly while eating.",
		"This is fine, in the way that sinking ships are fine.",
	},
	MoodFervent: {
		"The blood remembers what the mind forgets.",
		"Every heartbeat is a drum calling the next step forward.",
		"There is fire in this moment for anyone willing to carry it.",
		"Fate leans close, waiting to be impressed.",
		"No one stands here by accident.",
		"The moment asks everything, and asks it now.",
	},
	MoodStark: {
		"Cold facts, colder ground.",
		"What happens next happens fast.",
		"No ceremony. Just consequence.",
		"The margin for error is gone.",
		"Stone does not care who wins.",
		"One way forward. Take it or stand still.",
	},
	MoodLyrical: {
		"The light moves like a slow tide over old stone.",
		"Somewhere far off, a bell keeps time for no one.",
		"Dust hangs in the air like unfinished sentences.",
		"The world holds its breath the way rivers hold the sky.",
		"Shadows pool in the corners, patient as old promises.",
		"Even the silence has a melody, if anyone cares to hear it.",
	},
}

// Moment phrasing banks - sharpen the beat the mood is speaking into.
var momentPhrases = map[tone.Moment][]string{
	tone.MomentTactical: {
		"Positions matter now.",
		"Count the exits, then count them again.",
		"Ground gained is only ground until it is held.",
		"The next move decides the three after it.",
		"Watch the flanks. The flanks are where stories end.",
		"Timing is the only currency that spends here.",
	},
	tone.MomentMythic: {
		"Older names are listening.",
		"This ground remembers oaths no one alive has read.",
		"Somewhere beneath the moment, a legend stirs in its sleep.",
		"The old stories lean in at the edges.",
		"What happens here will be retold badly for a hundred years.",
		"Fate has a ledger, and a line just filled in.",
	},
	tone.MomentWhimsical: {
		"A ribbon of absurdity runs through it all.",
		"Somewhere nearby, a chicken is having a much worse day.",
		"The universe giggles and pretends it was the wind.",
		"Not every omen is solemn. This one is wearing a hat.",
		"Luck wanders past, whistling, hands in its pockets.",
		"It is all very serious, except for the parts that refuse to be.",
	},
	tone.MomentBrutal: {
		"There is no clean way through this.",
		"Something has to break, and the only question is what.",
		"Mercy left early and took its coat.",
		"The cost will be paid in full, one way or the other.",
		"This is the arithmetic of teeth and iron.",
		"Whatever survives this will carry marks.",
	},
	tone.MomentMinimalist: {
		"It happens. It ends.",
		"One breath. Then the next.",
		"Nothing extra survives here.",
		"The moment is exactly what it is.",
		"Less. Then less again.",
		"Quiet. Work. Done.",
	},
}
