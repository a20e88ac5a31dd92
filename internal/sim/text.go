package sim

import "strings"

// Stock copy used when no story generator is wired or a call fails.
// The exported tables are also the raw material for the procedural
// generator in internal/story, so both fallback paths read one source.

// StockHeadlines are canned gossip lines for quiet news months.
var StockHeadlines = []string{
	"Brad Fitt spotted wearing cargo pants at the premiere.",
	"Studio head denies rumors of a 'Box Office Curse'.",
	"New diet trend 'The Grapefruit Only' diet sweeps Hollywood.",
	"Paparazzi caught hiding in bushes outside A-Lister's home.",
	"Pop princess seen at local drive-thru with mysterious friend.",
	"Action star performs own stunts, breaks two toes.",
	"Direct-to-DVD market sees 300% growth this quarter.",
	"Diva actress demands specific brand of bottled water on set.",
}

var scriptTropes = []string{
	"Explosive", "Vengeance", "Undercover", "Shattered", "Galactic",
	"Sinister", "Midnight", "Forgotten", "Eternal",
}

// ScriptNouns and ScriptAdjectives compose procedural script titles.
var ScriptNouns = []string{
	"Heist", "Wedding", "Mission", "Protocol", "Affair", "Encounter",
	"Legacy", "Showdown", "Reckoning",
}

var ScriptAdjectives = []string{
	"Impossible", "Golden", "Broken", "Ultimate", "Dangerous", "Lethal", "Secret",
}

var rivalMovieTitles = []string{
	"Dark Knight Rising",
	"Lost in Translation-ish",
	"Finding Nemo-alike",
	"Oldboy-remake",
	"Mean Girls-proto",
}

// fallbackReview grades a finished film when the reviewer is unreachable.
func fallbackReview(quality float64, genre Genre) string {
	switch {
	case quality > 80:
		return "A modern masterpiece of " + strings.ToLower(string(genre)) + "!"
	case quality > 50:
		return "A solid effort that finds its footing by the second act."
	default:
		return "A loud, confusing mess that should have stayed in pre-production."
	}
}
