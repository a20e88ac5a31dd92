package sim

import "fmt"

const (
	StartBalance = int64(5_000_000)
	StartYear    = 2003
	StartMonth   = 1
)

var rivalStudioNames = []string{
	"Metro-G-M", "Global-Universal", "IndieCloud Pictures", "Paramount-ish", "Warner-Brothers-ish",
	"Sony-ish Entertainment", "Disney-ish Films", "Miramax-alike", "New Line-alike", "Lionsgate-ish",
	"Summit-alike", "Fox-ish Searchlight", "Focus-ish Features", "A24-proto", "Dimension-alike",
	"DreamWorks-ish", "Pixar-ish Animation", "Castle Rock-ish", "Orion-ish", "Touchstone-ish",
	"New Line-ish", "PolyGram-ish", "MGM-ish", "Screen Gems-ish", "Tristar-ish",
	"Hollywood-ish Pictures", "Working Title-ish", "Imagine-ish", "Amblin-ish", "Village-Roadshow-ish",
}

var personalities = []Personality{
	PersonalityAggressive, PersonalityFriendly, PersonalityElitist, PersonalityChaotic,
}

// NewGame assembles the starting world: the 2003 roster, the rival field,
// and two scripts already on the auction block.
func (e *Engine) NewGame(playerName, studioName string) GameState {
	return GameState{
		Month:         StartMonth,
		Year:          StartYear,
		Balance:       StartBalance,
		Reputation:    30,
		Actors:        SeedActors(),
		MarketScripts: SeedScripts(),
		Rivals:        e.seedRivals(),
		PlayerName:    playerName,
		StudioName:    studioName,
	}
}

func (e *Engine) seedRivals() []RivalStudio {
	rivals := make([]RivalStudio, 0, len(rivalStudioNames))
	for i, name := range rivalStudioNames {
		rivals = append(rivals, RivalStudio{
			ID:          fmt.Sprintf("r%d", i),
			Name:        name,
			Reputation:  30 + e.nextIntn(60),
			Balance:     5_000_000 + int64(e.nextIntn(95_000_000)),
			Color:       fmt.Sprintf("hsl(%d, 70%%, 40%%)", i*12),
			Personality: personalities[e.nextIntn(len(personalities))],
		})
	}
	return rivals
}

// SeedActors returns the launch roster. IDs are stable so relationship
// maps and save files line up across fresh worlds.
func SeedActors() []Actor {
	return []Actor{
		{
			ID: "a1", Name: "Brad Fitt", Age: 38, Gender: "Male",
			Tier: TierAList, Salary: 2_000_000, Reputation: 95, Skill: 90,
			Genres: []Genre{GenreAction, GenreDrama}, Status: StatusAvailable,
			Bio:           "The biggest heartthrob of the early 2000s. Known for eating in every scene.",
			Personality:   []string{"Charismatic", "Hungry"},
			Relationships: map[string]int{"a2": 25, "a3": 10},
		},
		{
			ID: "a2", Name: "Julia Roberts-ish", Age: 35, Gender: "Female",
			Tier: TierAList, Salary: 2_200_000, Reputation: 98, Skill: 88,
			Genres: []Genre{GenreRomance, GenreComedy}, Status: StatusAvailable,
			Bio:           "America's sweetheart with a million dollar smile and a chaotic laugh.",
			Personality:   []string{"Diva", "Perfectionist"},
			Relationships: map[string]int{"a1": 25, "a5": 15},
		},
		{
			ID: "a3", Name: "Keanu Reeves-alike", Age: 39, Gender: "Male",
			Tier: TierAList, Salary: 1_800_000, Reputation: 92, Skill: 75,
			Genres: []Genre{GenreSciFi, GenreAction}, Status: StatusAvailable,
			Bio:           "A man of few words but many martial arts moves.",
			Personality:   []string{"Humble", "Stoic"},
			Relationships: map[string]int{"a1": 10, "a4": -5},
		},
		{
			ID: "a4", Name: "Angelina J-ish", Age: 28, Gender: "Female",
			Tier: TierAList, Salary: 1_900_000, Reputation: 94, Skill: 85,
			Genres: []Genre{GenreAction, GenreDrama}, Status: StatusAvailable,
			Bio:           "The ultimate action queen. Mysterious, intense, and loves vials of blood.",
			Personality:   []string{"Intense", "Mysterious"},
			Relationships: map[string]int{"a1": 5, "a3": -10},
		},
		{
			ID: "a5", Name: "Tom C-ish", Age: 41, Gender: "Male",
			Tier: TierAList, Salary: 2_500_000, Reputation: 99, Skill: 92,
			Genres: []Genre{GenreAction, GenreDrama}, Status: StatusAvailable,
			Bio:           "Does his own stunts. Always running. Might jump on your couch.",
			Personality:   []string{"Driven", "Unstoppable"},
			Relationships: map[string]int{"a2": 15, "a1": 0},
		},
	}
}

// SeedScripts returns the two scripts on the market at game start, each
// already carrying a rival's opening bid.
func SeedScripts() []Script {
	return []Script{
		{
			ID: "s1", Title: "The Matrix: Re-Reloaded", Genre: GenreSciFi,
			Quality: 85, Complexity: 80, BaseCost: 500_000, CurrentBid: 500_000,
			HighBidderID: "r3",
			Description:  "Computers are taking over, again. More leather, more sunglasses.",
			Tagline:      "Plug in. Drop out. Reboot.",
			RequiredCast: 2, Tone: ToneSerious,
		},
		{
			ID: "s2", Title: "My Big Fat Greek Wedding 2", Genre: GenreRomance,
			Quality: 70, Complexity: 40, BaseCost: 200_000, CurrentBid: 200_000,
			HighBidderID: "r2",
			Description:  "More windex, more family drama.",
			Tagline:      "Love is a four letter word. Greek is not.",
			RequiredCast: 2, Tone: ToneLighthearted,
		},
	}
}
