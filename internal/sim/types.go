package sim

// Genre is a film genre shared by scripts, movies, and actor affinities.
type Genre string

const (
	GenreAction  Genre = "Action"
	GenreComedy  Genre = "Comedy"
	GenreDrama   Genre = "Drama"
	GenreSciFi   Genre = "Sci-Fi"
	GenreHorror  Genre = "Horror"
	GenreRomance Genre = "Romance"
)

// Genres lists every genre in a fixed order.
var Genres = []Genre{GenreAction, GenreComedy, GenreDrama, GenreSciFi, GenreHorror, GenreRomance}

type Tone string

const (
	ToneSerious      Tone = "Serious"
	ToneLighthearted Tone = "Lighthearted"
	ToneDark         Tone = "Dark"
	ToneQuirky       Tone = "Quirky"
)

// Tier is a discrete actor-quality bracket driving salary and prestige.
type Tier string

const (
	TierAList        Tier = "A-List"
	TierBList        Tier = "B-List"
	TierCList        Tier = "C-List"
	TierIndieDarling Tier = "Indie Darling"
	TierNewcomer     Tier = "Newcomer"
)

// tierSalaryMultiplier scales salary when an actor changes tier.
var tierSalaryMultiplier = map[Tier]float64{
	TierAList:        2.5,
	TierBList:        1.5,
	TierCList:        1.0,
	TierIndieDarling: 0.8,
	TierNewcomer:     0.5,
}

type ActorStatus string

const (
	StatusAvailable    ActorStatus = "Available"
	StatusInProduction ActorStatus = "In Production"
	StatusOnHiatus     ActorStatus = "On Hiatus"
	StatusRetired      ActorStatus = "Retired"
	StatusDeceased     ActorStatus = "Deceased"
)

const (
	// SalaryFloor is the minimum salary any lifecycle event can leave an actor with.
	SalaryFloor = int64(10_000)

	// GossipLimit bounds an actor's rolling gossip list, newest first.
	GossipLimit = 6
)

// Actor is a performer, player-rostered or not. Skill and reputation stay in
// [0,100], relationship values in [-100,100], and salary never drops below
// SalaryFloor. Deceased is terminal; Retired actors take no further lifecycle
// events.
type Actor struct {
	ID            string         `json:"id"`
	Name          string         `json:"name"`
	Age           int            `json:"age"`
	Gender        string         `json:"gender"`
	Tier          Tier           `json:"tier"`
	Salary        int64          `json:"salary"`
	Reputation    int            `json:"reputation"`
	Skill         int            `json:"skill"`
	Genres        []Genre        `json:"genres"`
	Status        ActorStatus    `json:"status"`
	Bio           string         `json:"bio,omitempty"`
	Personality   []string       `json:"personality,omitempty"`
	Relationships map[string]int `json:"relationships"`
	Gossip        []string       `json:"gossip,omitempty"`
}

func (a *Actor) clone() Actor {
	out := *a
	out.Genres = append([]Genre(nil), a.Genres...)
	out.Personality = append([]string(nil), a.Personality...)
	out.Gossip = append([]string(nil), a.Gossip...)
	out.Relationships = make(map[string]int, len(a.Relationships))
	for id, v := range a.Relationships {
		out.Relationships[id] = v
	}
	return out
}

// addGossip pushes a new gossip line onto the front of the list, trimming to
// GossipLimit.
func (a *Actor) addGossip(line string) {
	if line == "" {
		return
	}
	a.Gossip = append([]string{line}, a.Gossip...)
	if len(a.Gossip) > GossipLimit {
		a.Gossip = a.Gossip[:GossipLimit]
	}
}

// Script is an acquirable piece of IP. Once owned it is immutable until
// consumed into a Movie.
type Script struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	Genre        Genre  `json:"genre"`
	Tagline      string `json:"tagline,omitempty"`
	Description  string `json:"description,omitempty"`
	Quality      int    `json:"quality"`
	Complexity   int    `json:"complexity"`
	BaseCost     int64  `json:"base_cost"`
	CurrentBid   int64  `json:"current_bid"`
	HighBidderID string `json:"high_bidder_id"`
	RequiredCast int    `json:"required_cast"`
	Tone         Tone   `json:"tone"`
}

// Phase is one stage of a project's production pipeline.
type Phase string

const (
	PhasePreProduction  Phase = "Pre-Production"
	PhaseFilming        Phase = "Filming"
	PhasePostProduction Phase = "Post-Production"
	PhaseMarketing      Phase = "Marketing"
	PhaseReleased       Phase = "Released"
)

// phaseOrder is the fixed pipeline sequence; Released is terminal.
var phaseOrder = []Phase{PhasePreProduction, PhaseFilming, PhasePostProduction, PhaseMarketing, PhaseReleased}

// ProductionEvent is a named occurrence during one production phase.
type ProductionEvent struct {
	ID           string `json:"id"`
	Month        int    `json:"month"`
	Phase        Phase  `json:"phase"`
	Kind         string `json:"kind"` // positive, negative, neutral
	Title        string `json:"title"`
	Description  string `json:"description"`
	QualityDelta int    `json:"quality_delta"`
	BudgetDelta  int64  `json:"budget_delta"`
	DelayMonths  int    `json:"delay_months"`
}

// Movie is a film in progress or released. Progress never decreases and a
// Released movie never mutates again.
type Movie struct {
	ID               string            `json:"id"`
	ScriptID         string            `json:"script_id"`
	StudioID         string            `json:"studio_id"`
	Title            string            `json:"title"`
	Genre            Genre             `json:"genre"`
	Cast             []string          `json:"cast"`
	MarketingBudget  int64             `json:"marketing_budget"`
	ProductionBudget int64             `json:"production_budget"`
	Progress         int               `json:"progress"`
	Phase            Phase             `json:"phase"`
	PhaseProgress    float64           `json:"phase_progress"`
	Quality          float64           `json:"quality"`
	Chemistry        int               `json:"chemistry"`
	Revenue          int64             `json:"revenue"`
	ReleaseMonth     int               `json:"release_month"`
	ReleaseYear      int               `json:"release_year"`
	EstReleaseMonth  int               `json:"est_release_month"`
	EstReleaseYear   int               `json:"est_release_year"`
	BudgetSpent      int64             `json:"budget_spent"`
	Reviews          []string          `json:"reviews,omitempty"`
	ProductionLog    []ProductionEvent `json:"production_log,omitempty"`
}

func (m *Movie) clone() Movie {
	out := *m
	out.Cast = append([]string(nil), m.Cast...)
	out.Reviews = append([]string(nil), m.Reviews...)
	out.ProductionLog = append([]ProductionEvent(nil), m.ProductionLog...)
	return out
}

func (m *Movie) Released() bool { return m.Phase == PhaseReleased }

type Personality string

const (
	PersonalityAggressive Personality = "Aggressive"
	PersonalityFriendly   Personality = "Friendly"
	PersonalityElitist    Personality = "Elitist"
	PersonalityChaotic    Personality = "Chaotic"
)

// RivalStudio is a non-player competitor. YearlyRevenue resets every January.
type RivalStudio struct {
	ID             string      `json:"id"`
	Name           string      `json:"name"`
	Reputation     int         `json:"reputation"`
	Balance        int64       `json:"balance"`
	YearlyRevenue  int64       `json:"yearly_revenue"`
	Color          string      `json:"color"`
	Personality    Personality `json:"personality"`
	Relationship   int         `json:"relationship"`
	OwnedActors    []string    `json:"owned_actors,omitempty"`
	OwnedScripts   []string    `json:"owned_scripts,omitempty"`
	ActiveProjects []string    `json:"active_projects,omitempty"`
}

func (r *RivalStudio) clone() RivalStudio {
	out := *r
	out.OwnedActors = append([]string(nil), r.OwnedActors...)
	out.OwnedScripts = append([]string(nil), r.OwnedScripts...)
	out.ActiveProjects = append([]string(nil), r.ActiveProjects...)
	return out
}

type EventType string

const (
	EventInfo    EventType = "INFO"
	EventGood    EventType = "GOOD"
	EventBad     EventType = "BAD"
	EventAuction EventType = "AUCTION"
	EventGossip  EventType = "GOSSIP"
	EventAd      EventType = "AD"
)

// GameEvent is an append-only, timestamped log entry. Only the Read flag
// mutates after creation, and never inside the engine.
type GameEvent struct {
	ID      string    `json:"id"`
	Month   int       `json:"month"`
	Message string    `json:"message"`
	Type    EventType `json:"type"`
	Read    bool      `json:"read"`
}

// StudioMessage is a line of inter-studio correspondence.
type StudioMessage struct {
	ID       string `json:"id"`
	FromID   string `json:"from_id"`
	ToID     string `json:"to_id"`
	Content  string `json:"content"`
	Month    int    `json:"month"`
	IsPublic bool   `json:"is_public"`
}

// PlayerID is the studio id reserved for the human player.
const PlayerID = "player"

// GameState is the aggregate root: one instance per save, transformed as a
// whole by Engine.AdvanceMonth.
type GameState struct {
	Month         int              `json:"month"`
	Year          int              `json:"year"`
	Balance       int64            `json:"balance"`
	Reputation    int              `json:"reputation"`
	Actors        []Actor          `json:"actors"`
	MarketScripts []Script         `json:"market_scripts"`
	OwnedScripts  []Script         `json:"owned_scripts"`
	Projects      []Movie          `json:"projects"`
	Rivals        []RivalStudio    `json:"rivals"`
	Events        []GameEvent      `json:"events"`
	PlayerName    string           `json:"player_name"`
	StudioName    string           `json:"studio_name"`
	Messages      []StudioMessage  `json:"messages,omitempty"`
	Ceremonies    []AwardsCeremony `json:"ceremonies,omitempty"`
}

// Clone deep-copies the aggregate so the engine can build-then-swap without
// touching the caller's state.
func (s *GameState) Clone() GameState {
	out := *s
	out.Actors = make([]Actor, len(s.Actors))
	for i := range s.Actors {
		out.Actors[i] = s.Actors[i].clone()
	}
	out.MarketScripts = append([]Script(nil), s.MarketScripts...)
	out.OwnedScripts = append([]Script(nil), s.OwnedScripts...)
	out.Projects = make([]Movie, len(s.Projects))
	for i := range s.Projects {
		out.Projects[i] = s.Projects[i].clone()
	}
	out.Rivals = make([]RivalStudio, len(s.Rivals))
	for i := range s.Rivals {
		out.Rivals[i] = s.Rivals[i].clone()
	}
	out.Events = append([]GameEvent(nil), s.Events...)
	out.Messages = append([]StudioMessage(nil), s.Messages...)
	out.Ceremonies = make([]AwardsCeremony, len(s.Ceremonies))
	for i := range s.Ceremonies {
		out.Ceremonies[i] = s.Ceremonies[i].clone()
	}
	return out
}

func (s *GameState) actorByID(id string) *Actor {
	for i := range s.Actors {
		if s.Actors[i].ID == id {
			return &s.Actors[i]
		}
	}
	return nil
}

func (s *GameState) rivalByID(id string) *RivalStudio {
	for i := range s.Rivals {
		if s.Rivals[i].ID == id {
			return &s.Rivals[i]
		}
	}
	return nil
}

func (s *GameState) ownedScriptByID(id string) *Script {
	for i := range s.OwnedScripts {
		if s.OwnedScripts[i].ID == id {
			return &s.OwnedScripts[i]
		}
	}
	return nil
}

func clampStat(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

func clampRelationship(v int) int {
	if v < -100 {
		return -100
	}
	if v > 100 {
		return 100
	}
	return v
}
