package sim

import "math"

// Chemistry sums the pairwise rapport of a cast: for every unordered pair
// it takes the mean of the two directed relationship values. Fewer than
// two cast members score zero.
func Chemistry(castIDs []string, actors []Actor) int {
	if len(castIDs) < 2 {
		return 0
	}
	inCast := make(map[string]bool, len(castIDs))
	for _, id := range castIDs {
		inCast[id] = true
	}
	var cast []Actor
	for _, a := range actors {
		if inCast[a.ID] {
			cast = append(cast, a)
		}
	}
	total := 0.0
	for i := 0; i < len(cast); i++ {
		for j := i + 1; j < len(cast); j++ {
			r1 := cast[i].Relationships[cast[j].ID]
			r2 := cast[j].Relationships[cast[i].ID]
			total += float64(r1+r2) / 2
		}
	}
	return int(math.Round(total))
}

// movieQuality scores a finished film from its script, cast, chemistry,
// and budget, plus a uniform [-10,10) wobble. Result stays in [1,100].
func (e *Engine) movieQuality(m Movie, actors []Actor, script Script, chemistry int) float64 {
	quality := float64(script.Quality)

	inCast := make(map[string]bool, len(m.Cast))
	for _, id := range m.Cast {
		inCast[id] = true
	}
	skillSum, castSize, genreMatches := 0, 0, 0
	for _, a := range actors {
		if !inCast[a.ID] {
			continue
		}
		castSize++
		skillSum += a.Skill
		for _, g := range a.Genres {
			if g == m.Genre {
				genreMatches++
				break
			}
		}
	}
	if castSize > 0 {
		quality += float64(skillSum) / float64(castSize) * 0.4
	}
	quality += float64(genreMatches) * 5
	quality += float64(chemistry)

	totalBudget := m.ProductionBudget + m.MarketingBudget
	if totalBudget > 10_000_000 {
		quality += 10
	} else if totalBudget < 500_000 {
		quality -= 10
	}
	quality += e.between(-10, 10)

	return math.Max(1, math.Min(100, quality))
}

// boxOffice projects revenue for a film released this month. Same-genre
// releases in the same month split the audience, floored at 40% of the
// uncontested take.
func (e *Engine) boxOffice(m Movie, state *GameState) int64 {
	base := float64(m.ProductionBudget) * 1.5
	qualityMult := math.Pow(m.Quality/45, 2.5)

	competitors := 0
	for i := range state.Projects {
		p := &state.Projects[i]
		if p.ID == m.ID || !p.Released() {
			continue
		}
		if p.ReleaseMonth == state.Month && p.ReleaseYear == state.Year && p.Genre == m.Genre {
			competitors++
		}
	}
	penalty := 1 - float64(competitors)*e.tun.CompetitionPenalty
	if penalty < e.tun.CompetitionFloor {
		penalty = e.tun.CompetitionFloor
	}

	revenue := (base*qualityMult + float64(m.MarketingBudget)*2) * penalty
	revenue *= e.between(0.8, 1.2)
	if revenue < 0 {
		return 0
	}
	return int64(math.Floor(revenue))
}
