package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"backlot/internal/cli"
	"backlot/internal/sim"

	"github.com/fatih/color"
)

var (
	stdinReader = bufio.NewReader(os.Stdin)
	accent      = color.New(color.FgCyan, color.Bold)
	success     = color.New(color.FgGreen, color.Bold)
	warn        = color.New(color.FgYellow, color.Bold)
	danger      = color.New(color.FgRed, color.Bold)
	neutral     = color.New(color.FgHiWhite)
)

var monthNames = []string{
	"January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December",
}

func monthName(m int) string {
	if m < 1 || m > 12 {
		return fmt.Sprintf("Month %d", m)
	}
	return monthNames[m-1]
}

func printSuccess(msg string) {
	success.Println(msg)
}

func printWarn(msg string) {
	warn.Println(msg)
}

func printInfo(msg string) {
	neutral.Println(msg)
}

func promptRequired(label string) (string, error) {
	for {
		fmt.Printf("%s: ", label)
		text, err := stdinReader.ReadString('\n')
		if err != nil {
			return "", err
		}
		text = strings.TrimSpace(text)
		if text != "" {
			return text, nil
		}
		printWarn(label + " is required.")
	}
}

func promptOptional(label string) (string, error) {
	fmt.Printf("%s: ", label)
	text, err := stdinReader.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(text), nil
}

func promptChoice(label string, options []string, defaultValue string) (string, error) {
	normalized := make(map[string]struct{}, len(options))
	for _, opt := range options {
		normalized[strings.ToLower(strings.TrimSpace(opt))] = struct{}{}
	}
	for {
		fmt.Printf("%s (%s) [%s]: ", label, strings.Join(options, "/"), defaultValue)
		text, err := stdinReader.ReadString('\n')
		if err != nil {
			return "", err
		}
		text = strings.ToLower(strings.TrimSpace(text))
		if text == "" {
			text = strings.ToLower(strings.TrimSpace(defaultValue))
		}
		if _, ok := normalized[text]; ok {
			return text, nil
		}
		printWarn("Invalid option. Please pick one of the listed values.")
	}
}

func promptInt64(label string, min int64) (int64, error) {
	for {
		text, err := promptRequired(label)
		if err != nil {
			return 0, err
		}
		v, err := strconv.ParseInt(strings.ReplaceAll(text, ",", ""), 10, 64)
		if err != nil {
			printWarn("Enter a whole number.")
			continue
		}
		if v < min {
			printWarn(fmt.Sprintf("Value must be >= %d", min))
			continue
		}
		return v, nil
	}
}

func renderState(state sim.GameState) error {
	accent.Printf("\n== %s (%s %d) ==\n", strings.ToUpper(state.StudioName), monthName(state.Month), state.Year)
	fmt.Printf("Owner:       %s\n", state.PlayerName)
	fmt.Printf("Balance:     $%s\n", comma(state.Balance))
	fmt.Printf("Reputation:  %d\n", state.Reputation)

	active := 0
	released := 0
	for _, p := range state.Projects {
		if p.Released() {
			released++
		} else {
			active++
		}
	}
	fmt.Printf("Slate:       %d in production, %d released\n", active, released)
	fmt.Printf("Scripts:     %d owned, %d at auction\n", len(state.OwnedScripts), len(state.MarketScripts))

	fmt.Println()
	accent.Println("Rival Studios")
	if len(state.Rivals) == 0 {
		printInfo("No rival studios.")
	} else {
		fmt.Printf("%-8s %-26s %5s %14s %14s %6s\n", "ID", "NAME", "REP", "BALANCE", "YEAR REV", "REL")
		for _, r := range state.Rivals {
			fmt.Printf("%-8s %-26s %5d %14s %14s %+6d\n",
				r.ID,
				truncate(r.Name, 26),
				r.Reputation,
				"$"+comma(r.Balance),
				"$"+comma(r.YearlyRevenue),
				r.Relationship,
			)
		}
	}
	fmt.Println()
	return nil
}

func renderActors(actors []sim.Actor) error {
	accent.Println("\n== ACTOR ROSTER ==")
	if len(actors) == 0 {
		printInfo("No actors found.")
		return nil
	}
	fmt.Printf("%-6s %-22s %4s %-14s %6s %5s %12s %-14s %-20s\n", "ID", "NAME", "AGE", "TIER", "SKILL", "REP", "SALARY", "STATUS", "GENRES")
	for _, a := range actors {
		genres := make([]string, 0, len(a.Genres))
		for _, g := range a.Genres {
			genres = append(genres, string(g))
		}
		fmt.Printf("%-6s %-22s %4d %-14s %6d %5d %12s %-14s %-20s\n",
			a.ID,
			truncate(a.Name, 22),
			a.Age,
			a.Tier,
			a.Skill,
			a.Reputation,
			"$"+comma(a.Salary),
			a.Status,
			truncate(strings.Join(genres, ","), 20),
		)
	}
	fmt.Println()
	return nil
}

func renderScripts(payload cli.ScriptsPayload) error {
	accent.Println("\n== SCRIPT AUCTION ==")
	if len(payload.Market) == 0 {
		printInfo("No scripts on the market this month.")
	} else {
		fmt.Printf("%-10s %-28s %-8s %5s %4s %12s %-10s\n", "ID", "TITLE", "GENRE", "QUAL", "CAST", "HIGH BID", "BIDDER")
		for _, s := range payload.Market {
			bidder := s.HighBidderID
			if bidder == sim.PlayerID {
				bidder = success.Sprint("you")
			}
			fmt.Printf("%-10s %-28s %-8s %5d %4d %12s %-10s\n",
				s.ID,
				truncate(s.Title, 28),
				s.Genre,
				s.Quality,
				s.RequiredCast,
				"$"+comma(s.CurrentBid),
				bidder,
			)
		}
	}

	fmt.Println()
	accent.Println("Owned Scripts")
	if len(payload.Owned) == 0 {
		printInfo("No scripts owned yet.")
	} else {
		fmt.Printf("%-10s %-28s %-8s %5s %4s %-12s\n", "ID", "TITLE", "GENRE", "QUAL", "CAST", "TONE")
		for _, s := range payload.Owned {
			fmt.Printf("%-10s %-28s %-8s %5d %4d %-12s\n",
				s.ID,
				truncate(s.Title, 28),
				s.Genre,
				s.Quality,
				s.RequiredCast,
				s.Tone,
			)
		}
	}
	fmt.Println()
	return nil
}

func renderProjects(projects []sim.Movie) error {
	accent.Println("\n== PRODUCTION SLATE ==")
	if len(projects) == 0 {
		printInfo("No productions yet. Win a script and greenlight it.")
		return nil
	}
	fmt.Printf("%-10s %-26s %-8s %-16s %5s %6s %14s %-10s\n", "ID", "TITLE", "GENRE", "PHASE", "PROG", "QUAL", "REVENUE", "RELEASE")
	for _, m := range projects {
		release := fmt.Sprintf("~%d/%d", m.EstReleaseMonth, m.EstReleaseYear)
		if m.Released() {
			release = fmt.Sprintf("%d/%d", m.ReleaseMonth, m.ReleaseYear)
		}
		fmt.Printf("%-10s %-26s %-8s %-16s %4d%% %6.0f %14s %-10s\n",
			m.ID,
			truncate(m.Title, 26),
			m.Genre,
			m.Phase,
			sim.OverallProgress(m.Phase, m.PhaseProgress),
			m.Quality,
			"$"+comma(m.Revenue),
			release,
		)
		for _, review := range m.Reviews {
			printInfo("  " + truncate(review, 100))
		}
	}
	fmt.Println()
	return nil
}

func renderEvents(state sim.GameState, unreadOnly bool) error {
	shown := 0
	for i := len(state.Events) - 1; i >= 0; i-- {
		ev := state.Events[i]
		if unreadOnly && ev.Read {
			continue
		}
		line := fmt.Sprintf("[%s] %s", monthName(ev.Month), ev.Message)
		switch ev.Type {
		case sim.EventGood:
			success.Println(line)
		case sim.EventBad:
			danger.Println(line)
		case sim.EventAuction, sim.EventAd:
			warn.Println(line)
		default:
			neutral.Println(line)
		}
		shown++
		if shown >= 20 {
			break
		}
	}
	if shown == 0 {
		printInfo("No news this month.")
	}
	return nil
}

func comma(v int64) string {
	sign := ""
	if v < 0 {
		sign = "-"
		v = -v
	}
	s := strconv.FormatInt(v, 10)
	if len(s) <= 3 {
		return sign + s
	}
	var b strings.Builder
	pre := len(s) % 3
	if pre > 0 {
		b.WriteString(s[:pre])
		if len(s) > pre {
			b.WriteByte(',')
		}
	}
	for i := pre; i < len(s); i += 3 {
		b.WriteString(s[i : i+3])
		if i+3 < len(s) {
			b.WriteByte(',')
		}
	}
	return sign + b.String()
}

func truncate(s string, n int) string {
	s = strings.TrimSpace(s)
	if n <= 0 || len(s) <= n {
		return s
	}
	if n <= 3 {
		return s[:n]
	}
	return s[:n-3] + "..."
}
