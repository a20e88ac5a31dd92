package story

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"backlot/internal/sim"
)

const defaultGeminiBaseURL = "https://generativelanguage.googleapis.com"

// Gemini generates text through the Gemini REST API, falling back to the
// Local generator on any error so a dead upstream never stalls a month.
type Gemini struct {
	baseURL    string
	apiKey     string
	model      string
	httpClient *http.Client
	local      *Local
	log        *slog.Logger
}

func NewGemini(apiKey, model string, logger *slog.Logger) *Gemini {
	if logger == nil {
		logger = slog.Default()
	}
	if model == "" {
		model = "gemini-2.0-flash"
	}
	return &Gemini{
		baseURL: defaultGeminiBaseURL,
		apiKey:  apiKey,
		model:   model,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
		local: NewLocal(),
		log:   logger,
	}
}

type geminiRequest struct {
	Contents         []geminiContent         `json:"contents"`
	GenerationConfig *geminiGenerationConfig `json:"generationConfig,omitempty"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiGenerationConfig struct {
	ResponseMIMEType string `json:"responseMimeType,omitempty"`
}

type geminiResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
}

type scriptIdeaPayload struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Tagline     string `json:"tagline"`
	Genre       string `json:"genre"`
	Tone        string `json:"tone"`
}

// ScriptIdeas asks the model for three pitches, parsing its JSON reply.
func (g *Gemini) ScriptIdeas(ctx context.Context, year int) ([]sim.ScriptIdea, error) {
	prompt := fmt.Sprintf(`Generate 3 movie script ideas for the year %d. 2000s style.
Return a JSON array of objects with fields: title, description, tagline,
genre (one of Action, Comedy, Drama, Sci-Fi, Horror, Romance),
tone (one of Serious, Lighthearted, Dark, Quirky).`, year)

	text, err := g.generate(ctx, prompt, true)
	if err != nil {
		g.log.Warn("gemini scripts failed, using local generator", "err", err)
		return g.local.ScriptIdeas(ctx, year)
	}
	var payload []scriptIdeaPayload
	if err := json.Unmarshal([]byte(text), &payload); err != nil || len(payload) == 0 {
		g.log.Warn("gemini scripts unparseable, using local generator", "err", err)
		return g.local.ScriptIdeas(ctx, year)
	}
	ideas := make([]sim.ScriptIdea, 0, len(payload))
	for _, p := range payload {
		ideas = append(ideas, sim.ScriptIdea{
			Title:        orDefault(p.Title, "Untitled"),
			Genre:        parseGenre(p.Genre),
			Tagline:      p.Tagline,
			Description:  orDefault(p.Description, "..."),
			Quality:      45 + g.local.nextIntn(46),
			Complexity:   50,
			RequiredCast: 2,
			Tone:         parseTone(p.Tone),
		})
	}
	return ideas, nil
}

func (g *Gemini) Review(ctx context.Context, m sim.Movie) (string, error) {
	prompt := fmt.Sprintf(`Short review for "%s" (%s). Score %.0f/100. style: 2000s critic.`, m.Title, m.Genre, m.Quality)
	text, err := g.generate(ctx, prompt, false)
	if err != nil {
		g.log.Warn("gemini review failed, using local generator", "err", err)
		return g.local.Review(ctx, m)
	}
	return strings.TrimSpace(text), nil
}

func (g *Gemini) Headline(ctx context.Context, year int) (string, error) {
	// Mostly stock lines; the model only gets a fifth of the traffic.
	if g.apiKey == "" || g.local.nextFloat() > 0.2 {
		return g.local.Headline(ctx, year)
	}
	text, err := g.generate(ctx, fmt.Sprintf("One short 2000s Hollywood gossip headline for %d.", year), false)
	if err != nil {
		g.log.Warn("gemini headline failed, using local generator", "err", err)
		return g.local.Headline(ctx, year)
	}
	return strings.TrimSpace(text), nil
}

func (g *Gemini) generate(ctx context.Context, prompt string, wantJSON bool) (string, error) {
	if g.apiKey == "" {
		return "", fmt.Errorf("no api key")
	}
	reqBody := geminiRequest{
		Contents: []geminiContent{{Parts: []geminiPart{{Text: prompt}}}},
	}
	if wantJSON {
		reqBody.GenerationConfig = &geminiGenerationConfig{ResponseMIMEType: "application/json"}
	}
	body, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}
	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s", g.baseURL, g.model, g.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("gemini request: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return "", fmt.Errorf("gemini status %d: %s", resp.StatusCode, strings.TrimSpace(string(b)))
	}
	var out geminiResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	if len(out.Candidates) == 0 || len(out.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("empty response")
	}
	return out.Candidates[0].Content.Parts[0].Text, nil
}

func orDefault(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}

func parseGenre(s string) sim.Genre {
	for _, g := range sim.Genres {
		if strings.EqualFold(s, string(g)) {
			return g
		}
	}
	return sim.GenreDrama
}

func parseTone(s string) sim.Tone {
	for _, t := range []sim.Tone{sim.ToneSerious, sim.ToneLighthearted, sim.ToneDark, sim.ToneQuirky} {
		if strings.EqualFold(s, string(t)) {
			return t
		}
	}
	return sim.ToneSerious
}
