package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"backlot/internal/auth"
	"backlot/internal/sim"
)

type Client struct {
	BaseURL string
	HTTP    *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTP: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

func (c *Client) Signup(ctx context.Context, email, password, playerName, studioName string) (auth.Session, error) {
	var out auth.Session
	err := c.jsonRequest(ctx, http.MethodPost, "/v1/auth/signup", "", map[string]any{
		"email":       email,
		"password":    password,
		"player_name": playerName,
		"studio_name": studioName,
	}, &out)
	return out, err
}

func (c *Client) Login(ctx context.Context, email, password string) (auth.Session, error) {
	var out auth.Session
	err := c.jsonRequest(ctx, http.MethodPost, "/v1/auth/login", "", map[string]any{
		"email":    email,
		"password": password,
	}, &out)
	return out, err
}

func (c *Client) State(ctx context.Context, accessToken string) (sim.GameState, error) {
	var out sim.GameState
	err := c.jsonRequest(ctx, http.MethodGet, "/v1/state", accessToken, nil, &out)
	return out, err
}

func (c *Client) Advance(ctx context.Context, accessToken string) (sim.GameState, error) {
	var out sim.GameState
	err := c.jsonRequest(ctx, http.MethodPost, "/v1/advance", accessToken, map[string]any{}, &out)
	return out, err
}

func (c *Client) Actors(ctx context.Context, accessToken string) ([]sim.Actor, error) {
	var out struct {
		Actors []sim.Actor `json:"actors"`
	}
	err := c.jsonRequest(ctx, http.MethodGet, "/v1/actors", accessToken, nil, &out)
	return out.Actors, err
}

type ScriptsPayload struct {
	Market []sim.Script `json:"market"`
	Owned  []sim.Script `json:"owned"`
}

func (c *Client) Scripts(ctx context.Context, accessToken string) (ScriptsPayload, error) {
	var out ScriptsPayload
	err := c.jsonRequest(ctx, http.MethodGet, "/v1/scripts", accessToken, nil, &out)
	return out, err
}

func (c *Client) Projects(ctx context.Context, accessToken string) ([]sim.Movie, error) {
	var out struct {
		Projects []sim.Movie `json:"projects"`
	}
	err := c.jsonRequest(ctx, http.MethodGet, "/v1/projects", accessToken, nil, &out)
	return out.Projects, err
}

func (c *Client) PlaceBid(ctx context.Context, accessToken, scriptID string, amount int64) (sim.GameState, error) {
	var out sim.GameState
	err := c.jsonRequest(ctx, http.MethodPost, "/v1/scripts/"+url.PathEscape(scriptID)+"/bid", accessToken, map[string]any{
		"amount": amount,
	}, &out)
	return out, err
}

func (c *Client) Greenlight(ctx context.Context, accessToken, scriptID string, cast []string, productionBudget, marketingBudget int64) (sim.GameState, error) {
	var out sim.GameState
	err := c.jsonRequest(ctx, http.MethodPost, "/v1/projects", accessToken, map[string]any{
		"script_id":         scriptID,
		"cast":              cast,
		"production_budget": productionBudget,
		"marketing_budget":  marketingBudget,
	}, &out)
	return out, err
}

func (c *Client) SignContract(ctx context.Context, accessToken, actorID string, durationMonths int, signingBonus int64) (sim.GameState, error) {
	var out sim.GameState
	err := c.jsonRequest(ctx, http.MethodPost, "/v1/contracts", accessToken, map[string]any{
		"actor_id":        actorID,
		"duration_months": durationMonths,
		"signing_bonus":   signingBonus,
	}, &out)
	return out, err
}

func (c *Client) TerminateContract(ctx context.Context, accessToken, contractID string) (sim.GameState, error) {
	var out sim.GameState
	err := c.jsonRequest(ctx, http.MethodDelete, "/v1/contracts/"+url.PathEscape(contractID), accessToken, nil, &out)
	return out, err
}

func (c *Client) GiftRival(ctx context.Context, accessToken, rivalID string, amount int64) (sim.GameState, error) {
	var out sim.GameState
	err := c.jsonRequest(ctx, http.MethodPost, "/v1/rivals/"+url.PathEscape(rivalID)+"/gift", accessToken, map[string]any{
		"amount": amount,
	}, &out)
	return out, err
}

func (c *Client) SendMessage(ctx context.Context, accessToken, rivalID, content string, isPublic bool) (sim.GameState, error) {
	var out sim.GameState
	err := c.jsonRequest(ctx, http.MethodPost, "/v1/rivals/"+url.PathEscape(rivalID)+"/messages", accessToken, map[string]any{
		"content":   content,
		"is_public": isPublic,
	}, &out)
	return out, err
}

func (c *Client) MarkEventsRead(ctx context.Context, accessToken string) error {
	return c.jsonRequest(ctx, http.MethodPost, "/v1/events/read", accessToken, map[string]any{}, nil)
}

func (c *Client) SetAutoAdvance(ctx context.Context, accessToken string, enabled bool) error {
	return c.jsonRequest(ctx, http.MethodPost, "/v1/auto-advance", accessToken, map[string]any{
		"enabled": enabled,
	}, nil)
}

func (c *Client) jsonRequest(ctx context.Context, method, path, accessToken string, in any, out any) error {
	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(raw)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+accessToken)
	}
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("api status %d: %s", resp.StatusCode, strings.TrimSpace(string(raw)))
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
