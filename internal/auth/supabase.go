// Package auth wraps the Supabase GoTrue endpoints the game needs:
// signup, password login, and access-token verification.
package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const requestTimeout = 20 * time.Second

// Client talks to a Supabase project's auth API using the anon key.
type Client struct {
	baseURL string
	anonKey string
	http    *http.Client
}

// Session is a Supabase token pair plus the user it belongs to. Signup
// against a project with email confirmation enabled returns an empty
// AccessToken until the address is verified.
type Session struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int    `json:"expires_in"`
	TokenType    string `json:"token_type"`
	User         User   `json:"user"`
}

type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

func NewClient(baseURL, anonKey string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		anonKey: anonKey,
		http:    &http.Client{Timeout: requestTimeout},
	}
}

func (c *Client) SignUp(ctx context.Context, email, password string) (Session, error) {
	var session Session
	err := c.post(ctx, "/auth/v1/signup", credentials{Email: email, Password: password}, &session)
	if err != nil {
		return Session{}, fmt.Errorf("signup: %w", err)
	}
	return session, nil
}

func (c *Client) Login(ctx context.Context, email, password string) (Session, error) {
	var session Session
	err := c.post(ctx, "/auth/v1/token?grant_type=password", credentials{Email: email, Password: password}, &session)
	if err != nil {
		return Session{}, fmt.Errorf("login: %w", err)
	}
	return session, nil
}

// VerifyAccessToken resolves a bearer token to the user it was issued
// for. Any non-200 answer means the token is expired or forged.
func (c *Client) VerifyAccessToken(ctx context.Context, accessToken string) (User, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/auth/v1/user", nil)
	if err != nil {
		return User{}, err
	}
	req.Header.Set("apikey", c.anonKey)
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := c.http.Do(req)
	if err != nil {
		return User{}, fmt.Errorf("verify token: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return User{}, fmt.Errorf("verify token: %s", apiMessage(resp))
	}
	var user User
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		return User{}, fmt.Errorf("verify token: decode user: %w", err)
	}
	return user, nil
}

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (c *Client) post(ctx context.Context, path string, in, out any) error {
	body, err := json.Marshal(in)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("apikey", c.anonKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return fmt.Errorf("%s", apiMessage(resp))
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// apiMessage digs a human-readable message out of a GoTrue error body.
// The field name varies by endpoint and version.
func apiMessage(resp *http.Response) string {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
	var body struct {
		Msg         string `json:"msg"`
		Message     string `json:"message"`
		Description string `json:"error_description"`
	}
	if err := json.Unmarshal(raw, &body); err == nil {
		for _, m := range []string{body.Msg, body.Message, body.Description} {
			if m != "" {
				return fmt.Sprintf("supabase status %d: %s", resp.StatusCode, m)
			}
		}
	}
	return fmt.Sprintf("supabase status %d: %s", resp.StatusCode, strings.TrimSpace(string(raw)))
}
