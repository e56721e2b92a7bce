package google

import (
	"context"
	"errors"
	"time"

	"golang.org/x/oauth2"
	googleauth "golang.org/x/oauth2/google"
	calendar "google.golang.org/api/calendar/v3"
	keep "google.golang.org/api/keep/v1"
	"google.golang.org/api/option"
)

// Client wraps the Google upstreams this proxy forwards to. No credentials
// are stored; every call runs with the bearer token the caller supplied,
// except the token refresh which uses the server-held OAuth client pair.
type Client struct {
	cfg Config
}

type Config struct {
	ClientID     string
	ClientSecret string
	// Endpoint overrides for tests; empty values mean the live Google APIs.
	TokenURL         string
	CalendarEndpoint string
	KeepEndpoint     string
}

func NewClient(cfg Config) *Client {
	return &Client{cfg: cfg}
}

// Configured reports whether the OAuth client pair needed by the token
// refresh endpoint is present.
func (c *Client) Configured() bool {
	return c.cfg.ClientID != "" && c.cfg.ClientSecret != ""
}

// Token is the refresh result in the shape the mobile client expects.
type Token struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int64  `json:"expires_in"`
}

func (c *Client) RefreshAccessToken(ctx context.Context, refreshToken string) (*Token, error) {
	if !c.Configured() {
		return nil, errors.New("missing Google OAuth client credentials")
	}
	endpoint := googleauth.Endpoint
	if c.cfg.TokenURL != "" {
		endpoint = oauth2.Endpoint{TokenURL: c.cfg.TokenURL}
	}
	conf := &oauth2.Config{
		ClientID:     c.cfg.ClientID,
		ClientSecret: c.cfg.ClientSecret,
		Endpoint:     endpoint,
	}
	token, err := conf.TokenSource(ctx, &oauth2.Token{RefreshToken: refreshToken}).Token()
	if err != nil {
		return nil, err
	}
	expiresIn := int64(3600)
	if !token.Expiry.IsZero() {
		if remaining := int64(time.Until(token.Expiry).Seconds()); remaining > 0 {
			expiresIn = remaining
		}
	}
	return &Token{AccessToken: token.AccessToken, ExpiresIn: expiresIn}, nil
}

func (c *Client) ListCalendarEvents(ctx context.Context, accessToken string) ([]*calendar.Event, error) {
	service, err := calendar.NewService(ctx, c.options(accessToken, c.cfg.CalendarEndpoint)...)
	if err != nil {
		return nil, err
	}
	events, err := service.Events.List("primary").
		MaxResults(20).
		OrderBy("startTime").
		SingleEvents(true).
		TimeMin(time.Now().Format(time.RFC3339)).
		Context(ctx).
		Do()
	if err != nil {
		return nil, err
	}
	if events.Items == nil {
		return []*calendar.Event{}, nil
	}
	return events.Items, nil
}

func (c *Client) ListNotes(ctx context.Context, accessToken string) ([]*keep.Note, error) {
	service, err := keep.NewService(ctx, c.options(accessToken, c.cfg.KeepEndpoint)...)
	if err != nil {
		return nil, err
	}
	resp, err := service.Notes.List().Context(ctx).Do()
	if err != nil {
		return nil, err
	}
	if resp.Notes == nil {
		return []*keep.Note{}, nil
	}
	return resp.Notes, nil
}

func (c *Client) CreateNote(ctx context.Context, accessToken, title, body string) (*keep.Note, error) {
	service, err := keep.NewService(ctx, c.options(accessToken, c.cfg.KeepEndpoint)...)
	if err != nil {
		return nil, err
	}
	note := &keep.Note{
		Title: title,
		Body: &keep.Section{
			Text: &keep.TextContent{Text: body},
		},
	}
	return service.Notes.Create(note).Context(ctx).Do()
}

func (c *Client) options(accessToken, endpoint string) []option.ClientOption {
	opts := []option.ClientOption{
		option.WithTokenSource(oauth2.StaticTokenSource(&oauth2.Token{AccessToken: accessToken})),
	}
	if endpoint != "" {
		opts = append(opts, option.WithEndpoint(endpoint))
	}
	return opts
}
