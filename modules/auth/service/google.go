package service

import (
	"campusflow/core/config"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	googleAuthIDTokenVerifier "github.com/futurenda/google-auth-id-token-verifier"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const googleUserInfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"

type GoogleProfile struct {
	Sub   string
	Email string
	Name  string
}

// GoogleIdentity covers both the web code flow and mobile id-token sign-in.
type GoogleIdentity interface {
	AuthURL(state string) string
	Exchange(ctx context.Context, code string) (*GoogleProfile, error)
	VerifyIDToken(ctx context.Context, idToken string) (*GoogleProfile, error)
}

type GoogleClient struct {
	oauth    *oauth2.Config
	clientID string
}

func NewGoogleClient(cfg config.GoogleConfig) *GoogleClient {
	return &GoogleClient{
		clientID: cfg.ClientID,
		oauth: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURI,
			Scopes: []string{
				"https://www.googleapis.com/auth/userinfo.email",
				"https://www.googleapis.com/auth/userinfo.profile",
			},
			Endpoint: google.Endpoint,
		},
	}
}

func (g *GoogleClient) configured() error {
	if g.oauth.ClientID == "" {
		return fmt.Errorf("google sign-in is not configured")
	}
	return nil
}

func (g *GoogleClient) AuthURL(state string) string {
	return g.oauth.AuthCodeURL(state, oauth2.AccessTypeOnline)
}

func (g *GoogleClient) Exchange(ctx context.Context, code string) (*GoogleProfile, error) {
	if err := g.configured(); err != nil {
		return nil, err
	}
	token, err := g.oauth.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("exchange code: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, googleUserInfoURL, nil)
	if err != nil {
		return nil, err
	}
	resp, err := g.oauth.Client(ctx, token).Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to get user info: %s", string(body))
	}

	var info struct {
		ID    string `json:"id"`
		Email string `json:"email"`
		Name  string `json:"name"`
	}
	if err := json.Unmarshal(body, &info); err != nil {
		return nil, err
	}
	return &GoogleProfile{Sub: info.ID, Email: info.Email, Name: info.Name}, nil
}

func (g *GoogleClient) VerifyIDToken(_ context.Context, idToken string) (*GoogleProfile, error) {
	if err := g.configured(); err != nil {
		return nil, err
	}
	v := googleAuthIDTokenVerifier.Verifier{}
	if err := v.VerifyIDToken(idToken, []string{g.clientID}); err != nil {
		return nil, fmt.Errorf("verify id token: %w", err)
	}
	claimSet, err := googleAuthIDTokenVerifier.Decode(idToken)
	if err != nil {
		return nil, fmt.Errorf("decode id token: %w", err)
	}
	return &GoogleProfile{Sub: claimSet.Sub, Email: claimSet.Email, Name: claimSet.Name}, nil
}
