package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/hugh/nextsaas/pkg/config"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/github"
)

const githubAPIURL = "https://api.github.com"

// GitHubIdentity is the subset of a GitHub profile used to sign a user in.
type GitHubIdentity struct {
	ID          string
	Name        string
	Email       string
	AvatarURL   string
	AccessToken string
}

type GitHubOAuth struct {
	config *oauth2.Config
	apiURL string
}

func NewGitHubOAuth(cfg config.GitHubConfig) *GitHubOAuth {
	return &GitHubOAuth{
		config: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Endpoint:     github.Endpoint,
			Scopes:       []string{"user:email"},
		},
		apiURL: githubAPIURL,
	}
}

type githubUser struct {
	ID        int64   `json:"id"`
	Name      *string `json:"name"`
	Login     string  `json:"login"`
	Email     *string `json:"email"`
	AvatarURL string  `json:"avatar_url"`
}

func (g *GitHubOAuth) Exchange(ctx context.Context, code string) (*GitHubIdentity, error) {
	token, err := g.config.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("exchanging code: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.apiURL+"/user", nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/vnd.github+json")

	resp, err := g.config.Client(ctx, token).Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching github user: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching github user: unexpected status %d", resp.StatusCode)
	}

	var user githubUser
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		return nil, fmt.Errorf("decoding github user: %w", err)
	}

	identity := &GitHubIdentity{
		ID:          strconv.FormatInt(user.ID, 10),
		Name:        user.Login,
		AvatarURL:   user.AvatarURL,
		AccessToken: token.AccessToken,
	}
	if user.Name != nil && *user.Name != "" {
		identity.Name = *user.Name
	}
	if user.Email != nil {
		identity.Email = *user.Email
	}
	return identity, nil
}
