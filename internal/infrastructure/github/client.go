package github

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"career-compass/internal/config"
)

const userAgent = "career-compass"

// Repo is the slice of GitHub repository metadata the analyzer needs.
type Repo struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Language    string   `json:"language"`
	Topics      []string `json:"topics"`
	Stars       int      `json:"stargazers_count"`
	Forks       int      `json:"forks_count"`
	HTMLURL     string   `json:"html_url"`
}

// Client talks to the GitHub REST API. An empty token works for public
// data within the anonymous rate limit.
type Client struct {
	baseURL  string
	token    string
	maxRepos int
	http     *http.Client
	logger   *log.Logger
}

func NewClient(cfg config.GitHubConfig, logger *log.Logger) *Client {
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = "https://api.github.com"
	}
	maxRepos := cfg.MaxRepos
	if maxRepos <= 0 {
		maxRepos = 10
	}
	return &Client{
		baseURL:  baseURL,
		token:    strings.TrimSpace(cfg.Token),
		maxRepos: maxRepos,
		http:     &http.Client{Timeout: 10 * time.Second},
		logger:   logger,
	}
}

// MaxRepos is the per-profile repository cap this client fetches.
func (c *Client) MaxRepos() int {
	return c.maxRepos
}

// UserRepos lists a user's own repositories, most recently updated first.
func (c *Client) UserRepos(ctx context.Context, username string, maxRepos int) ([]Repo, error) {
	if maxRepos <= 0 || maxRepos > c.maxRepos {
		maxRepos = c.maxRepos
	}
	endpoint := fmt.Sprintf("%s/users/%s/repos?sort=updated&per_page=%d&type=owner",
		c.baseURL, url.PathEscape(username), maxRepos)

	var repos []Repo
	if err := c.getJSON(ctx, endpoint, &repos); err != nil {
		return nil, err
	}
	return repos, nil
}

// Repo fetches one repository by owner and name.
func (c *Client) Repo(ctx context.Context, username, name string) (*Repo, error) {
	endpoint := fmt.Sprintf("%s/repos/%s/%s", c.baseURL, url.PathEscape(username), url.PathEscape(name))

	var repo Repo
	if err := c.getJSON(ctx, endpoint, &repo); err != nil {
		return nil, err
	}
	return &repo, nil
}

// Readme fetches a repository README as raw text. A repository without
// one yields an empty string, not an error.
func (c *Client) Readme(ctx context.Context, username, name string) (string, error) {
	endpoint := fmt.Sprintf("%s/repos/%s/%s/readme", c.baseURL, url.PathEscape(username), url.PathEscape(name))

	req, err := c.newRequest(ctx, endpoint, "application/vnd.github.v3.raw")
	if err != nil {
		return "", err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return "", nil
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", c.statusError(endpoint, resp)
	}

	b, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func (c *Client) getJSON(ctx context.Context, endpoint string, out any) error {
	req, err := c.newRequest(ctx, endpoint, "application/vnd.github.v3+json")
	if err != nil {
		return err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return c.statusError(endpoint, resp)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func (c *Client) newRequest(ctx context.Context, endpoint, accept string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", accept)
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	return req, nil
}

func (c *Client) statusError(endpoint string, resp *http.Response) error {
	rb, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	bodyStr := strings.TrimSpace(string(rb))
	if c.logger != nil {
		c.logger.Printf("[GitHub] request failed endpoint=%s status=%d body=%q", endpoint, resp.StatusCode, bodyStr)
	}
	return fmt.Errorf("github request failed: status=%d body=%s", resp.StatusCode, bodyStr)
}

var reservedProfilePages = map[string]bool{
	"repositories": true,
	"projects":     true,
	"packages":     true,
	"stars":        true,
	"followers":    true,
	"following":    true,
}

// ParseProfileURL pulls the username, and repository name if present,
// out of a GitHub profile or repository URL. Profile sub-pages such as
// ?tab=repositories are not mistaken for repositories.
func ParseProfileURL(rawURL string) (username, repo string) {
	if strings.TrimSpace(rawURL) == "" {
		return "", ""
	}

	path := rawURL
	if i := strings.LastIndex(path, "github.com/"); i >= 0 {
		path = path[i+len("github.com/"):]
	}
	if i := strings.Index(path, "?"); i >= 0 {
		path = path[:i]
	}
	path = strings.Trim(path, "/")

	parts := strings.Split(path, "/")
	if len(parts) >= 1 {
		username = parts[0]
	}
	if len(parts) >= 2 && !reservedProfilePages[parts[1]] {
		repo = parts[1]
	}
	return username, repo
}
