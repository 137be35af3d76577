package github

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"career-compass/internal/config"
)

func TestParseProfileURL(t *testing.T) {
	cases := []struct {
		url      string
		username string
		repo     string
	}{
		{"https://github.com/octocat", "octocat", ""},
		{"https://github.com/octocat/hello-world", "octocat", "hello-world"},
		{"https://github.com/octocat/hello-world/", "octocat", "hello-world"},
		{"https://github.com/octocat?tab=repositories", "octocat", ""},
		{"https://github.com/octocat/repositories", "octocat", ""},
		{"https://github.com/octocat/followers", "octocat", ""},
		{"github.com/octocat/dashboards", "octocat", "dashboards"},
		{"", "", ""},
	}
	for _, c := range cases {
		username, repo := ParseProfileURL(c.url)
		if username != c.username || repo != c.repo {
			t.Fatalf("ParseProfileURL(%q): expected (%q, %q), got (%q, %q)",
				c.url, c.username, c.repo, username, repo)
		}
	}
}

func TestUserReposQueriesTheAPI(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/users/octocat/repos" {
			t.Fatalf("unexpected path %q", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("sort") != "updated" || q.Get("type") != "owner" || q.Get("per_page") != "5" {
			t.Fatalf("unexpected query %q", r.URL.RawQuery)
		}
		if r.Header.Get("User-Agent") != userAgent {
			t.Fatalf("unexpected user agent %q", r.Header.Get("User-Agent"))
		}
		if r.Header.Get("Authorization") != "Bearer token-123" {
			t.Fatalf("unexpected authorization %q", r.Header.Get("Authorization"))
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"name": "hello-world", "description": "demo", "language": "Python",
			"topics": ["healthcare"], "stargazers_count": 12, "forks_count": 2,
			"html_url": "https://github.com/octocat/hello-world"}]`))
	}))
	defer srv.Close()

	client := NewClient(config.GitHubConfig{Token: "token-123", BaseURL: srv.URL, MaxRepos: 10}, nil)

	repos, err := client.UserRepos(context.Background(), "octocat", 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(repos) != 1 {
		t.Fatalf("expected 1 repo, got %d", len(repos))
	}
	repo := repos[0]
	if repo.Name != "hello-world" || repo.Language != "Python" || repo.Stars != 12 {
		t.Fatalf("unexpected repo %+v", repo)
	}
}

func TestUserReposCapsPageSize(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("per_page"); got != "3" {
			t.Fatalf("expected per_page capped at 3, got %q", got)
		}
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	client := NewClient(config.GitHubConfig{BaseURL: srv.URL, MaxRepos: 3}, nil)
	if _, err := client.UserRepos(context.Background(), "octocat", 50); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestReadmeMissingIsNotAnError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/repos/octocat/hello-world/readme":
			if r.Header.Get("Accept") != "application/vnd.github.v3.raw" {
				t.Fatalf("unexpected accept header %q", r.Header.Get("Accept"))
			}
			w.Write([]byte("# Hello\nA Python dashboard."))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	client := NewClient(config.GitHubConfig{BaseURL: srv.URL}, nil)

	readme, err := client.Readme(context.Background(), "octocat", "hello-world")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if readme != "# Hello\nA Python dashboard." {
		t.Fatalf("unexpected readme %q", readme)
	}

	missing, err := client.Readme(context.Background(), "octocat", "no-readme")
	if err != nil {
		t.Fatalf("expected missing readme to be tolerated, got %v", err)
	}
	if missing != "" {
		t.Fatalf("expected empty readme, got %q", missing)
	}
}
