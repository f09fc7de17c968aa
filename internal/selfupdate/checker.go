package selfupdate

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"golang.org/x/mod/semver"
)

const (
	defaultOwner = "abhisek"
	defaultRepo  = "skillq"

	defaultAPIBaseURL      = "https://api.github.com/repos"
	defaultDownloadBaseURL = "https://github.com"
)

// Checker looks up and applies skillq releases.
type Checker struct {
	owner           string
	repo            string
	apiBaseURL      string
	downloadBaseURL string
	client          *http.Client
	execPath        func() (string, error)
}

// Option configures a Checker.
type Option func(*Checker)

// WithTimeout sets the HTTP client timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Checker) { c.client.Timeout = d }
}

// WithBaseURLs overrides the GitHub endpoints, for tests.
func WithBaseURLs(api, download string) Option {
	return func(c *Checker) {
		c.apiBaseURL = api
		c.downloadBaseURL = download
	}
}

// WithExecPath overrides executable path resolution, for tests.
func WithExecPath(fn func() (string, error)) Option {
	return func(c *Checker) { c.execPath = fn }
}

// NewChecker creates a Checker with default settings.
func NewChecker(opts ...Option) *Checker {
	c := &Checker{
		owner:           defaultOwner,
		repo:            defaultRepo,
		apiBaseURL:      defaultAPIBaseURL,
		downloadBaseURL: defaultDownloadBaseURL,
		client:          &http.Client{Timeout: 30 * time.Second},
		execPath:        os.Executable,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// CheckInput carries the current version for an update check.
type CheckInput struct {
	Version string
}

// CheckResult reports whether a newer release exists.
type CheckResult struct {
	CurrentVersion  string
	LatestVersion   string
	UpdateAvailable bool
}

type releaseResponse struct {
	TagName string `json:"tag_name"`
}

// Check queries the latest release tag and compares it against the running
// version using semver ordering.
func (c *Checker) Check(ctx context.Context, input *CheckInput) (*CheckResult, error) {
	url := fmt.Sprintf("%s/%s/%s/releases/latest", strings.TrimRight(c.apiBaseURL, "/"), c.owner, c.repo)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/vnd.github+json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("query latest release: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d from %s", resp.StatusCode, url)
	}

	var release releaseResponse
	if err := json.NewDecoder(resp.Body).Decode(&release); err != nil {
		return nil, fmt.Errorf("decode release response: %w", err)
	}
	if release.TagName == "" {
		return nil, fmt.Errorf("release response has no tag name")
	}

	current := canonicalVersion(input.Version)
	latest := canonicalVersion(release.TagName)
	if !semver.IsValid(latest) {
		return nil, fmt.Errorf("release tag %q is not a valid version", release.TagName)
	}

	return &CheckResult{
		CurrentVersion:  input.Version,
		LatestVersion:   release.TagName,
		UpdateAvailable: !semver.IsValid(current) || semver.Compare(latest, current) > 0,
	}, nil
}

// canonicalVersion normalizes a release tag to the "vMAJOR.MINOR.PATCH"
// shape semver expects.
func canonicalVersion(v string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return v
	}
	if !strings.HasPrefix(v, "v") {
		v = "v" + v
	}
	return v
}
