// Package update checks GitHub for newer client releases.
package update

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// Repo is the repository checked for releases
const Repo = "shortclip/shortclip"

type release struct {
	TagName    string `json:"tag_name"`
	HTMLURL    string `json:"html_url"`
	Prerelease bool   `json:"prerelease"`
	Draft      bool   `json:"draft"`
}

// Info describes the latest known release relative to the running build.
type Info struct {
	Available      bool
	CurrentVersion string
	LatestVersion  string
	URL            string
}

// Checker queries the GitHub releases API.
type Checker struct {
	currentVersion string
	httpClient     *http.Client
}

// NewChecker creates a checker for the given build version.
func NewChecker(currentVersion string) *Checker {
	return &Checker{
		currentVersion: currentVersion,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Check fetches the latest release. Dev builds never report an update.
func (c *Checker) Check() (*Info, error) {
	url := fmt.Sprintf("https://api.github.com/repos/%s/releases/latest", Repo)

	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/vnd.github.v3+json")
	req.Header.Set("User-Agent", "shortclip-update-checker")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch release: %w", err)
	}
	defer resp.Body.Close()

	info := &Info{CurrentVersion: c.currentVersion}

	if resp.StatusCode == http.StatusNotFound {
		// No releases yet
		return info, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("GitHub API returned status %d", resp.StatusCode)
	}

	var rel release
	if err := json.NewDecoder(resp.Body).Decode(&rel); err != nil {
		return nil, fmt.Errorf("decode release: %w", err)
	}
	if rel.Prerelease || rel.Draft {
		return info, nil
	}

	info.LatestVersion = rel.TagName
	info.URL = rel.HTMLURL
	info.Available = isNewer(rel.TagName, c.currentVersion)
	return info, nil
}

// isNewer compares dotted versions; dev builds never update.
func isNewer(latest, current string) bool {
	if current == "dev" || current == "" {
		return false
	}

	lv := parseVersion(latest)
	cv := parseVersion(current)
	for i := 0; i < 3; i++ {
		if lv[i] != cv[i] {
			return lv[i] > cv[i]
		}
	}
	return false
}

func parseVersion(v string) [3]int {
	var parts [3]int
	v = strings.TrimPrefix(v, "v")
	if idx := strings.IndexAny(v, "-+"); idx != -1 {
		v = v[:idx]
	}
	for i, segment := range strings.SplitN(v, ".", 3) {
		fmt.Sscanf(segment, "%d", &parts[i])
	}
	return parts
}
