// Package source fetches candidate puzzle definitions from Reddit level-pack
// posts: a small catalog of posts is read from disk, each post's page is
// scraped (through the disk cache) and scanned for embedded Hexcells level
// text blocks.
package source

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"regexp"
	"time"

	"hexsolver/internal/cache"
)

// Post is one catalogued Reddit submission pointing at a level pack.
type Post struct {
	Score  int    `json:"score"`
	URL    string `json:"url"`
	Title  string `json:"title"`
	Date   string `json:"date"`
	Author string `json:"author"`
}

// ListLevels reads the JSON catalog of posts at path.
func ListLevels(path string) ([]Post, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("source: reading post catalog: %w", err)
	}
	var posts []Post
	if err := json.Unmarshal(data, &posts); err != nil {
		return nil, fmt.Errorf("source: decoding post catalog: %w", err)
	}
	return posts, nil
}

// levelPattern matches an embedded "Hexcells level v1" block: the version
// line, four metadata lines, 32 grid rows each containing ".." somewhere, and
// a final grid row, up to the next newline-or-tag.
var levelPattern = regexp.MustCompile(`(?s)(Hexcells level v1\n[^\n]*\n(?:[^\n]*\n){3}(?:[^\n]*\.\.[^\n]*\n){32}[^\n]*\.\.[^\n<]*)[\n<]`)

// httpClient is overridable in tests.
var httpClient = &http.Client{Timeout: 30 * time.Second}

func fetchURL(url string) (string, error) {
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("source: building request: %w", err)
	}
	req.Header.Set("User-Agent", "hexsolver/0.1")

	resp, err := httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("source: fetching %s: %w", url, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("source: reading response body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("source: %s returned status %d", url, resp.StatusCode)
	}
	return string(body), nil
}

// StrDefnsOfPost fetches (through c) the page at post.URL and returns the
// raw text of every embedded level definition it contains.
func StrDefnsOfPost(c *cache.Cache, post Post) ([]string, error) {
	html, err := cache.WithCache(c, post.URL, func() (string, error) {
		return fetchURL(post.URL)
	})
	if err != nil {
		return nil, err
	}

	matches := levelPattern.FindAllStringSubmatch(html, -1)
	defns := make([]string, 0, len(matches))
	for _, m := range matches {
		defns = append(defns, m[1])
	}
	return defns, nil
}
