package source

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"hexsolver/internal/cache"
)

func buildLevelBlock() string {
	var b strings.Builder
	b.WriteString("Hexcells level v1\n")
	b.WriteString("My Level\n")
	b.WriteString("someone\n")
	b.WriteString("v1\n")
	b.WriteString("custom text\n")
	for i := 0; i < 32; i++ {
		b.WriteString("..............................................................\n")
	}
	b.WriteString("..............................................................")
	return b.String()
}

func TestListLevelsReadsCatalog(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "posts.json")
	const payload = `[{"score": 42, "url": "https://example.com/a", "title": "A pack", "date": "2024-01-01", "author": "alice"}]`
	if err := os.WriteFile(path, []byte(payload), 0o644); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	posts, err := ListLevels(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(posts) != 1 {
		t.Fatalf("expected 1 post, got %d", len(posts))
	}
	if posts[0].Score != 42 || posts[0].Author != "alice" {
		t.Fatalf("unexpected post: %+v", posts[0])
	}
}

func TestListLevelsMissingFile(t *testing.T) {
	if _, err := ListLevels(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Fatal("expected an error for a missing catalog file")
	}
}

func TestStrDefnsOfPostExtractsEmbeddedLevels(t *testing.T) {
	block := buildLevelBlock()
	page := "<html><body>before\n" + block + "\n</html>"

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(page))
	}))
	defer server.Close()

	c, err := cache.New(t.TempDir())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	post := Post{URL: server.URL, Title: "test post"}
	defns, err := StrDefnsOfPost(c, post)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(defns) != 1 {
		t.Fatalf("expected 1 embedded level, got %d", len(defns))
	}
	if defns[0] != block {
		t.Fatalf("extracted block did not match:\n%q\nwant:\n%q", defns[0], block)
	}
}

func TestStrDefnsOfPostIsCached(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Write([]byte(buildLevelBlock()))
	}))
	defer server.Close()

	c, err := cache.New(t.TempDir())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	post := Post{URL: server.URL}
	if _, err := StrDefnsOfPost(c, post); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := StrDefnsOfPost(c, post); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls != 1 {
		t.Fatalf("expected the server to be hit once, got %d", calls)
	}
}

func TestStrDefnsOfPostPropagatesHTTPErrors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	c, err := cache.New(t.TempDir())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := StrDefnsOfPost(c, Post{URL: server.URL}); err == nil {
		t.Fatal("expected an error for a non-200 response")
	}
}
