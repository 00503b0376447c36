package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBackend struct {
	mu          sync.Mutex
	credits     int
	generations []string
	bookmarks   map[string]bool
}

func newFakeBackend(credits int) *fakeBackend {
	return &fakeBackend{credits: credits, bookmarks: map[string]bool{}}
}

func (b *fakeBackend) handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /accounts/plans/current", func(w http.ResponseWriter, _ *http.Request) {
		b.mu.Lock()
		defer b.mu.Unlock()
		_, _ = fmt.Fprintf(w, `{"data":{"currentLimit":%d,"maxLimit":50,"plan":"pro"}}`, b.credits)
	})

	mux.HandleFunc("GET /accounts/objects/getObjectByLabel/{category}", func(w http.ResponseWriter, r *http.Request) {
		if r.PathValue("category") != "Writing" {
			_, _ = w.Write([]byte(`{"message":[]}`))
			return
		}
		_, _ = w.Write([]byte(`{"message":[{"_id":"t1","name":"Blog Writer","tagLine":"Long-form posts","categoryLabels":["Writing"]},{"_id":"t2","name":"Essay Writer","tagLine":"Essays"}]}`))
	})

	mux.HandleFunc("GET /accounts/objects/searchObjects/{query}", func(w http.ResponseWriter, r *http.Request) {
		_, _ = fmt.Fprintf(w, `{"message":[{"_id":"t9","name":"Result for %s"}]}`, r.PathValue("query"))
	})

	mux.HandleFunc("GET /accounts/bookmarks", func(w http.ResponseWriter, _ *http.Request) {
		b.mu.Lock()
		defer b.mu.Unlock()
		items := make([]string, 0, len(b.bookmarks))
		for id, on := range b.bookmarks {
			if on {
				items = append(items, fmt.Sprintf(`{"_id":%q,"name":"Bookmarked %s"}`, id, id))
			}
		}
		_, _ = fmt.Fprintf(w, `{"message":[%s]}`, strings.Join(items, ","))
	})

	mux.HandleFunc("POST /accounts/bookmarks/add-remove/{id}", func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		defer b.mu.Unlock()
		id := r.PathValue("id")
		b.bookmarks[id] = !b.bookmarks[id]
		_, _ = w.Write([]byte(`{"message":"ok"}`))
	})

	mux.HandleFunc("POST /content/response/{slug}", func(w http.ResponseWriter, r *http.Request) {
		slug := r.PathValue("slug")
		b.mu.Lock()
		b.generations = append(b.generations, slug)
		b.mu.Unlock()

		switch slug {
		case "text-to-speech":
			w.Header().Set("Content-Type", "audio/mpeg")
			_, _ = w.Write([]byte("ID3fake-mp3"))
		case "rewriter":
			_, _ = w.Write([]byte(`{"data":["first","second"]}`))
		case "essay-writer":
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"error":"Topic is too long"}`))
		default:
			var body map[string]any
			_ = json.NewDecoder(r.Body).Decode(&body)
			_, _ = fmt.Fprintf(w, `{"data":"Post about %v"}`, body["topic"])
		}
	})

	return mux
}

func (b *fakeBackend) generated() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]string(nil), b.generations...)
}

type cliEnv struct {
	home      string
	downloads string
	backend   *fakeBackend
}

func newCLIEnv(t *testing.T, credits int) cliEnv {
	t.Helper()

	backend := newFakeBackend(credits)
	server := httptest.NewServer(backend.handler())
	t.Cleanup(server.Close)

	env := cliEnv{home: t.TempDir(), downloads: t.TempDir(), backend: backend}
	t.Setenv("CK_CONTENT_API", server.URL+"/content")
	t.Setenv("CK_ACCOUNTS_API", server.URL+"/accounts")
	t.Setenv("CK_DOWNLOADS_DIR", env.downloads)
	t.Setenv("CK_LOG_LEVEL", "error")

	return env
}

func (e cliEnv) login(t *testing.T) {
	t.Helper()

	_, _, err := executeCLI(t, e.home, "login", "--account", "acc-1", "--email", "ada@example.com")
	require.NoError(t, err)
}

func TestVersionPrintsVersion(t *testing.T) {
	env := newCLIEnv(t, 10)

	stdout, _, err := executeCLI(t, env.home, "version")
	require.NoError(t, err)
	assert.Equal(t, "dev\n", stdout)
}

func TestLoginWhoamiLogout(t *testing.T) {
	env := newCLIEnv(t, 10)

	stdout, _, err := executeCLI(t, env.home, "whoami")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Not signed in")

	env.login(t)

	stdout, _, err = executeCLI(t, env.home, "whoami")
	require.NoError(t, err)
	assert.Contains(t, stdout, "ada@example.com (acc-1)")

	_, _, err = executeCLI(t, env.home, "logout")
	require.NoError(t, err)

	stdout, _, err = executeCLI(t, env.home, "whoami")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Not signed in")
}

func TestLoginRequiresAccountFlag(t *testing.T) {
	env := newCLIEnv(t, 10)

	_, _, err := executeCLI(t, env.home, "login")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "required flag(s) \"account\" not set")
}

func TestCreditsJSONOutput(t *testing.T) {
	env := newCLIEnv(t, 40)
	env.login(t)

	stdout, _, err := executeCLI(t, env.home, "credits", "--json")
	require.NoError(t, err)
	assert.True(t, json.Valid([]byte(stdout)))
	assert.Contains(t, stdout, "\"Current\": 40")
	assert.Contains(t, stdout, "\"Plan\": \"pro\"")
}

func TestCreditsRendersBalance(t *testing.T) {
	env := newCLIEnv(t, 40)
	env.login(t)

	stdout, _, err := executeCLI(t, env.home, "credits")
	require.NoError(t, err)
	assert.Contains(t, stdout, "40 / 50")
}

func TestCreditsRequiresSignIn(t *testing.T) {
	env := newCLIEnv(t, 40)

	_, _, err := executeCLI(t, env.home, "credits", "--json")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ck login")
}

func TestToolsListsProfiles(t *testing.T) {
	env := newCLIEnv(t, 10)

	stdout, _, err := executeCLI(t, env.home, "tools")
	require.NoError(t, err)
	assert.Contains(t, stdout, "rewriter")
	assert.Contains(t, stdout, "text-to-speech")
}

func TestGenerateTextJSON(t *testing.T) {
	env := newCLIEnv(t, 5)
	env.login(t)

	stdout, _, err := executeCLI(t, env.home, "generate", "blog-writer", "--field", "topic=Go", "--json")
	require.NoError(t, err)
	assert.Contains(t, stdout, "\"text\": \"Post about Go\"")
	assert.Contains(t, stdout, "\"state\": \"success\"")
	assert.Equal(t, []string{"blog-writer"}, env.backend.generated())
}

func TestGenerateRendersTextWithSpinner(t *testing.T) {
	env := newCLIEnv(t, 5)
	env.login(t)

	stdout, _, err := executeCLI(t, env.home, "generate", "blog-writer", "--field", "topic=Go")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Blog Writer")
	assert.Contains(t, stdout, "Post about Go")
}

func TestGenerateListResult(t *testing.T) {
	env := newCLIEnv(t, 5)
	env.login(t)

	stdout, _, err := executeCLI(t, env.home, "generate", "rewriter", "--field", "text=hello", "--json")
	require.NoError(t, err)
	assert.Contains(t, stdout, "\"first\"")
	assert.Contains(t, stdout, "\"attempts\": 1")
}

func TestGenerateBlockedWithoutCredits(t *testing.T) {
	env := newCLIEnv(t, 0)
	env.login(t)

	_, stderr, err := executeCLI(t, env.home, "generate", "blog-writer", "--field", "topic=Go", "--json")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no credits remaining")
	assert.Equal(t, 1, strings.Count(stderr, "used all of your credits"))
	assert.Empty(t, env.backend.generated())
}

func TestGenerateRejectsProhibitedInputBeforeAnyCall(t *testing.T) {
	env := newCLIEnv(t, 5)
	env.login(t)

	_, _, err := executeCLI(t, env.home, "generate", "blog-writer", "--field", "topic=total bullshit", "--json")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "input rejected")
	assert.Empty(t, env.backend.generated())
}

func TestGenerateSurfacesServerMessage(t *testing.T) {
	env := newCLIEnv(t, 5)
	env.login(t)

	_, stderr, err := executeCLI(t, env.home, "generate", "essay-writer", "--field", "topic=Go", "--json")
	require.Error(t, err)
	assert.Contains(t, stderr, "Topic is too long")
}

func TestGenerateRequiresSignIn(t *testing.T) {
	env := newCLIEnv(t, 5)

	_, _, err := executeCLI(t, env.home, "generate", "blog-writer", "--field", "topic=Go", "--json")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sign in required")
	assert.Empty(t, env.backend.generated())
}

func TestGenerateSavesBinaryResult(t *testing.T) {
	env := newCLIEnv(t, 5)
	env.login(t)

	stdout, _, err := executeCLI(t, env.home, "generate", "text-to-speech", "--field", "text=hello", "--json")
	require.NoError(t, err)

	saved := filepath.Join(env.downloads, "voice.mp3")
	data, err := os.ReadFile(saved)
	require.NoError(t, err)
	assert.Equal(t, "ID3fake-mp3", string(data))
	assert.Contains(t, stdout, "\"mime_type\": \"audio/mpeg\"")
	assert.Contains(t, stdout, saved)
}

func TestGenerateRejectsUnknownToolAndBadField(t *testing.T) {
	env := newCLIEnv(t, 5)

	_, _, err := executeCLI(t, env.home, "generate", "nope")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "tool not found")

	_, _, err = executeCLI(t, env.home, "generate", "blog-writer", "--field", "topic")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected name=value")

	_, _, err = executeCLI(t, env.home, "generate", "blog-writer", "--file", "x.png")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "does not accept file uploads")
}

func TestCatalogListCategory(t *testing.T) {
	env := newCLIEnv(t, 5)

	stdout, _, err := executeCLI(t, env.home, "catalog", "list", "--category", "Writing", "--filter", "essay", "--json")
	require.NoError(t, err)
	assert.Contains(t, stdout, "\"id\": \"t2\"")
	assert.NotContains(t, stdout, "\"id\": \"t1\"")

	stdout, _, err = executeCLI(t, env.home, "catalog", "list")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Writing")
	assert.Contains(t, stdout, "My Tools")
}

func TestCatalogMyToolsRequiresSignIn(t *testing.T) {
	env := newCLIEnv(t, 5)

	_, stderr, err := executeCLI(t, env.home, "catalog", "list", "--category", "My Tools")
	require.Error(t, err)
	assert.Contains(t, stderr, "ck login")
}

func TestCatalogSearch(t *testing.T) {
	env := newCLIEnv(t, 5)

	stdout, _, err := executeCLI(t, env.home, "catalog", "search", "resume")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Result for resume")
}

func TestCatalogBookmarkTogglesTwice(t *testing.T) {
	env := newCLIEnv(t, 5)
	env.login(t)

	stdout, _, err := executeCLI(t, env.home, "catalog", "bookmark", "t1")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Bookmarked t1")

	stdout, _, err = executeCLI(t, env.home, "catalog", "list", "--category", "My Tools")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Bookmarked t1")

	stdout, _, err = executeCLI(t, env.home, "catalog", "bookmark", "t1")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Removed bookmark t1")
}

func executeCLI(t *testing.T, home string, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv("HOME", home)

	root := newRootCmd()
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.SetArgs(args)

	err := root.Execute()
	return stdout.String(), stderr.String(), err
}
