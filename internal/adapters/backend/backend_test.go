package backend

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/bnema/contentkit-cli/internal/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc, token string) *Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewClient(Config{
		BaseURL: server.URL + "/",
		Token: func(context.Context) (string, error) {
			return token, nil
		},
	})
	require.NoError(t, err)
	return client
}

func TestNewClientRequiresBaseURL(t *testing.T) {
	_, err := NewClient(Config{BaseURL: " "})
	require.Error(t, err)
}

func TestGenerateSendsJSONPayload(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/response/blog-writer", r.URL.Path)
		assert.Equal(t, "acct-1", r.URL.Query().Get("accountId"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		_, err := uuid.Parse(r.Header.Get("X-Request-Id"))
		assert.NoError(t, err)

		var payload map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, "gardening", payload["topic"])

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":"ok"}`))
	}, "tok")

	request := domain.GenerationRequest{ToolEndpoint: "blog-writer", Payload: map[string]any{"topic": "gardening"}, AttemptsRemaining: 1}
	raw, err := NewContentAPI(client).Generate(context.Background(), "acct-1", request, domain.ShapePlainText)
	require.NoError(t, err)

	assert.JSONEq(t, `{"data":"ok"}`, string(raw.Body))
	assert.Equal(t, "application/json", raw.ContentType)
}

func TestGenerateSendsMultipartUploads(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "800", r.FormValue("width"))

		file, header, err := r.FormFile("image")
		require.NoError(t, err)
		defer file.Close()
		data, err := io.ReadAll(file)
		require.NoError(t, err)
		assert.Equal(t, "cat.png", header.Filename)
		assert.Equal(t, []byte("PNGDATA"), data)

		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write([]byte("resized"))
	}, "")

	request := domain.GenerationRequest{
		ToolEndpoint: "image-resizer",
		Payload:      map[string]any{"width": "800"},
		Uploads:      []domain.Upload{{Field: "image", Filename: "cat.png", Data: []byte("PNGDATA")}},
	}
	raw, err := NewContentAPI(client).Generate(context.Background(), "acct-1", request, domain.ShapeBlob)
	require.NoError(t, err)

	assert.Equal(t, []byte("resized"), raw.Body)
	assert.Equal(t, "image/png", raw.ContentType)
}

func TestGenerateMapsErrorEnvelope(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":"Topic is too long"}`))
	}, "")

	_, err := NewContentAPI(client).Generate(context.Background(), "acct-1", domain.GenerationRequest{ToolEndpoint: "x"}, domain.ShapePlainText)

	var serverErr *domain.ServerError
	require.ErrorAs(t, err, &serverErr)
	assert.Equal(t, http.StatusBadRequest, serverErr.Status)
	assert.Equal(t, "Topic is too long", serverErr.Message)
}

func TestTransportFailureIsNetworkError(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	server.Close()

	client, err := NewClient(Config{BaseURL: server.URL})
	require.NoError(t, err)

	_, err = NewAccountsAPI(client).FetchBalance(context.Background(), "acct-1")
	require.ErrorIs(t, err, domain.ErrNetwork)
}

func TestFetchBalance(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/plans/current", r.URL.Path)
		assert.Equal(t, "acct-1", r.URL.Query().Get("accountId"))
		_, _ = w.Write([]byte(`{"data":{"currentLimit":12,"maxLimit":50,"plan":" pro "}}`))
	}, "")

	balance, err := NewAccountsAPI(client).FetchBalance(context.Background(), "acct-1")
	require.NoError(t, err)
	assert.Equal(t, domain.CreditBalance{Current: 12, Max: 50, Plan: "pro"}, balance)
}

func TestFetchBalanceRejectsMissingData(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	}, "")

	_, err := NewAccountsAPI(client).FetchBalance(context.Background(), "acct-1")
	require.ErrorIs(t, err, domain.ErrDecode)
}

func TestToggleBookmark(t *testing.T) {
	called := false
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		called = true
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/bookmarks/add-remove/tool-7", r.URL.Path)
		assert.Equal(t, "acct-1", r.URL.Query().Get("accountId"))
		w.WriteHeader(http.StatusOK)
	}, "")

	require.NoError(t, NewAccountsAPI(client).Toggle(context.Background(), "acct-1", "tool-7"))
	assert.True(t, called)
}

func TestCatalogEndpoints(t *testing.T) {
	tests := []struct {
		name string
		path string
		call func(*AccountsAPI) ([]domain.Tool, error)
	}{
		{
			name: "category",
			path: "/objects/getObjectByLabel/Social Media",
			call: func(a *AccountsAPI) ([]domain.Tool, error) {
				return a.ListByCategory(context.Background(), "Social Media")
			},
		},
		{
			name: "search",
			path: "/objects/searchObjects/blog",
			call: func(a *AccountsAPI) ([]domain.Tool, error) { return a.Search(context.Background(), "blog") },
		},
		{
			name: "bookmarked",
			path: "/bookmarks",
			call: func(a *AccountsAPI) ([]domain.Tool, error) {
				return a.ListBookmarked(context.Background(), "acct-1")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, tt.path, r.URL.Path)
				_, _ = w.Write([]byte(`{"message":[{"_id":"t1","name":"Blog Writer","tagLine":"Posts","logoUrl":"https://cdn/x.png","categoryLabels":["Writing"],"isBookmarked":true}]}`))
			}, "")

			tools, err := tt.call(NewAccountsAPI(client))
			require.NoError(t, err)
			require.Len(t, tools, 1)
			assert.Equal(t, domain.Tool{
				ID:             "t1",
				Name:           "Blog Writer",
				TagLine:        "Posts",
				LogoURL:        "https://cdn/x.png",
				CategoryLabels: []string{"Writing"},
				IsBookmarked:   true,
			}, tools[0])
		})
	}
}

func TestGenerateRejectsOversizedBody(t *testing.T) {
	const limit = 1024

	tests := []struct {
		name    string
		size    int
		chunked bool
		wantErr bool
	}{
		{name: "declared length over limit", size: limit + 512, wantErr: true},
		{name: "chunked body over limit", size: limit + 1, chunked: true, wantErr: true},
		{name: "body at limit", size: limit, chunked: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.Header().Set("Content-Type", "application/zip")
				if tt.chunked {
					w.(http.Flusher).Flush()
				}
				_, _ = w.Write(make([]byte, tt.size))
			}))
			t.Cleanup(server.Close)

			client, err := NewClient(Config{BaseURL: server.URL, MaxResponseBytes: limit})
			require.NoError(t, err)

			raw, err := NewContentAPI(client).Generate(context.Background(), "acct-1", domain.GenerationRequest{ToolEndpoint: "pdf-to-images"}, domain.ShapeBlob)
			if !tt.wantErr {
				require.NoError(t, err)
				assert.Len(t, raw.Body, tt.size)
				return
			}

			require.ErrorIs(t, err, domain.ErrResponseTooLarge)
			assert.Equal(t, domain.GenericFailureMessage, domain.UserMessage(err))
		})
	}
}
