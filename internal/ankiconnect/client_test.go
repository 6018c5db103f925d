package ankiconnect

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/clippings/internal/config"
	"github.com/mrlokans/clippings/internal/entities"
)

func testConfig(url string) config.AnkiConnect {
	return config.AnkiConnect{
		URL:            url,
		DeckName:       "Kindle",
		ModelName:      "Basique",
		FrontField:     "Recto",
		BackField:      "Verso",
		AllowDuplicate: true,
		DuplicateScope: "deck",
		Timeout:        5 * time.Second,
	}
}

// capturedRequest mirrors the JSON payload sent by the client.
type capturedRequest struct {
	Action  string `json:"action"`
	Version int    `json:"version"`
	Params  struct {
		Notes []struct {
			DeckName  string            `json:"deckName"`
			ModelName string            `json:"modelName"`
			Fields    map[string]string `json:"fields"`
			Options   struct {
				AllowDuplicate bool   `json:"allowDuplicate"`
				DuplicateScope string `json:"duplicateScope"`
			} `json:"options"`
		} `json:"notes"`
	} `json:"params"`
}

func newTestServer(t *testing.T, status int, body string, captured *capturedRequest) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		if captured != nil {
			require.NoError(t, json.NewDecoder(r.Body).Decode(captured))
		}
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)
	return server
}

var testNotes = []entities.Note{
	{Title: "Book One (Author)", Body: "First highlight"},
	{Title: "Book Two (Author)", Body: "Second highlight\nwith two lines"},
}

func TestClient_AddNotes(t *testing.T) {
	t.Run("all notes created", func(t *testing.T) {
		var captured capturedRequest
		server := newTestServer(t, http.StatusOK, `{"result":[1496198395707,1496198395708],"error":null}`, &captured)
		client := NewClient(testConfig(server.URL))

		created, err := client.AddNotes(context.Background(), testNotes)
		require.NoError(t, err)
		assert.Equal(t, 2, created)

		assert.Equal(t, "addNotes", captured.Action)
		assert.Equal(t, 6, captured.Version)
		require.Len(t, captured.Params.Notes, 2)

		first := captured.Params.Notes[0]
		assert.Equal(t, "Kindle", first.DeckName)
		assert.Equal(t, "Basique", first.ModelName)
		assert.Equal(t, map[string]string{"Recto": "Book One (Author)", "Verso": "First highlight"}, first.Fields)
		assert.True(t, first.Options.AllowDuplicate)
		assert.Equal(t, "deck", first.Options.DuplicateScope)

		assert.Equal(t, "Second highlight\nwith two lines", captured.Params.Notes[1].Fields["Verso"])
	})

	t.Run("partial failure", func(t *testing.T) {
		server := newTestServer(t, http.StatusOK, `{"result":[1496198395707,null],"error":null}`, nil)
		client := NewClient(testConfig(server.URL))

		created, err := client.AddNotes(context.Background(), testNotes)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrPartialFailure))
		assert.Contains(t, err.Error(), "1 of 2")
		assert.Equal(t, 1, created)
	})

	t.Run("api error", func(t *testing.T) {
		server := newTestServer(t, http.StatusOK, `{"result":null,"error":"model was not found: Basique"}`, nil)
		client := NewClient(testConfig(server.URL))

		_, err := client.AddNotes(context.Background(), testNotes)

		var apiErr *APIError
		require.True(t, errors.As(err, &apiErr))
		assert.Equal(t, "addNotes", apiErr.Action)
		assert.Equal(t, "model was not found: Basique", apiErr.Message)
	})

	t.Run("server error", func(t *testing.T) {
		server := newTestServer(t, http.StatusInternalServerError, "boom", nil)
		client := NewClient(testConfig(server.URL))

		_, err := client.AddNotes(context.Background(), testNotes)

		var serverErr *ServerError
		require.True(t, errors.As(err, &serverErr))
		assert.Equal(t, http.StatusInternalServerError, serverErr.StatusCode)
	})

	t.Run("unexpected status", func(t *testing.T) {
		server := newTestServer(t, http.StatusForbidden, "forbidden", nil)
		client := NewClient(testConfig(server.URL))

		_, err := client.AddNotes(context.Background(), testNotes)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unexpected status 403")
	})

	t.Run("invalid json", func(t *testing.T) {
		server := newTestServer(t, http.StatusOK, "not json", nil)
		client := NewClient(testConfig(server.URL))

		_, err := client.AddNotes(context.Background(), testNotes)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to decode response")
	})

	t.Run("no notes sends no request", func(t *testing.T) {
		calls := 0
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls++
		}))
		defer server.Close()
		client := NewClient(testConfig(server.URL))

		created, err := client.AddNotes(context.Background(), nil)
		require.NoError(t, err)
		assert.Equal(t, 0, created)
		assert.Equal(t, 0, calls)
	})

	t.Run("unreachable endpoint", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		url := server.URL
		server.Close()
		client := NewClient(testConfig(url))

		_, err := client.AddNotes(context.Background(), testNotes)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "request failed")
	})
}

func TestClient_Version(t *testing.T) {
	var captured capturedRequest
	server := newTestServer(t, http.StatusOK, `{"result":6,"error":null}`, &captured)
	client := NewClient(testConfig(server.URL))

	version, err := client.Version(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 6, version)
	assert.Equal(t, "version", captured.Action)
}

func TestNewClient_Defaults(t *testing.T) {
	client := NewClient(config.AnkiConnect{})

	assert.Equal(t, config.DefaultAnkiConnectURL, client.cfg.URL)
	assert.Equal(t, defaultTimeout, client.httpClient.Timeout)
}
