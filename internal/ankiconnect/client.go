package ankiconnect

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/mrlokans/clippings/internal/config"
	"github.com/mrlokans/clippings/internal/entities"
)

const (
	apiVersion = 6

	defaultTimeout = 30 * time.Second
)

// Client talks to the AnkiConnect add-on of a running Anki desktop.
type Client struct {
	httpClient *http.Client
	cfg        config.AnkiConnect
}

// NewClient creates a new AnkiConnect client
func NewClient(cfg config.AnkiConnect) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	if cfg.URL == "" {
		cfg.URL = config.DefaultAnkiConnectURL
	}
	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		cfg: cfg,
	}
}

type request struct {
	Action  string `json:"action"`
	Version int    `json:"version"`
	Params  any    `json:"params,omitempty"`
}

type response struct {
	Result json.RawMessage `json:"result"`
	Error  *string         `json:"error"`
}

type addNotesParams struct {
	Notes []noteParams `json:"notes"`
}

type noteParams struct {
	DeckName  string            `json:"deckName"`
	ModelName string            `json:"modelName"`
	Fields    map[string]string `json:"fields"`
	Options   noteOptions       `json:"options"`
}

type noteOptions struct {
	AllowDuplicate bool   `json:"allowDuplicate"`
	DuplicateScope string `json:"duplicateScope"`
}

// AddNotes creates one card per note in the configured deck and returns the
// number of notes Anki accepted. When Anki rejects some of them the error
// wraps ErrPartialFailure. The request is sent once, without retries.
func (c *Client) AddNotes(ctx context.Context, notes []entities.Note) (int, error) {
	if len(notes) == 0 {
		return 0, nil
	}

	params := addNotesParams{Notes: make([]noteParams, 0, len(notes))}
	for _, note := range notes {
		params.Notes = append(params.Notes, c.noteParams(note))
	}

	var ids []*int64
	if err := c.invoke(ctx, "addNotes", params, &ids); err != nil {
		return 0, err
	}

	created := 0
	for _, id := range ids {
		if id != nil {
			created++
		}
	}

	if created != len(notes) {
		return created, fmt.Errorf("%w: %d of %d notes created", ErrPartialFailure, created, len(notes))
	}
	return created, nil
}

// Version returns the AnkiConnect API version, which doubles as a
// reachability check.
func (c *Client) Version(ctx context.Context) (int, error) {
	var version int
	if err := c.invoke(ctx, "version", nil, &version); err != nil {
		return 0, err
	}
	return version, nil
}

func (c *Client) noteParams(note entities.Note) noteParams {
	return noteParams{
		DeckName:  c.cfg.DeckName,
		ModelName: c.cfg.ModelName,
		Fields: map[string]string{
			c.cfg.FrontField: note.Title,
			c.cfg.BackField:  note.Body,
		},
		Options: noteOptions{
			AllowDuplicate: c.cfg.AllowDuplicate,
			DuplicateScope: c.cfg.DuplicateScope,
		},
	}
}

func (c *Client) invoke(ctx context.Context, action string, params any, result any) error {
	payload, err := json.Marshal(request{Action: action, Version: apiVersion, Params: params})
	if err != nil {
		return fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.URL, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 500 {
		return &ServerError{StatusCode: resp.StatusCode}
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("unexpected status %d: %s", resp.StatusCode, string(body))
	}

	var apiResp response
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	if apiResp.Error != nil {
		return &APIError{Action: action, Message: *apiResp.Error}
	}

	if result != nil && len(apiResp.Result) > 0 {
		if err := json.Unmarshal(apiResp.Result, result); err != nil {
			return fmt.Errorf("failed to decode %s result: %w", action, err)
		}
	}

	return nil
}
