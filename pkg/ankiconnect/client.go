package ankiconnect

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sony/gobreaker"
)

// ErrUnavailable indicates the AnkiConnect endpoint could not be reached at
// all (transport failure or open circuit breaker). Callers treat this as an
// aggregate failure: the whole pending call is aborted, no per-item state
// changes.
var ErrUnavailable = errors.New("ankiconnect unavailable")

const protocolVersion = 6

type Client struct {
	url     string
	client  *http.Client
	breaker *gobreaker.CircuitBreaker
}

func NewClient(host string, port int) *Client {
	return &Client{
		url: fmt.Sprintf("http://%s:%d", host, port),
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
		breaker: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:    "ankiconnect",
			Timeout: 15 * time.Second,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= 3
			},
		}),
	}
}

// --- Wire envelope (internal to this package) ---

type invokeRequest struct {
	Action  string      `json:"action"`
	Version int         `json:"version"`
	Params  interface{} `json:"params,omitempty"`
}

type invokeResponse struct {
	Result json.RawMessage `json:"result"`
	Error  *string         `json:"error"`
}

// invoke performs one AnkiConnect action and decodes the result into out.
// Transport failures count against the circuit breaker; an error reported by
// AnkiConnect itself (the store answered, just unhappily) does not.
func (c *Client) invoke(ctx context.Context, action string, params interface{}, out interface{}) error {
	result, err := c.breaker.Execute(func() (interface{}, error) {
		payload, err := json.Marshal(invokeRequest{
			Action:  action,
			Version: protocolVersion,
			Params:  params,
		})
		if err != nil {
			return nil, fmt.Errorf("marshal request: %w", err)
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewBuffer(payload))
		if err != nil {
			return nil, fmt.Errorf("create request: %w", err)
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := c.client.Do(req)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
		}
		defer resp.Body.Close()

		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("read response: %w", err)
		}

		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("%w: status %d, body: %s", ErrUnavailable, resp.StatusCode, string(body))
		}

		return body, nil
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return fmt.Errorf("%w: %v", ErrUnavailable, err)
		}
		return err
	}

	var envelope invokeResponse
	if err := json.Unmarshal(result.([]byte), &envelope); err != nil {
		return fmt.Errorf("unmarshal response: %w", err)
	}
	if envelope.Error != nil && *envelope.Error != "" {
		return fmt.Errorf("ankiconnect error: %s", *envelope.Error)
	}

	if out != nil && len(envelope.Result) > 0 {
		if err := json.Unmarshal(envelope.Result, out); err != nil {
			return fmt.Errorf("unmarshal result: %w", err)
		}
	}
	return nil
}

func (c *Client) Version(ctx context.Context) (int, error) {
	var version int
	if err := c.invoke(ctx, "version", nil, &version); err != nil {
		return 0, err
	}
	return version, nil
}

func (c *Client) DeckNames(ctx context.Context) ([]string, error) {
	var decks []string
	if err := c.invoke(ctx, "deckNames", nil, &decks); err != nil {
		return nil, err
	}
	return decks, nil
}

func (c *Client) CreateDeck(ctx context.Context, deck string) (int64, error) {
	var id int64
	if err := c.invoke(ctx, "createDeck", map[string]string{"deck": deck}, &id); err != nil {
		return 0, err
	}
	return id, nil
}

func (c *Client) ModelNames(ctx context.Context) ([]string, error) {
	var models []string
	if err := c.invoke(ctx, "modelNames", nil, &models); err != nil {
		return nil, err
	}
	return models, nil
}

func (c *Client) ModelFieldNames(ctx context.Context, model string) ([]string, error) {
	var fields []string
	if err := c.invoke(ctx, "modelFieldNames", map[string]string{"modelName": model}, &fields); err != nil {
		return nil, err
	}
	return fields, nil
}

// CanAddNotes reports, positionally, whether each note would be accepted by
// the store. False usually means the duplicate guard would reject it.
func (c *Client) CanAddNotes(ctx context.Context, notes []Note) ([]bool, error) {
	var results []bool
	if err := c.invoke(ctx, "canAddNotes", map[string]interface{}{"notes": notes}, &results); err != nil {
		return nil, err
	}
	return results, nil
}

// AddNotes submits notes in bulk. The result is aligned by position to the
// request; a nil entry means the store rejected that note while still
// processing the others.
func (c *Client) AddNotes(ctx context.Context, notes []Note) ([]*int64, error) {
	var ids []*int64
	if err := c.invoke(ctx, "addNotes", map[string]interface{}{"notes": notes}, &ids); err != nil {
		return nil, err
	}
	return ids, nil
}

func (c *Client) FindNotes(ctx context.Context, query string) ([]int64, error) {
	var ids []int64
	if err := c.invoke(ctx, "findNotes", map[string]string{"query": query}, &ids); err != nil {
		return nil, err
	}
	return ids, nil
}

func (c *Client) NotesInfo(ctx context.Context, ids []int64) ([]NoteInfo, error) {
	var notes []NoteInfo
	if err := c.invoke(ctx, "notesInfo", map[string]interface{}{"notes": ids}, &notes); err != nil {
		return nil, err
	}
	return notes, nil
}

func (c *Client) UpdateNoteFields(ctx context.Context, id int64, fields map[string]string) error {
	params := map[string]interface{}{
		"note": map[string]interface{}{
			"id":     id,
			"fields": fields,
		},
	}
	return c.invoke(ctx, "updateNoteFields", params, nil)
}

// DeleteNotes is idempotent at the store level: identifiers that no longer
// exist are silently skipped.
func (c *Client) DeleteNotes(ctx context.Context, ids []int64) error {
	return c.invoke(ctx, "deleteNotes", map[string]interface{}{"notes": ids}, nil)
}
