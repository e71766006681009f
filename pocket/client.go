package pocket

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

const retrieveURL = "https://getpocket.com/v3/get"

// ErrUnauthorized is returned when Pocket rejects the consumer key or
// access token.
var ErrUnauthorized = errors.New("pocket: unauthorized")

// RawTag is one value of the keyed tag mapping Pocket attaches to an item.
type RawTag struct {
	ItemID string `json:"item_id"`
	Tag    string `json:"tag"`
}

// RawItem is a single article as returned by /v3/get with
// detailType=complete. Pocket serializes several numeric fields as strings.
type RawItem struct {
	ItemID        string            `json:"item_id"`
	GivenURL      string            `json:"given_url"`
	ResolvedTitle string            `json:"resolved_title"`
	Excerpt       string            `json:"excerpt"`
	TimeFavorited string            `json:"time_favorited"`
	TimeToRead    int               `json:"time_to_read"`
	WordCount     string            `json:"word_count"`
	Tags          map[string]RawTag `json:"tags"`
}

type retrieveRequest struct {
	ConsumerKey string `json:"consumer_key"`
	AccessToken string `json:"access_token"`
	Favorite    int    `json:"favorite"`
	Count       int    `json:"count"`
	Sort        string `json:"sort"`
	DetailType  string `json:"detailType"`
}

type retrieveResponse struct {
	List json.RawMessage `json:"list"`
}

// Client calls the Pocket retrieve API for one account.
type Client struct {
	consumerKey string
	accessToken string
	baseURL     string
	httpClient  *http.Client
}

func NewClient(consumerKey, accessToken string) *Client {
	return &Client{
		consumerKey: consumerKey,
		accessToken: accessToken,
		baseURL:     retrieveURL,
		httpClient:  http.DefaultClient,
	}
}

// SetBaseURLForTest points the client at a test server.
func (c *Client) SetBaseURLForTest(url string) {
	c.baseURL = url
}

// FetchFavorites retrieves up to 1000 favorited items, newest first, with
// full detail. No retries are performed; any failure is terminal for the
// sync attempt that triggered it.
func (c *Client) FetchFavorites(ctx context.Context) ([]RawItem, error) {
	body, err := json.Marshal(retrieveRequest{
		ConsumerKey: c.consumerKey,
		AccessToken: c.accessToken,
		Favorite:    1,
		Count:       1000,
		Sort:        "newest",
		DetailType:  "complete",
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("requesting favorites: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, fmt.Errorf("%w: %s", ErrUnauthorized, resp.Header.Get("X-Error"))
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("pocket: unexpected status %d", resp.StatusCode)
	}

	var parsed retrieveResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("pocket: decoding response: %w", err)
	}

	return decodeList(parsed.List)
}

// decodeList handles Pocket's habit of returning "list" as an empty JSON
// array instead of an object when the account has no matching items.
func decodeList(raw json.RawMessage) ([]RawItem, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("[]")) || bytes.Equal(trimmed, []byte("null")) {
		return nil, nil
	}

	var keyed map[string]RawItem
	if err := json.Unmarshal(trimmed, &keyed); err != nil {
		return nil, fmt.Errorf("pocket: decoding item list: %w", err)
	}

	items := make([]RawItem, 0, len(keyed))
	for _, item := range keyed {
		items = append(items, item)
	}
	return items, nil
}
