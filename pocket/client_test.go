package pocket

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchFavorites(t *testing.T) {
	t.Run("Sends the fixed retrieve parameters", func(t *testing.T) {
		var got retrieveRequest
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
			fmt.Fprint(w, `{"status":1,"list":{}}`)
		}))
		defer srv.Close()

		client := NewClient("ck", "at")
		client.SetBaseURLForTest(srv.URL)

		_, err := client.FetchFavorites(context.Background())
		require.NoError(t, err)

		assert.Equal(t, "ck", got.ConsumerKey)
		assert.Equal(t, "at", got.AccessToken)
		assert.Equal(t, 1, got.Favorite)
		assert.Equal(t, 1000, got.Count)
		assert.Equal(t, "newest", got.Sort)
		assert.Equal(t, "complete", got.DetailType)
	})

	t.Run("Decodes the keyed item list", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `{"status":1,"list":{
				"100":{"item_id":"100","given_url":"https://a.example","resolved_title":"A","time_favorited":"1700000100","word_count":"300","tags":{"go":{"item_id":"100","tag":"go"}}},
				"101":{"item_id":"101","given_url":"https://b.example","resolved_title":"B","time_favorited":"1700000101"}
			}}`)
		}))
		defer srv.Close()

		client := NewClient("ck", "at")
		client.SetBaseURLForTest(srv.URL)

		items, err := client.FetchFavorites(context.Background())
		require.NoError(t, err)
		require.Len(t, items, 2)

		byID := map[string]RawItem{}
		for _, it := range items {
			byID[it.ItemID] = it
		}
		assert.Equal(t, "https://a.example", byID["100"].GivenURL)
		assert.Equal(t, "go", byID["100"].Tags["go"].Tag)
		assert.Empty(t, byID["101"].Tags)
	})

	t.Run("Empty list returned as array", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `{"status":2,"list":[]}`)
		}))
		defer srv.Close()

		client := NewClient("ck", "at")
		client.SetBaseURLForTest(srv.URL)

		items, err := client.FetchFavorites(context.Background())
		require.NoError(t, err)
		assert.Empty(t, items)
	})

	t.Run("Unauthorized", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Error", "Invalid consumer key")
			w.WriteHeader(http.StatusUnauthorized)
		}))
		defer srv.Close()

		client := NewClient("bad", "bad")
		client.SetBaseURLForTest(srv.URL)

		_, err := client.FetchFavorites(context.Background())
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrUnauthorized)
		assert.Contains(t, err.Error(), "Invalid consumer key")
	})

	t.Run("Forbidden maps to unauthorized", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusForbidden)
		}))
		defer srv.Close()

		client := NewClient("ck", "at")
		client.SetBaseURLForTest(srv.URL)

		_, err := client.FetchFavorites(context.Background())
		assert.ErrorIs(t, err, ErrUnauthorized)
	})

	t.Run("Unexpected status", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer srv.Close()

		client := NewClient("ck", "at")
		client.SetBaseURLForTest(srv.URL)

		_, err := client.FetchFavorites(context.Background())
		require.Error(t, err)
		assert.NotErrorIs(t, err, ErrUnauthorized)
	})
}

func TestDecodeList(t *testing.T) {
	items, err := decodeList(nil)
	require.NoError(t, err)
	assert.Nil(t, items)

	items, err = decodeList([]byte("null"))
	require.NoError(t, err)
	assert.Nil(t, items)

	_, err = decodeList([]byte(`"nonsense"`))
	assert.Error(t, err)
}
