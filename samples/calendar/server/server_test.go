package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/jaswdr/faker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weegigs/link-rest-go/samples/calendar"
	"github.com/weegigs/link-rest-go/support"
)

const configuration = `
location: UTC
relationships:
  overrides:
    entry.attendees: id
redact:
  properties: [email]
`

type test = func(t *testing.T)

func server(t *testing.T) (http.Handler, *calendar.Store) {
	t.Helper()

	cfg, err := support.LoadConfiguration(strings.NewReader(configuration))
	require.NoError(t, err)

	store := calendar.NewStore(calendar.NewIDGenerator())
	calendar.Seed(store, faker.New(), 3, 2, time.Date(2016, 3, 1, 0, 0, 0, 0, time.UTC))

	handler, err := NewServer(cfg, store)
	require.NoError(t, err)

	return handler, store
}

func get(h http.Handler, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

type envelope struct {
	Data  []map[string]any `json:"data"`
	Total int              `json:"total"`
}

func listsPeople(h http.Handler) test {
	return func(t *testing.T) {
		w := get(h, "/people")
		require.Equal(t, http.StatusOK, w.Code)

		var body envelope
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, 3, body.Total)
		assert.Len(t, body.Data, 3)

		for _, person := range body.Data {
			if email, ok := person["email"]; ok {
				assert.Equal(t, "***", email)
			}
		}
	}
}

func referencesAttendeesById(h http.Handler) test {
	return func(t *testing.T) {
		w := get(h, "/entries")
		require.Equal(t, http.StatusOK, w.Code)

		var body envelope
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, 6, body.Total)

		for _, entry := range body.Data {
			for _, attendee := range entry["attendees"].([]any) {
				_, isID := attendee.(string)
				assert.True(t, isID)
			}
			_, inline := entry["owner"].(map[string]any)
			assert.True(t, inline)
		}
	}
}

func getsOnePerson(h http.Handler, store *calendar.Store) test {
	return func(t *testing.T) {
		people, err := calendar.NewPeopleSource(store).List(context.Background())
		require.NoError(t, err)

		w := get(h, "/people/"+people[0].ID.String())
		require.Equal(t, http.StatusOK, w.Code)

		var body envelope
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		require.Equal(t, 1, body.Total)
		assert.Equal(t, people[0].ID.String(), body.Data[0]["id"])

		assert.Equal(t, http.StatusNotFound, get(h, "/people/"+people[0].Entries[0].ID.String()).Code)
	}
}

func describesEntries(h http.Handler) test {
	return func(t *testing.T) {
		w := get(h, "/entries/meta")
		require.Equal(t, http.StatusOK, w.Code)

		var body struct {
			Entity     string           `json:"entity"`
			Properties []map[string]any `json:"properties"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, "entry", body.Entity)
		assert.Len(t, body.Properties, 10)
	}
}

func TestCalendarServer(t *testing.T) {
	h, store := server(t)

	t.Run("lists people", listsPeople(h))
	t.Run("references attendees by id", referencesAttendeesById(h))
	t.Run("gets one person", getsOnePerson(h, store))
	t.Run("describes entries", describesEntries(h))
}
