package lrhttp

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weegigs/link-rest-go/lr"
)

type note struct {
	ID      string
	Text    string
	Written time.Time
}

type notes map[string]note

func (n notes) List(context.Context) ([]note, error) {
	return []note{n["a"], n["b"]}, nil
}

func (n notes) Get(_ context.Context, id string) (note, bool, error) {
	found, ok := n[id]
	return found, ok, nil
}

type broken struct{}

func (broken) List(context.Context) ([]note, error) {
	return nil, errors.New("offline")
}

func (broken) Get(context.Context, string) (note, bool, error) {
	return note{}, false, errors.New("offline")
}

var noteEntity = lr.NewResourceEntity[note]().Named("note").
	ID("id", lr.ValueString, func(n note) any { return n.ID }).
	Attribute("text", lr.ValueString, lr.SQLNone, func(n note) any { return n.Text }).
	Attribute("written", lr.ValueDate, lr.SQLNone, func(n note) any { return n.Written }).
	MustBuild()

func handler[T any](t *testing.T, source Source[T]) http.Handler {
	t.Helper()

	service := lr.NewEncoderService(nil, lr.NewAttributeEncoderFactory(nil, lr.Location(time.UTC)), nil, nil, nil)
	h, err := NewHandler[T](service, noteEntity, source)
	require.NoError(t, err)
	return h
}

func get(h http.Handler, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func fixtures() notes {
	day := time.Date(2016, 3, 26, 0, 0, 0, 0, time.UTC)
	return notes{
		"a": {ID: "a", Text: "first", Written: day},
		"b": {ID: "b", Text: "second", Written: day.AddDate(0, 0, 1)},
	}
}

func TestListsResources(t *testing.T) {
	w := get(handler[note](t, fixtures()), "/")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json; charset=utf-8", w.Header().Get("Content-Type"))
	assert.Equal(t, `{"data":[{"id":"a","text":"first","written":"2016-03-26"},{"id":"b","text":"second","written":"2016-03-27"}],"total":2}`, w.Body.String())
}

func TestGetsResource(t *testing.T) {
	w := get(handler[note](t, fixtures()), "/b")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, `{"data":[{"id":"b","text":"second","written":"2016-03-27"}],"total":1}`, w.Body.String())
}

func TestReportsMissingResources(t *testing.T) {
	w := get(handler[note](t, fixtures()), "/z")

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"status":404,"message":"resource not found"}`, w.Body.String())
}

func TestReportsSourceFailures(t *testing.T) {
	h := handler[note](t, broken{})

	assert.Equal(t, http.StatusInternalServerError, get(h, "/").Code)
	assert.Equal(t, http.StatusInternalServerError, get(h, "/a").Code)
}

type tallies []map[string]any

func (t tallies) List(context.Context) ([]map[string]any, error) {
	return t, nil
}

func (t tallies) Get(_ context.Context, id string) (map[string]any, bool, error) {
	for _, tally := range t {
		if tally["id"] == id {
			return tally, true, nil
		}
	}
	return nil, false, nil
}

func TestReportsEncodingFailures(t *testing.T) {
	entity := lr.NewResourceEntity[map[string]any]().Named("tally").
		ID("id", lr.ValueString, nil).
		Attribute("count", lr.ValueNumeric, lr.SQLNone, nil).
		MustBuild()
	service := lr.NewEncoderService(nil, lr.NewAttributeEncoderFactory(nil, lr.Location(time.UTC)), nil, nil, nil)
	h, err := NewHandler[map[string]any](service, entity, tallies{{"id": "t1", "count": "many"}})
	require.NoError(t, err)

	for _, path := range []string{"/", "/t1"} {
		w := get(h, path)

		assert.Equal(t, http.StatusInternalServerError, w.Code, path)
		assert.JSONEq(t, `{"status":500,"message":"failed to encode resource"}`, w.Body.String(), path)
	}
}

func TestDescribesResources(t *testing.T) {
	w := get(handler[note](t, fixtures()), "/meta")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"entity":"note","id":"id","properties":[
		{"name":"id","category":"string","valueType":"string"},
		{"name":"text","category":"string","valueType":"string"},
		{"name":"written","category":"date","valueType":"date"}]}`, w.Body.String())
}

func TestRejectsInvalidEntities(t *testing.T) {
	invalid := lr.NewResourceEntity[note]().Named("note").
		Attribute("text", lr.ValueString, lr.SQLNone, nil).
		Attribute("text", lr.ValueString, lr.SQLNone, nil)

	_, err := NewHandler[note](lr.NewEncoderService(nil, nil, nil, nil, nil), invalid, fixtures())
	assert.Error(t, err)
}
