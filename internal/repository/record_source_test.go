package repository

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/user-directory/pkg/config"
)

const twoPeople = `{"results":[
 {"gender":"male","name":{"first":"Luis","last":"Ortega"},"email":"luis@example.com","phone":"555-1","dob":{"age":44},"location":{"country":"Spain"},"picture":{"large":"https://img/1.jpg"},"login":{"uuid":"uuid-luis"}},
 {"gender":"female","name":{"first":"Mei","last":"Chen"},"email":"mei@example.com","phone":"555-2","dob":{"age":29},"location":{"country":"Canada"},"picture":{"large":"https://img/2.jpg"}}
]}`

func newSourceServer(t *testing.T, status int, body string) (*httptest.Server, func() string) {
	t.Helper()
	var (
		mu        sync.Mutex
		lastQuery string
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		lastQuery = r.URL.RawQuery
		mu.Unlock()
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv, func() string {
		mu.Lock()
		defer mu.Unlock()
		return lastQuery
	}
}

func TestRandomUserRepositoryFetchAll(t *testing.T) {
	srv, query := newSourceServer(t, http.StatusOK, twoPeople)
	repo := NewRandomUserRepository(srv.Client(), config.SourceConfig{URL: srv.URL + "/api/", Results: 2, Seed: "abc", Timeout: time.Second}, zap.NewNop())

	records, err := repo.FetchAll(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Contains(t, query(), "results=2")
	assert.Contains(t, query(), "seed=abc")

	luis := records[0]
	assert.Equal(t, "uuid-luis", luis.ID)
	assert.Equal(t, "Luis", luis.Name.First)
	assert.Equal(t, "Ortega", luis.Name.Last)
	assert.Equal(t, "luis@example.com", luis.Email)
	assert.Equal(t, "555-1", luis.Phone)
	assert.Equal(t, 44, luis.Age)
	assert.Equal(t, "male", luis.Gender)
	assert.Equal(t, "Spain", luis.Country)
	assert.Equal(t, "https://img/1.jpg", luis.PictureURL)

	assert.NotEmpty(t, records[1].ID)
}

func TestRandomUserRepositoryDerivedIDsAreStable(t *testing.T) {
	srv, _ := newSourceServer(t, http.StatusOK, twoPeople)
	repo := NewRandomUserRepository(srv.Client(), config.SourceConfig{URL: srv.URL}, nil)

	first, err := repo.FetchAll(context.Background())
	require.NoError(t, err)
	second, err := repo.FetchAll(context.Background())
	require.NoError(t, err)

	assert.Equal(t, first[1].ID, second[1].ID)
	assert.NotEqual(t, first[0].ID, first[1].ID)
}

func TestRandomUserRepositoryFailures(t *testing.T) {
	tests := []struct {
		name      string
		status    int
		body      string
		malformed bool
	}{
		{name: "server error", status: http.StatusInternalServerError, body: `oops`},
		{name: "not json", status: http.StatusOK, body: `<html>`, malformed: true},
		{name: "missing results", status: http.StatusOK, body: `{"info":{}}`, malformed: true},
		{name: "null results", status: http.StatusOK, body: `{"results":null}`, malformed: true},
		{name: "api error", status: http.StatusOK, body: `{"error":"Uh oh, something has gone wrong."}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, _ := newSourceServer(t, tt.status, tt.body)
			repo := NewRandomUserRepository(srv.Client(), config.SourceConfig{URL: srv.URL}, zap.NewNop())

			records, err := repo.FetchAll(context.Background())
			require.Error(t, err)
			assert.Nil(t, records)
			assert.Equal(t, tt.malformed, errors.Is(err, ErrMalformedPayload))
		})
	}
}

func TestRandomUserRepositoryHonoursContext(t *testing.T) {
	srv, _ := newSourceServer(t, http.StatusOK, twoPeople)
	repo := NewRandomUserRepository(srv.Client(), config.SourceConfig{URL: srv.URL}, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := repo.FetchAll(ctx)
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestRandomUserRepositoryEmptyResults(t *testing.T) {
	srv, _ := newSourceServer(t, http.StatusOK, `{"results":[]}`)
	repo := NewRandomUserRepository(srv.Client(), config.SourceConfig{URL: srv.URL}, zap.NewNop())

	records, err := repo.FetchAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestFixtureRepositoryFetchAll(t *testing.T) {
	repo := NewFixtureRepository(filepath.Join("testdata", "randomuser.json"))

	records, err := repo.FetchAll(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, "Ingrid", records[0].Name.First)
	assert.Equal(t, "Norway", records[0].Country)
	assert.Equal(t, 37, records[0].Age)
	assert.Equal(t, "Émile", records[1].Name.First)
	assert.NotEmpty(t, records[1].ID)
	assert.Equal(t, "United Kingdom", records[2].Country)
}

func TestFixtureRepositoryMissingFile(t *testing.T) {
	repo := NewFixtureRepository(filepath.Join(t.TempDir(), "absent.json"))

	_, err := repo.FetchAll(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestDecodePayloadClampsNegativeAge(t *testing.T) {
	records, err := DecodePayload(strings.NewReader(`{"results":[{"dob":{"age":-4},"email":"x@example.com"}]}`))
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, 0, records[0].Age)
}

func TestNewRecordSourceSelectsFixture(t *testing.T) {
	assert.IsType(t, &FixtureRepository{}, NewRecordSource(config.SourceConfig{FixturePath: "testdata/randomuser.json"}, nil))
	assert.IsType(t, &RandomUserRepository{}, NewRecordSource(config.SourceConfig{URL: "https://randomuser.me/api/"}, zap.NewNop()))
}
