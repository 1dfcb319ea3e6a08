package catalog

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/SAP-F-2025/certification-service/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestClient(t *testing.T, handler http.HandlerFunc) *HTTPClient {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return NewHTTPClient(Options{
		BaseURL: server.URL + "/",
		APIKey:  "secret",
		Logger:  discardLogger(),
	})
}

func TestHTTPClient_ListChallenges_Paginates(t *testing.T) {
	var offsets []string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/challenges", r.URL.Path)
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		offsets = append(offsets, r.URL.Query().Get("offset"))

		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Query().Get("offset") {
		case "":
			_, _ = io.WriteString(w, `{
				"records": [
					{"id": "recA", "fields": {"competences": ["recComp1"], "type": "QCM", "skills": ["@web3", "@web2"]}}
				],
				"offset": "page2"
			}`)
		case "page2":
			_, _ = io.WriteString(w, `{
				"records": [
					{"id": "recB", "fields": {"competences": ["recComp2"], "type": "QROCM-dep"}}
				]
			}`)
		default:
			t.Errorf("unexpected offset %q", r.URL.Query().Get("offset"))
		}
	})

	challenges, err := client.ListChallenges(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"", "page2"}, offsets)
	require.Len(t, challenges, 2)
	assert.Equal(t, models.Challenge{
		ID:           "recA",
		CompetenceID: "recComp1",
		Type:         models.ChallengeQCM,
		TestedSkill:  "@web3",
		Skills:       []string{"@web3", "@web2"},
	}, challenges[0])
	assert.Equal(t, "recB", challenges[1].ID)
	assert.Equal(t, models.ChallengeQROCMDep, challenges[1].Type)
	assert.Empty(t, challenges[1].TestedSkill)
}

func TestHTTPClient_ListCompetences(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/competences", r.URL.Path)
		_, _ = io.WriteString(w, `{"records": [
			{"id": "recComp1", "fields": {"index": "1.1", "name": "Mener une recherche", "courses": ["recCourse1"]}},
			{"id": "recComp2", "fields": {"index": "1.2", "name": "Gérer des données"}}
		]}`)
	})

	competences, err := client.ListCompetences(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []models.Competence{
		{ID: "recComp1", Index: "1.1", Name: "Mener une recherche", CourseID: "recCourse1"},
		{ID: "recComp2", Index: "1.2", Name: "Gérer des données"},
	}, competences)
}

func TestHTTPClient_Errors(t *testing.T) {
	t.Run("non 200 status", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		})

		_, err := client.ListCompetences(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "returned status 503")
	})

	t.Run("invalid json", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = io.WriteString(w, `{"records": [`)
		})

		_, err := client.ListChallenges(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid JSON")
	})

	t.Run("endless pagination", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = io.WriteString(w, `{"records": [], "offset": "again"}`)
		})

		_, err := client.ListChallenges(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "more than 100 pages")
	})
}

func TestHTTPClient_NoAPIKey(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		_, _ = io.WriteString(w, `{"records": []}`)
	}))
	defer server.Close()

	client := NewHTTPClient(Options{BaseURL: server.URL})
	competences, err := client.ListCompetences(context.Background())
	require.NoError(t, err)
	assert.Empty(t, competences)
}
