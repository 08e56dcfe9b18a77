package notion

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arlett/prodboard/internal/domain/project"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(Config{
		APIKey:     "secret-token",
		DatabaseID: "db-1",
		BaseURL:    srv.URL,
	}, slog.New(slog.DiscardHandler))
}

func pageJSON(id, name string) string {
	return fmt.Sprintf(`{
		"id": %q,
		"last_edited_time": "2025-06-10T08:00:00Z",
		"properties": {
			"Name": {"title": [{"plain_text": %q}]},
			"Types": {"multi_select": [{"name": "book"}, {"name": "cover"}]},
			"Designers": {"multi_select": [{"name": "ana"}]},
			"Editors": {"multi_select": [{"name": "ben"}]},
			"Notification Status": {"status": {"name": "sent"}},
			"State": {"select": {"name": "completed"}},
			"Work Period": {"date": {"start": "2025-06-01", "end": "2025-06-20"}},
			"Reference Date": {"date": {"start": "2025-07-01"}},
			"Notes": {"rich_text": [{"plain_text": "rush "}, {"plain_text": "order"}]}
		}
	}`, id, name)
}

func TestFetchProjectsPaginates(t *testing.T) {
	var cursors []string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/v1/databases/db-1/query", r.URL.Path)
		require.Equal(t, "Bearer secret-token", r.Header.Get("Authorization"))
		require.Equal(t, "2022-06-28", r.Header.Get("Notion-Version"))

		var req struct {
			PageSize    int    `json:"page_size"`
			StartCursor string `json:"start_cursor"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Equal(t, 100, req.PageSize)
		cursors = append(cursors, req.StartCursor)

		w.Header().Set("Content-Type", "application/json")
		if req.StartCursor == "" {
			fmt.Fprintf(w, `{"results": [%s], "has_more": true, "next_cursor": "c2"}`, pageJSON("p1", "Catalog"))
			return
		}
		fmt.Fprintf(w, `{"results": [%s], "has_more": false, "next_cursor": ""}`, pageJSON("p2", "Poster"))
	})

	projects, err := client.FetchProjects(context.Background())
	require.NoError(t, err)
	require.Len(t, projects, 2)
	require.Equal(t, []string{"", "c2"}, cursors)

	p := projects[0]
	require.Equal(t, "p1", p.ID)
	require.Equal(t, "Catalog", p.Name)
	require.Equal(t, []string{"book", "cover"}, p.Types)
	require.Equal(t, []string{"ana"}, p.Designers)
	require.Equal(t, []string{"ben"}, p.Editors)
	require.Equal(t, "sent", p.NotificationStatus)
	require.Equal(t, project.StateCompleted, p.State)
	require.Equal(t, "2025-07-01", p.ReferenceDate)
	require.NotNil(t, p.WorkPeriod)
	require.Equal(t, "2025-06-01", p.WorkPeriod.Start)
	require.Equal(t, "2025-06-20", p.WorkPeriod.End)
	require.Equal(t, "rush order", p.Notes)
	require.Equal(t, "2025-06-10T08:00:00Z", p.LastUpdatedAt.Format("2006-01-02T15:04:05Z07:00"))
}

func TestFetchProjectsSparseRow(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"results": [{"id": "p1", "properties": {}}], "has_more": false}`)
	})

	projects, err := client.FetchProjects(context.Background())
	require.NoError(t, err)
	require.Len(t, projects, 1)

	p := projects[0]
	require.Equal(t, "unknown", p.NotificationStatus)
	require.Equal(t, project.StateInProgress, p.State)
	require.Empty(t, p.ReferenceDate)
	require.Nil(t, p.WorkPeriod)
}

func TestFetchProjectsServerError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	})

	_, err := client.FetchProjects(context.Background())
	require.Error(t, err)
	require.Contains(t, err.Error(), "429")
}

func TestMarkClosed(t *testing.T) {
	var gotPath string
	var gotBody map[string]any
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPatch, r.Method)
		gotPath = r.URL.Path

		raw, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		require.NoError(t, json.Unmarshal(raw, &gotBody))

		fmt.Fprint(w, `{}`)
	})

	require.NoError(t, client.MarkClosed(context.Background(), "p1"))
	require.Equal(t, "/v1/pages/p1", gotPath)

	props := gotBody["properties"].(map[string]any)
	state := props["State"].(map[string]any)
	sel := state["select"].(map[string]any)
	require.Equal(t, "closed", sel["name"])
}

func TestMarkClosedServerError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	err := client.MarkClosed(context.Background(), "p1")
	require.Error(t, err)
	require.Contains(t, err.Error(), "404")
}
