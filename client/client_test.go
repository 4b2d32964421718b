package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/fundicaobk/equipcheck/config"
	"github.com/fundicaobk/equipcheck/models"
)

func loaderFor(url string) config.Loader {
	return config.StaticLoader(&config.Settings{UseLocalDB: true, LocalDBURL: url})
}

func TestGetListCacheBusting(t *testing.T) {
	var mu sync.Mutex
	var tokens []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/equipments", r.URL.Path)
		require.NotEmpty(t, r.URL.Query().Get("t"))
		require.Contains(t, r.Header.Get("Cache-Control"), "no-cache")
		require.Equal(t, "no-cache", r.Header.Get("Pragma"))
		mu.Lock()
		tokens = append(tokens, r.URL.Query().Get("r"))
		mu.Unlock()
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[]`))
	}))
	defer server.Close()

	c := New(loaderFor(server.URL), nil)
	for i := 0; i < 2; i++ {
		_, err := c.ListEquipments(context.Background())
		require.NoError(t, err)
	}

	// Both calls reached the server with distinct random tokens, so no layer
	// in between could have answered from cache.
	require.Len(t, tokens, 2)
	require.NotEqual(t, tokens[0], tokens[1])
}

func TestGetListDecodesArray(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"id":"1325","name":"ADEMIR","role":"Operador","sector":"Fundição"}]`))
	}))
	defer server.Close()

	c := New(loaderFor(server.URL), nil)
	operators, err := c.ListOperators(context.Background())
	require.NoError(t, err)
	require.Len(t, operators, 1)
	require.Equal(t, "ADEMIR", operators[0].Name)
}

func TestGetListRejectsNonArrayPayload(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"object body", `{"error":"boom"}`},
		{"html error page", `<!DOCTYPE html><html></html>`},
		{"empty body", ``},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(tc.body))
			}))
			defer server.Close()

			c := New(loaderFor(server.URL), nil)
			_, err := c.ListSectors(context.Background())
			var remoteErr *RemoteError
			require.ErrorAs(t, err, &remoteErr)
			require.Equal(t, KindBadShape, remoteErr.Kind)
		})
	}
}

func TestErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "internal", http.StatusInternalServerError)
	}))
	defer server.Close()

	c := New(loaderFor(server.URL), nil)
	_, err := c.ListEquipments(context.Background())
	var remoteErr *RemoteError
	require.ErrorAs(t, err, &remoteErr)
	require.Equal(t, KindStatus, remoteErr.Kind)
	require.Equal(t, http.StatusInternalServerError, remoteErr.Status)
}

func TestRefusedConnectionClassification(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close() // nothing listens on the port anymore

	c := New(loaderFor(url), nil)
	_, err := c.ListEquipments(context.Background())
	var remoteErr *RemoteError
	require.ErrorAs(t, err, &remoteErr)
	require.Equal(t, KindRefused, remoteErr.Kind)
}

func TestTimeoutClassification(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.Write([]byte(`[]`))
	}))
	defer server.Close()

	c := New(loaderFor(server.URL), nil, WithTimeout(20*time.Millisecond))
	_, err := c.ListEquipments(context.Background())
	var remoteErr *RemoteError
	require.ErrorAs(t, err, &remoteErr)
	require.Equal(t, KindTimeout, remoteErr.Kind)
}

func TestCreateSubmissionReturnsServerRecord(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/checklists", r.URL.Path)
		var c models.Checklist
		require.NoError(t, json.NewDecoder(r.Body).Decode(&c))
		c.ID = 42
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(c)
	}))
	defer server.Close()

	answer := models.AnswerYes
	checklist := &models.Checklist{
		EquipmentNumber: "PR-01",
		OperatorName:    "ADEMIR",
		Items:           []models.ChecklistItem{{ID: 1, Question: "Freios", Answer: &answer}},
	}

	c := New(loaderFor(server.URL), nil)
	created, err := c.CreateSubmission(context.Background(), checklist)
	require.NoError(t, err)
	require.EqualValues(t, 42, created.ID)
	require.Equal(t, "PR-01", created.EquipmentNumber)
}

func TestPushUnsyncedHistory(t *testing.T) {
	var calls int
	var got map[string][]models.ChecklistHistory
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		require.Equal(t, "/api/checklists/sync", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Write([]byte(`{"synced":true}`))
	}))
	defer server.Close()

	c := New(loaderFor(server.URL), nil)

	// Empty buffer never touches the network.
	require.NoError(t, c.PushUnsyncedHistory(context.Background(), nil))
	require.Zero(t, calls)

	records := []models.ChecklistHistory{{ID: "a", EquipmentID: "PR-01"}}
	require.NoError(t, c.PushUnsyncedHistory(context.Background(), records))
	require.Equal(t, 1, calls)
	require.Equal(t, records, got["checklists"])
}

func TestHealthCheck(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/health", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"server":"equipcheck-local"}`))
	}))
	defer server.Close()

	c := New(loaderFor(server.URL), nil)
	status, err := c.HealthCheck(context.Background())
	require.NoError(t, err)
	require.Equal(t, "equipcheck-local", status.Server)
}

func TestEndpointFollowsSettingsPerCall(t *testing.T) {
	first := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"id":"A","name":"from-first"}]`))
	}))
	defer first.Close()
	second := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"id":"B","name":"from-second"}]`))
	}))
	defer second.Close()

	settings := &config.Settings{UseLocalDB: true, LocalDBURL: first.URL}
	c := New(config.StaticLoader(settings), nil)

	equipments, err := c.ListEquipments(context.Background())
	require.NoError(t, err)
	require.Equal(t, "from-first", equipments[0].Name)

	settings.LocalDBURL = second.URL
	equipments, err = c.ListEquipments(context.Background())
	require.NoError(t, err)
	require.Equal(t, "from-second", equipments[0].Name)
}
