package a2a

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	contractx "github.com/hilalTortumluoglu/ecommerce-a2a-agents/agent/contract"
	"github.com/hilalTortumluoglu/ecommerce-a2a-agents/agent/task"
)

// fakeSpecialistServer mimics a remote specialist: task creation returns the
// submitted snapshot and every subsequent poll reveals one more history event
// until the task completes.
func fakeSpecialistServer(t *testing.T, gotReq *contractx.TaskRequest) *httptest.Server {
	t.Helper()

	base := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	history := []task.StatusEvent{
		{State: task.StateSubmitted, Detail: "task accepted", OccurredAt: base},
		{State: task.StateWorking, Detail: "work started", OccurredAt: base.Add(time.Millisecond)},
		{State: task.StateCompleted, Detail: "task completed", OccurredAt: base.Add(2 * time.Millisecond)},
	}
	snapshotAt := func(n int) task.Snapshot {
		if n > len(history) {
			n = len(history)
		}
		snap := task.Snapshot{
			ID:           "task-remote-1",
			SpecialistID: "product-agent",
			State:        history[n-1].State,
			History:      history[:n],
		}
		if snap.State == task.StateCompleted {
			snap.Result = "Sony WH-1000XM5 önerebilirim."
		}
		return snap
	}

	var polls atomic.Int32
	mux := http.NewServeMux()
	mux.HandleFunc("/api/tasks", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		defer r.Body.Close()
		if err := json.NewDecoder(r.Body).Decode(gotReq); err != nil {
			t.Errorf("decode task request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(snapshotAt(1))
	})
	mux.HandleFunc("/api/tasks/task-remote-1", func(w http.ResponseWriter, r *http.Request) {
		n := int(polls.Add(1)) + 1
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(snapshotAt(n))
	})
	mux.HandleFunc("/.well-known/agent.json", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(AgentCard{
			Name:        "Product Agent",
			Description: "Ürün uzmanı",
			URL:         "http://localhost:10001",
			Version:     "1.0.0",
			Skills:      []CardSkill{{ID: "product_search", Name: "Ürün Arama"}},
		})
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func newTestClient(t *testing.T, server *httptest.Server) *Client {
	t.Helper()

	client, err := NewClient(
		ClientConfig{Timeout: 2 * time.Second, PollInterval: 5 * time.Millisecond},
		WithClientHTTP(server.Client()),
	)
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}
	return client
}

func TestClientSendTaskAndSubscribe(t *testing.T) {
	t.Parallel()

	var gotReq contractx.TaskRequest
	server := fakeSpecialistServer(t, &gotReq)
	client := newTestClient(t, server)

	ctx := context.Background()
	handle, err := client.SendTask(ctx, server.URL, contractx.TaskRequest{
		SessionID: "s-9",
		Text:      "Kulaklık öner",
		Context:   "User: Merhaba",
	})
	if err != nil {
		t.Fatalf("SendTask() error = %v", err)
	}
	if handle.TaskID != "task-remote-1" {
		t.Fatalf("handle.TaskID = %q", handle.TaskID)
	}
	if gotReq.SessionID != "s-9" || gotReq.Text != "Kulaklık öner" || gotReq.Context != "User: Merhaba" {
		t.Fatalf("server saw request %+v", gotReq)
	}

	ch, err := client.Subscribe(ctx, handle)
	if err != nil {
		t.Fatalf("Subscribe() error = %v", err)
	}
	events := drainEvents(t, ch)
	if len(events) != 3 {
		t.Fatalf("got %d events, want 3", len(events))
	}
	if events[0].State != task.StateSubmitted || events[2].State != task.StateCompleted {
		t.Fatalf("event states = %v, %v, %v", events[0].State, events[1].State, events[2].State)
	}

	snap, err := client.Task(ctx, handle)
	if err != nil {
		t.Fatalf("Task() error = %v", err)
	}
	if snap.Result == "" || snap.State != task.StateCompleted {
		t.Fatalf("final snapshot = %+v", snap)
	}
}

func TestClientFetchCard(t *testing.T) {
	t.Parallel()

	var gotReq contractx.TaskRequest
	server := fakeSpecialistServer(t, &gotReq)
	client := newTestClient(t, server)

	card, err := client.FetchCard(context.Background(), server.URL+"/")
	if err != nil {
		t.Fatalf("FetchCard() error = %v", err)
	}
	if card.Name != "Product Agent" || len(card.Skills) != 1 {
		t.Fatalf("FetchCard() = %+v", card)
	}
}

func TestClientSurfacesHTTPErrors(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "task not found", http.StatusNotFound)
	}))
	t.Cleanup(server.Close)
	client := newTestClient(t, server)

	_, err := client.Task(context.Background(), contractx.TaskHandle{TaskID: "task-x", Endpoint: server.URL})
	if err == nil || !strings.Contains(err.Error(), "status=404") {
		t.Fatalf("Task() error = %v, want http status error", err)
	}
}

func TestClientValidatesEndpoint(t *testing.T) {
	t.Parallel()

	client, err := NewClient(ClientConfig{})
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}

	cases := []string{"", "   ", "not-a-url", "ftp://agents.local"}
	for _, endpoint := range cases {
		if _, err := client.SendTask(context.Background(), endpoint, contractx.TaskRequest{Text: "x"}); err == nil {
			t.Fatalf("SendTask(%q) expected error", endpoint)
		}
	}
}
