package notes

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func newTestServer(t *testing.T) (*Client, *Store) {
	t.Helper()
	store := openTestStore(t)
	srv, err := NewServer("127.0.0.1:0", store, nil)
	if err != nil {
		t.Fatal(err)
	}
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return NewClient(ts.URL+"/", 2*time.Second), store
}

func TestClientServerRoundTrip(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestServer(t)

	if err := c.Add(ctx, "first"); err != nil {
		t.Fatal(err)
	}
	if err := c.Add(ctx, "second"); err != nil {
		t.Fatal(err)
	}
	list, err := c.List(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 2 {
		t.Fatalf("List = %+v, want 2 notes", list)
	}

	if err := c.Edit(ctx, list[0].ID, "renamed"); err != nil {
		t.Fatal(err)
	}
	if err := c.Delete(ctx, list[1].ID); err != nil {
		t.Fatal(err)
	}
	list, err = c.List(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 1 || list[0].Title != "renamed" {
		t.Errorf("List = %+v", list)
	}
}

func TestClientStatusError(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestServer(t)

	err := c.Delete(ctx, 42)
	if !IsStatus(err) {
		t.Fatalf("err = %v, want a StatusError", err)
	}
	se := err.(*StatusError)
	if se.Op != "delete" || se.Code != CodeNotFound {
		t.Errorf("StatusError = %+v", se)
	}
	if err := c.Add(ctx, ""); !IsStatus(err) {
		t.Errorf("blank add err = %v, want a StatusError", err)
	}
}

func TestClientNonZeroCodeFromRemote(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"code": 7, "data": [{"id": 1, "title": "stale"}]}`))
	}))
	defer ts.Close()

	list, err := NewClient(ts.URL, time.Second).List(context.Background())
	if !IsStatus(err) {
		t.Fatalf("err = %v, want a StatusError", err)
	}
	if list != nil {
		t.Errorf("List returned data %+v on failure", list)
	}
}

func TestClientBadBody(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gateway down", http.StatusBadGateway)
	}))
	defer ts.Close()

	err := NewClient(ts.URL, time.Second).Add(context.Background(), "x")
	if err == nil || IsStatus(err) {
		t.Fatalf("err = %v, want a decode error", err)
	}
	if !strings.Contains(err.Error(), "502") {
		t.Errorf("err = %v, want the HTTP status mentioned", err)
	}
}

func TestServerRejectsBadRequest(t *testing.T) {
	store := openTestStore(t)
	srv, err := NewServer(":0", store, nil)
	if err != nil {
		t.Fatal(err)
	}
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/note/add", strings.NewReader("{"))
	srv.Handler().ServeHTTP(rec, req)
	if !strings.Contains(rec.Body.String(), `"code":1`) {
		t.Errorf("body = %s, want code 1", rec.Body.String())
	}

	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/note/add", nil)
	srv.Handler().ServeHTTP(rec, req)
	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("GET /note/add status = %d, want 405", rec.Code)
	}
}

func TestNewServerValidates(t *testing.T) {
	if _, err := NewServer(" ", openTestStore(t), nil); err == nil {
		t.Error("empty addr accepted")
	}
	if _, err := NewServer(":8080", nil, nil); err == nil {
		t.Error("nil store accepted")
	}
}

func TestListenAndServeStopsOnCancel(t *testing.T) {
	srv, err := NewServer("127.0.0.1:0", openTestStore(t), nil)
	if err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.ListenAndServe(ctx) }()
	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("ListenAndServe = %v, want nil after cancel", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}
