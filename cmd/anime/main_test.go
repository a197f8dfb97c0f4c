package main

import (
	"bytes"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/goccy/go-json"
)

type seenRequest struct {
	method string
	uri    string
	body   map[string]any
}

func newTestServer(t *testing.T, status int) (*httptest.Server, *[]seenRequest) {
	t.Helper()
	var seen []seenRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		req := seenRequest{method: r.Method, uri: r.URL.RequestURI()}
		b, _ := io.ReadAll(r.Body)
		if len(b) > 0 {
			_ = json.Unmarshal(b, &req.body)
		}
		seen = append(seen, req)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(`{"count":0,"list":[]}`))
	}))
	t.Cleanup(srv.Close)
	return srv, &seen
}

func run(t *testing.T, server string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd(&out)
	cmd.SetArgs(append([]string{"--server", server}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func TestCLI_ListSendsPaging(t *testing.T) {
	srv, seen := newTestServer(t, http.StatusOK)

	out, err := run(t, srv.URL, "list", "--offset", "5", "--limit", "2")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(*seen) != 1 {
		t.Fatalf("requests: want 1, got %d", len(*seen))
	}
	got := (*seen)[0]
	if got.method != http.MethodGet || got.uri != "/api/v1/anime/list?limit=2&offset=5" {
		t.Fatalf("request: got %s %s", got.method, got.uri)
	}
	if !strings.Contains(out, `"count": 0`) {
		t.Fatalf("output should be pretty printed, got %q", out)
	}
}

func TestCLI_GenreBody(t *testing.T) {
	srv, seen := newTestServer(t, http.StatusOK)

	if _, err := run(t, srv.URL, "genre", "action", "comedy", "--status", "ongoing"); err != nil {
		t.Fatalf("genre: %v", err)
	}
	got := (*seen)[0]
	if got.method != http.MethodPost || got.uri != "/api/v1/anime/genre" {
		t.Fatalf("request: got %s %s", got.method, got.uri)
	}
	genres, _ := got.body["genre"].([]any)
	if len(genres) != 2 || genres[0] != "action" || genres[1] != "comedy" {
		t.Fatalf("genre: got %v", got.body["genre"])
	}
	if got.body["status"] != "ONGOING" {
		t.Fatalf("status: want ONGOING, got %v", got.body["status"])
	}
}

func TestCLI_SearchJoinsWords(t *testing.T) {
	srv, seen := newTestServer(t, http.StatusOK)

	if _, err := run(t, srv.URL, "search", "one", "piece"); err != nil {
		t.Fatalf("search: %v", err)
	}
	if name := (*seen)[0].body["name"]; name != "one piece" {
		t.Fatalf("name: want %q, got %v", "one piece", name)
	}
}

func TestCLI_ErrorStatusIsRequestError(t *testing.T) {
	srv, _ := newTestServer(t, http.StatusNotFound)

	_, err := run(t, srv.URL, "detail", "199025")
	var reqErr *requestError
	if !errors.As(err, &reqErr) {
		t.Fatalf("expected requestError, got %v", err)
	}
	if reqErr.status != http.StatusNotFound {
		t.Fatalf("status: want %d, got %d", http.StatusNotFound, reqErr.status)
	}
}

func TestCLI_InvalidYearIsUsageError(t *testing.T) {
	srv, seen := newTestServer(t, http.StatusOK)

	_, err := run(t, srv.URL, "year", "two-thousand")
	if err == nil {
		t.Fatalf("expected error")
	}
	var reqErr *requestError
	if errors.As(err, &reqErr) {
		t.Fatalf("expected usage error, got requestError")
	}
	if len(*seen) != 0 {
		t.Fatalf("no request should be sent")
	}
}

func TestCLI_VersionFlag(t *testing.T) {
	out, err := run(t, "http://127.0.0.1:0", "--version")
	if err != nil {
		t.Fatalf("--version: %v", err)
	}
	if !strings.Contains(out, "dev") {
		t.Fatalf("output should carry the build version, got %q", out)
	}
}
