package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/gridpress/pkg/errors"
	"github.com/matzehuels/gridpress/pkg/observability"
	"github.com/matzehuels/gridpress/pkg/render"
)

const tinyPuzzle = `{
	"title": "Tiny",
	"puzzle": [[1, 2], [3, "#"]],
	"clues": {"Across": [[1, "Feline"], [3, "Article"]], "Down": [[1, "Automobile"], [2, "Toward"]]}
}`

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	s := New(nil, render.DefaultOptions(), log.New(io.Discard))
	ts := httptest.NewServer(s)
	t.Cleanup(ts.Close)
	return ts
}

func decodeError(t *testing.T, resp *http.Response) errorBody {
	t.Helper()
	var body errorBody
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	return body
}

func TestHealth(t *testing.T) {
	ts := newTestServer(t)
	resp, err := http.Get(ts.URL + "/healthz")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d", resp.StatusCode)
	}
	if resp.Header.Get(RequestIDHeader) == "" {
		t.Error("missing request id header")
	}
	var body map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if body["status"] != "ok" {
		t.Errorf("body = %v", body)
	}
}

func TestRender(t *testing.T) {
	ts := newTestServer(t)

	tests := []struct {
		name        string
		query       string
		contentType string
		prefix      string
	}{
		{"default pdf", "", "application/pdf", "%PDF-"},
		{"explicit pdf with options", "?fontSize=14&layoutStyle=grid-first&clueColumns=auto&includeSolution=true", "application/pdf", "%PDF-"},
		{"json layout", "?format=json", "application/json", "{"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := http.Post(ts.URL+"/v1/render"+tt.query, "application/json", strings.NewReader(tinyPuzzle))
			if err != nil {
				t.Fatal(err)
			}
			defer resp.Body.Close()

			if resp.StatusCode != http.StatusOK {
				t.Fatalf("status = %d", resp.StatusCode)
			}
			if got := resp.Header.Get("Content-Type"); got != tt.contentType {
				t.Errorf("Content-Type = %q", got)
			}
			body, _ := io.ReadAll(resp.Body)
			if !bytes.HasPrefix(bytes.TrimSpace(body), []byte(tt.prefix)) {
				t.Errorf("body starts with %q", body[:min(len(body), 16)])
			}
		})
	}
}

func TestRenderWarnings(t *testing.T) {
	ts := newTestServer(t)
	resp, err := http.Post(ts.URL+"/v1/render?fontFamily=papyrus", "application/json", strings.NewReader(tinyPuzzle))
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if w := resp.Header.Get("X-Gridpress-Warning"); !strings.Contains(w, "papyrus") {
		t.Errorf("warning header = %q", w)
	}
}

func TestRenderErrors(t *testing.T) {
	ts := newTestServer(t)

	tests := []struct {
		name   string
		query  string
		body   string
		status int
		code   errors.Code
	}{
		{"missing grid", "", `{"title": "x"}`, http.StatusUnprocessableEntity, errors.ErrCodeMalformedPuzzle},
		{"not json", "", `<ipuz/>`, http.StatusUnprocessableEntity, errors.ErrCodeMalformedPuzzle},
		{"bad format", "?format=svg", tinyPuzzle, http.StatusBadRequest, errors.ErrCodeInvalidFormat},
		{"bad number", "?fontSize=big", tinyPuzzle, http.StatusBadRequest, errors.ErrCodeInvalidInput},
		{"nan font size", "?fontSize=NaN", tinyPuzzle, http.StatusBadRequest, errors.ErrCodeInvalidInput},
		{"infinite margin", "?margin=Inf", tinyPuzzle, http.StatusBadRequest, errors.ErrCodeInvalidInput},
		{"negative infinite spacing", "?lineSpacing=-Inf", tinyPuzzle, http.StatusBadRequest, errors.ErrCodeInvalidInput},
		{"bad columns", "?clueColumns=0", tinyPuzzle, http.StatusBadRequest, errors.ErrCodeInvalidInput},
		{"unknown param", "?colour=red", tinyPuzzle, http.StatusBadRequest, errors.ErrCodeInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := http.Post(ts.URL+"/v1/render"+tt.query, "application/json", strings.NewReader(tt.body))
			if err != nil {
				t.Fatal(err)
			}
			defer resp.Body.Close()

			if resp.StatusCode != tt.status {
				t.Errorf("status = %d, want %d", resp.StatusCode, tt.status)
			}
			if body := decodeError(t, resp); body.Code != tt.code {
				t.Errorf("code = %s, want %s (%s)", body.Code, tt.code, body.Message)
			}
		})
	}
}

func TestRenderBodyLimit(t *testing.T) {
	ts := newTestServer(t)
	big := bytes.Repeat([]byte(" "), MaxBodySize+1)
	resp, err := http.Post(ts.URL+"/v1/render", "application/json", bytes.NewReader(big))
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusRequestEntityTooLarge {
		t.Errorf("status = %d", resp.StatusCode)
	}
}

func TestMethodNotAllowed(t *testing.T) {
	ts := newTestServer(t)
	resp, err := http.Get(ts.URL + "/v1/render")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusMethodNotAllowed {
		t.Errorf("status = %d", resp.StatusCode)
	}
}

func TestRequestIDPropagated(t *testing.T) {
	ts := newTestServer(t)
	req, _ := http.NewRequest(http.MethodGet, ts.URL+"/healthz", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if got := resp.Header.Get(RequestIDHeader); got != "abc-123" {
		t.Errorf("request id = %q", got)
	}
}

type statusHooks struct {
	observability.NoopServerHooks
	mu       sync.Mutex
	statuses []int
}

func (h *statusHooks) OnResponse(_ context.Context, _, _ string, status int, _ time.Duration) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.statuses = append(h.statuses, status)
}

func TestServerHooks(t *testing.T) {
	h := &statusHooks{}
	observability.SetServerHooks(h)
	t.Cleanup(observability.Reset)

	ts := newTestServer(t)
	resp, err := http.Post(ts.URL+"/v1/render", "application/json", strings.NewReader(`{}`))
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()

	h.mu.Lock()
	defer h.mu.Unlock()
	if len(h.statuses) != 1 || h.statuses[0] != http.StatusUnprocessableEntity {
		t.Errorf("statuses = %v", h.statuses)
	}
}

func TestParseQuery(t *testing.T) {
	base := render.DefaultOptions()
	q := url.Values{
		"fontSize":         {"12"},
		"paperSize":        {"legal"},
		"clueColumns":      {"3"},
		"includeCopyright": {"true"},
		"titleClueSpacing": {"extra-large"},
		"format":           {"json"},
	}
	opts, format, err := parseQuery(q, base)
	if err != nil {
		t.Fatal(err)
	}
	if format != render.FormatJSON {
		t.Errorf("format = %q", format)
	}
	if opts.FontSize != 12 || opts.PaperSize != "legal" || opts.Columns != 3 || !opts.IncludeCopyright || opts.TitleClueGap != "extra-large" {
		t.Errorf("opts = %+v", opts)
	}
	if opts.Margin != base.Margin {
		t.Error("unset parameter changed its option")
	}
}
