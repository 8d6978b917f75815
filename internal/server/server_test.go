package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/bramtechsolutions/campaign-rag/pkg/answer"
	"github.com/bramtechsolutions/campaign-rag/pkg/corpus"
	"github.com/bramtechsolutions/campaign-rag/pkg/ingest"
	"github.com/bramtechsolutions/campaign-rag/pkg/search"
)

const sampleExport = `{
	"messages": [
		{
			"id": "10",
			"author": {"name": "Mira Stone"},
			"content": "Mira has green eyes and plays the lute.",
			"timestamp": "2024-05-01T18:00:00",
			"type": "character_definition"
		},
		{
			"id": "11",
			"author": {"name": "GM"},
			"content": "The Sunken Tower\nAn old ruin beneath the lake.",
			"timestamp": "2024-05-02T19:00:00",
			"channel": {"name": "lore"}
		}
	]
}`

func newTestServer(t *testing.T) http.Handler {
	t.Helper()
	store := corpus.NewStore()
	pipeline := ingest.New(store, nil)
	if _, err := pipeline.Run([]byte(sampleExport)); err != nil {
		t.Fatalf("seed ingest failed: %v", err)
	}
	return New(pipeline, search.NewEngine(store), answer.NewEngine(store)).Handler()
}

func TestRoot(t *testing.T) {
	h := newTestServer(t)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest("GET", "/", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest("GET", "/nope", nil))
	if rec.Code != http.StatusNotFound {
		t.Errorf("unknown path status = %d, want 404", rec.Code)
	}
}

func TestAsk(t *testing.T) {
	h := newTestServer(t)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest("GET", "/ask?q=green+eyes", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}

	var ans answer.Answer
	if err := json.Unmarshal(rec.Body.Bytes(), &ans); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if ans.Answer != "green" {
		t.Errorf("answer = %q, want green", ans.Answer)
	}
}

func TestAskMissingParam(t *testing.T) {
	h := newTestServer(t)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest("GET", "/ask", nil))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "required") {
		t.Errorf("body = %s", rec.Body.String())
	}
}

func TestQuery(t *testing.T) {
	h := newTestServer(t)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest("GET", "/query?q=sunken+tower", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	var resp queryResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	// The lore message matches twice: as its session entry and as the
	// world document. Sessions come first in partition order.
	if resp.Count != 2 || len(resp.Results) != 2 {
		t.Fatalf("count = %d, results = %d", resp.Count, len(resp.Results))
	}
	if resp.Results[0].Type != corpus.KindSession || resp.Results[1].Type != corpus.KindWorld {
		t.Errorf("result types = %q, %q", resp.Results[0].Type, resp.Results[1].Type)
	}
}

func TestQueryPhraseParam(t *testing.T) {
	h := newTestServer(t)

	// Reversed token order matches in token mode, not in phrase mode.
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest("GET", "/query?q=eyes+green&phrase=true", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var resp queryResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Count != 0 {
		t.Errorf("phrase mode count = %d, want 0", resp.Count)
	}
}

func TestIngest(t *testing.T) {
	store := corpus.NewStore()
	pipeline := ingest.New(store, nil)
	h := New(pipeline, search.NewEngine(store), answer.NewEngine(store)).Handler()

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest("POST", "/ingest", strings.NewReader(sampleExport)))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}

	var counts corpus.Counts
	if err := json.Unmarshal(rec.Body.Bytes(), &counts); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if counts.Characters != 1 || counts.Sessions != 2 || counts.World != 1 {
		t.Errorf("counts = %+v", counts)
	}

	// The ingested corpus is immediately queryable.
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest("GET", "/ask?q=green+eyes", nil))
	if rec.Code != http.StatusOK {
		t.Errorf("ask after ingest status = %d", rec.Code)
	}
}

func TestIngestMalformed(t *testing.T) {
	h := newTestServer(t)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest("POST", "/ingest", strings.NewReader(`[not an export]`)))
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}
