package handle

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"snap-solver/api/internal/blob"
	"snap-solver/api/internal/scan"
)

type fakeEngine struct {
	text string
	err  error
}

func (f *fakeEngine) Name() string     { return "fake" }
func (f *fakeEngine) GetModel() string { return "fake-1" }
func (f *fakeEngine) Solve(ctx context.Context, image []byte) (string, error) {
	return f.text, f.err
}

func newTestAPI(eng *fakeEngine) (*http.ServeMux, *scan.Orchestrator, *scan.Store) {
	store := scan.NewStore(blob.NewMemoryStore())
	orch := scan.NewOrchestrator(store)
	mux := http.NewServeMux()
	New(orch, store, eng).Register(mux)
	return mux, orch, store
}

func postScan(t *testing.T, mux *http.ServeMux, img []byte) scanView {
	t.Helper()
	body, _ := json.Marshal(scanRequest{ImageB64: base64.StdEncoding.EncodeToString(img)})
	req := httptest.NewRequest(http.MethodPost, "/v1/scans", bytes.NewReader(body))
	rw := httptest.NewRecorder()
	mux.ServeHTTP(rw, req)
	if rw.Code != http.StatusAccepted {
		t.Fatalf("POST /v1/scans: status %d: %s", rw.Code, rw.Body.String())
	}
	var v scanView
	if err := json.Unmarshal(rw.Body.Bytes(), &v); err != nil {
		t.Fatal(err)
	}
	return v
}

func TestPostScanReturnsPendingRecord(t *testing.T) {
	mux, orch, store := newTestAPI(&fakeEngine{text: "**Final Answer:** 42"})

	v := postScan(t, mux, []byte{0xFF, 0xD8, 0x01})
	if v.Status != scan.StatusPending || v.Title != scan.PendingTitle {
		t.Fatalf("expected pending view, got %+v", v)
	}

	orch.Wait()
	rec, ok := store.Get(v.ID)
	if !ok || rec.Status != scan.StatusSolved {
		t.Fatalf("record did not settle: %+v", rec)
	}
}

func TestGetScanAfterSettle(t *testing.T) {
	mux, orch, _ := newTestAPI(&fakeEngine{text: "**Final Answer:** 42\nsteps"})

	v := postScan(t, mux, []byte{1, 2})
	orch.Wait()

	req := httptest.NewRequest(http.MethodGet, "/v1/scans/"+v.ID, nil)
	rw := httptest.NewRecorder()
	mux.ServeHTTP(rw, req)
	if rw.Code != http.StatusOK {
		t.Fatalf("GET: status %d", rw.Code)
	}
	var got scanView
	if err := json.Unmarshal(rw.Body.Bytes(), &got); err != nil {
		t.Fatal(err)
	}
	if got.Status != scan.StatusSolved || got.Title != "Final Answer: 42..." {
		t.Fatalf("got %+v", got)
	}
}

func TestFailedScanKeepsMessage(t *testing.T) {
	mux, orch, _ := newTestAPI(&fakeEngine{err: errors.New("timeout")})

	v := postScan(t, mux, []byte{1})
	orch.Wait()

	req := httptest.NewRequest(http.MethodGet, "/v1/scans/"+v.ID, nil)
	rw := httptest.NewRecorder()
	mux.ServeHTTP(rw, req)
	var got scanView
	if err := json.Unmarshal(rw.Body.Bytes(), &got); err != nil {
		t.Fatal(err)
	}
	if got.Status != scan.StatusFailed || got.ErrorMessage != "timeout" || got.SolutionText != "" {
		t.Fatalf("got %+v", got)
	}
}

func TestListScansNewestFirst(t *testing.T) {
	mux, orch, _ := newTestAPI(&fakeEngine{text: "answer"})

	first := postScan(t, mux, []byte{1})
	second := postScan(t, mux, []byte{2})
	orch.Wait()

	req := httptest.NewRequest(http.MethodGet, "/v1/scans", nil)
	rw := httptest.NewRecorder()
	mux.ServeHTTP(rw, req)
	if rw.Code != http.StatusOK {
		t.Fatalf("GET list: status %d", rw.Code)
	}
	var got []scanView
	if err := json.Unmarshal(rw.Body.Bytes(), &got); err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 || got[0].ID != second.ID || got[1].ID != first.ID {
		t.Fatalf("wrong order: %+v", got)
	}
}

func TestDeleteScanIsIdempotent(t *testing.T) {
	mux, orch, store := newTestAPI(&fakeEngine{text: "answer"})

	v := postScan(t, mux, []byte{1})
	orch.Wait()

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodDelete, "/v1/scans/"+v.ID, nil)
		rw := httptest.NewRecorder()
		mux.ServeHTTP(rw, req)
		if rw.Code != http.StatusNoContent {
			t.Fatalf("DELETE #%d: status %d", i+1, rw.Code)
		}
	}
	if _, ok := store.Get(v.ID); ok {
		t.Fatal("record still present after delete")
	}

	req := httptest.NewRequest(http.MethodGet, "/v1/scans/"+v.ID, nil)
	rw := httptest.NewRecorder()
	mux.ServeHTTP(rw, req)
	if rw.Code != http.StatusNotFound {
		t.Fatalf("GET deleted: status %d", rw.Code)
	}
}

func TestPostScanRejectsBadPayloads(t *testing.T) {
	mux, _, _ := newTestAPI(&fakeEngine{text: "answer"})

	cases := []struct {
		name string
		body string
	}{
		{"not json", "image please"},
		{"bad base64", `{"image_b64":"!!!"}`},
		{"empty image", `{"image_b64":""}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/v1/scans", bytes.NewReader([]byte(tc.body)))
			rw := httptest.NewRecorder()
			mux.ServeHTTP(rw, req)
			if rw.Code != http.StatusBadRequest {
				t.Fatalf("status %d, want 400", rw.Code)
			}
		})
	}
}

func TestScanByIDRejectsBadPaths(t *testing.T) {
	mux, _, _ := newTestAPI(&fakeEngine{})
	for _, path := range []string{"/v1/scans/", "/v1/scans/a/b"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rw := httptest.NewRecorder()
		mux.ServeHTTP(rw, req)
		if rw.Code != http.StatusBadRequest {
			t.Fatalf("%s: status %d, want 400", path, rw.Code)
		}
	}
}
