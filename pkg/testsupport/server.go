package testsupport

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/goliatone/go-triage/pkg/contract"
)

// PredictServer is an httptest server standing in for the prediction
// service. It records every body posted to it.
type PredictServer struct {
	*httptest.Server

	mu     sync.Mutex
	bodies [][]byte
	reply  func(w http.ResponseWriter)
}

// NewPredictServer starts a server answering status with the JSON encoding
// of body. It is closed with the test.
func NewPredictServer(t *testing.T, status int, body any) *PredictServer {
	t.Helper()

	payload, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal reply: %v", err)
	}
	return NewRawPredictServer(t, status, "application/json", payload)
}

// NewRawPredictServer answers with payload verbatim.
func NewRawPredictServer(t *testing.T, status int, contentType string, payload []byte) *PredictServer {
	t.Helper()

	s := &PredictServer{
		reply: func(w http.ResponseWriter) {
			w.Header().Set("Content-Type", contentType)
			w.WriteHeader(status)
			_, _ = w.Write(payload)
		},
	}
	mux := http.NewServeMux()
	mux.HandleFunc("POST "+contract.PredictPath, func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		s.mu.Lock()
		s.bodies = append(s.bodies, body)
		s.mu.Unlock()
		s.reply(w)
	})
	s.Server = httptest.NewServer(mux)
	t.Cleanup(s.Close)
	return s
}

// Requests reports how many predictions were posted.
func (s *PredictServer) Requests() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.bodies)
}

// LastBody returns the decoded JSON of the last request, or nil.
func (s *PredictServer) LastBody(t *testing.T) map[string]any {
	t.Helper()

	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.bodies) == 0 {
		return nil
	}
	var out map[string]any
	if err := json.Unmarshal(s.bodies[len(s.bodies)-1], &out); err != nil {
		t.Fatalf("decode request body: %v", err)
	}
	return out
}
