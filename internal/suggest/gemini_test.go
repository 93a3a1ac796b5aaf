package suggest

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sahastranshpratap/trading-helping-tool/internal/errors"
)

func newTestGemini(t *testing.T, handler http.Handler) *GeminiProvider {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewGeminiProvider(server.URL, 5*time.Second)
}

func TestGeminiAnalyze(t *testing.T) {
	provider := newTestGemini(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/gemini/analyze" {
			t.Errorf("path = %s", r.URL.Path)
		}
		var req geminiAnalyzeRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatal(err)
		}
		if len(req.Trades) != 1 {
			t.Errorf("trades in request = %d", len(req.Trades))
		}
		json.NewEncoder(w).Encode(geminiResponse{Result: "Title: x\nDescription: y", Status: "success"})
	}))

	text, err := provider.Analyze(context.Background(), sampleTrades())
	if err != nil {
		t.Fatal(err)
	}
	if text != "Title: x\nDescription: y" {
		t.Errorf("text = %q", text)
	}
}

func TestGeminiChat(t *testing.T) {
	provider := newTestGemini(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/gemini/chat" {
			t.Errorf("path = %s", r.URL.Path)
		}
		var req geminiChatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatal(err)
		}
		if req.Question != "how am I doing?" || len(req.History) != 1 {
			t.Errorf("request = %+v", req)
		}
		json.NewEncoder(w).Encode(geminiResponse{Response: "quite well"})
	}))

	history := []ChatMessage{{Role: "user", Content: "hi"}}
	reply, err := provider.Chat(context.Background(), "how am I doing?", history, sampleTrades())
	if err != nil {
		t.Fatal(err)
	}
	if reply != "quite well" {
		t.Errorf("reply = %q", reply)
	}
}

func TestGeminiErrorStatusInBody(t *testing.T) {
	provider := newTestGemini(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(geminiResponse{Status: "error", Error: "quota exceeded"})
	}))

	_, err := provider.Analyze(context.Background(), sampleTrades())
	var reqErr *errors.RequestFailedError
	if !errors.As(err, &reqErr) {
		t.Fatalf("expected RequestFailedError, got %T %v", err, err)
	}
	if reqErr.Message != "quota exceeded" {
		t.Errorf("Message = %q", reqErr.Message)
	}
}

func TestGeminiUnreachable(t *testing.T) {
	provider := NewGeminiProvider("http://127.0.0.1:1", 500*time.Millisecond)

	_, err := provider.Analyze(context.Background(), sampleTrades())
	var reqErr *errors.RequestFailedError
	if !errors.As(err, &reqErr) || reqErr.Status != 0 {
		t.Errorf("expected status-0 RequestFailedError, got %v", err)
	}
}
