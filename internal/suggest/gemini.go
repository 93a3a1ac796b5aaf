package suggest

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/sahastranshpratap/trading-helping-tool/internal/errors"
	"github.com/sahastranshpratap/trading-helping-tool/internal/models"
)

// GeminiProvider calls the gemini bridge service exposed by the journal
// backend.
type GeminiProvider struct {
	baseURL string
	http    *http.Client
}

// NewGeminiProvider creates a provider against the bridge, e.g.
// "http://localhost:8000".
func NewGeminiProvider(baseURL string, timeout time.Duration) *GeminiProvider {
	return &GeminiProvider{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
	}
}

type geminiAnalyzeRequest struct {
	Trades []models.Trade `json:"trades"`
}

type geminiChatRequest struct {
	Question string         `json:"question"`
	History  []ChatMessage  `json:"history"`
	Trades   []models.Trade `json:"trades"`
}

// geminiResponse covers both bridge endpoints: analyze fills Result, chat
// fills Response, failures fill Error.
type geminiResponse struct {
	Result   string `json:"result"`
	Response string `json:"response"`
	Status   string `json:"status"`
	Error    string `json:"error"`
}

// Analyze sends the trade history for analysis and returns the raw
// recommendation text.
func (p *GeminiProvider) Analyze(ctx context.Context, trades []models.Trade) (string, error) {
	resp, err := p.post(ctx, "/api/gemini/analyze", geminiAnalyzeRequest{Trades: trades})
	if err != nil {
		return "", err
	}
	return resp.Result, nil
}

// Chat sends a question with conversation history and returns the free-text
// reply.
func (p *GeminiProvider) Chat(ctx context.Context, question string, history []ChatMessage, trades []models.Trade) (string, error) {
	resp, err := p.post(ctx, "/api/gemini/chat", geminiChatRequest{
		Question: question,
		History:  history,
		Trades:   trades,
	})
	if err != nil {
		return "", err
	}
	return resp.Response, nil
}

func (p *GeminiProvider) post(ctx context.Context, endpoint string, body interface{}) (*geminiResponse, error) {
	data, err := json.Marshal(body)
	if err != nil {
		return nil, errors.NewUnexpectedError("encode request", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+endpoint, bytes.NewReader(data))
	if err != nil {
		return nil, errors.NewUnexpectedError("build request", err)
	}
	req.Header.Set("Content-Type", "application/json")

	httpResp, err := p.http.Do(req)
	if err != nil {
		return nil, errors.NewRequestFailedError(0, "AI service unreachable", err)
	}
	defer httpResp.Body.Close()

	var resp geminiResponse
	if err := json.NewDecoder(httpResp.Body).Decode(&resp); err != nil {
		return nil, errors.NewUnexpectedError("decode AI response", err)
	}

	if httpResp.StatusCode < 200 || httpResp.StatusCode > 299 || resp.Status == "error" {
		message := resp.Error
		if message == "" {
			message = http.StatusText(httpResp.StatusCode)
		}
		return nil, errors.NewRequestFailedError(httpResp.StatusCode, message, nil)
	}

	return &resp, nil
}
