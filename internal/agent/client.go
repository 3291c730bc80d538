package agent

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"roomcraft/internal/domain"
)

const statusSuccess = "success"

// Client define la llamada al agente remoto de diseño.
type Client interface {
	Call(ctx context.Context, req Request) (Envelope, error)
}

// Request es el cuerpo que se envia al agente.
type Request struct {
	Message string         `json:"message"`
	AgentID string         `json:"agent_id"`
	Context RequestContext `json:"context"`
}

// RequestContext viaja tal cual; el agente lo usa para continuidad de la conversacion.
type RequestContext struct {
	SessionID string `json:"session_id"`
}

// Envelope es la respuesta del agente.
type Envelope struct {
	Success  bool         `json:"success"`
	Response ResponseBody `json:"response"`
	Error    string       `json:"error,omitempty"`
}

type ResponseBody struct {
	Status string          `json:"status"`
	Result json.RawMessage `json:"result,omitempty"`
}

// Result devuelve el resultado solo si el envelope es exitoso y el result es un objeto valido.
func (e Envelope) Result() (*domain.Result, bool) {
	if !e.Success || e.Response.Status != statusSuccess {
		return nil, false
	}
	raw := bytes.TrimSpace(e.Response.Result)
	if len(raw) == 0 || raw[0] != '{' {
		return nil, false
	}
	var res domain.Result
	if err := json.Unmarshal(raw, &res); err != nil {
		return nil, false
	}
	return &res, true
}

// HTTPClient implementa Client contra el endpoint HTTP del agente.
type HTTPClient struct {
	endpoint string
	apiKey   string
	client   *http.Client
	logger   *zap.Logger
}

// NewHTTPClient construye un cliente apuntando al endpoint del agente.
// El timeout por llamada lo impone el contexto del controlador.
func NewHTTPClient(endpoint, apiKey string, logger *zap.Logger) *HTTPClient {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HTTPClient{
		endpoint: strings.TrimRight(endpoint, "/"),
		apiKey:   apiKey,
		client:   &http.Client{},
		logger:   logger,
	}
}

// Call envia el mensaje. Solo los fallos de transporte se devuelven como error;
// respuestas con status de error o cuerpos ilegibles vuelven como envelope no exitoso.
func (c *HTTPClient) Call(ctx context.Context, req Request) (Envelope, error) {
	bodyBytes, err := json.Marshal(req)
	if err != nil {
		return Envelope{}, fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(bodyBytes))
	if err != nil {
		return Envelope{}, fmt.Errorf("create request: %w", err)
	}
	if c.apiKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return Envelope{}, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return Envelope{}, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		c.logger.Warn("agent error status",
			zap.Int("status", resp.StatusCode),
			zap.String("session_id", req.Context.SessionID),
		)
		return Envelope{Success: false, Error: fmt.Sprintf("agent http error: status=%d", resp.StatusCode)}, nil
	}

	var env Envelope
	if err := json.Unmarshal(respBody, &env); err != nil {
		c.logger.Warn("agent response not decodable", zap.Error(err))
		return Envelope{Success: false, Error: "agent response not decodable"}, nil
	}
	return env, nil
}
