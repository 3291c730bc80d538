package agent

import (
	"context"
	"encoding/json"
	"sync"

	"roomcraft/internal/domain"
)

// MockClient permite tests sin llamar al agente real.
type MockClient struct {
	mu       sync.Mutex
	Envelope Envelope
	Err      error
	Requests []Request
}

func (m *MockClient) Call(_ context.Context, req Request) (Envelope, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Requests = append(m.Requests, req)
	return m.Envelope, m.Err
}

// Calls devuelve cuantas veces se llamo al agente.
func (m *MockClient) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Requests)
}

// SuccessEnvelope arma un envelope exitoso con el resultado dado.
func SuccessEnvelope(res domain.Result) Envelope {
	raw, _ := json.Marshal(res)
	return Envelope{
		Success:  true,
		Response: ResponseBody{Status: statusSuccess, Result: raw},
	}
}
