package agent

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/zap"
)

func TestHTTPClientCall_Success(t *testing.T) {
	var got Request
	var auth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.Write([]byte(`{"success":true,"response":{"status":"success","result":{"message":"Great room!","design_recommendations":{"color_palette":["White","Beige"]},"next_steps":"Measure the walls"}}}`))
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL+"/", "secret", zap.NewNop())
	env, err := c.Call(context.Background(), Request{
		Message: "Design my living room",
		AgentID: "agent-1",
		Context: RequestContext{SessionID: "s1"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if auth != "Bearer secret" {
		t.Fatalf("expected bearer header, got %q", auth)
	}
	if got.Message != "Design my living room" || got.AgentID != "agent-1" || got.Context.SessionID != "s1" {
		t.Fatalf("unexpected request body %+v", got)
	}

	res, ok := env.Result()
	if !ok {
		t.Fatalf("expected well-formed result")
	}
	if res.Message != "Great room!" || res.NextSteps != "Measure the walls" {
		t.Fatalf("unexpected result %+v", res)
	}
	if res.DesignRecommendations == nil || len(res.DesignRecommendations.ColorPalette) != 2 {
		t.Fatalf("expected palette, got %+v", res.DesignRecommendations)
	}
}

func TestHTTPClientCall_SoftFailures(t *testing.T) {
	cases := []struct {
		name   string
		status int
		body   string
	}{
		{"http error", http.StatusBadGateway, `{"success":true}`},
		{"cuerpo invalido", http.StatusOK, `<html>oops</html>`},
		{"envelope fallido", http.StatusOK, `{"success":false,"error":"quota"}`},
		{"status no exitoso", http.StatusOK, `{"success":true,"response":{"status":"error","result":{"message":"x"}}}`},
		{"result no objeto", http.StatusOK, `{"success":true,"response":{"status":"success","result":"plain text"}}`},
		{"result ausente", http.StatusOK, `{"success":true,"response":{"status":"success"}}`},
		{"result null", http.StatusOK, `{"success":true,"response":{"status":"success","result":null}}`},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(c.status)
				w.Write([]byte(c.body))
			}))
			defer srv.Close()

			env, err := NewHTTPClient(srv.URL, "", nil).Call(context.Background(), Request{Message: "hola"})
			if err != nil {
				t.Fatalf("expected soft failure without error, got %v", err)
			}
			if _, ok := env.Result(); ok {
				t.Fatalf("expected no result for %s", c.name)
			}
		})
	}
}

func TestHTTPClientCall_TransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	if _, err := NewHTTPClient(url, "", nil).Call(context.Background(), Request{Message: "hola"}); err == nil {
		t.Fatalf("expected transport error")
	}
}

func TestHTTPClientCall_ContextDeadline(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	if _, err := NewHTTPClient(srv.URL, "", nil).Call(ctx, Request{Message: "hola"}); err == nil {
		t.Fatalf("expected deadline error")
	}
}

func TestNewHTTPClient_LeavesTimeoutToContext(t *testing.T) {
	c := NewHTTPClient("http://agent.local", "", nil)
	if c.client.Timeout != 0 {
		t.Fatalf("expected no client-level timeout, got %s", c.client.Timeout)
	}
}
