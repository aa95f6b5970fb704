package tool

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hupe1980/subquest/gateway"
)

func TestHTTPInvoker_RawBodyWithoutGateway(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("  42  "))
	}))
	defer srv.Close()

	inv := NewHTTPInvoker(srv.URL)

	got, err := inv.Invoke(context.Background(), Call{Args: "{}"})
	assert.NoError(t, err)
	assert.Equal(t, "42", got)
}

func TestHTTPInvoker_ExpandsURLPlaceholders(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		_, _ = w.Write([]byte("ok"))
	}))
	defer srv.Close()

	inv := NewHTTPInvoker(srv.URL + "/v1/{latitude}/{longitude}")

	_, err := inv.Invoke(context.Background(), Call{
		Args: `{"latitude": "40.71", "longitude": "-74.00"}`,
	})
	assert.NoError(t, err)
	assert.Equal(t, "/v1/40.71/-74.00", gotPath)
}

func TestHTTPInvoker_ExpandsQueryPlaceholders(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("i")
		_, _ = w.Write([]byte("ok"))
	}))
	defer srv.Close()

	inv := NewHTTPInvoker(srv.URL, func(o *HTTPOptions) {
		o.Query = map[string]string{"i": "{input}", "appid": "static-key"}
	})

	_, err := inv.Invoke(context.Background(), Call{Args: `{"input": "2+2"}`})
	assert.NoError(t, err)
	assert.Equal(t, "2+2", gotQuery)
}

func TestHTTPInvoker_SendsHeaders(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_, _ = w.Write([]byte("ok"))
	}))
	defer srv.Close()

	inv := NewHTTPInvoker(srv.URL, func(o *HTTPOptions) {
		o.Headers = map[string]string{"Authorization": "Bearer token"}
	})

	_, err := inv.Invoke(context.Background(), Call{Args: "{}"})
	assert.NoError(t, err)
	assert.Equal(t, "Bearer token", gotAuth)
}

func TestHTTPInvoker_StatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "no such city", http.StatusNotFound)
	}))
	defer srv.Close()

	inv := NewHTTPInvoker(srv.URL)

	_, err := inv.Invoke(context.Background(), Call{
		Tool: &Descriptor{ID: 2},
		Args: "{}",
	})

	assert.Error(t, err)
	toolErr, ok := err.(*ToolError)
	assert.True(t, ok)
	assert.Equal(t, "HTTP_STATUS", toolErr.Code)
	assert.Equal(t, 2, toolErr.ToolID)
	assert.Equal(t, "no such city", toolErr.Details)
}

func TestHTTPInvoker_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	srv.Close() // connection refused from here on

	inv := NewHTTPInvoker(srv.URL)

	_, err := inv.Invoke(context.Background(), Call{Args: "{}"})

	assert.Error(t, err)
	toolErr, ok := err.(*ToolError)
	assert.True(t, ok)
	assert.Equal(t, "HTTP_ERROR", toolErr.Code)
}

func TestHTTPInvoker_FoldsThroughGateway(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"temperature": 21}`))
	}))
	defer srv.Close()

	gw := gateway.NewMockGateway("mock")
	gw.SetHandler(func(req gateway.Request) (string, error) {
		assert.Contains(t, req.Prompt, `<DATA>{"temperature": 21}</DATA>`)
		assert.Contains(t, req.Prompt, "Q: What is the weather in Milan?")
		return "It is 21 degrees.", nil
	})

	inv := NewHTTPInvoker(srv.URL, func(o *HTTPOptions) {
		o.Gateway = gw
	})

	got, err := inv.Invoke(context.Background(), Call{
		Args:         "{}",
		Question:     "What is the weather in Milan?",
		AnswerPrompt: "What is the weather in Milan?",
	})

	assert.NoError(t, err)
	assert.Equal(t, "It is 21 degrees.", got)
}

func TestHTTPInvoker_FoldBillsMeter(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("42"))
	}))
	defer srv.Close()

	gw := gateway.NewMockGateway("mock")
	gw.SetHandler(func(gateway.Request) (string, error) { return "folded", nil })

	inv := NewHTTPInvoker(srv.URL, func(o *HTTPOptions) {
		o.Gateway = gw
	})

	meter := gateway.NewMeter()
	_, err := inv.Invoke(context.Background(), Call{
		Args:     "{}",
		Question: "q",
		Meter:    meter,
		Tier:     gateway.TierEconomy,
	})

	assert.NoError(t, err)
	assert.Greater(t, meter.Total(), 0.0)

	// The folding call honored the run's tier.
	reqs := gw.Requests()
	assert.Len(t, reqs, 1)
	assert.Equal(t, gateway.TierEconomy, reqs[0].Tier)
}

func TestHTTPInvoker_FoldError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("42"))
	}))
	defer srv.Close()

	gw := gateway.NewMockGateway("mock")
	gw.SetHandler(func(gateway.Request) (string, error) {
		return "", assert.AnError
	})

	inv := NewHTTPInvoker(srv.URL, func(o *HTTPOptions) {
		o.Gateway = gw
	})

	_, err := inv.Invoke(context.Background(), Call{Args: "{}", Question: "q"})

	assert.Error(t, err)
	toolErr, ok := err.(*ToolError)
	assert.True(t, ok)
	assert.Equal(t, "FOLD_ERROR", toolErr.Code)
}

func TestExpand_LeavesUnresolvedPlaceholders(t *testing.T) {
	got := expand("/v1/{known}/{unknown}", `{"known": "x"}`)

	assert.Equal(t, "/v1/x/{unknown}", got)
}

func TestExpand_NoPlaceholders(t *testing.T) {
	assert.Equal(t, "/v1/plain", expand("/v1/plain", `{"a":1}`))
}
