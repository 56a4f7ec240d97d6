package generation

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"endurafit/workout-service/internal/config"
	"endurafit/workout-service/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testClientConfig(baseURL string) config.OpenAIConfig {
	return config.OpenAIConfig{
		APIKey:         "test-key",
		BaseURL:        baseURL,
		Model:          "gpt-4o",
		Temperature:    0.2,
		RequestTimeout: 5 * time.Second,
		TotalTimeout:   10 * time.Second,
	}
}

func completionServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestClientCompleteReturnsContent(t *testing.T) {
	srv := completionServer(t, http.StatusOK, `{
		"id": "chatcmpl-1",
		"object": "chat.completion",
		"model": "gpt-4o",
		"choices": [
			{"index": 0, "finish_reason": "stop",
			 "message": {"role": "assistant", "content": "{\"name\":\"Plan\"}"}}
		]
	}`)

	c := NewClient(testClientConfig(srv.URL))
	got, err := c.Complete(context.Background(), "system", "user")
	require.NoError(t, err)
	assert.Equal(t, `{"name":"Plan"}`, got)
}

func TestClientCompleteServerError(t *testing.T) {
	srv := completionServer(t, http.StatusInternalServerError, `{"error":{"message":"boom","type":"server_error"}}`)

	c := NewClient(testClientConfig(srv.URL))
	_, err := c.Complete(context.Background(), "system", "user")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrServerError)

	var appErr *domain.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Contains(t, appErr.Description, "500")
}

func TestClientCompleteEmptyChoices(t *testing.T) {
	srv := completionServer(t, http.StatusOK, `{"id":"chatcmpl-2","object":"chat.completion","model":"gpt-4o","choices":[]}`)

	c := NewClient(testClientConfig(srv.URL))
	_, err := c.Complete(context.Background(), "system", "user")
	assert.ErrorIs(t, err, domain.ErrInvalidResponse)
}

func TestClientCompleteEmptyContent(t *testing.T) {
	srv := completionServer(t, http.StatusOK, `{
		"id": "chatcmpl-3",
		"object": "chat.completion",
		"model": "gpt-4o",
		"choices": [{"index": 0, "finish_reason": "stop", "message": {"role": "assistant", "content": "  "}}]
	}`)

	c := NewClient(testClientConfig(srv.URL))
	_, err := c.Complete(context.Background(), "system", "user")
	assert.ErrorIs(t, err, domain.ErrGenerationFailed)
}

func TestClientCompleteConnectionRefused(t *testing.T) {
	// Grab a port that nothing is listening on.
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c := NewClient(testClientConfig(url))
	_, err := c.Complete(context.Background(), "system", "user")
	assert.ErrorIs(t, err, domain.ErrNoInternet)
}

func TestClientCompleteContextTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(5 * time.Second):
		}
	}))
	t.Cleanup(srv.Close)

	c := NewClient(testClientConfig(srv.URL))
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := c.Complete(ctx, "system", "user")
	assert.ErrorIs(t, err, domain.ErrRequestTimeout)
}

func TestMapTransportError(t *testing.T) {
	t.Run("deadline exceeded", func(t *testing.T) {
		assert.ErrorIs(t, mapTransportError(context.DeadlineExceeded), domain.ErrRequestTimeout)
	})
	t.Run("unrecognized error", func(t *testing.T) {
		assert.ErrorIs(t, mapTransportError(assert.AnError), domain.ErrInvalidResponse)
	})
}
