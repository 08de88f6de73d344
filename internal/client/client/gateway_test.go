package client

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticToken string

func (s staticToken) Token() string { return string(s) }

func newTestGateway(t *testing.T, h http.HandlerFunc, token string) *Gateway {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return NewGateway(srv.URL+"/api", staticToken(token))
}

func TestGateway_AttachesBearerWhenCredentialPresent(t *testing.T) {
	var gotAuth, gotRequestID, gotPath string
	gw := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotRequestID = r.Header.Get("X-Request-ID")
		gotPath = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `[]`)
	}, "abc.def.ghi")

	var out []map[string]any
	require.NoError(t, gw.Get(context.Background(), "/orders", nil, &out))

	assert.Equal(t, "Bearer abc.def.ghi", gotAuth)
	assert.Equal(t, "/api/orders", gotPath)
	_, err := uuid.Parse(gotRequestID)
	assert.NoError(t, err, "request id must be a uuid")
}

func TestGateway_NoCredentialSendsNoAuthorizationHeader(t *testing.T) {
	var present bool
	gw := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		_, present = r.Header["Authorization"]
		w.WriteHeader(http.StatusNoContent)
	}, "")

	require.NoError(t, gw.Delete(context.Background(), "/category/1"))
	assert.False(t, present)
}

func TestGateway_NilTokenSource(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	gw := NewGateway(srv.URL, nil)
	require.NoError(t, gw.Get(context.Background(), "/x", nil, nil))
}

func TestGateway_SendsJSONBodyAndDecodesPayload(t *testing.T) {
	gw := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var in map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&in))
		in["id"] = 7
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(in)
	}, "")

	var out struct {
		ID   int64  `json:"id"`
		Name string `json:"name"`
	}
	err := gw.Post(context.Background(), "/category", map[string]string{"name": "Books"}, &out)
	require.NoError(t, err)
	assert.Equal(t, int64(7), out.ID)
	assert.Equal(t, "Books", out.Name)
}

func TestGateway_EmptySuccessBodyIsNotAnError(t *testing.T) {
	gw := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}, "")

	var out map[string]any
	require.NoError(t, gw.Put(context.Background(), "/product/1", map[string]int{"a": 1}, &out))
	assert.Nil(t, out)
}

func TestGateway_QueryIsEncoded(t *testing.T) {
	var got url.Values
	gw := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		got = r.URL.Query()
		_, _ = io.WriteString(w, `[]`)
	}, "")

	q := url.Values{"name": {"red pen"}, "categoryId": {"3"}}
	require.NoError(t, gw.Get(context.Background(), "/product/search", q, nil))
	assert.Equal(t, "red pen", got.Get("name"))
	assert.Equal(t, "3", got.Get("categoryId"))
}

func TestGateway_APIErrors(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		contentType string
		body        string
		wantCat     ErrorCategory
		wantMsg     string
		wantUnauth  bool
		wantMissing bool
	}{
		{
			name: "json message", status: http.StatusBadRequest,
			contentType: "application/json", body: `{"message":"Name is required"}`,
			wantCat: CategoryValidation, wantMsg: "Name is required",
		},
		{
			name: "json without message", status: http.StatusConflict,
			contentType: "application/json", body: `{"status":409,"error":"Conflict","message":""}`,
			wantCat: CategoryValidation,
		},
		{
			name: "unauthorized", status: http.StatusUnauthorized,
			contentType: "application/json", body: `{}`,
			wantCat: CategoryUnauthorized, wantUnauth: true,
		},
		{
			name: "forbidden", status: http.StatusForbidden,
			wantCat: CategoryUnauthorized, wantUnauth: true,
		},
		{
			name: "not found", status: http.StatusNotFound,
			contentType: "text/plain; charset=utf-8", body: "Product not found",
			wantCat: CategoryNotFound, wantMsg: "Product not found", wantMissing: true,
		},
		{
			name: "server html", status: http.StatusInternalServerError,
			contentType: "text/html", body: "<html>boom</html>",
			wantCat: CategoryServer,
		},
		{
			name: "other client", status: http.StatusMethodNotAllowed,
			wantCat: CategoryClient,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gw := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
				if tt.contentType != "" {
					w.Header().Set("Content-Type", tt.contentType)
				}
				w.WriteHeader(tt.status)
				_, _ = io.WriteString(w, tt.body)
			}, "tok")

			err := gw.Get(context.Background(), "/orders", nil, nil)
			require.Error(t, err)

			var apiErr *APIError
			require.True(t, errors.As(err, &apiErr))
			assert.Equal(t, tt.status, apiErr.Status)
			assert.Equal(t, tt.wantCat, apiErr.Category)
			assert.Equal(t, tt.wantMsg, apiErr.Message)
			assert.Equal(t, tt.wantUnauth, errors.Is(err, ErrUnauthorized))
			assert.Equal(t, tt.wantMissing, errors.Is(err, ErrNotFound))
			assert.False(t, errors.Is(err, ErrUnavailable))
		})
	}
}

func TestGateway_NetworkFailureIsDistinctFromAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	base := srv.URL
	srv.Close()

	gw := NewGateway(base, staticToken("x"))
	err := gw.Get(context.Background(), "/orders", nil, nil)
	require.Error(t, err)

	var netErr *NetworkError
	assert.True(t, errors.As(err, &netErr))
	assert.True(t, errors.Is(err, ErrUnavailable))

	var apiErr *APIError
	assert.False(t, errors.As(err, &apiErr))
	assert.Equal(t, UnavailableMessage, UserMessage(err, "Failed to load orders"))
}

func TestGateway_TimeoutIsANetworkFailure(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	gw := NewGateway(srv.URL, nil, WithTimeout(50*time.Millisecond))
	err := gw.Get(context.Background(), "/slow", nil, nil)
	assert.True(t, errors.Is(err, ErrUnavailable))
}

func TestGateway_MalformedSuccessPayload(t *testing.T) {
	gw := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{not json`)
	}, "")

	var out map[string]any
	err := gw.Get(context.Background(), "/orders", nil, &out)
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrUnavailable))
}

func TestUserMessage(t *testing.T) {
	withMsg := &APIError{Status: 400, Category: CategoryValidation, Message: "Price must be positive"}
	noMsg := &APIError{Status: 500, Category: CategoryServer}

	assert.Equal(t, "Price must be positive", UserMessage(withMsg, "Failed to create product"))
	assert.Equal(t, "Failed to create product", UserMessage(noMsg, "Failed to create product"))
	assert.Equal(t, "fallback", UserMessage(errors.New("other"), "fallback"))
}
