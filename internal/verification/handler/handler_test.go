package handler

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"

	"credmint/internal/transport/http/shared"
	"credmint/internal/verification/proxy"
	"credmint/pkg/testutil"
)

const verifyPath = "/api/services/verification"

func newRouter(t *testing.T, checkURL string) http.Handler {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	forwarder := proxy.New(checkURL, 2*time.Second)
	router := chi.NewRouter()
	New(forwarder, logger, nil).Register(router)
	return router
}

// fakeCheck stands in for the issuance internal check endpoint.
func fakeCheck(t *testing.T, status int, body shared.Envelope) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req map[string]string
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.NotEmpty(t, req["username"], "proxy must forward the username")
		assert.NotEmpty(t, req["password"], "proxy must forward the password")

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(body)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestVerify_RelaysSuccessVerbatim(t *testing.T) {
	upstream := fakeCheck(t, http.StatusOK, shared.Envelope{
		Error:   false,
		Message: "Credential found",
		Data: map[string]any{
			"credential": map[string]any{"username": "alice", "worker": "worker-1"},
		},
	})
	router := newRouter(t, upstream.URL)

	rr := testutil.DoRequest(router, testutil.NewJSONRequest(t, http.MethodPost, verifyPath,
		map[string]string{"username": "alice", "password": "s3cret"}))

	testutil.AssertStatus(t, rr, http.StatusOK)
	env := testutil.UnmarshalResponse[shared.Envelope](t, rr)
	assert.False(t, env.Error)
	assert.Equal(t, "Credential found", env.Message)
	credential := env.Data["credential"].(map[string]any)
	assert.Equal(t, "alice", credential["username"])
}

func TestVerify_RelaysNotFoundUnchanged(t *testing.T) {
	// The proxy must not reinterpret the issuance authority's decision,
	// including its refusal to say which half of the pair was wrong.
	upstream := fakeCheck(t, http.StatusNotFound, shared.Envelope{
		Error:   true,
		Message: "Invalid username or password. Requested credential not found.",
	})
	router := newRouter(t, upstream.URL)

	rr := testutil.DoRequest(router, testutil.NewJSONRequest(t, http.MethodPost, verifyPath,
		map[string]string{"username": "ghost", "password": "wrong"}))

	testutil.AssertStatus(t, rr, http.StatusNotFound)
	env := testutil.UnmarshalResponse[shared.Envelope](t, rr)
	assert.True(t, env.Error)
	assert.Equal(t, "Invalid username or password. Requested credential not found.", env.Message)
}

func TestVerify_MissingFieldsFailLocally(t *testing.T) {
	// An upstream that fails the test proves no network call is made.
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("verification must not call upstream for invalid input")
	}))
	t.Cleanup(upstream.Close)
	router := newRouter(t, upstream.URL)

	for name, body := range map[string]map[string]string{
		"missing password": {"username": "alice"},
		"missing username": {"password": "s3cret"},
		"empty body":       {},
	} {
		t.Run(name, func(t *testing.T) {
			rr := testutil.DoRequest(router, testutil.NewJSONRequest(t, http.MethodPost, verifyPath, body))
			testutil.AssertStatus(t, rr, http.StatusBadRequest)
			testutil.AssertJSONContains(t, rr, "error", true)
		})
	}
}

func TestVerify_UpstreamUnreachable(t *testing.T) {
	// A closed server gives connection refused: a transport-level failure
	// with no response to relay.
	dead := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	deadURL := dead.URL
	dead.Close()
	router := newRouter(t, deadURL)

	rr := testutil.DoRequest(router, testutil.NewJSONRequest(t, http.MethodPost, verifyPath,
		map[string]string{"username": "alice", "password": "s3cret"}))

	testutil.AssertStatus(t, rr, http.StatusInternalServerError)
	env := testutil.UnmarshalResponse[shared.Envelope](t, rr)
	assert.True(t, env.Error)
	assert.NotContains(t, env.Message, "refused", "transport detail must not leak")
	assert.NotContains(t, env.Message, deadURL, "upstream address must not leak")
}
