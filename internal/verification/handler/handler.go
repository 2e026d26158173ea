package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"credmint/internal/platform/middleware"
	"credmint/internal/transport/http/shared"
	"credmint/internal/verification/metrics"
	"credmint/internal/verification/proxy"
	dErrors "credmint/pkg/domain-errors"
)

// Forwarder delegates a pair verification to the issuance authority.
type Forwarder interface {
	Forward(ctx context.Context, username, password string) (*proxy.Upstream, error)
}

type verifyRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Handler is the thin HTTP layer of the verification service.
type Handler struct {
	logger    *slog.Logger
	forwarder Forwarder
	metrics   *metrics.Metrics
}

// New creates a verification Handler.
func New(forwarder Forwarder, logger *slog.Logger, m *metrics.Metrics) *Handler {
	return &Handler{logger: logger, forwarder: forwarder, metrics: m}
}

// Register mounts the verification routes with the shared middleware chain.
func (h *Handler) Register(r chi.Router) {
	router := chi.NewRouter()
	router.Use(middleware.Recovery(h.logger))
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger(h.logger))
	router.Use(middleware.Timeout(30 * time.Second))
	router.Use(middleware.ContentTypeJSON)
	router.Post("/api/services/verification", h.handleVerify)
	router.Get("/healthz", h.handleHealth)

	r.Mount("/", router)
}

func (h *Handler) handleVerify(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	// Field validation happens locally: an incomplete pair never crosses
	// the network.
	var req verifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Username == "" || req.Password == "" {
		h.metrics.IncOutcome("invalid_input")
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "Please provide both username and password to proceed."))
		return
	}

	upstream, err := h.forwarder.Forward(ctx, req.Username, req.Password)
	if err != nil {
		h.metrics.IncOutcome("upstream_unreachable")
		h.logger.ErrorContext(ctx, "issuance service unreachable",
			"request_id", middleware.GetRequestID(ctx),
			"error", err.Error(),
		)
		shared.WriteError(w, dErrors.Wrap(err, dErrors.CodeUnavailable, "Something went wrong while verifying your credential"))
		return
	}

	// The issuance authority already decided; relay its status and body
	// verbatim, non-2xx included.
	h.metrics.IncOutcome(strconv.Itoa(upstream.StatusCode))
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(upstream.StatusCode)
	_, _ = w.Write(upstream.Body)
}

func (h *Handler) handleHealth(w http.ResponseWriter, _ *http.Request) {
	shared.WriteSuccess(w, http.StatusOK, "ok", nil)
}
