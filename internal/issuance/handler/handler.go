package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/asaskevich/govalidator"
	"github.com/go-chi/chi/v5"

	"credmint/internal/issuance/models"
	"credmint/internal/issuance/service"
	"credmint/internal/platform/middleware"
	"credmint/internal/transport/http/shared"
	dErrors "credmint/pkg/domain-errors"
)

// Issuer defines the service operations the HTTP layer delegates to.
type Issuer interface {
	Issue(ctx context.Context, username string) (*service.IssueResult, error)
	Check(ctx context.Context, username, password string) (*models.Credential, error)
}

// Handler is the thin HTTP layer of the issuance service. It delegates to the
// orchestrator without embedding business logic so transport concerns remain
// isolated.
type Handler struct {
	logger *slog.Logger
	issuer Issuer
}

// New creates an issuance Handler.
func New(issuer Issuer, logger *slog.Logger) *Handler {
	return &Handler{logger: logger, issuer: issuer}
}

// Register mounts the issuance routes with the shared middleware chain.
func (h *Handler) Register(r chi.Router) {
	router := chi.NewRouter()
	router.Use(middleware.Recovery(h.logger))
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger(h.logger))
	router.Use(middleware.Timeout(30 * time.Second))
	router.Use(middleware.ContentTypeJSON)
	router.Post("/api/services/issuance", h.handleIssue)
	router.Post("/api/services/issuance/internal", h.handleCheck)
	router.Get("/healthz", h.handleHealth)

	r.Mount("/", router)
}

func (h *Handler) handleIssue(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req models.IssueRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || !govalidator.StringLength(req.Username, "1", "255") {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "Please provide a username"))
		return
	}

	result, err := h.issuer.Issue(ctx, req.Username)
	if err != nil {
		h.logger.WarnContext(ctx, "issue request failed",
			"request_id", middleware.GetRequestID(ctx),
			"error", err.Error(),
		)
		shared.WriteError(w, err)
		return
	}

	data := map[string]any{"credential": models.ToIssuedPayload(result.Credential)}
	if result.Replayed {
		message := fmt.Sprintf("Credential with username '%s' already exists", result.Credential.Username)
		shared.WriteSuccess(w, http.StatusOK, message, data)
		return
	}
	shared.WriteSuccess(w, http.StatusCreated, "Credential generated", data)
}

func (h *Handler) handleCheck(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req models.CheckRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "Please enter a username and password to verify your credential"))
		return
	}

	cred, err := h.issuer.Check(ctx, req.Username, req.Password)
	if err != nil {
		if !dErrors.HasCode(err, dErrors.CodeNotFound) && !dErrors.HasCode(err, dErrors.CodeBadRequest) {
			h.logger.ErrorContext(ctx, "credential check failed",
				"request_id", middleware.GetRequestID(ctx),
				"error", err.Error(),
			)
		}
		shared.WriteError(w, err)
		return
	}

	shared.WriteSuccess(w, http.StatusOK, "Credential found", map[string]any{
		"credential": models.ToCheckedPayload(cred),
	})
}

func (h *Handler) handleHealth(w http.ResponseWriter, _ *http.Request) {
	shared.WriteSuccess(w, http.StatusOK, "ok", nil)
}
