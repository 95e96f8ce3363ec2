package httpapi

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/riskibarqy/film-grading/internal/platform/logging"
	"github.com/riskibarqy/film-grading/internal/usecase"
)

type Handler struct {
	importService     *usecase.PlayImportService
	mappingService    *usecase.TeamMappingService
	validationService *usecase.ValidationService
	registry          *usecase.AdapterRegistry
	logger            *logging.Logger
	validator         *validator.Validate
}

func NewHandler(
	importService *usecase.PlayImportService,
	mappingService *usecase.TeamMappingService,
	validationService *usecase.ValidationService,
	registry *usecase.AdapterRegistry,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		importService:     importService,
		mappingService:    mappingService,
		validationService: validationService,
		registry:          registry,
		logger:            logger,
		validator:         validator.New(validator.WithRequiredStructEnabled()),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	out := healthDTO{Status: "ok"}
	if h.registry != nil {
		for _, src := range h.registry.Sources() {
			out.Sources = append(out.Sources, string(src))
		}
	}
	writeSuccess(ctx, w, http.StatusOK, out)
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}
	return nil
}

// decodeAndValidate decodes a strict JSON body and runs the struct tags.
func (h *Handler) decodeAndValidate(r *http.Request, req any, allowEmpty bool) error {
	if err := decodeJSON(r, req, allowEmpty); err != nil {
		return err
	}
	return h.validateRequest(r.Context(), req)
}

// logFailure logs server-side failures loudly and client mistakes quietly.
func (h *Handler) logFailure(ctx context.Context, msg string, err error, kv ...any) {
	kv = append(kv, "error", err)
	if mapError(err).HTTPStatus >= http.StatusInternalServerError {
		h.logger.ErrorContext(ctx, msg, kv...)
		return
	}
	h.logger.WarnContext(ctx, msg, kv...)
}
