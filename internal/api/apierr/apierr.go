package apierr

import (
	"context"
	"errors"
	"net/http"

	"github.com/futig/cookbook-backend/internal/entity"
	"github.com/futig/cookbook-backend/internal/pkg/response"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// Respond logs the error and writes the JSON error body.
func Respond(ctx context.Context, w http.ResponseWriter, status int, message string, err error) {
	if err != nil {
		ctxzap.Error(ctx, message, zap.Error(err))
	} else {
		ctxzap.Error(ctx, message)
	}
	response.JSON(w, status, entity.ErrorResponse{
		Error:   http.StatusText(status),
		Message: message,
	})
}

// FromUsecase maps domain sentinels onto HTTP statuses.
func FromUsecase(ctx context.Context, w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, entity.ErrSessionNotFound),
		errors.Is(err, entity.ErrDocumentNotFound),
		errors.Is(err, entity.ErrThreadNotFound),
		errors.Is(err, entity.ErrArticleNotFound):
		Respond(ctx, w, http.StatusNotFound, "resource not found", err)

	case errors.Is(err, entity.ErrSessionExpired):
		Respond(ctx, w, http.StatusGone, "session expired", err)

	case errors.Is(err, entity.ErrTokenExpired),
		errors.Is(err, entity.ErrTokenMissing):
		Respond(ctx, w, http.StatusUnauthorized, "brokerage authorization required", err)

	case errors.Is(err, entity.ErrStageNotApproved),
		errors.Is(err, entity.ErrWorkflowCompleted):
		Respond(ctx, w, http.StatusConflict, "workflow state does not allow this action", err)

	case errors.Is(err, entity.ErrInvalidFile),
		errors.Is(err, entity.ErrFileTooLarge),
		errors.Is(err, entity.ErrInvalidExtension):
		Respond(ctx, w, http.StatusBadRequest, "invalid file", err)

	case errors.Is(err, entity.ErrMissingField),
		errors.Is(err, entity.ErrInvalidFormat),
		errors.Is(err, entity.ErrInvalidParameter),
		errors.Is(err, entity.ErrInvalidAction),
		errors.Is(err, entity.ErrWrongSessionApp),
		errors.Is(err, entity.ErrUnknownColumn),
		errors.Is(err, entity.ErrColumnNotNumeric),
		errors.Is(err, entity.ErrUnsupportedFormat):
		Respond(ctx, w, http.StatusBadRequest, "invalid parameter", err)

	case errors.Is(err, entity.ErrEmptyDocument),
		errors.Is(err, entity.ErrEmptyTranscript),
		errors.Is(err, entity.ErrEmptyDataset),
		errors.Is(err, entity.ErrNoTransactions),
		errors.Is(err, entity.ErrNoHeadlines),
		errors.Is(err, entity.ErrNoToolCalls),
		errors.Is(err, entity.ErrEmptyHoldings):
		Respond(ctx, w, http.StatusUnprocessableEntity, "input cannot be processed", err)

	case errors.Is(err, entity.ErrMalformedLLMReply):
		Respond(ctx, w, http.StatusBadGateway, "language model returned an unusable reply", err)

	default:
		Respond(ctx, w, http.StatusInternalServerError, "internal server error", err)
	}
}
