package httpapi

import (
	"context"
	"errors"
	"net/http"

	sonic "github.com/bytedance/sonic"

	"github.com/L3Technosmith/pkmnFoundations/internal/usecase"
)

// Bodies follow the Google JSON style guide: {"apiVersion", "id", "data"} or {"apiVersion", "id", "error"}.
const (
	apiVersion  = "2.0"
	errorDomain = "pkmnfoundations"
)

type envelopeBody struct {
	APIVersion string     `json:"apiVersion"`
	ID         string     `json:"id,omitempty"`
	Data       any        `json:"data,omitempty"`
	Error      *errorBody `json:"error,omitempty"`
}

type errorBody struct {
	Code    int           `json:"code"`
	Message string        `json:"message"`
	Status  string        `json:"status"`
	Errors  []errorDetail `json:"errors,omitempty"`
}

type errorDetail struct {
	Domain  string `json:"domain"`
	Reason  string `json:"reason"`
	Message string `json:"message"`
}

// errorClass is how one usecase sentinel is answered.
type errorClass struct {
	sentinel   error
	HTTPStatus int
	Reason     string
	Status     string
}

// checked in order; the first sentinel err wraps wins
var errorClasses = []errorClass{
	{usecase.ErrInvalidInput, http.StatusBadRequest, "invalidInput", "INVALID_ARGUMENT"},
	{usecase.ErrNotFound, http.StatusNotFound, "notFound", "NOT_FOUND"},
	{usecase.ErrConflict, http.StatusConflict, "conflict", "ABORTED"},
	{usecase.ErrNotImplemented, http.StatusNotImplemented, "notImplemented", "UNIMPLEMENTED"},
	{usecase.ErrDependencyUnavailable, http.StatusServiceUnavailable, "dependencyUnavailable", "UNAVAILABLE"},
}

var internalClass = errorClass{HTTPStatus: http.StatusInternalServerError, Reason: "internalError", Status: "INTERNAL"}

func classifyError(err error) errorClass {
	for _, class := range errorClasses {
		if errors.Is(err, class.sentinel) {
			return class
		}
	}
	return internalClass
}

func writeJSON(ctx context.Context, w http.ResponseWriter, status int, body envelopeBody) {
	body.APIVersion = apiVersion
	body.ID, _ = RequestIDFromContext(ctx)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = sonic.ConfigDefault.NewEncoder(w).Encode(body)
}

func writeSuccess(ctx context.Context, w http.ResponseWriter, status int, data any) {
	writeJSON(ctx, w, status, envelopeBody{Data: data})
}

// writeError answers err by its class. Messages of unclassified errors stay in the logs.
func writeError(ctx context.Context, w http.ResponseWriter, err error) {
	ctx, span := startSpan(ctx, "httpapi.writeError")
	defer span.End()

	class := classifyError(err)
	annotateError(ctx, err, class)
	if class.HTTPStatus == http.StatusInternalServerError {
		writeInternalError(ctx, w)
		return
	}
	writeFailure(ctx, w, class, err.Error())
}

func writeInternalError(ctx context.Context, w http.ResponseWriter) {
	writeFailure(ctx, w, internalClass, "internal server error")
}

func writeFailure(ctx context.Context, w http.ResponseWriter, class errorClass, msg string) {
	writeJSON(ctx, w, class.HTTPStatus, envelopeBody{Error: &errorBody{
		Code:    class.HTTPStatus,
		Message: msg,
		Status:  class.Status,
		Errors:  []errorDetail{{Domain: errorDomain, Reason: class.Reason, Message: msg}},
	}})
}
