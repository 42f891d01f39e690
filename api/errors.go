package api

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/DEEPML1818/MarineTrack-app-sub000/models"
)

// ErrorBody is the payload of every error response.
type ErrorBody struct {
	Code    models.ErrorCode `json:"code"`
	Message string           `json:"message"`
}

type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

// StatusFor maps an error code to its HTTP status.
func StatusFor(code models.ErrorCode) int {
	switch code {
	case models.CodeInvalidCoordinate, models.CodeInvalidRequest:
		return http.StatusBadRequest
	case models.CodeUnknownHazard:
		return http.StatusNotFound
	case models.CodeUnreachableByWater:
		return http.StatusUnprocessableEntity
	case models.CodeTimeout:
		return http.StatusGatewayTimeout
	case models.CodeLedgerUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func errorBody(err error) ErrorBody {
	code := models.CodeOf(err)
	msg := err.Error()
	if code == models.CodeInternal {
		msg = "internal error"
	}
	return ErrorBody{Code: code, Message: msg}
}

func writeError(w http.ResponseWriter, err error) {
	body := errorBody(err)
	status := StatusFor(body.Code)
	if status >= http.StatusInternalServerError {
		log.Printf("Request failed: %v", err)
	}
	writeJSON(w, status, ErrorResponse{Error: body})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Error encoding response: %v", err)
	}
}
