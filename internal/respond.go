package internal

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"devicehub-api/internal/store"
)

// Error codes carried in ErrorResponse.Code.
const (
	CodeNotFound             = "NOT_FOUND"
	CodeReferentialIntegrity = "REFERENTIAL_INTEGRITY_VIOLATION"
	CodeConstraint           = "CONSTRAINT_VIOLATION"
	CodeValidation           = "VALIDATION_FAILURE"
	CodeInternal             = "INTERNAL_ERROR"
)

// ErrorResponse is the body of every error reply.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func sendErrorResponse(w http.ResponseWriter, message, code string, statusCode int) {
	writeJSON(w, statusCode, ErrorResponse{Error: message, Code: code})
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("encode response: %v", err)
	}
}

// statusFor maps a store error onto its HTTP status and error code.
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound, CodeNotFound
	case errors.Is(err, store.ErrReferenced):
		return http.StatusConflict, CodeReferentialIntegrity
	case errors.Is(err, store.ErrConflict):
		return http.StatusConflict, CodeConstraint
	case errors.Is(err, store.ErrInvalid):
		return http.StatusBadRequest, CodeValidation
	}
	return http.StatusInternalServerError, CodeInternal
}

// sendStoreError reports err to the client. Server faults are logged and
// hidden; integrity rejections are counted.
func (s *Server) sendStoreError(w http.ResponseWriter, r *http.Request, entity string, err error) {
	status, code := statusFor(err)
	if status == http.StatusInternalServerError {
		log.Printf("%s %s: %v", r.Method, r.URL.Path, err)
		sendErrorResponse(w, "internal server error", code, status)
		return
	}
	if code != CodeNotFound {
		s.Metrics.Rejected(entity, code)
	}
	sendErrorResponse(w, s.clientMessage(code, err), code, status)
}

// publicMessages replace error text in production.
var publicMessages = map[string]string{
	CodeNotFound:             "record not found",
	CodeReferentialIntegrity: "record is still referenced",
	CodeConstraint:           "record violates a uniqueness constraint",
	CodeValidation:           "record was rejected by a store constraint",
}

// clientMessage is err's text outside production. In production only a
// dependent-count rejection keeps its detail, since it carries no driver text.
func (s *Server) clientMessage(code string, err error) string {
	if !s.production {
		return err.Error()
	}
	var ref *store.ReferenceError
	if errors.As(err, &ref) && ref.Err == nil {
		return ref.Error()
	}
	return publicMessages[code]
}
