package response

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/easyhomework/backend/internal/apperr"
)

// JSON writes v with the given status code.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// Envelope is the body of every failed request.
type Envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// Writer renders classified errors. Unclassified errors are logged in full and
// their message is echoed to the client unless hideInternal is set.
type Writer struct {
	logger       *zap.Logger
	hideInternal bool
}

func NewWriter(logger *zap.Logger, hideInternal bool) *Writer {
	return &Writer{logger: logger, hideInternal: hideInternal}
}

// Error writes the {success:false, message} body for err.
func (ew *Writer) Error(w http.ResponseWriter, r *http.Request, err error) {
	status, msg, known := apperr.Classify(err)
	if !known {
		ew.logger.Error("request failed",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Error(err),
		)
		if ew.hideInternal {
			msg = "Request failed"
		}
	}
	JSON(w, status, Envelope{Success: false, Message: msg})
}
