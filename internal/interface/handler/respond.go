package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/jemis-lakhani/points-go-backend/internal/domain/entity"
	"github.com/jemis-lakhani/points-go-backend/pkg/logger"
)

type messageResponse struct {
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

// writeError is the one place errors become responses. Routes never
// map statuses themselves.
func writeError(w http.ResponseWriter, log logger.Logger, err error) {
	status := http.StatusInternalServerError
	message := err.Error()

	switch entity.KindOf(err) {
	case entity.KindValidation:
		status = http.StatusBadRequest
	case entity.KindNotFound:
		status = http.StatusNotFound
	case entity.KindUpstream:
		// Deliberately generic: the upstream cause stays in the logs.
		message = taxonomyMessage(err)
		log.Error("Request failed upstream", "error", err)
	default:
		log.Error("Request failed", "error", err)
	}

	writeJSON(w, status, messageResponse{Message: message})
}

// taxonomyMessage returns the classified message without the wrapped
// cause.
func taxonomyMessage(err error) string {
	var e *entity.Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}
