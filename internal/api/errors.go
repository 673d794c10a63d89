package api

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"example.com/noteapp/internal/logger"
	"example.com/noteapp/internal/notes"
)

// transportError is a failure raised by the pipeline itself, before any use case runs.
type transportError struct {
	status int
	msg    string
}

func (e *transportError) Error() string { return e.msg }

var (
	errMalformedJSON  = &transportError{status: http.StatusBadRequest, msg: "malformed json"}
	errBodyTooLarge   = &transportError{status: http.StatusRequestEntityTooLarge, msg: "request entity too large"}
	errBodyUnreadable = &transportError{status: http.StatusBadRequest, msg: "request body could not be read"}
)

// writeError is the only place failures are rendered onto the wire.
func (h *Handlers) writeError(w http.ResponseWriter, r *http.Request, err error) {
	ctx := r.Context()
	log := logger.Log(ctx)

	var te *transportError
	if errors.As(err, &te) {
		log.Info(ctx, "request rejected",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", te.status),
			zap.String("reason", te.msg),
		)
		writeJSON(w, te.status, map[string]string{"error": te.msg})
		return
	}

	switch notes.KindOf(err) {
	case notes.KindInvalid:
		var ne *notes.Error
		errors.As(err, &ne)
		log.Debug(ctx, "invalid note", zap.String("reason", ne.Reason))
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": ne.Reason})
	case notes.KindNotFound:
		w.WriteHeader(http.StatusNotFound)
	case notes.KindMalformedID:
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "malformed id"})
	default:
		log.Error(ctx, "request failed", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
	}
}
