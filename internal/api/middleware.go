package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"runtime/debug"
	"strings"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"example.com/noteapp/internal/logger"
	"example.com/noteapp/internal/stringsx"
)

const (
	headerRequestID = "X-Request-Id"
	maxLoggedBody   = 512
)

type bodyKey struct{}

func bodyFromContext(ctx context.Context) []byte {
	raw, _ := ctx.Value(bodyKey{}).([]byte)
	return raw
}

func (h *Handlers) cors() func(http.Handler) http.Handler {
	return cors.Handler(cors.Options{
		AllowedOrigins: h.opts.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", headerRequestID},
		ExposedHeaders: []string{headerRequestID},
		MaxAge:         300,
	})
}

// requestContext attaches a request id and a request-scoped logger to the context.
func (h *Handlers) requestContext(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := logger.NewRequestIDContext(r.Context(), r.Header.Get(headerRequestID))
		id, _ := logger.GetRequestID(ctx)
		ctx = logger.NewContext(ctx, h.log)

		w.Header().Set(headerRequestID, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (h *Handlers) recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler {
				panic(rec)
			}
			logger.Log(r.Context()).Error(r.Context(), "server panic",
				zap.String("error", fmt.Sprintf("%v", rec)),
				zap.String("stack", string(debug.Stack())),
			)
			h.writeError(w, r, fmt.Errorf("panic: %v", rec))
		}()

		next.ServeHTTP(w, r)
	})
}

// bodyParser reads JSON bodies up to the configured limit and keeps them on the context.
// Bodies of any other media type are ignored, as if the request had none.
func (h *Handlers) bodyParser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Body == nil || r.Body == http.NoBody || !isJSON(r.Header.Get("Content-Type")) {
			next.ServeHTTP(w, r)
			return
		}

		raw, err := io.ReadAll(http.MaxBytesReader(w, r.Body, h.opts.MaxBodyBytes))
		if err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				h.writeError(w, r, errBodyTooLarge)
				return
			}
			h.writeError(w, r, errBodyUnreadable)
			return
		}

		raw = bytes.TrimSpace(raw)
		if len(raw) > 0 && !json.Valid(raw) {
			h.writeError(w, r, errMalformedJSON)
			return
		}

		r.Body = io.NopCloser(bytes.NewReader(raw))
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), bodyKey{}, raw)))
	})
}

// requestLogger logs method, path and parsed body, then status and latency once the handler returns.
func (h *Handlers) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		start := time.Now()
		log := logger.Log(ctx).With(
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
		)

		body := "{}"
		if raw := bodyFromContext(ctx); len(raw) > 0 {
			body = stringsx.Clip(string(raw), maxLoggedBody)
		}
		log.Info(ctx, "request received", zap.String("body", body))

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		log.Info(ctx, "request completed",
			zap.Int("status", ww.Status()),
			zap.Int("bytes", ww.BytesWritten()),
			zap.Duration("latency", time.Since(start)),
		)
	})
}

func isJSON(contentType string) bool {
	if contentType == "" {
		return false
	}
	mt, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	return mt == "application/json" || strings.HasSuffix(mt, "+json")
}
