package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"example.com/noteapp/internal/logger"
	"example.com/noteapp/internal/notes"
)

// DefaultMaxBodyBytes matches the 100kb limit of common JSON body parsers.
const DefaultMaxBodyBytes = 100 << 10

// NoteService is what the handlers need from the use-case layer.
type NoteService interface {
	ListNotes(ctx context.Context) ([]notes.Note, error)
	GetNote(ctx context.Context, id string) (notes.Note, error)
	CreateNote(ctx context.Context, in notes.Input) (notes.Note, error)
	ReplaceNote(ctx context.Context, id string, in notes.Input) (notes.Note, error)
	DeleteNote(ctx context.Context, id string) error
}

type Options struct {
	MaxBodyBytes   int64
	AllowedOrigins []string
}

type Handlers struct {
	svc  NoteService
	log  *logger.Logger
	opts Options
}

// handlerFunc is a handler that leaves failure rendering to the error translator.
type handlerFunc func(w http.ResponseWriter, r *http.Request) error

func NewHandlers(svc NoteService, log *logger.Logger, opts Options) *Handlers {
	if log == nil {
		log = logger.NewNop()
	}
	if opts.MaxBodyBytes <= 0 {
		opts.MaxBodyBytes = DefaultMaxBodyBytes
	}
	if len(opts.AllowedOrigins) == 0 {
		opts.AllowedOrigins = []string{"*"}
	}
	return &Handlers{svc: svc, log: log, opts: opts}
}

// Routes builds the pipeline: cors, request context, recoverer, body parser, request logger,
// then the note routes, with the unknown-endpoint handler as the last resort.
func (h *Handlers) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(h.cors())
	r.Use(h.requestContext)
	r.Use(h.recoverer)
	r.Use(middleware.StripSlashes)
	r.Use(middleware.GetHead)
	r.Use(h.bodyParser)
	r.Use(h.requestLogger)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api/notes", func(r chi.Router) {
		r.Get("/", h.handle(h.list))
		r.Post("/", h.handle(h.create))

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", h.handle(h.get))
			r.Put("/", h.handle(h.update))
			r.Delete("/", h.handle(h.delete))
		})
	})

	r.NotFound(unknownEndpoint)
	r.MethodNotAllowed(unknownEndpoint)

	return r
}

func (h *Handlers) handle(fn handlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := fn(w, r); err != nil {
			h.writeError(w, r, err)
		}
	}
}

func (h *Handlers) list(w http.ResponseWriter, r *http.Request) error {
	items, err := h.svc.ListNotes(r.Context())
	if err != nil {
		return err
	}
	if items == nil {
		items = []notes.Note{}
	}
	writeJSON(w, http.StatusOK, items)
	return nil
}

func (h *Handlers) get(w http.ResponseWriter, r *http.Request) error {
	n, err := h.svc.GetNote(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, n)
	return nil
}

func (h *Handlers) create(w http.ResponseWriter, r *http.Request) error {
	in, err := decodeInput(r)
	if err != nil {
		return err
	}
	n, err := h.svc.CreateNote(r.Context(), in)
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, n)
	return nil
}

func (h *Handlers) update(w http.ResponseWriter, r *http.Request) error {
	in, err := decodeInput(r)
	if err != nil {
		return err
	}
	n, err := h.svc.ReplaceNote(r.Context(), chi.URLParam(r, "id"), in)
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, n)
	return nil
}

func (h *Handlers) delete(w http.ResponseWriter, r *http.Request) error {
	if err := h.svc.DeleteNote(r.Context(), chi.URLParam(r, "id")); err != nil {
		return err
	}
	w.WriteHeader(http.StatusNoContent)
	return nil
}

// decodeInput reads the parsed body. A missing body decodes as an empty Input.
func decodeInput(r *http.Request) (notes.Input, error) {
	var in notes.Input
	raw := bodyFromContext(r.Context())
	if len(raw) == 0 {
		return in, nil
	}

	if err := json.Unmarshal(raw, &in); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			switch typeErr.Field {
			case "content":
				return notes.Input{}, notes.Invalid("content must be a string")
			case "important":
				return notes.Input{}, notes.Invalid("important must be a boolean")
			}
		}
		return notes.Input{}, notes.Invalid("request body must be a JSON object")
	}
	return in, nil
}

func unknownEndpoint(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusNotFound, map[string]string{"error": "unknown endpoint"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
