package lrhttp

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/weegigs/link-rest-go/lr"
)

// Source supplies the objects a handler exposes.
type Source[T any] interface {
	List(ctx context.Context) ([]T, error)
	Get(ctx context.Context, id string) (T, bool, error)
}

type HandlerOption[T any] func(service *httpService[T])

func Logger[T any](log *zerolog.Logger) HandlerOption[T] {
	return func(service *httpService[T]) {
		service.log = log
	}
}

// NewHandler exposes source as entity: GET / lists, GET /{id} fetches one
// object and GET /meta describes the entity. Encoders are built up front, so
// configuration problems are reported here rather than per request.
func NewHandler[T any](encoders *lr.EncoderService, entity lr.Described, source Source[T], options ...HandlerOption[T]) (http.Handler, error) {
	data, err := encoders.BuildDataEncoder(entity)
	if err != nil {
		return nil, err
	}
	metadata, err := encoders.MetadataEncoder(entity)
	if err != nil {
		return nil, err
	}

	service := &httpService[T]{
		encoders: encoders,
		data:     data,
		metadata: metadata,
		source:   source,
	}
	for _, option := range options {
		option(service)
	}
	if service.log == nil {
		service.log = &log.Logger
	}

	r := chi.NewRouter()

	r.Use(render.SetContentType(render.ContentTypeJSON))

	r.Method("GET", "/", service.list())
	r.Method("GET", "/meta", service.describe())
	r.Method("GET", "/{id}", service.get())

	return WithTelemetry(r, "lr-http"), nil
}

type httpService[T any] struct {
	log      *zerolog.Logger
	encoders *lr.EncoderService
	data     lr.Encoder
	metadata lr.Encoder
	source   Source[T]
}

type failure struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}

func (service *httpService[T]) fail(w http.ResponseWriter, r *http.Request, status int, message string) {
	render.Status(r, status)
	render.JSON(w, r, failure{Status: status, Message: message})
}

// pending sets the JSON content type on the first write. Until then the
// response can still carry an error status.
type pending struct {
	http.ResponseWriter
	started bool
}

func (p *pending) Write(b []byte) (int, error) {
	if !p.started {
		p.started = true
		p.Header().Set("Content-Type", "application/json; charset=utf-8")
	}
	return p.ResponseWriter.Write(b)
}

func (service *httpService[T]) write(w http.ResponseWriter, r *http.Request, encoder lr.Encoder, value any) {
	out := &pending{ResponseWriter: w}
	err := service.encoders.Write(out, encoder, value)
	if err == nil {
		return
	}

	service.log.Error().Err(err).Bool("streamed", out.started).Msg("failed to encode response")
	if !out.started {
		service.fail(w, r, http.StatusInternalServerError, "failed to encode resource")
	}
}

func (service *httpService[T]) list() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := service.source.List(r.Context())
		if err != nil {
			service.log.Info().Err(err).Msg("failed to list resources")
			service.fail(w, r, http.StatusInternalServerError, "failed to list resources")
			return
		}

		service.write(w, r, service.data, lr.Objects(items))
	}
}

func (service *httpService[T]) get() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		item, found, err := service.source.Get(r.Context(), id)
		if err != nil {
			service.log.Info().Err(err).Str("id", id).Msg("failed to load resource")
			service.fail(w, r, http.StatusInternalServerError, "failed to load resource")
			return
		}

		if !found {
			service.fail(w, r, http.StatusNotFound, "resource not found")
			return
		}

		service.write(w, r, service.data, []any{item})
	}
}

func (service *httpService[T]) describe() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		service.write(w, r, service.metadata, nil)
	}
}
