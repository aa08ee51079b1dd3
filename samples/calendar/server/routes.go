package main

import (
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/weegigs/link-rest-go/connectors/lrhttp"
	"github.com/weegigs/link-rest-go/lr"
	"github.com/weegigs/link-rest-go/samples/calendar"
	"github.com/weegigs/link-rest-go/support"
)

func ProvideLogger() *zerolog.Logger {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	return &logger
}

func ProvideEncoderService(cfg *support.Config, log *zerolog.Logger) (*lr.EncoderService, error) {
	return cfg.Service(lr.WithLogger(log))
}

func NewRoutes(service *lr.EncoderService, people calendar.PeopleSource, entries calendar.EntrySource, log *zerolog.Logger) (http.Handler, error) {
	peopleHandler, err := lrhttp.NewHandler[*calendar.Person](service, calendar.People, people, lrhttp.Logger[*calendar.Person](log))
	if err != nil {
		return nil, err
	}

	entriesHandler, err := lrhttp.NewHandler[*calendar.Entry](service, calendar.Entries, entries, lrhttp.Logger[*calendar.Entry](log))
	if err != nil {
		return nil, err
	}

	r := chi.NewRouter()
	r.Mount("/people", peopleHandler)
	r.Mount("/entries", entriesHandler)

	return withLogging(r), nil
}
