//go:build wireinject
// +build wireinject

package main

import (
	"net/http"

	"github.com/google/wire"

	"github.com/weegigs/link-rest-go/samples/calendar"
	"github.com/weegigs/link-rest-go/support"
)

func NewServer(cfg *support.Config, store *calendar.Store) (http.Handler, error) {
	panic(wire.Build(
		ProvideLogger,
		ProvideEncoderService,
		calendar.Set,
		NewRoutes,
	))
}
