package main

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/jaswdr/faker"
	log "github.com/sirupsen/logrus"

	"github.com/weegigs/link-rest-go/samples/calendar"
	"github.com/weegigs/link-rest-go/support"
)

func env(name string, fallback string) string {
	if value, ok := os.LookupEnv(name); ok {
		return value
	}
	return fallback
}

func run() error {
	ctx := context.Background()

	cfg, err := support.LoadConfigurationFile(os.Getenv("CALENDAR_CONFIG"))
	if err != nil {
		return err
	}

	provider, err := cfg.Telemetry.TracerProvider(ctx)
	if err != nil {
		return err
	}
	defer provider.Shutdown(ctx)

	store := calendar.NewStore(calendar.NewIDGenerator())
	calendar.Seed(store, faker.New(), 5, 8, time.Now().Truncate(24*time.Hour))

	handler, err := NewServer(cfg, store)
	if err != nil {
		return err
	}

	addr := env("CALENDAR_ADDR", ":9080")
	log.Infof("listening on %s", addr)
	return http.ListenAndServe(addr, handler)
}

func main() {
	if err := run(); err != nil {
		log.Fatal("ListenAndServe:", err)
	}
}
