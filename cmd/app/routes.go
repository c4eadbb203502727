package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"refdataservice/internal/api"
	"refdataservice/internal/api/middleware"
	"refdataservice/internal/service"
)

func (app *App) initHTTP(svc service.RefDataServiceInterface) {
	r := chi.NewRouter()
	r.Use(middleware.RequestIDMiddleware)
	r.Use(middleware.RequestLoggingMiddleware(app.logger))
	r.Use(chimiddleware.Recoverer)

	r.Post("/relay", api.HandleRelay(svc))
	r.Post("/relay/async", api.HandleRelayAsync(svc))
	r.Get("/refs", api.HandleListRefs(svc))
	r.Get("/refs/{symbol}", api.HandleGetRateRecord(svc))
	r.Get("/reference-data", api.HandleGetReferenceData(svc))
	r.Get("/healthz", api.HandleHealthz())
	r.Get("/readyz", api.HandleReadyz(app.readinessChecks()...))

	if app.cfg.Server.ServeSwagger {
		r.Get("/swagger/*", api.SwaggerUIHandler())
		r.Get("/openapi.json", api.OpenAPISpecHandler())
	}

	if app.asynqmon != nil {
		r.Handle(app.asynqmon.RootPath()+"/*", app.asynqmon)
	}

	app.httpServer = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Server.Port),
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
}

func (app *App) readinessChecks() []api.ReadinessCheck {
	checks := []api.ReadinessCheck{{
		Name: "storage",
		Ping: func(ctx context.Context) error {
			_, _, err := app.slot.Load(ctx)
			return err
		},
	}}
	if app.rdbAsynq != nil {
		checks = append(checks, api.ReadinessCheck{
			Name: "queue",
			Ping: func(ctx context.Context) error { return app.rdbAsynq.Ping(ctx).Err() },
		})
	}
	return checks
}
