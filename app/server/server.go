package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/99designs/gqlgen/graphql/playground"
	"github.com/gin-gonic/gin"
	graphql "github.com/graph-gophers/graphql-go"
	"github.com/graph-gophers/graphql-go/relay"
	"go.uber.org/zap"

	"github.com/crmhub/crm-graphql/config"
)

// Routes registers a REST handler group under /api.
type Routes interface {
	Register(r gin.IRouter)
}

// Router exposes the GraphQL endpoint (POST /graphql), the playground
// (GET /graphql), a health check and any REST routes under /api.
func Router(schema *graphql.Schema, log *zap.Logger, routes ...Routes) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), RequestID(), Logger(log))

	r.GET("/healthz", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})
	r.POST("/graphql", gin.WrapH(&relay.Handler{Schema: schema}))
	r.GET("/graphql", gin.WrapH(playground.Handler("CRM GraphQL", "/graphql")))

	api := r.Group("/api")
	for _, rt := range routes {
		rt.Register(api)
	}
	return r
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func Run(ctx context.Context, cfg config.ServerConfig, schema *graphql.Schema, log *zap.Logger, routes ...Routes) error {
	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}
	server := &http.Server{
		Addr:         cfg.Addr,
		Handler:      Router(schema, log, routes...),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Info("listening", zap.String("addr", cfg.Addr), zap.String("graphql", "/graphql"))
		serverErr <- server.ListenAndServe()
	}()

	select {
	case err := <-serverErr:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
	case <-ctx.Done():
		log.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		log.Info("server stopped")
	}
	return nil
}
