package app

import (
	"context"
	"fmt"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/rs/zerolog/log"

	"github.com/thechaoticengineer/CloudScribe/internal/auth"
	"github.com/thechaoticengineer/CloudScribe/internal/config"
)

// App wires the notes API: Postgres pool, boot migrations, token verifier
// and the HTTP router.
type App struct {
	cfg    config.Config
	db     *pgxpool.Pool
	router *gin.Engine
}

func New(ctx context.Context, cfg config.Config) (*App, error) {
	a := &App{cfg: cfg}

	db, err := newPostgres(ctx, cfg.PG.DSN)
	if err != nil {
		return nil, err
	}
	a.db = db

	if err := applyMigrations(cfg.Migrations, cfg.PG.DSN); err != nil {
		a.db.Close()
		return nil, err
	}

	verifier, err := auth.NewOIDCVerifier(ctx, cfg.OIDC.Issuer)
	if err != nil {
		a.db.Close()
		return nil, fmt.Errorf("oidc verifier: %w", err)
	}

	a.router = newRouter(cfg, a.db, verifier)
	return a, nil
}

func (a *App) Router() *gin.Engine {
	return a.router
}

func (a *App) Close(ctx context.Context) error {
	_ = ctx
	if a.db != nil {
		a.db.Close()
	}
	return nil
}

func newPostgres(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("pg parse config: %w", err)
	}
	poolCfg.MaxConns = 10
	poolCfg.MinConns = 2
	poolCfg.MaxConnIdleTime = 5 * time.Minute
	poolCfg.MaxConnLifetime = 30 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("pg connect: %w", err)
	}
	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pg ping: %w", err)
	}
	return pool, nil
}

// applyMigrations runs the boot migration step and decides whether a failure
// stops startup, per the HaltOnFailure knob.
func applyMigrations(cfg config.MigrationsConfig, dsn string) error {
	if err := runMigrations(cfg, dsn); err != nil {
		if cfg.HaltOnFailure {
			return err
		}
		log.Warn().Err(err).Msg("migrations failed, continuing per configuration")
	}
	return nil
}

// runMigrations applies pending goose migrations once at boot.
func runMigrations(cfg config.MigrationsConfig, dsn string) error {
	if !cfg.Enabled {
		log.Info().Msg("migrations disabled via configuration")
		return nil
	}

	db, err := goose.OpenDBWithDriver("pgx", dsn)
	if err != nil {
		return fmt.Errorf("goose open db: %w", err)
	}
	defer db.Close()

	if err := goose.Up(db, cfg.Dir); err != nil {
		return fmt.Errorf("goose up: %w", err)
	}
	log.Info().Str("dir", cfg.Dir).Msg("migrations applied")
	return nil
}

func newRouter(cfg config.Config, db *pgxpool.Pool, verifier auth.Verifier) *gin.Engine {
	if cfg.App.Env != "dev" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(requestLogger(), gin.Recovery())

	r.Use(cors.New(cors.Config{
		AllowOrigins:  []string{"*"},
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "HEAD"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders: []string{"Content-Length", "Content-Type", "Location"},
		MaxAge:        12 * time.Hour,
	}))

	Setup(r, cfg, db, verifier)
	return r
}

// requestLogger logs each request through zerolog instead of gin's default
// writer.
func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Info().
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("elapsed", time.Since(start)).
			Msg("request")
	}
}
