// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package api exposes the ranking engine over HTTP with Fiber. Uploads are
// parsed, ranked and stored in the in-memory batch store under the caller's
// session; read endpoints return rankings as JSON or an Excel report.
package api

import (
	"context"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/encryptcookie"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/pdiddy/talentrankr/internal/engine"
	"github.com/pdiddy/talentrankr/internal/logger"
	"github.com/pdiddy/talentrankr/internal/store"
	"github.com/pdiddy/talentrankr/pkg/types"
)

const (
	serviceName   = "talentrankr"
	sessionCookie = "talentrankr_session"
	localSession  = "session"

	// multipartSlack is added to the upload limit to allow for form framing.
	multipartSlack = 1 << 20
)

// Server wires the engine and batch store to HTTP routes.
type Server struct {
	app    *fiber.App
	engine *engine.Engine
	store  *store.Store
	cfg    types.ServerConfig
	log    *zap.Logger
}

// Options holds optional Server settings.
type Options struct {
	// CookieKey, when set, encrypts the session cookie. It must be a base64
	// encoded 32-byte key.
	CookieKey string

	Logger *zap.Logger
}

// New builds the Fiber app with middleware and routes registered.
func New(eng *engine.Engine, st *store.Store, cfg types.ServerConfig, opts Options) *Server {
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = types.DefaultConfig().Server.MaxUploadBytes
	}
	if cfg.PreviewRows <= 0 {
		cfg.PreviewRows = types.DefaultConfig().Server.PreviewRows
	}

	s := &Server{
		engine: eng,
		store:  st,
		cfg:    cfg,
		log:    logger.OrNop(opts.Logger),
	}

	s.app = fiber.New(fiber.Config{
		AppName:               serviceName,
		BodyLimit:             int(cfg.MaxUploadBytes) + multipartSlack,
		ReadTimeout:           30 * time.Second,
		WriteTimeout:          30 * time.Second,
		ErrorHandler:          s.errorHandler,
		DisableStartupMessage: true,
	})

	s.app.Use(recover.New())
	s.app.Use(s.requestLogger)
	s.app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept",
	}))
	if opts.CookieKey != "" {
		s.app.Use(encryptcookie.New(encryptcookie.Config{Key: opts.CookieKey}))
	}
	s.app.Use(s.session)

	s.routes()
	return s
}

func (s *Server) routes() {
	s.app.Get("/", s.handleIndex)
	s.app.Get("/health", s.handleHealth)

	api := s.app.Group("/api")
	api.Post("/upload", s.handleUpload)
	api.Get("/rank", s.handleCurrentRanking)
	api.Get("/rank/:id", s.handleRanking)
	api.Get("/rank/:id/report.xlsx", s.handleReport)
	api.Get("/candidate/:rank", s.handleCandidate)
}

// App returns the underlying Fiber app.
func (s *Server) App() *fiber.App {
	return s.app
}

// Listen serves HTTP on addr until Shutdown is called.
func (s *Server) Listen(addr string) error {
	s.log.Info("server starting", zap.String("addr", addr))
	return s.app.Listen(addr)
}

// Shutdown stops accepting connections and waits for in-flight requests
// until ctx expires.
func (s *Server) Shutdown(ctx context.Context) error {
	s.log.Info("server shutting down")
	return s.app.ShutdownWithContext(ctx)
}

// session assigns every client a session ID held in a cookie. Rankings for
// GET /api/rank and /api/candidate are resolved through it.
func (s *Server) session(c *fiber.Ctx) error {
	id := c.Cookies(sessionCookie)
	if _, err := uuid.Parse(id); err != nil {
		id = uuid.NewString()
		c.Cookie(&fiber.Cookie{
			Name:     sessionCookie,
			Value:    id,
			Path:     "/",
			HTTPOnly: true,
			SameSite: fiber.CookieSameSiteLaxMode,
		})
	}
	c.Locals(localSession, id)
	return c.Next()
}

func sessionID(c *fiber.Ctx) string {
	id, _ := c.Locals(localSession).(string)
	return id
}

func (s *Server) requestLogger(c *fiber.Ctx) error {
	start := time.Now()
	err := c.Next()

	status := c.Response().StatusCode()
	if err != nil {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			status = fe.Code
		} else {
			status = fiber.StatusInternalServerError
		}
	}
	s.log.Info("request",
		zap.String("method", c.Method()),
		zap.String("path", c.Path()),
		zap.Int("status", status),
		zap.Duration("latency", time.Since(start)),
	)
	return err
}

func (s *Server) errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
	}
	if code >= fiber.StatusInternalServerError {
		s.log.Error("request failed", zap.String("path", c.Path()), zap.Error(err))
	}
	return c.Status(code).JSON(fiber.Map{
		"success": false,
		"error":   err.Error(),
		"code":    code,
	})
}
