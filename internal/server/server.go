package server

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/utils"

	"github.com/Zuo-Peng/tkb/internal/analysis"
	"github.com/Zuo-Peng/tkb/internal/config"
	"github.com/Zuo-Peng/tkb/internal/input"
	"github.com/Zuo-Peng/tkb/internal/parse"
)

// Server answers analysis requests. Handlers share no mutable state, so
// requests run in parallel without locking.
type Server struct {
	app       *fiber.App
	extractor *parse.Extractor
	topRooms  int
	logger    *slog.Logger
}

type analyzeRequest struct {
	HTML string `json:"html"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// New builds the service from cfg. A nil logger discards request logs.
func New(cfg *config.Config, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	s := &Server{
		extractor: parse.NewExtractor(parse.OptionsFromConfig(cfg), logger),
		topRooms:  cfg.TopRooms,
		logger:    logger,
	}

	s.app = fiber.New(fiber.Config{
		DisableStartupMessage: true,
		BodyLimit:             cfg.MaxBodyBytes,
		ErrorHandler:          s.handleError,
	})
	s.app.Use(compress.New(compress.Config{Level: compress.LevelDefault}))
	s.app.Use(s.logRequests)

	s.app.Get("/health", func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})
	s.app.Post("/api/analyze", s.handleAnalyze)
	return s
}

// App exposes the underlying fiber app, mainly for tests.
func (s *Server) App() *fiber.App {
	return s.app
}

func (s *Server) Listen(addr string) error {
	s.logger.Info("listening", "address", addr)
	return s.app.Listen(addr)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.app.ShutdownWithContext(ctx)
}

func (s *Server) handleAnalyze(c *fiber.Ctx) error {
	var src string
	if strings.HasPrefix(c.Get(fiber.HeaderContentType), fiber.MIMEApplicationJSON) {
		var req analyzeRequest
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid json body")
		}
		src = req.HTML
	} else {
		src = string(c.Body())
	}

	if strings.TrimSpace(src) == "" {
		return fiber.NewError(fiber.StatusBadRequest, input.ErrEmpty.Error())
	}

	res := analysis.Run(s.extractor, src, s.topRooms)
	s.logger.Debug("analyzed timetable", "bytes", len(src), "summary", res.Summary())
	return c.JSON(res)
}

func (s *Server) handleError(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
	}
	if code >= fiber.StatusInternalServerError {
		s.logger.Error("request failed", "path", c.Path(), "error", err)
	}
	return c.Status(code).JSON(errorResponse{Error: err.Error()})
}

// logRequests tags each request with an X-Request-ID (kept when the client
// sends one) and logs it with its status and duration.
func (s *Server) logRequests(c *fiber.Ctx) error {
	id := c.Get(fiber.HeaderXRequestID)
	if id == "" {
		id = utils.UUID()
	}
	c.Set(fiber.HeaderXRequestID, id)

	start := time.Now()
	err := c.Next()
	status := c.Response().StatusCode()
	if err != nil {
		// The error handler runs after this middleware returns.
		status = fiber.StatusInternalServerError
		var fe *fiber.Error
		if errors.As(err, &fe) {
			status = fe.Code
		}
	}
	s.logger.Info("request",
		"id", id,
		"method", c.Method(),
		"path", c.OriginalURL(),
		"status", status,
		"duration", time.Since(start))
	return err
}
