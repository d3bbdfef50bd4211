// Package api serves the timetable queries over HTTP with fiber.
package api

import (
	stderrors "errors"
	"sync/atomic"

	"github.com/gofiber/fiber/v2"

	"github.com/julianstephens/whosfree/internal/constants"
	"github.com/julianstephens/whosfree/internal/errors"
	"github.com/julianstephens/whosfree/internal/logger"
	"github.com/julianstephens/whosfree/internal/storage"
	"github.com/julianstephens/whosfree/internal/timetable"
)

// Server answers queries against the dataset held in a timetable.Holder.
type Server struct {
	app    *fiber.App
	store  storage.Provider
	holder *timetable.Holder
	engine atomic.Pointer[timetable.Engine]
}

// New builds a server and its routes. Settings are read from the store once
// here and again on every ReloadSettings call.
func New(store storage.Provider, holder *timetable.Holder) (*Server, error) {
	s := &Server{
		store:  store,
		holder: holder,
	}
	if err := s.ReloadSettings(); err != nil {
		return nil, err
	}

	s.app = fiber.New(fiber.Config{
		AppName:               constants.AppName + " " + constants.Version,
		DisableStartupMessage: true,
		ErrorHandler:          errorHandler,
	})
	s.setupRoutes()
	return s, nil
}

// ReloadSettings rebuilds the query engine from the stored settings.
func (s *Server) ReloadSettings() error {
	settings, err := s.store.GetSettings()
	if err != nil {
		return err
	}
	engine, err := timetable.New(settings)
	if err != nil {
		return err
	}
	s.engine.Store(engine)
	return nil
}

// App exposes the fiber app, mainly for tests.
func (s *Server) App() *fiber.App {
	return s.app
}

// Listen serves HTTP on addr until Shutdown is called.
func (s *Server) Listen(addr string) error {
	logger.Info("HTTP API listening", "addr", addr)
	return s.app.Listen(addr)
}

// Shutdown stops the server, waiting for in-flight requests.
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}

func (s *Server) setupRoutes() {
	s.app.Get("/healthz", s.health)

	api := s.app.Group("/api")
	api.Get("/people", s.people)
	api.Get("/free", s.free)
	api.Get("/lessons", s.lessons)
	api.Get("/day/:person", s.day)
	api.Get("/search", s.search)
	api.Get("/catchphrases", s.catchphrases)
	api.Get("/catchphrases/random", s.randomCatchphrase)
	api.Post("/catchphrases", s.addCatchphrase)
	api.Get("/settings", s.settings)
}

// errorHandler turns input errors into 400s and everything unexpected into
// 500s, always with the same JSON envelope.
func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal server error"

	var fe *fiber.Error
	switch {
	case errors.IsInputError(err):
		code = fiber.StatusBadRequest
		message = err.Error()
	case stderrors.As(err, &fe):
		code = fe.Code
		message = fe.Message
	default:
		logger.Error("Request failed", "method", c.Method(), "path", c.Path(), "error", err)
	}

	return c.Status(code).JSON(fiber.Map{
		"success": false,
		"error":   message,
	})
}
