package devtools

import (
	"context"
	"net/http"

	ut "github.com/go-playground/universal-translator"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"

	"github.com/trezcool/masomo-client/core"
	"github.com/trezcool/masomo-client/core/store"
)

type (
	Options struct {
		Address        string
		Debug          bool
		DisableReqLogs bool
		Store          *store.Store
		Fetcher        *store.Fetcher
		Logger         core.Logger
		Translator     ut.Translator
	}

	// Server exposes the client state over HTTP for inspection.
	Server interface {
		http.Handler
		Start() error
		Stop(context.Context) error
	}

	server struct {
		opts *Options
		app  *echo.Echo
	}
)

var _ Server = (*server)(nil)

// NewServer returns the devtools server. signalShutdown is called when a handler fails with a core shutdown error.
func NewServer(opts *Options, signalShutdown func()) Server {
	if opts.Logger == nil {
		opts.Logger = core.NopLogger{}
	}
	if opts.Translator == nil {
		opts.Translator = core.NewTranslator()
	}
	if signalShutdown == nil {
		signalShutdown = func() {}
	}
	s := &server{
		opts: opts,
		app:  echo.New(),
	}
	s.setup(signalShutdown)
	return s
}

func (s *server) setup(signalShutdown func()) {
	s.app.HideBanner = true
	s.app.Pre(middleware.RemoveTrailingSlash())
	if !s.opts.DisableReqLogs {
		s.app.Use(middleware.Logger())
	}
	// do not recover in debug mode
	if !s.opts.Debug {
		s.app.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{LogLevel: log.ERROR}))
	}

	s.app.HTTPErrorHandler = newHTTPErrorHandler(s.opts.Logger, s.opts.Translator, signalShutdown)
	s.app.Debug = s.opts.Debug

	s.app.GET("/", home)

	v1 := s.app.Group("/v1")
	registerStateAPI(v1, s.opts.Store, s.opts.Fetcher)
}

func (s *server) Start() error {
	return s.app.Start(s.opts.Address)
}

func (s *server) Stop(ctx context.Context) error {
	return s.app.Shutdown(ctx)
}

func (s *server) ServeHTTP(w http.ResponseWriter, r *http.Request) { // for tests
	s.app.ServeHTTP(w, r)
}

func home(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "Masomo devtools")
}
