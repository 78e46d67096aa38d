package httpapi

import (
	"context"
	"errors"
	"net"
	"net/http"

	"github.com/finchlabs/finchbot/internal/config"
	"github.com/finchlabs/finchbot/internal/service/agent"
	"github.com/finchlabs/finchbot/pkg/log"
)

// Server exposes the agent over HTTP and implements srv.Service.
type Server struct {
	srv *http.Server
}

func NewServer(cfg *config.AppConfig, ag *agent.Agent) *Server {
	return &Server{
		srv: &http.Server{
			Addr:    cfg.ListenAddr,
			Handler: newRouter(ag),
		},
	}
}

func (s *Server) Start(ctx context.Context) error {
	log.FromCtx(ctx).Info().Str("addr", s.srv.Addr).Msg("starting http server")

	// Request contexts inherit the signal context so handlers keep the logger.
	s.srv.BaseContext = func(net.Listener) context.Context { return ctx }

	if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}
