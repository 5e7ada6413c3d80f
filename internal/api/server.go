package api

import (
	"context"
	"net"
	"net/http"
	"time"

	"github.com/Bridgeless-Project/ton-kit/internal/api/ctx"
	"github.com/Bridgeless-Project/ton-kit/internal/api/health"
	srvhttp "github.com/Bridgeless-Project/ton-kit/internal/api/http"
	"github.com/Bridgeless-Project/ton-kit/internal/api/requests"
	"github.com/Bridgeless-Project/ton-kit/internal/db"
	"github.com/go-chi/chi/v5"
	"github.com/pkg/errors"
	"gitlab.com/distributed_lab/ape"
	"gitlab.com/distributed_lab/logan/v3"
)

type Server struct {
	http net.Listener

	logger       *logan.Entry
	ctxExtenders []func(context.Context) context.Context
}

// NewServer creates a new HTTP server. q may be nil when snapshots are
// not persisted.
func NewServer(
	http net.Listener,
	q db.ConfigParamsQ,
	source ctx.ConfigSource,
	checker *health.Checker,
	networkGlobalID int32,
	logger *logan.Entry,
) *Server {
	return &Server{
		http:   http,
		logger: logger,

		ctxExtenders: []func(context.Context) context.Context{
			ctx.LoggerProvider(logger),
			ctx.DBProvider(q),
			ctx.ConfigProvider(source),
			ctx.HealthCheckerProvider(checker),
			ctx.NetworkGlobalIDProvider(networkGlobalID),
		},
	}
}

func (s *Server) RunHTTP(ctxt context.Context) error {
	srv := &http.Server{Handler: s.Router(), ReadHeaderTimeout: 10 * time.Second}

	// graceful shutdown
	go func() {
		<-ctxt.Done()
		shutdownDeadline, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownDeadline); err != nil {
			s.logger.WithError(err).Error("failed to shutdown http server")
		}
		s.logger.Info("http serving stopped: context canceled")
	}()

	s.logger.Info("http serving started")
	if err := srv.Serve(s.http); !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}

func (s *Server) Router() http.Handler {
	router := chi.NewRouter()
	router.Use(
		ape.LoganMiddleware(s.logger),
		ape.RecoverMiddleware(s.logger),
		ape.CtxMiddleware(s.ctxExtenders...),
	)

	router.Get("/health", srvhttp.Health)
	router.Route("/v1", func(r chi.Router) {
		r.Get("/config", srvhttp.GetConfig)
		r.Get("/config/{"+requests.ParamParam+"}", srvhttp.GetParam)
		r.Post("/wallet/{"+requests.ParamGeneration+"}/actions/decode", srvhttp.DecodeActions)
		r.Post("/wallet/v5r1/wallet-id/decode", srvhttp.DecodeWalletID)
	})

	return router
}
