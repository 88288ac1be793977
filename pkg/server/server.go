package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"

	"github.com/evergreen-centers/evergreen/pkg/configuration"
	"github.com/evergreen-centers/evergreen/pkg/metrics"
	"github.com/evergreen-centers/evergreen/pkg/middleware"
)

const shutdownTimeout = 10 * time.Second

type Options struct {
	Config *configuration.Configuration
	Pool   *pgxpool.Pool
	Logger *logrus.Logger
}

// HTTPServer is the operational surface of the process. The approval
// workflow itself is exposed through services; this server carries health
// and metrics plus whatever routes outer layers mount on Router.
type HTTPServer struct {
	router *mux.Router
	log    *logrus.Logger
	addr   string
}

func New(opts Options) *HTTPServer {
	router := mux.NewRouter()
	router.Use(middleware.RequestLogger(opts.Logger))
	if opts.Pool != nil {
		router.Use(middleware.WithPool(opts.Pool))
	}

	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	}).Methods(http.MethodGet)

	if opts.Config.Prometheus.Enabled {
		router.Handle(opts.Config.Prometheus.Path, metrics.Handler()).Methods(http.MethodGet)
	}

	return &HTTPServer{
		router: router,
		log:    opts.Logger,
		addr:   opts.Config.SocketAddress(),
	}
}

func (s *HTTPServer) Router() *mux.Router {
	return s.router
}

// Start serves until ctx is canceled, then drains in-flight requests.
func (s *HTTPServer) Start(ctx context.Context) error {
	srv := &http.Server{
		Addr:    s.addr,
		Handler: s.router,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.WithField("addr", s.addr).Info("http server listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
