// Package server wires the journal runtime and gRPC lifecycle.
package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"os"
	"path/filepath"
	"strings"

	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	grpc_health_v1 "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/louisbranch/slipjar/internal/journal/identity"
	"github.com/louisbranch/slipjar/internal/journal/objectstore"
	"github.com/louisbranch/slipjar/internal/journal/service"
	journalsqlite "github.com/louisbranch/slipjar/internal/journal/storage/sqlite"
	"github.com/louisbranch/slipjar/internal/platform/config"
)

type serverEnv struct {
	DBPath   string `env:"SLIPJAR_JOURNAL_DB_PATH"`
	BaseURL  string `env:"SLIPJAR_JOURNAL_BASE_URL"`
	FilesURL string `env:"SLIPJAR_JOURNAL_FILES_URL"`
}

func loadServerEnv() serverEnv {
	var cfg serverEnv
	_ = config.ParseEnv(&cfg)
	if strings.TrimSpace(cfg.DBPath) == "" {
		cfg.DBPath = filepath.Join("data", "journal.db")
	}
	if strings.TrimSpace(cfg.BaseURL) == "" {
		cfg.BaseURL = "https://slipjar.local"
	}
	if strings.TrimSpace(cfg.FilesURL) == "" {
		cfg.FilesURL = "https://files.slipjar.local"
	}
	return cfg
}

// Server hosts the journal service and storage lifecycle behind a gRPC
// health endpoint.
type Server struct {
	listener   net.Listener
	grpcServer *grpc.Server
	health     *health.Server
	store      *journalsqlite.Store
	service    *service.Service
	verifier   identity.Verifier
}

// New creates a configured journal server listening on the provided port.
func New(port int) (*Server, error) {
	return NewWithAddr(fmt.Sprintf(":%d", port))
}

// NewWithAddr creates a configured journal server for the provided address.
func NewWithAddr(addr string) (*Server, error) {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("listen on %s: %w", addr, err)
	}

	env := loadServerEnv()
	store, err := openJournalStore(env.DBPath)
	if err != nil {
		_ = listener.Close()
		return nil, err
	}

	// The in-process object store stands in until a storage service client
	// is injected here.
	objects := objectstore.NewMemory(env.FilesURL)
	svc := service.New(store, objects, env.BaseURL)

	verifier, err := loadVerifier()
	if err != nil {
		_ = store.Close()
		_ = listener.Close()
		return nil, err
	}

	grpcServer := grpc.NewServer(grpc.StatsHandler(otelgrpc.NewServerHandler()))
	healthServer := health.NewServer()
	grpc_health_v1.RegisterHealthServer(grpcServer, healthServer)
	healthServer.SetServingStatus("", grpc_health_v1.HealthCheckResponse_SERVING)
	healthServer.SetServingStatus("journal.v1.JournalService", grpc_health_v1.HealthCheckResponse_SERVING)

	return &Server{
		listener:   listener,
		grpcServer: grpcServer,
		health:     healthServer,
		store:      store,
		service:    svc,
		verifier:   verifier,
	}, nil
}

// loadVerifier builds the token verifier when the identity environment is
// present. Deployments without an identity provider run without one and rely
// on in-process callers to establish the subject.
func loadVerifier() (identity.Verifier, error) {
	configured := false
	for _, key := range []string{
		identity.EnvIdentityIssuer,
		identity.EnvIdentityAudience,
		identity.EnvIdentityPublicKey,
	} {
		if strings.TrimSpace(os.Getenv(key)) != "" {
			configured = true
			break
		}
	}
	if !configured {
		return nil, nil
	}
	cfg, err := identity.LoadVerifierConfigFromEnv(nil)
	if err != nil {
		return nil, fmt.Errorf("load identity verifier config: %w", err)
	}
	verifier, err := identity.NewTokenVerifier(cfg)
	if err != nil {
		return nil, fmt.Errorf("build identity verifier: %w", err)
	}
	return verifier, nil
}

// Addr returns the listener address for the server.
func (s *Server) Addr() string {
	if s == nil || s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

// Service exposes the journal operations for in-process callers.
func (s *Server) Service() *service.Service {
	if s == nil {
		return nil
	}
	return s.service
}

// Verifier exposes the identity token verifier, or nil when the identity
// environment is not configured.
func (s *Server) Verifier() identity.Verifier {
	if s == nil {
		return nil
	}
	return s.verifier
}

// Run creates and serves a journal server until context cancellation.
func Run(ctx context.Context, port int) error {
	server, err := New(port)
	if err != nil {
		return err
	}
	return server.Serve(ctx)
}

// Serve starts the gRPC server until context cancellation.
func (s *Server) Serve(ctx context.Context) error {
	if s == nil {
		return errors.New("server is nil")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	defer s.Close()

	log.Printf("journal server listening at %v", s.listener.Addr())
	serveErr := make(chan error, 1)
	go func() {
		serveErr <- s.grpcServer.Serve(s.listener)
	}()

	select {
	case <-ctx.Done():
		if s.health != nil {
			s.health.Shutdown()
		}
		s.grpcServer.GracefulStop()
		err := <-serveErr
		if err == nil || errors.Is(err, grpc.ErrServerStopped) {
			return nil
		}
		return fmt.Errorf("serve gRPC: %w", err)
	case err := <-serveErr:
		if err == nil || errors.Is(err, grpc.ErrServerStopped) {
			return nil
		}
		return fmt.Errorf("serve gRPC: %w", err)
	}
}

// Close releases journal server resources.
func (s *Server) Close() {
	if s == nil {
		return
	}
	if s.health != nil {
		s.health.Shutdown()
	}
	if s.grpcServer != nil {
		s.grpcServer.Stop()
	}
	if s.listener != nil {
		_ = s.listener.Close()
	}
	if s.store != nil {
		if err := s.store.Close(); err != nil {
			log.Printf("close journal store: %v", err)
		}
	}
}

func openJournalStore(path string) (*journalsqlite.Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create storage dir: %w", err)
		}
	}
	store, err := journalsqlite.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open journal sqlite store: %w", err)
	}
	return store, nil
}
