package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/google/uuid"

	"github.com/stemd-dev/stemd/internal/config"
	"github.com/stemd-dev/stemd/internal/domain"
	"github.com/stemd-dev/stemd/internal/ports"
	"github.com/stemd-dev/stemd/pkg/api"
)

// Server exposes one ToolInvoker through the form UI and the JSON agent
// API. It holds no per-invocation state; concurrent requests each own
// their request and result.
type Server struct {
	invoker  ports.ToolInvoker
	defaults config.Defaults
}

func New(invoker ports.ToolInvoker, defaults config.Defaults) *Server {
	return &Server{invoker: invoker, defaults: defaults}
}

func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/", s.handleIndex)
	r.Post("/run", s.handleRunForm)
	r.Get("/health", RestHandler(func(r *http.Request) (any, error) { return nil, nil }))

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: []string{"*"},
			AllowedMethods: []string{"GET", "POST"},
			AllowedHeaders: []string{"Content-Type"},
		}))
		r.Get("/defaults", RestHandler(s.getDefaults))
		r.Post("/separate", RestHandler(s.separate))
	})

	return r
}

func (s *Server) getDefaults(r *http.Request) (any, error) {
	return api.Defaults{
		ModelType:       s.defaults.ModelType,
		ConfigPath:      s.defaults.ConfigPath,
		StartCheckPoint: s.defaults.StartCheckPoint,
		InputFolder:     s.defaults.InputFolder,
		StoreDir:        s.defaults.StoreDir,
		DeviceIDs:       s.defaults.DeviceIDs,
	}, nil
}

func (s *Server) separate(r *http.Request) (any, error) {
	wire, err := ParseRequest[api.SeparateRequest](r)
	if err != nil {
		return nil, err
	}
	return s.run(r.Context(), requestFromWire(wire))
}

// run is the single invocation path behind both surfaces: merge
// defaults, invoke, classify.
func (s *Server) run(ctx context.Context, req domain.Request) (api.SeparateResponse, error) {
	req = s.defaults.Apply(req)
	id := uuid.New().String()

	slog.Info("invoking separation tool", "id", id, "model_type", req.ModelType, "store_dir", req.StoreDir)

	res, err := s.invoker.Invoke(ctx, req)
	if err != nil {
		var cfgErr *domain.ConfigError
		if errors.As(err, &cfgErr) {
			return api.SeparateResponse{}, CodedError(http.StatusBadRequest, err)
		}
		slog.Error("separation tool did not start", "id", id, "error", err)
		return api.SeparateResponse{}, CodedError(http.StatusBadGateway, err)
	}

	slog.Info("separation tool finished", "id", id, "status", res.Status, "exit_code", res.ExitCode)

	return api.SeparateResponse{
		ID:       id,
		Status:   string(res.Status),
		ExitCode: res.ExitCode,
		Output:   res.Text(),
	}, nil
}

func requestFromWire(wire api.SeparateRequest) domain.Request {
	return domain.Request{
		ModelType:           wire.ModelType,
		ConfigPath:          wire.ConfigPath,
		StartCheckPoint:     wire.StartCheckPoint,
		InputFile:           wire.InputFile,
		InputFolder:         wire.InputFolder,
		StoreDir:            wire.StoreDir,
		ExtractInstrumental: wire.ExtractInstrumental,
		UseTTA:              wire.UseTTA,
		ForceCPU:            wire.ForceCPU,
		DeviceIDs:           wire.DeviceIDs,
	}
}
