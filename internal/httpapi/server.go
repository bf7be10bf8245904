package httpapi

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"penguind/internal/manager"
	"penguind/internal/store"
	"penguind/pkg/types"
)

// homeMessage is returned by the GET / health check.
const homeMessage = "penguin inference API up"

// Service defines the methods required by the HTTP API layer.
type Service interface {
	Registry() types.Registry
	ActiveModel() (string, bool)
	SetActive(ctx context.Context, name string) error
	Predict(ctx context.Context, rec types.FeatureRecord) (types.PredictResponse, error)
	Ready() bool
}

func NewMux(svc Service) http.Handler {
	r := chi.NewRouter()
	// Basic middlewares: request id, real ip, recoverer
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	// Compression for JSON endpoints
	r.Use(middleware.Compress(5))
	if corsEnabled {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: corsAllowedOrigins,
			AllowedMethods: []string{http.MethodGet, http.MethodPost},
			AllowedHeaders: []string{"Content-Type", "X-Log-Level"},
		}))
	}
	r.Use(MetricsMiddleware)
	// Security headers
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Content-Type-Options", "nosniff")
			next.ServeHTTP(w, r)
		})
	})

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, types.HomeResponse{
			Message:     homeMessage,
			ActiveModel: activeModelField(svc),
		})
	})

	r.Get("/models", func(w http.ResponseWriter, r *http.Request) {
		reg := svc.Registry()
		writeJSON(w, http.StatusOK, types.ModelsResponse{
			DefaultModel:    reg.DefaultModel,
			AvailableModels: reg.AvailableModels,
			ActiveModel:     activeModelField(svc),
		})
	})

	r.Post("/select_model", func(w http.ResponseWriter, r *http.Request) {
		var req types.SelectModelRequest
		if !decodeJSONBody(w, r, &req) {
			return
		}
		if strings.TrimSpace(req.ModelName) == "" {
			writeJSONError(w, http.StatusBadRequest, "model_name is required")
			return
		}
		lvl := requestLogLevel(r)
		start := time.Now()
		joinedCtx, cancel := joinContexts(serverBaseCtx, r.Context())
		defer cancel()
		if err := svc.SetActive(joinedCtx, req.ModelName); err != nil {
			if r.Context().Err() != nil || serverBaseCtx.Err() != nil {
				return
			}
			status := http.StatusInternalServerError
			outcome := "failed"
			switch {
			case manager.IsModelNotAvailable(err), store.IsNotFound(err):
				status = http.StatusNotFound
				outcome = "rejected"
			default:
				if he, ok := err.(HTTPError); ok {
					status = he.StatusCode()
				}
			}
			CountModelSwitch(outcome)
			writeJSONError(w, status, err.Error())
			logRequest(r, lvl, "select_model", status, start, err)
			return
		}
		CountModelSwitch("ok")
		writeJSON(w, http.StatusOK, types.SelectModelResponse{
			Message:     "active model updated",
			ActiveModel: req.ModelName,
		})
		logRequest(r, lvl, "select_model", http.StatusOK, start, nil)
	})

	r.Post("/predict", func(w http.ResponseWriter, r *http.Request) {
		var rec types.FeatureRecord
		if !decodeJSONBody(w, r, &rec) {
			return
		}
		if strings.TrimSpace(rec.Island) == "" {
			writeJSONError(w, http.StatusBadRequest, "island is required")
			return
		}
		lvl := requestLogLevel(r)
		start := time.Now()
		joinedCtx, cancel := joinContexts(serverBaseCtx, r.Context())
		defer cancel()
		resp, err := svc.Predict(joinedCtx, rec)
		if err != nil {
			if r.Context().Err() != nil || serverBaseCtx.Err() != nil {
				return
			}
			// A missing active model is a server-side condition, not a
			// client error; manager.IsNotReady errors fall through to 500.
			status := http.StatusInternalServerError
			if he, ok := err.(HTTPError); ok {
				status = he.StatusCode()
			}
			writeJSONError(w, status, err.Error())
			logRequest(r, lvl, "predict", status, start, err)
			return
		}
		CountPrediction(resp.ModelUsed)
		writeJSON(w, http.StatusOK, resp)
		logRequest(r, lvl, "predict", http.StatusOK, start, nil)
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		if svc.Ready() {
			w.WriteHeader(http.StatusOK)
			w.Write([]byte("ready"))
			return
		}
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte("loading"))
	})

	// Prometheus metrics endpoint
	r.Get("/metrics", promhttp.Handler().ServeHTTP)

	MountSwagger(r)

	return r
}

// activeModelField renders the nullable active_model response field.
func activeModelField(svc Service) *string {
	if name, ok := svc.ActiveModel(); ok {
		return &name
	}
	return nil
}

// decodeJSONBody enforces the JSON content type and body-size limit, then
// decodes into dst. It writes the error response itself and reports whether
// the handler should continue.
func decodeJSONBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	ct := r.Header.Get("Content-Type")
	if ct == "" || !strings.HasPrefix(strings.ToLower(ct), "application/json") {
		writeJSONError(w, http.StatusUnsupportedMediaType, "Content-Type must be application/json")
		return false
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		// Oversized bodies surface here too; keep the response uniform.
		writeJSONError(w, http.StatusBadRequest, "invalid JSON body")
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("encode response: %v", err)
	}
}

// logRequest emits one end-of-request line at info level or above.
func logRequest(r *http.Request, lvl LogLevel, op string, status int, start time.Time, err error) {
	if lvl < LevelInfo {
		return
	}
	if zlog != nil {
		z := zlog.Info().Str("op", op).Int("status", status).Dur("dur", time.Since(start))
		if rid := middleware.GetReqID(r.Context()); rid != "" {
			z = z.Str("request_id", rid)
		}
		if err != nil {
			z = z.Err(err)
		}
		z.Msg(op + " end")
		return
	}
	if err != nil {
		log.Printf("%s end status=%d dur=%s err=%v", op, status, time.Since(start), err)
		return
	}
	log.Printf("%s end status=%d dur=%s", op, status, time.Since(start))
}
