// ABOUTME: HTTP API for crumb built on chi with CORS.
// ABOUTME: Exposes the catalog, level curve, stats, meal logging, and the achievement board.
package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/harperreed/crumb/internal/engine"
	"github.com/harperreed/crumb/internal/models"
	"go.uber.org/zap"
)

// Options configures the router.
type Options struct {
	// AllowedOrigins enables CORS for these origins when non-empty.
	AllowedOrigins []string
	// MealXP returns the default XP for a meal type.
	MealXP func(models.MealType) int64
	Logger *zap.Logger
}

// NewRouter returns the API handler.
func NewRouter(eng *engine.Engine, opts Options) http.Handler {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	h := &handler{eng: eng, mealXP: opts.MealXP, log: log}

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(requestLogger(log))
	r.Use(chimw.Recoverer)

	if len(opts.AllowedOrigins) > 0 {
		r.Use(CORS(opts.AllowedOrigins))
	}

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Get("/achievements", h.catalog)
	r.Get("/levels/{xp}", h.level)

	r.Route("/users/{userID}", func(r chi.Router) {
		r.Get("/stats", h.stats)
		r.Post("/meals", h.logMeal)
		r.Get("/achievements", h.board)
	})

	return r
}

// CORS returns the cross-origin middleware.
func CORS(allowedOrigins []string) func(http.Handler) http.Handler {
	return cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type"},
		ExposedHeaders: []string{"X-Request-Id"},
		MaxAge:         300,
	})
}

func requestLogger(log *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)
			log.Debug("request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Duration("took", time.Since(start)),
				zap.String("request_id", chimw.GetReqID(r.Context())),
			)
		})
	}
}
