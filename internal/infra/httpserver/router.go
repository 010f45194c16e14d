package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/sirupsen/logrus"

	appreview "github.com/bryanwahyu/ai-code-reviewer/internal/application/review"
	"github.com/bryanwahyu/ai-code-reviewer/internal/domain/review"
	"github.com/bryanwahyu/ai-code-reviewer/internal/middleware"
)

// maxBodyBytes matches the usual 100kb JSON body limit of web frameworks.
const maxBodyBytes = 100 << 10

const (
	msgCodeRequired     = "Code is required"
	msgGenerationFailed = "Failed to generate code review"
	msgTooLarge         = "Code is too large"
	msgInternal         = "internal server error"
)

// Options configures the router around the review service.
type Options struct {
	AllowedOrigins []string
	HealthCheckers map[string]middleware.HealthChecker
}

type Router struct {
	reviewSvc *appreview.Service
	log       logrus.FieldLogger
}

func NewRouter(reviewSvc *appreview.Service, log logrus.FieldLogger, opts Options) http.Handler {
	r := &Router{reviewSvc: reviewSvc, log: log}
	origins := opts.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	mux := chi.NewRouter()
	mux.Use(chimw.Recoverer)
	mux.Use(middleware.RequestID)
	mux.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", middleware.RequestIDHeader},
		ExposedHeaders: []string{middleware.RequestIDHeader},
		MaxAge:         300,
	}))
	mux.Use(middleware.Logging(log))
	mux.Use(middleware.MetricsMiddleware)

	mux.Get("/", middleware.LivenessHandler)
	mux.Get("/health", middleware.HealthHandler(opts.HealthCheckers))
	mux.Get("/metrics", middleware.MetricsHandler)

	mux.Route("/ai", func(rt chi.Router) {
		rt.Post("/get-review", r.wrap(r.handleGetReview))
	})

	return mux
}

type handlerFunc func(http.ResponseWriter, *http.Request) error

// wrap turns handler errors into plain-text responses. Upstream detail never reaches the client.
func (r *Router) wrap(h handlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		err := h(w, req)
		if err == nil {
			return
		}
		log := r.log.WithField("request_id", middleware.GetRequestID(req.Context()))

		var tooLarge *http.MaxBytesError
		switch {
		case errors.As(err, &tooLarge):
			http.Error(w, msgTooLarge, http.StatusRequestEntityTooLarge)
		case errors.Is(err, review.ErrCodeRequired):
			log.WithError(err).Debug("rejected review request")
			http.Error(w, msgCodeRequired, http.StatusBadRequest)
		case errors.Is(err, review.ErrGenerationFailed):
			http.Error(w, msgGenerationFailed, http.StatusInternalServerError)
		default:
			log.WithError(err).Error("unhandled error")
			http.Error(w, msgInternal, http.StatusInternalServerError)
		}
	}
}

// POST /ai/get-review
// Body: {"code": "<source>"}
// Responds with the review as text.
func (r *Router) handleGetReview(w http.ResponseWriter, req *http.Request) error {
	req.Body = http.MaxBytesReader(w, req.Body, maxBodyBytes)

	var body review.Request
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return err
		}
		return errors.Join(review.ErrCodeRequired, err)
	}
	if body.Code == "" {
		return review.ErrCodeRequired
	}

	middleware.IncrementReviews()
	res, err := r.reviewSvc.Review(req.Context(), body.Code)
	if err != nil {
		middleware.IncrementReviewsFailed()
		return err
	}
	if res.Refused {
		middleware.IncrementReviewsRefused()
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(res.Text))
	return nil
}
