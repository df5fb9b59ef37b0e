package middlewares

import (
	"context"
	"github.com/MarselErlan/supabase-02-api/models"
	"github.com/MarselErlan/supabase-02-api/utils"
	"github.com/go-chi/chi"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"
	"net/http"
	"time"
)

type contextString string

const requestIDContext contextString = "__requestIDContext"

// RequestIDHeader is read from incoming requests and set on every response
const RequestIDHeader = "X-Request-ID"

//corsOptions setting up routes for cors
func corsOptions() *cors.Cors {
	return cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-CSRF-Token", RequestIDHeader, "Cache-Control", "Pragma"},
		ExposedHeaders:   []string{RequestIDHeader, utils.ErrorIDHeader},
		AllowCredentials: true,
		MaxAge:           300, // Maximum value not ignored by any of major browsers
	})
}

//CommonMiddlewares middleware common for all routes
func CommonMiddlewares() chi.Middlewares {
	return chi.Chain(
		func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Add("Content-Type", "application/json")
				next.ServeHTTP(w, r)
			})
		},
		corsOptions().Handler,
		RequestLogger,
		Recoverer,
	)
}

// Recoverer turns a panicking handler into a 500 response. When the handler
// already started its response the panic is only logged.
func Recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := newStatusRecorder(w)
		defer func() {
			if err := recover(); err != nil {
				if err == http.ErrAbortHandler {
					panic(err)
				}
				logrus.WithField("requestId", RequestID(r)).Errorf("Request Panic err: %v", err)
				if rec.wroteHeader {
					return
				}
				utils.RespondError(rec, http.StatusInternalServerError,
					errors.Errorf("panic: %v", err), "There was an internal server error")
			}
		}()
		next.ServeHTTP(rec, r)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status      int
	wroteHeader bool
}

// newStatusRecorder reuses w when it already records the status
func newStatusRecorder(w http.ResponseWriter) *statusRecorder {
	if rec, ok := w.(*statusRecorder); ok {
		return rec
	}
	return &statusRecorder{ResponseWriter: w, status: http.StatusOK}
}

func (s *statusRecorder) WriteHeader(code int) {
	if s.wroteHeader {
		return
	}
	s.status = code
	s.wroteHeader = true
	s.ResponseWriter.WriteHeader(code)
}

func (s *statusRecorder) Write(b []byte) (int, error) {
	if !s.wroteHeader {
		s.WriteHeader(http.StatusOK)
	}
	return s.ResponseWriter.Write(b)
}

// RequestLogger tags the request with an id and logs it once it is served
func RequestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.New().String()
		}
		w.Header().Set(RequestIDHeader, requestID)

		start := time.Now()
		rec := newStatusRecorder(w)
		ctx := context.WithValue(r.Context(), requestIDContext, requestID)
		next.ServeHTTP(rec, r.WithContext(ctx))

		logrus.WithFields(logrus.Fields{
			"requestId": requestID,
			"method":    r.Method,
			"path":      r.URL.Path,
			"status":    rec.status,
			"duration":  time.Since(start).String(),
		}).Info("request served")
	})
}

// RequestID returns the id RequestLogger assigned to r
func RequestID(r *http.Request) string {
	if id, ok := r.Context().Value(requestIDContext).(string); ok {
		return id
	}
	return ""
}

// NotFound answers unknown routes in the same error shape as the handlers
func NotFound(w http.ResponseWriter, r *http.Request) {
	utils.RespondJSON(w, http.StatusNotFound, models.ErrorResponse{Detail: "Not Found"})
}

// MethodNotAllowed answers known routes called with an unsupported method
func MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	utils.RespondJSON(w, http.StatusMethodNotAllowed, models.ErrorResponse{Detail: "Method Not Allowed"})
}
