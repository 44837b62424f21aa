// SPDX-License-Identifier: MIT

package openapi_server

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"golang.org/x/time/rate"

	"github.com/natevvv/airway-routing/pkg/metrics"
)

const RequestIDHeader = "X-Request-ID"

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// Logger assigns a request id to every request and logs it once it is served
func Logger(logger *slog.Logger, collector metrics.Collector) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			requestID := r.Header.Get(RequestIDHeader)
			if requestID == "" {
				requestID = uuid.NewString()
			}
			w.Header().Set(RequestIDHeader, requestID)

			recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(recorder, r)

			route := r.URL.Path
			if current := mux.CurrentRoute(r); current != nil {
				if template, err := current.GetPathTemplate(); err == nil {
					route = template
				}
			}
			elapsed := time.Since(start)
			collector.RecordRequest(route, recorder.status, elapsed)
			logger.Info("request",
				"id", requestID,
				"method", r.Method,
				"route", route,
				"status", recorder.status,
				"elapsed", elapsed)
		})
	}
}

// RateLimit rejects requests exceeding the limiter with 429
func RateLimit(limiter *rate.Limiter) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow() {
				status := http.StatusTooManyRequests
				EncodeJSONResponse(ErrorResult{Message: "rate limit exceeded"}, &status, w)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
