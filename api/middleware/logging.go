package middleware

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/angelmondragon/storefront-backend/pkg/logger"
)

// requestTrace collects the actor identifiers inner middleware attach to the
// request so the access log can report them after the handler returns.
type requestTrace struct {
	mu     sync.Mutex
	values map[contextKey]string
}

func (t *requestTrace) set(key contextKey, value string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.values[key] = value
}

func (t *requestTrace) fields() map[string]any {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make(map[string]any, len(t.values))
	for key, value := range t.values {
		if value != "" {
			out[string(key)] = value
		}
	}
	return out
}

func traceFromContext(ctx context.Context) *requestTrace {
	trace, _ := ctx.Value(ctxTrace).(*requestTrace)
	return trace
}

// Logging writes one access log line per request with the route pattern,
// status, response size, latency and whichever of cart session, tenant, user
// and role were resolved downstream. Server errors log at warn.
func Logging(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if logg == nil {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			trace := &requestTrace{values: map[contextKey]string{}}
			ctx := context.WithValue(r.Context(), ctxTrace, trace)
			ctx = logg.WithFields(ctx, map[string]any{
				"method": r.Method,
				"path":   r.URL.Path,
			})

			rec := &statusRecorder{ResponseWriter: w}
			start := time.Now()
			logg.Debug(ctx, "request.start")

			next.ServeHTTP(rec, r.WithContext(ctx))

			if rec.status == 0 {
				rec.status = http.StatusOK
			}
			fields := trace.fields()
			fields["status"] = rec.status
			fields["bytes"] = rec.bytes
			fields["duration_ms"] = time.Since(start).Milliseconds()
			if rctx := chi.RouteContext(r.Context()); rctx != nil {
				if pattern := rctx.RoutePattern(); pattern != "" {
					fields["route"] = pattern
				}
			}
			ctx = logg.WithFields(ctx, fields)
			if rec.status >= http.StatusInternalServerError {
				logg.Warn(ctx, "request.complete")
				return
			}
			logg.Info(ctx, "request.complete")
		})
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (r *statusRecorder) WriteHeader(code int) {
	if r.status == 0 {
		r.status = code
	}
	r.ResponseWriter.WriteHeader(code)
}

func (r *statusRecorder) Write(b []byte) (int, error) {
	if r.status == 0 {
		r.status = http.StatusOK
	}
	n, err := r.ResponseWriter.Write(b)
	r.bytes += n
	return n, err
}
