package httpapi

import (
	"errors"
	"net/http"
	"runtime/debug"

	idgen "github.com/L3Technosmith/pkmnFoundations/internal/platform/id"
	"github.com/L3Technosmith/pkmnFoundations/internal/platform/logging"
)

type middleware func(http.Handler) http.Handler

// chain wraps h so the first middleware sees the request first.
func chain(h http.Handler, mws ...middleware) http.Handler {
	for i := len(mws) - 1; i >= 0; i-- {
		h = mws[i](h)
	}
	return h
}

var routeGroups = []func(*http.ServeMux, *Handler){
	registerSystemRoutes,
	registerTradeRoutes,
	registerFacilityRoutes,
	registerTerminalRoutes,
	registerProfileRoutes,
	registerPokedexRoutes,
}

// NewRouter mounts every route group behind tracing, request ids, access logs, CORS and panic recovery.
func NewRouter(handler *Handler, ids idgen.Generator, logger *logging.Logger, corsAllowedOrigins []string) http.Handler {
	if logger == nil {
		logger = logging.Default()
	}
	if ids == nil {
		ids = idgen.NewKSUIDGenerator()
	}

	mux := http.NewServeMux()
	for _, register := range routeGroups {
		register(mux, handler)
	}

	return chain(mux,
		RequestTracing,
		func(next http.Handler) http.Handler { return RequestID(ids, next) },
		func(next http.Handler) http.Handler { return RequestLogging(logger, next) },
		func(next http.Handler) http.Handler { return CORS(corsAllowedOrigins, next) },
		func(next http.Handler) http.Handler { return recoverPanic(logger, next) },
	)
}

// recoverPanic turns a handler panic into a 500. http.ErrAbortHandler is re-raised so the server drops the connection.
func recoverPanic(logger *logging.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if err, ok := rec.(error); ok && errors.Is(err, http.ErrAbortHandler) {
				panic(rec)
			}
			logger.ErrorContext(r.Context(), "handler panicked",
				"panic", rec,
				"http_route", spanRoute(r.URL.Path),
				"stack", string(debug.Stack()),
			)
			writeInternalError(r.Context(), w)
		}()
		next.ServeHTTP(w, r)
	})
}
