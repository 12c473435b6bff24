package webutil

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
)

// AppHandler represents a handler function that returns an error.
type AppHandler func(w http.ResponseWriter, r *http.Request) error

// MakeHandler adapts an AppHandler to the standard http.HandlerFunc signature.
// A returned error is logged and turned into a JSON error response, unless the
// handler already started writing its own response.
func MakeHandler(handler AppHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ww, ok := w.(middleware.WrapResponseWriter)
		if !ok {
			ww = middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		}

		err := handler(ww, r)
		if err == nil {
			return
		}

		statusCode, publicMessage := classify(r, err)

		if ww.Status() != 0 {
			slog.Warn("Handler returned error after writing response header",
				"path", r.URL.Path,
				"method", r.Method,
				"error", err,
			)
			return
		}

		if statusCode == http.StatusUnauthorized {
			ww.Header().Set(HeaderAuthenticate, AuthSchemeBearer)
		}
		RespondWithError(ww, statusCode, publicMessage)
	}
}

// classify maps err onto a status code and public message and logs it at a
// level matching its severity.
func classify(r *http.Request, err error) (int, string) {
	var httpErr *HTTPError

	switch {
	case errors.As(err, &httpErr):
		logLevel := slog.LevelWarn
		if httpErr.Code >= http.StatusInternalServerError {
			logLevel = slog.LevelError
		}
		attrs := []any{
			"code", httpErr.Code,
			"msg", httpErr.Message,
			"path", r.URL.Path,
			"method", r.Method,
		}
		if cause := errors.Unwrap(httpErr); cause != nil && cause.Error() != httpErr.Message {
			attrs = append(attrs, "cause", cause)
		}
		slog.Log(r.Context(), logLevel, "Client error response", attrs...)
		return httpErr.Code, httpErr.Message

	case errors.Is(err, sql.ErrNoRows):
		slog.Info("Resource not found", "path", r.URL.Path, "method", r.Method, "error", err)
		return http.StatusNotFound, msgNotFound

	default:
		slog.Error("Unhandled internal error", "path", r.URL.Path, "method", r.Method, "error", err)
		return http.StatusInternalServerError, msgInternalServer
	}
}
