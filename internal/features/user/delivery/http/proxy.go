package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httputil"
	"net/url"

	"github.com/gin-gonic/gin"

	"user-admin-console/internal/common/envelope"
	apperrors "user-admin-console/internal/common/errors"
	"user-admin-console/internal/common/logger"
	"user-admin-console/internal/common/middleware"
)

// NewAPIProxy forwards /api/* to the user API so that the console can be its
// own API origin.
func NewAPIProxy(upstream string) (gin.HandlerFunc, error) {
	target, err := url.Parse(upstream)
	if err != nil {
		return nil, fmt.Errorf("invalid upstream url %q: %w", upstream, err)
	}
	if target.Scheme == "" || target.Host == "" {
		return nil, fmt.Errorf("invalid upstream url %q: scheme and host are required", upstream)
	}

	proxy := &httputil.ReverseProxy{
		Rewrite: func(r *httputil.ProxyRequest) {
			r.SetURL(target)
			r.SetXForwarded()
			if id := middleware.RequestIDFromContext(r.In.Context()); id != "" {
				r.Out.Header.Set(middleware.RequestIDHeader, id)
			}
		},
		ErrorHandler: func(w http.ResponseWriter, r *http.Request, err error) {
			logger.Warn().Err(err).Str("path", r.URL.Path).Msg("User API proxy failed")
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusServiceUnavailable)
			_ = json.NewEncoder(w).Encode(envelope.Envelope[struct{}]{
				Error: &envelope.Error{
					Code:    string(apperrors.ErrCodeServiceUnavailable),
					Message: "User API unavailable",
				},
			})
		},
	}

	return func(c *gin.Context) {
		proxy.ServeHTTP(c.Writer, c.Request)
	}, nil
}
