package middleware

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

// CORSConfig holds configuration for the CORS middleware.
type CORSConfig struct {
	// AllowedOrigins lists origins allowed to make cross-origin
	// requests. ["*"] allows all origins.
	AllowedOrigins []string

	// AllowedMethods lists HTTP methods allowed for cross-origin requests.
	AllowedMethods []string

	// AllowedHeaders lists request headers allowed for cross-origin requests.
	AllowedHeaders []string

	// ExposedHeaders lists response headers exposed to the client.
	ExposedHeaders []string

	// MaxAge is how long (in seconds) preflight results may be cached.
	MaxAge int
}

// DefaultCORSConfig returns a closed-by-default CORS configuration;
// deployments list their frontends explicitly.
func DefaultCORSConfig() CORSConfig {
	return CORSConfig{
		AllowedOrigins: []string{},
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodPut,
			http.MethodDelete,
			http.MethodOptions,
		},
		AllowedHeaders: []string{"Accept", "Content-Type", RequestIDHeader},
		ExposedHeaders: []string{RequestIDHeader},
		MaxAge:         86400,
	}
}

// CORS validates the Origin header against the allow list and answers
// preflight requests. A disallowed origin gets no CORS headers; the
// browser blocks the response on its side.
func CORS(cfg CORSConfig) gin.HandlerFunc {
	allowedMethods := strings.Join(cfg.AllowedMethods, ", ")
	allowedHeaders := strings.Join(cfg.AllowedHeaders, ", ")
	exposedHeaders := strings.Join(cfg.ExposedHeaders, ", ")
	maxAge := strconv.Itoa(cfg.MaxAge)

	allowAll := false
	originSet := make(map[string]bool, len(cfg.AllowedOrigins))
	for _, origin := range cfg.AllowedOrigins {
		if origin == "*" {
			allowAll = true
			continue
		}
		originSet[strings.ToLower(origin)] = true
	}

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if origin == "" {
			c.Next()
			return
		}
		if !allowAll && !originSet[strings.ToLower(origin)] {
			c.Next()
			return
		}

		header := c.Writer.Header()
		header.Add("Vary", "Origin")

		if allowAll {
			header.Set("Access-Control-Allow-Origin", "*")
		} else {
			header.Set("Access-Control-Allow-Origin", origin)
		}

		if c.Request.Method == http.MethodOptions {
			header.Set("Access-Control-Allow-Methods", allowedMethods)
			header.Set("Access-Control-Allow-Headers", allowedHeaders)
			if cfg.MaxAge > 0 {
				header.Set("Access-Control-Max-Age", maxAge)
			}
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		if exposedHeaders != "" {
			header.Set("Access-Control-Expose-Headers", exposedHeaders)
		}
		c.Next()
	}
}
