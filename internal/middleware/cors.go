package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-chi/cors"
)

// CORS adapts go-chi/cors to gin. origins is a comma separated list; "*" or
// empty allows any origin. Preflight requests are answered here and never
// reach the route.
func CORS(origins string) gin.HandlerFunc {
	allowed := []string{"*"}
	if o := strings.TrimSpace(origins); o != "" && o != "*" {
		allowed = nil
		for _, part := range strings.Split(o, ",") {
			if p := strings.TrimSpace(part); p != "" {
				allowed = append(allowed, p)
			}
		}
	}

	handler := cors.Handler(cors.Options{
		AllowedOrigins:   allowed,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "Idempotency-Key", "X-Client-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID", "Retry-After"},
		AllowCredentials: allowed[0] != "*",
		MaxAge:           300,
	})

	return func(c *gin.Context) {
		passed := false
		handler(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
			passed = true
			c.Request = r
			c.Next()
		})).ServeHTTP(c.Writer, c.Request)

		if !passed {
			c.Abort()
		}
	}
}
