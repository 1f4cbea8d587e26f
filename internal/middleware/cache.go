package middleware

import (
	"net/http"
	"strings"

	"github.com/samber/lo"
)

type cacheRule struct {
	prefix string
	value  string
}

// cacheRules are matched in order; the first prefix match wins.
var cacheRules = []cacheRule{
	{prefix: "/swagger/", value: "public, max-age=3600"},
	{prefix: "/api/v1/form-templates", value: "public, max-age=300, must-revalidate"},
	{prefix: "/api/v1/catalog/", value: "public, max-age=60, must-revalidate"},
	{prefix: "/healthz", value: "no-store"},
	{prefix: "/api/", value: "no-cache"},
}

const defaultCacheValue = "no-store"

// CacheControl sets Cache-Control by request path:
// swagger docs 1 hour, form templates 5 minutes, catalog listings 1 minute,
// everything else not stored. Non-GET requests are never cached.
func CacheControl(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", cacheValue(r.Method, r.URL.Path))
		next.ServeHTTP(w, r)
	})
}

func cacheValue(method, path string) string {
	if method != http.MethodGet && method != http.MethodHead {
		return defaultCacheValue
	}
	rule, ok := lo.Find(cacheRules, func(c cacheRule) bool {
		return strings.HasPrefix(path, c.prefix)
	})
	if !ok {
		return defaultCacheValue
	}
	return rule.value
}
