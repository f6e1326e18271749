package middleware

import (
	"net/http"
	"slices"
	"strconv"
	"strings"
)

// CORSConfig controls which web-client origins may call the API from a browser.
type CORSConfig struct {
	// AllowedOrigins lists exact origins ("https://app.sat.kz") or subdomain
	// patterns ("*.sat.kz"). Empty denies every cross-origin request.
	AllowedOrigins []string

	// AllowedMethods are the methods the marketplace routes use.
	AllowedMethods []string

	// AllowedHeaders are the request headers a browser may send.
	// Authorization carries the bearer token.
	AllowedHeaders []string

	// ExposedHeaders are readable by client scripts. The rate-limit headers
	// let the login and register forms show a retry countdown.
	ExposedHeaders []string

	// AllowCredentials must stay false while the token travels in a header.
	AllowCredentials bool

	// MaxAge caches preflight results, in seconds.
	MaxAge int
}

// DefaultCORSConfig returns the marketplace defaults with no allowed origins.
func DefaultCORSConfig() CORSConfig {
	return CORSConfig{
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodPatch,
			http.MethodDelete,
			http.MethodOptions,
		},
		AllowedHeaders: []string{
			"Content-Type",
			"Authorization",
			"X-Request-ID",
			"Accept",
			"Accept-Language",
		},
		ExposedHeaders: []string{
			"X-Request-ID",
			"Retry-After",
			"X-RateLimit-Limit",
			"X-RateLimit-Remaining",
			"X-RateLimit-Reset",
		},
		MaxAge: 86400,
	}
}

// originPolicy matches request origins against the configured list.
type originPolicy struct {
	exact map[string]bool
	// host suffixes taken from "*.domain" patterns, with the leading dot
	suffixes []string
}

func newOriginPolicy(origins []string) originPolicy {
	p := originPolicy{exact: make(map[string]bool, len(origins))}
	for _, o := range origins {
		o = strings.ToLower(strings.TrimSpace(o))
		if rest, ok := strings.CutPrefix(o, "*"); ok && strings.HasPrefix(rest, ".") {
			p.suffixes = append(p.suffixes, rest)
			continue
		}
		if o != "" {
			p.exact[o] = true
		}
	}
	return p
}

// allows reports whether origin is listed. A pattern "*.sat.kz" matches
// "https://app.sat.kz" but neither "https://sat.kz" nor "https://evilsat.kz".
func (p originPolicy) allows(origin string) bool {
	origin = strings.ToLower(origin)
	if p.exact[origin] {
		return true
	}

	_, host, ok := strings.Cut(origin, "://")
	if !ok {
		return false
	}
	for _, suffix := range p.suffixes {
		if len(host) > len(suffix) && strings.HasSuffix(host, suffix) {
			return true
		}
	}
	return false
}

// CORS returns a middleware that answers browser preflights and decorates
// responses for allowed origins. Requests without an Origin header pass
// through untouched. Preflights from unknown origins, or asking for a method
// outside AllowedMethods, get 403.
func CORS(cfg CORSConfig) func(http.Handler) http.Handler {
	policy := newOriginPolicy(cfg.AllowedOrigins)
	methods := strings.Join(cfg.AllowedMethods, ", ")
	headers := strings.Join(cfg.AllowedHeaders, ", ")
	exposed := strings.Join(cfg.ExposedHeaders, ", ")
	maxAge := ""
	if cfg.MaxAge > 0 {
		maxAge = strconv.Itoa(cfg.MaxAge)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			if origin == "" {
				next.ServeHTTP(w, r)
				return
			}

			preflight := r.Method == http.MethodOptions
			if !policy.allows(origin) {
				if preflight {
					w.WriteHeader(http.StatusForbidden)
					return
				}
				// The browser drops the response without CORS headers.
				next.ServeHTTP(w, r)
				return
			}

			h := w.Header()
			h.Set("Access-Control-Allow-Origin", origin)
			h.Add("Vary", "Origin")
			if cfg.AllowCredentials {
				h.Set("Access-Control-Allow-Credentials", "true")
			}

			if !preflight {
				if exposed != "" {
					h.Set("Access-Control-Expose-Headers", exposed)
				}
				next.ServeHTTP(w, r)
				return
			}

			requested := r.Header.Get("Access-Control-Request-Method")
			if requested != "" && !slices.Contains(cfg.AllowedMethods, requested) {
				w.WriteHeader(http.StatusForbidden)
				return
			}
			h.Set("Access-Control-Allow-Methods", methods)
			h.Set("Access-Control-Allow-Headers", headers)
			if maxAge != "" {
				h.Set("Access-Control-Max-Age", maxAge)
			}
			w.WriteHeader(http.StatusNoContent)
		})
	}
}
