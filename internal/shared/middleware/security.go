package middleware

import (
	"net"
	"net/http"
	"strings"
)

const hstsValue = "max-age=31536000; includeSubDomains"

// HSTS tells browsers to reach the API over HTTPS only.
func HSTS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Strict-Transport-Security", hstsValue)
		next.ServeHTTP(w, r)
	})
}

// SecureCookies rewrites every Set-Cookie written by next so it carries
// Secure, HttpOnly and a SameSite mode.
func SecureCookies(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		next.ServeHTTP(&cookieHardener{ResponseWriter: w}, r)
	})
}

type cookieHardener struct {
	http.ResponseWriter
	flushed bool
}

func (w *cookieHardener) WriteHeader(status int) {
	if w.flushed {
		return
	}
	w.flushed = true

	h := w.ResponseWriter.Header()
	raw := h.Values("Set-Cookie")
	if len(raw) > 0 {
		h.Del("Set-Cookie")
		for _, line := range raw {
			h.Add("Set-Cookie", hardenCookie(line))
		}
	}
	w.ResponseWriter.WriteHeader(status)
}

func (w *cookieHardener) Write(b []byte) (int, error) {
	if !w.flushed {
		w.WriteHeader(http.StatusOK)
	}
	return w.ResponseWriter.Write(b)
}

func (w *cookieHardener) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}

// hardenCookie returns line with the missing security attributes added. An
// explicit SameSite mode is kept.
func hardenCookie(line string) string {
	c, err := http.ParseSetCookie(line)
	if err != nil {
		return line
	}
	c.Secure = true
	c.HttpOnly = true
	if c.SameSite == 0 || c.SameSite == http.SameSiteDefaultMode {
		c.SameSite = http.SameSiteStrictMode
	}
	if s := c.String(); s != "" {
		return s
	}
	return line
}

// IsHostAllowed reports whether host (a Host header value) names one of
// allowedHosts. Ports are ignored on both sides and IPv6 literals may be given
// with or without brackets. An empty list allows every host.
func IsHostAllowed(host string, allowedHosts []string) bool {
	if len(allowedHosts) == 0 {
		return true
	}

	name := bareHost(host)
	if name == "" {
		return false
	}
	for _, allowed := range allowedHosts {
		if a := bareHost(allowed); a != "" && a == name {
			return true
		}
	}
	return false
}

// bareHost lowercases h and strips its port and IPv6 brackets.
func bareHost(h string) string {
	h = strings.ToLower(strings.TrimSpace(h))
	if name, _, err := net.SplitHostPort(h); err == nil {
		return name
	}
	return strings.TrimSuffix(strings.TrimPrefix(h, "["), "]")
}

func hasPort(h string) bool {
	_, _, err := net.SplitHostPort(strings.TrimSpace(h))
	return err == nil
}
