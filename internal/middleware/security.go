// Copyright (c) 2026 The tweetarchive authors.
// All rights reserved. See LICENSE for details.

package middleware

import "net/http"

// SecureHeaders adds response headers suited to a JSON API. Responses are
// computed per request and must not be cached by browsers or proxies.
func SecureHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()

		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "DENY")
		h.Set("Referrer-Policy", "no-referrer")
		h.Set("Cache-Control", "no-store")

		next.ServeHTTP(w, r)
	})
}
