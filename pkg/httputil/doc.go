// Package httputil provides JSON response helpers, path parameter parsing and
// request middleware shared by the HTTP surfaces.
//
// # Response Helpers
//
//	httputil.WriteSuccess(w, data)
//	httputil.WriteNotFoundError(w, "command not found: ping")
//
// # Middleware
//
//	httputil.Chain(
//		httputil.RecoveryMiddleware(log),
//		httputil.RequestIDMiddleware,
//		httputil.LoggingMiddleware(log),
//	)
package httputil
