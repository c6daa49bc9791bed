// Package middleware provides HTTP middleware for the API server.
//
// Included middleware:
//   - CORS: Cross-origin resource sharing via gin-contrib/cors
//   - RateLimit: Per-IP token-bucket rate limiting via golang.org/x/time/rate
//   - GlobalRateLimit: Process-wide rate limiting
package middleware
