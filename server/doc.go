// Package server exposes a Catalog over HTTP.
//
// Routes:
//
//	GET /api/v1/recommendations?q=<query>&limit=<n>
//	GET /healthz
//	GET /metrics
//
// Responses are JSON envelopes with a "status" of "success" or "error".
package server
