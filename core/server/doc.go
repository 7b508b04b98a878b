// Package server exposes the status HTTP API.
//
// # Endpoints
//
//   - GET /healthz: liveness probe, public.
//   - GET /swagger/*: API documentation, public.
//   - GET /api/runs: recent run summaries, protected by API key.
//   - GET /api/runs/latest: most recent run summary, protected by API key.
//
// The Config struct defines the HTTP port and API key; when the key is
// empty the API routes are open.
package server
