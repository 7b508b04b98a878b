// Package history persists run summaries so the status API and
// operators can inspect past reconciliation runs. Persistence is
// optional; when disabled the rest of the application runs without a
// database connection.
package history
