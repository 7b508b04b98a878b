// Package plex implements the Plex Media Server REST API client consumed by
// the reconciliation engine.
//
// The client is intentionally narrow. The engine needs exactly three
// capabilities from the catalog:
//
//   - Sections: enumerate library sections with their types and root
//     filesystem locations
//   - SectionFiles: enumerate every media file path a section currently
//     reports (show sections descend show -> episode -> media -> part,
//     flat sections item -> media -> part)
//   - RefreshPath: trigger a targeted re-scan of one folder in a section
//
// All requests authenticate with the X-Plex-Token header and negotiate JSON
// responses via "Accept: application/json".
//
// The Client interface allows the engine to be tested against the mock in
// the mocks subpackage without a live server.
package plex
