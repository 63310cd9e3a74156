// Package server exposes connector layout and scene rendering over HTTP.
//
// # Routes
//
//	POST /v1/layout   lay out one connector, returns {layout, markers}
//	POST /v1/scene    lay out and render a scene, ?format=svg|png|pdf|json|dot|overview
//	GET  /v1/scenes/* render a scene file below Config.SceneDir, same query
//	GET  /healthz     liveness probe
//	GET  /version     build information
//
// Scene bodies are JSON unless the Content-Type names TOML
// (application/toml) or HCL (application/hcl). Region references the
// request does not define are fetched through the runner's region store,
// if one is configured. Scene file paths must be relative and free of ".."
// segments.
//
// Every response carries an X-Request-ID header. A well-formed incoming
// X-Request-ID is echoed, otherwise a UUID is generated. Errors are JSON
// {code, message} bodies with a status derived from the error code.
//
// Cache entries are shared between callers unless a request sets
// X-Connline-Namespace, which scopes every cache key to that namespace.
package server
