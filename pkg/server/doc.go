// Package server exposes live grids over HTTP.
//
// A live grid is built from a label matrix, kept in memory under a random
// UUID and mutated by drag requests. Every response carries the grid's
// current layout in the same shape as the JSON layout export.
//
// # Routes
//
//	GET    /healthz
//	POST   /v1/grids                             {matrix, width, height, thickness}
//	GET    /v1/grids/{id}
//	POST   /v1/grids/{id}/drags                  {divider, delta}
//	GET    /v1/grids/{id}/artifacts/{format}     json, toml, dot or svg
//	DELETE /v1/grids/{id}
//
// Errors are returned as {"code": "...", "message": "..."} with a status
// derived from the error code.
//
// # Concurrency
//
// The store map is guarded by a read/write mutex and each live grid by its
// own mutex, so drags on one grid never block requests on another. Grids
// that have not been touched for [Config.TTL] are evicted by a janitor
// started from [Server.Run].
package server
