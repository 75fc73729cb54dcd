// Package api provides the HTTP REST API for the kantorku backend.
//
// It exposes registration, cookie-based session login, and the protected
// office endpoints (menu catalogue, user administration, attendance,
// audit trail) to the web frontend.
//
// The server follows the same lifecycle pattern as the other components:
//
//	server, err := api.New(deps)
//	server.Start(ctx)
//	defer server.Close()
//
// Thread Safety: All methods are safe for concurrent use from multiple goroutines.
package api
