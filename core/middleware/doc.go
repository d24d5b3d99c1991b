// Package middleware contains HTTP middleware for the Fiber application.
//
// # Components
//
//   - auth: API key validation that protects the filesystem endpoints.
//   - rayid: a unique request id (RayID) for every incoming request, stored in
//     the context for logger.WithRayID and echoed in the response headers.
package middleware
