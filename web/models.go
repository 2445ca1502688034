/* models.go
 * Contains the configuration and server types for the status endpoint
 */

package web

import (
	"tournament-assistant/api/api"

	"github.com/prometheus/client_golang/prometheus"
)

// Config holds the configuration for the web server
type Config struct {
	Addr string
	API  *api.API
	// Gatherer is served on /metrics. Metrics are not served when it is nil
	Gatherer prometheus.Gatherer
	// AllowedOrigins are the browser origins allowed to read the status endpoints
	AllowedOrigins []string
}

// Server is the HTTP server that reports on the running tournaments
type Server struct {
	api *api.API
}

// errorResponse is the body sent with every error status
type errorResponse struct {
	Error string `json:"error"`
}
