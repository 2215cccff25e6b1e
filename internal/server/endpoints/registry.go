package endpoints

import (
	"github.com/vclens/vclens/internal/api"
)

// All returns all endpoint instances.
func All() []api.Endpoint {
	return []api.Endpoint{
		// Health endpoints
		&HealthEndpoint{},
		&StatusEndpoint{},

		// Contract endpoints
		&ExtractEndpoint{},
		&FilesEndpoint{},
		&ChatEndpoint{},

		// Model call history endpoints
		&ListCallsEndpoint{},
		&GetCallEndpoint{},
	}
}
