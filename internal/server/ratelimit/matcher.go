package ratelimit

import "strings"

// MatchEndpoint resolves the endpoint configuration for a path and
// method. Exact path matches win; configs whose path ends in "/" also
// match any request under that prefix, which covers "/api/resumes/{id}"
// style routes. The health check is always unlimited.
func MatchEndpoint(path, method string, configs []EndpointConfig) *EndpointConfig {
	if path == "/api/health" && method == "GET" {
		return &EndpointConfig{}
	}

	var prefixMatch *EndpointConfig
	for i := range configs {
		ec := &configs[i]
		if ec.Method != method {
			continue
		}
		if ec.Path == path {
			return ec
		}
		if prefixMatch == nil && strings.HasSuffix(ec.Path, "/") && strings.HasPrefix(path, ec.Path) {
			prefixMatch = ec
		}
	}
	return prefixMatch
}
