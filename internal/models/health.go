package models

import "time"

// UpstreamPingResult describes the outcome of probing the API health endpoint.
type UpstreamPingResult struct {
	Target     string        `json:"target"`
	Reachable  bool          `json:"reachable"`
	StatusCode int           `json:"status_code"`
	Duration   time.Duration `json:"duration"`
	ObservedAt time.Time     `json:"observed_at"`
	Error      string        `json:"error,omitempty"`
}
