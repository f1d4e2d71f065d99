package types

import "encoding/json"

// ParseResponse is the upload+parse endpoint response. ParsedData is kept
// as raw JSON: its shape varies by extraction-service version and is
// normalized by the reconciler, not decoded into a fixed struct here.
type ParseResponse struct {
	Status     string          `json:"status"`
	SourceFile string          `json:"source_file,omitempty"`
	ParsedData json.RawMessage `json:"parsed_data,omitempty"`
	Detail     string          `json:"detail,omitempty"`
}

// StatusSuccess is the status value both the parse and advice endpoints
// return on success.
const StatusSuccess = "success"
