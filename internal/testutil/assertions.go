package testutil

import (
	"encoding/json"
	"net/http"
	"testing"
)

// Envelope mirrors the API response body.
type Envelope struct {
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// DecodeEnvelope reads the response body and returns the envelope.
func DecodeEnvelope(t *testing.T, resp *http.Response) Envelope {
	t.Helper()

	var env Envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		t.Fatalf("failed to decode response envelope: %v", err)
	}
	return env
}

// DecodeData reads the response body and unmarshals the data field into out.
func DecodeData(t *testing.T, resp *http.Response, out interface{}) string {
	t.Helper()

	env := DecodeEnvelope(t, resp)
	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			t.Fatalf("failed to decode response data: %v", err)
		}
	}
	return env.Message
}
