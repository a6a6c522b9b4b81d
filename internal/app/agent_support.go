package app

import (
	"context"
	"fmt"
	"strings"

	"clinical_voice_service/internal/domain/agents"
)

// completeEnvelope sends the message through the chat client and parses the
// completion into a response envelope. Model failures and malformed
// completions come back as error envelopes so callers always have something
// to report.
func completeEnvelope(ctx context.Context, chat agents.ChatClient, systemPrompt, message string) *agents.Response {
	raw, err := chat.Complete(ctx, systemPrompt, fmt.Sprintf("Process this request: %s", message))
	if err != nil {
		return agents.NewErrorResponse("unknown", fmt.Sprintf("model request failed: %v", err))
	}

	resp, err := agents.DecodeResponse(raw)
	if err != nil {
		return agents.NewErrorResponse("unknown", fmt.Sprintf("Invalid JSON response from model: %v", err))
	}

	if resp.Error != nil && *resp.Error != "" {
		out := agents.NewErrorResponse(resp.Operation, *resp.Error)
		return out
	}
	if len(resp.Data) == 0 {
		return agents.NewErrorResponse(resp.Operation, fmt.Sprintf("No data provided for operation: %s", resp.Operation))
	}

	resp.Status = agents.StatusSuccess
	return resp
}

// stringField returns the first non-empty string value found under the given
// keys.
func stringField(data map[string]interface{}, keys ...string) string {
	for _, key := range keys {
		if v, ok := data[key].(string); ok && strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	return ""
}

// stringSliceField coerces a data field into a string slice. Scalars become a
// single-element slice; maps contribute their "name" entry.
func stringSliceField(data map[string]interface{}, key string) []string {
	var out []string
	switch v := data[key].(type) {
	case []string:
		for _, item := range v {
			if s := strings.TrimSpace(item); s != "" {
				out = append(out, s)
			}
		}
	case []interface{}:
		for _, item := range v {
			switch it := item.(type) {
			case string:
				if s := strings.TrimSpace(it); s != "" {
					out = append(out, s)
				}
			case map[string]interface{}:
				if name := stringField(it, "name"); name != "" {
					out = append(out, name)
				}
			}
		}
	case string:
		if s := strings.TrimSpace(v); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// mapField returns a nested object field, or nil when absent.
func mapField(data map[string]interface{}, key string) map[string]interface{} {
	if v, ok := data[key].(map[string]interface{}); ok {
		return v
	}
	return nil
}

// containsAnyKeyword reports whether the lowercased message contains one of
// the keywords.
func containsAnyKeyword(message string, keywords []string) bool {
	lowered := strings.ToLower(message)
	for _, keyword := range keywords {
		if strings.Contains(lowered, keyword) {
			return true
		}
	}
	return false
}
