package agents

import (
	"fmt"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"
)

// Response status values
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Response is the envelope every agent returns. The model is prompted to emit
// exactly this shape; Decode repairs common deviations before giving up.
type Response struct {
	Operation string                 `json:"operation" validate:"required"`
	Status    string                 `json:"status" validate:"required,oneof=success error"`
	Data      map[string]interface{} `json:"data"`
	Warnings  []string               `json:"warnings"`
	Error     *string                `json:"error"`
}

// Validate for validating the Response envelope
func (r *Response) Validate() error {
	validate := validator.New()

	if err := validate.Struct(r); err != nil {
		return fmt.Errorf("validation failed for Response: %w", err)
	}
	if r.Data == nil {
		return fmt.Errorf("validation failed for Response: data must be an object")
	}

	return nil
}

// NewSuccessResponse builds a success envelope for the given operation.
func NewSuccessResponse(operation string, data map[string]interface{}) *Response {
	if data == nil {
		data = map[string]interface{}{}
	}
	return &Response{
		Operation: operation,
		Status:    StatusSuccess,
		Data:      data,
		Warnings:  []string{},
	}
}

// NewErrorResponse builds an error envelope for the given operation.
func NewErrorResponse(operation string, message string) *Response {
	return &Response{
		Operation: operation,
		Status:    StatusError,
		Data:      map[string]interface{}{},
		Warnings:  []string{},
		Error:     &message,
	}
}

// AddWarning appends a warning to the envelope.
func (r *Response) AddWarning(message string) {
	r.Warnings = append(r.Warnings, message)
}

// Encode serializes the envelope.
func (r *Response) Encode() ([]byte, error) {
	out, err := sonic.Marshal(r)
	if err != nil {
		return nil, fmt.Errorf("failed to encode response: %w", err)
	}
	return out, nil
}

// DecodeResponse parses a model completion into an envelope. Raw output is
// repaired first since models wrap JSON in code fences or escape it twice.
func DecodeResponse(raw string) (*Response, error) {
	repaired := repairJSON(raw)

	var resp Response
	if err := sonic.UnmarshalString(repaired, &resp); err != nil {
		return nil, fmt.Errorf("failed to decode response envelope: %w", err)
	}
	if resp.Data == nil {
		resp.Data = map[string]interface{}{}
	}
	if resp.Warnings == nil {
		resp.Warnings = []string{}
	}

	return &resp, nil
}

// repairJSON strips markdown fences and double-escaping artifacts, then trims
// the payload to the outermost object.
func repairJSON(raw string) string {
	s := strings.TrimSpace(raw)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	s = strings.TrimSpace(s)

	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start >= 0 && end > start {
		s = s[start : end+1]
	}

	s = strings.ReplaceAll(s, `\\n`, " ")
	s = strings.ReplaceAll(s, `\\"`, `"`)

	return s
}
