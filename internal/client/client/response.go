package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
)

// Response is a fully read API response.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// Decode unmarshals the JSON body into v.
func (r *Response) Decode(v any) error {
	if err := json.Unmarshal(r.Body, v); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// Envelope decodes the standard {success, data, errorMessage} body.
func (r *Response) Envelope() (*Envelope, error) {
	var env Envelope
	if err := r.Decode(&env); err != nil {
		return nil, err
	}
	return &env, nil
}

// Envelope is the response shape shared by all back-office endpoints.
type Envelope struct {
	Success      bool            `json:"success"`
	Data         json.RawMessage `json:"data,omitempty"`
	ErrorMessage string          `json:"errorMessage,omitempty"`
}

// First decodes the first element of data into v. A data value that is not
// an array is decoded as is.
func (e *Envelope) First(v any) error {
	data := bytes.TrimSpace(e.Data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return ErrEmptyData
	}

	if data[0] == '[' {
		var items []json.RawMessage
		if err := json.Unmarshal(data, &items); err != nil {
			return fmt.Errorf("decode envelope data: %w", err)
		}
		if len(items) == 0 {
			return ErrEmptyData
		}
		data = items[0]
	}

	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("decode envelope data: %w", err)
	}
	return nil
}
