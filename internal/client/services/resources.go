package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/posclient/internal/client/client"
)

var (
	ErrRejected    = errors.New("request rejected")
	ErrInvalidBody = errors.New("body is not valid JSON")
)

// ResourceAPI is the generic CRUD surface of the HTTP client.
type ResourceAPI interface {
	Get(ctx context.Context, resource string) (*client.Response, error)
	Post(ctx context.Context, resource string, body any) (*client.Response, error)
	Put(ctx context.Context, resource string, body any) (*client.Response, error)
	Update(ctx context.Context, resource, slug string, body any) (*client.Response, error)
	Delete(ctx context.Context, resource string) (*client.Response, error)
}

// ResourceService runs CRUD calls against arbitrary back-office resources
// and unwraps the response envelope. A 2xx answer with success=false is
// returned together with an error wrapping ErrRejected.
type ResourceService struct {
	api ResourceAPI
}

func NewResourceService(api ResourceAPI) *ResourceService {
	return &ResourceService{api: api}
}

func (s *ResourceService) Get(ctx context.Context, resource string) (*client.Envelope, error) {
	return envelopeOf(s.api.Get(ctx, resource))
}

func (s *ResourceService) Post(ctx context.Context, resource string, body json.RawMessage) (*client.Envelope, error) {
	if err := checkBody(body); err != nil {
		return nil, err
	}
	return envelopeOf(s.api.Post(ctx, resource, body))
}

func (s *ResourceService) Put(ctx context.Context, resource string, body json.RawMessage) (*client.Envelope, error) {
	if err := checkBody(body); err != nil {
		return nil, err
	}
	return envelopeOf(s.api.Put(ctx, resource, body))
}

func (s *ResourceService) Update(ctx context.Context, resource, slug string, body json.RawMessage) (*client.Envelope, error) {
	if err := checkBody(body); err != nil {
		return nil, err
	}
	return envelopeOf(s.api.Update(ctx, resource, slug, body))
}

func (s *ResourceService) Delete(ctx context.Context, resource string) (*client.Envelope, error) {
	return envelopeOf(s.api.Delete(ctx, resource))
}

func checkBody(body json.RawMessage) error {
	if len(bytes.TrimSpace(body)) == 0 || !json.Valid(body) {
		return ErrInvalidBody
	}
	return nil
}

func envelopeOf(resp *client.Response, err error) (*client.Envelope, error) {
	if err != nil {
		return nil, err
	}
	if len(bytes.TrimSpace(resp.Body)) == 0 {
		// 204 and friends
		return &client.Envelope{Success: true}, nil
	}

	env, err := resp.Envelope()
	if err != nil {
		return nil, err
	}
	if !env.Success {
		if env.ErrorMessage != "" {
			return env, fmt.Errorf("%w: %s", ErrRejected, env.ErrorMessage)
		}
		return env, ErrRejected
	}
	return env, nil
}
