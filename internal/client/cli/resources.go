package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"

	"github.com/dmitrijs2005/posclient/internal/client/client"
	"github.com/dmitrijs2005/posclient/internal/client/notify"
	"github.com/dmitrijs2005/posclient/internal/client/services"
)

// promptBody reads a JSON body interactively; tests replace it.
var promptBody = PromptBody

func (a *App) Get(ctx context.Context, resource string) error {
	defer a.syncMode(ctx)
	return a.show(ctx, func() (*client.Envelope, error) {
		return a.resources.Get(ctx, resource)
	})
}

func (a *App) Post(ctx context.Context, resource, body string) error {
	defer a.syncMode(ctx)
	payload, err := a.body(body)
	if err != nil {
		return err
	}
	return a.show(ctx, func() (*client.Envelope, error) {
		return a.resources.Post(ctx, resource, payload)
	})
}

func (a *App) Put(ctx context.Context, resource, body string) error {
	defer a.syncMode(ctx)
	payload, err := a.body(body)
	if err != nil {
		return err
	}
	return a.show(ctx, func() (*client.Envelope, error) {
		return a.resources.Put(ctx, resource, payload)
	})
}

func (a *App) Update(ctx context.Context, resource, slug, body string) error {
	defer a.syncMode(ctx)
	payload, err := a.body(body)
	if err != nil {
		return err
	}
	return a.show(ctx, func() (*client.Envelope, error) {
		return a.resources.Update(ctx, resource, slug, payload)
	})
}

func (a *App) Delete(ctx context.Context, resource string) error {
	defer a.syncMode(ctx)
	return a.show(ctx, func() (*client.Envelope, error) {
		return a.resources.Delete(ctx, resource)
	})
}

// body returns the inline JSON, or reads it from the terminal when empty.
func (a *App) body(inline string) (json.RawMessage, error) {
	if strings.TrimSpace(inline) != "" {
		return json.RawMessage(inline), nil
	}
	text, err := promptBody(a.reader, "JSON body", a.out)
	if err != nil {
		return nil, err
	}
	return json.RawMessage(text), nil
}

// show runs call and prints the envelope data. HTTP failures were reported by
// the client notifier already; rejections and bad input are reported here.
func (a *App) show(ctx context.Context, call func() (*client.Envelope, error)) error {
	env, err := call()
	if err != nil {
		var rerr *client.ResponseError
		switch {
		case errors.As(err, &rerr):
			// already notified
		case errors.Is(err, services.ErrRejected):
			msg := err.Error()
			if env != nil && env.ErrorMessage != "" {
				msg = env.ErrorMessage
			}
			a.notifier.Notify(ctx, notify.Notice{Level: notify.LevelError, Key: notify.KeyRequestFailed, Args: []any{msg}})
		default:
			printlnFn("Error:", err.Error())
		}
		return err
	}

	printlnFn(formatData(env.Data))
	return nil
}

func formatData(data json.RawMessage) string {
	if len(bytes.TrimSpace(data)) == 0 {
		return "OK"
	}
	var out bytes.Buffer
	if err := json.Indent(&out, data, "", "  "); err != nil {
		return string(data)
	}
	return out.String()
}
