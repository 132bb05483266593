package cli

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"testing"

	"github.com/dmitrijs2005/posclient/internal/client/client"
	"github.com/dmitrijs2005/posclient/internal/client/notify"
	"github.com/dmitrijs2005/posclient/internal/client/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeResources struct {
	env   *client.Envelope
	err   error
	calls []string
}

func (f *fakeResources) record(s string) (*client.Envelope, error) {
	f.calls = append(f.calls, s)
	return f.env, f.err
}

func (f *fakeResources) Get(_ context.Context, resource string) (*client.Envelope, error) {
	return f.record("GET " + resource)
}
func (f *fakeResources) Post(_ context.Context, resource string, body json.RawMessage) (*client.Envelope, error) {
	return f.record("POST " + resource + " " + string(body))
}
func (f *fakeResources) Put(_ context.Context, resource string, body json.RawMessage) (*client.Envelope, error) {
	return f.record("PUT " + resource + " " + string(body))
}
func (f *fakeResources) Update(_ context.Context, resource, slug string, body json.RawMessage) (*client.Envelope, error) {
	return f.record(fmt.Sprintf("UPDATE %s/%s %s", resource, slug, body))
}
func (f *fakeResources) Delete(_ context.Context, resource string) (*client.Envelope, error) {
	return f.record("DELETE " + resource)
}

func TestResourceCommands_PrintData(t *testing.T) {
	out := capturePrint(t)

	r := &fakeResources{env: &client.Envelope{Success: true, Data: json.RawMessage(`[{"id":1}]`)}}
	a, n, _ := newTestApp(&fakeSession{authenticated: true})
	a.resources = r
	ctx := context.Background()

	require.NoError(t, a.Get(ctx, "Items"))
	require.NoError(t, a.Post(ctx, "Items", `{"a":1}`))
	require.NoError(t, a.Put(ctx, "Items", `[2]`))
	require.NoError(t, a.Update(ctx, "Items", "9", `{"b":2}`))

	r.env = &client.Envelope{Success: true}
	require.NoError(t, a.Delete(ctx, "Items/9"))

	assert.Equal(t, []string{
		"GET Items",
		`POST Items {"a":1}`,
		"PUT Items [2]",
		`UPDATE Items/9 {"b":2}`,
		"DELETE Items/9",
	}, r.calls)
	assert.Equal(t, "[\n  {\n    \"id\": 1\n  }\n]", (*out)[0])
	assert.Equal(t, "OK", (*out)[len(*out)-1])
	assert.Empty(t, n.notices)
	assert.Equal(t, ModeOnline, a.Mode)
}

func TestResourceCommands_InteractiveBody(t *testing.T) {
	capturePrint(t)
	orig := promptBody
	promptBody = func(*bufio.Reader, string, io.Writer) (string, error) { return `{"typed":true}`, nil }
	t.Cleanup(func() { promptBody = orig })

	r := &fakeResources{env: &client.Envelope{Success: true}}
	a, _, _ := newTestApp(&fakeSession{})
	a.resources = r

	require.NoError(t, a.Post(context.Background(), "Items", "  "))
	assert.Equal(t, []string{`POST Items {"typed":true}`}, r.calls)
}

func TestResourceCommands_Errors(t *testing.T) {
	ctx := context.Background()

	t.Run("rejected by backend", func(t *testing.T) {
		capturePrint(t)
		r := &fakeResources{
			env: &client.Envelope{Success: false, ErrorMessage: "Wrong warehouse"},
			err: fmt.Errorf("%w: Wrong warehouse", services.ErrRejected),
		}
		a, n, _ := newTestApp(&fakeSession{authenticated: true})
		a.resources = r

		require.ErrorIs(t, a.Get(ctx, "Items"), services.ErrRejected)
		require.Len(t, n.notices, 1)
		assert.Equal(t, notify.KeyRequestFailed, n.notices[0].Key)
		assert.Equal(t, []any{"Wrong warehouse"}, n.notices[0].Args)
	})

	t.Run("http failure is not repeated", func(t *testing.T) {
		out := capturePrint(t)
		r := &fakeResources{err: &client.ResponseError{Method: "GET", Resource: "Items", Kind: client.ErrUnauthorized}}
		s := &fakeSession{}
		a, n, _ := newTestApp(s)
		a.resources = r
		a.Mode = ModeOnline

		require.ErrorIs(t, a.Get(ctx, "Items"), client.ErrUnauthorized)
		assert.Empty(t, n.notices)
		assert.Empty(t, *out)
		assert.Equal(t, ModeLoggedOut, a.Mode, "mode follows a session purged by a 401")
	})

	t.Run("invalid body", func(t *testing.T) {
		out := capturePrint(t)
		r := &fakeResources{err: services.ErrInvalidBody}
		a, _, _ := newTestApp(&fakeSession{})
		a.resources = r

		require.ErrorIs(t, a.Post(ctx, "Items", "{nope"), services.ErrInvalidBody)
		assert.Equal(t, []string{"Error: " + services.ErrInvalidBody.Error()}, *out)
	})

	t.Run("body input error", func(t *testing.T) {
		capturePrint(t)
		orig := promptBody
		promptBody = func(*bufio.Reader, string, io.Writer) (string, error) { return "", errors.New("eof") }
		t.Cleanup(func() { promptBody = orig })

		r := &fakeResources{}
		a, _, _ := newTestApp(&fakeSession{})
		a.resources = r

		require.Error(t, a.Put(ctx, "Items", ""))
		assert.Empty(t, r.calls)
	})
}
