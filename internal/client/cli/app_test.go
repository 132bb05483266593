package cli

import (
	"bufio"
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/posclient/internal/client/config"
	"github.com/dmitrijs2005/posclient/internal/client/models"
	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsLoggedIn(t *testing.T) {
	app := &App{}
	assert.False(t, app.isLoggedIn(), "no session means logged out")

	app.session = &fakeSession{authenticated: true}
	assert.True(t, app.isLoggedIn())
}

func TestSetMode_ChangesAndLogsOnce(t *testing.T) {
	app, _, logs := newTestApp(&fakeSession{})
	ctx := context.Background()

	app.setMode(ctx, ModeOnline)
	assert.Equal(t, ModeOnline, app.Mode)
	assert.NotEmpty(t, logs.String(), "expected log output on mode change")

	logs.Reset()
	app.setMode(ctx, ModeOnline)
	assert.Equal(t, ModeOnline, app.Mode)
	assert.Empty(t, logs.String(), "no log output when mode doesn't change")

	app.setMode(ctx, ModeLoggedOut)
	assert.Equal(t, ModeLoggedOut, app.Mode)
	assert.Contains(t, logs.String(), "Switched to logged out mode")
}

func TestGetStatus(t *testing.T) {
	app, _, _ := newTestApp(&fakeSession{})
	assert.Equal(t, "", app.getStatus())

	app.Mode = ModeLoggedOut
	assert.Equal(t, "(logged out)", app.getStatus())

	app.session = &fakeSession{authenticated: true, user: &models.User{Name: "Anna"}}
	app.Mode = ModeOnline
	assert.Equal(t, "(Anna online)", app.getStatus())
}

func TestNewApp_InvalidConfig(t *testing.T) {
	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.APIBaseURL = ""

	_, err := NewApp(context.Background(), cfg)
	require.Error(t, err)
}

func TestNewApp_WiresSessionAndClient(t *testing.T) {
	capturePrint(t)
	ctx := context.Background()

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": 1,
		"exp":     time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte("k"))
	require.NoError(t, err)

	r := chi.NewRouter()
	r.Post("/api/Auth", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"success":true,"data":[{"token":"` + token + `"}]}`))
	})
	r.Get("/api/User/1", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"success":true,"data":[{"userId":1,"name":"Anna","enabled":true}]}`))
	})
	r.Get("/api/Items", func(w http.ResponseWriter, req *http.Request) {
		if req.Header.Get("Authorization") != "Bearer "+token {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_, _ = w.Write([]byte(`{"success":true,"data":[]}`))
	})
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.APIBaseURL = srv.URL + "/api/"
	cfg.StoragePath = filepath.Join(t.TempDir(), "session.db")
	cfg.MetricsAddr = "127.0.0.1:0"

	app, err := NewApp(ctx, cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = app.Close(context.Background()) })
	require.NotNil(t, app.metrics)

	assert.False(t, app.session.VerifyAuth(ctx), "fresh storage has no session")

	stubInputs(t, "anna", []byte("pw"))
	require.NoError(t, app.Login(ctx))
	assert.Equal(t, "(Anna online)", app.getStatus())
	require.NoError(t, app.Get(ctx, "Items"))

	// a second app on the same storage picks the session up
	require.NoError(t, app.Close(ctx))
	app2, err := NewApp(ctx, cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = app2.Close(context.Background()) })

	require.True(t, app2.session.VerifyAuth(ctx))
	require.NotNil(t, app2.session.User())
	assert.Equal(t, "Anna", app2.session.User().Name)

	require.NoError(t, app2.Logout(ctx))
	assert.False(t, app2.session.VerifyAuth(ctx))
}

func TestRun_ExitsOnQuit(t *testing.T) {
	out := capturePrint(t)
	app, _, _ := newTestApp(&fakeSession{})
	app.reader = bufio.NewReader(strings.NewReader("help\nquit\n"))

	app.Run(context.Background())

	assert.Equal(t, "POS client (type 'help' for commands)", (*out)[0])
	assert.Contains(t, *out, "Available commands: login, verify, exit")
	assert.Equal(t, "Bye!", (*out)[len(*out)-1])
	assert.Equal(t, ModeLoggedOut, app.Mode)
}
