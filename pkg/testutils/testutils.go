// Package testutils provides helpers for building the full application in
// tests and driving it over HTTP.
package testutils

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"

	"github.com/gofiber/fiber/v2"

	"github.com/onramptee/openbank/config"
	"github.com/onramptee/openbank/infra/provider/mocksettlement"
	"github.com/onramptee/openbank/infra/repository/memory"
	"github.com/onramptee/openbank/pkg/app"
	"github.com/onramptee/openbank/pkg/eventbus"
	"github.com/onramptee/openbank/webapi"
)

// TestApp bundles the wired application with its fakeable edges.
type TestApp struct {
	App        *fiber.App
	Store      *memory.Store
	Settlement *mocksettlement.MockSettlement
}

// NewTestApp wires the full application against an empty in-memory store and
// a mock settlement system. The rate limiter is disabled so tests can hammer
// the API.
func NewTestApp() *TestApp {
	store := memory.New()
	mock := mocksettlement.New()
	cfg := &config.App{Env: "test"}

	a := app.New(app.Deps{
		Ledger:     store,
		Settlement: mock,
		Bus:        eventbus.NewSimpleBus(),
		Logger:     slog.Default(),
		Config:     cfg,
	})

	return &TestApp{
		App:        webapi.NewApp(a.UserService, a.AccountService, a.WithdrawService, cfg),
		Store:      store,
		Settlement: mock,
	}
}

// MakeRequestWithApp performs an in-process HTTP request against the app.
func MakeRequestWithApp(app *fiber.App, method, path, body string) *http.Response {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	resp, err := app.Test(req, 1000000)
	if err != nil {
		panic(err) // For standalone tests, panic on error
	}
	return resp
}
