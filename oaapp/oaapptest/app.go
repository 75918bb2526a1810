// Package oaapptest provides test helpers for oaapp applications.
//
// It constructs the identical DI graph as [oaapp.NewApp] but uses [fxtest.App] which fails the
// test immediately on DI errors.
//
// Example:
//
//	oaapptest.SetBaseEnv(t, 18081)
//	app := oaapptest.New[TestEnv](t, routing, oaapp.WithFx(fx.Provide(NewHandlers)))
//	app.RequireStart()
//	t.Cleanup(app.RequireStop)
package oaapptest

import (
	"testing"

	"github.com/advdv/oahttp/oaapp"
	"go.uber.org/fx/fxtest"
)

// App embeds *fxtest.App for testing oaapp applications.
type App struct {
	*fxtest.App
}

// New creates a test app with the same DI graph as [oaapp.NewApp].
func New[E oaapp.Environment](t testing.TB, routing any, opts ...oaapp.Option) *App {
	return &App{App: fxtest.New(t, oaapp.FxOptions[E](routing, opts...)...)}
}
