package oaapp

import (
	"github.com/advdv/oahttp"
	"go.uber.org/fx"
)

// AsRoute annotates a route constructor so its [oahttp.Route] joins the "routes" value group.
// All grouped routes are registered in one batch when the app starts:
//
//	oaapp.WithFx(
//	    oaapp.AsRoute(func(rt *oaapp.Runtime[Env]) *oahttp.Route {
//	        return oahttp.NewRoute(http.MethodGet, "/items/:id", getItemOp, func() (oahttp.OperationHandlerFunc, error) {
//	            return handleGetItem(rt), nil
//	        })
//	    }),
//	)
func AsRoute(constructor any) fx.Option {
	return fx.Provide(fx.Annotate(constructor, fx.ResultTags(`group:"routes"`)))
}

// registerRoutesParams collects every route provided to the "routes" value group.
type registerRoutesParams struct {
	fx.In

	Paths  *oahttp.Paths
	Mux    *Mux
	Routes []*oahttp.Route `group:"routes"`
}

func registerRoutes(p registerRoutesParams) error {
	return oahttp.RegisterRoutes(p.Paths, p.Mux, p.Routes...)
}
