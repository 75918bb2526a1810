package oahttp_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/advdv/oahttp"
	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

func TestRouteLazySetup(t *testing.T) {
	var setups int

	route := oahttp.NewRoute(http.MethodGet, "/users/:id", &oahttp.Operation{OperationID: "getUser"},
		func() (oahttp.OperationHandlerFunc, error) {
			setups++

			return func(w oahttp.ResponseWriter, r *http.Request, op *oahttp.RouterContext) error {
				return op.Reply(w, http.StatusOK, map[string]string{"id": r.PathValue("id")})
			}, nil
		})

	// declaring the route does not run setup.
	require.Equal(t, 0, setups)

	paths, mux := oahttp.NewPaths(), oahttp.NewServeMux()
	require.NoError(t, route.Register(paths, mux))
	require.Equal(t, 1, setups)

	// a second registration re-uses the resolved handler.
	require.NoError(t, route.Register(oahttp.NewPaths(), oahttp.NewServeMux()))
	require.Equal(t, 1, setups)

	require.NotNil(t, paths.Item("/users/{id}"))

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/users/7", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "7", gjson.Get(rec.Body.String(), "id").String())
}

func TestRouteSetupError(t *testing.T) {
	route := oahttp.NewRoute(http.MethodGet, "/broken", &oahttp.Operation{OperationID: "broken"},
		func() (oahttp.OperationHandlerFunc, error) {
			return nil, errors.New("missing dependency")
		})

	err := route.Register(oahttp.NewPaths(), oahttp.NewServeMux())
	require.ErrorContains(t, err, "setup route GET /broken")
	require.ErrorContains(t, err, "missing dependency")
}

func TestRouteOptions(t *testing.T) {
	var order []string

	mw := func(tag string) oahttp.Middleware {
		return func(next oahttp.Handler) oahttp.Handler {
			return oahttp.HandlerFunc(func(w oahttp.ResponseWriter, r *http.Request) error {
				order = append(order, tag)
				return next.ServeOAHTTP(w, r)
			})
		}
	}

	route := oahttp.NewRoute(http.MethodGet, "/users/:id", &oahttp.Operation{OperationID: "getUser"},
		func() (oahttp.OperationHandlerFunc, error) {
			return func(w oahttp.ResponseWriter, r *http.Request, op *oahttp.RouterContext) error {
				order = append(order, "handler")
				return op.Reply(w, http.StatusOK, nil)
			}, nil
		},
		oahttp.WithRouteName("get-user"),
		oahttp.WithRouteMiddleware(mw("outer"), mw("inner")),
	)

	mux := oahttp.NewServeMux()
	require.NoError(t, route.Register(oahttp.NewPaths(), mux))

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/users/7", nil))
	require.Equal(t, []string{"outer", "inner", "handler"}, order)

	loc, err := mux.Reverse("get-user", "7")
	require.NoError(t, err)
	require.Equal(t, "/users/7", loc)
}

func TestRegisterRoutesBatch(t *testing.T) {
	okRoute := func(id, path string) *oahttp.Route {
		return oahttp.NewRoute(http.MethodGet, path, &oahttp.Operation{OperationID: id},
			func() (oahttp.OperationHandlerFunc, error) {
				return func(w oahttp.ResponseWriter, r *http.Request, op *oahttp.RouterContext) error {
					return op.Reply(w, http.StatusOK, nil)
				}, nil
			})
	}

	paths := oahttp.NewPaths()
	require.NoError(t, oahttp.RegisterRoutes(paths, oahttp.NewServeMux(),
		okRoute("listUsers", "/users"),
		okRoute("listTeams", "/teams"),
	))
	require.Len(t, paths.Items(), 2)

	err := oahttp.RegisterRoutes(oahttp.NewPaths(), oahttp.NewServeMux(),
		okRoute("listUsers", "/users"),
		oahttp.NewRoute(http.MethodGet, "/broken", &oahttp.Operation{OperationID: "broken"},
			func() (oahttp.OperationHandlerFunc, error) {
				return nil, errors.New("nope")
			}),
	)
	require.ErrorContains(t, err, "setup route GET /broken")
}

func TestRouteMultipleMethods(t *testing.T) {
	paths := oahttp.NewPaths()
	mux := oahttp.NewServeMux()

	route := oahttp.NewRouteMethods([]string{http.MethodGet, http.MethodPost}, "/ping",
		&oahttp.Operation{OperationID: "ping"},
		func() (oahttp.OperationHandlerFunc, error) {
			return func(w oahttp.ResponseWriter, r *http.Request, op *oahttp.RouterContext) error {
				return op.Reply(w, http.StatusOK, map[string]string{"method": r.Method})
			}, nil
		})

	require.NoError(t, route.Register(paths, mux))
	require.Len(t, paths.Item("/ping"), 2)

	for _, method := range []string{http.MethodGet, http.MethodPost} {
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, httptest.NewRequest(method, "/ping", nil))
		require.Equal(t, method, gjson.Get(rec.Body.String(), "method").String())
	}
}
