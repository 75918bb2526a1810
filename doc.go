// Package oahttp provides buffered HTTP response handling with error-returning handlers and a
// typed OpenAPI operation registry on top of the standard library's mux.
//
// # Overview
//
// oahttp extends net/http with three layers. The bottom layer buffers response writes so a
// complete response can still be rewritten when an error occurs mid-handler, and lets handlers
// return errors instead of handling them inline. The middle layer is a [ServeMux] over the
// standard library mux with middleware, named routes and express-style route patterns. The top
// layer registers OpenAPI operations together with their live routes and hands handlers a
// [RouterContext] for schema-validated parameter and body access.
//
// A minimal example:
//
//	mux := oahttp.NewServeMux()
//	router := oahttp.NewRouter(mux, oahttp.NewPaths())
//
//	router.Get("/users/:id", &oahttp.Operation{
//	    OperationID:   "get-user",
//	    RequestParams: &oahttp.RequestParams{Path: oahttp.NewStructSchema[UserParams]()},
//	    Responses: map[string]*oahttp.Response{
//	        "200": oahttp.JSONResponse(oahttp.NewStructSchema[User](), "the user"),
//	    },
//	}, func(w oahttp.ResponseWriter, r *http.Request, op *oahttp.RouterContext) error {
//	    params, err := op.Params(r)
//	    if err != nil {
//	        return err
//	    }
//	    user, err := db.GetUser(r.Context(), params.(UserParams).ID)
//	    if err != nil {
//	        return oahttp.NewError(oahttp.CodeNotFound, err)
//	    }
//	    return op.Reply(w, http.StatusOK, user)
//	})
//
// # Route Patterns
//
// Route patterns use the express-style parameter syntax: ":name" for a named segment, "*" for a
// single unnamed segment and "**" for the remainder of the path. The same pattern feeds both the
// generated document (":name" shows up as "{name}", "*" as "{param}", "**" as "{path}") and the
// live route registration on the wrapped standard library mux, so the document and the router
// never disagree on parameter names.
//
// # Validation
//
// An [Operation] may declare schemas for its path, query, header and cookie parameters, its
// request body and each of its responses. Schemas are pluggable through the [Schema] capability
// interface; [StructSchema] is the built-in engine backed by go-playground/validator. At request
// time [RouterContext.Params], [RouterContext.Query] and [RouterContext.Body] parse the raw
// values through the declared schema, or pass them through unchanged when no schema was declared.
// Failures carry [CodeBadRequest].
//
// On the way out, [RouterContext.Reply] writes the response without any runtime check, while
// [RouterContext.ValidReply] first validates body and headers against the declared response and
// fails with [CodeInternalServerError] on a violation. Use the former for trusted producing code
// on hot paths, the latter for invariant-critical or externally-derived response data.
//
// # Error Handling
//
// Handlers return errors; [ToStd] resets the buffered response and renders the status carried by
// an [*Error] (other errors are logged and rendered as a plain 500). Create status-bearing errors
// with [NewError] and the [Code] constants, or with [NewValidationError] and
// [NewInternalValidationError] for schema violations.
//
// # Tracing
//
// [WithTracing] wraps the handler chain in an OpenTelemetry SERVER span with the HTTP semantic
// convention attributes, optional request/response header capture and optional response context
// injection. It observes, records and re-returns handler errors unchanged, so it composes with
// any outer error handling.
//
// # Deferred Routes
//
// [Route] captures a method set, path, operation and a lazily-invoked handler setup so routes can
// be declared where their dependencies are constructed and registered later in one batch with
// [RegisterRoutes]. The oaapp subpackage resolves such routes through an fx dependency container.
//
// # Documents
//
// [NewDocument] assembles the OpenAPI document from everything registered on a [Paths] registry;
// [ServeDocument] serves its JSON and YAML renditions and [ServeDocsUI] mounts an interactive
// documentation page.
package oahttp
