package oahttp_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/advdv/oahttp"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

type userParams struct {
	ID int `json:"id" validate:"required,min=1"`
}

type listQuery struct {
	Limit int      `json:"limit" validate:"min=0,max=100"`
	Tags  []string `json:"tags"`
}

type createUserInput struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"required,email"`
}

type scoreOutput struct {
	Score int `json:"score" validate:"max=100"`
}

func TestParamsPassthrough(t *testing.T) {
	opctx := oahttp.NewPaths().Get("/users/:id", &oahttp.Operation{OperationID: "getUser"})

	req := httptest.NewRequest(http.MethodGet, "/users/123", nil)
	req.SetPathValue("id", "123")

	params, err := opctx.Params(req)
	require.NoError(t, err)
	require.Equal(t, map[string]string{"id": "123"}, params)
}

func TestParamsValidated(t *testing.T) {
	opctx := oahttp.NewPaths().Get("/users/:id", &oahttp.Operation{
		OperationID:   "getUser",
		RequestParams: &oahttp.RequestParams{Path: oahttp.NewStructSchema[userParams]()},
	})

	req := httptest.NewRequest(http.MethodGet, "/users/123", nil)
	req.SetPathValue("id", "123")

	params, err := opctx.Params(req)
	require.NoError(t, err)
	require.Equal(t, userParams{ID: 123}, params)

	req = httptest.NewRequest(http.MethodGet, "/users/not-a-number", nil)
	req.SetPathValue("id", "not-a-number")

	_, err = opctx.Params(req)
	require.Equal(t, oahttp.CodeBadRequest, oahttp.CodeOf(err))
	require.True(t, oahttp.IsValidationError(err))
}

func TestQueryPassthrough(t *testing.T) {
	opctx := oahttp.NewPaths().Get("/users", &oahttp.Operation{OperationID: "listUsers"})

	req := httptest.NewRequest(http.MethodGet, "/users?limit=10&tags=a&tags=b", nil)

	query, err := opctx.Query(req)
	require.NoError(t, err)
	require.Equal(t, url.Values{"limit": {"10"}, "tags": {"a", "b"}}, query)
}

func TestQueryValidated(t *testing.T) {
	opctx := oahttp.NewPaths().Get("/users", &oahttp.Operation{
		OperationID:   "listUsers",
		RequestParams: &oahttp.RequestParams{Query: oahttp.NewStructSchema[listQuery]()},
	})

	req := httptest.NewRequest(http.MethodGet, "/users?limit=10&tags=a&tags=b", nil)

	query, err := opctx.Query(req)
	require.NoError(t, err)
	require.Equal(t, listQuery{Limit: 10, Tags: []string{"a", "b"}}, query)

	req = httptest.NewRequest(http.MethodGet, "/users?limit=1000", nil)

	_, err = opctx.Query(req)
	require.Equal(t, oahttp.CodeBadRequest, oahttp.CodeOf(err))
	require.True(t, oahttp.IsValidationError(err))
}

func TestBodyJSONValidated(t *testing.T) {
	opctx := oahttp.NewPaths().Post("/users", &oahttp.Operation{
		OperationID: "createUser",
		RequestBody: oahttp.JSONRequest(oahttp.NewStructSchema[createUserInput]()),
	})

	req := httptest.NewRequest(http.MethodPost, "/users",
		strings.NewReader(`{"name":"bob","email":"bob@example.com"}`))
	req.Header.Set("Content-Type", "application/json")

	body, err := opctx.Body(req)
	require.NoError(t, err)
	require.Equal(t, createUserInput{Name: "bob", Email: "bob@example.com"}, body)

	req = httptest.NewRequest(http.MethodPost, "/users",
		strings.NewReader(`{"name":"bob","email":"not-an-email"}`))
	req.Header.Set("Content-Type", "application/json")

	_, err = opctx.Body(req)
	require.Equal(t, oahttp.CodeBadRequest, oahttp.CodeOf(err))
	require.True(t, oahttp.IsValidationError(err))

	req = httptest.NewRequest(http.MethodPost, "/users", strings.NewReader(`{not json`))
	req.Header.Set("Content-Type", "application/json")

	_, err = opctx.Body(req)
	require.Equal(t, oahttp.CodeBadRequest, oahttp.CodeOf(err))
}

func TestBodyFormValidated(t *testing.T) {
	opctx := oahttp.NewPaths().Post("/users", &oahttp.Operation{
		OperationID: "createUser",
		RequestBody: oahttp.JSONRequest(oahttp.NewStructSchema[createUserInput]()),
	})

	form := url.Values{"name": {"bob"}, "email": {"bob@example.com"}}
	req := httptest.NewRequest(http.MethodPost, "/users", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	body, err := opctx.Body(req)
	require.NoError(t, err)
	require.Equal(t, createUserInput{Name: "bob", Email: "bob@example.com"}, body)
}

func TestBodyPassthrough(t *testing.T) {
	opctx := oahttp.NewPaths().Post("/events", &oahttp.Operation{OperationID: "postEvent"})

	req := httptest.NewRequest(http.MethodPost, "/events", strings.NewReader(`{"kind":"ping"}`))
	req.Header.Set("Content-Type", "application/json")

	body, err := opctx.Body(req)
	require.NoError(t, err)
	require.Equal(t, map[string]any{"kind": "ping"}, body)
}

func TestBodyEmptyPassthrough(t *testing.T) {
	opctx := oahttp.NewPaths().Post("/events", &oahttp.Operation{OperationID: "postEvent"})

	req := httptest.NewRequest(http.MethodPost, "/events", nil)

	body, err := opctx.Body(req)
	require.NoError(t, err)
	require.Nil(t, body)
}

func TestBodyUnsupportedMediaType(t *testing.T) {
	opctx := oahttp.NewPaths().Post("/events", &oahttp.Operation{OperationID: "postEvent"})

	req := httptest.NewRequest(http.MethodPost, "/events", strings.NewReader("--boundary--"))
	req.Header.Set("Content-Type", "multipart/form-data; boundary=boundary")

	_, err := opctx.Body(req)
	require.Equal(t, oahttp.CodeUnsupportedMediaType, oahttp.CodeOf(err))
	require.False(t, oahttp.IsValidationError(err))
}

func TestReplyWritesUnchecked(t *testing.T) {
	opctx := oahttp.NewPaths().Get("/score", &oahttp.Operation{
		OperationID: "getScore",
		Responses: map[string]*oahttp.Response{
			"200": oahttp.JSONResponse(oahttp.NewStructSchema[scoreOutput](), "the score"),
		},
	})

	rec := httptest.NewRecorder()
	bresp := oahttp.NewBufferResponse(rec, -1)
	defer bresp.Free()

	// 150 violates the declared maximum but the unchecked path lets it pass.
	require.NoError(t, opctx.Reply(bresp, http.StatusOK, scoreOutput{Score: 150}))
	require.NoError(t, bresp.FlushBuffer())

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	require.Equal(t, int64(150), gjson.Get(rec.Body.String(), "score").Int())
}

func TestValidReplyRejectsInvalidBody(t *testing.T) {
	opctx := oahttp.NewPaths().Get("/score", &oahttp.Operation{
		OperationID: "getScore",
		Responses: map[string]*oahttp.Response{
			"200": oahttp.JSONResponse(oahttp.NewStructSchema[scoreOutput](), "the score"),
		},
	})

	rec := httptest.NewRecorder()
	bresp := oahttp.NewBufferResponse(rec, -1)
	defer bresp.Free()

	err := opctx.ValidReply(bresp, http.StatusOK, scoreOutput{Score: 150})
	require.Equal(t, oahttp.CodeInternalServerError, oahttp.CodeOf(err))
	require.True(t, oahttp.IsValidationError(err))
}

func TestValidReplyValidBody(t *testing.T) {
	opctx := oahttp.NewPaths().Get("/score", &oahttp.Operation{
		OperationID: "getScore",
		Responses: map[string]*oahttp.Response{
			"200": oahttp.JSONResponse(oahttp.NewStructSchema[scoreOutput](), "the score"),
		},
	})

	rec := httptest.NewRecorder()
	bresp := oahttp.NewBufferResponse(rec, -1)
	defer bresp.Free()

	require.NoError(t, opctx.ValidReply(bresp, http.StatusOK, scoreOutput{Score: 90}))
	require.NoError(t, bresp.FlushBuffer())
	require.Equal(t, int64(90), gjson.Get(rec.Body.String(), "score").Int())
}

func TestValidReplyDefaultResponse(t *testing.T) {
	opctx := oahttp.NewPaths().Get("/score", &oahttp.Operation{
		OperationID: "getScore",
		Responses: map[string]*oahttp.Response{
			"default": oahttp.JSONResponse(oahttp.NewStructSchema[scoreOutput](), "fallback"),
		},
	})

	rec := httptest.NewRecorder()
	bresp := oahttp.NewBufferResponse(rec, -1)
	defer bresp.Free()

	err := opctx.ValidReply(bresp, http.StatusTeapot, scoreOutput{Score: 150})
	require.Equal(t, oahttp.CodeInternalServerError, oahttp.CodeOf(err))
}

type cacheHeaders struct {
	CacheControl string `json:"Cache-Control" validate:"required"`
}

func TestValidReplyHeaders(t *testing.T) {
	opctx := oahttp.NewPaths().Get("/score", &oahttp.Operation{
		OperationID: "getScore",
		Responses: map[string]*oahttp.Response{
			"200": oahttp.JSONResponse(oahttp.NewStructSchema[scoreOutput](), "the score",
				oahttp.WithResponseHeaders(oahttp.NewStructSchema[cacheHeaders]())),
		},
	})

	rec := httptest.NewRecorder()
	bresp := oahttp.NewBufferResponse(rec, -1)
	defer bresp.Free()

	// a required header that is missing is a server-side contract violation.
	err := opctx.ValidReply(bresp, http.StatusOK, scoreOutput{Score: 10})
	require.Equal(t, oahttp.CodeInternalServerError, oahttp.CodeOf(err))

	bresp.Reset()

	require.NoError(t, opctx.ValidReply(bresp, http.StatusOK, scoreOutput{Score: 10},
		map[string]string{"Cache-Control": "no-store"}))
	require.NoError(t, bresp.FlushBuffer())
	require.Equal(t, "no-store", rec.Header().Get("Cache-Control"))
}
