package oahttp_test

import (
	"testing"

	"github.com/advdv/oahttp"
	"github.com/stretchr/testify/require"
)

func TestReverser(t *testing.T) {
	rev := oahttp.NewReverser()
	rev.Named("get-user", "GET /users/:id")
	rev.Named("get-file", "/files/*")
	rev.Named("docs", "/docs/**")
	rev.Named("home", "/")

	loc, err := rev.Reverse("get-user", "123")
	require.NoError(t, err)
	require.Equal(t, "/users/123", loc)

	loc, err = rev.Reverse("get-file", "report.pdf")
	require.NoError(t, err)
	require.Equal(t, "/files/report.pdf", loc)

	loc, err = rev.Reverse("docs", "guides/intro")
	require.NoError(t, err)
	require.Equal(t, "/docs/guides/intro", loc)

	loc, err = rev.Reverse("home")
	require.NoError(t, err)
	require.Equal(t, "/", loc)
}

func TestReverserErrors(t *testing.T) {
	rev := oahttp.NewReverser()
	rev.Named("get-user", "GET /users/:id")

	_, err := rev.Reverse("nope")
	require.ErrorContains(t, err, "no pattern named")

	_, err = rev.Reverse("get-user")
	require.ErrorContains(t, err, "needs more than")

	_, err = rev.Reverse("get-user", "1", "2")
	require.ErrorContains(t, err, "takes 1 value(s)")
}

func TestReverserDuplicateName(t *testing.T) {
	rev := oahttp.NewReverser()
	rev.Named("get-user", "GET /users/:id")

	_, err := rev.NamedPattern("get-user", "GET /other")
	require.ErrorContains(t, err, "already exists")

	require.Panics(t, func() { rev.Named("get-user", "GET /other") })
}
