package oahttp_test

import (
	"fmt"
	"testing"

	"github.com/advdv/oahttp"
	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/require"
)

func TestCodeOf(t *testing.T) {
	err := oahttp.NewError(oahttp.CodeNotFound, errors.New("not found"))
	require.Equal(t, oahttp.CodeNotFound, oahttp.CodeOf(err))
	require.Equal(t, oahttp.CodeNotFound, oahttp.CodeOf(fmt.Errorf("wrapped: %w", err)))
	require.Equal(t, oahttp.CodeUnknown, oahttp.CodeOf(errors.New("bare")))
}

func TestValidationErrorKinds(t *testing.T) {
	verr := oahttp.NewValidationError(errors.New("score too high"))
	require.Equal(t, oahttp.CodeBadRequest, oahttp.CodeOf(verr))
	require.True(t, oahttp.IsValidationError(verr))
	require.Equal(t, "Bad Request: score too high", verr.Error())

	ierr := oahttp.NewInternalValidationError(errors.New("score too high"))
	require.Equal(t, oahttp.CodeInternalServerError, oahttp.CodeOf(ierr))
	require.True(t, oahttp.IsValidationError(ierr))

	require.False(t, oahttp.IsValidationError(oahttp.NewError(oahttp.CodeBadRequest, errors.New("x"))))
}
