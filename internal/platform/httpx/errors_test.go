package httpx_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/solvaders/clubhub/internal/platform/httpx"
	"github.com/solvaders/clubhub/internal/shared"
	_ "github.com/solvaders/clubhub/testing"
)

func TestRespondErrorMapping(t *testing.T) {
	cases := []struct {
		err    error
		status int
		code   string
	}{
		{shared.ErrDuplicateEmail, http.StatusConflict, "DuplicateEmail"},
		{shared.ErrDuplicate, http.StatusConflict, "Conflict"},
		{shared.ErrInvalidCredentials, http.StatusUnauthorized, "InvalidCredentials"},
		{shared.ErrTokenExpired, http.StatusUnauthorized, "TokenExpired"},
		{shared.ErrUnauthenticated, http.StatusUnauthorized, "Unauthenticated"},
		{shared.ErrForbidden, http.StatusForbidden, "insufficient permissions"},
		{shared.ErrNotFound, http.StatusNotFound, "NotFound"},
		{shared.ErrWeakPassword, http.StatusBadRequest, "WeakPassword"},
		{shared.ErrValidation, http.StatusBadRequest, "ValidationError"},
		{errors.New("pg: connection refused"), http.StatusInternalServerError, "internal server error"},
	}
	for _, tc := range cases {
		t.Run(tc.code, func(t *testing.T) {
			res := httptest.NewRecorder()
			httpx.RespondError(res, tc.err)

			assert.Equal(t, tc.status, res.Code)
			var body httpx.ErrorBody
			require.NoError(t, json.NewDecoder(res.Body).Decode(&body))
			assert.Equal(t, tc.code, body.Error)
		})
	}
}

func TestRespondErrorHidesInternals(t *testing.T) {
	res := httptest.NewRecorder()
	httpx.RespondError(res, errors.New("dial tcp 10.0.0.5:5432: connect: refused"))
	assert.NotContains(t, res.Body.String(), "10.0.0.5")
}

func TestValidationFields(t *testing.T) {
	res := httptest.NewRecorder()
	httpx.ValidationFields(res, []string{"email", "password"})

	assert.Equal(t, http.StatusBadRequest, res.Code)
	var body httpx.ErrorBody
	require.NoError(t, json.NewDecoder(res.Body).Decode(&body))
	assert.Equal(t, "ValidationError", body.Error)
	assert.Equal(t, []string{"email", "password"}, body.Fields)
}
