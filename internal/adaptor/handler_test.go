package adaptor

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"naturehatch-backend/internal/usecase"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestHandleServiceErrorStatusCodes(t *testing.T) {
	cases := []struct {
		err  error
		code int
	}{
		{fmt.Errorf("%w: product abc", usecase.ErrNotFound), http.StatusNotFound},
		{fmt.Errorf("%w: bad quantity", usecase.ErrValidation), http.StatusBadRequest},
		{fmt.Errorf("%w: invalid credentials", usecase.ErrUnauthorized), http.StatusUnauthorized},
		{fmt.Errorf("%w: email already registered", usecase.ErrConflict), http.StatusConflict},
		{fmt.Errorf("%w: smtp down", usecase.ErrUpstream), http.StatusInternalServerError},
		{fmt.Errorf("database exploded"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		rec := httptest.NewRecorder()
		handleServiceError(rec, zap.NewNop(), tc.err, "test op")

		assert.Equal(t, tc.code, rec.Code, "error: %v", tc.err)
		assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	}
}

func TestHandleServiceErrorHidesInternalDetail(t *testing.T) {
	rec := httptest.NewRecorder()
	handleServiceError(rec, zap.NewNop(), fmt.Errorf("dial tcp 10.0.0.1:27017: timeout"), "test op")

	assert.NotContains(t, rec.Body.String(), "10.0.0.1")
}
