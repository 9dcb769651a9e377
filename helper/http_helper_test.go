package helper

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"blog-engagement/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHelper(t *testing.T) *HTTPHelper {
	t.Helper()
	h, err := NewHTTPHelper(NewValidator())
	require.NoError(t, err)
	return h
}

func TestGetStatusCode(t *testing.T) {
	h := newTestHelper(t)

	cases := []struct {
		err  error
		want int
	}{
		{nil, http.StatusOK},
		{models.NewValidationError("bad", nil), http.StatusBadRequest},
		{models.NewUnauthorizedError("who"), http.StatusUnauthorized},
		{models.NewForbiddenError("no"), http.StatusForbidden},
		{models.NewNotFoundError("gone"), http.StatusNotFound},
		{fmt.Errorf("wrapped: %w", models.NewNotFoundError("gone")), http.StatusNotFound},
		{errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, h.GetStatusCode(tc.err), "%v", tc.err)
	}
}

func serviceErrorResponse(t *testing.T, h *HTTPHelper, err error) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	require.NoError(t, h.SendServiceError(c, err))

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return w, body
}

func TestSendServiceErrorValidationFields(t *testing.T) {
	h := newTestHelper(t)

	type request struct {
		Title string `json:"title" validate:"required"`
	}
	verr := h.Validate.Struct(request{})
	require.Error(t, verr)

	w, body := serviceErrorResponse(t, h, models.NewValidationError("invalid", verr))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "validationError", body["code_type"])

	fields, ok := body["code_message"].(map[string]interface{})
	require.True(t, ok)
	assert.Contains(t, fields, "title")
}

func TestSendServiceErrorStatuses(t *testing.T) {
	h := newTestHelper(t)

	w, body := serviceErrorResponse(t, h, models.NewForbiddenError("only the author"))
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "only the author", body["code_message"])

	w, body = serviceErrorResponse(t, h, errors.New("db down"))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Internal server error", body["code_message"])
}

func TestGeneratePaging(t *testing.T) {
	h := newTestHelper(t)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "http://blog.test/api/v1/articles?tag=Music", nil)

	paging := h.GeneratePaging(c, 10, 2, 35)
	assert.Equal(t, 4, paging["total_pages"])

	links := paging["links"].(map[string]interface{})
	assert.Contains(t, links["next"], "page=3")
	assert.Contains(t, links["previous"], "page=1")
	assert.Contains(t, links["next"], "tag=Music")
}
