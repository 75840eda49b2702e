package httputil

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOKData(t *testing.T) {
	t.Run("empty slice is kept in the body", func(t *testing.T) {
		rec := httptest.NewRecorder()
		OKData(rec, 200, []string{})

		assert.JSONEq(t, `{"success":true,"data":[]}`, rec.Body.String())
	})

	t.Run("nil data is omitted", func(t *testing.T) {
		rec := httptest.NewRecorder()
		OKData(rec, 200, nil)

		assert.JSONEq(t, `{"success":true}`, rec.Body.String())
	})
}

func TestOK(t *testing.T) {
	rec := httptest.NewRecorder()
	OK(rec, 200, "Successfully unsubscribed")

	assert.Equal(t, 200, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"success":true,"message":"Successfully unsubscribed"}`, rec.Body.String())
}

func TestFail(t *testing.T) {
	rec := httptest.NewRecorder()
	Fail(rec, 400, "Invalid email format")

	assert.Equal(t, 400, rec.Code)
	assert.JSONEq(t, `{"success":false,"error":"Invalid email format"}`, rec.Body.String())
}
