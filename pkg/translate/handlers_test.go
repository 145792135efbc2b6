package translate

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/minbarapp/minbar/pkg/binder"
	"github.com/minbarapp/minbar/pkg/errcodes"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) *echo.Echo {
	t.Helper()

	e := echo.New()
	b, err := binder.New()
	require.NoError(t, err)
	e.Binder = b
	e.HTTPErrorHandler = errcodes.NewHandler().Handle

	RegisterRoutes(e)
	return e
}

func postTranslate(t *testing.T, e *echo.Echo, payload string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/translate", strings.NewReader(payload))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestTranslateHandler(t *testing.T) {
	t.Run("translates a known phrase", func(tt *testing.T) {
		e := newTestServer(tt)

		rec := postTranslate(tt, e, `{"text":"Welcome","targetLanguage":"ar","sourceLanguage":"en"}`)
		require.Equal(tt, http.StatusOK, rec.Code)

		resp := TranslateResponse{}
		require.NoError(tt, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(tt, "أهلاً وسهلاً", resp.TranslatedText)
		assert.Equal(tt, "en", resp.SourceLanguage)
		assert.Equal(tt, "ar", resp.TargetLanguage)
		assert.False(tt, resp.Fallback)
	})

	t.Run("tags an unknown phrase", func(tt *testing.T) {
		e := newTestServer(tt)

		rec := postTranslate(tt, e, `{"text":"Good evening","targetLanguage":"ar"}`)
		require.Equal(tt, http.StatusOK, rec.Code)

		resp := TranslateResponse{}
		require.NoError(tt, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(tt, "[AR] Good evening", resp.TranslatedText)
		assert.True(tt, resp.Fallback)
	})

	t.Run("rejects a missing text", func(tt *testing.T) {
		e := newTestServer(tt)

		rec := postTranslate(tt, e, `{"targetLanguage":"ar"}`)
		assert.Equal(tt, http.StatusUnprocessableEntity, rec.Code)
	})

	t.Run("rejects a malformed language tag", func(tt *testing.T) {
		e := newTestServer(tt)

		rec := postTranslate(tt, e, `{"text":"Welcome","targetLanguage":"not a language"}`)
		assert.Equal(tt, http.StatusUnprocessableEntity, rec.Code)
	})
}
