package translate

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

type handler struct {
	translateService *Service
}

func (h *handler) translate(c echo.Context) error {
	params := TranslatePayload{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	result := h.translateService.Translate(params.Text, params.TargetLanguage)

	return c.JSON(http.StatusOK, TranslateResponse{
		TranslatedText: result.TranslatedText,
		SourceLanguage: params.SourceLanguage,
		TargetLanguage: params.TargetLanguage,
		Fallback:       result.Fallback,
	})
}
