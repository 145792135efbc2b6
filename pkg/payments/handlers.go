package payments

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/minbarapp/minbar/pkg/errcodes"
	"github.com/pkg/errors"
)

type handler struct {
	paymentService *Service
}

func (h *handler) createIntent(c echo.Context) error {
	ctx := c.Request().Context()

	params := CreateIntentPayload{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	// The session, not the payload, decides who is paying.
	currentUserID, _ := c.Get("user_id").(int)
	if params.UserID != currentUserID {
		return errcodes.Forbidden("Creating payment intents for another user")
	}

	intent, err := h.paymentService.CreateIntent(ctx, CreateIntentOptions{
		UserID:   params.UserID,
		PlanID:   params.Plan,
		Currency: params.Currency,
		Method:   params.Method,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, intent)
}

func (h *handler) retrieveStatus(c echo.Context) error {
	ctx := c.Request().Context()

	status, err := h.paymentService.RetrieveStatus(ctx, c.Param("id"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, status)
}
