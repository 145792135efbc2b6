package payments

// CreateIntentPayload represents the request body for creating a payment
// intent.
type CreateIntentPayload struct {
	UserID   int    `json:"userId" validate:"required"`
	Plan     string `json:"plan" mod:"trim,lcase" validate:"required"`
	Currency string `json:"currency" mod:"trim,ucase" validate:"required,len=3"`
	Method   string `json:"method" default:"card" validate:"oneof=card mada stcpay applepay"`
}
