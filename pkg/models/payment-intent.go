package models

import (
	"time"

	"github.com/uptrace/bun"
)

// Payment intent statuses as relayed from the processor.
const (
	PaymentStatusRequiresPayment = "requires_payment_method"
	PaymentStatusProcessing      = "processing"
	PaymentStatusSucceeded       = "succeeded"
	PaymentStatusCanceled        = "canceled"
)

type PaymentIntent struct {
	bun.BaseModel `bun:"table:payment_intents,alias:pi"`

	ID        string    `bun:",pk" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	// ExpiresAt is fixed at creation time (24h policy); nothing in this
	// system enforces it with a scheduler.
	ExpiresAt time.Time `json:"expires_at"`
	UserID    int       `bun:"user_id" json:"user_id"`
	PlanID    string    `bun:"plan_id" json:"plan"`
	Amount    int64     `json:"amount"`
	Currency  string    `json:"currency"`
	Status    string    `json:"status"`
	Method    string    `json:"method"`
	// ProcessorID is the id of the intent on the payment processor's side,
	// used for status retrieval pass-through.
	ProcessorID  string `bun:"processor_id" json:"-"`
	ClientSecret string `bun:"-" json:"client_secret,omitempty"`
}
