package payments

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/minbarapp/minbar/pkg/errcodes"
	"github.com/minbarapp/minbar/pkg/models"
	"github.com/pkg/errors"
	"github.com/robinjoseph08/golib/logger"
	"github.com/uptrace/bun"
)

// IntentExpiry is how long a created intent is considered valid. It is
// recorded at creation time only; nothing here enforces it with a scheduler.
const IntentExpiry = 24 * time.Hour

type CreateIntentOptions struct {
	UserID   int
	PlanID   string
	Currency string
	Method   string
}

// StatusProjection is the read-side view of an intent's processor status.
type StatusProjection struct {
	ID       string `json:"id"`
	Status   string `json:"status"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
}

type Service struct {
	db      *bun.DB
	gateway Gateway
	log     logger.Logger
}

func NewService(db *bun.DB, gateway Gateway) *Service {
	return &Service{
		db:      db,
		gateway: gateway,
		log:     logger.New(),
	}
}

// CreateIntent resolves the plan price, creates the intent on the processor,
// and records it locally. Validation happens before the processor is called;
// processor errors surface as upstream failures.
func (svc *Service) CreateIntent(ctx context.Context, opts CreateIntentOptions) (*models.PaymentIntent, error) {
	amount, err := PriceFor(opts.Currency, opts.PlanID)
	if err != nil {
		return nil, err
	}

	currency := strings.ToUpper(opts.Currency)
	planID := strings.ToLower(opts.PlanID)

	gatewayIntent, err := svc.gateway.CreateIntent(ctx, CreateIntentRequest{
		AmountMinor: amount * 100,
		Currency:    currency,
		Method:      opts.Method,
		Description: fmt.Sprintf("Minbar %s plan for user %d", planID, opts.UserID),
	})
	if err != nil {
		svc.log.Err(err).Error("payment intent creation failed")
		return nil, errcodes.UpstreamFailure("The payment processor")
	}

	now := time.Now()
	intent := &models.PaymentIntent{
		ID:        uuid.NewString(),
		CreatedAt: now,
		ExpiresAt: now.Add(IntentExpiry),
		UserID:    opts.UserID,
		PlanID:    planID,
		// Relay the processor's fields, normalizing the amount back to
		// major units and uppercasing the currency.
		Amount:       gatewayIntent.Amount / 100,
		Currency:     strings.ToUpper(gatewayIntent.Currency),
		Status:       gatewayIntent.Status,
		Method:       opts.Method,
		ProcessorID:  gatewayIntent.ID,
		ClientSecret: gatewayIntent.ClientSecret,
	}

	_, err = svc.db.NewInsert().Model(intent).Exec(ctx)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return intent, nil
}

// RetrieveStatus reads an intent's current status from the processor. It is
// a pure pass-through: no local state is mutated.
func (svc *Service) RetrieveStatus(ctx context.Context, id string) (*StatusProjection, error) {
	intent := &models.PaymentIntent{}
	err := svc.db.NewSelect().
		Model(intent).
		Where("pi.id = ?", id).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errcodes.NotFound("Payment intent")
		}
		return nil, errors.WithStack(err)
	}

	gatewayIntent, err := svc.gateway.RetrieveIntent(ctx, intent.ProcessorID)
	if err != nil {
		svc.log.Err(err).Error("payment intent status retrieval failed")
		return nil, errcodes.UpstreamFailure("The payment processor")
	}

	return &StatusProjection{
		ID:       intent.ID,
		Status:   gatewayIntent.Status,
		Amount:   gatewayIntent.Amount / 100,
		Currency: strings.ToUpper(gatewayIntent.Currency),
	}, nil
}
