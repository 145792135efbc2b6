package payments

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/minbarapp/minbar/pkg/errcodes"
	"github.com/minbarapp/minbar/pkg/models"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"
)

func setupTestDB(t *testing.T) *bun.DB {
	t.Helper()

	sqldb, err := sql.Open(sqliteshim.ShimName, ":memory:")
	require.NoError(t, err)

	db := bun.NewDB(sqldb, sqlitedialect.New())

	_, err = db.Exec(`
		CREATE TABLE payment_intents (
			id TEXT PRIMARY KEY,
			created_at TIMESTAMPTZ NOT NULL,
			expires_at TIMESTAMPTZ NOT NULL,
			user_id INTEGER NOT NULL,
			plan_id TEXT NOT NULL,
			amount INTEGER NOT NULL,
			currency TEXT NOT NULL,
			status TEXT NOT NULL,
			method TEXT NOT NULL,
			processor_id TEXT NOT NULL
		)
	`)
	require.NoError(t, err)

	t.Cleanup(func() {
		db.Close()
	})

	return db
}

// fakeGateway records the requests it receives and answers from canned
// responses.
type fakeGateway struct {
	createReqs  []CreateIntentRequest
	createResp  *GatewayIntent
	createErr   error
	retrieveIDs []string
	retrieveFn  func(processorID string) (*GatewayIntent, error)
}

func (g *fakeGateway) CreateIntent(ctx context.Context, req CreateIntentRequest) (*GatewayIntent, error) {
	g.createReqs = append(g.createReqs, req)
	if g.createErr != nil {
		return nil, g.createErr
	}
	return g.createResp, nil
}

func (g *fakeGateway) RetrieveIntent(ctx context.Context, processorID string) (*GatewayIntent, error) {
	g.retrieveIDs = append(g.retrieveIDs, processorID)
	return g.retrieveFn(processorID)
}

func TestPriceFor(t *testing.T) {
	t.Run("resolves the basic SAR plan", func(tt *testing.T) {
		amount, err := PriceFor("SAR", "basic")
		require.NoError(tt, err)
		assert.Equal(tt, int64(49), amount)
	})

	t.Run("is case insensitive", func(tt *testing.T) {
		amount, err := PriceFor("sar", "PREMIUM")
		require.NoError(tt, err)
		assert.Equal(tt, int64(99), amount)
	})

	t.Run("rejects an unknown currency", func(tt *testing.T) {
		_, err := PriceFor("GBP", "basic")
		require.Error(tt, err)
		assert.True(tt, errors.Is(err, errcodes.ValidationError(`"GBP" is not a supported currency`)))
	})

	t.Run("rejects an unknown plan instead of defaulting the amount", func(tt *testing.T) {
		_, err := PriceFor("SAR", "enterprise")
		require.Error(tt, err)
		errcodesErr := &errcodes.Error{}
		require.ErrorAs(tt, err, &errcodesErr)
		assert.Equal(tt, 422, errcodesErr.HTTPCode)
	})
}

func TestCreateIntent(t *testing.T) {
	t.Run("creates and persists an intent", func(tt *testing.T) {
		db := setupTestDB(tt)
		gateway := &fakeGateway{
			createResp: &GatewayIntent{
				ID:           "pi_test_123",
				Amount:       4900,
				Currency:     "sar",
				Status:       models.PaymentStatusRequiresPayment,
				ClientSecret: "pi_test_123_secret",
			},
		}
		svc := NewService(db, gateway)

		intent, err := svc.CreateIntent(context.Background(), CreateIntentOptions{
			UserID:   7,
			PlanID:   "basic",
			Currency: "sar",
			Method:   "card",
		})
		require.NoError(tt, err)

		// The processor is asked for the amount in minor units.
		require.Len(tt, gateway.createReqs, 1)
		assert.Equal(tt, int64(4900), gateway.createReqs[0].AmountMinor)
		assert.Equal(tt, "SAR", gateway.createReqs[0].Currency)

		// The stored intent relays the processor's fields normalized back
		// to major units.
		assert.NotEmpty(tt, intent.ID)
		assert.Equal(tt, int64(49), intent.Amount)
		assert.Equal(tt, "SAR", intent.Currency)
		assert.Equal(tt, models.PaymentStatusRequiresPayment, intent.Status)
		assert.Equal(tt, "pi_test_123", intent.ProcessorID)
		assert.Equal(tt, "pi_test_123_secret", intent.ClientSecret)
		assert.WithinDuration(tt, intent.CreatedAt.Add(IntentExpiry), intent.ExpiresAt, time.Second)

		stored := &models.PaymentIntent{}
		err = db.NewSelect().Model(stored).Where("pi.id = ?", intent.ID).Scan(context.Background())
		require.NoError(tt, err)
		assert.Equal(tt, 7, stored.UserID)
		assert.Equal(tt, "basic", stored.PlanID)
	})

	t.Run("rejects an unknown plan before calling the processor", func(tt *testing.T) {
		db := setupTestDB(tt)
		gateway := &fakeGateway{}
		svc := NewService(db, gateway)

		_, err := svc.CreateIntent(context.Background(), CreateIntentOptions{
			UserID:   7,
			PlanID:   "enterprise",
			Currency: "SAR",
			Method:   "card",
		})
		require.Error(tt, err)
		assert.Empty(tt, gateway.createReqs)

		errcodesErr := &errcodes.Error{}
		require.ErrorAs(tt, err, &errcodesErr)
		assert.Equal(tt, 422, errcodesErr.HTTPCode)
	})

	t.Run("maps processor failure to an upstream error", func(tt *testing.T) {
		db := setupTestDB(tt)
		gateway := &fakeGateway{createErr: errors.New("connection refused")}
		svc := NewService(db, gateway)

		_, err := svc.CreateIntent(context.Background(), CreateIntentOptions{
			UserID:   7,
			PlanID:   "basic",
			Currency: "SAR",
			Method:   "card",
		})
		require.Error(tt, err)
		assert.True(tt, errors.Is(err, errcodes.UpstreamFailure("The payment processor")))

		// Nothing is persisted for a failed creation.
		count, countErr := db.NewSelect().Model((*models.PaymentIntent)(nil)).Count(context.Background())
		require.NoError(tt, countErr)
		assert.Zero(tt, count)
	})
}

func TestRetrieveStatus(t *testing.T) {
	t.Run("relays the processor status without mutating the row", func(tt *testing.T) {
		db := setupTestDB(tt)
		gateway := &fakeGateway{
			createResp: &GatewayIntent{
				ID:       "pi_test_456",
				Amount:   9900,
				Currency: "sar",
				Status:   models.PaymentStatusRequiresPayment,
			},
		}
		svc := NewService(db, gateway)

		intent, err := svc.CreateIntent(context.Background(), CreateIntentOptions{
			UserID:   7,
			PlanID:   "premium",
			Currency: "SAR",
			Method:   "card",
		})
		require.NoError(tt, err)

		gateway.retrieveFn = func(processorID string) (*GatewayIntent, error) {
			return &GatewayIntent{
				ID:       processorID,
				Amount:   9900,
				Currency: "sar",
				Status:   models.PaymentStatusSucceeded,
			}, nil
		}

		status, err := svc.RetrieveStatus(context.Background(), intent.ID)
		require.NoError(tt, err)
		assert.Equal(tt, intent.ID, status.ID)
		assert.Equal(tt, models.PaymentStatusSucceeded, status.Status)
		assert.Equal(tt, int64(99), status.Amount)
		assert.Equal(tt, []string{"pi_test_456"}, gateway.retrieveIDs)

		// The local row keeps its creation-time status.
		stored := &models.PaymentIntent{}
		err = db.NewSelect().Model(stored).Where("pi.id = ?", intent.ID).Scan(context.Background())
		require.NoError(tt, err)
		assert.Equal(tt, models.PaymentStatusRequiresPayment, stored.Status)
	})

	t.Run("returns not found for an unknown intent", func(tt *testing.T) {
		db := setupTestDB(tt)
		svc := NewService(db, &fakeGateway{})

		_, err := svc.RetrieveStatus(context.Background(), "missing")
		require.Error(tt, err)
		assert.True(tt, errors.Is(err, errcodes.NotFound("Payment intent")))
	})

	t.Run("maps processor failure to an upstream error", func(tt *testing.T) {
		db := setupTestDB(tt)
		gateway := &fakeGateway{
			createResp: &GatewayIntent{ID: "pi_test_789", Amount: 4900, Currency: "sar", Status: models.PaymentStatusProcessing},
		}
		svc := NewService(db, gateway)

		intent, err := svc.CreateIntent(context.Background(), CreateIntentOptions{
			UserID:   7,
			PlanID:   "basic",
			Currency: "SAR",
			Method:   "card",
		})
		require.NoError(tt, err)

		gateway.retrieveFn = func(string) (*GatewayIntent, error) {
			return nil, errors.New("timeout")
		}

		_, err = svc.RetrieveStatus(context.Background(), intent.ID)
		require.Error(tt, err)
		assert.True(tt, errors.Is(err, errcodes.UpstreamFailure("The payment processor")))
	})
}
