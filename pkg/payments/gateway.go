package payments

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/segmentio/encoding/json"
)

// Gateway is the narrow contract against the payment processor. Charge
// authorization happens entirely on the processor's side; this system only
// creates intents and reads their status.
type Gateway interface {
	CreateIntent(ctx context.Context, req CreateIntentRequest) (*GatewayIntent, error)
	RetrieveIntent(ctx context.Context, processorID string) (*GatewayIntent, error)
}

// CreateIntentRequest is the processor-side creation request. AmountMinor is
// in the currency's minor units (e.g. halalas, cents).
type CreateIntentRequest struct {
	AmountMinor int64
	Currency    string
	Method      string
	Description string
}

// GatewayIntent mirrors the processor's intent representation. Fields are
// relayed verbatim.
type GatewayIntent struct {
	ID           string `json:"id"`
	Amount       int64  `json:"amount"`
	Currency     string `json:"currency"`
	Status       string `json:"status"`
	ClientSecret string `json:"client_secret"`
}

// HTTPGateway talks to a Stripe-shaped REST API with form-encoded requests
// and JSON responses.
type HTTPGateway struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

func NewHTTPGateway(baseURL, apiKey string, client *http.Client) *HTTPGateway {
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPGateway{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		apiKey:  apiKey,
		client:  client,
	}
}

func (g *HTTPGateway) CreateIntent(ctx context.Context, req CreateIntentRequest) (*GatewayIntent, error) {
	form := url.Values{}
	form.Set("amount", strconv.FormatInt(req.AmountMinor, 10))
	form.Set("currency", strings.ToLower(req.Currency))
	form.Set("payment_method_types[]", req.Method)
	if req.Description != "" {
		form.Set("description", req.Description)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+"/v1/payment_intents", strings.NewReader(form.Encode()))
	if err != nil {
		return nil, errors.WithStack(err)
	}
	httpReq.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	httpReq.Header.Set("Authorization", "Bearer "+g.apiKey)

	return g.do(httpReq)
}

func (g *HTTPGateway) RetrieveIntent(ctx context.Context, processorID string) (*GatewayIntent, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, g.baseURL+"/v1/payment_intents/"+url.PathEscape(processorID), nil)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+g.apiKey)

	return g.do(httpReq)
}

func (g *HTTPGateway) do(req *http.Request) (*GatewayIntent, error) {
	resp, err := g.client.Do(req)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	if resp.StatusCode >= http.StatusBadRequest {
		return nil, errors.Errorf("payment processor returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	intent := &GatewayIntent{}
	if err := json.Unmarshal(body, intent); err != nil {
		return nil, errors.Wrap(err, "failed to decode payment processor response")
	}

	return intent, nil
}
