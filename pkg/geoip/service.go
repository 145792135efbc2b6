package geoip

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/pkg/errors"
	"github.com/robinjoseph08/golib/logger"
	"github.com/segmentio/encoding/json"
)

// Location is the resolved geolocation for a client. The zero value is never
// returned; lookups that fail in any way fall back to DefaultLocation.
type Location struct {
	CountryCode string `json:"country_code"`
	Country     string `json:"country"`
	City        string `json:"city"`
	Language    string `json:"language"`
	IP          string `json:"ip"`
}

// DefaultLocation is what clients receive when the provider is unreachable,
// returns an error status, or hands back something unparseable. Lookup never
// fails from the caller's point of view.
func DefaultLocation() *Location {
	return &Location{
		CountryCode: "US",
		Country:     "Unknown",
		City:        "Unknown",
		Language:    "en",
		IP:          "unknown",
	}
}

// providerResponse mirrors the ip-api.com JSON shape.
type providerResponse struct {
	Status      string `json:"status"`
	Country     string `json:"country"`
	CountryCode string `json:"countryCode"`
	City        string `json:"city"`
}

type Service struct {
	baseURL string
	client  *http.Client
	log     logger.Logger
}

func NewService(baseURL string, client *http.Client) *Service {
	if client == nil {
		client = http.DefaultClient
	}
	return &Service{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		client:  client,
		log:     logger.New(),
	}
}

// Lookup resolves the location for an IP. It always returns a usable
// Location; provider failures are logged and masked with DefaultLocation.
func (svc *Service) Lookup(ctx context.Context, ip string) *Location {
	loc, err := svc.query(ctx, ip)
	if err != nil {
		svc.log.Err(err).Data(logger.Data{"ip": ip}).Warn("geolocation lookup failed")
		return DefaultLocation()
	}
	return loc
}

func (svc *Service) query(ctx context.Context, ip string) (*Location, error) {
	if ip == "" {
		return nil, errors.New("no client ip")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, svc.baseURL+"/json/"+url.PathEscape(ip), nil)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	resp, err := svc.client.Do(req)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.Errorf("geolocation provider returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	pr := providerResponse{}
	if err := json.Unmarshal(body, &pr); err != nil {
		return nil, errors.Wrap(err, "failed to decode geolocation provider response")
	}

	// ip-api.com reports failures with a 200 and status "fail".
	if pr.Status != "success" || pr.CountryCode == "" {
		return nil, errors.Errorf("geolocation provider status %q", pr.Status)
	}

	return &Location{
		CountryCode: pr.CountryCode,
		Country:     pr.Country,
		City:        pr.City,
		Language:    LanguageFor(pr.CountryCode),
		IP:          ip,
	}, nil
}

// ClientIP extracts the originating client IP from proxy headers, falling
// back to the connection's remote address.
func ClientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		// The first entry is the original client.
		parts := strings.Split(fwd, ",")
		return strings.TrimSpace(parts[0])
	}
	if real := r.Header.Get("X-Real-IP"); real != "" {
		return strings.TrimSpace(real)
	}

	host := r.RemoteAddr
	if idx := strings.LastIndex(host, ":"); idx != -1 {
		host = host[:idx]
	}
	return strings.Trim(host, "[]")
}
