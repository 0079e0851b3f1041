package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"tradepost/internal/config"
	"tradepost/internal/middleware"
	"tradepost/internal/models"
	"tradepost/internal/observability"
	"tradepost/internal/repository"

	"go.opentelemetry.io/otel/attribute"
)

const distanceRequestTimeout = 5 * time.Second

// DistanceInput carries the two coordinate pairs from the detail page.
type DistanceInput struct {
	UserID        uint
	ItemLatitude  string
	ItemLongitude string
	UserLatitude  string
	UserLongitude string
}

// DistanceService proxies the Google Distance Matrix API so the browser never
// sees the API key. Any missing coordinate or upstream failure yields a null
// payload; the distance is decoration, not data the page depends on.
type DistanceService struct {
	userRepo repository.UserRepository
	apiKey   string
	baseURL  string
	client   *http.Client
}

// NewDistanceService creates a new distance service instance.
func NewDistanceService(userRepo repository.UserRepository, cfg *config.Config) *DistanceService {
	apiKey := ""
	if cfg != nil {
		apiKey = cfg.MapsAPIKey
	}
	return &DistanceService{
		userRepo: userRepo,
		apiKey:   apiKey,
		baseURL:  "https://maps.googleapis.com/maps/api/distancematrix/json",
		client:   &http.Client{Timeout: distanceRequestTimeout},
	}
}

// SetBaseURL points the service at a different upstream. Used by tests.
func (s *DistanceService) SetBaseURL(u string) {
	s.baseURL = u
}

// Lookup returns the upstream response body verbatim, or nil when any
// coordinate is missing, the key is unset, or the upstream call fails.
func (s *DistanceService) Lookup(ctx context.Context, in DistanceInput) (json.RawMessage, error) {
	if in.ItemLatitude == "" || in.ItemLongitude == "" || in.UserLatitude == "" || in.UserLongitude == "" {
		return nil, nil
	}
	if s.apiKey == "" {
		return nil, nil
	}

	unit := models.DistanceUnitImperial
	if user, err := s.userRepo.GetByID(ctx, in.UserID); err == nil && user.DistanceUnit != "" {
		unit = user.DistanceUnit
	}

	q := url.Values{}
	q.Set("origins", fmt.Sprintf("%s,%s", in.UserLatitude, in.UserLongitude))
	q.Set("destinations", fmt.Sprintf("%s,%s", in.ItemLatitude, in.ItemLongitude))
	q.Set("units", unit)
	q.Set("key", s.apiKey)

	span, ctx := observability.NewSpan(ctx, "distance.lookup")
	defer span.End()
	span.AddAttributes(attribute.String("distance.units", unit))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return nil, nil
	}

	resp, err := s.client.Do(req)
	if err != nil {
		span.SetError(err)
		middleware.Logger.WarnContext(ctx, "Distance lookup failed", slog.String("error", err.Error()))
		return nil, nil
	}
	defer resp.Body.Close()

	span.AddAttributes(attribute.Int("http.status_code", resp.StatusCode))
	if resp.StatusCode != http.StatusOK {
		middleware.Logger.WarnContext(ctx, "Distance lookup returned non-200", slog.Int("status", resp.StatusCode))
		return nil, nil
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, nil
	}
	if !json.Valid(body) {
		return nil, nil
	}
	return json.RawMessage(body), nil
}
