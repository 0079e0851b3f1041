package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"tradepost/internal/config"
	"tradepost/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newDistanceServiceForTest(apiKey string) (*DistanceService, *MockUserRepository) {
	userRepo := new(MockUserRepository)
	svc := NewDistanceService(userRepo, &config.Config{MapsAPIKey: apiKey})
	return svc, userRepo
}

func TestDistanceLookupMissingCoordinates(t *testing.T) {
	svc, _ := newDistanceServiceForTest("key")

	body, err := svc.Lookup(context.Background(), DistanceInput{
		UserID:       1,
		ItemLatitude: "51.5",
		UserLatitude: "52.1",
		// longitudes missing
	})
	require.NoError(t, err)
	assert.Nil(t, body)
}

func TestDistanceLookupWithoutAPIKey(t *testing.T) {
	svc, _ := newDistanceServiceForTest("")

	body, err := svc.Lookup(context.Background(), DistanceInput{
		UserID:        1,
		ItemLatitude:  "51.5",
		ItemLongitude: "-0.12",
		UserLatitude:  "52.1",
		UserLongitude: "-1.3",
	})
	require.NoError(t, err)
	assert.Nil(t, body)
}

func TestDistanceLookupSuccess(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "52.1,-1.3", q.Get("origins"))
		assert.Equal(t, "51.5,-0.12", q.Get("destinations"))
		assert.Equal(t, models.DistanceUnitMetric, q.Get("units"))
		assert.Equal(t, "key", q.Get("key"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"OK","rows":[{"elements":[{"distance":{"text":"120 km"}}]}]}`))
	}))
	defer upstream.Close()

	svc, userRepo := newDistanceServiceForTest("key")
	svc.SetBaseURL(upstream.URL)
	userRepo.On("GetByID", mock.Anything, uint(1)).
		Return(&models.User{ID: 1, DistanceUnit: models.DistanceUnitMetric}, nil)

	body, err := svc.Lookup(context.Background(), DistanceInput{
		UserID:        1,
		ItemLatitude:  "51.5",
		ItemLongitude: "-0.12",
		UserLatitude:  "52.1",
		UserLongitude: "-1.3",
	})
	require.NoError(t, err)
	require.NotNil(t, body)
	assert.Contains(t, string(body), "120 km")
}

func TestDistanceLookupDefaultsToImperial(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, models.DistanceUnitImperial, r.URL.Query().Get("units"))
		w.Write([]byte(`{"status":"OK"}`))
	}))
	defer upstream.Close()

	svc, userRepo := newDistanceServiceForTest("key")
	svc.SetBaseURL(upstream.URL)
	userRepo.On("GetByID", mock.Anything, uint(1)).
		Return(nil, models.NewNotFoundError("User", 1))

	body, err := svc.Lookup(context.Background(), DistanceInput{
		UserID:        1,
		ItemLatitude:  "51.5",
		ItemLongitude: "-0.12",
		UserLatitude:  "52.1",
		UserLongitude: "-1.3",
	})
	require.NoError(t, err)
	assert.NotNil(t, body)
}

func TestDistanceLookupUpstreamFailure(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusInternalServerError)
	}))
	defer upstream.Close()

	svc, userRepo := newDistanceServiceForTest("key")
	svc.SetBaseURL(upstream.URL)
	userRepo.On("GetByID", mock.Anything, uint(1)).
		Return(&models.User{ID: 1}, nil)

	body, err := svc.Lookup(context.Background(), DistanceInput{
		UserID:        1,
		ItemLatitude:  "51.5",
		ItemLongitude: "-0.12",
		UserLatitude:  "52.1",
		UserLongitude: "-1.3",
	})
	require.NoError(t, err)
	assert.Nil(t, body)
}

func TestDistanceLookupInvalidJSON(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>not json</html>"))
	}))
	defer upstream.Close()

	svc, userRepo := newDistanceServiceForTest("key")
	svc.SetBaseURL(upstream.URL)
	userRepo.On("GetByID", mock.Anything, uint(1)).
		Return(&models.User{ID: 1}, nil)

	body, err := svc.Lookup(context.Background(), DistanceInput{
		UserID:        1,
		ItemLatitude:  "51.5",
		ItemLongitude: "-0.12",
		UserLatitude:  "52.1",
		UserLongitude: "-1.3",
	})
	require.NoError(t, err)
	assert.Nil(t, body)
}
