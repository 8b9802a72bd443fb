package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/salon-scheduler/internal/actor"
	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/booking"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/lock"
	"github.com/BruksfildServices01/salon-scheduler/internal/middleware"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	"github.com/BruksfildServices01/salon-scheduler/internal/scheduler"
	"github.com/BruksfildServices01/salon-scheduler/internal/timezone"
	ucbooking "github.com/BruksfildServices01/salon-scheduler/internal/usecase/booking"
	"github.com/BruksfildServices01/salon-scheduler/internal/validators"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	if err := validators.RegisterGin(); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

// shopFixture serves one shop with one barber open 10:00-12:00. Methods the
// tests never reach panic through the nil embedded interface.
type shopFixture struct {
	domain.Repository
	barber models.Barber
}

func (f *shopFixture) GetShop(_ context.Context, id uint) (*models.Shop, error) {
	if id != 1 {
		return nil, httperr.ErrBusiness("shop_not_found")
	}
	return &models.Shop{ID: 1}, nil
}

func (f *shopFixture) ListAvailableBarbers(context.Context, uint) ([]models.Barber, error) {
	return []models.Barber{f.barber}, nil
}

func (f *shopFixture) GetBarber(_ context.Context, id uint) (*models.Barber, error) {
	if id != f.barber.ID {
		return nil, httperr.ErrBusiness("barber_not_found")
	}
	b := f.barber
	return &b, nil
}

func (f *shopFixture) ListActiveForBarbers(context.Context, []uint, []string) ([]models.Booking, error) {
	return []models.Booking{{BarberID: 1, Date: "2024-06-06", StartTime: "10:00", EndTime: "11:00"}}, nil
}

func newAvailabilityRouter() *gin.Engine {
	repo := &shopFixture{barber: models.Barber{ID: 1, ShopID: 1, StartHour: "10:00", EndHour: "12:00", IsAvailable: true}}
	clock := timezone.FixedClock(time.Date(2024, 6, 5, 10, 0, 0, 0, timezone.Business))

	h := NewAvailabilityHandler(ucbooking.NewGetAvailability(repo, clock), ucbooking.NewGetSchedule(repo))

	r := gin.New()
	r.GET("/shops/:shopId/availability", h.Slots)
	r.GET("/barbers/:barberId/schedule", h.Schedule)
	return r
}

func get(r http.Handler, url string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, url, nil))
	return w
}

func TestAvailabilityEndpoint(t *testing.T) {
	r := newAvailabilityRouter()

	w := get(r, "/shops/1/availability?date=2024-06-06&duration=30")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var body struct {
		Date  string   `json:"date"`
		Slots []string `json:"slots"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "2024-06-06", body.Date)
	assert.Equal(t, []string{"11:00", "11:15", "11:30"}, body.Slots)
}

func TestAvailabilityEndpointErrors(t *testing.T) {
	r := newAvailabilityRouter()

	tests := []struct {
		url    string
		status int
		code   string
	}{
		{"/shops/1/availability", http.StatusBadRequest, "invalid_request"},
		{"/shops/1/availability?date=2024-6-6", http.StatusBadRequest, "invalid_request"},
		{"/shops/x/availability?date=2024-06-06", http.StatusBadRequest, "invalid_shopId"},
		{"/shops/2/availability?date=2024-06-06", http.StatusNotFound, "shop_not_found"},
		{"/barbers/9/schedule?date=2024-06-06", http.StatusNotFound, "barber_not_found"},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			w := get(r, tt.url)
			assert.Equal(t, tt.status, w.Code)

			var e httperr.HTTPError
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &e))
			assert.Equal(t, tt.code, e.Code)
		})
	}
}

func TestScheduleEndpoint(t *testing.T) {
	w := get(newAvailabilityRouter(), "/barbers/1/schedule?date=2024-06-06")
	require.Equal(t, http.StatusOK, w.Code)

	var view ucbooking.ScheduleView
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &view))
	assert.Equal(t, "10:00", view.Start)
	assert.Equal(t, "12:00", view.End)
	assert.Equal(t, "default", view.Source)
}

func withActor(a actor.Actor) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.ContextActor, a)
		c.Next()
	}
}

func TestCreateBookingRejectsMalformedBody(t *testing.T) {
	h := NewBookingHandler(nil, nil, nil)

	r := gin.New()
	r.POST("/bookings", withActor(actor.Actor{UserID: 7, Role: actor.RoleUser}), h.Create)

	for _, body := range []string{
		`{"shopId":1,"date":"2024-06-06","startTime":"9:00"}`,
		`{"shopId":1,"date":"06-06-2024","startTime":"09:00"}`,
		`{"date":"2024-06-06","startTime":"09:00"}`,
		`{"shopId":1,"date":"2024-06-06","startTime":"09:00","type":"vip"}`,
	} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/bookings", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code, body)
	}
}

func TestCreateWalkInNeedsShopAccess(t *testing.T) {
	h := NewBookingHandler(nil, nil, nil)

	r := gin.New()
	r.POST("/bookings", withActor(actor.Actor{UserID: 7, Role: actor.RoleUser}), h.Create)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/bookings",
		strings.NewReader(`{"shopId":1,"date":"2024-06-06","startTime":"09:00","type":"walk-in"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestJobsEndpoint(t *testing.T) {
	sched := scheduler.New(lock.Noop{}, time.Minute, zap.NewNop())
	runs := 0
	require.NoError(t, sched.RegisterPeriodicTask("missed-sweep", "@every 30m", func(context.Context) error {
		runs++
		return nil
	}))

	r := gin.New()
	r.POST("/admin/jobs/:name/run", NewJobsHandler(sched).Run)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/admin/jobs/missed-sweep/run", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"task":"missed-sweep","ran":true}`, w.Body.String())
	assert.Equal(t, 1, runs)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/admin/jobs/unknown/run", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}
