package booking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

func shopRepo(shop *models.Shop, barbers ...models.Barber) *repoMock {
	repo := &repoMock{}
	repo.On("GetShop", mock.Anything, shop.ID).Return(shop, nil)
	repo.On("ListAvailableBarbers", mock.Anything, shop.ID).Return(barbers, nil)
	for i := range barbers {
		repo.On("GetBarber", mock.Anything, barbers[i].ID).Return(&barbers[i], nil)
	}
	return repo
}

func TestAvailabilitySkipsBookedTime(t *testing.T) {
	repo := shopRepo(&models.Shop{ID: 1}, barber(1, 1, "10:00", "12:00"))
	repo.On("ListActiveForBarbers", mock.Anything, []uint{1}, []string{"2024-06-06", "2024-06-05"}).
		Return([]models.Booking{{BarberID: 1, Date: "2024-06-06", StartTime: "10:00", EndTime: "10:30"}}, nil)

	uc := NewGetAvailability(repo, atTen)

	slots, err := uc.Execute(t.Context(), AvailabilityQuery{ShopID: 1, Date: "2024-06-06", Duration: 30})
	require.NoError(t, err)
	assert.Equal(t, []string{"10:30", "10:45", "11:00", "11:15", "11:30"}, slots)
}

func TestAvailabilityAnyBarberUnion(t *testing.T) {
	repo := shopRepo(&models.Shop{ID: 1},
		barber(1, 1, "10:00", "11:00"),
		barber(2, 1, "10:00", "11:00"),
	)
	repo.On("ListActiveForBarbers", mock.Anything, []uint{1, 2}, mock.Anything).
		Return([]models.Booking{{BarberID: 1, Date: "2024-06-06", StartTime: "10:00", EndTime: "11:00"}}, nil)

	uc := NewGetAvailability(repo, atTen)

	slots, err := uc.Execute(t.Context(), AvailabilityQuery{ShopID: 1, Date: "2024-06-06", Duration: 30})
	require.NoError(t, err)
	assert.Equal(t, []string{"10:00", "10:15", "10:30"}, slots)
}

func TestAvailabilityTodayHonoursMinimumNotice(t *testing.T) {
	repo := shopRepo(&models.Shop{ID: 1, MinBookingNotice: 30}, barber(1, 1, "09:00", "12:00"))
	repo.On("ListActiveForBarbers", mock.Anything, []uint{1}, mock.Anything).Return([]models.Booking{}, nil)

	uc := NewGetAvailability(repo, atTen)

	slots, err := uc.Execute(t.Context(), AvailabilityQuery{ShopID: 1, Date: "2024-06-05"})
	require.NoError(t, err)
	assert.Equal(t, []string{"10:30", "10:45", "11:00", "11:15", "11:30"}, slots)
}

func TestAvailabilityPastDateIsEmpty(t *testing.T) {
	repo := shopRepo(&models.Shop{ID: 1}, barber(1, 1, "10:00", "12:00"))

	uc := NewGetAvailability(repo, atTen)

	slots, err := uc.Execute(t.Context(), AvailabilityQuery{ShopID: 1, Date: "2024-06-04", Duration: 30})
	require.NoError(t, err)
	assert.Empty(t, slots)
	repo.AssertNotCalled(t, "ListActiveForBarbers", mock.Anything, mock.Anything, mock.Anything)
}

func TestAvailabilityRejectsBarberOfAnotherShop(t *testing.T) {
	repo := shopRepo(&models.Shop{ID: 1}, barber(9, 2, "10:00", "12:00"))

	uc := NewGetAvailability(repo, atTen)

	_, err := uc.Execute(t.Context(), AvailabilityQuery{ShopID: 1, BarberID: uintPtr(9), Date: "2024-06-06"})
	assert.True(t, httperr.IsBusiness(err, "barber_not_found"))
}

func TestAvailabilityRejectsBadDate(t *testing.T) {
	uc := NewGetAvailability(&repoMock{}, atTen)

	_, err := uc.Execute(t.Context(), AvailabilityQuery{ShopID: 1, Date: "06/06/2024"})
	assert.True(t, httperr.IsBusiness(err, "invalid_date"))
}

func TestGetScheduleFormatsResolvedDay(t *testing.T) {
	b := barber(1, 1, "10:00", "20:00")
	b.Breaks = []models.BarberBreak{{StartTime: "13:00", EndTime: "14:00"}}
	b.SpecialHours = []models.SpecialHours{{Date: "2024-06-07", IsOpen: true, StartHour: "12:00", EndHour: "16:00"}}

	repo := &repoMock{}
	repo.On("GetBarber", mock.Anything, uint(1)).Return(&b, nil)

	uc := NewGetSchedule(repo)

	got, err := uc.Execute(t.Context(), 1, "2024-06-06")
	require.NoError(t, err)
	assert.Equal(t, ScheduleView{
		BarberID: 1,
		Date:     "2024-06-06",
		Source:   "default",
		IsOpen:   true,
		Start:    "10:00",
		End:      "20:00",
		Breaks:   []BreakView{{Start: "13:00", End: "14:00"}},
	}, got)

	special, err := uc.Execute(t.Context(), 1, "2024-06-07")
	require.NoError(t, err)
	assert.Equal(t, "special", special.Source)
	assert.Equal(t, "12:00", special.Start)
	assert.Empty(t, special.Breaks)
}
