package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/FTM-BookingService/pkg/types"
)

func TestCanTransitionTo(t *testing.T) {
	cases := []struct {
		from    ReservationStatus
		to      ReservationStatus
		allowed bool
	}{
		{StatusPendiente, StatusConfirmada, true},
		{StatusPendiente, StatusCancelada, true},
		{StatusPendiente, StatusPendiente, false},
		{StatusConfirmada, StatusCancelada, true},
		{StatusConfirmada, StatusPendiente, false},
		{StatusConfirmada, StatusConfirmada, false},
		{StatusCancelada, StatusPendiente, false},
		{StatusCancelada, StatusConfirmada, false},
		{StatusCancelada, StatusCancelada, false},
	}
	for _, tc := range cases {
		r := &Reservation{Status: tc.from}
		assert.Equal(t, tc.allowed, r.CanTransitionTo(tc.to), "%s -> %s", tc.from, tc.to)
	}
}

func TestIsActive(t *testing.T) {
	assert.True(t, (&Reservation{Status: StatusPendiente}).IsActive())
	assert.True(t, (&Reservation{Status: StatusConfirmada}).IsActive())
	assert.False(t, (&Reservation{Status: StatusCancelada}).IsActive())
}

func TestValidInitialStatus(t *testing.T) {
	assert.True(t, ValidInitialStatus(StatusPendiente))
	assert.True(t, ValidInitialStatus(StatusConfirmada))
	assert.False(t, ValidInitialStatus(StatusCancelada))
}

func TestValidReservationStatus(t *testing.T) {
	st, ok := ValidReservationStatus("CONFIRMADA")
	assert.True(t, ok)
	assert.Equal(t, StatusConfirmada, st)

	_, ok = ValidReservationStatus("confirmada")
	assert.False(t, ok)
	_, ok = ValidReservationStatus("APROBADA")
	assert.False(t, ok)
}

func TestOverlapsWindow(t *testing.T) {
	date := time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)
	r := &ReservationWithWindow{
		SessionDate:      date,
		SessionStartTime: types.TimeString("10:00"),
		SessionEndTime:   types.TimeString("11:00"),
	}

	assert.True(t, r.OverlapsWindow(date, "10:30", "11:30"))
	assert.True(t, r.OverlapsWindow(date, "09:30", "10:30"))
	assert.True(t, r.OverlapsWindow(date, "09:00", "12:00"))

	// Полуоткрытые интервалы: соприкосновение границ не конфликт
	assert.False(t, r.OverlapsWindow(date, "11:00", "12:00"))
	assert.False(t, r.OverlapsWindow(date, "09:00", "10:00"))

	otherDay := date.AddDate(0, 0, 1)
	assert.False(t, r.OverlapsWindow(otherDay, "10:00", "11:00"))
}

func TestSessionHelpers(t *testing.T) {
	s := &Session{Capacity: 3, ConfirmedCount: 2}
	assert.Equal(t, 1, s.AvailableSpots())
	assert.False(t, s.IsFull())
	assert.True(t, s.IsBookable())

	s.ConfirmedCount = 3
	assert.Equal(t, 0, s.AvailableSpots())
	assert.True(t, s.IsFull())
	assert.False(t, s.IsBookable())

	s = &Session{Capacity: 5, Closed: true}
	assert.False(t, s.IsBookable())
}

func TestSessionOverlaps(t *testing.T) {
	date := time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)
	a := &Session{Date: date, StartTime: "10:00", EndTime: "11:00"}
	b := &Session{Date: date, StartTime: "10:30", EndTime: "11:30"}
	c := &Session{Date: date, StartTime: "11:00", EndTime: "12:00"}

	assert.True(t, a.Overlaps(b))
	assert.True(t, b.Overlaps(a))
	assert.False(t, a.Overlaps(c))

	d := &Session{Date: date.AddDate(0, 0, 1), StartTime: "10:00", EndTime: "11:00"}
	assert.False(t, a.Overlaps(d))
}
