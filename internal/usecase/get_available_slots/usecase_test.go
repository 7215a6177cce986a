package get_available_slots

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/FTM-BookingService/internal/domain"
	"github.com/m04kA/FTM-BookingService/pkg/ptr"
	"github.com/m04kA/FTM-BookingService/pkg/types"
)

type fakeSessionRepo struct {
	sessions []*domain.Session
}

func (f *fakeSessionRepo) GetByTrainerAndDate(_ context.Context, trainerID int64, date time.Time) ([]*domain.Session, error) {
	var out []*domain.Session
	for _, s := range f.sessions {
		if s.TrainerID == trainerID && s.Date.Equal(date) {
			out = append(out, s)
		}
	}
	return out, nil
}

type fakeTemplateRepo struct {
	templates []*domain.AvailabilityTemplate
}

func (f *fakeTemplateRepo) GetByTrainerID(_ context.Context, trainerID int64, day *domain.DayOfWeek) ([]*domain.AvailabilityTemplate, error) {
	var out []*domain.AvailabilityTemplate
	for _, t := range f.templates {
		if t.TrainerID != trainerID {
			continue
		}
		if day != nil && t.DayOfWeek != *day {
			continue
		}
		out = append(out, t)
	}
	return out, nil
}

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

func TestExecute_MergesSessionsAndTemplates(t *testing.T) {
	monday := time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)

	sessions := &fakeSessionRepo{sessions: []*domain.Session{
		{
			ID:               10,
			TrainerID:        100,
			SourceTemplateID: ptr.Ptr(int64(1)),
			Date:             monday,
			StartTime:        types.TimeString("09:00"),
			EndTime:          types.TimeString("10:00"),
			Capacity:         5,
			ConfirmedCount:   3,
		},
	}}
	templates := &fakeTemplateRepo{templates: []*domain.AvailabilityTemplate{
		{
			ID:        1, // уже материализован сессией 10
			TrainerID: 100,
			DayOfWeek: domain.DayMonday,
			StartTime: types.TimeString("09:00"),
			EndTime:   types.TimeString("10:00"),
			Capacity:  ptr.Ptr(5),
		},
		{
			ID:        2, // ещё не материализован
			TrainerID: 100,
			DayOfWeek: domain.DayMonday,
			StartTime: types.TimeString("18:00"),
			EndTime:   types.TimeString("19:00"),
		},
	}}

	uc := NewUseCase(templates, sessions, 1, noopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{TrainerID: 100, Date: monday})
	require.NoError(t, err)
	require.Len(t, resp.Slots, 2)

	// Слоты отсортированы по времени начала
	first := resp.Slots[0]
	require.NotNil(t, first.SessionID)
	assert.Equal(t, int64(10), *first.SessionID)
	assert.Equal(t, 2, first.AvailableSpots)
	assert.Equal(t, 5, first.TotalSpots)

	second := resp.Slots[1]
	assert.Nil(t, second.SessionID)
	require.NotNil(t, second.TemplateID)
	assert.Equal(t, int64(2), *second.TemplateID)
	// Шаблон без вместимости показывает вместимость по умолчанию
	assert.Equal(t, 1, second.AvailableSpots)
	assert.Equal(t, 1, second.TotalSpots)
}

func TestExecute_ClosedSessionsHidden(t *testing.T) {
	monday := time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)

	sessions := &fakeSessionRepo{sessions: []*domain.Session{
		{
			ID:        10,
			TrainerID: 100,
			Date:      monday,
			StartTime: types.TimeString("09:00"),
			EndTime:   types.TimeString("10:00"),
			Capacity:  5,
			Closed:    true,
		},
	}}
	uc := NewUseCase(&fakeTemplateRepo{}, sessions, 1, noopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{TrainerID: 100, Date: monday})
	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
}

func TestExecute_FullSessionStillListed(t *testing.T) {
	monday := time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)

	sessions := &fakeSessionRepo{sessions: []*domain.Session{
		{
			ID:             10,
			TrainerID:      100,
			Date:           monday,
			StartTime:      types.TimeString("09:00"),
			EndTime:        types.TimeString("10:00"),
			Capacity:       2,
			ConfirmedCount: 2,
		},
	}}
	uc := NewUseCase(&fakeTemplateRepo{}, sessions, 1, noopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{TrainerID: 100, Date: monday})
	require.NoError(t, err)
	require.Len(t, resp.Slots, 1)
	assert.Equal(t, 0, resp.Slots[0].AvailableSpots)
}

func TestExecute_InvalidInput(t *testing.T) {
	uc := NewUseCase(&fakeTemplateRepo{}, &fakeSessionRepo{}, 1, noopLogger{})

	_, err := uc.Execute(context.Background(), &Request{TrainerID: 0, Date: time.Now()})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
