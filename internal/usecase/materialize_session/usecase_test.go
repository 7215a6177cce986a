package materialize_session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/FTM-BookingService/internal/domain"
	templateRepo "github.com/m04kA/FTM-BookingService/internal/infra/storage/template"
	"github.com/m04kA/FTM-BookingService/pkg/ptr"
	"github.com/m04kA/FTM-BookingService/pkg/types"
)

type fakeTemplateRepo struct {
	templates map[int64]*domain.AvailabilityTemplate
}

func (f *fakeTemplateRepo) GetByID(_ context.Context, id int64) (*domain.AvailabilityTemplate, error) {
	t, ok := f.templates[id]
	if !ok {
		return nil, templateRepo.ErrTemplateNotFound
	}
	return t, nil
}

// fakeSessionRepo имитирует upsert по (source_template_id, session_date)
type fakeSessionRepo struct {
	nextID   int64
	sessions []*domain.Session
}

func (f *fakeSessionRepo) GetOrCreateForTemplate(_ context.Context, s *domain.Session) (*domain.Session, error) {
	for _, existing := range f.sessions {
		if *existing.SourceTemplateID == *s.SourceTemplateID && existing.Date.Equal(s.Date) {
			return existing, nil
		}
	}
	f.nextID++
	created := *s
	created.ID = f.nextID
	f.sessions = append(f.sessions, &created)
	return &created, nil
}

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

func mondayTemplate(id int64, capacity *int) *domain.AvailabilityTemplate {
	return &domain.AvailabilityTemplate{
		ID:        id,
		TrainerID: 100,
		DayOfWeek: domain.DayMonday,
		StartTime: types.TimeString("09:00"),
		EndTime:   types.TimeString("10:00"),
		Capacity:  capacity,
	}
}

func TestExecute_MaterializesSession(t *testing.T) {
	templates := &fakeTemplateRepo{templates: map[int64]*domain.AvailabilityTemplate{
		1: mondayTemplate(1, ptr.Ptr(8)),
	}}
	sessions := &fakeSessionRepo{}
	uc := NewUseCase(templates, sessions, 1, noopLogger{})

	monday := time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC) // понедельник

	session, err := uc.Execute(context.Background(), &Request{TemplateID: 1, Date: monday})
	require.NoError(t, err)
	assert.Equal(t, int64(100), session.TrainerID)
	assert.Equal(t, int64(1), *session.SourceTemplateID)
	assert.Equal(t, types.TimeString("09:00"), session.StartTime)
	assert.Equal(t, types.TimeString("10:00"), session.EndTime)
	assert.Equal(t, 8, session.Capacity)
	assert.Equal(t, 0, session.ConfirmedCount)
}

func TestExecute_DefaultCapacityWhenTemplateSilent(t *testing.T) {
	templates := &fakeTemplateRepo{templates: map[int64]*domain.AvailabilityTemplate{
		1: mondayTemplate(1, nil),
	}}
	uc := NewUseCase(templates, &fakeSessionRepo{}, 4, noopLogger{})

	monday := time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)

	session, err := uc.Execute(context.Background(), &Request{TemplateID: 1, Date: monday})
	require.NoError(t, err)
	assert.Equal(t, 4, session.Capacity)
}

func TestExecute_Idempotent(t *testing.T) {
	templates := &fakeTemplateRepo{templates: map[int64]*domain.AvailabilityTemplate{
		1: mondayTemplate(1, ptr.Ptr(8)),
	}}
	sessions := &fakeSessionRepo{}
	uc := NewUseCase(templates, sessions, 1, noopLogger{})

	monday := time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)

	first, err := uc.Execute(context.Background(), &Request{TemplateID: 1, Date: monday})
	require.NoError(t, err)

	second, err := uc.Execute(context.Background(), &Request{TemplateID: 1, Date: monday})
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Len(t, sessions.sessions, 1)

	// Другая дата того же шаблона - новая сессия
	nextMonday := monday.AddDate(0, 0, 7)
	third, err := uc.Execute(context.Background(), &Request{TemplateID: 1, Date: nextMonday})
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, third.ID)
	assert.Len(t, sessions.sessions, 2)
}

func TestExecute_WeekdayMismatch(t *testing.T) {
	templates := &fakeTemplateRepo{templates: map[int64]*domain.AvailabilityTemplate{
		1: mondayTemplate(1, nil),
	}}
	uc := NewUseCase(templates, &fakeSessionRepo{}, 1, noopLogger{})

	tuesday := time.Date(2026, 9, 8, 0, 0, 0, 0, time.UTC)

	_, err := uc.Execute(context.Background(), &Request{TemplateID: 1, Date: tuesday})
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestExecute_TemplateNotFound(t *testing.T) {
	uc := NewUseCase(&fakeTemplateRepo{templates: map[int64]*domain.AvailabilityTemplate{}}, &fakeSessionRepo{}, 1, noopLogger{})

	monday := time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)

	_, err := uc.Execute(context.Background(), &Request{TemplateID: 42, Date: monday})
	assert.ErrorIs(t, err, ErrTemplateNotFound)
}

func TestExecute_InvalidInput(t *testing.T) {
	uc := NewUseCase(&fakeTemplateRepo{}, &fakeSessionRepo{}, 1, noopLogger{})

	_, err := uc.Execute(context.Background(), &Request{TemplateID: 0, Date: time.Now()})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), &Request{TemplateID: 1})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
