package templates

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/FTM-BookingService/internal/domain"
	templateRepo "github.com/m04kA/FTM-BookingService/internal/infra/storage/template"
	"github.com/m04kA/FTM-BookingService/internal/service/templates/models"
	"github.com/m04kA/FTM-BookingService/pkg/ptr"
)

type fakeTemplateRepo struct {
	nextID    int64
	templates map[int64]*domain.AvailabilityTemplate
}

func newFakeTemplateRepo() *fakeTemplateRepo {
	return &fakeTemplateRepo{templates: make(map[int64]*domain.AvailabilityTemplate)}
}

func (f *fakeTemplateRepo) Create(_ context.Context, t *domain.AvailabilityTemplate) (*domain.AvailabilityTemplate, error) {
	f.nextID++
	created := *t
	created.ID = f.nextID
	f.templates[created.ID] = &created
	copied := created
	return &copied, nil
}

func (f *fakeTemplateRepo) GetByID(_ context.Context, id int64) (*domain.AvailabilityTemplate, error) {
	t, ok := f.templates[id]
	if !ok {
		return nil, templateRepo.ErrTemplateNotFound
	}
	copied := *t
	return &copied, nil
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
		copied := *t
		out = append(out, &copied)
	}
	return out, nil
}

func (f *fakeTemplateRepo) Update(_ context.Context, id int64, t *domain.AvailabilityTemplate) (*domain.AvailabilityTemplate, error) {
	existing, ok := f.templates[id]
	if !ok {
		return nil, templateRepo.ErrTemplateNotFound
	}
	existing.DayOfWeek = t.DayOfWeek
	existing.StartTime = t.StartTime
	existing.EndTime = t.EndTime
	existing.Capacity = t.Capacity
	copied := *existing
	return &copied, nil
}

func (f *fakeTemplateRepo) Delete(_ context.Context, id int64) error {
	if _, ok := f.templates[id]; !ok {
		return templateRepo.ErrTemplateNotFound
	}
	delete(f.templates, id)
	return nil
}

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

func createRequest(day string) *models.CreateTemplateRequest {
	return &models.CreateTemplateRequest{
		TrainerID: 3,
		DayOfWeek: day,
		StartTime: "10:00",
		EndTime:   "11:00",
		Capacity:  ptr.Ptr(6),
	}
}

func TestCreate(t *testing.T) {
	svc := NewService(newFakeTemplateRepo(), noopLogger{})

	resp, err := svc.Create(context.Background(), createRequest("MON"))
	require.NoError(t, err)
	assert.Equal(t, int64(3), resp.TrainerID)
	assert.Equal(t, "MON", resp.DayOfWeek)
	assert.Equal(t, "10:00", resp.StartTime)
	require.NotNil(t, resp.Capacity)
	assert.Equal(t, 6, *resp.Capacity)
}

func TestCreate_InvalidInput(t *testing.T) {
	svc := NewService(newFakeTemplateRepo(), noopLogger{})

	req := createRequest("MONDAY")
	_, err := svc.Create(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidInput)

	req = createRequest("MON")
	req.EndTime = "09:00"
	_, err = svc.Create(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidInput)

	req = createRequest("MON")
	req.TrainerID = 0
	_, err = svc.Create(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidInput)

	req = createRequest("MON")
	req.Capacity = ptr.Ptr(0)
	_, err = svc.Create(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestGetTrainerTemplates_DayFilter(t *testing.T) {
	svc := NewService(newFakeTemplateRepo(), noopLogger{})

	_, err := svc.Create(context.Background(), createRequest("MON"))
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), createRequest("WED"))
	require.NoError(t, err)

	all, err := svc.GetTrainerTemplates(context.Background(), 3, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, all.Total)

	day := "WED"
	filtered, err := svc.GetTrainerTemplates(context.Background(), 3, &day)
	require.NoError(t, err)
	require.Equal(t, 1, filtered.Total)
	assert.Equal(t, "WED", filtered.Templates[0].DayOfWeek)

	bad := "SOMEDAY"
	_, err = svc.GetTrainerTemplates(context.Background(), 3, &bad)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestUpdate(t *testing.T) {
	svc := NewService(newFakeTemplateRepo(), noopLogger{})

	created, err := svc.Create(context.Background(), createRequest("MON"))
	require.NoError(t, err)

	resp, err := svc.Update(context.Background(), created.ID, &models.UpdateTemplateRequest{
		DayOfWeek: "FRI",
		StartTime: "18:00",
		EndTime:   "19:30",
	})
	require.NoError(t, err)
	assert.Equal(t, "FRI", resp.DayOfWeek)
	assert.Equal(t, "18:00", resp.StartTime)
	assert.Nil(t, resp.Capacity)
}

func TestUpdate_NotFound(t *testing.T) {
	svc := NewService(newFakeTemplateRepo(), noopLogger{})

	_, err := svc.Update(context.Background(), 99, &models.UpdateTemplateRequest{
		DayOfWeek: "FRI",
		StartTime: "18:00",
		EndTime:   "19:30",
	})
	assert.ErrorIs(t, err, ErrTemplateNotFound)
}

func TestDelete(t *testing.T) {
	svc := NewService(newFakeTemplateRepo(), noopLogger{})

	created, err := svc.Create(context.Background(), createRequest("MON"))
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), created.ID))
	_, err = svc.GetByID(context.Background(), created.ID)
	assert.ErrorIs(t, err, ErrTemplateNotFound)

	err = svc.Delete(context.Background(), created.ID)
	assert.ErrorIs(t, err, ErrTemplateNotFound)
}
