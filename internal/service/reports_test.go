package service_test

import (
	"LinkHub-Backend/internal/domain"
	"LinkHub-Backend/internal/repository"
	"LinkHub-Backend/internal/service"
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func submitLink(t *testing.T, f *fixture) *domain.Link {
	t.Helper()
	link := f.link(f.telegram.ID, "https://t.me/golangchat")
	require.NoError(t, service.NewLinkService(f.store).Submit(context.Background(), link))
	return link
}

func TestReportService_Submit(t *testing.T) {
	f := newFixture(t)
	svc := service.NewReportService(f.store)
	link := submitLink(t, f)

	report, err := svc.Submit(context.Background(), link.ID, uuid.New(), "  contenido inapropiado  ")
	require.NoError(t, err)

	// Причина обрезается, статус всегда pending
	assert.Equal(t, "contenido inapropiado", report.Reason)
	assert.Equal(t, domain.ReportStatusPending, report.Status)
	assert.True(t, report.IsPending())
}

func TestReportService_SubmitValidation(t *testing.T) {
	f := newFixture(t)
	svc := service.NewReportService(f.store)
	link := submitLink(t, f)

	_, err := svc.Submit(context.Background(), link.ID, uuid.New(), "   ")
	assert.True(t, service.IsValidationError(err))

	_, err = svc.Submit(context.Background(), link.ID, uuid.Nil, "spam")
	assert.True(t, service.IsValidationError(err))

	_, err = svc.Submit(context.Background(), uuid.New(), uuid.New(), "spam")
	assert.ErrorIs(t, err, repository.ErrLinkNotFound)
}

func TestReportService_Transitions(t *testing.T) {
	f := newFixture(t)
	svc := service.NewReportService(f.store)
	link := submitLink(t, f)

	approved, err := svc.Submit(context.Background(), link.ID, uuid.New(), "spam")
	require.NoError(t, err)
	rejected, err := svc.Submit(context.Background(), link.ID, uuid.New(), "estafa")
	require.NoError(t, err)

	require.NoError(t, svc.Approve(context.Background(), approved.ID))
	require.NoError(t, svc.Reject(context.Background(), rejected.ID))

	got, err := f.store.GetReport(context.Background(), approved.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.ReportStatusReviewed, got.Status)

	got, err = f.store.GetReport(context.Background(), rejected.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.ReportStatusRejected, got.Status)
}

func TestReportService_TransitionsAreTerminal(t *testing.T) {
	f := newFixture(t)
	svc := service.NewReportService(f.store)
	link := submitLink(t, f)

	report, err := svc.Submit(context.Background(), link.ID, uuid.New(), "spam")
	require.NoError(t, err)
	require.NoError(t, svc.Approve(context.Background(), report.ID))

	// Из терминального статуса обратной дороги нет
	assert.ErrorIs(t, svc.Reject(context.Background(), report.ID), repository.ErrReportFinalized)
	assert.ErrorIs(t, svc.Approve(context.Background(), report.ID), repository.ErrReportFinalized)

	assert.ErrorIs(t, svc.Approve(context.Background(), uuid.New()), repository.ErrReportNotFound)
}

func TestReportService_ListByStatus(t *testing.T) {
	f := newFixture(t)
	svc := service.NewReportService(f.store)
	link := submitLink(t, f)

	first, err := svc.Submit(context.Background(), link.ID, uuid.New(), "spam")
	require.NoError(t, err)
	_, err = svc.Submit(context.Background(), link.ID, uuid.New(), "estafa")
	require.NoError(t, err)
	require.NoError(t, svc.Approve(context.Background(), first.ID))

	pending, err := svc.List(context.Background(), domain.ReportStatusPending)
	require.NoError(t, err)
	assert.Len(t, pending, 1)

	all, err := svc.List(context.Background(), "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	_, err = svc.List(context.Background(), "archived")
	assert.True(t, service.IsValidationError(err))
}
