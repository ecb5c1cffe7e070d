package service_test

import (
	"LinkHub-Backend/internal/domain"
	"LinkHub-Backend/internal/repository"
	"LinkHub-Backend/internal/repository/memory"
	"LinkHub-Backend/internal/service"
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	store    *memory.MemStorage
	category *domain.Category
	whatsapp *domain.Platform
	telegram *domain.Platform
	facebook *domain.Platform
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.New()
	return &fixture{
		store:    store,
		category: store.AddCategory(&domain.Category{Name: "Tecnología"}),
		whatsapp: store.AddPlatform(&domain.Platform{Name: domain.PlatformWhatsApp}),
		telegram: store.AddPlatform(&domain.Platform{Name: domain.PlatformTelegram}),
		facebook: store.AddPlatform(&domain.Platform{Name: domain.PlatformFacebook}),
	}
}

func (f *fixture) link(platformID uuid.UUID, url string) *domain.Link {
	return &domain.Link{
		Title:       "Grupo de Go",
		Description: "Comunidad de programadores",
		URL:         url,
		PlatformID:  platformID,
		CategoryID:  f.category.ID,
		UserID:      uuid.New(),
	}
}

func TestLinkService_Submit(t *testing.T) {
	f := newFixture(t)
	svc := service.NewLinkService(f.store)

	link := f.link(f.telegram.ID, "https://t.me/golangchat")
	require.NoError(t, svc.Submit(context.Background(), link))
	assert.NotEqual(t, uuid.Nil, link.ID)

	saved, err := f.store.GetLink(context.Background(), link.ID)
	require.NoError(t, err)
	assert.Equal(t, "Grupo de Go", saved.Title)
}

func TestLinkService_SubmitRequiredFields(t *testing.T) {
	f := newFixture(t)
	svc := service.NewLinkService(f.store)

	cases := []struct {
		name   string
		mutate func(*domain.Link)
	}{
		{"empty title", func(l *domain.Link) { l.Title = "  " }},
		{"empty description", func(l *domain.Link) { l.Description = "" }},
		{"empty url", func(l *domain.Link) { l.URL = "" }},
		{"missing platform", func(l *domain.Link) { l.PlatformID = uuid.Nil }},
		{"missing category", func(l *domain.Link) { l.CategoryID = uuid.Nil }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			link := f.link(f.telegram.ID, "https://t.me/golangchat")
			tc.mutate(link)

			err := svc.Submit(context.Background(), link)
			assert.True(t, service.IsValidationError(err), "expected validation error, got %v", err)
		})
	}
}

func TestLinkService_SubmitURLRules(t *testing.T) {
	f := newFixture(t)
	svc := service.NewLinkService(f.store)

	cases := []struct {
		name     string
		platform uuid.UUID
		url      string
		valid    bool
	}{
		{"whatsapp chat link", f.whatsapp.ID, "https://chat.whatsapp.com/ABC123", true},
		{"whatsapp short link", f.whatsapp.ID, "https://wa.me/123456789", true},
		{"whatsapp wrong host", f.whatsapp.ID, "https://t.me/golangchat", false},
		{"telegram link", f.telegram.ID, "https://t.me/golangchat", true},
		{"telegram wrong host", f.telegram.ID, "https://chat.whatsapp.com/ABC123", false},
		{"facebook group", f.facebook.ID, "https://www.facebook.com/groups/golang", true},
		{"facebook short host", f.facebook.ID, "https://fb.com/groups/golang", true},
		{"facebook wrong host", f.facebook.ID, "https://example.com/golang", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := svc.Submit(context.Background(), f.link(tc.platform, tc.url))
			if tc.valid {
				assert.NoError(t, err)
			} else {
				assert.True(t, service.IsValidationError(err), "expected validation error, got %v", err)
			}
		})
	}
}

func TestLinkService_SubmitUnknownPlatform(t *testing.T) {
	f := newFixture(t)
	svc := service.NewLinkService(f.store)

	err := svc.Submit(context.Background(), f.link(uuid.New(), "https://t.me/golangchat"))
	assert.True(t, service.IsValidationError(err))
}

func TestLinkService_DeleteCascadesReports(t *testing.T) {
	f := newFixture(t)
	svc := service.NewLinkService(f.store)

	link := f.link(f.telegram.ID, "https://t.me/golangchat")
	require.NoError(t, svc.Submit(context.Background(), link))

	report := &domain.Report{LinkID: link.ID, UserID: uuid.New(), Reason: "spam"}
	require.NoError(t, f.store.SaveReport(context.Background(), report))

	require.NoError(t, svc.Delete(context.Background(), link.ID))

	_, err := f.store.GetLink(context.Background(), link.ID)
	assert.ErrorIs(t, err, repository.ErrLinkNotFound)
	_, err = f.store.GetReport(context.Background(), report.ID)
	assert.ErrorIs(t, err, repository.ErrReportNotFound)
}

func TestLinkService_DeleteMissing(t *testing.T) {
	f := newFixture(t)
	svc := service.NewLinkService(f.store)

	err := svc.Delete(context.Background(), uuid.New())
	assert.ErrorIs(t, err, repository.ErrLinkNotFound)
}
