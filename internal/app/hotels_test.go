package app_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"hoteldir/internal/app"
	"hoteldir/internal/domain"
)

type fakeHotels struct {
	hv       domain.HotelView
	page     domain.HotelsPage
	lastList domain.PageQuery
	created  domain.Hotel
	manager  string
}

func (f *fakeHotels) ListHotels(ctx context.Context, q domain.PageQuery) (domain.HotelsPage, error) {
	f.lastList = q
	return f.page, nil
}
func (f *fakeHotels) GetHotelByID(ctx context.Context, id int64) (domain.HotelView, error) {
	if id != f.hv.ID {
		return domain.HotelView{}, domain.ErrNotFound
	}
	return f.hv, nil
}
func (f *fakeHotels) GetHotelByName(ctx context.Context, name string) (domain.HotelView, error) {
	if name != f.hv.Name {
		return domain.HotelView{}, domain.ErrNotFound
	}
	return f.hv, nil
}
func (f *fakeHotels) CreateHotel(ctx context.Context, h domain.Hotel, managerUsername string) (domain.HotelView, error) {
	f.created = h
	f.manager = managerUsername
	return domain.HotelView{Hotel: h}, nil
}
func (f *fakeHotels) UpdateHotel(ctx context.Context, id int64, p domain.HotelPatch) (domain.HotelView, error) {
	return f.hv, nil
}
func (f *fakeHotels) DeleteHotel(ctx context.Context, id int64) (domain.HotelView, error) {
	return f.hv, nil
}
func (f *fakeHotels) ListHotelSummaries(ctx context.Context, q domain.PageQuery, withManager bool) ([]domain.HotelSummary, error) {
	return nil, nil
}
func (f *fakeHotels) ListHotelsForManager(ctx context.Context, username string) ([]domain.ManagerHotel, error) {
	return nil, nil
}
func (f *fakeHotels) ListManagedHotels(ctx context.Context, username string, q domain.PageQuery) (domain.HotelsPage, error) {
	return f.page, nil
}
func (f *fakeHotels) ReassignManager(ctx context.Context, hotelID int64, newManagerUsername string) (domain.Reassignment, error) {
	return domain.Reassignment{Hotel: f.hv, NewManager: newManagerUsername}, nil
}
func (f *fakeHotels) ListCities(ctx context.Context, search string, limit int) ([]domain.City, error) {
	return nil, nil
}
func (f *fakeHotels) ListRegions(ctx context.Context, search string, limit int) ([]domain.Region, error) {
	return nil, nil
}

func TestListClampsLimit(t *testing.T) {
	repo := &fakeHotels{}
	svc := app.NewHotelService(repo, &fakeCache{}, time.Minute)

	if _, err := svc.List(context.Background(), domain.PageQuery{Page: 0, Limit: 1000}); err != nil {
		t.Fatalf("err: %v", err)
	}
	if repo.lastList.Limit != domain.MaxPageSize {
		t.Fatalf("limit = %d, want %d", repo.lastList.Limit, domain.MaxPageSize)
	}
	if repo.lastList.Page != 1 {
		t.Fatalf("page = %d, want 1", repo.lastList.Page)
	}
}

func TestGetByIDCacheMissThenHit(t *testing.T) {
	repo := &fakeHotels{hv: domain.HotelView{Hotel: domain.Hotel{ID: 7, Name: "Grand Central"}}}
	cache := &fakeCache{}
	svc := app.NewHotelService(repo, cache, time.Minute)
	ctx := context.Background()

	hv, err := svc.GetByID(ctx, 7)
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if hv.Name != "Grand Central" {
		t.Fatalf("unexpected hotel %+v", hv)
	}

	// Mutate the repo; a second read must come from the cache.
	repo.hv.Name = "SHOULD NOT SEE THIS"
	hv2, err := svc.GetByID(ctx, 7)
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if hv2.Name != "Grand Central" {
		t.Fatalf("expected cached name, got %q", hv2.Name)
	}
}

func TestCreateRequiresManager(t *testing.T) {
	svc := app.NewHotelService(&fakeHotels{}, &fakeCache{}, time.Minute)

	_, err := svc.Create(context.Background(), domain.Hotel{Name: "No Manager Inn"}, "  ")
	var ve *domain.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("want ValidationError, got %v", err)
	}
}

func TestCreateGeneratesSourcePropertyID(t *testing.T) {
	repo := &fakeHotels{}
	svc := app.NewHotelService(repo, &fakeCache{}, time.Minute)

	if _, err := svc.Create(context.Background(), domain.Hotel{Name: "Harbor View"}, "mgr"); err != nil {
		t.Fatalf("err: %v", err)
	}
	id := repo.created.SourcePropertyID
	if !strings.HasPrefix(id, "HTL-") {
		t.Fatalf("source property id %q lacks the HTL- prefix", id)
	}
	parts := strings.Split(id, "-")
	if len(parts) != 3 || len(parts[2]) != 6 {
		t.Fatalf("source property id %q is not HTL-<ms>-<6 chars>", id)
	}
	if repo.manager != "mgr" {
		t.Fatalf("manager = %q, want mgr", repo.manager)
	}
}

func TestGetByNameRequiresName(t *testing.T) {
	svc := app.NewHotelService(&fakeHotels{}, &fakeCache{}, time.Minute)
	_, err := svc.GetByName(context.Background(), "   ")
	var ve *domain.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("want ValidationError, got %v", err)
	}
}
