package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"hoteldir/internal/domain"
)

type HotelService struct {
	repo     domain.HotelRepository
	cache    domain.Cache
	cacheTTL time.Duration
}

func NewHotelService(repo domain.HotelRepository, cache domain.Cache, ttl time.Duration) *HotelService {
	return &HotelService{repo: repo, cache: cache, cacheTTL: ttl}
}

type HotelsResult struct {
	Items []domain.HotelView
	Page  domain.PageInfo
}

func (s *HotelService) List(ctx context.Context, q domain.PageQuery) (HotelsResult, error) {
	q = q.Clamp(50)
	key := fmt.Sprintf("hotels:list:%d:%d", q.Page, q.Limit)
	var out HotelsResult
	if ok, _ := s.cache.Get(ctx, key, &out); ok {
		return out, nil
	}

	page, err := s.repo.ListHotels(ctx, q)
	if err != nil {
		return HotelsResult{}, err
	}
	out = HotelsResult{Items: page.Items, Page: domain.NewPageInfo(q, page.Total)}
	_ = s.cache.Set(ctx, key, out, int(s.cacheTTL.Seconds()))
	return out, nil
}

func (s *HotelService) GetByID(ctx context.Context, id int64) (domain.HotelView, error) {
	key := fmt.Sprintf("hotel:id:%d", id)
	var hv domain.HotelView
	if ok, _ := s.cache.Get(ctx, key, &hv); ok {
		return hv, nil
	}
	hv, err := s.repo.GetHotelByID(ctx, id)
	if err != nil {
		return domain.HotelView{}, err
	}
	_ = s.cache.Set(ctx, key, hv, int(s.cacheTTL.Seconds()))
	return hv, nil
}

func (s *HotelService) GetByName(ctx context.Context, name string) (domain.HotelView, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return domain.HotelView{}, &domain.ValidationError{Msg: "hotel name is required"}
	}
	key := "hotel:name:" + name
	var hv domain.HotelView
	if ok, _ := s.cache.Get(ctx, key, &hv); ok {
		return hv, nil
	}
	hv, err := s.repo.GetHotelByName(ctx, name)
	if err != nil {
		return domain.HotelView{}, err
	}
	_ = s.cache.Set(ctx, key, hv, int(s.cacheTTL.Seconds()))
	return hv, nil
}

// newSourcePropertyID generates the unique external id for a created hotel:
// current time plus a random suffix.
func newSourcePropertyID() string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:6])
	return fmt.Sprintf("HTL-%d-%s", time.Now().UnixMilli(), suffix)
}

func (s *HotelService) Create(ctx context.Context, h domain.Hotel, managerUsername string) (domain.HotelView, error) {
	managerUsername = strings.TrimSpace(managerUsername)
	if managerUsername == "" {
		return domain.HotelView{}, &domain.ValidationError{Msg: "please specify a valid manager username for the hotel"}
	}
	h.SourcePropertyID = newSourcePropertyID()

	hv, err := s.repo.CreateHotel(ctx, h, managerUsername)
	if err != nil {
		return domain.HotelView{}, err
	}
	s.invalidateLists(ctx)
	return hv, nil
}

func (s *HotelService) Update(ctx context.Context, id int64, p domain.HotelPatch) (domain.HotelView, error) {
	cur, err := s.repo.GetHotelByID(ctx, id)
	if err != nil {
		return domain.HotelView{}, err
	}
	hv, err := s.repo.UpdateHotel(ctx, id, p)
	if err != nil {
		return domain.HotelView{}, err
	}
	s.invalidateHotel(ctx, cur)
	if hv.Name != cur.Name {
		_ = s.cache.Del(ctx, "hotel:name:"+hv.Name)
	}
	return hv, nil
}

func (s *HotelService) Delete(ctx context.Context, id int64) (domain.HotelView, error) {
	hv, err := s.repo.DeleteHotel(ctx, id)
	if err != nil {
		return domain.HotelView{}, err
	}
	s.invalidateHotel(ctx, hv)
	return hv, nil
}

func (s *HotelService) invalidateHotel(ctx context.Context, hv domain.HotelView) {
	_ = s.cache.Del(ctx, fmt.Sprintf("hotel:id:%d", hv.ID))
	_ = s.cache.Del(ctx, "hotel:name:"+hv.Name)
	s.invalidateLists(ctx)
}

// Invalidate the common list variants; rarely-hit pages simply expire.
func (s *HotelService) invalidateLists(ctx context.Context) {
	for _, lim := range []int{50, 100, 200} {
		_ = s.cache.Del(ctx, fmt.Sprintf("hotels:list:1:%d", lim))
	}
}

func (s *HotelService) Summaries(ctx context.Context, q domain.PageQuery, withManagers bool) ([]domain.HotelSummary, error) {
	return s.repo.ListHotelSummaries(ctx, q.Clamp(10), withManagers)
}

// ForManager returns the dashboard rows for the authenticated manager.
func (s *HotelService) ForManager(ctx context.Context, ident domain.Identity) ([]domain.ManagerHotel, error) {
	return s.repo.ListHotelsForManager(ctx, ident.Username)
}

// MyHotels is the paginated own-hotels listing.
func (s *HotelService) MyHotels(ctx context.Context, ident domain.Identity, q domain.PageQuery) (HotelsResult, error) {
	q = q.Clamp(50)
	page, err := s.repo.ListManagedHotels(ctx, ident.Username, q)
	if err != nil {
		return HotelsResult{}, err
	}
	return HotelsResult{Items: page.Items, Page: domain.NewPageInfo(q, page.Total)}, nil
}

// Reassign swaps a hotel's manager; the target must hold the
// hotel_manager role.
func (s *HotelService) Reassign(ctx context.Context, hotelID int64, newManagerUsername string) (domain.Reassignment, error) {
	newManagerUsername = strings.TrimSpace(newManagerUsername)
	if newManagerUsername == "" {
		return domain.Reassignment{}, &domain.ValidationError{Msg: "manager username is required"}
	}
	res, err := s.repo.ReassignManager(ctx, hotelID, newManagerUsername)
	if err != nil {
		return domain.Reassignment{}, err
	}
	s.invalidateHotel(ctx, res.Hotel)
	return res, nil
}

func (s *HotelService) Cities(ctx context.Context, search string, limit int) ([]domain.City, error) {
	if limit <= 0 || limit > domain.MaxPageSize {
		limit = 50
	}
	return s.repo.ListCities(ctx, search, limit)
}

func (s *HotelService) Regions(ctx context.Context, search string, limit int) ([]domain.Region, error) {
	if limit <= 0 || limit > domain.MaxPageSize {
		limit = 50
	}
	return s.repo.ListRegions(ctx, search, limit)
}
