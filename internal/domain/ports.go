package domain

import "context"

type UserRepository interface {
	CreateUser(ctx context.Context, u User) (User, error)
	GetUser(ctx context.Context, id int64) (User, error)
	GetUserByUsername(ctx context.Context, username string) (User, error)
	ListUsers(ctx context.Context, q UsersQuery) (UsersPage, error)
	UpdateUser(ctx context.Context, id int64, upd UserUpdate) (User, error)
	UpdateUserRole(ctx context.Context, id int64, role Role) (User, error)
	// DeleteUser fails with ManagedHotelsError while the user manages hotels.
	DeleteUser(ctx context.Context, id int64) (User, error)
	HasPermission(ctx context.Context, role Role, res Resource, act Action) (bool, error)
}

type HotelRepository interface {
	ListHotels(ctx context.Context, q PageQuery) (HotelsPage, error)
	GetHotelByID(ctx context.Context, id int64) (HotelView, error)
	GetHotelByName(ctx context.Context, name string) (HotelView, error)
	// CreateHotel validates the manager/city/region links and inserts,
	// all inside one transaction.
	CreateHotel(ctx context.Context, h Hotel, managerUsername string) (HotelView, error)
	UpdateHotel(ctx context.Context, id int64, p HotelPatch) (HotelView, error)
	DeleteHotel(ctx context.Context, id int64) (HotelView, error)

	ListHotelSummaries(ctx context.Context, q PageQuery, withManager bool) ([]HotelSummary, error)
	ListHotelsForManager(ctx context.Context, username string) ([]ManagerHotel, error)
	ListManagedHotels(ctx context.Context, username string, q PageQuery) (HotelsPage, error)
	ReassignManager(ctx context.Context, hotelID int64, newManagerUsername string) (Reassignment, error)

	ListCities(ctx context.Context, search string, limit int) ([]City, error)
	ListRegions(ctx context.Context, search string, limit int) ([]Region, error)
}

type ReviewRepository interface {
	CreateReview(ctx context.Context, r Review) (Review, error)
	GetReview(ctx context.Context, id int64) (Review, error)
	ListHotelReviews(ctx context.Context, hotelID int64, q PageQuery) (ReviewsPage, error)
	UpdateReview(ctx context.Context, id int64, subject, content string) (Review, error)
	IncrementHelpful(ctx context.Context, id int64, dir VoteDirection) (Review, error)
	// ToggleVote applies one user's durable like/dislike toggle.
	ToggleVote(ctx context.Context, reviewID, userID int64, dir VoteDirection) (Review, error)
}

type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttlSec int) error
	Del(ctx context.Context, key string) error
}
