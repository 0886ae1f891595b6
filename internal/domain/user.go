package domain

// Role is the closed set of roles a user can hold. Exactly one per user.
type Role string

const (
	RoleTraveler     Role = "traveler"
	RoleHotelManager Role = "hotel_manager"
	RoleDataOperator Role = "data_operator"
	RoleAdmin        Role = "admin"
)

func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleTraveler, RoleHotelManager, RoleDataOperator, RoleAdmin:
		return Role(s), true
	}
	return "", false
}

// Resource is a named category of protected data.
type Resource string

const (
	ResourceHotels    Resource = "hotels"
	ResourceReviews   Resource = "reviews"
	ResourceUsers     Resource = "users"
	ResourceOwnHotels Resource = "own_hotels"
)

type Action string

const (
	ActionRead  Action = "read"
	ActionWrite Action = "write"
)

type User struct {
	ID           int64
	Username     string
	Email        string
	PasswordHash string // bcrypt; never serialized
	Role         Role
}

// Identity is the verified caller extracted from a token.
type Identity struct {
	UserID   int64
	Username string
	Email    string
	Role     Role
}

type UserUpdate struct {
	Username     *string
	Email        *string
	PasswordHash *string
}

type UsersQuery struct {
	Search string
	Page   int
	Limit  int
}

type UsersPage struct {
	Items []User
	Total int
}
