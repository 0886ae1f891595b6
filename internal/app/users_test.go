package app_test

import (
	"context"
	"errors"
	"testing"

	"hoteldir/internal/app"
	"hoteldir/internal/domain"
)

func seedUser(t *testing.T, users *fakeUsers, username string, role domain.Role) domain.User {
	t.Helper()
	u, err := users.CreateUser(context.Background(), domain.User{
		Username: username,
		Email:    username + "@example.com",
		Role:     role,
	})
	if err != nil {
		t.Fatalf("seed %s: %v", username, err)
	}
	return u
}

func TestCreateUserWithRole(t *testing.T) {
	users := newFakeUsers()
	svc := app.NewUserService(users)

	u, err := svc.Create(context.Background(), "operator", "secret1", "op@example.com", "data_operator")
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if u.Role != domain.RoleDataOperator {
		t.Fatalf("role = %s, want data_operator", u.Role)
	}

	if _, err := svc.Create(context.Background(), "x123", "secret1", "x@example.com", "superuser"); err == nil {
		t.Fatal("unknown role must be rejected")
	}
}

func TestUpdateRoleSelfDemotion(t *testing.T) {
	users := newFakeUsers()
	svc := app.NewUserService(users)
	admin := seedUser(t, users, "root", domain.RoleAdmin)
	caller := domain.Identity{UserID: admin.ID, Username: admin.Username, Role: domain.RoleAdmin}

	_, err := svc.UpdateRole(context.Background(), caller, admin.ID, "traveler")
	if !errors.Is(err, domain.ErrSelfDemotion) {
		t.Fatalf("want ErrSelfDemotion, got %v", err)
	}

	// Promoting someone else is fine.
	other := seedUser(t, users, "ana", domain.RoleTraveler)
	u, err := svc.UpdateRole(context.Background(), caller, other.ID, "hotel_manager")
	if err != nil || u.Role != domain.RoleHotelManager {
		t.Fatalf("promote: %+v, err %v", u, err)
	}
}

func TestDeleteSelf(t *testing.T) {
	users := newFakeUsers()
	svc := app.NewUserService(users)
	admin := seedUser(t, users, "root", domain.RoleAdmin)
	caller := domain.Identity{UserID: admin.ID, Username: admin.Username, Role: domain.RoleAdmin}

	if _, err := svc.Delete(context.Background(), caller, admin.ID); !errors.Is(err, domain.ErrSelfDeletion) {
		t.Fatalf("want ErrSelfDeletion, got %v", err)
	}
}

func TestEnsureAdminIdempotent(t *testing.T) {
	users := newFakeUsers()
	svc := app.NewUserService(users)
	ctx := context.Background()

	_, created, err := svc.EnsureAdmin(ctx, "admin", "admin123", "admin@hotel.com")
	if err != nil || !created {
		t.Fatalf("first run: created=%v err=%v", created, err)
	}
	_, created, err = svc.EnsureAdmin(ctx, "admin", "admin123", "admin@hotel.com")
	if err != nil || created {
		t.Fatalf("second run must be a no-op: created=%v err=%v", created, err)
	}
}
