package mysql

import (
	"context"
	"database/sql"

	"hoteldir/internal/domain"
)

// The static authorization table. Exact-match grants only; no hierarchy.
var seedPermissions = []struct {
	role     domain.Role
	resource domain.Resource
	action   domain.Action
}{
	{domain.RoleTraveler, domain.ResourceHotels, domain.ActionRead},
	{domain.RoleTraveler, domain.ResourceReviews, domain.ActionWrite},

	{domain.RoleHotelManager, domain.ResourceHotels, domain.ActionRead},
	{domain.RoleHotelManager, domain.ResourceOwnHotels, domain.ActionRead},

	{domain.RoleDataOperator, domain.ResourceHotels, domain.ActionRead},
	{domain.RoleDataOperator, domain.ResourceHotels, domain.ActionWrite},

	{domain.RoleAdmin, domain.ResourceHotels, domain.ActionRead},
	{domain.RoleAdmin, domain.ResourceHotels, domain.ActionWrite},
	{domain.RoleAdmin, domain.ResourceReviews, domain.ActionRead},
	{domain.RoleAdmin, domain.ResourceReviews, domain.ActionWrite},
	{domain.RoleAdmin, domain.ResourceUsers, domain.ActionRead},
	{domain.RoleAdmin, domain.ResourceUsers, domain.ActionWrite},
	{domain.RoleAdmin, domain.ResourceOwnHotels, domain.ActionRead},
	{domain.RoleAdmin, domain.ResourceOwnHotels, domain.ActionWrite},
}

// SeedAuth creates the role and permission reference data if missing.
// Safe to run repeatedly.
func (r *Repo) SeedAuth(ctx context.Context) error {
	return r.transact(ctx, func(tx *sql.Tx) error {
		for _, role := range []domain.Role{
			domain.RoleTraveler, domain.RoleHotelManager, domain.RoleDataOperator, domain.RoleAdmin,
		} {
			if _, err := tx.ExecContext(ctx,
				"INSERT IGNORE INTO roles (role_name) VALUES (?)", string(role)); err != nil {
				return err
			}
		}
		for _, p := range seedPermissions {
			if _, err := tx.ExecContext(ctx, `
INSERT IGNORE INTO permissions (role_id, resource, action)
VALUES ((SELECT role_id FROM roles WHERE role_name = ?), ?, ?)`,
				string(p.role), string(p.resource), string(p.action)); err != nil {
				return err
			}
		}
		return nil
	})
}

// HasAdmin reports whether any user currently holds the admin role.
func (r *Repo) HasAdmin(ctx context.Context) (bool, error) {
	var ok bool
	err := r.db.QueryRowContext(ctx, `
SELECT EXISTS (
  SELECT 1 FROM users u
  JOIN roles r ON r.role_id = u.role_id
  WHERE r.role_name = 'admin'
)`).Scan(&ok)
	return ok, err
}
