package mysql

import (
	"context"
	"database/sql"

	"hoteldir/internal/domain"
)

func scanHotelView(row interface{ Scan(...any) error }) (domain.HotelView, error) {
	var hv domain.HotelView
	var (
		addr2, fax                 sql.NullString
		managerID                  sql.NullInt64
		distance                   sql.NullFloat64
		rooms, floors, stars       sql.NullInt64
		managerUser, managerEmail  sql.NullString
	)
	if err := row.Scan(
		&hv.ID,
		&hv.SourcePropertyID,
		&hv.Name,
		&hv.ChainCode,
		&hv.Address1,
		&addr2,
		&hv.AirportCode,
		&hv.CityID,
		&hv.RegionID,
		&hv.ZipPostal,
		&hv.PhoneNumber,
		&fax,
		&hv.Rating,
		&hv.Latitude,
		&hv.Longitude,
		&hv.SourceGroupCode,
		&managerID,
		&distance,
		&rooms,
		&floors,
		&stars,
		&hv.CityName,
		&hv.Country,
		&hv.RegionName,
		&managerUser,
		&managerEmail,
	); err != nil {
		if err == sql.ErrNoRows {
			return domain.HotelView{}, domain.ErrNotFound
		}
		return domain.HotelView{}, err
	}
	hv.Address2 = strPtr(addr2)
	hv.FaxNumber = strPtr(fax)
	hv.ManagerID = int64Ptr(managerID)
	hv.DistanceToAirport = f64Ptr(distance)
	hv.RoomsNumber = intPtr(rooms)
	hv.FloorsNumber = intPtr(floors)
	hv.HotelStars = intPtr(stars)
	hv.ManagerUsername = strPtr(managerUser)
	hv.ManagerEmail = strPtr(managerEmail)
	return hv, nil
}

func (r *Repo) getHotelByID(ctx context.Context, q querier, id int64) (domain.HotelView, error) {
	return scanHotelView(q.QueryRowContext(ctx, getHotelByIDSQL, id))
}

func (r *Repo) GetHotelByID(ctx context.Context, id int64) (domain.HotelView, error) {
	return r.getHotelByID(ctx, r.db, id)
}

func (r *Repo) GetHotelByName(ctx context.Context, name string) (domain.HotelView, error) {
	return scanHotelView(r.db.QueryRowContext(ctx, getHotelByNameSQL, name))
}

func (r *Repo) listHotelRows(ctx context.Context, listSQL string, countSQL string, countArgs []any, listArgs []any) (domain.HotelsPage, error) {
	var total int
	if err := r.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return domain.HotelsPage{}, err
	}

	rows, err := r.db.QueryContext(ctx, listSQL, listArgs...)
	if err != nil {
		return domain.HotelsPage{}, err
	}
	defer rows.Close()

	var out []domain.HotelView
	for rows.Next() {
		hv, err := scanHotelView(rows)
		if err != nil {
			return domain.HotelsPage{}, err
		}
		out = append(out, hv)
	}
	if err := rows.Err(); err != nil {
		return domain.HotelsPage{}, err
	}
	return domain.HotelsPage{Items: out, Total: total}, nil
}

func (r *Repo) ListHotels(ctx context.Context, q domain.PageQuery) (domain.HotelsPage, error) {
	return r.listHotelRows(ctx, listHotelsSQL, countHotelsSQL, nil, []any{q.Limit, q.Offset()})
}

func (r *Repo) ListManagedHotels(ctx context.Context, username string, q domain.PageQuery) (domain.HotelsPage, error) {
	return r.listHotelRows(ctx, listManagedHotelsSQL,
		countManagedByUsernameSQL, []any{username},
		[]any{username, q.Limit, q.Offset()})
}

// resolveManager maps a username to a user id, requiring the hotel_manager role.
func resolveManager(ctx context.Context, q querier, username string) (int64, error) {
	var id int64
	if err := q.QueryRowContext(ctx, resolveManagerSQL, username).Scan(&id); err != nil {
		if err == sql.ErrNoRows {
			return 0, domain.ErrInvalidManager
		}
		return 0, err
	}
	return id, nil
}

func checkExists(ctx context.Context, q querier, stmt string, id int64, what string) error {
	var ok bool
	if err := q.QueryRowContext(ctx, stmt, id).Scan(&ok); err != nil {
		return err
	}
	if !ok {
		return domain.Invalid("%s with ID %d does not exist", what, id)
	}
	return nil
}

func (r *Repo) CreateHotel(ctx context.Context, h domain.Hotel, managerUsername string) (domain.HotelView, error) {
	var out domain.HotelView
	err := r.transact(ctx, func(tx *sql.Tx) error {
		managerID, err := resolveManager(ctx, tx, managerUsername)
		if err != nil {
			return err
		}
		if err := checkExists(ctx, tx, cityExistsSQL, h.CityID, "city"); err != nil {
			return err
		}
		if err := checkExists(ctx, tx, regionExistsSQL, h.RegionID, "region"); err != nil {
			return err
		}

		res, err := tx.ExecContext(ctx, insertHotelSQL,
			h.SourcePropertyID,
			h.Name,
			h.ChainCode,
			h.Address1,
			valStr(h.Address2),
			h.AirportCode,
			h.CityID,
			h.RegionID,
			h.ZipPostal,
			h.PhoneNumber,
			valStr(h.FaxNumber),
			h.Rating,
			h.Latitude,
			h.Longitude,
			h.SourceGroupCode,
			managerID,
			valF64(h.DistanceToAirport),
			valInt(h.RoomsNumber),
			valInt(h.FloorsNumber),
			valInt(h.HotelStars),
		)
		if err != nil {
			if isDuplicate(err) {
				return domain.ErrDuplicate
			}
			return err
		}
		id, err := res.LastInsertId()
		if err != nil {
			return err
		}
		out, err = r.getHotelByID(ctx, tx, id)
		return err
	})
	return out, err
}

func (r *Repo) UpdateHotel(ctx context.Context, id int64, p domain.HotelPatch) (domain.HotelView, error) {
	var out domain.HotelView
	err := r.transact(ctx, func(tx *sql.Tx) error {
		cur, err := r.getHotelByID(ctx, tx, id)
		if err != nil {
			return err
		}

		var sets []string
		var args []any
		set := func(col string, v any) {
			sets = append(sets, col+" = ?")
			args = append(args, v)
		}

		// Manager/city/region links are revalidated only when they change.
		if p.ManagerUsername != nil {
			changed := cur.ManagerUsername == nil || *cur.ManagerUsername != *p.ManagerUsername
			if changed {
				managerID, err := resolveManager(ctx, tx, *p.ManagerUsername)
				if err != nil {
					return err
				}
				set("manager_id", managerID)
			}
		}
		if p.CityID != nil && *p.CityID != cur.CityID {
			if err := checkExists(ctx, tx, cityExistsSQL, *p.CityID, "city"); err != nil {
				return err
			}
			set("city_id", *p.CityID)
		}
		if p.RegionID != nil && *p.RegionID != cur.RegionID {
			if err := checkExists(ctx, tx, regionExistsSQL, *p.RegionID, "region"); err != nil {
				return err
			}
			set("region_id", *p.RegionID)
		}

		if p.Name != nil {
			set("global_property_name", *p.Name)
		}
		if p.ChainCode != nil {
			set("global_chain_code", *p.ChainCode)
		}
		if p.Address1 != nil {
			set("property_address1", *p.Address1)
		}
		if p.Address2 != nil {
			set("property_address2", *p.Address2)
		}
		if p.AirportCode != nil {
			set("primary_airport_code", *p.AirportCode)
		}
		if p.ZipPostal != nil {
			set("property_zip_postal", *p.ZipPostal)
		}
		if p.PhoneNumber != nil {
			set("property_phone_number", *p.PhoneNumber)
		}
		if p.FaxNumber != nil {
			set("property_fax_number", *p.FaxNumber)
		}
		if p.Rating != nil {
			set("sabre_property_rating", *p.Rating)
		}
		if p.Latitude != nil {
			set("property_latitude", *p.Latitude)
		}
		if p.Longitude != nil {
			set("property_longitude", *p.Longitude)
		}
		if p.SourceGroupCode != nil {
			set("source_group_code", *p.SourceGroupCode)
		}
		if p.DistanceToAirport != nil {
			set("distance_to_airport", *p.DistanceToAirport)
		}
		if p.RoomsNumber != nil {
			set("rooms_number", *p.RoomsNumber)
		}
		if p.FloorsNumber != nil {
			set("floors_number", *p.FloorsNumber)
		}
		if p.HotelStars != nil {
			set("hotel_stars", *p.HotelStars)
		}

		if len(sets) > 0 {
			stmt := "UPDATE hotels SET " + joinSets(sets) + " WHERE global_property_id = ?"
			args = append(args, id)
			if _, err := tx.ExecContext(ctx, stmt, args...); err != nil {
				return err
			}
		}

		out, err = r.getHotelByID(ctx, tx, id)
		return err
	})
	return out, err
}

func joinSets(sets []string) string {
	s := sets[0]
	for _, more := range sets[1:] {
		s += ", " + more
	}
	return s
}

func (r *Repo) DeleteHotel(ctx context.Context, id int64) (domain.HotelView, error) {
	var out domain.HotelView
	err := r.transact(ctx, func(tx *sql.Tx) error {
		hv, err := r.getHotelByID(ctx, tx, id)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, deleteHotelSQL, id); err != nil {
			return err
		}
		out = hv
		return nil
	})
	return out, err
}

func (r *Repo) ListHotelSummaries(ctx context.Context, q domain.PageQuery, withManager bool) ([]domain.HotelSummary, error) {
	rows, err := r.db.QueryContext(ctx, listHotelSummariesSQL, q.Limit, q.Offset())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.HotelSummary
	for rows.Next() {
		var s domain.HotelSummary
		var manager sql.NullString
		var rating sql.NullFloat64
		if err := rows.Scan(&s.ID, &s.Name, &s.City, &manager, &rating, &s.ReviewCount); err != nil {
			return nil, err
		}
		s.Rating = f64Ptr(rating)
		if withManager {
			s.Manager = strPtr(manager)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *Repo) ListHotelsForManager(ctx context.Context, username string) ([]domain.ManagerHotel, error) {
	rows, err := r.db.QueryContext(ctx, listHotelsForManagerSQL, username)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.ManagerHotel
	for rows.Next() {
		var m domain.ManagerHotel
		var rating sql.NullFloat64
		var distance sql.NullFloat64
		var rooms, floors, stars sql.NullInt64
		if err := rows.Scan(&m.ID, &m.Name, &m.City, &rating, &m.ReviewCount,
			&distance, &rooms, &floors, &stars); err != nil {
			return nil, err
		}
		m.Rating = f64Ptr(rating)
		m.DistanceToAirport = f64Ptr(distance)
		m.RoomsNumber = intPtr(rooms)
		m.FloorsNumber = intPtr(floors)
		m.HotelStars = intPtr(stars)
		out = append(out, m)
	}
	return out, rows.Err()
}

func (r *Repo) ReassignManager(ctx context.Context, hotelID int64, newManagerUsername string) (domain.Reassignment, error) {
	var out domain.Reassignment
	err := r.transact(ctx, func(tx *sql.Tx) error {
		cur, err := r.getHotelByID(ctx, tx, hotelID)
		if err != nil {
			return err
		}
		managerID, err := resolveManager(ctx, tx, newManagerUsername)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx,
			"UPDATE hotels SET manager_id = ? WHERE global_property_id = ?",
			managerID, hotelID); err != nil {
			return err
		}
		updated, err := r.getHotelByID(ctx, tx, hotelID)
		if err != nil {
			return err
		}
		out = domain.Reassignment{
			Hotel:           updated,
			PreviousManager: cur.ManagerUsername,
			NewManager:      newManagerUsername,
		}
		return nil
	})
	return out, err
}

func (r *Repo) ListCities(ctx context.Context, search string, limit int) ([]domain.City, error) {
	pat := "%" + search + "%"
	rows, err := r.db.QueryContext(ctx, listCitiesSQL, pat, pat, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.City
	for rows.Next() {
		var c domain.City
		if err := rows.Scan(&c.ID, &c.Name, &c.Country); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *Repo) ListRegions(ctx context.Context, search string, limit int) ([]domain.Region, error) {
	rows, err := r.db.QueryContext(ctx, listRegionsSQL, "%"+search+"%", limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Region
	for rows.Next() {
		var g domain.Region
		if err := rows.Scan(&g.ID, &g.Name); err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	return out, rows.Err()
}
