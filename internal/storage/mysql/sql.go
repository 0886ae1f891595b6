package mysql

// -----------------------------------------------------------------------------
// USERS
// -----------------------------------------------------------------------------

const selectUserPrefix = `
SELECT u.user_id, u.username, u.email, u.password_hash, r.role_name
FROM users u
JOIN roles r ON r.role_id = u.role_id
`

const getUserSQL = selectUserPrefix + `WHERE u.user_id = ?`

const getUserByUsernameSQL = selectUserPrefix + `WHERE u.username = ?`

const insertUserSQL = `
INSERT INTO users (username, password_hash, email, role_id)
VALUES (?, ?, ?, (SELECT role_id FROM roles WHERE role_name = ?))
`

const updateUserRoleSQL = `
UPDATE users
SET role_id = (SELECT role_id FROM roles WHERE role_name = ?)
WHERE user_id = ?
`

const deleteUserSQL = `DELETE FROM users WHERE user_id = ?`

const countManagedHotelsSQL = `SELECT COUNT(*) FROM hotels WHERE manager_id = ?`

const hasPermissionSQL = `
SELECT EXISTS (
  SELECT 1
  FROM permissions p
  JOIN roles r ON r.role_id = p.role_id
  WHERE r.role_name = ? AND p.resource = ? AND p.action = ?
)
`

// -----------------------------------------------------------------------------
// HOTELS
// -----------------------------------------------------------------------------

// Shared SELECT joining the city/region/manager display fields.
const selectHotelViewPrefix = `
SELECT
  h.global_property_id,
  h.source_property_id,
  h.global_property_name,
  h.global_chain_code,
  h.property_address1,
  h.property_address2,
  h.primary_airport_code,
  h.city_id,
  h.region_id,
  h.property_zip_postal,
  h.property_phone_number,
  h.property_fax_number,
  h.sabre_property_rating,
  h.property_latitude,
  h.property_longitude,
  h.source_group_code,
  h.manager_id,
  h.distance_to_airport,
  h.rooms_number,
  h.floors_number,
  h.hotel_stars,
  c.city_name,
  c.country,
  g.region_name,
  m.username,
  m.email
FROM hotels h
JOIN cities c ON c.city_id = h.city_id
JOIN regions g ON g.region_id = h.region_id
LEFT JOIN users m ON m.user_id = h.manager_id
`

const getHotelByIDSQL = selectHotelViewPrefix + `WHERE h.global_property_id = ?`

const getHotelByNameSQL = selectHotelViewPrefix + `WHERE h.global_property_name = ?`

const listHotelsSQL = selectHotelViewPrefix + `
ORDER BY h.global_property_name ASC
LIMIT ? OFFSET ?`

const listManagedHotelsSQL = selectHotelViewPrefix + `
WHERE m.username = ?
ORDER BY h.global_property_name ASC
LIMIT ? OFFSET ?`

const countHotelsSQL = `SELECT COUNT(*) FROM hotels`

const countManagedByUsernameSQL = `
SELECT COUNT(*)
FROM hotels h
JOIN users m ON m.user_id = h.manager_id
WHERE m.username = ?`

const insertHotelSQL = `
INSERT INTO hotels
  (source_property_id, global_property_name, global_chain_code,
   property_address1, property_address2, primary_airport_code,
   city_id, region_id, property_zip_postal, property_phone_number,
   property_fax_number, sabre_property_rating, property_latitude,
   property_longitude, source_group_code, manager_id,
   distance_to_airport, rooms_number, floors_number, hotel_stars)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`

const deleteHotelSQL = `DELETE FROM hotels WHERE global_property_id = ?`

// resolveManagerSQL returns the user id only when the username holds the
// hotel_manager role; no row means "absent or wrong role".
const resolveManagerSQL = `
SELECT u.user_id
FROM users u
JOIN roles r ON r.role_id = u.role_id
WHERE u.username = ? AND r.role_name = 'hotel_manager'
`

const cityExistsSQL = `SELECT EXISTS (SELECT 1 FROM cities WHERE city_id = ?)`

const regionExistsSQL = `SELECT EXISTS (SELECT 1 FROM regions WHERE region_id = ?)`

// Grouped review stats per hotel; only hotels that have reviews appear.
const listHotelSummariesSQL = `
SELECT
  h.global_property_id,
  h.global_property_name,
  c.city_name,
  m.username,
  AVG(rv.overall_rating),
  COUNT(rv.review_id)
FROM reviews rv
JOIN hotels h ON h.global_property_id = rv.hotel_id
JOIN cities c ON c.city_id = h.city_id
LEFT JOIN users m ON m.user_id = h.manager_id
GROUP BY h.global_property_id, h.global_property_name, c.city_name, m.username
ORDER BY h.global_property_name ASC
LIMIT ? OFFSET ?`

const listHotelsForManagerSQL = `
SELECT
  h.global_property_id,
  h.global_property_name,
  c.city_name,
  (SELECT AVG(rv.overall_rating) FROM reviews rv WHERE rv.hotel_id = h.global_property_id),
  (SELECT COUNT(*) FROM reviews rv WHERE rv.hotel_id = h.global_property_id),
  h.distance_to_airport,
  h.rooms_number,
  h.floors_number,
  h.hotel_stars
FROM hotels h
JOIN cities c ON c.city_id = h.city_id
JOIN users m ON m.user_id = h.manager_id
WHERE m.username = ?
ORDER BY h.global_property_name ASC`

const listCitiesSQL = `
SELECT city_id, city_name, country
FROM cities
WHERE city_name LIKE ? OR country LIKE ?
ORDER BY city_name ASC, country ASC
LIMIT ?`

const listRegionsSQL = `
SELECT region_id, region_name
FROM regions
WHERE region_name LIKE ?
ORDER BY region_name ASC
LIMIT ?`

// -----------------------------------------------------------------------------
// REVIEWS
// -----------------------------------------------------------------------------

const selectReviewPrefix = `
SELECT review_id, hotel_id, reviewer_name, review_subject, review_content,
       review_date, overall_rating, cleanliness_rating, location_rating,
       service_rating, value_rating, helpful_yes, helpful_no,
       created_at, updated_at
FROM reviews
`

const getReviewSQL = selectReviewPrefix + `WHERE review_id = ?`

const listHotelReviewsSQL = selectReviewPrefix + `
WHERE hotel_id = ?
ORDER BY review_date DESC, review_id DESC
LIMIT ? OFFSET ?`

const countHotelReviewsSQL = `SELECT COUNT(*) FROM reviews WHERE hotel_id = ?`

const insertReviewSQL = `
INSERT INTO reviews
  (hotel_id, reviewer_name, review_subject, review_content, review_date,
   overall_rating, cleanliness_rating, location_rating, service_rating, value_rating)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`

const updateReviewSQL = `
UPDATE reviews
SET review_subject = ?, review_content = ?
WHERE review_id = ?`

const hotelExistsSQL = `SELECT EXISTS (SELECT 1 FROM hotels WHERE global_property_id = ?)`

const getVoteSQL = `
SELECT direction FROM review_votes
WHERE review_id = ? AND user_id = ?
FOR UPDATE`

const upsertVoteSQL = `
INSERT INTO review_votes (review_id, user_id, direction)
VALUES (?, ?, ?)
ON DUPLICATE KEY UPDATE direction = VALUES(direction)`

const deleteVoteSQL = `DELETE FROM review_votes WHERE review_id = ? AND user_id = ?`

// Counters are clamped at zero; deltas come from domain.ApplyVote.
const bumpHelpfulSQL = `
UPDATE reviews
SET helpful_yes = GREATEST(CAST(helpful_yes AS SIGNED) + ?, 0),
    helpful_no  = GREATEST(CAST(helpful_no AS SIGNED) + ?, 0)
WHERE review_id = ?`
