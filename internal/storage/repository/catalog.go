package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/magelanov/travel-booking/internal/lib/apperr"
	"github.com/magelanov/travel-booking/internal/models"
)

// SearchCities ищет города по фрагменту названия, без учета регистра.
func (s *Storage) SearchCities(ctx context.Context, namePart string, limit int) ([]*models.City, error) {
	const op = "storage.SearchCities"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, name, country, latitude, longitude
			  FROM cities
			  WHERE name ILIKE '%' || $1 || '%'
			  ORDER BY name
			  LIMIT $2`
	rows, err := s.DB.QueryContext(ctx, query, namePart, limit)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.City
	for rows.Next() {
		var c models.City
		if err = rows.Scan(&c.ID, &c.Name, &c.Country, &c.Latitude, &c.Longitude); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &c)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// SearchCitiesNear возвращает города в радиусе radiusKm от точки,
// отсортированные по расстоянию. Расстояние считается формулой гаверсинусов
// прямо в запросе, справочник маленький и индекса не требует.
func (s *Storage) SearchCitiesNear(ctx context.Context, lat, lon, radiusKm float64, limit int) ([]*models.City, error) {
	const op = "storage.SearchCitiesNear"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, name, country, latitude, longitude
			  FROM (
			      SELECT *,
			          2 * 6371 * asin(sqrt(
			              pow(sin(radians(latitude - $1) / 2), 2) +
			              cos(radians($1)) * cos(radians(latitude)) *
			              pow(sin(radians(longitude - $2) / 2), 2)
			          )) AS distance_km
			      FROM cities
			  ) ranked
			  WHERE distance_km <= $3
			  ORDER BY distance_km
			  LIMIT $4`
	rows, err := s.DB.QueryContext(ctx, query, lat, lon, radiusKm, limit)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.City
	for rows.Next() {
		var c models.City
		if err = rows.Scan(&c.ID, &c.Name, &c.Country, &c.Latitude, &c.Longitude); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &c)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// GetCity возвращает город по его ID.
func (s *Storage) GetCity(ctx context.Context, id int64) (*models.City, error) {
	const op = "storage.GetCity"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, name, country, latitude, longitude
			  FROM cities WHERE id = $1`
	var c models.City
	row := s.DB.QueryRowContext(ctx, query, id)
	if err := row.Scan(&c.ID, &c.Name, &c.Country, &c.Latitude, &c.Longitude); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: city %d: %w", op, id, apperr.ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &c, nil
}

// ListStays возвращает размещения города с пагинацией.
func (s *Storage) ListStays(ctx context.Context, cityID int64, limit, offset int) ([]*models.Stay, error) {
	const op = "storage.ListStays"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, city_id, name, description, address
			  FROM stays
			  WHERE city_id = $1
			  ORDER BY name, id
			  LIMIT $2 OFFSET $3`
	rows, err := s.DB.QueryContext(ctx, query, cityID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Stay
	for rows.Next() {
		var st models.Stay
		if err = rows.Scan(&st.ID, &st.CityID, &st.Name, &st.Description, &st.Address); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &st)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// GetStay возвращает размещение вместе с номерным фондом.
func (s *Storage) GetStay(ctx context.Context, id int64) (*models.Stay, error) {
	const op = "storage.GetStay"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, city_id, name, description, address
			  FROM stays WHERE id = $1`
	var st models.Stay
	row := s.DB.QueryRowContext(ctx, query, id)
	if err := row.Scan(&st.ID, &st.CityID, &st.Name, &st.Description, &st.Address); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: stay %d: %w", op, id, apperr.ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	unitsQuery := `SELECT id, stay_id, room_type, capacity, price_per_night
			  FROM units
			  WHERE stay_id = $1
			  ORDER BY price_per_night, id`
	rows, err := s.DB.QueryContext(ctx, unitsQuery, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	for rows.Next() {
		var u models.Unit
		if err = rows.Scan(&u.ID, &u.StayID, &u.RoomType, &u.Capacity, &u.PricePerNight); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		st.Units = append(st.Units, &u)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &st, nil
}

// GetUnit возвращает номер по его ID.
func (s *Storage) GetUnit(ctx context.Context, id int64) (*models.Unit, error) {
	const op = "storage.GetUnit"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, stay_id, room_type, capacity, price_per_night
			  FROM units WHERE id = $1`
	var u models.Unit
	row := s.DB.QueryRowContext(ctx, query, id)
	if err := row.Scan(&u.ID, &u.StayID, &u.RoomType, &u.Capacity, &u.PricePerNight); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: unit %d: %w", op, id, apperr.ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &u, nil
}
