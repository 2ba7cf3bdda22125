package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/magelanov/travel-booking/internal/lib/apperr"
	"github.com/magelanov/travel-booking/internal/models"
)

// CreateTrip вставляет новую поездку и возвращает её ID.
func (s *Storage) CreateTrip(ctx context.Context, trip models.Trip) (int64, error) {
	const op = "storage.CreateTrip"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO trips (owner_uid, city_id, name, start_date, end_date)
			  VALUES ($1, $2, $3, $4, $5)
			  RETURNING id`
	var newID int64
	err := s.DB.QueryRowContext(ctx, query,
		trip.OwnerUID, trip.CityID, trip.Name, trip.StartDate, trip.EndDate).Scan(&newID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// GetTrip возвращает поездку по её ID вместе с названием города.
func (s *Storage) GetTrip(ctx context.Context, id int64) (*models.Trip, error) {
	const op = "storage.GetTrip"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT t.id, t.owner_uid, t.city_id, c.name, t.name, t.start_date, t.end_date
			  FROM trips t
			  JOIN cities c ON c.id = t.city_id
			  WHERE t.id = $1`
	row := s.DB.QueryRowContext(ctx, query, id)

	var result models.Trip
	if err := row.Scan(&result.ID, &result.OwnerUID, &result.CityID, &result.CityName,
		&result.Name, &result.StartDate, &result.EndDate); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: trip %d: %w", op, id, apperr.ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &result, nil
}

// ListTrips возвращает поездки владельца с пагинацией,
// отсортированные по дате начала.
func (s *Storage) ListTrips(ctx context.Context, ownerUID string, limit, offset int) ([]*models.Trip, error) {
	const op = "storage.ListTrips"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT t.id, t.owner_uid, t.city_id, c.name, t.name, t.start_date, t.end_date
			  FROM trips t
			  JOIN cities c ON c.id = t.city_id
			  WHERE t.owner_uid = $1
			  ORDER BY t.start_date, t.id
			  LIMIT $2 OFFSET $3`
	rows, err := s.DB.QueryContext(ctx, query, ownerUID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Trip
	for rows.Next() {
		var t models.Trip
		if err = rows.Scan(&t.ID, &t.OwnerUID, &t.CityID, &t.CityName,
			&t.Name, &t.StartDate, &t.EndDate); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &t)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// UpdateTrip обновляет название, направление и даты поездки,
// возвращает количество изменённых строк.
func (s *Storage) UpdateTrip(ctx context.Context, trip models.Trip) (int, error) {
	const op = "storage.UpdateTrip"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE trips
			  SET name = $1, city_id = $2, start_date = $3, end_date = $4
			  WHERE id = $5`
	result, err := s.DB.ExecContext(ctx, query,
		trip.Name, trip.CityID, trip.StartDate, trip.EndDate, trip.ID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// DeleteTrip удаляет поездку по ID; брони удаляются каскадно.
// Возвращает количество удалённых строк.
func (s *Storage) DeleteTrip(ctx context.Context, id int64) (int, error) {
	const op = "storage.DeleteTrip"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `DELETE FROM trips WHERE id = $1`
	result, err := s.DB.ExecContext(ctx, query, id)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// FindTripsStartingTomorrow находит поездки, начинающиеся завтра,
// вместе с данными владельца для письма-напоминания.
func (s *Storage) FindTripsStartingTomorrow(ctx context.Context) ([]*models.TripReminder, error) {
	const op = "storage.FindTripsStartingTomorrow"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT u.email, u.name, t.name, c.name, t.start_date
			  FROM trips t
			  JOIN users u ON u.uid = t.owner_uid
			  JOIN cities c ON c.id = t.city_id
			  WHERE t.start_date = CURRENT_DATE + INTERVAL '1 day'`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.TripReminder
	for rows.Next() {
		var r models.TripReminder
		if err = rows.Scan(&r.Email, &r.Name, &r.TripName, &r.CityName, &r.StartDate); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &r)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
