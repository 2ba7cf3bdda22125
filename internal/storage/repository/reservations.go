package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/magelanov/travel-booking/internal/lib/apperr"
	"github.com/magelanov/travel-booking/internal/models"
)

// HasOverlap сообщает, пересекается ли диапазон [start, end] хотя бы с одной
// живой бронью этого номера. Пересечение — по включительным границам:
// existing.start <= end AND existing.end >= start. Брони поездки excludeTripID
// не учитываются, если он больше нуля (сценарий обновления на месте).
// Чистый запрос без побочных эффектов; атомарность против конкурирующих
// вставок обеспечивает ограничение исключения в CreateReservation.
func (s *Storage) HasOverlap(ctx context.Context, unitID int64, start, end time.Time, excludeTripID int64) (bool, error) {
	const op = "storage.HasOverlap"
	select {
	case <-ctx.Done():
		return false, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT EXISTS (
				  SELECT 1 FROM reservations
				  WHERE unit_id = $1
				    AND start_date <= $3
				    AND end_date >= $2
				    AND ($4 = 0 OR trip_id <> $4)
			  )`
	var exists bool
	err := s.DB.QueryRowContext(ctx, query, unitID, start, end, excludeTripID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	return exists, nil
}

// CreateReservation вставляет бронь номера в поездке. Конкурирующую вставку
// с пересекающимися датами отклонит ограничение исключения по
// daterange(start_date, end_date, '[]') — проигравший получает
// apperr.ErrUnitUnavailable, как если бы проверка пересечения сработала сразу.
func (s *Storage) CreateReservation(ctx context.Context, res models.Reservation) error {
	const op = "storage.CreateReservation"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO reservations (trip_id, unit_id, start_date, end_date)
			  VALUES ($1, $2, $3, $4)`
	_, err := s.DB.ExecContext(ctx, query,
		res.TripID, res.UnitID, res.StartDate, res.EndDate)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case pgerrcode.ExclusionViolation:
				return fmt.Errorf("%s: unit %d: %w", op, res.UnitID, apperr.ErrUnitUnavailable)
			case pgerrcode.UniqueViolation:
				// бронь (trip_id, unit_id) уже существует
				return fmt.Errorf("%s: unit %d: %w", op, res.UnitID, apperr.ErrConflict)
			case pgerrcode.ForeignKeyViolation:
				return fmt.Errorf("%s: %w", op, apperr.ErrNotFound)
			}
		}
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// ListReservations возвращает брони поездки со сводкой по номеру,
// стабильно отсортированные по дате заезда.
func (s *Storage) ListReservations(ctx context.Context, tripID int64) ([]*models.Reservation, error) {
	const op = "storage.ListReservations"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT r.trip_id, r.unit_id, r.start_date, r.end_date,
			      u.id, u.stay_id, u.room_type, u.capacity, u.price_per_night
			  FROM reservations r
			  JOIN units u ON u.id = r.unit_id
			  WHERE r.trip_id = $1
			  ORDER BY r.start_date, r.unit_id`
	rows, err := s.DB.QueryContext(ctx, query, tripID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Reservation
	for rows.Next() {
		var r models.Reservation
		var u models.Unit
		if err = rows.Scan(&r.TripID, &r.UnitID, &r.StartDate, &r.EndDate,
			&u.ID, &u.StayID, &u.RoomType, &u.Capacity, &u.PricePerNight); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		r.Unit = &u
		result = append(result, &r)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// DeleteReservation удаляет бронь по составному ключу (tripID, unitID)
// и возвращает количество удалённых строк. Ноль строк — не ошибка.
func (s *Storage) DeleteReservation(ctx context.Context, tripID, unitID int64) (int, error) {
	const op = "storage.DeleteReservation"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `DELETE FROM reservations WHERE trip_id = $1 AND unit_id = $2`
	result, err := s.DB.ExecContext(ctx, query, tripID, unitID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}
