// Package services содержит бизнес-логику бронирования номеров в поездках:
// проверку владельца, проверку пересечения дат и создание/удаление брони.
package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/magelanov/travel-booking/internal/lib/apperr"
	"github.com/magelanov/travel-booking/internal/lib/daterange"
	"github.com/magelanov/travel-booking/internal/models"
)

// ReservationRepository определяет методы хранилища, нужные менеджеру броней.
type ReservationRepository interface {
	// GetTrip возвращает поездку или apperr.ErrNotFound.
	GetTrip(ctx context.Context, id int64) (*models.Trip, error)
	// GetUnit возвращает номер или apperr.ErrNotFound.
	GetUnit(ctx context.Context, id int64) (*models.Unit, error)
	// HasOverlap проверяет пересечение дат с живыми бронями номера.
	HasOverlap(ctx context.Context, unitID int64, start, end time.Time, excludeTripID int64) (bool, error)
	// CreateReservation вставляет бронь; проигравший гонку получает apperr.ErrUnitUnavailable.
	CreateReservation(ctx context.Context, res models.Reservation) error
	// ListReservations возвращает брони поездки по возрастанию даты заезда.
	ListReservations(ctx context.Context, tripID int64) ([]*models.Reservation, error)
	// DeleteReservation удаляет бронь, ноль удалённых строк — не ошибка.
	DeleteReservation(ctx context.Context, tripID, unitID int64) (int, error)
}

// ReservationService реализует операции над бронями поездки.
// Все операции требуют аутентифицированного пользователя; его отсутствие
// отсекает транспортный слой до вызова сервиса. Состояние между вызовами
// не хранится, каждый запрос читает свежие данные.
type ReservationService struct {
	repo ReservationRepository
	log  *slog.Logger
}

// NewReservationService создает новый экземпляр ReservationService.
func NewReservationService(repo ReservationRepository, log *slog.Logger) *ReservationService {
	return &ReservationService{
		repo: repo,
		log:  log,
	}
}

// loadOwnTrip загружает поездку и проверяет владельца. Чужая поездка —
// это apperr.ErrForbidden, а не ErrNotFound: сам факт существования
// поездки от не-владельца не скрывается.
func (s *ReservationService) loadOwnTrip(ctx context.Context, user *models.User, tripID int64) (*models.Trip, error) {
	trip, err := s.repo.GetTrip(ctx, tripID)
	if err != nil {
		return nil, err
	}
	if !trip.OwnedBy(user) {
		return nil, fmt.Errorf("trip %d: %w", tripID, apperr.ErrForbidden)
	}
	return trip, nil
}

// Add добавляет бронь номера в поездку пользователя.
//
// Порядок проверок: поездка существует → пользователь владеет поездкой →
// номер существует → даты корректны → даты свободны. Инвариант start <= end
// уже проверен валидацией запроса, но дублируется здесь, чтобы сервисом
// можно было пользоваться как библиотекой в обход транспортного слоя.
func (s *ReservationService) Add(ctx context.Context, user *models.User, tripID int64, req models.DummyReservation) (*models.Reservation, error) {
	if _, err := s.loadOwnTrip(ctx, user, tripID); err != nil {
		return nil, err
	}

	unit, err := s.repo.GetUnit(ctx, req.UnitID)
	if err != nil {
		return nil, err
	}

	start, end, err := parseDates(req.StartDate, req.EndDate)
	if err != nil {
		return nil, err
	}

	overlap, err := s.repo.HasOverlap(ctx, req.UnitID, start, end, 0)
	if err != nil {
		return nil, err
	}
	if overlap {
		return nil, fmt.Errorf("unit %d: %w", req.UnitID, apperr.ErrUnitUnavailable)
	}

	res := models.Reservation{
		TripID:    tripID,
		UnitID:    req.UnitID,
		StartDate: start,
		EndDate:   end,
	}
	if err := s.repo.CreateReservation(ctx, res); err != nil {
		return nil, err
	}

	s.log.Info("created reservation",
		slog.Int64("trip_id", tripID), slog.Int64("unit_id", req.UnitID))

	res.Unit = unit
	return &res, nil
}

// List возвращает брони поездки, отсортированные по дате заезда.
func (s *ReservationService) List(ctx context.Context, user *models.User, tripID int64) ([]*models.Reservation, error) {
	if _, err := s.loadOwnTrip(ctx, user, tripID); err != nil {
		return nil, err
	}
	return s.repo.ListReservations(ctx, tripID)
}

// Remove удаляет бронь (tripID, unitID). Отсутствие брони не считается
// ошибкой: удаление идемпотентно, повторный вызов тоже успешен.
func (s *ReservationService) Remove(ctx context.Context, user *models.User, tripID, unitID int64) error {
	if _, err := s.loadOwnTrip(ctx, user, tripID); err != nil {
		return err
	}

	count, err := s.repo.DeleteReservation(ctx, tripID, unitID)
	if err != nil {
		return err
	}
	if count == 0 {
		s.log.Info("reservation already absent",
			slog.Int64("trip_id", tripID), slog.Int64("unit_id", unitID))
	}
	return nil
}

func parseDates(startStr, endStr string) (time.Time, time.Time, error) {
	start, err := time.Parse("2006-01-02", startStr)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("start date %q: %w", startStr, apperr.ErrBadDateFormat)
	}
	end, err := time.Parse("2006-01-02", endStr)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("end date %q: %w", endStr, apperr.ErrBadDateFormat)
	}
	if !daterange.Valid(start, end) {
		return time.Time{}, time.Time{}, apperr.ErrBadDates
	}
	return daterange.Day(start), daterange.Day(end), nil
}
