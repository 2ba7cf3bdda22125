// Package services содержит бизнес-логику управления поездками пользователя.
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

// TripRepository определяет методы для работы с поездками в хранилище.
type TripRepository interface {
	// CreateTrip добавляет поездку и возвращает её ID.
	CreateTrip(ctx context.Context, trip models.Trip) (int64, error)
	// GetTrip возвращает поездку или apperr.ErrNotFound.
	GetTrip(ctx context.Context, id int64) (*models.Trip, error)
	// ListTrips возвращает поездки владельца с пагинацией.
	ListTrips(ctx context.Context, ownerUID string, limit, offset int) ([]*models.Trip, error)
	// UpdateTrip обновляет поездку, возвращает количество изменённых строк.
	UpdateTrip(ctx context.Context, trip models.Trip) (int, error)
	// DeleteTrip удаляет поездку, возвращает количество удалённых строк.
	DeleteTrip(ctx context.Context, id int64) (int, error)
	// GetCity возвращает город назначения или apperr.ErrNotFound.
	GetCity(ctx context.Context, id int64) (*models.City, error)
}

// TripService реализует операции над поездками. Поездку читает и меняет
// только её владелец, любая другая попытка — apperr.ErrForbidden.
type TripService struct {
	repo TripRepository
	log  *slog.Logger
}

// NewTripService создает новый экземпляр TripService.
func NewTripService(repo TripRepository, log *slog.Logger) *TripService {
	return &TripService{
		repo: repo,
		log:  log,
	}
}

// Create создает поездку. Пустое название заменяется названием города
// назначения. Дата начала не может быть в прошлом, инвариант дат start <= end.
func (s *TripService) Create(ctx context.Context, user *models.User, req models.DummyTrip) (int64, error) {
	start, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		return 0, fmt.Errorf("start date %q: %w", req.StartDate, apperr.ErrBadDateFormat)
	}
	end, err := time.Parse("2006-01-02", req.EndDate)
	if err != nil {
		return 0, fmt.Errorf("end date %q: %w", req.EndDate, apperr.ErrBadDateFormat)
	}
	if !daterange.Valid(start, end) {
		return 0, apperr.ErrBadDates
	}
	today := daterange.Day(time.Now())
	if daterange.Day(start).Before(today) {
		return 0, fmt.Errorf("trip cannot start in the past: %w", apperr.ErrBadDates)
	}

	city, err := s.repo.GetCity(ctx, req.CityID)
	if err != nil {
		return 0, err
	}

	name := req.Name
	if name == "" {
		name = city.Name
	}

	trip := models.Trip{
		OwnerUID:  user.UID,
		CityID:    city.ID,
		Name:      name,
		StartDate: daterange.Day(start),
		EndDate:   daterange.Day(end),
	}

	id, err := s.repo.CreateTrip(ctx, trip)
	if err != nil {
		return 0, err
	}
	s.log.Info("created new trip", slog.Int64("id", id), slog.String("owner", user.UID))
	return id, nil
}

// Read возвращает поездку владельца.
func (s *TripService) Read(ctx context.Context, user *models.User, tripID int64) (*models.Trip, error) {
	trip, err := s.repo.GetTrip(ctx, tripID)
	if err != nil {
		return nil, err
	}
	if !trip.OwnedBy(user) {
		return nil, fmt.Errorf("trip %d: %w", tripID, apperr.ErrForbidden)
	}
	return trip, nil
}

// List возвращает поездки пользователя с пагинацией.
func (s *TripService) List(ctx context.Context, user *models.User, limit, offset int) ([]*models.Trip, error) {
	return s.repo.ListTrips(ctx, user.UID, limit, offset)
}

// Update меняет название, направление и даты поездки владельца.
// Проверка start >= today при обновлении не применяется: двигать даты
// уже начавшейся поездки разрешено.
func (s *TripService) Update(ctx context.Context, user *models.User, tripID int64, req models.DummyTrip) error {
	trip, err := s.Read(ctx, user, tripID)
	if err != nil {
		return err
	}

	start, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		return fmt.Errorf("start date %q: %w", req.StartDate, apperr.ErrBadDateFormat)
	}
	end, err := time.Parse("2006-01-02", req.EndDate)
	if err != nil {
		return fmt.Errorf("end date %q: %w", req.EndDate, apperr.ErrBadDateFormat)
	}
	if !daterange.Valid(start, end) {
		return apperr.ErrBadDates
	}

	city, err := s.repo.GetCity(ctx, req.CityID)
	if err != nil {
		return err
	}

	name := req.Name
	if name == "" {
		name = city.Name
	}

	updated := models.Trip{
		ID:        trip.ID,
		OwnerUID:  trip.OwnerUID,
		CityID:    city.ID,
		Name:      name,
		StartDate: daterange.Day(start),
		EndDate:   daterange.Day(end),
	}
	if _, err := s.repo.UpdateTrip(ctx, updated); err != nil {
		return err
	}
	s.log.Info("updated trip", slog.Int64("id", tripID))
	return nil
}

// Remove удаляет поездку владельца; брони удаляются каскадно.
func (s *TripService) Remove(ctx context.Context, user *models.User, tripID int64) error {
	if _, err := s.Read(ctx, user, tripID); err != nil {
		return err
	}
	if _, err := s.repo.DeleteTrip(ctx, tripID); err != nil {
		return err
	}
	s.log.Info("deleted trip", slog.Int64("id", tripID))
	return nil
}
