// Package services содержит сервис-планировщик напоминаний о поездках.
package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/streadway/amqp"

	"github.com/magelanov/travel-booking/internal/lib/sl"
	"github.com/magelanov/travel-booking/internal/models"
	"github.com/magelanov/travel-booking/internal/rabbitmq"
)

// TripRepository определяет выборку поездок для напоминаний.
type TripRepository interface {
	FindTripsStartingTomorrow(ctx context.Context) ([]*models.TripReminder, error)
}

// SchedulerService периодически находит поездки, начинающиеся завтра,
// и публикует события-напоминания в брокер.
type SchedulerService struct {
	repo TripRepository
	log  *slog.Logger
}

// NewSchedulerService создает новый экземпляр SchedulerService.
func NewSchedulerService(repo TripRepository, log *slog.Logger) *SchedulerService {
	return &SchedulerService{
		repo: repo,
		log:  log,
	}
}

// FindUpcomingTrips раз в 12 часов публикует напоминание по каждой поездке,
// начинающейся завтра. Блокируется до отмены контекста.
func (s *SchedulerService) FindUpcomingTrips(ctx context.Context, channel *amqp.Channel) {
	ticker := time.NewTicker(12 * time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.log.Info("starting service to find upcoming trips")
			reminders, err := s.repo.FindTripsStartingTomorrow(ctx)
			if err != nil {
				s.log.Error("failed to find upcoming trips", sl.Err(err))
				continue
			}
			for _, reminder := range reminders {
				err = rabbitmq.PublishMessage(channel, "notifications", "upcoming", reminder)
				if err != nil {
					s.log.Error("failed to publish message", sl.Err(err))
				}
			}
		}
	}
}
