package travelbooking

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"

	"github.com/magelanov/travel-booking/internal/cache"
	"github.com/magelanov/travel-booking/internal/config"
	"github.com/magelanov/travel-booking/internal/lib/jwt"
	"github.com/magelanov/travel-booking/internal/migrations"
	authservice "github.com/magelanov/travel-booking/internal/services/auth"
	catalogservice "github.com/magelanov/travel-booking/internal/services/catalog"
	reservationservice "github.com/magelanov/travel-booking/internal/services/reservation"
	tripservice "github.com/magelanov/travel-booking/internal/services/trip"
	"github.com/magelanov/travel-booking/internal/storage/repository"
)

// App представляет основное HTTP-приложение сервиса бронирования.
type App struct {
	server *http.Server
	logger *slog.Logger
	db     *repository.Storage
	cache  *cache.Cache
}

// New собирает приложение: подключает хранилище, применяет миграции,
// инициализирует кэш и сервисы, регистрирует маршруты.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := repository.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, err
	}
	if err = migrations.Run(db.DB, cfg.MigrationsPath); err != nil {
		return nil, err
	}

	cacheRedis, err := cache.InitServer(ctx, cfg.RedisConnection)
	if err != nil {
		return nil, err
	}

	jwtMaker := jwt.NewJWTMaker(cfg.JWTSecretKey, cfg.TokenTTL)

	authService := authservice.NewAuthService(db, jwtMaker)
	tripService := tripservice.NewTripService(db, logger)
	reservationService := reservationservice.NewReservationService(db, logger)
	catalogService := catalogservice.NewCatalogService(db, cacheRedis, logger)

	router := chi.NewRouter()
	RegisterRoutes(router, logger, db, authService, tripService, reservationService, catalogService)

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server: srv,
		logger: logger,
		db:     db,
		cache:  cacheRedis,
	}, nil
}

// Run запускает HTTP-сервер и останавливает его при отмене контекста.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		if closeErr := a.db.DB.Close(); closeErr != nil {
			a.logger.Error("failed to close storage", slog.Any("err", closeErr))
		}
		return err
	}
}
