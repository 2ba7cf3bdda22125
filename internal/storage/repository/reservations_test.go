package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magelanov/travel-booking/internal/lib/apperr"
	"github.com/magelanov/travel-booking/internal/models"
)

func day(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse("2006-01-02", s)
	require.NoError(t, err)
	return d
}

// setupReservationFixture поднимает контейнер и заводит пользователя,
// город, размещение, номер и поездку. Возвращает storage, ID поездки и номера.
func setupReservationFixture(t *testing.T) (*Storage, int64, int64, func()) {
	storage, cleanup := setupTestDatabase(t)
	factory := NewTestDataFactory(storage)

	ownerUID := factory.CreateUser(t, "alice@example.com", "Alice", "Smith")
	cityID := factory.CreateCity(t, "Lisbon", "Portugal", 38.7223, -9.1393)
	stayID := factory.CreateStay(t, cityID, "Hotel Tejo")
	unitID := factory.CreateUnit(t, stayID, "suite", 2, 120)
	tripID := factory.CreateTrip(t, ownerUID, cityID, "Summer break",
		day(t, "2026-06-01"), day(t, "2026-06-30"))

	return storage, tripID, unitID, cleanup
}

func TestHasOverlap_Boundaries(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	storage, tripID, unitID, cleanup := setupReservationFixture(t)
	defer cleanup()

	ctx := context.Background()
	err := storage.CreateReservation(ctx, models.Reservation{
		TripID:    tripID,
		UnitID:    unitID,
		StartDate: day(t, "2026-06-10"),
		EndDate:   day(t, "2026-06-15"),
	})
	require.NoError(t, err)

	tests := []struct {
		name  string
		start string
		end   string
		want  bool
	}{
		{"диапазон целиком до брони", "2026-06-01", "2026-06-09", false},
		{"диапазон целиком после брони", "2026-06-16", "2026-06-20", false},
		{"конец совпадает с началом брони", "2026-06-05", "2026-06-10", true},
		{"начало совпадает с концом брони", "2026-06-15", "2026-06-20", true},
		{"диапазон внутри брони", "2026-06-11", "2026-06-13", true},
		{"бронь внутри диапазона", "2026-06-05", "2026-06-20", true},
		{"однодневный диапазон на границе", "2026-06-10", "2026-06-10", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := storage.HasOverlap(ctx, unitID, day(t, tt.start), day(t, tt.end), 0)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestHasOverlap_ExcludesTrip(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	storage, tripID, unitID, cleanup := setupReservationFixture(t)
	defer cleanup()

	ctx := context.Background()
	require.NoError(t, storage.CreateReservation(ctx, models.Reservation{
		TripID:    tripID,
		UnitID:    unitID,
		StartDate: day(t, "2026-06-10"),
		EndDate:   day(t, "2026-06-15"),
	}))

	// Собственная бронь поездки не мешает переносу её дат.
	got, err := storage.HasOverlap(ctx, unitID, day(t, "2026-06-12"), day(t, "2026-06-18"), tripID)
	require.NoError(t, err)
	assert.False(t, got)

	got, err = storage.HasOverlap(ctx, unitID, day(t, "2026-06-12"), day(t, "2026-06-18"), 0)
	require.NoError(t, err)
	assert.True(t, got)
}

func TestCreateReservation_ExclusionConstraint(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	storage, tripID, unitID, cleanup := setupReservationFixture(t)
	defer cleanup()

	ctx := context.Background()
	factory := NewTestDataFactory(storage)
	otherUID := factory.CreateUser(t, "bob@example.com", "Bob", "Jones")
	var cityID int64
	require.NoError(t, storage.DB.QueryRow(`SELECT city_id FROM trips WHERE id = $1`, tripID).Scan(&cityID))
	otherTripID := factory.CreateTrip(t, otherUID, cityID, "Rival trip",
		day(t, "2026-06-01"), day(t, "2026-06-30"))

	require.NoError(t, storage.CreateReservation(ctx, models.Reservation{
		TripID:    tripID,
		UnitID:    unitID,
		StartDate: day(t, "2026-06-10"),
		EndDate:   day(t, "2026-06-15"),
	}))

	// Конкурент, прошедший проверку HasOverlap до первой вставки,
	// упирается в ограничение исключения.
	err := storage.CreateReservation(ctx, models.Reservation{
		TripID:    otherTripID,
		UnitID:    unitID,
		StartDate: day(t, "2026-06-15"),
		EndDate:   day(t, "2026-06-20"),
	})
	assert.True(t, errors.Is(err, apperr.ErrUnitUnavailable), "got %v", err)

	// Несоседние даты проходят.
	require.NoError(t, storage.CreateReservation(ctx, models.Reservation{
		TripID:    otherTripID,
		UnitID:    unitID,
		StartDate: day(t, "2026-06-16"),
		EndDate:   day(t, "2026-06-20"),
	}))
}

func TestCreateReservation_UnknownUnit(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	storage, tripID, _, cleanup := setupReservationFixture(t)
	defer cleanup()

	err := storage.CreateReservation(context.Background(), models.Reservation{
		TripID:    tripID,
		UnitID:    9999,
		StartDate: day(t, "2026-06-10"),
		EndDate:   day(t, "2026-06-15"),
	})
	assert.True(t, errors.Is(err, apperr.ErrNotFound), "got %v", err)
}

func TestDeleteReservation_Idempotent(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	storage, tripID, unitID, cleanup := setupReservationFixture(t)
	defer cleanup()

	ctx := context.Background()
	require.NoError(t, storage.CreateReservation(ctx, models.Reservation{
		TripID:    tripID,
		UnitID:    unitID,
		StartDate: day(t, "2026-06-10"),
		EndDate:   day(t, "2026-06-15"),
	}))

	count, err := storage.DeleteReservation(ctx, tripID, unitID)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	count, err = storage.DeleteReservation(ctx, tripID, unitID)
	require.NoError(t, err)
	assert.Equal(t, 0, count)

	// Освобожденные даты снова доступны.
	overlap, err := storage.HasOverlap(ctx, unitID, day(t, "2026-06-10"), day(t, "2026-06-15"), 0)
	require.NoError(t, err)
	assert.False(t, overlap)
}

func TestListReservations_SortedWithUnits(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	storage, tripID, unitID, cleanup := setupReservationFixture(t)
	defer cleanup()

	ctx := context.Background()
	factory := NewTestDataFactory(storage)
	var stayID int64
	require.NoError(t, storage.DB.QueryRow(`SELECT stay_id FROM units WHERE id = $1`, unitID).Scan(&stayID))
	secondUnitID := factory.CreateUnit(t, stayID, "standard", 3, 80)

	require.NoError(t, storage.CreateReservation(ctx, models.Reservation{
		TripID: tripID, UnitID: secondUnitID,
		StartDate: day(t, "2026-06-20"), EndDate: day(t, "2026-06-25"),
	}))
	require.NoError(t, storage.CreateReservation(ctx, models.Reservation{
		TripID: tripID, UnitID: unitID,
		StartDate: day(t, "2026-06-10"), EndDate: day(t, "2026-06-15"),
	}))

	got, err := storage.ListReservations(ctx, tripID)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, unitID, got[0].UnitID)
	assert.Equal(t, "suite", got[0].Unit.RoomType)
	assert.Equal(t, secondUnitID, got[1].UnitID)
	assert.Equal(t, 80, got[1].Unit.PricePerNight)
}
