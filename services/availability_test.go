package services

import (
	"testing"
	"time"

	"hotel-booking-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func testRoom(id uint, typ string, total int) models.Room {
	return models.Room{
		Model:      gorm.Model{ID: id},
		HotelID:    1,
		Type:       typ,
		TotalRooms: total,
	}
}

func testBooking(roomID uint, units int, status string, checkIn, checkOut time.Time) models.Booking {
	return models.Booking{
		RoomID:  roomID,
		HotelID: 1,
		Stay: models.StayDetails{
			CheckIn:       checkIn,
			CheckOut:      checkOut,
			NumberOfRooms: units,
		},
		Payment: models.PaymentDetails{PaymentStatus: status},
	}
}

func TestComputeAvailabilityCountsActiveBookings(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	in := now.AddDate(0, 0, -1)
	out := now.AddDate(0, 0, 2)

	rooms := []models.Room{testRoom(1, "Deluxe", 5)}
	bookings := []models.Booking{
		testBooking(1, 2, models.PaymentCompleted, in, out),
		testBooking(1, 1, models.PaymentPending, in, out),
		testBooking(1, 1, models.PaymentFailed, in, out),
		testBooking(1, 1, models.PaymentCancelled, in, out),
	}

	perRoom, _ := ComputeAvailability(rooms, bookings, now)
	require.Contains(t, perRoom, uint(1))
	assert.Equal(t, UnitAvailability{TotalUnits: 5, OccupiedUnits: 2, AvailableUnits: 3}, perRoom[1])
}

func TestComputeAvailabilityHalfOpenBoundaries(t *testing.T) {
	checkIn := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	checkOut := time.Date(2026, 3, 12, 0, 0, 0, 0, time.UTC)

	rooms := []models.Room{testRoom(1, "Standard", 3)}
	bookings := []models.Booking{testBooking(1, 1, models.PaymentCompleted, checkIn, checkOut)}

	// at check-in the stay occupies a unit
	perRoom, _ := ComputeAvailability(rooms, bookings, checkIn)
	assert.Equal(t, 1, perRoom[1].OccupiedUnits)

	// at check-out it no longer does
	perRoom, _ = ComputeAvailability(rooms, bookings, checkOut)
	assert.Equal(t, 0, perRoom[1].OccupiedUnits)

	// before check-in it never did
	perRoom, _ = ComputeAvailability(rooms, bookings, checkIn.Add(-time.Second))
	assert.Equal(t, 0, perRoom[1].OccupiedUnits)
}

func TestComputeAvailabilityNegativeNotClamped(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	in := now.AddDate(0, 0, -1)
	out := now.AddDate(0, 0, 1)

	rooms := []models.Room{testRoom(1, "Suite", 2)}
	bookings := []models.Booking{
		testBooking(1, 2, models.PaymentCompleted, in, out),
		testBooking(1, 1, models.PaymentCompleted, in, out),
	}

	perRoom, rollup := ComputeAvailability(rooms, bookings, now)
	assert.Equal(t, -1, perRoom[1].AvailableUnits)
	require.Len(t, rollup, 1)
	assert.Equal(t, -1, rollup[0].AvailableUnits)
}

func TestComputeAvailabilityUnknownRoomSkipped(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	in := now.AddDate(0, 0, -1)
	out := now.AddDate(0, 0, 1)

	rooms := []models.Room{testRoom(1, "Deluxe", 4)}
	bookings := []models.Booking{
		testBooking(99, 3, models.PaymentCompleted, in, out),
		testBooking(1, 1, models.PaymentCompleted, in, out),
	}

	perRoom, rollup := ComputeAvailability(rooms, bookings, now)
	assert.Equal(t, UnitAvailability{TotalUnits: 4, OccupiedUnits: 1, AvailableUnits: 3}, perRoom[1])
	require.Len(t, rollup, 1)
	assert.Equal(t, 4, rollup[0].TotalUnits)
}

func TestComputeAvailabilityTypeRollup(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	in := now.AddDate(0, 0, -1)
	out := now.AddDate(0, 0, 1)

	rooms := []models.Room{
		testRoom(1, "Deluxe", 5),
		testRoom(2, "Standard", 10),
		testRoom(3, "Deluxe", 3),
	}
	bookings := []models.Booking{
		testBooking(1, 2, models.PaymentCompleted, in, out),
		testBooking(2, 4, models.PaymentCompleted, in, out),
	}

	_, rollup := ComputeAvailability(rooms, bookings, now)
	require.Len(t, rollup, 2)

	// first-appearance order of the labels
	assert.Equal(t, "Deluxe", rollup[0].RoomType)
	assert.Equal(t, "Standard", rollup[1].RoomType)

	assert.Equal(t, TypeAvailability{RoomType: "Deluxe", TotalUnits: 8, OccupiedUnits: 2, AvailableUnits: 6}, rollup[0])
	assert.Equal(t, TypeAvailability{RoomType: "Standard", TotalUnits: 10, OccupiedUnits: 4, AvailableUnits: 6}, rollup[1])
}

func TestComputeAvailabilityConservation(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	in := now.AddDate(0, 0, -1)
	out := now.AddDate(0, 0, 1)

	rooms := []models.Room{
		testRoom(1, "Deluxe", 5),
		testRoom(2, "Standard", 7),
	}
	bookings := []models.Booking{
		testBooking(1, 3, models.PaymentCompleted, in, out),
		testBooking(2, 9, models.PaymentCompleted, in, out),
	}

	perRoom, rollup := ComputeAvailability(rooms, bookings, now)
	for id, ua := range perRoom {
		assert.Equal(t, ua.TotalUnits, ua.OccupiedUnits+ua.AvailableUnits, "room %d", id)
	}
	for _, ta := range rollup {
		assert.Equal(t, ta.TotalUnits, ta.OccupiedUnits+ta.AvailableUnits, ta.RoomType)
	}

	// every active unit lands on exactly one room
	totalOccupied := 0
	for _, ua := range perRoom {
		totalOccupied += ua.OccupiedUnits
	}
	assert.Equal(t, 3+9, totalOccupied)
}

func TestComputeAvailabilityPure(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	in := now.AddDate(0, 0, -1)
	out := now.AddDate(0, 0, 1)

	rooms := []models.Room{testRoom(1, "Deluxe", 5), testRoom(2, "Suite", 2)}
	bookings := []models.Booking{testBooking(1, 1, models.PaymentCompleted, in, out)}

	firstRooms, firstRollup := ComputeAvailability(rooms, bookings, now)
	secondRooms, secondRollup := ComputeAvailability(rooms, bookings, now)
	assert.Equal(t, firstRooms, secondRooms)
	assert.Equal(t, firstRollup, secondRollup)
}

func TestComputeAvailabilityEmptyInventory(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	perRoom, rollup := ComputeAvailability(nil, nil, now)
	assert.Empty(t, perRoom)
	assert.Empty(t, rollup)
}
