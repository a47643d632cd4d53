package services

import (
	"testing"
	"time"

	"hotel-booking-backend/models"

	"github.com/stretchr/testify/assert"
)

func revenueBooking(hotelID uint, total float64, status string, createdAt time.Time) models.Booking {
	return models.Booking{
		HotelID:   hotelID,
		CreatedAt: createdAt,
		Amount:    models.AmountDetails{GrandTotal: total},
		Payment:   models.PaymentDetails{PaymentStatus: status},
	}
}

func TestComputeRevenueCompletedOnly(t *testing.T) {
	created := time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC)
	bookings := []models.Booking{
		revenueBooking(1, 100, models.PaymentCompleted, created),
		revenueBooking(1, 150, models.PaymentCompleted, created),
		revenueBooking(1, 999, models.PaymentPending, created),
		revenueBooking(1, 999, models.PaymentFailed, created),
		revenueBooking(1, 999, models.PaymentCancelled, created),
	}

	assert.Equal(t, 250.0, ComputeRevenue(1, bookings, nil, nil))
}

func TestComputeRevenueFiltersHotel(t *testing.T) {
	created := time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC)
	bookings := []models.Booking{
		revenueBooking(1, 100, models.PaymentCompleted, created),
		revenueBooking(2, 500, models.PaymentCompleted, created),
	}

	assert.Equal(t, 100.0, ComputeRevenue(1, bookings, nil, nil))
}

func TestComputeRevenueInclusiveRange(t *testing.T) {
	start := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 2, 28, 23, 59, 59, 0, time.UTC)

	bookings := []models.Booking{
		revenueBooking(1, 100, models.PaymentCompleted, start),                    // on the lower bound
		revenueBooking(1, 150, models.PaymentCompleted, end),                      // on the upper bound
		revenueBooking(1, 999, models.PaymentCompleted, start.Add(-time.Second)),  // before
		revenueBooking(1, 999, models.PaymentCompleted, end.Add(time.Second)),     // after
		revenueBooking(1, 50, models.PaymentCompleted, start.AddDate(0, 0, 10)),   // inside
	}

	assert.Equal(t, 300.0, ComputeRevenue(1, bookings, &start, &end))
}

func TestComputeRevenueRangeVersusAllTime(t *testing.T) {
	start := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 2, 28, 23, 59, 59, 0, time.UTC)

	bookings := []models.Booking{
		revenueBooking(1, 100, models.PaymentCompleted, start.AddDate(0, 0, 5)),
		revenueBooking(1, 50, models.PaymentCompleted, start.AddDate(0, -2, 0)),
		revenueBooking(1, 200, models.PaymentPending, start.AddDate(0, 0, 5)),
	}

	assert.Equal(t, 100.0, ComputeRevenue(1, bookings, &start, &end))
	assert.Equal(t, 150.0, ComputeRevenue(1, bookings, nil, nil))
}

func TestComputeRevenueNoBookings(t *testing.T) {
	assert.Equal(t, 0.0, ComputeRevenue(1, nil, nil, nil))
}
