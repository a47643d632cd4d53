package services

import (
	"errors"
	"testing"
	"time"

	"hotel-booking-backend/models"

	"github.com/DATA-DOG/go-sqlmock"
)

func stringPtr(s string) *string { return &s }
func intPtr(n int) *int          { return &n }

func TestBookingUpdateRejectsUnknownPaymentStatus(t *testing.T) {
	patch := BookingUpdate{PaymentStatus: stringPtr("paid")}
	if _, err := patch.columns(); err == nil {
		t.Fatal("expected invalid payment status to be rejected")
	}
}

func TestBookingUpdateColumnMapping(t *testing.T) {
	checkIn := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
	patch := BookingUpdate{
		PaymentStatus: stringPtr(models.PaymentCompleted),
		TransactionID: stringPtr("TXN-1"),
		CheckIn:       &checkIn,
		NumberOfRooms: intPtr(2),
	}

	updates, err := patch.columns()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updates["payment_status"] != models.PaymentCompleted {
		t.Fatalf("payment_status missing, got %v", updates)
	}
	if updates["payment_transaction_id"] != "TXN-1" {
		t.Fatalf("payment_transaction_id missing, got %v", updates)
	}
	if updates["check_in"] != checkIn {
		t.Fatalf("check_in missing, got %v", updates)
	}
	if updates["number_of_rooms"] != 2 {
		t.Fatalf("number_of_rooms missing, got %v", updates)
	}
}

func TestBookingUpdateRejectsNonPositiveRoomCount(t *testing.T) {
	patch := BookingUpdate{NumberOfRooms: intPtr(0)}
	if _, err := patch.columns(); err == nil {
		t.Fatal("expected zero room count to be rejected")
	}
}

func TestCreateBookingValidatesStay(t *testing.T) {
	db, _ := newMockDB(t)
	svc := NewBookingService(db)

	checkIn := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)

	b := models.Booking{
		RoomID:  1,
		HotelID: 1,
		Stay:    models.StayDetails{NumberOfRooms: 0, CheckIn: checkIn, CheckOut: checkIn.AddDate(0, 0, 2)},
	}
	if err := svc.Create(&b); err == nil {
		t.Fatal("expected zero rooms to be rejected")
	}

	b.Stay.NumberOfRooms = 1
	b.Stay.CheckOut = checkIn
	if err := svc.Create(&b); err == nil {
		t.Fatal("expected empty stay interval to be rejected")
	}
}

func TestCreateBookingEnforcesRoomHotelMatch(t *testing.T) {
	db, mock := newMockDB(t)
	mock.MatchExpectationsInOrder(false)

	// room 1 belongs to hotel 2, the booking names hotel 1
	mock.ExpectQuery("SELECT \\* FROM `rooms`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "hotel_id", "type", "total_rooms"}).
			AddRow(1, 2, "Deluxe", 5))

	checkIn := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
	b := models.Booking{
		RoomID:  1,
		HotelID: 1,
		Stay:    models.StayDetails{NumberOfRooms: 1, CheckIn: checkIn, CheckOut: checkIn.AddDate(0, 0, 2)},
	}
	if err := NewBookingService(db).Create(&b); !errors.Is(err, ErrRoomHotelMismatch) {
		t.Fatalf("expected ErrRoomHotelMismatch, got %v", err)
	}
}

func TestCreateBookingUnknownRoom(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectQuery("SELECT \\* FROM `rooms`").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	checkIn := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
	b := models.Booking{
		RoomID:  77,
		HotelID: 1,
		Stay:    models.StayDetails{NumberOfRooms: 1, CheckIn: checkIn, CheckOut: checkIn.AddDate(0, 0, 2)},
	}
	if err := NewBookingService(db).Create(&b); !errors.Is(err, ErrRoomNotFound) {
		t.Fatalf("expected ErrRoomNotFound, got %v", err)
	}
}
