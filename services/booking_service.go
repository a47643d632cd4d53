package services

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"hotel-booking-backend/models"
	"hotel-booking-backend/utils"

	"gorm.io/gorm"
)

var (
	ErrBookingNotFound   = errors.New("booking_not_found")
	ErrNotYourHotel      = errors.New("not_your_hotel")
	ErrRoomHotelMismatch = errors.New("room_hotel_mismatch")
)

type BookingService struct {
	DB *gorm.DB
}

func NewBookingService(db *gorm.DB) *BookingService {
	return &BookingService{DB: db}
}

// Create persists a guest-submitted booking. The room must exist and
// belong to the hotel the booking names: HotelID is a cached reference
// and the invariant is enforced here, at write time. Identifiers are
// generated with a retry loop on unique collisions.
func (s *BookingService) Create(booking *models.Booking) error {
	if booking.Stay.NumberOfRooms <= 0 {
		return errors.New("invalid_number_of_rooms")
	}
	if !booking.Stay.CheckOut.After(booking.Stay.CheckIn) {
		return errors.New("invalid_stay_interval")
	}

	var room models.Room
	if err := s.DB.First(&room, booking.RoomID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrRoomNotFound
		}
		return fmt.Errorf("db error checking room %d: %w", booking.RoomID, err)
	}
	if room.HotelID != booking.HotelID {
		return ErrRoomHotelMismatch
	}

	if booking.Payment.PaymentStatus == "" {
		booking.Payment.PaymentStatus = models.PaymentPending
	}
	if booking.Metadata.BookingDate == nil {
		now := time.Now().UTC()
		booking.Metadata.BookingDate = &now
	}

	const maxRetries = 5
	var createErr error
	for attempt := 0; attempt < maxRetries; attempt++ {
		bookingID, err := utils.GenerateBookingID()
		if err != nil {
			return fmt.Errorf("failed to generate booking id: %w", err)
		}
		confirmationID, err := utils.GenerateConfirmationID()
		if err != nil {
			return fmt.Errorf("failed to generate confirmation id: %w", err)
		}
		booking.BookingID = bookingID
		booking.ConfirmationID = confirmationID

		createErr = s.DB.Create(booking).Error
		if createErr == nil {
			return nil
		}

		lc := strings.ToLower(createErr.Error())
		if strings.Contains(lc, "duplicate") || strings.Contains(lc, "unique") || strings.Contains(lc, "constraint") {
			log.Printf("booking id collision (attempt %d) - retrying", attempt+1)
			continue
		}
		return fmt.Errorf("failed to create booking: %w", createErr)
	}
	return fmt.Errorf("failed to create booking after retries: %w", createErr)
}

func (s *BookingService) GetAll() ([]models.Booking, error) {
	var list []models.Booking
	if err := s.DB.Preload("Room").Order("created_at DESC").Find(&list).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve bookings: %w", err)
	}
	return list, nil
}

func (s *BookingService) GetByID(id uint) (models.Booking, error) {
	var booking models.Booking
	if err := s.DB.Preload("Room").First(&booking, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Booking{}, ErrBookingNotFound
		}
		return models.Booking{}, fmt.Errorf("failed to retrieve booking: %w", err)
	}
	return booking, nil
}

func (s *BookingService) ListByHotel(hotelID uint) ([]models.Booking, error) {
	var list []models.Booking
	if err := s.DB.Preload("Room").
		Where("hotel_id = ?", hotelID).
		Order("created_at DESC").
		Find(&list).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve bookings: %w", err)
	}
	return list, nil
}

// ListForHotel supports the admin dashboard list: activeOnly keeps
// bookings that have not checked out yet and are pending or completed;
// limit caps the result when positive.
func (s *BookingService) ListForHotel(hotelID uint, activeOnly bool, limit int) ([]models.Booking, error) {
	query := s.DB.Preload("Room").Where("hotel_id = ?", hotelID)
	if activeOnly {
		query = query.
			Where("check_out >= ?", time.Now().UTC()).
			Where("payment_status IN ?", []string{models.PaymentCompleted, models.PaymentPending})
	}
	query = query.Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	var list []models.Booking
	if err := query.Find(&list).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve bookings: %w", err)
	}
	return list, nil
}

// BookingUpdate carries the administratively mutable fields. Status
// transitions are unrestricted: the payment flow is external and the
// admin is trusted.
type BookingUpdate struct {
	PaymentStatus *string
	PaymentMethod *string
	TransactionID *string
	CheckIn       *time.Time
	CheckOut      *time.Time
	NumberOfRooms *int
}

func (p BookingUpdate) columns() (map[string]interface{}, error) {
	updates := map[string]interface{}{}
	if p.PaymentStatus != nil {
		switch *p.PaymentStatus {
		case models.PaymentPending, models.PaymentCompleted, models.PaymentFailed, models.PaymentCancelled:
		default:
			return nil, errors.New("invalid_payment_status")
		}
		updates["payment_status"] = *p.PaymentStatus
	}
	if p.PaymentMethod != nil {
		updates["payment_method"] = *p.PaymentMethod
	}
	if p.TransactionID != nil {
		updates["payment_transaction_id"] = *p.TransactionID
	}
	if p.CheckIn != nil {
		updates["check_in"] = *p.CheckIn
	}
	if p.CheckOut != nil {
		updates["check_out"] = *p.CheckOut
	}
	if p.NumberOfRooms != nil {
		if *p.NumberOfRooms <= 0 {
			return nil, errors.New("invalid_number_of_rooms")
		}
		updates["number_of_rooms"] = *p.NumberOfRooms
	}
	return updates, nil
}

// UpdateForHotel patches a booking after verifying it belongs to the
// given hotel. Ownership mismatch is a distinct error from not-found.
func (s *BookingService) UpdateForHotel(hotelID, bookingID uint, patch BookingUpdate) (models.Booking, error) {
	booking, err := s.GetByID(bookingID)
	if err != nil {
		return models.Booking{}, err
	}
	if booking.HotelID != hotelID {
		return models.Booking{}, ErrNotYourHotel
	}

	updates, err := patch.columns()
	if err != nil {
		return models.Booking{}, err
	}
	if len(updates) > 0 {
		if err := s.DB.Model(&models.Booking{}).Where("id = ?", bookingID).Updates(updates).Error; err != nil {
			return models.Booking{}, fmt.Errorf("failed to update booking: %w", err)
		}
	}
	return s.GetByID(bookingID)
}

// DeleteForHotel removes a booking after the same ownership check.
func (s *BookingService) DeleteForHotel(hotelID, bookingID uint) error {
	booking, err := s.GetByID(bookingID)
	if err != nil {
		return err
	}
	if booking.HotelID != hotelID {
		return ErrNotYourHotel
	}
	if err := s.DB.Delete(&models.Booking{}, bookingID).Error; err != nil {
		return fmt.Errorf("failed to delete booking: %w", err)
	}
	return nil
}
