package services

import (
	"errors"
	"fmt"

	"hotel-booking-backend/models"

	"gorm.io/gorm"
)

var ErrRoomNotFound = errors.New("room_not_found")

// RoomService owns room CRUD scoped to the admin's hotel and feeds the
// change notifier on every mutation. The notifier is injected, not
// looked up from ambient state.
type RoomService struct {
	DB       *gorm.DB
	Hotels   *HotelService
	Notifier *ChangeNotifier
}

func NewRoomService(db *gorm.DB, hotels *HotelService, notifier *ChangeNotifier) *RoomService {
	return &RoomService{DB: db, Hotels: hotels, Notifier: notifier}
}

// Create attaches the room to the admin's hotel. The admin must have
// created a hotel first.
func (s *RoomService) Create(adminID uint, room models.Room) (models.Room, error) {
	hotel, err := s.Hotels.GetByAdmin(adminID)
	if err != nil {
		return models.Room{}, err
	}
	if room.TotalRooms < 0 {
		return models.Room{}, errors.New("invalid_total_rooms")
	}

	room.HotelID = hotel.ID
	if room.Availability == "" {
		room.Availability = "Available"
	}
	if err := s.DB.Create(&room).Error; err != nil {
		return models.Room{}, fmt.Errorf("failed to create room: %w", err)
	}

	s.Notifier.Publish(RoomEvent{Kind: RoomCreated, HotelID: hotel.ID, RoomID: room.ID, Room: &room})
	return room, nil
}

func (s *RoomService) ListByAdmin(adminID uint) ([]models.Room, error) {
	hotel, err := s.Hotels.GetByAdmin(adminID)
	if err != nil {
		return nil, err
	}
	return s.ListByHotel(hotel.ID)
}

func (s *RoomService) ListByHotel(hotelID uint) ([]models.Room, error) {
	var rooms []models.Room
	if err := s.DB.Where("hotel_id = ?", hotelID).Find(&rooms).Error; err != nil {
		return nil, fmt.Errorf("failed to list rooms: %w", err)
	}
	return rooms, nil
}

// RoomUpdate is the patch shape for room mutation; nil fields keep the
// current value.
type RoomUpdate struct {
	Type          *string
	TotalRooms    *int
	PricePerNight *float64
	BedType       *string
	PerAdultPrice *float64
	PerChildPrice *float64
	Discount      *float64
	TaxPercentage *float64
	MaxGuests     *int
	RoomSize      *string
	Availability  *string
	Image         *string
}

func (p RoomUpdate) columns() map[string]interface{} {
	updates := map[string]interface{}{}
	if p.Type != nil {
		updates["type"] = *p.Type
	}
	if p.TotalRooms != nil {
		updates["total_rooms"] = *p.TotalRooms
	}
	if p.PricePerNight != nil {
		updates["price_per_night"] = *p.PricePerNight
	}
	if p.BedType != nil {
		updates["bed_type"] = *p.BedType
	}
	if p.PerAdultPrice != nil {
		updates["per_adult_price"] = *p.PerAdultPrice
	}
	if p.PerChildPrice != nil {
		updates["per_child_price"] = *p.PerChildPrice
	}
	if p.Discount != nil {
		updates["discount"] = *p.Discount
	}
	if p.TaxPercentage != nil {
		updates["tax_percentage"] = *p.TaxPercentage
	}
	if p.MaxGuests != nil {
		updates["max_guests"] = *p.MaxGuests
	}
	if p.RoomSize != nil {
		updates["room_size"] = *p.RoomSize
	}
	if p.Availability != nil {
		updates["availability"] = *p.Availability
	}
	if p.Image != nil {
		updates["image"] = *p.Image
	}
	return updates
}

// Update patches a room owned by the admin's hotel.
func (s *RoomService) Update(adminID, roomID uint, patch RoomUpdate) (models.Room, error) {
	hotel, err := s.Hotels.GetByAdmin(adminID)
	if err != nil {
		return models.Room{}, err
	}
	if patch.TotalRooms != nil && *patch.TotalRooms < 0 {
		return models.Room{}, errors.New("invalid_total_rooms")
	}

	updates := patch.columns()
	if len(updates) > 0 {
		result := s.DB.Model(&models.Room{}).
			Where("id = ? AND hotel_id = ?", roomID, hotel.ID).
			Updates(updates)
		if result.Error != nil {
			return models.Room{}, fmt.Errorf("failed to update room: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return models.Room{}, ErrRoomNotFound
		}
	}

	var room models.Room
	if err := s.DB.Where("id = ? AND hotel_id = ?", roomID, hotel.ID).First(&room).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Room{}, ErrRoomNotFound
		}
		return models.Room{}, fmt.Errorf("failed to reload room: %w", err)
	}

	s.Notifier.Publish(RoomEvent{Kind: RoomUpdated, HotelID: hotel.ID, RoomID: room.ID, Room: &room})
	return room, nil
}

// Delete removes a room owned by the admin's hotel. Bookings that
// reference it are left in place; availability reads skip them.
func (s *RoomService) Delete(adminID, roomID uint) error {
	hotel, err := s.Hotels.GetByAdmin(adminID)
	if err != nil {
		return err
	}

	result := s.DB.Where("id = ? AND hotel_id = ?", roomID, hotel.ID).Delete(&models.Room{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete room: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrRoomNotFound
	}

	s.Notifier.Publish(RoomEvent{Kind: RoomDeleted, HotelID: hotel.ID, RoomID: roomID})
	return nil
}
