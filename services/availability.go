package services

import (
	"fmt"
	"time"

	"hotel-booking-backend/models"

	"gorm.io/gorm"
)

// UnitAvailability is the per-room (or per-type) unit breakdown.
// AvailableUnits is not clamped at zero: occupied > total
// means the hotel is overbooked and the negative number should be seen,
// not hidden.
type UnitAvailability struct {
	TotalUnits     int `json:"totalRooms"`
	OccupiedUnits  int `json:"booked"`
	AvailableUnits int `json:"available"`
}

// TypeAvailability rolls UnitAvailability up across every room sharing
// a type label.
type TypeAvailability struct {
	RoomType       string `json:"roomType"`
	TotalUnits     int    `json:"totalRooms"`
	OccupiedUnits  int    `json:"booked"`
	AvailableUnits int    `json:"available"`
}

// ComputeAvailability overlays the booking set onto the room inventory
// at instant now and returns per-room counts plus the per-type rollup.
//
// The function is pure: it never touches the database, never errors,
// and identical snapshots with an identical now yield identical output.
// now is a parameter rather than wall clock so callers (and tests)
// control the instant.
//
// Bookings referencing a room id absent from rooms are skipped: their
// occupancy cannot be attributed. This makes reads orphan-tolerant when
// a room was deleted while bookings still point at it.
func ComputeAvailability(rooms []models.Room, bookings []models.Booking, now time.Time) (map[uint]UnitAvailability, []TypeAvailability) {
	perRoom := make(map[uint]UnitAvailability, len(rooms))
	roomByID := make(map[uint]*models.Room, len(rooms))
	occupied := make(map[uint]int, len(rooms))

	for i := range rooms {
		r := &rooms[i]
		roomByID[r.ID] = r
		occupied[r.ID] = 0
	}

	for i := range bookings {
		b := &bookings[i]
		if !b.ActiveAt(now) {
			continue
		}
		if _, known := roomByID[b.RoomID]; !known {
			continue
		}
		occupied[b.RoomID] += b.Stay.NumberOfRooms
	}

	for i := range rooms {
		r := &rooms[i]
		perRoom[r.ID] = UnitAvailability{
			TotalUnits:     r.TotalRooms,
			OccupiedUnits:  occupied[r.ID],
			AvailableUnits: r.TotalRooms - occupied[r.ID],
		}
	}

	// Type rollup, preserving first-appearance order of the labels.
	index := make(map[string]int, len(rooms))
	rollup := make([]TypeAvailability, 0, len(rooms))
	for i := range rooms {
		r := &rooms[i]
		pos, seen := index[r.Type]
		if !seen {
			pos = len(rollup)
			index[r.Type] = pos
			rollup = append(rollup, TypeAvailability{RoomType: r.Type})
		}
		rollup[pos].TotalUnits += r.TotalRooms
		rollup[pos].OccupiedUnits += occupied[r.ID]
	}
	for i := range rollup {
		rollup[i].AvailableUnits = rollup[i].TotalUnits - rollup[i].OccupiedUnits
	}

	return perRoom, rollup
}

// AvailabilityService fetches room and booking snapshots for a hotel
// and delegates to the pure engine. All I/O happens here, before the
// computation.
type AvailabilityService struct {
	DB *gorm.DB
}

func NewAvailabilityService(db *gorm.DB) *AvailabilityService {
	return &AvailabilityService{DB: db}
}

func (s *AvailabilityService) ForHotel(hotelID uint, now time.Time) (map[uint]UnitAvailability, []TypeAvailability, error) {
	var rooms []models.Room
	if err := s.DB.Where("hotel_id = ?", hotelID).Find(&rooms).Error; err != nil {
		return nil, nil, fmt.Errorf("failed to load rooms: %w", err)
	}

	var bookings []models.Booking
	if err := s.DB.Where("hotel_id = ?", hotelID).Find(&bookings).Error; err != nil {
		return nil, nil, fmt.Errorf("failed to load bookings: %w", err)
	}

	perRoom, rollup := ComputeAvailability(rooms, bookings, now)
	return perRoom, rollup, nil
}
