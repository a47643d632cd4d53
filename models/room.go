package models

import (
	"gorm.io/gorm"
)

type Room struct {
	gorm.Model

	HotelID uint `gorm:"index;column:hotel_id" json:"hotelId"`

	// Type is a label, not unique: several Room records may share it and
	// their unit counts aggregate in the availability rollup.
	Type       string `gorm:"size:100" json:"type"`
	TotalRooms int    `json:"totalRooms" gorm:"column:total_rooms"`

	PricePerNight float64 `json:"pricePerNight" gorm:"column:price_per_night"`
	BedType       string  `json:"bedType" gorm:"column:bed_type;size:100"`
	PerAdultPrice float64 `json:"perAdultPrice" gorm:"column:per_adult_price"`
	PerChildPrice float64 `json:"perChildPrice" gorm:"column:per_child_price"`
	Discount      float64 `json:"discount"`
	TaxPercentage float64 `json:"taxPercentage" gorm:"column:tax_percentage;default:18"`
	MaxGuests     int     `json:"maxGuests" gorm:"column:max_guests"`
	RoomSize      string  `json:"roomSize" gorm:"column:room_size;size:50"`

	// Administrative override, independent of computed occupancy.
	Availability string `gorm:"size:50;default:Available" json:"availability"`

	Image string `gorm:"size:255" json:"image"`

	Hotel Hotel `gorm:"foreignKey:HotelID" json:"-"`
}
