package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Payment status values. Only completed bookings consume inventory or
// count toward revenue.
const (
	PaymentPending   = "pending"
	PaymentCompleted = "completed"
	PaymentFailed    = "failed"
	PaymentCancelled = "cancelled"
)

type GuestDetails struct {
	FirstName string `gorm:"size:100" json:"firstName"`
	LastName  string `gorm:"size:100" json:"lastName"`
	Email     string `gorm:"size:150" json:"email"`
	Phone     string `gorm:"size:50" json:"phone"`
	City      string `gorm:"size:100" json:"city"`
	Country   string `gorm:"size:100" json:"country"`
}

type StayDetails struct {
	CheckIn          time.Time `gorm:"column:check_in" json:"checkIn"`
	CheckOut         time.Time `gorm:"column:check_out" json:"checkOut"`
	NumberOfRooms    int       `gorm:"column:number_of_rooms" json:"numberOfRooms"`
	NumberOfAdults   int       `gorm:"column:number_of_adults" json:"numberOfAdults"`
	NumberOfChildren int       `gorm:"column:number_of_children" json:"numberOfChildren"`
	NumberOfNights   int       `gorm:"column:number_of_nights" json:"numberOfNights"`
}

type AmountDetails struct {
	RoomCharges  float64 `gorm:"column:room_charges" json:"roomCharges"`
	GuestCharges float64 `gorm:"column:guest_charges" json:"guestCharges"`
	Subtotal     float64 `json:"subtotal"`
	TaxesAndFees float64 `gorm:"column:taxes_and_fees" json:"taxesAndFees"`
	Discount     float64 `json:"discount"`
	GrandTotal   float64 `gorm:"column:grand_total" json:"grandTotal"`
	Currency     string  `gorm:"size:10;default:INR" json:"currency"`
}

type PaymentDetails struct {
	PaymentMethod        string     `gorm:"column:method;size:50" json:"paymentMethod"`
	PaymentStatus        string     `gorm:"column:status;size:20;default:pending" json:"paymentStatus"`
	TransactionID        string     `gorm:"column:transaction_id;size:100" json:"transactionId,omitempty"`
	PaymentDate          *time.Time `gorm:"column:date" json:"paymentDate,omitempty"`
	PaymentProofImageURL string     `gorm:"column:proof_image_url;size:255" json:"paymentProofImageUrl,omitempty"`
}

type BookingMetadata struct {
	BookingSource string         `gorm:"column:source;size:50;default:web" json:"bookingSource"`
	BookingDate   *time.Time     `gorm:"column:date" json:"bookingDate,omitempty"`
	ClientInfo    datatypes.JSON `gorm:"column:client_info" json:"clientInfo,omitempty"`
}

// Booking stores HotelID directly as well as through the room reference
// (cached-reference pattern). BookingService enforces that the two agree
// at creation time.
type Booking struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// System identifier (human-opaque) and the shorter confirmation
	// code shown to guests. Both globally unique.
	BookingID      string `gorm:"uniqueIndex;column:booking_id;size:64" json:"bookingId"`
	ConfirmationID string `gorm:"uniqueIndex;column:confirmation_id;size:16" json:"confirmationId"`

	RoomID  uint `gorm:"index;column:room_id" json:"roomId"`
	HotelID uint `gorm:"index;column:hotel_id" json:"hotelId"`

	Guest    GuestDetails    `gorm:"embedded;embeddedPrefix:guest_" json:"guestDetails"`
	Stay     StayDetails     `gorm:"embedded" json:"bookingDetails"`
	Amount   AmountDetails   `gorm:"embedded;embeddedPrefix:amount_" json:"amountDetails"`
	Payment  PaymentDetails  `gorm:"embedded;embeddedPrefix:payment_" json:"paymentDetails"`
	Metadata BookingMetadata `gorm:"embedded;embeddedPrefix:meta_" json:"bookingMetadata"`

	Room  Room  `gorm:"foreignKey:RoomID" json:"room,omitempty"`
	Hotel Hotel `gorm:"foreignKey:HotelID" json:"-"`
}

// ActiveAt reports whether the booking consumes inventory at instant
// now: payment completed and checkIn <= now < checkOut (half-open).
func (b Booking) ActiveAt(now time.Time) bool {
	if b.Payment.PaymentStatus != PaymentCompleted {
		return false
	}
	return !now.Before(b.Stay.CheckIn) && now.Before(b.Stay.CheckOut)
}
