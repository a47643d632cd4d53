package controllers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"hotel-booking-backend/middleware"
	"hotel-booking-backend/models"
	"hotel-booking-backend/services"
	"hotel-booking-backend/storage"
	"hotel-booking-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"gorm.io/datatypes"
)

// ---------------------------
// Payload / DTOs
// ---------------------------

type guestPayload struct {
	FirstName string `json:"firstName" binding:"required"`
	LastName  string `json:"lastName" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	Phone     string `json:"phone" binding:"required"`
	City      string `json:"city" binding:"required"`
	Country   string `json:"country" binding:"required"`
}

type stayPayload struct {
	CheckIn          string `json:"checkIn" binding:"required"`
	CheckOut         string `json:"checkOut" binding:"required"`
	NumberOfRooms    int    `json:"numberOfRooms" binding:"required,min=1"`
	NumberOfAdults   int    `json:"numberOfAdults" binding:"required,min=1"`
	NumberOfChildren int    `json:"numberOfChildren" binding:"min=0"`
	NumberOfNights   int    `json:"numberOfNights" binding:"required,min=1"`
}

type amountPayload struct {
	RoomCharges  float64 `json:"roomCharges" binding:"required"`
	GuestCharges float64 `json:"guestCharges"`
	Subtotal     float64 `json:"subtotal" binding:"required"`
	TaxesAndFees float64 `json:"taxesAndFees"`
	Discount     float64 `json:"discount"`
	GrandTotal   float64 `json:"grandTotal" binding:"required"`
	Currency     string  `json:"currency"`
}

type paymentPayload struct {
	PaymentMethod string `json:"paymentMethod" binding:"required"`
	TransactionID string `json:"transactionId"`
}

type metadataPayload struct {
	BookingSource string          `json:"bookingSource"`
	ClientInfo    json.RawMessage `json:"clientInfo"`
}

// CreateBookingRequest is the single typed schema for guest
// submissions, validated once at the boundary. The frontend sends it as
// one JSON document (a "booking" form field beside the paymentProof
// file, or the whole request body when there is no upload).
type CreateBookingRequest struct {
	RoomID   uint            `json:"roomId" binding:"required"`
	HotelID  uint            `json:"hotelId" binding:"required"`
	Guest    guestPayload    `json:"guestDetails" binding:"required"`
	Stay     stayPayload     `json:"bookingDetails" binding:"required"`
	Amount   amountPayload   `json:"amountDetails" binding:"required"`
	Payment  paymentPayload  `json:"paymentDetails" binding:"required"`
	Metadata metadataPayload `json:"bookingMetadata"`
}

func parseStayDate(raw string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, raw)
}

type updateBookingPayload struct {
	PaymentStatus *string `json:"paymentStatus"`
	PaymentMethod *string `json:"paymentMethod"`
	TransactionID *string `json:"transactionId"`
	CheckIn       *string `json:"checkIn"`
	CheckOut      *string `json:"checkOut"`
	NumberOfRooms *int    `json:"numberOfRooms"`
}

// ---------------------------
// Controller
// ---------------------------

type BookingController struct {
	BookingSvc *services.BookingService
	RevenueSvc *services.RevenueService
	HotelSvc   *services.HotelService
	AdminSvc   *services.AdminService
	Blobs      storage.BlobStore
	Retry      utils.RetryPolicy
}

func NewBookingController(
	bookingSvc *services.BookingService,
	revenueSvc *services.RevenueService,
	hotelSvc *services.HotelService,
	adminSvc *services.AdminService,
	blobs storage.BlobStore,
) *BookingController {
	return &BookingController{
		BookingSvc: bookingSvc,
		RevenueSvc: revenueSvc,
		HotelSvc:   hotelSvc,
		AdminSvc:   adminSvc,
		Blobs:      blobs,
		Retry:      utils.DefaultRetryPolicy,
	}
}

func (bc *BookingController) bindCreateRequest(c *gin.Context) (CreateBookingRequest, error) {
	var req CreateBookingRequest

	contentType := c.ContentType()
	if strings.HasPrefix(contentType, "multipart/form-data") {
		raw := c.PostForm("booking")
		if raw == "" {
			return req, errors.New("missing booking form field")
		}
		if err := json.Unmarshal([]byte(raw), &req); err != nil {
			return req, err
		}
		// run the same validation JSON binding would
		if err := binding.Validator.ValidateStruct(&req); err != nil {
			return req, err
		}
		return req, nil
	}

	return req, c.ShouldBindJSON(&req)
}

// POST /bookings: guest-facing submission with payment proof upload.
func (bc *BookingController) CreateBooking(c *gin.Context) {
	req, err := bc.bindCreateRequest(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Validation error", "details": err.Error()})
		return
	}

	checkIn, err := parseStayDate(req.Stay.CheckIn)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid checkIn date", "details": err.Error()})
		return
	}
	checkOut, err := parseStayDate(req.Stay.CheckOut)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid checkOut date", "details": err.Error()})
		return
	}
	if !checkOut.After(checkIn) {
		c.JSON(http.StatusBadRequest, gin.H{"message": "checkOut must be after checkIn"})
		return
	}

	proofURL := ""
	if file, ferr := c.FormFile("paymentProof"); ferr == nil {
		url, uerr := bc.Blobs.Save(c.Request.Context(), file, "payment-proofs")
		if uerr != nil {
			log.Printf("❌ Payment proof upload failed: %v", uerr)
			c.JSON(http.StatusBadRequest, gin.H{"message": "File upload error", "details": uerr.Error()})
			return
		}
		proofURL = url
	}

	currency := req.Amount.Currency
	if currency == "" {
		currency = "INR"
	}
	source := req.Metadata.BookingSource
	if source == "" {
		source = "web"
	}
	now := time.Now().UTC()

	booking := models.Booking{
		RoomID:  req.RoomID,
		HotelID: req.HotelID,
		Guest: models.GuestDetails{
			FirstName: req.Guest.FirstName,
			LastName:  req.Guest.LastName,
			Email:     req.Guest.Email,
			Phone:     req.Guest.Phone,
			City:      req.Guest.City,
			Country:   req.Guest.Country,
		},
		Stay: models.StayDetails{
			CheckIn:          checkIn,
			CheckOut:         checkOut,
			NumberOfRooms:    req.Stay.NumberOfRooms,
			NumberOfAdults:   req.Stay.NumberOfAdults,
			NumberOfChildren: req.Stay.NumberOfChildren,
			NumberOfNights:   req.Stay.NumberOfNights,
		},
		Amount: models.AmountDetails{
			RoomCharges:  req.Amount.RoomCharges,
			GuestCharges: req.Amount.GuestCharges,
			Subtotal:     req.Amount.Subtotal,
			TaxesAndFees: req.Amount.TaxesAndFees,
			Discount:     req.Amount.Discount,
			GrandTotal:   req.Amount.GrandTotal,
			Currency:     currency,
		},
		Payment: models.PaymentDetails{
			PaymentMethod:        req.Payment.PaymentMethod,
			PaymentStatus:        models.PaymentPending,
			TransactionID:        req.Payment.TransactionID,
			PaymentDate:          &now,
			PaymentProofImageURL: proofURL,
		},
		Metadata: models.BookingMetadata{
			BookingSource: source,
			BookingDate:   &now,
			ClientInfo:    datatypes.JSON(req.Metadata.ClientInfo),
		},
	}

	if err := bc.BookingSvc.Create(&booking); err != nil {
		switch {
		case errors.Is(err, services.ErrRoomNotFound):
			c.JSON(http.StatusBadRequest, gin.H{"message": "Room not found"})
		case errors.Is(err, services.ErrRoomHotelMismatch):
			c.JSON(http.StatusBadRequest, gin.H{"message": "Room does not belong to the given hotel"})
		default:
			log.Printf("❌ Booking create failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to create booking"})
		}
		return
	}

	// Confirmation emails are best-effort: failure never fails the
	// booking, it just flips the emailSent flag in the response.
	emailSent := bc.sendConfirmationEmails(c, booking)

	message := "Booking created successfully"
	if !emailSent {
		message = "Booking created successfully but email notification failed"
	}
	c.JSON(http.StatusCreated, gin.H{
		"message":        message,
		"bookingId":      booking.BookingID,
		"confirmationId": booking.ConfirmationID,
		"booking":        booking,
		"emailSent":      emailSent,
	})
}

func (bc *BookingController) sendConfirmationEmails(c *gin.Context, booking models.Booking) bool {
	ctx := c.Request.Context()

	guestErr := bc.Retry.Do(ctx, func() error {
		return utils.SendGuestConfirmationEmail(booking)
	})
	if guestErr != nil {
		log.Printf("⚠️ Guest confirmation email failed: %v", guestErr)
	}

	adminEmail := utils.EnvOrDefault("FALLBACK_ADMIN_EMAIL", "")
	if hotel, err := bc.HotelSvc.GetByID(booking.HotelID); err == nil {
		if admin, err := bc.AdminSvc.GetByID(hotel.AdminID); err == nil {
			adminEmail = admin.Email
		}
	} else {
		log.Printf("⚠️ Hotel %d not found while resolving admin email", booking.HotelID)
	}

	var adminErr error
	if adminEmail != "" {
		adminErr = bc.Retry.Do(ctx, func() error {
			return utils.SendAdminNotificationEmail(booking, adminEmail)
		})
		if adminErr != nil {
			log.Printf("⚠️ Admin notification email failed: %v", adminErr)
		}
	}

	return guestErr == nil && adminErr == nil
}

// GET /bookings
func (bc *BookingController) GetAllBookings(c *gin.Context) {
	bookings, err := bc.BookingSvc.GetAll()
	if err != nil {
		log.Printf("❌ Booking list failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}
	c.JSON(http.StatusOK, bookings)
}

// GET /bookings/:id
func (bc *BookingController) GetBookingByID(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid booking id"})
		return
	}

	booking, err := bc.BookingSvc.GetByID(uint(id))
	if err != nil {
		if errors.Is(err, services.ErrBookingNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Booking not found"})
			return
		}
		log.Printf("❌ Booking lookup failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}
	c.JSON(http.StatusOK, booking)
}

// GET /bookings/hotel/:hotelId (public)
func (bc *BookingController) GetBookingsByHotelID(c *gin.Context) {
	hotelID, err := strconv.ParseUint(c.Param("hotelId"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid hotel id"})
		return
	}

	bookings, err := bc.BookingSvc.ListByHotel(uint(hotelID))
	if err != nil {
		log.Printf("❌ Booking list failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}
	c.JSON(http.StatusOK, bookings)
}

// GET /bookings/my-hotel?status=active&limit=N
func (bc *BookingController) GetMyHotelBookings(c *gin.Context) {
	adminID, ok := middleware.AdminID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
		return
	}

	hotel, err := bc.HotelSvc.GetByAdmin(adminID)
	if err != nil {
		if errors.Is(err, services.ErrHotelNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "No hotel found for this admin"})
			return
		}
		log.Printf("❌ Hotel lookup failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	activeOnly := c.Query("status") == "active"
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		limit, err = strconv.Atoi(raw)
		if err != nil || limit < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid limit"})
			return
		}
	}

	bookings, err := bc.BookingSvc.ListForHotel(hotel.ID, activeOnly, limit)
	if err != nil {
		log.Printf("❌ Booking list failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}
	c.JSON(http.StatusOK, bookings)
}

// PUT /bookings/:id: admin status updates, own hotel only.
func (bc *BookingController) UpdateBooking(c *gin.Context) {
	adminID, ok := middleware.AdminID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid booking id"})
		return
	}

	var payload updateBookingPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request payload", "details": err.Error()})
		return
	}

	patch := services.BookingUpdate{
		PaymentStatus: payload.PaymentStatus,
		PaymentMethod: payload.PaymentMethod,
		TransactionID: payload.TransactionID,
		NumberOfRooms: payload.NumberOfRooms,
	}
	if payload.CheckIn != nil {
		t, err := parseStayDate(*payload.CheckIn)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid checkIn date"})
			return
		}
		patch.CheckIn = &t
	}
	if payload.CheckOut != nil {
		t, err := parseStayDate(*payload.CheckOut)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid checkOut date"})
			return
		}
		patch.CheckOut = &t
	}

	hotel, err := bc.HotelSvc.GetByAdmin(adminID)
	if err != nil {
		if errors.Is(err, services.ErrHotelNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "No hotel found for this admin"})
			return
		}
		log.Printf("❌ Hotel lookup failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	booking, err := bc.BookingSvc.UpdateForHotel(hotel.ID, uint(id), patch)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrBookingNotFound):
			c.JSON(http.StatusNotFound, gin.H{"message": "Booking not found"})
		case errors.Is(err, services.ErrNotYourHotel):
			c.JSON(http.StatusForbidden, gin.H{"message": "Access denied. You can only update bookings for your own hotel."})
		default:
			log.Printf("❌ Booking update failed: %v", err)
			c.JSON(http.StatusBadRequest, gin.H{"message": "Server error", "details": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Booking updated successfully", "booking": booking})
}

// DELETE /bookings/:id: own hotel only.
func (bc *BookingController) DeleteBooking(c *gin.Context) {
	adminID, ok := middleware.AdminID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid booking id"})
		return
	}

	hotel, err := bc.HotelSvc.GetByAdmin(adminID)
	if err != nil {
		if errors.Is(err, services.ErrHotelNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "No hotel found for this admin"})
			return
		}
		log.Printf("❌ Hotel lookup failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	if err := bc.BookingSvc.DeleteForHotel(hotel.ID, uint(id)); err != nil {
		switch {
		case errors.Is(err, services.ErrBookingNotFound):
			c.JSON(http.StatusNotFound, gin.H{"message": "Booking not found"})
		case errors.Is(err, services.ErrNotYourHotel):
			c.JSON(http.StatusForbidden, gin.H{"message": "Access denied. You can only delete bookings for your own hotel."})
		default:
			log.Printf("❌ Booking delete failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Booking deleted successfully"})
}

func (bc *BookingController) revenueForRequest(c *gin.Context) (models.Hotel, services.RevenueReport, bool) {
	adminID, ok := middleware.AdminID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
		return models.Hotel{}, services.RevenueReport{}, false
	}

	hotel, err := bc.HotelSvc.GetByAdmin(adminID)
	if err != nil {
		if errors.Is(err, services.ErrHotelNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "No hotel found for this admin"})
			return models.Hotel{}, services.RevenueReport{}, false
		}
		log.Printf("❌ Hotel lookup failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return models.Hotel{}, services.RevenueReport{}, false
	}

	var start, end *time.Time
	if raw := c.Query("startDate"); raw != "" {
		t, err := parseStayDate(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid startDate"})
			return models.Hotel{}, services.RevenueReport{}, false
		}
		start = &t
	}
	if raw := c.Query("endDate"); raw != "" {
		t, err := parseStayDate(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid endDate"})
			return models.Hotel{}, services.RevenueReport{}, false
		}
		// make the bound inclusive of the whole end day
		t = t.Add(24*time.Hour - time.Nanosecond)
		end = &t
	}

	report, err := bc.RevenueSvc.ForHotel(hotel.ID, start, end)
	if err != nil {
		log.Printf("❌ Revenue computation failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return models.Hotel{}, services.RevenueReport{}, false
	}
	return hotel, report, true
}

// GET /bookings/revenue?startDate&endDate
func (bc *BookingController) GetRevenue(c *gin.Context) {
	_, report, ok := bc.revenueForRequest(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, report)
}

// GET /bookings/revenue/pdf: same aggregate as a downloadable report.
func (bc *BookingController) GetRevenuePDF(c *gin.Context) {
	hotel, report, ok := bc.revenueForRequest(c)
	if !ok {
		return
	}

	pdf, filename, err := bc.RevenueSvc.BuildPDF(hotel, report)
	if err != nil {
		log.Printf("❌ Revenue PDF generation failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Data(http.StatusOK, "application/pdf", pdf)
}
