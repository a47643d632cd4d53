package controllers

import (
	"errors"
	"io"
	"log"
	"net/http"
	"strconv"
	"time"

	"hotel-booking-backend/middleware"
	"hotel-booking-backend/models"
	"hotel-booking-backend/services"
	"hotel-booking-backend/storage"

	"github.com/gin-gonic/gin"
)

type RoomController struct {
	RoomSvc         *services.RoomService
	AvailabilitySvc *services.AvailabilityService
	HotelSvc        *services.HotelService
	Notifier        *services.ChangeNotifier
	Blobs           storage.BlobStore
}

func NewRoomController(
	roomSvc *services.RoomService,
	availabilitySvc *services.AvailabilityService,
	hotelSvc *services.HotelService,
	notifier *services.ChangeNotifier,
	blobs storage.BlobStore,
) *RoomController {
	return &RoomController{
		RoomSvc:         roomSvc,
		AvailabilitySvc: availabilitySvc,
		HotelSvc:        hotelSvc,
		Notifier:        notifier,
		Blobs:           blobs,
	}
}

type createRoomPayload struct {
	Type          string  `form:"type" binding:"required"`
	TotalRooms    int     `form:"totalRooms" binding:"min=0"`
	PricePerNight float64 `form:"pricePerNight" binding:"required"`
	BedType       string  `form:"bedType" binding:"required"`
	PerAdultPrice float64 `form:"perAdultPrice"`
	PerChildPrice float64 `form:"perChildPrice"`
	Discount      float64 `form:"discount"`
	TaxPercentage float64 `form:"taxPercentage"`
	MaxGuests     int     `form:"maxGuests" binding:"required"`
	RoomSize      string  `form:"roomSize"`
	Availability  string  `form:"availability"`
}

// POST /rooms/create: multipart with optional image file.
func (rc *RoomController) CreateRoom(c *gin.Context) {
	adminID, ok := middleware.AdminID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
		return
	}

	var payload createRoomPayload
	if err := c.ShouldBind(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request payload", "details": err.Error()})
		return
	}
	if payload.TaxPercentage == 0 {
		payload.TaxPercentage = 18
	}

	imageURL := ""
	if file, err := c.FormFile("image"); err == nil {
		url, err := rc.Blobs.Save(c.Request.Context(), file, "rooms")
		if err != nil {
			log.Printf("❌ Room image upload failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Image upload failed"})
			return
		}
		imageURL = url
	}

	room, err := rc.RoomSvc.Create(adminID, roomFromPayload(payload, imageURL))
	if err != nil {
		if errors.Is(err, services.ErrHotelNotFound) {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Create a hotel first"})
			return
		}
		log.Printf("❌ Room create failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Room created", "room": room})
}

// GET /rooms/my-rooms
func (rc *RoomController) GetMyRooms(c *gin.Context) {
	adminID, ok := middleware.AdminID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
		return
	}

	rooms, err := rc.RoomSvc.ListByAdmin(adminID)
	if err != nil {
		if errors.Is(err, services.ErrHotelNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "No hotel found"})
			return
		}
		log.Printf("❌ Room list failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}
	c.JSON(http.StatusOK, rooms)
}

type updateRoomPayload struct {
	Type          *string  `form:"type"`
	TotalRooms    *int     `form:"totalRooms"`
	PricePerNight *float64 `form:"pricePerNight"`
	BedType       *string  `form:"bedType"`
	PerAdultPrice *float64 `form:"perAdultPrice"`
	PerChildPrice *float64 `form:"perChildPrice"`
	Discount      *float64 `form:"discount"`
	TaxPercentage *float64 `form:"taxPercentage"`
	MaxGuests     *int     `form:"maxGuests"`
	RoomSize      *string  `form:"roomSize"`
	Availability  *string  `form:"availability"`
}

// PUT /rooms/update/:id
func (rc *RoomController) UpdateRoom(c *gin.Context) {
	adminID, ok := middleware.AdminID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
		return
	}

	roomID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid room id"})
		return
	}

	var payload updateRoomPayload
	if err := c.ShouldBind(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request payload", "details": err.Error()})
		return
	}

	patch := services.RoomUpdate{
		Type:          payload.Type,
		TotalRooms:    payload.TotalRooms,
		PricePerNight: payload.PricePerNight,
		BedType:       payload.BedType,
		PerAdultPrice: payload.PerAdultPrice,
		PerChildPrice: payload.PerChildPrice,
		Discount:      payload.Discount,
		TaxPercentage: payload.TaxPercentage,
		MaxGuests:     payload.MaxGuests,
		RoomSize:      payload.RoomSize,
		Availability:  payload.Availability,
	}

	if file, err := c.FormFile("image"); err == nil {
		url, err := rc.Blobs.Save(c.Request.Context(), file, "rooms")
		if err != nil {
			log.Printf("❌ Room image upload failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Image upload failed"})
			return
		}
		patch.Image = &url
	}

	room, err := rc.RoomSvc.Update(adminID, uint(roomID), patch)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrHotelNotFound):
			c.JSON(http.StatusNotFound, gin.H{"message": "No hotel found"})
		case errors.Is(err, services.ErrRoomNotFound):
			c.JSON(http.StatusNotFound, gin.H{"message": "Room not found"})
		default:
			log.Printf("❌ Room update failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Room updated successfully", "room": room})
}

// DELETE /rooms/delete/:id
func (rc *RoomController) DeleteRoom(c *gin.Context) {
	adminID, ok := middleware.AdminID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
		return
	}

	roomID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid room id"})
		return
	}

	if err := rc.RoomSvc.Delete(adminID, uint(roomID)); err != nil {
		switch {
		case errors.Is(err, services.ErrHotelNotFound):
			c.JSON(http.StatusNotFound, gin.H{"message": "No hotel found"})
		case errors.Is(err, services.ErrRoomNotFound):
			c.JSON(http.StatusNotFound, gin.H{"message": "Room not found"})
		default:
			log.Printf("❌ Room delete failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Room deleted successfully"})
}

// GET /rooms/hotel/:hotelId (public)
func (rc *RoomController) GetRoomsByHotelID(c *gin.Context) {
	hotelID, err := strconv.ParseUint(c.Param("hotelId"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid hotel id"})
		return
	}

	rooms, err := rc.RoomSvc.ListByHotel(uint(hotelID))
	if err != nil {
		log.Printf("❌ Room list failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}
	c.JSON(http.StatusOK, rooms)
}

// GET /rooms/stats: per-type availability for the admin dashboard.
// Occupancy is recomputed from the stores on every call; the caller
// sees what the data says right now.
func (rc *RoomController) GetRoomStats(c *gin.Context) {
	adminID, ok := middleware.AdminID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
		return
	}

	hotel, err := rc.HotelSvc.GetByAdmin(adminID)
	if err != nil {
		if errors.Is(err, services.ErrHotelNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Hotel not found"})
			return
		}
		log.Printf("❌ Hotel lookup failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	perRoom, rollup, err := rc.AvailabilitySvc.ForHotel(hotel.ID, time.Now().UTC())
	if err != nil {
		log.Printf("❌ Availability computation failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	if c.Query("detail") == "rooms" {
		c.JSON(http.StatusOK, gin.H{"rooms": perRoom, "types": rollup})
		return
	}
	c.JSON(http.StatusOK, rollup)
}

// GET /rooms/events: SSE stream of inventory mutations. Subscribers
// connected at publish time receive events; anyone else misses them.
func (rc *RoomController) StreamRoomEvents(c *gin.Context) {
	events, cancel := rc.Notifier.Subscribe()
	defer cancel()

	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Stream(func(w io.Writer) bool {
		select {
		case ev, open := <-events:
			if !open {
				return false
			}
			c.SSEvent(string(ev.Kind), ev)
			return true
		case <-c.Request.Context().Done():
			return false
		}
	})
}

func roomFromPayload(p createRoomPayload, imageURL string) (room models.Room) {
	room.Type = p.Type
	room.TotalRooms = p.TotalRooms
	room.PricePerNight = p.PricePerNight
	room.BedType = p.BedType
	room.PerAdultPrice = p.PerAdultPrice
	room.PerChildPrice = p.PerChildPrice
	room.Discount = p.Discount
	room.TaxPercentage = p.TaxPercentage
	room.MaxGuests = p.MaxGuests
	room.RoomSize = p.RoomSize
	room.Availability = p.Availability
	room.Image = imageURL
	return room
}
