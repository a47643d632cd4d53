package controllers

import (
	"encoding/json"
	"errors"
	"log"
	"mime/multipart"
	"net/http"
	"strconv"

	"hotel-booking-backend/middleware"
	"hotel-booking-backend/services"
	"hotel-booking-backend/storage"

	"github.com/gin-gonic/gin"
)

const maxHotelImages = 10

type HotelController struct {
	HotelSvc *services.HotelService
	Blobs    storage.BlobStore
}

func NewHotelController(svc *services.HotelService, blobs storage.BlobStore) *HotelController {
	return &HotelController{HotelSvc: svc, Blobs: blobs}
}

func (hc *HotelController) saveImages(c *gin.Context, files []*multipart.FileHeader) ([]string, error) {
	if len(files) > maxHotelImages {
		files = files[:maxHotelImages]
	}
	urls := make([]string, 0, len(files))
	for _, f := range files {
		url, err := hc.Blobs.Save(c.Request.Context(), f, "hotels")
		if err != nil {
			return nil, err
		}
		urls = append(urls, url)
	}
	return urls, nil
}

// POST /hotel/create: one hotel per admin.
func (hc *HotelController) CreateHotel(c *gin.Context) {
	adminID, ok := middleware.AdminID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
		return
	}

	name := c.PostForm("name")
	address := c.PostForm("address")
	contact := c.PostForm("contact")
	if name == "" || address == "" || contact == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "name, address and contact are required"})
		return
	}

	var imageURLs []string
	if form, err := c.MultipartForm(); err == nil && form != nil {
		urls, err := hc.saveImages(c, form.File["images"])
		if err != nil {
			log.Printf("❌ Image upload failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Image upload failed"})
			return
		}
		imageURLs = urls
	}

	hotel, err := hc.HotelSvc.CreateForAdmin(adminID, name, address, contact, imageURLs)
	if err != nil {
		if errors.Is(err, services.ErrHotelExists) {
			c.JSON(http.StatusBadRequest, gin.H{"message": "You already created a hotel. Update instead."})
			return
		}
		log.Printf("❌ Hotel create failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Hotel created successfully", "hotel": hotel})
}

// GET /hotel/my-hotel
func (hc *HotelController) GetMyHotel(c *gin.Context) {
	adminID, ok := middleware.AdminID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
		return
	}

	hotel, err := hc.HotelSvc.GetByAdmin(adminID)
	if err != nil {
		if errors.Is(err, services.ErrHotelNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "No hotel found"})
			return
		}
		log.Printf("❌ Hotel lookup failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}
	c.JSON(http.StatusOK, hotel)
}

// PUT /hotel/update: multipart text fields, optional images JSON list
// of kept URLs, optional new image files.
func (hc *HotelController) UpdateHotel(c *gin.Context) {
	adminID, ok := middleware.AdminID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
		return
	}

	patch := services.HotelUpdate{}
	if v, present := c.GetPostForm("name"); present {
		patch.Name = &v
	}
	if v, present := c.GetPostForm("address"); present {
		patch.Address = &v
	}
	if v, present := c.GetPostForm("contact"); present {
		patch.Contact = &v
	}

	if raw, present := c.GetPostForm("images"); present {
		var kept []string
		if err := json.Unmarshal([]byte(raw), &kept); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "images must be a JSON array of URLs"})
			return
		}
		patch.Images = kept
	}

	if form, err := c.MultipartForm(); err == nil && form != nil && len(form.File["images"]) > 0 {
		urls, err := hc.saveImages(c, form.File["images"])
		if err != nil {
			log.Printf("❌ Image upload failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Image upload failed"})
			return
		}
		if patch.Images == nil {
			hotel, err := hc.HotelSvc.GetByAdmin(adminID)
			if err == nil {
				patch.Images = services.ImageList(hotel)
			}
		}
		patch.Images = append(patch.Images, urls...)
	}

	hotel, removed, err := hc.HotelSvc.Update(adminID, patch)
	if err != nil {
		if errors.Is(err, services.ErrHotelNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "No hotel found"})
			return
		}
		log.Printf("❌ Hotel update failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	for _, url := range removed {
		if err := hc.Blobs.Delete(c.Request.Context(), url); err != nil {
			log.Printf("⚠️ Failed to delete removed image %s: %v", url, err)
		}
	}

	c.JSON(http.StatusOK, gin.H{"message": "Hotel updated successfully", "hotel": hotel})
}

// DELETE /hotel/delete
func (hc *HotelController) DeleteHotel(c *gin.Context) {
	adminID, ok := middleware.AdminID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
		return
	}

	images, err := hc.HotelSvc.Delete(adminID)
	if err != nil {
		if errors.Is(err, services.ErrHotelNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "No hotel found"})
			return
		}
		log.Printf("❌ Hotel delete failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	for _, url := range images {
		if err := hc.Blobs.Delete(c.Request.Context(), url); err != nil {
			log.Printf("⚠️ Failed to delete image %s: %v", url, err)
		}
	}

	c.JSON(http.StatusOK, gin.H{"message": "Hotel deleted successfully"})
}

// GET /hotel/:id (public)
func (hc *HotelController) GetHotelByID(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid hotel id"})
		return
	}

	hotel, err := hc.HotelSvc.GetByID(uint(id))
	if err != nil {
		if errors.Is(err, services.ErrHotelNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Hotel not found"})
			return
		}
		log.Printf("❌ Hotel lookup failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}
	c.JSON(http.StatusOK, hotel)
}
