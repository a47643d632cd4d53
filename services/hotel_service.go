package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"hotel-booking-backend/models"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var (
	ErrHotelExists   = errors.New("hotel_already_exists")
	ErrHotelNotFound = errors.New("hotel_not_found")
)

type HotelService struct {
	DB *gorm.DB
}

func NewHotelService(db *gorm.DB) *HotelService {
	return &HotelService{DB: db}
}

func imagesJSON(urls []string) datatypes.JSON {
	if urls == nil {
		urls = []string{}
	}
	raw, _ := json.Marshal(urls)
	return datatypes.JSON(raw)
}

// ImageList decodes a hotel's stored image URLs.
func ImageList(h models.Hotel) []string {
	var urls []string
	if len(h.Images) == 0 {
		return []string{}
	}
	if err := json.Unmarshal(h.Images, &urls); err != nil {
		return []string{}
	}
	return urls
}

// CreateForAdmin creates the admin's single hotel. A second create is
// rejected; update instead.
func (s *HotelService) CreateForAdmin(adminID uint, name, address, contact string, imageURLs []string) (models.Hotel, error) {
	var existing models.Hotel
	err := s.DB.Where("admin_id = ?", adminID).First(&existing).Error
	if err == nil {
		return models.Hotel{}, ErrHotelExists
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Hotel{}, fmt.Errorf("failed to check existing hotel: %w", err)
	}

	hotel := models.Hotel{
		Name:    strings.TrimSpace(name),
		Address: strings.TrimSpace(address),
		Contact: strings.TrimSpace(contact),
		Images:  imagesJSON(imageURLs),
		AdminID: adminID,
	}
	if err := s.DB.Create(&hotel).Error; err != nil {
		lc := strings.ToLower(err.Error())
		if strings.Contains(lc, "duplicate") || strings.Contains(lc, "unique") {
			return models.Hotel{}, ErrHotelExists
		}
		return models.Hotel{}, fmt.Errorf("failed to create hotel: %w", err)
	}
	return hotel, nil
}

func (s *HotelService) GetByAdmin(adminID uint) (models.Hotel, error) {
	var hotel models.Hotel
	if err := s.DB.Where("admin_id = ?", adminID).First(&hotel).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Hotel{}, ErrHotelNotFound
		}
		return models.Hotel{}, fmt.Errorf("failed to look up hotel: %w", err)
	}
	return hotel, nil
}

func (s *HotelService) GetByID(id uint) (models.Hotel, error) {
	var hotel models.Hotel
	if err := s.DB.First(&hotel, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Hotel{}, ErrHotelNotFound
		}
		return models.Hotel{}, fmt.Errorf("failed to look up hotel: %w", err)
	}
	return hotel, nil
}

// HotelUpdate carries the mutable display fields. Nil means keep the
// current value; Images is the full kept+new list when non-nil.
type HotelUpdate struct {
	Name    *string
	Address *string
	Contact *string
	Images  []string
}

// Update applies the patch to the admin's hotel and returns the removed
// image URLs so the caller can delete them from blob storage.
func (s *HotelService) Update(adminID uint, patch HotelUpdate) (models.Hotel, []string, error) {
	hotel, err := s.GetByAdmin(adminID)
	if err != nil {
		return models.Hotel{}, nil, err
	}

	var removed []string
	if patch.Images != nil {
		kept := make(map[string]bool, len(patch.Images))
		for _, u := range patch.Images {
			kept[u] = true
		}
		for _, u := range ImageList(hotel) {
			if !kept[u] {
				removed = append(removed, u)
			}
		}
		hotel.Images = imagesJSON(patch.Images)
	}
	if patch.Name != nil {
		hotel.Name = strings.TrimSpace(*patch.Name)
	}
	if patch.Address != nil {
		hotel.Address = strings.TrimSpace(*patch.Address)
	}
	if patch.Contact != nil {
		hotel.Contact = strings.TrimSpace(*patch.Contact)
	}

	if err := s.DB.Save(&hotel).Error; err != nil {
		return models.Hotel{}, nil, fmt.Errorf("failed to update hotel: %w", err)
	}
	return hotel, removed, nil
}

// Delete removes the admin's hotel and returns its image URLs for blob
// cleanup. Rooms and bookings are not cascaded; reads tolerate the
// orphaned references.
func (s *HotelService) Delete(adminID uint) ([]string, error) {
	hotel, err := s.GetByAdmin(adminID)
	if err != nil {
		return nil, err
	}
	images := ImageList(hotel)
	if err := s.DB.Delete(&hotel).Error; err != nil {
		return nil, fmt.Errorf("failed to delete hotel: %w", err)
	}
	return images, nil
}
