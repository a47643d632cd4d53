package controllers

import (
	"errors"
	"log"
	"net/http"

	"hotel-booking-backend/middleware"
	"hotel-booking-backend/services"

	"github.com/gin-gonic/gin"
)

type registerPayload struct {
	FirstName string `json:"firstName" binding:"required"`
	LastName  string `json:"lastName" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	Phone     string `json:"phone" binding:"required"`
	Password  string `json:"password" binding:"required,min=6"`
}

type loginPayload struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type AdminController struct {
	AdminSvc *services.AdminService
}

func NewAdminController(svc *services.AdminService) *AdminController {
	return &AdminController{AdminSvc: svc}
}

// POST /admin/register
func (ac *AdminController) Register(c *gin.Context) {
	var payload registerPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request payload", "details": err.Error()})
		return
	}

	_, err := ac.AdminSvc.Register(payload.FirstName, payload.LastName, payload.Email, payload.Phone, payload.Password)
	if err != nil {
		if errors.Is(err, services.ErrEmailExists) {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Email already exists"})
			return
		}
		log.Printf("❌ Register failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Admin registered successfully"})
}

// POST /admin/login
func (ac *AdminController) Login(c *gin.Context) {
	var payload loginPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request payload", "details": err.Error()})
		return
	}

	admin, err := ac.AdminSvc.Login(payload.Email, payload.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid credentials"})
			return
		}
		log.Printf("❌ Login failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	token, err := middleware.GenerateToken(admin.ID)
	if err != nil {
		log.Printf("❌ Token generation failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Login successful",
		"token":   token,
		"admin": gin.H{
			"id":        admin.ID,
			"firstName": admin.FirstName,
			"lastName":  admin.LastName,
			"email":     admin.Email,
			"phone":     admin.Phone,
		},
	})
}
