package controllers

import (
	"net/http"

	"hotel-desk/models"
	"hotel-desk/services"
	"hotel-desk/utils"

	"github.com/gin-gonic/gin"
)

type GuestController struct {
	GuestSvc *services.GuestService
}

func NewGuestController(svc *services.GuestService) *GuestController {
	return &GuestController{GuestSvc: svc}
}

type guestRequest struct {
	FirstName   string `json:"firstName" binding:"required"`
	LastName    string `json:"lastName" binding:"required"`
	PhoneNumber string `json:"phoneNumber"`
	Email       string `json:"email"`
}

func (r guestRequest) model() *models.Guest {
	return &models.Guest{
		FirstName:   r.FirstName,
		LastName:    r.LastName,
		PhoneNumber: r.PhoneNumber,
		Email:       r.Email,
	}
}

// GetGuests GET /api/guests?q=
func (gc *GuestController) GetGuests(c *gin.Context) {
	guests, err := gc.GuestSvc.Search(c.Request.Context(), c.Query("q"))
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, guests)
}

func (gc *GuestController) GetGuest(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	g, err := gc.GuestSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, g)
}

func (gc *GuestController) CreateGuest(c *gin.Context) {
	var req guestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidPayload(c, err)
		return
	}
	g := req.model()
	if err := gc.GuestSvc.Create(c.Request.Context(), g); err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, g)
}

func (gc *GuestController) UpdateGuest(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req guestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidPayload(c, err)
		return
	}
	g, err := gc.GuestSvc.Update(c.Request.Context(), id, req.model())
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, g)
}

func (gc *GuestController) DeleteGuest(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := gc.GuestSvc.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
