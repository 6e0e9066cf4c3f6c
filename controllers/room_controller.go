package controllers

import (
	"net/http"

	"hotel-desk/models"
	"hotel-desk/services"
	"hotel-desk/utils"

	"github.com/gin-gonic/gin"
)

type RoomController struct {
	RoomSvc    *services.RoomService
	BookingSvc *services.BookingService
}

func NewRoomController(rooms *services.RoomService, bookings *services.BookingService) *RoomController {
	return &RoomController{RoomSvc: rooms, BookingSvc: bookings}
}

type roomRequest struct {
	RoomNumber     string            `json:"roomNumber" binding:"required"`
	Floor          int               `json:"floor"`
	Status         models.RoomStatus `json:"status"`
	RoomCategoryID uint              `json:"roomCategoryId" binding:"required"`
}

func (r roomRequest) model() *models.Room {
	return &models.Room{
		RoomNumber:     r.RoomNumber,
		Floor:          r.Floor,
		Status:         r.Status,
		RoomCategoryID: r.RoomCategoryID,
	}
}

// GetRooms GET /api/rooms
func (rc *RoomController) GetRooms(c *gin.Context) {
	rooms, err := rc.RoomSvc.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, rooms)
}

// GetRoom GET /api/rooms/:id
func (rc *RoomController) GetRoom(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	room, err := rc.RoomSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, room)
}

// CreateRoom POST /api/rooms
func (rc *RoomController) CreateRoom(c *gin.Context) {
	var req roomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidPayload(c, err)
		return
	}
	room, err := rc.RoomSvc.Create(c.Request.Context(), req.model())
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, room)
}

// UpdateRoom PUT /api/rooms/:id
func (rc *RoomController) UpdateRoom(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req roomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidPayload(c, err)
		return
	}
	room, err := rc.RoomSvc.Update(c.Request.Context(), id, req.model())
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, room)
}

type roomStatusRequest struct {
	Status models.RoomStatus `json:"status" binding:"required"`
}

// UpdateRoomStatus PATCH /api/rooms/:id/status
func (rc *RoomController) UpdateRoomStatus(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req roomStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidPayload(c, err)
		return
	}
	room, err := rc.RoomSvc.UpdateStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, room)
}

// DeleteRoom DELETE /api/rooms/:id
func (rc *RoomController) DeleteRoom(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := rc.RoomSvc.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// GetAvailableRooms GET /api/rooms/available?check_in=&check_out=&category_id=&booking_id=
func (rc *RoomController) GetAvailableRooms(c *gin.Context) {
	checkIn, err := utils.ParseDate(c.Query("check_in"))
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "error.invalidQuery", "check_in: "+err.Error())
		return
	}
	checkOut, err := utils.ParseDate(c.Query("check_out"))
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "error.invalidQuery", "check_out: "+err.Error())
		return
	}
	categoryID, ok := queryUint(c, "category_id")
	if !ok {
		return
	}
	bookingID, ok := queryUint(c, "booking_id")
	if !ok {
		return
	}

	rooms, err := rc.BookingSvc.AvailableRooms(c.Request.Context(), checkIn, checkOut, categoryID, bookingID)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, rooms)
}
