package controllers

import (
	"context"
	"net/http"

	"hotel-desk/models"
	"hotel-desk/services"
	"hotel-desk/utils"

	"github.com/gin-gonic/gin"
)

type BookingController struct {
	BookingSvc *services.BookingService
	BookedSvc  *services.BookedServiceService
}

func NewBookingController(bookings *services.BookingService, booked *services.BookedServiceService) *BookingController {
	return &BookingController{BookingSvc: bookings, BookedSvc: booked}
}

type bookingRequest struct {
	GuestID      uint   `json:"guestId" binding:"required"`
	RoomID       uint   `json:"roomId" binding:"required"`
	CheckInDate  string `json:"checkInDate" binding:"required"`
	CheckOutDate string `json:"checkOutDate" binding:"required"`
}

func (r bookingRequest) input() (services.BookingInput, error) {
	in, err := utils.ParseDate(r.CheckInDate)
	if err != nil {
		return services.BookingInput{}, err
	}
	out, err := utils.ParseDate(r.CheckOutDate)
	if err != nil {
		return services.BookingInput{}, err
	}
	return services.BookingInput{GuestID: r.GuestID, RoomID: r.RoomID, CheckInDate: in, CheckOutDate: out}, nil
}

func (bc *BookingController) bindBooking(c *gin.Context) (services.BookingInput, bool) {
	var req bookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidPayload(c, err)
		return services.BookingInput{}, false
	}
	in, err := req.input()
	if err != nil {
		invalidPayload(c, err)
		return services.BookingInput{}, false
	}
	return in, true
}

// GetBookings GET /api/bookings?from=&to=
func (bc *BookingController) GetBookings(c *gin.Context) {
	from, err := utils.ParseOptionalDate(c.Query("from"))
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "error.invalidQuery", "from: "+err.Error())
		return
	}
	to, err := utils.ParseOptionalDate(c.Query("to"))
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "error.invalidQuery", "to: "+err.Error())
		return
	}

	ctx := c.Request.Context()
	if from.IsZero() && to.IsZero() {
		list, err := bc.BookingSvc.List(ctx)
		if err != nil {
			respondError(c, err)
			return
		}
		utils.JSONSuccess(c, http.StatusOK, list)
		return
	}
	if to.IsZero() {
		to = from.AddDate(0, 1, 0)
	}
	if from.IsZero() {
		from = to.AddDate(0, -1, 0)
	}
	list, err := bc.BookingSvc.ListForDateRange(ctx, from, to)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, list)
}

func (bc *BookingController) GetBooking(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	b, err := bc.BookingSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, b)
}

func (bc *BookingController) CreateBooking(c *gin.Context) {
	in, ok := bc.bindBooking(c)
	if !ok {
		return
	}
	b, err := bc.BookingSvc.Create(c.Request.Context(), in)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, b)
}

func (bc *BookingController) UpdateBooking(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	in, ok := bc.bindBooking(c)
	if !ok {
		return
	}
	b, err := bc.BookingSvc.Update(c.Request.Context(), id, in)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, b)
}

func (bc *BookingController) DeleteBooking(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := bc.BookingSvc.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// CheckIn POST /api/bookings/:id/check-in
func (bc *BookingController) CheckIn(c *gin.Context) {
	bc.transition(c, bc.BookingSvc.CheckIn)
}

// CheckOut POST /api/bookings/:id/check-out
func (bc *BookingController) CheckOut(c *gin.Context) {
	bc.transition(c, bc.BookingSvc.CheckOut)
}

// Cancel POST /api/bookings/:id/cancel
func (bc *BookingController) Cancel(c *gin.Context) {
	bc.transition(c, bc.BookingSvc.Cancel)
}

func (bc *BookingController) transition(c *gin.Context, fn func(context.Context, uint) (*models.Booking, error)) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	b, err := fn(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, b)
}

// GetBill GET /api/bookings/:id/bill
func (bc *BookingController) GetBill(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	bill, err := bc.BookingSvc.Bill(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, bill)
}

// GetHistory GET /api/bookings/:id/history
func (bc *BookingController) GetHistory(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	entries, err := bc.BookingSvc.History(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, entries)
}

type bookedServiceRequest struct {
	ServiceID    uint   `json:"serviceId" binding:"required"`
	Quantity     int    `json:"quantity"`
	DateProvided string `json:"dateProvided"`
}

func (r bookedServiceRequest) input() (services.BookedServiceInput, error) {
	date, err := utils.ParseOptionalDate(r.DateProvided)
	if err != nil {
		return services.BookedServiceInput{}, err
	}
	return services.BookedServiceInput{ServiceID: r.ServiceID, Quantity: r.Quantity, DateProvided: date}, nil
}

func bindBookedService(c *gin.Context) (services.BookedServiceInput, bool) {
	var req bookedServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidPayload(c, err)
		return services.BookedServiceInput{}, false
	}
	in, err := req.input()
	if err != nil {
		invalidPayload(c, err)
		return services.BookedServiceInput{}, false
	}
	return in, true
}

// GetBookedServices GET /api/bookings/:id/services
func (bc *BookingController) GetBookedServices(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	list, err := bc.BookedSvc.ListByBooking(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, list)
}

// AddBookedService POST /api/bookings/:id/services
func (bc *BookingController) AddBookedService(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	in, ok := bindBookedService(c)
	if !ok {
		return
	}
	bs, err := bc.BookedSvc.Add(c.Request.Context(), id, in)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, bs)
}

// UpdateBookedService PUT /api/booked-services/:id
func (bc *BookingController) UpdateBookedService(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	in, ok := bindBookedService(c)
	if !ok {
		return
	}
	bs, err := bc.BookedSvc.Update(c.Request.Context(), id, in)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, bs)
}

// DeleteBookedService DELETE /api/booked-services/:id
func (bc *BookingController) DeleteBookedService(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := bc.BookedSvc.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
