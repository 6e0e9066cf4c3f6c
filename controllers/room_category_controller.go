package controllers

import (
	"net/http"

	"hotel-desk/models"
	"hotel-desk/services"
	"hotel-desk/utils"

	"github.com/gin-gonic/gin"
)

type RoomCategoryController struct {
	CategorySvc *services.RoomCategoryService
}

func NewRoomCategoryController(svc *services.RoomCategoryService) *RoomCategoryController {
	return &RoomCategoryController{CategorySvc: svc}
}

type roomCategoryRequest struct {
	Name              string  `json:"name" binding:"required"`
	Description       string  `json:"description"`
	Capacity          int     `json:"capacity"`
	BasePricePerNight float64 `json:"basePricePerNight"`
}

func (r roomCategoryRequest) model() *models.RoomCategory {
	return &models.RoomCategory{
		Name:              r.Name,
		Description:       r.Description,
		Capacity:          r.Capacity,
		BasePricePerNight: r.BasePricePerNight,
	}
}

func (cc *RoomCategoryController) GetCategories(c *gin.Context) {
	list, err := cc.CategorySvc.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, list)
}

func (cc *RoomCategoryController) GetCategory(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	cat, err := cc.CategorySvc.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, cat)
}

func (cc *RoomCategoryController) CreateCategory(c *gin.Context) {
	var req roomCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidPayload(c, err)
		return
	}
	cat := req.model()
	if err := cc.CategorySvc.Create(c.Request.Context(), cat); err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, cat)
}

func (cc *RoomCategoryController) UpdateCategory(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req roomCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidPayload(c, err)
		return
	}
	cat, err := cc.CategorySvc.Update(c.Request.Context(), id, req.model())
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, cat)
}

func (cc *RoomCategoryController) DeleteCategory(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := cc.CategorySvc.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
