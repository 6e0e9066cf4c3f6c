package controllers

import (
	"net/http"

	"hotel-desk/models"
	"hotel-desk/services"
	"hotel-desk/utils"

	"github.com/gin-gonic/gin"
)

// ServiceController serves the catalogue of bookable extras.
type ServiceController struct {
	CatalogSvc *services.ServiceCatalog
}

func NewServiceController(svc *services.ServiceCatalog) *ServiceController {
	return &ServiceController{CatalogSvc: svc}
}

type serviceRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
}

func (r serviceRequest) model() *models.Service {
	return &models.Service{Name: r.Name, Description: r.Description, Price: r.Price}
}

func (sc *ServiceController) GetServices(c *gin.Context) {
	list, err := sc.CatalogSvc.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, list)
}

func (sc *ServiceController) GetService(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	svc, err := sc.CatalogSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, svc)
}

func (sc *ServiceController) CreateService(c *gin.Context) {
	var req serviceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidPayload(c, err)
		return
	}
	svc := req.model()
	if err := sc.CatalogSvc.Create(c.Request.Context(), svc); err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, svc)
}

func (sc *ServiceController) UpdateService(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req serviceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidPayload(c, err)
		return
	}
	svc, err := sc.CatalogSvc.Update(c.Request.Context(), id, req.model())
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, svc)
}

func (sc *ServiceController) DeleteService(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := sc.CatalogSvc.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
