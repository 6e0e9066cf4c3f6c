package controllers

import (
	"net/http"

	"hotel-desk/middleware"
	"hotel-desk/models"
	"hotel-desk/services"
	"hotel-desk/utils"

	"github.com/gin-gonic/gin"
)

// UserController is mounted behind the Administrator role.
type UserController struct {
	UserSvc *services.UserService
}

func NewUserController(svc *services.UserService) *UserController {
	return &UserController{UserSvc: svc}
}

type createUserRequest struct {
	Username string          `json:"username" binding:"required"`
	Password string          `json:"password" binding:"required"`
	FullName string          `json:"fullName"`
	Role     models.UserRole `json:"role" binding:"required"`
}

type updateUserRequest struct {
	Username string          `json:"username" binding:"required"`
	FullName string          `json:"fullName"`
	Role     models.UserRole `json:"role" binding:"required"`
}

type passwordRequest struct {
	Password string `json:"password" binding:"required"`
}

func (uc *UserController) GetUsers(c *gin.Context) {
	users, err := uc.UserSvc.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, users)
}

func (uc *UserController) GetUser(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	u, err := uc.UserSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, u)
}

func (uc *UserController) CreateUser(c *gin.Context) {
	var req createUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidPayload(c, err)
		return
	}
	u := &models.User{Username: req.Username, FullName: req.FullName, Role: req.Role}
	if err := uc.UserSvc.Create(c.Request.Context(), u, req.Password); err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, u)
}

func (uc *UserController) UpdateUser(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req updateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidPayload(c, err)
		return
	}
	u, err := uc.UserSvc.Update(c.Request.Context(), id, &models.User{
		Username: req.Username,
		FullName: req.FullName,
		Role:     req.Role,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, u)
}

// UpdatePassword PUT /api/users/:id/password
func (uc *UserController) UpdatePassword(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req passwordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidPayload(c, err)
		return
	}
	if err := uc.UserSvc.UpdatePassword(c.Request.Context(), id, req.Password); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (uc *UserController) DeleteUser(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if claims, ok := middleware.ClaimsFrom(c); ok && claims.UserID == id {
		utils.JSONError(c, http.StatusConflict, "error.operationNotPermitted", "you cannot delete your own account")
		return
	}
	if err := uc.UserSvc.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
