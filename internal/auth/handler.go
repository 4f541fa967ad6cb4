package auth

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bullpull02/foodie-api/internal/httperr"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// POST /api/auth/register
func (h *Handler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Send(c, httperr.BadRequest("invalid request body"))
		return
	}

	user, err := h.service.Register(c.Request.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, ErrMissingFields):
			httperr.Send(c, httperr.BadRequest(err.Error()))
		case errors.Is(err, ErrEmailTaken):
			httperr.Send(c, httperr.New(http.StatusConflict, err.Error()))
		default:
			httperr.Send(c, err)
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"id":    user.ID.Hex(),
		"name":  user.Name,
		"email": user.Email,
	})
}

// POST /api/auth/login
func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Send(c, httperr.BadRequest("invalid request body"))
		return
	}

	token, user, err := h.service.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			httperr.Send(c, httperr.Unauthorized(err.Error()))
			return
		}
		httperr.Send(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user": gin.H{
			"id":    user.ID.Hex(),
			"name":  user.Name,
			"email": user.Email,
		},
	})
}

// POST /api/auth/confirm/:token
func (h *Handler) ConfirmEmail(c *gin.Context) {
	err := h.service.ConfirmEmail(c.Request.Context(), c.Param("token"))
	if err != nil {
		if errors.Is(err, ErrInvalidConfirmToken) {
			httperr.Send(c, httperr.BadRequest(err.Error()))
			return
		}
		httperr.Send(c, err)
		return
	}

	c.JSON(http.StatusOK, "Success")
}
