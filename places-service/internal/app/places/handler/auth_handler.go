package handler

import (
	"net/http"

	"foodplaces/places-service/internal/app/places/entity"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authService AuthServiceInterface
}

func NewAuthHandler(authService AuthServiceInterface) *AuthHandler {
	return &AuthHandler{authService: authService}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req entity.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badBody(c)
		return
	}

	user, err := h.authService.Register(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, entity.SuccessResponse{
		Message: "User registered successfully",
		Data:    user,
	})
}

// Login принимает HTTP Basic; для POST допускается JSON {username, password}
func (h *AuthHandler) Login(c *gin.Context) {
	username, password, ok := c.Request.BasicAuth()
	if !ok && c.Request.Method == http.MethodPost {
		var req entity.LoginRequest
		if err := c.ShouldBindJSON(&req); err == nil {
			username, password = req.Username, req.Password
		}
	}

	resp, err := h.authService.Login(c.Request.Context(), username, password)
	if err != nil {
		c.Header("WWW-Authenticate", `Basic realm="Login required"`)
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.authService.Logout(c.Request.Context(), c.GetString(tokenKey)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, entity.SuccessResponse{Message: "Logout successful"})
}
