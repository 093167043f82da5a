package controllers

import (
	"errors"
	"log"
	"net/http"

	"dibs-api/dto"
	"dibs-api/middleware"
	"dibs-api/services"

	"github.com/gin-gonic/gin"
)

const loginFailedMessage = "Incorrect username or password"

// AuthController maneja login, refresh y el endpoint protegido
type AuthController struct {
	service services.UserService
}

// NewAuthController crea una nueva instancia del controlador
func NewAuthController(service services.UserService) *AuthController {
	return &AuthController{service: service}
}

// Login maneja POST /api/auth/login
// Este es el endpoint más importante: autentica al usuario
func (ctrl *AuthController) Login(c *gin.Context) {
	// 1. Leer el JSON del body; credenciales faltantes cuentan como login fallido
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnauthorized, dto.MessageResponse{
			Code:    http.StatusUnauthorized,
			Message: loginFailedMessage,
		})
		return
	}

	// 2. Llamar al servicio; valida la contraseña y genera el JWT
	token, err := ctrl.service.Login(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, dto.MessageResponse{
				Code:    http.StatusUnauthorized,
				Message: loginFailedMessage,
			})
			return
		}
		log.Printf("Error during login: %v", err)
		writeInternalError(c)
		return
	}

	// 3. Devolver el token
	c.JSON(http.StatusOK, dto.TokenResponse{AuthToken: token})
}

// Refresh maneja POST /api/auth/refresh
// Emite un token nuevo a partir de la identidad ya verificada por el middleware
func (ctrl *AuthController) Refresh(c *gin.Context) {
	claims, ok := middleware.GetClaims(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.MessageResponse{
			Code:    http.StatusUnauthorized,
			Message: "Unauthorized",
		})
		return
	}

	token, err := ctrl.service.RefreshToken(claims)
	if err != nil {
		log.Printf("Error refreshing token for %s: %v", claims.User.Username, err)
		writeInternalError(c)
		return
	}
	c.JSON(http.StatusOK, dto.TokenResponse{AuthToken: token})
}

// Protected maneja GET /api/protected
func (ctrl *AuthController) Protected(c *gin.Context) {
	c.JSON(http.StatusOK, dto.ProtectedResponse{Data: "rosebud"})
}
