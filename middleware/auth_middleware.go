package middleware

import (
	"net/http"
	"strings"

	"dibs-api/dto"
	"dibs-api/utils"

	"github.com/gin-gonic/gin"
)

// claimsKey es la clave del contexto donde queda la identidad verificada
const claimsKey = "claims"

// AuthMiddleware valida el JWT de cada request (estrategia bearer).
// Si el token falta, está vencido o la firma no coincide responde 401 y corta la cadena.
func AuthMiddleware(jwt *utils.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Formato esperado: "Bearer <token>"
		parts := strings.Fields(c.GetHeader("Authorization"))
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			unauthorized(c)
			return
		}

		claims, err := jwt.ValidateToken(parts[1])
		if err != nil {
			unauthorized(c)
			return
		}

		c.Set(claimsKey, claims)
		c.Next()
	}
}

// GetClaims devuelve la identidad guardada por AuthMiddleware
func GetClaims(c *gin.Context) (*utils.Claims, bool) {
	value, exists := c.Get(claimsKey)
	if !exists {
		return nil, false
	}
	claims, ok := value.(*utils.Claims)
	return claims, ok
}

func unauthorized(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, dto.MessageResponse{
		Code:    http.StatusUnauthorized,
		Message: "Unauthorized",
	})
}
