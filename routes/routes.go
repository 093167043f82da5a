package routes

import (
	"log"
	"net/http"
	"strings"

	"dibs-api/controllers"
	"dibs-api/dto"
	"dibs-api/middleware"
	"dibs-api/utils"

	"github.com/gin-gonic/gin"
)

// dibsPrefix agrupa los recursos protegidos; sus 404 son texto plano
const dibsPrefix = "/api/dibs"

// Controllers reúne los controladores que se montan en el router
type Controllers struct {
	Users        *controllers.UserController
	Auth         *controllers.AuthController
	Properties   *controllers.PropertyController
	Reservations *controllers.ReservationController
}

// Register define la tabla de rutas de la API
func Register(router *gin.Engine, ctrls Controllers, jwt *utils.JWTManager) {
	jwtAuth := middleware.AuthMiddleware(jwt)

	// Rutas PÚBLICAS (sin autenticación)
	router.GET("/health", ctrls.Users.HealthCheck)

	api := router.Group("/api")
	api.POST("/users", ctrls.Users.CreateUser) // Registro

	auth := api.Group("/auth")
	{
		auth.POST("/login", ctrls.Auth.Login)
		auth.POST("/refresh", jwtAuth, ctrls.Auth.Refresh)
	}

	api.GET("/protected", jwtAuth, ctrls.Auth.Protected)

	// Rutas PROTEGIDAS (requieren JWT)
	dibs := router.Group(dibsPrefix, jwtAuth)
	{
		dibs.GET("/properties", ctrls.Properties.GetAll)
		dibs.POST("/properties", ctrls.Properties.Create)
		dibs.PUT("/properties/:id", ctrls.Properties.Update)
		dibs.DELETE("/properties/:id", ctrls.Properties.Delete)

		dibs.GET("/reservations", ctrls.Reservations.GetAll)
		dibs.POST("/reservations", ctrls.Reservations.Create)
		dibs.PUT("/reservations/:id", ctrls.Reservations.Update)
		dibs.DELETE("/reservations/:id", ctrls.Reservations.Delete)
	}

	router.NoRoute(notFound)

	log.Printf("Routes registered: %d", len(router.Routes()))
}

// notFound responde 404; bajo /api/dibs en texto plano, en el resto como JSON
func notFound(c *gin.Context) {
	path := c.Request.URL.Path
	if path == dibsPrefix || strings.HasPrefix(path, dibsPrefix+"/") {
		c.String(http.StatusNotFound, "URL Not Found")
		return
	}
	c.JSON(http.StatusNotFound, dto.MessageResponse{Message: "Not Found"})
}
