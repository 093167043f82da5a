package controllers

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"dibs-api/domain"
	"dibs-api/dto"
	"dibs-api/services"

	"github.com/gin-gonic/gin"
)

// userFields: tipos de los campos de registro (sin límites de longitud)
var userFields = []fieldSpec{
	{name: "username", kind: kindString, required: true},
	{name: "password", kind: kindString, required: true},
	{name: "firstName", kind: kindString},
	{name: "lastName", kind: kindString},
}

// userSizedFields: bcrypt ignora lo que pasa de 72 bytes
var userSizedFields = []fieldSpec{
	{name: "username", kind: kindString, min: 1},
	{name: "password", kind: kindString, min: 10, max: 72},
}

// untrimmedFields no pueden empezar ni terminar con espacios
var untrimmedFields = []string{"username", "password"}

// UserController maneja el registro de usuarios
type UserController struct {
	service services.UserService
}

// NewUserController crea una nueva instancia del controlador
func NewUserController(service services.UserService) *UserController {
	return &UserController{service: service}
}

// CreateUser maneja POST /api/users
// Este endpoint se usa para REGISTRAR un nuevo usuario
func (ctrl *UserController) CreateUser(c *gin.Context) {
	// 1. Leer el body
	body, err := readBody(c)
	if err != nil {
		c.String(http.StatusBadRequest, "Malformed JSON in request body")
		return
	}

	// 2. Obligatorios y tipos
	if verr := validateCreate(body, userFields); verr != nil {
		writeValidationError(c, verr)
		return
	}

	// 3. Sin espacios al principio o al final
	for _, field := range untrimmedFields {
		value, _ := body.str(field)
		if value != strings.TrimSpace(value) {
			writeValidationError(c, domain.NewValidationError(field, "Cannot start or end with whitespace"))
			return
		}
	}

	// 4. Longitudes
	if verr := validateCreate(body, userSizedFields); verr != nil {
		writeValidationError(c, verr)
		return
	}

	var req dto.CreateUserRequest
	req.Username, _ = body.str("username")
	req.Password, _ = body.str("password")
	req.FirstName, _ = body.str("firstName")
	req.LastName, _ = body.str("lastName")
	req.FirstName = strings.TrimSpace(req.FirstName)
	req.LastName = strings.TrimSpace(req.LastName)

	// 5. Crear el usuario (hashea la contraseña)
	user, err := ctrl.service.CreateUser(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, services.ErrUsernameTaken) {
			writeValidationError(c, domain.NewValidationError("username", "Username already taken"))
			return
		}
		handleWriteError(c, "user", err)
		return
	}

	// 6. 201 con el usuario serializado (sin el hash)
	logRegistration(user.Username)
	c.JSON(http.StatusCreated, user.Serialize())
}

// HealthCheck maneja GET /health
// Endpoint simple para verificar que el servicio está corriendo
func (ctrl *UserController) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "dibs-api",
	})
}

// logRegistration deja constancia de altas sin datos sensibles
func logRegistration(username string) {
	log.Printf("User registered: username=%s", username)
}
