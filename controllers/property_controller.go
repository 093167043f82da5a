package controllers

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"dibs-api/domain"
	"dibs-api/services"

	"github.com/gin-gonic/gin"
)

// propertyFields en orden de declaración; define el orden de los errores
var propertyFields = []fieldSpec{
	{name: "name", kind: kindString, required: true, min: 1, max: 100},
	{name: "street", kind: kindString, required: true, min: 1},
	{name: "city", kind: kindString, required: true, min: 1},
	{name: "state", kind: kindString, required: true, min: 2, max: 2, format: domain.IsValidState, formatMsg: "Must be a valid state code"},
	{name: "zipcode", kind: kindNumber, required: true, positive: true},
	{name: "type", kind: kindString, required: true, min: 1},
	{name: "owner", kind: kindString},
	{name: "thumbUrl", kind: kindString, required: true, min: 1},
}

// PropertyController maneja los endpoints HTTP de propiedades
type PropertyController struct {
	service services.PropertyService
}

// NewPropertyController crea una nueva instancia del controlador
func NewPropertyController(service services.PropertyService) *PropertyController {
	return &PropertyController{service: service}
}

// GetAll maneja GET /api/dibs/properties
func (ctrl *PropertyController) GetAll(c *gin.Context) {
	properties, err := ctrl.service.GetAll(c.Request.Context())
	if err != nil {
		log.Printf("Error listing properties: %v", err)
		writeInternalError(c)
		return
	}

	response := make([]domain.PropertyResponse, 0, len(properties))
	for i := range properties {
		response = append(response, properties[i].Serialize())
	}
	c.JSON(http.StatusOK, response)
}

// Create maneja POST /api/dibs/properties
func (ctrl *PropertyController) Create(c *gin.Context) {
	// 1. Leer el body crudo
	body, err := readBody(c)
	if err != nil {
		c.String(http.StatusBadRequest, "Malformed JSON in request body")
		return
	}

	// 2. Validar antes de tocar la base
	if verr := validateCreate(body, propertyFields); verr != nil {
		writeValidationError(c, verr)
		return
	}

	property := &domain.Property{}
	property.Name, _ = body.str("name")
	property.Street, _ = body.str("street")
	property.City, _ = body.str("city")
	property.State, _ = body.str("state")
	property.State = strings.TrimSpace(property.State)
	property.Zipcode, _ = body.number("zipcode")
	property.Type, _ = body.str("type")
	property.Owner, _ = body.str("owner")
	property.ThumbURL, _ = body.str("thumbUrl")

	// 3. Guardar
	created, err := ctrl.service.Create(c.Request.Context(), property)
	if err != nil {
		handleWriteError(c, "property", err)
		return
	}

	// 4. 201 con la propiedad serializada
	c.JSON(http.StatusCreated, created.Serialize())
}

// Update maneja PUT /api/dibs/properties/:id
// Solo se reemplazan los campos enviados; un id inexistente no es error
func (ctrl *PropertyController) Update(c *gin.Context) {
	id := c.Param("id")

	body, err := readBody(c)
	if err != nil {
		c.String(http.StatusBadRequest, "Malformed JSON in request body")
		return
	}

	fields, msg := updateFields(id, body, propertyFields)
	if msg != "" {
		c.String(http.StatusBadRequest, msg)
		return
	}

	if _, err := ctrl.service.Update(c.Request.Context(), id, fields); err != nil {
		handleWriteError(c, "property", err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Delete maneja DELETE /api/dibs/properties/:id
func (ctrl *PropertyController) Delete(c *gin.Context) {
	if err := ctrl.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		log.Printf("Error deleting property %s: %v", c.Param("id"), err)
		writeInternalError(c)
		return
	}
	c.Status(http.StatusNoContent)
}

// handleWriteError reenvía los errores de validación del store como 422 y el resto como 500
func handleWriteError(c *gin.Context, resource string, err error) {
	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		writeValidationError(c, verr)
		return
	}
	log.Printf("Error writing %s: %v", resource, err)
	writeInternalError(c)
}
