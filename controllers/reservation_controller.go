package controllers

import (
	"log"
	"net/http"

	"dibs-api/domain"
	"dibs-api/services"

	"github.com/gin-gonic/gin"
)

var reservationFields = []fieldSpec{
	{name: "username", kind: kindString, required: true, min: 1},
	{name: "propertyName", kind: kindString, required: true, min: 1},
	{name: "start", kind: kindDate, required: true, min: 1},
	{name: "end", kind: kindDate, required: true, min: 1},
}

// ReservationController maneja los endpoints HTTP de reservas
type ReservationController struct {
	service services.ReservationService
}

// NewReservationController crea una nueva instancia del controlador
func NewReservationController(service services.ReservationService) *ReservationController {
	return &ReservationController{service: service}
}

// GetAll maneja GET /api/dibs/reservations
func (ctrl *ReservationController) GetAll(c *gin.Context) {
	reservations, err := ctrl.service.GetAll(c.Request.Context())
	if err != nil {
		log.Printf("Error listing reservations: %v", err)
		writeInternalError(c)
		return
	}

	response := make([]domain.ReservationResponse, 0, len(reservations))
	for i := range reservations {
		response = append(response, reservations[i].Serialize())
	}
	c.JSON(http.StatusOK, response)
}

// Create maneja POST /api/dibs/reservations
// No se controla que start sea anterior a end
func (ctrl *ReservationController) Create(c *gin.Context) {
	body, err := readBody(c)
	if err != nil {
		c.String(http.StatusBadRequest, "Malformed JSON in request body")
		return
	}

	if verr := validateCreate(body, reservationFields); verr != nil {
		writeValidationError(c, verr)
		return
	}

	reservation := &domain.Reservation{}
	reservation.Username, _ = body.str("username")
	reservation.PropertyName, _ = body.str("propertyName")
	start, _ := body.str("start")
	end, _ := body.str("end")
	// El formato ya se validó arriba
	reservation.Start, _ = parseDate(start)
	reservation.End, _ = parseDate(end)

	created, err := ctrl.service.Create(c.Request.Context(), reservation)
	if err != nil {
		handleWriteError(c, "reservation", err)
		return
	}
	c.JSON(http.StatusCreated, created.Serialize())
}

// Update maneja PUT /api/dibs/reservations/:id
func (ctrl *ReservationController) Update(c *gin.Context) {
	id := c.Param("id")

	body, err := readBody(c)
	if err != nil {
		c.String(http.StatusBadRequest, "Malformed JSON in request body")
		return
	}

	fields, msg := updateFields(id, body, reservationFields)
	if msg != "" {
		c.String(http.StatusBadRequest, msg)
		return
	}

	if _, err := ctrl.service.Update(c.Request.Context(), id, fields); err != nil {
		handleWriteError(c, "reservation", err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Delete maneja DELETE /api/dibs/reservations/:id
func (ctrl *ReservationController) Delete(c *gin.Context) {
	if err := ctrl.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		log.Printf("Error deleting reservation %s: %v", c.Param("id"), err)
		writeInternalError(c)
		return
	}
	c.Status(http.StatusNoContent)
}
