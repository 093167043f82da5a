package domain

import (
	"strings"
	"time"
)

// Reservation representa la reserva de una propiedad por un usuario.
// La propiedad se referencia por nombre, no por id.
type Reservation struct {
	ID           string    `bson:"-" gorm:"primaryKey;type:varchar(36)" json:"id"`
	Username     string    `bson:"username" gorm:"not null;index" json:"username"`
	PropertyName string    `bson:"propertyName" gorm:"column:property_name;not null" json:"propertyName"`
	Start        time.Time `bson:"start" gorm:"not null" json:"start"`
	End          time.Time `bson:"end" gorm:"column:end_at;not null" json:"end"`
	CreatedAt    time.Time `bson:"createdAt" json:"-"`
}

// TableName especifica el nombre de la tabla en MySQL
func (Reservation) TableName() string {
	return "reservations"
}

// ReservationResponse es la forma pública de una reserva
type ReservationResponse struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	PropertyName string    `json:"propertyName"`
	Start        time.Time `json:"start"`
	End          time.Time `json:"end"`
}

// Serialize proyecta la reserva a su forma pública
func (r *Reservation) Serialize() ReservationResponse {
	return ReservationResponse{
		ID:           r.ID,
		Username:     r.Username,
		PropertyName: r.PropertyName,
		Start:        r.Start.UTC(),
		End:          r.End.UTC(),
	}
}

// Validate controla los campos obligatorios antes de escribir.
// No se verifica que Start sea anterior a End ni que haya solapamientos.
func (r *Reservation) Validate() error {
	if strings.TrimSpace(r.Username) == "" {
		return NewValidationError("username", "Path `username` is required")
	}
	if strings.TrimSpace(r.PropertyName) == "" {
		return NewValidationError("propertyName", "Path `propertyName` is required")
	}
	if r.Start.IsZero() {
		return NewValidationError("start", "Path `start` is required")
	}
	if r.End.IsZero() {
		return NewValidationError("end", "Path `end` is required")
	}
	return nil
}
