package domain

import (
	"strings"
	"time"
)

// Property representa una propiedad que se puede reservar
type Property struct {
	ID        string    `bson:"-" gorm:"primaryKey;type:varchar(36)" json:"id"`
	Name      string    `bson:"name" gorm:"not null" json:"name"`
	Street    string    `bson:"street" gorm:"not null" json:"street"`
	City      string    `bson:"city" gorm:"not null" json:"city"`
	State     string    `bson:"state" gorm:"type:char(2);not null" json:"state"`
	Zipcode   int       `bson:"zipcode" gorm:"not null" json:"zipcode"`
	Type      string    `bson:"type" gorm:"not null" json:"type"`
	Owner     string    `bson:"owner,omitempty" json:"owner,omitempty"`
	ThumbURL  string    `bson:"thumbUrl" gorm:"column:thumb_url;not null" json:"thumbUrl"`
	CreatedAt time.Time `bson:"createdAt" json:"-"`
}

// TableName especifica el nombre de la tabla en MySQL
func (Property) TableName() string {
	return "properties"
}

// PropertyResponse es la forma pública de una propiedad
type PropertyResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Street   string `json:"street"`
	City     string `json:"city"`
	State    string `json:"state"`
	Zipcode  int    `json:"zipcode"`
	Type     string `json:"type"`
	Owner    string `json:"owner,omitempty"`
	ThumbURL string `json:"thumbUrl"`
}

// Serialize proyecta la propiedad a su forma pública
func (p *Property) Serialize() PropertyResponse {
	return PropertyResponse{
		ID:       p.ID,
		Name:     p.Name,
		Street:   p.Street,
		City:     p.City,
		State:    p.State,
		Zipcode:  p.Zipcode,
		Type:     p.Type,
		Owner:    p.Owner,
		ThumbURL: p.ThumbURL,
	}
}

// Validate es el control del esquema antes de escribir en la base.
// Los controladores validan primero; esto solo atrapa lo que se les escape.
func (p *Property) Validate() error {
	required := []struct {
		field string
		value string
	}{
		{"name", p.Name},
		{"street", p.Street},
		{"city", p.City},
		{"state", p.State},
		{"type", p.Type},
		{"thumbUrl", p.ThumbURL},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			return NewValidationError(r.field, "Path `"+r.field+"` is required")
		}
	}
	if p.Zipcode <= 0 {
		return NewValidationError("zipcode", "Must be a positive number")
	}
	if !IsValidState(p.State) {
		return NewValidationError("state", "Must be a valid state code")
	}
	return nil
}

// states son los códigos postales de estados y territorios aceptados
var states = map[string]struct{}{
	"AL": {}, "AK": {}, "AZ": {}, "AR": {}, "CA": {}, "CO": {}, "CT": {}, "DE": {},
	"FL": {}, "GA": {}, "HI": {}, "ID": {}, "IL": {}, "IN": {}, "IA": {}, "KS": {},
	"KY": {}, "LA": {}, "ME": {}, "MD": {}, "MA": {}, "MI": {}, "MN": {}, "MS": {},
	"MO": {}, "MT": {}, "NE": {}, "NV": {}, "NH": {}, "NJ": {}, "NM": {}, "NY": {},
	"NC": {}, "ND": {}, "OH": {}, "OK": {}, "OR": {}, "PA": {}, "RI": {}, "SC": {},
	"SD": {}, "TN": {}, "TX": {}, "UT": {}, "VT": {}, "VA": {}, "WA": {}, "WV": {},
	"WI": {}, "WY": {}, "DC": {}, "PR": {}, "GU": {}, "VI": {}, "AS": {}, "MP": {},
}

// IsValidState indica si el código pertenece a la enumeración
func IsValidState(code string) bool {
	_, ok := states[code]
	return ok
}
