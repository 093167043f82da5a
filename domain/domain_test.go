package domain

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"
)

func validProperty() *Property {
	return &Property{
		Name:     "Cabin",
		Street:   "1 Pine Rd",
		City:     "Asheville",
		State:    "NC",
		Zipcode:  28801,
		Type:     "house",
		ThumbURL: "http://x/y.png",
	}
}

func TestPropertyValidate_Success(t *testing.T) {
	if err := validProperty().Validate(); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
}

func TestPropertyValidate_UnknownState(t *testing.T) {
	p := validProperty()
	p.State = "ZZ"

	err := p.Validate()

	var vErr *ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("Expected *ValidationError, got %v", err)
	}
	if vErr.Location != "state" {
		t.Errorf("Expected location state, got %s", vErr.Location)
	}
	if vErr.Code != 422 || vErr.Reason != "ValidationError" {
		t.Errorf("Unexpected code/reason %d/%s", vErr.Code, vErr.Reason)
	}
}

func TestPropertyValidate_MissingField(t *testing.T) {
	p := validProperty()
	p.City = "   "

	var vErr *ValidationError
	if !errors.As(p.Validate(), &vErr) || vErr.Location != "city" {
		t.Fatalf("Expected city validation error, got %v", vErr)
	}
}

func TestPropertyValidate_NonPositiveZipcode(t *testing.T) {
	for _, zipcode := range []int{0, -1} {
		p := validProperty()
		p.Zipcode = zipcode

		var vErr *ValidationError
		if !errors.As(p.Validate(), &vErr) {
			t.Fatalf("zipcode %d: expected *ValidationError", zipcode)
		}
		if vErr.Location != "zipcode" || vErr.Message != "Must be a positive number" {
			t.Errorf("zipcode %d: unexpected error %+v", zipcode, vErr)
		}
	}
}

func TestReservationValidate(t *testing.T) {
	r := &Reservation{Username: "bob", PropertyName: "Cabin", Start: time.Now()}

	var vErr *ValidationError
	if !errors.As(r.Validate(), &vErr) || vErr.Location != "end" {
		t.Fatalf("Expected end validation error, got %v", vErr)
	}

	r.End = r.Start.Add(-time.Hour)
	if err := r.Validate(); err != nil {
		t.Errorf("Start/end ordering is not enforced, got %v", err)
	}
}

func TestUserSerialize_StripsPassword(t *testing.T) {
	u := &User{ID: "1", Username: "bob", Password: "$2a$10$hash", FirstName: "Bob", LastName: "Smith"}

	body, err := json.Marshal(u.Serialize())
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if strings.Contains(string(body), "hash") || strings.Contains(string(body), "password") {
		t.Errorf("Serialized user leaks password: %s", body)
	}

	raw, _ := json.Marshal(u)
	if strings.Contains(string(raw), "hash") {
		t.Errorf("User JSON leaks password: %s", raw)
	}
}

func TestPropertySerialize(t *testing.T) {
	p := validProperty()
	p.ID = "abc"

	got := p.Serialize()
	if got.ID != "abc" || got.Name != "Cabin" || got.Zipcode != 28801 || got.ThumbURL != "http://x/y.png" {
		t.Errorf("Unexpected serialization %+v", got)
	}
}
