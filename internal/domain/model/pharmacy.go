package model

import "strings"

const (
	DefaultPharmacyCity      = "Brazzaville"
	DefaultPharmacyLatitude  = -4.2634
	DefaultPharmacyLongitude = 15.2429
)

// Pharmacy is a pharmacy as listed by the super-admin API.
type Pharmacy struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	Address        string   `json:"address"`
	City           string   `json:"city"`
	PhoneNumber    string   `json:"phoneNumber"`
	Email          *string  `json:"email,omitempty"`
	IsActive       bool     `json:"isActive"`
	IsVerified     bool     `json:"isVerified"`
	InventoryCount int      `json:"inventoryCount"`
	AverageRating  float64  `json:"averageRating"`
	Latitude       *float64 `json:"latitude,omitempty"`
	Longitude      *float64 `json:"longitude,omitempty"`
	Description    *string  `json:"description,omitempty"`
	LicenseNumber  *string  `json:"licenseNumber,omitempty"`
}

// PharmacyStatus filters the pharmacy list.
type PharmacyStatus string

const (
	PharmacyStatusAll        PharmacyStatus = ""
	PharmacyStatusActive     PharmacyStatus = "active"
	PharmacyStatusInactive   PharmacyStatus = "inactive"
	PharmacyStatusUnverified PharmacyStatus = "unverified"
)

// ParsePharmacyStatus normalizes a status filter. Unknown values mean "all".
func ParsePharmacyStatus(v string) PharmacyStatus {
	s := PharmacyStatus(strings.ToLower(strings.TrimSpace(v)))
	switch s {
	case PharmacyStatusActive, PharmacyStatusInactive, PharmacyStatusUnverified:
		return s
	default:
		return PharmacyStatusAll
	}
}

// PharmacyListOptions are the optional query filters for listing pharmacies.
type PharmacyListOptions struct {
	Search string
	City   string
	Status PharmacyStatus
}

// CreatePharmacyRequest creates a pharmacy together with its administrator account.
type CreatePharmacyRequest struct {
	Name                 string  `json:"name"                           validate:"required,max=255"`
	Address              string  `json:"address"                        validate:"required"`
	City                 string  `json:"city"                           validate:"required"`
	PhoneNumber          string  `json:"phoneNumber"                    validate:"required"`
	AlternatePhoneNumber string  `json:"alternatePhoneNumber,omitempty"`
	Email                string  `json:"email,omitempty"                validate:"omitempty,email"`
	Latitude             float64 `json:"latitude"                       validate:"latitude"`
	Longitude            float64 `json:"longitude"                      validate:"longitude"`
	Description          string  `json:"description,omitempty"`
	LicenseNumber        string  `json:"licenseNumber,omitempty"`
	AdminEmail           string  `json:"adminEmail"                     validate:"required,email"`
	AdminName            string  `json:"adminName"                      validate:"required"`
	AdminPassword        string  `json:"adminPassword"                  validate:"required,min=8"`
}

// NewCreatePharmacyRequest returns a request pre-filled with the form defaults.
func NewCreatePharmacyRequest() CreatePharmacyRequest {
	return CreatePharmacyRequest{
		City:      DefaultPharmacyCity,
		Latitude:  DefaultPharmacyLatitude,
		Longitude: DefaultPharmacyLongitude,
	}
}
