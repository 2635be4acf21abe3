package mutation

import (
	"strings"

	domainauth "github.com/medipharm/medipharm-console/internal/domain/auth"
	"github.com/medipharm/medipharm-console/internal/domain/model"
)

// LoginSchema validates the login form.
func LoginSchema() *StructSchema[domainauth.Credentials] {
	return NewStructSchema(WithNormalize(func(c domainauth.Credentials) domainauth.Credentials {
		c.Email = strings.ToLower(strings.TrimSpace(c.Email))
		return c
	}))
}

// PharmacySchema validates the create-pharmacy form. Blank location fields
// fall back to the defaults the form is pre-filled with.
func PharmacySchema() *StructSchema[model.CreatePharmacyRequest] {
	return NewStructSchema(WithNormalize(func(r model.CreatePharmacyRequest) model.CreatePharmacyRequest {
		r.Name = strings.TrimSpace(r.Name)
		r.Address = strings.TrimSpace(r.Address)
		r.City = strings.TrimSpace(r.City)
		if r.City == "" {
			r.City = model.DefaultPharmacyCity
		}
		r.PhoneNumber = strings.TrimSpace(r.PhoneNumber)
		r.AlternatePhoneNumber = strings.TrimSpace(r.AlternatePhoneNumber)
		r.Email = strings.ToLower(strings.TrimSpace(r.Email))
		r.Description = strings.TrimSpace(r.Description)
		r.LicenseNumber = strings.TrimSpace(r.LicenseNumber)
		r.AdminEmail = strings.ToLower(strings.TrimSpace(r.AdminEmail))
		r.AdminName = strings.TrimSpace(r.AdminName)
		return r
	}))
}

// MedicationSchema validates a single medication, from the catalogue form or
// a bulk import row.
func MedicationSchema() *StructSchema[model.CreateMedicationRequest] {
	return NewStructSchema(WithNormalize(normalizeMedication))
}

// BulkMedicationSchema validates a bulk import batch.
func BulkMedicationSchema() Schema[[]model.CreateMedicationRequest] {
	return SliceSchema[model.CreateMedicationRequest](MedicationSchema())
}

// InventorySchema validates the add-to-inventory form.
func InventorySchema() *StructSchema[model.AddInventoryRequest] {
	return NewStructSchema(
		WithNormalize(func(r model.AddInventoryRequest) model.AddInventoryRequest {
			r.ExpiryDate = strings.TrimSpace(r.ExpiryDate)
			return r
		}),
		WithCheck(func(r model.AddInventoryRequest) map[string]string {
			if r.IsAvailable && r.Quantity != nil && *r.Quantity == 0 {
				return map[string]string{"quantity": "An available item needs a quantity above 0."}
			}
			return nil
		}),
	)
}

func normalizeMedication(r model.CreateMedicationRequest) model.CreateMedicationRequest {
	r.Name = strings.TrimSpace(r.Name)
	r.DCI = strings.TrimSpace(r.DCI)
	r.Dosage = strings.TrimSpace(r.Dosage)
	if f, ok := model.ParseMedicationForm(string(r.Form)); ok {
		r.Form = f
	}
	r.Manufacturer = strings.TrimSpace(r.Manufacturer)
	r.Description = strings.TrimSpace(r.Description)
	r.LeafletURL = strings.TrimSpace(r.LeafletURL)
	r.ExpiryDate = strings.TrimSpace(r.ExpiryDate)
	r.ActiveIngredients = compact(r.ActiveIngredients)
	r.ImageURLs = compact(r.ImageURLs)
	return r
}

// compact trims entries and drops blanks. A nil result encodes as null, so
// an empty list is returned instead.
func compact(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
