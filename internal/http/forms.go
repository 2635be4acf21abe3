package httpx

import (
	"net/http"
	"strconv"
	"strings"

	domainauth "github.com/medipharm/medipharm-console/internal/domain/auth"
	"github.com/medipharm/medipharm-console/internal/domain/model"
)

const maxFormBody = 1 << 20

// parseForm bounds and parses a urlencoded or multipart body.
func parseForm(w http.ResponseWriter, r *http.Request) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxFormBody)
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		return r.ParseMultipartForm(maxFormBody)
	}
	return r.ParseForm()
}

// formErrors collects per-field conversion failures so they are reported
// alongside the schema's own messages.
type formErrors map[string]string

func (fe formErrors) float(r *http.Request, name string, fallback float64) float64 {
	raw := strings.TrimSpace(r.PostFormValue(name))
	if raw == "" {
		return fallback
	}
	v, err := strconv.ParseFloat(strings.ReplaceAll(raw, ",", "."), 64)
	if err != nil {
		fe[name] = "Enter a number."
		return fallback
	}
	return v
}

func (fe formErrors) whole(r *http.Request, name string) int {
	raw := strings.TrimSpace(r.PostFormValue(name))
	if raw == "" {
		return 0
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		fe[name] = "Enter a whole number."
		return 0
	}
	return v
}

func (fe formErrors) optionalInt(r *http.Request, name string) *int {
	if strings.TrimSpace(r.PostFormValue(name)) == "" {
		return nil
	}
	v := fe.whole(r, name)
	if _, bad := fe[name]; bad {
		return nil
	}
	return &v
}

func (fe formErrors) optionalFloat(r *http.Request, name string) *float64 {
	if strings.TrimSpace(r.PostFormValue(name)) == "" {
		return nil
	}
	v := fe.float(r, name, 0)
	if _, bad := fe[name]; bad {
		return nil
	}
	return &v
}

func (fe formErrors) id(r *http.Request, name string) int64 {
	raw := strings.TrimSpace(r.PostFormValue(name))
	if raw == "" {
		return 0
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		fe[name] = "Enter a valid identifier."
		return 0
	}
	return v
}

// merge overlays schema messages on conversion messages; a conversion
// failure is the more precise message for its field.
func (fe formErrors) merge(fields map[string]string) map[string]string {
	out := make(map[string]string, len(fe)+len(fields))
	for k, v := range fields {
		out[k] = v
	}
	for k, v := range fe {
		out[k] = v
	}
	return out
}

func checked(r *http.Request, name string) bool {
	switch strings.ToLower(strings.TrimSpace(r.PostFormValue(name))) {
	case "true", "on", "1", "yes":
		return true
	default:
		return false
	}
}

// lines splits a textarea into its lines; the schema trims and drops blanks.
func lines(r *http.Request, name string) []string {
	raw := strings.ReplaceAll(r.PostFormValue(name), "\r\n", "\n")
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	return strings.Split(raw, "\n")
}

func credentialsFromForm(r *http.Request) domainauth.Credentials {
	return domainauth.Credentials{
		Email:    r.PostFormValue("email"),
		Password: r.PostFormValue("password"),
	}
}

func pharmacyFromForm(r *http.Request, fe formErrors) model.CreatePharmacyRequest {
	return model.CreatePharmacyRequest{
		Name:                 r.PostFormValue("name"),
		Address:              r.PostFormValue("address"),
		City:                 r.PostFormValue("city"),
		PhoneNumber:          r.PostFormValue("phoneNumber"),
		AlternatePhoneNumber: r.PostFormValue("alternatePhoneNumber"),
		Email:                r.PostFormValue("email"),
		Latitude:             fe.float(r, "latitude", model.DefaultPharmacyLatitude),
		Longitude:            fe.float(r, "longitude", model.DefaultPharmacyLongitude),
		Description:          r.PostFormValue("description"),
		LicenseNumber:        r.PostFormValue("licenseNumber"),
		AdminEmail:           r.PostFormValue("adminEmail"),
		AdminName:            r.PostFormValue("adminName"),
		AdminPassword:        r.PostFormValue("adminPassword"),
	}
}

func medicationFromForm(r *http.Request, fe formErrors) model.CreateMedicationRequest {
	return model.CreateMedicationRequest{
		Name:                 r.PostFormValue("name"),
		DCI:                  r.PostFormValue("dci"),
		Dosage:               r.PostFormValue("dosage"),
		Form:                 model.MedicationForm(r.PostFormValue("form")),
		Manufacturer:         r.PostFormValue("manufacturer"),
		Description:          r.PostFormValue("description"),
		RequiresPrescription: checked(r, "requiresPrescription"),
		ActiveIngredients:    lines(r, "activeIngredients"),
		ImageURLs:            lines(r, "imageUrls"),
		LeafletURL:           r.PostFormValue("leafletUrl"),
		IsActive:             checked(r, "isActive"),
		Quantity:             fe.whole(r, "quantity"),
		Price:                fe.float(r, "price", 0),
		IsAvailable:          checked(r, "isAvailable"),
		ExpiryDate:           r.PostFormValue("expiryDate"),
	}
}

func inventoryFromForm(r *http.Request, fe formErrors) model.AddInventoryRequest {
	return model.AddInventoryRequest{
		PharmacyID:   fe.id(r, "pharmacyId"),
		MedicationID: fe.id(r, "medicationId"),
		Quantity:     fe.optionalInt(r, "quantity"),
		Price:        fe.optionalFloat(r, "price"),
		IsAvailable:  checked(r, "isAvailable"),
		ExpiryDate:   r.PostFormValue("expiryDate"),
	}
}
