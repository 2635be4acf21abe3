package httpx

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medipharm/medipharm-console/internal/domain/model"
)

func parsedRequest(t *testing.T, form url.Values) *http.Request {
	t.Helper()
	req := newFormRequest("/", form)
	require.NoError(t, parseForm(httptest.NewRecorder(), req))
	return req
}

func TestPharmacyFromForm(t *testing.T) {
	req := parsedRequest(t, url.Values{
		"name":      {"Pharmacie Mavré"},
		"latitude":  {"-4,79"},
		"longitude": {""},
	})
	fe := formErrors{}

	got := pharmacyFromForm(req, fe)

	assert.Empty(t, fe)
	assert.Equal(t, "Pharmacie Mavré", got.Name)
	assert.InDelta(t, -4.79, got.Latitude, 1e-9)
	assert.Equal(t, model.DefaultPharmacyLongitude, got.Longitude)
}

func TestInventoryFromForm(t *testing.T) {
	t.Run("optional fields stay unset", func(t *testing.T) {
		req := parsedRequest(t, url.Values{"pharmacyId": {"4"}, "medicationId": {"9"}, "isAvailable": {"on"}})
		fe := formErrors{}

		got := inventoryFromForm(req, fe)

		assert.Empty(t, fe)
		assert.Equal(t, int64(4), got.PharmacyID)
		assert.Nil(t, got.Quantity)
		assert.Nil(t, got.Price)
		assert.True(t, got.IsAvailable)
	})

	t.Run("conversion failures are reported per field", func(t *testing.T) {
		req := parsedRequest(t, url.Values{"pharmacyId": {"four"}, "quantity": {"1.5"}, "price": {"cheap"}})
		fe := formErrors{}

		got := inventoryFromForm(req, fe)

		assert.Equal(t, "Enter a valid identifier.", fe["pharmacyId"])
		assert.Equal(t, "Enter a whole number.", fe["quantity"])
		assert.Equal(t, "Enter a number.", fe["price"])
		assert.Nil(t, got.Quantity)
		assert.Nil(t, got.Price)
	})
}

func TestMedicationFromForm(t *testing.T) {
	req := parsedRequest(t, url.Values{
		"name":                 {"Ventoline"},
		"form":                 {"inhaler"},
		"activeIngredients":    {"Salbutamol\r\nLactose"},
		"requiresPrescription": {"true"},
		"quantity":             {"8"},
	})
	fe := formErrors{}

	got := medicationFromForm(req, fe)

	assert.Empty(t, fe)
	assert.Equal(t, []string{"Salbutamol", "Lactose"}, got.ActiveIngredients)
	assert.Nil(t, got.ImageURLs)
	assert.True(t, got.RequiresPrescription)
	assert.False(t, got.IsActive)
	assert.Equal(t, 8, got.Quantity)
}

func TestFormErrorsMerge(t *testing.T) {
	fe := formErrors{"latitude": "Enter a number."}

	got := fe.merge(map[string]string{"latitude": "Latitude is invalid.", "name": "Name is required."})

	assert.Equal(t, map[string]string{
		"latitude": "Enter a number.",
		"name":     "Name is required.",
	}, got)
}

func TestNoticeFrom(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, withNotice("/pharmacies", noticePharmacyCreated), nil)
	assert.Equal(t, "Pharmacy created.", noticeFrom(req))

	req = httptest.NewRequest(http.MethodGet, "/pharmacies?notice=<script>", nil)
	assert.Empty(t, noticeFrom(req))
}

func TestLandingPath(t *testing.T) {
	tests := []struct {
		name string
		next string
		role string
		want string
	}{
		{"next wins", "/inventory?lowStock=true", "PHARMACY_ADMIN", "/inventory?lowStock=true"},
		{"root goes home", "/", "SUPER_ADMIN", PathSuperAdmin},
		{"login goes home", PathLogin, "PHARMACY_ADMIN", PathAdmin},
		{"unknown role", "/", "USER", PathNotAuthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user := identityWithRole(tt.role)
			assert.Equal(t, tt.want, landingPath(tt.next, &user))
		})
	}
	assert.Equal(t, "/", landingPath("", nil))
}
