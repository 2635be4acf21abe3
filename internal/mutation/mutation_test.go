package mutation

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	domainauth "github.com/medipharm/medipharm-console/internal/domain/auth"
	"github.com/medipharm/medipharm-console/internal/domain/model"
	apperrors "github.com/medipharm/medipharm-console/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type httpFailure struct {
	status int
	body   string
}

func (e *httpFailure) Error() string        { return fmt.Sprintf("status %d", e.status) }
func (e *httpFailure) StatusCode() int      { return e.status }
func (e *httpFailure) ResponseBody() []byte { return []byte(e.body) }

func validPharmacy() model.CreatePharmacyRequest {
	r := model.NewCreatePharmacyRequest()
	r.Name = "Pharmacie Centrale"
	r.Address = "12 avenue de la Paix"
	r.PhoneNumber = "+242 06 000 0000"
	r.AdminEmail = "admin@centrale.cg"
	r.AdminName = "Marie"
	r.AdminPassword = "s3cretpass"
	return r
}

func TestMutation_InvalidPayloadSkipsSubmit(t *testing.T) {
	calls := 0
	m := New("create_pharmacy", Schema[model.CreatePharmacyRequest](PharmacySchema()),
		func(context.Context, model.CreatePharmacyRequest) (model.Pharmacy, error) {
			calls++
			return model.Pharmacy{}, nil
		})

	bad := validPharmacy()
	bad.AdminPassword = "short"
	bad.AdminEmail = "not-an-email"

	res := m.Run(context.Background(), bad)

	assert.Zero(t, calls, "submit must not run for an invalid payload")
	assert.False(t, res.Success)
	assert.True(t, res.Invalid())
	assert.True(t, apperrors.IsValidation(res.Err))
	assert.Equal(t, MsgInvalid, res.Message)
	assert.Equal(t, "Admin password must be at least 8 characters.", res.Fields["adminPassword"])
	assert.Equal(t, "Enter a valid email address.", res.Fields["adminEmail"])
}

func TestMutation_SubmitsCoercedPayload(t *testing.T) {
	var got model.CreatePharmacyRequest
	m := New("create_pharmacy", Schema[model.CreatePharmacyRequest](PharmacySchema()),
		func(_ context.Context, r model.CreatePharmacyRequest) (model.Pharmacy, error) {
			got = r
			return model.Pharmacy{ID: "p1", Name: r.Name}, nil
		})

	in := validPharmacy()
	in.Name = "  Pharmacie Centrale  "
	in.City = " "
	in.AdminEmail = " Admin@Centrale.CG "

	res := m.Run(context.Background(), in)

	require.True(t, res.Success)
	assert.Nil(t, res.Err)
	assert.Equal(t, "p1", res.Data.ID)
	assert.Equal(t, "Pharmacie Centrale", got.Name)
	assert.Equal(t, model.DefaultPharmacyCity, got.City)
	assert.Equal(t, "admin@centrale.cg", got.AdminEmail)
	assert.InDelta(t, model.DefaultPharmacyLatitude, got.Latitude, 1e-9)
}

func TestMutation_FailureMessagePrecedence(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
		code apperrors.ErrorCode
	}{
		{"error field wins", &httpFailure{400, `{"error":"Duplicate name","message":"Bad Request"}`}, "Duplicate name", apperrors.ErrCodeClient},
		{"message field", &httpFailure{409, `{"message":"License already registered"}`}, "License already registered", apperrors.ErrCodeClient},
		{"raw body", &httpFailure{500, `upstream exploded`}, "upstream exploded", apperrors.ErrCodeServer},
		{"no response", errors.New("dial tcp: connection refused"), apperrors.MsgNetwork, apperrors.ErrCodeNetwork},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := New("create_medication", Schema[model.CreateMedicationRequest](nil),
				func(context.Context, model.CreateMedicationRequest) (model.CreateMedicationRequest, error) {
					return model.CreateMedicationRequest{}, tt.err
				})

			res := m.Run(context.Background(), model.CreateMedicationRequest{})

			assert.False(t, res.Success)
			assert.False(t, res.Invalid())
			assert.Equal(t, tt.want, res.Message)
			require.NotNil(t, res.Err)
			assert.Equal(t, tt.code, res.Err.Code)
		})
	}
}

func TestMutation_UnauthorizedIsReported(t *testing.T) {
	m := New[string, struct{}]("verify_pharmacy", nil, func(context.Context, string) (struct{}, error) {
		return struct{}{}, &httpFailure{status: http.StatusUnauthorized}
	})

	res := m.Run(context.Background(), "42")

	assert.True(t, apperrors.IsAuthorization(res.Err))
	assert.Equal(t, apperrors.MsgSessionExpired, res.Message)
}

func TestMutation_SchemaFailureIsInternal(t *testing.T) {
	boom := errors.New("boom")
	m := New("x", Schema[string](SchemaFunc[string](func(s string) (string, error) { return s, boom })),
		func(context.Context, string) (string, error) {
			t.Fatal("submit called")
			return "", nil
		})

	res := m.Run(context.Background(), "payload")

	require.NotNil(t, res.Err)
	assert.Equal(t, apperrors.ErrCodeInternal, res.Err.Code)
	assert.ErrorIs(t, res.Err, boom)
}

func TestLoginSchema(t *testing.T) {
	creds, err := LoginSchema().Validate(domainauth.Credentials{Email: " A@B.com ", Password: "x"})
	require.NoError(t, err)
	assert.Equal(t, "a@b.com", creds.Email)

	_, err = LoginSchema().Validate(domainauth.Credentials{})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "Email is required.", verr.Field("email"))
	assert.Equal(t, "Password is required.", verr.Field("password"))
	assert.Equal(t, "validation failed: email, password", verr.Error())
}

func validMedication() model.CreateMedicationRequest {
	return model.CreateMedicationRequest{
		Name:       "Doliprane",
		DCI:        "Paracetamol",
		Dosage:     "500mg",
		Form:       "syrup",
		ExpiryDate: "2027-01-31",
	}
}

func TestMedicationSchema(t *testing.T) {
	med, err := MedicationSchema().Validate(validMedication())
	require.NoError(t, err)
	assert.Equal(t, model.MedicationFormSyrup, med.Form)
	assert.NotNil(t, med.ActiveIngredients)
	assert.Empty(t, med.ActiveIngredients)

	bad := validMedication()
	bad.Form = "pill"
	bad.ExpiryDate = "31/01/2027"
	bad.ImageURLs = []string{"not a url"}
	bad.Price = -1

	_, err = MedicationSchema().Validate(bad)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "Choose a valid form.", verr.Field("form"))
	assert.Equal(t, "Expiry date must be a date (YYYY-MM-DD).", verr.Field("expiryDate"))
	assert.Equal(t, "Enter a valid URL.", verr.Field("imageUrls[0]"))
	assert.Equal(t, "Price must be 0 or more.", verr.Field("price"))
}

func TestBulkMedicationSchema(t *testing.T) {
	second := validMedication()
	second.Name = " "

	_, err := BulkMedicationSchema().Validate([]model.CreateMedicationRequest{validMedication(), second})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, map[string]string{"1.name": "Name is required."}, verr.Fields)

	_, err = BulkMedicationSchema().Validate(nil)
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "items")

	out, err := BulkMedicationSchema().Validate([]model.CreateMedicationRequest{validMedication()})
	require.NoError(t, err)
	assert.Equal(t, model.MedicationFormSyrup, out[0].Form)
}

func TestInventorySchema(t *testing.T) {
	zero := 0
	_, err := InventorySchema().Validate(model.AddInventoryRequest{
		PharmacyID: 1, MedicationID: 2, Quantity: &zero, IsAvailable: true, ExpiryDate: "2026-05-01",
	})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "quantity")

	_, err = InventorySchema().Validate(model.AddInventoryRequest{ExpiryDate: "2026-05-01"})
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "Pharmacy id is required.", verr.Field("pharmacyId"))
	assert.Equal(t, "Medication id is required.", verr.Field("medicationId"))

	five := 5
	_, err = InventorySchema().Validate(model.AddInventoryRequest{
		PharmacyID: 1, MedicationID: 2, Quantity: &five, IsAvailable: true, ExpiryDate: "2026-05-01",
	})
	assert.NoError(t, err)
}

func TestHumanize(t *testing.T) {
	assert.Equal(t, "Phone number", humanize("phoneNumber"))
	assert.Equal(t, "Image urls", humanize("imageUrls[3]"))
	assert.Equal(t, "Name", humanize("name"))
}
