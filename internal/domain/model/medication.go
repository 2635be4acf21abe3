package model

import "strings"

// MedicationForm is the galenic form of a medication.
type MedicationForm string

const (
	MedicationFormTablet      MedicationForm = "TABLET"
	MedicationFormCapsule     MedicationForm = "CAPSULE"
	MedicationFormInjection   MedicationForm = "INJECTION"
	MedicationFormDrops       MedicationForm = "DROPS"
	MedicationFormOintment    MedicationForm = "OINTMENT"
	MedicationFormSyrup       MedicationForm = "SYRUP"
	MedicationFormCream       MedicationForm = "CREAM"
	MedicationFormPowder      MedicationForm = "POWDER"
	MedicationFormSpray       MedicationForm = "SPRAY"
	MedicationFormInhaler     MedicationForm = "INHALER"
	MedicationFormSuppository MedicationForm = "SUPPOSITORY"
	MedicationFormOther       MedicationForm = "OTHER"
)

var medicationFormLabels = map[MedicationForm]string{
	MedicationFormTablet:      "Tablet",
	MedicationFormCapsule:     "Capsule",
	MedicationFormInjection:   "Injection",
	MedicationFormDrops:       "Drops",
	MedicationFormOintment:    "Ointment",
	MedicationFormSyrup:       "Syrup",
	MedicationFormCream:       "Cream",
	MedicationFormPowder:      "Powder",
	MedicationFormSpray:       "Spray",
	MedicationFormInhaler:     "Inhaler",
	MedicationFormSuppository: "Suppository",
	MedicationFormOther:       "Other",
}

// MedicationForms lists the forms in display order.
func MedicationForms() []MedicationForm {
	return []MedicationForm{
		MedicationFormTablet, MedicationFormCapsule, MedicationFormInjection,
		MedicationFormDrops, MedicationFormOintment, MedicationFormSyrup,
		MedicationFormCream, MedicationFormPowder, MedicationFormSpray,
		MedicationFormInhaler, MedicationFormSuppository, MedicationFormOther,
	}
}

// Valid reports whether the form is supported by the backend.
func (f MedicationForm) Valid() bool {
	_, ok := medicationFormLabels[f]
	return ok
}

// Label returns the display label for the form.
func (f MedicationForm) Label() string {
	if l, ok := medicationFormLabels[f]; ok {
		return l
	}
	return string(f)
}

// ParseMedicationForm normalizes v and reports whether it is a known form.
func ParseMedicationForm(v string) (MedicationForm, bool) {
	f := MedicationForm(strings.ToUpper(strings.TrimSpace(v)))
	if f.Valid() {
		return f, true
	}
	return "", false
}

// Medication is a catalogue entry with its search statistics.
type Medication struct {
	ID                    string  `json:"id"`
	Name                  string  `json:"name"`
	DCI                   *string `json:"dci,omitempty"`
	Dosage                string  `json:"dosage"`
	Manufacturer          *string `json:"manufacturer,omitempty"`
	Form                  *string `json:"form,omitempty"`
	Strength              *string `json:"strength,omitempty"`
	Description           *string `json:"description,omitempty"`
	SearchCount           int     `json:"searchCount"`
	AvailablePharmacies   int     `json:"availablePharmacies"`
	IsActive              bool    `json:"isActive"`
	TotalSearches         int     `json:"totalSearches"`
	AvailableInPharmacies int     `json:"availableInPharmacies"`
	AveragePrice          float64 `json:"averagePrice"`
	CreatedAt             Moment  `json:"createdAt"`
}

// CreateMedicationRequest registers a medication. Pharmacy admins also use it
// in bulk to seed their stock, hence the quantity/price fields.
type CreateMedicationRequest struct {
	Name                 string         `json:"name"                   validate:"required"`
	DCI                  string         `json:"dci"                    validate:"required"`
	Dosage               string         `json:"dosage"                 validate:"required"`
	Form                 MedicationForm `json:"form"                   validate:"required,medication_form"`
	Manufacturer         string         `json:"manufacturer,omitempty"`
	Description          string         `json:"description,omitempty"`
	RequiresPrescription bool           `json:"requiresPrescription"`
	ActiveIngredients    []string       `json:"activeIngredients"      validate:"dive,required"`
	ImageURLs            []string       `json:"imageUrls"              validate:"dive,url"`
	LeafletURL           string         `json:"leafletUrl,omitempty"   validate:"omitempty,url"`
	IsActive             bool           `json:"isActive"`
	Quantity             int            `json:"quantity"               validate:"gte=0"`
	Price                float64        `json:"price"                  validate:"gte=0"`
	IsAvailable          bool           `json:"isAvailable"`
	ExpiryDate           string         `json:"expiryDate"             validate:"required,datetime=2006-01-02"`
}
