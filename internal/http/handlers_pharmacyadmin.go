package httpx

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/medipharm/medipharm-console/internal/domain/model"
	"github.com/medipharm/medipharm-console/internal/http/ui/viewmodel"
	"github.com/medipharm/medipharm-console/internal/mutation"
)

const (
	pathInventory  = "/inventory"
	pathMedication = "/medication"
)

func inventoryMeta() PageMeta {
	return PageMeta{Title: "Inventory · Medipharm", PageTitle: "Inventory", CurrentPage: PageInventory}
}

func inventoryFilters(r *http.Request) model.InventoryListOptions {
	q := r.URL.Query()
	low := strings.ToLower(q.Get("lowStock"))
	return model.InventoryListOptions{
		Search:   strings.TrimSpace(q.Get("search")),
		LowStock: low == "true" || low == "on" || low == "1",
	}
}

// Inventory lists the pharmacy's stock.
func (h *UIHandlers) Inventory(w http.ResponseWriter, r *http.Request) {
	h.renderInventory(w, r, http.StatusOK, model.AddInventoryRequest{IsAvailable: true}, nil, "")
}

func (h *UIHandlers) renderInventory(
	w http.ResponseWriter,
	r *http.Request,
	status int,
	form model.AddInventoryRequest,
	fieldErrs map[string]string,
	message string,
) {
	filters := inventoryFilters(r)
	b := h.NewTemplateData(r, inventoryMeta()).
		With("Filters", filters).
		With("Form", form).
		WithFieldErrors(fieldErrs)

	items, err := h.PharmacyAdmin.ListInventory(r.Context(), filters)
	if err != nil {
		msg, handled := h.backendFailed(w, r, "list-inventory", err)
		if handled {
			return
		}
		if message == "" {
			message = msg
		}
	}
	if message != "" {
		b.WithError(message)
	}
	b.With("Inventory", items)
	h.renderPage(w, r, status, b.Build())
}

// AddInventory records stock of an existing medication.
func (h *UIHandlers) AddInventory(w http.ResponseWriter, r *http.Request) {
	if err := parseForm(w, r); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	fe := formErrors{}
	req := inventoryFromForm(r, fe)
	schema := mutation.InventorySchema()

	if len(fe) > 0 {
		errs := fe.merge(schemaFields[model.AddInventoryRequest](schema, req))
		h.renderInventory(w, r, formStatus(r), req, errs, mutation.MsgInvalid)
		return
	}

	add := mutation.New[model.AddInventoryRequest, model.AddInventoryRequest]("add-inventory", schema, h.PharmacyAdmin.AddInventory)
	add.Logger = h.logger()
	res := add.Run(r.Context(), req)
	if res.Success {
		navigate(w, r, withNotice(pathInventory, noticeInventoryAdded))
		return
	}
	if redirectIfNavigated(w, r) {
		return
	}
	h.renderInventory(w, r, failureStatus(r, res.Err), req, res.Fields, res.Message)
}

// bulkResult is the JSON body of a successful bulk import.
type bulkResult struct {
	Imported int `json:"imported"`
}

// InventoryBulk imports a JSON array of medications into the pharmacy's
// inventory. Entries are validated together; one bad entry rejects the batch.
func (h *UIHandlers) InventoryBulk(w http.ResponseWriter, r *http.Request) {
	var payload []model.CreateMedicationRequest
	if !DecodeJSON(w, r, &payload) {
		return
	}

	bulk := mutation.New[[]model.CreateMedicationRequest, []model.CreateMedicationRequest](
		"bulk-medications", mutation.BulkMedicationSchema(), h.PharmacyAdmin.AddMedications)
	bulk.Logger = h.logger()
	res := bulk.Run(r.Context(), payload)
	if res.Success {
		WriteJSON(w, http.StatusOK, bulkResult{Imported: len(res.Data)})
		return
	}
	// fetch() follows 303s transparently, so navigation is signalled by header.
	if target, ok := navigatedTo(r.Context()); ok {
		SetHXRedirect(w, target)
		WriteAppError(w, res.Err)
		return
	}
	WriteAppError(w, res.Err)
}

func medicationMeta() PageMeta {
	return PageMeta{Title: "Medication · Medipharm", PageTitle: "Add medication", CurrentPage: PageMedication}
}

// bulkExample is the sample payload prefilled in the bulk import form.
var bulkExample = func() string {
	sample := []model.CreateMedicationRequest{{
		Name:              "Doliprane",
		DCI:               "Paracetamol",
		Dosage:            "500mg",
		Form:              model.MedicationFormTablet,
		Manufacturer:      "Sanofi",
		ActiveIngredients: []string{"Paracetamol"},
		ImageURLs:         []string{},
		IsActive:          true,
		Quantity:          100,
		Price:             1500,
		IsAvailable:       true,
		ExpiryDate:        "2027-12-31",
	}}
	b, err := json.MarshalIndent(sample, "", "  ")
	if err != nil {
		return "[]"
	}
	return string(b)
}()

// MedicationPage renders the bulk import and single medication forms.
func (h *UIHandlers) MedicationPage(w http.ResponseWriter, r *http.Request) {
	h.renderMedication(w, r, http.StatusOK, model.CreateMedicationRequest{IsActive: true, IsAvailable: true}, nil, "")
}

func (h *UIHandlers) renderMedication(
	w http.ResponseWriter,
	r *http.Request,
	status int,
	form model.CreateMedicationRequest,
	fieldErrs map[string]string,
	message string,
) {
	b := h.NewTemplateData(r, medicationMeta()).
		With("BulkExample", bulkExample).
		With("Form", form).
		With("FormAction", pathMedication).
		WithFieldErrors(fieldErrs)
	if message != "" {
		b.WithError(message)
	}
	h.renderPage(w, r, status, b.Build())
}

// AddMedication adds one medication to the pharmacy's inventory.
func (h *UIHandlers) AddMedication(w http.ResponseWriter, r *http.Request) {
	if err := parseForm(w, r); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	fe := formErrors{}
	req := medicationFromForm(r, fe)
	schema := mutation.MedicationSchema()

	if len(fe) > 0 {
		errs := fe.merge(schemaFields[model.CreateMedicationRequest](schema, req))
		h.renderMedication(w, r, formStatus(r), req, errs, mutation.MsgInvalid)
		return
	}

	add := mutation.New[model.CreateMedicationRequest, []model.CreateMedicationRequest]("add-medication", schema,
		func(ctx context.Context, m model.CreateMedicationRequest) ([]model.CreateMedicationRequest, error) {
			return h.PharmacyAdmin.AddMedications(ctx, []model.CreateMedicationRequest{m})
		})
	add.Logger = h.logger()
	res := add.Run(r.Context(), req)
	if res.Success {
		navigate(w, r, withNotice(pathMedication, noticeMedicationsAdded))
		return
	}
	if redirectIfNavigated(w, r) {
		return
	}
	h.renderMedication(w, r, failureStatus(r, res.Err), req, res.Fields, res.Message)
}

// PharmacyPage summarizes the operator's pharmacy.
func (h *UIHandlers) PharmacyPage(w http.ResponseWriter, r *http.Request) {
	b := h.NewTemplateData(r, PageMeta{
		Title:       "Pharmacy · Medipharm",
		PageTitle:   "My pharmacy",
		CurrentPage: PagePharmacy,
	})
	stats, err := h.PharmacyAdmin.Stats(r.Context())
	if err != nil {
		msg, handled := h.backendFailed(w, r, "pharmacy-stats", err)
		if handled {
			return
		}
		b.WithError(msg)
		h.renderPage(w, r, http.StatusOK, b.With("Stats", []viewmodel.StatCard(nil)).Build())
		return
	}
	h.renderPage(w, r, http.StatusOK, b.With("Stats", viewmodel.PharmacyAdminCards(stats)).Build())
}
