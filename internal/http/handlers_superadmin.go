package httpx

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/medipharm/medipharm-console/internal/domain/model"
	apperrors "github.com/medipharm/medipharm-console/internal/errors"
	"github.com/medipharm/medipharm-console/internal/mutation"
)

const (
	pathPharmacies  = "/pharmacies"
	pathMedications = "/medications"
)

// schemaFields runs schema over v only to collect its field messages.
func schemaFields[T any](schema mutation.Schema[T], v T) map[string]string {
	if _, err := schema.Validate(v); err != nil {
		var verr *mutation.ValidationError
		if errors.As(err, &verr) {
			return verr.Fields
		}
	}
	return nil
}

// failureStatus is the status of a page re-rendered after a failed write.
func failureStatus(r *http.Request, appErr *apperrors.AppError) int {
	if IsHTMX(r) || appErr == nil {
		return formStatus(r)
	}
	return statusForAppError(appErr)
}

func pharmaciesMeta() PageMeta {
	return PageMeta{Title: "Pharmacies · Medipharm", PageTitle: "Pharmacies", CurrentPage: PagePharmacies}
}

func pharmacyFilters(r *http.Request) model.PharmacyListOptions {
	q := r.URL.Query()
	return model.PharmacyListOptions{
		Search: strings.TrimSpace(q.Get("search")),
		City:   strings.TrimSpace(q.Get("city")),
		Status: model.ParsePharmacyStatus(q.Get("status")),
	}
}

// pharmacyPage is one rendering of the pharmacies page.
type pharmacyPage struct {
	status  int
	form    model.CreatePharmacyRequest
	errors  map[string]string
	message string
}

// Pharmacies lists pharmacies with the create form collapsed.
func (h *UIHandlers) Pharmacies(w http.ResponseWriter, r *http.Request) {
	h.renderPharmacies(w, r, pharmacyPage{status: http.StatusOK, form: model.NewCreatePharmacyRequest()})
}

func (h *UIHandlers) renderPharmacies(w http.ResponseWriter, r *http.Request, p pharmacyPage) {
	filters := pharmacyFilters(r)
	b := h.NewTemplateData(r, pharmaciesMeta()).
		With("Filters", filters).
		With("Form", p.form).
		WithFieldErrors(p.errors)

	pharmacies, err := h.SuperAdmin.ListPharmacies(r.Context(), filters)
	if err != nil {
		msg, handled := h.backendFailed(w, r, "list-pharmacies", err)
		if handled {
			return
		}
		if p.message == "" {
			p.message = msg
		}
	}
	if p.message != "" {
		b.WithError(p.message)
	}
	b.With("Pharmacies", pharmacies)
	h.renderPage(w, r, p.status, b.Build())
}

// CreatePharmacy validates and submits the new pharmacy form.
func (h *UIHandlers) CreatePharmacy(w http.ResponseWriter, r *http.Request) {
	if err := parseForm(w, r); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	fe := formErrors{}
	req := pharmacyFromForm(r, fe)
	schema := mutation.PharmacySchema()

	if len(fe) > 0 {
		h.renderPharmacies(w, r, pharmacyPage{
			status:  formStatus(r),
			form:    req,
			errors:  fe.merge(schemaFields[model.CreatePharmacyRequest](schema, req)),
			message: mutation.MsgInvalid,
		})
		return
	}

	create := mutation.New[model.CreatePharmacyRequest, model.Pharmacy]("create-pharmacy", schema, h.SuperAdmin.CreatePharmacy)
	create.Logger = h.logger()
	res := create.Run(r.Context(), req)
	if res.Success {
		navigate(w, r, withNotice(pathPharmacies, noticePharmacyCreated))
		return
	}
	if redirectIfNavigated(w, r) {
		return
	}
	h.renderPharmacies(w, r, pharmacyPage{
		status:  failureStatus(r, res.Err),
		form:    req,
		errors:  res.Fields,
		message: res.Message,
	})
}

// VerifyPharmacy marks a pharmacy as verified.
func (h *UIHandlers) VerifyPharmacy(w http.ResponseWriter, r *http.Request) {
	h.pharmacyAction(w, r, "verify-pharmacy", h.SuperAdmin.VerifyPharmacy, noticePharmacyVerified)
}

// TogglePharmacyStatus flips a pharmacy between active and inactive.
func (h *UIHandlers) TogglePharmacyStatus(w http.ResponseWriter, r *http.Request) {
	h.pharmacyAction(w, r, "toggle-pharmacy-status", h.SuperAdmin.TogglePharmacyStatus, noticePharmacyToggled)
}

func (h *UIHandlers) pharmacyAction(
	w http.ResponseWriter,
	r *http.Request,
	op string,
	call func(ctx context.Context, id string) error,
	notice string,
) {
	id := strings.TrimSpace(r.PathValue("id"))
	if id == "" {
		http.Error(w, "missing pharmacy id", http.StatusBadRequest)
		return
	}
	if err := call(r.Context(), id); err != nil {
		msg, handled := h.backendFailed(w, r, op, err)
		if handled {
			return
		}
		h.renderPharmacies(w, r, pharmacyPage{
			status:  failureStatus(r, apperrors.Classify(err)),
			form:    model.NewCreatePharmacyRequest(),
			message: msg,
		})
		return
	}
	navigate(w, r, withNotice(pathPharmacies, notice))
}

func medicationsMeta() PageMeta {
	return PageMeta{Title: "Medications · Medipharm", PageTitle: "Medications", CurrentPage: PageMedications}
}

// Medications lists the medication catalogue.
func (h *UIHandlers) Medications(w http.ResponseWriter, r *http.Request) {
	h.renderMedications(w, r, http.StatusOK, model.CreateMedicationRequest{IsActive: true}, nil, "")
}

func (h *UIHandlers) renderMedications(
	w http.ResponseWriter,
	r *http.Request,
	status int,
	form model.CreateMedicationRequest,
	fieldErrs map[string]string,
	message string,
) {
	search := strings.TrimSpace(r.URL.Query().Get("search"))
	b := h.NewTemplateData(r, medicationsMeta()).
		With("Search", search).
		With("Form", form).
		With("FormAction", pathMedications).
		WithFieldErrors(fieldErrs)

	meds, err := h.SuperAdmin.ListMedications(r.Context(), search)
	if err != nil {
		msg, handled := h.backendFailed(w, r, "list-medications", err)
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
	b.With("Medications", meds)
	h.renderPage(w, r, status, b.Build())
}

// CreateMedication adds a medication to the catalogue.
func (h *UIHandlers) CreateMedication(w http.ResponseWriter, r *http.Request) {
	if err := parseForm(w, r); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	fe := formErrors{}
	req := medicationFromForm(r, fe)
	schema := mutation.MedicationSchema()

	if len(fe) > 0 {
		errs := fe.merge(schemaFields[model.CreateMedicationRequest](schema, req))
		h.renderMedications(w, r, formStatus(r), req, errs, mutation.MsgInvalid)
		return
	}

	create := mutation.New[model.CreateMedicationRequest, model.CreateMedicationRequest]("create-medication", schema, h.SuperAdmin.CreateMedication)
	create.Logger = h.logger()
	res := create.Run(r.Context(), req)
	if res.Success {
		navigate(w, r, withNotice(pathMedications, noticeMedicationCreated))
		return
	}
	if redirectIfNavigated(w, r) {
		return
	}
	h.renderMedications(w, r, failureStatus(r, res.Err), req, res.Fields, res.Message)
}
