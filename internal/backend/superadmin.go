package backend

import (
	"context"
	"fmt"
	"net/url"

	"github.com/medipharm/medipharm-console/internal/domain/model"
	"github.com/medipharm/medipharm-console/internal/ports"
)

var _ ports.SuperAdminAPI = (*SuperAdminAPI)(nil)

// SuperAdminAPI is the platform-wide administration client.
type SuperAdminAPI struct {
	client Doer
}

// NewSuperAdminAPI creates a SuperAdminAPI over client.
func NewSuperAdminAPI(client Doer) *SuperAdminAPI {
	return &SuperAdminAPI{client: client}
}

func (a *SuperAdminAPI) Stats(ctx context.Context) (model.DashboardStats, error) {
	var out model.DashboardStats
	err := a.client.Get(ctx, superAdminRoot+"/dashboard_stats", nil, &out)
	return out, err
}

// Analytics fetches analytics for the last days days (DefaultAnalyticsDays when <= 0).
func (a *SuperAdminAPI) Analytics(ctx context.Context, days int) (model.AnalyticsData, error) {
	var out model.AnalyticsData
	err := a.client.Get(ctx, superAdminRoot+"/dashboard_analytics", analyticsQuery(days), &out)
	return out, err
}

func (a *SuperAdminAPI) ListPharmacies(ctx context.Context, opts model.PharmacyListOptions) ([]model.Pharmacy, error) {
	q := params{}.
		set("search", opts.Search).
		set("city", opts.City).
		set("status", string(opts.Status))

	var out []model.Pharmacy
	if err := a.client.Get(ctx, superAdminRoot+"/pharmacies", q.values(), &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (a *SuperAdminAPI) CreatePharmacy(ctx context.Context, req model.CreatePharmacyRequest) (model.Pharmacy, error) {
	var out model.Pharmacy
	err := a.client.Post(ctx, superAdminRoot+"/pharmacies", req, &out)
	return out, err
}

func (a *SuperAdminAPI) VerifyPharmacy(ctx context.Context, id string) error {
	return a.client.Patch(ctx, pharmacyPath(id, "verify"), nil, nil)
}

func (a *SuperAdminAPI) TogglePharmacyStatus(ctx context.Context, id string) error {
	return a.client.Patch(ctx, pharmacyPath(id, "status"), nil, nil)
}

func (a *SuperAdminAPI) ListMedications(ctx context.Context, search string) ([]model.Medication, error) {
	var out []model.Medication
	if err := a.client.Get(ctx, superAdminRoot+"/medications", params{}.set("search", search).values(), &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (a *SuperAdminAPI) CreateMedication(ctx context.Context, req model.CreateMedicationRequest) (model.CreateMedicationRequest, error) {
	var out model.CreateMedicationRequest
	err := a.client.Post(ctx, superAdminRoot+"/medications", req, &out)
	return out, err
}

func pharmacyPath(id, action string) string {
	return fmt.Sprintf("%s/pharmacies/%s/%s", superAdminRoot, url.PathEscape(id), action)
}

func analyticsQuery(days int) url.Values {
	if days <= 0 {
		days = model.DefaultAnalyticsDays
	}
	return params{}.number("days", days).values()
}
