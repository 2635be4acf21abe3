package backend

import (
	"context"

	"github.com/medipharm/medipharm-console/internal/domain/model"
	"github.com/medipharm/medipharm-console/internal/ports"
)

var _ ports.PharmacyAdminAPI = (*PharmacyAdminAPI)(nil)

// PharmacyAdminAPI is the client for a pharmacy administrator's own pharmacy.
// The backend scopes every call to the pharmacy of the token's owner.
type PharmacyAdminAPI struct {
	client Doer
}

// NewPharmacyAdminAPI creates a PharmacyAdminAPI over client.
func NewPharmacyAdminAPI(client Doer) *PharmacyAdminAPI {
	return &PharmacyAdminAPI{client: client}
}

func (a *PharmacyAdminAPI) Stats(ctx context.Context) (model.DashboardStats, error) {
	var out model.DashboardStats
	err := a.client.Get(ctx, adminRoot+"/dashboard_stats", nil, &out)
	return out, err
}

func (a *PharmacyAdminAPI) Analytics(ctx context.Context, days int) (model.AnalyticsData, error) {
	var out model.AnalyticsData
	err := a.client.Get(ctx, adminRoot+"/dashboard_analytics", analyticsQuery(days), &out)
	return out, err
}

func (a *PharmacyAdminAPI) ListInventory(ctx context.Context, opts model.InventoryListOptions) ([]model.Inventory, error) {
	q := params{}.set("search", opts.Search).flag("lowStock", opts.LowStock)

	var out []model.Inventory
	if err := a.client.Get(ctx, adminRoot+"/inventory", q.values(), &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (a *PharmacyAdminAPI) AddInventory(ctx context.Context, req model.AddInventoryRequest) (model.AddInventoryRequest, error) {
	var out model.AddInventoryRequest
	err := a.client.Post(ctx, adminRoot+"/inventory", req, &out)
	return out, err
}

// AddMedications imports a batch of medications into the caller's pharmacy.
func (a *PharmacyAdminAPI) AddMedications(ctx context.Context, reqs []model.CreateMedicationRequest) ([]model.CreateMedicationRequest, error) {
	var out []model.CreateMedicationRequest
	if err := a.client.Post(ctx, adminRoot+"/bulk/medication", reqs, &out); err != nil {
		return nil, err
	}
	return out, nil
}
