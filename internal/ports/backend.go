package ports

import (
	"context"

	"github.com/medipharm/medipharm-console/internal/domain/model"
)

// SuperAdminAPI is the platform-wide administration surface of the backend.
type SuperAdminAPI interface {
	Stats(ctx context.Context) (model.DashboardStats, error)
	Analytics(ctx context.Context, days int) (model.AnalyticsData, error)
	ListPharmacies(ctx context.Context, opts model.PharmacyListOptions) ([]model.Pharmacy, error)
	CreatePharmacy(ctx context.Context, req model.CreatePharmacyRequest) (model.Pharmacy, error)
	VerifyPharmacy(ctx context.Context, id string) error
	TogglePharmacyStatus(ctx context.Context, id string) error
	ListMedications(ctx context.Context, search string) ([]model.Medication, error)
	CreateMedication(ctx context.Context, req model.CreateMedicationRequest) (model.CreateMedicationRequest, error)
}

// PharmacyAdminAPI is the per-pharmacy administration surface of the backend.
type PharmacyAdminAPI interface {
	Stats(ctx context.Context) (model.DashboardStats, error)
	Analytics(ctx context.Context, days int) (model.AnalyticsData, error)
	ListInventory(ctx context.Context, opts model.InventoryListOptions) ([]model.Inventory, error)
	AddInventory(ctx context.Context, req model.AddInventoryRequest) (model.AddInventoryRequest, error)
	AddMedications(ctx context.Context, reqs []model.CreateMedicationRequest) ([]model.CreateMedicationRequest, error)
}
