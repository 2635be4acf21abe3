package model

// InventoryStatus is the stock level reported by the backend.
type InventoryStatus string

const (
	InventoryInStock    InventoryStatus = "in-stock"
	InventoryLowStock   InventoryStatus = "low-stock"
	InventoryOutOfStock InventoryStatus = "out-of-stock"
)

// Label returns the display label for the status.
func (s InventoryStatus) Label() string {
	switch s {
	case InventoryInStock:
		return "In stock"
	case InventoryLowStock:
		return "Low stock"
	case InventoryOutOfStock:
		return "Out of stock"
	default:
		return string(s)
	}
}

// Inventory is one medication line in a pharmacy's stock.
type Inventory struct {
	ID          int64           `json:"id"`
	Medication  Medication      `json:"medication"`
	Quantity    int             `json:"quantity"`
	Price       float64         `json:"price"`
	IsAvailable bool            `json:"isAvailable"`
	ExpiryDate  Moment          `json:"expiryDate"`
	LastUpdated Moment          `json:"lastUpdated"`
	Status      InventoryStatus `json:"status"`
}

// InventoryListOptions are the optional query filters for listing inventory.
type InventoryListOptions struct {
	Search   string
	LowStock bool
}

// AddInventoryRequest adds an existing medication to a pharmacy's stock.
type AddInventoryRequest struct {
	PharmacyID   int64    `json:"pharmacyId"         validate:"required,gt=0"`
	MedicationID int64    `json:"medicationId"       validate:"required,gt=0"`
	Quantity     *int     `json:"quantity,omitempty" validate:"omitempty,gte=0"`
	Price        *float64 `json:"price,omitempty"    validate:"omitempty,gte=0"`
	IsAvailable  bool     `json:"isAvailable"`
	ExpiryDate   string   `json:"expiryDate"         validate:"required,datetime=2006-01-02"`
}
