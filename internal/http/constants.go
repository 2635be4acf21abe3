package httpx

// CurrentPage constants identify pages in templates and navigation.
const (
	PageLogin               = "login"
	PageSuperAdminDashboard = "superadmin-dashboard"
	PagePharmacies          = "pharmacies"
	PageMedications         = "medications"
	PageAdminDashboard      = "admin-dashboard"
	PageInventory           = "inventory"
	PagePharmacy            = "pharmacy"
	PageMedication          = "medication"
	PageNotAuthorized       = "not-authorized"
	PageNotFound            = "not-found"
)

// Console paths referenced by more than one handler.
const (
	PathLogin         = "/login"
	PathNotAuthorized = "/not-authorized"
	PathSuperAdmin    = "/superadmin"
	PathAdmin         = "/admin"
)

// Template paths used for loading templates from disk.
const (
	TemplatePathFromRoot = "frontend/templates"       // From project root
	TemplatePathFromTest = "../../frontend/templates" // From internal/http test files
)

// Theme preference values and the key they are persisted under.
const (
	ThemeLight  = "light"
	ThemeDark   = "dark"
	ThemeSystem = "system"

	themeKey = "theme"
)

// Themes lists the accepted theme values in display order.
func Themes() []string { return []string{ThemeLight, ThemeDark, ThemeSystem} }

func validTheme(v string) bool {
	switch v {
	case ThemeLight, ThemeDark, ThemeSystem:
		return true
	default:
		return false
	}
}

//nolint:gochecknoglobals // static read-only lookup for templates
var contentTemplates = map[string]string{
	PageSuperAdminDashboard: "superadmin-dashboard-content",
	PagePharmacies:          "pharmacies-content",
	PageMedications:         "medications-content",
	PageAdminDashboard:      "admin-dashboard-content",
	PageInventory:           "inventory-content",
	PagePharmacy:            "pharmacy-content",
	PageMedication:          "medication-content",
	PageNotAuthorized:       "not-authorized-content",
	PageNotFound:            "not-found-content",
}

// ContentTemplateFor returns the content template for the given CurrentPage.
// Unknown pages fall back to the not-found content.
func ContentTemplateFor(currentPage string) string {
	if name, ok := contentTemplates[currentPage]; ok {
		return name
	}
	return "not-found-content"
}
