package viewmodel

import domainauth "github.com/medipharm/medipharm-console/internal/domain/auth"

// NavItem is one sidebar entry.
type NavItem struct {
	Label  string
	Path   string
	Active bool
}

var (
	superAdminNav = []NavItem{
		{Label: "Dashboard", Path: "/superadmin"},
		{Label: "Pharmacies", Path: "/pharmacies"},
		{Label: "Medications", Path: "/medications"},
	}
	pharmacyAdminNav = []NavItem{
		{Label: "Dashboard", Path: "/admin"},
		{Label: "Inventory", Path: "/inventory"},
		{Label: "Pharmacy", Path: "/pharmacy"},
		{Label: "Medication", Path: "/medication"},
	}
)

// NavFor returns the sidebar of role with the entry for currentPath marked
// active. Roles without a console section get no entries.
func NavFor(role domainauth.Role, currentPath string) []NavItem {
	var src []NavItem
	switch role {
	case domainauth.RoleSuperAdmin:
		src = superAdminNav
	case domainauth.RolePharmacyAdmin:
		src = pharmacyAdminNav
	default:
		return nil
	}
	items := make([]NavItem, len(src))
	for i, it := range src {
		it.Active = it.Path == currentPath
		items[i] = it
	}
	return items
}
