package viewmodel

import (
	"strconv"

	"github.com/medipharm/medipharm-console/internal/domain/model"
)

// StatCard is one headline counter on a dashboard.
type StatCard struct {
	Title string
	Value int
	Hint  string
}

// SuperAdminCards lays out the platform-wide counters.
func SuperAdminCards(s model.DashboardStats) []StatCard {
	return []StatCard{
		{Title: "Pharmacies", Value: s.TotalPharmacies, Hint: activeHint(s.ActivePharmacies)},
		{Title: "Medications", Value: s.TotalMedications},
		{Title: "Users", Value: s.TotalUsers, Hint: premiumHint(s.PremiumUsers)},
		{Title: "Searches today", Value: s.SearchesToday},
	}
}

// PharmacyAdminCards lays out the counters of one pharmacy.
func PharmacyAdminCards(s model.DashboardStats) []StatCard {
	return []StatCard{
		{Title: "Medications", Value: s.TotalMedications},
		{Title: "Searches today", Value: s.SearchesToday},
	}
}

func activeHint(n int) string {
	if n == 0 {
		return ""
	}
	return strconv.Itoa(n) + " active"
}

func premiumHint(n int) string {
	if n == 0 {
		return ""
	}
	return strconv.Itoa(n) + " premium"
}
