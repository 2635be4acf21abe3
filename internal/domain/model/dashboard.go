package model

// DefaultAnalyticsDays is the analytics window the dashboards request.
const DefaultAnalyticsDays = 7

// DashboardStats are the headline counters shown as stat cards.
type DashboardStats struct {
	TotalPharmacies  int `json:"totalPharmacies"`
	ActivePharmacies int `json:"activePharmacies"`
	TotalMedications int `json:"totalMedications"`
	TotalUsers       int `json:"totalUsers"`
	PremiumUsers     int `json:"premiumUsers"`
	SearchesToday    int `json:"searchesToday"`
}

// PharmacyPerformance summarizes one pharmacy's stock and visibility.
type PharmacyPerformance struct {
	Name              string  `json:"name"`
	TotalInventory    int     `json:"totalInventory"`
	AvailableItems    int     `json:"availableItems"`
	SearchImpressions int     `json:"searchImpressions"`
	AveragePrice      float64 `json:"averagePrice"`
}

// SearchTrend is the number of searches on a given day.
type SearchTrend struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// AnalyticsData backs the dashboard charts and tables.
type AnalyticsData struct {
	TopMedications      []Medication          `json:"topMedications"`
	PharmacyPerformance []PharmacyPerformance `json:"pharmacyPerformance"`
	SearchTrends        []SearchTrend         `json:"searchTrends"`
}

// MaxTrendCount returns the largest daily count, used to scale trend bars.
func (a AnalyticsData) MaxTrendCount() int {
	maxCount := 0
	for _, t := range a.SearchTrends {
		if t.Count > maxCount {
			maxCount = t.Count
		}
	}
	return maxCount
}
