package httpx

import (
	"context"
	"net/http"

	"golang.org/x/sync/errgroup"

	"github.com/medipharm/medipharm-console/internal/domain/model"
	"github.com/medipharm/medipharm-console/internal/http/ui/viewmodel"
	"github.com/medipharm/medipharm-console/internal/session"
)

// Index sends the operator to the home page of their role.
func (h *UIHandlers) Index(w http.ResponseWriter, r *http.Request) {
	sess, ok := session.FromContext(r.Context())
	if !ok {
		navigate(w, r, PathLogin)
		return
	}
	user, ok := sess.Provider.User()
	if !ok {
		navigate(w, r, PathLogin)
		return
	}
	navigate(w, r, homeFor(user.Role))
}

// dashboardSource is the slice of a backend surface a dashboard reads.
type dashboardSource interface {
	Stats(ctx context.Context) (model.DashboardStats, error)
	Analytics(ctx context.Context, days int) (model.AnalyticsData, error)
}

// loadDashboard fetches stats and analytics concurrently.
func loadDashboard(ctx context.Context, src dashboardSource, days int) (model.DashboardStats, model.AnalyticsData, error) {
	var (
		stats     model.DashboardStats
		analytics model.AnalyticsData
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		stats, err = src.Stats(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		analytics, err = src.Analytics(gctx, days)
		return err
	})
	if err := g.Wait(); err != nil {
		return model.DashboardStats{}, model.AnalyticsData{}, err
	}
	return stats, analytics, nil
}

// SuperAdminDashboard renders platform-wide statistics.
func (h *UIHandlers) SuperAdminDashboard(w http.ResponseWriter, r *http.Request) {
	h.dashboard(w, r, PageMeta{
		Title:       "Dashboard · Medipharm",
		PageTitle:   "Platform overview",
		CurrentPage: PageSuperAdminDashboard,
	}, h.SuperAdmin, viewmodel.SuperAdminCards)
}

// AdminDashboard renders statistics for the operator's pharmacy.
func (h *UIHandlers) AdminDashboard(w http.ResponseWriter, r *http.Request) {
	h.dashboard(w, r, PageMeta{
		Title:       "Dashboard · Medipharm",
		PageTitle:   "Pharmacy overview",
		CurrentPage: PageAdminDashboard,
	}, h.PharmacyAdmin, viewmodel.PharmacyAdminCards)
}

func (h *UIHandlers) dashboard(
	w http.ResponseWriter,
	r *http.Request,
	meta PageMeta,
	src dashboardSource,
	cards func(model.DashboardStats) []viewmodel.StatCard,
) {
	b := h.NewTemplateData(r, meta).With("Days", model.DefaultAnalyticsDays)
	stats, analytics, err := loadDashboard(r.Context(), src, model.DefaultAnalyticsDays)
	if err != nil {
		msg, handled := h.backendFailed(w, r, meta.CurrentPage, err)
		if handled {
			return
		}
		b.WithError(msg).With("Stats", []viewmodel.StatCard(nil)).With("Analytics", model.AnalyticsData{})
		h.renderPage(w, r, http.StatusOK, b.Build())
		return
	}
	b.With("Stats", cards(stats)).With("Analytics", analytics)
	h.renderPage(w, r, http.StatusOK, b.Build())
}
