package httpx

import "net/http"

// NotAuthorized explains that the operator's role cannot open a page.
func (h *UIHandlers) NotAuthorized(w http.ResponseWriter, r *http.Request) {
	data := h.NewTemplateData(r, PageMeta{
		Title:       "Not authorized · Medipharm",
		PageTitle:   "Not authorized",
		CurrentPage: PageNotAuthorized,
	}).Build()
	h.renderPage(w, r, http.StatusForbidden, data)
}

// NotFound renders the 404 page inside the console layout.
func (h *UIHandlers) NotFound(w http.ResponseWriter, r *http.Request) {
	data := h.NewTemplateData(r, PageMeta{
		Title:       "Not found · Medipharm",
		PageTitle:   "Page not found",
		CurrentPage: PageNotFound,
	}).Build()
	h.renderPage(w, r, http.StatusNotFound, data)
}
