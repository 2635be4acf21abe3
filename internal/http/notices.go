package httpx

import (
	"net/http"
	"net/url"
)

// Notice codes carried in ?notice= after a successful form post.
const (
	noticePharmacyCreated   = "pharmacy-created"
	noticePharmacyVerified  = "pharmacy-verified"
	noticePharmacyToggled   = "pharmacy-toggled"
	noticeMedicationCreated = "medication-created"
	noticeInventoryAdded    = "inventory-added"
	noticeMedicationsAdded  = "medications-added"
)

var noticeMessages = map[string]string{
	noticePharmacyCreated:   "Pharmacy created.",
	noticePharmacyVerified:  "Pharmacy verified.",
	noticePharmacyToggled:   "Pharmacy status updated.",
	noticeMedicationCreated: "Medication created.",
	noticeInventoryAdded:    "Stock added to the inventory.",
	noticeMedicationsAdded:  "Medication added to the inventory.",
}

// noticeFrom maps the request's notice code to its message. Unknown codes
// are ignored so the query string cannot inject text into the page.
func noticeFrom(r *http.Request) string {
	return noticeMessages[r.URL.Query().Get("notice")]
}

func withNotice(path, code string) string {
	return path + "?" + url.Values{"notice": {code}}.Encode()
}
