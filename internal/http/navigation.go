package httpx

import (
	"context"
	"net/http"
	"sync"

	"github.com/medipharm/medipharm-console/internal/gateway"
)

// navCell records where the gateway asked to send the browser while a request
// was being served. Handlers consult it after a failed backend call.
type navCell struct {
	mu   sync.Mutex
	path string
}

type navCellKey struct{}

func withNavCell(ctx context.Context) (context.Context, *navCell) {
	cell := &navCell{}
	return context.WithValue(ctx, navCellKey{}, cell), cell
}

func navCellFrom(ctx context.Context) *navCell {
	cell, _ := ctx.Value(navCellKey{}).(*navCell)
	return cell
}

// requestNavigator is the gateway.Navigator the router registers: it writes
// the requested path into the cell of the request being served.
type requestNavigator struct{}

var _ gateway.Navigator = requestNavigator{}

func (requestNavigator) Navigate(ctx context.Context, path string) {
	if cell := navCellFrom(ctx); cell != nil {
		cell.mu.Lock()
		cell.path = path
		cell.mu.Unlock()
	}
}

// navigatedTo returns the path recorded for the request, if any.
func navigatedTo(ctx context.Context) (string, bool) {
	cell := navCellFrom(ctx)
	if cell == nil {
		return "", false
	}
	cell.mu.Lock()
	defer cell.mu.Unlock()
	return cell.path, cell.path != ""
}

// Navigation binds a fresh navigation cell to every request.
func Navigation(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, _ := withNavCell(r.Context())
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// redirectIfNavigated completes a navigation the gateway requested during the
// request and reports whether it did.
func redirectIfNavigated(w http.ResponseWriter, r *http.Request) bool {
	path, ok := navigatedTo(r.Context())
	if !ok {
		return false
	}
	navigate(w, r, path)
	return true
}
