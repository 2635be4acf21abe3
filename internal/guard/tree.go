package guard

import (
	"net/http"

	domainauth "github.com/medipharm/medipharm-console/internal/domain/auth"
)

// RouteNode is one entry of the declarative route tree. A node with
// RequireAuth or Roles guards itself and every descendant; children are only
// evaluated once all ancestor guards render.
type RouteNode struct {
	// Pattern is a net/http ServeMux pattern. Grouping nodes leave it empty.
	Pattern     string
	RequireAuth bool
	Roles       []domainauth.Role
	// API switches the node's guard to JSON responses.
	API      bool
	Handler  http.Handler
	Children []RouteNode
}

// Registrar is satisfied by *http.ServeMux.
type Registrar interface {
	Handle(pattern string, handler http.Handler)
}

// Mount registers every node with a pattern and handler on mux, wrapped with
// the guards of the node and all its ancestors, outermost first.
func Mount(mux Registrar, nodes []RouteNode, base Options) {
	mount(mux, nodes, base, nil)
}

func mount(mux Registrar, nodes []RouteNode, base Options, chain []func(http.Handler) http.Handler) {
	for _, n := range nodes {
		c := chain
		if n.RequireAuth || len(n.Roles) > 0 {
			opts := base
			opts.Roles = n.Roles
			opts.API = base.API || n.API
			c = append(c[:len(c):len(c)], Middleware(opts))
		}
		if n.Pattern != "" && n.Handler != nil {
			var h http.Handler = n.Handler
			for i := len(c) - 1; i >= 0; i-- {
				h = c[i](h)
			}
			mux.Handle(n.Pattern, h)
		}
		if len(n.Children) > 0 {
			mount(mux, n.Children, base, c)
		}
	}
}
