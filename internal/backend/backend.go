// Package backend implements the console's ports against the pharmacy REST API.
// Every call goes through gateway.Client so the session token is attached and
// 401 handling applies uniformly.
package backend

import (
	"context"
	"net/url"
	"strconv"

	"github.com/medipharm/medipharm-console/internal/gateway"
)

// Module roots of the backend API.
const (
	authRoot       = "/auth"
	superAdminRoot = "/superadmin"
	adminRoot      = "/admin"
)

// Doer is the subset of gateway.Client the backend adapters need.
type Doer interface {
	Get(ctx context.Context, path string, query url.Values, out any) error
	Post(ctx context.Context, path string, body, out any) error
	Patch(ctx context.Context, path string, body, out any) error
}

var _ Doer = (*gateway.Client)(nil)

// params collects query parameters, skipping empty values.
type params url.Values

func (p params) set(key, value string) params {
	if value != "" {
		url.Values(p).Set(key, value)
	}
	return p
}

func (p params) flag(key string, on bool) params {
	if on {
		url.Values(p).Set(key, "true")
	}
	return p
}

func (p params) number(key string, v int) params {
	if v > 0 {
		url.Values(p).Set(key, strconv.Itoa(v))
	}
	return p
}

func (p params) values() url.Values {
	if len(p) == 0 {
		return nil
	}
	return url.Values(p)
}
