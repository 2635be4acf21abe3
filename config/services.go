package config

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ServiceMode represents the services a console process can run.
type ServiceMode string

const (
	// ServiceModeHTTP runs the console HTTP server.
	ServiceModeHTTP ServiceMode = "http"
	// ServiceModeSweeper periodically deletes expired session rows
	// (SESSION_BACKEND=postgres only; Redis expires keys itself).
	ServiceModeSweeper ServiceMode = "sweeper"
)

// ValidServiceModes returns all valid service mode names.
func ValidServiceModes() []ServiceMode {
	return []ServiceMode{ServiceModeHTTP, ServiceModeSweeper}
}

// ParseServices parses a comma-delimited string of service names and returns the enabled services.
func ParseServices(servicesStr string) (map[ServiceMode]bool, error) {
	services := make(map[ServiceMode]bool)

	if strings.TrimSpace(servicesStr) == "" {
		return services, errors.New("at least one service must be specified")
	}

	for _, part := range strings.Split(servicesStr, ",") {
		name := strings.TrimSpace(part)
		if name == "" {
			continue
		}
		mode := ServiceMode(name)
		switch mode {
		case ServiceModeHTTP, ServiceModeSweeper:
			services[mode] = true
		default:
			return nil, fmt.Errorf("invalid service name: %q (valid options: http, sweeper)", name)
		}
	}

	if len(services) == 0 {
		return nil, errors.New("at least one valid service must be specified")
	}
	return services, nil
}

// SweeperConfig controls the expired-session sweeper.
type SweeperConfig struct {
	Interval time.Duration `env:"SWEEPER_INTERVAL" envDefault:"10m"`
}

// Sanitize enforces a minimum interval to keep database load low.
func (s *SweeperConfig) Sanitize() {
	if s.Interval < time.Minute {
		s.Interval = time.Minute
	}
}
