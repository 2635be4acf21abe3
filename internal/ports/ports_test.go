package ports_test

import (
	"testing"

	"github.com/medipharm/medipharm-console/internal/adapters/memory"
	"github.com/medipharm/medipharm-console/internal/mocks"
	authmocks "github.com/medipharm/medipharm-console/internal/mocks/auth"
	"github.com/medipharm/medipharm-console/internal/ports"
)

// This test only verifies that our mocks conform to the ports at compile time.
func TestMocksImplementPorts(t *testing.T) {
	t.Helper()

	var _ ports.AuthAPI = (*mocks.MockAuthAPI)(nil)
	var _ ports.AuthAPI = (*authmocks.StubAuthAPI)(nil)
	var _ ports.KeyValueStore = (*mocks.MockKeyValueStore)(nil)
	var _ ports.KeyValueStore = (*memory.KVStore)(nil)
	var _ ports.SuperAdminAPI = (*mocks.MockSuperAdminAPI)(nil)
	var _ ports.PharmacyAdminAPI = (*mocks.MockPharmacyAdminAPI)(nil)
}
