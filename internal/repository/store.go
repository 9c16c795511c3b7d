package repository

import (
	"github.com/juju/clock"

	"itam-service/internal/sampledata"
)

// Store bundles every repository of the process. It is the single owner
// of the in-memory state; build one and pass it to the services.
type Store struct {
	Settings      *SettingsRepository
	Assets        *AssetRepository
	Contracts     *ContractRepository
	Inventory     *InventoryRepository
	Notifications *NotificationRepository
	Partners      *PartnerRepository
	Software      *SoftwareRepository
}

func NewStore(clk clock.Clock, data *sampledata.Set) *Store {
	settings := NewSettingsRepository(clk, data.Settings)
	return &Store{
		Settings:      settings,
		Assets:        NewAssetRepository(clk, data.Assets, settings),
		Contracts:     NewContractRepository(clk, data.Contracts),
		Inventory:     NewInventoryRepository(clk, data.Inventory),
		Notifications: NewNotificationRepository(clk, data.Notifications),
		Partners:      NewPartnerRepository(clk, data.Partners),
		Software:      NewSoftwareRepository(clk, data.Software),
	}
}

// Reset reloads every repository from the sample data.
func (s *Store) Reset() {
	s.Settings.Reset()
	s.Assets.Reset()
	s.Contracts.Reset()
	s.Inventory.Reset()
	s.Notifications.Reset()
	s.Partners.Reset()
	s.Software.Reset()
}
