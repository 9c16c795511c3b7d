package service

import (
	"testing"
	"time"

	"github.com/juju/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"itam-service/internal/models"
)

func TestGenerateExpiryNotifications(t *testing.T) {
	f := newFixture(t)
	unread := f.Notifications.GetUnreadCount()

	assert.Equal(t, 2, f.Notifications.GenerateExpiryNotifications())
	assert.Equal(t, unread+2, f.Notifications.GetUnreadCount())
	assert.Equal(t, 0, f.Notifications.GenerateExpiryNotifications())

	warranty := f.Notifications.ListNotifications(models.NotificationFilters{Type: models.NotificationWarrantyExpiry})
	var forAsset2 []models.Notification
	for _, n := range warranty {
		if n.RelatedID != nil && *n.RelatedID == 2 {
			forAsset2 = append(forAsset2, n)
		}
	}
	assert.Len(t, forAsset2, 1)
}

func TestExpiryNotificationPriority(t *testing.T) {
	f := newFixture(t)
	f.store.Notifications.DeleteWhere(func(models.Notification) bool { return true })

	// 2024-06-25, five days before two contracts and a license end
	f.clock.Advance(24 * 24 * time.Hour)
	created := f.Notifications.GenerateExpiryNotifications()
	require.Equal(t, 3, created)

	for _, n := range f.Notifications.ListNotifications(models.NotificationFilters{}) {
		assert.Equal(t, models.PriorityHigh, n.Priority, n.Title)
	}
}

func TestMarkAsReadKeepsFirstReadTime(t *testing.T) {
	f := newFixture(t)
	unread := f.Notifications.ListNotifications(models.NotificationFilters{UnreadOnly: true})
	require.NotEmpty(t, unread)
	id := unread[0].ID

	n, ok := f.Notifications.MarkAsRead(id)
	require.True(t, ok)
	require.NotNil(t, n.ReadAt)
	first := *n.ReadAt

	f.clock.Advance(time.Hour)
	n, ok = f.Notifications.MarkAsRead(id)
	require.True(t, ok)
	assert.True(t, first.Equal(*n.ReadAt))

	_, ok = f.Notifications.MarkAsRead(999)
	assert.False(t, ok)
}

func TestMarkAllAsReadAndDeleteRead(t *testing.T) {
	f := newFixture(t)
	total := len(f.Notifications.ListNotifications(models.NotificationFilters{}))
	unread := f.Notifications.GetUnreadCount()

	assert.Equal(t, unread, f.Notifications.MarkAllAsRead())
	assert.Equal(t, 0, f.Notifications.GetUnreadCount())
	assert.Equal(t, 0, f.Notifications.MarkAllAsRead())

	assert.Equal(t, total, f.Notifications.DeleteRead())
	assert.Empty(t, f.Notifications.ListNotifications(models.NotificationFilters{}))
}

func TestCreateNotification(t *testing.T) {
	f := newFixture(t)

	n, err := f.Notifications.CreateNotification(models.CreateNotificationRequest{
		Type:    models.NotificationSystem,
		Title:   "Maintenance window",
		Message: "The register is read-only on Saturday night",
	})
	require.NoError(t, err)
	assert.Equal(t, models.PriorityMedium, n.Priority)
	assert.False(t, n.IsRead)

	found := f.Notifications.ListNotifications(models.NotificationFilters{Keyword: "saturday night"})
	require.Len(t, found, 1)
	assert.Equal(t, n.ID, found[0].ID)

	summary := f.Notifications.GetSummary()
	assert.LessOrEqual(t, len(summary.Latest), 5)
	assert.Equal(t, n.ID, summary.Latest[0].ID)
	assert.True(t, f.Notifications.DeleteNotification(n.ID))
}

func TestRefreshContractStatuses(t *testing.T) {
	f := newFixture(t)

	assert.Equal(t, 1, f.Contracts.RefreshStatuses())
	c, _ := f.Contracts.GetContract(3)
	assert.Equal(t, models.ContractStatusExpiring, c.Status)
	assert.Equal(t, 0, f.Contracts.RefreshStatuses())
}

func TestRefreshContractStatusesRollsAutoRenew(t *testing.T) {
	f := newFixture(t)
	f.clock.Advance(34 * 24 * time.Hour) // 2024-07-05

	assert.Equal(t, 2, f.Contracts.RefreshStatuses())

	renewed, _ := f.Contracts.GetContract(3)
	assert.Equal(t, models.ContractStatusActive, renewed.Status)
	assert.Equal(t, time.Date(2025, time.June, 30, 0, 0, 0, 0, time.UTC), renewed.EndDate)

	lapsed, _ := f.Contracts.GetContract(2)
	assert.Equal(t, models.ContractStatusExpired, lapsed.Status)
}

func TestCreateContractDerivesStatus(t *testing.T) {
	f := newFixture(t)

	c, err := f.Contracts.CreateContract(models.CreateContractRequest{
		PartnerID:      2,
		ContractNumber: "CT-2024-020",
		Title:          "Helpdesk overflow",
		Type:           models.ContractTypeService,
		StartDate:      time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC),
		EndDate:        time.Date(2024, time.June, 21, 0, 0, 0, 0, time.UTC),
		Amount:         yen(t, "300000"),
	})
	require.NoError(t, err)
	assert.Equal(t, models.ContractStatusExpiring, c.Status)

	expiring := f.Contracts.GetExpiringContracts(0)
	var numbers []string
	for _, e := range expiring {
		numbers = append(numbers, e.ContractNumber)
	}
	assert.Contains(t, numbers, "CT-2024-020")

	_, err = f.Contracts.CreateContract(models.CreateContractRequest{
		PartnerID:      99,
		ContractNumber: "CT-2024-021",
		Title:          "Orphan",
		Type:           models.ContractTypeService,
		StartDate:      testNow,
		EndDate:        testNow.AddDate(1, 0, 0),
	})
	assert.True(t, errors.Is(err, errors.NotFound), "got %v", err)
}

func TestContractStatistics(t *testing.T) {
	f := newFixture(t)

	stats := f.Contracts.GetContractStatistics()
	assert.Equal(t, 4, stats.Total)
	assertDecimal(t, "4044000", stats.LiveAmount)
	assert.Equal(t, 2, stats.ExpiringSoon)
}
