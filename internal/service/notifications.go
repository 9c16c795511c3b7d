package service

import (
	"fmt"

	"github.com/juju/clock"
	"go.uber.org/zap"

	"itam-service/internal/models"
	"itam-service/internal/repository"
)

const latestNotifications = 5

// Related record kinds a notification can point at.
const (
	RelatedAsset     = "asset"
	RelatedContract  = "contract"
	RelatedLicense   = "license"
	RelatedInventory = "inventory"
)

var notificationSearchFields = []string{"title", "message"}

// NotificationService is the notification centre, including the sweep
// that turns upcoming expiries into notifications.
type NotificationService struct {
	notifications *repository.NotificationRepository
	assets        *repository.AssetRepository
	contracts     *repository.ContractRepository
	software      *repository.SoftwareRepository
	clock         clock.Clock
	warningDays   int
	log           *zap.Logger
}

func NewNotificationService(notifications *repository.NotificationRepository, assets *repository.AssetRepository, contracts *repository.ContractRepository, software *repository.SoftwareRepository, clk clock.Clock, warningDays int, log *zap.Logger) *NotificationService {
	return &NotificationService{
		notifications: notifications,
		assets:        assets,
		contracts:     contracts,
		software:      software,
		clock:         clk,
		warningDays:   warningDays,
		log:           log,
	}
}

// ListNotifications returns notifications newest first.
func (s *NotificationService) ListNotifications(f models.NotificationFilters) []models.Notification {
	data := repository.Search(s.notifications.Newest(), f.Keyword, notificationSearchFields...)
	filters := map[string]string{
		"type":     string(f.Type),
		"priority": string(f.Priority),
	}
	if f.UnreadOnly {
		filters["is_read"] = "false"
	}
	return repository.FilterBy(data, filters)
}

func (s *NotificationService) GetNotification(id int) (models.Notification, bool) {
	return s.notifications.GetByID(id)
}

// CreateNotification stores an unread notification. Priority defaults to
// medium.
func (s *NotificationService) CreateNotification(req models.CreateNotificationRequest) (models.Notification, error) {
	priority := req.Priority
	if priority == "" {
		priority = models.PriorityMedium
	}
	n, err := s.notifications.Create(models.Notification{
		Type:        req.Type,
		Priority:    priority,
		Title:       req.Title,
		Message:     req.Message,
		RelatedType: req.RelatedType,
		RelatedID:   req.RelatedID,
	})
	if err != nil {
		return models.Notification{}, err
	}
	s.log.Debug("notification created", zap.Int("id", n.ID), zap.String("type", string(n.Type)))
	return n, nil
}

func (s *NotificationService) MarkAsRead(id int) (models.Notification, bool) {
	return s.notifications.MarkAsRead(id)
}

func (s *NotificationService) MarkAllAsRead() int {
	n := s.notifications.MarkAllAsRead()
	s.log.Info("notifications marked read", zap.Int("count", n))
	return n
}

func (s *NotificationService) DeleteNotification(id int) bool {
	return s.notifications.Delete(id)
}

// DeleteRead removes read notifications and returns how many went.
func (s *NotificationService) DeleteRead() int {
	n := s.notifications.DeleteRead()
	s.log.Info("read notifications deleted", zap.Int("count", n))
	return n
}

func (s *NotificationService) GetUnreadCount() int {
	return s.notifications.UnreadCount()
}

func (s *NotificationService) GetSummary() models.NotificationSummary {
	newest := s.notifications.Newest()
	latest := newest
	if len(latest) > latestNotifications {
		latest = latest[:latestNotifications]
	}
	return models.NotificationSummary{
		Total:      len(newest),
		Unread:     s.notifications.UnreadCount(),
		ByType:     s.notifications.GetTypeDistribution(),
		ByPriority: s.notifications.GetPriorityDistribution(),
		Latest:     latest,
	}
}

// GenerateExpiryNotifications creates one notification per warranty,
// contract and license ending within the warning window. A record that
// already has a notification of the same type is skipped. It returns the
// number created.
func (s *NotificationService) GenerateExpiryNotifications() int {
	now := s.clock.Now()
	created := 0

	for _, a := range s.assets.GetExpiringWarranties(now, s.warningDays) {
		left := models.DaysBetween(now, *a.WarrantyExpiry)
		if s.notify(models.NotificationWarrantyExpiry, RelatedAsset, a.ID, left,
			"Warranty expiring: "+a.Name,
			fmt.Sprintf("The warranty of %s (%s) ends in %d days on %s.",
				a.Name, a.AssetNumber, left, a.WarrantyExpiry.Format(models.DateLayout))) {
			created++
		}
	}
	for _, c := range s.contracts.GetExpiring(now, s.warningDays) {
		left := c.DaysUntilEnd(now)
		if s.notify(models.NotificationContractExpiry, RelatedContract, c.ID, left,
			"Contract expiring: "+c.Title,
			fmt.Sprintf("Contract %s ends in %d days on %s.",
				c.ContractNumber, left, c.EndDate.Format(models.DateLayout))) {
			created++
		}
	}
	for _, l := range s.software.GetExpiringLicenses(now, s.warningDays) {
		left := models.DaysBetween(now, *l.ExpiryDate)
		name := l.LicenseKey
		if sw, ok := s.software.GetByID(l.SoftwareID); ok {
			name = sw.Name
		}
		if s.notify(models.NotificationLicenseExpiry, RelatedLicense, l.ID, left,
			"License expiring: "+name,
			fmt.Sprintf("License %s for %s ends in %d days on %s.",
				l.LicenseKey, name, left, l.ExpiryDate.Format(models.DateLayout))) {
			created++
		}
	}

	s.log.Info("expiry notifications generated", zap.Int("created", created), zap.Int("window_days", s.warningDays))
	return created
}

func (s *NotificationService) notify(t models.NotificationType, relatedType string, relatedID, daysLeft int, title, message string) bool {
	if s.notifications.ExistsFor(t, relatedType, relatedID) {
		return false
	}
	priority := models.PriorityMedium
	if daysLeft <= 7 {
		priority = models.PriorityHigh
	}
	id := relatedID
	_, err := s.notifications.Create(models.Notification{
		Type:        t,
		Priority:    priority,
		Title:       title,
		Message:     message,
		RelatedType: relatedType,
		RelatedID:   &id,
	})
	if err != nil {
		s.log.Warn("expiry notification not created", zap.String("type", string(t)),
			zap.Int("related_id", relatedID), zap.Error(err))
		return false
	}
	return true
}
