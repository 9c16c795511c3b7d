package repository

import (
	"sort"

	"github.com/juju/clock"

	"itam-service/internal/models"
	"itam-service/internal/sampledata"
)

var (
	notificationTypes = enumSet(models.NotificationTypes)
	priorities        = enumSet(models.Priorities)
)

type NotificationRepository struct {
	*Base[models.Notification, *models.Notification]
}

func NewNotificationRepository(clk clock.Clock, data sampledata.NotificationProvider) *NotificationRepository {
	return &NotificationRepository{
		Base: NewBase[models.Notification](clk, Hooks[models.Notification]{
			Seed:     data.Notifications,
			Validate: validateNotification,
		}),
	}
}

func validateNotification(n models.Notification, isUpdate bool) error {
	if !isUpdate {
		if err := firstErr(
			required("notification type", string(n.Type)),
			required("notification title", n.Title),
			required("notification message", n.Message),
		); err != nil {
			return err
		}
	}
	return firstErr(
		oneOf("notification type", string(n.Type), notificationTypes),
		oneOf("priority", string(n.Priority), priorities),
	)
}

// Newest returns every notification, most recent first.
func (r *NotificationRepository) Newest() []models.Notification {
	out := r.GetAll()
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out
}

func (r *NotificationRepository) GetUnread() []models.Notification {
	return Filter(r.Newest(), func(n models.Notification) bool { return !n.IsRead })
}

func (r *NotificationRepository) GetByType(t models.NotificationType) []models.Notification {
	return Filter(r.Newest(), func(n models.Notification) bool { return n.Type == t })
}

func (r *NotificationRepository) GetByPriority(p models.Priority) []models.Notification {
	return Filter(r.Newest(), func(n models.Notification) bool { return n.Priority == p })
}

// MarkAsRead flags one notification as read. read_at keeps the first time
// it was read.
func (r *NotificationRepository) MarkAsRead(id int) (models.Notification, bool) {
	now := r.Now()
	n, ok, _ := r.Update(id, func(n *models.Notification) {
		if n.IsRead {
			return
		}
		n.IsRead = true
		n.ReadAt = &now
	})
	return n, ok
}

// MarkAllAsRead flags every unread notification and returns how many changed.
func (r *NotificationRepository) MarkAllAsRead() int {
	count := 0
	for _, n := range r.Find(func(n models.Notification) bool { return !n.IsRead }) {
		if _, ok := r.MarkAsRead(n.ID); ok {
			count++
		}
	}
	return count
}

// DeleteRead removes every read notification.
func (r *NotificationRepository) DeleteRead() int {
	return r.DeleteWhere(func(n models.Notification) bool { return n.IsRead })
}

func (r *NotificationRepository) UnreadCount() int {
	return len(r.Find(func(n models.Notification) bool { return !n.IsRead }))
}

// ExistsFor reports whether a notification of type t already points at the
// related record.
func (r *NotificationRepository) ExistsFor(t models.NotificationType, relatedType string, relatedID int) bool {
	return r.Exists(func(n models.Notification) bool {
		return n.Type == t && n.RelatedType == relatedType && n.RelatedID != nil && *n.RelatedID == relatedID
	})
}

func (r *NotificationRepository) GetTypeDistribution() map[string]int {
	return Distribution(r.GetAll(), func(n models.Notification) string { return string(n.Type) },
		enumKeys(models.NotificationTypes)...)
}

func (r *NotificationRepository) GetPriorityDistribution() map[string]int {
	return Distribution(r.GetAll(), func(n models.Notification) string { return string(n.Priority) },
		enumKeys(models.Priorities)...)
}
