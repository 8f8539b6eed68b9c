package enums

import "fmt"

// NotificationType classifies in-app notifications.
type NotificationType string

const (
	NotificationTypeManagerRequest  NotificationType = "manager_request"
	NotificationTypeManagerApproved NotificationType = "manager_approved"
	NotificationTypeManagerRejected NotificationType = "manager_rejected"
	NotificationTypeGeneral         NotificationType = "general"
)

var validNotificationTypes = []NotificationType{
	NotificationTypeManagerRequest,
	NotificationTypeManagerApproved,
	NotificationTypeManagerRejected,
	NotificationTypeGeneral,
}

// IsValid checks whether the given type matches the canonical enum.
func (n NotificationType) IsValid() bool {
	for _, candidate := range validNotificationTypes {
		if candidate == n {
			return true
		}
	}
	return false
}

// ParseNotificationType converts raw strings into NotificationType.
func ParseNotificationType(value string) (NotificationType, error) {
	for _, candidate := range validNotificationTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid notification type %q", value)
}
