package repository

import (
	"context"
	"net/http"

	"github.com/noah-isme/phlebotomy-portal/internal/models"
	"github.com/noah-isme/phlebotomy-portal/pkg/apiclient"
)

const (
	pathNotifications       = "/common/get-notifications"
	pathReadNotifications   = "/common/read-notifications"
	pathDeleteNotifications = "/common/delete-notifications"
)

// NotificationRepository reads and acknowledges in-app notifications.
type NotificationRepository struct {
	api Upstream
}

// NewNotificationRepository constructs the repository.
func NewNotificationRepository(api Upstream) *NotificationRepository {
	return &NotificationRepository{api: api}
}

// List returns notifications for the credential holder.
func (r *NotificationRepository) List(ctx context.Context, token string) ([]models.Notification, error) {
	var out []models.Notification
	if _, err := r.api.Do(ctx, apiclient.Request{Method: http.MethodGet, Path: pathNotifications, Token: token, Fallback: "Failed to fetch notifications"}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// MarkRead flags the given notifications as read.
func (r *NotificationRepository) MarkRead(ctx context.Context, token string, ids []string) error {
	_, err := r.api.Do(ctx, apiclient.Request{
		Method:   http.MethodPost,
		Path:     pathReadNotifications,
		Body:     map[string][]string{"notifications": ids},
		Token:    token,
		Fallback: "Failed to mark notifications as read",
	}, nil)
	return err
}

// DeleteAll removes every notification of the credential holder.
func (r *NotificationRepository) DeleteAll(ctx context.Context, token string) (string, error) {
	res, err := r.api.Do(ctx, apiclient.Request{
		Method:   http.MethodPost,
		Path:     pathDeleteNotifications,
		Body:     struct{}{},
		Token:    token,
		Fallback: "Failed to delete notifications",
	}, nil)
	if err != nil {
		return "", err
	}
	return messageOr(res, "All notifications deleted successfully."), nil
}
