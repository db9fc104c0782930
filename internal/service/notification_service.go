package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/noah-isme/phlebotomy-portal/internal/models"
	appErrors "github.com/noah-isme/phlebotomy-portal/pkg/errors"
	"github.com/noah-isme/phlebotomy-portal/pkg/jobs"
)

const jobTypeMarkRead = "notifications.mark-read"

type notificationSource interface {
	List(ctx context.Context, token string) ([]models.Notification, error)
	MarkRead(ctx context.Context, token string, ids []string) error
	DeleteAll(ctx context.Context, token string) (string, error)
}

type credentialBinder interface {
	Bind(sessionID string) Credentials
}

type markReadPayload struct {
	SessionID string
	IDs       []string
}

// NotificationService lists notifications and acknowledges them in the background.
type NotificationService struct {
	repo     notificationSource
	sessions credentialBinder
	queue    *jobs.Queue
	logger   *zap.Logger
}

// NewNotificationService constructs the service and its acknowledgement queue.
func NewNotificationService(repo notificationSource, sessions credentialBinder, cfg jobs.QueueConfig, logger *zap.Logger) *NotificationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.Logger == nil {
		cfg.Logger = logger
	}
	s := &NotificationService{repo: repo, sessions: sessions, logger: logger}
	s.queue = jobs.NewQueue(jobTypeMarkRead, s.markRead, cfg)
	return s
}

// Start launches the acknowledgement workers.
func (s *NotificationService) Start(ctx context.Context) {
	s.queue.Start(ctx)
}

// Stop drains the workers.
func (s *NotificationService) Stop() {
	s.queue.Stop()
}

// Stats exposes queue counters.
func (s *NotificationService) Stats() jobs.Stats {
	return s.queue.Stats()
}

// List returns the session's notifications and schedules the unread ones to be marked read.
func (s *NotificationService) List(ctx context.Context, sessionID string) ([]models.Notification, error) {
	creds := s.sessions.Bind(sessionID)
	items, err := withToken(ctx, creds, s.repo.List)
	if err != nil {
		return nil, err
	}
	if unread := models.UnreadIDs(items); len(unread) > 0 {
		job := jobs.Job{ID: uuid.NewString(), Type: jobTypeMarkRead, Payload: markReadPayload{SessionID: sessionID, IDs: unread}}
		if err := s.queue.Enqueue(job); err != nil {
			s.logger.Warn("mark-read not scheduled", zap.Int("count", len(unread)), zap.Error(err))
		}
	}
	return items, nil
}

// DeleteAll removes every notification of the session's user.
func (s *NotificationService) DeleteAll(ctx context.Context, sessionID string) (string, error) {
	creds := s.sessions.Bind(sessionID)
	return withToken(ctx, creds, s.repo.DeleteAll)
}

func (s *NotificationService) markRead(ctx context.Context, job jobs.Job) error {
	payload, ok := job.Payload.(markReadPayload)
	if !ok {
		return jobs.Permanent(fmt.Errorf("unexpected payload %T", job.Payload))
	}
	creds := s.sessions.Bind(payload.SessionID)
	token, err := creds.Token(ctx)
	if err != nil {
		return jobs.Permanent(err)
	}
	err = s.repo.MarkRead(ctx, token, payload.IDs)
	switch {
	case err == nil:
		return nil
	case appErrors.HasCode(err, appErrors.ErrUnauthorized.Code):
		creds.Invalidate(ctx)
		return jobs.Permanent(err)
	case appErrors.IsRetryable(err):
		return err
	default:
		return jobs.Permanent(err)
	}
}
