package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/spec-kit/course-service/internal/config"
	"github.com/spec-kit/course-service/internal/events"
)

// NotificationService handles emitting webhook notifications for domain
// events. The registration confirmation email is not routed through here; its
// failure must surface in the HTTP response, so EnrollmentService sends it
// inline.
type NotificationService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
	cfg        config.NotifyConfig
}

// NewNotificationService creates the service.
func NewNotificationService(dispatcher events.Dispatcher, logger *zap.Logger, cfg config.NotifyConfig) *NotificationService {
	return &NotificationService{
		dispatcher: dispatcher,
		logger:     logger,
		cfg:        cfg,
	}
}

// RegisterHandlers subscribes to events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventCourseCreated, n.handleCourseCreated)
	n.dispatcher.Subscribe(events.EventLectureAdded, n.handleLectureAdded)
	n.dispatcher.Subscribe(events.EventCourseRegistration, n.handleCourseRegistration)
}

func (n *NotificationService) handleCourseCreated(ctx context.Context, event events.Event) error {
	n.logger.Info("CourseCreated", zap.String("course_id", event.CourseID), zap.Any("payload", event.Payload))
	n.sendWebhookNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) handleLectureAdded(ctx context.Context, event events.Event) error {
	n.logger.Info("LectureAdded", zap.String("course_id", event.CourseID), zap.Any("payload", event.Payload))
	n.sendWebhookNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) handleCourseRegistration(ctx context.Context, event events.Event) error {
	n.logger.Info("CourseRegistration", zap.String("course_id", event.CourseID), zap.Any("payload", event.Payload))
	n.sendWebhookNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) sendWebhookNotificationStub(ctx context.Context, event events.Event) {
	if strings.TrimSpace(n.cfg.WebhookURL) == "" {
		return
	}
	n.logger.Debug("sendWebhookNotificationStub",
		zap.String("url", n.cfg.WebhookURL),
		zap.String("course_id", event.CourseID),
		zap.String("event_type", string(event.Type)))
}
