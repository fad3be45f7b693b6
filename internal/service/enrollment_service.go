package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/course-service/internal/domain"
	"github.com/spec-kit/course-service/internal/events"
	"github.com/spec-kit/course-service/internal/mail"
	"github.com/spec-kit/course-service/internal/repository"
	apperrors "github.com/spec-kit/course-service/pkg/util"
)

const registrationSubject = "Course Registration Confirmation"

// EmailLookup resolves an account's email address from its uid.
type EmailLookup interface {
	LookupEmail(ctx context.Context, uid string) (string, error)
}

// FailureCounter records operational counters; implementations tolerate nil.
type FailureCounter interface {
	IncrCounter(ctx context.Context, name string)
}

// EnrollmentService records course registrations, sends the confirmation
// email, and gates lecture access on an existing registration row.
type EnrollmentService struct {
	registrations repository.RegistrationRepository
	lectures      repository.LectureRepository
	identity      EmailLookup
	notifier      mail.Notifier
	dispatcher    events.Dispatcher
	counters      FailureCounter
}

// EnrollmentDependencies bundles what the service needs.
type EnrollmentDependencies struct {
	RegistrationRepo repository.RegistrationRepository
	LectureRepo      repository.LectureRepository
	Identity         EmailLookup
	Notifier         mail.Notifier
	Dispatcher       events.Dispatcher
	Counters         FailureCounter
}

// NewEnrollmentService builds the service.
func NewEnrollmentService(deps EnrollmentDependencies) *EnrollmentService {
	return &EnrollmentService{
		registrations: deps.RegistrationRepo,
		lectures:      deps.LectureRepo,
		identity:      deps.Identity,
		notifier:      deps.Notifier,
		dispatcher:    deps.Dispatcher,
		counters:      deps.Counters,
	}
}

// Register writes the registration row, then attempts the confirmation email.
// The row is written first and is never rolled back: a notifier failure still
// returns an error (the caller reports 500) even though the registration is
// durable. Repeat registrations for the same pair each insert their own row.
func (s *EnrollmentService) Register(ctx context.Context, uid, courseID string) error {
	registration := &domain.Registration{
		ID:           uuid.NewString(),
		UserID:       uid,
		CourseID:     courseID,
		RegisteredAt: time.Now(),
	}
	if err := s.registrations.Create(ctx, registration); err != nil {
		return apperrors.NewDependencyFailure("error registering for course", err)
	}

	if s.dispatcher != nil {
		_ = s.dispatcher.Publish(ctx, events.Event{
			ID:        uuid.NewString(),
			Type:      events.EventCourseRegistration,
			CourseID:  courseID,
			Actor:     events.Actor{UID: uid},
			Timestamp: registration.RegisteredAt,
			Payload:   events.CourseRegistrationPayload{RegistrationID: registration.ID, UserID: uid},
		})
	}

	email, err := s.identity.LookupEmail(ctx, uid)
	if err != nil {
		return apperrors.NewDependencyFailure("error registering for course", err)
	}

	body := fmt.Sprintf("You have successfully registered for the course with ID: %s", courseID)
	if err := s.notifier.Send(ctx, email, registrationSubject, body); err != nil {
		if s.counters != nil {
			s.counters.IncrCounter(ctx, "registration_email_failures")
		}
		return apperrors.NewDependencyFailure("error sending email", err)
	}
	return nil
}

// ListLectures returns a course's lectures for a registered caller, or
// Forbidden when no registration row exists for the (uid, course) pair.
func (s *EnrollmentService) ListLectures(ctx context.Context, uid, courseID string) ([]domain.Lecture, error) {
	registered, err := s.registrations.Exists(ctx, uid, courseID)
	if err != nil {
		return nil, apperrors.NewDependencyFailure("error retrieving lectures", err)
	}
	if !registered {
		return nil, apperrors.NewForbidden("you are not registered for this course")
	}

	lectures, err := s.lectures.ListByCourse(ctx, courseID)
	if err != nil {
		return nil, apperrors.NewDependencyFailure("error retrieving lectures", err)
	}
	return lectures, nil
}
