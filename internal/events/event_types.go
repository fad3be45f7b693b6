package events

import (
	"time"

	"github.com/spec-kit/course-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventCourseCreated      EventType = "course_created"
	EventLectureAdded       EventType = "lecture_added"
	EventCourseRegistration EventType = "course_registration"
)

// Actor encapsulates actor metadata for an event.
type Actor struct {
	UID  string      `json:"uid"`
	Role domain.Role `json:"role"`
}

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	CourseID  string      `json:"course_id"`
	Actor     Actor       `json:"actor"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// CourseCreatedPayload payload.
type CourseCreatedPayload struct {
	Name    string `json:"name"`
	Teacher string `json:"teacher"`
}

// LectureAddedPayload payload.
type LectureAddedPayload struct {
	LectureID string `json:"lecture_id"`
	Title     string `json:"title"`
}

// CourseRegistrationPayload payload.
type CourseRegistrationPayload struct {
	RegistrationID string `json:"registration_id"`
	UserID         string `json:"user_id"`
}
