package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/course-service/internal/domain"
	"github.com/spec-kit/course-service/internal/events"
	"github.com/spec-kit/course-service/internal/repository"
	apperrors "github.com/spec-kit/course-service/pkg/util"
)

// CourseService coordinates course and lecture management.
type CourseService struct {
	courses    repository.CourseRepository
	lectures   repository.LectureRepository
	dispatcher events.Dispatcher
}

// NewCourseService builds the service.
func NewCourseService(courses repository.CourseRepository, lectures repository.LectureRepository, dispatcher events.Dispatcher) *CourseService {
	return &CourseService{courses: courses, lectures: lectures, dispatcher: dispatcher}
}

// CreateCourse appends a new course and returns its generated id.
func (s *CourseService) CreateCourse(ctx context.Context, actor events.Actor, course domain.Course) (string, error) {
	course.ID = uuid.NewString()
	if err := s.courses.Create(ctx, &course); err != nil {
		return "", apperrors.NewDependencyFailure("error adding course", err)
	}

	s.publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventCourseCreated,
		CourseID:  course.ID,
		Actor:     actor,
		Timestamp: time.Now(),
		Payload:   events.CourseCreatedPayload{Name: course.Name, Teacher: course.Teacher},
	})
	return course.ID, nil
}

// ListCourses returns all courses in store-default order.
func (s *CourseService) ListCourses(ctx context.Context) ([]domain.Course, error) {
	courses, err := s.courses.List(ctx)
	if err != nil {
		return nil, apperrors.NewDependencyFailure("error retrieving courses", err)
	}
	return courses, nil
}

// AddLecture appends a lecture under a course and returns its generated id.
func (s *CourseService) AddLecture(ctx context.Context, actor events.Actor, courseID string, lecture domain.Lecture) (string, error) {
	lecture.ID = uuid.NewString()
	lecture.CourseID = courseID
	if err := s.lectures.Create(ctx, &lecture); err != nil {
		return "", apperrors.NewDependencyFailure("error adding lecture", err)
	}

	s.publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventLectureAdded,
		CourseID:  courseID,
		Actor:     actor,
		Timestamp: time.Now(),
		Payload:   events.LectureAddedPayload{LectureID: lecture.ID, Title: lecture.Title},
	})
	return lecture.ID, nil
}

func (s *CourseService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, event)
}
