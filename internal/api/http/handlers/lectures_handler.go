package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/course-service/internal/api/dto"
	"github.com/spec-kit/course-service/internal/auth"
	"github.com/spec-kit/course-service/internal/domain"
	"github.com/spec-kit/course-service/internal/events"
	"github.com/spec-kit/course-service/internal/service"
	apperrors "github.com/spec-kit/course-service/pkg/util"
)

// LecturesHandler exposes lecture creation and registration-gated retrieval.
type LecturesHandler struct {
	courses    *service.CourseService
	enrollment *service.EnrollmentService
}

// NewLecturesHandler constructs handler.
func NewLecturesHandler(courseService *service.CourseService, enrollmentService *service.EnrollmentService) *LecturesHandler {
	return &LecturesHandler{courses: courseService, enrollment: enrollmentService}
}

// Create handles POST /courses/:courseId/lectures (admin only).
func (h *LecturesHandler) Create(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("missing principal")
	}

	var req dto.CreateLectureRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	courseID := c.Params("courseId")
	id, err := h.courses.AddLecture(c.Context(),
		events.Actor{UID: principal.UID, Role: principal.Role},
		courseID,
		domain.Lecture{
			Title:       req.Title,
			Description: req.Description,
			VideoURL:    req.VideoURL,
		})
	if err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"data": fiber.Map{"id": id},
	})
}

// List handles GET /courses/:courseId/lectures. Access requires an existing
// registration for the course.
func (h *LecturesHandler) List(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("missing principal")
	}

	courseID := c.Params("courseId")
	lectures, err := h.enrollment.ListLectures(c.Context(), principal.UID, courseID)
	if err != nil {
		return err
	}

	out := make([]dto.LectureResponse, 0, len(lectures))
	for _, lecture := range lectures {
		out = append(out, dto.NewLectureResponse(lecture))
	}
	return c.JSON(fiber.Map{"data": out})
}
