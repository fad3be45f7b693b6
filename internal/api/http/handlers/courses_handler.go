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

// CoursesHandler exposes course management and registration endpoints.
type CoursesHandler struct {
	courses    *service.CourseService
	enrollment *service.EnrollmentService
}

// NewCoursesHandler constructs handler.
func NewCoursesHandler(courseService *service.CourseService, enrollmentService *service.EnrollmentService) *CoursesHandler {
	return &CoursesHandler{courses: courseService, enrollment: enrollmentService}
}

// Create handles POST /courses (admin only).
func (h *CoursesHandler) Create(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("missing principal")
	}

	var req dto.CreateCourseRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	id, err := h.courses.CreateCourse(c.Context(),
		events.Actor{UID: principal.UID, Role: principal.Role},
		domain.Course{
			Name:        req.Name,
			Description: req.Description,
			Teacher:     req.Teacher,
			StartDate:   req.StartDate,
			EndDate:     req.EndDate,
			Price:       req.Price,
		})
	if err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"data": fiber.Map{"id": id},
	})
}

// List handles GET /courses.
func (h *CoursesHandler) List(c *fiber.Ctx) error {
	courses, err := h.courses.ListCourses(c.Context())
	if err != nil {
		return err
	}

	out := make([]dto.CourseResponse, 0, len(courses))
	for _, course := range courses {
		out = append(out, dto.NewCourseResponse(course))
	}
	return c.JSON(fiber.Map{"data": out})
}

// Register handles POST /courses/:courseId/register.
func (h *CoursesHandler) Register(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("missing principal")
	}

	courseID := c.Params("courseId")
	if err := h.enrollment.Register(c.Context(), principal.UID, courseID); err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"data": fiber.Map{"message": "registration successful and email sent"},
	})
}
