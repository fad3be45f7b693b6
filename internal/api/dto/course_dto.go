package dto

import "github.com/spec-kit/course-service/internal/domain"

// CreateCourseRequest payload for new courses.
type CreateCourseRequest struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Teacher     string  `json:"teacher"`
	StartDate   string  `json:"startDate"`
	EndDate     string  `json:"endDate"`
	Price       float64 `json:"price"`
}

// CreateLectureRequest payload for new lectures.
type CreateLectureRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	VideoURL    string `json:"videoUrl"`
}

// CourseResponse is a course document with its id.
type CourseResponse struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Teacher     string  `json:"teacher"`
	StartDate   string  `json:"startDate"`
	EndDate     string  `json:"endDate"`
	Price       float64 `json:"price"`
}

// LectureResponse is a lecture document with its id.
type LectureResponse struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	VideoURL    string `json:"videoUrl"`
}

// NewCourseResponse maps a domain course.
func NewCourseResponse(course domain.Course) CourseResponse {
	return CourseResponse{
		ID:          course.ID,
		Name:        course.Name,
		Description: course.Description,
		Teacher:     course.Teacher,
		StartDate:   course.StartDate,
		EndDate:     course.EndDate,
		Price:       course.Price,
	}
}

// NewLectureResponse maps a domain lecture.
func NewLectureResponse(lecture domain.Lecture) LectureResponse {
	return LectureResponse{
		ID:          lecture.ID,
		Title:       lecture.Title,
		Description: lecture.Description,
		VideoURL:    lecture.VideoURL,
	}
}
