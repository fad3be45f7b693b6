package domain

// Course is the domain model for a course offering. Dates and price are stored
// as provided by the creating admin; no format validation is applied.
type Course struct {
	ID          string
	Name        string
	Description string
	Teacher     string
	StartDate   string
	EndDate     string
	Price       float64
}

// Lecture belongs to exactly one course.
type Lecture struct {
	ID          string
	CourseID    string
	Title       string
	Description string
	VideoURL    string
}
