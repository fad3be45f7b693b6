package domain

import "time"

// Registration links a user to a course. The existence of at least one
// registration row is the sole authorization signal for lecture access.
// Registrations are not deduplicated: the same (user, course) pair may have
// any number of rows.
type Registration struct {
	ID           string
	UserID       string
	CourseID     string
	RegisteredAt time.Time
}
