package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"courseMarketplace/models"
	"courseMarketplace/repository"
)

// ErrValidation is returned for request payloads that fail domain validation.
var ErrValidation = errors.New("validation failed")

// unknownInstructor is the display fallback applied when a course references
// an instructor that no longer resolves. The data layer reports NotFound; the
// fallback lives here at the presentation edge.
const unknownInstructor = "Unknown"

// CatalogService owns course publishing, browsing, and enrollment.
type CatalogService struct {
	Courses     repository.CourseRepositoryI
	Enrollments repository.EnrollmentRepositoryI
	Users       repository.UserRepositoryI
}

// CourseListing is a course decorated with its instructor's display name.
type CourseListing struct {
	models.Course
	Instructor string `json:"instructor"`
}

// InstructorCourse is a course decorated with its enrollment count.
type InstructorCourse struct {
	models.Course
	EnrolledStudents int64 `json:"enrolled_students"`
}

// Stats are the aggregate totals shown on the admin dashboard.
type Stats struct {
	TotalUsers       int64 `json:"total_users"`
	TotalCourses     int64 `json:"total_courses"`
	TotalEnrollments int64 `json:"total_enrollments"`
}

// CreateCourse publishes a course for the given instructor. Empty titles and
// negative prices are rejected with ErrValidation.
func (s *CatalogService) CreateCourse(ctx context.Context, title, description string, instructorID int64, price float64) (*models.Course, error) {
	if strings.TrimSpace(title) == "" || price < 0 {
		return nil, ErrValidation
	}
	c, err := s.Courses.Create(ctx, &models.Course{
		Title:        title,
		Description:  description,
		InstructorID: instructorID,
		Price:        price,
	})
	if err != nil {
		return nil, err
	}
	slog.Info("course created", "svc", "catalog.create_course", "course_id", c.ID, "instructor_id", instructorID)
	return c, nil
}

// ListCourses returns every course in insertion order, each decorated with
// its instructor's username ("Unknown" when the reference does not resolve).
func (s *CatalogService) ListCourses(ctx context.Context) ([]CourseListing, error) {
	courses, err := s.Courses.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]CourseListing, 0, len(courses))
	// Courses by the same instructor resolve the name once.
	names := map[int64]string{}
	for _, c := range courses {
		name, ok := names[c.InstructorID]
		if !ok {
			name, err = s.Courses.InstructorName(ctx, c.InstructorID)
			if errors.Is(err, repository.ErrNotFound) {
				name = unknownInstructor
			} else if err != nil {
				return nil, err
			}
			names[c.InstructorID] = name
		}
		out = append(out, CourseListing{Course: c, Instructor: name})
	}
	return out, nil
}

// CoursesByInstructor returns the instructor's courses with their enrollment
// counts, in insertion order.
func (s *CatalogService) CoursesByInstructor(ctx context.Context, instructorID int64) ([]InstructorCourse, error) {
	courses, err := s.Courses.ListByInstructor(ctx, instructorID)
	if err != nil {
		return nil, err
	}
	out := make([]InstructorCourse, 0, len(courses))
	for _, c := range courses {
		n, err := s.Enrollments.CountByCourse(ctx, c.ID)
		if err != nil {
			return nil, err
		}
		out = append(out, InstructorCourse{Course: c, EnrolledStudents: n})
	}
	return out, nil
}

// Enroll records the student's enrollment in the course. A nonexistent course
// surfaces as ErrNotFound; a duplicate enrollment as ErrAlreadyEnrolled.
func (s *CatalogService) Enroll(ctx context.Context, studentID, courseID int64) (*models.Enrollment, error) {
	if _, err := s.Courses.GetByID(ctx, courseID); err != nil {
		return nil, err
	}
	e, err := s.Enrollments.Create(ctx, studentID, courseID)
	if err != nil {
		return nil, err
	}
	slog.Info("student enrolled", "svc", "catalog.enroll", "student_id", studentID, "course_id", courseID)
	return e, nil
}

// EnrolledCourses returns the courses the student is enrolled in.
func (s *CatalogService) EnrolledCourses(ctx context.Context, studentID int64) ([]models.Course, error) {
	return s.Enrollments.ListCoursesByStudent(ctx, studentID)
}

// GetStats returns the aggregate record counts.
func (s *CatalogService) GetStats(ctx context.Context) (*Stats, error) {
	users, err := s.Users.Count(ctx)
	if err != nil {
		return nil, err
	}
	courses, err := s.Courses.Count(ctx)
	if err != nil {
		return nil, err
	}
	enrollments, err := s.Enrollments.Count(ctx)
	if err != nil {
		return nil, err
	}
	return &Stats{TotalUsers: users, TotalCourses: courses, TotalEnrollments: enrollments}, nil
}
