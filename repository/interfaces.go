package repository

import (
	"context"

	"courseMarketplace/models"
)

// UserRepositoryI defines operations on User entities.
type UserRepositoryI interface {
	Create(ctx context.Context, username, passwordHash, email string, role models.Role) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetRole(ctx context.Context, username string) (models.Role, error)
	GetEmail(ctx context.Context, username string) (string, error)
	List(ctx context.Context) ([]models.User, error)
	UpdateRole(ctx context.Context, id int64, role models.Role) error
	UpdatePasswordHash(ctx context.Context, id int64, passwordHash string) error
	Count(ctx context.Context) (int64, error)
}

// CourseRepositoryI defines operations on Course entities.
type CourseRepositoryI interface {
	Create(ctx context.Context, c *models.Course) (*models.Course, error)
	GetByID(ctx context.Context, id int64) (*models.Course, error)
	ListAll(ctx context.Context) ([]models.Course, error)
	ListByInstructor(ctx context.Context, instructorID int64) ([]models.Course, error)
	InstructorName(ctx context.Context, instructorID int64) (string, error)
	Count(ctx context.Context) (int64, error)
}

// EnrollmentRepositoryI defines operations on Enrollment entities.
type EnrollmentRepositoryI interface {
	Create(ctx context.Context, studentID, courseID int64) (*models.Enrollment, error)
	ListCoursesByStudent(ctx context.Context, studentID int64) ([]models.Course, error)
	CountByCourse(ctx context.Context, courseID int64) (int64, error)
	Count(ctx context.Context) (int64, error)
}
