package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"courseMarketplace/models"
)

type EnrollmentRepository struct {
	db *sql.DB
}

func NewEnrollmentRepository(db *sql.DB) *EnrollmentRepository {
	return &EnrollmentRepository{db: db}
}

// Create inserts an enrollment for the given (student, course) pair. The
// UNIQUE(student_id, course_id) index makes this an atomic insert-if-absent:
// a duplicate pair surfaces as ErrAlreadyEnrolled without creating a row,
// including under concurrent calls. Dangling references surface as
// ErrStorageConflict.
func (r *EnrollmentRepository) Create(ctx context.Context, studentID, courseID int64) (*models.Enrollment, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	res, err := r.db.ExecContext(ctx, `INSERT INTO enrollments (student_id, course_id) VALUES (?, ?)`, studentID, courseID)
	if err != nil {
		return nil, translateConstraint(err, ErrAlreadyEnrolled)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	// Query back to capture the DB-assigned enrolled_at.
	e, err := r.getByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, fmt.Errorf("created enrollment not found: id=%d", id)
	}
	return e, nil
}

func (r *EnrollmentRepository) getByID(ctx context.Context, id int64) (*models.Enrollment, error) {
	var e models.Enrollment
	err := r.db.QueryRowContext(ctx, `SELECT id, student_id, course_id, enrolled_at FROM enrollments WHERE id = ?`, id).
		Scan(&e.ID, &e.StudentID, &e.CourseID, &e.EnrolledAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &e, nil
}

// ListCoursesByStudent returns the courses the given student is enrolled in,
// in enrollment insertion order.
func (r *EnrollmentRepository) ListCoursesByStudent(ctx context.Context, studentID int64) ([]models.Course, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, `
SELECT courses.id, courses.title, courses.description, courses.instructor_id, courses.price
FROM courses
INNER JOIN enrollments ON courses.id = enrollments.course_id
WHERE enrollments.student_id = ?
ORDER BY enrollments.id`, studentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanCourses(rows)
}

// CountByCourse returns the number of students enrolled in the given course.
func (r *EnrollmentRepository) CountByCourse(ctx context.Context, courseID int64) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	var n int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM enrollments WHERE course_id = ?`, courseID).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

func (r *EnrollmentRepository) Count(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	var n int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM enrollments`).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}
