package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"courseMarketplace/models"
)

type CourseRepository struct {
	db *sql.DB
}

func NewCourseRepository(db *sql.DB) *CourseRepository {
	return &CourseRepository{db: db}
}

// Create inserts a new course and returns it with its generated ID.
// A dangling instructor reference surfaces as ErrStorageConflict.
func (r *CourseRepository) Create(ctx context.Context, c *models.Course) (*models.Course, error) {
	if c == nil {
		return nil, errors.New("course is nil")
	}
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var desc any
	if c.Description != "" {
		desc = c.Description
	}
	res, err := r.db.ExecContext(ctx, `INSERT INTO courses (title, description, instructor_id, price) VALUES (?, ?, ?, ?)`,
		c.Title, desc, c.InstructorID, c.Price)
	if err != nil {
		return nil, translateConstraint(err, ErrStorageConflict)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	out := *c
	out.ID = id
	return &out, nil
}

func (r *CourseRepository) GetByID(ctx context.Context, id int64) (*models.Course, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var c models.Course
	var desc sql.NullString
	err := r.db.QueryRowContext(ctx, `SELECT id, title, description, instructor_id, price FROM courses WHERE id = ?`, id).
		Scan(&c.ID, &c.Title, &desc, &c.InstructorID, &c.Price)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	c.Description = desc.String
	return &c, nil
}

// ListAll returns every course in insertion order (ascending ID).
func (r *CourseRepository) ListAll(ctx context.Context) ([]models.Course, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, `SELECT id, title, description, instructor_id, price FROM courses ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanCourses(rows)
}

// ListByInstructor returns the courses created by the given instructor, in
// insertion order.
func (r *CourseRepository) ListByInstructor(ctx context.Context, instructorID int64) ([]models.Course, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, `SELECT id, title, description, instructor_id, price FROM courses WHERE instructor_id = ? ORDER BY id`, instructorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanCourses(rows)
}

// InstructorName returns the username for the given instructor ID, or
// ErrNotFound when the ID does not resolve. Display fallbacks are the
// caller's business.
func (r *CourseRepository) InstructorName(ctx context.Context, instructorID int64) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var name string
	err := r.db.QueryRowContext(ctx, `SELECT username FROM users WHERE id = ?`, instructorID).Scan(&name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrNotFound
		}
		return "", err
	}
	return name, nil
}

func (r *CourseRepository) Count(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	var n int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM courses`).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

func scanCourses(rows *sql.Rows) ([]models.Course, error) {
	var out []models.Course
	for rows.Next() {
		var c models.Course
		var desc sql.NullString
		if err := rows.Scan(&c.ID, &c.Title, &desc, &c.InstructorID, &c.Price); err != nil {
			return nil, err
		}
		c.Description = desc.String
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
