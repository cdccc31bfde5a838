package models

// Enrollment links a student to a course. At most one enrollment exists per
// (student, course) pair, enforced by a unique index in the DB.
type Enrollment struct {
	ID         int64  `db:"id" json:"id"`
	StudentID  int64  `db:"student_id" json:"student_id"`
	CourseID   int64  `db:"course_id" json:"course_id"`
	EnrolledAt string `db:"enrolled_at" json:"enrolled_at"`
}
