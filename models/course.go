package models

// Course represents a published course. Description is nullable in the DB and
// maps to the empty string here.
type Course struct {
	ID           int64   `db:"id" json:"id"`
	Title        string  `db:"title" json:"title"`
	Description  string  `db:"description" json:"description,omitempty"`
	InstructorID int64   `db:"instructor_id" json:"instructor_id"`
	Price        float64 `db:"price" json:"price"`
}
