package models

import (
	"time"

	"github.com/google/uuid"
)

// Instructor is the embedded owner block of a course. Email is the ownership
// key and is always stored lower-cased and trimmed.
type Instructor struct {
	Name     string `json:"name,omitempty"`
	Email    string `json:"email,omitempty"`
	PhotoURL string `json:"photoURL,omitempty"`
}

// Course represents a published course
type Course struct {
	ID            uuid.UUID  `json:"id"`
	Title         string     `json:"title"`
	ImageURL      string     `json:"imageUrl"`
	Price         float64    `json:"price"`
	Duration      string     `json:"duration"`
	Category      string     `json:"category"`
	Description   string     `json:"description"`
	IsFeatured    bool       `json:"isFeatured"`
	Instructor    Instructor `json:"instructor"`
	RatingAverage float64    `json:"ratingAverage"`
	RatingCount   int        `json:"ratingCount"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
}
