package models

import "time"

// Book is a catalog entry. AverageRating and TotalReviews are derived from
// the book's reviews and must only be written by the aggregator.
type Book struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	Title         string    `gorm:"not null;index" json:"title"`
	Author        string    `gorm:"not null" json:"author"`
	Description   string    `gorm:"type:text;not null" json:"description"`
	PublishedYear int       `gorm:"not null" json:"publishedYear"`
	AverageRating float64   `gorm:"default:0" json:"averageRating"`
	TotalReviews  int64     `gorm:"default:0" json:"totalReviews"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

func (Book) TableName() string {
	return "books"
}
