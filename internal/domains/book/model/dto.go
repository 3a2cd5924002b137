package model

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// CreateBookRequest is the payload for creating a book with its initial copies.
type CreateBookRequest struct {
	Title         string  `json:"title"`
	ISBN          *string `json:"isbn,omitempty"`
	YearPublished *int    `json:"year_published,omitempty"`
	CopiesCount   int     `json:"copies_count"`
}

func (r CreateBookRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title,
			validation.Required.Error("title is required"),
			validation.Length(1, 255),
		),
		validation.Field(&r.ISBN,
			validation.When(r.ISBN != nil,
				validation.Length(10, 13),
				is.ISBN.Error("invalid ISBN format"),
			),
		),
		validation.Field(&r.YearPublished,
			validation.When(r.YearPublished != nil,
				validation.Min(1000),
				validation.Max(2030),
			),
		),
		validation.Field(&r.CopiesCount,
			validation.Required.Error("copies_count is required"),
			validation.Min(1).Error("copies_count must be at least 1"),
			validation.Max(50).Error("copies_count must be at most 50"),
		),
	)
}
