package model

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }

func TestCreateBookRequestValidate(t *testing.T) {
	valid := CreateBookRequest{
		Title:         "The Castle",
		ISBN:          strPtr("9780306406157"),
		YearPublished: intPtr(1926),
		CopiesCount:   3,
	}
	assert.NoError(t, valid.Validate())

	tests := []struct {
		name    string
		mutate  func(*CreateBookRequest)
		wantErr string
	}{
		{"missing title", func(r *CreateBookRequest) { r.Title = "" }, "title"},
		{"title too long", func(r *CreateBookRequest) { r.Title = strings.Repeat("x", 256) }, "title"},
		{"bad isbn", func(r *CreateBookRequest) { r.ISBN = strPtr("not-an-isbn") }, "isbn"},
		{"year too early", func(r *CreateBookRequest) { r.YearPublished = intPtr(999) }, "year_published"},
		{"year too late", func(r *CreateBookRequest) { r.YearPublished = intPtr(2031) }, "year_published"},
		{"zero copies", func(r *CreateBookRequest) { r.CopiesCount = 0 }, "copies_count"},
		{"too many copies", func(r *CreateBookRequest) { r.CopiesCount = 51 }, "copies_count"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := valid
			tt.mutate(&r)
			err := r.Validate()
			assert.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestCreateBookRequestOptionalFields(t *testing.T) {
	r := CreateBookRequest{Title: "No Extras", CopiesCount: 1}
	assert.NoError(t, r.Validate())
}
