package product

import "time"

type Product struct {
	ID           uint      `json:"id"`
	Name         string    `json:"name"`
	Description  *string   `json:"description,omitempty"`
	Brand        *string   `json:"brand,omitempty"`
	Image        *string   `json:"image,omitempty"`
	Price        int64     `json:"price"`
	CountInStock int       `json:"count_in_stock"`
	CategoryID   *uint     `json:"category_id,omitempty"`
	CategoryName *string   `json:"category_name,omitempty"`
	Rating       float64   `json:"rating"`
	NumReviews   int       `json:"num_reviews"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type ListFilter struct {
	CategoryID      *uint
	Brand           *string
	Search          *string
	MinPrice        *int64
	MaxPrice        *int64
	SortBy          string // created_at, price, rating, name
	SortOrder       string // asc, desc
	IncludeInactive bool   // admin listing only
	IsActive        *bool  // admin filter on top of IncludeInactive
}

type CreateParams struct {
	Name         string
	Description  *string
	Brand        *string
	Image        *string
	Price        int64
	CountInStock int
	CategoryID   *uint
}

type UpdateParams struct {
	Name         *string
	Description  *string
	Brand        *string
	Image        *string
	Price        *int64
	CountInStock *int
	CategoryID   *uint
	IsActive     *bool
}

// DeleteResult reports whether the row was removed or only deactivated.
type DeleteResult struct {
	Deleted     bool   `json:"deleted"`
	SoftDeleted bool   `json:"soft_deleted"`
	Message     string `json:"message"`
}
