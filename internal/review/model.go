package review

import "time"

type Review struct {
	ID        uint      `json:"id"`
	ProductID uint      `json:"product_id"`
	UserID    uint      `json:"user_id"`
	Name      string    `json:"name"`
	Rating    float64   `json:"rating"`
	Comment   *string   `json:"comment,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type CreateInput struct {
	ProductID uint    `json:"product_id"`
	Rating    float64 `json:"rating"`
	Comment   *string `json:"comment,omitempty"`
	Name      string  `json:"name,omitempty"`
}

type UpdateInput struct {
	Rating  *float64 `json:"rating,omitempty"`
	Comment *string  `json:"comment,omitempty"`
}
