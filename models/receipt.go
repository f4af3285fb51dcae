package models

import "time"

type ReceiptItem struct {
	CourseID uint    `json:"courseId"`
	Course   string  `json:"course"`
	Price    float64 `json:"price"`
}

// Receipt is built once per successful purchase and never persisted.
type Receipt struct {
	Number     string        `json:"number"`
	Items      []ReceiptItem `json:"items"`
	Subtotal   float64       `json:"subtotal"`
	Tax        float64       `json:"tax"`
	TotalPrice float64       `json:"totalPrice"`
	IssuedAt   time.Time     `json:"issuedAt"`
}
