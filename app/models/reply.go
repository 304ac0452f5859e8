package models

import (
	"errors"
	"time"
)

// Validate checks if the reply meets all validation requirements
func (r *Reply) Validate() error {
	if err := validate.Struct(r); err != nil {
		return err
	}

	if r.CreatedAt.IsZero() {
		return errors.New("created_at cannot be zero")
	}

	return nil
}

// BeforeCreate sets up any necessary fields before creation
func (r *Reply) BeforeCreate() {
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now()
	}
}
