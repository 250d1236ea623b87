package models

import (
	"time"
)

type Category struct {
	ID        int64      `json:"id" db:"id"`
	Name      string     `json:"name" db:"name"`
	Slug      string     `json:"slug" db:"slug"`
	ParentID  *int64     `json:"parentId" db:"parent_id"`
	IsActive  bool       `json:"isActive" db:"is_active"`
	Level     int        `json:"level" db:"level"`
	CreatedAt time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt time.Time  `json:"updated_at" db:"updated_at"`
	Products  []*Product `json:"products,omitempty" db:"-"` // populated by nested-create responses
}

// CategoryInput carries the fields a caller may supply when creating a
// category. Pointer fields distinguish "omitted" from an explicit zero, so
// level=0 and isActive=false survive intact instead of being re-defaulted.
type CategoryInput struct {
	Name     string `json:"name"`
	Slug     string `json:"slug"`
	ParentID *int64 `json:"parentId"`
	IsActive *bool  `json:"isActive"`
	Level    *int   `json:"level"`
}

// Category materializes the input with defaults applied (isActive=false,
// level=0 when omitted).
func (in *CategoryInput) Category() *Category {
	c := &Category{
		Name:     in.Name,
		Slug:     in.Slug,
		ParentID: in.ParentID,
	}
	if in.IsActive != nil {
		c.IsActive = *in.IsActive
	}
	if in.Level != nil {
		c.Level = *in.Level
	}
	return c
}

// CategoryPatch is a partial update keyed elsewhere (by id or by name set).
// Nil fields are left unchanged by the storage layer.
type CategoryPatch struct {
	Name     *string `json:"name"`
	Slug     *string `json:"slug"`
	ParentID *int64  `json:"parentId"`
	IsActive *bool   `json:"isActive"`
	Level    *int    `json:"level"`
}

// Empty reports whether the patch carries no fields at all.
func (p *CategoryPatch) Empty() bool {
	return p.Name == nil && p.Slug == nil && p.ParentID == nil && p.IsActive == nil && p.Level == nil
}
