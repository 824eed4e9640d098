package models

import "time"

// Post is a blog entry. Author and ID are fixed at creation.
type Post struct {
	ID        string    `json:"_id"`
	Title     string    `json:"title" validate:"required,max=200"`
	Content   string    `json:"content" validate:"max=20000"`
	Author    string    `json:"author"`
	Category  string    `json:"category" validate:"required,max=64"`
	Slug      string    `json:"slug" validate:"max=200"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// PostPatch carries the mutable fields of an update. Nil means unchanged.
type PostPatch struct {
	Title    *string
	Content  *string
	Category *string
	Slug     *string
}

// Apply returns a copy of p with the non-nil fields of the patch set.
func (pp PostPatch) Apply(p Post) Post {
	if pp.Title != nil {
		p.Title = *pp.Title
	}
	if pp.Content != nil {
		p.Content = *pp.Content
	}
	if pp.Category != nil {
		p.Category = *pp.Category
	}
	if pp.Slug != nil {
		p.Slug = *pp.Slug
	}
	return p
}

func (pp PostPatch) Empty() bool {
	return pp.Title == nil && pp.Content == nil && pp.Category == nil && pp.Slug == nil
}
