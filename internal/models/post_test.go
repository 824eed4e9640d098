package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPostPatchApply(t *testing.T) {
	p := Post{ID: "1", Title: "old", Content: "body", Author: "a", Category: "c", Slug: "old"}
	title := "new"

	got := PostPatch{Title: &title}.Apply(p)

	assert.Equal(t, "new", got.Title)
	assert.Equal(t, "body", got.Content)
	assert.Equal(t, "c", got.Category)
	assert.Equal(t, "old", got.Slug)
	assert.Equal(t, "old", p.Title, "original must not change")
}

func TestPostPatchEmpty(t *testing.T) {
	assert.True(t, PostPatch{}.Empty())
	s := ""
	assert.False(t, PostPatch{Content: &s}.Empty())
}
