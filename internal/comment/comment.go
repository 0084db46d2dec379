// Package comment is the blog comment moderation workflow.
package comment

import (
	"errors"

	"github.com/ihostcast/ArtistsAid-sub001/internal/review"
)

const Domain = "comment"

// Payload is the domain-specific part of a comment item.
type Payload struct {
	PostID     string `json:"post_id"`
	AuthorName string `json:"author_name"`
	Body       string `json:"body"`
}

func (p Payload) Validate() error {
	if p.PostID == "" {
		return errors.New("post_id is required")
	}
	if p.Body == "" {
		return errors.New("body is required")
	}
	return nil
}

// Transitions returns the comment legality table, which adds a spam verdict
// to plain approve/reject moderation.
func Transitions() review.Transitions {
	return review.CommentTransitions()
}
