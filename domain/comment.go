package domain

import "time"

// CommentAuthor is the reduced user record the backend embeds in each comment.
type CommentAuthor struct {
	UserID   int
	Username string
}

// Comment is one node of the threaded discussion attached to a fossil.
// Replies nest recursively; the client only ever holds read-only snapshots
// of the tree the server sent.
type Comment struct {
	ID           int
	Content      string
	CreatedAt    time.Time
	FossilID     string
	ParentID     int // 0 for top-level comments
	Author       CommentAuthor
	Reactions    map[ReactionType]int
	UserReaction ReactionType // "" when the current user has not reacted
	Replies      []Comment
	Hidden       bool
}

// FilterHidden returns the visible portion of a comment tree. A node hidden by
// moderation is dropped together with its entire subtree, at any depth.
// Surviving nodes are rebuilt with freshly filtered reply slices, so the input
// tree is never mutated and sibling order is preserved.
func FilterHidden(comments []Comment) []Comment {
	out := make([]Comment, 0, len(comments))
	for _, c := range comments {
		if c.Hidden {
			continue
		}
		c.Replies = FilterHidden(c.Replies)
		out = append(out, c)
	}
	return out
}

// FindComment searches the tree depth-first (each root before its replies) and
// returns the first comment with the given ID.
func FindComment(comments []Comment, id int) (Comment, bool) {
	for _, c := range comments {
		if c.ID == id {
			return c, true
		}
		if found, ok := FindComment(c.Replies, id); ok {
			return found, true
		}
	}
	return Comment{}, false
}

// CountComments returns the number of nodes in the tree, replies included.
func CountComments(comments []Comment) int {
	n := 0
	for _, c := range comments {
		n += 1 + CountComments(c.Replies)
	}
	return n
}

// CommentRecord is one flat entry of the user's comment history. Unlike the
// tree view it includes hidden comments, so the author can see what moderation
// suppressed.
type CommentRecord struct {
	ID        int
	FossilID  string
	AuthorID  int
	ParentID  int
	Content   string
	Hidden    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
