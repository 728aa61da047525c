package domain

// ReactionType is one of the six emoji endorsements the backend accepts.
// A user holds at most one active reaction per comment.
type ReactionType string

const (
	ReactionLike  ReactionType = "Like"
	ReactionHeart ReactionType = "Heart"
	ReactionHaha  ReactionType = "Haha"
	ReactionWow   ReactionType = "Wow"
	ReactionSad   ReactionType = "Sad"
	ReactionAngry ReactionType = "Angry"
)

// ReactionTypes returns every reaction in picker order.
func ReactionTypes() []ReactionType {
	return []ReactionType{
		ReactionLike,
		ReactionHeart,
		ReactionHaha,
		ReactionWow,
		ReactionSad,
		ReactionAngry,
	}
}

// ReactionOp discriminates what a resolved reaction should do on the backend.
type ReactionOp int

const (
	// ReactionNoop means the target comment could not be located.
	ReactionNoop ReactionOp = iota
	// ReactionSet adds a new reaction or replaces the user's existing one.
	ReactionSet
	// ReactionClear removes the user's current reaction (toggle off).
	ReactionClear
)

// ReactionAction is the decision produced by ResolveReaction.
type ReactionAction struct {
	Op        ReactionOp
	CommentID int
	Type      ReactionType
}

// ResolveReaction decides how a reaction press translates into a backend call.
// Pressing the reaction the user already holds toggles it off; any other press
// sets or changes it. Aggregate counts are server-authoritative, so the caller
// refetches the tree after executing the action instead of merging locally.
func ResolveReaction(tree []Comment, commentID int, requested ReactionType) ReactionAction {
	target, ok := FindComment(tree, commentID)
	if !ok {
		return ReactionAction{Op: ReactionNoop}
	}
	if target.UserReaction == requested {
		return ReactionAction{Op: ReactionClear, CommentID: commentID}
	}
	return ReactionAction{Op: ReactionSet, CommentID: commentID, Type: requested}
}
