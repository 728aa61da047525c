package domain

import (
	"reflect"
	"testing"

	"pgregory.net/rapid"
)

func visibleComment(id int, replies ...Comment) Comment {
	return Comment{ID: id, Content: "c", Replies: replies}
}

func hiddenComment(id int, replies ...Comment) Comment {
	c := visibleComment(id, replies...)
	c.Hidden = true
	return c
}

func TestFilterHidden_HiddenParentDropsSubtree(t *testing.T) {
	// A visible node under a hidden parent must still disappear: moderation
	// hides the whole subtree from the client view.
	tree := []Comment{
		visibleComment(1,
			hiddenComment(2,
				visibleComment(3),
			),
		),
	}

	got := FilterHidden(tree)
	if len(got) != 1 || got[0].ID != 1 {
		t.Fatalf("expected only root 1 to survive, got %#v", got)
	}
	if len(got[0].Replies) != 0 {
		t.Fatalf("hidden reply subtree must be removed, got %#v", got[0].Replies)
	}
	// The input tree keeps its original shape.
	if len(tree[0].Replies) != 1 || len(tree[0].Replies[0].Replies) != 1 {
		t.Fatalf("input tree was mutated: %#v", tree)
	}
}

func TestFilterHidden_PreservesSiblingOrder(t *testing.T) {
	tree := []Comment{
		visibleComment(1),
		hiddenComment(2),
		visibleComment(3,
			visibleComment(4),
			hiddenComment(5),
			visibleComment(6),
		),
		visibleComment(7),
	}

	got := FilterHidden(tree)
	rootIDs := make([]int, 0, len(got))
	for _, c := range got {
		rootIDs = append(rootIDs, c.ID)
	}
	if !reflect.DeepEqual(rootIDs, []int{1, 3, 7}) {
		t.Fatalf("unexpected root order: %v", rootIDs)
	}
	replyIDs := make([]int, 0)
	for _, c := range got[1].Replies {
		replyIDs = append(replyIDs, c.ID)
	}
	if !reflect.DeepEqual(replyIDs, []int{4, 6}) {
		t.Fatalf("unexpected reply order: %v", replyIDs)
	}
}

func TestFilterHidden_EmptyTree(t *testing.T) {
	if got := FilterHidden(nil); len(got) != 0 {
		t.Fatalf("expected empty output, got %#v", got)
	}
}

// genCommentTree builds arbitrary trees with hidden flags at random depths.
func genCommentTree(depth int) *rapid.Generator[[]Comment] {
	return rapid.Custom(func(t *rapid.T) []Comment {
		n := rapid.IntRange(0, 4).Draw(t, "width")
		out := make([]Comment, 0, n)
		for i := 0; i < n; i++ {
			c := Comment{
				ID:     rapid.IntRange(1, 1_000_000).Draw(t, "id"),
				Hidden: rapid.Bool().Draw(t, "hidden"),
			}
			if depth > 0 {
				c.Replies = genCommentTree(depth - 1).Draw(t, "replies")
			}
			out = append(out, c)
		}
		return out
	})
}

func anyHidden(comments []Comment) bool {
	for _, c := range comments {
		if c.Hidden || anyHidden(c.Replies) {
			return true
		}
	}
	return false
}

func visibleIDsInOrder(comments []Comment) []int {
	out := []int{}
	for _, c := range comments {
		if c.Hidden {
			continue
		}
		out = append(out, c.ID)
	}
	return out
}

func TestFilterHidden_Property(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		tree := genCommentTree(3).Draw(t, "tree")
		before := CountComments(tree)

		got := FilterHidden(tree)

		if anyHidden(got) {
			t.Fatalf("hidden node survived the filter: %#v", got)
		}
		// Each level keeps its visible siblings, in order.
		var checkLevel func(in, out []Comment)
		checkLevel = func(in, out []Comment) {
			gotIDs := make([]int, 0, len(out))
			for _, c := range out {
				gotIDs = append(gotIDs, c.ID)
			}
			if !reflect.DeepEqual(gotIDs, visibleIDsInOrder(in)) {
				t.Fatalf("sibling order broken: got %v want %v", gotIDs, visibleIDsInOrder(in))
			}
			j := 0
			for _, c := range in {
				if c.Hidden {
					continue
				}
				checkLevel(c.Replies, out[j].Replies)
				j++
			}
		}
		checkLevel(tree, got)

		if CountComments(tree) != before {
			t.Fatalf("input tree was mutated")
		}
	})
}

func TestFindComment_DepthFirst(t *testing.T) {
	tree := []Comment{
		visibleComment(1,
			visibleComment(2,
				visibleComment(3),
			),
		),
		visibleComment(4),
	}

	for _, id := range []int{1, 2, 3, 4} {
		got, ok := FindComment(tree, id)
		if !ok || got.ID != id {
			t.Fatalf("comment %d not found, got %#v ok=%v", id, got, ok)
		}
	}
	if _, ok := FindComment(tree, 99); ok {
		t.Fatalf("expected miss for unknown id")
	}
}

func TestFindComment_SearchesHiddenNodesToo(t *testing.T) {
	// FindComment runs on whatever tree it is handed; filtering is the
	// caller's concern.
	tree := []Comment{hiddenComment(1)}
	if _, ok := FindComment(tree, 1); !ok {
		t.Fatalf("expected to find node in unfiltered tree")
	}
}
