package tree

import (
	"errors"
	"testing"

	"github.com/joshuapare/confkit/pkg/types"
)

func buildSearchFixture(t *testing.T) *Node {
	t.Helper()
	root := NewRoot()
	root.CreateComment("header", Bottom())
	root.CreateDirective("user", "alice", nil, Bottom())
	root.CreateDirective("user", "bob", Attrs{{Key: "role", Value: "admin"}}, Bottom())
	root.CreateSection("user", nil, Bottom())
	root.CreateBlank(Bottom())
	root.CreateDirective("group", "staff", nil, Bottom())
	return root
}

func TestFindFilters(t *testing.T) {
	root := buildSearchFixture(t)

	tests := []struct {
		name    string
		m       Match
		wantIdx int // expected position in root.Children, -1 for no match
	}{
		{"by name only picks last regardless of kind", Match{Name: "user"}, 3},
		{"kind narrows to directives", Match{Kind: types.KindDirective, Name: "user"}, 2},
		{"content filter", Match{Content: "alice"}, 1},
		{"attribute subset", Match{Attrs: Attrs{{Key: "role", Value: "admin"}}}, 2},
		{"attribute mismatch", Match{Attrs: Attrs{{Key: "role", Value: "guest"}}}, -1},
		{"zero match picks last child", Match{}, 5},
		{"no such name", Match{Name: "absent"}, -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := root.Find(tt.m)
			if err != nil {
				t.Fatalf("Find: %v", err)
			}
			if tt.wantIdx < 0 {
				if got != nil {
					t.Fatalf("expected no match, got child %d", got.Index())
				}
				return
			}
			if got == nil {
				t.Fatalf("expected child %d, got no match", tt.wantIdx)
			}
			if got.Index() != tt.wantIdx {
				t.Errorf("expected child %d, got %d", tt.wantIdx, got.Index())
			}
		})
	}
}

func TestFindAtIndexing(t *testing.T) {
	root := NewRoot()
	root.CreateDirective("app", "one", nil, Bottom())
	root.CreateDirective("other", "x", nil, Bottom())
	root.CreateDirective("app", "two", nil, Bottom())
	root.CreateDirective("app", "three", nil, Bottom())

	m := Match{Kind: types.KindDirective, Name: "app"}

	first, _ := root.FindAt(m, 0)
	if first == nil || first.Content != "one" {
		t.Errorf("index 0 should be the first match, got %+v", first)
	}
	mid, _ := root.FindAt(m, 1)
	if mid == nil || mid.Content != "two" {
		t.Errorf("index 1 should skip non-matching siblings, got %+v", mid)
	}
	last, _ := root.FindAt(m, -1)
	if last == nil || last.Content != "three" {
		t.Errorf("negative index should be the last match, got %+v", last)
	}
	oob, err := root.FindAt(m, 3)
	if err != nil || oob != nil {
		t.Errorf("out-of-range index should be nil without error, got %v %v", oob, err)
	}
}

func TestCountFilters(t *testing.T) {
	root := buildSearchFixture(t)

	all, _ := root.Count(Match{})
	if all != 6 {
		t.Errorf("zero match should count all children, got %d", all)
	}
	dirs, _ := root.Count(Match{Kind: types.KindDirective})
	if dirs != 3 {
		t.Errorf("directive count should be 3, got %d", dirs)
	}
	users, _ := root.Count(Match{Kind: types.KindDirective, Name: "user"})
	if users != 2 {
		t.Errorf("user directive count should be 2, got %d", users)
	}
}

func TestSearchPath(t *testing.T) {
	root := NewRoot()
	db, _ := root.CreateSection("DB", Attrs{{Key: "host", Value: "localhost"}}, Bottom())
	user, _ := db.CreateDirective("user", "admin", nil, Bottom())
	root.CreateSection("DB", Attrs{{Key: "host", Value: "backup"}}, Bottom())

	got, err := root.SearchPath(StepAttrs("DB", Attrs{{Key: "host", Value: "localhost"}}), Step("user"))
	if err != nil {
		t.Fatalf("SearchPath: %v", err)
	}
	if got != user {
		t.Error("SearchPath should land on the user directive of the localhost DB section")
	}

	miss, err := root.SearchPath(StepAttrs("DB", Attrs{{Key: "host", Value: "nowhere"}}), Step("user"))
	if err != nil || miss != nil {
		t.Errorf("non-matching attribute filter should yield no match, got %v %v", miss, err)
	}

	if _, err := root.SearchPath(StepAttrs("DB", Attrs{{Key: "host", Value: "localhost"}}), Step("user"), Step("deeper")); !errors.Is(err, types.ErrNotSection) {
		t.Errorf("descending through a directive should fail with ErrNotSection, got %v", err)
	}

	self, err := root.SearchPath()
	if err != nil || self != root {
		t.Errorf("an empty path should return the node itself, got %v %v", self, err)
	}
}
