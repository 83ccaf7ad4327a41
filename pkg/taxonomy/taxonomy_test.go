package taxonomy

import (
	"reflect"
	"testing"

	"github.com/eppi-vis/dashboard/pkg/eppi"
)

func node(id int64, name string, setID int64, children ...eppi.AttributeNode) eppi.AttributeNode {
	return eppi.AttributeNode{
		AttributeID:   id,
		AttributeName: name,
		SetID:         setID,
		Attributes:    eppi.NestedList{AttributesList: children},
	}
}

func TestParseForestFlattensAllSets(t *testing.T) {
	t.Parallel()

	sets := []eppi.AttributeNode{
		node(0, "Set A", 1,
			node(10, "Animals", 1,
				node(11, "Cats", 1),
				node(12, "Dogs", 1),
			),
		),
		node(0, "Set B", 2,
			node(20, "Plants", 2),
		),
	}

	m := ParseForest(sets)

	wantIDs := []int64{10, 11, 12, 20}
	gotIDs := make([]int64, len(m.Attributes))
	for i, attr := range m.Attributes {
		gotIDs[i] = attr.ID
	}
	if !reflect.DeepEqual(gotIDs, wantIDs) {
		t.Fatalf("flattened ids = %v, want %v", gotIDs, wantIDs)
	}

	// Second set survives flattening, not just the first.
	if m.NameOf(20) != "Plants" {
		t.Fatalf("NameOf(20) = %q, want %q", m.NameOf(20), "Plants")
	}
}

func TestParseForestParentIDs(t *testing.T) {
	t.Parallel()

	explicit := int64(99)
	sets := []eppi.AttributeNode{
		node(0, "Set", 1,
			node(10, "Root", 1,
				node(11, "Child", 1),
				eppi.AttributeNode{
					AttributeID:       12,
					AttributeName:     "Override",
					SetID:             1,
					ParentAttributeID: &explicit,
				},
			),
		),
	}

	m := ParseForest(sets)

	tests := []struct {
		id   int64
		want int64
	}{
		{id: 10, want: 0},  // top level, no fallback
		{id: 11, want: 10}, // inherits enclosing node id
		{id: 12, want: 99}, // explicit parentAttributeId wins
	}
	for _, tc := range tests {
		attr, ok := m.ByID(tc.id)
		if !ok {
			t.Fatalf("attribute %d not found", tc.id)
		}
		if attr.ParentID != tc.want {
			t.Fatalf("attribute %d ParentID = %d, want %d", tc.id, attr.ParentID, tc.want)
		}
	}
}

func TestParseForestTrimsNames(t *testing.T) {
	t.Parallel()

	sets := []eppi.AttributeNode{
		node(0, "Set", 1, node(10, "  Spaced out \t", 1)),
	}
	m := ParseForest(sets)

	if got := m.NameOf(10); got != "Spaced out" {
		t.Fatalf("NameOf(10) = %q, want %q", got, "Spaced out")
	}
}

func TestByIDFirstOccurrenceWins(t *testing.T) {
	t.Parallel()

	sets := []eppi.AttributeNode{
		node(0, "Set A", 1, node(10, "First", 1)),
		node(0, "Set B", 2, node(10, "Second", 2)),
	}
	m := ParseForest(sets)

	attr, ok := m.ByID(10)
	if !ok || attr.Name != "First" {
		t.Fatalf("ByID(10) = %+v (ok=%v), want the first flattened occurrence", attr, ok)
	}
}

func TestChildrenAndParents(t *testing.T) {
	t.Parallel()

	sets := []eppi.AttributeNode{
		node(0, "Set", 1,
			node(10, "Animals", 1,
				node(11, "Cats", 1),
				node(12, "Dogs", 1),
			),
			node(20, "Leaf", 1),
		),
	}
	m := ParseForest(sets)

	children := m.Children(10)
	if len(children) != 2 || children[0].ID != 11 || children[1].ID != 12 {
		t.Fatalf("Children(10) = %+v, want Cats then Dogs", children)
	}

	parents := m.Parents()
	wantParents := []string{"Animals"}
	gotParents := make([]string, len(parents))
	for i, p := range parents {
		gotParents[i] = p.Name
	}
	if !reflect.DeepEqual(gotParents, wantParents) {
		t.Fatalf("Parents() = %v, want %v", gotParents, wantParents)
	}

	leaf, ok := m.ByID(20)
	if !ok || leaf.HasChildren {
		t.Fatalf("ByID(20) = %+v (ok=%v), want a childless leaf", leaf, ok)
	}
}

func TestFindUnderParent(t *testing.T) {
	t.Parallel()

	// The same display name can occur under different parents; resolution
	// must respect the parent scope.
	sets := []eppi.AttributeNode{
		node(0, "Set", 1,
			node(10, "Animals", 1, node(11, "Other", 1)),
			node(20, "Plants", 1, node(21, "Other", 1)),
		),
	}
	m := ParseForest(sets)

	tests := []struct {
		name     string
		label    string
		parentID int64
		wantID   int64
		wantOK   bool
	}{
		{name: "under first parent", label: "Other", parentID: 10, wantID: 11, wantOK: true},
		{name: "under second parent", label: "Other", parentID: 20, wantID: 21, wantOK: true},
		{name: "unknown label", label: "Missing", parentID: 10, wantOK: false},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			attr, ok := m.FindUnderParent(tc.label, tc.parentID)
			if ok != tc.wantOK {
				t.Fatalf("FindUnderParent(%q, %d) ok = %v, want %v", tc.label, tc.parentID, ok, tc.wantOK)
			}
			if ok && attr.ID != tc.wantID {
				t.Fatalf("FindUnderParent(%q, %d) = %d, want %d", tc.label, tc.parentID, attr.ID, tc.wantID)
			}
		})
	}
}

func TestFindParentByName(t *testing.T) {
	t.Parallel()

	sets := []eppi.AttributeNode{
		node(0, "Set", 1,
			node(10, "Animals", 1, node(11, "Cats", 1)),
		),
	}
	m := ParseForest(sets)

	attr, ok := m.FindParentByName("Animals")
	if !ok || attr.ID != 10 {
		t.Fatalf("FindParentByName(Animals) = %+v (ok=%v), want id 10", attr, ok)
	}

	// A leaf with a matching name is not a parent.
	if _, ok := m.FindParentByName("Cats"); ok {
		t.Fatal("FindParentByName(Cats) matched a leaf")
	}
}

func TestParseForestTree(t *testing.T) {
	t.Parallel()

	sets := []eppi.AttributeNode{
		node(0, "Set", 1,
			node(10, "Animals", 1, node(11, "Cats", 1)),
		),
	}
	m := ParseForest(sets)

	want := []TreeNode{
		{
			Label:    "Animals",
			Value:    "10",
			Children: []TreeNode{{Label: "Cats", Value: "11"}},
		},
	}
	if !reflect.DeepEqual(m.Tree, want) {
		t.Fatalf("Tree = %+v, want %+v", m.Tree, want)
	}
}
