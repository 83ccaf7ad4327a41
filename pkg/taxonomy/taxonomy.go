// Package taxonomy holds the in-memory model of the review database's
// classification forest: the flattened attribute list, the rendering tree
// and the id indexes derived from one ReviewSetList fetch.
package taxonomy

import (
	"strconv"
	"strings"

	"github.com/eppi-vis/dashboard/pkg/eppi"
)

// Attribute is one classification code, flattened out of the nested forest.
type Attribute struct {
	ID             int64  `json:"id"`
	Name           string `json:"name"`
	ParentID       int64  `json:"parentId"`
	SetID          int64  `json:"setId"`
	SetDescription string `json:"setDescription"`
	HasChildren    bool   `json:"hasChildren"`
}

// TreeNode mirrors Attribute in the label/value shape tree widgets consume.
type TreeNode struct {
	Label    string     `json:"label"`
	Value    string     `json:"value"`
	Children []TreeNode `json:"children,omitempty"`
}

// Model is the parsed forest. Attributes preserves traversal order: parents
// precede their children, siblings keep source order. The model is built
// once per session and never mutated afterwards.
type Model struct {
	Attributes []Attribute
	Tree       []TreeNode

	byID             map[int64]int
	childrenByParent map[int64][]int
}

// ParseForest flattens the nested forest into a Model. Every top-level set
// is traversed; nodes missing an explicit parentAttributeId inherit the id
// of the enclosing node (top-level codes become roots with ParentID 0).
// Names and set descriptions are whitespace-trimmed.
func ParseForest(sets []eppi.AttributeNode) *Model {
	m := &Model{
		byID:             make(map[int64]int),
		childrenByParent: make(map[int64][]int),
	}

	for _, set := range sets {
		top := set.Attributes.AttributesList
		m.flatten(top, 0)
		m.Tree = append(m.Tree, buildTree(top)...)
	}

	for i, attr := range m.Attributes {
		if _, seen := m.byID[attr.ID]; !seen {
			m.byID[attr.ID] = i
		}
		m.childrenByParent[attr.ParentID] = append(m.childrenByParent[attr.ParentID], i)
	}

	return m
}

func (m *Model) flatten(nodes []eppi.AttributeNode, parentFallback int64) {
	for _, node := range nodes {
		nested := node.Attributes.AttributesList

		parentID := parentFallback
		if node.ParentAttributeID != nil {
			parentID = *node.ParentAttributeID
		}

		m.Attributes = append(m.Attributes, Attribute{
			ID:             node.AttributeID,
			Name:           strings.TrimSpace(node.AttributeName),
			ParentID:       parentID,
			SetID:          node.SetID,
			SetDescription: strings.TrimSpace(node.AttributeSetDescription),
			HasChildren:    len(nested) > 0,
		})

		if len(nested) > 0 {
			m.flatten(nested, node.AttributeID)
		}
	}
}

func buildTree(nodes []eppi.AttributeNode) []TreeNode {
	tree := make([]TreeNode, 0, len(nodes))
	for _, node := range nodes {
		tn := TreeNode{
			Label: strings.TrimSpace(node.AttributeName),
			Value: strconv.FormatInt(node.AttributeID, 10),
		}
		if nested := node.Attributes.AttributesList; len(nested) > 0 {
			tn.Children = buildTree(nested)
		}
		tree = append(tree, tn)
	}
	return tree
}

// ByID returns the first attribute flattened with the given id.
func (m *Model) ByID(id int64) (Attribute, bool) {
	i, ok := m.byID[id]
	if !ok {
		return Attribute{}, false
	}
	return m.Attributes[i], true
}

// NameOf returns the display name for an id, or "" when unknown.
func (m *Model) NameOf(id int64) string {
	attr, ok := m.ByID(id)
	if !ok {
		return ""
	}
	return attr.Name
}

// Children returns the attributes whose ParentID equals parentID, in
// traversal order.
func (m *Model) Children(parentID int64) []Attribute {
	idxs := m.childrenByParent[parentID]
	children := make([]Attribute, 0, len(idxs))
	for _, i := range idxs {
		children = append(children, m.Attributes[i])
	}
	return children
}

// Parents returns every attribute that has children, in traversal order.
func (m *Model) Parents() []Attribute {
	var parents []Attribute
	for _, attr := range m.Attributes {
		if attr.HasChildren {
			parents = append(parents, attr)
		}
	}
	return parents
}

// FindUnderParent resolves a display name back to the attribute carrying it
// below the given parent. Names are only unique per parent, so both have to
// match.
func (m *Model) FindUnderParent(name string, parentID int64) (Attribute, bool) {
	for _, i := range m.childrenByParent[parentID] {
		if m.Attributes[i].Name == name {
			return m.Attributes[i], true
		}
	}
	return Attribute{}, false
}

// FindParentByName resolves a parent attribute by its display name.
func (m *Model) FindParentByName(name string) (Attribute, bool) {
	for _, attr := range m.Attributes {
		if attr.HasChildren && attr.Name == name {
			return attr, true
		}
	}
	return Attribute{}, false
}
