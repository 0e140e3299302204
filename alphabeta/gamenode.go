package alphabeta

import (
	"encoding/json"
	"fmt"
)

// NoColumn marks a SearchNode that was not reached by a move (the root).
const NoColumn = -1

// SearchNode is one explored node of the search tree. Each node exclusively
// owns its children; the whole tree is owned by the SearchResult that holds
// its root. Siblings pruned by an alpha-beta cutoff were never visited and
// so never appear as children.
type SearchNode struct {
	// Column is the move that led to this node, or NoColumn at the root.
	Column int
	// Score is the value backed up to (or evaluated at) this node.
	Score int
	// Maximizing reports whose turn it is at this node: true if the
	// searching side is to move here.
	Maximizing bool
	Children   []*SearchNode
}

func (n *SearchNode) String() string {
	return fmt.Sprintf("<col: %d score: %d max: %v children: %d>",
		n.Column, n.Score, n.Maximizing, len(n.Children))
}

// Copy returns a deep copy of the subtree rooted at n. Hand copies outward;
// the solver's own tree is rebuilt and discarded on every search.
func (n *SearchNode) Copy() *SearchNode {
	if n == nil {
		return nil
	}
	c := &SearchNode{Column: n.Column, Score: n.Score, Maximizing: n.Maximizing}
	if len(n.Children) > 0 {
		c.Children = make([]*SearchNode, len(n.Children))
		for i, child := range n.Children {
			c.Children[i] = child.Copy()
		}
	}
	return c
}

// NodeCount returns the number of nodes in the subtree rooted at n.
func (n *SearchNode) NodeCount() int {
	if n == nil {
		return 0
	}
	count := 1
	for _, child := range n.Children {
		count += child.NodeCount()
	}
	return count
}

type searchNodeJSON struct {
	Column     *int          `json:"column"`
	Score      int           `json:"score"`
	Maximizing bool          `json:"maximizing"`
	Children   []*SearchNode `json:"children"`
}

// MarshalJSON emits the renderer-facing shape; the root's column is null.
func (n *SearchNode) MarshalJSON() ([]byte, error) {
	out := searchNodeJSON{
		Score:      n.Score,
		Maximizing: n.Maximizing,
		Children:   n.Children,
	}
	if out.Children == nil {
		out.Children = []*SearchNode{}
	}
	if n.Column != NoColumn {
		col := n.Column
		out.Column = &col
	}
	return json.Marshal(out)
}
