package alphabeta

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matryer/is"

	"github.com/omaralmansoori/connectfour/board"
)

func sampleTree() *SearchNode {
	return &SearchNode{
		Column:     NoColumn,
		Score:      5,
		Maximizing: true,
		Children: []*SearchNode{
			{Column: 0, Score: 2, Maximizing: false},
			{Column: 1, Score: 5, Maximizing: false, Children: []*SearchNode{
				{Column: 3, Score: 5, Maximizing: true},
			}},
		},
	}
}

func TestSearchNodeCopyIsDeep(t *testing.T) {
	is := is.New(t)
	orig := sampleTree()
	cp := orig.Copy()
	is.Equal(cp, orig)

	cp.Children[1].Children[0].Score = -99
	cp.Children = append(cp.Children, &SearchNode{Column: 6})
	is.Equal(orig.Children[1].Children[0].Score, 5)
	is.Equal(len(orig.Children), 2)
}

func TestSearchNodeNodeCount(t *testing.T) {
	is := is.New(t)
	is.Equal(sampleTree().NodeCount(), 4)
	var nilNode *SearchNode
	is.Equal(nilNode.NodeCount(), 0)
	is.Equal((&SearchNode{}).NodeCount(), 1)
}

func TestSearchNodeJSON(t *testing.T) {
	is := is.New(t)
	out, err := json.Marshal(sampleTree())
	is.NoErr(err)
	s := string(out)
	// The root was not reached by a move; its column is null.
	is.True(strings.HasPrefix(s, `{"column":null`))
	is.True(strings.Contains(s, `"column":3`))
	is.True(strings.Contains(s, `"maximizing":true`))
	// Leaves serialize an empty child list, not null.
	is.True(strings.Contains(s, `"children":[]`))
}

func TestWriteDotFile(t *testing.T) {
	is := is.New(t)
	b := board.NewBoard()
	s := newSolver(t, b)
	res, err := s.Solve(2)
	is.NoErr(err)

	path := filepath.Join(t.TempDir(), "tree.dot")
	is.NoErr(WriteDotFile(res.Tree, path))

	data, err := os.ReadFile(path)
	is.NoErr(err)
	text := string(data)
	is.True(strings.HasPrefix(text, "digraph {"))
	is.True(strings.Contains(text, "(root)"))
	is.True(strings.Contains(text, "col 3"))
}
