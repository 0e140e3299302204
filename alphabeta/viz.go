package alphabeta

import (
	"fmt"
	"os"
	"strings"
)

// Attempt to visualize the minimax tree with dot.

type dotfile struct {
	declarations []string
	directives   []string
}

func genDotFile(n *SearchNode, d *dotfile) {
	for _, child := range n.Children {
		turn := "min"
		if child.Maximizing {
			turn = "max"
		}
		decl := fmt.Sprintf("n_%p [label=\"col %d\\nscore: %d\\n(%s)\"];",
			child, child.Column, child.Score, turn)
		conn := fmt.Sprintf("n_%p -> n_%p;", n, child)
		d.declarations = append(d.declarations, decl)
		d.directives = append(d.directives, conn)
		genDotFile(child, d)
	}
}

// WriteDotFile saves the search tree rooted at root as a Graphviz dot file.
func WriteDotFile(root *SearchNode, outFile string) error {
	d := &dotfile{}
	genDotFile(root, d)
	var sb strings.Builder
	sb.WriteString("digraph {\n")
	fmt.Fprintf(&sb, " n_%p [label=\"(root)\\nscore: %d\"]\n", root, root.Score)
	for _, decl := range d.declarations {
		fmt.Fprintf(&sb, " %v\n", decl)
	}
	sb.WriteString("\n")
	for _, dir := range d.directives {
		fmt.Fprintf(&sb, " %v\n", dir)
	}
	sb.WriteString("}\n")
	return os.WriteFile(outFile, []byte(sb.String()), 0644)
}
