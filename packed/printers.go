package packed

import (
	"fmt"
	"strings"
)

// debug utilities

// PathString renders a path as side:hex pairs, leaf first
func PathString(path Path, sep string) string {
	spath := make([]string, 0, len(path))
	for _, node := range path {
		spath = append(spath, fmt.Sprintf("%s:%s", node.Side, node.Sibling))
	}
	return strings.Join(spath, sep)
}

func nodesString(t *Tree, sep string) string {
	snodes := make([]string, 0, t.Size())
	for i, s := range t.nodes {
		if !s.set {
			snodes = append(snodes, fmt.Sprintf("%d:-", i))
			continue
		}
		snodes = append(snodes, fmt.Sprintf("%d:%x", i, s.key[:4]))
	}
	return strings.Join(snodes, sep)
}
