package domain

import "strings"

// RenderTree draws nodes and their descendants as an ASCII tree:
//
//	Tools
//	├── Editors
//	│   └── Vim
//	└── Terminals
func RenderTree(nodes []*GroupTreeNode) string {
	var b strings.Builder
	for _, n := range nodes {
		n.render(&b, "", "")
	}
	return b.String()
}

func (n *GroupTreeNode) render(b *strings.Builder, prefix, childPrefix string) {
	b.WriteString(prefix)
	b.WriteString(n.nodeText())
	b.WriteByte('\n')
	for i, child := range n.Children {
		if i < len(n.Children)-1 {
			child.render(b, childPrefix+"├── ", childPrefix+"│   ")
		} else {
			child.render(b, childPrefix+"└── ", childPrefix+"    ")
		}
	}
}

func (n *GroupTreeNode) nodeText() string {
	if n.Group.DisplayName != "" {
		return n.Group.DisplayName
	}
	return n.Group.Name
}
