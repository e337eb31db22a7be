package domain

import (
	"sort"
	"time"
)

// GroupTreeNode is a group with its parent resolved and its children
// materialised. Nodes are rebuilt on every request.
type GroupTreeNode struct {
	Group      *Group           `json:"group"`
	ParentName string           `json:"parentName,omitempty"`
	Children   []*GroupTreeNode `json:"children"`
}

func (n *GroupTreeNode) SortName() string            { return n.Group.Name }
func (n *GroupTreeNode) SortPriority() *int          { return n.Group.Priority }
func (n *GroupTreeNode) SortCreationTime() time.Time { return n.Group.CreationTimestamp }

// Forest is the result of a tree assembly.
type Forest struct {
	// Nodes holds the roots, or the single requested node.
	Nodes []*GroupTreeNode `json:"nodes"`

	// Cycles lists the member names of every parent cycle that had to be
	// broken, each sorted by name.
	Cycles [][]string `json:"cycles,omitempty"`
}

// BuildForest assembles groups into a forest.
//
// groups are walked in the order given. When several groups claim the same
// child, the last claimant in that order becomes the parent. Child names with
// no matching group are ignored. A parent cycle is broken by detaching the
// member that sorts first, which then becomes a root.
//
// With an empty root every parentless node is returned. Otherwise only the
// node named root is returned, whether or not it has a parent.
func BuildForest(groups []*Group, root string) *Forest {
	order := Comparator[*GroupTreeNode](nil)

	nodes := make(map[string]*GroupTreeNode, len(groups))
	list := make([]*GroupTreeNode, 0, len(groups))
	for _, g := range groups {
		if g == nil || g.Name == "" {
			continue
		}
		if _, dup := nodes[g.Name]; dup {
			continue
		}
		n := &GroupTreeNode{Group: g, Children: []*GroupTreeNode{}}
		nodes[g.Name] = n
		list = append(list, n)
	}

	resolveParents(list, nodes)
	cycles := breakCycles(list, nodes, order)
	attachChildren(list, order)

	return &Forest{
		Nodes:  selectNodes(list, root, order),
		Cycles: cycles,
	}
}

// BuildTree is BuildForest without the cycle report.
func BuildTree(groups []*Group, root string) []*GroupTreeNode {
	return BuildForest(groups, root).Nodes
}

func resolveParents(list []*GroupTreeNode, nodes map[string]*GroupTreeNode) {
	for _, n := range list {
		for _, childName := range n.Group.Children {
			if child, ok := nodes[childName]; ok {
				child.ParentName = n.Group.Name
			}
		}
	}
}

// breakCycles follows parent pointers from every node. Each node has at most
// one parent, so every cycle is entered exactly once.
func breakCycles(list []*GroupTreeNode, nodes map[string]*GroupTreeNode, order Rule[*GroupTreeNode]) [][]string {
	const (
		unvisited = iota
		onPath
		done
	)

	state := make(map[*GroupTreeNode]int, len(list))
	var cycles [][]string

	for _, start := range list {
		if state[start] != unvisited {
			continue
		}

		var path []*GroupTreeNode
		n := start
		for n != nil && state[n] == unvisited {
			state[n] = onPath
			path = append(path, n)
			n = parentOf(n, nodes)
		}

		if n != nil && state[n] == onPath {
			members := path[indexOf(path, n):]
			cut := members[0]
			names := make([]string, 0, len(members))
			for _, m := range members {
				if order(m, cut) < 0 {
					cut = m
				}
				names = append(names, m.Group.Name)
			}
			cut.ParentName = ""
			sort.Strings(names)
			cycles = append(cycles, names)
		}

		for _, p := range path {
			state[p] = done
		}
	}
	return cycles
}

func parentOf(n *GroupTreeNode, nodes map[string]*GroupTreeNode) *GroupTreeNode {
	if n.ParentName == "" {
		return nil
	}
	return nodes[n.ParentName]
}

func indexOf(path []*GroupTreeNode, n *GroupTreeNode) int {
	for i, p := range path {
		if p == n {
			return i
		}
	}
	return 0
}

func attachChildren(list []*GroupTreeNode, order Rule[*GroupTreeNode]) {
	byParent := make(map[string][]*GroupTreeNode, len(list))
	for _, n := range list {
		if n.ParentName != "" {
			byParent[n.ParentName] = append(byParent[n.ParentName], n)
		}
	}
	for _, n := range list {
		children := byParent[n.Group.Name]
		if children == nil {
			children = []*GroupTreeNode{}
		}
		SortBy(children, order)
		n.Children = children
	}
}

func selectNodes(list []*GroupTreeNode, root string, order Rule[*GroupTreeNode]) []*GroupTreeNode {
	out := make([]*GroupTreeNode, 0)
	for _, n := range list {
		if root == "" && n.ParentName == "" || root != "" && n.Group.Name == root {
			out = append(out, n)
		}
	}
	SortBy(out, order)
	return out
}
