// Package threading turns a flat list of comments into reply trees.
//
// Storage allows parent chains of any depth. BuildShallow renders one level:
// every reply is attached to its top-level ancestor.
package threading

import (
	"inkwell/internal/core"
)

// buildDeep returns top-level comments with their replies nested under their
// direct parents, the shape storage keeps. Comments whose parent is missing, or
// whose ancestry loops, are top-level. Input order is kept among siblings.
func buildDeep(comments []*core.Comment) []*core.ThreadedComment {
	nodes := newNodes(comments)
	roots := resolveRoots(comments)

	top := make([]*core.ThreadedComment, 0)
	for _, c := range comments {
		node := nodes[c.ID]

		if isTopLevel(c, roots) {
			top = append(top, node)
			continue
		}
		nodes[*c.ParentID].Replies = append(nodes[*c.ParentID].Replies, node)
	}

	return top
}

// BuildShallow is like buildDeep, but replies of replies are attached to their
// top-level ancestor, so the result is at most one level deep.
func BuildShallow(comments []*core.Comment) []*core.ThreadedComment {
	nodes := newNodes(comments)
	roots := resolveRoots(comments)

	top := make([]*core.ThreadedComment, 0)
	for _, c := range comments {
		node := nodes[c.ID]

		if isTopLevel(c, roots) {
			top = append(top, node)
			continue
		}
		root := nodes[roots[c.ID]]
		root.Replies = append(root.Replies, node)
	}

	return top
}

// count returns the number of comments in threads, replies included.
func count(threads []*core.ThreadedComment) int {
	n := 0
	for _, t := range threads {
		n += 1 + count(t.Replies)
	}
	return n
}

func newNodes(comments []*core.Comment) map[string]*core.ThreadedComment {
	nodes := make(map[string]*core.ThreadedComment, len(comments))
	for _, c := range comments {
		nodes[c.ID] = &core.ThreadedComment{Comment: c, Replies: []*core.ThreadedComment{}}
	}
	return nodes
}

func isTopLevel(c *core.Comment, roots map[string]string) bool {
	root := roots[c.ID]
	return root == "" || root == c.ID
}

// resolveRoots maps every comment id to the id of its top-level ancestor. An empty
// value means the ancestry loops.
func resolveRoots(comments []*core.Comment) map[string]string {
	byID := make(map[string]*core.Comment, len(comments))
	for _, c := range comments {
		byID[c.ID] = c
	}

	roots := make(map[string]string, len(comments))

	for _, c := range comments {
		var path []string
		seen := map[string]bool{}
		root := ""

		cur := c.ID
		for {
			if r, ok := roots[cur]; ok {
				root = r
				break
			}
			if seen[cur] {
				break
			}
			seen[cur] = true
			path = append(path, cur)

			parentID := byID[cur].ParentID
			if parentID == nil {
				root = cur
				break
			}
			if _, ok := byID[*parentID]; !ok {
				root = cur
				break
			}
			cur = *parentID
		}

		for _, id := range path {
			roots[id] = root
		}
	}

	return roots
}
