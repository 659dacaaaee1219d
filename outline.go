// Copyright © 2026, SAS Institute Inc., Cary, NC, USA.  All Rights Reserved.
// SPDX-License-Identifier: BSD-3-Clause

package pdfdoc

// OutlineNode is one bookmark entry. /Prev, /Last, /Parent are recorded but
// never dereferenced, per spec §4.5: only /First and /Next are walked.
type OutlineNode struct {
	Title       string
	HasTitle    bool
	Count       int64
	PrevId      NodeId
	HasPrev     bool
	NextId      NodeId
	HasNext     bool
	FirstId     NodeId
	HasFirst    bool
	LastId      NodeId
	HasLast     bool
	ParentId    NodeId
	HasParent   bool
}

// OutlineTreeArena is the flattened id→node map for a document's bookmark
// tree, mirroring PageTreeArena's arena style.
type OutlineTreeArena struct {
	rootId NodeId
	nodes  map[NodeId]*OutlineNode
}

// RootId returns the arena's root node id.
func (a *OutlineTreeArena) RootId() NodeId { return a.rootId }

// Node looks up a node by id.
func (a *OutlineTreeArena) Node(id NodeId) (*OutlineNode, bool) {
	n, ok := a.nodes[id]
	return n, ok
}

// buildOutlineTree recursively materializes an OutlineTreeArena rooted at
// the catalog's /Outlines reference, grounded on
// original_source/catalog.rs's build_outline_tree: recurse along /First
// then /Next; /Title decodes via PDFString.Text (PDFDoc or UTF-16BE
// depending on how the string was written).
func buildOutlineTree(r *resolver, rootRef ObjectRef) (*OutlineTreeArena, error) {
	nodes := make(map[NodeId]*OutlineNode)
	if err := buildOutlineNode(r, rootRef, nil, nodes, 0); err != nil {
		return nil, err
	}
	return &OutlineTreeArena{rootId: rootRef.NodeId(), nodes: nodes}, nil
}

func buildOutlineNode(r *resolver, ref ObjectRef, parent *NodeId, nodes map[NodeId]*OutlineNode, depth int) error {
	if depth > r.cfg.MaxNestingDepth {
		return newErr(KindPDFParseError, "outline tree nesting depth exceeded")
	}
	id := ref.NodeId()
	if _, already := nodes[id]; already {
		return nil
	}

	dict, err := r.fetchDict(ref.ObjNum, ref.GenNum)
	if err != nil {
		return err
	}

	node := &OutlineNode{}
	if parent != nil {
		node.ParentId = *parent
		node.HasParent = true
	}

	if v, ok := dict.Get("Prev"); ok {
		if prevRef, ok := v.(ObjectRef); ok {
			node.PrevId = prevRef.NodeId()
			node.HasPrev = true
		}
	}
	if v, ok := dict.Get("Last"); ok {
		if lastRef, ok := v.(ObjectRef); ok {
			node.LastId = lastRef.NodeId()
			node.HasLast = true
		}
	}
	if v, ok := dict.Get("Title"); ok {
		if s, ok := v.(PDFString); ok {
			node.Title = s.Text()
			node.HasTitle = true
		}
	}
	if v, ok := dict.Get("Count"); ok {
		switch c := v.(type) {
		case Integer:
			node.Count = int64(c)
		case Real:
			node.Count = int64(c)
		}
	}

	nodes[id] = node

	if v, ok := dict.Get("First"); ok {
		if firstRef, ok := v.(ObjectRef); ok {
			node.FirstId = firstRef.NodeId()
			node.HasFirst = true
			if err := buildOutlineNode(r, firstRef, &id, nodes, depth+1); err != nil {
				return err
			}
		}
	}
	if v, ok := dict.Get("Next"); ok {
		if nextRef, ok := v.(ObjectRef); ok {
			node.NextId = nextRef.NodeId()
			node.HasNext = true
			if err := buildOutlineNode(r, nextRef, parent, nodes, depth+1); err != nil {
				return err
			}
		}
	}
	return nil
}
