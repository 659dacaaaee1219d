// Copyright © 2026, SAS Institute Inc., Cary, NC, USA.  All Rights Reserved.
// SPDX-License-Identifier: BSD-3-Clause

package pdfdoc

// PageNode is one node of the page tree: either an intermediate /Pages node
// (IsLeaf false; Kids is nil when its /Count is 0) or a leaf /Page (IsLeaf
// true, Kids nil).
type PageNode struct {
	Attrs     Dict
	Count     int
	Kids      []NodeId
	IsLeaf    bool
	ParentId  NodeId
	HasParent bool
}

// PageTreeArena is the flattened, cycle-free page tree spec §9 mandates:
// an id→node map plus a root id, built once at open time. leafOrder
// records leaf ids in depth-first left-to-right order as encountered
// during the build, since the nodes map itself gives no ordering
// guarantee (spec §3).
type PageTreeArena struct {
	rootId    NodeId
	nodes     map[NodeId]*PageNode
	leafOrder []NodeId
}

// RootId returns the arena's root node id.
func (a *PageTreeArena) RootId() NodeId { return a.rootId }

// Node looks up a node by id.
func (a *PageTreeArena) Node(id NodeId) (*PageNode, bool) {
	n, ok := a.nodes[id]
	return n, ok
}

// PageCount returns the number of leaf (page) nodes in the arena.
func (a *PageTreeArena) PageCount() int {
	n := 0
	for _, node := range a.nodes {
		if node.IsLeaf {
			n++
		}
	}
	return n
}

// PageIds returns the ids of every leaf (page) node, in depth-first
// left-to-right order (spec §4.4).
func (a *PageTreeArena) PageIds() []NodeId {
	return a.leafOrder
}

type resolver struct {
	tok   *Tokenizer
	cfg   *Config
	xref  map[uint32]XEntry
}

func (r *resolver) fetchDict(objNum uint32, genNum uint16) (Dict, error) {
	entry, err := lookupXref(r.xref, objNum, genNum)
	if err != nil {
		return nil, err
	}
	p := NewParser(r.tok, r.cfg)
	ind, err := p.ParseIndirectAt(int64(entry.Value))
	if err != nil {
		return nil, err
	}
	dict, ok := ind.Inner.(Dict)
	if !ok {
		return nil, newErr(KindPDFParseError, "expected a dictionary object")
	}
	return dict, nil
}

// buildPageTree recursively materializes a PageTreeArena rooted at the
// catalog's /Pages reference, grounded on original_source/catalog.rs's
// build_page_tree: intermediate /Pages nodes recurse into /Kids, leaves are
// any node whose /Type is not /Pages. Cycle detection uses an
// "already building" set, since a self-referential tree would otherwise
// recurse forever.
func buildPageTree(r *resolver, rootRef ObjectRef) (*PageTreeArena, error) {
	nodes := make(map[NodeId]*PageNode)
	building := make(map[NodeId]bool)
	var leafOrder []NodeId
	if err := buildPageNode(r, rootRef, nil, nodes, building, &leafOrder, 0); err != nil {
		return nil, err
	}
	return &PageTreeArena{rootId: rootRef.NodeId(), nodes: nodes, leafOrder: leafOrder}, nil
}

func buildPageNode(r *resolver, ref ObjectRef, parent *NodeId, nodes map[NodeId]*PageNode, building map[NodeId]bool, leafOrder *[]NodeId, depth int) error {
	if depth > r.cfg.MaxNestingDepth {
		return newErr(KindPDFParseError, "page tree nesting depth exceeded")
	}
	id := ref.NodeId()
	if building[id] {
		return newErr(KindPDFParseError, "cyclic page tree")
	}
	if _, already := nodes[id]; already {
		return nil
	}
	building[id] = true
	defer delete(building, id)

	dict, err := r.fetchDict(ref.ObjNum, ref.GenNum)
	if err != nil {
		return err
	}

	node := &PageNode{Attrs: dict}
	if parent != nil {
		node.ParentId = *parent
		node.HasParent = true
	}

	if !dict.NameIs("Type", "Pages") {
		node.IsLeaf = true
		node.Kids = nil
		node.Count = 0
		nodes[id] = node
		*leafOrder = append(*leafOrder, id)
		return nil
	}

	countObj, ok := dict.Get("Count")
	if !ok {
		return objectAttrMiss("Count")
	}
	count := intOf(countObj, -1)
	if count < 0 {
		return newErr(KindPDFParseError, "/Count is not a number")
	}
	node.Count = count

	if count > 0 {
		kidsObj, ok := dict.Get("Kids")
		if !ok {
			return objectAttrMiss("Kids")
		}
		kidsArr, ok := kidsObj.(Array)
		if !ok {
			return newErr(KindPDFParseError, "/Kids is not an array")
		}
		children := make([]NodeId, 0, len(kidsArr))
		for _, kid := range kidsArr {
			kidRef, ok := kid.(ObjectRef)
			if !ok {
				return newErr(KindPDFParseError, "/Kids entry is not an object reference")
			}
			children = append(children, kidRef.NodeId())
			if err := buildPageNode(r, kidRef, &id, nodes, building, leafOrder, depth+1); err != nil {
				return err
			}
		}
		node.Kids = children
	}
	nodes[id] = node
	return nil
}
