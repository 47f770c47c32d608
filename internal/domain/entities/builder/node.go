package builder

// NodeType tags the content variant a node carries.
type NodeType string

const (
	NodeTypeEditor         NodeType = "editor"
	NodeTypeText           NodeType = "text"
	NodeTypeSlot           NodeType = "slot"
	NodeTypeMenu           NodeType = "menu"
	NodeTypeFrame          NodeType = "frame"
	NodeTypeSeparator      NodeType = "separator"
	NodeTypeButton         NodeType = "button"
	NodeTypeCard           NodeType = "card"
	NodeTypeImage          NodeType = "image"
	NodeTypeCollectionList NodeType = "collection-list"
	NodeTypeShape          NodeType = "shape"
	NodeTypeShadcn         NodeType = "shadcn"
	NodeTypeUnknown        NodeType = "unknown"
)

// KnownNodeTypes is the set of node types this schema version understands.
// Anything else round-trips as NodeTypeUnknown.
var KnownNodeTypes = map[NodeType]bool{
	NodeTypeEditor:         true,
	NodeTypeText:           true,
	NodeTypeSlot:           true,
	NodeTypeMenu:           true,
	NodeTypeFrame:          true,
	NodeTypeSeparator:      true,
	NodeTypeButton:         true,
	NodeTypeCard:           true,
	NodeTypeImage:          true,
	NodeTypeCollectionList: true,
	NodeTypeShape:          true,
	NodeTypeShadcn:         true,
	NodeTypeUnknown:        true,
}

// IsContainerType reports whether a type always carries a child list.
func IsContainerType(t NodeType) bool {
	return t == NodeTypeFrame || t == NodeTypeShape
}

// NodeMeta carries optional editor affordances for a node.
type NodeMeta struct {
	Name      string `json:"name,omitempty"`
	Hidden    bool   `json:"hidden,omitempty"`
	Collapsed bool   `json:"collapsed,omitempty"`
}

// IsZero reports whether no metadata flag is set.
func (m *NodeMeta) IsZero() bool {
	return m == nil || (m.Name == "" && !m.Hidden && !m.Collapsed)
}

// IDSource generates document-unique node ids. It is injected so tests can
// supply deterministic ids.
type IDSource func() string

// Node is the unit of content on the canvas.
//
// Container types (frame, shape) always carry Nodes, possibly empty; shadcn
// wrappers carry Nodes only when they wrap children; no other type ever has
// Nodes. Unknown nodes keep the foreign type tag in OriginalType and their
// payload verbatim in Data.
type Node struct {
	ID           string         `json:"id"`
	Type         NodeType       `json:"type"`
	OriginalType string         `json:"originalType,omitempty"`
	Data         map[string]any `json:"data"`
	Meta         *NodeMeta      `json:"meta,omitempty"`
	Frames       NodeFrames     `json:"frames"`
	Nodes        []*Node        `json:"nodes,omitempty"`
}

// IsContainer reports whether this node always carries a child list.
func (n *Node) IsContainer() bool {
	return IsContainerType(n.Type)
}

// Clone returns a deep copy of the node, preserving ids.
func (n *Node) Clone() *Node {
	if n == nil {
		return nil
	}

	out := &Node{
		ID:           n.ID,
		Type:         n.Type,
		OriginalType: n.OriginalType,
		Data:         CloneData(n.Data),
		Frames:       n.Frames,
	}
	if n.Meta != nil {
		meta := *n.Meta
		out.Meta = &meta
	}
	if n.Nodes != nil {
		out.Nodes = CloneNodes(n.Nodes)
	}
	return out
}

// CloneWithIDs returns a deep copy with every id regenerated from ids.
func (n *Node) CloneWithIDs(ids IDSource) *Node {
	out := n.Clone()
	out.reassignIDs(ids)
	return out
}

func (n *Node) reassignIDs(ids IDSource) {
	n.ID = ids()
	for _, child := range n.Nodes {
		child.reassignIDs(ids)
	}
}

// CloneNodes deep-copies a node list, preserving ids.
func CloneNodes(nodes []*Node) []*Node {
	out := make([]*Node, len(nodes))
	for i, n := range nodes {
		out[i] = n.Clone()
	}
	return out
}

// FindNode searches a node list depth-first for a node id.
func FindNode(nodes []*Node, id string) *Node {
	for _, n := range nodes {
		if n.ID == id {
			return n
		}
		if found := FindNode(n.Nodes, id); found != nil {
			return found
		}
	}
	return nil
}

// FindFirstByType searches a node list depth-first for the first node of a
// type. Returns nil when no node matches.
func FindFirstByType(nodes []*Node, t NodeType) *Node {
	for _, n := range nodes {
		if n.Type == t {
			return n
		}
		if found := FindFirstByType(n.Nodes, t); found != nil {
			return found
		}
	}
	return nil
}

// InsertNode appends a node to the children of parentID, or to the root list
// when parentID is empty. The parent must be a container; the container
// invariant is preserved.
func (d *Document) InsertNode(parentID string, node *Node) bool {
	if node == nil {
		return false
	}
	if IsContainerType(node.Type) && node.Nodes == nil {
		node.Nodes = []*Node{}
	}

	if parentID == "" {
		d.Nodes = append(d.Nodes, node)
		return true
	}

	parent := FindNode(d.Nodes, parentID)
	if parent == nil || !parent.IsContainer() {
		return false
	}
	parent.Nodes = append(parent.Nodes, node)
	return true
}

// RemoveNode removes a node (and its subtree) by id anywhere in the tree.
func (d *Document) RemoveNode(id string) bool {
	_, ok := removeFromList(&d.Nodes, id)
	return ok
}

func removeFromList(nodes *[]*Node, id string) (*Node, bool) {
	for i, n := range *nodes {
		if n.ID == id {
			*nodes = append((*nodes)[:i], (*nodes)[i+1:]...)
			return n, true
		}
		if n.Nodes != nil {
			if removed, ok := removeFromList(&n.Nodes, id); ok {
				return removed, true
			}
		}
	}
	return nil, false
}

func cloneValue(v any) any {
	switch val := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			out[k] = cloneValue(item)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = cloneValue(item)
		}
		return out
	default:
		return val
	}
}

// CloneData deep-copies an arbitrary JSON-shaped payload.
func CloneData(data map[string]any) map[string]any {
	if data == nil {
		return map[string]any{}
	}
	return cloneValue(data).(map[string]any)
}
