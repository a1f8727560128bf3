package grip

import (
	"sort"
	"strings"
)

// HitShape narrows a node's hit region inside its border box. Coordinates
// are local to the border box's top-left corner.
type HitShape interface {
	Contains(x, y float64) bool
}

// nodeIDCounter is a plain counter; the tree is single-threaded.
var nodeIDCounter uint32

func nextNodeID() uint32 {
	nodeIDCounter++
	return nodeIDCounter
}

// Node is an element of the interaction tree. A single flat struct is used
// for every element; behaviours (Draggable, Droppable, Touch) are attached
// from the outside and keyed by node identity.
type Node struct {
	// Identity
	ID   uint32
	Name string // matched by "#name" selectors
	Tag  string // matched by bare tag selectors

	// Hierarchy
	Parent   *Node
	children []*Node

	// Layout. X/Y place the margin box relative to the parent's padding
	// edge (the parent is always the offset parent). Width/Height are the
	// border-box size.
	X, Y          float64
	Width, Height float64
	Margin        Edges
	Border        Edges
	Padding       Edges

	// Scrolling
	Overflow      Overflow
	ScrollX       float64
	ScrollY       float64
	ContentWidth  float64 // scroll width; 0 means the border-box width
	ContentHeight float64 // scroll height; 0 means the border-box height

	// Visibility & interaction
	Visible      bool
	Interactable bool // false behaves like pointer-events: none
	ZIndex       int

	// Metadata
	classes  []string
	attrs    map[string]string
	UserData any
	EntityID uint32

	// Hit testing
	HitShape HitShape

	// Internal
	disposed       bool
	childrenSorted bool
	sortedChildren []*Node // reused buffer for ZIndex-sorted traversal order
}

// NewElement creates a visible, interactable node with the given tag and
// name. Either may be empty.
func NewElement(tag, name string) *Node {
	return &Node{
		ID:             nextNodeID(),
		Tag:            tag,
		Name:           name,
		Visible:        true,
		Interactable:   true,
		childrenSorted: true,
	}
}

// NewBox creates a "div" element with the given name, position and size.
func NewBox(name string, x, y, w, h float64) *Node {
	n := NewElement("div", name)
	n.X, n.Y = x, y
	n.Width, n.Height = w, h
	return n
}

// --- Tree manipulation ---

// AddChild appends child to this node's children.
// If child already has a parent, it is removed from that parent first.
// Panics if child is nil or child is an ancestor of this node (cycle).
func (n *Node) AddChild(child *Node) {
	if child == nil {
		panic("grip: cannot add nil child")
	}
	if globalDebug {
		debugCheckDisposed(n, "AddChild (parent)")
		debugCheckDisposed(child, "AddChild (child)")
	}
	if isAncestor(child, n) {
		panic("grip: adding child would create a cycle")
	}
	if child.Parent != nil {
		child.Parent.removeChildByPtr(child)
	}
	child.Parent = n
	n.children = append(n.children, child)
	n.childrenSorted = false
	if globalDebug {
		debugCheckTreeDepth(child)
		debugCheckChildCount(n)
	}
}

// AddChildAt inserts child at the given index.
// Same reparenting and cycle-check behavior as AddChild.
func (n *Node) AddChildAt(child *Node, index int) {
	if child == nil {
		panic("grip: cannot add nil child")
	}
	if isAncestor(child, n) {
		panic("grip: adding child would create a cycle")
	}
	if child.Parent != nil {
		child.Parent.removeChildByPtr(child)
	}
	if index < 0 || index > len(n.children) {
		panic("grip: child index out of range")
	}
	child.Parent = n
	n.children = append(n.children, nil)
	copy(n.children[index+1:], n.children[index:])
	n.children[index] = child
	n.childrenSorted = false
}

// RemoveChild detaches child from this node.
// Panics if child.Parent != n.
func (n *Node) RemoveChild(child *Node) {
	if child.Parent != n {
		panic("grip: child's parent is not this node")
	}
	n.removeChildByPtr(child)
	child.Parent = nil
	n.childrenSorted = false
}

// RemoveFromParent detaches this node from its parent.
// No-op if this node has no parent.
func (n *Node) RemoveFromParent() {
	if n.Parent == nil {
		return
	}
	n.Parent.RemoveChild(n)
}

// Children returns the child list. The returned slice MUST NOT be mutated by the caller.
func (n *Node) Children() []*Node {
	return n.children
}

// NumChildren returns the number of children.
func (n *Node) NumChildren() int {
	return len(n.children)
}

// ChildAt returns the child at the given index.
func (n *Node) ChildAt(index int) *Node {
	return n.children[index]
}

// SetZIndex sets the node's ZIndex and marks the parent's children as unsorted.
func (n *Node) SetZIndex(z int) {
	if n.ZIndex == z {
		return
	}
	n.ZIndex = z
	if n.Parent != nil {
		n.Parent.childrenSorted = false
	}
}

// Contains reports whether other is n or one of its descendants.
func (n *Node) Contains(other *Node) bool {
	if n == nil {
		return false
	}
	return isAncestor(n, other)
}

// IsVisible reports whether the node and all of its ancestors are visible
// and the node has a non-empty box.
func (n *Node) IsVisible() bool {
	if n == nil || n.disposed {
		return false
	}
	for p := n; p != nil; p = p.Parent {
		if !p.Visible {
			return false
		}
	}
	return n.Width > 0 || n.Height > 0
}

// Clone returns a deep copy of the node and its subtree with fresh IDs and
// no parent. Behaviours and listeners are not copied.
func (n *Node) Clone() *Node {
	c := &Node{
		ID:             nextNodeID(),
		Name:           n.Name,
		Tag:            n.Tag,
		X:              n.X,
		Y:              n.Y,
		Width:          n.Width,
		Height:         n.Height,
		Margin:         n.Margin,
		Border:         n.Border,
		Padding:        n.Padding,
		Overflow:       n.Overflow,
		ScrollX:        n.ScrollX,
		ScrollY:        n.ScrollY,
		ContentWidth:   n.ContentWidth,
		ContentHeight:  n.ContentHeight,
		Visible:        n.Visible,
		Interactable:   n.Interactable,
		ZIndex:         n.ZIndex,
		UserData:       n.UserData,
		HitShape:       n.HitShape,
		childrenSorted: true,
	}
	if len(n.classes) > 0 {
		c.classes = append([]string(nil), n.classes...)
	}
	if len(n.attrs) > 0 {
		c.attrs = make(map[string]string, len(n.attrs))
		for k, v := range n.attrs {
			c.attrs[k] = v
		}
	}
	for _, child := range n.children {
		cc := child.Clone()
		cc.Parent = c
		c.children = append(c.children, cc)
	}
	c.childrenSorted = len(c.children) == 0
	return c
}

// --- Classes & attributes ---

// AddClass adds each class that is not already present.
func (n *Node) AddClass(classes ...string) {
	for _, c := range classes {
		if c != "" && !n.HasClass(c) {
			n.classes = append(n.classes, c)
		}
	}
}

// RemoveClass removes each given class.
func (n *Node) RemoveClass(classes ...string) {
	for _, c := range classes {
		for i, have := range n.classes {
			if have == c {
				n.classes = append(n.classes[:i], n.classes[i+1:]...)
				break
			}
		}
	}
}

// ToggleClass adds or removes class depending on on.
func (n *Node) ToggleClass(class string, on bool) {
	if on {
		n.AddClass(class)
	} else {
		n.RemoveClass(class)
	}
}

// HasClass reports whether the node carries class.
func (n *Node) HasClass(class string) bool {
	for _, have := range n.classes {
		if have == class {
			return true
		}
	}
	return false
}

// Classes returns the class list. The returned slice MUST NOT be mutated.
func (n *Node) Classes() []string {
	return n.classes
}

// SetAttr sets an attribute. Setting "class" replaces the class list.
func (n *Node) SetAttr(name, value string) {
	if name == "class" {
		n.classes = n.classes[:0]
		n.AddClass(strings.Fields(value)...)
		return
	}
	if n.attrs == nil {
		n.attrs = make(map[string]string)
	}
	n.attrs[name] = value
}

// Attr returns the attribute value and whether it is set.
func (n *Node) Attr(name string) (string, bool) {
	if name == "class" {
		return strings.Join(n.classes, " "), len(n.classes) > 0
	}
	v, ok := n.attrs[name]
	return v, ok
}

// RemoveAttr deletes an attribute.
func (n *Node) RemoveAttr(name string) {
	delete(n.attrs, name)
}

// attrKeys returns attribute names in sorted order.
func (n *Node) attrKeys() []string {
	keys := make([]string, 0, len(n.attrs))
	for k := range n.attrs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// --- Disposal ---

// Dispose removes this node from its parent, marks it as disposed,
// and recursively disposes all descendants. Behaviours attached to the
// node should be destroyed first.
func (n *Node) Dispose() {
	if n.disposed {
		return
	}
	n.RemoveFromParent()
	n.dispose()
}

func (n *Node) dispose() {
	n.disposed = true
	n.ID = 0
	for _, child := range n.children {
		child.Parent = nil
		child.dispose()
	}
	n.children = nil
	n.sortedChildren = nil
	n.Parent = nil
	n.HitShape = nil
	n.UserData = nil
	n.attrs = nil
}

// IsDisposed returns true if this node has been disposed.
func (n *Node) IsDisposed() bool {
	return n.disposed
}

// --- Helpers ---

// isAncestor reports whether candidate is node or an ancestor of node.
func isAncestor(candidate, node *Node) bool {
	for p := node; p != nil; p = p.Parent {
		if p == candidate {
			return true
		}
	}
	return false
}

// removeChildByPtr removes child from n.children without clearing child.Parent.
// Uses copy+nil to avoid retaining a dangling pointer in the backing array.
func (n *Node) removeChildByPtr(child *Node) {
	for i, c := range n.children {
		if c == child {
			copy(n.children[i:], n.children[i+1:])
			n.children[len(n.children)-1] = nil
			n.children = n.children[:len(n.children)-1]
			return
		}
	}
}
