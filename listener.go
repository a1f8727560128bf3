package grip

// Listener receives raw pointer events.
type Listener func(e *PointerEvent)

type listenerEntry struct {
	id       uint32
	fn       Listener
	selector *Selector
	removed  bool
}

type phaseListeners [numPhases][]*listenerEntry

// listenerRegistry stores per-node and document-level listeners. Slices are
// replaced rather than edited in place on removal so that a dispatch holding
// an older slice never sees entries shift under it.
type listenerRegistry struct {
	nodes  map[*Node]*phaseListeners
	doc    phaseListeners
	nextID uint32
}

// ListenerHandle allows removing a registered listener.
type ListenerHandle struct {
	id    uint32
	reg   *listenerRegistry
	node  *Node
	phase Phase
}

// Remove unregisters the listener. A listener removed while an event is
// being dispatched does not run for the rest of that dispatch. Calling
// Remove more than once, or on a zero handle, is a no-op.
func (h ListenerHandle) Remove() {
	if h.reg == nil || h.id == 0 {
		return
	}
	var list *[]*listenerEntry
	if h.node == nil {
		list = &h.reg.doc[h.phase]
	} else {
		pl := h.reg.nodes[h.node]
		if pl == nil {
			return
		}
		list = &pl[h.phase]
	}
	*list = removeListener(*list, h.id)
	if h.node != nil && h.reg.nodes[h.node].empty() {
		delete(h.reg.nodes, h.node)
	}
}

func removeListener(s []*listenerEntry, id uint32) []*listenerEntry {
	for i, e := range s {
		if e.id == id {
			e.removed = true
			out := make([]*listenerEntry, 0, len(s)-1)
			out = append(out, s[:i]...)
			return append(out, s[i+1:]...)
		}
	}
	return s
}

func (pl *phaseListeners) empty() bool {
	if pl == nil {
		return true
	}
	for _, l := range pl {
		if len(l) > 0 {
			return false
		}
	}
	return true
}

func (r *listenerRegistry) add(n *Node, phase Phase, sel *Selector, fn Listener) ListenerHandle {
	r.nextID++
	e := &listenerEntry{id: r.nextID, fn: fn, selector: sel}
	if n == nil {
		r.doc[phase] = append(r.doc[phase], e)
	} else {
		if r.nodes == nil {
			r.nodes = make(map[*Node]*phaseListeners)
		}
		pl := r.nodes[n]
		if pl == nil {
			pl = &phaseListeners{}
			r.nodes[n] = pl
		}
		pl[phase] = append(pl[phase], e)
	}
	return ListenerHandle{id: e.id, reg: r, node: n, phase: phase}
}

func (r *listenerRegistry) forNode(n *Node, phase Phase) []*listenerEntry {
	if pl := r.nodes[n]; pl != nil {
		return pl[phase]
	}
	return nil
}

// --- Scene-level registration ---

// On registers fn for events of the given phase that reach n, either
// because n is the target or because the event bubbled up from a
// descendant. A nil node registers on the document, which sees every event
// after the tree has been walked.
func (s *Scene) On(n *Node, phase Phase, fn Listener) ListenerHandle {
	return s.listeners.add(n, phase, nil, fn)
}

// OnDocument registers fn on the document for the given phase.
func (s *Scene) OnDocument(phase Phase, fn Listener) ListenerHandle {
	return s.listeners.add(nil, phase, nil, fn)
}

// OnDelegated registers fn on n but only runs it when the event target, or
// one of its ancestors up to and including n, matches selector. The matched
// node is passed as the event's CurrentTarget. An invalid selector never
// matches.
func (s *Scene) OnDelegated(n *Node, phase Phase, selector string, fn Listener) ListenerHandle {
	sel := lookupSelector(selector)
	if sel == nil {
		sel = &Selector{source: selector}
	}
	return s.listeners.add(n, phase, sel, fn)
}

// closestWithin returns the nearest node from target up to and including
// limit that matches sel.
func closestWithin(target, limit *Node, sel *Selector) *Node {
	for p := target; p != nil; p = p.Parent {
		if sel.Match(p) {
			return p
		}
		if p == limit {
			break
		}
	}
	return nil
}
