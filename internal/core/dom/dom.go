// Package dom is a minimal in-memory element tree with event listeners. It is
// the surface the modal controller builds into and the surface front ends
// render from and feed input into.
//
// A Document and its elements are not safe for concurrent use. Everything is
// expected to run on a single UI goroutine.
package dom

import (
	"slices"
	"strings"
)

// Document owns an element tree rooted at Body and the process-wide keydown
// listeners.
type Document struct {
	Body *Element

	keyListeners []*listener
}

// NewDocument creates a document with an empty body.
func NewDocument() *Document {
	d := &Document{}
	d.Body = d.CreateElement("body")
	return d
}

// CreateElement creates a detached element owned by d.
func (d *Document) CreateElement(tag string) *Element {
	return &Element{
		doc:       d,
		tag:       tag,
		attrs:     map[string]string{},
		listeners: map[string][]*listener{},
	}
}

// GetElementByID searches the attached tree for an element with the given id.
func (d *Document) GetElementByID(id string) *Element {
	if id == "" {
		return nil
	}
	return d.Body.find(func(e *Element) bool { return e.id == id })
}

// AddKeyListener subscribes h to every keydown event dispatched through
// DispatchKey. Release the returned registration to unsubscribe.
func (d *Document) AddKeyListener(h Handler) *Registration {
	l := &listener{handler: h}
	d.keyListeners = append(d.keyListeners, l)

	return &Registration{release: func() {
		d.keyListeners = slices.DeleteFunc(d.keyListeners, func(x *listener) bool { return x == l })
		l.released = true
	}}
}

// KeyListenerCount reports how many keydown listeners are subscribed.
func (d *Document) KeyListenerCount() int {
	return len(d.keyListeners)
}

// Dispatch delivers ev to ev.Target and then to each ancestor in turn until a
// handler stops propagation or the root is passed.
func (d *Document) Dispatch(ev *Event) {
	for el := ev.Target; el != nil; el = el.parent {
		for _, l := range slices.Clone(el.listeners[ev.Type]) {
			if l.released {
				continue
			}
			l.handler(ev)
		}
		if ev.Stopped() {
			return
		}
	}
}

// DispatchKey delivers ev to the document's keydown listeners in subscription
// order until one stops propagation.
func (d *Document) DispatchKey(ev *Event) {
	if ev.Type == "" {
		ev.Type = EventKeyDown
	}

	for _, l := range slices.Clone(d.keyListeners) {
		if l.released {
			continue
		}
		l.handler(ev)
		if ev.Stopped() {
			return
		}
	}
}

// Element is a node in a Document.
type Element struct {
	doc      *Document
	tag      string
	id       string
	classes  []string
	attrs    map[string]string
	text     string
	width    float64 // percent, 0 means auto
	parent   *Element
	children []*Element

	listeners map[string][]*listener
}

// Tag returns the element's tag name.
func (e *Element) Tag() string { return e.tag }

// ID returns the element id.
func (e *Element) ID() string { return e.id }

// SetID sets the element id.
func (e *Element) SetID(id string) { e.id = id }

// Class returns the space separated class list.
func (e *Element) Class() string { return strings.Join(e.classes, " ") }

// SetClass replaces the class list with the space separated names in s.
func (e *Element) SetClass(s string) { e.classes = strings.Fields(s) }

// AddClass appends name to the class list if not already present.
func (e *Element) AddClass(name string) {
	if name == "" || e.HasClass(name) {
		return
	}
	e.classes = append(e.classes, name)
}

// RemoveClass removes name from the class list.
func (e *Element) RemoveClass(name string) {
	e.classes = slices.DeleteFunc(e.classes, func(c string) bool { return c == name })
}

// HasClass reports whether name is in the class list.
func (e *Element) HasClass(name string) bool {
	return slices.Contains(e.classes, name)
}

// SetAttr sets an attribute.
func (e *Element) SetAttr(key, value string) { e.attrs[key] = value }

// Attr returns an attribute value and whether it is set.
func (e *Element) Attr(key string) (string, bool) {
	v, ok := e.attrs[key]
	return v, ok
}

// Text returns the element's text content.
func (e *Element) Text() string { return e.text }

// SetText sets the text content verbatim. Renderers decide how to interpret
// it, callers are responsible for sanitizing untrusted input.
func (e *Element) SetText(s string) { e.text = s }

// Width returns the width in percent of the parent, 0 meaning auto.
func (e *Element) Width() float64 { return e.width }

// SetWidth sets the width in percent of the parent. Zero resets to auto.
func (e *Element) SetWidth(percent float64) { e.width = percent }

// Parent returns the parent element or nil when detached.
func (e *Element) Parent() *Element { return e.parent }

// Children returns the child elements in order.
func (e *Element) Children() []*Element { return slices.Clone(e.children) }

// AppendChild moves child to the end of e's children.
func (e *Element) AppendChild(child *Element) {
	if child.parent != nil {
		child.parent.RemoveChild(child)
	}
	child.parent = e
	e.children = append(e.children, child)
}

// RemoveChild detaches child from e. It reports false when child is not a
// direct child of e.
func (e *Element) RemoveChild(child *Element) bool {
	idx := slices.Index(e.children, child)
	if idx < 0 {
		return false
	}
	e.children = slices.Delete(e.children, idx, idx+1)
	child.parent = nil
	return true
}

// Contains reports whether other is e or one of its descendants.
func (e *Element) Contains(other *Element) bool {
	for el := other; el != nil; el = el.parent {
		if el == e {
			return true
		}
	}
	return false
}

// IsAttached reports whether e is connected to its document body.
func (e *Element) IsAttached() bool {
	return e.doc != nil && e.doc.Body.Contains(e)
}

// AddEventListener subscribes h to events of the given type targeting e or
// bubbling through it.
func (e *Element) AddEventListener(typ string, h Handler) *Registration {
	l := &listener{handler: h}
	e.listeners[typ] = append(e.listeners[typ], l)

	return &Registration{release: func() {
		e.listeners[typ] = slices.DeleteFunc(e.listeners[typ], func(x *listener) bool { return x == l })
		l.released = true
	}}
}

func (e *Element) find(match func(*Element) bool) *Element {
	if match(e) {
		return e
	}
	for _, c := range e.children {
		if found := c.find(match); found != nil {
			return found
		}
	}
	return nil
}

type listener struct {
	handler  Handler
	released bool
}

// Registration is the token returned when subscribing a handler.
type Registration struct {
	release  func()
	released bool
}

// Release unsubscribes the handler. Only the first call has an effect; it
// reports whether this call performed the release.
func (r *Registration) Release() bool {
	if r == nil || r.released {
		return false
	}
	r.released = true
	r.release()
	return true
}

// Released reports whether Release has been called.
func (r *Registration) Released() bool {
	return r == nil || r.released
}
