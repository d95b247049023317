package dom

import (
	"sync"

	"github.com/zishang520/engine.io/events"
)

// Element is a minimal loading element: a tag, attributes, a position in
// a tree and an event emitter firing "load" / "error" once the owner
// document has settled it. Script elements additionally carry a one-shot
// delivery handle through which the executed script hands back a payload.
type Element struct {
	events.EventEmitter

	tagName  string
	document Document

	mu         sync.RWMutex
	attributes map[string]string
	parent     *Element
	children   []*Element

	delivery chan any
}

// Element constructor; the element starts detached and unowned.
func NewElement(tag string) *Element {
	e := &Element{}
	e.EventEmitter = events.New()
	e.tagName = tag
	e.attributes = map[string]string{}
	e.delivery = make(chan any, 1)
	return e
}

// Tag name.
func (e *Element) TagName() string {
	return e.tagName
}

func (e *Element) OwnerDocument() Document {
	e.mu.RLock()
	defer e.mu.RUnlock()

	return e.document
}

func (e *Element) setOwnerDocument(doc Document) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.document = doc
}

func (e *Element) SetAttribute(name string, value string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.attributes[name] = value
}

func (e *Element) GetAttribute(name string) (string, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	value, ok := e.attributes[name]
	return value, ok
}

// Attributes returns a copy of the element's attributes.
func (e *Element) Attributes() map[string]string {
	e.mu.RLock()
	defer e.mu.RUnlock()

	attributes := make(map[string]string, len(e.attributes))
	for name, value := range e.attributes {
		attributes[name] = value
	}
	return attributes
}

func (e *Element) Parent() *Element {
	e.mu.RLock()
	defer e.mu.RUnlock()

	return e.parent
}

// Children returns a copy of the element's child list.
func (e *Element) Children() []*Element {
	e.mu.RLock()
	defer e.mu.RUnlock()

	return append([]*Element(nil), e.children...)
}

// AppendChild connects child under e. A child appended into an owned
// tree adopts the owner document, and documents that load elements pick
// it up asynchronously from here.
func (e *Element) AppendChild(child *Element) {
	e.mu.Lock()
	e.children = append(e.children, child)
	doc := e.document
	e.mu.Unlock()

	child.mu.Lock()
	child.parent = e
	if child.document == nil {
		child.document = doc
	}
	doc = child.document
	child.mu.Unlock()

	if loader, ok := doc.(ElementLoader); ok {
		go loader.LoadElement(child)
	}
}

// Remove detaches the element from its parent.
func (e *Element) Remove() {
	e.mu.Lock()
	parent := e.parent
	e.parent = nil
	e.mu.Unlock()

	if parent == nil {
		return
	}

	parent.mu.Lock()
	defer parent.mu.Unlock()
	for i, child := range parent.children {
		if child == e {
			parent.children = append(parent.children[:i], parent.children[i+1:]...)
			break
		}
	}
}

// InsertionPoint makes a raw element usable as a loading context.
func (e *Element) InsertionPoint() *Element {
	return e
}

// Deliver hands a payload to whoever waits on this element. Extra
// deliveries are dropped.
func (e *Element) Deliver(payload any) {
	select {
	case e.delivery <- payload:
	default:
	}
}

// TakeDelivery returns the delivered payload, nil when none arrived.
func (e *Element) TakeDelivery() any {
	select {
	case payload := <-e.delivery:
		return payload
	default:
		return nil
	}
}
