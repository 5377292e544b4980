package scroll

import "fmt"

// ElementID names a host element that can be scrolled. Its meaning is
// defined by the host.
type ElementID string

// TargetKind identifies which surface a Target refers to.
type TargetKind int

const (
	// TargetUnset is the zero value; an unbound controller has no target.
	TargetUnset TargetKind = iota
	// TargetSelf is the observing surface's own rendered root.
	TargetSelf
	// TargetDocument is the whole document measured against the viewport.
	TargetDocument
	// TargetElement is a specific element identified by ElementID.
	TargetElement
)

// String returns the lowercase name of the kind.
func (k TargetKind) String() string {
	switch k {
	case TargetUnset:
		return "unset"
	case TargetSelf:
		return "self"
	case TargetDocument:
		return "document"
	case TargetElement:
		return "element"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Target refers to the surface whose scroll position is observed.
// Element is only meaningful when Kind is TargetElement.
type Target struct {
	Kind    TargetKind
	Element ElementID
}

// SelfTarget returns the target for the observing surface's own root.
func SelfTarget() Target {
	return Target{Kind: TargetSelf}
}

// DocumentTarget returns the target for the document viewport.
func DocumentTarget() Target {
	return Target{Kind: TargetDocument}
}

// ElementTarget returns the target for a named element.
func ElementTarget(id ElementID) Target {
	return Target{Kind: TargetElement, Element: id}
}

// IsZero reports whether the target is unset.
func (t Target) IsZero() bool {
	return t.Kind == TargetUnset
}

// String returns "self", "document", "unset" or "element:<id>".
func (t Target) String() string {
	if t.Kind == TargetElement {
		return "element:" + string(t.Element)
	}
	return t.Kind.String()
}

// ResolveTarget selects the target to observe. An explicit element takes
// precedence, then the document flag, otherwise the surface's own root.
func ResolveTarget(useDocument bool, element ElementID) Target {
	switch {
	case element != "":
		return ElementTarget(element)
	case useDocument:
		return DocumentTarget()
	default:
		return SelfTarget()
	}
}
