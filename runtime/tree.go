package runtime

// Bindable widgets receive app services when attached to a screen.
type Bindable interface {
	Bind(services Services)
}

// Unbindable widgets release app services when detached.
type Unbindable interface {
	Unbind()
}

// Lifecycle is implemented by widgets that need mount/unmount hooks.
type Lifecycle interface {
	Mount()
	Unmount()
}

// AttachTree binds then mounts every widget under root, parents first.
// Binding is skipped when services is zero.
func AttachTree(root Widget, services Services) {
	if !services.isZero() {
		walk(root, false, func(w Widget) {
			if b, ok := w.(Bindable); ok {
				b.Bind(services)
			}
		})
	}
	walk(root, false, func(w Widget) {
		if m, ok := w.(Lifecycle); ok {
			m.Mount()
		}
	})
}

// DetachTree unmounts then unbinds every widget under root, children first.
func DetachTree(root Widget) {
	walk(root, true, func(w Widget) {
		if m, ok := w.(Lifecycle); ok {
			m.Unmount()
		}
	})
	walk(root, true, func(w Widget) {
		if u, ok := w.(Unbindable); ok {
			u.Unbind()
		}
	})
}

func walk(w Widget, childrenFirst bool, visit func(Widget)) {
	if w == nil {
		return
	}
	if !childrenFirst {
		visit(w)
	}
	if children, ok := w.(ChildProvider); ok {
		for _, child := range children.ChildWidgets() {
			walk(child, childrenFirst, visit)
		}
	}
	if childrenFirst {
		visit(w)
	}
}
