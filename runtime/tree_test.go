package runtime

import "testing"

type treeWidget struct {
	name     string
	children []Widget
	events   *[]string
}

func (w *treeWidget) Measure(c Constraints) Size { return Size{} }
func (w *treeWidget) Layout(bounds Rect)         {}
func (w *treeWidget) Render(ctx RenderContext)   {}
func (w *treeWidget) HandleMessage(msg Message) HandleResult {
	return Unhandled()
}
func (w *treeWidget) ChildWidgets() []Widget { return w.children }
func (w *treeWidget) Bind(services Services) { w.record("bind") }
func (w *treeWidget) Unbind()                { w.record("unbind") }
func (w *treeWidget) Mount()                 { w.record("mount") }
func (w *treeWidget) Unmount()               { w.record("unmount") }

func (w *treeWidget) record(event string) {
	*w.events = append(*w.events, w.name+":"+event)
}

func equalEvents(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestScreen_AttachDetachOrder(t *testing.T) {
	var events []string
	child := &treeWidget{name: "child", events: &events}
	root := &treeWidget{name: "root", children: []Widget{child}, events: &events}
	screen := NewScreen(10, 5)
	app := NewApp(AppConfig{})
	screen.SetServices(app.Services())

	screen.SetRoot(root)
	want := []string{"root:bind", "child:bind", "root:mount", "child:mount"}
	if !equalEvents(events, want) {
		t.Fatalf("attach order = %v, want %v", events, want)
	}

	events = events[:0]
	screen.SetRoot(nil)
	want = []string{"child:unmount", "root:unmount", "child:unbind", "root:unbind"}
	if !equalEvents(events, want) {
		t.Fatalf("detach order = %v, want %v", events, want)
	}
}

func TestScreen_AttachWithoutServicesSkipsBind(t *testing.T) {
	var events []string
	root := &treeWidget{name: "root", events: &events}
	screen := NewScreen(10, 5)

	screen.SetRoot(root)
	if !equalEvents(events, []string{"root:mount"}) {
		t.Fatalf("unexpected events %v", events)
	}
}

func TestScreen_ReplaceRoot(t *testing.T) {
	var events []string
	first := &treeWidget{name: "first", events: &events}
	second := &treeWidget{name: "second", events: &events}
	screen := NewScreen(10, 5)

	screen.SetRoot(first)
	screen.SetRoot(second)
	want := []string{"first:mount", "first:unmount", "first:unbind", "second:mount"}
	if !equalEvents(events, want) {
		t.Fatalf("replace order = %v, want %v", events, want)
	}
}
