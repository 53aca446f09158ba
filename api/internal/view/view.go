// Package view tracks which of the three app screens is displayed. Pure
// state, no I/O: surfaces read it to decide what to render.
package view

// Screen is one of the three mutually exclusive screens.
type Screen string

const (
	ScreenList    Screen = "list"
	ScreenCapture Screen = "capture"
	ScreenDetail  Screen = "detail"
)

// Router holds the active screen and, on the detail screen, the active
// record id. The zero value shows the list.
type Router struct {
	screen   Screen
	activeID string
}

func NewRouter() *Router { return &Router{screen: ScreenList} }

func (r *Router) Screen() Screen {
	if r.screen == "" {
		return ScreenList
	}
	return r.screen
}

// ActiveID is the record shown on the detail screen, empty elsewhere.
func (r *Router) ActiveID() string { return r.activeID }

func (r *Router) ShowList() {
	r.screen = ScreenList
	r.activeID = ""
}

// BeginCapture opens the capture screen.
func (r *Router) BeginCapture() {
	r.screen = ScreenCapture
	r.activeID = ""
}

// CancelCapture returns to the list without creating a record.
func (r *Router) CancelCapture() { r.ShowList() }

// CaptureSucceeded jumps straight to the detail screen for the freshly
// created record, typically while it is still pending.
func (r *Router) CaptureSucceeded(id string) {
	r.screen = ScreenDetail
	r.activeID = id
}

// OpenDetail shows the record picked from the list.
func (r *Router) OpenDetail(id string) {
	r.screen = ScreenDetail
	r.activeID = id
}

// Back returns from the detail screen to the list.
func (r *Router) Back() { r.ShowList() }

// RecordDeleted leaves the detail screen when the deleted record is the
// one being viewed; otherwise the screen stays put.
func (r *Router) RecordDeleted(id string) {
	if r.screen == ScreenDetail && r.activeID == id {
		r.ShowList()
	}
}
