package nav

import "sync"

type DrawerState string

const (
	DrawerClosed DrawerState = "closed"
	DrawerOpen   DrawerState = "open"
)

// Drawer holds the open/closed state of the compact navigation menu.
type Drawer struct {
	mutex sync.RWMutex
	state DrawerState
}

// Open is triggered by the compact menu icon.
func (d *Drawer) Open() {
	d.set(DrawerOpen)
}

// Close is triggered by the close icon.
func (d *Drawer) Close() {
	d.set(DrawerClosed)
}

// Dismiss is triggered by a click on the backdrop.
func (d *Drawer) Dismiss() {
	d.set(DrawerClosed)
}

// Activate is triggered when a navigation entry is selected from within
// the drawer.
func (d *Drawer) Activate() {
	d.set(DrawerClosed)
}

func (d *Drawer) State() DrawerState {
	d.mutex.RLock()
	defer d.mutex.RUnlock()

	if d.state == "" {
		return DrawerClosed
	}

	return d.state
}

func (d *Drawer) IsOpen() bool {
	return d.State() == DrawerOpen
}

func (d *Drawer) set(state DrawerState) {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	d.state = state
}

func NewDrawer() *Drawer {
	return &Drawer{state: DrawerClosed}
}
