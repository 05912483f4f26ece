package navbar

import (
	"sync/atomic"
	"time"

	"github.com/bornholm/syscommerce/internal/nav"
	"github.com/bornholm/syscommerce/internal/theme"
)

// Component is the server side state of the navbar of a single client.
type Component struct {
	clientID string
	markers  *theme.Markers
	theme    *theme.Controller
	drawer   *nav.Drawer
	logout   *nav.LogoutFlow

	lastSeen atomic.Int64
}

func (c *Component) ClientID() string {
	return c.clientID
}

func (c *Component) Theme() *theme.Controller {
	return c.theme
}

func (c *Component) Drawer() *nav.Drawer {
	return c.drawer
}

func (c *Component) Logout() *nav.LogoutFlow {
	return c.logout
}

// LastSeen returns the time the component was last mounted.
func (c *Component) LastSeen() time.Time {
	return time.Unix(0, c.lastSeen.Load())
}

func (c *Component) touch(now time.Time) {
	c.lastSeen.Store(now.UnixNano())
}

// RootClass returns the class attribute of the document root.
func (c *Component) RootClass() string {
	return c.markers.Class()
}

// Links computes the entries once and maps them on both surfaces, marking
// as active the links targeting the current path.
func (c *Component) Links(auth *nav.AuthState, currentPath string) (inline []nav.Link, drawer []nav.Link) {
	entries := nav.ComputeEntries(auth)

	inline = markActive(nav.Links(entries, nav.SurfaceInline, nil), currentPath)
	drawer = markActive(nav.Links(entries, nav.SurfaceDrawer, c.drawer.Activate), currentPath)

	return inline, drawer
}

func markActive(links []nav.Link, currentPath string) []nav.Link {
	for idx := range links {
		links[idx].Active = links[idx].Path() == currentPath
	}

	return links
}

func newComponent(clientID string, storage theme.Storage, logout nav.LogoutFunc) *Component {
	markers := theme.NewMarkers("antialiased")

	return &Component{
		clientID: clientID,
		markers:  markers,
		theme:    theme.NewController(storage, markers),
		drawer:   nav.NewDrawer(),
		logout:   nav.NewLogoutFlow(logout),
	}
}
