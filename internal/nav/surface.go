package nav

type Surface string

const (
	SurfaceInline Surface = "inline"
	SurfaceDrawer Surface = "drawer"
)

func ParseSurface(raw string) Surface {
	if Surface(raw) == SurfaceDrawer {
		return SurfaceDrawer
	}

	return SurfaceInline
}

// Link is an entry as rendered on a given surface.
type Link struct {
	Entry
	Surface Surface
	Active  bool

	onActivate func()
}

// Activate runs the surface specific activation hook, if any.
func (l Link) Activate() {
	if l.onActivate != nil {
		l.onActivate()
	}
}

// Links maps the entries onto a rendering surface. The onActivate hook is
// only attached to drawer links, inline links navigate without side effect.
func Links(entries []Entry, surface Surface, onActivate func()) []Link {
	links := make([]Link, 0, len(entries))
	for _, e := range entries {
		if !e.Visible {
			continue
		}

		link := Link{
			Entry:   e,
			Surface: surface,
		}

		if surface == SurfaceDrawer {
			link.onActivate = onActivate
		}

		links = append(links, link)
	}

	return links
}

// FindLink returns the link targeting the given path.
func FindLink(links []Link, target string) (Link, bool) {
	for _, l := range links {
		if l.Target == target {
			return l, true
		}
	}

	return Link{}, false
}
