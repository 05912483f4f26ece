package theme

import (
	"slices"
	"strings"
	"sync"
)

const (
	MarkerDark            = "dark"
	MarkerDarkBackground  = "bg-slate-900"
	MarkerLightBackground = "bg-gray-50"
)

// Root is the document's visual root, i.e. the set of classes carried by
// the <html> element.
type Root interface {
	AddMarker(marker string)
	RemoveMarker(marker string)
}

// Markers is an ordered set of markers.
type Markers struct {
	mutex   sync.RWMutex
	markers []string
}

// AddMarker implements Root.
func (m *Markers) AddMarker(marker string) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if slices.Contains(m.markers, marker) {
		return
	}

	m.markers = append(m.markers, marker)
}

// RemoveMarker implements Root.
func (m *Markers) RemoveMarker(marker string) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.markers = slices.DeleteFunc(m.markers, func(existing string) bool {
		return existing == marker
	})
}

func (m *Markers) Has(marker string) bool {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	return slices.Contains(m.markers, marker)
}

func (m *Markers) List() []string {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	return slices.Clone(m.markers)
}

// Class renders the markers as a class attribute value.
func (m *Markers) Class() string {
	return strings.Join(m.List(), " ")
}

func NewMarkers(initial ...string) *Markers {
	markers := &Markers{}
	for _, marker := range initial {
		markers.AddMarker(marker)
	}

	return markers
}

var _ Root = &Markers{}

func applyMarkers(root Root, mode Mode) {
	switch mode {
	case Light:
		root.RemoveMarker(MarkerDark)
		root.RemoveMarker(MarkerDarkBackground)
		root.AddMarker(MarkerLightBackground)
	case Dark:
		root.AddMarker(MarkerDark)
		root.AddMarker(MarkerDarkBackground)
		root.RemoveMarker(MarkerLightBackground)
	}
}
