package ui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/renuIyer/loadtrack/internal/supplychain"
)

// RouteKind names a top-level view.
type RouteKind int

const (
	RouteDashboard RouteKind = iota
	RouteList
	RouteProvenance
)

// Route addresses a view. Provenance routes carry the record id and, when
// navigation started from the list, a snapshot of the displayed property.
type Route struct {
	Kind     RouteKind
	RecordID string
	Property *supplychain.Property
}

// DashboardRoute returns the dashboard route.
func DashboardRoute() Route { return Route{Kind: RouteDashboard} }

// ListRoute returns the loads list route.
func ListRoute() Route { return Route{Kind: RouteList} }

// ProvenanceRoute returns the ownership history route for recordID.
func ProvenanceRoute(recordID string, property *supplychain.Property) Route {
	return Route{Kind: RouteProvenance, RecordID: strings.TrimSpace(recordID), Property: property}
}

// String renders the route as dashboard, list or provenance/<id>.
func (r Route) String() string {
	switch r.Kind {
	case RouteList:
		return "list"
	case RouteProvenance:
		return "provenance/" + r.RecordID
	default:
		return "dashboard"
	}
}

// ParseRoute parses the String form. Provenance routes parsed this way carry
// no property snapshot.
func ParseRoute(value string) (Route, bool) {
	value = strings.TrimSpace(value)
	switch {
	case value == "", strings.EqualFold(value, "dashboard"):
		return DashboardRoute(), true
	case strings.EqualFold(value, "list"):
		return ListRoute(), true
	case strings.HasPrefix(value, "provenance/"):
		id := strings.TrimSpace(strings.TrimPrefix(value, "provenance/"))
		if id == "" {
			return Route{}, false
		}
		return ProvenanceRoute(id, nil), true
	}
	return Route{}, false
}

// Messages shared by the views and the root model.

type navigateMsg struct{ route Route }

func navigate(r Route) tea.Cmd {
	return func() tea.Msg { return navigateMsg{route: r} }
}
