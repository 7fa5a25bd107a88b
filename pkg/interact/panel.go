package interact

import (
	"fmt"

	"github.com/mlindqvist/arkigraf/pkg/relation"
)

// Localized category labels.
const (
	LabelArchitect = "Arkitekt"
	LabelBuilding  = "Byggnad"
)

// HintText is the side panel placeholder shown when nothing is focused.
const HintText = "Hovra över en nod för detaljer."

// LoadErrorText is the fixed message shown when the data source fails to
// load. The rest of the UI stays up; no graph is rendered.
const LoadErrorText = "Kunde inte läsa in data."

// PanelState discriminates the three mutually exclusive side panel modes.
type PanelState int

const (
	PanelHint PanelState = iota
	PanelDetail
	PanelError
)

// Panel is the side panel content. Exactly one state is active at a time.
type Panel struct {
	State PanelState

	// Detail fields, set when State == PanelDetail.
	Name        string
	Category    string
	Connections string

	// Message, set for PanelHint and PanelError.
	Message string
}

// HintPanel returns the idle placeholder panel.
func HintPanel() Panel {
	return Panel{State: PanelHint, Message: HintText}
}

// ErrorPanel returns the terminal load-failure panel.
func ErrorPanel() Panel {
	return Panel{State: PanelError, Message: LoadErrorText}
}

// DetailPanel summarizes a focused node: display name, localized category,
// and the pluralized count of the opposite category reached through its
// edges.
func DetailPanel(n *relation.Node) Panel {
	category := LabelBuilding
	if n.Category == relation.CategoryArchitect {
		category = LabelArchitect
	}
	return Panel{
		State:       PanelDetail,
		Name:        n.Name,
		Category:    category,
		Connections: ConnectionText(n.Category, n.Degree()),
	}
}

// ConnectionText renders a neighbor count with Swedish pluralization:
// architects count buildings, buildings count architects, and any count
// other than one takes the plural form.
func ConnectionText(category string, count int) string {
	singular, plural := "arkitekt", "arkitekter"
	if category == relation.CategoryArchitect {
		singular, plural = "byggnad", "byggnader"
	}
	if count == 1 {
		return fmt.Sprintf("1 %s", singular)
	}
	return fmt.Sprintf("%d %s", count, plural)
}
