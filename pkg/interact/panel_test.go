package interact

import (
	"testing"

	"github.com/mlindqvist/arkigraf/pkg/relation"
)

func TestConnectionText(t *testing.T) {
	tests := []struct {
		category string
		count    int
		want     string
	}{
		{relation.CategoryArchitect, 0, "0 byggnader"},
		{relation.CategoryArchitect, 1, "1 byggnad"},
		{relation.CategoryArchitect, 2, "2 byggnader"},
		{relation.CategoryArchitect, 17, "17 byggnader"},
		{relation.CategoryBuilding, 0, "0 arkitekter"},
		{relation.CategoryBuilding, 1, "1 arkitekt"},
		{relation.CategoryBuilding, 3, "3 arkitekter"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := ConnectionText(tt.category, tt.count); got != tt.want {
				t.Errorf("ConnectionText(%s, %d) = %q, want %q", tt.category, tt.count, got, tt.want)
			}
		})
	}
}

func TestDetailPanel(t *testing.T) {
	n := &relation.Node{
		ID:             "B1",
		Name:           "Hus 1",
		Category:       relation.CategoryBuilding,
		NeighborLabels: []string{"Arkitekt A"},
	}

	p := DetailPanel(n)
	if p.State != PanelDetail {
		t.Errorf("state = %v, want PanelDetail", p.State)
	}
	if p.Name != "Hus 1" || p.Category != "Byggnad" || p.Connections != "1 arkitekt" {
		t.Errorf("panel = %+v", p)
	}
}

func TestErrorPanel(t *testing.T) {
	p := ErrorPanel()
	if p.State != PanelError || p.Message != LoadErrorText {
		t.Errorf("panel = %+v", p)
	}
}
