package cli

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mlindqvist/arkigraf/pkg/force"
	"github.com/mlindqvist/arkigraf/pkg/interact"
	"github.com/mlindqvist/arkigraf/pkg/relation"
	"github.com/mlindqvist/arkigraf/pkg/scene"
	"github.com/mlindqvist/arkigraf/pkg/viewport"
)

// Terminal cells map to the viewport's pixel-like world units through a
// fixed glyph metric. 8x16 approximates a monospace cell, so the 280-unit
// side panel comes out at 35 columns and circles stay roughly round.
const (
	cellPxW = 8.0
	cellPxH = 16.0

	panelCells = int(viewport.SidePanelWidth / cellPxW)

	// frameInterval drives the simulation at ~30 fps.
	frameInterval = 33 * time.Millisecond

	// hitSlack widens pointer hit testing beyond the node radius; a
	// terminal cell is coarser than a pixel.
	hitSlack = 6.0

	zoomStep = 1.1
	panStep  = 40.0
)

// tickMsg advances the simulation one frame.
type tickMsg time.Time

func frameTick() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Node glyphs per category.
const (
	glyphArchitect = "●"
	glyphBuilding  = "■"
	glyphEdge      = "·"
)

var (
	styleArchitect  = lipgloss.NewStyle().Foreground(colorCyan)
	styleBuilding   = lipgloss.NewStyle().Foreground(colorYellow)
	styleFocused    = lipgloss.NewStyle().Foreground(colorRed).Bold(true)
	styleDimmedNode = lipgloss.NewStyle().Foreground(colorDim)
	styleEdgeCell   = lipgloss.NewStyle().Foreground(colorDim)
	styleEdgeHot    = lipgloss.NewStyle().Foreground(colorWhite)
	styleNodeLabel  = lipgloss.NewStyle().Foreground(colorWhite).Bold(true)

	stylePanelBorder = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(colorDim).
				Padding(1, 2)
	stylePanelTitle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	stylePanelError = lipgloss.NewStyle().Foreground(colorRed)
	stylePanelDim   = lipgloss.NewStyle().Foreground(colorGray)
)

// viewModel is the bubbletea model for the interactive graph view. Its
// Update loop is the single scheduler: simulation ticks and pointer handlers
// interleave on one goroutine, so a pin applied by a handler is in force for
// the very next tick.
type viewModel struct {
	graph *relation.Graph
	sim   *force.Simulation
	sc    *scene.Scene
	ctrl  *interact.Controller
	vp    *viewport.Viewport

	seed    int64
	loadErr bool

	// terminal size in cells
	cols, rows int

	// mouse button held between press and release
	dragging bool
}

// newViewModel assembles the view. A nil graph means the data source failed
// to load: the view opens with the error panel and no simulation.
func newViewModel(g *relation.Graph, seed int64) *viewModel {
	m := &viewModel{graph: g, seed: seed, cols: 80, rows: 24}
	if g == nil {
		m.loadErr = true
		return m
	}

	m.vp = viewport.New(float64(m.cols)*cellPxW, float64(m.rows)*cellPxH)
	opts := force.DefaultOptions(m.vp.Width, m.vp.Height)
	opts.Seed = seed
	m.sim = force.New(g, opts)
	m.sc = scene.New(g)
	m.sc.Sync(m.sim)
	m.ctrl = interact.New(g, m.sim, m.sc)
	return m
}

func (m *viewModel) Init() tea.Cmd {
	if m.loadErr {
		return nil
	}
	return frameTick()
}

func (m *viewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		if !m.sim.Settled() {
			m.sim.Tick()
			m.sc.Sync(m.sim)
		}
		return m, frameTick()

	case tea.WindowSizeMsg:
		m.cols, m.rows = msg.Width, msg.Height
		if m.loadErr {
			return m, nil
		}
		cx, cy := m.vp.Resize(float64(msg.Width)*cellPxW, float64(msg.Height)*cellPxH)
		m.sim.SetCenter(cx, cy)
		m.sim.Reheat()
		return m, nil

	case tea.MouseMsg:
		if m.loadErr {
			return m, nil
		}
		return m.handleMouse(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *viewModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c", "esc":
		if m.ctrl != nil {
			m.ctrl.Abandon()
		}
		return m, tea.Quit
	}
	if m.loadErr {
		return m, nil
	}

	switch msg.String() {
	case "r":
		m.sim.Reheat()
	case "+", "=":
		cx, cy := m.vp.Center()
		m.vp.Zoom(zoomStep, cx, cy)
	case "-":
		cx, cy := m.vp.Center()
		m.vp.Zoom(1/zoomStep, cx, cy)
	case "left":
		m.vp.Pan(panStep, 0)
	case "right":
		m.vp.Pan(-panStep, 0)
	case "up":
		m.vp.Pan(0, panStep)
	case "down":
		m.vp.Pan(0, -panStep)
	}
	return m, nil
}

func (m *viewModel) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	wx, wy := m.pointerWorld(msg.X, msg.Y)

	switch msg.Action {
	case tea.MouseActionPress:
		switch msg.Button {
		case tea.MouseButtonLeft:
			if id, ok := m.hitTest(wx, wy); ok {
				m.dragging = true
				m.ctrl.DragStart(id)
			}
		case tea.MouseButtonWheelUp:
			m.vp.Zoom(zoomStep, wx, wy)
		case tea.MouseButtonWheelDown:
			m.vp.Zoom(1/zoomStep, wx, wy)
		}

	case tea.MouseActionMotion:
		if m.dragging {
			m.ctrl.DragMove(wx, wy)
			return m, nil
		}
		if id, ok := m.hitTest(wx, wy); ok {
			m.ctrl.Focus(id)
		} else {
			m.ctrl.Defocus()
		}

	case tea.MouseActionRelease:
		if m.dragging {
			m.dragging = false
			m.ctrl.DragEnd()
			// The pointer may still rest on a node after the drop.
			if id, ok := m.hitTest(wx, wy); ok {
				m.ctrl.Focus(id)
			}
		}
	}
	return m, nil
}

// pointerWorld converts a terminal cell position to world coordinates.
func (m *viewModel) pointerWorld(col, row int) (float64, float64) {
	sx := (float64(col) + 0.5) * cellPxW
	sy := (float64(row) + 0.5) * cellPxH
	return m.vp.Unproject(sx, sy)
}

// hitTest finds the node under a world position, if any. The nearest node
// within its radius plus slack wins.
func (m *viewModel) hitTest(wx, wy float64) (string, bool) {
	bestID, bestDist := "", math.MaxFloat64
	for _, n := range m.sc.Nodes() {
		d := math.Hypot(n.X-wx, n.Y-wy)
		if d <= n.Radius+hitSlack && d < bestDist {
			bestID, bestDist = n.ID, d
		}
	}
	return bestID, bestID != ""
}

// =============================================================================
// Rendering
// =============================================================================

func (m *viewModel) View() string {
	canvasCols := m.cols - panelCells
	if canvasCols < 10 {
		canvasCols = 10
	}
	rows := m.rows
	if rows < 5 {
		rows = 5
	}

	canvas := m.renderCanvas(canvasCols, rows)
	panel := m.renderPanel(panelCells, rows)
	return lipgloss.JoinHorizontal(lipgloss.Top, canvas, panel)
}

// renderCanvas rasterizes the scene onto a cell grid: edges first, then
// nodes, then the focused node's label.
func (m *viewModel) renderCanvas(cols, rows int) string {
	grid := make([][]string, rows)
	for y := range grid {
		grid[y] = make([]string, cols)
		for x := range grid[y] {
			grid[y][x] = " "
		}
	}

	if !m.loadErr {
		m.rasterEdges(grid, cols, rows)
		m.rasterNodes(grid, cols, rows)
	}

	var b strings.Builder
	for y, row := range grid {
		if y > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(strings.Join(row, ""))
	}
	return b.String()
}

func (m *viewModel) rasterEdges(grid [][]string, cols, rows int) {
	for _, e := range m.sc.Edges() {
		style := styleEdgeCell
		if e.Highlighted {
			style = styleEdgeHot
		}
		if e.Dimmed {
			continue
		}
		m.rasterLine(grid, cols, rows, e.X1, e.Y1, e.X2, e.Y2, style)
	}
}

// rasterLine samples a world-space segment into edge glyphs.
func (m *viewModel) rasterLine(grid [][]string, cols, rows int, x1, y1, x2, y2 float64, style lipgloss.Style) {
	sx1, sy1 := m.vp.Project(x1, y1)
	sx2, sy2 := m.vp.Project(x2, y2)
	steps := int(math.Hypot((sx2-sx1)/cellPxW, (sy2-sy1)/cellPxH)) + 1
	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		cx := int((sx1 + (sx2-sx1)*t) / cellPxW)
		cy := int((sy1 + (sy2-sy1)*t) / cellPxH)
		if cx >= 0 && cx < cols && cy >= 0 && cy < rows && grid[cy][cx] == " " {
			grid[cy][cx] = style.Render(glyphEdge)
		}
	}
}

func (m *viewModel) rasterNodes(grid [][]string, cols, rows int) {
	for _, n := range m.sc.Nodes() {
		sx, sy := m.vp.Project(n.X, n.Y)
		cx, cy := int(sx/cellPxW), int(sy/cellPxH)
		if cx < 0 || cx >= cols || cy < 0 || cy >= rows {
			continue
		}

		glyph := glyphBuilding
		style := styleBuilding
		if n.Category == relation.CategoryArchitect {
			glyph = glyphArchitect
			style = styleArchitect
		}
		switch {
		case n.LabelVisible:
			style = styleFocused
		case n.Highlighted:
			style = style.Bold(true)
		case n.Dimmed:
			style = styleDimmedNode
		}
		grid[cy][cx] = style.Render(glyph)

		if n.LabelVisible {
			m.rasterLabel(grid, cols, cx+2, cy, n.Label)
		}
	}
}

func (m *viewModel) rasterLabel(grid [][]string, cols, cx, cy int, label string) {
	for i, r := range label {
		x := cx + i
		if x < 0 || x >= cols {
			break
		}
		grid[cy][x] = styleNodeLabel.Render(string(r))
	}
}

// renderPanel draws the side panel: title, panel content per state, and a
// status footer.
func (m *viewModel) renderPanel(cols, rows int) string {
	var b strings.Builder
	b.WriteString(stylePanelTitle.Render("Arkigraf"))
	b.WriteString("\n\n")

	switch {
	case m.loadErr:
		b.WriteString(stylePanelError.Render(interact.LoadErrorText))
	default:
		p := m.ctrl.Panel()
		switch p.State {
		case interact.PanelDetail:
			b.WriteString(StyleValue.Render(p.Name))
			b.WriteString("\n")
			b.WriteString(stylePanelDim.Render(p.Category))
			b.WriteString("\n")
			b.WriteString(stylePanelDim.Render(p.Connections))
		case interact.PanelError:
			b.WriteString(stylePanelError.Render(p.Message))
		default:
			b.WriteString(stylePanelDim.Render(p.Message))
		}

		b.WriteString("\n\n")
		b.WriteString(stylePanelDim.Render(fmt.Sprintf("%d noder · %d kopplingar",
			m.graph.NodeCount(), m.graph.EdgeCount())))
		b.WriteString("\n")
		b.WriteString(stylePanelDim.Render(fmt.Sprintf("zoom %.1fx · %s",
			m.vp.Scale(), m.ctrl.State())))
		if m.sim.Settled() {
			b.WriteString("\n")
			b.WriteString(stylePanelDim.Render("vilande"))
		}
	}

	b.WriteString("\n\n")
	b.WriteString(StyleDim.Render("q avsluta · r värm om"))

	content := stylePanelBorder.Width(cols - 2).Render(b.String())
	return lipgloss.Place(cols, rows, lipgloss.Left, lipgloss.Top, content)
}
