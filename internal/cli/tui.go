package cli

import (
	"fmt"
	"math"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/matzehuels/spendmap/pkg/chart"
	"github.com/matzehuels/spendmap/pkg/render/styles"
	"github.com/matzehuels/spendmap/pkg/spend"
	"github.com/matzehuels/spendmap/pkg/treemap"
)

const (
	defaultTermWidth  = 80
	defaultTermHeight = 24

	// chromeLines is the number of terminal rows used by the title,
	// status and help lines.
	chromeLines = 3
)

var (
	browseHelpStyle   = lipgloss.NewStyle().Foreground(colorDim)
	browseStatusStyle = lipgloss.NewStyle().Foreground(colorWhite)
)

// =============================================================================
// BrowseModel - Interactive treemap navigation
// =============================================================================

// BrowseModel is the bubbletea model for exploring a chart in the terminal.
// The root view shows categories; entering a category zooms to its
// subcategories.
type BrowseModel struct {
	Chart  *chart.Chart
	Format spend.Formatter
	Rules  styles.Rules

	// Focus is the ID of the zoomed category, empty at the root.
	Focus  string
	Cursor int
	Width  int
	Height int

	colors map[string]colorful.Color
}

// NewBrowseModel creates a browse model positioned on the largest category.
func NewBrowseModel(ch *chart.Chart, f spend.Formatter, rules styles.Rules) BrowseModel {
	return BrowseModel{
		Chart:  ch,
		Format: f,
		Rules:  rules,
		Width:  defaultTermWidth,
		Height: defaultTermHeight,
		colors: styles.DefaultPalette().Assign(ch.Cells),
	}
}

func (m BrowseModel) Init() tea.Cmd {
	return nil
}

func (m BrowseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		cells := m.visible()
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "right", "down", "l", "j", "tab":
			if m.Cursor < len(cells)-1 {
				m.Cursor++
			}
		case "left", "up", "h", "k", "shift+tab":
			if m.Cursor > 0 {
				m.Cursor--
			}
		case "enter":
			if m.Focus == "" && len(cells) > 0 && m.Chart.HasChildren(cells[m.Cursor].Item.ID) {
				m.Focus = cells[m.Cursor].Item.ID
				m.Cursor = 0
			}
		case "esc", "backspace":
			if m.Focus != "" {
				m.Cursor = m.indexAtRoot(m.Focus)
				m.Focus = ""
			}
		}
	case tea.WindowSizeMsg:
		m.Width = max(msg.Width, 10)
		m.Height = max(msg.Height, chromeLines+2)
	}
	return m, nil
}

func (m BrowseModel) View() string {
	var b strings.Builder

	title := "All categories"
	if m.Focus != "" {
		if c, ok := m.Chart.Find(m.Focus); ok {
			title = "All categories › " + c.Item.Label
		}
	}
	b.WriteString(StyleTitle.Render(title))
	b.WriteString("\n")
	b.WriteString(m.grid())
	b.WriteString(browseStatusStyle.Render(m.status()))
	b.WriteString("\n")
	b.WriteString(browseHelpStyle.Render("←/→ move  ⏎ zoom  esc back  q quit"))

	return b.String()
}

// Selected returns the cell under the cursor.
func (m BrowseModel) Selected() (treemap.Cell, bool) {
	cells := m.visible()
	if m.Cursor < 0 || m.Cursor >= len(cells) {
		return treemap.Cell{}, false
	}
	return cells[m.Cursor], true
}

// visible returns the cells drawn in the current view, skipping empty ones.
func (m BrowseModel) visible() []treemap.Cell {
	var cells []treemap.Cell
	if m.Focus == "" {
		cells = chart.AtDepth(m.Chart.Cells, chart.DepthCategory)
	} else {
		cells = chart.Children(m.Chart.Cells, m.Focus)
	}
	out := cells[:0:0]
	for _, c := range cells {
		if !c.Rect.Empty() {
			out = append(out, c)
		}
	}
	return out
}

func (m BrowseModel) indexAtRoot(id string) int {
	m.Focus = ""
	for i, c := range m.visible() {
		if c.Item.ID == id {
			return i
		}
	}
	return 0
}

func (m BrowseModel) status() string {
	c, ok := m.Selected()
	if !ok {
		return "No spend to show"
	}
	st := chart.StatsOf(c, m.Chart.Total)
	return fmt.Sprintf("%s · %s · %s · %d line items",
		c.Item.Label, m.Format.Amount(st.Value), m.Format.Percent(st.Share), st.Count)
}

// =============================================================================
// Grid Rasterization
// =============================================================================

// grid paints the visible cells onto a character grid scaled from the
// chart's pixel geometry and returns it as styled lines.
func (m BrowseModel) grid() string {
	cols, rows := m.Width, m.Height-chromeLines
	cells := m.visible()
	if len(cells) == 0 || rows <= 0 || cols <= 0 {
		return strings.Repeat("\n", max(rows, 0))
	}

	bounds := boundsOf(cells)
	sx, sy := float64(cols)/bounds.W, float64(rows)/bounds.H

	owner := make([][]int, rows)
	text := make([][]rune, rows)
	for y := range owner {
		owner[y] = make([]int, cols)
		text[y] = []rune(strings.Repeat(" ", cols))
		for x := range owner[y] {
			owner[y][x] = -1
		}
	}

	for i, c := range cells {
		x0, x1 := span(c.Rect.X-bounds.X, c.Rect.W, sx, cols)
		y0, y1 := span(c.Rect.Y-bounds.Y, c.Rect.H, sy, rows)
		for y := y0; y < y1; y++ {
			for x := x0; x < x1; x++ {
				owner[y][x] = i
			}
		}
		for j, line := range m.cellText(c, x1-x0-1, y1-y0) {
			row := []rune(line)
			for k := 0; k < len(row) && x0+1+k < x1; k++ {
				text[y0+j][x0+1+k] = row[k]
			}
		}
	}

	var b strings.Builder
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; {
			end := x
			for end < cols && owner[y][end] == owner[y][x] {
				end++
			}
			seg := string(text[y][x:end])
			if o := owner[y][x]; o >= 0 {
				seg = m.cellStyle(cells[o], o == m.Cursor).Render(seg)
			}
			b.WriteString(seg)
			x = end
		}
		b.WriteString("\n")
	}
	return b.String()
}

// cellText returns the lines to print inside a cell of w columns and h
// rows. The rules table decides which lines appear, using the cell's
// size on the rendered chart.
func (m BrowseModel) cellText(c treemap.Cell, w, h int) []string {
	if w < 3 || h < 1 {
		return nil
	}
	st := chart.StatsOf(c, m.Chart.Total)
	var lines []string
	for _, a := range m.Rules.Visible(c.Rect.W, c.Rect.H) {
		switch a {
		case styles.ActionLabel:
			lines = append(lines, c.Item.Label)
		case styles.ActionValue:
			lines = append(lines, m.Format.Compact(st.Value))
		case styles.ActionShare:
			lines = append(lines, m.Format.Percent(st.Share))
		}
	}
	if len(lines) > h {
		lines = lines[:h]
	}
	for i, l := range lines {
		lines[i] = truncateRunes(l, w)
	}
	return lines
}

func (m BrowseModel) cellStyle(c treemap.Cell, selected bool) lipgloss.Style {
	bg := m.colors[c.Item.ID]
	if selected {
		bg = bg.BlendLab(colorful.Color{R: 1, G: 1, B: 1}, 0.35).Clamped()
	}
	return lipgloss.NewStyle().
		Background(lipgloss.Color(bg.Hex())).
		Foreground(lipgloss.Color(styles.TextColor(bg))).
		Bold(selected)
}

func boundsOf(cells []treemap.Cell) treemap.Rect {
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, c := range cells {
		minX, minY = math.Min(minX, c.Rect.X), math.Min(minY, c.Rect.Y)
		maxX, maxY = math.Max(maxX, c.Rect.Right()), math.Max(maxY, c.Rect.Bottom())
	}
	return treemap.Rect{X: minX, Y: minY, W: maxX - minX, H: maxY - minY}
}

// span maps an offset and length in chart units to a half-open range of
// grid indices, never empty and never past n.
func span(off, length, scale float64, n int) (int, int) {
	a := int(math.Round(off * scale))
	b := int(math.Round((off + length) * scale))
	a = min(max(a, 0), n-1)
	b = min(max(b, a+1), n)
	return a, b
}

func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 1 {
		return string(r[:n])
	}
	return string(r[:n-1]) + "…"
}
