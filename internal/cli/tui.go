package cli

import (
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/harmonica"
	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/carousel/pkg/config"
	"github.com/matzehuels/carousel/pkg/geom"
	"github.com/matzehuels/carousel/pkg/pager"
	"github.com/matzehuels/carousel/pkg/render/sink"
	"github.com/matzehuels/carousel/pkg/transform"
)

const (
	previewFPS = 60

	// Spring tuning for the settle animation.
	springFrequency = 7.0
	springDamping   = 0.85

	// flickVelocity is the release velocity of an arrow key, in points per
	// millisecond.
	flickVelocity = 0.4

	// nudgeFraction is how far shift+arrow drags, as a fraction of the stride.
	nudgeFraction = 0.2

	// settleEpsilon ends the animation once position and velocity are this
	// close to rest.
	settleEpsilon = 0.5

	defaultCanvasCols = 64
	maxCanvasCols     = 120
	minCanvasRows     = 4
)

// noTransformer is the transformer cycle entry that disables effects.
const noTransformer = "none"

var cardColors = []lipgloss.Color{"75", "215", "167", "73", "114", "221", "140"}

var (
	previewFrameStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorDim)
	previewHelpStyle  = lipgloss.NewStyle().Foreground(colorDim)
)

// frameMsg advances the settle animation by one frame.
type frameMsg time.Time

func animate() tea.Cmd {
	return tea.Tick(time.Second/previewFPS, func(t time.Time) tea.Msg { return frameMsg(t) })
}

// =============================================================================
// PreviewModel - Interactive carousel
// =============================================================================

// PreviewModel is the bubbletea model that drives a pager from the keyboard
// and animates it toward snap targets with a spring.
type PreviewModel struct {
	cfg   *config.File
	pager *pager.Pager

	spring    harmonica.Spring
	pos, vel  float64 // animated offset along the scroll axis
	target    float64
	animating bool

	transformers []string
	trIndex      int

	cols, rows int
	maxRows    int
	err        error
}

// NewPreviewModel builds a preview of cfg. The pager logs nowhere so that
// debug output cannot corrupt the terminal.
func NewPreviewModel(cfg *config.File) (PreviewModel, error) {
	p, err := cfg.Pager(nil)
	if err != nil {
		return PreviewModel{}, err
	}
	names := append([]string{noTransformer}, transform.Names()...)
	idx := max(slices.Index(names, cfg.Transformer), 0)

	m := PreviewModel{
		cfg:          cfg,
		pager:        p,
		spring:       harmonica.NewSpring(harmonica.FPS(previewFPS), springFrequency, springDamping),
		transformers: names,
		trIndex:      idx,
	}
	m.resize(defaultCanvasCols, 0)
	m.sync()
	return m, nil
}

func (m PreviewModel) Init() tea.Cmd {
	return nil
}

func (m PreviewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.resize(msg.Width-2, msg.Height-6)
	case frameMsg:
		if !m.animating {
			return m, nil
		}
		axis := m.axis()
		m.pos, m.vel = m.spring.Update(m.pos, m.vel, m.target)
		if math.Abs(m.pos-m.target) < settleEpsilon && math.Abs(m.vel) < settleEpsilon {
			m.pager.Settle(axis.With(m.pager.ContentOffset(), m.target))
			m.animating = false
			m.sync()
			return m, nil
		}
		m.pager.ScrollTo(axis.With(m.pager.ContentOffset(), m.pos))
		return m, animate()
	}
	return m, nil
}

func (m PreviewModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key := msg.String(); key {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case "left", "up", "h", "k":
		return m, m.flick(-1)
	case "right", "down", "l", "j":
		return m, m.flick(1)
	case "shift+left", "shift+up":
		m.nudge(-1)
	case "shift+right", "shift+down":
		m.nudge(1)
	case " ", "enter":
		return m, m.springTo(m.pager.SnapTarget(0))
	case "r":
		m.pager.Rotate()
		m.resize(m.cols, m.maxRows)
		m.sync()
	case "t":
		m.trIndex = (m.trIndex + 1) % len(m.transformers)
		if err := m.applyTransformer(); err != nil {
			m.err = err
		}
		m.sync()
	case "o":
		m.pager.SetLooping(!m.pager.Options().Looping)
		m.pager.Layout()
		m.sync()
	default:
		if n, err := strconv.Atoi(key); err == nil && n >= 1 && n <= 9 {
			return m, m.jump(n - 1)
		}
	}
	return m, nil
}

func (m *PreviewModel) axis() geom.Axis {
	return m.pager.Engine().Axis()
}

// sync stops any animation and reads the pager's resting offset.
func (m *PreviewModel) sync() {
	m.pos = m.axis().Of(m.pager.ContentOffset())
	m.target = m.pos
	m.vel = 0
	m.animating = false
}

// springTo animates toward target. A running animation keeps its velocity.
func (m *PreviewModel) springTo(target geom.Point) tea.Cmd {
	m.target = m.axis().Of(target)
	if m.animating {
		return nil
	}
	m.pos = m.axis().Of(m.pager.ContentOffset())
	m.animating = true
	return animate()
}

// flick releases a drag in direction dir.
func (m *PreviewModel) flick(dir float64) tea.Cmd {
	return m.springTo(m.pager.SnapTarget(dir * flickVelocity))
}

// nudge drags by a fraction of the stride without releasing.
func (m *PreviewModel) nudge(dir float64) {
	m.pager.ScrollBy(dir * nudgeFraction * m.pager.Engine().Stride())
	m.sync()
}

// jump animates to item index.
func (m *PreviewModel) jump(index int) tea.Cmd {
	if index >= m.pager.NumberOfItems() {
		return nil
	}
	from := m.pager.ContentOffset()
	target := m.pager.ScrollToItem(index)
	m.pager.ScrollTo(from)
	return m.springTo(target)
}

func (m *PreviewModel) applyTransformer() error {
	name := m.transformers[m.trIndex]
	tr, err := transform.ByName(name, transform.Options{
		ItemSize:     m.cfg.ItemSize.Size(),
		Axis:         m.axis(),
		Spacing:      m.cfg.Spacing,
		MinimumScale: m.cfg.MinimumScale,
		MinimumAlpha: m.cfg.MinimumAlpha,
	})
	if err != nil {
		return err
	}
	m.pager.SetTransformer(tr)
	m.pager.Layout()
	return nil
}

// resize fits the canvas to cols columns, keeping the viewport's aspect
// ratio with cells twice as tall as wide. maxRows of zero means unbounded.
func (m *PreviewModel) resize(cols, maxRows int) {
	m.cols = min(max(cols, 8), maxCanvasCols)
	m.maxRows = maxRows
	vp := m.pager.ViewportSize()
	rows := minCanvasRows
	if vp.Width > 0 {
		rows = int(math.Round(float64(m.cols) * vp.Height / vp.Width / 2))
	}
	if maxRows > 0 {
		rows = min(rows, maxRows)
	}
	m.rows = max(rows, minCanvasRows)
}

func (m PreviewModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Carousel Preview"))
	b.WriteString("\n")
	b.WriteString(previewFrameStyle.Render(m.canvas()))
	b.WriteString("\n")
	b.WriteString(m.status())
	b.WriteString("\n")
	if m.err != nil {
		b.WriteString(StyleWarning.Render(m.err.Error()))
		b.WriteString("\n")
	}
	b.WriteString(previewHelpStyle.Render("←/→ flick  shift+←/→ drag  space snap  1-9 jump  t transformer  o loop  r rotate  q quit"))
	return b.String()
}

func (m PreviewModel) status() string {
	n := m.pager.NumberOfItems()
	if n == 0 {
		return StyleDim.Render("no items")
	}
	opts := m.pager.Options()
	parts := []string{
		StyleHighlight.Render(fmt.Sprintf("item %d/%d", m.pager.CurrentIndex()+1, n)),
		StyleDim.Render("offset ") + StyleNumber.Render(formatFloat(m.axis().Of(m.pager.ContentOffset()))),
		StyleValue.Render(m.transformers[m.trIndex]),
		StyleDim.Render(opts.Deceleration.String()),
	}
	if opts.Looping {
		parts = append(parts, StyleDim.Render("looping"))
	}
	return strings.Join(parts, StyleDim.Render(" · "))
}

// cell is one character of the canvas. color indexes cardColors; -1 is
// background.
type cell struct {
	r     rune
	color int
	label bool
}

// canvas draws the visible items back to front as shaded blocks.
func (m PreviewModel) canvas() string {
	grid := make([][]cell, m.rows)
	for y := range grid {
		grid[y] = make([]cell, m.cols)
		for x := range grid[y] {
			grid[y][x] = cell{r: ' ', color: -1}
		}
	}

	vp := m.pager.ViewportSize()
	if vp.Width > 0 && vp.Height > 0 {
		sx := float64(m.cols) / vp.Width
		sy := float64(m.rows) / vp.Height
		frame := sink.Frame{Viewport: m.pager.VisibleRect(), Items: m.pager.VisibleAttributes()}
		for _, a := range frame.PaintOrder() {
			b := frame.Bounds(a)
			x0, x1 := int(math.Round(b.MinX()*sx)), int(math.Round(b.MaxX()*sx))
			y0, y1 := int(math.Round(b.MinY()*sy)), int(math.Round(b.MaxY()*sy))
			color := ((a.Item % len(cardColors)) + len(cardColors)) % len(cardColors)
			shade := shadeFor(a.Alpha)
			for y := max(y0, 0); y < min(y1, m.rows); y++ {
				for x := max(x0, 0); x < min(x1, m.cols); x++ {
					grid[y][x] = cell{r: shade, color: color}
				}
			}

			label := strconv.Itoa(a.Item)
			ly, lx := (y0+y1)/2, (x0+x1)/2-len(label)/2
			for i, ch := range label {
				if x := lx + i; ly >= 0 && ly < m.rows && x >= max(x0, 0) && x < min(x1, m.cols) {
					grid[ly][x] = cell{r: ch, color: color, label: true}
				}
			}
		}
	}

	lines := make([]string, m.rows)
	for y, row := range grid {
		lines[y] = renderRow(row)
	}
	return strings.Join(lines, "\n")
}

// renderRow styles runs of equal cells together.
func renderRow(row []cell) string {
	var b strings.Builder
	for start := 0; start < len(row); {
		end := start + 1
		for end < len(row) && row[end].color == row[start].color && row[end].label == row[start].label {
			end++
		}
		var run strings.Builder
		for _, c := range row[start:end] {
			run.WriteRune(c.r)
		}
		b.WriteString(cellStyle(row[start]).Render(run.String()))
		start = end
	}
	return b.String()
}

func cellStyle(c cell) lipgloss.Style {
	if c.color < 0 {
		return lipgloss.NewStyle()
	}
	if c.label {
		return lipgloss.NewStyle().Bold(true).Foreground(colorWhite).Background(cardColors[c.color])
	}
	return lipgloss.NewStyle().Foreground(cardColors[c.color])
}

// shadeFor maps opacity to a block character.
func shadeFor(alpha float64) rune {
	switch {
	case alpha > 0.85:
		return '█'
	case alpha > 0.6:
		return '▓'
	case alpha > 0.35:
		return '▒'
	default:
		return '░'
	}
}
