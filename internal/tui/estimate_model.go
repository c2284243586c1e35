// Package tui provides the interactive terminal views of solarsizer.
package tui

import (
	"context"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rshade/solarsizer/internal/engine"
	"github.com/rshade/solarsizer/internal/report"
)

// EstimateState represents the current state of the estimate TUI.
type EstimateState int

const (
	// EstimateStateEditing indicates the user is editing inputs.
	EstimateStateEditing EstimateState = iota
	// EstimateStateCalculating indicates an estimate is in progress.
	EstimateStateCalculating
	// EstimateStateQuitting indicates the application is exiting.
	EstimateStateQuitting
)

// Input rows, in display order.
const (
	RowZone = iota
	RowDemand
	RowCost
	rowCount
)

const inputCharLimit = 16

// EstimateFunc computes a sizing result.
type EstimateFunc func(context.Context, engine.ProjectInput) (*engine.SizingResult, error)

// estimateDoneMsg is sent when an estimate completes.
type estimateDoneMsg struct {
	result *engine.SizingResult
	err    error
}

// EstimateModel is the Bubble Tea model for interactive sizing. The zone is
// picked with left/right; demand and cost are edited in place.
type EstimateModel struct {
	ctx        context.Context
	estimateFn EstimateFunc

	zones   []string
	zoneIdx int
	demand  string
	cost    string

	focusedRow int
	editMode   bool
	input      textinput.Model
	spinner    spinner.Model

	result *engine.SizingResult
	err    error
	state  EstimateState

	width  int
	height int
}

// NewEstimateModel creates a model over zones, starting from in. An unknown
// or empty zone selects the first one.
func NewEstimateModel(ctx context.Context, zones []string, in engine.ProjectInput, fn EstimateFunc) *EstimateModel {
	ti := textinput.New()
	ti.CharLimit = inputCharLimit
	ti.Prompt = ""

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = sp.Style.Foreground(ColorSpinner)

	m := &EstimateModel{
		ctx:        ctx,
		estimateFn: fn,
		zones:      append([]string(nil), zones...),
		input:      ti,
		spinner:    sp,
		state:      EstimateStateEditing,
		width:      80,
		height:     24,
	}
	if idx := slices.Index(m.zones, strings.TrimSpace(in.Zone)); idx >= 0 {
		m.zoneIdx = idx
	}
	m.demand = formatInput(in.MonthlyDemandKWh)
	m.cost = formatInput(in.UnitEnergyCost)
	return m
}

func formatInput(v float64) string {
	if v == 0 {
		return ""
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Init starts a first estimate when every input is already filled in.
func (m *EstimateModel) Init() tea.Cmd {
	if m.ready() {
		return m.recalculate()
	}
	return nil
}

// Update handles messages and updates the model state.
func (m *EstimateModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case estimateDoneMsg:
		m.state = EstimateStateEditing
		m.result, m.err = msg.result, msg.err
		if msg.err != nil {
			m.result = nil
		}
		return m, nil

	case spinner.TickMsg:
		if m.state != EstimateStateCalculating {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if m.editMode {
			return m.handleEditKey(msg)
		}
		return m.handleKey(msg)
	}
	return m, nil
}

//nolint:exhaustive // Only navigation keys matter here.
func (m *EstimateModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		m.state = EstimateStateQuitting
		return m, tea.Quit

	case tea.KeyRunes:
		switch string(msg.Runes) {
		case "q":
			m.state = EstimateStateQuitting
			return m, tea.Quit
		case "r":
			if m.ready() {
				return m, m.recalculate()
			}
		}

	case tea.KeyUp:
		if m.focusedRow > 0 {
			m.focusedRow--
		}

	case tea.KeyDown:
		if m.focusedRow < rowCount-1 {
			m.focusedRow++
		}

	case tea.KeyLeft, tea.KeyRight:
		if m.focusedRow != RowZone || len(m.zones) == 0 {
			return m, nil
		}
		step := 1
		if msg.Type == tea.KeyLeft {
			step = len(m.zones) - 1
		}
		m.zoneIdx = (m.zoneIdx + step) % len(m.zones)
		if m.ready() {
			return m, m.recalculate()
		}

	case tea.KeyEnter:
		if m.focusedRow == RowZone {
			return m, nil
		}
		m.editMode = true
		m.input.SetValue(m.rowValue(m.focusedRow))
		m.input.CursorEnd()
		return m, m.input.Focus()
	}
	return m, nil
}

//nolint:exhaustive // Remaining keys go to the text input.
func (m *EstimateModel) handleEditKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		value := strings.TrimSpace(m.input.Value())
		m.closeEditor()
		if _, err := strconv.ParseFloat(value, 64); err != nil {
			m.err = fmt.Errorf("%q is not a number", value)
			return m, nil
		}
		m.setRowValue(m.focusedRow, value)
		m.err = nil
		if m.ready() {
			return m, m.recalculate()
		}
		return m, nil

	case tea.KeyEsc:
		m.closeEditor()
		return m, nil

	case tea.KeyCtrlC:
		m.state = EstimateStateQuitting
		return m, tea.Quit
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *EstimateModel) closeEditor() {
	m.editMode = false
	m.input.Blur()
	m.input.SetValue("")
}

func (m *EstimateModel) rowValue(row int) string {
	switch row {
	case RowDemand:
		return m.demand
	case RowCost:
		return m.cost
	default:
		return m.zone()
	}
}

func (m *EstimateModel) setRowValue(row int, value string) {
	switch row {
	case RowDemand:
		m.demand = value
	case RowCost:
		m.cost = value
	}
}

func (m *EstimateModel) zone() string {
	if len(m.zones) == 0 {
		return ""
	}
	return m.zones[m.zoneIdx]
}

func (m *EstimateModel) ready() bool {
	return m.estimateFn != nil && m.zone() != "" && m.demand != "" && m.cost != ""
}

// recalculate captures the current input before handing it to the command,
// so the goroutine never reads model fields.
func (m *EstimateModel) recalculate() tea.Cmd {
	m.state = EstimateStateCalculating
	ctx, fn, in := m.ctx, m.estimateFn, m.Input()
	return tea.Batch(m.spinner.Tick, func() tea.Msg {
		result, err := fn(ctx, in)
		return estimateDoneMsg{result: result, err: err}
	})
}

// Input returns the project input currently shown.
func (m *EstimateModel) Input() engine.ProjectInput {
	demand, _ := strconv.ParseFloat(m.demand, 64)
	cost, _ := strconv.ParseFloat(m.cost, 64)
	return engine.ProjectInput{Zone: m.zone(), MonthlyDemandKWh: demand, UnitEnergyCost: cost}
}

// Result returns the last successful estimate, or nil.
func (m *EstimateModel) Result() *engine.SizingResult {
	return m.result
}

// Err returns the error of the last estimate or edit, if any.
func (m *EstimateModel) Err() error {
	return m.err
}

// State returns the current state.
func (m *EstimateModel) State() EstimateState {
	return m.state
}

// View renders the current view.
func (m *EstimateModel) View() string {
	if m.state == EstimateStateQuitting {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(headerStyle.Render("Solar Sizer · Estimación interactiva"))
	sb.WriteString("\n\n")

	labels := [rowCount]string{"Zona", "Consumo mensual (kWh)", "Costo del kWh"}
	for row := range rowCount {
		marker := "  "
		label := labelStyle.Render(labels[row])
		if row == m.focusedRow {
			marker = focusStyle.Render("› ")
			label = focusStyle.Render(labels[row])
		}
		value := m.rowValue(row)
		switch {
		case m.editMode && row == m.focusedRow:
			value = m.input.View()
		case row == RowZone:
			value = valueStyle.Render("‹ " + value + " ›")
		case value == "":
			value = mutedStyle.Render("(vacío)")
		default:
			value = valueStyle.Render(value)
		}
		fmt.Fprintf(&sb, "%s%-24s %s\n", marker, label, value)
	}
	sb.WriteString("\n")

	switch {
	case m.state == EstimateStateCalculating:
		sb.WriteString(m.spinner.View() + " Calculando...\n")
	case m.err != nil:
		sb.WriteString(errorStyle.Render("Error: "+m.err.Error()) + "\n")
	case m.result != nil:
		sb.WriteString(RenderSections(report.Sections(m.result)))
	}

	sb.WriteString("\n")
	sb.WriteString(RenderEstimateHelp(m.editMode))
	return sb.String()
}

// RenderSections renders result sections as aligned label/value lines.
func RenderSections(sections []report.Section) string {
	var sb strings.Builder
	for _, s := range sections {
		sb.WriteString(sectionStyle.Render(s.Title))
		sb.WriteString("\n")
		for _, r := range s.Rows {
			fmt.Fprintf(&sb, "  %s %s\n", labelStyle.Render(r.Label+":"), valueStyle.Render(r.Value))
		}
	}
	return sb.String()
}

// RenderEstimateHelp renders the keyboard shortcut help text.
func RenderEstimateHelp(editing bool) string {
	shortcuts := []string{"↑/↓: Navegar", "←/→: Zona", "Enter: Editar", "r: Recalcular", "q: Salir"}
	if editing {
		shortcuts = []string{"Enter: Confirmar", "Esc: Cancelar"}
	}
	return mutedStyle.Render(strings.Join(shortcuts, " | "))
}
