package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/Abraxas-365/inputassist/assistant"
	"github.com/Abraxas-365/inputassist/datasource"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// OpenFunc resolves a source reference typed by the user into a data source.
type OpenFunc func(ref string) (datasource.DataSource, error)

// ModelConfig holds the configuration for creating a new TUI model
type ModelConfig struct {
	Assistant *assistant.Assistant
	Open      OpenFunc
	// Source is loaded on start when set.
	Source  string
	Context context.Context
	// Renderer is the Lip Gloss renderer to use for styling. If nil, the
	// default renderer is used.
	Renderer *lipgloss.Renderer
}

type focus int

const (
	focusList focus = iota
	focusPrefix
	focusSource
	focusSize
	focusCount
)

const listWidth = 14

// loadedMsg carries the result of a background fetch.
type loadedMsg struct {
	seq  int
	ref  string
	docs []datasource.Document
	err  error
}

// Model is the root BubbleTea model
type Model struct {
	config    ModelConfig
	assistant *assistant.Assistant
	styles    Styles

	prefix  textarea.Model
	source  textinput.Model
	size    textinput.Model
	preview viewport.Model

	focus  focus
	cursor int
	offset int

	width      int
	height     int
	listHeight int

	loading   bool
	loadSeq   int
	status    string
	statusErr bool
	quitting  bool
}

// NewModel creates the root TUI model
func NewModel(config ModelConfig) Model {
	r := config.Renderer
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}
	if config.Context == nil {
		config.Context = context.Background()
	}
	styles := NewStyles(r)

	prefix := textarea.New()
	prefix.Placeholder = "Prefix sent before every chunk"
	prefix.ShowLineNumbers = false
	prefix.SetHeight(3)
	prefix.SetValue(config.Assistant.Prefix())
	prefix.Blur()

	source := textinput.New()
	source.Placeholder = "path, https:// URL or s3://bucket/key"
	source.Prompt = ""
	source.SetValue(config.Source)

	size := textinput.New()
	size.Prompt = ""
	size.CharLimit = 9

	m := Model{
		config:    config,
		assistant: config.Assistant,
		styles:    styles,
		prefix:    prefix,
		source:    source,
		size:      size,
		preview:   viewport.New(60, 10),
		width:     80,
		height:    24,
		status:    "Press o to open a source",
	}
	m.size.Placeholder = strconv.Itoa(m.assistant.ChunkSize())
	if config.Source != "" {
		m.loading = true
		m.loadSeq = 1
		m.status = "Loading " + config.Source + "..."
	}
	m.resize()
	return m
}

func (m Model) Init() tea.Cmd {
	if m.config.Source != "" {
		return m.loadCmd(m.loadSeq, m.config.Source)
	}
	return nil
}

// loadCmd fetches ref off the update loop. Chunking happens when the result
// comes back to Update.
func (m Model) loadCmd(seq int, ref string) tea.Cmd {
	a := m.assistant
	open := m.config.Open
	ctx := m.config.Context
	return func() tea.Msg {
		ds, err := open(ref)
		if err != nil {
			return loadedMsg{seq: seq, ref: ref, err: err}
		}
		docs, err := a.Fetch(ctx, ds)
		return loadedMsg{seq: seq, ref: ref, docs: docs, err: err}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		return m, nil

	case loadedMsg:
		if msg.seq != m.loadSeq {
			return m, nil
		}
		m.loading = false
		m.handleLoaded(msg)
		return m, nil

	case tea.KeyMsg:
		cmd, handled := m.handleKeyMsg(msg)
		if handled {
			return m, cmd
		}
	}

	var cmd tea.Cmd
	switch m.focus {
	case focusPrefix:
		m.prefix, cmd = m.prefix.Update(msg)
		m.assistant.SetPrefix(m.prefix.Value())
		m.refreshPreview()
	case focusSource:
		m.source, cmd = m.source.Update(msg)
	case focusSize:
		m.size, cmd = m.size.Update(msg)
	default:
		m.preview, cmd = m.preview.Update(msg)
	}
	if cmd != nil {
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

func (m *Model) handleLoaded(msg loadedMsg) {
	if msg.err != nil {
		m.setError("Error fetching document: " + msg.err.Error())
		return
	}

	n, err := m.assistant.Ingest(msg.docs)
	if err != nil {
		m.setError(err.Error())
		return
	}
	if n == 0 && len(msg.docs) > 0 && m.assistant.Source() == "" {
		m.setError("Unsupported content type")
		return
	}
	m.setStatus(fmt.Sprintf("Loaded %d chunks from %s", n, msg.ref))
}

// handleKeyMsg processes keyboard input.
// Returns (cmd, handled) where handled=true keeps the focused input from
// also processing the key.
func (m *Model) handleKeyMsg(msg tea.KeyMsg) (tea.Cmd, bool) {
	key := msg.String()

	if key == "ctrl+c" {
		m.quitting = true
		return tea.Quit, true
	}

	switch key {
	case "tab":
		return m.setFocus((m.focus + 1) % focusCount), true
	case "shift+tab":
		return m.setFocus((m.focus + focusCount - 1) % focusCount), true
	}

	switch m.focus {
	case focusPrefix:
		if key == "esc" {
			return m.setFocus(focusList), true
		}
		return nil, false

	case focusSource:
		switch key {
		case "esc":
			return m.setFocus(focusList), true
		case "enter":
			ref := strings.TrimSpace(m.source.Value())
			if ref == "" {
				return nil, true
			}
			cmd := m.startLoad(ref)
			return tea.Batch(cmd, m.setFocus(focusList)), true
		}
		return nil, false

	case focusSize:
		switch key {
		case "esc":
			m.size.Reset()
			return m.setFocus(focusList), true
		case "enter":
			m.applySize()
			return m.setFocus(focusList), true
		}
		return nil, false
	}

	switch key {
	case "q":
		m.quitting = true
		return tea.Quit, true
	case "up", "k":
		m.moveCursor(-1)
	case "down", "j":
		m.moveCursor(1)
	case "home", "g":
		m.moveCursor(-m.cursor)
	case "end", "G":
		m.moveCursor(m.assistant.Len())
	case "enter":
		m.selectChunk()
	case "c":
		m.copyChunk()
	case "p":
		return m.setFocus(focusPrefix), true
	case "o":
		return m.setFocus(focusSource), true
	case "s":
		return m.setFocus(focusSize), true
	default:
		return nil, false
	}
	return nil, true
}

func (m *Model) setFocus(f focus) tea.Cmd {
	m.focus = f
	m.prefix.Blur()
	m.source.Blur()
	m.size.Blur()

	switch f {
	case focusPrefix:
		return m.prefix.Focus()
	case focusSource:
		return m.source.Focus()
	case focusSize:
		return m.size.Focus()
	}
	return nil
}

func (m *Model) startLoad(ref string) tea.Cmd {
	m.loadSeq++
	m.loading = true
	m.assistant.Clear()
	m.cursor, m.offset = 0, 0
	m.refreshPreview()
	m.setStatus("Loading " + ref + "...")
	return m.loadCmd(m.loadSeq, ref)
}

func (m *Model) applySize() {
	value := strings.TrimSpace(m.size.Value())
	m.size.Reset()
	if value == "" {
		return
	}

	size, err := strconv.Atoi(value)
	if err != nil {
		m.setError("Chunk size must be a number")
		return
	}
	if err := m.assistant.SetChunkSize(size); err != nil {
		m.setError(err.Error())
		return
	}

	m.size.Placeholder = strconv.Itoa(size)
	m.moveCursor(0)
	m.refreshPreview()
	m.setStatus(fmt.Sprintf("Chunk size %d, %d chunks", size, m.assistant.Len()))
}

func (m *Model) selectChunk() {
	if m.assistant.Len() == 0 {
		return
	}
	if _, err := m.assistant.Select(m.cursor); err != nil {
		m.setError(err.Error())
		return
	}
	m.refreshPreview()
	m.preview.GotoTop()
}

func (m *Model) copyChunk() {
	if m.assistant.Len() == 0 {
		return
	}
	i := m.assistant.Selected()
	if i < 0 {
		i = m.cursor
	}
	if err := m.assistant.Copy(i); err != nil {
		m.setError(err.Error())
		return
	}
	m.setStatus(fmt.Sprintf("Copied chunk %d to clipboard", i+1))
}

// moveCursor moves the list cursor by delta, clamped, keeping it in view.
func (m *Model) moveCursor(delta int) {
	n := m.assistant.Len()
	m.cursor += delta
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}

	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+m.listHeight {
		m.offset = m.cursor - m.listHeight + 1
	}
}

func (m *Model) refreshPreview() {
	i := m.assistant.Selected()
	if i < 0 {
		m.preview.SetContent("")
		return
	}
	text, err := m.assistant.Compose(i)
	if err != nil {
		m.preview.SetContent("")
		return
	}
	m.preview.SetContent(text)
}

func (m *Model) setStatus(s string) {
	m.status = s
	m.statusErr = false
}

func (m *Model) setError(s string) {
	m.status = s
	m.statusErr = true
}

// resize lays the panes out for the current terminal size.
func (m *Model) resize() {
	// title, prefix box, two input lines, status and help
	body := m.height - 12
	if body < 3 {
		body = 3
	}
	m.listHeight = body

	inner := m.width - 2
	m.preview.Width = max(inner-listWidth-4, 10)
	m.preview.Height = body
	m.prefix.SetWidth(max(inner-2, 10))
	m.moveCursor(0)
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	title := m.styles.Title.Render("Input Assistant")
	if src := m.assistant.Source(); src != "" {
		title += " " + m.styles.Muted.Render(src)
	}

	list := m.styles.ListBorder.
		Width(listWidth).
		Height(m.listHeight).
		Render(m.renderList())

	previewContent := m.preview.View()
	if m.assistant.Selected() < 0 {
		previewContent = m.styles.Muted.Render("Select a chunk to preview")
	}
	preview := m.styles.PreviewBorder.
		Width(m.preview.Width).
		Height(m.listHeight).
		Render(previewContent)

	body := lipgloss.JoinHorizontal(lipgloss.Top, list, preview)

	prefix := m.borderFor(focusPrefix).Render(m.prefix.View())
	source := lipgloss.JoinHorizontal(lipgloss.Top,
		m.styles.InputLabel.Render("Source"), m.source.View())
	size := lipgloss.JoinHorizontal(lipgloss.Top,
		m.styles.InputLabel.Render("Size"), m.size.View())

	status := m.styles.Status.Render(m.status)
	if m.statusErr {
		status = m.styles.StatusError.Render(m.status)
	}

	help := m.styles.Help.Render("enter select • c copy • p prefix • o open • s size • tab focus • q quit")

	return m.styles.App.Render(lipgloss.JoinVertical(lipgloss.Left,
		title, body, prefix, source, size, status, help,
	))
}

func (m Model) borderFor(f focus) lipgloss.Style {
	if m.focus == f {
		return m.styles.InputBorderActive
	}
	return m.styles.InputBorder
}

func (m Model) renderList() string {
	n := m.assistant.Len()
	if n == 0 {
		if m.loading {
			return m.styles.Muted.Render(" Loading...")
		}
		return m.styles.Muted.Render(" No chunks")
	}

	end := min(m.offset+m.listHeight, n)
	selected := m.assistant.Selected()

	var sb strings.Builder
	for i := m.offset; i < end; i++ {
		label := fmt.Sprintf("Chunk %d", i+1)
		style := m.styles.ListItem
		switch {
		case i == selected:
			style = m.styles.ListSelected
		case i == m.cursor && m.focus == focusList:
			style = m.styles.ListCursor
		}
		sb.WriteString(style.Width(listWidth).Render(label))
		if i < end-1 {
			sb.WriteString("\n")
		}
	}
	return sb.String()
}
