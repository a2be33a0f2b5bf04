// Package ui is the interactive chat shell. It composes the conversation,
// tone, preference and archive state owners into one bubbletea program.
package ui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/iksnae/studymind/internal"
	"github.com/iksnae/studymind/internal/chat"
	"github.com/iksnae/studymind/internal/prefs"
	"github.com/iksnae/studymind/internal/tone"
)

const (
	headerHeight = 1
	noticeHeight = 1
	inputHeight  = 3
	footerHeight = 1

	minViewportWidth = 40
)

// Archive stores conversations between runs
type Archive interface {
	SaveConversation(rec *internal.ConversationRecord) error
	ListConversations(limit int) ([]internal.Conversation, error)
	LoadConversation(id string) (*internal.ConversationRecord, error)
}

// Options wires the shell to its state owners
type Options struct {
	Backend  chat.Backend
	Tone     *tone.Store
	Prefs    *prefs.Prefs
	Archive  Archive // optional
	UserID   string
	Markdown bool

	// Conversation resumes an existing conversation; nil starts a new one
	Conversation *chat.Conversation

	Now func() time.Time
}

type turnDoneMsg struct{ err error }

type toneLoadedMsg struct{ tone internal.Tone }

type toneChangedMsg struct {
	tone    internal.Tone
	changed bool
	err     error
}

type archiveMsg struct {
	convs []internal.Conversation
	err   error
}

type openedMsg struct {
	rec *internal.ConversationRecord
	err error
}

// Model is the bubbletea model of the chat shell
type Model struct {
	ctx  context.Context
	opts Options
	conv *chat.Conversation

	theme    Theme
	md       *Markdown
	keys     keyMap
	help     help.Model
	viewport viewport.Model
	input    textarea.Model
	spinner  spinner.Model

	archived    []internal.Conversation
	notice      string
	helpVisible bool
	inFlight    bool

	width  int
	height int
	ready  bool
}

// New builds the shell model
func New(ctx context.Context, opts Options) (Model, error) {
	if opts.Backend == nil || opts.Tone == nil || opts.Prefs == nil {
		return Model{}, errors.New("ui: backend, tone store and preferences are required")
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	conv := opts.Conversation
	if conv == nil {
		conv = chat.New(opts.Backend, opts.UserID)
	}
	opts.Tone.SetAnnouncer(conv)

	theme := NewTheme(opts.Prefs.Dark())

	ta := textarea.New()
	ta.Placeholder = "Ask anything, share study material, or type /help"
	ta.Prompt = "┃ "
	ta.ShowLineNumbers = false
	ta.CharLimit = 0
	ta.SetHeight(inputHeight)
	ta.KeyMap.InsertNewline = key.NewBinding(key.WithKeys("alt+enter"))
	ta.Focus()

	m := Model{
		ctx:      ctx,
		opts:     opts,
		conv:     conv,
		theme:    theme,
		md:       NewMarkdown(opts.Markdown, theme.Dark, 80),
		keys:     defaultKeyMap(),
		help:     help.New(),
		viewport: viewport.New(80, 20),
		input:    ta,
		spinner:  spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(theme.Spinner)),
	}
	return m, nil
}

// Run starts the shell and blocks until the user quits
func Run(ctx context.Context, opts Options) error {
	m, err := New(ctx, opts)
	if err != nil {
		return err
	}
	final, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	if fm, ok := final.(Model); ok {
		fm.save()
	}
	return err
}

// Conversation returns the conversation on screen
func (m Model) Conversation() *chat.Conversation {
	return m.conv
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(textarea.Blink, m.loadTone(), m.loadArchive())
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.layout()
		m.ready = true
		m.refresh()
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.save()
			return m, tea.Quit
		case key.Matches(msg, m.keys.Sidebar):
			m.toggleSidebar()
			return m, nil
		case key.Matches(msg, m.keys.Theme):
			m.toggleTheme()
			return m, nil
		case key.Matches(msg, m.keys.New):
			cmd := m.newConversation()
			return m, cmd
		case key.Matches(msg, m.keys.Send):
			return m.submit()
		case key.Matches(msg, m.keys.Scroll):
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		}

	case spinner.TickMsg:
		if !m.inFlight {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		m.refresh()
		return m, cmd

	case turnDoneMsg:
		m.inFlight = false
		if msg.err != nil {
			m.notice = noticeFor(msg.err)
		}
		m.refresh()
		return m, m.saveAndList()

	case toneLoadedMsg:
		internal.LogDebug("Tone is %s", msg.tone)
		return m, nil

	case toneChangedMsg:
		m.inFlight = false
		switch {
		case msg.err != nil:
			// the store has logged it; only a bad name is worth showing
			if errors.Is(msg.err, tone.ErrUnknownTone) {
				m.notice = msg.err.Error()
			}
			return m, nil
		case !msg.changed:
			m.notice = fmt.Sprintf("Tone is already %s", msg.tone)
			return m, nil
		}
		m.refresh()
		return m, m.saveAndList()

	case archiveMsg:
		if msg.err != nil {
			internal.LogWarn("Failed to list conversations: %v", msg.err)
			return m, nil
		}
		m.archived = msg.convs
		return m, nil

	case openedMsg:
		m.inFlight = false
		if msg.err != nil {
			m.notice = msg.err.Error()
			return m, nil
		}
		m.conv = chat.Restore(m.opts.Backend, m.opts.UserID, msg.rec)
		m.opts.Tone.SetAnnouncer(m.conv)
		m.notice = ""
		m.refresh()
		return m, m.loadArchive()
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	body := m.viewport.View()
	if m.sidebarVisible() {
		side := renderSidebar(m.theme, m.archived, m.conv.ID(), m.viewport.Height, m.opts.Now())
		body = lipgloss.JoinHorizontal(lipgloss.Top, side, body)
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		m.headerView(),
		body,
		m.theme.Notice.Render(m.notice),
		m.input.View(),
		m.theme.Footer.Render(m.help.ShortHelpView(m.keys.ShortHelp())),
	)
}

func (m Model) headerView() string {
	title := m.theme.Header.Render("StudyMind AI")
	meta := fmt.Sprintf("tone: %s · theme: %s · %s",
		m.opts.Tone.Current(), m.opts.Prefs.ThemeName(), sidebarSummary(m.archived))
	return lipgloss.JoinHorizontal(lipgloss.Top, title, m.theme.HeaderMuted.Render(meta))
}

func (m Model) submit() (tea.Model, tea.Cmd) {
	text := m.input.Value()
	if strings.TrimSpace(text) == "" {
		return m, nil
	}

	c, isCommand, err := ParseCommand(text)
	if err != nil {
		m.input.Reset()
		m.notice = err.Error()
		return m, nil
	}
	if !isCommand {
		// input stays in the box until the pending reply arrives
		if m.busy() {
			return m, nil
		}
		m.input.Reset()
		conv := m.conv
		cmd := m.startTurn(func(ctx context.Context) error {
			return conv.SendUserText(ctx, text)
		})
		return m, cmd
	}
	return m.runCommand(c)
}

func (m Model) runCommand(c Command) (tea.Model, tea.Cmd) {
	switch c.Kind {
	case CmdTheme:
		m.input.Reset()
		m.toggleTheme()
		return m, nil
	case CmdSidebar:
		m.input.Reset()
		m.toggleSidebar()
		return m, nil
	case CmdHelp:
		m.input.Reset()
		m.notice = ""
		m.helpVisible = true
		m.refresh()
		return m, nil
	}

	if m.busy() {
		return m, nil
	}
	m.input.Reset()
	conv := m.conv

	switch c.Kind {
	case CmdOperation:
		cmd := m.startTurn(func(ctx context.Context) error {
			return conv.SelectOperation(ctx, c.Task)
		})
		return m, cmd

	case CmdFile:
		cmd := m.startTurn(func(ctx context.Context) error {
			return conv.SendFile(ctx, c.Arg, c.Rest)
		})
		return m, cmd

	case CmdTone:
		if c.Arg == "" {
			names := make([]string, len(internal.Tones))
			for i, t := range internal.Tones {
				names[i] = string(t)
			}
			m.notice = fmt.Sprintf("Tone: %s (available: %s)", m.opts.Tone.Current(), strings.Join(names, ", "))
			return m, nil
		}
		m.inFlight = true
		m.notice = ""
		store, ctx, want := m.opts.Tone, m.ctx, internal.Tone(c.Arg)
		return m, tea.Batch(func() tea.Msg {
			changed, err := store.Change(ctx, want)
			return toneChangedMsg{tone: store.Current(), changed: changed, err: err}
		}, m.spinner.Tick)

	case CmdNew:
		cmd := m.newConversation()
		return m, cmd

	case CmdOpen:
		if c.N > len(m.archived) {
			m.notice = fmt.Sprintf("No conversation %d in the sidebar", c.N)
			return m, nil
		}
		id := m.archived[c.N-1].ID
		m.save()
		m.inFlight = true
		archive := m.opts.Archive
		return m, func() tea.Msg {
			rec, err := archive.LoadConversation(id)
			return openedMsg{rec: rec, err: err}
		}
	}
	return m, nil
}

// startTurn runs fn off the event loop and ticks the spinner until it returns
func (m *Model) startTurn(fn func(ctx context.Context) error) tea.Cmd {
	m.inFlight = true
	m.notice = ""
	m.helpVisible = false
	ctx := m.ctx
	return tea.Batch(func() tea.Msg {
		return turnDoneMsg{err: fn(ctx)}
	}, m.spinner.Tick)
}

func (m *Model) newConversation() tea.Cmd {
	if m.busy() {
		return nil
	}
	m.save()
	m.conv.Reset()
	m.notice = ""
	m.helpVisible = false
	m.refresh()
	return m.loadArchive()
}

func (m *Model) toggleTheme() {
	dark, err := m.opts.Prefs.ToggleDark()
	if err != nil {
		internal.LogWarn("Failed to save theme: %v", err)
	}
	m.theme = NewTheme(dark)
	m.spinner.Style = m.theme.Spinner
	m.layout()
	m.refresh()
}

func (m *Model) toggleSidebar() {
	if _, err := m.opts.Prefs.ToggleSidebar(); err != nil {
		internal.LogWarn("Failed to save sidebar state: %v", err)
	}
	m.layout()
	m.refresh()
}

func (m *Model) layout() {
	w := m.width
	if m.sidebarVisible() {
		w -= sidebarWidth
	}
	m.viewport.Width = w
	m.viewport.Height = max(m.height-headerHeight-noticeHeight-inputHeight-footerHeight, 3)
	m.input.SetWidth(m.width)
	m.help.Width = m.width
	m.md = NewMarkdown(m.opts.Markdown, m.theme.Dark, w-4)
}

func (m Model) sidebarVisible() bool {
	return m.opts.Prefs.SidebarOpen() && m.width >= sidebarWidth+minViewportWidth
}

func (m Model) busy() bool {
	return m.inFlight || m.conv.Busy()
}

func (m *Model) refresh() {
	m.viewport.SetContent(m.transcript())
	m.viewport.GotoBottom()
}

func (m Model) transcript() string {
	var blocks []string
	for _, msg := range m.conv.Messages() {
		blocks = append(blocks, m.renderMessage(msg))
	}
	if m.conv.IsTyping() {
		blocks = append(blocks, m.theme.BotLabel.Render("StudyMind")+" "+m.spinner.View()+m.theme.PendingText.Render(" typing..."))
	}
	if m.helpVisible {
		blocks = append(blocks, HelpText())
	}
	return strings.Join(blocks, "\n\n")
}

func (m Model) renderMessage(msg internal.Message) string {
	label := m.theme.UserLabel.Render("You")
	if msg.Role == internal.RoleAssistant {
		label = m.theme.BotLabel.Render("StudyMind")
	}
	if msg.Task != "" {
		label += " " + m.theme.TaskLabel.Render(msg.Task.Label())
	}
	label += " " + m.theme.Timestamp.Render(msg.CreatedAt.Format("15:04"))

	var body string
	switch {
	case msg.IsPending:
		body = m.spinner.View() + " " + m.theme.PendingText.Render(msg.Content)
	case msg.IsError:
		body = m.theme.ErrorText.Render(msg.Content)
	case msg.Role == internal.RoleAssistant:
		body = m.md.Render(msg.Content)
	default:
		body = msg.Content
	}
	return label + "\n" + body
}

// save archives the conversation once the user has said something
func (m Model) save() {
	if m.opts.Archive == nil || !m.conv.HasUserMessages() {
		return
	}
	if err := m.opts.Archive.SaveConversation(m.conv.Record()); err != nil {
		internal.LogWarn("Failed to save conversation: %v", err)
	}
}

func (m Model) saveAndList() tea.Cmd {
	if m.opts.Archive == nil {
		return nil
	}
	return func() tea.Msg {
		m.save()
		convs, err := m.opts.Archive.ListConversations(sidebarLimit)
		return archiveMsg{convs: convs, err: err}
	}
}

func (m Model) loadArchive() tea.Cmd {
	if m.opts.Archive == nil {
		return nil
	}
	archive := m.opts.Archive
	return func() tea.Msg {
		convs, err := archive.ListConversations(sidebarLimit)
		return archiveMsg{convs: convs, err: err}
	}
}

func (m Model) loadTone() tea.Cmd {
	store, ctx := m.opts.Tone, m.ctx
	return func() tea.Msg {
		return toneLoadedMsg{tone: store.Load(ctx)}
	}
}

func noticeFor(err error) string {
	switch {
	case errors.Is(err, chat.ErrBusy):
		return "Still waiting for the previous reply"
	case errors.Is(err, chat.ErrNothingToStudy):
		return "Send some study material first, then pick an operation"
	default:
		return err.Error()
	}
}
