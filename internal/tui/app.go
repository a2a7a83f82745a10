// Package tui is the terminal rendition of the landing page: the page copy in
// a scrollable viewport, section navigation, and the inquiry form.
//
// It follows the bubbletea Model/Update/View loop. The inquiry request runs in
// a command off the loop; its result comes back as a message and is handed to
// the form flow, so all flow and shell state changes happen inside Update.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"reliableteam-site/internal/client/querycache"
	"reliableteam-site/internal/domain"
	"reliableteam-site/internal/inquiryform"
	"reliableteam-site/internal/site"
	"reliableteam-site/pkg/logger"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	toastTTL    = 4 * time.Second
	recentLimit = 5

	defaultWidth  = 100
	defaultHeight = 32
)

// InquiryAPI is the part of the HTTP client the terminal UI needs.
type InquiryAPI interface {
	inquiryform.Submitter
	ListInquiries(ctx context.Context, statuses []domain.InquiryStatus, limit int) ([]domain.Inquiry, error)
	HasToken() bool
}

// focusTarget is what receives key presses: the page or one form input.
type focusTarget int

const (
	focusPage focusTarget = iota
	focusName
	focusEmail
	focusCompany
	focusRequirements
	focusCount
)

func (f focusTarget) field() inquiryform.Field {
	return inquiryform.Fields[f-focusName]
}

type submitResultMsg struct {
	err error
}

type toastExpiredMsg struct {
	id int
}

type recentLoadedMsg struct {
	items []domain.Inquiry
	err   error
}

type toast struct {
	id        int
	note      inquiryform.Notification
	scheduled bool
}

// viewportScroller lets the shell move the page viewport.
type viewportScroller struct {
	app *App
}

func (s viewportScroller) ScrollTo(offset int) {
	s.app.viewport.SetYOffset(offset)
}

// AppOption customizes App construction for tests and alternate runtimes.
type AppOption func(*App)

// WithListTimeout bounds the recent-inquiries request. Submissions are not
// bounded.
func WithListTimeout(d time.Duration) AppOption {
	return func(a *App) {
		if d > 0 {
			a.listTimeout = d
		}
	}
}

// WithCache shares a query cache with other parts of the program.
func WithCache(c *querycache.Cache) AppOption {
	return func(a *App) {
		if c != nil {
			a.cache = c
		}
	}
}

// App is the root model.
type App struct {
	content     *site.Content
	shell       *site.Shell
	flow        *inquiryform.Flow
	api         InquiryAPI
	cache       *querycache.Cache
	listTimeout time.Duration

	viewport     viewport.Model
	spinner      spinner.Model
	inputs       []textinput.Model
	requirements textarea.Model
	focus        focusTarget

	toasts      []toast
	nextToastID int

	recent    []domain.Inquiry
	recentErr string

	width  int
	height int
}

func NewApp(content *site.Content, api InquiryAPI, opts ...AppOption) *App {
	a := &App{
		content:     content,
		api:         api,
		cache:       querycache.New(),
		listTimeout: 10 * time.Second,
		viewport:    viewport.New(defaultWidth, defaultHeight),
		spinner:     spinner.New(spinner.WithSpinner(spinner.Dot)),
		width:       defaultWidth,
		height:      defaultHeight,
	}
	for _, opt := range opts {
		opt(a)
	}

	a.shell = site.NewShell(content.Nav, viewportScroller{app: a})
	a.flow = inquiryform.New(api, a.pushToast, a.cache.Invalidate)

	placeholders := []string{"Jane Doe", "jane@company.com", "Company name"}
	for i, p := range placeholders {
		in := textinput.New()
		in.Prompt = ""
		in.Placeholder = p
		in.CharLimit = 254
		if i == 0 {
			in.CharLimit = 120
		}
		a.inputs = append(a.inputs, in)
	}
	a.requirements = textarea.New()
	a.requirements.Placeholder = "Tell us about your AI role needs"
	a.requirements.ShowLineNumbers = false
	a.requirements.SetHeight(3)

	a.relayout()
	return a
}

// Init is called once when the program starts.
func (a *App) Init() tea.Cmd {
	return a.fetchRecent()
}

// Update is called when a message is received.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.relayout()
		return a, nil

	case submitResultMsg:
		a.flow.Finish(msg.err)
		if msg.err != nil {
			logger.Log.Warn("Inquiry submission failed", "error", msg.err)
		} else {
			logger.Log.Info("Inquiry submitted")
		}
		a.syncInputs()
		return a, tea.Batch(a.toastCmds(), a.fetchRecent())

	case toastExpiredMsg:
		for i, t := range a.toasts {
			if t.id == msg.id {
				a.toasts = append(a.toasts[:i], a.toasts[i+1:]...)
				break
			}
		}
		return a, nil

	case recentLoadedMsg:
		if msg.err != nil {
			a.recentErr = msg.err.Error()
			logger.Log.Warn("Failed to load recent inquiries", "error", msg.err)
		} else {
			a.recentErr = ""
			a.recent = msg.items
		}
		return a, nil

	case spinner.TickMsg:
		if a.flow.State() != inquiryform.StatePending {
			return a, nil
		}
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		return a, cmd

	case tea.KeyMsg:
		return a.handleKey(msg)
	}

	return a, nil
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return a, tea.Quit
	case "ctrl+s":
		return a, a.submit()
	case "tab":
		a.setFocus((a.focus + 1) % focusCount)
		return a, nil
	case "shift+tab":
		a.setFocus((a.focus + focusCount - 1) % focusCount)
		return a, nil
	case "esc":
		if a.shell.MenuOpen() {
			a.shell.ToggleMobileMenu()
		}
		a.setFocus(focusPage)
		return a, nil
	}

	if a.focus == focusPage {
		return a.handlePageKey(msg)
	}

	var cmd tea.Cmd
	if a.focus == focusRequirements {
		a.requirements, cmd = a.requirements.Update(msg)
		a.flow.SetField(inquiryform.FieldRequirements, a.requirements.Value())
		return a, cmd
	}
	i := int(a.focus - focusName)
	a.inputs[i], cmd = a.inputs[i].Update(msg)
	a.flow.SetField(a.focus.field(), a.inputs[i].Value())
	return a, cmd
}

func (a *App) handlePageKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	switch key {
	case "q":
		return a, tea.Quit
	case "m":
		a.shell.ToggleMobileMenu()
		return a, nil
	}

	if len(key) == 1 && key[0] >= '1' && key[0] <= '9' {
		idx := int(key[0] - '1')
		nav := a.shell.NavItems()
		if idx < len(nav) {
			a.shell.ScrollToSection(nav[idx].ID)
		}
		return a, nil
	}

	var cmd tea.Cmd
	a.viewport, cmd = a.viewport.Update(msg)
	return a, cmd
}

// submit starts a submission. While one is pending this does nothing.
func (a *App) submit() tea.Cmd {
	payload, ok := a.flow.Begin()
	if !ok {
		return a.toastCmds()
	}
	send := func() tea.Msg {
		return submitResultMsg{err: a.flow.Send(context.Background(), payload)}
	}
	return tea.Batch(a.toastCmds(), send, a.spinner.Tick)
}

func (a *App) pushToast(n inquiryform.Notification) {
	a.nextToastID++
	a.toasts = append(a.toasts, toast{id: a.nextToastID, note: n})
}

// toastCmds schedules expiry for toasts added since the last call.
func (a *App) toastCmds() tea.Cmd {
	var cmds []tea.Cmd
	for i := range a.toasts {
		if a.toasts[i].scheduled {
			continue
		}
		a.toasts[i].scheduled = true
		id := a.toasts[i].id
		cmds = append(cmds, tea.Tick(toastTTL, func(time.Time) tea.Msg {
			return toastExpiredMsg{id: id}
		}))
	}
	return tea.Batch(cmds...)
}

func (a *App) fetchRecent() tea.Cmd {
	if a.api == nil || !a.api.HasToken() {
		return nil
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), a.listTimeout)
		defer cancel()
		v, err := a.cache.Fetch(ctx, inquiryform.InquiriesQueryKey, func(ctx context.Context) (interface{}, error) {
			return a.api.ListInquiries(ctx, nil, recentLimit)
		})
		if err != nil {
			return recentLoadedMsg{err: err}
		}
		items, _ := v.([]domain.Inquiry)
		return recentLoadedMsg{items: items}
	}
}

func (a *App) setFocus(f focusTarget) {
	for i := range a.inputs {
		a.inputs[i].Blur()
	}
	a.requirements.Blur()

	a.focus = f
	switch {
	case f == focusRequirements:
		a.requirements.Focus()
	case f >= focusName:
		a.inputs[f-focusName].Focus()
	}
}

// syncInputs copies the flow draft into the widgets, which matters after a
// successful submission cleared it.
func (a *App) syncInputs() {
	draft := a.flow.Draft()
	for i := range a.inputs {
		a.inputs[i].SetValue(draft.Get(inquiryform.Fields[i]))
	}
	a.requirements.SetValue(draft.Requirements)
}

func (a *App) relayout() {
	width := a.width
	if width <= 0 {
		width = defaultWidth
	}
	page := renderPage(a.content, width-2)
	a.viewport.Width = width
	a.viewport.SetContent(page.body)
	a.shell.SetAnchors(page.anchors)

	for i := range a.inputs {
		a.inputs[i].Width = max(10, width-20)
	}
	a.requirements.SetWidth(max(10, width-4))
}

func (a *App) View() string {
	header := a.renderHeader()
	form := a.renderForm()
	footer := a.renderFooter()

	chrome := lipgloss.Height(header) + lipgloss.Height(form) + lipgloss.Height(footer)
	a.viewport.Height = max(3, a.height-chrome)

	return lipgloss.JoinVertical(lipgloss.Left, header, a.viewport.View(), form, footer)
}

func (a *App) renderHeader() string {
	var nav []string
	for i, item := range a.shell.NavItems() {
		nav = append(nav, fmt.Sprintf("[%d] %s", i+1, item.Label))
	}
	bar := lipgloss.JoinHorizontal(lipgloss.Top,
		titleStyle.Render(a.content.Brand),
		"  ",
		mutedStyle.Render("[m] menu"),
	)
	if a.width >= 80 {
		bar += "  " + strings.Join(nav, "  ")
	}
	if !a.shell.MenuOpen() {
		return bar
	}
	menu := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(accent).
		Padding(0, 1).
		Render(strings.Join(nav, "\n"))
	return lipgloss.JoinVertical(lipgloss.Left, bar, menu)
}

func (a *App) renderForm() string {
	labels := []string{"Name", "Email", "Company"}
	lines := []string{headingStyle.Render(a.content.Contact.FormTitle)}
	for i, in := range a.inputs {
		label := fmt.Sprintf("%-9s", labels[i])
		if a.focus == focusName+focusTarget(i) {
			label = titleStyle.Render(label)
		}
		lines = append(lines, label+" "+in.View())
	}
	reqLabel := "AI role needs"
	if a.focus == focusRequirements {
		reqLabel = titleStyle.Render(reqLabel)
	}
	lines = append(lines, reqLabel, a.requirements.View())

	button := "[ctrl+s] " + a.flow.SubmitLabel()
	if a.flow.State() == inquiryform.StatePending {
		button = a.spinner.View() + " " + a.flow.SubmitLabel()
		lines = append(lines, mutedStyle.Render(button))
	} else {
		lines = append(lines, titleStyle.Render(button))
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#444444")).
		Padding(0, 1).
		Width(max(20, a.width-2)).
		Render(strings.Join(lines, "\n"))
}

func (a *App) renderFooter() string {
	var lines []string
	for _, t := range a.toasts {
		style := lipgloss.NewStyle().Bold(true).Foreground(accent)
		if t.note.Kind == inquiryform.KindError {
			style = style.Foreground(errorColor)
		}
		lines = append(lines, style.Render(t.note.Title)+" "+t.note.Description)
	}

	if a.api != nil && a.api.HasToken() {
		lines = append(lines, headingStyle.Render("Recent inquiries"))
		switch {
		case a.recentErr != "":
			lines = append(lines, lipgloss.NewStyle().Foreground(errorColor).Render(a.recentErr))
		case len(a.recent) == 0:
			lines = append(lines, mutedStyle.Render("None yet."))
		default:
			for _, inq := range a.recent {
				lines = append(lines, fmt.Sprintf("%s  %-10s %s · %s",
					inq.CreatedAt.Local().Format("Jan 02 15:04"), inq.Status, inq.Company, inq.Name))
			}
		}
	}

	lines = append(lines, mutedStyle.Render("tab next field · esc page · 1-9 jump · ↑/↓ scroll · q quit"))
	return strings.Join(lines, "\n")
}
