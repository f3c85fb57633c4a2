package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/szabotudor/modecky/pkg/health"
	"github.com/szabotudor/modecky/pkg/models"
	"github.com/szabotudor/modecky/pkg/registry"
)

// TopCmd starts the interactive browser
func (a *App) TopCmd() error {
	model := newTopModel(a)
	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

type viewMode int
type viewFocus int
type confirmKind int

const (
	viewModeTable viewMode = iota
	viewModeCommand
	viewModeSearch
	viewModeHelp
	viewModeConfirm
)

const (
	focusGames viewFocus = iota
	focusProfiles
	focusOrder
	focusCount
)

const (
	confirmUnmanage confirmKind = iota
	confirmDeleteProfile
)

type confirmState struct {
	kind    confirmKind
	prompt  string
	id      models.GameID
	profile string
}

type keyMap struct {
	Up          key.Binding
	Down        key.Binding
	Focus       key.Binding
	Enter       key.Binding
	New         key.Binding
	Delete      key.Binding
	MoveUp      key.Binding
	MoveDown    key.Binding
	Command     key.Binding
	Filter      key.Binding
	ClearFilter key.Binding
	Help        key.Binding
	Quit        key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up:          key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:        key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Focus:       key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "switch pane")),
		Enter:       key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open/activate")),
		New:         key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new profile")),
		Delete:      key.NewBinding(key.WithKeys("x", "delete"), key.WithHelp("x", "remove")),
		MoveUp:      key.NewBinding(key.WithKeys("K", "shift+up"), key.WithHelp("K", "mod earlier")),
		MoveDown:    key.NewBinding(key.WithKeys("J", "shift+down"), key.WithHelp("J", "mod later")),
		Command:     key.NewBinding(key.WithKeys(":", "c"), key.WithHelp(":", "command")),
		Filter:      key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "filter")),
		ClearFilter: key.NewBinding(key.WithKeys("ctrl+l"), key.WithHelp("^L", "clear filter")),
		Help:        key.NewBinding(key.WithKeys("?", "f1"), key.WithHelp("?", "help")),
		Quit:        key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Focus, k.Enter, k.New, k.Delete, k.Command, k.Filter, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Focus, k.Enter},
		{k.New, k.Delete, k.MoveUp, k.MoveDown},
		{k.Command, k.Filter, k.ClearFilter, k.Help, k.Quit},
	}
}

// topModel represents the TUI state.
type topModel struct {
	app        *App
	games      []registry.Entry
	checks     map[models.GameID]*health.HealthCheck
	doc        *models.ProfileDocument
	mods       []string
	width      int
	height     int
	lastUpdate time.Time
	err        error

	gameSel    int
	profileSel int
	orderSel   int
	focus      viewFocus
	mode       viewMode

	cmdInput    string
	searchQuery string
	cmdStatus   string

	keys keyMap
	help help.Model

	confirm *confirmState
}

func newTopModel(app *App) topModel {
	m := topModel{
		app:        app,
		lastUpdate: time.Now(),
		mode:       viewModeTable,
		focus:      focusGames,
		checks:     make(map[models.GameID]*health.HealthCheck),
		keys:       defaultKeyMap(),
		help:       help.New(),
	}
	m.refresh()
	return m
}

func (m topModel) Init() tea.Cmd {
	return tickCmd()
}

func (m topModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch m.mode {
		case viewModeCommand:
			return m.updateInput(msg, func(m *topModel) {
				m.cmdStatus = m.runCommand(strings.TrimSpace(m.cmdInput))
			}), nil
		case viewModeSearch:
			return m.updateInput(msg, nil), nil
		case viewModeConfirm:
			switch msg.String() {
			case "y", "enter":
				m.executeConfirm(true)
			case "n", "esc":
				m.executeConfirm(false)
			}
			return m, nil
		case viewModeHelp:
			if msg.String() == "esc" || key.Matches(msg, m.keys.Help) {
				m.mode = viewModeTable
				m.help.ShowAll = false
				return m, nil
			}
		}

		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.mode = viewModeHelp
			m.help.ShowAll = true
		case key.Matches(msg, m.keys.Focus):
			m.focus = (m.focus + 1) % focusCount
		case key.Matches(msg, m.keys.Filter):
			m.mode = viewModeSearch
		case key.Matches(msg, m.keys.ClearFilter):
			m.searchQuery = ""
			m.cmdStatus = "Filter cleared"
			m.refresh()
		case key.Matches(msg, m.keys.Command):
			m.mode = viewModeCommand
			m.cmdInput = ""
		case key.Matches(msg, m.keys.Up):
			m.moveSelection(-1)
		case key.Matches(msg, m.keys.Down):
			m.moveSelection(1)
		case key.Matches(msg, m.keys.MoveUp):
			m.cmdStatus = m.shiftMod(-1)
		case key.Matches(msg, m.keys.MoveDown):
			m.cmdStatus = m.shiftMod(1)
		case key.Matches(msg, m.keys.New):
			m.cmdStatus = m.runCommand("create")
		case key.Matches(msg, m.keys.Delete):
			m.prepareDeleteConfirm()
		case key.Matches(msg, m.keys.Enter):
			switch m.focus {
			case focusGames:
				if _, ok := m.selectedGame(); ok {
					m.focus = focusProfiles
				}
			case focusProfiles:
				game, _ := m.selectedGame()
				if name, ok := m.selectedProfile(); ok {
					m.cmdStatus = m.activateProfile(game.ID, name)
					m.refresh()
				}
			}
		}
		return m, nil
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil
	case tickMsg:
		if m.mode == viewModeTable {
			m.refresh()
		}
		return m, tickCmd()
	}
	return m, nil
}

// updateInput edits the command line or the filter. onEnter runs after the
// mode returns to the table.
func (m topModel) updateInput(msg tea.KeyMsg, onEnter func(m *topModel)) topModel {
	field := &m.searchQuery
	if m.mode == viewModeCommand {
		field = &m.cmdInput
	}
	switch msg.String() {
	case "esc":
		m.mode = viewModeTable
		*field = ""
		return m
	case "enter":
		m.mode = viewModeTable
		if onEnter != nil {
			onEnter(&m)
		}
		m.cmdInput = ""
		if m.app != nil {
			m.refresh()
		}
		return m
	case "backspace":
		*field = trimLastRune(*field)
		return m
	}
	for _, r := range msg.Runes {
		if r >= 32 && r != 127 {
			*field += string(r)
		}
	}
	return m
}

func trimLastRune(s string) string {
	r := []rune(s)
	if len(r) == 0 {
		return s
	}
	return string(r[:len(r)-1])
}

func (m *topModel) refresh() {
	entries, checks, err := m.app.checkGames()
	if err != nil {
		m.err = err
		return
	}
	m.err = nil
	m.checks = checks
	m.games = filterGames(entries, m.searchQuery)
	m.lastUpdate = time.Now()
	m.gameSel = clamp(m.gameSel, len(m.games))

	m.doc, m.mods = nil, nil
	game, ok := m.selectedGame()
	if !ok {
		return
	}
	doc, _, err := m.app.profiles.Document(game.ID)
	if err != nil {
		m.cmdStatus = err.Error()
		return
	}
	m.doc = doc
	// Listing mods recreates the marker, so only do it while the install path exists.
	if c := checks[game.ID]; c != nil && c.Status != health.HealthMissingPath {
		if mods, err := m.app.profiles.ListMods(game.ID); err == nil {
			m.mods = mods
		}
	}
	m.profileSel = clamp(m.profileSel, len(doc.Profiles))
	m.orderSel = clamp(m.orderSel, len(m.currentOrder()))
}

func filterGames(entries []registry.Entry, query string) []registry.Entry {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return entries
	}
	var out []registry.Entry
	for _, e := range entries {
		hay := strings.ToLower(fmt.Sprintf("%s %s %s", e.ID, e.Name, e.Path))
		if strings.Contains(hay, q) {
			out = append(out, e)
		}
	}
	return out
}

func clamp(sel, n int) int {
	if n == 0 || sel < 0 {
		return 0
	}
	if sel >= n {
		return n - 1
	}
	return sel
}

func (m *topModel) moveSelection(delta int) {
	switch m.focus {
	case focusGames:
		next := clamp(m.gameSel+delta, len(m.games))
		if next != m.gameSel {
			m.gameSel = next
			m.profileSel, m.orderSel = 0, 0
			m.refresh()
		}
	case focusProfiles:
		if m.doc != nil {
			m.profileSel = clamp(m.profileSel+delta, len(m.doc.Profiles))
			m.orderSel = 0
		}
	case focusOrder:
		m.orderSel = clamp(m.orderSel+delta, len(m.currentOrder()))
	}
}

func (m topModel) selectedGame() (registry.Entry, bool) {
	if m.gameSel < 0 || m.gameSel >= len(m.games) {
		return registry.Entry{}, false
	}
	return m.games[m.gameSel], true
}

func (m topModel) selectedProfile() (string, bool) {
	if m.doc == nil || m.profileSel < 0 || m.profileSel >= len(m.doc.Profiles) {
		return "", false
	}
	return m.doc.Profiles[m.profileSel], true
}

func (m topModel) currentOrder() []string {
	name, ok := m.selectedProfile()
	if !ok {
		return nil
	}
	if data := m.doc.ProfileData[name]; data != nil {
		return data.LoadOrder
	}
	return nil
}

// shiftMod swaps the selected load order entry with its neighbour
func (m *topModel) shiftMod(delta int) string {
	if m.focus != focusOrder {
		return ""
	}
	game, ok := m.selectedGame()
	if !ok {
		return "No game selected"
	}
	profile, ok := m.selectedProfile()
	if !ok {
		return "No profile selected"
	}
	order := append([]string{}, m.currentOrder()...)
	i, j := m.orderSel, m.orderSel+delta
	if i < 0 || i >= len(order) || j < 0 || j >= len(order) {
		return ""
	}
	order[i], order[j] = order[j], order[i]
	out, err := m.app.profiles.SetLoadOrder(game.ID, profile, order)
	if err != nil {
		return err.Error()
	}
	if out.Applied {
		m.orderSel = j
	}
	m.refresh()
	return outcomeStatus(out, fmt.Sprintf("Moved %q to position %d", order[j], j+1))
}

func (m topModel) View() string {
	if m.err != nil {
		return fmt.Sprintf("Error: %v\nPress 'q' to quit\n", m.err)
	}

	width := m.width
	if width <= 0 {
		width = 120
	}

	var b strings.Builder
	headerStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true)
	dim := lipgloss.NewStyle().Foreground(lipgloss.Color("8"))

	b.WriteString("\x1b[H\x1b[2J")
	b.WriteString("\n")
	b.WriteString(headerStyle.Render("modecky - Mod Profiles (q quit)"))
	b.WriteString("\n\n")

	filter := m.searchQuery
	if strings.TrimSpace(filter) == "" {
		filter = "none"
	}
	ctx := fmt.Sprintf("Focus: %s | Filter: %s", focusLabel(m.focus), filter)
	b.WriteString(dim.Render(fitLine(ctx, width)))
	b.WriteString("\n\n")

	if m.mode == viewModeHelp {
		b.WriteString(m.renderHelp(width))
		b.WriteString("\n")
		return b.String()
	}

	b.WriteString(m.renderGames(width))
	b.WriteString("\n\n")
	b.WriteString(m.renderProfiles(width))
	b.WriteString("\n")
	b.WriteString(m.renderOrder(width))

	if m.mode == viewModeCommand {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Render(fitLine(":"+m.cmdInput, width)))
		b.WriteString("\n")
		if strings.HasPrefix(strings.TrimSpace(m.cmdInput), "manage") {
			b.WriteString(dim.Render(fitLine("Example: manage 489830 \"Skyrim\" ~/Games/Skyrim (name and path are optional)", width)))
			b.WriteString("\n")
		}
		b.WriteString(dim.Render(fitLine("Esc to go back", width)))
		b.WriteString("\n")
	}
	if m.mode == viewModeSearch {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Render(fitLine("/"+m.searchQuery, width)))
		b.WriteString("\n")
	}
	if m.mode == viewModeConfirm && m.confirm != nil {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true).Render(fitLine(m.confirm.prompt+" [y/N]", width)))
		b.WriteString("\n")
	}
	if m.cmdStatus != "" {
		b.WriteString("\n")
		b.WriteString(dim.Render(fitLine(m.cmdStatus, width)))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	footer := fmt.Sprintf("Last updated: %s | Games: %d", m.lastUpdate.Format("15:04:05"), len(m.games))
	b.WriteString(dim.Italic(true).Render(fitLine(footer, width)))
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	b.WriteString("\n")
	return b.String()
}

func (m topModel) renderGames(width int) string {
	if len(m.games) == 0 {
		if m.searchQuery != "" {
			return fitLine("(no managed games match the filter)", width)
		}
		return fitLine("No managed games yet. Press : then: manage <appid> [name] [path]", width)
	}

	idW, nameW, statusW, profW, modsW := 12, 24, 15, 8, 5
	sep := strings.Repeat(" ", 2)
	pathW := width - (idW + nameW + statusW + profW + modsW + 5*len(sep))
	if pathW < 12 {
		pathW = 12
	}

	row := func(cells ...string) string {
		widths := []int{idW, nameW, statusW, profW, modsW, pathW}
		parts := make([]string, len(cells))
		for i, c := range cells {
			parts[i] = fixedCell(c, widths[i])
		}
		return fitLine(strings.Join(parts, sep), width)
	}

	lines := []string{
		row("ID", "Name", "Health", "Profiles", "Mods", "Path"),
		row(strings.Repeat("─", idW), strings.Repeat("─", nameW), strings.Repeat("─", statusW),
			strings.Repeat("─", profW), strings.Repeat("─", modsW), strings.Repeat("─", pathW)),
	}
	for i, g := range m.games {
		status, profiles, mods := string(health.HealthUnknown), "-", "-"
		if c := m.checks[g.ID]; c != nil {
			status = health.StatusIcon(c.Status) + " " + string(c.Status)
			profiles = fmt.Sprintf("%d", c.Profiles)
			mods = fmt.Sprintf("%d", c.Mods)
		}
		line := row(g.ID.String(), orDash(g.Name), status, profiles, mods, g.Path)
		if i == m.gameSel {
			line = selectedStyle(m.focus == focusGames).Render(line)
		}
		lines = append(lines, line)
	}

	out := strings.Join(lines, "\n")
	if game, ok := m.selectedGame(); ok {
		if c := m.checks[game.ID]; c != nil && c.Status != health.HealthOK {
			out += "\n" + fitLine("Health detail: "+c.Message, width)
		}
	}
	return out
}

func (m topModel) renderProfiles(width int) string {
	game, ok := m.selectedGame()
	if !ok || m.doc == nil {
		return ""
	}
	var b strings.Builder
	title := fmt.Sprintf("Profiles of %s (n new, Enter activate, x delete)", orDash(game.Name))
	b.WriteString(fitLine(title, width))
	b.WriteString("\n")
	if len(m.doc.Profiles) == 0 {
		b.WriteString(fitLine("  (no profiles)", width))
		b.WriteString("\n")
		return b.String()
	}
	for i, p := range m.doc.Profiles {
		mark := " "
		if m.doc.ActiveProfile != nil && *m.doc.ActiveProfile == p {
			mark = "*"
		}
		count := 0
		if data := m.doc.ProfileData[p]; data != nil {
			count = len(data.LoadOrder)
		}
		line := fitLine(fmt.Sprintf("%s %s [%d mods]", mark, p, count), width)
		if i == m.profileSel {
			line = selectedStyle(m.focus == focusProfiles).Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}

func (m topModel) renderOrder(width int) string {
	profile, ok := m.selectedProfile()
	if !ok {
		return ""
	}
	var b strings.Builder
	b.WriteString(fitLine(fmt.Sprintf("Load order of %s (K/J move)", profile), width))
	b.WriteString("\n")
	order := m.currentOrder()
	if len(order) == 0 {
		b.WriteString(fitLine("  (empty; use :order mod1 mod2 ...)", width))
		b.WriteString("\n")
		return b.String()
	}
	missing := make(map[string]bool)
	for _, mod := range unknownMods(order, m.mods) {
		missing[mod] = true
	}
	for i, mod := range order {
		text := fmt.Sprintf("%3d. %s", i+1, mod)
		if missing[mod] {
			text += " (not installed)"
		}
		for j, l := range wrapWords(text, width) {
			line := fitLine(l, width)
			if i == m.orderSel && j == 0 {
				line = selectedStyle(m.focus == focusOrder).Render(line)
			}
			b.WriteString(line)
			b.WriteString("\n")
		}
	}
	return b.String()
}

func (m topModel) renderHelp(width int) string {
	lines := []string{
		"Commands",
		"manage <id> [name] [path], unmanage [id]",
		"create, rename <new>, delete, activate [name], deactivate",
		"order <mod...>, add <mod>, drop <mod>, refresh, help",
		"",
	}
	var out []string
	for _, l := range lines {
		out = append(out, fitLine(l, width))
	}
	return strings.Join(out, "\n") + m.help.View(m.keys)
}

func selectedStyle(focused bool) lipgloss.Style {
	if focused {
		return lipgloss.NewStyle().Background(lipgloss.Color("57")).Foreground(lipgloss.Color("15"))
	}
	return lipgloss.NewStyle().Background(lipgloss.Color("237"))
}

func focusLabel(f viewFocus) string {
	switch f {
	case focusProfiles:
		return "profiles"
	case focusOrder:
		return "load order"
	default:
		return "games"
	}
}

func (m *topModel) runCommand(input string) string {
	if input == "" {
		return ""
	}
	if m.app != nil {
		defer m.refresh()
	}
	args, err := parseArgs(input)
	if err != nil || len(args) == 0 {
		return "Invalid command"
	}

	switch args[0] {
	case "help":
		m.mode = viewModeHelp
		m.help.ShowAll = true
		return ""
	case "refresh":
		m.app.steam.ClearCache()
		m.refresh()
		return "Refreshed"
	case "manage":
		if len(args) < 2 {
			return "Usage: manage <id> [name] [path]"
		}
		id, err := models.ParseGameID(args[1])
		if err != nil {
			return err.Error()
		}
		name, path := argAt(args, 2), argAt(args, 3)
		name, path, err = m.app.resolveManageArgs(id, name, path, true)
		if err != nil {
			return err.Error()
		}
		out, err := m.app.registry.Manage(id, name, path)
		if err != nil {
			return err.Error()
		}
		return outcomeStatus(out, fmt.Sprintf("Managing %s (%s)", orDash(name), id))
	case "unmanage":
		id, ok := m.commandGameID(args)
		if !ok {
			return "Usage: unmanage [id]"
		}
		m.confirm = &confirmState{kind: confirmUnmanage, id: id, prompt: fmt.Sprintf("Unmanage %s and delete all of its profiles?", id)}
		m.mode = viewModeConfirm
		return ""
	}

	if !profileCommands[args[0]] {
		return "Unknown command (type :help)"
	}
	game, ok := m.selectedGame()
	if !ok {
		return "No game selected"
	}
	profile, hasProfile := m.selectedProfile()
	needProfile := func() string { return "No profile selected" }

	switch args[0] {
	case "create", "new":
		name, out, err := m.app.profiles.CreateProfile(game.ID)
		if err != nil {
			return err.Error()
		}
		m.refresh()
		if m.doc != nil {
			m.profileSel = len(m.doc.Profiles) - 1
		}
		return outcomeStatus(out, fmt.Sprintf("Created %s", name))
	case "rename":
		if !hasProfile {
			return needProfile()
		}
		if len(args) < 2 {
			return "Usage: rename <new name>"
		}
		out, err := m.app.profiles.RenameProfile(game.ID, profile, &args[1])
		if err != nil {
			return err.Error()
		}
		return outcomeStatus(out, fmt.Sprintf("Renamed %q to %q", profile, args[1]))
	case "delete", "rm":
		if !hasProfile {
			return needProfile()
		}
		m.confirm = &confirmState{kind: confirmDeleteProfile, id: game.ID, profile: profile, prompt: fmt.Sprintf("Delete profile %q?", profile)}
		m.mode = viewModeConfirm
		return ""
	case "activate":
		name := profile
		if len(args) > 1 {
			name = args[1]
		} else if !hasProfile {
			return needProfile()
		}
		return m.activateProfile(game.ID, name)
	case "deactivate":
		out, err := m.app.profiles.SetActiveProfile(game.ID, nil)
		if err != nil {
			return err.Error()
		}
		return outcomeStatus(out, "Active profile cleared")
	case "order", "add", "drop":
		if !hasProfile {
			return needProfile()
		}
		order, usage := editOrder(args, m.currentOrder())
		if usage != "" {
			return usage
		}
		return m.writeOrder(game.ID, profile, order)
	}
	return ""
}

func (m *topModel) activateProfile(id models.GameID, name string) string {
	out, err := m.app.profiles.SetActiveProfile(id, &name)
	if err != nil {
		return err.Error()
	}
	return outcomeStatus(out, fmt.Sprintf("Activated %q", name))
}

func (m *topModel) writeOrder(id models.GameID, profile string, order []string) string {
	for _, mod := range order {
		if err := validateModName(mod); err != nil {
			return err.Error()
		}
	}
	out, err := m.app.profiles.SetLoadOrder(id, profile, order)
	if err != nil {
		return err.Error()
	}
	return outcomeStatus(out, fmt.Sprintf("Load order of %q has %d mods", profile, len(order)))
}

var profileCommands = map[string]bool{
	"create": true, "new": true, "rename": true, "delete": true, "rm": true,
	"activate": true, "deactivate": true, "order": true, "add": true, "drop": true,
}

// editOrder applies an order/add/drop command to the current load order
func editOrder(args, current []string) ([]string, string) {
	switch args[0] {
	case "order":
		return append([]string{}, args[1:]...), ""
	case "add":
		if len(args) < 2 {
			return nil, "Usage: add <mod>"
		}
		return append(append([]string{}, current...), args[1:]...), ""
	default:
		if len(args) < 2 {
			return nil, "Usage: drop <mod>"
		}
		drop := make(map[string]bool, len(args)-1)
		for _, a := range args[1:] {
			drop[a] = true
		}
		out := []string{}
		for _, mod := range current {
			if !drop[mod] {
				out = append(out, mod)
			}
		}
		return out, ""
	}
}

func (m topModel) commandGameID(args []string) (models.GameID, bool) {
	if len(args) > 1 {
		id, err := models.ParseGameID(args[1])
		return id, err == nil
	}
	game, ok := m.selectedGame()
	return game.ID, ok
}

func argAt(args []string, i int) string {
	if i < len(args) {
		return args[i]
	}
	return ""
}

func outcomeStatus(out models.Outcome, success string) string {
	if msg := describeOutcome(out); msg != "" {
		return msg
	}
	return success
}

func (m *topModel) prepareDeleteConfirm() {
	switch m.focus {
	case focusGames:
		game, ok := m.selectedGame()
		if !ok {
			m.cmdStatus = "No game selected"
			return
		}
		m.confirm = &confirmState{kind: confirmUnmanage, id: game.ID, prompt: fmt.Sprintf("Unmanage %q and delete all of its profiles?", orDash(game.Name))}
	case focusProfiles:
		game, _ := m.selectedGame()
		profile, ok := m.selectedProfile()
		if !ok {
			m.cmdStatus = "No profile selected"
			return
		}
		m.confirm = &confirmState{kind: confirmDeleteProfile, id: game.ID, profile: profile, prompt: fmt.Sprintf("Delete profile %q?", profile)}
	case focusOrder:
		game, _ := m.selectedGame()
		profile, hasProfile := m.selectedProfile()
		order := m.currentOrder()
		if !hasProfile || m.orderSel < 0 || m.orderSel >= len(order) {
			m.cmdStatus = "No mod selected"
			return
		}
		kept, _ := editOrder([]string{"drop", order[m.orderSel]}, order)
		m.cmdStatus = m.writeOrder(game.ID, profile, kept)
		m.refresh()
		return
	}
	m.mode = viewModeConfirm
}

func (m *topModel) executeConfirm(yes bool) {
	if m.confirm == nil {
		m.mode = viewModeTable
		return
	}
	c := *m.confirm
	m.confirm = nil
	m.mode = viewModeTable
	if !yes {
		m.cmdStatus = "Cancelled"
		return
	}
	switch c.kind {
	case confirmUnmanage:
		out, err := m.app.registry.Unmanage(c.id)
		if err != nil {
			m.cmdStatus = err.Error()
		} else {
			m.cmdStatus = outcomeStatus(out, fmt.Sprintf("Game %s is no longer managed", c.id))
		}
	case confirmDeleteProfile:
		out, err := m.app.profiles.DeleteProfile(c.id, c.profile)
		if err != nil {
			m.cmdStatus = err.Error()
		} else {
			m.cmdStatus = outcomeStatus(out, fmt.Sprintf("Deleted profile %q", c.profile))
		}
	}
	m.refresh()
}

type tickMsg time.Time

func tickCmd() tea.Cmd {
	return tea.Tick(2*time.Second, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func parseArgs(input string) ([]string, error) {
	var args []string
	var buf strings.Builder
	inQuotes := false
	var quote rune
	escaped := false
	for _, r := range input {
		if escaped {
			buf.WriteRune(r)
			escaped = false
			continue
		}
		switch r {
		case '\\':
			escaped = true
		case '"', '\'':
			if inQuotes && r == quote {
				inQuotes = false
				quote = 0
			} else if !inQuotes {
				inQuotes = true
				quote = r
			} else {
				buf.WriteRune(r)
			}
		case ' ', '\t':
			if inQuotes {
				buf.WriteRune(r)
			} else if buf.Len() > 0 {
				args = append(args, buf.String())
				buf.Reset()
			}
		default:
			buf.WriteRune(r)
		}
	}
	if inQuotes {
		return nil, fmt.Errorf("unterminated quote")
	}
	if buf.Len() > 0 {
		args = append(args, buf.String())
	}
	return args, nil
}

func fixedCell(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) > width {
		return runewidth.Truncate(s, width, "…")
	}
	return s + strings.Repeat(" ", width-runewidth.StringWidth(s))
}

func wrapRunes(s string, width int) []string {
	if width <= 0 || s == "" {
		return []string{s}
	}
	var out []string
	rest := s
	for runewidth.StringWidth(rest) > width {
		chunk := runewidth.Truncate(rest, width, "")
		if chunk == "" {
			break
		}
		out = append(out, chunk)
		rest = strings.TrimPrefix(rest, chunk)
	}
	if rest != "" {
		out = append(out, rest)
	}
	return out
}

func wrapWords(s string, width int) []string {
	if width <= 0 {
		return []string{s}
	}
	words := strings.Fields(s)
	if len(words) == 0 {
		return []string{""}
	}
	lines := make([]string, 0, 4)
	cur := words[0]
	for _, w := range words[1:] {
		candidate := cur + " " + w
		if runewidth.StringWidth(candidate) <= width {
			cur = candidate
			continue
		}
		lines = append(lines, cur)
		// A single word wider than the line falls back to rune wrapping.
		if runewidth.StringWidth(w) > width {
			chunks := wrapRunes(w, width)
			lines = append(lines, chunks[:len(chunks)-1]...)
			cur = chunks[len(chunks)-1]
		} else {
			cur = w
		}
	}
	lines = append(lines, cur)
	return lines
}

func fitLine(line string, width int) string {
	if width <= 0 {
		return line
	}
	lineWidth := runewidth.StringWidth(line)
	if lineWidth >= width {
		// Let the terminal wrap long lines to the viewport instead of truncating.
		return line
	}
	return line + strings.Repeat(" ", width-lineWidth)
}
