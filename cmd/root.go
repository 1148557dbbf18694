package cmd

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"golang.org/x/term"

	"github.com/inburst/prhub/config"
	"github.com/inburst/prhub/datasource"
	"github.com/inburst/prhub/logger"
	"github.com/inburst/prhub/stats"
	"github.com/inburst/prhub/table"
	"github.com/inburst/prhub/tracking"
	"github.com/inburst/prhub/ui"
)

type pullsLoadedMsg struct {
	generation int
	pulls      []*datasource.PullRequest
}

type pullsFailedMsg struct {
	generation int
	err        error
}

type cachedPullsMsg struct {
	pulls []*datasource.PullRequest
}

type commentCountMsg struct {
	generation int
	key        string
	count      datasource.CommentCount
	err        error
}

type model struct {
	ctx    context.Context
	cancel context.CancelFunc

	// listCtx carries the listing in flight and its comment lookups, it is
	// cancelled when a refresh replaces them
	listCtx    context.Context
	listCancel context.CancelFunc

	ds     *datasource.Datasource
	stats  *stats.Stats
	config *config.Config

	nav    *ui.TabNav
	views  []*ui.PRView
	table  *ui.TableView
	footer *ui.Footer

	selectedTabIndex int
	detail           *ui.PRDetail
	showStats        bool

	// rows of the latest listing in provider order
	rows []*datasource.PullRequest
	// generation of the listing in flight, older results are dropped
	generation    int
	statusMessage string

	width  int
	height int
}

func newModel(ctx context.Context, c *config.Config, ds *datasource.Datasource, s *stats.Stats) *model {
	ctx, cancel := context.WithCancel(ctx)
	listCtx, listCancel := context.WithCancel(ctx)
	layout := table.NewLayout(table.BreakpointsFromConfig(c.Breakpoints))
	return &model{
		ctx:        ctx,
		cancel:     cancel,
		listCtx:    listCtx,
		listCancel: listCancel,
		ds:     ds,
		stats:  s,
		config: c,

		nav: &ui.TabNav{},
		views: []*ui.PRView{
			ui.AllPRs(),
			ui.MyPRs(c.Username),
			ui.ReviewingPRs(c.Username),
			ui.DraftPRs(),
		},
		table: &ui.TableView{
			Layout: layout,
			Avatar: ui.Avatar{Variant: ui.AvatarVariantFromConfig(c.Avatars)},
			Sort:   ui.NewSortState(),
			Counts: map[string]datasource.CommentCount{},
			State:  ui.StateUninitialized,
		},
		footer: &ui.Footer{},

		width:  80,
		height: 24,
	}
}

func (m *model) Init() tea.Cmd {
	m.table.State = ui.StateLoading
	m.statusMessage = "init..."
	return tea.Batch(m.loadCache(), m.fetchPulls())
}

func (m *model) loadCache() tea.Cmd {
	ds := m.ds
	return func() tea.Msg {
		return cachedPullsMsg{pulls: ds.LoadLocalCache()}
	}
}

func (m *model) fetchPulls() tea.Cmd {
	ds, ctx, generation := m.ds, m.listCtx, m.generation
	return func() tea.Msg {
		pulls, err := ds.ListPulls(ctx)
		if err != nil {
			return pullsFailedMsg{generation: generation, err: err}
		}
		return pullsLoadedMsg{generation: generation, pulls: pulls}
	}
}

func (m *model) fetchCommentCounts() tea.Cmd {
	cmds := []tea.Cmd{}
	for _, pr := range m.rows {
		pr := pr
		ds, ctx, generation := m.ds, m.listCtx, m.generation
		cmds = append(cmds, func() tea.Msg {
			count, err := ds.CommentCount(ctx, pr)
			return commentCountMsg{generation: generation, key: pr.CacheKey(), count: count, err: err}
		})
	}
	return tea.Batch(cmds...)
}

// stale reports results that belong to a superseded listing or arrive after
// shutdown.
func (m *model) stale(generation int) bool {
	return generation != m.generation || m.ctx.Err() != nil
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height

	case cachedPullsMsg:
		// a finished listing wins over the cache
		if len(m.rows) == 0 && m.table.State == ui.StateLoading {
			m.setRows(msg.pulls)
		}

	case pullsLoadedMsg:
		if m.stale(msg.generation) {
			return m, nil
		}
		m.table.State = ui.StateLoaded
		m.table.Err = nil
		m.setRows(msg.pulls)
		m.statusMessage = fmt.Sprintf("found %d active pull requests", len(msg.pulls))
		return m, m.fetchCommentCounts()

	case pullsFailedMsg:
		if m.stale(msg.generation) {
			return m, nil
		}
		m.table.State = ui.StateFailed
		m.table.Err = msg.err
		m.statusMessage = msg.err.Error()

	case commentCountMsg:
		if m.stale(msg.generation) {
			return m, nil
		}
		if msg.err != nil {
			m.statusMessage = msg.err.Error()
			return m, nil
		}
		m.table.Counts[msg.key] = msg.count

	// Is it a key press?
	case tea.KeyMsg:
		return m.onKey(msg)
	}

	return m, nil
}

func (m *model) onKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	switch key {

	// These keys should exit the program.
	case "ctrl+c", "q":
		m.cancel()
		return m, tea.Quit

	case "esc":
		m.detail = nil
		m.showStats = false

	case "r":
		return m, m.refresh()

	case "1", "2", "3", "4", "5", "6", "7", "8", "9":
		position, _ := strconv.Atoi(key)
		m.sortBy(position)

	case "s":
		m.table.Sort = m.table.Sort.ToggleDirection()
		m.applyRows()

	// The "up" and "k" keys move the cursor up
	case "up", "k":
		m.currentView().OnCursorMove(-1)

	// The "down" and "j" keys move the cursor down
	case "down", "j":
		m.currentView().OnCursorMove(1)

	case "left", "h":
		if m.selectedTabIndex > 0 {
			m.selectedTabIndex--
		}

	case "right", "l":
		if m.selectedTabIndex < len(m.views)-1 {
			m.selectedTabIndex++
		}

	case "enter", "o":
		m.openSelected()

	case "d":
		if pr := m.currentView().GetSelectedPull(); pr != nil {
			m.detail = &ui.PRDetail{PR: pr}
		}

	case "z":
		m.showStats = !m.showStats
	}

	return m, nil
}

// refresh starts a new listing. Results of the previous one are ignored.
func (m *model) refresh() tea.Cmd {
	m.listCancel()
	m.listCtx, m.listCancel = context.WithCancel(m.ctx)
	m.generation++
	m.table.State = ui.StateLoading
	m.table.Counts = map[string]datasource.CommentCount{}
	m.statusMessage = "refreshing..."
	tracking.SendMetric("ui.refresh")
	return m.fetchPulls()
}

// sortBy sorts by the column drawn at position, counting from 1 on the left.
func (m *model) sortBy(position int) {
	visible := m.table.VisibleColumns(m.width)
	if position < 1 || position > len(visible) {
		m.statusMessage = fmt.Sprintf("only %d columns fit on screen", len(visible))
		return
	}
	c := visible[position-1]
	if !c.Sortable {
		m.statusMessage = fmt.Sprintf("%s cannot be sorted", c.Label)
		return
	}
	m.table.Sort = m.table.Sort.Select(c.Index)
	m.applyRows()
}

func (m *model) setRows(rows []*datasource.PullRequest) {
	m.rows = rows
	m.applyRows()
}

// applyRows pushes the sorted rows into every tab.
func (m *model) applyRows() {
	sorted := m.rows
	if m.table.Sort.Sorted() {
		sorted = m.table.Layout.Sort(m.table.Sort.Column, m.table.Sort.Direction, m.rows)
	}
	for _, v := range m.views {
		v.OnNewPullData(sorted)
	}
}

func (m *model) currentView() *ui.PRView {
	return m.views[m.selectedTabIndex]
}

func (m *model) openSelected() {
	pr := m.currentView().GetSelectedPull()
	if pr == nil {
		return
	}
	if err := ui.Navigate(pr.URL); err != nil {
		logger.Shared().WithError(err).Warn("opening browser")
		m.statusMessage = fmt.Sprintf("could not open %s", pr.URL)
		return
	}
	tracking.SendMetric("ui.open")
	if m.stats != nil {
		if err := m.stats.OnViewedPR(pr); err != nil {
			logger.Shared().WithError(err).Warn("saving stats")
		}
	}
}

func (m *model) View() string {
	headerHeight := 0
	if m.height >= 30 {
		headerHeight = 8
	}
	navHeight := 3
	footerHeight := 1
	bodyHeight := m.height - headerHeight - navHeight - footerHeight

	renderedPage := strings.Builder{}

	if headerHeight > 0 {
		renderedPage.WriteString(ui.BuildHeader(m.width, headerHeight, m.ds.ProviderName()))
	}

	// Tab Nav
	renderedPage.WriteString(m.nav.BuildView(m.width, navHeight, m.views, m.selectedTabIndex))

	// Body View
	switch {
	case m.showStats && m.stats != nil:
		renderedPage.WriteString((&ui.Stats{UserStats: m.stats}).BuildView(m.width, bodyHeight))
	case m.detail != nil:
		renderedPage.WriteString(m.detail.BuildView(m.width, bodyHeight))
	default:
		renderedPage.WriteString(m.table.BuildView(m.currentView(), m.width, bodyHeight))
	}

	// Footer
	renderedPage.WriteString(m.footer.BuildView(m.width, footerHeight, m.statusMessage, m.table.State, m.ds.ProviderName()))
	return renderedPage.String()
}

func Execute() {
	flags := pflag.NewFlagSet("prhub", pflag.ExitOnError)
	serve := flags.Bool("serve", false, "serve the pull request API instead of the terminal UI")
	check := flags.Bool("check", false, "verify the credentials, list pull requests and exit")
	configPath := flags.String("config", "", "configuration file (default ~/.prhub/conf.yaml)")
	flags.Parse(os.Args[1:])

	// .env is optional
	_ = godotenv.Load()

	if err := logger.InitializeLogger(); err != nil {
		fmt.Printf("could not open log file: %v\n", err)
	}

	c, err := config.LoadConfig(*configPath)
	if err != nil {
		fmt.Printf("%s\n", err)
		os.Exit(1)
	}
	tracking.Init(c.TrackingToken)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	provider, err := datasource.NewProvider(ctx, c)
	if err != nil {
		fmt.Printf("%s\n", err)
		os.Exit(1)
	}

	switch {
	case *check:
		err = runCheck(ctx, c, provider, os.Stdout)
	case *serve:
		err = runServe(ctx, c, provider)
	default:
		err = runUI(ctx, c, provider)
	}
	if err != nil {
		fmt.Printf("Alas, there's been an error: %v\n", err)
		os.Exit(1)
	}
}

func runUI(ctx context.Context, c *config.Config, provider datasource.Provider) error {
	ds, err := datasource.New(c, provider, nil)
	if err != nil {
		return err
	}
	s, err := stats.LoadStats()
	if err != nil {
		logger.Shared().WithError(err).Warn("stats disabled")
	}

	m := newModel(ctx, c, ds, s)
	if width, height, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		m.width, m.height = width, height
	}
	defer m.cancel()

	tracking.SendMetric("ui.start")
	p := tea.NewProgram(m)
	// Use the full size of the terminal in its "alternate screen buffer"
	p.EnterAltScreen()
	defer p.ExitAltScreen()

	return p.Start()
}
