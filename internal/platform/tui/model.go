package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/jumping-task/internal/core"
	"github.com/vovakirdan/jumping-task/internal/env"
	"github.com/vovakirdan/jumping-task/internal/storage"
)

// Playable is the slice of the environment the interactive demo needs:
// the facade operations plus a rendering snapshot.
type Playable interface {
	ID() string
	Title() string
	State() env.State
	Reset() (core.Observation, error)
	Step(action core.Action) (core.Observation, float64, bool, core.Info, error)
	LegalActions() []core.Action
}

// Model is the Bubble Tea model for playing the jumping task
// interactively. The simulation itself stays untimed; real-time pacing
// lives entirely in this driver, which polls Step on key presses and
// ticks.
type Model struct {
	env    Playable
	store  *storage.Store
	keys   *KeyMapper
	screen *core.Screen

	tickRate int
	pending  *core.Action

	totalReward float64
	lastReward  float64
	scoreSaved  bool
	quitting    bool
	err         error
}

// NewModel creates a demo model for the given environment.
func NewModel(e Playable, store *storage.Store, keys *KeyMapper, tickRate int) Model {
	s := e.State()
	rows := displayRows(s.ScreenH) + 3 // world plus HUD lines
	return Model{
		env:      e,
		store:    store,
		keys:     keys,
		screen:   core.NewScreen(s.ScreenW, rows),
		tickRate: tickRate,
	}
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.tickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case TickMsg:
		return m.handleTick()
	}
	return m, nil
}

// handleKey processes keyboard input. Actions are buffered and consumed
// by the next tick so that holding a key does not outrun the simulation.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.keys.IsQuit(msg) {
		m.quitting = true
		return m, tea.Quit
	}

	if m.keys.IsRestart(msg) && m.env.State().Done {
		if _, err := m.env.Reset(); err != nil {
			m.err = err
			return m, tea.Quit
		}
		m.totalReward = 0
		m.lastReward = 0
		m.scoreSaved = false
		m.pending = nil
		return m, nil
	}

	if action, ok := m.keys.MapKey(msg); ok {
		m.pending = &action
	}
	return m, nil
}

// handleTick advances the simulation. An airborne agent keeps moving on
// every tick regardless of input; a grounded one waits for the buffered
// action.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	s := m.env.State()

	switch {
	case s.Done:
		m.saveScore()
	case s.Phase.Airborne():
		m.step(core.ActionRight)
	case m.pending != nil:
		action := *m.pending
		m.pending = nil
		m.step(action)
	}

	if m.err != nil {
		return m, tea.Quit
	}
	return m, tickCmd(m.tickRate)
}

func (m *Model) step(action core.Action) {
	_, reward, done, _, err := m.env.Step(action)
	if err != nil {
		m.err = err
		return
	}
	m.lastReward = reward
	m.totalReward += reward
	if done {
		m.saveScore()
	}
}

// saveScore persists the episode return once per finished episode.
func (m *Model) saveScore() {
	if m.scoreSaved || m.store == nil || !m.env.State().Done {
		return
	}
	//nolint:errcheck // Best-effort save, the demo continues regardless
	m.store.SaveScore(m.env.ID(), m.totalReward)
	m.scoreSaved = true
}

// View renders the world and the HUD.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.err != nil {
		return fmt.Sprintf("error: %v\n", m.err)
	}

	s := m.env.State()
	m.screen.Clear()
	DrawWorld(s, m.screen)

	hudTop := displayRows(s.ScreenH)
	if s.Done {
		m.drawBanner(s, hudTop)
	}
	m.screen.DrawText(0, hudTop, m.hudStatus(s))
	m.screen.DrawText(0, hudTop+1, fmt.Sprintf("reward %+.0f  total %+.0f  step %d",
		m.lastReward, m.totalReward, s.StepCount))
	m.screen.DrawText(0, hudTop+2, m.hudHelp(s))

	return RenderScreen(m.screen)
}

// drawBanner overlays the episode outcome on the world.
func (m Model) drawBanner(s env.State, worldRows int) {
	msg := fmt.Sprintf(" %s - press r ", s.Reason)
	boxW := core.MinI(len(msg)+2, s.ScreenW)
	boxX := (s.ScreenW - boxW) / 2
	boxY := worldRows/2 - 1

	m.screen.FillRect(boxX, boxY, boxW, 3, ' ', core.ColorDefault)
	m.screen.DrawBox(boxX, boxY, boxW, 3)
	m.screen.DrawTextCentered(boxY+1, msg)
}

func (m Model) hudStatus(s env.State) string {
	status := fmt.Sprintf("%s  x=%.0f y=%.0f", m.env.Title(), s.AgentX, s.AgentY)
	if s.Done {
		status += fmt.Sprintf("  [%s]", s.Reason)
	}
	return status
}

func (m Model) hudHelp(s env.State) string {
	if s.Done {
		return "r: new episode  q: quit"
	}
	if m.keys.withLeft {
		return "←/→: move  ↑/space: jump  q: quit"
	}
	return "→: move  ↑/space: jump  q: quit"
}

// Run starts the Bubble Tea program for the given environment.
func Run(e Playable, store *storage.Store, keys *KeyMapper, tickRate int) error {
	p := tea.NewProgram(
		NewModel(e, store, keys, tickRate),
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}
