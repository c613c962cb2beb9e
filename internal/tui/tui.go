// Package tui implements the interactive terminal practice loop.
package tui

import (
	"fmt"
	rand "math/rand/v2"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/lox/keepormull/internal/game"
	"github.com/lox/keepormull/internal/statistics"
	"github.com/lox/keepormull/internal/store"
)

// state tracks where the practice loop is within one hand.
type state int

const (
	stateDeciding  state = iota // hand shown, waiting for keep or mull
	stateBottoming              // keep chosen, selecting cards to bottom
	stateReason                 // verdict chosen, optional reason entry
	stateDone                   // hand finished, waiting for next game
)

// Model is the Bubble Tea model for a practice session against one deck.
type Model struct {
	logger *log.Logger
	store  store.Store
	deck   store.Deck
	rng    *rand.Rand
	clock  quartz.Clock
	onPlay bool

	sim  *game.Simulator
	hand *game.Hand

	state          state
	pendingVerdict statistics.Verdict
	lastBottomed   []string

	// Bottoming selection
	cursor   int
	selected map[int]bool

	reasonInput textinput.Model

	statusMsg   string
	errMsg      string
	gamesPlayed int
	quitting    bool
	width       int
}

// NewModel creates a practice model over the given deck. A nil rng uses the
// global random source; a nil clock uses real time.
func NewModel(logger *log.Logger, st store.Store, deck store.Deck, rng *rand.Rand, clock quartz.Clock) *Model {
	if clock == nil {
		clock = quartz.NewReal()
	}

	ti := textinput.New()
	ti.Placeholder = "why? (optional, enter to skip)"
	ti.CharLimit = 200
	ti.Width = 60
	ti.Prompt = "> "

	m := &Model{
		logger:      logger.WithPrefix("tui"),
		store:       st,
		deck:        deck,
		rng:         rng,
		clock:       clock,
		onPlay:      true,
		reasonInput: ti,
	}
	m.newGame()
	return m
}

// newGame builds a fresh shuffled simulator and draws the opening hand.
func (m *Model) newGame() {
	cards := make([]game.Card, len(m.deck.MainDeck))
	for i, name := range m.deck.MainDeck {
		cards[i] = game.NewCard(name)
	}
	d := game.NewDeck(cards, m.rng)
	d.Shuffle()
	m.sim = game.NewSimulator(d, m.onPlay)
	m.hand = m.sim.StartGame()
	m.state = stateDeciding
	m.lastBottomed = nil
	m.errMsg = ""
	m.statusMsg = ""
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			m.quitting = true
			return m, tea.Quit
		}

		switch m.state {
		case stateDeciding:
			return m.updateDeciding(msg)
		case stateBottoming:
			return m.updateBottoming(msg)
		case stateReason:
			return m.updateReason(msg)
		case stateDone:
			return m.updateDone(msg)
		}
	}
	return m, nil
}

func (m *Model) updateDeciding(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "esc":
		m.quitting = true
		return m, tea.Quit
	case "k":
		if m.sim.MulliganCount() == 0 {
			// Nothing to bottom at 7; the keep applies immediately.
			hand, err := m.sim.Keep(nil)
			if err != nil {
				m.errMsg = err.Error()
				return m, nil
			}
			m.hand = hand
			return m.toReason(statistics.VerdictKeep)
		}
		m.state = stateBottoming
		m.cursor = 0
		m.selected = make(map[int]bool)
		m.errMsg = ""
	case "m":
		return m.toReason(statistics.VerdictMull)
	}
	return m, nil
}

func (m *Model) updateBottoming(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	need := m.sim.MulliganCount()
	switch msg.String() {
	case "esc":
		m.state = stateDeciding
		m.errMsg = ""
	case "left", "h":
		if m.cursor > 0 {
			m.cursor--
		}
	case "right", "l":
		if m.cursor < m.hand.Size()-1 {
			m.cursor++
		}
	case " ":
		m.selected[m.cursor] = !m.selected[m.cursor]
		m.errMsg = ""
	case "enter":
		var bottom []game.Card
		var names []string
		for i, c := range m.hand.Cards() {
			if m.selected[i] {
				bottom = append(bottom, c)
				names = append(names, c.Name)
			}
		}
		if len(bottom) != need {
			m.errMsg = fmt.Sprintf("select exactly %d card(s) to bottom, have %d", need, len(bottom))
			return m, nil
		}
		hand, err := m.sim.Keep(bottom)
		if err != nil {
			m.errMsg = err.Error()
			return m, nil
		}
		m.hand = hand
		m.lastBottomed = names
		return m.toReason(statistics.VerdictKeep)
	}
	return m, nil
}

func (m *Model) toReason(verdict statistics.Verdict) (tea.Model, tea.Cmd) {
	m.pendingVerdict = verdict
	m.state = stateReason
	m.errMsg = ""
	m.reasonInput.SetValue("")
	m.reasonInput.Focus()
	return m, textinput.Blink
}

func (m *Model) updateReason(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "enter" {
		reason := strings.TrimSpace(m.reasonInput.Value())
		m.reasonInput.Blur()
		if err := m.recordDecision(reason); err != nil {
			m.errMsg = "failed to record decision: " + err.Error()
		}

		if m.pendingVerdict == statistics.VerdictMull {
			hand, err := m.sim.Mulligan()
			if err != nil {
				m.errMsg = err.Error()
				return m, nil
			}
			m.hand = hand
			m.state = stateDeciding
			return m, nil
		}

		m.gamesPlayed++
		m.state = stateDone
		return m, nil
	}

	var cmd tea.Cmd
	m.reasonInput, cmd = m.reasonInput.Update(msg)
	return m, cmd
}

func (m *Model) updateDone(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "n", "enter":
		m.newGame()
	case "q", "esc":
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

// recordDecision persists the verdict for the hand currently shown and
// refreshes the status line with its running keep rate.
func (m *Model) recordDecision(reason string) error {
	display := make([]string, 0, m.hand.Size())
	for _, c := range m.hand.Cards() {
		display = append(display, c.Name)
	}
	decision := statistics.Decision{
		HandSignature: m.hand.Signature(),
		HandDisplay:   display,
		MulliganCount: m.sim.MulliganCount(),
		Verdict:       m.pendingVerdict,
		LandsInHand:   m.hand.CountLands(),
		OnPlay:        m.onPlay,
		Timestamp:     m.clock.Now(),
		DeckID:        m.deck.ID,
		Reason:        reason,
	}
	if m.pendingVerdict == statistics.VerdictKeep && decision.MulliganCount > 0 {
		decision.CardsBottomed = m.lastBottomed
	}
	if err := m.store.SaveDecision(decision); err != nil {
		return err
	}
	m.logger.Debug("Decision recorded", "decision", m.pendingVerdict,
		"depth", decision.MulliganCount)

	if records, err := m.store.AllDecisions(); err == nil {
		if stats, ok := statistics.HandStatistics(records, decision.HandSignature); ok {
			m.statusMsg = fmt.Sprintf("you keep this hand %.0f%% of the time (%d seen)",
				stats.KeepPercentage, stats.TotalDecisions())
		}
	}
	return nil
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(TitleStyle.Render(fmt.Sprintf("keep or mull? %s", m.deck.Name)))
	b.WriteString("\n\n")
	b.WriteString(fmt.Sprintf("mulligans: %d   deck: %d cards   games: %d\n\n",
		m.sim.MulliganCount(), m.sim.Deck().Size(), m.gamesPlayed))
	b.WriteString(m.renderHand())
	b.WriteString("\n")

	switch m.state {
	case stateDeciding:
		b.WriteString(HelpStyle.Render("[k] keep  [m] mulligan  [q] quit"))
	case stateBottoming:
		need := m.sim.MulliganCount()
		b.WriteString(fmt.Sprintf("select %d card(s) to put on the bottom\n", need))
		b.WriteString(HelpStyle.Render("[←/→] move  [space] toggle  [enter] confirm  [esc] back"))
	case stateReason:
		b.WriteString(m.reasonInput.View())
		b.WriteString("\n")
		b.WriteString(HelpStyle.Render("[enter] record decision"))
	case stateDone:
		b.WriteString(StatusStyle.Render(fmt.Sprintf("kept %d cards", m.hand.Size())))
		b.WriteString("\n")
		b.WriteString(HelpStyle.Render("[n] next hand  [q] quit"))
	}

	if m.statusMsg != "" {
		b.WriteString("\n" + StatusStyle.Render(m.statusMsg))
	}
	if m.errMsg != "" {
		b.WriteString("\n" + ErrorStyle.Render(m.errMsg))
	}
	b.WriteString("\n")
	return b.String()
}

func (m *Model) renderHand() string {
	cards := m.hand.Cards()
	rendered := make([]string, len(cards))
	for i, c := range cards {
		style := CardStyle
		if m.state == stateBottoming {
			if m.selected[i] {
				style = SelectedCardStyle
			}
			if i == m.cursor {
				style = CursorCardStyle
			}
		}
		rendered[i] = style.Render(c.Name)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...) + "\n"
}

// Run drives a practice session until the user quits.
func Run(logger *log.Logger, st store.Store, deck store.Deck, rng *rand.Rand) error {
	model := NewModel(logger, st, deck, rng, nil)
	p := tea.NewProgram(model)
	_, err := p.Run()
	return err
}
