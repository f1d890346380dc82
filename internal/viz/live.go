package viz

import (
	"fmt"
	"math"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/solosc/internal/config"
	"github.com/san-kum/solosc/internal/oscil"
)

const (
	historyCapacity = 600
	samplesPerTick  = 4
)

type TickMsg time.Time

// Model streams samples from the simulator and renders a rolling plot.
type Model struct {
	cfg    *config.Config
	stream *oscil.Stream
	sim    *oscil.Simulator

	t       float64
	dt      float64
	end     float64
	history []float64
	last    float64
	sumSq   float64
	n       int
	running bool
	done    bool
	err     error
}

// NewModel prepares a live view over the config's time grid, streamed at the
// grid's sampling interval.
func NewModel(cfg *config.Config) (Model, error) {
	sim, err := oscil.New(cfg.ModeSet(), cfg.SimConfig())
	if err != nil {
		return Model{}, err
	}

	dt := 0.1
	if cfg.Time.Samples > 1 {
		dt = (cfg.Time.End - cfg.Time.Start) / float64(cfg.Time.Samples-1)
	}

	return Model{
		cfg:     cfg,
		sim:     sim,
		stream:  sim.Stream(),
		t:       cfg.Time.Start,
		dt:      dt,
		end:     cfg.Time.End,
		history: make([]float64, 0, historyCapacity),
		running: true,
	}, nil
}

func (m Model) Init() tea.Cmd {
	return tea.Tick(time.Second/30, func(t time.Time) tea.Msg { return TickMsg(t) })
}

// Update handles input events and advances the stream.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "r":
			m.restart()
		}
	case TickMsg:
		if m.running && !m.done {
			m.step()
		}
		return m, tea.Tick(time.Second/30, func(t time.Time) tea.Msg { return TickMsg(t) })
	}
	return m, nil
}

func (m *Model) restart() {
	cfg := m.cfg.SimConfig()
	cfg.Seed++
	m.cfg.Seed = cfg.Seed

	sim, err := oscil.New(m.cfg.ModeSet(), cfg)
	if err != nil {
		m.err = err
		return
	}
	m.sim = sim
	m.stream = sim.Stream()
	m.t = m.cfg.Time.Start
	m.history = m.history[:0]
	m.sumSq = 0
	m.n = 0
	m.done = false
	m.err = nil
	m.running = true
}

func (m *Model) step() {
	for i := 0; i < samplesPerTick && !m.done; i++ {
		v, err := m.stream.Next(m.t)
		if err != nil {
			m.err = err
			m.done = true
			return
		}

		m.last = v
		m.sumSq += v * v
		m.n++
		m.history = append(m.history, v)
		if len(m.history) > historyCapacity {
			m.history = m.history[1:]
		}

		m.t += m.dt
		if m.t > m.end {
			m.done = true
		}
	}
}

func (m Model) View() string {
	header := Header(fmt.Sprintf("solosc live: %d modes, seed %d", len(m.cfg.Modes), m.cfg.Seed))

	status := statusRunning.Render("running")
	if m.done {
		status = statusPaused.Render("finished")
	} else if !m.running {
		status = statusPaused.Render("paused")
	}

	rms := 0.0
	if m.n > 0 {
		rms = math.Sqrt(m.sumSq / float64(m.n))
	}

	stats := RenderStats([][2]string{
		{"status", status},
		{"t", FormatValue(m.t)},
		{"signal", FormatValue(m.last)},
		{"rms", FormatValue(rms)},
		{"kick step", FormatValue(m.sim.KickTimestep())},
		{"samples", fmt.Sprintf("%d", m.n)},
	})

	body := "waiting for samples..."
	if len(m.history) >= 2 {
		body = RenderSeries(m.history, "signal")
	}
	if m.err != nil {
		body = fmt.Sprintf("error: %v", m.err)
	}

	help := helpStyle.Render("space pause · r new realization · q quit")

	return lipgloss.JoinVertical(lipgloss.Left, header, body, stats, help)
}
