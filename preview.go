package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/Sreeharips1/portfolio/internal/carousel"
	"github.com/Sreeharips1/portfolio/internal/catalog"
	"github.com/Sreeharips1/portfolio/internal/config"
	"github.com/Sreeharips1/portfolio/internal/content"
	"github.com/Sreeharips1/portfolio/internal/typewriter"
)

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Preview the tagline and certifications in the terminal",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.FromEnv()
		if err != nil {
			return err
		}
		c, err := content.Load()
		if err != nil {
			return err
		}
		cat, err := catalog.Open(c)
		if err != nil {
			return err
		}
		defer cat.Close()

		certs, err := cat.Certifications()
		if err != nil {
			return err
		}
		m, err := newPreviewModel(c.Profile, certs, cfg)
		if err != nil {
			return err
		}
		_, err = tea.NewProgram(m).Run()
		return err
	},
}

func init() {
	rootCmd.AddCommand(previewCmd)
}

var (
	previewAccent = lipgloss.Color("#2563EB")
	previewMuted  = lipgloss.Color("#6B7280")

	previewApp = lipgloss.NewStyle().
			Padding(1, 2)

	previewName = lipgloss.NewStyle().
			Bold(true).
			Foreground(previewAccent)

	previewTagline = lipgloss.NewStyle().
			Italic(true).
			MarginBottom(1)

	previewActive = lipgloss.NewStyle().
			Background(previewAccent).
			Foreground(lipgloss.Color("#FFFFFF")).
			Bold(true)

	previewItem = lipgloss.NewStyle()

	previewDetail = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(previewAccent).
			Padding(0, 1).
			MarginTop(1).
			Width(72)

	previewHelp = lipgloss.NewStyle().
			Foreground(previewMuted).
			MarginTop(1)
)

type previewKeyMap struct {
	Next key.Binding
	Prev key.Binding
	Quit key.Binding
}

var defaultPreviewKeys = previewKeyMap{
	Next: key.NewBinding(
		key.WithKeys("right", "l"),
		key.WithHelp("→/l", "next"),
	),
	Prev: key.NewBinding(
		key.WithKeys("left", "h"),
		key.WithHelp("←/h", "previous"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c", "esc"),
		key.WithHelp("q", "quit"),
	),
}

type typeMsg struct{}

type rotateMsg struct{}

// previewModel drives the same carousel and typewriter the web page uses,
// stepped by tea.Tick instead of their own timers.
type previewModel struct {
	profile    content.Profile
	certs      []content.Certification
	carousel   *carousel.Carousel
	typewriter *typewriter.Typewriter
	interval   time.Duration
	tagline    typewriter.Frame
	keys       previewKeyMap
}

func newPreviewModel(p content.Profile, certs []content.Certification, cfg config.Config) (previewModel, error) {
	car, err := carousel.New(len(certs))
	if err != nil {
		return previewModel{}, err
	}
	tw, err := typewriter.New(p.Tagline, typewriter.Options{
		BaseDelay:   cfg.TypewriterDelay,
		Step:        cfg.TypewriterStep,
		CaretPeriod: cfg.CaretPeriod,
	})
	if err != nil {
		return previewModel{}, err
	}
	return previewModel{
		profile:    p,
		certs:      certs,
		carousel:   car,
		typewriter: tw,
		interval:   cfg.CarouselInterval,
		tagline:    tw.Frame(),
		keys:       defaultPreviewKeys,
	}, nil
}

func (m previewModel) Init() tea.Cmd {
	return tea.Batch(m.typeCmd(), m.rotateCmd())
}

func (m previewModel) typeCmd() tea.Cmd {
	return tea.Tick(m.typewriter.Pending(), func(time.Time) tea.Msg { return typeMsg{} })
}

func (m previewModel) rotateCmd() tea.Cmd {
	return tea.Tick(m.interval, func(time.Time) tea.Msg { return rotateMsg{} })
}

func (m previewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case typeMsg:
		m.tagline = m.typewriter.Step()
		return m, m.typeCmd()
	case rotateMsg:
		m.carousel.Advance()
		return m, m.rotateCmd()
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Next):
			m.carousel.Advance()
		case key.Matches(msg, m.keys.Prev):
			m.carousel.Previous()
		}
	}
	return m, nil
}

func (m previewModel) View() string {
	var b strings.Builder
	b.WriteString(previewName.Render(m.profile.Name))
	b.WriteString("\n")

	caret := " "
	if m.tagline.Caret {
		caret = "|"
	}
	b.WriteString(previewTagline.Render(m.tagline.Text + caret))
	b.WriteString("\n")

	active := m.carousel.Active()
	for i, cert := range m.certs {
		line := fmt.Sprintf(" %d. %s ", i+1, cert.Title)
		if i == active {
			b.WriteString(previewActive.Render(line))
		} else {
			b.WriteString(previewItem.Render(line))
		}
		b.WriteString("\n")
	}

	cert := m.certs[active]
	detail := fmt.Sprintf("%s\n%s · %s\n\n%s\nSkills: %s",
		cert.Title, cert.Issuer, cert.Date, cert.Description, strings.Join(cert.Skills, ", "))
	b.WriteString(previewDetail.Render(detail))
	b.WriteString("\n")

	help := fmt.Sprintf("%s %s  %s %s  %s %s",
		m.keys.Prev.Help().Key, m.keys.Prev.Help().Desc,
		m.keys.Next.Help().Key, m.keys.Next.Help().Desc,
		m.keys.Quit.Help().Key, m.keys.Quit.Help().Desc)
	b.WriteString(previewHelp.Render(help))

	return previewApp.Render(b.String())
}
