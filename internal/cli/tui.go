package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/gridpress/pkg/errors"
	"github.com/matzehuels/gridpress/pkg/pipeline"
)

var (
	barFullStyle  = lipgloss.NewStyle().Foreground(colorCyan)
	barEmptyStyle = lipgloss.NewStyle().Foreground(colorDim)
	listDimStyle  = lipgloss.NewStyle().Foreground(colorDim)
)

const (
	barWidth   = 40
	recentRows = 8
)

// =============================================================================
// BatchModel - Live batch progress
// =============================================================================

type (
	batchStartMsg struct{ total int }
	fileDoneMsg   struct{ result pipeline.FileResult }
	batchDoneMsg  struct{}
)

// BatchModel is the bubbletea model that tracks a running batch.
type BatchModel struct {
	Total      int
	Done       int
	Failed     int
	Recent     []pipeline.FileResult
	Cancelling bool
	Finished   bool

	cancel context.CancelFunc
	start  time.Time
}

// NewBatchModel creates a model; cancel is called when the user presses ctrl+c.
func NewBatchModel(cancel context.CancelFunc) BatchModel {
	return BatchModel{cancel: cancel, start: time.Now()}
}

func (m BatchModel) Init() tea.Cmd {
	return nil
}

func (m BatchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			if !m.Cancelling && m.cancel != nil {
				m.cancel()
			}
			m.Cancelling = true
		}
	case batchStartMsg:
		m.Total = msg.total
	case fileDoneMsg:
		m.Done++
		if !msg.result.OK() {
			m.Failed++
		}
		m.Recent = append(m.Recent, msg.result)
		if len(m.Recent) > recentRows {
			m.Recent = m.Recent[len(m.Recent)-recentRows:]
		}
	case batchDoneMsg:
		m.Finished = true
		return m, tea.Quit
	}
	return m, nil
}

func (m BatchModel) View() string {
	if m.Finished {
		return ""
	}
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Rendering puzzles"))
	b.WriteString("\n\n")
	b.WriteString(progressBar(m.Done, m.Total, barWidth))
	b.WriteString(" ")
	b.WriteString(StyleNumber.Render(fmt.Sprintf("%d/%d", m.Done, m.Total)))
	if m.Failed > 0 {
		b.WriteString(StyleError.Render(fmt.Sprintf("  %d failed", m.Failed)))
	}
	b.WriteString("\n\n")

	for _, f := range m.Recent {
		if f.OK() {
			b.WriteString(styleIconSuccess.Render(iconSuccess) + " " + f.Name)
		} else {
			b.WriteString(styleIconError.Render(iconError) + " " + f.Name + " " + StyleDim.Render(errors.UserMessage(f.Err)))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.Cancelling {
		b.WriteString(StyleWarning.Render("cancelling..."))
	} else {
		b.WriteString(listDimStyle.Render(fmt.Sprintf("%s elapsed  ctrl+c cancel", time.Since(m.start).Round(time.Second))))
	}
	return b.String()
}

// progressBar renders done/total as a fixed-width bar.
func progressBar(done, total, width int) string {
	filled := 0
	if total > 0 {
		filled = done * width / total
	}
	filled = min(max(filled, 0), width)
	return barFullStyle.Render(strings.Repeat("█", filled)) +
		barEmptyStyle.Render(strings.Repeat("░", width-filled))
}

// batchFunc runs a batch, reporting through the two callbacks.
type batchFunc func(ctx context.Context, onStart func([]string), onFile func(pipeline.FileResult)) (*pipeline.Report, error)

// runBatchTUI drives run while showing a BatchModel on stderr.
func runBatchTUI(ctx context.Context, run batchFunc) (*pipeline.Report, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	p := tea.NewProgram(NewBatchModel(cancel), tea.WithContext(ctx), tea.WithOutput(os.Stderr))

	var (
		report *pipeline.Report
		runErr error
		done   = make(chan struct{})
	)
	go func() {
		defer close(done)
		report, runErr = run(ctx,
			func(names []string) { p.Send(batchStartMsg{total: len(names)}) },
			func(f pipeline.FileResult) { p.Send(fileDoneMsg{result: f}) },
		)
		p.Send(batchDoneMsg{})
	}()

	_, err := p.Run()
	if err != nil {
		cancel()
	}
	<-done
	if runErr == nil && err != nil && ctx.Err() == nil {
		runErr = fmt.Errorf("progress view: %w", err)
	}
	return report, runErr
}
