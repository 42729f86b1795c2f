package play

import (
	"fmt"
	"image/color"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizzy/internal/orchestrator"
	"github.com/abhisek/quizzy/internal/quiz"
	"github.com/abhisek/quizzy/internal/scoring"
	"github.com/abhisek/quizzy/internal/session"
	"github.com/abhisek/quizzy/internal/ui/components"
	"github.com/abhisek/quizzy/internal/ui/theme"
)

var loadingFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

func (s *PlayScreen) View(width, height int) string {
	cw := components.ContentWidth(width)

	var body string
	switch s.orch.Phase() {
	case orchestrator.PhaseLoading:
		body = s.renderLoading()
	case orchestrator.PhasePlaying:
		body = s.renderQuestion(cw)
	case orchestrator.PhaseResults:
		body = s.renderResults(cw, height)
	default:
		body = s.renderForm(cw)
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, body)
}

func (s *PlayScreen) renderForm(cw int) string {
	f := s.form
	var b strings.Builder

	b.WriteString(theme.Title.Width(cw).Render("Create your quiz"))
	b.WriteString("\n\n")

	if msg := s.orch.Err(); msg != "" {
		b.WriteString(theme.ErrorText.Width(cw).Align(lipgloss.Center).Render(msg))
		b.WriteString("\n\n")
	}

	b.WriteString(fieldLabel("Topic", f.focus == fieldTopic))
	b.WriteString("\n")
	b.WriteString(f.topic.View())
	b.WriteString("\n\n")

	b.WriteString(fieldLabel("Difficulty", f.focus == fieldDifficulty))
	b.WriteString("\n")
	var levels []string
	for _, d := range quiz.Difficulties() {
		label := strings.ToUpper(string(d[:1])) + string(d[1:])
		if d == f.difficulty {
			levels = append(levels, theme.Selected.Render("["+label+"]"))
		} else {
			levels = append(levels, theme.Muted.Render(" "+label+" "))
		}
	}
	b.WriteString(strings.Join(levels, "  "))
	b.WriteString(fieldError(f.errs["difficulty"]))
	b.WriteString("\n\n")

	b.WriteString(fieldLabel("Number of questions", f.focus == fieldNumQuestions))
	b.WriteString("\n")
	b.WriteString(theme.Muted.Render("◂ "))
	b.WriteString(theme.Body.Bold(true).Render(fmt.Sprintf("%2d", f.count)))
	b.WriteString(theme.Muted.Render(fmt.Sprintf(" ▸   (%d-%d)", quiz.MinQuestions, quiz.MaxQuestions)))
	b.WriteString(fieldError(f.errs["numQuestions"]))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.PlaceHorizontal(cw-6, lipgloss.Center,
		components.Button("Generate Quiz", f.focus == fieldStart, 22)))

	return components.Card(b.String(), cw)
}

func fieldLabel(label string, focused bool) string {
	if focused {
		return theme.Selected.Render("▸ " + label)
	}
	return theme.Body.Render("  " + label)
}

func fieldError(msg string) string {
	if msg == "" {
		return ""
	}
	return "\n" + lipgloss.NewStyle().Foreground(theme.Error).Render(msg)
}

func (s *PlayScreen) renderLoading() string {
	cfg := s.orch.Config()
	frame := loadingFrames[s.frame%len(loadingFrames)]
	return lipgloss.JoinVertical(lipgloss.Center,
		theme.Selected.Render(frame+" Generating your quiz..."),
		"",
		theme.Muted.Render(fmt.Sprintf("%d %s questions about %s", cfg.NumQuestions, cfg.Difficulty, cfg.Topic)),
	)
}

func (s *PlayScreen) renderQuestion(cw int) string {
	sess := s.sess
	if sess == nil {
		return ""
	}
	q := sess.Current()

	var b strings.Builder

	progress := components.NewProgressBar(
		fmt.Sprintf("Question %d of %d", sess.Index()+1, sess.Total()),
		sess.Progress()/100, true, cw-6)
	b.WriteString(progress.View())
	b.WriteString("\n")
	b.WriteString(theme.Muted.Render(fmt.Sprintf("Score: %d", sess.Score())))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Width(cw - 6).Render(q.Question))
	b.WriteString("\n\n")

	choices := components.ChoiceList{
		Options:   q.Options,
		Selected:  sess.Selected(),
		Correct:   q.CorrectAnswer,
		Submitted: sess.Answered(),
	}
	b.WriteString(choices.View(cw - 6))

	switch sess.Feedback() {
	case session.FeedbackCorrect:
		b.WriteString("\n")
		b.WriteString(components.Badge("Correct!", true))
	case session.FeedbackIncorrect:
		b.WriteString("\n")
		b.WriteString(components.Badge("Incorrect.", false))
		b.WriteString(theme.Muted.Render(" The answer is " + q.CorrectAnswer))
	}

	if sess.HintVisible() && q.Hint != "" {
		b.WriteString("\n\n")
		b.WriteString(theme.Hint.Width(cw - 6).Render("Hint: " + q.Hint))
	} else if !sess.Answered() && q.Hint != "" {
		b.WriteString("\n")
		b.WriteString(theme.Hint.Render("Press H for a hint"))
	}

	return components.Card(b.String(), cw)
}

func (s *PlayScreen) renderResults(cw, height int) string {
	sum := s.summary
	if sum == nil {
		r := s.orch.Result()
		if r == nil {
			return ""
		}
		computed := scoring.Summarize(*r)
		sum = &computed
	}

	var b strings.Builder
	b.WriteString(theme.Title.Width(cw - 6).Render("Quiz complete!"))
	b.WriteString("\n\n")

	score := fmt.Sprintf("You scored %d out of %d (%d%%)", sum.Score, sum.Total, sum.Percentage)
	b.WriteString(lipgloss.NewStyle().Width(cw - 6).Align(lipgloss.Center).Bold(true).
		Foreground(tierColor(sum.Tier)).Render(score))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Width(cw - 6).Align(lipgloss.Center).
		Foreground(theme.Text).Render(sum.Message))
	b.WriteString("\n\n")
	bar := components.NewProgressBar("", float64(sum.Percentage)/100, true, cw-6)
	bar.Fill = tierColor(sum.Tier)
	b.WriteString(bar.View())
	b.WriteString("\n\n")

	// Leave room for the card chrome and the summary lines above.
	maxDetails := max((height-16)/2, 1)
	for i, d := range sum.Details {
		if i == maxDetails {
			b.WriteString(theme.Muted.Render(fmt.Sprintf("… and %d more", len(sum.Details)-i)))
			break
		}
		b.WriteString(renderDetail(i+1, d, cw-6))
		b.WriteString("\n")
	}

	return components.Card(b.String(), cw)
}

func renderDetail(n int, d quiz.ResultDetail, width int) string {
	mark, style := "✓", theme.Correct
	if !d.IsCorrect() {
		mark, style = "✗", theme.Incorrect
	}
	given := "no answer"
	if d.ProvidedAnswer != nil {
		given = *d.ProvidedAnswer
	}

	line := style.Render(mark) + " " + theme.Body.Render(fmt.Sprintf("%d. %s", n, d.Question))
	answer := theme.Muted.Render("   Your answer: " + given)
	if !d.IsCorrect() {
		answer += theme.Muted.Render("  Correct: " + d.CorrectAnswer)
	}
	return lipgloss.NewStyle().Width(width).Render(line + "\n" + answer)
}

func tierColor(t scoring.Tier) color.Color {
	switch t {
	case scoring.Tier4:
		return theme.Highlight
	case scoring.Tier3:
		return theme.Success
	case scoring.Tier2:
		return theme.Secondary
	default:
		return theme.Accent
	}
}
