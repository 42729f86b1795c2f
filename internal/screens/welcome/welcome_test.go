package welcome

import (
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/quizzy/internal/router"
	"github.com/abhisek/quizzy/internal/screen"
)

// stubScreen is a minimal screen implementation for testing.
type stubScreen struct{}

func (s *stubScreen) Init() tea.Cmd                          { return nil }
func (s *stubScreen) Update(tea.Msg) (screen.Screen, tea.Cmd) { return s, nil }
func (s *stubScreen) View(int, int) string                   { return "home" }
func (s *stubScreen) Title() string                          { return "Home" }

func newTestWelcome() (*WelcomeScreen, *int) {
	calls := 0
	return New(func() screen.Screen {
		calls++
		return &stubScreen{}
	}), &calls
}

func sendTicks(w *WelcomeScreen, n int) tea.Cmd {
	var cmd tea.Cmd
	for i := 0; i < n; i++ {
		_, cmd = w.Update(tickMsg(time.Now()))
	}
	return cmd
}

func TestBannerAppearsAfterDelay(t *testing.T) {
	w, _ := newTestWelcome()
	if strings.Contains(w.View(80, 24), Tagline) {
		t.Error("tagline should not be visible at start")
	}

	sendTicks(w, int(bannerAt/tickInterval))
	if !strings.Contains(w.View(80, 24), Tagline) {
		t.Error("tagline should be visible once the banner is shown")
	}
}

func TestKeypressSkipsAnimation(t *testing.T) {
	w, calls := newTestWelcome()
	sendTicks(w, 2)

	_, cmd := w.Update(tea.KeyPressMsg{Code: ' '})
	if cmd == nil {
		t.Fatal("keypress should trigger transition")
	}
	msg, ok := cmd().(router.ReplaceScreenMsg)
	if !ok || msg.Screen == nil {
		t.Fatalf("expected ReplaceScreenMsg with a screen, got %#v", msg)
	}
	if *calls != 1 {
		t.Errorf("factory should be called once, got %d", *calls)
	}
}

func TestAutoTransitionAfterAnimation(t *testing.T) {
	w, calls := newTestWelcome()

	cmd := sendTicks(w, int(totalDur/tickInterval))
	if cmd == nil {
		t.Fatal("expected transition command when the animation ends")
	}
	if _, ok := cmd().(router.ReplaceScreenMsg); !ok {
		t.Fatal("expected ReplaceScreenMsg")
	}
	if w.elapsed != totalDur {
		t.Errorf("elapsed = %v, want %v", w.elapsed, totalDur)
	}

	// Later keys and ticks do nothing.
	if _, cmd := w.Update(tea.KeyPressMsg{Code: 'a'}); cmd != nil {
		t.Error("second transition should not happen")
	}
	if *calls != 1 {
		t.Errorf("factory should be called exactly once, got %d", *calls)
	}
}

func TestRenderBannerCompact(t *testing.T) {
	if !strings.Contains(RenderBanner(30), "Q · U · I · Z · Z · Y") {
		t.Error("expected compact banner for narrow widths")
	}
	if strings.Contains(RenderBanner(100), "Q · U") {
		t.Error("expected block banner for wide terminals")
	}
}
