package e2e

import (
	"context"
	"image"
	"testing"
	"time"

	"gocv.io/x/gocv"

	"github.com/ayusman/airkeys/internal/app"
	"github.com/ayusman/airkeys/internal/capture"
	"github.com/ayusman/airkeys/internal/detector"
	"github.com/ayusman/airkeys/internal/display"
	"github.com/ayusman/airkeys/internal/keyboard"
	"github.com/ayusman/airkeys/internal/store"
)

const (
	frameW   = 1280
	frameH   = 720
	frameGap = 100 * time.Millisecond
)

// hover is a stretch of frames with the fingertip on one key, or off the
// keyboard when key is empty.
type hover struct {
	key    string
	frames int
}

// run drives the whole frame loop over a hover trace with an in-memory
// journal and returns the app together with the journaled commits.
func run(t *testing.T, cfg app.Config, trace []hover) (*app.App, []store.Commit) {
	t.Helper()

	if cfg.Store == nil {
		st, err := store.New(store.MemoryPath)
		if err != nil {
			t.Fatalf("store.New() error = %v", err)
		}
		t.Cleanup(func() { st.Close() })
		cfg.Store = st
	}

	application, err := app.New(cfg)
	if err != nil {
		t.Fatalf("app.New() error = %v", err)
	}

	geom := application.Renderer().Geometry()
	var script [][]detector.HandLandmarks
	for _, h := range trace {
		var hands []detector.HandLandmarks
		if h.key != "" {
			r, ok := geom.Rect(h.key)
			if !ok {
				t.Fatalf("key %q not in layout", h.key)
			}
			c := image.Pt((r.Min.X+r.Max.X)/2, (r.Min.Y+r.Max.Y)/2)
			hands = []detector.HandLandmarks{
				detector.PointingLandmarks((float64(c.X)+0.5)/frameW, (float64(c.Y)+0.5)/frameH),
			}
		}
		for i := 0; i < h.frames; i++ {
			script = append(script, hands)
		}
	}

	mockDetector := detector.NewMockDetector()
	mockDetector.SetScript(script)
	application.SetDetector(mockDetector)

	frame := gocv.NewMatWithSize(frameH, frameW, gocv.MatTypeCV8UC3)
	t.Cleanup(func() { frame.Close() })
	application.SetCamera(capture.NewMockCamera([]*gocv.Mat{&frame}, true))
	application.SetDisplay(display.NewHeadless(len(script)))

	clock := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	application.SetClock(func() time.Time {
		now := clock
		clock = clock.Add(frameGap)
		return now
	})

	if err := application.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	commits, err := cfg.Store.Commits().ListBySession(application.JournalID())
	if err != nil {
		t.Fatalf("ListBySession() error = %v", err)
	}
	return application, commits
}

func TestE2E_TypeAB(t *testing.T) {
	cfg := app.DefaultConfig()
	cfg.Layout = keyboard.Layout{Rows: [][]string{{"A", "B", keyboard.KeySpace}}}

	// 0.5s on A, 0.1s with no hand, 0.5s on B.
	application, events := run(t, cfg, []hover{
		{"A", 5},
		{"", 1},
		{"B", 5},
	})

	if got := application.Text(); got != "AB" {
		t.Errorf("Text() = %q, want %q", got, "AB")
	}
	if len(events) != 2 {
		t.Fatalf("got %d commits, want 2", len(events))
	}
	if events[0].Key != "A" || events[1].Key != "B" {
		t.Errorf("commit order = %s, %s; want A, B", events[0].Key, events[1].Key)
	}
	if !events[0].CommittedAt.Before(events[1].CommittedAt) {
		t.Error("commits should be in time order")
	}
}

func TestE2E_HelloWorldWithJournal(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping e2e test")
	}

	var trace []hover
	for _, key := range []string{"H", "I", keyboard.KeySpace, "Y", "O", keyboard.KeyEnter, "O", "K"} {
		trace = append(trace, hover{key, 5}, hover{"", 1})
	}

	application, events := run(t, app.DefaultConfig(), trace)

	if got, want := application.Text(), "HI YO\nOK"; got != want {
		t.Errorf("Text() = %q, want %q", got, want)
	}
	if len(events) != 8 {
		t.Errorf("got %d commits, want 8", len(events))
	}

	counts, err := application.Summary()
	if err != nil {
		t.Fatalf("Summary() error = %v", err)
	}
	if len(counts) == 0 || counts[0].Key != "O" || counts[0].Count != 2 {
		t.Errorf("Summary() = %+v, want O first with 2 commits", counts)
	}
}

func TestE2E_ClearWipesText(t *testing.T) {
	application, _ := run(t, app.DefaultConfig(), []hover{
		{"Q", 5}, {"", 1},
		{"W", 5}, {"", 1},
		{keyboard.KeyClear, 5}, {"", 1},
		{"E", 5},
	})

	if got := application.Text(); got != "E" {
		t.Errorf("Text() = %q, want %q", got, "E")
	}
}

func TestE2E_HeldKeyRepeatsAfterCooldown(t *testing.T) {
	// 0.4s to the first commit, then one more every 1.4s: commits at
	// frames 4, 18 and 32 of a 3.5s hold.
	application, events := run(t, app.DefaultConfig(), []hover{
		{"Z", 35},
	})

	if got := application.Text(); got != "ZZZ" {
		t.Errorf("Text() = %q, want %q", got, "ZZZ")
	}
	if len(events) != 3 {
		t.Fatalf("got %d commits, want 3", len(events))
	}
	if gap := events[1].CommittedAt.Sub(events[0].CommittedAt); gap != 1400*time.Millisecond {
		t.Errorf("repeat gap = %v, want 1.4s", gap)
	}
}
