package app

import (
	"context"
	"image"
	"log"

	"gocv.io/x/gocv"

	"github.com/ayusman/airkeys/internal/capture"
	"github.com/ayusman/airkeys/internal/detector"
	"github.com/ayusman/airkeys/internal/display"
	"github.com/ayusman/airkeys/internal/render"
	"github.com/ayusman/airkeys/internal/selection"
)

// FrameResult describes what happened in one frame.
type FrameResult struct {
	Hand      bool        // A hand passed the confidence gate
	Tip       image.Point // Index fingertip in pixels, valid when Hand is set
	Hover     string      // Key under the fingertip, empty if none
	Committed bool
	Event     selection.Event // Valid when Committed is set
}

// runLoop is the main frame loop.
//
// Each iteration:
// 1. Read a frame; a read failure ends the loop
// 2. Mirror, detect, hit-test and advance the selection (Step)
// 3. Show the frame and poll for Escape
func (a *App) runLoop(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			log.Println("Context canceled, stopping")
			return
		default:
		}

		frame, err := a.camera.ReadFrame()
		if err != nil {
			log.Printf("Camera stopped delivering frames: %v", err)
			return
		}

		a.Step(frame)
		a.display.Show(frame)
		frame.Close()

		if a.display.WaitKey(WaitKeyDelay)&0xFF == display.KeyEsc {
			log.Println("Escape pressed, stopping")
			return
		}
	}
}

// Step processes one camera frame in place: it mirrors the frame, tracks the
// fingertip, advances the selection session and draws the keyboard,
// skeleton, fingertip marker and typed text banner.
func (a *App) Step(frame *gocv.Mat) FrameResult {
	capture.Mirror(frame)
	now := a.now()

	var res FrameResult
	var hand *detector.HandLandmarks

	hands, err := a.detector.Detect(frame)
	if err != nil {
		// A failed detection counts as no hand for this frame.
		log.Printf("Error detecting hands: %v", err)
		hands = nil
	}

	if h, ok := a.config.Detector.Primary(hands); ok {
		hand = h
		res.Hand = true
		res.Tip = hand.Fingertip(frame.Cols(), frame.Rows())
		res.Hover, _ = a.renderer.Geometry().HitTest(res.Tip)
	}

	res.Event, res.Committed = a.session.Update(res.Hover, now)

	a.renderer.DrawKeyboard(frame, res.Hover)
	if hand != nil {
		render.DrawHand(frame, hand)
		render.DrawFingertip(frame, res.Tip)
	}
	render.DrawBanner(frame, a.session.Tail(render.BannerChars))

	return res
}
