package telegram

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"snap-solver/api/internal/camera"
	"snap-solver/api/internal/scan"
	"snap-solver/api/internal/solver"
	"snap-solver/api/internal/view"
)

type Engines struct {
	Gemini solver.Engine
	OpenAI solver.Engine
}

type Router struct {
	Bot        *tgbotapi.BotAPI
	Orch       *scan.Orchestrator
	History    *scan.Store
	EngManager *solver.Manager
	Engines    Engines
}

func (r *Router) HandleUpdate(upd tgbotapi.Update) {
	if upd.CallbackQuery != nil {
		r.handleCallback(*upd.CallbackQuery)
		return
	}
	if upd.Message == nil {
		return
	}
	cid := upd.Message.Chat.ID

	if upd.Message.IsCommand() {
		r.handleCommand(upd)
		return
	}
	if len(upd.Message.Photo) > 0 {
		r.acceptPhoto(*upd.Message)
		return
	}

	sess := sessionFor(cid)
	sess.mu.Lock()
	screen := sess.router.Screen()
	sess.mu.Unlock()
	if screen == view.ScreenCapture {
		r.send(cid, "I need a photo here. Send one, or /cancel to go back.")
		return
	}
	r.send(cid, "Send /scan to photograph a problem or /history to browse past scans.")
}

func (r *Router) handleCommand(upd tgbotapi.Update) {
	cid := upd.Message.Chat.ID
	switch upd.Message.Command() {
	case "start":
		r.send(cid, "Photograph a math or science problem and I will solve it step by step.\n"+
			"Commands: /scan, /history, /cancel, /engine, /health")
	case "health":
		r.send(cid, "✅ OK")
	case "scan":
		r.beginCapture(cid)
	case "history", "list":
		sess := sessionFor(cid)
		sess.mu.Lock()
		sess.router.ShowList()
		sess.mu.Unlock()
		r.showList(cid)
	case "cancel":
		r.cancelCapture(cid)
	case "engine":
		r.handleEngineCommand(cid, upd.Message.Text)
	default:
		r.send(cid, "Unknown command")
	}
}

// beginCapture opens the capture screen and waits for a photo in the
// background. The wait owns the device: it closes it on every exit path.
func (r *Router) beginCapture(cid int64) {
	sess := sessionFor(cid)
	dev := newPhotoDevice(cid)
	if err := dev.Open(context.Background()); err != nil {
		r.send(cid, "A capture is already in progress. Send the photo, or /cancel first.")
		return
	}

	sess.mu.Lock()
	sess.router.BeginCapture()
	sess.device = dev
	sess.mu.Unlock()

	r.send(cid, "Camera ready. Send a photo of the problem, or /cancel to go back.")
	go r.waitForShot(cid, sess, dev)
}

func (r *Router) waitForShot(cid int64, sess *session, dev *photoDevice) {
	ctx, cancel := context.WithTimeout(context.Background(), captureWindow)
	defer cancel()

	frame, err := dev.Shoot(ctx)
	_ = dev.Close()

	sess.mu.Lock()
	if sess.device == dev {
		sess.device = nil
	}
	if err != nil {
		sess.router.CancelCapture()
		sess.mu.Unlock()
		if errors.Is(err, camera.ErrClosed) {
			r.send(cid, "Capture cancelled.")
		} else {
			r.send(cid, "No photo received, back to your history. /scan to try again.")
		}
		return
	}
	sess.mu.Unlock()

	r.startScan(cid, sess, frame)
}

func (r *Router) cancelCapture(cid int64) {
	sess := sessionFor(cid)
	sess.mu.Lock()
	dev := sess.device
	sess.mu.Unlock()
	if dev == nil {
		r.send(cid, "Nothing to cancel.")
		return
	}
	_ = dev.Close() // waitForShot observes ErrClosed and resets the screen
}

// startScan hands the frame to the orchestrator. The pending record is
// shown immediately; the solve finishes in the background.
func (r *Router) startScan(cid int64, sess *session, frame []byte) {
	eng := r.EngManager.Get(cid)
	rec, err := r.Orch.Capture(context.Background(), eng, frame)
	if err != nil {
		sess.mu.Lock()
		sess.router.CancelCapture()
		sess.mu.Unlock()
		r.send(cid, "Could not save the scan: "+err.Error())
		return
	}
	scanChats.Store(rec.ID, cid)

	sess.mu.Lock()
	sess.router.CaptureSucceeded(rec.ID)
	sess.mu.Unlock()
	r.showDetail(cid, sess, rec.ID)
}

// handleEngineCommand switches the chat's solve engine:
//
//	/engine gemini [model]
//	/engine gpt [model]
func (r *Router) handleEngineCommand(cid int64, cmd string) {
	args := strings.Fields(strings.TrimSpace(strings.TrimPrefix(cmd, "/engine")))
	if len(args) == 0 {
		cur := r.EngManager.Get(cid)
		r.send(cid, fmt.Sprintf("Current engine: %s (%s)\nUsage:\n/engine gemini [model]\n/engine gpt [model]", cur.Name(), cur.GetModel()))
		return
	}

	type modelSetter interface{ SetModel(string) }
	name := strings.ToLower(args[0])
	var mdl string
	if len(args) > 1 {
		mdl = strings.TrimSpace(args[1])
	}

	var eng solver.Engine
	switch name {
	case "gemini":
		eng = r.Engines.Gemini
	case "gpt", "openai":
		eng = r.Engines.OpenAI
	default:
		r.send(cid, "Unknown engine. Available: gemini | gpt")
		return
	}
	if eng == nil {
		r.send(cid, "❌ That engine is not configured.")
		return
	}
	if mdl != "" {
		if ms, ok := any(eng).(modelSetter); ok {
			ms.SetModel(mdl)
		}
	}
	r.EngManager.Set(cid, eng)
	r.send(cid, fmt.Sprintf("✅ Engine: %s (%s)", eng.Name(), eng.GetModel()))
}

func (r *Router) send(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	_, _ = r.Bot.Send(msg)
}
