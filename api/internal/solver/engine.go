// Package solver defines the multimodal inference boundary: one async
// call that turns a photographed problem into solution text.
package solver

import (
	"context"
	"errors"
	"sync"
)

// ErrNoAPIKey marks a solve attempted without a configured credential.
// Engines return it before any network I/O happens.
var ErrNoAPIKey = errors.New("API key is not configured")

// Engine solves a photographed problem. Solve is a single
// request/response: no streaming, no partial results, no retries —
// retrying means the user takes a new photo, which makes a new record.
type Engine interface {
	Name() string
	GetModel() string
	Solve(ctx context.Context, image []byte) (string, error)
}

// Prompt is the fixed instruction sent with every image.
const Prompt = `Act as a brilliant mathematics professor and physics expert.
Analyze this image.
1. Identify the math or science problem in the picture. If there is handwriting, read it carefully.
2. If the problem is multiple choice (ABCD), decide which option is correct.
3. Give a complete, clear, easy-to-follow step-by-step solution.
4. Use Markdown for mathematical notation (LaTeX for formulas where needed).

Answer structure:
**Detected Problem:**
[restate the problem here]

**Final Answer:**
[short answer / chosen option]

**Solution Steps:**
[detailed step-by-step explanation]`

// Manager tracks the engine selected per chat.
type Manager struct {
	def Engine
	m   sync.Map // chatID -> Engine
}

func NewManager(defaultEngine Engine) *Manager {
	return &Manager{def: defaultEngine}
}

func (m *Manager) Get(chatID int64) Engine {
	if v, ok := m.m.Load(chatID); ok {
		return v.(Engine)
	}
	return m.def
}

func (m *Manager) Set(chatID int64, e Engine) {
	m.m.Store(chatID, e)
}
