// Package editstate implements the edit lifecycle of the canonical resume
// record: a small state machine holding the committed record, the draft
// being edited, and the current mode. Transitions are pure state changes;
// the only remote interaction is Persist, which is gated on the session.
package editstate

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/jonathan/cvfiller/internal/resume"
	"github.com/jonathan/cvfiller/internal/types"
)

// Mode is the edit mode of the controller.
type Mode int

const (
	// Viewing displays the committed record; the draft is dormant.
	Viewing Mode = iota
	// Editing displays and mutates the draft.
	Editing
)

func (m Mode) String() string {
	if m == Editing {
		return "editing"
	}
	return "viewing"
}

// ErrNotAuthorized is returned when a gated action is attempted while
// logged out. The action is refused locally; no remote call is made.
var ErrNotAuthorized = errors.New("login required")

// Gate is the slice of the session manager the controller needs to gate
// remote persistence.
type Gate interface {
	Authorized() bool
	Token() string
}

// RecordStore is the remote persistence surface. *apiclient.Client
// satisfies it.
type RecordStore interface {
	CreateResume(ctx context.Context, token string, rec resume.Record, sourceFilename string) (uuid.UUID, error)
	UpdateResume(ctx context.Context, token string, id uuid.UUID, rec resume.Record) error
}

// Controller holds the committed and draft records and drives the
// Viewing/Editing transitions. It is driven serially by user input; the
// mutex is re-entrancy hygiene, not a concurrency feature.
type Controller struct {
	gate  Gate
	store RecordStore

	mu             sync.Mutex
	committed      resume.Record
	draft          resume.Record
	mode           Mode
	recordID       uuid.UUID
	sourceFilename string
	advice         *types.Advice
}

// NewController creates a controller with an empty record in Viewing mode.
func NewController(gate Gate, store RecordStore) *Controller {
	return &Controller{gate: gate, store: store}
}

// Load installs a freshly reconciled record as the committed value,
// discarding whatever was loaded before: the previous record identity,
// any cached advice and any in-progress draft.
func (c *Controller) Load(rec resume.Record, sourceFilename string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.committed = rec
	c.draft = rec
	c.mode = Viewing
	c.recordID = uuid.Nil
	c.sourceFilename = sourceFilename
	c.advice = nil
}

// StartEditing enters Editing and re-seeds the draft from the committed
// record, so a stale draft from an earlier cancelled edit never leaks in.
func (c *Controller) StartEditing() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.draft = c.committed
	c.mode = Editing
}

// CancelEditing discards the draft and returns to Viewing. The cancelled
// edit is not recoverable.
func (c *Controller) CancelEditing() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.draft = c.committed
	c.mode = Viewing
}

// Commit copies the draft over the committed record and returns to
// Viewing. Outside Editing it is a no-op.
func (c *Controller) Commit() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.mode != Editing {
		return
	}
	c.committed = c.draft
	c.mode = Viewing
}

// MutateDraft replaces one canonical field of the draft. Outside Editing
// it is a no-op, as is an unknown field name.
func (c *Controller) MutateDraft(field, value string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.mode != Editing {
		return
	}
	c.draft.Set(field, value)
}

// ResetAll discards the current resume entirely: both records become the
// empty record, the mode returns to Viewing, and the record identity and
// cached advice are cleared.
func (c *Controller) ResetAll() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.committed = resume.Record{}
	c.draft = resume.Record{}
	c.mode = Viewing
	c.recordID = uuid.Nil
	c.sourceFilename = ""
	c.advice = nil
}

// Mode returns the current edit mode.
func (c *Controller) Mode() Mode {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.mode
}

// Committed returns the committed record.
func (c *Controller) Committed() resume.Record {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.committed
}

// Draft returns the draft record.
func (c *Controller) Draft() resume.Record {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.draft
}

// Visible returns the record the UI should display: the draft while
// editing, the committed record otherwise.
func (c *Controller) Visible() resume.Record {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.mode == Editing {
		return c.draft
	}
	return c.committed
}

// SetAdvice caches the advisory analysis for the current upload.
func (c *Controller) SetAdvice(advice *types.Advice) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.advice = advice
}

// Advice returns the cached advisory analysis, or nil when none is
// cached. The cache survives until the resume is discarded.
func (c *Controller) Advice() *types.Advice {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.advice
}

// RecordID returns the durable identifier assigned by the first
// successful Persist, or uuid.Nil before that.
func (c *Controller) RecordID() uuid.UUID {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.recordID
}

// Persist saves the committed record remotely. It is gated on the
// session and idempotent per logical record: the first success assigns a
// durable identifier, later calls update that identifier in place. A
// failed persist leaves the identifier unchanged.
func (c *Controller) Persist(ctx context.Context) error {
	if !c.gate.Authorized() {
		return ErrNotAuthorized
	}

	c.mu.Lock()
	rec := c.committed
	id := c.recordID
	sourceFilename := c.sourceFilename
	c.mu.Unlock()

	token := c.gate.Token()
	if id == uuid.Nil {
		assigned, err := c.store.CreateResume(ctx, token, rec, sourceFilename)
		if err != nil {
			return fmt.Errorf("failed to save resume: %w", err)
		}
		c.mu.Lock()
		c.recordID = assigned
		c.mu.Unlock()
		return nil
	}

	if err := c.store.UpdateResume(ctx, token, id, rec); err != nil {
		return fmt.Errorf("failed to update resume: %w", err)
	}
	return nil
}
