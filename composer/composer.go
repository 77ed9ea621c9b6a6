// Package composer drives the write → suggest title → review → submit flow
// for a diary entry. It owns the business state: the editor is only a content
// buffer behind the Editor interface, and the server is only reachable
// through the API interface.
package composer

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"personal-diary/dto"
	"personal-diary/models"
)

// State is the current step of the composition flow.
type State int

const (
	// StateIdle: the user is editing content.
	StateIdle State = iota
	// StateGeneratingTitle: a title suggestion request is in flight.
	StateGeneratingTitle
	// StateReviewingTitle: the title is shown and editable.
	StateReviewingTitle
	// StateSubmitting: the create-post request is in flight.
	StateSubmitting
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateGeneratingTitle:
		return "generating_title"
	case StateReviewingTitle:
		return "reviewing_title"
	case StateSubmitting:
		return "submitting"
	default:
		return "unknown"
	}
}

var (
	// ErrInvalidState is returned when an operation arrives while another is
	// in flight or the flow is at a different step. It is the equivalent of
	// a disabled button: only one outstanding request per user action.
	ErrInvalidState = errors.New("operation not allowed in current state")
	// ErrEmptyContent rejects submitting with nothing written.
	ErrEmptyContent = errors.New("content is empty")
	// ErrEmptyTitle rejects confirming without a title.
	ErrEmptyTitle = errors.New("title is empty")
)

// emptyEditorSentinel is what the rich-text editor reports for a visually
// empty document.
const emptyEditorSentinel = "<p><br></p>"

// Editor is the narrow control surface of the rich-text editor. The composer
// is the single owner of business state; the editor never is.
type Editor interface {
	Content() string
	SetContent(string)
	Clear()
	Focus()
}

// Notifier surfaces transient, non-blocking notifications to the user.
type Notifier interface {
	Success(msg string)
	Error(msg string)
}

// API is the slice of the diary client the composer needs.
type API interface {
	GenerateTitle(ctx context.Context, content string) (string, error)
	CreatePost(ctx context.Context, in dto.CreatePostRequest) (models.Post, error)
}

type Composer struct {
	mu     sync.Mutex
	state  State
	title  string
	editor Editor
	api    API
	notify Notifier
	now    func() time.Time
}

func New(api API, editor Editor, notify Notifier) *Composer {
	return &Composer{
		state:  StateIdle,
		editor: editor,
		api:    api,
		notify: notify,
		now:    time.Now,
	}
}

func (c *Composer) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func (c *Composer) Title() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.title
}

// SetTitle edits the pending title. Only valid while reviewing.
func (c *Composer) SetTitle(title string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != StateReviewingTitle {
		return ErrInvalidState
	}
	c.title = title
	return nil
}

// Submit validates the content and requests a title suggestion. A failed
// suggestion is not fatal: the flow still reaches the review step with a
// blank title for manual entry, and the content stays where it is.
func (c *Composer) Submit(ctx context.Context) error {
	c.mu.Lock()
	if c.state != StateIdle {
		c.mu.Unlock()
		return ErrInvalidState
	}
	content := c.editor.Content()
	if strings.TrimSpace(content) == "" || content == emptyEditorSentinel {
		c.mu.Unlock()
		c.notify.Error("Please write something before submitting")
		return ErrEmptyContent
	}
	c.state = StateGeneratingTitle
	c.mu.Unlock()

	title, err := c.api.GenerateTitle(ctx, content)

	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		c.notify.Error("Could not generate title. Please enter one manually.")
		c.title = ""
	} else {
		c.title = title
	}
	c.state = StateReviewingTitle
	return nil
}

// Confirm submits the post. On success the editor is cleared and the flow
// returns to idle; on failure it returns to reviewing with everything the
// user entered intact, so they can retry.
func (c *Composer) Confirm(ctx context.Context) error {
	c.mu.Lock()
	if c.state != StateReviewingTitle {
		c.mu.Unlock()
		return ErrInvalidState
	}
	if strings.TrimSpace(c.title) == "" {
		c.mu.Unlock()
		c.notify.Error("Please enter a title")
		return ErrEmptyTitle
	}
	title := c.title
	content := c.editor.Content()
	c.state = StateSubmitting
	c.mu.Unlock()

	_, err := c.api.CreatePost(ctx, dto.CreatePostRequest{
		Title:   title,
		Content: content,
		Date:    c.now().Format("2006-01-02"),
	})

	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		c.notify.Error("An error occurred while saving the post")
		c.state = StateReviewingTitle
		return err
	}

	c.notify.Success("Post saved successfully!")
	c.editor.Clear()
	c.title = ""
	c.state = StateIdle
	return nil
}

// Cancel abandons the review step. The content stays in the editor.
func (c *Composer) Cancel() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != StateReviewingTitle {
		return ErrInvalidState
	}
	c.title = ""
	c.state = StateIdle
	return nil
}
