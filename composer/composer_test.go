package composer

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"personal-diary/dto"
	"personal-diary/models"
)

type fakeAPI struct {
	titleResult string
	titleErr    error
	createErr   error
	created     []dto.CreatePostRequest
}

func (f *fakeAPI) GenerateTitle(ctx context.Context, content string) (string, error) {
	return f.titleResult, f.titleErr
}

func (f *fakeAPI) CreatePost(ctx context.Context, in dto.CreatePostRequest) (models.Post, error) {
	if f.createErr != nil {
		return models.Post{}, f.createErr
	}
	f.created = append(f.created, in)
	return models.Post{Title: in.Title, Content: in.Content}, nil
}

type recordingNotifier struct {
	mu        sync.Mutex
	errors    []string
	successes []string
}

func (n *recordingNotifier) Error(msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.errors = append(n.errors, msg)
}

func (n *recordingNotifier) Success(msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.successes = append(n.successes, msg)
}

func newComposer(api *fakeAPI) (*Composer, *BufferEditor, *recordingNotifier) {
	editor := NewBufferEditor()
	notify := &recordingNotifier{}
	return New(api, editor, notify), editor, notify
}

func TestSubmitRejectsEmptyContent(t *testing.T) {
	c, editor, notify := newComposer(&fakeAPI{})
	ctx := context.Background()

	assert.ErrorIs(t, c.Submit(ctx), ErrEmptyContent)
	assert.Equal(t, StateIdle, c.State())

	editor.SetContent("   ")
	assert.ErrorIs(t, c.Submit(ctx), ErrEmptyContent)

	// The editor's empty-document markup counts as empty too.
	editor.SetContent("<p><br></p>")
	assert.ErrorIs(t, c.Submit(ctx), ErrEmptyContent)
	assert.NotEmpty(t, notify.errors)
}

func TestSubmitPrefillsSuggestedTitle(t *testing.T) {
	c, editor, _ := newComposer(&fakeAPI{titleResult: "A Fox Among the Pines"})
	editor.SetContent("<p>Went hiking today, saw a fox.</p>")

	assert.NoError(t, c.Submit(context.Background()))
	assert.Equal(t, StateReviewingTitle, c.State())
	assert.Equal(t, "A Fox Among the Pines", c.Title())
}

func TestTitleFailureStillReachesReview(t *testing.T) {
	c, editor, notify := newComposer(&fakeAPI{titleErr: errors.New("model unavailable")})
	editor.SetContent("<p>Went hiking today, saw a fox.</p>")

	assert.NoError(t, c.Submit(context.Background()))
	assert.Equal(t, StateReviewingTitle, c.State())
	assert.Equal(t, "", c.Title(), "title field stays blank for manual entry")
	assert.Equal(t, "<p>Went hiking today, saw a fox.</p>", editor.Content(),
		"content must survive an AI failure")
	assert.Contains(t, notify.errors, "Could not generate title. Please enter one manually.")
}

func TestConfirmRequiresTitle(t *testing.T) {
	c, editor, _ := newComposer(&fakeAPI{titleErr: errors.New("down")})
	editor.SetContent("<p>hi</p>")
	assert.NoError(t, c.Submit(context.Background()))

	assert.ErrorIs(t, c.Confirm(context.Background()), ErrEmptyTitle)
	assert.Equal(t, StateReviewingTitle, c.State(), "an empty title keeps the review open")
}

func TestConfirmSubmitsAndResets(t *testing.T) {
	api := &fakeAPI{titleResult: "A Quiet Day"}
	c, editor, notify := newComposer(api)
	editor.SetContent("<p>hi</p>")

	assert.NoError(t, c.Submit(context.Background()))
	assert.NoError(t, c.SetTitle("My Own Title"))
	assert.NoError(t, c.Confirm(context.Background()))

	assert.Equal(t, StateIdle, c.State())
	assert.Equal(t, "", c.Title())
	assert.Equal(t, "", editor.Content(), "editor cleared after save")
	assert.Len(t, api.created, 1)
	assert.Equal(t, "My Own Title", api.created[0].Title)
	assert.Equal(t, "<p>hi</p>", api.created[0].Content)
	assert.NotEmpty(t, notify.successes)
}

func TestConfirmFailureReturnsToReview(t *testing.T) {
	api := &fakeAPI{titleResult: "A Quiet Day", createErr: errors.New("boom")}
	c, editor, _ := newComposer(api)
	editor.SetContent("<p>hi</p>")

	assert.NoError(t, c.Submit(context.Background()))
	assert.Error(t, c.Confirm(context.Background()))

	assert.Equal(t, StateReviewingTitle, c.State())
	assert.Equal(t, "A Quiet Day", c.Title(), "title kept for retry")
	assert.Equal(t, "<p>hi</p>", editor.Content(), "content kept for retry")

	// The user can retry once the server recovers.
	api.createErr = nil
	assert.NoError(t, c.Confirm(context.Background()))
	assert.Equal(t, StateIdle, c.State())
}

func TestCancelKeepsContent(t *testing.T) {
	c, editor, _ := newComposer(&fakeAPI{titleResult: "A Quiet Day"})
	editor.SetContent("<p>hi</p>")

	assert.NoError(t, c.Submit(context.Background()))
	assert.NoError(t, c.Cancel())

	assert.Equal(t, StateIdle, c.State())
	assert.Equal(t, "", c.Title())
	assert.Equal(t, "<p>hi</p>", editor.Content())
}

func TestOperationsOutsideTheirStateFail(t *testing.T) {
	c, editor, _ := newComposer(&fakeAPI{titleResult: "A Quiet Day"})
	ctx := context.Background()

	assert.ErrorIs(t, c.Confirm(ctx), ErrInvalidState)
	assert.ErrorIs(t, c.Cancel(), ErrInvalidState)
	assert.ErrorIs(t, c.SetTitle("x"), ErrInvalidState)

	editor.SetContent("<p>hi</p>")
	assert.NoError(t, c.Submit(ctx))
	assert.ErrorIs(t, c.Submit(ctx), ErrInvalidState, "no second submit while reviewing")
}
