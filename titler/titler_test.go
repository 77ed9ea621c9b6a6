package titler

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateTitleRequiresVisibleText(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "test-key")
	c := New()

	_, err := c.GenerateTitle(context.Background(), "")
	assert.ErrorIs(t, err, ErrEmptyContent)

	_, err = c.GenerateTitle(context.Background(), "<p><br></p>")
	assert.ErrorIs(t, err, ErrEmptyContent)

	_, err = c.GenerateTitle(context.Background(), "<p>   </p>")
	assert.ErrorIs(t, err, ErrEmptyContent)
}

func TestGenerateTitleRequiresAPIKey(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")
	c := New()

	_, err := c.GenerateTitle(context.Background(), "<p>Went hiking today.</p>")
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestGenerateTitleExtractsDocumentContent(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")
	c := New()

	// A full document reaches the key check only if extraction found body
	// text past the boilerplate.
	doc := `<html><head><title>diary</title><style>p{margin:0}</style></head>
<body><nav>home</nav><article><p>Went hiking today, saw a fox near the ridge
and sat by the creek until the light went flat.</p></article></body></html>`
	_, err := c.GenerateTitle(context.Background(), doc)
	assert.ErrorIs(t, err, ErrNotConfigured)

	// Script-only text is invisible, so the same document shape without
	// body text never gets that far.
	empty := `<html><head><script>var x = "not content";</script></head><body></body></html>`
	_, err = c.GenerateTitle(context.Background(), empty)
	assert.ErrorIs(t, err, ErrEmptyContent)
}

func TestCleanTitle(t *testing.T) {
	cases := map[string]string{
		"A Quiet Day":                  "A Quiet Day",
		"  A Quiet Day \n":             "A Quiet Day",
		"\"A Quiet Day\"":              "A Quiet Day",
		"'A Quiet Day'":                "A Quiet Day",
		"A Quiet Day\nSecond thought":  "A Quiet Day",
		"  \"A Fox Among the Pines\" ": "A Fox Among the Pines",
	}
	for in, want := range cases {
		assert.Equal(t, want, CleanTitle(in), "input %q", in)
	}
}
