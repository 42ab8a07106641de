package goquery_test

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/linkpreview"
	lpgoquery "github.com/fwojciec/linkpreview/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
)

func parseHead(t *testing.T, text string) linkpreview.Head {
	t.Helper()
	head, err := lpgoquery.NewParser().Parse(text)
	require.NoError(t, err)
	return head
}

func TestHead_Content(t *testing.T) {
	t.Parallel()

	t.Run("returns content of matching meta property", func(t *testing.T) {
		t.Parallel()

		head := parseHead(t, `<html><head>
			<meta property="og:title" content="Frigg - Wikipedia">
		</head><body></body></html>`)

		v, ok, err := head.Content("og:title")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, "Frigg - Wikipedia", v)
	})

	t.Run("first match in document order wins", func(t *testing.T) {
		t.Parallel()

		head := parseHead(t, `<html><head>
			<meta property="og:image" content="https://example.com/first.png">
			<meta property="og:image" content="https://example.com/second.png">
		</head></html>`)

		v, ok, err := head.Content("og:image")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, "https://example.com/first.png", v)
	})

	t.Run("reports missing property", func(t *testing.T) {
		t.Parallel()

		head := parseHead(t, `<html><head><meta name="og:title" content="name not property"></head></html>`)

		_, ok, err := head.Content("og:title")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("does not match a prefix of the property", func(t *testing.T) {
		t.Parallel()

		head := parseHead(t, `<html><head><meta property="og:image:width" content="100"></head></html>`)

		_, ok, err := head.Content("og:image")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("treats meta without content as empty value", func(t *testing.T) {
		t.Parallel()

		head := parseHead(t, `<html><head><meta property="og:description"></head></html>`)

		v, ok, err := head.Content("og:description")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Empty(t, v)
	})

	t.Run("ignores meta tags outside head", func(t *testing.T) {
		t.Parallel()

		head := parseHead(t, `<html><head><title>T</title></head><body>
			<div><meta property="og:title" content="in body"></div>
		</body></html>`)

		_, ok, err := head.Content("og:title")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("escapes quotes in property names", func(t *testing.T) {
		t.Parallel()

		head := parseHead(t, `<html><head><meta property='a"b' content="quoted"></head></html>`)

		v, ok, err := head.Content(`a"b`)
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, "quoted", v)
	})

	t.Run("returns parse error for property that cannot form a selector", func(t *testing.T) {
		t.Parallel()

		head := parseHead(t, `<html><head></head></html>`)

		_, _, err := head.Content("og:\ntitle")
		require.Error(t, err)
		assert.Equal(t, linkpreview.EPARSE, linkpreview.ErrorCode(err))
	})
}

func TestHead_DocumentTitle(t *testing.T) {
	t.Parallel()

	t.Run("returns normalized title text", func(t *testing.T) {
		t.Parallel()

		head := parseHead(t, "<html><head><title>\n  Example\n  Domain </title></head></html>")

		title, ok := head.DocumentTitle()
		assert.True(t, ok)
		assert.Equal(t, "Example Domain", title)
	})

	t.Run("reports missing title", func(t *testing.T) {
		t.Parallel()

		_, ok := parseHead(t, "<html><head></head></html>").DocumentTitle()
		assert.False(t, ok)
	})
}

func TestHeadOf(t *testing.T) {
	t.Parallel()

	t.Run("falls back to document root without head", func(t *testing.T) {
		t.Parallel()

		// Build a tree by hand; html.Parse always synthesizes a head.
		root := &html.Node{Type: html.DocumentNode}
		meta := &html.Node{
			Type: html.ElementNode,
			Data: "meta",
			Attr: []html.Attribute{
				{Key: "property", Val: "og:title"},
				{Key: "content", Val: "headless"},
			},
		}
		root.AppendChild(meta)

		head := lpgoquery.HeadOf(goquery.NewDocumentFromNode(root))

		v, ok, err := head.Content("og:title")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, "headless", v)
	})
}

func TestParser_Parse(t *testing.T) {
	t.Parallel()

	t.Run("tolerates fragments", func(t *testing.T) {
		t.Parallel()

		head := parseHead(t, `<meta property="og:type" content="article"><p>hello`)

		v, ok, err := head.Content("og:type")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, "article", v)
	})

	t.Run("handles large documents", func(t *testing.T) {
		t.Parallel()

		body := strings.Repeat("<p>filler</p>", 10000)
		head := parseHead(t, `<html><head><title>Big</title></head><body>`+body+`</body></html>`)

		title, ok := head.DocumentTitle()
		assert.True(t, ok)
		assert.Equal(t, "Big", title)
	})
}
