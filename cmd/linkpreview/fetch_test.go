package main_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/url"
	"testing"

	"github.com/fwojciec/linkpreview"
	main "github.com/fwojciec/linkpreview/cmd/linkpreview"
	"github.com/fwojciec/linkpreview/mock"
	"github.com/fwojciec/linkpreview/pipeline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func ptr(s string) *string { return &s }

func sampleMetadata() *linkpreview.Metadata {
	img, _ := url.Parse("https://example.com/cover.png")
	return &linkpreview.Metadata{
		Title:       ptr("Example"),
		Type:        linkpreview.ContentTypeArticle,
		Description: ptr("An example page"),
		ImageURL:    img,
		ImageSize:   &linkpreview.ImageSize{Width: 1200, Height: 630},
	}
}

func newFetchDeps(previewer linkpreview.Previewer) (*main.Dependencies, *bytes.Buffer, *bytes.Buffer) {
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	return &main.Dependencies{
		Ctx:    context.Background(),
		Stdout: stdout,
		Stderr: stderr,
		Logger: slog.New(slog.DiscardHandler),
		Batch:  &pipeline.BatchPreviewer{Previewer: previewer, Concurrency: 2},
	}, stdout, stderr
}

func TestFetchCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("prints text preview", func(t *testing.T) {
		t.Parallel()

		previewer := &mock.Previewer{
			PreviewFn: func(_ context.Context, _ string) (*linkpreview.Metadata, error) {
				return sampleMetadata(), nil
			},
		}
		deps, stdout, stderr := newFetchDeps(previewer)

		cmd := &main.FetchCmd{URLs: []string{"https://example.com"}, Format: "text"}
		err := cmd.Run(deps)

		require.NoError(t, err)
		out := stdout.String()
		assert.Contains(t, out, "https://example.com")
		assert.Contains(t, out, "Example")
		assert.Contains(t, out, "article")
		assert.Contains(t, out, "https://example.com/cover.png")
		assert.Contains(t, out, "1200x630")
		assert.Empty(t, stderr.String())
	})

	t.Run("prints none for absent fields", func(t *testing.T) {
		t.Parallel()

		previewer := &mock.Previewer{
			PreviewFn: func(_ context.Context, _ string) (*linkpreview.Metadata, error) {
				return &linkpreview.Metadata{Type: linkpreview.ContentTypeWebsite}, nil
			},
		}
		deps, stdout, _ := newFetchDeps(previewer)

		cmd := &main.FetchCmd{URLs: []string{"https://example.com"}, Format: "text"}
		require.NoError(t, cmd.Run(deps))

		assert.Contains(t, stdout.String(), "Title:       (none)")
		assert.Contains(t, stdout.String(), "Image size:  (none)")
	})

	t.Run("prints json", func(t *testing.T) {
		t.Parallel()

		previewer := &mock.Previewer{
			PreviewFn: func(_ context.Context, _ string) (*linkpreview.Metadata, error) {
				return sampleMetadata(), nil
			},
		}
		deps, stdout, _ := newFetchDeps(previewer)

		cmd := &main.FetchCmd{URLs: []string{"https://example.com"}, Format: "json"}
		require.NoError(t, cmd.Run(deps))

		var got []map[string]any
		require.NoError(t, json.Unmarshal(stdout.Bytes(), &got))
		require.Len(t, got, 1)
		assert.Equal(t, "Example", got[0]["title"])
		assert.Equal(t, "article", got[0]["type"])
		assert.Equal(t, "https://example.com/cover.png", got[0]["imageUrl"])
		assert.Equal(t, map[string]any{"width": 1200.0, "height": 630.0}, got[0]["imageSize"])
	})

	t.Run("prints yaml", func(t *testing.T) {
		t.Parallel()

		previewer := &mock.Previewer{
			PreviewFn: func(_ context.Context, _ string) (*linkpreview.Metadata, error) {
				return &linkpreview.Metadata{Type: linkpreview.ContentTypeWebsite, Title: ptr("Hi")}, nil
			},
		}
		deps, stdout, _ := newFetchDeps(previewer)

		cmd := &main.FetchCmd{URLs: []string{"https://example.com"}, Format: "yaml"}
		require.NoError(t, cmd.Run(deps))

		var got []map[string]any
		require.NoError(t, yaml.Unmarshal(stdout.Bytes(), &got))
		require.Len(t, got, 1)
		assert.Equal(t, "Hi", got[0]["title"])
		assert.Equal(t, "website", got[0]["type"])
		assert.Nil(t, got[0]["description"])
	})

	t.Run("skips invalid and duplicate URLs", func(t *testing.T) {
		t.Parallel()

		var calls []string
		previewer := &mock.Previewer{
			PreviewFn: func(_ context.Context, rawURL string) (*linkpreview.Metadata, error) {
				calls = append(calls, rawURL)
				return sampleMetadata(), nil
			},
		}
		deps, _, stderr := newFetchDeps(previewer)
		deps.Batch.Concurrency = 1
		deps.Batch.Seen = &mock.URLSet{
			AddFn: func() func(string) bool {
				seen := map[string]bool{}
				return func(u string) bool {
					if seen[u] {
						return false
					}
					seen[u] = true
					return true
				}
			}(),
		}

		cmd := &main.FetchCmd{
			URLs:   []string{"ftp://example.com", "https://example.com", "https://example.com"},
			Format: "text",
		}
		require.NoError(t, cmd.Run(deps))

		assert.Equal(t, []string{"https://example.com"}, calls)
		assert.Contains(t, stderr.String(), "skip:")
		assert.Contains(t, stderr.String(), "duplicate URL")
	})

	t.Run("reports failures and succeeds when some URLs work", func(t *testing.T) {
		t.Parallel()

		previewer := &mock.Previewer{
			PreviewFn: func(_ context.Context, rawURL string) (*linkpreview.Metadata, error) {
				if rawURL == "https://bad.example.com" {
					return nil, linkpreview.Errorf(linkpreview.EFETCH, "unexpected status 404")
				}
				return sampleMetadata(), nil
			},
		}
		deps, stdout, stderr := newFetchDeps(previewer)

		cmd := &main.FetchCmd{URLs: []string{"https://bad.example.com", "https://example.com"}, Format: "text"}
		require.NoError(t, cmd.Run(deps))

		assert.Contains(t, stderr.String(), "error: https://bad.example.com: unexpected status 404")
		assert.Contains(t, stdout.String(), "Example")
	})

	t.Run("returns error when every URL fails", func(t *testing.T) {
		t.Parallel()

		previewer := &mock.Previewer{
			PreviewFn: func(_ context.Context, _ string) (*linkpreview.Metadata, error) {
				return nil, linkpreview.Errorf(linkpreview.EDECODE, "payload is not valid UTF-8")
			},
		}
		deps, _, stderr := newFetchDeps(previewer)

		cmd := &main.FetchCmd{URLs: []string{"https://example.com"}, Format: "text"}
		err := cmd.Run(deps)

		require.Error(t, err)
		assert.Equal(t, linkpreview.EFETCH, linkpreview.ErrorCode(err))
		assert.Contains(t, stderr.String(), "payload is not valid UTF-8")
	})

	t.Run("saves previews when requested", func(t *testing.T) {
		t.Parallel()

		var saved *linkpreview.Preview
		previewer := &mock.Previewer{
			PreviewFn: func(_ context.Context, _ string) (*linkpreview.Metadata, error) {
				return sampleMetadata(), nil
			},
		}
		deps, stdout, _ := newFetchDeps(previewer)
		deps.Previews = &mock.PreviewService{
			CreatePreviewFn: func(_ context.Context, p *linkpreview.Preview) error {
				p.ID = "prev-1"
				saved = p
				return nil
			},
		}

		cmd := &main.FetchCmd{URLs: []string{"https://example.com"}, Format: "text", Save: true}
		require.NoError(t, cmd.Run(deps))

		require.NotNil(t, saved)
		assert.Equal(t, "https://example.com", saved.URL)
		assert.Equal(t, "Example", *saved.Metadata.Title)
		assert.Contains(t, stdout.String(), "prev-1")
	})
}
