package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/fwojciec/linkpreview"
	"gopkg.in/yaml.v3"
)

// previewView is the serialized form of a preview in every output format.
type previewView struct {
	ID          string     `json:"id,omitempty" yaml:"id,omitempty"`
	URL         string     `json:"url" yaml:"url"`
	Title       *string    `json:"title" yaml:"title"`
	Type        string     `json:"type" yaml:"type"`
	Description *string    `json:"description" yaml:"description"`
	ImageURL    *string    `json:"imageUrl" yaml:"imageUrl"`
	ImageSize   *sizeView  `json:"imageSize" yaml:"imageSize"`
	FetchedAt   *time.Time `json:"fetchedAt,omitempty" yaml:"fetchedAt,omitempty"`
}

type sizeView struct {
	Width  float64 `json:"width" yaml:"width"`
	Height float64 `json:"height" yaml:"height"`
}

func newPreviewView(rawURL string, m *linkpreview.Metadata) previewView {
	v := previewView{
		URL:         rawURL,
		Title:       m.Title,
		Type:        string(m.Type),
		Description: m.Description,
	}
	if m.ImageURL != nil {
		s := m.ImageURL.String()
		v.ImageURL = &s
	}
	if m.ImageSize != nil {
		v.ImageSize = &sizeView{Width: m.ImageSize.Width, Height: m.ImageSize.Height}
	}
	return v
}

func newStoredPreviewView(p *linkpreview.Preview) previewView {
	v := newPreviewView(p.URL, p.Metadata)
	v.ID = p.ID
	fetchedAt := p.FetchedAt
	v.FetchedAt = &fetchedAt
	return v
}

// writePreviews renders views to w in the given format.
func writePreviews(w io.Writer, format string, views []previewView) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(views)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(views); err != nil {
			return err
		}
		return enc.Close()
	default:
		for i, v := range views {
			if i > 0 {
				fmt.Fprintln(w)
			}
			writeText(w, v)
		}
		return nil
	}
}

func writeText(w io.Writer, v previewView) {
	if v.ID != "" {
		fmt.Fprintf(w, "ID:          %s\n", v.ID)
	}
	fmt.Fprintf(w, "URL:         %s\n", v.URL)
	fmt.Fprintf(w, "Title:       %s\n", orNone(v.Title))
	fmt.Fprintf(w, "Type:        %s\n", v.Type)
	fmt.Fprintf(w, "Description: %s\n", orNone(v.Description))
	fmt.Fprintf(w, "Image:       %s\n", orNone(v.ImageURL))
	if v.ImageSize != nil {
		fmt.Fprintf(w, "Image size:  %sx%s\n", formatDimension(v.ImageSize.Width), formatDimension(v.ImageSize.Height))
	} else {
		fmt.Fprintf(w, "Image size:  (none)\n")
	}
	if v.FetchedAt != nil {
		fmt.Fprintf(w, "Fetched:     %s\n", v.FetchedAt.Local().Format(time.DateTime))
	}
}

func orNone(s *string) string {
	if s == nil {
		return "(none)"
	}
	return *s
}

func formatDimension(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
