package linkpreview

import (
	"fmt"
	"math"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

// Resolution is one attempt in a fallback chain. It reports whether it
// produced a value; an error means the head could not be queried.
type Resolution func(head Head) (string, bool, error)

// OpenGraph resolves the og: namespaced meta property for a field.
func OpenGraph(field string) Resolution {
	return metaContent(OpenGraphProperty(field))
}

// Plain resolves the bare meta property for a field.
func Plain(field string) Resolution {
	return metaContent(PlainProperty(field))
}

// DocumentTitle resolves the owning document's <title> text.
func DocumentTitle() Resolution {
	return func(head Head) (string, bool, error) {
		title, ok := head.DocumentTitle()
		return title, ok, nil
	}
}

// Value resolves to v when v is non-nil.
func Value(v *string) Resolution {
	return func(Head) (string, bool, error) {
		if v == nil {
			return "", false, nil
		}
		return *v, true, nil
	}
}

func metaContent(property string) Resolution {
	return func(head Head) (string, bool, error) {
		v, ok, err := head.Content(property)
		if err != nil {
			return "", false, parseError(property, err)
		}
		return v, ok, nil
	}
}

func parseError(property string, err error) error {
	if ErrorCode(err) == EPARSE {
		return err
	}
	return fmt.Errorf("query %s: %w", property, Errorf(EPARSE, "failed to query head: %v", err))
}

// Resolve evaluates attempts left to right and returns the first value
// produced. It returns nil when every attempt comes up empty.
func Resolve(head Head, attempts ...Resolution) (*string, error) {
	for _, attempt := range attempts {
		v, ok, err := attempt(head)
		if err != nil {
			return nil, err
		}
		if ok {
			return &v, nil
		}
	}
	return nil, nil
}

// ResolveOpenGraphField returns the content of og:<field>, else fallback.
func ResolveOpenGraphField(head Head, field string, fallback *string) (*string, error) {
	return Resolve(head, OpenGraph(field), Value(fallback))
}

// ResolvePlainField returns the content of the bare <field> property, else
// fallback.
func ResolvePlainField(head Head, field string, fallback *string) (*string, error) {
	return Resolve(head, Plain(field), Value(fallback))
}

// ResolveTitle prefers og:title over the document <title>.
func ResolveTitle(head Head) (*string, error) {
	return Resolve(head, OpenGraph(FieldTitle), DocumentTitle())
}

// ResolveType reads og:type. Missing or unknown values resolve to
// ContentTypeWebsite.
func ResolveType(head Head) (ContentType, error) {
	raw, err := Resolve(head, OpenGraph(FieldType))
	if err != nil {
		return "", err
	}
	if raw == nil {
		return ContentTypeWebsite, nil
	}
	return ParseContentType(*raw), nil
}

// ResolveDescription prefers og:description over the plain description
// property.
func ResolveDescription(head Head) (*string, error) {
	return Resolve(head, OpenGraph(FieldDescription), Plain(FieldDescription))
}

// ResolveImageURL prefers og:image over the plain thumbnail property.
// A value that is not a valid URL is treated as absent.
func ResolveImageURL(head Head) (*url.URL, error) {
	raw, err := Resolve(head, OpenGraph(FieldImage), Plain(FieldThumbnail))
	if err != nil || raw == nil {
		return nil, err
	}
	return ParseImageURL(*raw), nil
}

// ParseImageURL parses raw as a URL reference, returning nil if it is empty,
// contains whitespace or control characters, or fails to parse.
func ParseImageURL(raw string) *url.URL {
	if raw == "" {
		return nil
	}
	if strings.IndexFunc(raw, func(r rune) bool {
		return unicode.IsSpace(r) || unicode.IsControl(r)
	}) >= 0 {
		return nil
	}
	u, err := url.Parse(raw)
	if err != nil {
		return nil
	}
	return u
}

// ResolveImageSize reads og:image:width and og:image:height. The size is
// absent unless both parse as numbers and width+height > 0. A negative
// component is accepted as long as the sum is positive.
func ResolveImageSize(head Head) (*ImageSize, error) {
	widthRaw, err := Resolve(head, OpenGraph(FieldImageWidth))
	if err != nil {
		return nil, err
	}
	heightRaw, err := Resolve(head, OpenGraph(FieldImageHeight))
	if err != nil {
		return nil, err
	}
	if widthRaw == nil || heightRaw == nil {
		return nil, nil
	}

	width, ok := ParseDimension(*widthRaw)
	if !ok {
		return nil, nil
	}
	height, ok := ParseDimension(*heightRaw)
	if !ok {
		return nil, nil
	}

	if width+height > 0 {
		return &ImageSize{Width: width, Height: height}, nil
	}
	return nil, nil
}

var decimalRe = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)([eE][+-]?\d+)?$`)

// ParseDimension parses a decimal number. It reports false for anything
// that is not a plain, finite decimal.
func ParseDimension(s string) (float64, bool) {
	if !decimalRe.MatchString(s) {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// NewMetadata extracts preview metadata from head. Each field resolves
// independently; a missing field is never an error. An error (EPARSE) is
// returned only when the head cannot be queried.
func NewMetadata(head Head) (*Metadata, error) {
	var m Metadata
	var err error

	if m.Title, err = ResolveTitle(head); err != nil {
		return nil, err
	}
	if m.Type, err = ResolveType(head); err != nil {
		return nil, err
	}
	if m.Description, err = ResolveDescription(head); err != nil {
		return nil, err
	}
	if m.ImageURL, err = ResolveImageURL(head); err != nil {
		return nil, err
	}
	if m.ImageSize, err = ResolveImageSize(head); err != nil {
		return nil, err
	}

	return &m, nil
}
