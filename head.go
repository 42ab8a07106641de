package linkpreview

// Head is the read-only view of an HTML <head> element (or the document
// root when the page has no head) that metadata is extracted from.
type Head interface {
	// Content returns the content attribute of the first meta element, in
	// document order, whose property attribute equals property.
	// The boolean is false when no such element exists. An error is
	// returned only when the tree cannot be queried.
	Content(property string) (string, bool, error)

	// DocumentTitle returns the text of the owning document's <title>.
	DocumentTitle() (string, bool)
}

// Parser builds a Head from decoded page text.
type Parser interface {
	// Parse returns the <head> of the document, or the document root if
	// the page has no head. Failures are returned with code EPARSE.
	Parse(text string) (Head, error)
}

// Decoder converts fetched bytes to text.
type Decoder interface {
	// Decode interprets b as UTF-8. Invalid byte sequences are returned
	// as EDECODE errors.
	Decode(b []byte) (string, error)
}
