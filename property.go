package linkpreview

// Field names understood by the resolvers.
const (
	FieldTitle       = "title"
	FieldType        = "type"
	FieldDescription = "description"
	FieldImage       = "image"
	FieldImageWidth  = "image:width"
	FieldImageHeight = "image:height"
	FieldThumbnail   = "thumbnail"
)

const openGraphPrefix = "og:"

// properties maps field names to their plain meta property names.
var properties = map[string]string{
	FieldTitle:       "title",
	FieldType:        "type",
	FieldDescription: "description",
	FieldImage:       "image",
	FieldImageWidth:  "image:width",
	FieldImageHeight: "image:height",
	FieldThumbnail:   "thumbnail",
}

// PlainProperty returns the meta property name for a field.
// Unknown field names are used verbatim.
func PlainProperty(field string) string {
	if p, ok := properties[field]; ok {
		return p
	}
	return field
}

// OpenGraphProperty returns the og: namespaced property name for a field.
func OpenGraphProperty(field string) string {
	return openGraphPrefix + PlainProperty(field)
}
