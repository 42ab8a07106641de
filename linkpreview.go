// Package linkpreview extracts link preview metadata (title, description,
// image and content type) from the <head> of web pages, following the Open
// Graph protocol with fallbacks to plain meta tags and the document title.
//
// This package contains domain types, interfaces and the extraction core
// following Ben Johnson's Standard Package Layout. Implementations live in
// subdirectories named after their primary dependency (e.g., goquery/,
// sqlite/, rod/).
package linkpreview
