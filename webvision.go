// Package webvision provides a website metadata extraction and cataloging
// service. Given a URL it fetches the page, derives brand name, description,
// favicon, keywords and language from the HTML, optionally rewrites the
// description through a language model, and catalogs the result.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, gemini/, sqlite/, gin/).
package webvision
