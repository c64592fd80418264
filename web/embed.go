package web

import "embed"

// TemplatesFS holds the page and the entry-form partial.
//
//go:embed templates/*.html
var TemplatesFS embed.FS

// StaticFS holds the stylesheet.
//
//go:embed static/*
var StaticFS embed.FS
