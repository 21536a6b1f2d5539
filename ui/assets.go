package ui

import "embed"

// Assets holds the page templates, the help text and the stylesheet.
//
//go:embed templates/*.html templates/help.md static/*
var Assets embed.FS
