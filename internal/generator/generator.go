// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package generator turns a free-text request into an end-of-life document
// in HTML. It classifies the prompt, asks a generative-text provider for a
// draft, normalises the returned markup, and falls back to a keyword-matched
// template library whenever the provider cannot be used.
package generator

import "errors"

// Source identifies where the content of a Result came from.
type Source string

const (
	SourceProvider Source = "provider"
	SourceFallback Source = "fallback"
)

// Request is a single generation request.
type Request struct {
	Prompt   string
	UserName string // display name substituted for [Your Name]; may be empty
}

// Result is the outcome of a generation request. Content is never empty and
// always starts with "<".
type Result struct {
	Content string
	Source  Source
	Warning string // set when Source is SourceFallback
}

var (
	// ErrInvalidArgument is returned when the prompt is empty or whitespace.
	ErrInvalidArgument = errors.New("generator: prompt is required")

	// ErrProviderUnavailable wraps any provider failure. Generate recovers
	// from it with fallback content and never returns it.
	ErrProviderUnavailable = errors.New("generator: provider unavailable")

	// ErrInternal is returned when fallback content could not be rendered.
	ErrInternal = errors.New("generator: internal error")
)

// Placeholder is the token replaced by the requester's display name.
const Placeholder = "[Your Name]"
