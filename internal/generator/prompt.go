// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package generator

import (
	"fmt"
	"strings"
)

// templateMarkers are the words that turn a prompt into a fill-in-the-blank
// template request.
var templateMarkers = []string{"template", "example", "format"}

// IsTemplateRequest reports whether the prompt asks for a template rather
// than a direct answer.
func IsTemplateRequest(prompt string) bool {
	return containsAny(strings.ToLower(prompt), templateMarkers)
}

const templatePrompt = `Write a detailed death note or final instructions letter based on this topic: "%s"

The letter should be in valid HTML format with proper tags.
Use <h1> for main headings/titles, <h3> for subheadings, <p> for paragraphs, <ul> and <li> for lists.
Use <strong> for emphasis where appropriate.

Include placeholders where the person would need to fill in personal information.
Make the content specific to the topic requested and structured as a template that can be filled in.

The response should ONLY contain the HTML content, nothing else.`

const directPrompt = `Based on this request: "%s"

Provide a detailed, accurate, and thoughtful response in the context of a final instructions document or letter.
Use professional language, be precise, and respond directly to the specific query.
Use your deep knowledge to provide high-quality information, practical advice, and clear instructions.
Avoid template-like placeholders unless specifically requested.

Format the response in valid HTML:
- Use <h1> for main headings/titles
- Use <h3> for subheadings
- Use <p> for paragraphs
- Use <ul> and <li> for lists
- Use <strong> for emphasis

Focus on providing accurate, specific content that directly addresses the query.
The response should ONLY contain the HTML content, nothing else.`

// BuildPrompt returns the instruction sent to the provider as the user
// message.
func BuildPrompt(prompt string, isTemplate bool) string {
	if isTemplate {
		return fmt.Sprintf(templatePrompt, prompt)
	}
	return fmt.Sprintf(directPrompt, prompt)
}

// Temperature returns the sampling temperature for a request kind. Templates
// get a little more variety than direct answers.
func Temperature(isTemplate bool) float64 {
	if isTemplate {
		return 0.7
	}
	return 0.5
}

func containsAny(s string, words []string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}
