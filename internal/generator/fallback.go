// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package generator

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"
)

var genericInstructionsTmpl = template.Must(template.New("instructions").Parse(
	`<h1>Final Instructions: {{.Prompt}}</h1>
<p>Here are my thoughts and instructions regarding {{.Prompt}}:</p>
<p>I want to ensure that my wishes are clear and that this information helps guide those handling my affairs when I'm no longer able to do so.</p>
<p>Please consider these instructions carefully and consult with appropriate professionals if needed.</p>
<p>If you have any questions about these instructions, please contact [trusted person/executor] for clarification.</p>
<p>Sincerely,<br>{{.Name}}</p>`))

var genericAdviceTmpl = template.Must(template.New("advice").Parse(
	`<h1>Response to: {{.Prompt}}</h1>
<p>When preparing end-of-life documents and instructions, it's important to be clear, specific, and comprehensive. Consider consulting with qualified professionals such as estate attorneys, financial advisors, or grief counselors depending on the specific aspects of your planning.</p>
<p>Documents should be stored securely but accessibly by your executor or trusted individuals. Many people keep copies with their attorney, in a fireproof safe, and with a trusted family member.</p>
<p>Regularly review and update your instructions as your circumstances, relationships, and wishes change over time.</p>`))

// Fallback builds content without a provider. Non-template prompts get an
// advisory document; template prompts get the first matching catalog entry,
// or a generic instructions letter when nothing matches.
func Fallback(prompt string, isTemplate bool, name string) (string, error) {
	if !isTemplate {
		return directResponse(prompt)
	}

	if e, ok := MatchTemplate(prompt); ok {
		return SubstituteName(e.Body, name), nil
	}

	if strings.TrimSpace(name) == "" {
		name = Placeholder
	}
	return render(genericInstructionsTmpl, prompt, name)
}

func directResponse(prompt string) (string, error) {
	lower := strings.ToLower(prompt)
	for _, d := range directResponses {
		if containsAny(lower, d.keywords) {
			return d.body, nil
		}
	}
	return render(genericAdviceTmpl, prompt, "")
}

func render(t *template.Template, prompt, name string) (string, error) {
	var buf bytes.Buffer
	data := struct{ Prompt, Name string }{Prompt: prompt, Name: name}
	if err := t.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("%w: render %s: %v", ErrInternal, t.Name(), err)
	}
	return buf.String(), nil
}
