// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package docgen

import (
	"bytes"
	"text/template"
)

// docPromptTmpl is the instruction sent to the completion API for each
// source file. The file name and content are embedded verbatim.
var docPromptTmpl = template.Must(template.New("doc").Parse(`You are a senior Data Engineer writing internal documentation.

Analyze this source file and describe:
1. Overall purpose
2. Key logic and data flow
3. Functions and libraries used
4. Inputs / Outputs
5. A 2-line summary for documentation.

Return the answer as HTML in Confluence storage format, ready to be used directly as a Confluence page body. Use headings, paragraphs, lists and tables with clear, attractive styling.
Do not use blockquotes or markdown formatting, and do not wrap the answer in code fences.
Do not include any introductory or closing remarks such as "Here's the structured HTML documentation for the provided script"; return only the page body.

Script name: {{.Name}}
Code:
{{.Content}}
`))

// RenderPrompt executes the documentation prompt for one file.
func RenderPrompt(name, content string) (string, error) {
	var buf bytes.Buffer
	data := struct{ Name, Content string }{Name: name, Content: content}
	if err := docPromptTmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
