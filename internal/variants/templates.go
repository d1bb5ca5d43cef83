package variants

import (
	"bytes"
	"fmt"
	"text/template"
)

// Placeholder keys available to variant templates
const (
	KeyBasePrompt = "BasePrompt"
	KeyExamples   = "Examples"
	KeyRole       = "Role"
)

// Template is a named prompt template with the set of placeholders it requires
type Template struct {
	Name         Name
	Body         string
	Placeholders []string

	tmpl *template.Template
}

const zeroShotBody = `
{{.BasePrompt}}
`

const fewShotBody = `
{{.BasePrompt}}

Here are a few examples:
{{.Examples}}

Now, apply the same logic to the input above.
`

const chainOfThoughtBody = `
{{.BasePrompt}}

Think step by step:
1. Break down the problem
2. Reason through each part
3. Come to a conclusion

Provide your reasoning and final answer.
`

const roleBasedBody = `
You are an expert {{.Role}}.

{{.BasePrompt}}

Respond in the style and depth appropriate for a {{.Role}}.
`

const structuredOutputBody = `
{{.BasePrompt}}

Please provide your response in the following structured format:
- Summary: [brief summary]
- Key Points: [3-5 bullet points]
- Action Items: [if applicable]
`

const reversePromptingBody = `
Instead of {{.BasePrompt}}, think about what the opposite would be.
Then use that contrast to answer the original question better.

Original: {{.BasePrompt}}

First, explain the opposite perspective, then provide your answer.
`

const socraticBody = `
{{.BasePrompt}}

Use the Socratic method to explore this question:
1. Start by asking clarifying questions
2. Break the problem into smaller parts
3. Guide toward deeper understanding
4. Provide a comprehensive answer
`

// templates is the fixed variant table, in display order
var templates = mustCompile([]Template{
	{Name: ZeroShot, Body: zeroShotBody, Placeholders: []string{KeyBasePrompt}},
	{Name: FewShot, Body: fewShotBody, Placeholders: []string{KeyBasePrompt, KeyExamples}},
	{Name: ChainOfThought, Body: chainOfThoughtBody, Placeholders: []string{KeyBasePrompt}},
	{Name: RoleBased, Body: roleBasedBody, Placeholders: []string{KeyBasePrompt, KeyRole}},
	{Name: StructuredOutput, Body: structuredOutputBody, Placeholders: []string{KeyBasePrompt}},
	{Name: ReversePrompting, Body: reversePromptingBody, Placeholders: []string{KeyBasePrompt}},
	{Name: SocraticMethod, Body: socraticBody, Placeholders: []string{KeyBasePrompt}},
})

// Templates returns a copy of the variant table
func Templates() []Template {
	out := make([]Template, len(templates))
	copy(out, templates)
	return out
}

func mustCompile(table []Template) []Template {
	for i := range table {
		t, err := template.New(string(table[i].Name)).
			Option("missingkey=error").
			Parse(table[i].Body)
		if err != nil {
			panic(fmt.Sprintf("variants: parse %s: %v", table[i].Name, err))
		}
		table[i].tmpl = t

		// Every template must render with exactly its declared placeholders
		probe := make(map[string]string, len(table[i].Placeholders))
		for _, key := range table[i].Placeholders {
			probe[key] = key
		}
		if _, err := table[i].render(probe); err != nil {
			panic(fmt.Sprintf("variants: %s: %v", table[i].Name, err))
		}
	}
	return table
}

// render executes the template with only the placeholders it declares
func (t Template) render(values map[string]string) (string, error) {
	data := make(map[string]string, len(t.Placeholders))
	for _, key := range t.Placeholders {
		v, ok := values[key]
		if !ok {
			return "", fmt.Errorf("missing placeholder %q", key)
		}
		data[key] = v
	}

	var buf bytes.Buffer
	if err := t.tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}
	return buf.String(), nil
}
