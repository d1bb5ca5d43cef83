// Package variants expands a base prompt into the fixed set of prompt-engineering
// variants compared by the playground.
package variants

import "fmt"

// Name identifies one of the fixed prompt variants
type Name string

const (
	ZeroShot         Name = "Zero-Shot"
	FewShot          Name = "Few-Shot"
	ChainOfThought   Name = "Chain-of-Thought"
	RoleBased        Name = "Role-Based"
	StructuredOutput Name = "Structured Output"
	ReversePrompting Name = "Reverse Prompting"
	SocraticMethod   Name = "Socratic Method"
)

const (
	// GeneralUseCase is the sentinel use case that selects the generic expert role
	GeneralUseCase = "general"
	// GeneralRole is the Role-Based role name used for GeneralUseCase
	GeneralRole = "subject matter expert"
	// DefaultExamples fills the Few-Shot variant when no examples are given
	DefaultExamples = "[Example 1]\n[Example 2]\n[Example 3]"
)

// Names returns the variant names in display order
func Names() []Name {
	names := make([]Name, len(templates))
	for i, t := range templates {
		names[i] = t.Name
	}
	return names
}

// Entry is one rendered variant
type Entry struct {
	Name Name
	Text string
}

// Set is an ordered collection of rendered variants
type Set []Entry

// Get returns the rendered text for name
func (s Set) Get(name Name) (string, bool) {
	for _, e := range s {
		if e.Name == name {
			return e.Text, true
		}
	}
	return "", false
}

// Generate renders every variant template for the given input.
// useCase only affects the Role-Based variant; an empty examples string
// selects DefaultExamples.
func Generate(basePrompt, useCase, examples string) Set {
	values := map[string]string{
		KeyBasePrompt: basePrompt,
		KeyExamples:   examplesOrDefault(examples),
		KeyRole:       RoleFor(useCase),
	}

	set := make(Set, 0, len(templates))
	for _, t := range templates {
		text, err := t.render(values)
		if err != nil {
			// Templates are verified at init, so this is a programming error
			panic(fmt.Sprintf("variants: render %s: %v", t.Name, err))
		}
		set = append(set, Entry{Name: t.Name, Text: text})
	}
	return set
}

// RoleFor maps a use case to the Role-Based role name
func RoleFor(useCase string) string {
	if useCase == GeneralUseCase {
		return GeneralRole
	}
	return useCase
}

func examplesOrDefault(examples string) string {
	if examples == "" {
		return DefaultExamples
	}
	return examples
}
