package variants

// Descriptor is the static comparison-table entry for a variant
type Descriptor struct {
	UseCase    string `json:"use_case"`
	Complexity string `json:"complexity"`
	BestFor    string `json:"best_for"`
}

var descriptors = map[Name]Descriptor{
	ZeroShot:         {UseCase: "Direct answers", Complexity: "Low", BestFor: "Quick responses"},
	FewShot:          {UseCase: "Learning from examples", Complexity: "Medium", BestFor: "Consistent formats"},
	ChainOfThought:   {UseCase: "Complex reasoning", Complexity: "High", BestFor: "Deep analysis"},
	RoleBased:        {UseCase: "Specialized expertise", Complexity: "Medium", BestFor: "Domain-specific answers"},
	StructuredOutput: {UseCase: "Organized responses", Complexity: "Medium", BestFor: "Data extraction"},
	ReversePrompting: {UseCase: "Creative thinking", Complexity: "High", BestFor: "Problem-solving"},
	SocraticMethod:   {UseCase: "Learning & exploration", Complexity: "High", BestFor: "Educational content"},
}

// Describe returns the comparison descriptor for a variant
func Describe(name Name) (Descriptor, bool) {
	d, ok := descriptors[name]
	return d, ok
}

// UseCases are the options offered by the interactive surfaces, default first
var UseCases = []string{
	"General",
	"Code generation",
	"Creative writing",
	"Data analysis",
	"Customer support",
	"Education",
	"Research",
	"Brainstorming",
}

// IsKnownUseCase reports whether useCase is one of UseCases or the GeneralUseCase sentinel
func IsKnownUseCase(useCase string) bool {
	if useCase == GeneralUseCase {
		return true
	}
	for _, u := range UseCases {
		if u == useCase {
			return true
		}
	}
	return false
}
