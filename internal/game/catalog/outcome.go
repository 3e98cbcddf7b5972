package catalog

import "github.com/magefree/mage-tale-go/internal/game/cards"

// AttributeChange is an additive delta applied to one attribute.
type AttributeChange struct {
	Key   string `json:"key" yaml:"key"`
	Value int    `json:"value" yaml:"value"`
}

// Result is one branch of an outcome.
type Result struct {
	Narration   string            `json:"narration" yaml:"narration"`
	Attributes  []AttributeChange `json:"attributes,omitempty" yaml:"attributes"`
	ItemsGained []string          `json:"items_gained,omitempty" yaml:"items_gained"`
	ItemsLost   []string          `json:"items_lost,omitempty" yaml:"items_lost"`
}

// Outcome pairs a success and a failure result behind attribute requirements.
// An outcome without requirements always succeeds.
type Outcome struct {
	ID           string              `json:"id" yaml:"id"`
	Requirements []cards.Requirement `json:"requirements,omitempty" yaml:"requirements"`
	Success      Result              `json:"success" yaml:"success"`
	Failure      Result              `json:"failure" yaml:"failure"`
}

// Select returns the success result when passed, the failure result otherwise.
func (o Outcome) Select(passed bool) Result {
	if passed {
		return o.Success
	}
	return o.Failure
}

// Clone returns a deep copy of the result.
func (r Result) Clone() Result {
	cpy := r
	if r.Attributes != nil {
		cpy.Attributes = append([]AttributeChange(nil), r.Attributes...)
	}
	if r.ItemsGained != nil {
		cpy.ItemsGained = append([]string(nil), r.ItemsGained...)
	}
	if r.ItemsLost != nil {
		cpy.ItemsLost = append([]string(nil), r.ItemsLost...)
	}
	return cpy
}

// Clone returns a deep copy of the outcome.
func (o Outcome) Clone() Outcome {
	cpy := o
	if o.Requirements != nil {
		cpy.Requirements = append([]cards.Requirement(nil), o.Requirements...)
	}
	cpy.Success = o.Success.Clone()
	cpy.Failure = o.Failure.Clone()
	return cpy
}

// Catalog is the read-only content lookup consulted when resolving choices.
type Catalog interface {
	Outcome(id string) (Outcome, bool)
	Item(id string) (cards.Item, bool)
}
