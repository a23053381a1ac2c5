package widget

import (
	"github.com/drakos74/polyclass/internal/data"
)

const (
	outcomeOK             = "ok"
	outcomeNoData         = "no-data"
	outcomeTooFew         = "too-few-continuous"
	outcomeNoClass        = "no-class"
	outcomeTooManyClasses = "too-many-classes"
)

// validate checks the dataset can be plotted and returns the outcome with the warning to show, if any.
func validate(t *data.Table) (string, string) {
	if t == nil || t.Len() == 0 {
		return outcomeNoData, ""
	}
	if len(t.Domain.Continuous()) < 2 {
		return outcomeTooFew, MsgTooFewContinuous
	}
	if t.Domain.Class == nil {
		return outcomeNoClass, MsgNoClass
	}
	switch t.Domain.Class.Kind {
	case data.Discrete:
		if len(t.Domain.Class.Values) > 2 {
			return outcomeTooManyClasses, MsgTooManyClasses
		}
		return outcomeOK, ""
	case data.Continuous, data.Other:
		// classes can only be told apart by a discrete attribute
		return outcomeNoClass, MsgNoClass
	}
	return outcomeNoClass, MsgNoClass
}
