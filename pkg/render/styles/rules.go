package styles

import (
	"fmt"
	"strings"

	"github.com/samber/lo"
)

// Action is an element a renderer may draw inside a cell.
type Action string

const (
	ActionLabel Action = "label" // category or subcategory name
	ActionValue Action = "value" // formatted monetary total
	ActionShare Action = "share" // percentage of the grand total
)

// Actions lists every known action in drawing order.
var Actions = []Action{ActionLabel, ActionValue, ActionShare}

// MinVisible is the smallest side, in output units, that can hold any text.
// Cells below it are never labelled whatever the rules say.
const MinVisible = 1.0

// Rule enables Action for cells at least MinWidth wide and MinHeight tall.
type Rule struct {
	MinWidth  float64 `toml:"min_width" json:"min_width" validate:"gte=0"`
	MinHeight float64 `toml:"min_height" json:"min_height" validate:"gte=0"`
	Action    Action  `toml:"action" json:"action" validate:"required,oneof=label value share"`
}

// Fits reports whether a w×h cell satisfies the rule's size thresholds.
func (r Rule) Fits(w, h float64) bool {
	return w >= r.MinWidth && h >= r.MinHeight
}

// Rules is a size-threshold table deciding which elements a cell shows.
// A cell shows an action when any rule for that action fits it.
type Rules []Rule

// DefaultRules returns the thresholds used when none are configured.
func DefaultRules() Rules {
	return Rules{
		{MinWidth: 36, MinHeight: 14, Action: ActionLabel},
		{MinWidth: 56, MinHeight: 30, Action: ActionValue},
		{MinWidth: 72, MinHeight: 46, Action: ActionShare},
	}
}

// Allows reports whether a cell of size w×h may show action.
func (rs Rules) Allows(action Action, w, h float64) bool {
	if w < MinVisible || h < MinVisible {
		return false
	}
	return lo.ContainsBy(rs, func(r Rule) bool {
		return r.Action == action && r.Fits(w, h)
	})
}

// Visible returns the actions a w×h cell may show, in [Actions] order.
func (rs Rules) Visible(w, h float64) []Action {
	return lo.Filter(Actions, func(a Action, _ int) bool { return rs.Allows(a, w, h) })
}

// ParseAction converts a case-insensitive action name.
func ParseAction(s string) (Action, error) {
	a := Action(strings.ToLower(strings.TrimSpace(s)))
	if !lo.Contains(Actions, a) {
		return "", fmt.Errorf("unknown action %q (valid: label, value, share)", s)
	}
	return a, nil
}
