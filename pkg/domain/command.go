package domain

import "regexp"

// ChainSplitPattern matches the chain delimiter with any surrounding whitespace.
var ChainSplitPattern = regexp.MustCompile(`\s*\$\$\s*`)

// Category is a cosmetic display classification of a command.
// It never affects serialization.
type Category string

const (
	CategoryTray          Category = "tray"
	CategoryCommunication Category = "communication"
	CategoryPower         Category = "power"
	CategoryMovement      Category = "movement"
	CategoryCamera        Category = "camera"
	CategoryCombat        Category = "combat"
	CategoryTargeting     Category = "targeting"
	CategorySystem        Category = "system"
	CategoryCustom        Category = "custom"
)

// Command is a CommandToken together with its display category.
type Command struct {
	Token    string   `json:"command" yaml:"command"`
	Category Category `json:"category" yaml:"category"`
}

// Tokens extracts the plain tokens of a command list, preserving order.
func Tokens(cmds []Command) []string {
	out := make([]string, 0, len(cmds))
	for _, c := range cmds {
		out = append(out, c.Token)
	}
	return out
}
