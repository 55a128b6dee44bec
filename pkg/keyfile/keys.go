package keyfile

import (
	"cmp"
	"strconv"
	"strings"
)

// KeyClass groups keys for ordering and for the optional section layout.
type KeyClass int

const (
	ClassFunction KeyClass = iota
	ClassDigit
	ClassLetter
	ClassNamed
	ClassCombination
)

// Label is the section heading used by grouped output.
func (c KeyClass) Label() string {
	switch c {
	case ClassFunction:
		return "Function Keys"
	case ClassDigit:
		return "Number Keys"
	case ClassLetter:
		return "Letter Keys"
	case ClassNamed:
		return "Special Keys"
	default:
		return "Modifier Combinations"
	}
}

// modifiers lists recognized modifiers in canonical order.
var modifiers = []string{"Ctrl", "LCTRL", "RCTRL", "Alt", "LALT", "RALT", "Shift", "LSHIFT", "RSHIFT"}

var modifierAliases = map[string]string{
	"ctrl":    "Ctrl",
	"control": "Ctrl",
	"lctrl":   "LCTRL",
	"rctrl":   "RCTRL",
	"alt":     "Alt",
	"lalt":    "LALT",
	"ralt":    "RALT",
	"shift":   "Shift",
	"lshift":  "LSHIFT",
	"rshift":  "RSHIFT",
}

// namedKeys fixes both the canonical spelling and the output order of
// non-alphanumeric keys.
var namedKeys = []string{
	"Space", "Tab", "Enter", "Backspace", "Escape",
	"Up", "Down", "Left", "Right",
	"Insert", "Delete", "Home", "End", "PageUp", "PageDown",
	"numpad0", "numpad1", "numpad2", "numpad3", "numpad4",
	"numpad5", "numpad6", "numpad7", "numpad8", "numpad9",
	"Add", "Subtract", "Multiply", "Divide", "Decimal", "numpadenter",
	"Lbutton", "Rbutton", "Mbutton", "Button4", "Button5",
	"Leftdrag", "Rightdrag", "Middleclick", "Wheelplus", "Wheelminus",
	"`", "-", "=", "[", "]", "\\", ";", "'", ",", ".", "/",
}

var (
	namedRank     = make(map[string]int, len(namedKeys))
	namedSpelling = make(map[string]string, len(namedKeys))
	modifierRank  = make(map[string]int, len(modifiers))
)

func init() {
	for i, k := range namedKeys {
		namedRank[k] = i
		namedSpelling[strings.ToLower(k)] = k
	}
	for i, m := range modifiers {
		modifierRank[m] = i
	}
}

// DecodeKey converts a key token as written in a file into its logical name:
// modifiers and known keys get canonical spelling, letters are upper-cased,
// and modifiers are put in canonical order. Unknown keys pass through.
func DecodeKey(raw string) string {
	raw = strings.TrimSpace(raw)
	parts := splitKey(raw)
	if len(parts) == 0 {
		return raw
	}

	var mods []string
	base := ""
	for i, part := range parts {
		if m, ok := modifierAliases[strings.ToLower(part)]; ok && i < len(parts)-1 {
			mods = append(mods, m)
			continue
		}
		base = decodeBase(part)
	}
	sortModifiers(mods)
	return strings.Join(append(dedupe(mods), base), "+")
}

// EncodeKey renders a logical key name for output. Logical names are valid
// file tokens, so encoding only canonicalizes.
func EncodeKey(key string) string {
	return DecodeKey(key)
}

func splitKey(raw string) []string {
	if raw == "" {
		return nil
	}
	if raw == "+" {
		return []string{"+"}
	}
	trailingPlus := strings.HasSuffix(raw, "++")
	// A single trailing "+" separates only after a modifier ("Ctrl+");
	// otherwise it belongs to the key name ("numpad+").
	literalPlus := !trailingPlus && strings.HasSuffix(raw, "+")
	if trailingPlus || literalPlus {
		raw = strings.TrimSuffix(raw, "+")
	}
	parts := strings.Split(raw, "+")
	if trailingPlus {
		parts[len(parts)-1] = "+"
	}
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if literalPlus && len(out) > 0 {
		last := out[len(out)-1]
		if _, isModifier := modifierAliases[strings.ToLower(last)]; !isModifier {
			out[len(out)-1] = last + "+"
		}
	}
	return out
}

func decodeBase(part string) string {
	lower := strings.ToLower(part)
	if m, ok := modifierAliases[lower]; ok {
		return m
	}
	if name, ok := namedSpelling[lower]; ok {
		return name
	}
	if n, ok := functionNumber(part); ok {
		return "F" + strconv.Itoa(n)
	}
	if len(part) == 1 {
		return strings.ToUpper(part)
	}
	return part
}

func sortModifiers(mods []string) {
	for i := 1; i < len(mods); i++ {
		for j := i; j > 0 && modifierRank[mods[j]] < modifierRank[mods[j-1]]; j-- {
			mods[j], mods[j-1] = mods[j-1], mods[j]
		}
	}
}

func dedupe(sorted []string) []string {
	out := sorted[:0]
	for i, m := range sorted {
		if i == 0 || m != sorted[i-1] {
			out = append(out, m)
		}
	}
	return out
}

func functionNumber(key string) (int, bool) {
	if len(key) < 2 || (key[0] != 'F' && key[0] != 'f') {
		return 0, false
	}
	n, err := strconv.Atoi(key[1:])
	if err != nil || n < 1 || n > 24 {
		return 0, false
	}
	return n, true
}

// Classify returns the class of a logical key name.
func Classify(key string) KeyClass {
	mods, base := splitModifiers(key)
	if len(mods) > 0 {
		return ClassCombination
	}
	return baseClass(base)
}

func baseClass(base string) KeyClass {
	if _, ok := functionNumber(base); ok {
		return ClassFunction
	}
	if len(base) == 1 {
		switch c := base[0]; {
		case c >= '0' && c <= '9':
			return ClassDigit
		case c >= 'A' && c <= 'Z', c >= 'a' && c <= 'z':
			return ClassLetter
		}
	}
	return ClassNamed
}

func splitModifiers(key string) ([]string, string) {
	decoded := DecodeKey(key)
	parts := splitKey(decoded)
	if len(parts) <= 1 {
		return nil, decoded
	}
	return parts[:len(parts)-1], parts[len(parts)-1]
}

// CompareKeys orders keys: function keys numerically, digits, letters, named
// keys (known keys in table order, then the rest alphabetically), and finally
// modifier combinations grouped by modifier set and then by their base key.
func CompareKeys(a, b string) int {
	modsA, baseA := splitModifiers(a)
	modsB, baseB := splitModifiers(b)
	classA, classB := Classify(a), Classify(b)
	if c := cmp.Compare(classA, classB); c != 0 {
		return c
	}
	if classA == ClassCombination {
		if c := compareModifierSets(modsA, modsB); c != 0 {
			return c
		}
		if c := cmp.Compare(baseClass(baseA), baseClass(baseB)); c != 0 {
			return c
		}
	}
	return compareBase(baseA, baseB)
}

func compareModifierSets(a, b []string) int {
	if c := cmp.Compare(len(a), len(b)); c != 0 {
		return c
	}
	for i := range a {
		if c := cmp.Compare(modifierRank[a[i]], modifierRank[b[i]]); c != 0 {
			return c
		}
	}
	return 0
}

func compareBase(a, b string) int {
	if na, ok := functionNumber(a); ok {
		if nb, ok := functionNumber(b); ok {
			return cmp.Compare(na, nb)
		}
	}
	ra, okA := namedRank[a]
	rb, okB := namedRank[b]
	switch {
	case okA && okB:
		return cmp.Compare(ra, rb)
	case okA:
		return -1
	case okB:
		return 1
	}
	if c := cmp.Compare(strings.ToLower(a), strings.ToLower(b)); c != 0 {
		return c
	}
	return cmp.Compare(a, b)
}
