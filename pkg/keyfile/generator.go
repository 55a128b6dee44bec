package keyfile

import (
	"fmt"
	"regexp"
	"slices"
	"strings"
	"time"

	"github.com/sto-tools/sto-tools-keybind-manager-sub008/pkg/chain"
	"github.com/sto-tools/sto-tools-keybind-manager-sub008/pkg/domain"
)

const rule = "; ================================================================"

// Options controls file generation.
type Options struct {
	// Environment selects the build; defaults to the profile's current
	// environment, then to space.
	Environment string
	// Bindset selects a named bindset; empty means the primary bindset.
	Bindset string
	// FileName is used in the load hint; derived from the profile name when empty.
	FileName string
	// Grouped emits one labeled section per key class.
	Grouped bool
	// Now supplies the generation time; defaults to time.Now.
	Now func() time.Time
}

func (o Options) environment(p *domain.Profile) string {
	if o.Environment != "" {
		return o.Environment
	}
	if p.CurrentEnvironment != "" {
		return p.CurrentEnvironment
	}
	return domain.EnvironmentSpace
}

func (o Options) now() time.Time {
	if o.Now != nil {
		return o.Now()
	}
	return time.Now()
}

var unsafeFileChars = regexp.MustCompile(`[^A-Za-z0-9_-]+`)

// FileName derives the default output file name for a profile and suffix.
func FileName(profileName, suffix string) string {
	base := strings.Trim(unsafeFileChars.ReplaceAllString(profileName, "_"), "_")
	if base == "" {
		base = "profile"
	}
	return fmt.Sprintf("%s_%s.txt", base, suffix)
}

// Generate renders the keybind file of one environment of a profile.
func Generate(p *domain.Profile, opts Options) string {
	env := opts.environment(p)
	fileName := opts.FileName
	if fileName == "" {
		fileName = FileName(p.Name, env)
	}

	var b strings.Builder
	writeHeader(&b, "Keybind File", p, env, opts, fileName)

	keys := SortedKeys(p.Keys(env, opts.Bindset))
	lastClass := KeyClass(-1)
	for _, key := range keys {
		line, ok := chain.Line(EncodeKey(key), p.Keys(env, opts.Bindset)[key], p.Stabilized(env, opts.Bindset, key))
		if !ok {
			continue
		}
		if opts.Grouped {
			if class := Classify(key); class != lastClass {
				if lastClass >= 0 {
					b.WriteString("\n")
				}
				fmt.Fprintf(&b, "; --- %s ---\n", class.Label())
				lastClass = class
			}
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	writeFooter(&b, "keybind file")
	return b.String()
}

// Unquotable lists, in output order, the keys Generate omits because a
// command in their chain contains a double quote.
func Unquotable(p *domain.Profile, opts Options) []string {
	env := opts.environment(p)
	keys := p.Keys(env, opts.Bindset)
	var out []string
	for _, key := range SortedKeys(keys) {
		if !chain.Quotable(keys[key]) {
			out = append(out, key)
		}
	}
	return out
}

// GenerateAliases renders the alias file of a profile.
func GenerateAliases(p *domain.Profile, opts Options) string {
	fileName := opts.FileName
	if fileName == "" {
		fileName = FileName(p.Name, "aliases")
	}

	var b strings.Builder
	writeHeader(&b, "Alias File", p, domain.EnvironmentAlias, opts, fileName)

	names := make([]string, 0, len(p.Aliases))
	for name := range p.Aliases {
		names = append(names, name)
	}
	slices.SortFunc(names, func(a, b string) int {
		return strings.Compare(strings.ToLower(a), strings.ToLower(b))
	})

	for _, name := range names {
		alias := p.Aliases[name]
		if desc := singleLine(alias.Description); desc != "" {
			fmt.Fprintf(&b, "; %s\n", desc)
		}
		b.WriteString(chain.AliasLine(name, alias.Commands, p.AliasStabilized(name)))
		b.WriteString("\n")
	}

	writeFooter(&b, "alias file")
	return b.String()
}

// SortedKeys returns the keys of m in file order.
func SortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, CompareKeys)
	return keys
}

func writeHeader(b *strings.Builder, title string, p *domain.Profile, env string, opts Options, fileName string) {
	fmt.Fprintln(b, rule)
	fmt.Fprintf(b, "; STO %s\n", title)
	fmt.Fprintln(b, rule)
	fmt.Fprintf(b, "; Profile: %s\n", singleLine(p.Name))
	if desc := singleLine(p.Description); desc != "" {
		fmt.Fprintf(b, "; Description: %s\n", desc)
	}
	fmt.Fprintf(b, "; Environment: %s\n", env)
	if opts.Bindset != "" && opts.Bindset != domain.PrimaryBindset {
		fmt.Fprintf(b, "; Bindset: %s\n", opts.Bindset)
	}
	fmt.Fprintf(b, "; Generated: %s\n", opts.now().UTC().Format(time.RFC3339))
	fmt.Fprintln(b, ";")
	fmt.Fprintln(b, "; To load this file in game, type:")
	fmt.Fprintf(b, "; /bind_load_file %s\n", fileName)
	fmt.Fprintln(b, rule)
	fmt.Fprintln(b)
}

func writeFooter(b *strings.Builder, what string) {
	fmt.Fprintln(b)
	fmt.Fprintln(b, rule)
	fmt.Fprintf(b, "; End of %s\n", what)
	fmt.Fprintln(b, rule)
}

func singleLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
