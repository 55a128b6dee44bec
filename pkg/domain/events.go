package domain

// LineKind is the closed set of classifications for a keybind file line.
type LineKind string

const (
	LineBlank   LineKind = "blank"
	LineComment LineKind = "comment"
	LineAlias   LineKind = "alias"
	LineKeybind LineKind = "keybind"
	LineBind    LineKind = "bind"
	LineInvalid LineKind = "error"
)

// NormalizeWarning describes an input the normalizer could not interpret.
type NormalizeWarning struct {
	Reason string
	Input  any
}

// MigrationEvent reports one migration applied to a profile.
type MigrationEvent struct {
	From      string
	To        string
	Migration MigrationID
}

// Hooks defines optional callbacks for engine observability.
// Nil callbacks are skipped.
type Hooks struct {
	OnLineParsed       func(kind LineKind, lineNumber int)
	OnParseError       func(err LineError)
	OnNormalizeWarning func(w NormalizeWarning)
	OnMigrationApplied func(e MigrationEvent)
}

// LineParsed invokes OnLineParsed when set.
func (h Hooks) LineParsed(kind LineKind, lineNumber int) {
	if h.OnLineParsed != nil {
		h.OnLineParsed(kind, lineNumber)
	}
}

// ParseError invokes OnParseError when set.
func (h Hooks) ParseError(err LineError) {
	if h.OnParseError != nil {
		h.OnParseError(err)
	}
}

// NormalizeWarned invokes OnNormalizeWarning when set.
func (h Hooks) NormalizeWarned(w NormalizeWarning) {
	if h.OnNormalizeWarning != nil {
		h.OnNormalizeWarning(w)
	}
}

// MigrationApplied invokes OnMigrationApplied when set.
func (h Hooks) MigrationApplied(e MigrationEvent) {
	if h.OnMigrationApplied != nil {
		h.OnMigrationApplied(e)
	}
}

// Merge returns hooks that call h first and then other.
func (h Hooks) Merge(other Hooks) Hooks {
	return Hooks{
		OnLineParsed: func(kind LineKind, lineNumber int) {
			h.LineParsed(kind, lineNumber)
			other.LineParsed(kind, lineNumber)
		},
		OnParseError: func(err LineError) {
			h.ParseError(err)
			other.ParseError(err)
		},
		OnNormalizeWarning: func(w NormalizeWarning) {
			h.NormalizeWarned(w)
			other.NormalizeWarned(w)
		},
		OnMigrationApplied: func(e MigrationEvent) {
			h.MigrationApplied(e)
			other.MigrationApplied(e)
		},
	}
}
