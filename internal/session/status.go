package session

// IndicatorKind enumerates per-item indicator variants.
type IndicatorKind int

// Indicator kinds.
const (
	IndicatorNone IndicatorKind = iota
	IndicatorSpinner
	IndicatorText
	IndicatorSuccess
	IndicatorError
	IndicatorWarning
)

// Indicator is a per-item progress or result marker rendered next to
// the item text. Color is a theme color name and only meaningful for
// IndicatorText.
type Indicator struct {
	Kind  IndicatorKind
	Text  string
	Color string
}

// SpinnerIndicator returns an animated spinner indicator.
func SpinnerIndicator() Indicator {
	return Indicator{Kind: IndicatorSpinner}
}

// TextIndicator returns a plain text indicator.
func TextIndicator(text string) Indicator {
	return Indicator{Kind: IndicatorText, Text: text}
}

// ColoredTextIndicator returns a text indicator in the named theme color.
func ColoredTextIndicator(text, color string) Indicator {
	return Indicator{Kind: IndicatorText, Text: text, Color: color}
}

// SuccessIndicator returns the success check mark.
func SuccessIndicator() Indicator {
	return Indicator{Kind: IndicatorSuccess}
}

// ErrorIndicator returns the failure cross mark.
func ErrorIndicator() Indicator {
	return Indicator{Kind: IndicatorError}
}

// WarningIndicator returns the warning mark.
func WarningIndicator() Indicator {
	return Indicator{Kind: IndicatorWarning}
}

// StatusKind enumerates global status line variants.
type StatusKind int

// Status kinds.
const (
	StatusHidden StatusKind = iota
	StatusLoading
	StatusReady
	StatusCustom
)

// GlobalStatus is the session-wide status line under the prompt.
// Spinner requests an animated spinner prefix for custom statuses;
// loading statuses always animate.
type GlobalStatus struct {
	Kind    StatusKind
	Message string
	Spinner bool
}

// Loading returns an animated loading status with an optional message.
func Loading(message string) GlobalStatus {
	return GlobalStatus{Kind: StatusLoading, Message: message, Spinner: true}
}

// Ready returns a static ready status with an optional message.
func Ready(message string) GlobalStatus {
	return GlobalStatus{Kind: StatusReady, Message: message}
}

// CustomStatus returns a caller-controlled status line.
func CustomStatus(message string, spinner bool) GlobalStatus {
	return GlobalStatus{Kind: StatusCustom, Message: message, Spinner: spinner}
}

// HiddenStatus returns a status that renders nothing.
func HiddenStatus() GlobalStatus {
	return GlobalStatus{Kind: StatusHidden}
}
