// Package components holds the server-rendered UI fragments swapped in by
// HTMX.
package components

import twmerge "github.com/Oudwins/tailwind-merge-go"

type Variant string

const (
	VariantSuccess Variant = "success"
	VariantError   Variant = "error"
	VariantWarning Variant = "warning"
	VariantInfo    Variant = "info"
)

// ParseVariant maps form values onto a Variant; "destructive" is an alias
// for error and anything unknown is success.
func ParseVariant(s string) Variant {
	switch s {
	case "error", "destructive":
		return VariantError
	case "warning":
		return VariantWarning
	case "info":
		return VariantInfo
	}
	return VariantSuccess
}

type Position string

const (
	PositionBottomRight Position = "bottom-right"
	PositionTopCenter   Position = "top-center"
)

type ToastProps struct {
	Title       string
	Description string
	Variant     Variant
	Position    Position
	// Duration in milliseconds before the toast dismisses itself; zero keeps
	// it on screen.
	Duration    int
	Dismissible bool
	Class       string
}

var variantClasses = map[Variant]string{
	VariantSuccess: "border-green-500 bg-green-50 text-green-900",
	VariantError:   "border-red-500 bg-red-50 text-red-900",
	VariantWarning: "border-yellow-500 bg-yellow-50 text-yellow-900",
	VariantInfo:    "border-blue-500 bg-blue-50 text-blue-900",
}

var positionClasses = map[Position]string{
	PositionBottomRight: "bottom-4 right-4",
	PositionTopCenter:   "top-4 left-1/2 -translate-x-1/2",
}

func (p ToastProps) variant() Variant {
	if p.Variant == "" {
		return VariantSuccess
	}
	return p.Variant
}

func (p ToastProps) class() string {
	pos := p.Position
	if pos == "" {
		pos = PositionBottomRight
	}
	return twmerge.Merge(
		"fixed z-50 w-80 rounded-md border-l-4 p-4 shadow-lg",
		positionClasses[pos],
		variantClasses[p.variant()],
		p.Class,
	)
}
