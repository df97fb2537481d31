package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Palette. Adaptive pairs keep the output readable on both light and dark
// terminals.
var (
	colorAccent = lipgloss.AdaptiveColor{Light: "30", Dark: "36"}
	colorOK     = lipgloss.AdaptiveColor{Light: "28", Dark: "35"}
	colorWarn   = lipgloss.AdaptiveColor{Light: "130", Dark: "220"}
	colorErr    = lipgloss.AdaptiveColor{Light: "124", Dark: "167"}
	colorLink   = lipgloss.AdaptiveColor{Light: "26", Dark: "75"}
	colorFg     = lipgloss.AdaptiveColor{Light: "235", Dark: "255"}
	colorMuted  = lipgloss.AdaptiveColor{Light: "244", Dark: "245"}
	colorFaint  = lipgloss.AdaptiveColor{Light: "250", Dark: "240"}
)

// Styles shared with command implementations.
var (
	StyleTitle     = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	StyleHighlight = lipgloss.NewStyle().Foreground(colorAccent)
	StyleLink      = lipgloss.NewStyle().Foreground(colorLink).Underline(true)
	StyleDim       = lipgloss.NewStyle().Foreground(colorFaint)
	StyleValue     = lipgloss.NewStyle().Foreground(colorFg)
	StyleNumber    = lipgloss.NewStyle().Foreground(colorAccent)
	StyleSuccess   = lipgloss.NewStyle().Foreground(colorOK)
	StyleWarning   = lipgloss.NewStyle().Foreground(colorWarn)
)

var (
	styleIconSuccess = lipgloss.NewStyle().Foreground(colorOK)
	styleIconError   = lipgloss.NewStyle().Foreground(colorErr)
	styleIconWarning = lipgloss.NewStyle().Foreground(colorWarn)
	styleIconInfo    = lipgloss.NewStyle().Foreground(colorMuted)
	styleIconSpinner = lipgloss.NewStyle().Foreground(colorAccent)

	styleCached   = lipgloss.NewStyle().Foreground(colorOK)
	styleComputed = lipgloss.NewStyle().Foreground(colorMuted)
	styleCommand  = lipgloss.NewStyle().Foreground(colorLink)
	styleKey      = lipgloss.NewStyle().Foreground(colorMuted).Width(12)
)

const (
	iconSuccess = "✓"
	iconError   = "×"
	iconWarning = "!"
	iconInfo    = "•"
	iconArrow   = "↳"
	iconCached  = "cached"
	iconFresh   = "computed"
)

func printSuccess(format string, args ...any) {
	fmt.Println(styleIconSuccess.Render(iconSuccess) + " " + fmt.Sprintf(format, args...))
}

func printError(format string, args ...any) {
	fmt.Println(styleIconError.Render(iconError) + " " + fmt.Sprintf(format, args...))
}

func printWarning(format string, args ...any) {
	fmt.Println(styleIconWarning.Render(iconWarning) + " " + StyleWarning.Render(fmt.Sprintf(format, args...)))
}

func printInfo(format string, args ...any) {
	fmt.Println(styleIconInfo.Render(iconInfo) + " " + fmt.Sprintf(format, args...))
}

// printDetail prints an indented secondary line.
func printDetail(format string, args ...any) {
	fmt.Println("  " + StyleDim.Render(fmt.Sprintf(format, args...)))
}

// printFile prints the path of a written artifact.
func printFile(path string) {
	fmt.Println("  " + StyleDim.Render(iconArrow) + " " + StyleValue.Render(path))
}

// printKeyValue prints a labeled value with aligned keys.
func printKeyValue(key, value string) {
	fmt.Println(styleKey.Render(key) + " " + StyleValue.Render(value))
}

// printStats prints a one-line network summary: gate count, logic depth and
// whether the result came from the cache.
func printStats(gateCount, depth int, cached bool) {
	parts := make([]string, 0, 3)
	if gateCount > 0 {
		parts = append(parts, fmt.Sprintf("%d gates", gateCount))
	}
	if depth > 0 {
		parts = append(parts, fmt.Sprintf("depth %d", depth))
	}
	if cached {
		parts = append(parts, styleCached.Render(iconCached))
	} else {
		parts = append(parts, styleComputed.Render(iconFresh))
	}

	sep := StyleDim.Render(" · ")
	for i, p := range parts {
		parts[i] = StyleDim.Render(p)
	}
	fmt.Println("  " + strings.Join(parts, sep))
}

// printNextStep suggests a follow-up command.
func printNextStep(description, cmd string) {
	fmt.Println(StyleDim.Render(description+":") + " " + styleCommand.Render(cmd))
}

// printInline prints a dim message without a trailing newline.
func printInline(format string, args ...any) {
	fmt.Print(StyleDim.Render(fmt.Sprintf(format, args...)))
}

func printNewline() {
	fmt.Println()
}
