// Package cli provides styled terminal output and interactive prompts.
package cli

import (
	"fmt"

	"github.com/Veraticus/fintrack/internal/model"
	"github.com/charmbracelet/lipgloss"
)

// Palette. Greens for money coming out fine, amber and red when a budget
// is in trouble.
var (
	PrimaryColor = lipgloss.Color("#2ECC71")
	SuccessColor = lipgloss.Color("#27AE60")
	WarningColor = lipgloss.Color("#F5B041")
	ErrorColor   = lipgloss.Color("#E74C3C")
	InfoColor    = lipgloss.Color("#85C1E9")
	SubtleColor  = lipgloss.Color("#7F8C8D")
)

// Text styles used by the menu and one-shot commands.
var (
	TitleStyle   = lipgloss.NewStyle().Bold(true).Foreground(PrimaryColor).MarginBottom(1)
	SuccessStyle = lipgloss.NewStyle().Foreground(SuccessColor)
	WarningStyle = lipgloss.NewStyle().Foreground(WarningColor).Bold(true)
	ErrorStyle   = lipgloss.NewStyle().Foreground(ErrorColor)
	InfoStyle    = lipgloss.NewStyle().Foreground(InfoColor)
	SubtleStyle  = lipgloss.NewStyle().Foreground(SubtleColor)
	BoldStyle    = lipgloss.NewStyle().Bold(true)
	PromptStyle  = lipgloss.NewStyle().Bold(true).Foreground(PrimaryColor)

	// BoxStyle frames report summaries.
	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(SubtleColor).
			Padding(0, 1)
)

// Icons.
const (
	SuccessIcon = "✓"
	ErrorIcon   = "✗"
	WarningIcon = "⚠️"
	InfoIcon    = "ℹ️"
	WalletIcon  = "💰"
	ChartIcon   = "📊"
)

// FormatSuccess prefixes message with a check mark.
func FormatSuccess(message string) string {
	return SuccessStyle.Render(SuccessIcon + " " + message)
}

func FormatError(message string) string {
	return ErrorStyle.Render(ErrorIcon + " " + message)
}

func FormatWarning(message string) string {
	return WarningStyle.Render(WarningIcon + " " + message)
}

func FormatInfo(message string) string {
	return InfoStyle.Render(InfoIcon + " " + message)
}

// FormatTitle formats a title with the wallet icon.
func FormatTitle(title string) string {
	return TitleStyle.Render(WalletIcon + " " + title)
}

// FormatPrompt formats a prompt message.
func FormatPrompt(prompt string) string {
	return PromptStyle.Render(prompt + ": ")
}

// FormatAmount renders a money amount with two decimals.
func FormatAmount(amount float64) string {
	return fmt.Sprintf("%.2f", amount)
}

// FormatAlert renders a budget alert as a single outcome line.
func FormatAlert(alert model.BudgetAlert) string {
	switch alert.Status {
	case model.AlertExceeded:
		return FormatWarning(fmt.Sprintf("%s for %s: spent %s of %s",
			alert.Status, alert.Month, FormatAmount(alert.Total), FormatAmount(alert.Budget.Limit)))
	case model.AlertWithinBudget:
		return FormatSuccess(fmt.Sprintf("%s for %s: spent %s of %s, %s left",
			alert.Status, alert.Month, FormatAmount(alert.Total), FormatAmount(alert.Budget.Limit),
			FormatAmount(alert.Remaining())))
	default:
		return FormatInfo(fmt.Sprintf("%s (%s)", alert.Status, alert.Month))
	}
}

// RenderBox frames content under a title.
func RenderBox(title, content string) string {
	heading := TitleStyle.UnsetMargins().Render(title)
	return BoxStyle.Render(lipgloss.JoinVertical(lipgloss.Left, heading, content))
}
