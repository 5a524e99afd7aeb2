package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"text/tabwriter"

	"github.com/Veraticus/fintrack/internal/common"
	"github.com/Veraticus/fintrack/internal/model"
	"github.com/Veraticus/fintrack/internal/service"
)

// MenuTitle heads the action list.
const MenuTitle = "Personal Finance Tracker"

// Action is one entry of the interactive menu.
type Action int

// Menu actions, in display order.
const (
	ActionAddCategory Action = iota
	ActionAddExpense
	ActionUpdateExpense
	ActionDeleteExpense
	ActionSearchByDate
	ActionCategoryReport
	ActionSetBudget
	ActionBudgetAlert
	ActionExit
)

var actionLabels = [...]string{
	ActionAddCategory:    "Add category",
	ActionAddExpense:     "Add expense",
	ActionUpdateExpense:  "Update expense",
	ActionDeleteExpense:  "Delete expense",
	ActionSearchByDate:   "Search expenses by date",
	ActionCategoryReport: "Category report",
	ActionSetBudget:      "Set monthly budget",
	ActionBudgetAlert:    "Check budget alert",
	ActionExit:           "Exit",
}

func (a Action) String() string {
	if a < 0 || int(a) >= len(actionLabels) {
		return fmt.Sprintf("Action(%d)", int(a))
	}
	return actionLabels[a]
}

// MenuLabels returns the labels of all actions in display order.
func MenuLabels() []string {
	return actionLabels[:]
}

// Chooser picks one of the menu labels and returns its index.
type Chooser interface {
	Choose(ctx context.Context, title string, items []string) (int, error)
}

// Menu runs the interactive action loop against a ledger.
type Menu struct {
	ledger   service.Ledger
	prompter *Prompter
	chooser  Chooser
	writer   io.Writer
}

// MenuOption configures a Menu.
type MenuOption func(*Menu)

// WithChooser replaces the typed-number action picker.
func WithChooser(c Chooser) MenuOption {
	return func(m *Menu) {
		m.chooser = c
	}
}

// NewMenu creates a menu reading from reader and printing to writer.
func NewMenu(ledger service.Ledger, reader io.Reader, writer io.Writer, opts ...MenuOption) *Menu {
	prompter := NewPrompter(reader, writer)
	m := &Menu{
		ledger:   ledger,
		prompter: prompter,
		chooser:  prompter,
		writer:   prompter.writer,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Run loops until Exit is chosen or input ends. Storage failures end the
// loop and are returned; not-found and validation outcomes are printed.
func (m *Menu) Run(ctx context.Context) error {
	for {
		idx, err := m.chooser.Choose(ctx, MenuTitle, MenuLabels())
		if err != nil {
			return endOfInput(err)
		}

		action := Action(idx)
		if action == ActionExit {
			m.println(FormatInfo("Goodbye!"))
			return nil
		}

		slog.Debug("Menu action selected", "action", action.String())

		if err := m.Perform(ctx, action); err != nil {
			switch {
			case errors.Is(err, ErrInputCancelled), errors.Is(err, io.EOF):
				return endOfInput(err)
			case errors.Is(err, common.ErrValidation):
				m.println(FormatError(err.Error()))
			default:
				return fmt.Errorf("%s: %w", strings.ToLower(action.String()), err)
			}
		}
	}
}

func endOfInput(err error) error {
	if errors.Is(err, io.EOF) || errors.Is(err, ErrInputCancelled) {
		return nil
	}
	return err
}

// Perform gathers the fields for a single action, runs it and prints the outcome.
func (m *Menu) Perform(ctx context.Context, action Action) error {
	switch action {
	case ActionAddCategory:
		return m.addCategory(ctx)
	case ActionAddExpense:
		return m.addExpense(ctx)
	case ActionUpdateExpense:
		return m.updateExpense(ctx)
	case ActionDeleteExpense:
		return m.deleteExpense(ctx)
	case ActionSearchByDate:
		return m.searchByDate(ctx)
	case ActionCategoryReport:
		return m.categoryReport(ctx)
	case ActionSetBudget:
		return m.setBudget(ctx)
	case ActionBudgetAlert:
		return m.budgetAlert(ctx)
	case ActionExit:
		return nil
	default:
		return fmt.Errorf("%w: unknown action %d", common.ErrValidation, int(action))
	}
}

func (m *Menu) addCategory(ctx context.Context) error {
	name, err := m.prompter.PromptString(ctx, "Category name")
	if err != nil {
		return err
	}

	cat, err := m.ledger.CreateCategory(ctx, name)
	if err != nil {
		return err
	}

	m.println(FormatSuccess(fmt.Sprintf("Added category %q (ID %d)", cat.Name, cat.ID)))
	return nil
}

func (m *Menu) addExpense(ctx context.Context) error {
	title, err := m.prompter.PromptString(ctx, "Title")
	if err != nil {
		return err
	}
	amount, err := m.prompter.PromptFloat(ctx, "Amount")
	if err != nil {
		return err
	}
	date, err := m.prompter.PromptString(ctx, "Date (YYYY-MM-DD)")
	if err != nil {
		return err
	}
	categoryID, err := m.prompter.PromptOptionalInt(ctx, "Category ID")
	if err != nil {
		return err
	}

	exp, err := m.ledger.CreateExpense(ctx, title, amount, date, categoryID)
	if err != nil {
		return err
	}

	m.println(FormatSuccess(fmt.Sprintf("Added expense %q for %s (ID %d)", exp.Title, FormatAmount(exp.Amount), exp.ID)))
	return nil
}

func (m *Menu) updateExpense(ctx context.Context) error {
	id, err := m.prompter.PromptInt(ctx, "Expense ID")
	if err != nil {
		return err
	}
	title, err := m.prompter.PromptString(ctx, "New title")
	if err != nil {
		return err
	}
	amount, err := m.prompter.PromptFloat(ctx, "New amount")
	if err != nil {
		return err
	}

	exp, err := m.ledger.UpdateExpense(ctx, id, title, amount)
	if errors.Is(err, common.ErrNotFound) {
		m.println(FormatError(fmt.Sprintf("Expense %d not found", id)))
		return nil
	}
	if err != nil {
		return err
	}

	m.println(FormatSuccess(fmt.Sprintf("Updated expense %d: %q %s", exp.ID, exp.Title, FormatAmount(exp.Amount))))
	return nil
}

func (m *Menu) deleteExpense(ctx context.Context) error {
	id, err := m.prompter.PromptInt(ctx, "Expense ID")
	if err != nil {
		return err
	}

	err = m.ledger.DeleteExpense(ctx, id)
	if errors.Is(err, common.ErrNotFound) {
		m.println(FormatError(fmt.Sprintf("Expense %d not found", id)))
		return nil
	}
	if err != nil {
		return err
	}

	m.println(FormatSuccess(fmt.Sprintf("Deleted expense %d", id)))
	return nil
}

func (m *Menu) searchByDate(ctx context.Context) error {
	date, err := m.prompter.PromptString(ctx, "Date (YYYY-MM-DD)")
	if err != nil {
		return err
	}

	expenses, err := m.ledger.FindExpensesByDate(ctx, date)
	if err != nil {
		return err
	}

	if len(expenses) == 0 {
		m.println(FormatInfo(fmt.Sprintf("No expenses on %s", date)))
		return nil
	}

	return m.printExpenses(expenses)
}

func (m *Menu) categoryReport(ctx context.Context) error {
	totals, err := m.ledger.CategoryReport(ctx)
	if err != nil {
		return err
	}

	if len(totals) == 0 {
		m.println(FormatInfo("No categorized expenses yet"))
		return nil
	}

	w := tabwriter.NewWriter(m.writer, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, BoldStyle.Render("CATEGORY")+"\t"+BoldStyle.Render("TOTAL"))
	for _, ct := range totals {
		fmt.Fprintf(w, "%s\t%s\n", ct.Name, FormatAmount(ct.Total))
	}
	return w.Flush()
}

func (m *Menu) setBudget(ctx context.Context) error {
	month, err := m.prompter.PromptString(ctx, "Month (YYYY-MM)")
	if err != nil {
		return err
	}
	limit, err := m.prompter.PromptFloat(ctx, "Limit")
	if err != nil {
		return err
	}

	budget, err := m.ledger.CreateBudget(ctx, month, limit)
	if err != nil {
		return err
	}

	m.println(FormatSuccess(fmt.Sprintf("Budget of %s set for %s", FormatAmount(budget.Limit), budget.Month)))
	return nil
}

func (m *Menu) budgetAlert(ctx context.Context) error {
	month, err := m.prompter.PromptString(ctx, "Month (YYYY-MM)")
	if err != nil {
		return err
	}

	alert, err := m.ledger.BudgetAlert(ctx, month)
	if err != nil {
		return err
	}

	m.println(FormatAlert(*alert))
	return nil
}

func (m *Menu) printExpenses(expenses []model.Expense) error {
	w := tabwriter.NewWriter(m.writer, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, BoldStyle.Render("ID")+"\t"+BoldStyle.Render("DATE")+"\t"+
		BoldStyle.Render("TITLE")+"\t"+BoldStyle.Render("AMOUNT")+"\t"+BoldStyle.Render("CATEGORY"))
	for _, exp := range expenses {
		category := "-"
		if exp.HasCategory() {
			category = fmt.Sprintf("%d", *exp.CategoryID)
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n", exp.ID, exp.Date, exp.Title, FormatAmount(exp.Amount), category)
	}
	return w.Flush()
}

func (m *Menu) println(line string) {
	if _, err := fmt.Fprintln(m.writer, line); err != nil {
		slog.Debug("Failed to write menu output", "error", err)
	}
}
