package menu

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/finledger/finledger/internal/utils"
	"github.com/finledger/finledger/pkg/budget"
	"github.com/finledger/finledger/pkg/category"
	"github.com/finledger/finledger/pkg/goal"
	"github.com/finledger/finledger/pkg/ledger"
	"github.com/shopspring/decimal"
)

// Runner drives the menu FSM against the domain services. All terminal I/O
// happens here; errors from the services are printed and the loop continues.
type Runner struct {
	categories category.Service
	entries    ledger.Service
	budgets    budget.Service
	goals      goal.Service
	clock      utils.Clock
	currency   string

	in  *bufio.Scanner
	out io.Writer
}

func NewRunner(
	categories category.Service,
	entries ledger.Service,
	budgets budget.Service,
	goals goal.Service,
	clock utils.Clock,
	currency string,
	in io.Reader,
	out io.Writer,
) *Runner {
	return &Runner{
		categories: categories,
		entries:    entries,
		budgets:    budgets,
		goals:      goals,
		clock:      clock,
		currency:   currency,
		in:         bufio.NewScanner(in),
		out:        out,
	}
}

// Run loops until the user quits or input ends.
func (r *Runner) Run(ctx context.Context) error {
	state := StateMain
	for state != StateQuit {
		fmt.Fprintln(r.out, Prompt(state))
		input, ok := r.readLine("Select an option: ")
		if !ok {
			return nil
		}

		next, cmd := Dispatch(state, input)
		if cmd == CommandInvalid {
			fmt.Fprintln(r.out, "Invalid option. Try again.")
		} else if cmd != CommandNone {
			if err := r.execute(ctx, cmd); err != nil {
				// All four error kinds are recoverable here: report and move on.
				fmt.Fprintf(r.out, "Error: %v\n", err)
			}
		}
		state = next
	}
	fmt.Fprintln(r.out, "Goodbye!")
	return nil
}

func (r *Runner) execute(ctx context.Context, cmd Command) error {
	switch cmd {
	case CommandAddExpense:
		return r.addEntry(ctx, ledger.KindExpense)
	case CommandUpdateExpense:
		return r.updateEntry(ctx, ledger.KindExpense)
	case CommandAddExpenseCategory:
		return r.addCategory(ctx, category.NamespaceExpense)
	case CommandDeleteExpenseCategory:
		return r.deleteCategory(ctx, category.NamespaceExpense)
	case CommandViewExpenses:
		return r.viewEntries(ctx, ledger.KindExpense, false)
	case CommandViewExpensesByCategory:
		return r.viewEntries(ctx, ledger.KindExpense, true)
	case CommandAddIncome:
		return r.addEntry(ctx, ledger.KindIncome)
	case CommandUpdateIncome:
		return r.updateEntry(ctx, ledger.KindIncome)
	case CommandAddIncomeCategory:
		return r.addCategory(ctx, category.NamespaceIncome)
	case CommandDeleteIncomeCategory:
		return r.deleteCategory(ctx, category.NamespaceIncome)
	case CommandViewIncome:
		return r.viewEntries(ctx, ledger.KindIncome, false)
	case CommandViewIncomeByCategory:
		return r.viewEntries(ctx, ledger.KindIncome, true)
	case CommandSetBudget:
		return r.setBudget(ctx)
	case CommandViewBudgetForCategory:
		return r.viewBudgetForCategory(ctx)
	case CommandViewAllBudgets:
		return r.viewAllBudgets(ctx)
	case CommandOverallNet:
		return r.overallNet(ctx)
	case CommandCreateGoal:
		return r.createGoal(ctx)
	case CommandChangeGoalTarget:
		return r.changeGoalTarget(ctx)
	case CommandAllocateExcess:
		return r.allocateExcess(ctx)
	case CommandRemoveOrTransfer:
		return r.removeOrTransfer(ctx)
	case CommandGoalProgress:
		return r.goalProgress(ctx)
	}
	return nil
}

func (r *Runner) addEntry(ctx context.Context, kind ledger.Kind) error {
	amount, ok := r.promptDecimal("Enter the amount: ")
	if !ok {
		return nil
	}
	date, ok := r.readLine("Enter the date (YYYY-MM-DD): ")
	if !ok {
		return nil
	}
	cat, err := r.selectCategory(ctx, kind.Namespace())
	if err != nil {
		return err
	}

	if _, err := r.entries.Add(ctx, kind, cat.ID, amount, date); err != nil {
		return err
	}
	fmt.Fprintf(r.out, "%s added successfully.\n", titleFor(kind))
	return nil
}

func (r *Runner) updateEntry(ctx context.Context, kind ledger.Kind) error {
	month, year, ok := r.promptPeriod()
	if !ok {
		return nil
	}

	entries, err := r.entries.View(ctx, kind, month, year, "")
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Fprintf(r.out, "No %s records available to update for this period.\n", kind)
		return nil
	}
	r.printEntries(entries)

	id, ok := r.promptInt("Enter the ID of the record to update: ")
	if !ok {
		return nil
	}
	amount, ok := r.promptDecimal("Enter the new amount: ")
	if !ok {
		return nil
	}

	if err := r.entries.UpdateAmount(ctx, kind, id, amount); err != nil {
		return err
	}
	fmt.Fprintf(r.out, "%s updated successfully.\n", titleFor(kind))
	return nil
}

func (r *Runner) addCategory(ctx context.Context, ns category.Namespace) error {
	name, ok := r.readLine(fmt.Sprintf("Enter new %s category name: ", ns))
	if !ok {
		return nil
	}
	created, err := r.categories.Create(ctx, ns, name)
	if err != nil {
		return err
	}
	fmt.Fprintf(r.out, "Category %q added successfully.\n", created.Name)
	return nil
}

func (r *Runner) deleteCategory(ctx context.Context, ns category.Namespace) error {
	cat, err := r.selectCategory(ctx, ns)
	if err != nil {
		return err
	}
	if err := r.categories.Delete(ctx, ns, cat.ID); err != nil {
		return err
	}
	fmt.Fprintln(r.out, "Category deleted successfully.")
	return nil
}

func (r *Runner) viewEntries(ctx context.Context, kind ledger.Kind, byCategory bool) error {
	month, year, ok := r.promptPeriod()
	if !ok {
		return nil
	}

	categoryName := ""
	if byCategory {
		cat, err := r.selectCategory(ctx, kind.Namespace())
		if err != nil {
			return err
		}
		categoryName = cat.Name
	}

	entries, err := r.entries.View(ctx, kind, month, year, categoryName)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Fprintf(r.out, "No %s records found for %d/%d.\n", kind, month, year)
		return nil
	}
	r.printEntries(entries)
	return nil
}

func (r *Runner) setBudget(ctx context.Context) error {
	cat, err := r.selectCategory(ctx, category.NamespaceExpense)
	if err != nil {
		return err
	}
	amount, ok := r.promptDecimal("Enter the budget amount: ")
	if !ok {
		return nil
	}
	month, year, ok := r.promptPeriod()
	if !ok {
		return nil
	}

	if err := r.budgets.Set(ctx, cat.Name, amount, month, year); err != nil {
		return err
	}
	fmt.Fprintf(r.out, "Budget of %s%s set for %q for %d/%d.\n", r.currency, amount.StringFixed(2), cat.Name, month, year)
	return nil
}

func (r *Runner) viewBudgetForCategory(ctx context.Context) error {
	cat, err := r.selectCategory(ctx, category.NamespaceExpense)
	if err != nil {
		return err
	}
	month, year, ok := r.promptPeriod()
	if !ok {
		return nil
	}

	eval, err := r.budgets.Evaluate(ctx, cat.Name, month, year)
	if err != nil {
		return err
	}
	fmt.Fprintf(r.out, "Category: %s for %d/%d\n", cat.Name, month, year)
	fmt.Fprintf(r.out, "Budgeted Amount: %s%s\n", r.currency, eval.Budgeted.StringFixed(2))
	fmt.Fprintf(r.out, "Total Expenses: %s%s\n", r.currency, eval.Spent.StringFixed(2))
	if eval.Delta.IsPositive() {
		fmt.Fprintf(r.out, "Over budget by: %s%s\n", r.currency, eval.Delta.StringFixed(2))
	} else {
		fmt.Fprintf(r.out, "Under budget by: %s%s\n", r.currency, eval.Delta.Neg().StringFixed(2))
	}
	return nil
}

func (r *Runner) viewAllBudgets(ctx context.Context) error {
	budgets, err := r.budgets.List(ctx)
	if err != nil {
		return err
	}
	if len(budgets) == 0 {
		fmt.Fprintln(r.out, "No budgets set.")
		return nil
	}
	fmt.Fprintln(r.out, "Budgets:")
	for _, b := range budgets {
		fmt.Fprintf(r.out, "ID: %d, Category: %s, Budget: %s%s, Month: %d, Year: %d\n",
			b.ID, b.Category, r.currency, b.Amount.StringFixed(2), b.Month, b.Year)
	}
	return nil
}

func (r *Runner) overallNet(ctx context.Context) error {
	month, year, ok := r.promptPeriod()
	if !ok {
		return nil
	}

	net, err := r.budgets.NetForPeriod(ctx, month, year)
	if err != nil {
		return err
	}
	fmt.Fprintf(r.out, "\nOverall budget for %d/%d:\n", month, year)
	fmt.Fprintf(r.out, "Total Income: %s%s\n", r.currency, net.Income.StringFixed(2))
	fmt.Fprintf(r.out, "Total Expenses: %s%s\n", r.currency, net.Expenses.StringFixed(2))
	fmt.Fprintf(r.out, "Net Budget: %s%s\n", r.currency, net.Net.StringFixed(2))
	return nil
}

func (r *Runner) createGoal(ctx context.Context) error {
	name, ok := r.readLine("Enter the name of the savings goal: ")
	if !ok {
		return nil
	}
	target, ok := r.promptDecimal("Enter the target amount to save: ")
	if !ok {
		return nil
	}
	date, ok := r.readLine("Enter the target date (YYYY-MM-DD): ")
	if !ok {
		return nil
	}

	g, err := r.goals.Create(ctx, name, target, date)
	if err != nil {
		return err
	}
	fmt.Fprintf(r.out, "Savings goal %q created successfully!\n", g.Name)
	return nil
}

func (r *Runner) changeGoalTarget(ctx context.Context) error {
	g, err := r.selectGoal(ctx)
	if err != nil {
		return err
	}
	target, ok := r.promptDecimal("Enter the new target amount: ")
	if !ok {
		return nil
	}

	if err := r.goals.UpdateTarget(ctx, g.ID, target); err != nil {
		return err
	}
	fmt.Fprintln(r.out, "Goal updated successfully!")
	return nil
}

func (r *Runner) allocateExcess(ctx context.Context) error {
	month, year, ok := r.promptPeriod()
	if !ok {
		return nil
	}

	excess, err := r.goals.AvailableExcess(ctx, month, year)
	if err != nil {
		return err
	}
	if !excess.IsPositive() {
		fmt.Fprintln(r.out, "No excess income available for savings.")
		return nil
	}
	fmt.Fprintf(r.out, "\nYou have %s%s in available excess income.\n", r.currency, excess.StringFixed(2))

	goals, err := r.goals.List(ctx)
	if err != nil {
		return err
	}
	if len(goals) == 0 {
		fmt.Fprintln(r.out, "No savings goals found. Create one first.")
		return nil
	}

	var assignments []goal.Assignment
	for _, g := range goals {
		amount, ok := r.promptDecimal(fmt.Sprintf("Enter amount to add to %q (0 to skip): ", g.Name))
		if !ok {
			return nil
		}
		if amount.IsZero() {
			continue
		}
		assignments = append(assignments, goal.Assignment{GoalID: g.ID, Amount: amount})
	}

	result, err := r.goals.Allocate(ctx, month, year, assignments)
	if err != nil {
		return err
	}
	for _, rej := range result.Rejected {
		fmt.Fprintf(r.out, "Skipped goal %d: %s.\n", rej.GoalID, rej.Reason)
	}
	fmt.Fprintln(r.out, "Savings updated successfully!")
	return nil
}

func (r *Runner) removeOrTransfer(ctx context.Context) error {
	g, err := r.selectGoal(ctx)
	if err != nil {
		return err
	}
	amount, ok := r.promptDecimal("Enter the amount to remove or transfer: ")
	if !ok {
		return nil
	}
	choice, ok := r.readLine("Do you want to (1) remove or (2) transfer this amount? Enter 1 or 2: ")
	if !ok {
		return nil
	}

	switch choice {
	case "1":
		if err := r.goals.RemoveOrTransfer(ctx, g.ID, amount, goal.ActionRemove, 0); err != nil {
			return err
		}
		fmt.Fprintln(r.out, "Amount removed successfully.")
	case "2":
		dest, err := r.selectGoal(ctx)
		if err != nil {
			return err
		}
		if err := r.goals.RemoveOrTransfer(ctx, g.ID, amount, goal.ActionTransfer, dest.ID); err != nil {
			return err
		}
		fmt.Fprintln(r.out, "Amount transferred successfully.")
	default:
		fmt.Fprintln(r.out, "Invalid option.")
	}
	return nil
}

func (r *Runner) goalProgress(ctx context.Context) error {
	goals, err := r.goals.List(ctx)
	if err != nil {
		return err
	}
	if len(goals) == 0 {
		fmt.Fprintln(r.out, "No savings goals set.")
		return nil
	}
	fmt.Fprintln(r.out, "\nSavings Goal Progress:")
	for _, g := range goals {
		percent, err := r.goals.Progress(ctx, g.ID)
		if err != nil {
			return err
		}
		fmt.Fprintf(r.out, "%s: %s%s/%s%s saved (%s%%) - Target Date: %s\n",
			g.Name,
			r.currency, g.Saved.StringFixed(2),
			r.currency, g.Target.StringFixed(2),
			percent.StringFixed(2),
			g.TargetDate.Format(goal.DateLayout))
	}
	return nil
}

func (r *Runner) selectCategory(ctx context.Context, ns category.Namespace) (category.Category, error) {
	categories, err := r.categories.List(ctx, ns)
	if err != nil {
		return category.Category{}, err
	}
	if len(categories) == 0 {
		return category.Category{}, fmt.Errorf("no %s categories available, add one first", ns)
	}
	fmt.Fprintf(r.out, "%s categories:\n", ns)
	for _, c := range categories {
		fmt.Fprintf(r.out, "%d - %s\n", c.ID, c.Name)
	}
	id, ok := r.promptInt("Enter the category ID: ")
	if !ok {
		return category.Category{}, fmt.Errorf("no category selected")
	}
	for _, c := range categories {
		if c.ID == id {
			return c, nil
		}
	}
	return category.Category{}, fmt.Errorf("invalid category selection")
}

func (r *Runner) selectGoal(ctx context.Context) (goal.Goal, error) {
	goals, err := r.goals.List(ctx)
	if err != nil {
		return goal.Goal{}, err
	}
	if len(goals) == 0 {
		return goal.Goal{}, fmt.Errorf("no savings goals found")
	}
	fmt.Fprintln(r.out, "\nYour savings goals:")
	for _, g := range goals {
		fmt.Fprintf(r.out, "%d - %s (Saved: %s%s)\n", g.ID, g.Name, r.currency, g.Saved.StringFixed(2))
	}
	id, ok := r.promptInt("Enter the goal ID: ")
	if !ok {
		return goal.Goal{}, fmt.Errorf("no goal selected")
	}
	for _, g := range goals {
		if g.ID == id {
			return g, nil
		}
	}
	return goal.Goal{}, fmt.Errorf("invalid goal selection")
}

func (r *Runner) printEntries(entries []ledger.Entry) {
	for _, e := range entries {
		fmt.Fprintf(r.out, "ID: %d, Category: %s, Amount: %s%s, Date: %s\n",
			e.ID, e.Category, r.currency, e.Amount.StringFixed(2), e.Date.Format(ledger.DateLayout))
	}
}

func (r *Runner) promptPeriod() (int, int, bool) {
	now := r.clock.Now()
	month, ok := r.promptIntDefault(fmt.Sprintf("Enter the month (1-12) [%d]: ", int(now.Month())), int(now.Month()))
	if !ok {
		return 0, 0, false
	}
	year, ok := r.promptIntDefault(fmt.Sprintf("Enter the year [%d]: ", now.Year()), now.Year())
	if !ok {
		return 0, 0, false
	}
	return month, year, true
}

func (r *Runner) readLine(prompt string) (string, bool) {
	fmt.Fprint(r.out, prompt)
	if !r.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(r.in.Text()), true
}

func (r *Runner) promptInt(prompt string) (int, bool) {
	for {
		line, ok := r.readLine(prompt)
		if !ok {
			return 0, false
		}
		n, err := strconv.Atoi(line)
		if err != nil {
			fmt.Fprintln(r.out, "Invalid input. Enter a valid number.")
			continue
		}
		return n, true
	}
}

func (r *Runner) promptIntDefault(prompt string, def int) (int, bool) {
	for {
		line, ok := r.readLine(prompt)
		if !ok {
			return 0, false
		}
		if line == "" {
			return def, true
		}
		n, err := strconv.Atoi(line)
		if err != nil {
			fmt.Fprintln(r.out, "Invalid input. Enter a valid number.")
			continue
		}
		return n, true
	}
}

func (r *Runner) promptDecimal(prompt string) (decimal.Decimal, bool) {
	for {
		line, ok := r.readLine(prompt)
		if !ok {
			return decimal.Zero, false
		}
		d, err := decimal.NewFromString(line)
		if err != nil {
			fmt.Fprintln(r.out, "Invalid input. Enter a number.")
			continue
		}
		return d, true
	}
}

func titleFor(kind ledger.Kind) string {
	if kind == ledger.KindIncome {
		return "Income"
	}
	return "Expense"
}
