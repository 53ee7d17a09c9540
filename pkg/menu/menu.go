// Package menu implements the interactive controller as a finite state
// machine. Dispatch is a pure function from (state, input) to the next state
// and the command to run; the Runner owns all prompt I/O and calls into the
// domain services, which never read or write the terminal themselves.
package menu

import "strings"

type State int

const (
	StateMain State = iota
	StateManageExpenses
	StateExpenseCategories
	StateViewExpenses
	StateManageIncome
	StateIncomeCategories
	StateViewIncome
	StateManageBudgets
	StateViewBudgets
	StateGoals
	StateQuit
)

// Command names the effect a transition asks the Runner to perform.
type Command int

const (
	CommandNone Command = iota
	CommandInvalid

	CommandAddExpense
	CommandUpdateExpense
	CommandAddExpenseCategory
	CommandDeleteExpenseCategory
	CommandViewExpenses
	CommandViewExpensesByCategory

	CommandAddIncome
	CommandUpdateIncome
	CommandAddIncomeCategory
	CommandDeleteIncomeCategory
	CommandViewIncome
	CommandViewIncomeByCategory

	CommandSetBudget
	CommandViewBudgetForCategory
	CommandViewAllBudgets
	CommandOverallNet

	CommandCreateGoal
	CommandChangeGoalTarget
	CommandAllocateExcess
	CommandRemoveOrTransfer
	CommandGoalProgress
)

type transition struct {
	next State
	cmd  Command
}

var transitions = map[State]map[string]transition{
	StateMain: {
		"1": {StateManageExpenses, CommandNone},
		"2": {StateViewExpenses, CommandNone},
		"3": {StateManageIncome, CommandNone},
		"4": {StateViewIncome, CommandNone},
		"5": {StateManageBudgets, CommandNone},
		"6": {StateViewBudgets, CommandNone},
		"7": {StateGoals, CommandNone},
		"8": {StateMain, CommandGoalProgress},
		"9": {StateQuit, CommandNone},
	},
	StateManageExpenses: {
		"1": {StateManageExpenses, CommandAddExpense},
		"2": {StateManageExpenses, CommandUpdateExpense},
		"3": {StateExpenseCategories, CommandNone},
		"4": {StateMain, CommandNone},
	},
	StateExpenseCategories: {
		"1": {StateExpenseCategories, CommandAddExpenseCategory},
		"2": {StateExpenseCategories, CommandDeleteExpenseCategory},
		"3": {StateManageExpenses, CommandNone},
	},
	StateViewExpenses: {
		"1": {StateViewExpenses, CommandViewExpenses},
		"2": {StateViewExpenses, CommandViewExpensesByCategory},
		"3": {StateMain, CommandNone},
	},
	StateManageIncome: {
		"1": {StateManageIncome, CommandAddIncome},
		"2": {StateManageIncome, CommandUpdateIncome},
		"3": {StateIncomeCategories, CommandNone},
		"4": {StateMain, CommandNone},
	},
	StateIncomeCategories: {
		"1": {StateIncomeCategories, CommandAddIncomeCategory},
		"2": {StateIncomeCategories, CommandDeleteIncomeCategory},
		"3": {StateManageIncome, CommandNone},
	},
	StateViewIncome: {
		"1": {StateViewIncome, CommandViewIncome},
		"2": {StateViewIncome, CommandViewIncomeByCategory},
		"3": {StateMain, CommandNone},
	},
	StateManageBudgets: {
		"1": {StateManageBudgets, CommandSetBudget},
		"2": {StateMain, CommandNone},
	},
	StateViewBudgets: {
		"1": {StateViewBudgets, CommandViewBudgetForCategory},
		"2": {StateViewBudgets, CommandViewAllBudgets},
		"3": {StateViewBudgets, CommandOverallNet},
		"4": {StateMain, CommandNone},
	},
	StateGoals: {
		"1": {StateGoals, CommandCreateGoal},
		"2": {StateGoals, CommandChangeGoalTarget},
		"3": {StateGoals, CommandAllocateExcess},
		"4": {StateGoals, CommandRemoveOrTransfer},
		"5": {StateMain, CommandNone},
	},
}

// Dispatch maps the user's choice in a state to the next state and the
// command to execute. Unknown input keeps the state and yields
// CommandInvalid.
func Dispatch(state State, input string) (State, Command) {
	input = strings.TrimSpace(input)
	if t, ok := transitions[state][input]; ok {
		return t.next, t.cmd
	}
	return state, CommandInvalid
}

var prompts = map[State]string{
	StateMain: `
Main Menu:
1 - Manage expenses
2 - View expenses
3 - Manage income
4 - View income
5 - Manage budgets
6 - View budgets
7 - Manage financial goals
8 - View progress towards financial goals
9 - Quit`,
	StateManageExpenses: `
Manage Expenses:
1 - Add expense
2 - Update an expense record
3 - Manage expense categories
4 - Return to main menu`,
	StateExpenseCategories: `
Expense Category Management:
1 - Add new expense category
2 - Delete an expense category
3 - Return to Manage Expenses menu`,
	StateViewExpenses: `
View Expenses:
1 - View expenses for a month
2 - View expenses by category
3 - Return to main menu`,
	StateManageIncome: `
Manage Income:
1 - Add income
2 - Update an income record
3 - Manage income categories
4 - Return to main menu`,
	StateIncomeCategories: `
Income Category Management:
1 - Add new income category
2 - Delete an income category
3 - Return to Manage Income menu`,
	StateViewIncome: `
View Income:
1 - View income for a month
2 - View income by category
3 - Return to main menu`,
	StateManageBudgets: `
Manage Budgets:
1 - Set a budget for a category
2 - Return to main menu`,
	StateViewBudgets: `
View Budgets:
1 - View budget for a category
2 - View all budgets
3 - View overall budget for a month
4 - Return to main menu`,
	StateGoals: `
Financial Goals Menu:
1 - Create a new savings goal
2 - Change the target amount for a goal
3 - Add excess income to savings goals
4 - Remove or move savings from a goal
5 - Return to main menu`,
}

// Prompt returns the menu text shown for a state.
func Prompt(state State) string {
	return prompts[state]
}
