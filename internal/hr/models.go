// Package hr holds the employee and expense records browsed by the hrlist
// service, the SQL queries that read them, and the list definitions
// (filters, sort keys, default order) that page over them.
package hr

// Employee is an object representing the employees table.
type Employee struct {
	ID         string `boil:"id" json:"id"`
	FirstName  string `boil:"first_name" json:"first_name"`
	LastName   string `boil:"last_name" json:"last_name"`
	Email      string `boil:"email" json:"email"`
	Department string `boil:"department" json:"department"`
	Title      string `boil:"title" json:"title"`
	Status     string `boil:"status" json:"status"`
	HiredOn    string `boil:"hired_on" json:"hired_on"`
}

// Expense is an object representing the expenses table.
type Expense struct {
	ID          string `boil:"id" json:"id"`
	EmployeeID  string `boil:"employee_id" json:"employee_id"`
	Category    string `boil:"category" json:"category"`
	Status      string `boil:"status" json:"status"`
	AmountCents int64  `boil:"amount_cents" json:"amount_cents"`
	Description string `boil:"description" json:"description"`
	SubmittedOn string `boil:"submitted_on" json:"submitted_on"`
}

var (
	employeeTable   = `"employees"`
	employeeColumns = []string{"id", "first_name", "last_name", "email", "department", "title", "status", "hired_on"}

	expenseTable   = `"expenses"`
	expenseColumns = []string{"id", "employee_id", "category", "status", "amount_cents", "description", "submitted_on"}
)

// Employee statuses.
const (
	StatusActive     = "active"
	StatusOnLeave    = "on_leave"
	StatusTerminated = "terminated"
)

// Expense statuses.
const (
	ExpensePending  = "pending"
	ExpenseApproved = "approved"
	ExpenseRejected = "rejected"
	ExpensePaid     = "paid"
)
