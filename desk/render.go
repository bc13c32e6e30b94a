package desk

import (
	"strconv"
	"time"

	v1 "axiapac.com/hrdesk/hrpayroll/v1"
	"axiapac.com/hrdesk/utils"
)

// Cell holds markup-safe text. Free text is sanitized before it gets here.
type Cell struct {
	HTML    string
	ColSpan int
	Action  *Action
}

type Row struct {
	Cells []Cell
}

type Table struct {
	Columns []string
	Rows    []Row
}

// Schema fixes a table's columns and its empty-state text.
type Schema struct {
	Columns []string
	Empty   string
}

var (
	EmployeeSchema = Schema{
		Columns: []string{"ID", "Name", "Position", "Base Salary", "Allowance", "Created", "Action"},
		Empty:   "No employees found.",
	}
	AttendanceSchema = Schema{
		Columns: []string{"ID", "Date", "Status", "Check In", "Check Out"},
		Empty:   "No attendance records found for this period.",
	}
	PayrollSlipSchema = Schema{
		Columns: []string{"ID", "Employee", "Period", "Take Home Pay", "Generated"},
		Empty:   "No payroll slips found.",
	}
)

const notAvailable = "N/A"

// render builds a fresh table from items; an empty input yields the single empty-state row.
func render[T any](schema Schema, items []T, row func(T) Row) Table {
	table := Table{Columns: schema.Columns}
	if len(items) == 0 {
		table.Rows = []Row{{Cells: []Cell{{HTML: Sanitize(schema.Empty), ColSpan: len(schema.Columns)}}}}
		return table
	}
	table.Rows = utils.Map(items, row)
	return table
}

func RenderEmployees(employees []v1.EmployeeDTO, loc Locale) Table {
	return render(EmployeeSchema, employees, func(e v1.EmployeeDTO) Row {
		return Row{Cells: []Cell{
			text(formatID(e.ID)),
			text(Sanitize(e.Name)),
			text(Sanitize(e.Position)),
			text(formatNumber(e.BaseSalary)),
			text(formatNumber(e.Allowance)),
			text(loc.DateTime(e.CreatedAt)),
			{HTML: "Edit", Action: &Action{Kind: ActionEditEmployee, ID: e.ID}},
		}}
	})
}

func RenderAttendance(records []v1.AttendanceDTO, loc Locale) Table {
	return render(AttendanceSchema, records, func(a v1.AttendanceDTO) Row {
		return Row{Cells: []Cell{
			text(formatID(a.ID)),
			text(loc.Day(a.Date)),
			text(Sanitize(string(a.Status))),
			text(optionalTime(a.CheckIn, loc)),
			text(optionalTime(a.CheckOut, loc)),
		}}
	})
}

func RenderPayrollSlips(slips []v1.PayrollSlipDTO, loc Locale) Table {
	return render(PayrollSlipSchema, slips, func(s v1.PayrollSlipDTO) Row {
		return Row{Cells: []Cell{
			{HTML: formatID(s.ID), Action: &Action{Kind: ActionViewSlip, ID: s.ID}},
			text(formatID(s.EmployeeID)),
			text(loc.Day(s.Period)),
			text(formatNumber(s.TakeHomePay)),
			text(loc.DateTime(s.GeneratedAt)),
		}}
	})
}

func text(html string) Cell {
	return Cell{HTML: html}
}

func formatID(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}

// formatNumber prints the shortest decimal form, no grouping or currency.
func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func optionalTime(t *time.Time, loc Locale) string {
	if t == nil {
		return notAvailable
	}
	return loc.Time(*t)
}
