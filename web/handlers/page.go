package handlers

import (
	"html/template"
	"net/http"
	"strconv"

	"axiapac.com/hrdesk/desk"
	v1 "axiapac.com/hrdesk/hrpayroll/v1"
	"github.com/gin-gonic/gin"
)

type cellView struct {
	HTML    template.HTML
	ColSpan int
	Action  *desk.Action
}

type tableView struct {
	Columns []string
	Rows    [][]cellView
}

// newTableView trusts cell text: the render layer has already sanitized it.
func newTableView(t desk.Table) tableView {
	view := tableView{Columns: t.Columns}
	for _, row := range t.Rows {
		cells := make([]cellView, len(row.Cells))
		for i, c := range row.Cells {
			cells[i] = cellView{HTML: template.HTML(c.HTML), ColSpan: c.ColSpan, Action: c.Action}
		}
		view.Rows = append(view.Rows, cells)
	}
	return view
}

type optionView struct {
	Value    string
	Label    string
	Selected bool
}

// newOptionViews marks the option matching current so a redisplayed form keeps its choice.
func newOptionViews(options []desk.Option, current string) []optionView {
	views := make([]optionView, len(options))
	for i, o := range options {
		views[i] = optionView{Value: o.Value, Label: o.Label, Selected: current != "" && o.Value == current}
	}
	return views
}

type pageData struct {
	Panels []desk.Panel

	Employees        tableView
	EmployeesMessage string
	FormMode         desk.FormMode
	FormInput        desk.EmployeeInput
	FormMessage      string

	AttendanceOptions []optionView
	AttendanceMessage string
	Query             desk.HistoryQuery
	HistoryOptions    []optionView
	History           tableView
	HistoryMessage    string

	PayrollInput   desk.PayrollInput
	PayrollOptions []optionView
	PayrollMessage string
	Slips          tableView
	SlipsMessage   string
	Detail         *v1.PayrollSlipDTO
	DetailMessage  string
	ArchiveEnabled bool
}

func (ep *Endpoint) Page(c *gin.Context) {
	d := ep.desk
	options := d.EmployeeOptions()
	query := d.Attendance.Query()
	payroll := d.Payroll.Input()
	data := pageData{
		Panels: d.Router.Panels(),

		Employees:        newTableView(d.Employees.Table()),
		EmployeesMessage: d.Employees.Message.Text(),
		FormMode:         d.EmployeeForm.Mode(),
		FormInput:        d.EmployeeForm.Input(),
		FormMessage:      d.EmployeeForm.Message.Text(),

		AttendanceOptions: newOptionViews(options, d.Attendance.Selected()),
		AttendanceMessage: d.Attendance.Message.Text(),
		Query:             query,
		HistoryOptions:    newOptionViews(options, query.EmployeeID),
		History:           newTableView(d.Attendance.HistoryTable()),
		HistoryMessage:    d.Attendance.HistoryMessage.Text(),

		PayrollInput:   payroll,
		PayrollOptions: newOptionViews(options, payroll.EmployeeID),
		PayrollMessage: d.Payroll.Message.Text(),
		Slips:          newTableView(d.Payroll.Table()),
		SlipsMessage:   d.Payroll.SlipsMessage.Text(),
		DetailMessage:  d.Payroll.DetailMessage.Text(),
		ArchiveEnabled: ep.archive != nil,
	}
	if slip, ok := d.Payroll.Detail(); ok {
		data.Detail = &slip
	}

	c.Status(http.StatusOK)
	c.Header("Content-Type", "text/html; charset=utf-8")
	if err := ep.tmpl.Execute(c.Writer, data); err != nil {
		c.Error(err)
	}
}

func newPageTemplate(loc desk.Locale) *template.Template {
	return template.Must(template.New("page").Funcs(template.FuncMap{
		"day":      loc.Day,
		"datetime": loc.DateTime,
		"number": func(f float64) string {
			return strconv.FormatFloat(f, 'f', -1, 64)
		},
	}).Parse(pageTemplate))
}

const pageTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>HR Desk</title>
<style>
body { font-family: sans-serif; margin: 2em; }
nav form { display: inline; }
nav button.active { font-weight: bold; }
section.hidden { display: none; }
table { border-collapse: collapse; margin-top: 1em; }
td, th { border: 1px solid #ccc; padding: 4px 8px; }
.status { color: #555; min-height: 1.2em; }
</style>
</head>
<body>
<nav>
{{range .Panels}}<form method="post" action="/actions/switch-view"><input type="hidden" name="view" value="{{.View}}"><button{{if .Active}} class="active"{{end}}>{{.View}}</button></form>
{{end}}</nav>

{{define "options"}}<option value="">Select employee</option>{{range .}}<option value="{{.Value}}"{{if .Selected}} selected{{end}}>{{.Label}}</option>{{end}}{{end}}
{{define "table"}}<table>
<thead><tr>{{range .Columns}}<th>{{.}}</th>{{end}}</tr></thead>
<tbody>{{range .Rows}}<tr>{{range .}}<td{{if .ColSpan}} colspan="{{.ColSpan}}"{{end}}>{{if .Action}}<form method="post" action="/actions/{{.Action.Kind}}"><input type="hidden" name="id" value="{{.Action.ID}}"><button>{{.HTML}}</button></form>{{else}}{{.HTML}}{{end}}</td>{{end}}</tr>
{{end}}</tbody>
</table>{{end}}

{{range .Panels}}{{if eq .View "employees"}}<section id="employees"{{if not .Active}} class="hidden"{{end}}>{{end}}{{end}}
<h2>Employees</h2>
<form method="post" action="/actions/submit-employee">
<input name="name" placeholder="Name" value="{{.FormInput.Name}}">
<input name="position" placeholder="Position" value="{{.FormInput.Position}}">
<input name="base_salary" placeholder="Base salary" value="{{.FormInput.BaseSalary}}">
<input name="allowance" placeholder="Allowance" value="{{.FormInput.Allowance}}">
<button>{{.FormMode.SubmitLabel}}</button>
</form>
<p class="status" id="employee-form-status">{{.FormMessage}}</p>
<form method="post" action="/actions/refresh-employees"><button>Refresh</button></form>
<p class="status" id="employee-list-status">{{.EmployeesMessage}}</p>
{{template "table" .Employees}}
</section>

{{range .Panels}}{{if eq .View "attendance"}}<section id="attendance"{{if not .Active}} class="hidden"{{end}}>{{end}}{{end}}
<h2>Attendance</h2>
<form method="post">
<select name="employee_id">{{template "options" .AttendanceOptions}}</select>
<button formaction="/actions/check-in">Check in</button>
<button formaction="/actions/checkout">Check out</button>
<button formaction="/actions/mark-absent">Absent</button>
<button formaction="/actions/mark-leave">Leave</button>
</form>
<p class="status" id="attendance-status">{{.AttendanceMessage}}</p>
<h3>History</h3>
<form method="post" action="/actions/query-attendance">
<select name="employee_id">{{template "options" .HistoryOptions}}</select>
<input type="date" name="from" value="{{.Query.From}}">
<input type="date" name="to" value="{{.Query.To}}">
<button>Search</button>
</form>
<p class="status" id="history-status">{{.HistoryMessage}}</p>
{{template "table" .History}}
</section>

{{range .Panels}}{{if eq .View "payroll"}}<section id="payroll"{{if not .Active}} class="hidden"{{end}}>{{end}}{{end}}
<h2>Payroll</h2>
<form method="post" action="/actions/generate-payroll">
<select name="employee_id">{{template "options" .PayrollOptions}}</select>
<input type="month" name="month" value="{{.PayrollInput.Month}}">
<button>Generate</button>
</form>
<p class="status" id="payroll-status">{{.PayrollMessage}}</p>
<form method="post" action="/actions/refresh-payroll"><button>Refresh</button></form>
<a href="/payroll/slips.xlsx">Export</a>
{{if .ArchiveEnabled}}<form method="post" action="/payroll/slips/archive"><button>Archive export</button></form>{{end}}
<p class="status" id="slips-status">{{.SlipsMessage}}</p>
{{template "table" .Slips}}
<p class="status" id="slip-detail-status">{{.DetailMessage}}</p>
{{with .Detail}}<dl id="slip-detail">
<dt>Slip</dt><dd>{{.ID}}</dd>
<dt>Employee</dt><dd>{{.EmployeeID}}</dd>
<dt>Period</dt><dd>{{day .Period}}</dd>
<dt>Base salary</dt><dd>{{number .BaseSalary}}</dd>
<dt>Allowance</dt><dd>{{number .Allowance}}</dd>
<dt>Absences</dt><dd>{{.TotalAbsent}}</dd>
<dt>Absence deduction</dt><dd>{{number .AbsenceDeduction}}</dd>
<dt>Take home pay</dt><dd>{{number .TakeHomePay}}</dd>
<dt>Generated</dt><dd>{{datetime .GeneratedAt}}</dd>
</dl>{{end}}
</section>
</body>
</html>
`
