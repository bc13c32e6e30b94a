package desk_test

import (
	"testing"
	"time"

	"axiapac.com/hrdesk/desk"
	v1 "axiapac.com/hrdesk/hrpayroll/v1"
	"axiapac.com/hrdesk/hrpayroll/v1/common/status"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Ana", "Ana"},
		{"", ""},
		{`<a href="x">'&'</a>`, "&lt;a href=&quot;x&quot;&gt;&#39;&amp;&#39;&lt;/a&gt;"},
		{"&amp;", "&amp;amp;"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, desk.Sanitize(tt.in))
		})
	}
}

func TestRenderEmpty(t *testing.T) {
	loc := testLocale()
	tests := []struct {
		name    string
		table   desk.Table
		columns int
		message string
	}{
		{"employees", desk.RenderEmployees(nil, loc), 7, "No employees found."},
		{"attendance", desk.RenderAttendance([]v1.AttendanceDTO{}, loc), 5, "No attendance records found for this period."},
		{"slips", desk.RenderPayrollSlips(nil, loc), 5, "No payroll slips found."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Len(t, tt.table.Rows, 1)
			require.Len(t, tt.table.Rows[0].Cells, 1)
			cell := tt.table.Rows[0].Cells[0]
			assert.Equal(t, tt.message, cell.HTML)
			assert.Equal(t, tt.columns, cell.ColSpan)
			assert.Len(t, tt.table.Columns, tt.columns)
		})
	}
}

func TestRenderEmployees(t *testing.T) {
	created := time.Date(2024, 3, 5, 14, 5, 9, 0, time.UTC)
	employees := []v1.EmployeeDTO{
		{ID: 2, Name: "<b>Ana</b>", Position: "Clerk", BaseSalary: 1000, Allowance: 50.5, CreatedAt: created},
		{ID: 1, Name: "Ben", Position: "Driver & Loader", BaseSalary: 900.25},
	}

	table := desk.RenderEmployees(employees, testLocale())

	require.Len(t, table.Rows, 2)
	cells := table.Rows[0].Cells
	require.Len(t, cells, 7)
	assert.Equal(t, "2", cells[0].HTML)
	assert.Equal(t, "&lt;b&gt;Ana&lt;/b&gt;", cells[1].HTML)
	assert.Equal(t, "1000", cells[3].HTML)
	assert.Equal(t, "50.5", cells[4].HTML)
	assert.Equal(t, "05/03/2024, 2:05:09 pm", cells[5].HTML)
	require.NotNil(t, cells[6].Action)
	assert.Equal(t, desk.Action{Kind: desk.ActionEditEmployee, ID: 2}, *cells[6].Action)

	// input order is kept
	assert.Equal(t, "1", table.Rows[1].Cells[0].HTML)
	assert.Equal(t, "Driver &amp; Loader", table.Rows[1].Cells[2].HTML)
	assert.Equal(t, "900.25", table.Rows[1].Cells[3].HTML)
}

func TestRenderAttendance(t *testing.T) {
	checkIn := time.Date(2024, 3, 5, 9, 30, 0, 0, time.UTC)
	checkOut := time.Date(2024, 3, 5, 17, 0, 0, 0, time.UTC)
	records := []v1.AttendanceDTO{
		{ID: 4, Date: time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC), Status: status.Present, CheckIn: &checkIn, CheckOut: &checkOut},
		{ID: 5, Date: time.Date(2024, 3, 6, 0, 0, 0, 0, time.UTC), Status: status.Absent},
	}

	loc := testLocale()
	loc.Location = time.FixedZone("UTC-8", -8*3600)
	table := desk.RenderAttendance(records, loc)

	require.Len(t, table.Rows, 2)
	// calendar days never shift with the display zone
	assert.Equal(t, []string{"4", "05/03/2024", "PRESENT", "1:30:00 am", "9:00:00 am"}, cellTexts(table.Rows[0]))
	assert.Equal(t, []string{"5", "06/03/2024", "ABSENT", "N/A", "N/A"}, cellTexts(table.Rows[1]))
}

func TestRenderPayrollSlips(t *testing.T) {
	slips := []v1.PayrollSlipDTO{
		{ID: 9, EmployeeID: 5, Period: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), TakeHomePay: 1954.55, GeneratedAt: time.Date(2024, 4, 1, 8, 0, 0, 0, time.UTC)},
	}

	table := desk.RenderPayrollSlips(slips, testLocale())

	require.Len(t, table.Rows, 1)
	assert.Equal(t, []string{"9", "5", "01/03/2024", "1954.55", "01/04/2024, 8:00:00 am"}, cellTexts(table.Rows[0]))
	require.NotNil(t, table.Rows[0].Cells[0].Action)
	assert.Equal(t, desk.ActionViewSlip, table.Rows[0].Cells[0].Action.Kind)
}

func cellTexts(row desk.Row) []string {
	out := make([]string, len(row.Cells))
	for i, c := range row.Cells {
		out[i] = c.HTML
	}
	return out
}

func TestRegistry(t *testing.T) {
	r := desk.NewRegistry()
	assert.Equal(t, 0, r.Len())
	_, ok := r.Lookup(1)
	assert.False(t, ok)

	employees := []v1.EmployeeDTO{{ID: 3, Name: "Ana"}, {ID: 1, Name: "Ben"}}
	r.Replace(employees)
	employees[0].Name = "changed"

	emp, ok := r.Lookup(3)
	require.True(t, ok)
	assert.Equal(t, "Ana", emp.Name)

	snapshot := r.Snapshot()
	r.Replace([]v1.EmployeeDTO{{ID: 8, Name: "Cy"}})
	assert.Len(t, snapshot, 2)
	assert.Equal(t, uint(3), snapshot[0].ID)

	_, ok = r.Lookup(3)
	assert.False(t, ok)
	assert.Equal(t, []desk.Option{{Value: "8", Label: "8 — Cy"}}, r.Options())
}

func TestViewRouter(t *testing.T) {
	r := desk.NewViewRouter(desk.ViewAttendance)
	assert.Equal(t, desk.ViewAttendance, r.Active())

	require.NoError(t, r.Switch(desk.ViewPayroll))
	assert.Error(t, r.Switch("settings"))
	assert.Equal(t, desk.ViewPayroll, r.Active())

	active := 0
	for _, p := range r.Panels() {
		if p.Active {
			active++
			assert.Equal(t, desk.ViewPayroll, p.View)
		}
	}
	assert.Equal(t, 1, active)

	assert.Equal(t, desk.ViewEmployees, desk.NewViewRouter("nope").Active())
}

func TestFormMode(t *testing.T) {
	create := desk.CreateMode()
	_, editing := create.EmployeeID()
	assert.False(t, editing)
	assert.Equal(t, "Create", create.SubmitLabel())
	assert.Equal(t, "CREATE", create.String())

	edit := desk.EditMode(4)
	id, editing := edit.EmployeeID()
	assert.True(t, editing)
	assert.Equal(t, uint(4), id)
	assert.Equal(t, "Update", edit.SubmitLabel())
	assert.Equal(t, "EDIT(4)", edit.String())
}
