package desk_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"axiapac.com/hrdesk/desk"
	v1 "axiapac.com/hrdesk/hrpayroll/v1"
	"axiapac.com/hrdesk/hrpayroll/v1/hrpayrolltest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmployeeValidation(t *testing.T) {
	valid := desk.EmployeeInput{Name: "Ana", Position: "Clerk", BaseSalary: "1000", Allowance: "50"}

	tests := []struct {
		name    string
		change  func(in *desk.EmployeeInput)
		message string
	}{
		{"missing name", func(in *desk.EmployeeInput) { in.Name = "" }, "Name is required"},
		{"blank name", func(in *desk.EmployeeInput) { in.Name = "   " }, "Name is required"},
		{"missing position", func(in *desk.EmployeeInput) { in.Position = "" }, "Position is required"},
		{"text salary", func(in *desk.EmployeeInput) { in.BaseSalary = "abc" }, "Base salary must be a number"},
		{"empty salary", func(in *desk.EmployeeInput) { in.BaseSalary = "" }, "Base salary must be a number"},
		{"NaN salary", func(in *desk.EmployeeInput) { in.BaseSalary = "NaN" }, "Base salary must be a number"},
		{"hex salary", func(in *desk.EmployeeInput) { in.BaseSalary = "0x1p3" }, "Base salary must be a number"},
		{"Inf allowance", func(in *desk.EmployeeInput) { in.Allowance = "Inf" }, "Allowance must be a number"},
		{"underscore allowance", func(in *desk.EmployeeInput) { in.Allowance = "1_000" }, "Allowance must be a number"},
		{"text allowance", func(in *desk.EmployeeInput) { in.Allowance = "fifty" }, "Allowance must be a number"},
		{"name reported first", func(in *desk.EmployeeInput) { in.Name = ""; in.Allowance = "x" }, "Name is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, fake := newDesk(t)
			in := valid
			tt.change(&in)
			d.EmployeeForm.SetInput(in)

			d.EmployeeForm.Submit(context.Background())

			assert.Equal(t, tt.message, d.EmployeeForm.Message.Text())
			assert.Empty(t, fake.Requests())
			assert.Equal(t, in, d.EmployeeForm.Input())
		})
	}
}

func TestEmployeeInputValidate(t *testing.T) {
	fields, problem := desk.EmployeeInput{Name: " Ana ", Position: "Clerk ", BaseSalary: " 1000.5", Allowance: "0"}.Validate()
	require.Empty(t, problem)
	assert.Equal(t, v1.EmployeeFields{Name: "Ana", Position: "Clerk", BaseSalary: 1000.5, Allowance: 0}, fields)
}

func TestCreateEmployee(t *testing.T) {
	d, fake := newDesk(t)
	for range 6 {
		fake.SeedEmployee(v1.EmployeeFields{Name: "seed", Position: "seed"})
	}
	d.EmployeeForm.SetInput(desk.EmployeeInput{Name: "Ana", Position: "Clerk", BaseSalary: "1000", Allowance: "50"})

	d.EmployeeForm.Submit(context.Background())

	assert.Equal(t, "Employee created (ID: 7)", d.EmployeeForm.Message.Text())
	assert.Equal(t, desk.CreateMode(), d.EmployeeForm.Mode())
	assert.Equal(t, desk.EmployeeInput{}, d.EmployeeForm.Input())
	assert.Equal(t, 1, fake.Hits("POST", "/api/v1/employees"))
	assert.Equal(t, 1, fake.Hits("GET", "/api/v1/employees"))
	assert.Equal(t, map[string]any{"name": "Ana", "position": "Clerk", "base_salary": 1000.0, "allowance": 50.0}, firstBody(t, fake, "POST"))

	emp, ok := d.Registry.Lookup(7)
	require.True(t, ok)
	assert.Equal(t, "Ana", emp.Name)
	assert.Len(t, d.Employees.Table().Rows, 7)
}

func TestCreateEmployeeFailure(t *testing.T) {
	d, fake := newDesk(t)
	fake.FailNext("POST", "/api/v1/employees", 400, `{"error":"Invalid request format"}`)
	in := desk.EmployeeInput{Name: "Ana", Position: "Clerk", BaseSalary: "1000", Allowance: "50"}
	d.EmployeeForm.SetInput(in)

	d.EmployeeForm.Submit(context.Background())

	assert.Equal(t, "Failed to create: Invalid request format", d.EmployeeForm.Message.Text())
	assert.Equal(t, in, d.EmployeeForm.Input())
	assert.Equal(t, 0, fake.Hits("GET", "/api/v1/employees"))
}

func TestUpdateEmployee(t *testing.T) {
	ctx := context.Background()
	d, fake := newDesk(t)
	emp := fake.SeedEmployee(v1.EmployeeFields{Name: "Ana", Position: "Clerk", BaseSalary: 1000.5, Allowance: 50})
	d.Employees.Fetch(ctx)

	require.True(t, d.EmployeeForm.BeginEdit(emp.ID))
	assert.Equal(t, desk.EditMode(emp.ID), d.EmployeeForm.Mode())
	assert.Equal(t, "Update", d.EmployeeForm.Mode().SubmitLabel())
	assert.Equal(t, desk.EmployeeInput{Name: "Ana", Position: "Clerk", BaseSalary: "1000.5", Allowance: "50"}, d.EmployeeForm.Input())

	in := d.EmployeeForm.Input()
	in.Position = "Lead"
	d.EmployeeForm.SetInput(in)
	d.EmployeeForm.Submit(ctx)

	assert.Equal(t, "Employee updated (ID: 1)", d.EmployeeForm.Message.Text())
	assert.Equal(t, desk.CreateMode(), d.EmployeeForm.Mode())
	assert.Equal(t, "Create", d.EmployeeForm.Mode().SubmitLabel())
	assert.Equal(t, desk.EmployeeInput{}, d.EmployeeForm.Input())
	assert.Equal(t, 1, fake.Hits("PUT", "/api/v1/employees/1"))
	// one fetch before editing, one after the update
	assert.Equal(t, 2, fake.Hits("GET", "/api/v1/employees"))

	got, _ := d.Registry.Lookup(emp.ID)
	assert.Equal(t, "Lead", got.Position)
}

func TestUpdateEmployeeFailure(t *testing.T) {
	ctx := context.Background()
	d, fake := newDesk(t)
	emp := fake.SeedEmployee(v1.EmployeeFields{Name: "Ana", Position: "Clerk"})
	d.Employees.Fetch(ctx)
	require.True(t, d.EmployeeForm.BeginEdit(emp.ID))
	fake.FailNext("PUT", "/api/v1/employees/1", 404, `{"error":"Employee not found"}`)

	d.EmployeeForm.Submit(ctx)

	assert.Equal(t, "Failed to update: Employee not found", d.EmployeeForm.Message.Text())
	assert.Equal(t, desk.EditMode(emp.ID), d.EmployeeForm.Mode())
	assert.Equal(t, "Ana", d.EmployeeForm.Input().Name)
	assert.Equal(t, 1, fake.Hits("GET", "/api/v1/employees"))
}

func TestBeginEditUnknown(t *testing.T) {
	d, _ := newDesk(t)
	d.EmployeeForm.SetInput(desk.EmployeeInput{Name: "draft"})

	assert.False(t, d.EmployeeForm.BeginEdit(42))
	assert.Equal(t, desk.CreateMode(), d.EmployeeForm.Mode())
	assert.Equal(t, "draft", d.EmployeeForm.Input().Name)
}

func TestEmployeeListFailureKeepsRegistry(t *testing.T) {
	ctx := context.Background()
	d, fake := newDesk(t)
	fake.SeedEmployee(v1.EmployeeFields{Name: "Ana", Position: "Clerk"})
	d.Employees.Fetch(ctx)
	require.Equal(t, 1, d.Registry.Len())
	assert.Empty(t, d.Employees.Message.Text())

	fake.FailNext("GET", "/api/v1/employees", 500, `{"error":"database unavailable"}`)
	d.Employees.Fetch(ctx)

	assert.Equal(t, "Failed to load employees: database unavailable", d.Employees.Message.Text())
	assert.Equal(t, 1, d.Registry.Len())
	rows := d.Employees.Table().Rows
	require.Len(t, rows, 1)
	assert.Equal(t, "No employees found.", rows[0].Cells[0].HTML)
}

func TestEmployeeListInFlight(t *testing.T) {
	d, fake := newDesk(t)
	release := fake.Hold("GET", "/api/v1/employees")
	done := make(chan struct{})

	go func() {
		d.Employees.Fetch(context.Background())
		close(done)
	}()

	assert.Eventually(t, func() bool { return d.Employees.Message.Text() == "Loading..." }, time.Second, time.Millisecond)
	release()
	<-done
	assert.Empty(t, d.Employees.Message.Text())
}

func firstBody(t *testing.T, fake *hrpayrolltest.Server, method string) map[string]any {
	t.Helper()
	for _, r := range fake.Requests() {
		if r.Method == method {
			var body map[string]any
			require.NoError(t, json.Unmarshal(r.Body, &body))
			return body
		}
	}
	t.Fatalf("no %s request", method)
	return nil
}
