package helper

import (
	"context"
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"
	"time"

	v1 "axiapac.com/hrdesk/hrpayroll/v1"
	"axiapac.com/hrdesk/hrpayroll/v1/hrpayrolltest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPreviousPeriod(t *testing.T) {
	brisbane := time.FixedZone("UTC+10", 10*3600)
	tests := []struct {
		name string
		now  time.Time
		want string
	}{
		{"mid month", time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC), "2024-02-01"},
		{"january", time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), "2023-12-01"},
		// already April in Brisbane
		{"local month", time.Date(2024, 3, 31, 20, 0, 0, 0, time.UTC), "2024-03-01"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PreviousPeriod(tt.now, brisbane))
		})
	}
}

func TestResolvePeriod(t *testing.T) {
	now := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)

	period, err := ResolvePeriod(nil, now, time.UTC)
	require.NoError(t, err)
	assert.Equal(t, "2024-02-01", period)

	period, err = ResolvePeriod(json.RawMessage(`{"month":"2023-11"}`), now, time.UTC)
	require.NoError(t, err)
	assert.Equal(t, "2023-11-01", period)

	_, err = ResolvePeriod(json.RawMessage(`{"month":"November"}`), now, time.UTC)
	assert.Error(t, err)

	_, err = ResolvePeriod(json.RawMessage(`[]`), now, time.UTC)
	assert.Error(t, err)
}

func TestRun(t *testing.T) {
	ctx := context.Background()
	fake := hrpayrolltest.New()
	ts := httptest.NewServer(fake.Handler())
	defer ts.Close()
	client := v1.NewHrPayrollClient(ts.URL+"/api/v1", "")
	client.Transport.Logger = nil

	ana := fake.SeedEmployee(v1.EmployeeFields{Name: "Ana", Position: "Clerk", BaseSalary: 2200, Allowance: 100})
	ben := fake.SeedEmployee(v1.EmployeeFields{Name: "Ben", Position: "Driver", BaseSalary: 1000})
	_, err := client.Payroll.Generate(ctx, v1.GeneratePayrollInput{EmployeeID: ben.ID, Period: "2024-02-01"})
	require.NoError(t, err)

	summary, err := Run(ctx, client.Employees, client.Payroll, "2024-02-01")
	require.NoError(t, err)

	require.Len(t, summary.Generated, 1)
	assert.Equal(t, ana.ID, summary.Generated[0].EmployeeID)
	assert.Equal(t, 2300.0, summary.Generated[0].TakeHomePay)
	require.Len(t, summary.Failed, 1)
	assert.Equal(t, "payroll already generated for this employee and period", summary.Failed[0].Error)

	assert.Equal(t, "Payroll run 2024-02-01: 1 generated, 1 failed", summary.Subject())
	assert.Contains(t, summary.Text(), "1 Ana: slip 2, take home 2300")
	assert.Contains(t, summary.Text(), "2 Ben: payroll already generated")
}

func TestRunListFailure(t *testing.T) {
	fake := hrpayrolltest.New()
	ts := httptest.NewServer(fake.Handler())
	defer ts.Close()
	client := v1.NewHrPayrollClient(ts.URL+"/api/v1", "")
	client.Transport.Logger = nil
	fake.FailNext("GET", "/api/v1/employees", 500, `{"error":"database unavailable"}`)

	_, err := Run(context.Background(), client.Employees, client.Payroll, "2024-02-01")
	require.Error(t, err)
	assert.Equal(t, "list employees: database unavailable", err.Error())
}

type recordingNotifier struct {
	info, errors []string
	fail         error
}

func (n *recordingNotifier) Info(message string) error {
	n.info = append(n.info, message)
	return n.fail
}

func (n *recordingNotifier) Error(message string) error {
	n.errors = append(n.errors, message)
	return n.fail
}

func TestNotify(t *testing.T) {
	clean := &Summary{Period: "2024-02-01", Generated: []Outcome{{EmployeeID: 1, Name: "Ana", SlipID: 3, TakeHomePay: 2300}}}
	partial := &Summary{Period: "2024-02-01", Failed: []Outcome{{EmployeeID: 2, Name: "Ben", Error: "employee not found"}}}

	tests := []struct {
		name      string
		summary   *Summary
		runErr    error
		wantInfo  int
		wantError string
	}{
		{name: "clean run", summary: clean, wantInfo: 1},
		{name: "rejected employees", summary: partial, wantError: "Payroll run 2024-02-01: 0 generated, 1 failed"},
		{name: "failed run", runErr: errors.New("list employees: database unavailable"), wantError: "Payroll run 2024-02-01 failed: list employees: database unavailable"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := &recordingNotifier{}
			require.NoError(t, Notify(n, "2024-02-01", tt.summary, tt.runErr))
			assert.Len(t, n.info, tt.wantInfo)
			if tt.wantError == "" {
				assert.Empty(t, n.errors)
				return
			}
			require.Len(t, n.errors, 1)
			assert.Contains(t, n.errors[0], tt.wantError)
		})
	}
}

func TestNotifyReturnsSlackFailure(t *testing.T) {
	n := &recordingNotifier{fail: errors.New("channel_not_found")}

	err := Notify(n, "2024-02-01", nil, errors.New("list employees: timeout"))

	assert.EqualError(t, err, "channel_not_found")
	assert.Len(t, n.errors, 1)
}
