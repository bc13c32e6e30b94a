package v1

type HrPayrollClient struct {
	Transport   *Transport
	Employees   *EmployeeEndpoint
	Attendances *AttendanceEndpoint
	Payroll     *PayrollEndpoint
}

// NewHrPayrollClient initializes the API client. baseURL includes the /api/v1 prefix.
func NewHrPayrollClient(baseURL string, token string) *HrPayrollClient {
	t := NewTransport(baseURL, token)
	return &HrPayrollClient{
		Transport:   t,
		Employees:   &EmployeeEndpoint{transport: t},
		Attendances: &AttendanceEndpoint{transport: t},
		Payroll:     &PayrollEndpoint{transport: t},
	}
}
