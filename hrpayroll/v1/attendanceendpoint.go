package v1

import (
	"context"
	"time"

	"axiapac.com/hrdesk/hrpayroll/v1/common/status"
)

type AttendanceDTO struct {
	ID         uint          `json:"id"`
	EmployeeID uint          `json:"employee_id"`
	Date       time.Time     `json:"date"`
	Status     status.Status `json:"status"`
	CheckIn    *time.Time    `json:"check_in"`
	CheckOut   *time.Time    `json:"check_out"`
	CreatedAt  time.Time     `json:"created_at"`
}

// AttendanceInput records one day for one employee. Date is midnight UTC of the
// calendar day; CheckIn is only sent for PRESENT.
type AttendanceInput struct {
	EmployeeID uint          `json:"employee_id"`
	Date       time.Time     `json:"date"`
	Status     status.Status `json:"status"`
	CheckIn    *time.Time    `json:"check_in,omitempty"`
}

type CheckoutInput struct {
	EmployeeID uint `json:"employee_id"`
}

type AttendanceEndpoint struct {
	transport *Transport
}

func (ep *AttendanceEndpoint) Create(ctx context.Context, input AttendanceInput) (*AttendanceDTO, error) {
	resp, err := ep.transport.Post(ctx, "/attendances", input, nil)
	if err != nil {
		return nil, err
	}
	return decode[*AttendanceDTO](resp, statusCreated)
}

// Checkout stamps the check-out time on the employee's open record for today.
// The backend locates the record.
func (ep *AttendanceEndpoint) Checkout(ctx context.Context, employeeID uint) (*AttendanceDTO, error) {
	resp, err := ep.transport.Put(ctx, "/attendances/checkout", CheckoutInput{EmployeeID: employeeID}, nil)
	if err != nil {
		return nil, err
	}
	return decode[*AttendanceDTO](resp, statusOK)
}

// Search lists an employee's records between from and to (YYYY-MM-DD, inclusive).
// Values are sent as given.
func (ep *AttendanceEndpoint) Search(ctx context.Context, employeeID, from, to string) ([]AttendanceDTO, error) {
	resp, err := ep.transport.Get(ctx, "/attendances", map[string]string{
		"employee_id": employeeID,
		"from":        from,
		"to":          to,
	})
	if err != nil {
		return nil, err
	}
	return decode[[]AttendanceDTO](resp, statusOK)
}
