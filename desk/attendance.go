package desk

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	v1 "axiapac.com/hrdesk/hrpayroll/v1"
	"axiapac.com/hrdesk/hrpayroll/v1/common"
	"axiapac.com/hrdesk/hrpayroll/v1/common/status"
)

type AttendanceService interface {
	Create(ctx context.Context, input v1.AttendanceInput) (*v1.AttendanceDTO, error)
	Checkout(ctx context.Context, employeeID uint) (*v1.AttendanceDTO, error)
	Search(ctx context.Context, employeeID, from, to string) ([]v1.AttendanceDTO, error)
}

// HistoryQuery is the raw text of the history form. From and To are YYYY-MM-DD.
type HistoryQuery struct {
	EmployeeID string
	From       string
	To         string
}

// AttendanceController records attendance events for the selected employee and
// runs history queries.
type AttendanceController struct {
	service AttendanceService
	locale  Locale
	now     func() time.Time

	Message        StatusLine
	HistoryMessage StatusLine

	mu       sync.RWMutex
	selected string
	query    HistoryQuery
	table    Table
}

func NewAttendanceController(service AttendanceService, locale Locale, now func() time.Time) *AttendanceController {
	if now == nil {
		now = time.Now
	}
	today := locale.Today(now()).Format(common.DateLayout)
	return &AttendanceController{
		service: service,
		locale:  locale,
		now:     now,
		query:   HistoryQuery{From: today, To: today},
		table:   RenderAttendance(nil, locale),
	}
}

func (c *AttendanceController) Select(employeeID string) {
	c.mu.Lock()
	c.selected = employeeID
	c.mu.Unlock()
}

func (c *AttendanceController) Selected() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.selected
}

func (c *AttendanceController) SetQuery(q HistoryQuery) {
	c.mu.Lock()
	c.query = q
	c.mu.Unlock()
}

func (c *AttendanceController) Query() HistoryQuery {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.query
}

func (c *AttendanceController) HistoryTable() Table {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.table
}

func parseEmployeeID(s string) (uint, bool) {
	id, err := strconv.ParseUint(strings.TrimSpace(s), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

// selectedEmployee returns the selected id, or reports the problem on the entry line.
func (c *AttendanceController) selectedEmployee() (uint, bool) {
	id, ok := parseEmployeeID(c.Selected())
	if !ok {
		c.Message.Set("Employee is required.")
	}
	return id, ok
}

func (c *AttendanceController) CheckIn(ctx context.Context) {
	id, ok := c.selectedEmployee()
	if !ok {
		return
	}
	now := c.now()
	checkIn := now.UTC()
	c.record(ctx, v1.AttendanceInput{
		EmployeeID: id,
		Date:       c.locale.Today(now),
		Status:     status.Present,
		CheckIn:    &checkIn,
	})
}

func (c *AttendanceController) MarkAbsent(ctx context.Context) {
	c.markDay(ctx, status.Absent)
}

func (c *AttendanceController) MarkLeave(ctx context.Context) {
	c.markDay(ctx, status.Leave)
}

func (c *AttendanceController) markDay(ctx context.Context, st status.Status) {
	id, ok := c.selectedEmployee()
	if !ok {
		return
	}
	c.record(ctx, v1.AttendanceInput{
		EmployeeID: id,
		Date:       c.locale.Today(c.now()),
		Status:     st,
	})
}

func (c *AttendanceController) record(ctx context.Context, input v1.AttendanceInput) {
	c.Message.Set("Recording...")
	rec, err := c.service.Create(ctx, input)
	if err != nil {
		c.Message.Set("Failed to record: " + v1.ErrorMessage(err))
		return
	}
	c.Message.Set(fmt.Sprintf("Attendance recorded (ID: %s)", attendanceIDText(rec)))
	c.Select("")
}

// Checkout sends only the employee id; the backend finds today's open record.
func (c *AttendanceController) Checkout(ctx context.Context) {
	id, ok := c.selectedEmployee()
	if !ok {
		return
	}

	c.Message.Set("Recording checkout...")
	rec, err := c.service.Checkout(ctx, id)
	if err != nil {
		c.Message.Set("Failed to record checkout: " + v1.ErrorMessage(err))
		return
	}
	c.Message.Set(fmt.Sprintf("Checkout recorded (ID: %s)", attendanceIDText(rec)))
	c.Select("")
}

// SearchHistory only checks that every field is present. The range itself goes out as typed.
func (c *AttendanceController) SearchHistory(ctx context.Context) {
	q := c.Query()
	employeeID := strings.TrimSpace(q.EmployeeID)
	if employeeID == "" || q.From == "" || q.To == "" {
		c.HistoryMessage.Set("Employee, from date, and to date are required.")
		return
	}

	c.HistoryMessage.Set("Loading...")
	records, err := c.service.Search(ctx, employeeID, q.From, q.To)
	if err != nil {
		c.HistoryMessage.Set("Failed to load attendance history: " + v1.ErrorMessage(err))
		c.setTable(RenderAttendance(nil, c.locale))
		return
	}
	c.setTable(RenderAttendance(records, c.locale))
	c.HistoryMessage.Set("")
}

func (c *AttendanceController) setTable(t Table) {
	c.mu.Lock()
	c.table = t
	c.mu.Unlock()
}

func attendanceIDText(a *v1.AttendanceDTO) string {
	if a == nil {
		return "?"
	}
	return formatID(a.ID)
}
