// Package hrpayrolltest is an in-memory stand-in for the HR payroll REST service.
// It follows the service's public contract closely enough to drive the desk end to end.
package hrpayrolltest

import (
	"bytes"
	"io"
	"net/http"
	"strconv"
	"sync"
	"time"

	v1 "axiapac.com/hrdesk/hrpayroll/v1"
	"axiapac.com/hrdesk/hrpayroll/v1/common"
	"axiapac.com/hrdesk/hrpayroll/v1/common/status"
	"axiapac.com/hrdesk/utils"
	"github.com/gin-gonic/gin"
)

const workingDaysInMonth = 22

type Request struct {
	Method string
	Path   string
	Query  string
	Body   []byte
}

type failure struct {
	status int
	body   string
}

type Server struct {
	mu sync.Mutex

	Now func() time.Time

	employees   []v1.EmployeeDTO
	attendances []v1.AttendanceDTO
	slips       []v1.PayrollSlipDTO
	nextID      map[string]uint

	requests []Request
	failures map[string]failure
	holds    map[string]chan struct{}
}

func New() *Server {
	gin.SetMode(gin.TestMode)
	return &Server{
		Now:      time.Now,
		nextID:   map[string]uint{},
		failures: map[string]failure{},
		holds:    map[string]chan struct{}{},
	}
}

// Handler returns the routes mounted under /api/v1.
func (s *Server) Handler() http.Handler {
	r := gin.New()
	r.Use(gin.Recovery(), s.record)
	s.Register(r.Group("/api/v1"))
	return r
}

func (s *Server) Register(r *gin.RouterGroup) {
	r.POST("/employees", s.createEmployee)
	r.GET("/employees", s.listEmployees)
	r.GET("/employees/:id", s.getEmployee)
	r.PUT("/employees/:id", s.updateEmployee)

	r.POST("/attendances", s.recordAttendance)
	r.PUT("/attendances/checkout", s.recordCheckout)
	r.GET("/attendances", s.attendanceByPeriod)

	r.POST("/payroll/generate", s.generatePayroll)
	r.GET("/payroll/slips", s.listSlips)
	r.GET("/payroll/slips/:id", s.getSlip)
}

// FailNext makes the next request to method+path answer status with the raw body.
func (s *Server) FailNext(method, path string, status int, body string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[method+" "+path] = failure{status: status, body: body}
}

// Hold blocks requests to method+path until the returned func is called.
func (s *Server) Hold(method, path string) func() {
	ch := make(chan struct{})
	s.mu.Lock()
	s.holds[method+" "+path] = ch
	s.mu.Unlock()
	return func() { close(ch) }
}

// Requests returns every request received so far, oldest first.
func (s *Server) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Request, len(s.requests))
	copy(out, s.requests)
	return out
}

// Hits counts requests received for method+path.
func (s *Server) Hits(method, path string) int {
	n := 0
	for _, r := range s.Requests() {
		if r.Method == method && r.Path == path {
			n++
		}
	}
	return n
}

func (s *Server) SeedEmployee(fields v1.EmployeeFields) v1.EmployeeDTO {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.insertEmployee(fields)
}

func (s *Server) SeedAttendance(att v1.AttendanceDTO) v1.AttendanceDTO {
	s.mu.Lock()
	defer s.mu.Unlock()
	att.ID = s.next("attendance")
	att.CreatedAt = s.Now()
	s.attendances = append(s.attendances, att)
	return att
}

func (s *Server) record(c *gin.Context) {
	body, _ := io.ReadAll(c.Request.Body)
	c.Request.Body = io.NopCloser(bytes.NewReader(body))

	key := c.Request.Method + " " + c.Request.URL.Path
	s.mu.Lock()
	s.requests = append(s.requests, Request{
		Method: c.Request.Method,
		Path:   c.Request.URL.Path,
		Query:  c.Request.URL.RawQuery,
		Body:   body,
	})
	f, failing := s.failures[key]
	delete(s.failures, key)
	hold := s.holds[key]
	delete(s.holds, key)
	s.mu.Unlock()

	if hold != nil {
		<-hold
	}
	if failing {
		c.Data(f.status, "application/json", []byte(f.body))
		c.Abort()
		return
	}
	c.Next()
}

func (s *Server) next(kind string) uint {
	s.nextID[kind]++
	return s.nextID[kind]
}

func (s *Server) insertEmployee(fields v1.EmployeeFields) v1.EmployeeDTO {
	now := s.Now()
	emp := v1.EmployeeDTO{
		ID:         s.next("employee"),
		Name:       fields.Name,
		Position:   fields.Position,
		BaseSalary: fields.BaseSalary,
		Allowance:  fields.Allowance,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	s.employees = append(s.employees, emp)
	return emp
}

func (s *Server) findEmployee(id uint) *v1.EmployeeDTO {
	return utils.Find(s.employees, func(e *v1.EmployeeDTO) bool { return e.ID == id })
}

func (s *Server) findAttendance(employeeID uint, date time.Time) *v1.AttendanceDTO {
	return utils.Find(s.attendances, func(a *v1.AttendanceDTO) bool {
		return a.EmployeeID == employeeID && a.Date.Equal(date)
	})
}

func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID format"})
		return 0, false
	}
	return uint(id), true
}

func midnightUTC(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func (s *Server) createEmployee(c *gin.Context) {
	var req v1.EmployeeFields
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	s.mu.Lock()
	emp := s.insertEmployee(req)
	s.mu.Unlock()

	c.JSON(http.StatusCreated, emp)
}

func (s *Server) listEmployees(c *gin.Context) {
	s.mu.Lock()
	employees := append([]v1.EmployeeDTO{}, s.employees...)
	s.mu.Unlock()

	c.JSON(http.StatusOK, employees)
}

func (s *Server) getEmployee(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	emp := s.findEmployee(id)
	if emp == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Employee not found"})
		return
	}
	c.JSON(http.StatusOK, *emp)
}

func (s *Server) updateEmployee(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req v1.EmployeeFields
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	emp := s.findEmployee(id)
	if emp == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Employee not found"})
		return
	}
	emp.Name = req.Name
	emp.Position = req.Position
	emp.BaseSalary = req.BaseSalary
	emp.Allowance = req.Allowance
	emp.UpdatedAt = s.Now()

	c.JSON(http.StatusOK, *emp)
}

func (s *Server) recordAttendance(c *gin.Context) {
	var req v1.AttendanceInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}
	date := midnightUTC(req.Date)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.findAttendance(req.EmployeeID, date) != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "attendance already recorded for this employee on this date"})
		return
	}
	if !req.Status.Valid() {
		c.JSON(http.StatusConflict, gin.H{"error": "invalid attendance status: must be PRESENT, ABSENT, or LEAVE"})
		return
	}
	if req.Status == status.Present && req.CheckIn == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "check-in time is mandatory for PRESENT status"})
		return
	}

	att := v1.AttendanceDTO{
		ID:         s.next("attendance"),
		EmployeeID: req.EmployeeID,
		Date:       date,
		Status:     req.Status,
		CheckIn:    req.CheckIn,
		CreatedAt:  s.Now(),
	}
	s.attendances = append(s.attendances, att)

	c.JSON(http.StatusCreated, att)
}

func (s *Server) recordCheckout(c *gin.Context) {
	var req v1.CheckoutInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.Now()
	att := s.findAttendance(req.EmployeeID, midnightUTC(now))
	if att == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "no check-in record found for today"})
		return
	}
	if att.CheckOut != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "already checked out for today"})
		return
	}
	att.CheckOut = &now

	c.JSON(http.StatusOK, *att)
}

func (s *Server) attendanceByPeriod(c *gin.Context) {
	employeeID, err := strconv.ParseUint(c.Query("employee_id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid employee_id format"})
		return
	}
	from, err := common.ParseDateOnly(c.Query("from"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid 'from' date format, use YYYY-MM-DD"})
		return
	}
	to, err := common.ParseDateOnly(c.Query("to"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid 'to' date format, use YYYY-MM-DD"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	records := utils.Filter(s.attendances, func(att v1.AttendanceDTO) bool {
		return att.EmployeeID == uint(employeeID) && !att.Date.Before(from.Time) && !att.Date.After(to.Time)
	})

	c.JSON(http.StatusOK, records)
}

type generateRequest struct {
	EmployeeID uint            `json:"employee_id"`
	Period     common.DateOnly `json:"period"`
}

func (s *Server) generatePayroll(c *gin.Context) {
	var req generateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}
	// an empty period decodes to the zero date
	if req.Period.IsZero() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid period format. Use YYYY-MM-DD"})
		return
	}
	period := req.Period.Time

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, slip := range s.slips {
		if slip.EmployeeID == req.EmployeeID && slip.Period.Equal(period) {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "payroll already generated for this employee and period"})
			return
		}
	}
	found := s.findEmployee(req.EmployeeID)
	if found == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "employee not found"})
		return
	}
	emp := *found

	from := time.Date(period.Year(), period.Month(), 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, 0)
	absent := 0
	for _, att := range s.attendances {
		if att.EmployeeID == emp.ID && att.Status == status.Absent && !att.Date.Before(from) && att.Date.Before(to) {
			absent++
		}
	}
	deduction := emp.BaseSalary / workingDaysInMonth * float64(absent)

	slip := v1.PayrollSlipDTO{
		ID:               s.next("payroll"),
		EmployeeID:       emp.ID,
		Period:           period,
		BaseSalary:       emp.BaseSalary,
		Allowance:        emp.Allowance,
		TotalAbsent:      absent,
		AbsenceDeduction: deduction,
		TakeHomePay:      emp.BaseSalary + emp.Allowance - deduction,
		GeneratedAt:      s.Now(),
	}
	s.slips = append(s.slips, slip)

	c.JSON(http.StatusCreated, slip)
}

func (s *Server) listSlips(c *gin.Context) {
	s.mu.Lock()
	slips := append([]v1.PayrollSlipDTO{}, s.slips...)
	s.mu.Unlock()

	c.JSON(http.StatusOK, slips)
}

func (s *Server) getSlip(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	slip := utils.Find(s.slips, func(p *v1.PayrollSlipDTO) bool { return p.ID == id })
	if slip == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve payroll detail"})
		return
	}
	c.JSON(http.StatusOK, *slip)
}
