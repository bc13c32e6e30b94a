package desk

import (
	"context"
	"fmt"
	"reflect"
	"regexp"
	"strconv"
	"strings"
	"sync"

	v1 "axiapac.com/hrdesk/hrpayroll/v1"
	"github.com/go-playground/validator/v10"
)

type EmployeeService interface {
	List(ctx context.Context) ([]v1.EmployeeDTO, error)
	Create(ctx context.Context, fields v1.EmployeeFields) (*v1.EmployeeDTO, error)
	Update(ctx context.Context, id uint, fields v1.EmployeeFields) (*v1.EmployeeDTO, error)
}

// FormMode is either Create or Edit of one existing employee.
type FormMode struct {
	editing    bool
	employeeID uint
}

func CreateMode() FormMode {
	return FormMode{}
}

func EditMode(employeeID uint) FormMode {
	return FormMode{editing: true, employeeID: employeeID}
}

// EmployeeID reports the employee under edit.
func (m FormMode) EmployeeID() (uint, bool) {
	return m.employeeID, m.editing
}

func (m FormMode) SubmitLabel() string {
	if m.editing {
		return "Update"
	}
	return "Create"
}

func (m FormMode) String() string {
	if m.editing {
		return fmt.Sprintf("EDIT(%d)", m.employeeID)
	}
	return "CREATE"
}

// EmployeeInput is the raw text of the employee form.
type EmployeeInput struct {
	Name       string `validate:"required"`
	Position   string `validate:"required"`
	BaseSalary string `validate:"decimal"`
	Allowance  string `validate:"decimal"`
}

var (
	validate = newValidator()

	// first failing field in declaration order wins
	employeeMessages = map[string]string{
		"Name":       "Name is required",
		"Position":   "Position is required",
		"BaseSalary": "Base salary must be a number",
		"Allowance":  "Allowance must be a number",
	}
)

func newValidator() *validator.Validate {
	v := validator.New()
	err := v.RegisterValidation("decimal", func(fl validator.FieldLevel) bool {
		if fl.Field().Kind() != reflect.String {
			return false
		}
		_, err := parseAmount(fl.Field().String())
		return err == nil
	})
	if err != nil {
		panic(err)
	}
	return v
}

// plain decimal text as a number input accepts it; no hex, no NaN or Inf
var amountPattern = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?$`)

func parseAmount(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if !amountPattern.MatchString(s) {
		return 0, fmt.Errorf("%q is not a decimal number", s)
	}
	return strconv.ParseFloat(s, 64)
}

// Validate trims the text fields and checks the rules in order. It returns the
// request body, or the message of the first broken rule.
func (in EmployeeInput) Validate() (v1.EmployeeFields, string) {
	in.Name = strings.TrimSpace(in.Name)
	in.Position = strings.TrimSpace(in.Position)

	if err := validate.Struct(in); err != nil {
		if ve, ok := err.(validator.ValidationErrors); ok && len(ve) > 0 {
			return v1.EmployeeFields{}, employeeMessages[ve[0].StructField()]
		}
		return v1.EmployeeFields{}, err.Error()
	}

	baseSalary, _ := parseAmount(in.BaseSalary)
	allowance, _ := parseAmount(in.Allowance)
	return v1.EmployeeFields{
		Name:       in.Name,
		Position:   in.Position,
		BaseSalary: baseSalary,
		Allowance:  allowance,
	}, ""
}

// EmployeeList fetches the employee list into the Registry and renders it.
type EmployeeList struct {
	service  EmployeeService
	registry *Registry
	locale   Locale

	Message StatusLine

	mu    sync.RWMutex
	table Table
}

func NewEmployeeList(service EmployeeService, registry *Registry, locale Locale) *EmployeeList {
	return &EmployeeList{
		service:  service,
		registry: registry,
		locale:   locale,
		table:    RenderEmployees(nil, locale),
	}
}

// Fetch replaces the Registry on success. On failure the Registry keeps its
// previous contents and the table shows the empty state.
func (l *EmployeeList) Fetch(ctx context.Context) {
	l.Message.Set("Loading...")
	employees, err := l.service.List(ctx)
	if err != nil {
		l.Message.Set("Failed to load employees: " + v1.ErrorMessage(err))
		l.setTable(RenderEmployees(nil, l.locale))
		return
	}

	l.registry.Replace(employees)
	l.setTable(RenderEmployees(employees, l.locale))
	l.Message.Set("")
}

func (l *EmployeeList) setTable(t Table) {
	l.mu.Lock()
	l.table = t
	l.mu.Unlock()
}

func (l *EmployeeList) Table() Table {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.table
}

// EmployeeForm drives creation and editing of employees.
type EmployeeForm struct {
	service  EmployeeService
	registry *Registry
	refresh  func(ctx context.Context)

	Message StatusLine

	mu    sync.RWMutex
	input EmployeeInput
	mode  FormMode
}

func NewEmployeeForm(service EmployeeService, registry *Registry, refresh func(ctx context.Context)) *EmployeeForm {
	return &EmployeeForm{service: service, registry: registry, refresh: refresh}
}

func (f *EmployeeForm) SetInput(in EmployeeInput) {
	f.mu.Lock()
	f.input = in
	f.mu.Unlock()
}

func (f *EmployeeForm) Input() EmployeeInput {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.input
}

func (f *EmployeeForm) Mode() FormMode {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.mode
}

// BeginEdit copies a cached employee into the form and switches to Edit.
// Unknown ids are ignored.
func (f *EmployeeForm) BeginEdit(id uint) bool {
	emp, ok := f.registry.Lookup(id)
	if !ok {
		return false
	}

	f.mu.Lock()
	f.input = EmployeeInput{
		Name:       emp.Name,
		Position:   emp.Position,
		BaseSalary: formatNumber(emp.BaseSalary),
		Allowance:  formatNumber(emp.Allowance),
	}
	f.mode = EditMode(emp.ID)
	f.mu.Unlock()
	return true
}

// reset clears the fields and returns to Create.
func (f *EmployeeForm) reset() {
	f.mu.Lock()
	f.input = EmployeeInput{}
	f.mode = CreateMode()
	f.mu.Unlock()
}

// Submit validates the form and creates or updates depending on the mode.
// Success resets the form and refetches the list once; failure leaves the form as is.
func (f *EmployeeForm) Submit(ctx context.Context) {
	f.mu.RLock()
	in, mode := f.input, f.mode
	f.mu.RUnlock()

	fields, problem := in.Validate()
	if problem != "" {
		f.Message.Set(problem)
		return
	}

	if id, editing := mode.EmployeeID(); editing {
		f.update(ctx, id, fields)
		return
	}
	f.create(ctx, fields)
}

func (f *EmployeeForm) create(ctx context.Context, fields v1.EmployeeFields) {
	f.Message.Set("Creating...")
	created, err := f.service.Create(ctx, fields)
	if err != nil {
		f.Message.Set("Failed to create: " + v1.ErrorMessage(err))
		return
	}

	f.Message.Set(fmt.Sprintf("Employee created (ID: %s)", employeeIDText(created)))
	f.reset()
	f.refresh(ctx)
}

func (f *EmployeeForm) update(ctx context.Context, id uint, fields v1.EmployeeFields) {
	f.Message.Set("Updating...")
	updated, err := f.service.Update(ctx, id, fields)
	if err != nil {
		f.Message.Set("Failed to update: " + v1.ErrorMessage(err))
		return
	}

	f.Message.Set(fmt.Sprintf("Employee updated (ID: %s)", employeeIDText(updated)))
	f.reset()
	f.refresh(ctx)
}

func employeeIDText(e *v1.EmployeeDTO) string {
	if e == nil {
		return "?"
	}
	return formatID(e.ID)
}
