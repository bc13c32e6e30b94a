package handlers

import (
	"context"
	"errors"
	"net/http"

	"axiapac.com/hrdesk/desk"
	v1 "axiapac.com/hrdesk/hrpayroll/v1"
	"axiapac.com/hrdesk/web/common"
	"github.com/gin-gonic/gin"
)

type EmployeeFormDTO struct {
	Name       string `form:"name"`
	Position   string `form:"position"`
	BaseSalary string `form:"base_salary"`
	Allowance  string `form:"allowance"`
}

type IDFormDTO struct {
	ID uint `form:"id" binding:"required"`
}

type ViewFormDTO struct {
	View string `form:"view" binding:"required"`
}

type EmployeeSelectDTO struct {
	EmployeeID string `form:"employee_id"`
}

type HistoryFormDTO struct {
	EmployeeID string `form:"employee_id"`
	From       string `form:"from"`
	To         string `form:"to"`
}

type PayrollFormDTO struct {
	EmployeeID string `form:"employee_id"`
	Month      string `form:"month"`
}

// Act copies the posted form into the desk, dispatches the action and sends the
// browser back to the page. Outcomes are shown on the page's status lines.
func (ep *Endpoint) Act(c *gin.Context) {
	action := desk.Action{Kind: desk.ActionKind(c.Param("action"))}
	if err := ep.bind(c, &action); err != nil {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse(common.FormatBindingError(err)))
		return
	}

	// a response that arrives after the browser left is still applied
	ctx := context.WithoutCancel(c.Request.Context())
	if id, ok := c.Get(common.RequestIDKey); ok {
		ctx = v1.WithRequestID(ctx, id.(string))
	}

	if err := ep.desk.Dispatcher.Dispatch(ctx, action); err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, desk.ErrUnknownAction) {
			status = http.StatusNotFound
		}
		c.JSON(status, common.NewErrorResponse(err.Error()))
		return
	}

	c.Redirect(http.StatusSeeOther, "/")
}

func (ep *Endpoint) bind(c *gin.Context, action *desk.Action) error {
	switch action.Kind {
	case desk.ActionSwitchView:
		var dto ViewFormDTO
		if err := c.ShouldBind(&dto); err != nil {
			return err
		}
		action.View = desk.View(dto.View)

	case desk.ActionEditEmployee, desk.ActionViewSlip:
		var dto IDFormDTO
		if err := c.ShouldBind(&dto); err != nil {
			return err
		}
		action.ID = dto.ID

	case desk.ActionSubmitEmployee:
		var dto EmployeeFormDTO
		if err := c.ShouldBind(&dto); err != nil {
			return err
		}
		ep.desk.EmployeeForm.SetInput(desk.EmployeeInput{
			Name:       dto.Name,
			Position:   dto.Position,
			BaseSalary: dto.BaseSalary,
			Allowance:  dto.Allowance,
		})

	case desk.ActionCheckIn, desk.ActionCheckout, desk.ActionMarkAbsent, desk.ActionMarkLeave:
		var dto EmployeeSelectDTO
		if err := c.ShouldBind(&dto); err != nil {
			return err
		}
		ep.desk.Attendance.Select(dto.EmployeeID)

	case desk.ActionQueryAttendance:
		var dto HistoryFormDTO
		if err := c.ShouldBind(&dto); err != nil {
			return err
		}
		ep.desk.Attendance.SetQuery(desk.HistoryQuery{EmployeeID: dto.EmployeeID, From: dto.From, To: dto.To})

	case desk.ActionGeneratePayroll:
		var dto PayrollFormDTO
		if err := c.ShouldBind(&dto); err != nil {
			return err
		}
		ep.desk.Payroll.SetInput(desk.PayrollInput{EmployeeID: dto.EmployeeID, Month: dto.Month})
	}
	return nil
}
