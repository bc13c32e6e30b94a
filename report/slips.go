package report

import (
	"fmt"
	"io"
	"sort"

	"axiapac.com/hrdesk/desk"
	v1 "axiapac.com/hrdesk/hrpayroll/v1"
	"axiapac.com/hrdesk/utils"
	"github.com/xuri/excelize/v2"
)

const (
	SlipsSheet   = "Payroll Slips"
	PeriodsSheet = "By Period"

	ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

var (
	slipHeader   = []any{"ID", "Employee", "Period", "Base Salary", "Allowance", "Absences", "Absence Deduction", "Take Home Pay", "Generated"}
	periodHeader = []any{"Period", "Slips", "Total Take Home Pay"}
)

// WriteSlips writes the slips as an xlsx workbook: one row per slip in the given
// order, plus a per-period summary sheet.
func WriteSlips(w io.Writer, slips []v1.PayrollSlipDTO, loc desk.Locale) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SlipsSheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	if err := setRow(f, SlipsSheet, 1, slipHeader); err != nil {
		return err
	}
	for i, s := range slips {
		row := []any{
			s.ID,
			s.EmployeeID,
			loc.Day(s.Period),
			s.BaseSalary,
			s.Allowance,
			s.TotalAbsent,
			s.AbsenceDeduction,
			s.TakeHomePay,
			loc.DateTime(s.GeneratedAt),
		}
		if err := setRow(f, SlipsSheet, i+2, row); err != nil {
			return err
		}
	}

	if _, err := f.NewSheet(PeriodsSheet); err != nil {
		return fmt.Errorf("add sheet: %w", err)
	}
	if err := setRow(f, PeriodsSheet, 1, periodHeader); err != nil {
		return err
	}
	byPeriod := utils.GroupBy(slips, func(s v1.PayrollSlipDTO) string {
		return s.Period.UTC().Format("2006-01")
	})
	periods := make([]string, 0, len(byPeriod))
	for p := range byPeriod {
		periods = append(periods, p)
	}
	sort.Strings(periods)
	for i, p := range periods {
		total := 0.0
		for _, s := range byPeriod[p] {
			total += s.TakeHomePay
		}
		if err := setRow(f, PeriodsSheet, i+2, []any{p, len(byPeriod[p]), total}); err != nil {
			return err
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func setRow(f *excelize.File, sheet string, row int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("write %s row %d: %w", sheet, row, err)
	}
	return nil
}
