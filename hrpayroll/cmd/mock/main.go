package main

import (
	"fmt"
	"log"
	"os"
	"time"

	v1 "axiapac.com/hrdesk/hrpayroll/v1"
	"axiapac.com/hrdesk/hrpayroll/v1/common/status"
	"axiapac.com/hrdesk/hrpayroll/v1/hrpayrolltest"
	"axiapac.com/hrdesk/utils"
	"github.com/gin-gonic/gin"
)

// mock serves an in-memory HR payroll backend with a week of attendance for local runs.
func main() {
	addr := ":8080"
	if v := os.Getenv("HRDESK_MOCK_LISTEN"); v != "" {
		addr = v
	}

	srv := hrpayrolltest.New()
	gin.SetMode(gin.DebugMode)

	employees := []v1.EmployeeFields{
		{Name: "Ana Lima", Position: "Clerk", BaseSalary: 2200, Allowance: 150},
		{Name: "Ben Okafor", Position: "Driver", BaseSalary: 1980, Allowance: 90.5},
		{Name: "Chen Wei", Position: "Supervisor", BaseSalary: 3100, Allowance: 300},
	}

	today := time.Now().UTC().Truncate(24 * time.Hour)
	startDate := today.AddDate(0, 0, -7)

	count := 0
	for i, fields := range employees {
		emp := srv.SeedEmployee(fields)
		for d := startDate; d.Before(today); d = d.AddDate(0, 0, 1) {
			att := v1.AttendanceDTO{EmployeeID: emp.ID, Date: d, Status: status.Present}
			// every employee misses one day of the week
			switch d.Weekday() {
			case time.Monday + time.Weekday(i):
				att.Status = status.Absent
			case time.Saturday, time.Sunday:
				continue
			default:
				att.CheckIn = utils.Ptr(d.Add(8 * time.Hour))
				att.CheckOut = utils.Ptr(d.Add(16 * time.Hour))
			}
			srv.SeedAttendance(att)
			count++
		}
	}

	fmt.Printf("Seeded %d employees and %d attendance records\n", len(employees), count)
	fmt.Printf("Mock backend on http://localhost%s/api/v1\n", addr)

	r := gin.Default()
	srv.Register(r.Group("/api/v1"))
	if err := r.Run(addr); err != nil {
		log.Fatalf("mock server: %v", err)
	}
}
