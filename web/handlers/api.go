package handlers

import (
	"net/http"

	"axiapac.com/hrdesk/web/common"
	"github.com/gin-gonic/gin"
)

// ListEmployees returns the Registry as last fetched.
func (ep *Endpoint) ListEmployees(c *gin.Context) {
	employees := ep.desk.Registry.Snapshot()
	c.JSON(http.StatusOK, common.NewSearchResponse(employees, int64(len(employees))))
}

// ListSlips returns the slip list as last fetched.
func (ep *Endpoint) ListSlips(c *gin.Context) {
	slips := ep.desk.Payroll.Slips()
	c.JSON(http.StatusOK, common.NewSearchResponse(slips, int64(len(slips))))
}
