package handlers

import (
	"bytes"
	"fmt"
	"log"
	"net/http"
	"path"
	"strings"
	"time"

	"axiapac.com/hrdesk/report"
	"axiapac.com/hrdesk/web/common"
	"github.com/gin-gonic/gin"
)

const archiveNameLayout = "20060102-150405"

// ExportSlips downloads the current slip list as a workbook.
func (ep *Endpoint) ExportSlips(c *gin.Context) {
	var buf bytes.Buffer
	if err := report.WriteSlips(&buf, ep.desk.Payroll.Slips(), ep.locale); err != nil {
		c.JSON(http.StatusInternalServerError, common.NewErrorResponse(err.Error()))
		return
	}

	c.Header("Content-Disposition", `attachment; filename="payroll-slips.xlsx"`)
	c.Data(http.StatusOK, report.ContentType, buf.Bytes())
}

// ArchiveSlips stores the current slip list as a workbook in the archive.
func (ep *Endpoint) ArchiveSlips(c *gin.Context) {
	if ep.archive == nil {
		c.JSON(http.StatusServiceUnavailable, common.NewErrorResponse("export archive is not configured"))
		return
	}

	var buf bytes.Buffer
	slips := ep.desk.Payroll.Slips()
	if err := report.WriteSlips(&buf, slips, ep.locale); err != nil {
		c.JSON(http.StatusInternalServerError, common.NewErrorResponse(err.Error()))
		return
	}

	name := fmt.Sprintf("payroll-slips-%s.xlsx", time.Now().UTC().Format(archiveNameLayout))
	key, err := ep.archive.Put(c.Request.Context(), name, buf.Bytes(), report.ContentType)
	if err != nil {
		ep.notify(true, fmt.Sprintf("Payroll slip archive failed: %v", err))
		c.JSON(http.StatusBadGateway, common.NewErrorResponse(err.Error()))
		return
	}

	ep.notify(false, fmt.Sprintf("Archived %d payroll slips to %s", len(slips), key))
	c.JSON(http.StatusCreated, common.NewSuccessResponse(gin.H{"key": key, "name": name, "slips": len(slips)}))
}

func (ep *Endpoint) ListArchive(c *gin.Context) {
	if ep.archive == nil {
		c.JSON(http.StatusServiceUnavailable, common.NewErrorResponse("export archive is not configured"))
		return
	}

	names, err := ep.archive.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusBadGateway, common.NewErrorResponse(err.Error()))
		return
	}
	c.JSON(http.StatusOK, common.NewSearchResponse(names, int64(len(names))))
}

func (ep *Endpoint) DownloadArchive(c *gin.Context) {
	if ep.archive == nil {
		c.JSON(http.StatusServiceUnavailable, common.NewErrorResponse("export archive is not configured"))
		return
	}

	name := c.Param("name")
	if name != path.Base(name) || !strings.HasSuffix(name, ".xlsx") {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse("invalid archive name"))
		return
	}

	var buf bytes.Buffer
	if err := ep.archive.Get(c.Request.Context(), name, &buf); err != nil {
		c.JSON(http.StatusNotFound, common.NewErrorResponse(err.Error()))
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, name))
	c.Data(http.StatusOK, report.ContentType, buf.Bytes())
}

func (ep *Endpoint) notify(failed bool, message string) {
	if ep.notifier == nil {
		return
	}
	send := ep.notifier.Info
	if failed {
		send = ep.notifier.Error
	}
	if err := send(message); err != nil {
		log.Printf("notify: %v", err)
	}
}
