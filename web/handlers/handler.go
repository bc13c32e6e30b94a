package handlers

import (
	"context"
	"html/template"
	"io"

	"axiapac.com/hrdesk/desk"
	"github.com/gin-gonic/gin"
)

// SlipArchive keeps exported slip workbooks. Names are relative to the archive root.
type SlipArchive interface {
	Put(ctx context.Context, name string, data []byte, contentType string) (string, error)
	Get(ctx context.Context, name string, out io.Writer) error
	List(ctx context.Context) ([]string, error)
}

type Notifier interface {
	Info(message string) error
	Error(message string) error
}

type Endpoint struct {
	desk     *desk.Desk
	locale   desk.Locale
	archive  SlipArchive
	notifier Notifier
	tmpl     *template.Template
}

type Options struct {
	Locale   desk.Locale
	Archive  SlipArchive
	Notifier Notifier
}

// Register mounts the operator page and its actions. Archive and Notifier may be nil.
func Register(r *gin.RouterGroup, d *desk.Desk, opts Options) {
	if opts.Locale.DateLayout == "" {
		opts.Locale = desk.DefaultLocale()
	}
	ep := &Endpoint{
		desk:     d,
		locale:   opts.Locale,
		archive:  opts.Archive,
		notifier: opts.Notifier,
		tmpl:     newPageTemplate(opts.Locale),
	}

	r.GET("/", ep.Page)
	r.POST("/actions/:action", ep.Act)

	r.GET("/api/employees", ep.ListEmployees)
	r.GET("/api/payroll/slips", ep.ListSlips)

	r.GET("/payroll/slips.xlsx", ep.ExportSlips)
	r.POST("/payroll/slips/archive", ep.ArchiveSlips)
	r.GET("/payroll/slips/archive", ep.ListArchive)
	r.GET("/payroll/slips/archive/:name", ep.DownloadArchive)
}
