package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Chinmay1190/cricket-gear-hub/internal/invoice"
	"github.com/Chinmay1190/cricket-gear-hub/internal/invoice/export"
	"github.com/Chinmay1190/cricket-gear-hub/internal/invoice/render"
)

// PrintInvoice serves the auxiliary print page for an order: the invoice
// markup plus a script that opens the browser print dialog after load.
func (s *Server) PrintInvoice(c *gin.Context) {
	s.serveInvoice(c, "print", s.exporter.PrintDocument)
}

// DownloadInvoice serves the self-contained invoice file as an attachment
// named Invoice-<order_number>.html.
func (s *Server) DownloadInvoice(c *gin.Context) {
	s.serveInvoice(c, "download", s.exporter.DownloadDocument)
}

func (s *Server) serveInvoice(c *gin.Context, kind string, build func(render.RenderInput) (export.Artifact, error)) {
	userID, ok := currentUserID(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	placed, err := s.orderSvc.GetByID(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	start := time.Now()
	artifact, err := build(invoice.BuildRenderInput(placed))
	if err != nil {
		s.exportMetrics.IncExport(kind, "failed")
		AbortWithError(c, err)
		return
	}
	s.exportMetrics.IncExport(kind, "success")
	s.exportMetrics.ObserveExportDuration(kind, time.Since(start))

	if artifact.Filename != "" {
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", artifact.Filename))
	}
	c.Data(http.StatusOK, artifact.ContentType, []byte(artifact.Body))
}
