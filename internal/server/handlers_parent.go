package server

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/example/tunamentor/internal/curriculum"
	"github.com/example/tunamentor/internal/report"
)

// ParentReport builds the weekly parent report as JSON.
func (s *Server) ParentReport(c echo.Context) error {
	weekly, err := s.reports.Build(c.Request().Context(), s.username(), s.cfg.StudentName)
	if err != nil {
		s.logger.Error("failed to build parent report", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "rapor oluşturulamadı")
	}
	return c.JSON(http.StatusOK, weekly)
}

// ParentReportText renders the weekly report as a downloadable text file.
func (s *Server) ParentReportText(c echo.Context) error {
	weekly, err := s.reports.Build(c.Request().Context(), s.username(), s.cfg.StudentName)
	if err != nil {
		s.logger.Error("failed to build parent report", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "rapor oluşturulamadı")
	}

	filename := fmt.Sprintf("haftalik_rapor_%s.txt", time.Now().Format("2006-01-02"))
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Blob(http.StatusOK, "text/plain; charset=utf-8", []byte(report.Text(weekly)))
}

// ParentReportExcel renders the weekly report as an xlsx workbook.
func (s *Server) ParentReportExcel(c echo.Context) error {
	weekly, err := s.reports.Build(c.Request().Context(), s.username(), s.cfg.StudentName)
	if err != nil {
		s.logger.Error("failed to build parent report", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "rapor oluşturulamadı")
	}
	f, err := report.Excel(weekly)
	if err != nil {
		s.logger.Error("failed to build xlsx report", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "rapor oluşturulamadı")
	}

	filename := fmt.Sprintf("haftalik_rapor_%s.xlsx", time.Now().Format("2006-01-02"))
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	c.Response().Header().Set(echo.HeaderContentType,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Response().WriteHeader(http.StatusOK)
	if _, err := f.WriteTo(c.Response()); err != nil {
		s.logger.Error("failed to stream xlsx report", "error", err)
		return err
	}
	return nil
}

// ImportQuestions loads a question file (xlsx or csv) uploaded by the parent
// into the in-memory bank.
func (s *Server) ImportQuestions(c echo.Context) error {
	upload, err := c.FormFile("file")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "file alanı gerekli")
	}
	src, err := upload.Open()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "dosya açılamadı")
	}
	defer src.Close()

	// The importer works on a path, so the upload lands in a temp file first.
	tmp, err := os.CreateTemp("", "questions-*"+filepath.Ext(upload.Filename))
	if err != nil {
		s.logger.Error("failed to create temp file", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "dosya kaydedilemedi")
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, src); err != nil {
		tmp.Close()
		s.logger.Error("failed to save upload", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "dosya kaydedilemedi")
	}
	if err := tmp.Close(); err != nil {
		s.logger.Error("failed to close temp file", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "dosya kaydedilemedi")
	}

	config := curriculum.DefaultImportConfig()
	config.FilePath = tmp.Name()
	if sheet := c.FormValue("sheet"); sheet != "" {
		config.SheetName = sheet
	}

	result, err := curriculum.ImportQuestions(s.bank, config)
	if err != nil {
		s.logger.Error("question import failed", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "içe aktarma başarısız: "+err.Error())
	}

	s.logger.Info("questions imported",
		"file", upload.Filename,
		"imported", result.Imported,
		"skipped", result.Skipped)
	return c.JSON(http.StatusOK, result)
}
