package server

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/render"
	"github.com/google/uuid"
	"github.com/ukaji3/cellcount-go/pkg/cellcount"
	"github.com/ukaji3/cellcount-go/pkg/cellcount/models"
	"github.com/ukaji3/cellcount-go/pkg/cellcount/output"
	"go.uber.org/zap"
)

type RecordReply struct {
	*models.ExportRecord
	Cached bool `json:"cached"`
}

type FailureReply struct {
	Kind                 string   `json:"kind"`
	Message              string   `json:"message"`
	StockConcentration   *float64 `json:"stock_concentration,omitempty"`
	WorkingConcentration *float64 `json:"working_concentration,omitempty"`

	status int
}

func (rr RecordReply) Render(w http.ResponseWriter, r *http.Request) error {
	return nil
}

func (f FailureReply) Render(w http.ResponseWriter, r *http.Request) error {
	render.Status(r, f.status)
	return nil
}

func badRequest(msg string) FailureReply {
	return FailureReply{Kind: "bad_request", Message: msg, status: http.StatusBadRequest}
}

// invalidRequest reports a decoded request that fails field validation. It
// shares the invalid_input kind and status with the calculation's own checks.
func invalidRequest(msg string) FailureReply {
	return FailureReply{Kind: "invalid_input", Message: msg, status: http.StatusUnprocessableEntity}
}

// failureReply maps a calculation failure to its response body.
func failureReply(err error) FailureReply {
	reply := FailureReply{Message: output.FailureMessage(err), status: http.StatusUnprocessableEntity}

	var f *cellcount.Failure
	if !errors.As(err, &f) {
		reply.Kind = "internal"
		reply.status = http.StatusInternalServerError
		return reply
	}

	switch {
	case errors.Is(f, cellcount.ErrInvalidInput):
		reply.Kind = "invalid_input"
	case errors.Is(f, cellcount.ErrZeroConcentration):
		reply.Kind = "zero_concentration"
	case errors.Is(f, cellcount.ErrInfeasible):
		reply.Kind = "infeasible"
		reply.StockConcentration = &f.StockConcentration
		reply.WorkingConcentration = &f.WorkingConcentration
	default:
		reply.Kind = "invariant_violation"
		reply.status = http.StatusInternalServerError
	}
	return reply
}

func (s *Server) createCalculation(w http.ResponseWriter, r *http.Request) {
	var req models.CalculationRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		_ = render.Render(w, r, badRequest(fmt.Sprintf("decoding request: %v", err)))
		return
	}
	if err := s.validator.Request(req); err != nil {
		_ = render.Render(w, r, invalidRequest(err.Error()))
		return
	}

	res, cached, err := s.cache.Calculate(req)
	if err != nil {
		s.logger.Debug("calculation failed", zap.Error(err))
		_ = render.Render(w, r, failureReply(err))
		return
	}

	rec := &models.ExportRecord{
		ID:           uuid.NewString(),
		CalculatedAt: s.now(),
		Request:      req,
		Result:       *res,
	}
	s.cache.SetLast(rec)

	render.Status(r, http.StatusCreated)
	_ = render.Render(w, r, RecordReply{ExportRecord: rec, Cached: cached})
}

func (s *Server) getLast(w http.ResponseWriter, r *http.Request) {
	rec, ok := s.cache.Last()
	if !ok {
		http.Error(w, "no calculation yet", http.StatusNotFound)
		return
	}
	_ = render.Render(w, r, RecordReply{ExportRecord: rec})
}

func (s *Server) exportLast(w http.ResponseWriter, r *http.Request) {
	rec, ok := s.cache.Last()
	if !ok {
		http.Error(w, "no calculation yet", http.StatusNotFound)
		return
	}

	name := r.URL.Query().Get("format")
	if name == "" {
		name = string(cellcount.FormatCSV)
	}
	format, err := cellcount.ParseFormat(name)
	if err != nil || format == cellcount.FormatText {
		http.Error(w, fmt.Sprintf("unsupported export format: %s", name), http.StatusBadRequest)
		return
	}

	var buf bytes.Buffer
	var contentType string
	switch format {
	case cellcount.FormatCSV:
		contentType = "text/csv; charset=utf-8"
		err = output.WriteCSV(&buf, rec)
	case cellcount.FormatXLSX:
		contentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
		err = output.WriteXLSX(&buf, rec)
	case cellcount.FormatJSON:
		contentType = "application/json"
		var data []byte
		data, err = output.ToJSON(rec, true)
		buf.Write(data)
	}
	if err != nil {
		s.logger.Error("export failed", zap.String("format", name), zap.Error(err))
		http.Error(w, "export failed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", output.FileName(rec.CalculatedAt, format)))
	_, _ = w.Write(buf.Bytes())
}

func (s *Server) purgeCache(w http.ResponseWriter, r *http.Request) {
	s.cache.Purge()
	w.WriteHeader(http.StatusNoContent)
}
