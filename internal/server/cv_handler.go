package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"go.uber.org/zap"

	"github.com/jonathan/cv-builder/internal/rendering"
	"github.com/jonathan/cv-builder/internal/schemas"
	"github.com/jonathan/cv-builder/internal/types"
)

// CVEnhancer performs one enhancement. *llm.CVEnhancer satisfies it.
type CVEnhancer interface {
	EnhanceCV(ctx context.Context, req *types.EnhanceRequest) (*types.APIResponse, error)
}

// handleEnhance serves POST /v1/cv/enhance. An unusable model reply is a 200 with
// success=false so clients treat it like any other unsuccessful enhancement.
func (s *Server) handleEnhance(w http.ResponseWriter, r *http.Request) {
	if s.enhancer == nil {
		s.writeError(w, http.StatusServiceUnavailable, "enhancement is not configured")
		return
	}

	var req types.EnhanceRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	if req.CV == nil {
		s.writeError(w, http.StatusBadRequest, "cv is required")
		return
	}
	if req.Mode != "" {
		mode, err := types.ParseBuilderMode(string(req.Mode))
		if err != nil {
			s.writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		req.Mode = mode
	}

	resp, err := s.enhancer.EnhanceCV(r.Context(), &req)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return
		}
		s.logger.Error("enhancement failed", zap.Error(err))
		s.writeError(w, http.StatusBadGateway, "enhancement failed")
		return
	}
	s.writeJSON(w, http.StatusOK, resp)
}

// handleExport serves POST /v1/cv/export?format=. The body is a CV document and
// the response is the rendered file.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	format, err := rendering.ParseFormat(r.URL.Query().Get("format"))
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	raw, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "request body too large")
		return
	}
	if err := schemas.ValidateCV(raw); err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	var cv types.CVData
	if err := json.Unmarshal(raw, &cv); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid CV document")
		return
	}
	cv.Normalize()

	a, err := s.exporter.Export(r.Context(), &cv, format)
	if err != nil {
		s.logger.Error("export failed", zap.String("format", string(format)), zap.Error(err))
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	w.Header().Set("Content-Type", a.MIMEType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", a.FileName))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(a.Data); err != nil {
		s.logger.Warn("failed to write export", zap.Error(err))
	}
}
