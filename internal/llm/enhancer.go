package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/jonathan/cv-builder/internal/prompts"
	"github.com/jonathan/cv-builder/internal/schemas"
	"github.com/jonathan/cv-builder/internal/types"
)

// CVEnhancer rewrites a CV with a language model. It satisfies the wizard's
// enhancement interface, so the CLI can use it directly or behind the server.
type CVEnhancer struct {
	client Client
	tier   ModelTier
	logger *zap.Logger
	// RestoreCertifications re-attaches draft certifications the model left out.
	RestoreCertifications bool
}

// NewCVEnhancer creates an enhancer that restores dropped certifications.
func NewCVEnhancer(client Client, tier ModelTier, logger *zap.Logger) *CVEnhancer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CVEnhancer{client: client, tier: tier, logger: logger, RestoreCertifications: true}
}

// EnhanceCV runs one enhancement. Model and prompt failures are returned as errors;
// an unusable model reply becomes an unsuccessful envelope.
func (e *CVEnhancer) EnhanceCV(ctx context.Context, req *types.EnhanceRequest) (*types.APIResponse, error) {
	if req == nil || req.CV == nil {
		return &types.APIResponse{Success: false, Message: "cv is required"}, nil
	}

	prompt, err := e.buildPrompt(req)
	if err != nil {
		return nil, err
	}

	raw, err := e.client.GenerateJSON(ctx, prompt, e.tier)
	if err != nil {
		return nil, fmt.Errorf("failed to enhance CV: %w", err)
	}
	raw = CleanJSONBlock(raw)

	if err := schemas.ValidateCV([]byte(raw)); err != nil {
		e.logger.Warn("model returned a document that fails the CV schema", zap.Error(err))
		return &types.APIResponse{Success: false, Message: "the model returned an invalid CV document"}, nil
	}
	var doc types.CVData
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		e.logger.Warn("model returned undecodable JSON", zap.Error(err))
		return &types.APIResponse{Success: false, Message: "the model returned an invalid CV document"}, nil
	}
	doc.Normalize()

	var warnings []string
	missing := missingCertifications(req.CV.Certifications, doc.Certifications)
	preserved := len(missing) == 0
	if !preserved && e.RestoreCertifications {
		doc.Certifications = append(doc.Certifications, missing...)
		preserved = true
		warnings = append(warnings, fmt.Sprintf("Restored %d certification(s) the enhancement left out.", len(missing)))
		e.logger.Info("restored dropped certifications", zap.Int("count", len(missing)))
	}

	data, err := json.Marshal(&doc)
	if err != nil {
		return nil, fmt.Errorf("failed to encode enhanced CV: %w", err)
	}
	return &types.APIResponse{
		Success:                 true,
		Data:                    data,
		Warnings:                warnings,
		CertificationsPreserved: &preserved,
	}, nil
}

func (e *CVEnhancer) buildPrompt(req *types.EnhanceRequest) (string, error) {
	cv, err := json.MarshalIndent(req.CV, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode CV for prompt: %w", err)
	}
	mode := req.Mode
	if mode == "" {
		mode = types.ModeManual
	}
	guidance, err := prompts.Get(prompts.EnhanceFile, "guidance-"+string(mode))
	if err != nil {
		return "", err
	}
	return prompts.Render(prompts.EnhanceFile, "enhance-cv", map[string]string{
		"CV":           string(cv),
		"ModeGuidance": guidance,
	})
}

// missingCertifications returns draft entries with no counterpart in got,
// matched by id and then by case-insensitive name.
func missingCertifications(draft, got []types.Certification) []types.Certification {
	ids := make(map[string]bool, len(got))
	names := make(map[string]bool, len(got))
	for _, c := range got {
		if c.ID != "" {
			ids[c.ID] = true
		}
		names[strings.ToLower(strings.TrimSpace(c.Name))] = true
	}
	var out []types.Certification
	for _, c := range draft {
		if (c.ID != "" && ids[c.ID]) || names[strings.ToLower(strings.TrimSpace(c.Name))] {
			continue
		}
		out = append(out, c)
	}
	return out
}
