// Package enhance sends the draft CV to the enhancement service and decides
// whether the returned document may replace it.
package enhance

import (
	"context"
	"encoding/json"
	"fmt"
	"sync/atomic"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jonathan/cv-builder/internal/draftcache"
	"github.com/jonathan/cv-builder/internal/schemas"
	"github.com/jonathan/cv-builder/internal/types"
)

// Enhancer performs the network round trip.
type Enhancer interface {
	EnhanceCV(ctx context.Context, req *types.EnhanceRequest) (*types.APIResponse, error)
}

// Result is an accepted enhancement. CV replaces the local draft wholesale.
type Result struct {
	CV                      *types.CVData
	Warnings                []string
	CertificationsPreserved *bool
	// ReMinted counts entries that arrived without an id, or with a duplicate one.
	ReMinted int
}

// Bridge sequences enhancement calls. At most one call is in flight.
type Bridge struct {
	client   Enhancer
	cache    draftcache.Store
	logger   *zap.Logger
	newID    func() string
	inFlight atomic.Bool
}

// Option configures a Bridge.
type Option func(*Bridge)

// WithInsightsCache stores returned AI insights under draftcache.InsightsKey.
func WithInsightsCache(store draftcache.Store) Option {
	return func(b *Bridge) { b.cache = store }
}

// WithLogger sets the logger; the default discards.
func WithLogger(l *zap.Logger) Option {
	return func(b *Bridge) {
		if l != nil {
			b.logger = l
		}
	}
}

// WithIDGenerator replaces the UUIDv4 generator used when re-minting ids.
func WithIDGenerator(fn func() string) Option {
	return func(b *Bridge) { b.newID = fn }
}

// NewBridge creates a bridge over client.
func NewBridge(client Enhancer, opts ...Option) *Bridge {
	b := &Bridge{client: client, logger: zap.NewNop(), newID: uuid.NewString}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// InFlight reports whether a call is running.
func (b *Bridge) InFlight() bool {
	return b.inFlight.Load()
}

// Enhance sends draft and validates the reply. draft itself is never modified;
// on any error the caller keeps its state as is.
func (b *Bridge) Enhance(ctx context.Context, draft *types.CVData, mode types.BuilderMode) (*Result, error) {
	if !b.inFlight.CompareAndSwap(false, true) {
		return nil, ErrEnhanceInFlight
	}
	defer b.inFlight.Store(false)

	req := &types.EnhanceRequest{CV: draft.Clone(), Mode: mode}
	b.logger.Debug("enhancement requested",
		zap.Int("experience", len(draft.Experience)),
		zap.Int("certifications", len(draft.Certifications)))

	resp, err := b.client.EnhanceCV(ctx, req)
	if err != nil {
		b.logger.Warn("enhancement request failed", zap.Error(err))
		return nil, &EnhanceError{Message: "request failed", Cause: err}
	}
	if resp == nil || !resp.Success {
		msg := "the service did not return an enhanced CV"
		if resp != nil && resp.Message != "" {
			msg = resp.Message
		}
		b.logger.Warn("enhancement unsuccessful", zap.String("message", msg))
		return nil, &EnhanceError{Message: msg}
	}

	doc, err := Narrow(resp.Data)
	if err != nil {
		b.logger.Warn("enhancement returned an invalid document", zap.Error(err))
		return nil, &EnhanceError{Message: "invalid document in response", Cause: err}
	}

	if n := len(draft.Certifications); n > 0 && len(doc.Certifications) == 0 {
		b.logger.Error("enhancement dropped certifications", zap.Int("count", n))
		return nil, &CertificationsDroppedError{Count: n}
	}

	result := &Result{
		CV:                      doc,
		Warnings:                append([]string(nil), resp.Warnings...),
		CertificationsPreserved: resp.CertificationsPreserved,
		ReMinted:                ensureIDs(doc, b.newID),
	}
	result.Warnings = append(result.Warnings, sectionWarnings(draft, doc, resp.CertificationsPreserved)...)

	if insights, ok := doc.AIInsights.Get(); ok && b.cache != nil {
		if err := b.cache.Set(draftcache.InsightsKey, insights, draftcache.Options{ExpiresIn: draftcache.InsightsTTL}); err != nil {
			// Insights are advisory; a cache failure does not fail the merge.
			b.logger.Warn("failed to cache AI insights", zap.Error(err))
		}
	}

	b.logger.Info("enhancement accepted",
		zap.Int("warnings", len(result.Warnings)),
		zap.Int("reminted_ids", result.ReMinted))
	return result, nil
}

// Narrow validates raw response data against the CV schema and decodes it.
func Narrow(data json.RawMessage) (*types.CVData, error) {
	if len(data) == 0 || string(data) == "null" {
		return nil, fmt.Errorf("response carried no document")
	}
	if err := schemas.ValidateCV(data); err != nil {
		return nil, err
	}
	var doc types.CVData
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode enhanced CV: %w", err)
	}
	doc.Normalize()
	return &doc, nil
}

// sectionWarnings flags sections that were filled in the draft but came back
// empty. Only certifications block the merge; these are advisory.
func sectionWarnings(draft, doc *types.CVData, preserved *bool) []string {
	var out []string
	check := func(name string, before, after int) {
		if before > 0 && after == 0 {
			out = append(out, fmt.Sprintf("The enhanced CV has no %s; your draft had %d.", name, before))
		}
	}
	check("education entries", len(draft.Education), len(doc.Education))
	check("experience entries", len(draft.Experience), len(doc.Experience))
	check("skills", len(draft.Skills), len(doc.Skills))
	check("projects", len(draft.Projects), len(doc.Projects))
	check("languages", len(draft.Languages), len(doc.Languages))
	check("references", len(draft.References), len(doc.References))

	if preserved != nil && !*preserved && len(doc.Certifications) > 0 {
		out = append(out, "The service reported that certifications may have changed. Please review them.")
	}
	return out
}
