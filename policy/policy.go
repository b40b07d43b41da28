// Package policy carries the run policy on the context.  A context without a
// policy keeps the default "auto" behaviour for every category.

package policy

import (
	"context"
	"fmt"
	"strings"
)

// Run modes.
const (
	ModeAuto   = "auto"   // sign every eligible item (default)
	ModeAsk    = "ask"    // confirm every item before signing
	ModeReport = "report" // list eligible items without signing
)

// AskFunc is invoked for every eligible item when Mode==ask.  Returning true
// approves the item.  Implementations MAY mutate the policy (for example,
// switching to ModeAuto after "approve all").
type AskFunc func(
	ctx context.Context,
	category string,
	item string, // human readable item label
	p *Policy,
) bool

// Policy represents the run settings.
//
//   - Mode controls the high-level behaviour (auto / ask / report).
//   - AllowList, BlockList select categories regardless of Mode.
//   - Ask is only used when Mode==ask.
//
// A nil *Policy means "sign everything automatically".
type Policy struct {
	Mode      string
	AllowList []string
	BlockList []string
	Ask       AskFunc
}

// Config represents the declarative, serialisable part of a Policy.
type Config struct {
	Mode      string   `json:"mode,omitempty" yaml:"mode,omitempty"`
	AllowList []string `json:"allow,omitempty" yaml:"allow,omitempty"`
	BlockList []string `json:"block,omitempty" yaml:"block,omitempty"`
}

// Validate checks the mode.
func (c *Config) Validate() error {
	if c == nil {
		return nil
	}
	switch strings.ToLower(c.Mode) {
	case "", ModeAuto, ModeAsk, ModeReport:
		return nil
	}
	return fmt.Errorf("policy.mode %q is not one of %s, %s, %s", c.Mode, ModeAuto, ModeAsk, ModeReport)
}

// FromConfig converts a stored Config back to a runtime Policy (without AskFunc).
func FromConfig(c *Config) *Policy {
	if c == nil {
		return nil
	}
	return &Policy{
		Mode:      strings.ToLower(c.Mode),
		AllowList: append([]string(nil), c.AllowList...),
		BlockList: append([]string(nil), c.BlockList...),
	}
}

// EffectiveMode returns the mode, defaulting to ModeAuto.
func (p *Policy) EffectiveMode() string {
	if p == nil || p.Mode == "" {
		return ModeAuto
	}
	return p.Mode
}

// IsAllowed evaluates AllowList / BlockList against a category name.  Both
// lists match case-insensitively; BlockList has priority and an empty
// AllowList allows everything.
func (p *Policy) IsAllowed(category string) bool {
	if p == nil {
		return true
	}
	normalized := strings.ToLower(category)
	for _, b := range p.BlockList {
		if normalized == strings.ToLower(strings.TrimSpace(b)) {
			return false
		}
	}
	if len(p.AllowList) == 0 {
		return true
	}
	for _, a := range p.AllowList {
		if normalized == strings.ToLower(strings.TrimSpace(a)) {
			return true
		}
	}
	return false
}

// Confirm decides whether an item may be signed.  Outside ask mode it returns
// true; in ask mode without an AskFunc it returns false.
func (p *Policy) Confirm(ctx context.Context, category, item string) bool {
	if p.EffectiveMode() != ModeAsk {
		return true
	}
	if p.Ask == nil {
		return false
	}
	return p.Ask(ctx, category, item, p)
}

// ---------------------------------------------------------------------------
// Context helpers
// ---------------------------------------------------------------------------

type ctxKeyT struct{}

var ctxKey ctxKeyT

// WithPolicy embeds policy in ctx.
func WithPolicy(ctx context.Context, p *Policy) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxKey, p)
}

// FromContext extracts the policy or nil.
func FromContext(ctx context.Context) *Policy {
	if ctx == nil {
		return nil
	}
	if v, ok := ctx.Value(ctxKey).(*Policy); ok {
		return v
	}
	return nil
}
