// Package hsss implements hierarchical secret sharing on top of the
// shamir package. A single master (n, k) scheme is split once and the
// resulting shares are assigned to named levels by weight, so a
// participant holding more shares needs fewer collaborators to reach the
// master threshold. There is only one cryptographic threshold -- the
// master k; level thresholds are carried as metadata.
package hsss

import (
	"fmt"

	"github.com/izouxv/goShamir/shamir"
)

// Level describes one tier of the hierarchy.
type Level struct {
	// Name identifies the level; names are unique within a scheme.
	Name string
	// SharesCount is how many master shares this level receives.
	SharesCount uint8
	// Threshold is advisory metadata in [1, master k]. Reconstruction
	// only ever checks the master threshold; whether to enforce per-level
	// minimums is left to callers.
	Threshold uint8
}

// HierarchicalShare is a master share tagged with the level it belongs to.
type HierarchicalShare struct {
	shamir.Share
	LevelName string
}

// HSSS is a built hierarchical scheme.
type HSSS struct {
	scheme *shamir.Scheme
	levels []Level
}

// Builder accumulates levels for an HSSS instance.
type Builder struct {
	n      uint8
	k      uint8
	cfg    shamir.Config
	levels []Level
}

// NewBuilder starts a builder for a master scheme with n total shares and
// threshold k, under the default shamir configuration. The level weights
// added afterwards must sum to exactly n.
func NewBuilder(n, k uint8) *Builder {
	return &Builder{n: n, k: k, cfg: shamir.DefaultConfig()}
}

// WithConfig threads a shamir configuration through to the master scheme.
func (b *Builder) WithConfig(cfg shamir.Config) *Builder {
	b.cfg = cfg
	return b
}

// AddLevel appends a level with the given share weight and advisory
// threshold. Shares are assigned to levels in the order they are added.
func (b *Builder) AddLevel(name string, sharesCount, threshold uint8) *Builder {
	b.levels = append(b.levels, Level{Name: name, SharesCount: sharesCount, Threshold: threshold})
	return b
}

// Build validates the hierarchy and constructs the master scheme.
func (b *Builder) Build() (*HSSS, error) {
	if len(b.levels) == 0 {
		return nil, fmt.Errorf("%w: no levels defined", shamir.ErrInvalidConfiguration)
	}
	names := make(map[string]struct{}, len(b.levels))
	total := 0
	for _, level := range b.levels {
		if level.Name == "" {
			return nil, fmt.Errorf("%w: empty level name", shamir.ErrInvalidConfiguration)
		}
		if _, dup := names[level.Name]; dup {
			return nil, fmt.Errorf("%w: duplicate level %q", shamir.ErrInvalidConfiguration, level.Name)
		}
		names[level.Name] = struct{}{}
		if level.SharesCount == 0 {
			return nil, fmt.Errorf("%w: level %q has zero shares", shamir.ErrInvalidConfiguration, level.Name)
		}
		if level.Threshold == 0 || level.Threshold > b.k {
			return nil, fmt.Errorf("%w: level %q threshold %d outside [1, %d]",
				shamir.ErrInvalidConfiguration, level.Name, level.Threshold, b.k)
		}
		total += int(level.SharesCount)
	}
	if total != int(b.n) {
		return nil, fmt.Errorf("%w: level weights sum to %d, master total is %d",
			shamir.ErrInvalidConfiguration, total, b.n)
	}
	scheme, err := shamir.NewSchemeWithConfig(b.n, b.k, b.cfg)
	if err != nil {
		return nil, err
	}
	levels := make([]Level, len(b.levels))
	copy(levels, b.levels)
	return &HSSS{scheme: scheme, levels: levels}, nil
}

// Levels returns a copy of the hierarchy definition, in declaration order.
func (h *HSSS) Levels() []Level {
	levels := make([]Level, len(h.levels))
	copy(levels, h.levels)
	return levels
}

// MasterThreshold returns the master k.
func (h *HSSS) MasterThreshold() uint8 {
	return h.scheme.Threshold()
}

// TotalShares returns the master n, the sum of all level weights.
func (h *HSSS) TotalShares() uint8 {
	return h.scheme.TotalShares()
}

// Split runs the master split once and slices the n shares across the
// levels in declaration order, so master indices run 1..n from the first
// declared level to the last. The single evaluation pass is the point of
// the construction: no per-level polynomial work happens.
func (h *HSSS) Split(secret []byte) ([]HierarchicalShare, error) {
	shares, err := h.scheme.Split(secret)
	if err != nil {
		return nil, err
	}
	out := make([]HierarchicalShare, 0, len(shares))
	next := 0
	for _, level := range h.levels {
		for i := 0; i < int(level.SharesCount); i++ {
			out = append(out, HierarchicalShare{Share: shares[next], LevelName: level.Name})
			next++
		}
	}
	return out, nil
}

// Reconstruct strips the level tags and defers to shamir.Reconstruct: any
// mix of at least master-threshold shares recovers the secret, whatever
// levels they came from.
func Reconstruct(hshares []HierarchicalShare) ([]byte, error) {
	shares := make([]shamir.Share, len(hshares))
	for i := range hshares {
		shares[i] = hshares[i].Share
	}
	return shamir.Reconstruct(shares)
}
