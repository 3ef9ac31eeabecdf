// Package loancode mints the human-readable loan identifiers,
// LN-<YYMM>-<4-digit-sequence>, sequential per calendar month. Sequences
// only move forward: a deleted code's number is never reissued.
package loancode

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ErrCapacityExceeded: the 4-digit sequence space for the month is used up.
var ErrCapacityExceeded = errors.New("loan code space exhausted for month")

// Index is the view of already-issued codes the generator works against.
// Implemented by the loan repository: sequences are derived by scanning
// existing codes, not a counter table, so externally edited rows are
// tolerated.
type Index interface {
	MaxSequence(ctx context.Context, prefix string) (int, error)
	CodeExists(ctx context.Context, code string) (bool, error)
}

type Generator struct {
	idx    Index
	prefix string
	width  int
}

func NewGenerator(idx Index) *Generator {
	return &Generator{idx: idx, prefix: "LN", width: 4}
}

// MonthPrefix returns e.g. "LN-2508-" for August 2025.
func (g *Generator) MonthPrefix(month time.Time) string {
	return fmt.Sprintf("%s-%s-", g.prefix, month.UTC().Format("0601"))
}

// Next mints the next code for the given month (zero month means now).
// It takes the highest existing sequence, increments, then re-checks for
// existence and keeps incrementing while a collision is found. There is no
// dedicated lock around code assignment; the retry loop is the guard, bounded
// by the digit width.
func (g *Generator) Next(ctx context.Context, month time.Time) (string, error) {
	if month.IsZero() {
		month = time.Now().UTC()
	}
	prefix := g.MonthPrefix(month)

	seq, err := g.idx.MaxSequence(ctx, prefix)
	if err != nil {
		return "", err
	}

	max := 1
	for i := 0; i < g.width; i++ {
		max *= 10
	}
	max-- // 9999 for width 4

	for seq++; seq <= max; seq++ {
		code := fmt.Sprintf("%s%0*d", prefix, g.width, seq)
		exists, err := g.idx.CodeExists(ctx, code)
		if err != nil {
			return "", err
		}
		if !exists {
			return code, nil
		}
	}
	return "", ErrCapacityExceeded
}
