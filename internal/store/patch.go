// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Patch accumulates column assignments for a partial UPDATE statement.
// Column names must be compile-time literals chosen by the calling store;
// only values travel as parameters. Build always appends updated_at = NOW()
// so partial updates bump the row timestamp.
type Patch struct {
	columns []string
	args    []any
}

// NewPatch returns an empty patch.
func NewPatch() *Patch {
	return &Patch{}
}

// Set records a column assignment. Returns the patch for chaining.
func (p *Patch) Set(column string, value any) *Patch {
	p.columns = append(p.columns, column)
	p.args = append(p.args, value)
	return p
}

// Empty reports whether no assignments were recorded.
func (p *Patch) Empty() bool {
	return len(p.columns) == 0
}

// Build assembles the UPDATE statement and its positional arguments for
// the given table, keyed by id.
func (p *Patch) Build(table string, id uuid.UUID) (string, []any) {
	assignments := make([]string, 0, len(p.columns)+1)
	for i, col := range p.columns {
		assignments = append(assignments, fmt.Sprintf("%s = $%d", col, i+1))
	}
	assignments = append(assignments, "updated_at = NOW()")

	query := fmt.Sprintf(
		"UPDATE %s SET %s WHERE id = $%d",
		table, strings.Join(assignments, ", "), len(p.columns)+1,
	)
	args := append(append([]any{}, p.args...), id)
	return query, args
}
