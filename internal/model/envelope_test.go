// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import "testing"

func TestSynthesizePagination(t *testing.T) {
	p := SynthesizePagination(3, 7)
	if p.CurrentPage != 3 || p.TotalPages != 1 || p.TotalItems != 7 {
		t.Errorf("unexpected pagination: %+v", p)
	}
	if p.HasNext || p.HasPrevious {
		t.Error("synthesized pagination must not claim neighboring pages")
	}

	// Page below 1 is clamped.
	p = SynthesizePagination(0, 0)
	if p.CurrentPage != 1 {
		t.Errorf("CurrentPage = %d, want 1", p.CurrentPage)
	}
	if p.TotalItems != 0 {
		t.Errorf("TotalItems = %d, want 0", p.TotalItems)
	}
}

func TestEmptyList(t *testing.T) {
	l := EmptyList[Article](2)
	if l.Items == nil {
		t.Fatal("Items must never be nil")
	}
	if len(l.Items) != 0 {
		t.Errorf("len(Items) = %d, want 0", len(l.Items))
	}
	if l.Pagination.CurrentPage != 2 || l.Pagination.TotalItems != 0 {
		t.Errorf("unexpected pagination: %+v", l.Pagination)
	}
}
