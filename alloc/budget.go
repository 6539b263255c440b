// Copyright 2025 The dbkit Authors. All rights reserved. Use of this source
// code is governed by a BSD-style license that can be found in the LICENSE
// file.

package alloc

import (
	"sync/atomic"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/dbkit-io/dbkit/dberr"
)

// BudgetAllocator enforces a byte budget across all of its live chunks.
// Exceeding the budget fails with ErrMemoryLimit, distinguishable from the
// generic ErrMemory, so callers can tell policy limits from global
// exhaustion. Accounting is atomic; a BudgetAllocator may be shared by any
// number of concurrent callers.
//
// BudgetAllocator implements prometheus.Collector, exporting in-use,
// cumulative and budget byte counts.
type BudgetAllocator struct {
	budget int64
	inUse  atomic.Int64
	total  atomic.Uint64
}

var _ Allocator = (*BudgetAllocator)(nil)
var _ prometheus.Collector = (*BudgetAllocator)(nil)

// NewBudgetAllocator returns an allocator that fails any allocation which
// would push the total of live bytes above budget.
func NewBudgetAllocator(budget int64) *BudgetAllocator {
	return &BudgetAllocator{budget: budget}
}

// Allocate implements Allocator.
func (a *BudgetAllocator) Allocate(size int) (Chunk, error) {
	return a.AllocateAligned(size, MinAlign)
}

// AllocateAligned implements Allocator.
func (a *BudgetAllocator) AllocateAligned(size, align int) (Chunk, error) {
	if err := a.reserve(int64(size)); err != nil {
		return Chunk{}, err
	}
	return Chunk{parent: a, data: allocAligned(size, align), align: align}, nil
}

// Resize implements Allocator.
func (a *BudgetAllocator) Resize(c *Chunk, size int) error {
	if delta := int64(size) - int64(len(c.data)); delta > 0 {
		if err := a.reserve(delta); err != nil {
			return err
		}
	} else {
		a.inUse.Add(delta)
	}
	resizeAligned(c, size)
	return nil
}

// Putback implements Allocator.
func (a *BudgetAllocator) Putback(c *Chunk) {
	a.inUse.Add(-int64(len(c.data)))
	c.data = nil
}

// InUseBytes returns the total number of live bytes currently allocated.
func (a *BudgetAllocator) InUseBytes() int64 {
	return a.inUse.Load()
}

// TotalBytes returns the cumulative number of bytes allocated since the
// allocator was created. This is just the sum of the lengths of the
// allocations and does not include any overhead or fragmentation.
func (a *BudgetAllocator) TotalBytes() uint64 {
	return a.total.Load()
}

func (a *BudgetAllocator) reserve(n int64) error {
	if next := a.inUse.Add(n); next > a.budget {
		a.inUse.Add(-n)
		return dberr.MemoryLimitf(
			"allocator budget exceeded: %d bytes requested, %d in use, %d budget",
			n, next-n, a.budget)
	}
	a.total.Add(uint64(n))
	return nil
}

var (
	inUseBytesDesc = prometheus.NewDesc(
		"dbkit_allocator_in_use_bytes",
		"Bytes currently allocated and not yet released.",
		nil, nil)
	totalBytesDesc = prometheus.NewDesc(
		"dbkit_allocator_total_bytes",
		"Cumulative bytes allocated since the allocator was created.",
		nil, nil)
	budgetBytesDesc = prometheus.NewDesc(
		"dbkit_allocator_budget_bytes",
		"Configured allocator byte budget.",
		nil, nil)
)

// Describe implements prometheus.Collector.
func (a *BudgetAllocator) Describe(ch chan<- *prometheus.Desc) {
	ch <- inUseBytesDesc
	ch <- totalBytesDesc
	ch <- budgetBytesDesc
}

// Collect implements prometheus.Collector.
func (a *BudgetAllocator) Collect(ch chan<- prometheus.Metric) {
	ch <- prometheus.MustNewConstMetric(
		inUseBytesDesc, prometheus.GaugeValue, float64(a.inUse.Load()))
	ch <- prometheus.MustNewConstMetric(
		totalBytesDesc, prometheus.CounterValue, float64(a.total.Load()))
	ch <- prometheus.MustNewConstMetric(
		budgetBytesDesc, prometheus.GaugeValue, float64(a.budget))
}
