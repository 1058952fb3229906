// Package session keeps recently computed results for the presentation layer.
package session

import (
	"strconv"
	"strings"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/ukaji3/cellcount-go/pkg/cellcount"
	"github.com/ukaji3/cellcount-go/pkg/cellcount/models"
)

// Cache maps request values to their results and remembers the last one.
// It is safe for concurrent use.
type Cache struct {
	results *lru.Cache[string, models.CalculationResult]

	mu   sync.Mutex
	last *models.ExportRecord
}

// NewCache returns a cache holding up to size results.
func NewCache(size int) (*Cache, error) {
	results, err := lru.New[string, models.CalculationResult](size)
	if err != nil {
		return nil, err
	}
	return &Cache{results: results}, nil
}

// Get returns the cached result for req.
func (c *Cache) Get(req models.CalculationRequest) (*models.CalculationResult, bool) {
	res, ok := c.results.Get(Key(req))
	if !ok {
		return nil, false
	}
	return &res, true
}

// Put stores res as the result of req.
func (c *Cache) Put(req models.CalculationRequest, res *models.CalculationResult) {
	c.results.Add(Key(req), *res)
}

// Invalidate drops the cached result of req.
func (c *Cache) Invalidate(req models.CalculationRequest) {
	c.results.Remove(Key(req))
}

// Purge drops every cached result and forgets the last record.
func (c *Cache) Purge() {
	c.results.Purge()

	c.mu.Lock()
	c.last = nil
	c.mu.Unlock()
}

// Len returns the number of cached results.
func (c *Cache) Len() int {
	return c.results.Len()
}

// SetLast records rec as the most recent successful calculation.
func (c *Cache) SetLast(rec *models.ExportRecord) {
	c.mu.Lock()
	c.last = rec
	c.mu.Unlock()
}

// Last returns the most recent successful calculation, if any.
func (c *Cache) Last() (*models.ExportRecord, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.last, c.last != nil
}

// Calculate returns the cached result for req or computes and caches it.
// Failures are returned as is and never cached.
func (c *Cache) Calculate(req models.CalculationRequest) (*models.CalculationResult, bool, error) {
	if res, ok := c.Get(req); ok {
		return res, true, nil
	}

	res, err := cellcount.Calculate(req)
	if err != nil {
		return nil, false, err
	}
	c.Put(req, res)
	return res, false, nil
}

// Key is the canonical string form of a request value.
func Key(req models.CalculationRequest) string {
	var b strings.Builder
	b.WriteString(strconv.Itoa(req.SquareCount))
	b.WriteByte('|')
	for i, cnt := range req.Counts {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.Itoa(cnt.Live))
		b.WriteByte('/')
		b.WriteString(strconv.Itoa(cnt.Dead))
	}
	for _, f := range []float64{req.DilutionFactor, req.StockVolumeMl, req.TargetCellsPerDish, req.DispenseVolumeMl} {
		b.WriteByte('|')
		b.WriteString(strconv.FormatFloat(f, 'g', -1, 64))
	}
	return b.String()
}
