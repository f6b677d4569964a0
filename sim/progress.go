package sim

import (
	"context"

	"github.com/sirupsen/logrus"
)

type progressKey struct {
	orderID int64
	station string
}

// ProgressView is a per-pass, fail-soft cache over a ProgressReader.
// Read errors are logged and resolve to neutral values (no completed stations,
// zero progress) so one broken order cannot break a whole pass.
// A ProgressView must not outlive the pass that created it.
type ProgressView struct {
	reader    ProgressReader
	completed map[int64][]string
	done      map[progressKey]int
}

// NewProgressView wraps reader. A nil reader behaves as "nothing logged yet".
func NewProgressView(reader ProgressReader) *ProgressView {
	return &ProgressView{
		reader:    reader,
		completed: make(map[int64][]string),
		done:      make(map[progressKey]int),
	}
}

// Completed returns the completed stations of o. Hypothetical orders have none.
func (v *ProgressView) Completed(ctx context.Context, o *Order) []string {
	if o.Hypothetical || v.reader == nil {
		return nil
	}
	if cached, ok := v.completed[o.ID]; ok {
		return cached
	}
	stations, err := v.reader.CompletedStations(ctx, o.ID)
	if err != nil {
		logrus.Warnf("order %s: reading completed stations failed, assuming none: %v", o.Code, err)
		stations = nil
	}
	v.completed[o.ID] = stations
	return stations
}

// Done returns the cumulative completed quantity of o at station.
func (v *ProgressView) Done(ctx context.Context, o *Order, station string) int {
	if o.Hypothetical || v.reader == nil {
		return 0
	}
	key := progressKey{orderID: o.ID, station: station}
	if cached, ok := v.done[key]; ok {
		return cached
	}
	qty, err := v.reader.StationProgress(ctx, o.ID, station)
	if err != nil {
		logrus.Warnf("order %s: reading progress at %s failed, assuming zero: %v", o.Code, station, err)
		qty = 0
	}
	v.done[key] = qty
	return qty
}

// RemainingRatio returns the share of o still to be processed at station:
// 1 − done/quantity. Orders without a positive quantity count as untouched.
func (v *ProgressView) RemainingRatio(ctx context.Context, o *Order, station string) float64 {
	if o.Quantity <= 0 {
		return 1.0
	}
	done := v.Done(ctx, o, station)
	return 1.0 - float64(done)/float64(o.Quantity)
}
