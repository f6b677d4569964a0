package sim

import (
	"sort"
	"time"

	"github.com/efes-rota/rota-planner/sim/trace"
)

const (
	// DefaultBatchBonus is the score each extra group member adds.
	DefaultBatchBonus = 5.0
	// dueDateWeight scales the average days-until-due penalty of a batch.
	dueDateWeight = 2.0
)

// Batch is a group of near-term orders sharing a BatchKey, processed back-to-back.
type Batch struct {
	Key             BatchKey
	Orders          []*Order // due date ascending
	Score           float64
	AvgDaysUntilDue float64
}

// FormBatches groups near-term orders by BatchKey and scores each group:
//
//	score = size × bonus − avg_days_until_due × 2
//
// Larger, more time-pressured groups surface first. Members are sorted by due
// date ascending; groups are sorted by score descending. Both sorts are stable,
// so ties keep first-seen order.
func FormBatches(orders []*Order, today time.Time, bonus float64, tr *trace.SequenceTrace) []Batch {
	index := make(map[BatchKey]int)
	var batches []Batch
	for _, o := range orders {
		key := o.BatchKey()
		i, ok := index[key]
		if !ok {
			i = len(batches)
			index[key] = i
			batches = append(batches, Batch{Key: key})
		}
		batches[i].Orders = append(batches[i].Orders, o)
	}

	for i := range batches {
		b := &batches[i]
		total := 0
		for _, o := range b.Orders {
			// Near-term members always carry a due date.
			days, _ := o.DaysUntilDue(today)
			total += days
		}
		b.AvgDaysUntilDue = float64(total) / float64(len(b.Orders))
		b.Score = float64(len(b.Orders))*bonus - b.AvgDaysUntilDue*dueDateWeight
		sort.SliceStable(b.Orders, func(x, y int) bool {
			return dueBefore(b.Orders[x], b.Orders[y])
		})
	}

	sort.SliceStable(batches, func(i, j int) bool {
		return batches[i].Score > batches[j].Score
	})

	if tr.Enabled() {
		for rank, b := range batches {
			members := make([]string, len(b.Orders))
			for i, o := range b.Orders {
				members[i] = o.Code
			}
			tr.RecordBatch(trace.BatchRecord{
				Key:             b.Key.String(),
				Rank:            rank,
				Score:           b.Score,
				AvgDaysUntilDue: b.AvgDaysUntilDue,
				Members:         members,
			})
		}
	}
	return batches
}
