package audit

import "math"

// Totals holds the raw sums behind a percentage.
type Totals struct {
	Earned     int
	Achievable int
	Percentage int
}

// Score sums earned and achievable points over the answered, non-N/A
// questions of b. Unanswered questions and out-of-range indexes contribute
// nothing. The percentage is 0 when nothing is scorable and never leaves
// [0, 100].
func Score(b *Bank, answers AnswerSet) Totals {
	var t Totals
	for _, q := range b.Questions {
		idx, ok := answers[q.ID]
		if !ok {
			continue
		}
		opt, ok := q.Option(idx)
		if !ok || opt.NA {
			continue
		}
		t.Earned += opt.Points
		t.Achievable += b.Ceiling(q)
	}
	t.Percentage = percentage(t.Earned, t.Achievable)
	return t
}

func percentage(earned, achievable int) int {
	if achievable <= 0 {
		return 0
	}
	p := int(math.Round(float64(earned) / float64(achievable) * 100))
	switch {
	case p < 0:
		return 0
	case p > 100:
		return 100
	}
	return p
}

// SelectTier returns the first tier whose Below bound exceeds pct, with its
// 1-based rank. The last tier is the fallback. rank is 0 only when b has no
// tiers.
func SelectTier(b *Bank, pct int) (tier Tier, rank int) {
	last := len(b.Tiers) - 1
	if last < 0 {
		return Tier{}, 0
	}
	for i := 0; i < last; i++ {
		if pct < b.Tiers[i].Below {
			return b.Tiers[i], i + 1
		}
	}
	return b.Tiers[last], last + 1
}

// ComputeResult scores answers against b and attaches the matching tier's
// content. It is pure: the same inputs always give the same Result.
func ComputeResult(b *Bank, answers AnswerSet) Result {
	pct := Score(b, answers).Percentage
	res := Result{Percentage: pct, Ranks: len(b.Tiers)}
	t, rank := SelectTier(b, pct)
	if rank == 0 {
		return res
	}
	res.Tier = t.ID
	res.Rank = rank
	res.Title = t.Title
	res.Description = t.Description
	res.Action = t.Action
	res.CTA = t.CTA
	return res
}
