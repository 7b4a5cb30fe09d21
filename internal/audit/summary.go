package audit

// ComputeProgress counts the questions of b that have a resolvable answer.
// Entries for unknown questions and out-of-range indexes are not counted.
func ComputeProgress(b *Bank, answers AnswerSet) Progress {
	p := Progress{Total: len(b.Questions)}
	for _, q := range b.Questions {
		idx, ok := answers[q.ID]
		if !ok {
			continue
		}
		if _, ok := q.Option(idx); ok {
			p.Answered++
		}
	}
	p.Complete = p.Answered == p.Total
	return p
}

// ComputeBreakdown reports each question's contribution in bank order.
func ComputeBreakdown(b *Bank, answers AnswerSet) []QuestionScore {
	out := make([]QuestionScore, 0, len(b.Questions))
	for _, q := range b.Questions {
		qs := QuestionScore{QuestionID: q.ID, Status: StatusUnanswered}
		idx, answered := answers[q.ID]
		if answered {
			opt, ok := q.Option(idx)
			switch {
			case !ok:
				qs.Status = StatusInvalid
			case opt.NA:
				qs.Status = StatusNA
				qs.Option = opt.Text
			default:
				qs.Status = StatusScored
				qs.Points = opt.Points
				qs.MaxPoints = b.Ceiling(q)
				qs.Option = opt.Text
			}
		}
		out = append(out, qs)
	}
	return out
}
