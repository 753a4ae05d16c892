package service

import (
	"github.com/aliskhannn/palabras-bot/internal/domain/entities"
)

// MilestoneProgress places a learned-words count on the milestone ladder.
type MilestoneProgress struct {
	Learned int
	Current entities.Milestone
	Next    entities.Milestone
	IsLast  bool // Current is the top of the ladder
}

// LookupMilestone finds the milestone containing learned and the one after it.
// Counts below the ladder map to the first milestone, counts above it to the last.
// ok is false only for an empty table.
func LookupMilestone(table []entities.Milestone, learned int) (MilestoneProgress, bool) {
	if len(table) == 0 {
		return MilestoneProgress{}, false
	}

	last := table[len(table)-1]
	res := MilestoneProgress{
		Learned: learned,
		Current: table[0],
		Next:    last,
	}

	if learned > last.Max {
		res.Current = last
	}

	for _, m := range table {
		if learned >= m.Min && learned <= m.Max {
			res.Current = m
			break
		}
	}

	for _, m := range table {
		if learned < m.Min {
			res.Next = m
			break
		}
	}

	res.IsLast = res.Current == last
	return res, true
}

// Remaining returns how many words are missing to reach Next.
func (p MilestoneProgress) Remaining() int {
	if p.IsLast {
		return 0
	}
	return max(0, p.Next.Min-p.Learned)
}
