package application

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/sebuszqo/BudgetPlanner/internal/planner/domain"
)

const (
	// Window clamp around "today". Rules anchored decades in the past are
	// projected only inside this horizon; the clamp is the recovery for
	// otherwise unbounded projections.
	defaultLookbackMonths  = 24
	defaultLookaheadMonths = 24

	// Cap on instances materialized per series per run, so a master that
	// was not opened for a very long time catches up in batches instead of
	// flooding a single write.
	maxMaterializePerRun = 36

	// Hard iteration guard for a single projection walk.
	maxProjectionSteps = 2000
)

type ProjectionService struct {
	repo            domain.TransactionRepository
	lookbackMonths  int
	lookaheadMonths int
	now             func() time.Time
}

func NewProjectionService(repo domain.TransactionRepository) *ProjectionService {
	return &ProjectionService{
		repo:            repo,
		lookbackMonths:  defaultLookbackMonths,
		lookaheadMonths: defaultLookaheadMonths,
		now:             time.Now,
	}
}

// Project expands a recurring master into ghost occurrences inside the
// given window, skipping every calendar day already covered by a
// materialized instance. The master itself covers its anchor date, so
// projection starts one step after the anchor. The function reads nothing
// but its arguments and is idempotent: the same inputs always produce the
// same occurrence set.
func (s *ProjectionService) Project(master *domain.Transaction, windowStart, windowEnd time.Time, existing []time.Time) []domain.Occurrence {
	rule, ok := master.Rule()
	if !ok || rule.Paused {
		return nil
	}

	start := domain.NormalizeToNoon(windowStart)
	end := domain.NormalizeToNoon(windowEnd)

	today := domain.NormalizeToNoon(s.now())
	if floor := domain.AddMonthsClamped(today, -s.lookbackMonths); start.Before(floor) {
		start = floor
	}
	if ceiling := domain.AddMonthsClamped(today, s.lookaheadMonths); end.After(ceiling) {
		end = ceiling
	}
	if end.Before(start) {
		return nil
	}

	taken := make(map[string]bool, len(existing))
	for _, date := range existing {
		taken[domain.DayKey(date)] = true
	}

	n := firstOccurrenceAtOrAfter(rule, start)
	if n < 1 {
		n = 1
	}

	var occurrences []domain.Occurrence
	for steps := 0; steps < maxProjectionSteps; steps++ {
		date := rule.NthOccurrence(n)
		if date.After(end) || rule.Ended(date) {
			break
		}
		if !taken[domain.DayKey(date)] {
			occurrences = append(occurrences, domain.NewOccurrence(master, date))
		}
		n++
	}
	return occurrences
}

// UpcomingOccurrences projects ghosts for every active series in the
// window, merged and ordered by date. Nothing is persisted.
func (s *ProjectionService) UpcomingOccurrences(windowStart, windowEnd time.Time) ([]domain.Occurrence, error) {
	masters, err := s.repo.FindMasters()
	if err != nil {
		return nil, err
	}

	var occurrences []domain.Occurrence
	for i := range masters {
		master := &masters[i]
		rule, ok := master.Rule()
		if !ok {
			continue
		}
		family, err := s.repo.FindBySeries(rule.SeriesID)
		if err != nil {
			return nil, err
		}
		existing := make([]time.Time, 0, len(family))
		for _, member := range family {
			existing = append(existing, member.Date)
		}
		occurrences = append(occurrences, s.Project(master, windowStart, windowEnd, existing)...)
	}

	sort.Slice(occurrences, func(i, j int) bool {
		if !occurrences[i].Date.Equal(occurrences[j].Date) {
			return occurrences[i].Date.Before(occurrences[j].Date)
		}
		return occurrences[i].SeriesID < occurrences[j].SeriesID
	})
	return occurrences, nil
}

// MaterializeDue walks every active series from its last-generated
// checkpoint and persists occurrences that became due on or before asOf as
// real instances. Instances and checkpoint updates are written in one
// repository transaction. Running it twice for the same day inserts
// nothing the second time.
func (s *ProjectionService) MaterializeDue(asOf time.Time) (int, error) {
	masters, err := s.repo.FindMasters()
	if err != nil {
		return 0, err
	}

	cutoff := domain.NormalizeToNoon(asOf)
	var instances []domain.Transaction
	checkpoints := make(map[string]time.Time)

	for i := range masters {
		master := &masters[i]
		rule, ok := master.Rule()
		if !ok || rule.Paused {
			continue
		}

		family, err := s.repo.FindBySeries(rule.SeriesID)
		if err != nil {
			return 0, err
		}
		taken := make(map[string]bool, len(family))
		for _, member := range family {
			taken[domain.DayKey(member.Date)] = true
		}

		// Resume after the checkpoint instead of re-walking the series
		// history on every load.
		resumeAfter := rule.Anchor
		if rule.LastGenerated != nil {
			resumeAfter = domain.NormalizeToNoon(*rule.LastGenerated)
		}

		n := firstOccurrenceAtOrAfter(rule, domain.AddDays(resumeAfter, 1))
		if n < 1 {
			n = 1
		}

		var lastWalked time.Time
		for steps := 0; steps < maxMaterializePerRun; steps++ {
			date := rule.NthOccurrence(n)
			if date.After(cutoff) || rule.Ended(date) {
				break
			}
			if !taken[domain.DayKey(date)] {
				ghost := domain.NewOccurrence(master, date)
				instances = append(instances, ghost.Materialize(uuid.NewString(), s.now()))
			}
			lastWalked = date
			n++
		}
		if !lastWalked.IsZero() {
			checkpoints[master.ID] = lastWalked
		}
	}

	if len(instances) == 0 && len(checkpoints) == 0 {
		return 0, nil
	}
	if err := s.repo.MaterializeInstances(instances, checkpoints); err != nil {
		return 0, err
	}
	return len(instances), nil
}

// firstOccurrenceAtOrAfter estimates the occurrence index that lands on or
// after the given date and corrects the estimate by walking, so decades-old
// anchors do not force a step-by-step crawl through their whole history.
func firstOccurrenceAtOrAfter(rule domain.RecurrenceRule, from time.Time) int {
	if !rule.Anchor.Before(from) {
		return 0
	}

	var n int
	switch rule.Frequency {
	case domain.FrequencyWeekly:
		n = int(from.Sub(rule.Anchor).Hours() / (24 * 7))
	case domain.FrequencyBiweekly:
		n = int(from.Sub(rule.Anchor).Hours() / (24 * 14))
	case domain.FrequencyMonthly:
		n = (from.Year()-rule.Anchor.Year())*12 + int(from.Month()) - int(rule.Anchor.Month())
	case domain.FrequencyYearly:
		n = from.Year() - rule.Anchor.Year()
	}
	if n < 0 {
		n = 0
	}
	for n > 0 && !rule.NthOccurrence(n).Before(from) {
		n--
	}
	for rule.NthOccurrence(n).Before(from) {
		n++
	}
	return n
}
