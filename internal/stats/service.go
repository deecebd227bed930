package stats

import (
	"context"
	"sort"
	"time"

	"catering/internal/catalog"
	"catering/internal/orders"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const topMenus = 5

type Service struct {
	repo Repository
	log  *zap.Logger
}

func NewService(repo Repository, log *zap.Logger) *Service {
	return &Service{repo: repo, log: log.Named("stats")}
}

// Snapshot aggregates orders created in [from, to). Cancelled orders are
// counted by status but left out of revenue, order values and menu totals.
func (s *Service) Snapshot(ctx context.Context, from, to time.Time) (*Snapshot, error) {
	samples, err := s.repo.Samples(ctx, from, to)
	if err != nil {
		return nil, err
	}

	snap := &Snapshot{
		From:     from,
		To:       to,
		Orders:   len(samples),
		ByStatus: map[string]int{},
		TopMenus: []MenuCount{},
	}

	var values []decimal.Decimal
	sum := decimal.Zero
	menus := map[string]*MenuCount{}

	for _, sm := range samples {
		snap.ByStatus[sm.Status]++
		if sm.Status == orders.StatusCancelled {
			continue
		}

		values = append(values, sm.Total.Decimal)
		sum = sum.Add(sm.Total.Decimal)
		snap.Portions += sm.Portions

		for _, line := range sm.Lines {
			mc, ok := menus[line.MenuID]
			if !ok {
				mc = &MenuCount{MenuID: line.MenuID, MenuName: line.MenuName}
				menus[line.MenuID] = mc
			}
			mc.Orders++
			mc.Portions += line.Portions
		}
	}

	snap.Revenue = catalog.NewMoney(sum)
	if len(values) > 0 {
		snap.AverageOrder = catalog.NewMoney(sum.Div(decimal.NewFromInt(int64(len(values)))).Round(2))
		snap.MedianOrder = catalog.NewMoney(median(values))
	}

	for _, mc := range menus {
		snap.TopMenus = append(snap.TopMenus, *mc)
	}
	sort.Slice(snap.TopMenus, func(i, j int) bool {
		a, b := snap.TopMenus[i], snap.TopMenus[j]
		if a.Portions != b.Portions {
			return a.Portions > b.Portions
		}
		return a.MenuName < b.MenuName
	})
	if len(snap.TopMenus) > topMenus {
		snap.TopMenus = snap.TopMenus[:topMenus]
	}

	s.log.Debug("snapshot computed",
		zap.Time("from", from),
		zap.Time("to", to),
		zap.Int("orders", snap.Orders),
		zap.Stringer("revenue", snap.Revenue),
	)
	return snap, nil
}

func median(values []decimal.Decimal) decimal.Decimal {
	sort.Slice(values, func(i, j int) bool { return values[i].LessThan(values[j]) })
	mid := len(values) / 2
	if len(values)%2 == 1 {
		return values[mid]
	}
	return values[mid-1].Add(values[mid]).Div(decimal.NewFromInt(2)).Round(2)
}
