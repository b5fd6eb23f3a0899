package member

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"pos/internal/models"
)

// InactiveAfter is how long a member may stay away before being listed as gone.
const InactiveAfter = 30 * 24 * time.Hour

const favoriteItems = 3

type FavoriteItem struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// Activity is what a member's orders say about them.
type Activity struct {
	Phone      string         `json:"phone"`
	Nickname   string         `json:"nickname"`
	TotalSpent float64        `json:"totalSpent"`
	Visits     int            `json:"visits"`
	LastVisit  *time.Time     `json:"lastVisit,omitempty"`
	DaysAway   int            `json:"daysAway,omitempty"`
	Favorites  []FavoriteItem `json:"favorites"`
}

type Stats struct {
	Members      int     `json:"members"`
	NewThisMonth int     `json:"newThisMonth"`
	TotalPoints  int     `json:"totalPoints"`
	AverageSpent float64 `json:"averageSpent"`
	// VIP ranks every member by total spent, highest first.
	VIP          []Activity `json:"vip"`
	Inactive     []Activity `json:"inactive"`
	NeverVisited []Activity `json:"neverVisited"`
}

type visits struct {
	count int
	last  time.Time
	items map[string]int
}

// BuildStats aggregates members with the orders they were attached to.
// Orders without a member phone are ignored.
func BuildStats(members []models.Member, orders []models.Order, now time.Time) Stats {
	byPhone := map[string]*visits{}
	for _, o := range orders {
		if o.MemberPhone == "" {
			continue
		}
		v, ok := byPhone[o.MemberPhone]
		if !ok {
			v = &visits{items: map[string]int{}}
			byPhone[o.MemberPhone] = v
		}
		v.count++
		if o.CreatedAt.After(v.last) {
			v.last = o.CreatedAt
		}
		for _, item := range o.Items {
			v.items[item.Name] += item.Quantity
		}
	}

	stats := Stats{
		Members:      len(members),
		VIP:          make([]Activity, 0, len(members)),
		Inactive:     []Activity{},
		NeverVisited: []Activity{},
	}
	year, month, _ := now.UTC().Date()
	spent := decimal.Zero

	for _, m := range members {
		stats.TotalPoints += m.Points
		spent = spent.Add(decimal.NewFromFloat(m.TotalSpent))
		if y, mo, _ := m.CreatedAt.UTC().Date(); y == year && mo == month {
			stats.NewThisMonth++
		}

		a := Activity{Phone: m.Phone, Nickname: m.Nickname, TotalSpent: m.TotalSpent, Favorites: []FavoriteItem{}}
		v, ok := byPhone[m.Phone]
		if !ok {
			stats.VIP = append(stats.VIP, a)
			stats.NeverVisited = append(stats.NeverVisited, a)
			continue
		}
		last := v.last
		a.Visits = v.count
		a.LastVisit = &last
		a.Favorites = favorites(v.items)
		away := now.Sub(last)
		if away > InactiveAfter {
			a.DaysAway = int(away / (24 * time.Hour))
			stats.Inactive = append(stats.Inactive, a)
		}
		stats.VIP = append(stats.VIP, a)
	}

	if len(members) > 0 {
		stats.AverageSpent = spent.Div(decimal.NewFromInt(int64(len(members)))).Round(2).InexactFloat64()
	}
	sort.SliceStable(stats.VIP, func(i, j int) bool {
		if stats.VIP[i].TotalSpent != stats.VIP[j].TotalSpent {
			return stats.VIP[i].TotalSpent > stats.VIP[j].TotalSpent
		}
		return stats.VIP[i].Phone < stats.VIP[j].Phone
	})
	sort.SliceStable(stats.Inactive, func(i, j int) bool {
		return stats.Inactive[i].DaysAway > stats.Inactive[j].DaysAway
	})
	return stats
}

func favorites(items map[string]int) []FavoriteItem {
	out := make([]FavoriteItem, 0, len(items))
	for name, n := range items {
		out = append(out, FavoriteItem{Name: name, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Name < out[j].Name
	})
	if len(out) > favoriteItems {
		out = out[:favoriteItems]
	}
	return out
}
