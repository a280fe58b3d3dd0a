package domain

import "sort"

type RouteStats struct {
	Departure         string
	Destination       string
	TicketCount       int
	TotalRevenueCents int64
}

func (r RouteStats) TotalRevenue() string {
	return FormatPrice(r.TotalRevenueCents)
}

// PopularRoutes groups tickets by (departure, destination). Revenue adds the
// flight price once for every ticket sold, so a flight with three tickets
// contributes three times its price. Routes are ordered by ticket count,
// highest first; equal counts keep the order they were first seen in.
func PopularRoutes(tickets []TicketDetails) []RouteStats {
	type routeKey struct{ departure, destination string }

	index := make(map[routeKey]int)
	routes := make([]RouteStats, 0)
	for _, t := range tickets {
		key := routeKey{t.Flight.Departure, t.Flight.Destination}
		i, ok := index[key]
		if !ok {
			i = len(routes)
			index[key] = i
			routes = append(routes, RouteStats{Departure: key.departure, Destination: key.destination})
		}
		routes[i].TicketCount++
		routes[i].TotalRevenueCents += t.Flight.PriceCents
	}

	sort.SliceStable(routes, func(a, b int) bool {
		return routes[a].TicketCount > routes[b].TicketCount
	})
	return routes
}
