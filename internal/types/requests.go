package types

import "strconv"

// ------------------------------
// Request Types
// ------------------------------

// StatsUpdate is the heartbeat body for bots/{id}/stats. At least one count
// must be set; unset counts are not sent.
type StatsUpdate struct {
	Servers *int `json:"servers,omitempty" validate:"omitempty,min=0"`
	Shards  *int `json:"shards,omitempty" validate:"omitempty,min=0"`
}

// ServersUpdate reports a server count.
func ServersUpdate(n int) StatsUpdate { return StatsUpdate{Servers: &n} }

// ShardsUpdate reports a shard count.
func ShardsUpdate(n int) StatsUpdate { return StatsUpdate{Shards: &n} }

// WidgetType selects which counter a widget renders.
type WidgetType string

const (
	WidgetVotes   WidgetType = "votes"
	WidgetServers WidgetType = "servers"
	WidgetStatus  WidgetType = "status"
)

func (w WidgetType) String() string { return string(w) }

// WidgetStyle selects the widget's visual style.
type WidgetStyle string

const (
	WidgetStyleClassic WidgetStyle = "classic"
	WidgetStyleFlat    WidgetStyle = "flat"
)

const (
	minWidgetScale     = 0.5
	maxWidgetScale     = 3.0
	defaultWidgetScale = 1.0
)

// WidgetQuery holds widget rendering options. The zero value renders the
// defaults (flat, scale 1, icon shown). With* methods return modified copies.
type WidgetQuery struct {
	style *WidgetStyle
	scale *float64
	icon  *bool
}

// NewWidgetQuery returns a query with every option unset.
func NewWidgetQuery() WidgetQuery { return WidgetQuery{} }

// WithStyle returns a copy with the style set.
func (q WidgetQuery) WithStyle(s WidgetStyle) WidgetQuery {
	q.style = &s
	return q
}

// WithScale returns a copy with the scale set. Out-of-range values are kept
// as given and resolve to 1 in Scale.
func (q WidgetQuery) WithScale(f float64) WidgetQuery {
	q.scale = &f
	return q
}

// WithIcon returns a copy with icon visibility set.
func (q WidgetQuery) WithIcon(show bool) WidgetQuery {
	q.icon = &show
	return q
}

// Style returns "classic" or "flat"; anything unset or unknown is flat.
func (q WidgetQuery) Style() WidgetStyle {
	if q.style != nil && *q.style == WidgetStyleClassic {
		return WidgetStyleClassic
	}
	return WidgetStyleFlat
}

// Scale returns the scale when it lies in [0.5, 3.0], otherwise exactly 1.
func (q WidgetQuery) Scale() float64 {
	if q.scale == nil {
		return defaultWidgetScale
	}
	if s := *q.scale; s >= minWidgetScale && s <= maxWidgetScale {
		return s
	}
	return defaultWidgetScale
}

// Icon returns "true" unless the icon was explicitly hidden.
func (q WidgetQuery) Icon() string {
	if q.icon != nil && !*q.icon {
		return "false"
	}
	return "true"
}

// Params renders the query parameters sent to the widget endpoint.
func (q WidgetQuery) Params() map[string]string {
	return map[string]string{
		"style": string(q.Style()),
		"icon":  q.Icon(),
		"scale": strconv.FormatFloat(q.Scale(), 'f', -1, 64),
	}
}

// NormalizePage maps unspecified (zero) or invalid pages to the first page.
func NormalizePage(page int) int {
	if page < 1 {
		return 1
	}
	return page
}
