package koreanbots

import (
	"github.com/koreanbots/koreanbots-go/internal/ratelimit"
	"github.com/koreanbots/koreanbots-go/internal/types"
)

// Public type aliases so callers can import only the root package.
type (
	// Domain entities
	User        = types.User
	UserInfo    = types.UserInfo
	UserInfoBot = types.UserInfoBot
	Bot         = types.Bot
	VoteCheck   = types.VoteCheck
	UserFlags   = types.UserFlags
	BotFlags    = types.BotFlags
	Status      = types.Status
	State       = types.State

	// Envelopes
	Response[T any] = types.Response[T]
	Data[T any]     = types.Data[T]
	ResponseUpdate  = types.ResponseUpdate
	RateLimit       = ratelimit.RateLimit

	// Requests
	StatsUpdate = types.StatsUpdate
	WidgetType  = types.WidgetType
	WidgetStyle = types.WidgetStyle
	WidgetQuery = types.WidgetQuery
)

const (
	UserFlagNone        = types.UserFlagNone
	UserFlagAdmin       = types.UserFlagAdmin
	UserFlagBugHunter   = types.UserFlagBugHunter
	UserFlagBotReviewer = types.UserFlagBotReviewer
	UserFlagPremiumUser = types.UserFlagPremiumUser

	BotFlagNone                 = types.BotFlagNone
	BotFlagOfficial             = types.BotFlagOfficial
	BotFlagCertified            = types.BotFlagCertified
	BotFlagPartner              = types.BotFlagPartner
	BotFlagDiscordVerified      = types.BotFlagDiscordVerified
	BotFlagPremium              = types.BotFlagPremium
	BotFlagFirstHackathonWinner = types.BotFlagFirstHackathonWinner

	WidgetVotes   = types.WidgetVotes
	WidgetServers = types.WidgetServers
	WidgetStatus  = types.WidgetStatus

	WidgetStyleClassic = types.WidgetStyleClassic
	WidgetStyleFlat    = types.WidgetStyleFlat
)

// NewWidgetQuery returns an empty query; the service defaults apply.
func NewWidgetQuery() WidgetQuery { return types.NewWidgetQuery() }

// ServersUpdate is a heartbeat that only reports the server count.
func ServersUpdate(n int) StatsUpdate { return types.ServersUpdate(n) }

// ShardsUpdate is a heartbeat that only reports the shard count.
func ShardsUpdate(n int) StatsUpdate { return types.ShardsUpdate(n) }
