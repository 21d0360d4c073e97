package types

import (
	"strings"
	"time"
)

// ------------------------------
// Badges
// ------------------------------

// UserFlags is the bit-set of badges a user carries.
type UserFlags uint

const (
	UserFlagAdmin UserFlags = 1 << iota
	UserFlagBugHunter
	UserFlagBotReviewer
	UserFlagPremiumUser

	UserFlagNone UserFlags = 0
)

// Has reports whether every bit of flag is set.
func (f UserFlags) Has(flag UserFlags) bool { return flag != 0 && f&flag == flag }

// BotFlags is the bit-set of badges a bot carries. Bit 1 is unassigned.
type BotFlags uint

const (
	BotFlagNone                 BotFlags = 0
	BotFlagOfficial             BotFlags = 1 << 0
	BotFlagCertified            BotFlags = 1 << 2
	BotFlagPartner              BotFlags = 1 << 3
	BotFlagDiscordVerified      BotFlags = 1 << 4
	BotFlagPremium              BotFlags = 1 << 5
	BotFlagFirstHackathonWinner BotFlags = 1 << 6
)

// Has reports whether every bit of flag is set.
func (f BotFlags) Has(flag BotFlags) bool { return flag != 0 && f&flag == flag }

// ------------------------------
// Enumerations
// ------------------------------

// Status is the bot's Discord presence.
type Status string

const (
	StatusOnline    Status = "online"
	StatusIdle      Status = "idle"
	StatusDnd       Status = "dnd"
	StatusStreaming Status = "streaming"
	StatusOffline   Status = "offline"
)

// State is the bot's moderation state on the listing.
type State string

const (
	StateOk       State = "ok"
	StateReported State = "reported"
	StateBlocked  State = "blocked"
	StatePrivate  State = "private"
	StateArchived State = "archived"
)

// ------------------------------
// Core Domain Entities
// ------------------------------

// User is a listing user as embedded in a bot's owner list.
type User struct {
	ID       string    `json:"id"`
	Flags    UserFlags `json:"flags"`
	GitHub   *string   `json:"github"`
	Tag      string    `json:"tag"`
	Username string    `json:"username"`
	Bots     []string  `json:"bots"`
}

// Bot is a listed bot. Empty link fields are omitted when serialized.
type Bot struct {
	ID       string   `json:"id"`
	Flags    BotFlags `json:"flags"`
	Name     string   `json:"name"`
	Tag      string   `json:"tag"`
	Avatar   *string  `json:"avatar"`
	Owners   []User   `json:"owners"`
	Lib      string   `json:"lib"`
	Prefix   string   `json:"prefix"`
	Votes    int      `json:"votes"`
	Servers  int      `json:"servers"`
	Intro    string   `json:"intro"`
	Desc     string   `json:"desc"`
	Web      string   `json:"web,omitempty"`
	Git      string   `json:"git,omitempty"`
	URL      string   `json:"url,omitempty"`
	Discord  string   `json:"discord,omitempty"`
	Category []string `json:"category"`
	Vanity   *string  `json:"vanity"`
	Bg       string   `json:"bg,omitempty"`
	Banner   string   `json:"banner,omitempty"`
	Status   *Status  `json:"status"`
	State    State    `json:"state"`
}

// OwnerIDs returns the ids of the bot's owners in listing order.
func (b Bot) OwnerIDs() []string {
	ids := make([]string, 0, len(b.Owners))
	for _, o := range b.Owners {
		ids = append(ids, o.ID)
	}
	return ids
}

// UserInfo is the user profile returned by the users endpoint; owned bots
// are embedded with owners listed by id.
type UserInfo struct {
	ID       string        `json:"id"`
	Flags    UserFlags     `json:"flags"`
	GitHub   *string       `json:"github"`
	Tag      string        `json:"tag"`
	Username string        `json:"username"`
	Bots     []UserInfoBot `json:"bots"`
}

// UserInfoBot is a Bot summary whose owners are ids rather than records.
type UserInfoBot struct {
	ID       string   `json:"id"`
	Flags    BotFlags `json:"flags"`
	Name     string   `json:"name"`
	Tag      string   `json:"tag"`
	Avatar   *string  `json:"avatar"`
	Owners   []string `json:"owners"`
	Lib      string   `json:"lib"`
	Prefix   string   `json:"prefix"`
	Votes    int      `json:"votes"`
	Servers  int      `json:"servers"`
	Intro    string   `json:"intro"`
	Desc     string   `json:"desc"`
	Web      string   `json:"web,omitempty"`
	Git      string   `json:"git,omitempty"`
	URL      string   `json:"url,omitempty"`
	Discord  string   `json:"discord,omitempty"`
	Category []string `json:"category"`
	Vanity   *string  `json:"vanity"`
	Bg       string   `json:"bg,omitempty"`
	Banner   string   `json:"banner,omitempty"`
	Status   *Status  `json:"status"`
	State    State    `json:"state"`
}

// VoteCheck reports whether a user voted for a bot.
type VoteCheck struct {
	Voted    bool  `json:"voted"`
	LastVote int64 `json:"lastVote"` // unix milliseconds, 0 when never voted
}

// LastVoteTime converts LastVote to a time; zero when the user never voted.
func (v VoteCheck) LastVoteTime() time.Time {
	if v.LastVote <= 0 {
		return time.Time{}
	}
	return time.UnixMilli(v.LastVote)
}

// FullTag renders username#tag.
func (u User) FullTag() string {
	var b strings.Builder
	b.WriteString(u.Username)
	b.WriteByte('#')
	b.WriteString(u.Tag)
	return b.String()
}
