package api

import (
	"context"
	"net/http"
	"strconv"

	kberrors "github.com/koreanbots/koreanbots-go/internal/errors"
	"github.com/koreanbots/koreanbots-go/internal/types"
)

// GetBot fetches a bot by id or vanity slug.
func GetBot(ctx context.Context, httpClient types.HTTPClient, baseURL, botID string) (*types.Response[types.Bot], error) {
	const op = "get bot"
	if err := types.ValidateIDPresent(botID, "botId"); err != nil {
		return nil, kberrors.NewConfigError(op, err)
	}
	return Do[types.Response[types.Bot]](ctx, httpClient, baseURL, Request{
		Op:     op,
		Method: http.MethodGet,
		Path:   "bots/" + escape(botID),
	})
}

// SearchBots runs a free-text search. Pages below 1 request the first page.
func SearchBots(ctx context.Context, httpClient types.HTTPClient, baseURL, query string, page int) (*types.Response[types.Data[types.Bot]], error) {
	const op = "search bots"
	if query == "" {
		return nil, kberrors.NewConfigError(op, errEmptyQuery)
	}
	return Do[types.Response[types.Data[types.Bot]]](ctx, httpClient, baseURL, Request{
		Op:     op,
		Method: http.MethodGet,
		Path:   "search/bots",
		Query: map[string]string{
			"query": query,
			"page":  strconv.Itoa(types.NormalizePage(page)),
		},
	})
}

// ListBotsByVotes lists bots ranked by votes.
func ListBotsByVotes(ctx context.Context, httpClient types.HTTPClient, baseURL string, page int) (*types.Response[types.Data[types.Bot]], error) {
	return Do[types.Response[types.Data[types.Bot]]](ctx, httpClient, baseURL, Request{
		Op:     "list bots by votes",
		Method: http.MethodGet,
		Path:   "list/bots/votes",
		Query:  map[string]string{"page": strconv.Itoa(types.NormalizePage(page))},
	})
}

// ListNewBots lists the most recently approved bots. Not paginated.
func ListNewBots(ctx context.Context, httpClient types.HTTPClient, baseURL string) (*types.Response[types.Data[types.Bot]], error) {
	return Do[types.Response[types.Data[types.Bot]]](ctx, httpClient, baseURL, Request{
		Op:     "list new bots",
		Method: http.MethodGet,
		Path:   "list/bots/new",
	})
}

// CheckVote reports whether userID voted for botID. Requires the token.
func CheckVote(ctx context.Context, httpClient types.HTTPClient, baseURL, botID, userID string) (*types.Response[types.VoteCheck], error) {
	const op = "check vote"
	if err := types.ValidateIDPresent(botID, "botId"); err != nil {
		return nil, kberrors.NewConfigError(op, err)
	}
	if err := types.ValidateIDPresent(userID, "userId"); err != nil {
		return nil, kberrors.NewConfigError(op, err)
	}
	return Do[types.Response[types.VoteCheck]](ctx, httpClient, baseURL, Request{
		Op:     op,
		Method: http.MethodGet,
		Path:   "bots/" + escape(botID) + "/vote",
		Query:  map[string]string{"userID": userID},
		Auth:   true,
	})
}

// UpdateStats posts the heartbeat for botID. Requires the token.
func UpdateStats(ctx context.Context, httpClient types.HTTPClient, baseURL, botID string, stats types.StatsUpdate) (*types.ResponseUpdate, error) {
	const op = "update stats"
	if err := types.ValidateIDPresent(botID, "botId"); err != nil {
		return nil, kberrors.NewConfigError(op, err)
	}
	if err := types.ValidateStats(stats); err != nil {
		return nil, kberrors.NewConfigError(op, err)
	}
	return Do[types.ResponseUpdate](ctx, httpClient, baseURL, Request{
		Op:     op,
		Method: http.MethodPost,
		Path:   "bots/" + escape(botID) + "/stats",
		Body:   stats,
		Auth:   true,
	})
}
