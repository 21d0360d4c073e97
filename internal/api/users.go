package api

import (
	"context"
	"errors"
	"net/http"

	kberrors "github.com/koreanbots/koreanbots-go/internal/errors"
	"github.com/koreanbots/koreanbots-go/internal/types"
)

var errEmptyQuery = errors.New("search query must not be empty")

// GetUser fetches a user profile with the bots they own.
func GetUser(ctx context.Context, httpClient types.HTTPClient, baseURL, userID string) (*types.Response[types.UserInfo], error) {
	const op = "get user"
	if err := types.ValidateIDPresent(userID, "userId"); err != nil {
		return nil, kberrors.NewConfigError(op, err)
	}
	return Do[types.Response[types.UserInfo]](ctx, httpClient, baseURL, Request{
		Op:     op,
		Method: http.MethodGet,
		Path:   "users/" + escape(userID),
	})
}
