package api

import (
	"context"
	"net/http"

	kberrors "github.com/koreanbots/koreanbots-go/internal/errors"
	"github.com/koreanbots/koreanbots-go/internal/types"
)

func widgetRequest(botID string, kind types.WidgetType, q *types.WidgetQuery) (Request, error) {
	const op = "bot widget"
	if err := types.ValidateIDPresent(botID, "botId"); err != nil {
		return Request{}, kberrors.NewConfigError(op, err)
	}
	if err := types.ValidateWidgetType(kind); err != nil {
		return Request{}, kberrors.NewConfigError(op, err)
	}
	r := Request{
		Op:     op,
		Method: http.MethodGet,
		Path:   "widget/bots/" + string(kind) + "/" + escape(botID) + ".svg",
	}
	if q != nil {
		r.Query = q.Params()
	}
	return r, nil
}

// WidgetURL builds the widget image URL without any network I/O. Without a
// query the URL carries no parameters and the service applies its defaults.
func WidgetURL(baseURL, botID string, kind types.WidgetType, q *types.WidgetQuery) (string, error) {
	r, err := widgetRequest(botID, kind, q)
	if err != nil {
		return "", err
	}
	u, err := BuildURL(baseURL, r.Path, r.Query)
	if err != nil {
		return "", kberrors.NewConfigError(r.Op, err)
	}
	return u, nil
}

// ResolveWidgetURL requests the widget and returns the URL it was finally
// served from, after redirects. The image bytes are discarded.
func ResolveWidgetURL(ctx context.Context, httpClient types.HTTPClient, baseURL, botID string, kind types.WidgetType, q *types.WidgetQuery) (string, error) {
	r, err := widgetRequest(botID, kind, q)
	if err != nil {
		return "", err
	}
	res, err := send(ctx, httpClient, baseURL, r)
	if err != nil {
		return "", err
	}
	if res.finalURL == "" {
		return BuildURL(baseURL, r.Path, r.Query)
	}
	return res.finalURL, nil
}
