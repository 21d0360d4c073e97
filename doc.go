// Package koreanbots is a client for the KoreanBots bot listing API.
//
// The blocking Client covers bot lookup, search, rankings, vote checks,
// stats heartbeats, user profiles and widget URLs:
//
//	c, err := koreanbots.New(os.Getenv("KOREANBOTS_TOKEN"))
//	if err != nil {
//		return err
//	}
//	defer c.Close()
//
//	bot, err := c.GetBot(ctx, "653534001742741552")
//	_, err = c.UpdateServers(ctx, bot.Data.ID, 1200)
//
// Client.Async returns a view whose methods enqueue the same requests and
// return a Future. Heartbeats for one bot are delivered in order.
//
// Every error matches one of ErrTransport, ErrDecode, ErrAPI or ErrConfig
// under errors.Is; AsAPIError exposes status, code and message.
package koreanbots
