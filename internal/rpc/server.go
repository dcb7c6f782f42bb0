package rpc

import (
	"log/slog"

	middleware "github.com/vmkteam/zenrpc-middleware"
	"github.com/vmkteam/zenrpc/v2"

	"github.com/daniilsolovey/newsly/internal/headlines"
)

func New(logger *slog.Logger, fetcher headlines.Fetcher) *zenrpc.Server {
	rpcService := NewHeadlinesService(fetcher)
	rpcServer := zenrpc.NewServer(zenrpc.Options{ExposeSMD: true})
	rpcServer.Register("headlines", rpcService)
	rpcServer.Use(middleware.WithSLog(logger.InfoContext, "newsly", nil))

	return rpcServer
}
