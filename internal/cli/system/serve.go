package system

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/julianstephens/habitual/internal/api"
	"github.com/julianstephens/habitual/internal/cli"
)

type ServeCmd struct {
	Addr      string `help:"Listen address (default: [server] addr from config)."`
	NoMetrics bool   `help:"Disable the /metrics endpoint."`
}

func (c *ServeCmd) Run(ctx *cli.Context) error {
	opts := api.Options{
		Addr:     ctx.Config.Server.Addr,
		Metrics:  ctx.Config.Server.Metrics && !c.NoMetrics,
		Timezone: ctx.Config.Timezone,
	}
	if c.Addr != "" {
		opts.Addr = c.Addr
	}

	sigCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ctx.Printf("Serving habitual API on http://%s\n", opts.Addr)
	return api.NewServer(ctx.Tracker, opts).ListenAndServe(sigCtx)
}
