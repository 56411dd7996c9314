package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/rgehrsitz/jackpot/internal/api"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the calculator as a JSON HTTP API",
	Long: `Serve the calculator as a JSON HTTP API.

Routes:
  GET  /api/health
  GET  /api/states
  POST /api/evaluate      body: {"advertisedJackpot":"1B","cashValuePercent":"52","state":"CA"}
  GET  /api/compare       ?jackpot=1B&cash=52&base=NY&states=CA,NJ
  GET  /api/sensitivity   ?jackpot=1B&state=CA&min=40&max=65&steps=26`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		engine, _, err := loadEngine(cmd)
		if err != nil {
			return err
		}
		addr, _ := cmd.Flags().GetString("addr")
		quiet, _ := cmd.Flags().GetBool("quiet")

		srv := api.NewServer(engine)
		srv.Logger = simpleCLILogger{}
		srv.AccessLog = !quiet

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return srv.ListenAndServe(ctx, addr)
	},
}

func init() {
	serveCmd.Flags().String("addr", settings.ListenAddr, "Listen address")
	serveCmd.Flags().Bool("quiet", false, "Disable the request log")
	rootCmd.AddCommand(serveCmd)
}
