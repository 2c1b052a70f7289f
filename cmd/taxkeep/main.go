/*Basic command structure*/
package main

import (
	"github.com/mkale/taxkeep/pkg/config"
	"github.com/mkale/taxkeep/pkg/logger"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

// context holds global options
type context struct {
	log   zerolog.Logger
	rates *config.Config
}

// cli commands / args available
var cli struct {
	Rates string `help:"Path to a JSON tax-rate table merged over the built-in years."`

	Import   importCmd   `cmd:"" help:"Import transactions into the ledger."`
	Report   reportCmd   `cmd:"" help:"Compute tax reports from the ledger."`
	Delete   deleteCmd   `cmd:"" help:"Delete a transaction; its fingerprint stays excluded."`
	Validate validateCmd `cmd:"" help:"Check a tax-rate table file."`
}

func main() {
	// optional .env for ELASTICSEARCH_SERVICE_HOST and friends
	_ = godotenv.Load()

	ctx := kong.Parse(&cli)

	rates, err := config.Load(cli.Rates)
	ctx.FatalIfErrorf(err)

	err = ctx.Run(&context{log: logger.New(), rates: rates})
	ctx.FatalIfErrorf(err)
}
