/*Report commands: every figure is recomputed from the ledger on demand*/
package main

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/mkale/taxkeep/pkg/config"
	"github.com/mkale/taxkeep/pkg/domain"
	"github.com/mkale/taxkeep/pkg/tax"

	"github.com/shopspring/decimal"
)

type reportCmd struct {
	Tax      taxReportCmd      `cmd:"" help:"Income tax and National Insurance for a tax year."`
	VAT      vatReportCmd      `cmd:"" help:"Rolling 12-month VAT threshold exposure."`
	MTD      mtdReportCmd      `cmd:"" help:"Making Tax Digital quarterly totals."`
	Schedule scheduleReportCmd `cmd:"" help:"Payment-on-account schedule for a liability."`
}

type ReportOpts struct {
	Out string `default:"jsonfile:ledger.json" help:"Ledger to read."`
}

// includeInProfit keeps journal-only rows out of every profit figure.
func includeInProfit(t *domain.Transaction) bool {
	return !t.HasTag("journal")
}

type taxReportCmd struct {
	ReportOpts
	Year int `arg:"" help:"Tax year start, e.g. 2024 for 2024/25."`
}

func (c *taxReportCmd) Run(ctx *context) error {
	year, err := ctx.rates.YearStarting(c.Year)
	if err != nil {
		return err
	}

	period := tax.TaxYear(c.Year)
	txns, err := ledgerBetween(c.Out, period.From, period.To)
	if err != nil {
		return err
	}

	return printJSON(tax.BreakdownFor(txns, period, includeInProfit, year))
}

type vatReportCmd struct {
	ReportOpts
	Month     string `arg:"" help:"Ending month of the rolling window (YYYY-MM)."`
	RatesYear string `default:"2024-25" help:"Tax year whose VAT thresholds apply."`
}

func (c *vatReportCmd) Run(ctx *context) error {
	year, err := ctx.rates.Year(c.RatesYear)
	if err != nil {
		return err
	}

	ending, err := time.Parse("2006-01", c.Month)
	if err != nil {
		return fmt.Errorf("bad month %q, want YYYY-MM", c.Month)
	}

	from := ending.AddDate(0, -11, 0)
	to := ending.AddDate(0, 1, 0).AddDate(0, 0, -1)
	txns, err := ledgerBetween(c.Out, from, to.Add(24*time.Hour-time.Nanosecond))
	if err != nil {
		return err
	}

	return printJSON(tax.VATStatus(txns, ending, year))
}

type mtdReportCmd struct {
	ReportOpts
	Year int    `arg:"" help:"Tax year start, e.g. 2024 for 2024/25."`
	AsOf string `help:"Date statuses are judged against (YYYY-MM-DD); defaults to today."`
}

func (c *mtdReportCmd) Run(ctx *context) error {
	asOf := time.Now().UTC()
	if c.AsOf != "" {
		var err error
		asOf, err = parseDay(c.AsOf)
		if err != nil {
			return err
		}
	}

	period := tax.TaxYear(c.Year)
	txns, err := ledgerBetween(c.Out, period.From, period.To)
	if err != nil {
		return err
	}

	return printJSON(tax.MTDQuarters(txns, c.Year, asOf, includeInProfit))
}

type scheduleReportCmd struct {
	Total string `arg:"" help:"Total tax due for the year, e.g. 9981.40."`
	Year  int    `arg:"" help:"Tax year end, e.g. 2025 for 2024/25."`
}

func (c *scheduleReportCmd) Run(ctx *context) error {
	total, err := decimal.NewFromString(c.Total)
	if err != nil {
		return fmt.Errorf("bad amount %q", c.Total)
	}
	return printJSON(tax.PaymentSchedule(total, c.Year))
}

type validateCmd struct {
	File string `arg:"" help:"Rate table file to check."`
}

func (c *validateCmd) Run(ctx *context) error {
	if _, err := config.Load(c.File); err != nil {
		return err
	}
	ctx.log.Info().Str("file", c.File).Msg("rate table ok")
	return nil
}

func ledgerBetween(out string, from, to time.Time) ([]*domain.Transaction, error) {
	storage, err := getStore(out)
	if err != nil {
		return nil, err
	}
	return storage.Between(from, to)
}

func printJSON(v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}
