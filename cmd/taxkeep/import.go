/*Import and delete flows*/
package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/mkale/taxkeep/pkg/domain"
	"github.com/mkale/taxkeep/pkg/importer"
	"github.com/mkale/taxkeep/pkg/source"
	"github.com/mkale/taxkeep/pkg/store"
)

type importCmd struct {
	CSV  csvImportCmd  `cmd:"" help:"Import a CSV statement export."`
	Feed feedImportCmd `cmd:"" help:"Import a provider feed (JSON) export."`
}

type ImportOpts struct {
	Out   string `default:"jsonfile:ledger.json" help:"Ledger to write [jsonfile:/path/ledger.json es8:http://myelasticsearch:9200]"`
	Rules string `help:"Rules file (JSON) applied to admitted rows."`
	From  string `default:"1970-01-01" help:"Earliest date to import (YYYY-MM-DD)."`
	To    string `default:"2100-01-01" help:"Latest date to import (YYYY-MM-DD)."`
}

type csvImportCmd struct {
	ImportOpts
	File string `arg:"" help:"Statement file to import."`
}

type feedImportCmd struct {
	ImportOpts
	File string `arg:"" help:"Feed export file to import."`
}

func (c *csvImportCmd) Run(ctx *context) error {
	return runImport(ctx, source.NewCSV(c.File), c.ImportOpts)
}

func (c *feedImportCmd) Run(ctx *context) error {
	return runImport(ctx, source.NewFeed(c.File), c.ImportOpts)
}

func runImport(ctx *context, src source.Source, opts ImportOpts) error {
	storage, err := getStore(opts.Out)
	if err != nil {
		return err
	}

	ruleset := []domain.CategorizationRule{}
	if opts.Rules != "" {
		ruleset, err = store.LoadRules(opts.Rules)
		if err != nil {
			return err
		}
	}

	from, err := parseDay(opts.From)
	if err != nil {
		return err
	}
	to, err := parseDay(opts.To)
	if err != nil {
		return err
	}

	report, err := importer.New(storage, ruleset, ctx.log).Run(src, from, to)
	if err != nil {
		return err
	}

	fmt.Printf("admitted %d, duplicates %d, previously deleted %d\n",
		len(report.Admitted), len(report.Duplicates), report.PreviouslyDeleted)
	for _, d := range report.Duplicates {
		fmt.Printf("  duplicate of %s: %s %s %s\n",
			d.MatchedID, d.Candidate.Date.Format("2006-01-02"),
			d.Candidate.Amount.StringFixed(2), d.Candidate.Description)
	}
	return nil
}

type deleteCmd struct {
	ID  string `arg:"" help:"Transaction id to delete."`
	Out string `default:"jsonfile:ledger.json" help:"Ledger to modify."`
}

func (c *deleteCmd) Run(ctx *context) error {
	storage, err := getStore(c.Out)
	if err != nil {
		return err
	}
	if err := storage.Delete(c.ID); err != nil {
		return err
	}
	ctx.log.Info().Str("id", c.ID).Msg("deleted; fingerprint excluded from future imports")
	return nil
}

func getStore(out string) (store.Store, error) {
	bits := strings.SplitN(out, ":", 2)
	if len(bits) != 2 {
		return nil, fmt.Errorf("invalid out path, expected [jsonfile:/path/to/file.json] or [es8:http://elasticsearch:9200]")
	}

	if bits[0] == "es8" {
		return store.NewElasticsearchV8(bits[1]), nil
	}

	return store.NewJSONFile(bits[1]), nil
}

func parseDay(raw string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("bad date %q, want YYYY-MM-DD", raw)
	}
	return t.UTC(), nil
}
