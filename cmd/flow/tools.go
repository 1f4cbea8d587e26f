package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/salmondarat/Flow-sub001/internal/database"
	"github.com/salmondarat/Flow-sub001/internal/form"
	"github.com/salmondarat/Flow-sub001/internal/pricing"
	"github.com/salmondarat/Flow-sub001/internal/prompt"
	"github.com/salmondarat/Flow-sub001/internal/wizard"
	"github.com/urfave/cli/v2"
)

func migrateCommand() *cli.Command {
	return &cli.Command{
		Name:  "migrate",
		Usage: "Apply database migrations",
		Flags: []cli.Flag{databaseURLFlag()},
		Action: func(c *cli.Context) error {
			dbURL := stringOr(c, "database-url", loadedConfig(c).Database.URL)
			if dbURL == "" {
				return errors.New("database URL is required")
			}
			pool, err := database.Connect(c.Context, dbURL)
			if err != nil {
				return err
			}
			defer pool.Close()
			return database.Migrate(c.Context, pool)
		},
	}
}

func quoteCommand() *cli.Command {
	return &cli.Command{
		Name:  "quote",
		Usage: "Price one item and print it as JSON",
		Flags: []cli.Flag{
			databaseURLFlag(),
			templateFlag(),
			&cli.StringFlag{Name: "service-id", Usage: "Catalog service id or slug"},
			&cli.StringFlag{Name: "complexity-id", Usage: "Catalog complexity id or slug"},
			&cli.StringFlag{Name: "service", Usage: "Legacy service type (full_build, repair, repaint)"},
			&cli.StringFlag{Name: "complexity", Usage: "Legacy complexity (low, medium, high)"},
			&cli.StringSliceFlag{Name: "addon", Usage: "Add-on id (repeatable)"},
		},
		Action: runQuote,
	}
}

func runQuote(c *cli.Context) error {
	cfg := loadedConfig(c)
	tmpl, err := loadTemplate(stringOr(c, "template", cfg.Pricing.TemplateFile))
	if err != nil {
		return err
	}

	var catalog pricing.Catalog
	if dbURL := stringOr(c, "database-url", cfg.Database.URL); dbURL != "" {
		pool, err := database.Connect(c.Context, dbURL)
		if err != nil {
			return err
		}
		defer pool.Close()
		repo, err := pricing.NewRepository(pool)
		if err != nil {
			return err
		}
		catalog = repo
	}

	resolver := pricing.NewResolver(catalog, pricing.WithLegacyTable(pricing.TableFromConfig(tmpl.PricingConfig)))
	q, err := resolver.Resolve(c.Context, pricing.Selection{
		ServiceID:    c.String("service-id"),
		ComplexityID: c.String("complexity-id"),
		ServiceType:  pricing.ServiceType(c.String("service")),
		Complexity:   form.Complexity(c.String("complexity")),
		AddonIDs:     c.StringSlice("addon"),
	})
	if err != nil {
		return fmt.Errorf("resolve quote: %w", err)
	}
	return printJSON(c.App.Writer, quoteOutput(q))
}

type quoteJSON struct {
	PriceCents     int64    `json:"price_cents"`
	Days           int      `json:"days"`
	Multiplier     string   `json:"multiplier"`
	AddonCents     int64    `json:"addon_cents"`
	Addons         []string `json:"addons,omitempty"`
	Source         string   `json:"source"`
	FallbackReason string   `json:"fallback_reason,omitempty"`
}

func quoteOutput(q pricing.Quote) quoteJSON {
	out := quoteJSON{
		PriceCents: q.PriceCents,
		Days:       q.Days,
		Multiplier: q.Multiplier.String(),
		AddonCents: q.AddonCents,
		Source:     string(q.Source),
	}
	for _, a := range q.Addons {
		out.Addons = append(out.Addons, a.ID)
	}
	if q.Fallback != nil {
		out.FallbackReason = q.Fallback.Error()
	}
	return out
}

func fillCommand() *cli.Command {
	return &cli.Command{
		Name:  "fill",
		Usage: "Fill a template interactively and print the submitted values",
		Flags: []cli.Flag{templateFlag()},
		Action: func(c *cli.Context) error {
			tmpl, err := loadTemplate(stringOr(c, "template", loadedConfig(c).Pricing.TemplateFile))
			if err != nil {
				return err
			}
			resolver := pricing.NewResolver(nil, pricing.WithLegacyTable(pricing.TableFromConfig(tmpl.PricingConfig)))

			submit := func(ctx context.Context, values map[string]any) error {
				out := map[string]any{"values": values}
				sel := pricing.SelectionFromValues(values)
				if sel.HasLegacy() {
					q, err := resolver.ResolveLegacy(ctx, sel.ServiceType, sel.Complexity, nil)
					if err != nil {
						return fmt.Errorf("price submission: %w", err)
					}
					out["quote"] = quoteOutput(q)
				}
				return printJSON(c.App.Writer, out)
			}

			session, err := wizard.New(tmpl, submit, wizard.WithLogger(slog.Default()))
			if err != nil {
				return err
			}
			return prompt.NewRunner(nil).Run(c.Context, session)
		},
	}
}

func checkCommand() *cli.Command {
	return &cli.Command{
		Name:      "check",
		Usage:     "Validate template files",
		ArgsUsage: "FILE...",
		Action: func(c *cli.Context) error {
			if c.NArg() == 0 {
				return errors.New("at least one template file is required")
			}
			failed := 0
			for _, path := range c.Args().Slice() {
				if err := checkTemplate(c.App.Writer, path); err != nil {
					failed++
				}
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d templates are invalid", failed, c.NArg())
			}
			return nil
		},
	}
}

func checkTemplate(w io.Writer, path string) error {
	tmpl, err := form.LoadFile(path)
	var cerr *form.ConfigurationError
	switch {
	case errors.As(err, &cerr):
		fmt.Fprintf(w, "%s: invalid\n", path)
		for _, p := range cerr.Problems {
			fmt.Fprintf(w, "  - %s\n", p)
		}
		return err
	case err != nil:
		fmt.Fprintf(w, "%s: %v\n", path, err)
		return err
	}
	fmt.Fprintf(w, "%s: ok (%d steps, %d fields)\n", path, len(tmpl.Steps), len(tmpl.Fields()))
	return nil
}

func printJSON(w io.Writer, v any) error {
	if w == nil {
		w = os.Stdout
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
