package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/MakerMaker19/countryinfo/pkg/country"
	"github.com/MakerMaker19/countryinfo/pkg/lookup"
)

// errLookupFailed is returned after the user-facing message has been
// printed; it only sets the exit code.
var errLookupFailed = errors.New("lookup failed")

func newLookupCmd(opts *options) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "lookup <query...>",
		Short: "Look a country up once and print its fields",
		Long: `Looks the query up once and prints the first match.

Arguments are joined with a single space, so

  countryinfo lookup united states

queries "united states". No match prints nothing.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLookup(cmd, opts, strings.Join(args, " "), asJSON)
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print fields as JSON")
	return cmd
}

func runLookup(cmd *cobra.Command, opts *options, query string, asJSON bool) error {
	cfg, err := loadConfig(cmd, opts)
	if err != nil {
		return err
	}
	logger, err := newLogger(cfg, opts.verbose)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	var sess lookup.Session
	req, ok := sess.SetQuery(query)
	if !ok {
		return nil
	}
	sess.Resolve(newLoader(cfg, logger).Load(cmd.Context(), req))

	if sess.State() == lookup.StateFailed {
		fmt.Fprintln(cmd.ErrOrStderr(), lookup.ErrorText)
		cmd.SilenceErrors = true
		return errLookupFailed
	}
	rec, ok := sess.Record()
	if !ok {
		return nil
	}
	return printFields(cmd, country.Fields(rec), asJSON)
}

func printFields(cmd *cobra.Command, fields []country.Field, asJSON bool) error {
	out := cmd.OutOrStdout()
	if asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		return enc.Encode(fields)
	}

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	for _, f := range fields {
		value := f.Value
		if f.Link != "" {
			value = f.Value + " " + f.Link
		}
		fmt.Fprintf(tw, "%s:\t%s\n", f.Label, value)
	}
	return tw.Flush()
}
