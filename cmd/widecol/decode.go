package main

import (
	"bufio"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"math/big"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/arloliu/widecol"
	"github.com/arloliu/widecol/catalog"
	"github.com/arloliu/widecol/errs"
	"github.com/arloliu/widecol/schema"
	"github.com/arloliu/widecol/tuple"
)

func newDecodeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "decode [flags]",
		Short: "Decode a rows file into tab-separated tuples.",
		Long: `Decode every row of a YAML rows file with a catalog mapping and print one
tab-separated line per tuple. Rows that fail to decode are skipped with a
warning unless --strict is given.`,
		Args: cobra.NoArgs,
		RunE: runDecode,
	}

	cmd.Flags().String("catalog", "", "YAML mapping catalog")
	cmd.Flags().String("table", "", "table name")
	cmd.Flags().String("mapping", "", "mapping name")
	cmd.Flags().String("rows", "", "YAML rows file")
	cmd.Flags().String("families", "", "override the mapping's tuple families")
	cmd.Flags().String("separator", schema.DefaultFamilySeparator, "tuple family separator")
	cmd.Flags().Bool("strict", false, "fail on the first row that cannot be decoded, including absent families")
	cmd.Flags().Bool("no-header", false, "do not print the schema header line")

	for _, name := range []string{"catalog", "table", "mapping", "rows"} {
		_ = cmd.MarkFlagRequired(name)
	}

	return cmd
}

func runDecode(cmd *cobra.Command, args []string) error {
	strict := getFlag(cmd, "strict")

	cat, err := catalog.LoadFile(getString(cmd, "catalog"))
	if err != nil {
		return err
	}

	entry, err := cat.Lookup(getString(cmd, "table"), getString(cmd, "mapping"))
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("families") {
		override := *entry
		override.Mapping.TupleFamilies = getString(cmd, "families")
		entry = &override
	}

	opts := []tuple.DecoderOption{
		tuple.WithLogger(log.StandardLogger()),
		tuple.WithFamilySeparator(getString(cmd, "separator")),
	}
	if strict {
		opts = append(opts, tuple.WithMissingFamilyPolicy(tuple.MissingFamilyError))
	}

	session, err := widecol.OpenEntry(entry, opts...)
	if err != nil {
		return err
	}

	rows, err := readRows(getString(cmd, "rows"))
	if err != nil {
		return err
	}

	w := bufio.NewWriter(cmd.OutOrStdout())
	defer w.Flush()

	if !getFlag(cmd, "no-header") {
		fmt.Fprintln(w, strings.Join(session.Schema().Names(), "\t"))
	}

	skipped := 0
	for i, r := range rows {
		tuples, err := session.Decode(r)
		if err != nil {
			var cfgErr *errs.ConfigurationError
			if strict || errors.As(err, &cfgErr) {
				return fmt.Errorf("row %d: %w", i, err)
			}
			log.WithError(err).WithField("row", i).Warn("skipping row")
			skipped++

			continue
		}

		for _, t := range tuples {
			writeTuple(w, t)
		}
	}

	stats := session.Decoder().Stats()
	log.WithFields(log.Fields{
		"rows":             stats.Rows,
		"tuples":           stats.Tuples,
		"skipped":          skipped,
		"missing_families": stats.MissingFamilies,
	}).Debug("decode finished")

	return nil
}

func writeTuple(w io.Writer, t tuple.Tuple) {
	for i, v := range t {
		if i > 0 {
			io.WriteString(w, "\t") //nolint:errcheck
		}
		io.WriteString(w, formatValue(v)) //nolint:errcheck
	}
	io.WriteString(w, "\n") //nolint:errcheck
}

func formatValue(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case []byte:
		return hexPrefix + hex.EncodeToString(x)
	case *big.Float:
		return x.Text('g', -1)
	case time.Time:
		return x.Format(time.RFC3339Nano)
	default:
		return fmt.Sprint(x)
	}
}
