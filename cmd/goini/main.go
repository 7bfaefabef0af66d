// Command goini is a small toolbox for the go-ini dialect: it reformats
// documents, looks values up by path, and validates documents against a
// schema.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	ini "github.com/KimNorgaard/go-ini"
	"github.com/KimNorgaard/go-ini/schema"
)

var (
	flagDupKey     string
	flagDupSection string
	flagMulti      string
	flagQuote      string
	flagNoGlobal   bool
	flagSuppress   bool
	flagSchema     string
	flagWrite      bool
)

var rootCmd = &cobra.Command{
	Use:   "goini",
	Short: "Parse, format and validate INI documents",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

var fmtCmd = &cobra.Command{
	Use:   "fmt <file>",
	Short: "Reparse and reserialize a document, normalizing its layout",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, err := dialectFlags()
		if err != nil {
			return err
		}
		doc, err := ini.LoadFile(args[0], opts...)
		if err != nil {
			return err
		}
		if flagWrite {
			return ini.WriteFile(args[0], doc, opts...)
		}
		return ini.Write(cmd.OutOrStdout(), doc, opts...)
	},
}

var getCmd = &cobra.Command{
	Use:   "get <file> <path.key>",
	Short: "Print the value(s) of a key, path-addressed from the root",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, err := dialectFlags()
		if err != nil {
			return err
		}
		doc, err := ini.LoadFile(args[0], opts...)
		if err != nil {
			return err
		}

		segments := strings.Split(args[1], ".")
		key := segments[len(segments)-1]
		var st ini.Store = doc
		if len(segments) > 1 {
			sec := doc.Lookup(segments[:len(segments)-1]...)
			if sec == nil {
				return fmt.Errorf("no such section: %s", strings.Join(segments[:len(segments)-1], "."))
			}
			st = sec
		}
		if !st.Has(key) {
			return fmt.Errorf("no such key: %s", args[1])
		}

		interp := ini.NewInterpolator(ini.StoreResolver(st), ini.EnvResolver())
		for _, v := range st.Values(key) {
			fmt.Fprintln(cmd.OutOrStdout(), interp.Expand(v))
		}
		return nil
	},
}

var validateCmd = &cobra.Command{
	Use:   "validate <file>",
	Short: "Validate a document against a schema",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if flagSchema == "" {
			return fmt.Errorf("--schema is required")
		}
		opts, err := dialectFlags()
		if err != nil {
			return err
		}
		doc, err := ini.LoadFile(args[0], opts...)
		if err != nil {
			return err
		}
		sf, err := os.Open(flagSchema)
		if err != nil {
			return err
		}
		defer sf.Close()
		sch, err := schema.Parse(sf)
		if err != nil {
			return err
		}
		violations := sch.Validate(doc)
		for _, v := range violations {
			fmt.Fprintln(cmd.OutOrStdout(), v)
		}
		if len(violations) > 0 {
			return fmt.Errorf("%d violation(s)", len(violations))
		}
		return nil
	},
}

func dialectFlags() ([]ini.Option, error) {
	var opts []ini.Option
	if flagDupKey != "" {
		a, err := parseAction(flagDupKey)
		if err != nil {
			return nil, err
		}
		opts = append(opts, ini.DuplicateKey(a))
	}
	if flagDupSection != "" {
		a, err := parseAction(flagDupSection)
		if err != nil {
			return nil, err
		}
		opts = append(opts, ini.DuplicateSection(a))
	}
	switch flagMulti {
	case "", "repeated":
	case "separated":
		opts = append(opts, ini.MultiValues(ini.MultiSeparated))
	case "off":
		opts = append(opts, ini.MultiValues(ini.MultiOff))
	default:
		return nil, fmt.Errorf("unknown multi-value mode %q", flagMulti)
	}
	switch flagQuote {
	case "", "never":
	case "always":
		opts = append(opts, ini.Quoting(ini.QuoteAlways))
	case "auto":
		opts = append(opts, ini.Quoting(ini.QuoteAuto))
	default:
		return nil, fmt.Errorf("unknown quoting mode %q", flagQuote)
	}
	if flagNoGlobal {
		opts = append(opts, ini.AllowGlobal(false))
	}
	if flagSuppress {
		opts = append(opts, ini.SuppressErrors(true))
	}
	return opts, nil
}

func parseAction(s string) (ini.Action, error) {
	switch strings.ToLower(s) {
	case "abort":
		return ini.Abort, nil
	case "ignore":
		return ini.Ignore, nil
	case "replace":
		return ini.Replace, nil
	case "merge":
		return ini.Merge, nil
	case "append":
		return ini.Append, nil
	}
	return 0, fmt.Errorf("unknown duplicate action %q", s)
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flagDupKey, "dup-key", "", "duplicate-key action (abort|ignore|replace|merge|append)")
	pf.StringVar(&flagDupSection, "dup-section", "", "duplicate-section action (abort|ignore|replace|merge|append)")
	pf.StringVar(&flagMulti, "multi", "", "multi-value mode (repeated|separated|off)")
	pf.StringVar(&flagQuote, "quote", "", "quoting mode on write (never|always|auto)")
	pf.BoolVar(&flagNoGlobal, "no-global", false, "reject keys outside any section")
	pf.BoolVar(&flagSuppress, "suppress", false, "skip offending lines instead of failing")

	fmtCmd.Flags().BoolVarP(&flagWrite, "write", "w", false, "rewrite the file in place")
	validateCmd.Flags().StringVar(&flagSchema, "schema", "", "schema file to validate against")

	rootCmd.AddCommand(fmtCmd)
	rootCmd.AddCommand(getCmd)
	rootCmd.AddCommand(validateCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
