package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/philipp01105/nlogtree/config"
	"github.com/philipp01105/nlogtree/logger"
)

func newTreeCmd(_ *options) *cobra.Command {
	var asYAML, pretty bool

	cmd := &cobra.Command{
		Use:   "tree [logger...]",
		Short: "Print the logger hierarchy with effective levels",
		Long: `Tree registers the given loggers and prints every registered logger
with its effective level. With --yaml it prints the current state as a
config file instead.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range args {
				if _, err := logger.Get(name); err != nil {
					return err
				}
			}

			out := cmd.OutOrStdout()
			if asYAML {
				data, err := config.Current().Marshal()
				if err != nil {
					return err
				}
				_, err = out.Write(data)
				return err
			}

			mode := "global"
			if logger.Hierarchical() {
				mode = "hierarchical"
			}
			fmt.Fprintf(out, "mode: %s, stack traces from: %s\n\n", mode, logger.StackTraceLevel())

			if pretty {
				data := [][]string{{"LOGGER", "LEVEL", "OWN"}}
				for _, l := range logger.Attached() {
					data = append(data, []string{treeLabel(l), l.Level().String(), ownLevel(l)})
				}
				return pterm.DefaultTable.WithHasHeader().WithData(data).WithWriter(out).Render()
			}

			w := tabwriter.NewWriter(out, 0, 0, 3, ' ', 0)
			fmt.Fprintln(w, "LOGGER\tLEVEL\tOWN")
			for _, l := range logger.Attached() {
				fmt.Fprintf(w, "%s\t%s\t%s\n", treeLabel(l), l.Level(), ownLevel(l))
			}
			return w.Flush()
		},
	}

	cmd.Flags().BoolVar(&asYAML, "yaml", false, "print the current state as YAML config")
	cmd.Flags().BoolVar(&pretty, "pretty", false, "render the hierarchy as a pterm table")
	return cmd
}

func ownLevel(l *logger.Logger) string {
	if lvl, ok := l.OwnLevel(); ok {
		return lvl.String()
	}
	return "-"
}

// treeLabel indents a logger by its depth
func treeLabel(l *logger.Logger) string {
	if l.IsRoot() {
		return l.String()
	}
	depth := strings.Count(l.FullName(), ".") + 1
	return strings.Repeat("  ", depth) + l.Name()
}
