package cli

import (
	"fmt"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/ppiankov/tcase/internal/judge"
	"github.com/ppiankov/tcase/internal/model"
	"github.com/spf13/cobra"
)

var judgesCmd = &cobra.Command{
	Use:   "judges",
	Short: "List supported online judges",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		table := judge.NewTable(cfg.Judges)

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "JUDGE\tALIASES\tHOST")
		for _, j := range model.Judges() {
			aliases := judge.Aliases(j)
			sort.Strings(aliases)
			e, _ := table.Endpoints(j)
			fmt.Fprintf(w, "%s\t%s\t%s\n", j, strings.Join(aliases, ","), e.Host)
		}
		return w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(judgesCmd)
}
