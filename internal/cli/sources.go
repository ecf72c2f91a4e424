package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/ppiankov/authlink/internal/pipeline"
	"github.com/spf13/cobra"
)

// sourcesCmd represents the sources command
var sourcesCmd = &cobra.Command{
	Use:   "sources",
	Short: "List the configured authority sources",
	Long: `Display every authority source the tool can convert, with its fetch
endpoint and the number of schema entries it extracts. Additional
sources from the schema file (sources.schema_file) are included.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		p, err := pipeline.New(cfg)
		if err != nil {
			return err
		}

		endpoints := p.Fetcher().Endpoints()
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "SOURCE\tFIELDS\tENDPOINT")
		for _, source := range p.Schemas().Sources() {
			sc, err := p.Schemas().Lookup(source)
			if err != nil {
				continue
			}
			endpoint := "(none)"
			if ep, ok := endpoints[source]; ok {
				endpoint = ep.URL
			}
			fmt.Fprintf(w, "%s\t%d\t%s\n", source, len(sc.Entries), endpoint)
		}
		return w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(sourcesCmd)
}
