package cli

import (
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/tudgoi/pika/internal/core/domain"
)

var (
	sourceListStale     bool
	sourceDeleteCascade bool
)

var sourceCmd = &cobra.Command{
	Use:   "source",
	Short: "Manage crawl sources",
}

var sourceAddCmd = &cobra.Command{
	Use:   "add [url]",
	Short: "Register a source URL",
	Args:  cobra.ExactArgs(1),
	RunE:  runSourceAdd,
}

var sourceListCmd = &cobra.Command{
	Use:   "list",
	Short: "List sources",
	Args:  cobra.NoArgs,
	RunE:  runSourceList,
}

var sourceCrawledCmd = &cobra.Command{
	Use:   "crawled [id]",
	Short: "Record a completed crawl for a source",
	Args:  cobra.ExactArgs(1),
	RunE:  runSourceCrawled,
}

var sourceForceCmd = &cobra.Command{
	Use:   "force [id]",
	Short: "Flag a source for re-crawl on the next pass",
	Args:  cobra.ExactArgs(1),
	RunE:  runSourceForce,
}

var sourceDeleteCmd = &cobra.Command{
	Use:   "delete [id]",
	Short: "Delete a source",
	Long: `Deletes a source. Refused while documents still reference it; pass
--cascade to remove the documents and their search index entries with it.`,
	Args: cobra.ExactArgs(1),
	RunE: runSourceDelete,
}

func init() {
	sourceListCmd.Flags().BoolVar(&sourceListStale, "stale", false, "only sources due for a crawl")
	sourceDeleteCmd.Flags().BoolVar(&sourceDeleteCascade, "cascade", false, "also delete the source's documents")
	sourceCmd.AddCommand(sourceAddCmd)
	sourceCmd.AddCommand(sourceListCmd)
	sourceCmd.AddCommand(sourceCrawledCmd)
	sourceCmd.AddCommand(sourceForceCmd)
	sourceCmd.AddCommand(sourceDeleteCmd)
	rootCmd.AddCommand(sourceCmd)
}

func runSourceAdd(cmd *cobra.Command, args []string) error {
	source, err := sourceService.Add(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	cmd.Printf("Added source %d: %s\n", source.ID, source.URL)
	return nil
}

func runSourceList(cmd *cobra.Command, _ []string) error {
	var sources []domain.Source
	var err error
	if sourceListStale {
		sources, err = sourceService.Stale(cmd.Context())
	} else {
		sources, err = sourceService.List(cmd.Context())
	}
	if err != nil {
		return err
	}
	if len(sources) == 0 {
		cmd.Println("No sources.")
		return nil
	}
	for _, source := range sources {
		crawled := "never"
		if !source.CrawlDate.IsZero() {
			crawled = source.CrawlDate.Format(time.RFC3339)
		}
		line := ""
		if source.ForceCrawl {
			line = " [force]"
		}
		cmd.Printf("  %d  %s  crawled %s%s\n", source.ID, source.URL, crawled, line)
	}
	return nil
}

func runSourceCrawled(cmd *cobra.Command, args []string) error {
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return err
	}
	return sourceService.MarkCrawled(cmd.Context(), id, time.Now().UTC())
}

func runSourceForce(cmd *cobra.Command, args []string) error {
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return err
	}
	return sourceService.SetForceCrawl(cmd.Context(), id, true)
}

func runSourceDelete(cmd *cobra.Command, args []string) error {
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return err
	}
	return sourceService.Delete(cmd.Context(), id, sourceDeleteCascade)
}
