package cli

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"
)

var (
	documentUpsertSource int64
	documentUpsertTitle  string
	documentUpsertEtag   string
)

var documentCmd = &cobra.Command{
	Use:   "document",
	Short: "Manage crawled documents",
}

var documentUpsertCmd = &cobra.Command{
	Use:   "upsert [file]",
	Short: "Store content retrieved for a source",
	Long: `Stores document content for a source, read from the given file or from
stdin. Content is fingerprinted: an unchanged re-upsert only refreshes the
retrieved date and etag, while changed content replaces the document and
rewrites its search index entry in the same transaction.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runDocumentUpsert,
}

var documentGetCmd = &cobra.Command{
	Use:   "get [id]",
	Short: "Print a document's content",
	Args:  cobra.ExactArgs(1),
	RunE:  runDocumentGet,
}

var documentDeleteCmd = &cobra.Command{
	Use:   "delete [id]",
	Short: "Delete a document and its index entry",
	Args:  cobra.ExactArgs(1),
	RunE:  runDocumentDelete,
}

var documentReindexCmd = &cobra.Command{
	Use:   "reindex",
	Short: "Rebuild the search index from stored documents",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return documentService.Reindex(cmd.Context())
	},
}

func init() {
	documentUpsertCmd.Flags().Int64Var(&documentUpsertSource, "source", 0, "source ID the content was retrieved from")
	documentUpsertCmd.Flags().StringVar(&documentUpsertTitle, "title", "", "document title")
	documentUpsertCmd.Flags().StringVar(&documentUpsertEtag, "etag", "", "etag returned by the origin")
	_ = documentUpsertCmd.MarkFlagRequired("source")
	documentCmd.AddCommand(documentUpsertCmd)
	documentCmd.AddCommand(documentGetCmd)
	documentCmd.AddCommand(documentDeleteCmd)
	documentCmd.AddCommand(documentReindexCmd)
	rootCmd.AddCommand(documentCmd)
}

func runDocumentUpsert(cmd *cobra.Command, args []string) error {
	var content []byte
	var err error
	if len(args) > 0 {
		content, err = os.ReadFile(args[0])
	} else {
		content, err = io.ReadAll(cmd.InOrStdin())
	}
	if err != nil {
		return fmt.Errorf("reading content: %w", err)
	}

	doc, err := documentService.Upsert(cmd.Context(), documentUpsertSource,
		string(content), documentUpsertTitle, documentUpsertEtag)
	if err != nil {
		return err
	}
	cmd.Printf("Document %d (hash %.12s) retrieved %s\n",
		doc.ID, doc.Hash, doc.RetrievedDate.Format(time.RFC3339))
	return nil
}

func runDocumentGet(cmd *cobra.Command, args []string) error {
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return err
	}
	doc, err := documentService.Get(cmd.Context(), id)
	if err != nil {
		return err
	}
	cmd.Println(doc.Content)
	return nil
}

func runDocumentDelete(cmd *cobra.Command, args []string) error {
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return err
	}
	return documentService.Delete(cmd.Context(), id)
}
