package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rustic-ai/codeprism-sub002/internal/core/domain"
)

var (
	searchRegex     bool
	searchCaseSens  bool
	searchLimit     int
	searchTypes     []string
	searchInclude   []string
	searchExclude   []string
	searchContext   int
	searchNoContext bool
	searchJSON      bool
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search indexed content",
	Long: `Searches the index. The default mode requires every whitespace-separated
token of the query to appear in a chunk; --regex matches the query as a
regular expression against chunk content instead.`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().BoolVarP(&searchRegex, "regex", "r", false, "treat the query as a regular expression")
	searchCmd.Flags().BoolVar(&searchCaseSens, "case-sensitive", false, "match case exactly")
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "n", 0, "maximum number of results")
	searchCmd.Flags().StringSliceVarP(&searchTypes, "type", "t", nil, "restrict to content types (doc, config, code, comment, text)")
	searchCmd.Flags().StringSliceVar(&searchInclude, "include", nil, "only search files matching these globs")
	searchCmd.Flags().StringSliceVar(&searchExclude, "exclude", nil, "skip files matching these globs")
	searchCmd.Flags().IntVar(&searchContext, "context", domain.DefaultContextLines, "context lines around each match")
	searchCmd.Flags().BoolVar(&searchNoContext, "no-context", false, "omit context lines")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output results as JSON")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	if contentService == nil {
		return errors.New("content service not configured")
	}

	query := domain.NewSearchQuery(args[0])
	query.UseRegex = searchRegex
	query.CaseSensitive = searchCaseSens
	query.FilePatterns = searchInclude
	query.ExcludePatterns = searchExclude
	query.ContextLines = searchContext
	query.IncludeContext = !searchNoContext

	if searchLimit > 0 {
		query.MaxResults = searchLimit
	} else if configStore != nil {
		if limit := configStore.GetInt("search.max_results"); limit > 0 {
			query.MaxResults = limit
		}
	}
	if configStore != nil {
		if !cmd.Flags().Changed("context") {
			if n := configStore.GetInt("search.context_lines"); n > 0 {
				query.ContextLines = n
			}
		}
		if len(query.ExcludePatterns) == 0 {
			query.ExcludePatterns = configStore.GetStringSlice("search.exclude")
		}
	}

	types, err := parseContentTypes(searchTypes)
	if err != nil {
		return err
	}
	query.ContentTypes = types

	results, err := contentService.Search(query)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if searchJSON {
		data, err := json.MarshalIndent(results, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal results: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	printResults(cmd, results)
	return nil
}

func printResults(cmd *cobra.Command, results []domain.SearchResult) {
	if len(results) == 0 {
		cmd.Println("No results found.")
		return
	}

	for i, result := range results {
		cmd.Printf("[%d] %s:%d (%.2f, %s)\n",
			i+1,
			result.Chunk.FilePath,
			result.Chunk.Span.StartLine,
			result.Score,
			result.Chunk.ContentType.Key(),
		)
		for _, match := range result.Matches {
			if match.ContextBefore != "" {
				printIndented(cmd, match.ContextBefore)
			}
			cmd.Printf("    > %d:%d %s\n", match.LineNumber, match.ColumnNumber, match.Text)
			if match.ContextAfter != "" {
				printIndented(cmd, match.ContextAfter)
			}
		}
		cmd.Println()
	}
}

func printIndented(cmd *cobra.Command, block string) {
	for _, line := range strings.Split(block, "\n") {
		cmd.Printf("      %s\n", line)
	}
}

// parseContentTypes maps the CLI type names onto content type filters.
// Only the variant matters for filtering, so formats are left zero.
func parseContentTypes(names []string) ([]domain.ContentType, error) {
	var types []domain.ContentType
	for _, name := range names {
		switch strings.ToLower(name) {
		case "doc", "docs", "documentation":
			types = append(types, domain.ContentType{Kind: domain.KindDocumentation})
		case "config", "configuration":
			types = append(types, domain.ContentType{Kind: domain.KindConfiguration})
		case "code":
			types = append(types, domain.ContentType{Kind: domain.KindCode})
		case "comment", "comments":
			types = append(types, domain.ContentType{Kind: domain.KindComment})
		case "text", "plain", "plaintext":
			types = append(types, domain.ContentType{Kind: domain.KindPlainText})
		default:
			return nil, fmt.Errorf("unknown content type %q", name)
		}
	}
	return types, nil
}
