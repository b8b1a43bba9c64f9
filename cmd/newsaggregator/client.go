package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/spf13/cobra"

	"NewsAggregator/internal/apiclient"
	"NewsAggregator/internal/config"
	"NewsAggregator/internal/domain"
)

var outputJSON bool

func addClientCommands(root *cobra.Command, cfg *config.Config) {
	root.PersistentFlags().BoolVar(&outputJSON, "json", false, "print raw JSON responses")

	client := func() *apiclient.Client {
		return apiclient.New(cfg.Client.BaseURL, &http.Client{Timeout: cfg.Client.Timeout})
	}

	var query string
	ingestCmd := &cobra.Command{
		Use:   "ingest",
		Short: "Fetch and store articles for a topic",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			count, err := client().IngestTopic(cmd.Context(), query)
			if err != nil {
				return fmt.Errorf("ingest: %w", err)
			}
			if outputJSON {
				return printJSON(cmd, count)
			}
			cmd.Printf("Ingested %d new articles.\n", count)
			return nil
		},
	}
	ingestCmd.Flags().StringVarP(&query, "query", "q", "", "topic to fetch (default technology)")

	ingestInterestsCmd := &cobra.Command{
		Use:   "ingest-interests <tag>...",
		Short: "Fetch articles for the categories matching the given interests",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := client().IngestForInterests(cmd.Context(), splitTags(args))
			if err != nil {
				return fmt.Errorf("ingest interests: %w", err)
			}
			if outputJSON {
				return printJSON(cmd, result)
			}
			cmd.Printf("Ingested %d new articles from: %s\n", result.Ingested, strings.Join(result.Categories, ", "))
			return nil
		},
	}

	dailyCmd := &cobra.Command{
		Use:   "daily-update",
		Short: "Fetch recent articles for the standard categories",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			result, err := client().DailyUpdate(cmd.Context())
			if err != nil {
				return fmt.Errorf("daily update: %w", err)
			}
			if outputJSON {
				return printJSON(cmd, map[string]int{"ingested": result.Ingested})
			}
			cmd.Printf("Ingested %d new articles.\n", result.Ingested)
			return nil
		},
	}

	profileCmd := &cobra.Command{
		Use:   "profile",
		Short: "Manage user interest profiles",
	}
	profileCmd.AddCommand(
		&cobra.Command{
			Use:   "set <user> [tag]...",
			Short: "Replace a user's interests",
			Args:  cobra.MinimumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				tags := splitTags(args[1:])
				if err := client().SetProfile(cmd.Context(), args[0], tags); err != nil {
					return fmt.Errorf("set profile: %w", err)
				}
				cmd.Printf("Saved %d interests for %s.\n", len(tags), args[0])
				return nil
			},
		},
		&cobra.Command{
			Use:   "get <user>",
			Short: "Show a user's interests",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				profile, err := client().GetProfile(cmd.Context(), args[0])
				if errors.Is(err, domain.ErrProfileNotFound) {
					cmd.Printf("No profile for %s.\n", args[0])
					return nil
				}
				if err != nil {
					return fmt.Errorf("get profile: %w", err)
				}
				if outputJSON {
					return printJSON(cmd, profile)
				}
				cmd.Printf("%s: %s\n", profile.UserID, strings.Join(profile.Interests, ", "))
				return nil
			},
		},
	)

	var k int
	recommendCmd := &cobra.Command{
		Use:   "recommend <user>",
		Short: "Show recommended articles for a user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			views, err := client().Recommend(cmd.Context(), args[0], k)
			if err != nil {
				return fmt.Errorf("recommend: %w", err)
			}
			if outputJSON {
				return printJSON(cmd, views)
			}
			printViews(cmd, views)
			return nil
		},
	}
	recommendCmd.Flags().IntVarP(&k, "k", "k", 10, "number of articles")

	root.AddCommand(ingestCmd, ingestInterestsCmd, dailyCmd, profileCmd, recommendCmd)
}

// splitTags accepts both "a b" and "a,b" forms.
func splitTags(args []string) []string {
	var tags []string
	for _, arg := range args {
		tags = append(tags, domain.SplitInterests(arg)...)
	}
	return tags
}

func printViews(cmd *cobra.Command, views []domain.ArticleView) {
	if len(views) == 0 {
		cmd.Println("No articles yet. Try ingest first.")
		return
	}
	for i, view := range views {
		cmd.Printf("  [%d] %s\n", i+1, view.Title)
		if view.Source != "" || view.PublishedAt != "" {
			cmd.Printf("      %s  %s\n", view.Source, view.PublishedAt)
		}
		if view.Summary != "" {
			cmd.Printf("      %s\n", view.Summary)
		}
		cmd.Printf("      %s\n", view.URL)
	}
}

func printJSON(cmd *cobra.Command, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal output: %w", err)
	}
	cmd.Println(string(data))
	return nil
}
