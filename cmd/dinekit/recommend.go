package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/rushteam/dinekit/core"
	"github.com/rushteam/dinekit/engine"
)

func init() {
	filterCommand.Flags().Int("budget", 0, "maximum average cost (positive integer)")
	filterCommand.Flags().String("cuisine", "", "cuisine keyword")
	filterCommand.Flags().Bool("veg", false, "vegetarian restaurants only")
	filterCommand.Flags().String("mode", "delivery", "delivery, takeaway or indoor")

	contentCommand.Flags().String("preference", "", "free text of cuisines and dishes")
	contentCommand.Flags().String("location", "", "preferred area")
	contentCommand.Flags().Int("budget", 0, "maximum average cost (positive integer)")
	contentCommand.Flags().String("mode", "delivery", "delivery or dinner")

	similarCommand.Flags().String("name", "", "seed restaurant name")
	similarCommand.Flags().Int("budget", 0, "maximum average cost (positive integer)")
	similarCommand.Flags().String("mode", "delivery", "delivery or dinner")

	mfCommand.Flags().String("user", "", "user id")
	cfCommand.Flags().String("user", "", "user id")
	hybridCommand.Flags().String("user", "", "user id")
	hybridCommand.Flags().String("seed", "", "seed restaurant id")
	historyCommand.Flags().String("user", "", "user id")

	for _, c := range []*cobra.Command{filterCommand, contentCommand, similarCommand, mfCommand, cfCommand, hybridCommand} {
		c.Flags().Int("top", 0, "number of recommendations (default from config)")
		rootCommand.AddCommand(c)
	}
	rootCommand.AddCommand(historyCommand)
}

var filterCommand = &cobra.Command{
	Use:   "filter",
	Short: "Knowledge-based filtering by budget, cuisine, diet and service mode",
	RunE: func(cmd *cobra.Command, args []string) error {
		q := engine.Query{Mode: engine.ModeKnowledgeFilter}
		q.Budget, _ = cmd.Flags().GetInt("budget")
		q.Cuisine, _ = cmd.Flags().GetString("cuisine")
		q.VegOnly, _ = cmd.Flags().GetBool("veg")
		q.Service = serviceMode(cmd)
		return recommend(cmd, q)
	},
}

var contentCommand = &cobra.Command{
	Use:   "content",
	Short: "Content-based recommendation from free text preferences",
	RunE: func(cmd *cobra.Command, args []string) error {
		q := engine.Query{Mode: engine.ModeContentQuery}
		q.Preference, _ = cmd.Flags().GetString("preference")
		q.Location, _ = cmd.Flags().GetString("location")
		q.Budget, _ = cmd.Flags().GetInt("budget")
		q.Service = serviceMode(cmd)
		return recommend(cmd, q)
	},
}

var similarCommand = &cobra.Command{
	Use:   "similar",
	Short: "Restaurants similar to a given restaurant",
	RunE: func(cmd *cobra.Command, args []string) error {
		q := engine.Query{Mode: engine.ModeContentToRestaurant}
		q.SeedName, _ = cmd.Flags().GetString("name")
		q.Budget, _ = cmd.Flags().GetInt("budget")
		q.Service = serviceMode(cmd)
		return recommend(cmd, q)
	},
}

var mfCommand = &cobra.Command{
	Use:   "mf",
	Short: "Matrix factorization recommendation for a user",
	RunE: func(cmd *cobra.Command, args []string) error {
		q := engine.Query{Mode: engine.ModeMatrixFactorization}
		q.UserID, _ = cmd.Flags().GetString("user")
		return recommend(cmd, q)
	},
}

var cfCommand = &cobra.Command{
	Use:   "cf",
	Short: "User-based collaborative filtering recommendation",
	RunE: func(cmd *cobra.Command, args []string) error {
		q := engine.Query{Mode: engine.ModeCollaborative}
		q.UserID, _ = cmd.Flags().GetString("user")
		return recommend(cmd, q)
	},
}

var hybridCommand = &cobra.Command{
	Use:   "hybrid",
	Short: "Content shortlist re-ranked by predicted rating",
	RunE: func(cmd *cobra.Command, args []string) error {
		q := engine.Query{Mode: engine.ModeHybrid}
		q.UserID, _ = cmd.Flags().GetString("user")
		q.SeedID, _ = cmd.Flags().GetString("seed")
		return recommend(cmd, q)
	},
}

var historyCommand = &cobra.Command{
	Use:   "history",
	Short: "Restaurants rated by a user",
	RunE: func(cmd *cobra.Command, args []string) error {
		user, _ := cmd.Flags().GetString("user")
		eng, cleanup, err := buildEngine(cmd)
		if err != nil {
			return fail(err)
		}
		defer cleanup()
		return renderHistory(cmd.OutOrStdout(), eng.History(user))
	},
}

func serviceMode(cmd *cobra.Command) core.ServiceMode {
	mode, _ := cmd.Flags().GetString("mode")
	return core.ServiceMode(mode)
}

func recommend(cmd *cobra.Command, q engine.Query) error {
	q.TopN, _ = cmd.Flags().GetInt("top")
	eng, cleanup, err := buildEngine(cmd)
	if err != nil {
		return fail(err)
	}
	defer cleanup()
	res, err := eng.Recommend(context.Background(), q)
	if err != nil {
		return fail(err)
	}
	return renderResult(cmd.OutOrStdout(), res, q.Service)
}
