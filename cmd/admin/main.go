package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"swipematch/backend/internal/discovery"
	"swipematch/backend/internal/matching"
	"swipematch/backend/internal/models"
	"swipematch/backend/internal/seed"
	"swipematch/backend/internal/session"
	"swipematch/backend/internal/storage"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var (
	dsn       string
	redisAddr string
	seedFile  string

	ageMin      int
	ageMax      int
	maxDistance int
	genders     []string

	rootCmd = &cobra.Command{
		Use:   "admin",
		Short: "Inspect and maintain swipematch session data",
	}

	matchesCmd = &cobra.Command{
		Use:   "matches <session-id>",
		Short: "List the persisted matches of a session",
		Args:  cobra.ExactArgs(1),
		RunE:  runMatches,
	}

	clearCmd = &cobra.Command{
		Use:   "clear <session-id>",
		Short: "Delete every match and message of a session",
		Args:  cobra.ExactArgs(1),
		RunE:  runClear,
	}

	seedCmd = &cobra.Command{
		Use:   "seed",
		Short: "Show the candidate pool that a set of criteria would produce",
		Args:  cobra.NoArgs,
		RunE:  runSeed,
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&dsn, "dsn", os.Getenv("DATABASE_DSN"), "PostgreSQL DSN")
	rootCmd.PersistentFlags().StringVar(&redisAddr, "redis", os.Getenv("REDIS_ADDR"), "Redis address (optional)")

	defaults := session.DefaultCriteria()
	seedCmd.Flags().StringVar(&seedFile, "file", "", "YAML pool to read instead of the embedded one")
	seedCmd.Flags().IntVar(&ageMin, "age-min", defaults.AgeMin, "minimum age")
	seedCmd.Flags().IntVar(&ageMax, "age-max", defaults.AgeMax, "maximum age")
	seedCmd.Flags().IntVar(&maxDistance, "max-distance", defaults.MaxDistance, "maximum distance in miles")
	seedCmd.Flags().StringSliceVar(&genders, "gender", nil, "accepted genders (repeatable, empty accepts all)")

	rootCmd.AddCommand(matchesCmd, clearCmd, seedCmd)
}

func main() {
	_ = godotenv.Load()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// openStorage connects PostgreSQL and, when an address is set, Redis.
func openStorage() (*storage.Service, error) {
	if dsn == "" {
		return nil, fmt.Errorf("no database DSN, set --dsn or DATABASE_DSN")
	}
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect database: %w", err)
	}

	var rdb *redis.Client
	if redisAddr != "" {
		rdb = redis.NewClient(&redis.Options{Addr: redisAddr})
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := rdb.Ping(ctx).Err(); err != nil {
			return nil, fmt.Errorf("failed to connect redis: %w", err)
		}
	}
	return storage.NewStorageService(db, rdb), nil
}

func runMatches(cmd *cobra.Command, args []string) error {
	s, err := openStorage()
	if err != nil {
		return err
	}
	snap, err := s.LoadSession(args[0])
	if err != nil {
		return err
	}

	return writeMatches(cmd.OutOrStdout(), snap)
}

// writeMatches prints one row per match. UNREAD is the match's own counter;
// UNSEEN BY MATCH counts sent messages the other side has not read yet.
func writeMatches(out io.Writer, snap *storage.Snapshot) error {
	registry := matching.NewRegistry(nil)
	registry.Restore(snap.Matches)
	threads := matching.NewMessageStore(registry, nil)
	threads.Restore(snap.Messages)

	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tAGE\tSUPER\tMATCHED\tUNREAD\tUNSEEN BY MATCH\tLAST MESSAGE")
	for _, m := range registry.List() {
		fmt.Fprintf(w, "%s\t%s\t%d\t%t\t%s\t%d\t%d\t%s\n",
			m.ID, m.Name, m.Age, m.SuperLike, m.MatchedAt.Format(time.RFC3339),
			m.UnreadCount, threads.UnreadCount(m.ID), m.LastMessage)
	}
	return w.Flush()
}

func runClear(cmd *cobra.Command, args []string) error {
	s, err := openStorage()
	if err != nil {
		return err
	}
	if err := s.ClearSession(args[0]); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Session %s has been cleared.\n", args[0])
	return nil
}

func runSeed(cmd *cobra.Command, _ []string) error {
	pool, err := seed.LoadFile(seedFile)
	if err != nil {
		return err
	}
	criteria := models.FilterCriteria{
		AgeMin:          ageMin,
		AgeMax:          ageMax,
		MaxDistance:     maxDistance,
		AcceptedGenders: genders,
	}
	if err := session.ValidateCriteria(criteria); err != nil {
		return err
	}
	return printPool(cmd, discovery.Filter(pool, criteria))
}

func printPool(cmd *cobra.Command, pool []models.Profile) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tAGE\tGENDER\tDISTANCE\tINTENT")
	for _, p := range pool {
		fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%d\t%s\n",
			p.ID, p.Name, p.Age, p.Gender, discovery.ParseDistance(p.Location), p.DatingIntent)
	}
	return w.Flush()
}
