package main

import (
	"bufio"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/urfave/cli/v2"

	"tweetarchive/internal/database"
	"tweetarchive/internal/middleware"
	"tweetarchive/internal/store"
)

func migrateCommand(c *cli.Context) error {
	cfg, closer, err := setup()
	if err != nil {
		return err
	}
	defer closer.Close()

	db, err := database.Connect(cfg.DSN(), 1)
	if err != nil {
		return err
	}
	defer db.Close()

	return database.Migrate(db)
}

func sweepCommand(c *cli.Context) error {
	cfg, closer, err := setup()
	if err != nil {
		return err
	}
	defer closer.Close()

	db, err := database.Connect(cfg.DSN(), 1)
	if err != nil {
		return err
	}
	defer db.Close()

	n, err := store.NewCategoryStore(db).SweepOrphans(c.Context)
	if err != nil {
		return err
	}
	slog.Info("orphan categories removed", "count", n)
	return nil
}

func categoriesCommand(c *cli.Context) error {
	cfg, closer, err := setup()
	if err != nil {
		return err
	}
	defer closer.Close()

	db, err := database.Connect(cfg.DSN(), 1)
	if err != nil {
		return err
	}
	defer db.Close()

	cats, err := store.NewCategoryStore(db).List(c.Context)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(c.App.Writer, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tITEMS\tCREATED")
	for _, cat := range cats {
		fmt.Fprintf(tw, "%s\t%d\t%s\n", cat.Name, cat.ItemCount, cat.CreatedAt.Format("2006-01-02"))
	}
	return tw.Flush()
}

// hashTokenCommand hashes the token given as argument, or read from the
// first line of stdin when no argument is given.
func hashTokenCommand(c *cli.Context) error {
	token := c.Args().First()
	if token == "" {
		line, err := bufio.NewReader(os.Stdin).ReadString('\n')
		if err != nil && line == "" {
			return fmt.Errorf("read token: %w", err)
		}
		token = strings.TrimSpace(line)
	}
	if token == "" {
		return cli.Exit("token must not be empty", 2)
	}

	hash, err := middleware.HashToken(token)
	if err != nil {
		return fmt.Errorf("hash token: %w", err)
	}
	fmt.Fprintln(c.App.Writer, hash)
	return nil
}
