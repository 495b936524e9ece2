package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/guesswhonow/guesswho-services/internal/gamesvc/db"
	"github.com/guesswhonow/guesswho-services/internal/gamesvc/game"
	"github.com/guesswhonow/guesswho-services/internal/gamesvc/models"
	"github.com/guesswhonow/guesswho-services/internal/gamesvc/store"
)

// packgen validates word-pack JSON files and loads them into the
// catalog. It is the ingestion point for community and AI-generated
// packs: only the shape contract is checked here, exactly the contract
// the game service itself enforces.

type Config struct {
	postgresURL string
	dryRun      bool
	public      bool
	timeout     time.Duration
}

func (c *Config) validate() error {
	if c.postgresURL == "" && !c.dryRun {
		return errors.New("--postgres-url is required unless --dry-run is set")
	}
	return nil
}

func newCmd(cfg *Config) *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix("GUESSWHO")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	cmd := &cobra.Command{
		Use:           "packgen file.json...",
		Short:         "Validate word-pack files and load them into the Guess Who Now catalog.",
		Args:          cobra.MinimumNArgs(1),
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cfg.validate(); err != nil {
				return err
			}
			return run(cmd.Context(), cfg, args)
		},
	}

	fs := cmd.Flags()

	fs.SetNormalizeFunc(func(_ *pflag.FlagSet, name string) pflag.NormalizedName {
		return pflag.NormalizedName(strings.ReplaceAll(name, "_", "-"))
	})

	fs.StringVar(&cfg.postgresURL, "postgres-url", "", "catalog database DSN (env: GUESSWHO_POSTGRES_URL)")
	fs.BoolVar(&cfg.dryRun, "dry-run", false, "validate only, write nothing (env: GUESSWHO_DRY_RUN)")
	fs.BoolVar(&cfg.public, "public", false, "flag imported packs as public (env: GUESSWHO_PUBLIC)")
	fs.DurationVar(&cfg.timeout, "timeout", 30*time.Second, "database operation timeout (env: GUESSWHO_TIMEOUT)")

	fs.VisitAll(func(f *pflag.Flag) {
		_ = v.BindPFlag(f.Name, f)
		_ = v.BindEnv(f.Name)
		if !f.Changed && v.IsSet(f.Name) {
			_ = fs.Set(f.Name, fmt.Sprintf("%v", v.Get(f.Name)))
		}
	})

	return cmd
}

func run(ctx context.Context, cfg *Config, files []string) error {
	packs := make([]models.WordPack, 0, len(files))
	for _, file := range files {
		raw, err := os.ReadFile(file)
		if err != nil {
			return fmt.Errorf("read %s: %w", file, err)
		}

		var pack models.WordPack
		if err := json.Unmarshal(raw, &pack); err != nil {
			return fmt.Errorf("parse %s: %w", file, err)
		}
		if err := game.ValidatePack(&pack); err != nil {
			return fmt.Errorf("%s: %w", file, err)
		}

		pack.IsPublic = cfg.public
		packs = append(packs, pack)
		fmt.Printf("%s: ok (%d pairs)\n", file, len(pack.Content))
	}

	if cfg.dryRun {
		fmt.Printf("dry run, %d pack(s) validated\n", len(packs))
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, cfg.timeout)
	defer cancel()

	pool, err := db.Connect(ctx, cfg.postgresURL)
	if err != nil {
		return fmt.Errorf("connect: %w", err)
	}
	defer pool.Close()

	packStore := store.NewWordPackStore(pool)
	for _, pack := range packs {
		created, err := packStore.Insert(ctx, pack)
		if err != nil {
			return fmt.Errorf("insert %q: %w", pack.Title, err)
		}
		fmt.Printf("imported %q as %s\n", created.Title, created.ID)
	}

	return nil
}

func main() {
	cfg := &Config{}
	cobra.CheckErr(newCmd(cfg).Execute())
}
