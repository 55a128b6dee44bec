package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/sto-tools/sto-tools-keybind-manager-sub008/internal/presentation/tui"
	"github.com/sto-tools/sto-tools-keybind-manager-sub008/pkg/adapters/file"
	"github.com/sto-tools/sto-tools-keybind-manager-sub008/pkg/adapters/redis"
	"github.com/sto-tools/sto-tools-keybind-manager-sub008/pkg/migrate"
	"github.com/sto-tools/sto-tools-keybind-manager-sub008/pkg/ports"
	"github.com/sto-tools/sto-tools-keybind-manager-sub008/pkg/profiles"
)

func newMigrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate [FILE...]",
		Short: "Upgrade stored profiles to the current schema",
		Long: `Upgrades profiles to schema ` + migrate.CurrentVersion + `.

Profile files given as arguments are rewritten in place. Without arguments
every profile of a store is migrated: a directory store (--store-dir) or a
Redis store (--redis), the latter guarded by a distributed lock per profile.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			dryRun, _ := cmd.Flags().GetBool("dry-run")
			storeDir, _ := cmd.Flags().GetString("store-dir")
			redisAddr, _ := cmd.Flags().GetString("redis")

			var (
				reports map[string]migrate.Report
				err     error
			)
			switch {
			case len(args) > 0:
				reports, err = migrateFiles(args, dryRun)
			case storeDir != "" || redisAddr != "":
				if dryRun {
					return errors.New("--dry-run is only supported for profile files")
				}
				reports, err = migrateStore(cmd)
			default:
				return errors.New("nothing to migrate: pass profile files, --store-dir or --redis")
			}
			if len(reports) > 0 {
				if perr := printMarkdown(cmd, tui.MigrationMarkdown(reports)); perr != nil {
					return perr
				}
			}
			return err
		},
	}

	cmd.Flags().Bool("dry-run", false, "Report what would change without writing files")
	cmd.Flags().String("store-dir", "", "Migrate every profile in this directory store")
	cmd.Flags().String("store-format", string(file.FormatJSON), "Directory store format (json, yaml)")
	cmd.Flags().String("redis", "", "Migrate every profile in the Redis store at this address")
	cmd.Flags().String("redis-password", "", "Redis password")
	cmd.Flags().Int("redis-db", 0, "Redis database")
	cmd.Flags().String("redis-prefix", redis.DefaultPrefix, "Redis key prefix")
	cmd.Flags().Int("concurrency", 4, "Profiles migrated in parallel")
	return cmd
}

func migrateFiles(paths []string, dryRun bool) (map[string]migrate.Report, error) {
	reports := make(map[string]migrate.Report, len(paths))
	var errs []error
	for _, path := range paths {
		raw, err := file.ReadProfile(path)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		report := app.engine.Migrate(raw)
		reports[path] = report
		if !report.Changed() || dryRun {
			continue
		}
		if err := file.WriteProfile(path, raw); err != nil {
			errs = append(errs, err)
		}
	}
	return reports, errors.Join(errs...)
}

func migrateStore(cmd *cobra.Command) (map[string]migrate.Report, error) {
	concurrency, _ := cmd.Flags().GetInt("concurrency")
	opts := []profiles.Option{
		profiles.WithMigrator(app.engine.Migrator()),
		profiles.WithConcurrency(concurrency),
		profiles.WithLogger(app.logger),
	}

	var store ports.ProfileStore
	if addr, _ := cmd.Flags().GetString("redis"); addr != "" {
		password, _ := cmd.Flags().GetString("redis-password")
		db, _ := cmd.Flags().GetInt("redis-db")
		prefix, _ := cmd.Flags().GetString("redis-prefix")

		rs := redis.New(addr, password, db, redis.WithPrefix(prefix))
		defer rs.Close()
		store = rs
		opts = append(opts, profiles.WithLocker(redis.NewLocker(rs.Client(), prefix+"lock:")))
	} else {
		dir, _ := cmd.Flags().GetString("store-dir")
		format, _ := cmd.Flags().GetString("store-format")
		store = file.New(dir, file.WithFormat(file.Format(format)))
	}

	results, err := profiles.NewManager(store, opts...).MigrateAll(cmd.Context())
	reports := make(map[string]migrate.Report, len(results))
	var errs []error
	for _, r := range results {
		if r.ProfileID == "" {
			continue
		}
		reports[r.ProfileID] = r.Report
		if r.Err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", r.ProfileID, r.Err))
		}
	}
	if err != nil {
		errs = append(errs, err)
	}
	return reports, errors.Join(errs...)
}

func init() {
	register(newMigrateCmd)
}
