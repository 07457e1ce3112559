package main

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"participation-service/internal/config"
	"participation-service/internal/database"
	"participation-service/internal/domain"
	"participation-service/internal/repository"
	"participation-service/internal/service"
)

// dbOpener connects to the store described by the loaded configuration
type dbOpener func(cfg *config.Config) (*gorm.DB, error)

func openDatabase(cfg *config.Config) (*gorm.DB, error) {
	return database.New(database.Config{
		DSN:             cfg.Database.GetDSN(),
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
	})
}

// adminApp carries state shared by every subcommand
type adminApp struct {
	open       dbOpener
	out        io.Writer
	configPath string
	logger     *zap.Logger
}

func (a *adminApp) connect() (*gorm.DB, *config.Config, error) {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return nil, nil, err
	}
	db, err := a.open(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("connect: %w", err)
	}
	return db, cfg, nil
}

func newRootCmd(open dbOpener, out io.Writer) *cobra.Command {
	app := &adminApp{open: open, out: out}

	rootCmd := &cobra.Command{
		Use:           "participation-admin",
		Short:         "Operator tasks for the participation service database",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logger, err := zap.NewDevelopment()
			if err != nil {
				return err
			}
			app.logger = logger
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if app.logger != nil {
				_ = app.logger.Sync()
			}
		},
	}
	rootCmd.SetOut(out)
	rootCmd.PersistentFlags().StringVar(&app.configPath, "config", "configs/config.yaml", "path to the YAML config file")

	seedCmd := &cobra.Command{
		Use:   "seed",
		Short: "Insert reference data",
	}
	seedCmd.AddCommand(newSeedCoursesCmd(app), newSeedUserCmd(app), newSeedSessionCmd(app))

	rootCmd.AddCommand(newMigrateCmd(app), seedCmd)
	return rootCmd
}

func newMigrateCmd(app *adminApp) *cobra.Command {
	var retries int

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, _, err := app.connect()
			if err != nil {
				return err
			}
			if err := database.SafeAutoMigrateWithRetry(db, app.logger, retries); err != nil {
				return err
			}
			fmt.Fprintln(app.out, "schema up to date")
			return nil
		},
	}
	cmd.Flags().IntVar(&retries, "retries", 3, "attempts before giving up")
	return cmd
}

func newSeedCoursesCmd(app *adminApp) *cobra.Command {
	var names []string

	cmd := &cobra.Command{
		Use:   "courses",
		Short: "Create the default course list (existing courses are left alone)",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, _, err := app.connect()
			if err != nil {
				return err
			}
			courseService := service.NewCourseService(repository.NewCourseRepository(db), app.logger)
			created, err := courseService.SeedCourses(cmd.Context(), names)
			if err != nil {
				return err
			}
			fmt.Fprintf(app.out, "%d course(s) created, %d already present\n", created, len(names)-created)
			return nil
		},
	}
	cmd.Flags().StringSliceVar(&names, "name", domain.DefaultCourseNames, "course names to create")
	return cmd
}

func newSeedUserCmd(app *adminApp) *cobra.Command {
	var name, email, id string

	cmd := &cobra.Command{
		Use:   "user",
		Short: "Provision a user so its tokens resolve to an account",
		RunE: func(cmd *cobra.Command, args []string) error {
			if strings.TrimSpace(email) == "" {
				return errors.New("--email is required")
			}
			user := &domain.User{Name: name, Email: email}
			if id != "" {
				if err := user.ID.UnmarshalText([]byte(id)); err != nil {
					return fmt.Errorf("invalid --id: %w", err)
				}
			}

			db, _, err := app.connect()
			if err != nil {
				return err
			}
			users := repository.NewUserRepository(db)
			if existing, err := users.FindByEmail(cmd.Context(), email); err == nil {
				fmt.Fprintf(app.out, "user %s already exists\n", existing.ID)
				return nil
			} else if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}

			if err := users.Create(cmd.Context(), user); err != nil {
				return err
			}
			fmt.Fprintf(app.out, "user %s created\n", user.ID)
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "display name")
	cmd.Flags().StringVar(&email, "email", "", "unique email")
	cmd.Flags().StringVar(&id, "id", "", "fixed user ID (UUID), matching the auth subject")
	return cmd
}

func newSeedSessionCmd(app *adminApp) *cobra.Command {
	var courseName, start, caseName string
	var duration time.Duration

	cmd := &cobra.Command{
		Use:   "session",
		Short: "Schedule one session of a course",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, cfg, err := app.connect()
			if err != nil {
				return err
			}
			location, err := cfg.App.Location()
			if err != nil {
				return err
			}
			startAt, err := time.ParseInLocation("2006-01-02 15:04", start, location)
			if err != nil {
				return fmt.Errorf("invalid --start (want \"YYYY-MM-DD HH:MM\"): %w", err)
			}

			course, err := repository.NewCourseRepository(db).FindByName(cmd.Context(), courseName)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return fmt.Errorf("course %q not found", courseName)
				}
				return err
			}

			session := &domain.CourseSession{
				CourseID: course.ID,
				StartAt:  startAt.UTC(),
				EndAt:    startAt.Add(duration).UTC(),
			}
			if caseName != "" {
				session.Case = &caseName
			}
			if err := repository.NewSessionRepository(db).Create(cmd.Context(), session); err != nil {
				return err
			}
			fmt.Fprintf(app.out, "session %s created\n", session.ID)
			return nil
		},
	}
	cmd.Flags().StringVar(&courseName, "course", "", "course name")
	cmd.Flags().StringVar(&start, "start", "", "local start time, \"YYYY-MM-DD HH:MM\"")
	cmd.Flags().DurationVar(&duration, "duration", 90*time.Minute, "session length")
	cmd.Flags().StringVar(&caseName, "case", "", "case discussed in the session")
	_ = cmd.MarkFlagRequired("course")
	_ = cmd.MarkFlagRequired("start")
	return cmd
}
