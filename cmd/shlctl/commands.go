package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/preston-bernstein/shl-live-service/internal/config"
	domainevents "github.com/preston-bernstein/shl-live-service/internal/domain/events"
	"github.com/preston-bernstein/shl-live-service/internal/domain/teams"
	domainusers "github.com/preston-bernstein/shl-live-service/internal/domain/users"
	"github.com/preston-bernstein/shl-live-service/internal/logging"
	"github.com/preston-bernstein/shl-live-service/internal/metrics"
	"github.com/preston-bernstein/shl-live-service/internal/poller"
	"github.com/preston-bernstein/shl-live-service/internal/server"
)

// appFactory opens the pipeline the commands operate on.
type appFactory func(ctx context.Context, logger *slog.Logger) (*server.App, error)

func defaultAppFactory(ctx context.Context, logger *slog.Logger) (*server.App, error) {
	return server.NewApp(ctx, config.Load(), logger, metrics.NewRecorder())
}

func newRootCmd(open appFactory) *cobra.Command {
	root := &cobra.Command{
		Use:           "shlctl",
		Short:         "Operate the SHL live pipeline",
		SilenceUsage: true,
	}
	root.AddCommand(tickCmd(open))
	root.AddCommand(usersCmd(open))
	root.AddCommand(eventsCmd(open))
	root.AddCommand(teamsCmd())
	return root
}

func cmdLogger(cmd *cobra.Command) *slog.Logger {
	return logging.NewLogger(logging.Config{
		Level:   os.Getenv("LOG_LEVEL"),
		Format:  os.Getenv("LOG_FORMAT"),
		Service: "shlctl",
		Output:  cmd.ErrOrStderr(),
	})
}

// withApp opens the pipeline for one command and closes it afterwards.
func withApp(cmd *cobra.Command, open appFactory, fn func(ctx context.Context, app *server.App) error) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	app, err := open(ctx, cmdLogger(cmd))
	if err != nil {
		return err
	}
	defer app.Close()
	return fn(ctx, app)
}

func tickCmd(open appFactory) *cobra.Command {
	return &cobra.Command{
		Use:   "tick",
		Short: "Run one poll tick and report the live games",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, open, func(ctx context.Context, app *server.App) error {
				size, err := app.Poller.Tick(ctx)
				out := cmd.OutOrStdout()
				for _, g := range app.Poller.Live() {
					fmt.Fprintln(out, g.String())
				}
				fmt.Fprintf(out, "live games: %d\n", size)
				if errors.Is(err, poller.ErrDegraded) {
					fmt.Fprintf(out, "degraded: %v\n", err)
					return nil
				}
				return err
			})
		},
	}
}

func usersCmd(open appFactory) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "users",
		Short: "Manage notification subscribers",
	}
	cmd.AddCommand(usersAddCmd(open))
	cmd.AddCommand(usersGetCmd(open))
	return cmd
}

func usersAddCmd(open appFactory) *cobra.Command {
	var (
		id       string
		teamList []string
		token    string
	)
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create, replace or remove (no token or teams) a subscriber",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			u := domainusers.User{ID: id, Teams: teamList, PushToken: token}.Normalize()
			if err := u.Validate(); err != nil {
				return fmt.Errorf("invalid user: %w", err)
			}
			return withApp(cmd, open, func(ctx context.Context, app *server.App) error {
				retained, err := app.Services.Users.AddUser(ctx, u)
				if err != nil {
					return err
				}
				if retained {
					fmt.Fprintf(cmd.OutOrStdout(), "user %s subscribed to %s\n", u.ID, strings.Join(u.Teams, ","))
				} else {
					fmt.Fprintf(cmd.OutOrStdout(), "user %s removed\n", u.ID)
				}
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&id, "id", "", "User id")
	cmd.Flags().StringSliceVar(&teamList, "teams", nil, "Team codes, comma separated")
	cmd.Flags().StringVar(&token, "token", "", "APNs device token (hex)")
	_ = cmd.MarkFlagRequired("id")
	return cmd
}

func usersGetCmd(open appFactory) *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Print a stored subscriber",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, open, func(ctx context.Context, app *server.App) error {
				u, ok, err := app.Services.Users.User(ctx, args[0])
				if err != nil {
					return err
				}
				if !ok {
					return fmt.Errorf("user %s not found", args[0])
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s teams=%s token=%t\n", u.ID, strings.Join(u.Teams, ","), u.PushToken != "")
				return nil
			})
		},
	}
}

func eventsCmd(open appFactory) *cobra.Command {
	return &cobra.Command{
		Use:   "events <game-uuid>",
		Short: "Print the recorded events of a game",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, open, func(ctx context.Context, app *server.App) error {
				list, err := app.Services.Events.Events(ctx, args[0])
				if err != nil {
					return err
				}
				return printEvents(cmd.OutOrStdout(), list)
			})
		},
	}
}

func printEvents(w io.Writer, list []domainevents.Event) error {
	if len(list) == 0 {
		_, err := fmt.Fprintln(w, "no events")
		return err
	}
	for _, ev := range list {
		if _, err := fmt.Fprintln(w, ev.String()); err != nil {
			return err
		}
	}
	return nil
}

func teamsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "teams",
		Short: "Look up SHL teams",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List every team",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			for _, t := range teams.All() {
				fmt.Fprintf(cmd.OutOrStdout(), "%-5s %s\n", t.Code, t.Name)
			}
			return nil
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "resolve <query>",
		Short: "Resolve free text to a team code",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := strings.Join(args, " ")
			t, ok := teams.Resolve(query)
			if !ok {
				return fmt.Errorf("no team matches %q", query)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", t.Code, t.Name)
			return nil
		},
	})
	return cmd
}
