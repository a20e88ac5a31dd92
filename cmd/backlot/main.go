package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	cl "backlot/internal/cli"
	"backlot/internal/config"

	"github.com/spf13/cobra"
)

func main() {
	cfg := config.LoadCLIFromEnv()
	apiBase := cfg.APIBaseURL

	root := &cobra.Command{
		Use:          "backlot",
		Short:        "Backlot studio management client",
		SilenceUsage: true,
	}

	root.AddCommand(
		newSignupCmd(&apiBase),
		newLoginCmd(&apiBase),
		newLogoutCmd(),
		newStateCmd(&apiBase),
		newAdvanceCmd(&apiBase),
		newActorsCmd(&apiBase),
		newScriptsCmd(&apiBase),
		newProjectsCmd(&apiBase),
		newContractsCmd(&apiBase),
		newRivalsCmd(&apiBase),
		newEventsCmd(&apiBase),
		newAutoCmd(&apiBase),
	)

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newClient(apiBase *string) *cl.Client {
	return cl.NewClient(strings.TrimRight(strings.TrimSpace(*apiBase), "/"))
}

func newSignupCmd(apiBase *string) *cobra.Command {
	return &cobra.Command{
		Use:   "signup",
		Short: "Create a Backlot account and studio",
		RunE: func(cmd *cobra.Command, args []string) error {
			email, err := promptRequired("Email")
			if err != nil {
				return err
			}
			password, err := promptRequired("Password")
			if err != nil {
				return err
			}
			playerName, err := promptRequired("Your name")
			if err != nil {
				return err
			}
			studioName, err := promptOptional("Studio name (optional)")
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()
			client := newClient(apiBase)
			session, err := client.Signup(ctx, email, password, playerName, studioName)
			if err != nil {
				return err
			}
			if strings.TrimSpace(session.AccessToken) == "" {
				printWarn("Signup created. Verify email, then run `backlot login`.")
				return nil
			}
			if err := cl.SaveSession(cl.Session{
				AccessToken:  session.AccessToken,
				RefreshToken: session.RefreshToken,
				Email:        session.User.Email,
				UserID:       session.User.ID,
			}); err != nil {
				return err
			}
			printSuccess("Signup complete. Session saved.")
			return nil
		},
	}
}

func newLoginCmd(apiBase *string) *cobra.Command {
	return &cobra.Command{
		Use:   "login",
		Short: "Login to Backlot",
		RunE: func(cmd *cobra.Command, args []string) error {
			email, err := promptRequired("Email")
			if err != nil {
				return err
			}
			password, err := promptRequired("Password")
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()
			client := newClient(apiBase)
			session, err := client.Login(ctx, email, password)
			if err != nil {
				return err
			}
			if err := cl.SaveSession(cl.Session{
				AccessToken:  session.AccessToken,
				RefreshToken: session.RefreshToken,
				Email:        session.User.Email,
				UserID:       session.User.ID,
			}); err != nil {
				return err
			}
			printSuccess("Login successful.")
			return nil
		},
	}
}

func newLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Clear local session token",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cl.ClearSession(); err != nil {
				return err
			}
			printSuccess("Logged out.")
			return nil
		},
	}
}

func newStateCmd(apiBase *string) *cobra.Command {
	return &cobra.Command{
		Use:   "state",
		Short: "Show your studio dashboard",
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := cl.LoadSession()
			if err != nil {
				return fmt.Errorf("login required: %w", err)
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()
			client := newClient(apiBase)
			out, err := client.State(ctx, sess.AccessToken)
			if err != nil {
				return err
			}
			return renderState(out)
		},
	}
}

func newAdvanceCmd(apiBase *string) *cobra.Command {
	return &cobra.Command{
		Use:   "advance",
		Short: "Advance the simulation by one month",
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := cl.LoadSession()
			if err != nil {
				return fmt.Errorf("login required: %w", err)
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), 60*time.Second)
			defer cancel()
			client := newClient(apiBase)
			out, err := client.Advance(ctx, sess.AccessToken)
			if err != nil {
				return err
			}
			printSuccess(fmt.Sprintf("Advanced to %s %d.", monthName(out.Month), out.Year))
			return renderEvents(out, true)
		},
	}
}

func newActorsCmd(apiBase *string) *cobra.Command {
	return &cobra.Command{
		Use:   "actors",
		Short: "List the shared actor roster",
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := cl.LoadSession()
			if err != nil {
				return fmt.Errorf("login required: %w", err)
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()
			client := newClient(apiBase)
			out, err := client.Actors(ctx, sess.AccessToken)
			if err != nil {
				return err
			}
			return renderActors(out)
		},
	}
}

func newScriptsCmd(apiBase *string) *cobra.Command {
	scripts := &cobra.Command{
		Use:   "scripts",
		Short: "Script market commands",
	}
	scripts.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List market and owned scripts",
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := cl.LoadSession()
			if err != nil {
				return fmt.Errorf("login required: %w", err)
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()
			client := newClient(apiBase)
			out, err := client.Scripts(ctx, sess.AccessToken)
			if err != nil {
				return err
			}
			return renderScripts(out)
		},
	})
	scripts.AddCommand(&cobra.Command{
		Use:   "bid [script_id]",
		Short: "Bid on a script at auction",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := cl.LoadSession()
			if err != nil {
				return fmt.Errorf("login required: %w", err)
			}
			scriptID, err := stringFromArgOrPrompt(args, 0, "Script ID")
			if err != nil {
				return err
			}
			amount, err := promptInt64("Bid amount ($)", 1)
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()
			client := newClient(apiBase)
			out, err := client.PlaceBid(ctx, sess.AccessToken, scriptID, amount)
			if err != nil {
				return err
			}
			printSuccess(fmt.Sprintf("Bid of $%s placed on %s.", comma(amount), scriptID))
			return renderEvents(out, true)
		},
	})
	return scripts
}

func newProjectsCmd(apiBase *string) *cobra.Command {
	projects := &cobra.Command{
		Use:   "projects",
		Short: "Production slate commands",
	}
	projects.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List your productions",
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := cl.LoadSession()
			if err != nil {
				return fmt.Errorf("login required: %w", err)
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()
			client := newClient(apiBase)
			out, err := client.Projects(ctx, sess.AccessToken)
			if err != nil {
				return err
			}
			return renderProjects(out)
		},
	})
	projects.AddCommand(&cobra.Command{
		Use:   "greenlight [script_id]",
		Short: "Start production on an owned script",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := cl.LoadSession()
			if err != nil {
				return fmt.Errorf("login required: %w", err)
			}
			scriptID, err := stringFromArgOrPrompt(args, 0, "Script ID")
			if err != nil {
				return err
			}
			castLine, err := promptRequired("Cast actor IDs (comma separated)")
			if err != nil {
				return err
			}
			var cast []string
			for _, id := range strings.Split(castLine, ",") {
				id = strings.TrimSpace(id)
				if id != "" {
					cast = append(cast, id)
				}
			}
			prodBudget, err := promptInt64("Production budget ($)", 1)
			if err != nil {
				return err
			}
			mktBudget, err := promptInt64("Marketing budget ($)", 0)
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()
			client := newClient(apiBase)
			out, err := client.Greenlight(ctx, sess.AccessToken, scriptID, cast, prodBudget, mktBudget)
			if err != nil {
				return err
			}
			printSuccess("Production greenlit.")
			return renderEvents(out, true)
		},
	})
	return projects
}

func newContractsCmd(apiBase *string) *cobra.Command {
	contracts := &cobra.Command{
		Use:   "contracts",
		Short: "Actor contract commands",
	}
	contracts.AddCommand(&cobra.Command{
		Use:   "sign [actor_id]",
		Short: "Sign an actor to an exclusive contract",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := cl.LoadSession()
			if err != nil {
				return fmt.Errorf("login required: %w", err)
			}
			actorID, err := stringFromArgOrPrompt(args, 0, "Actor ID")
			if err != nil {
				return err
			}
			durationText, err := promptChoice("Duration (months)", []string{"3", "6", "12"}, "6")
			if err != nil {
				return err
			}
			duration, _ := strconv.Atoi(durationText)
			bonus, err := promptInt64("Signing bonus ($)", 0)
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()
			client := newClient(apiBase)
			out, err := client.SignContract(ctx, sess.AccessToken, actorID, duration, bonus)
			if err != nil {
				return err
			}
			printSuccess(fmt.Sprintf("Signed %s for %d months.", actorID, duration))
			return renderEvents(out, true)
		},
	})
	contracts.AddCommand(&cobra.Command{
		Use:   "drop [contract_id]",
		Short: "Terminate a contract early",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := cl.LoadSession()
			if err != nil {
				return fmt.Errorf("login required: %w", err)
			}
			contractID, err := stringFromArgOrPrompt(args, 0, "Contract ID")
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()
			client := newClient(apiBase)
			out, err := client.TerminateContract(ctx, sess.AccessToken, contractID)
			if err != nil {
				return err
			}
			printSuccess("Contract terminated.")
			return renderEvents(out, true)
		},
	})
	return contracts
}

func newRivalsCmd(apiBase *string) *cobra.Command {
	rivals := &cobra.Command{
		Use:   "rivals",
		Short: "Rival studio relations",
	}
	rivals.AddCommand(&cobra.Command{
		Use:   "gift [rival_id]",
		Short: "Send a cash gift to a rival studio",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := cl.LoadSession()
			if err != nil {
				return fmt.Errorf("login required: %w", err)
			}
			rivalID, err := stringFromArgOrPrompt(args, 0, "Rival ID")
			if err != nil {
				return err
			}
			amount, err := promptInt64("Gift amount ($)", 1)
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()
			client := newClient(apiBase)
			out, err := client.GiftRival(ctx, sess.AccessToken, rivalID, amount)
			if err != nil {
				return err
			}
			printSuccess(fmt.Sprintf("Wired $%s to %s.", comma(amount), rivalID))
			return renderEvents(out, true)
		},
	})
	rivals.AddCommand(&cobra.Command{
		Use:   "message [rival_id]",
		Short: "Send a message to a rival studio",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := cl.LoadSession()
			if err != nil {
				return fmt.Errorf("login required: %w", err)
			}
			rivalID, err := stringFromArgOrPrompt(args, 0, "Rival ID")
			if err != nil {
				return err
			}
			content, err := promptRequired("Message")
			if err != nil {
				return err
			}
			visibility, err := promptChoice("Visibility", []string{"private", "public"}, "private")
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()
			client := newClient(apiBase)
			out, err := client.SendMessage(ctx, sess.AccessToken, rivalID, content, visibility == "public")
			if err != nil {
				return err
			}
			printSuccess("Message sent.")
			return renderEvents(out, true)
		},
	})
	return rivals
}

func newEventsCmd(apiBase *string) *cobra.Command {
	events := &cobra.Command{
		Use:   "events",
		Short: "News feed commands",
	}
	events.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "Show the news feed",
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := cl.LoadSession()
			if err != nil {
				return fmt.Errorf("login required: %w", err)
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()
			client := newClient(apiBase)
			out, err := client.State(ctx, sess.AccessToken)
			if err != nil {
				return err
			}
			return renderEvents(out, false)
		},
	})
	events.AddCommand(&cobra.Command{
		Use:   "read",
		Short: "Mark every feed event as read",
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := cl.LoadSession()
			if err != nil {
				return fmt.Errorf("login required: %w", err)
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()
			client := newClient(apiBase)
			if err := client.MarkEventsRead(ctx, sess.AccessToken); err != nil {
				return err
			}
			printSuccess("Feed marked as read.")
			return nil
		},
	})
	return events
}

func newAutoCmd(apiBase *string) *cobra.Command {
	return &cobra.Command{
		Use:   "auto [on|off]",
		Short: "Toggle worker-driven monthly advancement",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := cl.LoadSession()
			if err != nil {
				return fmt.Errorf("login required: %w", err)
			}
			var choice string
			if len(args) > 0 {
				choice = strings.ToLower(strings.TrimSpace(args[0]))
			} else {
				choice, err = promptChoice("Auto-advance", []string{"on", "off"}, "off")
				if err != nil {
					return err
				}
			}
			if choice != "on" && choice != "off" {
				return fmt.Errorf("expected on or off, got %q", choice)
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()
			client := newClient(apiBase)
			if err := client.SetAutoAdvance(ctx, sess.AccessToken, choice == "on"); err != nil {
				return err
			}
			printSuccess(fmt.Sprintf("Auto-advance %s.", choice))
			return nil
		},
	}
}

func stringFromArgOrPrompt(args []string, idx int, label string) (string, error) {
	if len(args) > idx {
		v := strings.TrimSpace(args[idx])
		if v == "" {
			return "", fmt.Errorf("invalid %s", strings.ToLower(label))
		}
		return v, nil
	}
	return promptRequired(label)
}
