package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"intervue/internal/bootstrap"
	"intervue/internal/platform/config"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var dataDir string

	root := &cobra.Command{
		Use:           "intervue",
		Short:         "AI-assisted technical interview tool",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&dataDir, "data", ".", "data directory")

	root.AddCommand(newTUICmd(&dataDir))
	root.AddCommand(newIntakeCmd(&dataDir))
	root.AddCommand(newCandidateCmd(&dataDir))
	root.AddCommand(newInterviewCmd(&dataDir))
	root.AddCommand(newAssessCmd(&dataDir))
	root.AddCommand(newReindexCmd(&dataDir))
	return root
}

func loadApp(ctx context.Context, dataDir string) (*bootstrap.App, error) {
	cfg, err := config.New(dataDir)
	if err != nil {
		return nil, err
	}
	return bootstrap.New(ctx, cfg)
}

func newTUICmd(dataDir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Run the intervue terminal UI",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(cmd.Context(), *dataDir)
			if err != nil {
				return err
			}
			return bootstrap.RunTUI(app)
		},
	}
}

func newIntakeCmd(dataDir *string) *cobra.Command {
	intake := &cobra.Command{Use: "intake", Short: "Ingest candidate resumes"}

	intake.AddCommand(&cobra.Command{
		Use:   "file <path>",
		Short: "Ingest a resume file (pdf or docx)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(cmd.Context(), *dataDir)
			if err != nil {
				return err
			}
			out, err := app.IntakeCLI.IngestFile(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "ingested %s candidate=%s\n", out.ResumeFile, out.CandidateID)
			if len(out.MissingFields) > 0 {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "missing fields: %s\n", strings.Join(out.MissingFields, ", "))
			}
			return nil
		},
	})
	return intake
}

func newCandidateCmd(dataDir *string) *cobra.Command {
	candidate := &cobra.Command{Use: "candidate", Short: "Candidate query commands"}

	candidate.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List candidates ranked by score",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(cmd.Context(), *dataDir)
			if err != nil {
				return err
			}
			candidates, err := app.CandidateCLI.List(cmd.Context())
			if err != nil {
				return err
			}
			if len(candidates) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no candidates")
				return nil
			}
			for _, c := range candidates {
				status := "in progress"
				if c.TestCompleted {
					status = fmt.Sprintf("score %d", c.Score)
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\t%s\n", c.ID, c.Name, c.Email, status)
			}
			return nil
		},
	})

	var candidateID string
	show := &cobra.Command{
		Use:   "show --id <id>",
		Short: "Show candidate details and transcript",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if strings.TrimSpace(candidateID) == "" {
				return fmt.Errorf("--id is required")
			}
			app, err := loadApp(cmd.Context(), *dataDir)
			if err != nil {
				return err
			}
			c, err := app.CandidateCLI.Get(cmd.Context(), candidateID)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "id: %s\nname: %s\nemail: %s\nphone: %s\nresume: %s\ncompleted: %t\nscore: %d\nsummary: %s\n",
				c.ID, c.Name, c.Email, c.Phone, c.ResumeFile, c.TestCompleted, c.Score, c.Summary)
			for _, msg := range c.Chat {
				line := fmt.Sprintf("%s [%s] %s", msg.Timestamp.Format("15:04:05"), msg.Role, msg.Text)
				if msg.Score != nil {
					line += fmt.Sprintf(" (%d pts)", *msg.Score)
				}
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), line)
			}
			return nil
		},
	}
	show.Flags().StringVar(&candidateID, "id", "", "candidate id")
	candidate.AddCommand(show)

	var deleteID string
	deleteCmd := &cobra.Command{
		Use:   "delete --id <id>",
		Short: "Delete a candidate and any active interview for them",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if strings.TrimSpace(deleteID) == "" {
				return fmt.Errorf("--id is required")
			}
			app, err := loadApp(cmd.Context(), *dataDir)
			if err != nil {
				return err
			}
			if err := app.InterviewCLI.DeleteCandidate(cmd.Context(), deleteID); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", deleteID)
			return nil
		},
	}
	deleteCmd.Flags().StringVar(&deleteID, "id", "", "candidate id")
	candidate.AddCommand(deleteCmd)
	return candidate
}

func newInterviewCmd(dataDir *string) *cobra.Command {
	interview := &cobra.Command{Use: "interview", Short: "Interview session commands"}

	interview.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "Show the persisted interview, if any",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(cmd.Context(), *dataDir)
			if err != nil {
				return err
			}
			state, ok, err := app.InterviewCLI.Status(cmd.Context())
			if err != nil {
				return err
			}
			if !ok {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no active interview")
				return nil
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "candidate: %s (%s)\nphase: %s\n", state.CandidateName, state.CandidateID, state.Phase)
			if state.QuestionCount > 0 {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "question: %d/%d (%s)\nremaining: %ds\n",
					state.QuestionIndex+1, state.QuestionCount, state.Difficulty, state.RemainingSeconds)
			}
			if state.AwaitingField != "" {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "awaiting: %s\n", state.AwaitingField)
			}
			return nil
		},
	})
	return interview
}

func newAssessCmd(dataDir *string) *cobra.Command {
	assess := &cobra.Command{Use: "assess", Short: "Assessor commands"}

	var role, candidateContext string
	preview := &cobra.Command{
		Use:   "preview",
		Short: "Generate a question set without starting an interview",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(cmd.Context(), *dataDir)
			if err != nil {
				return err
			}
			out, err := app.AssessorCLI.Preview(cmd.Context(), role, candidateContext)
			if err != nil {
				return err
			}
			if out.Fallback {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "(fallback question set)")
			}
			for _, q := range out.Questions {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%ds\t%s\n", q.QuestionID, q.Difficulty, q.TimeLimit, q.Text)
			}
			return nil
		},
	}
	preview.Flags().StringVar(&role, "role", "", "target role")
	preview.Flags().StringVar(&candidateContext, "context", "", "candidate context")
	assess.AddCommand(preview)
	return assess
}

func newReindexCmd(dataDir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "reindex",
		Short: "Rebuild the candidate dashboard index",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(cmd.Context(), *dataDir)
			if err != nil {
				return err
			}
			if err := app.CandidateCLI.Reindex(cmd.Context()); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "reindex complete")
			return nil
		},
	}
}
