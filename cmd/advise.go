package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/abhisek/careerpath/internal/advice"
	"github.com/abhisek/careerpath/internal/gateway"
	"github.com/abhisek/careerpath/internal/observability"
	"github.com/abhisek/careerpath/internal/skillmatch"
	"github.com/spf13/cobra"
)

var adviseCmd = &cobra.Command{
	Use:   "advise <skills>",
	Short: "Print career recommendations for comma-separated skills",
	Example: `  careerpath advise "JavaScript, SQL"
  careerpath advise Go Kubernetes --json`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		cfg, err := loadConfig(cmd)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}

		skills := skillmatch.ParseSkills(strings.Join(args, ","))
		if len(skills) == 0 {
			return fmt.Errorf("no skills given")
		}

		logger, err := observability.NewLogger(cfg.Log.Level, cfg.Log.Development)
		if err != nil {
			return err
		}
		defer logger.Sync() //nolint:errcheck

		a, _, cleanup, err := buildAdvisor(ctx, cfg, logger, gateway.Options{})
		if err != nil {
			return err
		}
		defer cleanup()

		prompt, _ := cmd.Flags().GetString("prompt")
		adv, err := a.RequestWithPrompt(ctx, prompt, skills)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(adv)
		}
		printAdvice(out, adv)
		return nil
	},
}

func printAdvice(w io.Writer, adv *advice.Advice) {
	if adv.Error != "" {
		fmt.Fprintln(w, "Error:", adv.Error)
		return
	}
	list := func(title string, items []string) {
		if len(items) == 0 {
			return
		}
		fmt.Fprintln(w, title)
		for _, it := range items {
			fmt.Fprintln(w, "  •", it)
		}
		fmt.Fprintln(w)
	}
	list("Recommended Roles", adv.CareerRoles)
	list("Skills to Develop", adv.SkillsToLearn)

	if len(adv.CareerPaths) > 0 {
		fmt.Fprintln(w, "Career Paths")
		for _, p := range adv.CareerPaths {
			fmt.Fprintln(w, " ", p.Title)
			if p.Description != "" {
				fmt.Fprintln(w, "   ", p.Description)
			}
			for i, step := range p.Steps {
				fmt.Fprintf(w, "    %d. %s\n", i+1, step)
			}
		}
		fmt.Fprintln(w)
	}
	if adv.IndustryInsights != "" {
		fmt.Fprintln(w, "Industry Insights")
		fmt.Fprintln(w, " ", adv.IndustryInsights)
	}
	if adv.ParseError && adv.RawResponse != adv.IndustryInsights {
		fmt.Fprintln(w, adv.RawResponse)
	}
}

func init() {
	adviseCmd.Flags().String("prompt", "", "Send this prompt verbatim instead of the built-in one")
	adviseCmd.Flags().Bool("json", false, "Print the normalized response as JSON")
}
