package cmd

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/abhisek/careerpath/internal/diagram"
	"github.com/abhisek/careerpath/internal/skillmatch"
	"github.com/spf13/cobra"
)

var matchCmd = &cobra.Command{
	Use:   "match <skills>",
	Short: "Match skills against the built-in career catalog (no AI call)",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		skills := skillmatch.ParseSkills(strings.Join(args, ","))
		if len(skills) == 0 {
			return fmt.Errorf("no skills given")
		}
		out := cmd.OutOrStdout()

		if asDiagram, _ := cmd.Flags().GetBool("diagram"); asDiagram {
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(diagram.Build(skills, nil, false))
		}

		matches := skillmatch.MatchDomains(skills)
		if len(matches) == 0 {
			fmt.Fprintln(out, "No matching career domains.")
			return nil
		}
		for _, m := range matches {
			fmt.Fprintf(out, "%s (%s)\n", m.Domain, skillmatch.LevelDisplayName(m.Level))
			for _, r := range m.Roles {
				fmt.Fprintf(out, "  %-28s %s\n", r.Role.Name, strings.Join(r.Matched, ", "))
			}
		}
		return nil
	},
}

func init() {
	matchCmd.Flags().Bool("diagram", false, "Print the skills-to-domains diagram as JSON")
}
