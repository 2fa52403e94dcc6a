package commands

import (
	"fmt"
	"sort"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/Chatelo/freview/internal/cli/output"
	"github.com/Chatelo/freview/pkg/review/project"
	"github.com/Chatelo/freview/pkg/review/rules/database"
	"github.com/Chatelo/freview/pkg/review/rules/models"
	"github.com/Chatelo/freview/pkg/review/rules/routes"
)

// RuleInfo describes one registered rule for listing.
type RuleInfo struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Type        string `json:"type"`
	Group       string `json:"group"`
	Description string `json:"description"`
	Severity    string `json:"severity"`
}

// RulesOptions holds options for the rules command.
type RulesOptions struct {
	Group  string // Filter by group
	Type   string // Filter by type
	Format string // Output format
}

// NewRulesCommand creates the rules command.
func NewRulesCommand() *cobra.Command {
	opts := &RulesOptions{}
	cmd := &cobra.Command{
		Use:   "rules [rule-id]",
		Short: "List available review rules",
		Long: `List all available review rules.

Rules are organized by type (routes, models, migrations, config, usage,
project) and group. Pass a rule ID to show a single rule.`,
		Example: `  # List all rules
  freview rules

  # Show one rule
  freview rules MD02

  # List model rules only
  freview rules --type models

  # Output as JSON
  freview rules --format json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			r := GetRenderer(cmd.Context())
			if opts.Format != "" {
				r = output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), output.Mode(opts.Format))
			}
			if len(args) > 0 {
				return showRule(r, args[0])
			}
			return listRules(r, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Group, "group", "g", "", "Filter by group")
	cmd.Flags().StringVar(&opts.Type, "type", "", "Filter by type: routes, models, migrations, config, usage, project")
	cmd.Flags().StringVarP(&opts.Format, "format", "f", "", "Output format: text, json, markdown")

	return cmd
}

func allRules() []RuleInfo {
	var infos []RuleInfo
	for _, rule := range routes.All() {
		infos = append(infos, RuleInfo{rule.ID, rule.Name, "routes", rule.Group, rule.Description, rule.Severity.String()})
	}
	for _, rule := range models.All() {
		infos = append(infos, RuleInfo{rule.ID, rule.Name, "models", rule.Group, rule.Description, rule.Severity.String()})
	}
	for _, rule := range database.All() {
		kind := "migrations"
		switch rule.Kind {
		case database.KindConfig:
			kind = "config"
		case database.KindUsage:
			kind = "usage"
		}
		infos = append(infos, RuleInfo{rule.ID, rule.Name, kind, rule.Group, rule.Description, rule.Severity.String()})
	}
	for _, rule := range project.All() {
		infos = append(infos, RuleInfo{rule.ID, rule.Name, "project", rule.Group, rule.Description, rule.Severity.String()})
	}
	return infos
}

func listRules(r *output.Renderer, opts *RulesOptions) error {
	rules := allRules()

	if opts.Group != "" || opts.Type != "" {
		var filtered []RuleInfo
		for _, rule := range rules {
			if opts.Group != "" && rule.Group != opts.Group {
				continue
			}
			if opts.Type != "" && rule.Type != opts.Type {
				continue
			}
			filtered = append(filtered, rule)
		}
		rules = filtered
	}

	sort.Slice(rules, func(i, j int) bool {
		if rules[i].Type != rules[j].Type {
			return rules[i].Type < rules[j].Type
		}
		return rules[i].ID < rules[j].ID
	})

	switch r.EffectiveMode() {
	case output.ModeJSON:
		return r.JSON(rules)
	case output.ModeMarkdown:
		r.Println("# Review Rules")
		r.Println("")
		r.Println("| ID | Type | Group | Severity | Description |")
		r.Println("|----|------|-------|----------|-------------|")
		for _, rule := range rules {
			r.Printf("| %s | %s | %s | %s | %s |\n", rule.ID, rule.Type, rule.Group, rule.Severity, rule.Description)
		}
		return nil
	default:
		t := table.NewWriter()
		t.SetOutputMirror(r.Out())
		t.SetStyle(table.StyleRounded)
		t.AppendHeader(table.Row{"ID", "Type", "Group", "Severity", "Description"})
		for _, rule := range rules {
			t.AppendRow(table.Row{rule.ID, rule.Type, rule.Group, rule.Severity, rule.Description})
		}
		t.Render()
		r.Println(output.MutedStyle.Render(fmt.Sprintf("%d rule(s)", len(rules))))
		return nil
	}
}

func showRule(r *output.Renderer, id string) error {
	for _, rule := range allRules() {
		if rule.ID != id {
			continue
		}
		if r.EffectiveMode() == output.ModeJSON {
			return r.JSON(rule)
		}
		r.Println(output.TitleStyle.Render(fmt.Sprintf("%s - %s", rule.ID, rule.Name)))
		r.Println(output.FormatKeyValue("Type", rule.Type))
		r.Println(output.FormatKeyValue("Group", rule.Group))
		r.Println(output.FormatKeyValue("Severity", rule.Severity))
		r.Println(output.FormatKeyValue("Description", rule.Description))
		return nil
	}
	return fmt.Errorf("unknown rule: %s", id)
}
