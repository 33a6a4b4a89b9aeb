package scaffold

import (
	"fmt"
	"sort"
)

// templates is the outcome template registry.
var templates = map[string]Template{
	"billing-reconciliation": {
		Name:        "billing-reconciliation",
		Description: "Starter project for reconciling invoices against time entries",
		Files:       billingReconciliationFiles,
	},
	"role-context": {
		Name:        "role-context",
		Description: "Role-specific context documents for agent-assisted work",
		Files:       roleContextFiles,
	},
}

// Lookup resolves a template by name.
func Lookup(name string) (Template, error) {
	tmpl, ok := templates[name]
	if !ok {
		return Template{}, fmt.Errorf("unknown template %q (available: %v)", name, Names())
	}
	return tmpl, nil
}

// Names returns registered template names, sorted.
func Names() []string {
	names := make([]string, 0, len(templates))
	for name := range templates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func billingReconciliationFiles(p Params) []File {
	return []File{
		{
			Path: "README.md",
			Content: fmt.Sprintf(`# %s

Billing reconciliation starter generated by Quallaa CLI.

This project matches invoices from your accounting system against
tracked time entries, flags discrepancies, and produces a monthly
reconciliation report.

## Workflow

1. Export invoices and time entries for the period.
2. Run the reconciliation against both exports.
3. Review flagged discrepancies in the report.
4. Record the period's metrics with "quallaa roi calculate" so ROI
   trends accumulate over time.
`, p.ProjectName),
		},
		{
			Path: "docs/runbook.md",
			Content: `# Reconciliation Runbook

## Monthly close

- Pull the invoice export no earlier than the 2nd business day.
- Time entries must cover the full invoice period; partial weeks at
  period boundaries belong to the period containing the Monday.
- A discrepancy above 2% of invoice value blocks the close until
  resolved or waived.

## Discrepancy categories

| Category | Action |
| --- | --- |
| Missing time entry | Confirm with the owner, then backfill |
| Rate mismatch | Check the client rate card effective date |
| Duplicate invoice line | Void the duplicate before posting |
`,
		},
		{
			Path: "config/mapping.yaml",
			Content: `# Maps invoice line categories to time-entry projects.
# Unmapped categories are reported, never silently dropped.
mappings:
  - invoice_category: "Professional Services"
    project: "client-work"
  - invoice_category: "Support Retainer"
    project: "support"
unmapped_policy: report
`,
		},
		{
			Path: ".gitignore",
			Content: `.quallaa/
exports/
*.csv
`,
		},
	}
}

func roleContextFiles(p Params) []File {
	role := p.Role
	if role == "" {
		role = "operations"
	}
	return []File{
		{
			Path: fmt.Sprintf("docs/context/%s.md", role),
			Content: fmt.Sprintf(`# Context: %s

Project: %s

## Responsibilities

Describe what the %s role owns in this project: the systems touched,
the decisions made without escalation, and the reports produced.

## Data sources

List the systems this role reads from and writes to, with the owner
of each integration.

## Escalation

Name who resolves discrepancies this role cannot, and the expected
response time.
`, role, p.ProjectName, role),
		},
		{
			Path: "docs/context/README.md",
			Content: `# Context Documents

One document per role. Keep them current: agents and new teammates
read these before touching the project.
`,
		},
	}
}
