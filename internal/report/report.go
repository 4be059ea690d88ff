// Package report renders a finalized QA task as a plaintext report the
// reviewer can download and attach elsewhere.
package report

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"qa-review-system.com/qa-review-system/internal/checklist"
	model "qa-review-system.com/qa-review-system/internal/models"
)

const divider = "=========================================="

// Filename returns the download name for a task's report.
func Filename(task *model.QATask, accountName string) string {
	if accountName == "" {
		accountName = "Unknown"
	}
	return fmt.Sprintf("QA_Report_%d_%s.txt", task.ID, accountName)
}

// Render produces the report body. The checklist template supplies display
// labels; keys missing from the template fall back to the raw key so older
// submissions stay readable.
func Render(task *model.QATask, accountName string, template *checklist.Template) string {
	var b strings.Builder

	fmt.Fprintf(&b, "QA REVIEW REPORT\n%s\n\n", divider)
	fmt.Fprintf(&b, "Report Generated: %s\n", time.Now().UTC().Format(time.RFC3339))
	fmt.Fprintf(&b, "Task ID: #%d\n", task.ID)
	fmt.Fprintf(&b, "Account: %s\n", accountName)
	fmt.Fprintf(&b, "Status: %s\n", task.Status)
	fmt.Fprintf(&b, "Created: %s\n", task.CreatedAt.UTC().Format(time.RFC3339))
	fmt.Fprintf(&b, "Updated: %s\n\n", task.UpdatedAt.UTC().Format(time.RFC3339))

	fmt.Fprintf(&b, "%s\nLINKS AND RESOURCES\n%s\n\n", divider, divider)
	fmt.Fprintf(&b, "Drive Video URL: %s\n", orFallback(task.ContentURL, "Not provided"))
	fmt.Fprintf(&b, "Reference Video URL: %s\n", orFallback(task.ReferenceURL, "Not provided"))

	for _, declared := range template.Steps {
		fmt.Fprintf(&b, "\n%s\nSTEP %d RESULTS\n%s\n", divider, declared.Number, divider)

		step := task.Step(declared.Number)
		if step == nil {
			fmt.Fprintf(&b, "\nNo Step %d results available.\n", declared.Number)
			continue
		}

		b.WriteString("\nChecklist Items:\n")
		for _, key := range sortedKeys(step.Checks) {
			mark := "[ ]"
			if step.Checks[key] {
				mark = "[x]"
			}
			fmt.Fprintf(&b, "  %s %s\n", mark, template.Label(declared.Number, key))
		}
		fmt.Fprintf(&b, "\nStep %d Progress: %d/%d items completed\n",
			declared.Number, step.Checks.DoneCount(), len(step.Checks))

		if step.Comments != "" {
			fmt.Fprintf(&b, "\nStep %d Comments:\n%s\n", declared.Number, step.Comments)
		}
	}

	fmt.Fprintf(&b, "\n%s\nFINAL NOTES\n%s\n\n", divider, divider)
	if notes := task.FinalNotes(); notes != nil {
		fmt.Fprintf(&b, "%s\n\nCompleted At: %s\nCompleted By: %s\n",
			orFallback(notes.Comments, "None"),
			notes.CompletedAt.UTC().Format(time.RFC3339),
			orFallback(notes.CompletedBy, "Unknown"))
	} else {
		b.WriteString("Review not finalized yet.\n")
	}

	return b.String()
}

func sortedKeys(checks model.CheckSet) []string {
	keys := make([]string, 0, len(checks))
	for key := range checks {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

func orFallback(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
