// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"strings"
	"testing"
)

func TestId_Constants(t *testing.T) {
	t.Parallel()

	ids := []Id{
		RecipeNotFoundId,
		RecipesFileParseErrorId,
		ConfigLoadFailedId,
		ContainerEngineNotFoundId,
		CargoNotFoundId,
		PermissionDeniedId,
		OptimizerFailedId,
	}

	seen := make(map[Id]bool)
	for _, id := range ids {
		if seen[id] {
			t.Errorf("duplicate ID: %d", id)
		}
		seen[id] = true
		if Get(id) == nil {
			t.Errorf("Get(%d) returned nil", id)
		}
	}

	if RecipeNotFoundId != 1 {
		t.Errorf("RecipeNotFoundId = %d, want 1", RecipeNotFoundId)
	}
	if len(issues) != len(ids) {
		t.Errorf("catalog has %d issues, want %d", len(issues), len(ids))
	}
}

func TestGet_Unknown(t *testing.T) {
	t.Parallel()

	if got := Get(Id(999)); got != nil {
		t.Errorf("Get(999) = %v, want nil", got)
	}
}

func TestGet_EveryId(t *testing.T) {
	t.Parallel()

	for id := RecipeNotFoundId; id <= OptimizerFailedId; id++ {
		got := Get(id)
		if got == nil {
			t.Errorf("Get(%d) = nil, want a catalog entry", id)
			continue
		}
		if got.Id() != id {
			t.Errorf("Get(%d).Id() = %d", id, got.Id())
		}
	}
	if len(issues) != int(OptimizerFailedId) {
		t.Errorf("catalog has %d entries, want %d", len(issues), OptimizerFailedId)
	}
}

func TestAllIssuesHaveContentAndDocs(t *testing.T) {
	t.Parallel()

	for _, issue := range issues {
		if strings.TrimSpace(string(issue.MarkdownMsg())) == "" {
			t.Errorf("issue %d has an empty message", issue.Id())
		}
		if len(issue.DocLinks()) == 0 {
			t.Errorf("issue %d has no doc links", issue.Id())
		}
		if !strings.HasPrefix(strings.TrimSpace(string(issue.MarkdownMsg())), "# ") {
			t.Errorf("issue %d message does not start with a title", issue.Id())
		}
	}
}

func TestIssue_DocLinksIsCopy(t *testing.T) {
	t.Parallel()

	issue := Get(ContainerEngineNotFoundId)
	links := issue.DocLinks()
	links[0] = "modified"
	if issue.DocLinks()[0] == "modified" {
		t.Error("DocLinks() should return a copy")
	}
}

func TestIssue_Markdown(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		issue       *Issue
		wantSeeAlso bool
	}{
		{
			name:        "with links",
			issue:       &Issue{id: 100, mdMsg: "# Test", docLinks: []HttpLink{"https://example.com/docs"}, extLinks: []HttpLink{"https://example.com/ext"}},
			wantSeeAlso: true,
		},
		{
			name:  "without links",
			issue: &Issue{id: 101, mdMsg: "# Test"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			md := tt.issue.Markdown()
			if got := strings.Contains(md, "See also"); got != tt.wantSeeAlso {
				t.Errorf("See also present = %v, want %v:\n%s", got, tt.wantSeeAlso, md)
			}
			for _, link := range append(tt.issue.DocLinks(), tt.issue.extLinks...) {
				if !strings.Contains(md, "- <"+string(link)+">") {
					t.Errorf("Markdown() missing link %s", link)
				}
			}
		})
	}
}

func TestIssue_Render(t *testing.T) {
	t.Parallel()

	for _, issue := range issues {
		rendered, err := issue.Render("notty")
		if err != nil {
			t.Errorf("issue %d failed to render: %v", issue.Id(), err)
			continue
		}
		if strings.TrimSpace(rendered) == "" {
			t.Errorf("issue %d rendered to empty string", issue.Id())
		}
	}

	rendered, err := Get(RecipeNotFoundId).Render("notty")
	if err != nil {
		t.Fatalf("Render() error: %v", err)
	}
	if !strings.Contains(rendered, "Recipe not found") {
		t.Errorf("rendered output should contain the title, got:\n%s", rendered)
	}
}
