package project

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Chatelo/freview/pkg/review"
)

func newContext() *Context {
	return &Context{Options: review.DefaultOptions()}
}

func messages(findings []review.Finding) []string {
	out := make([]string, 0, len(findings))
	for _, f := range findings {
		out = append(out, f.Message)
	}
	return out
}

func getRoutes(n int) []review.RouteRecord {
	routes := make([]review.RouteRecord, n)
	for i := range routes {
		routes[i] = review.RouteRecord{Name: "r", Path: "/page", Methods: []string{"GET"}}
	}
	return routes
}

func TestEmptyPopulationProducesNothing(t *testing.T) {
	assert.Empty(t, Evaluate(newContext()))
}

func TestVersioningThreshold(t *testing.T) {
	ctx := newContext()
	ctx.Routes = getRoutes(5)

	got := messages(Evaluate(ctx))
	assert.NotContains(t, got, "Consider API versioning (e.g., /api/v1/)")

	ctx = newContext()
	ctx.Routes = getRoutes(6)
	got = messages(Evaluate(ctx))
	assert.Contains(t, got, "Consider API versioning (e.g., /api/v1/)")
}

func TestVersioningDetected(t *testing.T) {
	ctx := newContext()
	ctx.Routes = getRoutes(6)
	ctx.Routes[0].Path = "/api/v1/users"

	got := messages(Evaluate(ctx))
	assert.NotContains(t, got, "Consider API versioning (e.g., /api/v1/)")
	assert.Contains(t, got, "Good: API versioning detected")
}

func TestErrorHandlingCoverage(t *testing.T) {
	ctx := newContext()
	ctx.Routes = getRoutes(4)
	ctx.Routes[0].HasErrorCheck = true

	got := messages(Evaluate(ctx))
	assert.Contains(t, got, "Less than 50% of routes have error handling")

	for i := range ctx.Routes {
		ctx.Routes[i].HasErrorCheck = true
	}
	got = messages(Evaluate(ctx))
	assert.NotContains(t, got, "Less than 50% of routes have error handling")
}

func TestBlueprintAdoption(t *testing.T) {
	ctx := newContext()
	ctx.Routes = getRoutes(11)

	got := messages(Evaluate(ctx))
	assert.Contains(t, got, "Consider organizing routes into blueprints")

	for i := range ctx.Routes {
		ctx.Routes[i].Blueprint = "api"
	}
	ctx.Blueprints = []review.BlueprintRecord{{Name: "api", URLPrefix: "/api"}}
	got = messages(Evaluate(ctx))
	assert.NotContains(t, got, "Consider organizing routes into blueprints")
	assert.Contains(t, got, "Good: Project uses 1 blueprint(s)")
}

func TestSensitiveAuthCoverage(t *testing.T) {
	ctx := newContext()
	ctx.Routes = []review.RouteRecord{
		{Name: "delete_user", Path: "/users/delete", Methods: []string{"POST"}},
		{Name: "update_user", Path: "/users/update", Methods: []string{"POST"}},
	}

	got := messages(Evaluate(ctx))
	assert.Contains(t, got, "Many sensitive routes lack authentication")

	for i := range ctx.Routes {
		ctx.Routes[i].HasAuth = true
	}
	got = messages(Evaluate(ctx))
	assert.NotContains(t, got, "Many sensitive routes lack authentication")
	assert.Contains(t, got, "Good: 2 route(s) have authentication")
}

func TestMethodDistribution(t *testing.T) {
	ctx := newContext()
	ctx.Routes = getRoutes(5)

	got := messages(Evaluate(ctx))
	assert.Contains(t, got, "Consider using more HTTP methods (POST, PUT, DELETE)")

	ctx.Routes[0].Methods = []string{"POST"}
	ctx.Routes[1].Methods = []string{"PUT"}
	got = messages(Evaluate(ctx))
	assert.NotContains(t, got, "Consider using more HTTP methods (POST, PUT, DELETE)")
}

func TestArchitectureFindingsUseProjectKey(t *testing.T) {
	ctx := newContext()
	ctx.Routes = getRoutes(6)

	for _, f := range Evaluate(ctx) {
		assert.Equal(t, review.KeyAPIArchitecture, f.File)
		assert.NotEmpty(t, f.RuleID)
	}
}

func relModels() []review.ModelRecord {
	return []review.ModelRecord{
		{Name: "User", File: "models/user.py", Relationships: []string{"Team"}},
		{Name: "Team", File: "models/team.py", Relationships: []string{"User"}},
	}
}

func TestUnusedModels(t *testing.T) {
	ctx := newContext()
	ctx.Models = []review.ModelRecord{
		{Name: "User", File: "models/user.py", Relationships: []string{"Team"}},
		{Name: "Team", File: "models/team.py"},
		{Name: "AuditLog", File: "models/audit.py"},
	}

	findings := Evaluate(ctx)
	got := messages(findings)
	assert.Contains(t, got, "Model 'AuditLog' is not referenced in any relationships")
	assert.Contains(t, got, "Model 'User' is not referenced in any relationships")
	assert.NotContains(t, got, "Model 'Team' is not referenced in any relationships")

	// Unused-model findings land on the first model's file, sorted by name.
	var unused []review.Finding
	for _, f := range findings {
		if f.RuleID == "RL01" {
			unused = append(unused, f)
		}
	}
	require.Len(t, unused, 2)
	assert.Equal(t, "Model 'AuditLog' is not referenced in any relationships", unused[0].Message)
	assert.Equal(t, "models/user.py", unused[0].File)
	assert.Equal(t, "models/user.py", unused[1].File)
}

func TestUnknownTargets(t *testing.T) {
	ctx := newContext()
	ctx.Models = []review.ModelRecord{
		{Name: "User", File: "models/user.py", Line: 4, Relationships: []string{"Organization"}},
	}

	findings := Evaluate(ctx)
	got := messages(findings)
	assert.Contains(t, got, "User: Relationship target 'Organization' not found in analyzed models")
	for _, f := range findings {
		if f.RuleID == "RL02" {
			assert.Equal(t, "models/user.py", f.File)
			assert.Equal(t, 4, f.Line)
		}
	}
}

func TestCircularRelationshipsReportedOnce(t *testing.T) {
	ctx := newContext()
	ctx.Models = relModels()

	var circular []review.Finding
	for _, f := range Evaluate(ctx) {
		if f.RuleID == "RL03" {
			circular = append(circular, f)
		}
	}
	require.Len(t, circular, 1)
	assert.Equal(t, "Potential circular relationship between 'User' and 'Team'", circular[0].Message)
	assert.Equal(t, "models/user.py", circular[0].File)
}

func TestEvaluateIsIdempotent(t *testing.T) {
	ctx := newContext()
	ctx.Routes = getRoutes(11)
	ctx.Models = relModels()

	first := Evaluate(ctx)
	second := Evaluate(ctx)
	assert.Equal(t, first, second)
}

func TestSkipRules(t *testing.T) {
	ctx := newContext()
	ctx.Models = relModels()
	ctx.Options.SkipRules = map[string]bool{"RL03": true}

	for _, f := range Evaluate(ctx) {
		assert.NotEqual(t, "RL03", f.RuleID)
	}
}
