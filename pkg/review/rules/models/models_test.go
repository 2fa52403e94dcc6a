package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Chatelo/freview/pkg/review"
)

func newContext(models ...review.ModelRecord) *Context {
	imports := review.NewImportSet()
	imports.Add("flask_sqlalchemy")
	return &Context{
		File:    "models.py",
		Models:  models,
		Imports: imports,
		Options: review.DefaultOptions(),
	}
}

func goodModel() review.ModelRecord {
	return review.ModelRecord{
		Name:          "User",
		HasTablename:  true,
		Tablename:     "users",
		HasColumns:    true,
		HasPrimaryKey: true,
		BaseClasses:   []string{"Model"},
		Methods:       []string{"__repr__", "__str__"},
	}
}

func messages(findings []review.Finding) []string {
	out := make([]string, 0, len(findings))
	for _, f := range findings {
		out = append(out, f.Message)
	}
	return out
}

func TestRegistryOrder(t *testing.T) {
	rules := All()
	require.NotEmpty(t, rules)
	for i := 1; i < len(rules); i++ {
		assert.Less(t, rules[i-1].ID, rules[i].ID, "rules must register in ID order")
	}
}

func TestBadModelFindingOrder(t *testing.T) {
	// A model missing everything reports naming first, then the structural
	// errors, in registration order.
	ctx := newContext(review.ModelRecord{Name: "user_account", BaseClasses: []string{"Model"}})
	ctx.Options.CheckReprMethods = false
	ctx.Options.CheckStrMethods = false

	got := messages(Evaluate(ctx))
	assert.Equal(t, []string{
		"user_account: Class name should be PascalCase",
		"user_account: Missing __tablename__ attribute",
		"user_account: No columns defined with db.Column()",
		"user_account: No primary key defined",
	}, got)
}

func TestGoodModelSuccesses(t *testing.T) {
	model := goodModel()
	model.ForeignKeys = []string{"teams.id"}
	model.Relationships = []string{"Team"}
	ctx := newContext(model)

	got := messages(Evaluate(ctx))
	assert.Equal(t, []string{
		"User: Core model requirements satisfied",
		"User: Uses foreign key constraints (1 found)",
		"User: Defines relationships (1 found)",
	}, got)
}

func TestTablenameSnakeCase(t *testing.T) {
	tests := []struct {
		name      string
		tablename string
		want      bool
	}{
		{"snake case passes", "user_accounts", false},
		{"camel case flagged", "userAccounts", true},
		{"pascal case flagged", "UserAccounts", true},
		{"computed tablename skipped", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			model := goodModel()
			model.Tablename = tt.tablename
			ctx := newContext(model)
			got := messages(Evaluate(ctx))
			if tt.want {
				assert.Contains(t, got, "User: __tablename__ should be snake_case")
			} else {
				assert.NotContains(t, got, "User: __tablename__ should be snake_case")
			}
		})
	}
}

func TestDunderMethodHints(t *testing.T) {
	model := goodModel()
	model.Methods = nil
	ctx := newContext(model)
	ctx.Options.ShowSuccess = false

	got := messages(Evaluate(ctx))
	assert.Contains(t, got, "User: Consider adding __repr__ method for better debugging")
	assert.Contains(t, got, "User: Consider adding __str__ method for string representation")

	ctx = newContext(model)
	ctx.Options.ShowSuccess = false
	ctx.Options.CheckReprMethods = false
	ctx.Options.CheckStrMethods = false
	assert.Empty(t, messages(Evaluate(ctx)))
}

func TestInheritanceReporting(t *testing.T) {
	model := goodModel()
	model.BaseClasses = []string{"Model", "TimestampMixin"}
	ctx := newContext(model)
	ctx.Options.ShowSuccess = false
	ctx.Options.CheckReprMethods = false
	ctx.Options.CheckStrMethods = false

	got := messages(Evaluate(ctx))
	assert.Equal(t, []string{"User: Inherits from TimestampMixin"}, got)
}

func TestInheritanceJoinsMixins(t *testing.T) {
	model := goodModel()
	model.BaseClasses = []string{"Model", "UserMixin", "CacheMixin"}
	ctx := newContext(model)
	ctx.Options.ShowSuccess = false
	ctx.Options.CheckReprMethods = false
	ctx.Options.CheckStrMethods = false

	got := messages(Evaluate(ctx))
	assert.Equal(t, []string{"User: Inherits from UserMixin, CacheMixin"}, got)
}

func TestCustomClassNamePattern(t *testing.T) {
	ctx := newContext(goodModel())
	ctx.Options.ShowSuccess = false
	ctx.Options.CheckReprMethods = false
	ctx.Options.CheckStrMethods = false
	ctx.Options.ClassNamePattern = `^Db[A-Z]\w*$`

	got := messages(Evaluate(ctx))
	assert.Contains(t, got, "User: Class name should be PascalCase")
}

func TestEvaluateFillsFile(t *testing.T) {
	ctx := newContext(review.ModelRecord{Name: "bad", BaseClasses: []string{"Model"}})
	for _, f := range Evaluate(ctx) {
		assert.Equal(t, "models.py", f.File)
		assert.NotEmpty(t, f.RuleID)
	}
}
