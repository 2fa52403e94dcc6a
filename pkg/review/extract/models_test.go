package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestModelsFull(t *testing.T) {
	src := `from app import db

class User(db.Model):
    __tablename__ = "users"

    id = db.Column(db.Integer, primary_key=True)
    email = db.Column(db.String(255))
    posts = db.relationship("Post", backref="author")

    def __repr__(self):
        return f"<User {self.email}>"
`
	res := Models(parse(t, src), "models.py")

	require.Len(t, res.Models, 1)
	m := res.Models[0]
	assert.Equal(t, "User", m.Name)
	assert.Equal(t, "models.py", m.File)
	assert.True(t, m.HasTablename)
	assert.Equal(t, "users", m.Tablename)
	assert.True(t, m.HasColumns)
	assert.True(t, m.HasPrimaryKey)
	assert.Equal(t, []string{"Post"}, m.Relationships)
	assert.Contains(t, m.Methods, "__repr__")
	assert.Equal(t, []string{"Model"}, m.BaseClasses)
}

func TestModelsForeignKeys(t *testing.T) {
	src := `class Post(db.Model):
    __tablename__ = "posts"
    id = db.Column(db.Integer, primary_key=True)
    user_id = db.Column(db.Integer, db.ForeignKey("users.id"))
`
	res := Models(parse(t, src), "models.py")
	require.Len(t, res.Models, 1)
	assert.Equal(t, []string{"users.id"}, res.Models[0].ForeignKeys)
}

func TestModelsNonModelClassSkipped(t *testing.T) {
	src := `class Helper:
    def run(self):
        pass

class Service(Worker):
    pass
`
	res := Models(parse(t, src), "helpers.py")
	assert.Empty(t, res.Models)
}

func TestModelsBaseVariants(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want bool
	}{
		{"db.Model", "class A(db.Model):\n    pass\n", true},
		{"bare Model", "class A(Model):\n    pass\n", true},
		{"declarative Base", "class A(Base):\n    pass\n", true},
		{"DeclarativeBase", "class A(DeclarativeBase):\n    pass\n", true},
		{"Base as substring", "class A(BaseService):\n    pass\n", true},
		{"unrelated base", "class A(Service):\n    pass\n", false},
		{"no base", "class A:\n    pass\n", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Models(parse(t, tt.src), "models.py")
			if tt.want {
				assert.Len(t, res.Models, 1)
			} else {
				assert.Empty(t, res.Models)
			}
		})
	}
}

func TestModelsMissingPieces(t *testing.T) {
	src := `class Thing(db.Model):
    name = "not a tablename"
`
	res := Models(parse(t, src), "models.py")
	require.Len(t, res.Models, 1)
	m := res.Models[0]
	assert.False(t, m.HasTablename)
	assert.False(t, m.HasColumns)
	assert.False(t, m.HasPrimaryKey)
}

func TestModelsComputedTablename(t *testing.T) {
	src := `class Thing(db.Model):
    __tablename__ = PREFIX + "things"
    id = db.Column(db.Integer, primary_key=True)
`
	res := Models(parse(t, src), "models.py")
	require.Len(t, res.Models, 1)
	m := res.Models[0]
	assert.True(t, m.HasTablename)
	assert.Empty(t, m.Tablename)
}

func TestModelsMultipleInheritance(t *testing.T) {
	src := `class Audited(db.Model, TimestampMixin):
    __tablename__ = "audited"
    id = db.Column(db.Integer, primary_key=True)
`
	res := Models(parse(t, src), "models.py")
	require.Len(t, res.Models, 1)
	assert.Equal(t, []string{"Model", "TimestampMixin"}, res.Models[0].BaseClasses)
}
