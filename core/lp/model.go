// Package lp describes linear programs as named bounded continuous
// variables, one linear objective and a set of linear constraints, and
// solves them with gonum's simplex implementation. The solve itself is
// treated as a black box: callers get back a terminal status and, when
// optimal, a value per variable and the objective value.
package lp

// VarID indexes a decision variable within a Model.
type VarID int

// Sense distinguishes inequality from equality constraints.
type Sense int

const (
	// SenseLE constrains the linear expression to be <= RHS.
	SenseLE Sense = iota
	// SenseEQ constrains the linear expression to be == RHS.
	SenseEQ
)

// Term is one coefficient of a linear expression.
type Term struct {
	Var   VarID
	Coeff float64
}

// Constraint is one linear row: sum(Terms) Sense RHS.
type Constraint struct {
	Name  string
	Terms []Term
	Sense Sense
	RHS   float64
}

type variable struct {
	name  string
	lower float64
	upper float64
	cost  float64
}

// Model is a minimization LP under construction. It is not safe for
// concurrent mutation; each solve builds its own model.
type Model struct {
	vars []variable
	cons []Constraint
}

// NewModel returns an empty minimization model.
func NewModel() *Model { return &Model{} }

// AddVariable registers a continuous variable with the given bounds and
// objective cost. Use math.Inf for unbounded sides.
func (m *Model) AddVariable(name string, lower, upper, cost float64) VarID {
	m.vars = append(m.vars, variable{name: name, lower: lower, upper: upper, cost: cost})
	return VarID(len(m.vars) - 1)
}

// AddConstraint appends a constraint row. Rows are kept in insertion
// order; the order affects solver logs only, never the optimum.
func (m *Model) AddConstraint(name string, sense Sense, rhs float64, terms ...Term) {
	m.cons = append(m.cons, Constraint{Name: name, Terms: terms, Sense: sense, RHS: rhs})
}

// NumVariables returns the number of registered variables.
func (m *Model) NumVariables() int { return len(m.vars) }

// NumConstraints returns the number of constraint rows.
func (m *Model) NumConstraints() int { return len(m.cons) }

// VariableName returns the name given at registration.
func (m *Model) VariableName(id VarID) string { return m.vars[id].name }
