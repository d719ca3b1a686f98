package store

// OnDelete is the referential action of every foreign key in the schema.
// No relation cascades.
const OnDelete = "RESTRICT"

// Relation is one directed foreign key: Child.Column references Parent.id.
type Relation struct {
	Child    string
	Column   string
	Parent   string
	Required bool
	// Unique marks one-to-one relations (at most one child per parent).
	Unique bool
}

// Relations is the relationship registry. It must agree with the
// migrations; a test compares it against the live schema.
var Relations = []Relation{
	{Child: "assets", Column: "responsible_id", Parent: "employees"},
	{Child: "assets", Column: "department_id", Parent: "departments"},
	{Child: "assets", Column: "supplier_id", Parent: "suppliers"},
	{Child: "employees", Column: "department_id", Parent: "departments"},
	{Child: "warranties", Column: "supplier_id", Parent: "suppliers", Required: true},
	{Child: "warranties", Column: "asset_id", Parent: "assets", Required: true, Unique: true},
	{Child: "licenses", Column: "asset_id", Parent: "assets", Required: true},
	{Child: "maintenance_records", Column: "asset_id", Parent: "assets", Required: true},
}

// dependentsOf returns the relations whose parent is table.
func dependentsOf(table string) []Relation {
	var out []Relation
	for _, r := range Relations {
		if r.Parent == table {
			out = append(out, r)
		}
	}
	return out
}

// foreignKeysOf returns the relations declared on table, keyed by column.
func foreignKeysOf(table string) map[string]Relation {
	out := make(map[string]Relation)
	for _, r := range Relations {
		if r.Child == table {
			out[r.Column] = r
		}
	}
	return out
}
