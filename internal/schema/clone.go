package schema

// Clone returns a deep copy of the database. Nested maps and slices in
// Custom are copied too; other values are shared.
func (d *Database) Clone() *Database {
	if d == nil {
		return nil
	}
	out := &Database{Custom: CloneCustom(d.Custom)}
	if d.Schemas != nil {
		out.Schemas = make([]Schema, len(d.Schemas))
		for i, s := range d.Schemas {
			out.Schemas[i] = s.Clone()
		}
	}
	return out
}

// Clone returns a deep copy of the schema
func (s Schema) Clone() Schema {
	out := s
	if s.Tables != nil {
		out.Tables = make([]Table, len(s.Tables))
		for i, t := range s.Tables {
			out.Tables[i] = t.Clone()
		}
	}
	if s.Enums != nil {
		out.Enums = make([]Enum, len(s.Enums))
		for i, e := range s.Enums {
			out.Enums[i] = e.Clone()
		}
	}
	return out
}

// Clone returns a deep copy of the table
func (t Table) Clone() Table {
	out := t
	if t.Columns != nil {
		out.Columns = make([]Column, len(t.Columns))
		for i, c := range t.Columns {
			out.Columns[i] = c.Clone()
		}
	}
	if t.AdditionalProperties != nil {
		out.AdditionalProperties = append([]string(nil), t.AdditionalProperties...)
	}
	return out
}

// Clone returns a deep copy of the column
func (c Column) Clone() Column {
	out := c
	if c.DefaultValue != nil {
		v := *c.DefaultValue
		out.DefaultValue = &v
	}
	if c.StringEnumValues != nil {
		out.StringEnumValues = append([]string(nil), c.StringEnumValues...)
	}
	return out
}

// Clone returns a deep copy of the enum
func (e Enum) Clone() Enum {
	out := e
	if e.Values != nil {
		out.Values = append([]EnumValue(nil), e.Values...)
	}
	return out
}

// CloneCustom deep-copies a custom metadata bag
func CloneCustom(m map[string]any) map[string]any {
	if m == nil {
		return nil
	}
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v any) any {
	switch v := v.(type) {
	case map[string]any:
		return CloneCustom(v)
	case []any:
		if v == nil {
			return v
		}
		out := make([]any, len(v))
		for i, e := range v {
			out[i] = cloneValue(e)
		}
		return out
	case []string:
		if v == nil {
			return v
		}
		return append([]string(nil), v...)
	default:
		return v
	}
}
