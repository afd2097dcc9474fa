package mapper

import "strconv"

// resolve produces the value of a single field. Strategy errors are returned
// untouched.
func resolve(f Field, current any, h Handles, source []any) (any, error) {
	switch ins := f.Instruction.(type) {
	case FieldAlias:
		return Lookup(current, string(ins)), nil

	case Strategy:
		if ins == nil {
			return nil, unsupported(f.describe())
		}

		return ins(current, h, source)

	default:
		return nil, unsupported(f.describe())
	}
}

// Resolve resolves a single instruction against current with the handles of
// m. It is the building block of Object, exposed for strategies that pick an
// instruction at run time.
func (m *Mapper) Resolve(ins Instruction, current any, source []any) (any, error) {
	return resolve(Field{Instruction: ins}, current, m.Handles(), source)
}

func (f Field) describe() string {
	if f.Name == "" {
		return "instruction"
	}

	return "field " + strconv.Quote(f.Name)
}
