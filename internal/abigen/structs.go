package abigen

const tupleType = "tuple"

// StructSet accumulates struct declarations across a batch of events.
// Names are unique; the first definition seen for a name is kept and later
// ones are ignored without comparison.
type StructSet struct {
	order  []string
	byName map[string]SolStruct
}

// NewStructSet returns an empty accumulator.
func NewStructSet() *StructSet {
	return &StructSet{byName: make(map[string]SolStruct)}
}

// Collect adds a declaration for every tuple parameter annotated as a struct,
// walking nested components so inner structs are declared too. A parent is
// recorded before the structs it contains.
func (s *StructSet) Collect(params []Param) {
	for _, p := range params {
		if st, ok := p.Internal.(StructType); ok && p.Type == tupleType {
			s.add(st.Name, p.Components)
		}
		if len(p.Components) > 0 {
			s.Collect(p.Components)
		}
	}
}

func (s *StructSet) add(name string, components []Param) {
	if _, seen := s.byName[name]; seen {
		return
	}
	fields := make([]SolField, len(components))
	for i, c := range components {
		fields[i] = SolField{Name: c.Name, Type: ResolveType(c.Type, c.Internal)}
	}
	s.byName[name] = SolStruct{Name: name, Fields: fields}
	s.order = append(s.order, name)
}

// Get returns the struct recorded under name.
func (s *StructSet) Get(name string) (SolStruct, bool) {
	st, ok := s.byName[name]
	return st, ok
}

// Len returns the number of distinct structs collected.
func (s *StructSet) Len() int { return len(s.order) }

// Structs returns the collected structs in first-seen order.
func (s *StructSet) Structs() []SolStruct {
	out := make([]SolStruct, 0, len(s.order))
	for _, name := range s.order {
		out = append(out, s.byName[name])
	}
	return out
}
