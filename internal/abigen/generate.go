package abigen

import (
	"fmt"
	"strings"
)

// BuildEvent converts an ABI event into its Solidity form. Only parameters
// whose canonical type is exactly "tuple" are renamed through their
// annotation; arrays of tuples and every other type print verbatim.
func BuildEvent(e Event) SolEvent {
	params := make([]SolEventParam, len(e.Inputs))
	for i, in := range e.Inputs {
		ty := in.Type
		if in.Type == tupleType {
			ty = ResolveType(in.Type, in.Internal)
		}
		params[i] = SolEventParam{Name: in.Name, Type: ty, Indexed: in.Indexed}
	}
	return SolEvent{Name: e.Name, Params: params}
}

// Result is the output of Generate.
type Result struct {
	Structs []SolStruct // first-seen order
	Events  []SolEvent  // input order
}

// Generate collects the structs referenced by every event in the batch and
// renders each event.
func Generate(events []Event) Result {
	set := NewStructSet()
	out := make([]SolEvent, 0, len(events))
	for _, e := range events {
		set.Collect(e.Inputs)
		out = append(out, BuildEvent(e))
	}
	return Result{Structs: set.Structs(), Events: out}
}

// String renders the struct declaration without a trailing newline.
func (s SolStruct) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "struct %s {\n", s.Name)
	for _, f := range s.Fields {
		fmt.Fprintf(&b, "    %s %s;\n", f.Type, f.Name)
	}
	b.WriteString("}")
	return b.String()
}

// String renders the event declaration on a single line.
func (e SolEvent) String() string {
	params := make([]string, len(e.Params))
	for i, p := range e.Params {
		indexed := ""
		if p.Indexed {
			indexed = " indexed"
		}
		params[i] = fmt.Sprintf("%s%s %s", p.Type, indexed, p.Name)
	}
	return fmt.Sprintf("event %s(%s);", e.Name, strings.Join(params, ", "))
}
