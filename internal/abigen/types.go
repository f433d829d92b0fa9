// Package abigen rebuilds Solidity struct and event declarations from the
// event entries of a contract ABI.
//
// The raw ABI describes tuple parameters structurally; only the optional
// internalType annotation carries the source-level struct name. abigen uses
// that annotation to synthesize one struct declaration per named tuple and to
// print events that reference those structs by name.
package abigen

// Param is one event input as found in a JSON ABI.
type Param struct {
	Name       string
	Type       string // canonical ABI type, e.g. "tuple", "uint256"
	Indexed    bool
	Internal   InternalType // nil when the ABI carries no annotation
	Components []Param      // tuple fields; empty for non-tuple types
}

// Event is one ABI entry of type "event".
type Event struct {
	Name      string
	Inputs    []Param
	Anonymous bool
}

// SolField is a field of a synthesized struct.
type SolField struct {
	Name string
	Type string
}

// SolStruct is a synthesized struct declaration.
type SolStruct struct {
	Name   string
	Fields []SolField
}

// SolEventParam is a parameter of a rendered event.
type SolEventParam struct {
	Name    string
	Type    string
	Indexed bool
}

// SolEvent is a rendered event declaration. Params keep ABI order.
type SolEvent struct {
	Name   string
	Params []SolEventParam
}
