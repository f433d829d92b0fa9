package abigen

import "strings"

// InternalType is the compiler-emitted "internalType" annotation of an ABI
// parameter. It is a closed set: AddressPayable, ContractType, EnumType,
// StructType and OtherType are the only implementations.
type InternalType interface {
	internalType()
}

// AddressPayable marks an `address payable` parameter.
type AddressPayable struct{}

// ContractType is a parameter typed as a contract or interface.
type ContractType struct {
	Name string
}

// EnumType is a user-defined enum. Contract is empty when the enum is
// declared at file level.
type EnumType struct {
	Contract string
	Name     string
}

// StructType is a user-defined struct. Contract is empty when the struct is
// declared at file level.
type StructType struct {
	Contract string
	Name     string
}

// OtherType covers every remaining annotation, including plain elementary
// types and user-defined value types.
type OtherType struct {
	Contract string
	Name     string
}

func (AddressPayable) internalType() {}
func (ContractType) internalType()   {}
func (EnumType) internalType()       {}
func (StructType) internalType()     {}
func (OtherType) internalType()      {}

// ParseInternalType decodes the raw internalType string of a JSON ABI
// parameter. It returns nil for an empty string.
//
//	"address payable"     -> AddressPayable{}
//	"contract IERC20"     -> ContractType{Name: "IERC20"}
//	"enum Pool.Side"      -> EnumType{Contract: "Pool", Name: "Side"}
//	"struct Order[]"      -> StructType{Name: "Order[]"}
//	"uint256"             -> OtherType{Name: "uint256"}
func ParseInternalType(s string) InternalType {
	if s == "" {
		return nil
	}
	if strings.HasPrefix(s, "address payable") {
		return AddressPayable{}
	}
	if body, ok := strings.CutPrefix(s, "enum "); ok {
		contract, name := splitQualified(body)
		return EnumType{Contract: contract, Name: name}
	}
	if body, ok := strings.CutPrefix(s, "struct "); ok {
		contract, name := splitQualified(body)
		return StructType{Contract: contract, Name: name}
	}
	if body, ok := strings.CutPrefix(s, "contract "); ok {
		return ContractType{Name: body}
	}
	contract, name := splitQualified(s)
	return OtherType{Contract: contract, Name: name}
}

func splitQualified(s string) (contract, name string) {
	if c, n, ok := strings.Cut(s, "."); ok {
		return c, n
	}
	return "", s
}

// ResolveType returns the type name to print for a parameter whose canonical
// ABI type is canonical and whose annotation is it.
func ResolveType(canonical string, it InternalType) string {
	switch t := it.(type) {
	case nil:
		return canonical
	case AddressPayable:
		return "address payable"
	case ContractType:
		return t.Name
	case EnumType:
		return qualify(t.Contract, t.Name)
	case StructType:
		return qualify(t.Contract, t.Name)
	case OtherType:
		return qualify(t.Contract, t.Name)
	}
	// Unreachable: the marker method keeps the set closed.
	return canonical
}

func qualify(contract, name string) string {
	if contract == "" {
		return name
	}
	return contract + "." + name
}
