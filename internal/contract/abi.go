package contract

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
)

// ABIEntry is one entry of a JSON ABI (function, event, error, ...).
type ABIEntry struct {
	Name            string     `json:"name"`
	Type            string     `json:"type"`
	Inputs          []ABIParam `json:"inputs"`
	Outputs         []ABIParam `json:"outputs,omitempty"`
	StateMutability string     `json:"stateMutability,omitempty"`
	Anonymous       bool       `json:"anonymous,omitempty"`
}

// ABIParam is a parameter of an ABI entry. Components is set for tuple types.
type ABIParam struct {
	Name         string     `json:"name"`
	Type         string     `json:"type"`
	InternalType string     `json:"internalType,omitempty"`
	Indexed      bool       `json:"indexed,omitempty"`
	Components   []ABIParam `json:"components,omitempty"`
}

// IsEvent reports whether the entry describes an event.
func (e ABIEntry) IsEvent() bool { return e.Type == "event" }

// ParseABI decodes a raw JSON ABI array.
func ParseABI(data []byte) ([]ABIEntry, error) {
	var abi []ABIEntry
	if err := json.Unmarshal(data, &abi); err != nil {
		data = bytes.TrimSpace(data)
		if len(data) > 0 && data[0] == '{' {
			return nil, fmt.Errorf("ABI is a JSON object, not an array; a Hardhat/Foundry artifact must have an \"abi\" key")
		}
		return nil, fmt.Errorf("invalid ABI JSON: %w", err)
	}
	return abi, nil
}

// LoadFromArtifact loads an ABI from a local file that is either:
//   - a raw ABI JSON array: [{"type":"event",...}, ...]
//   - a Hardhat/Foundry artifact: {"abi":[...],"bytecode":...}
func LoadFromArtifact(path string) ([]ABIEntry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read ABI file: %w", err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, fmt.Errorf("ABI file is empty: %s", path)
	}

	var artifact struct {
		ABI json.RawMessage `json:"abi"`
	}
	if json.Unmarshal(data, &artifact) == nil && len(artifact.ABI) > 1 && artifact.ABI[0] == '[' {
		data = artifact.ABI
	}

	abi, err := ParseABI(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if len(abi) == 0 {
		return nil, fmt.Errorf("ABI is empty: %s", path)
	}
	return abi, nil
}
