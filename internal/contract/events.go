package contract

import (
	"encoding/hex"
	"sort"
	"strings"

	"github.com/ghostlogs/ghost/internal/abigen"
	"golang.org/x/crypto/sha3"
)

// EventEntries returns the event entries of abi sorted by name. Overloaded
// events keep their declaration order.
func EventEntries(abi []ABIEntry) []ABIEntry {
	var out []ABIEntry
	for _, e := range abi {
		if e.IsEvent() {
			out = append(out, e)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Events converts the event entries of abi into generator input.
func Events(abi []ABIEntry) []abigen.Event {
	entries := EventEntries(abi)
	out := make([]abigen.Event, len(entries))
	for i, e := range entries {
		out[i] = abigen.Event{
			Name:      e.Name,
			Inputs:    toParams(e.Inputs),
			Anonymous: e.Anonymous,
		}
	}
	return out
}

func toParams(ps []ABIParam) []abigen.Param {
	if len(ps) == 0 {
		return nil
	}
	out := make([]abigen.Param, len(ps))
	for i, p := range ps {
		out[i] = abigen.Param{
			Name:       p.Name,
			Type:       p.Type,
			Indexed:    p.Indexed,
			Internal:   abigen.ParseInternalType(p.InternalType),
			Components: toParams(p.Components),
		}
	}
	return out
}

// EventSignature returns the canonical signature used for topic hashing,
// e.g. "Transfer(address,address,uint256)". Tuples expand to "(...)".
func EventSignature(e ABIEntry) string {
	return e.Name + "(" + joinTypes(e.Inputs) + ")"
}

func joinTypes(ps []ABIParam) string {
	types := make([]string, len(ps))
	for i, p := range ps {
		types[i] = canonicalType(p)
	}
	return strings.Join(types, ",")
}

func canonicalType(p ABIParam) string {
	if rest, ok := strings.CutPrefix(p.Type, "tuple"); ok {
		return "(" + joinTypes(p.Components) + ")" + rest
	}
	return p.Type
}

// EventTopic returns the keccak-256 topic0 of the event, 0x-prefixed.
func EventTopic(e ABIEntry) string {
	h := sha3.NewLegacyKeccak256()
	h.Write([]byte(EventSignature(e)))
	return "0x" + hex.EncodeToString(h.Sum(nil))
}
