package state

import (
	"encoding/json"
	"fmt"
	"math/big"
	"strconv"
	"strings"
	"unsafe"

	jsoniter "github.com/json-iterator/go"
	"github.com/reilabs/blockifier/common"
)

var classJson = jsoniter.ConfigCompatibleWithStandardLibrary

// EntryPointType distinguishes the groups of entry points of a class.
type EntryPointType string

const (
	EntryPointTypeExternal    EntryPointType = "EXTERNAL"
	EntryPointTypeL1Handler   EntryPointType = "L1_HANDLER"
	EntryPointTypeConstructor EntryPointType = "CONSTRUCTOR"
)

const (
	mainStartIdentifier = "__main__.__start__"
	mainEndIdentifier   = "__main__.__end__"
	constIdentifierType = "const"
)

// ProgramOffset is an offset into the program's data. In class definitions it
// is encoded either as a JSON number or as a hex string.
type ProgramOffset uint64

func (o *ProgramOffset) UnmarshalJSON(data []byte) error {
	str := string(data)
	if unquoted, err := strconv.Unquote(str); err == nil {
		str = unquoted
	}
	base := 10
	if strings.HasPrefix(str, "0x") || strings.HasPrefix(str, "0X") {
		str, base = str[2:], 16
	}
	res, err := strconv.ParseUint(str, base, 64)
	if err != nil {
		return fmt.Errorf("invalid offset %s: %w", data, err)
	}
	*o = ProgramOffset(res)
	return nil
}

func (o ProgramOffset) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote("0x" + strconv.FormatUint(uint64(o), 16))), nil
}

// EntryPoint is a function of a class callable from outside.
type EntryPoint struct {
	Selector common.Felt   `json:"selector"`
	Offset   ProgramOffset `json:"offset"`
}

// Hint is code attached to a program counter, executed by the runner.
type Hint struct {
	Code             string          `json:"code"`
	AccessibleScopes []string        `json:"accessible_scopes"`
	FlowTrackingData json.RawMessage `json:"flow_tracking_data,omitempty"`
}

// Identifier is a named program element. Functions and labels carry a PC,
// constants a value.
type Identifier struct {
	Type  string          `json:"type,omitempty"`
	PC    *ProgramOffset  `json:"pc,omitempty"`
	Value json.RawMessage `json:"value,omitempty"`
}

// Program is the compiled code of a class.
type Program struct {
	Data             []common.Felt            `json:"data"`
	Builtins         []string                 `json:"builtins"`
	Prime            string                   `json:"prime"`
	Hints            map[uint64][]Hint        `json:"hints"`
	Identifiers      map[string]Identifier    `json:"identifiers"`
	ReferenceManager json.RawMessage          `json:"reference_manager"`
	Attributes       []map[string]interface{} `json:"attributes"`
	MainScope        string                   `json:"main_scope,omitempty"`
	CompilerVersion  string                   `json:"compiler_version,omitempty"`
}

// ContractClass is a deserialized class definition.
type ContractClass struct {
	Program           Program                         `json:"program"`
	EntryPointsByType map[EntryPointType][]EntryPoint `json:"entry_points_by_type"`
	Abi               json.RawMessage                 `json:"abi,omitempty"`

	constants  map[string]*big.Int
	definition []byte
}

// ParseContractClass decodes and validates a JSON class definition. Failures
// are reported as ErrMalformedClass.
func ParseContractClass(data []byte) (*ContractClass, error) {
	class := &ContractClass{}
	if err := classJson.Unmarshal(data, class); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedClass, err)
	}
	if err := class.init(); err != nil {
		return nil, err
	}
	class.definition = append([]byte(nil), data...)
	return class, nil
}

// init validates the class and derives its constants.
func (c *ContractClass) init() error {
	program := &c.Program
	if len(program.Data) == 0 {
		return fmt.Errorf("%w: empty program", ErrMalformedClass)
	}
	prime, ok := new(big.Int).SetString(strings.TrimPrefix(program.Prime, "0x"), 16)
	if !ok || prime.Cmp(common.FieldModulus()) != 0 {
		return fmt.Errorf("%w: unsupported prime %q", ErrMalformedClass, program.Prime)
	}
	length := uint64(len(program.Data))
	for pc := range program.Hints {
		if pc >= length {
			return fmt.Errorf("%w: hint at pc %d exceeds program of length %d", ErrMalformedClass, pc, length)
		}
	}
	for typ, entryPoints := range c.EntryPointsByType {
		for _, entryPoint := range entryPoints {
			if uint64(entryPoint.Offset) >= length {
				return fmt.Errorf("%w: %s entry point %v at offset %d exceeds program of length %d", ErrMalformedClass, typ, entryPoint.Selector, entryPoint.Offset, length)
			}
		}
	}
	c.constants = map[string]*big.Int{}
	for name, identifier := range program.Identifiers {
		if identifier.Type != constIdentifierType {
			continue
		}
		if len(identifier.Value) == 0 || string(identifier.Value) == "null" {
			return fmt.Errorf("%w: constant %s without value", ErrMalformedClass, name)
		}
		value := new(big.Int)
		if err := value.UnmarshalJSON(identifier.Value); err != nil {
			return fmt.Errorf("%w: constant %s: %v", ErrMalformedClass, name, err)
		}
		c.constants[name] = value
	}
	return nil
}

// Definition is the JSON definition the class was parsed from.
func (c *ContractClass) Definition() []byte {
	return c.definition
}

// Constants lists the program's named constants. The result must not be modified.
func (c *ContractClass) Constants() map[string]*big.Int {
	return c.constants
}

// StartPC is the PC of the program's __start__ label, if present.
func (c *ContractClass) StartPC() (uint64, bool) {
	return c.labelPC(mainStartIdentifier)
}

// EndPC is the PC of the program's __end__ label, if present.
func (c *ContractClass) EndPC() (uint64, bool) {
	return c.labelPC(mainEndIdentifier)
}

func (c *ContractClass) labelPC(name string) (uint64, bool) {
	identifier, found := c.Program.Identifiers[name]
	if !found || identifier.PC == nil {
		return 0, false
	}
	return uint64(*identifier.PC), true
}

// HasConstructor is true if the class defines a constructor.
func (c *ContractClass) HasConstructor() bool {
	return len(c.EntryPointsByType[EntryPointTypeConstructor]) > 0
}

// ResolveEntryPoint finds the entry point of the given type matching the
// selector. If no entry point matches, the default entry point with selector
// zero is used if the class defines one.
func (c *ContractClass) ResolveEntryPoint(typ EntryPointType, selector common.Felt) (EntryPoint, error) {
	entryPoints := c.EntryPointsByType[typ]
	var match, fallback *EntryPoint
	for i := range entryPoints {
		cur := &entryPoints[i]
		if cur.Selector == selector {
			if match != nil {
				return EntryPoint{}, fmt.Errorf("%w: %v", ErrDuplicatedEntryPoint, selector)
			}
			match = cur
		}
		if cur.Selector.IsZero() {
			fallback = cur
		}
	}
	if match != nil {
		return *match, nil
	}
	if fallback != nil {
		return *fallback, nil
	}
	return EntryPoint{}, fmt.Errorf("%w: %s entry point %v", ErrEntryPointNotFound, typ, selector)
}

func (c *ContractClass) GetMemoryFootprint() *common.MemoryFootprint {
	mf := common.NewMemoryFootprint(unsafe.Sizeof(*c))
	mf.AddChild("data", common.NewMemoryFootprint(uintptr(len(c.Program.Data))*unsafe.Sizeof(common.Felt{})))
	mf.AddChild("definition", common.NewMemoryFootprint(uintptr(len(c.definition))))
	return mf
}
