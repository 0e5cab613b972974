package types

// SpecifierOp is a PEP 440 version-constraint operator.
type SpecifierOp string

const (
	SpecifierOpNone      SpecifierOp = ""
	SpecifierOpLte       SpecifierOp = "<="
	SpecifierOpLt        SpecifierOp = "<"
	SpecifierOpNe        SpecifierOp = "!="
	SpecifierOpEq        SpecifierOp = "=="
	SpecifierOpGte       SpecifierOp = ">="
	SpecifierOpGt        SpecifierOp = ">"
	SpecifierOpCompat    SpecifierOp = "~="
	SpecifierOpArbitrary SpecifierOp = "==="
)

// OperatorSymbols lists the recognized operators in the order resolved
// specifier sets are emitted.
var OperatorSymbols = []SpecifierOp{
	SpecifierOpLte,
	SpecifierOpLt,
	SpecifierOpNe,
	SpecifierOpEq,
	SpecifierOpGte,
	SpecifierOpGt,
	SpecifierOpCompat,
	SpecifierOpArbitrary,
}

// Known reports whether op is one of the eight recognized operator symbols.
func (op SpecifierOp) Known() bool {
	for _, symbol := range OperatorSymbols {
		if op == symbol {
			return true
		}
	}
	return false
}

// PyprojectFlavour selects which pyproject.toml table dependencies are
// read from.
type PyprojectFlavour string

const (
	PyprojectFlavourAuto   PyprojectFlavour = "auto"
	PyprojectFlavourPEP621 PyprojectFlavour = "pep621"
	PyprojectFlavourFlit   PyprojectFlavour = "flit"
)

// Ordering is the result of comparing two requirements.
type Ordering int

const (
	OrderingLess    Ordering = -1
	OrderingEqual   Ordering = 0
	OrderingGreater Ordering = 1
)
