package config

// Version is the minilang release reported by `minilang -version`.
const Version = "0.3.0"

// SourceFileExt is the canonical extension of program documents.
const SourceFileExt = ".json"

// SourceFileExtensions are all recognized source file extensions
var SourceFileExtensions = []string{".json", ".yaml", ".yml"}

// ConfigFileNames are searched, in order, when no config path is given.
var ConfigFileNames = []string{"minilang.yaml", "minilang.yml"}

// IsTestMode indicates if the program is running in test mode.
// This is set once at startup in main.go when MINILANG_TEST_MODE is set.
var IsTestMode = false

// Built-in function names
const (
	PrintFuncName       = "print"
	InputFuncName       = "input"
	AddFuncName         = "add"
	MulFuncName         = "mul"
	LenFuncName         = "len"
	MapFuncName         = "map"
	FilterFuncName      = "filter"
	ReduceFuncName      = "reduce"
	ToUpperCaseFuncName = "toUpperCase"
	SplitFuncName       = "split"
	JoinFuncName        = "join"
	KeysFuncName        = "keys"
	ValuesFuncName      = "values"
	GetFuncName         = "get"
	HasKeyFuncName      = "hasKey"
	MergeFuncName       = "merge"
	AndFuncName         = "and"
	OrFuncName          = "or"
	NotFuncName         = "not"
)

// Built-in type names
const (
	NumberTypeName   = "Number"
	StringTypeName   = "String"
	BooleanTypeName  = "Boolean"
	VoidTypeName     = "Void"
	ListTypeName     = "List"
	DictTypeName     = "Dict"
	FunctionTypeName = "Fun"
)

// Scoping policy names
const (
	ScopingStatic  = "static"
	ScopingDynamic = "dynamic"
)
