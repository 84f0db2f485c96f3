package schema

// KeyDef declares the semantic type of a well-known test key (spec §3).
type KeyDef struct {
	Kind Kind
	// Default, if non-nil, supplies the built-in default value when the key is absent.
	Default func() Value
}

// Registry holds the well-known key schema. Keys absent from Registry are "unknown" and pass
// through untouched into Test.Extra (forward compatibility, spec §4.2).
var Registry = map[string]KeyDef{
	"name":      {Kind: KindString},
	"test":      {Kind: KindString},
	"path":      {Kind: KindString},
	"framework": {Kind: KindString, Default: func() Value { return String("shell", SourceDefault) }},
	"duration":  {Kind: KindDuration, Default: func() Value { return Duration(Seconds(5*60), SourceDefault) }},
	"tag":       {Kind: KindSequence},
	"contact":   {Kind: KindSequence},
	"require":   {Kind: KindSequence},
	"recommend": {Kind: KindSequence},
	"environment": {
		Kind:    KindMapping,
		Default: func() Value { return Mapping(map[string]Value{}, SourceDefault) },
	},
	"enabled": {Kind: KindBool, Default: func() Value { return Bool(true, SourceDefault) }},
	"result":  {Kind: KindString, Default: func() Value { return String("respect", SourceDefault) }},
	"check":   {Kind: KindSequence},
	"link":    {Kind: KindSequence},
	"id":      {Kind: KindString},
	"adjust":  {Kind: KindSequence},
}

// ResultOutcomes is the closed set of values a `result` record's outcome may take (spec §3,
// §4.5).
var ResultOutcomes = map[string]bool{
	"pass": true, "fail": true, "info": true, "warn": true, "error": true, "skip": true,
}
