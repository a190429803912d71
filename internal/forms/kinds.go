package forms

// Kind discriminates a question's input semantics.
type Kind string

const (
	KindText        Kind = "text"        // single line text input
	KindTextarea    Kind = "textarea"    // multi line text input
	KindEmail       Kind = "email"       // email input with format check
	KindPhone       Kind = "phone"       // phone number input
	KindNumber      Kind = "number"      // integer or decimal input
	KindSelect      Kind = "select"      // single select dropdown
	KindMultiSelect Kind = "multiselect" // multiple choice dropdown
	KindRadio       Kind = "radio"       // radio buttons, single selection
	KindCheckbox    Kind = "checkbox"    // checkboxes, multiple selection
	KindDate        Kind = "date"        // date picker
	KindDateTime    Kind = "datetime"    // date and time picker
)

// kindTraits marks which constraint fields matter for a kind.
type kindTraits struct {
	requiresOptions bool // options list required and non-empty
	numericBounds   bool // min_value / max_value meaningful
	lengthBounds    bool // min_length / max_length meaningful
	multiValued     bool // answer must be a list, not a scalar
}

// kindRegistry is the closed set of recognized kinds and the single source of
// truth for which constraint fields each kind accepts. Both the schema builder
// and the submission validator consult it so the two never diverge. Adding a
// kind touches this table plus the validator's dispatch, nothing else.
var kindRegistry = map[Kind]kindTraits{
	KindText:        {lengthBounds: true},
	KindTextarea:    {lengthBounds: true},
	KindEmail:       {},
	KindPhone:       {},
	KindNumber:      {numericBounds: true},
	KindSelect:      {requiresOptions: true},
	KindMultiSelect: {requiresOptions: true, multiValued: true},
	KindRadio:       {requiresOptions: true},
	KindCheckbox:    {requiresOptions: true, multiValued: true},
	KindDate:        {},
	KindDateTime:    {},
}

// Valid reports whether k is a recognized question kind.
func (k Kind) Valid() bool {
	_, ok := kindRegistry[k]
	return ok
}

// RequiresOptions reports whether questions of this kind must carry a
// non-empty options list.
func (k Kind) RequiresOptions() bool { return kindRegistry[k].requiresOptions }

// HasNumericBounds reports whether min_value/max_value are meaningful for k.
func (k Kind) HasNumericBounds() bool { return kindRegistry[k].numericBounds }

// HasLengthBounds reports whether min_length/max_length are meaningful for k.
func (k Kind) HasLengthBounds() bool { return kindRegistry[k].lengthBounds }

// MultiValued reports whether answers to this kind are lists rather than scalars.
func (k Kind) MultiValued() bool { return kindRegistry[k].multiValued }
