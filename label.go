package droute

// Label names a rule or an upstream. Labels compare by value and are used
// as map keys throughout the library.
type Label string

// Reserved labels in the rule graph. StartTag is the mandatory entry point
// of every table, EndTag is the sentinel terminal and never a rule tag.
const (
	StartTag Label = "start"
	EndTag   Label = "end"
)
