package validation

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// Validation rule patterns
var (
	// Resource identifier pattern - canonical UUID text form
	ResourceIDPattern = `^[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}$`

	// Comment content max length, counted in characters
	CommentMaxLength = 2000

	// Report reason max length, counted in characters
	ReasonMaxLength = 255

	// Rating bounds
	RatingMin = 1
	RatingMax = 5
)

// CompiledPatterns caches compiled regex patterns for better performance
var CompiledPatterns = struct {
	ResourceID *regexp.Regexp
}{
	ResourceID: regexp.MustCompile(ResourceIDPattern),
}

// String validation. Lengths are measured in runes after trimming surrounding whitespace.
type StringValidation struct {
	Value   string
	MaxLen  int
	Pattern *regexp.Regexp
}

// NewStringValidation creates a new string validation
func NewStringValidation(value string) *StringValidation {
	return &StringValidation{Value: strings.TrimSpace(value)}
}

// WithMaxLength sets maximum length
func (v *StringValidation) WithMaxLength(max int) *StringValidation {
	v.MaxLen = max
	return v
}

// WithPattern sets regex pattern
func (v *StringValidation) WithPattern(pattern *regexp.Regexp) *StringValidation {
	v.Pattern = pattern
	return v
}

// Validate performs validation. An empty value never passes.
func (v *StringValidation) Validate() bool {
	if v.Value == "" {
		return false
	}

	if v.MaxLen > 0 && utf8.RuneCountInString(v.Value) > v.MaxLen {
		return false
	}

	if v.Pattern != nil && !v.Pattern.MatchString(v.Value) {
		return false
	}

	return true
}

// Numeric validation
type NumericValidation struct {
	Value int
	Min   int
	Max   int
}

// NewNumericValidation creates a new numeric validation
func NewNumericValidation(value int) *NumericValidation {
	return &NumericValidation{Value: value}
}

// WithMin sets minimum value
func (v *NumericValidation) WithMin(min int) *NumericValidation {
	v.Min = min
	return v
}

// WithMax sets maximum value
func (v *NumericValidation) WithMax(max int) *NumericValidation {
	v.Max = max
	return v
}

// Validate performs validation
func (v *NumericValidation) Validate() bool {
	return v.Value >= v.Min && v.Value <= v.Max
}

// ValidComment reports whether content is non-empty after trimming and at most CommentMaxLength characters
func ValidComment(content string) bool {
	return NewStringValidation(content).WithMaxLength(CommentMaxLength).Validate()
}

// ValidReason reports whether a report reason is non-empty after trimming and at most ReasonMaxLength characters
func ValidReason(reason string) bool {
	return NewStringValidation(reason).WithMaxLength(ReasonMaxLength).Validate()
}

// ValidRating reports whether value is an integer star rating
func ValidRating(value int) bool {
	return NewNumericValidation(value).WithMin(RatingMin).WithMax(RatingMax).Validate()
}

// ValidResourceID reports whether id is a well-formed resource identifier
func ValidResourceID(id string) bool {
	return NewStringValidation(id).WithPattern(CompiledPatterns.ResourceID).Validate()
}
