package validate

import (
	"net/url" // Query string parsing
	"reflect" // Tag name registration
	"strconv" // String to number coercion
	"strings" // Key list formatting

	"github.com/go-playground/validator/v10" // Field rule engine
)

// FieldError is one validation failure, serialized with the original
// Portuguese field/message keys
type FieldError struct {
	Campo    string `json:"campo"`
	Mensagem string `json:"mensagem"`
}

// Messages shown to callers
const (
	msgInvalidField = "Campo(s) inválido(s)"
	msgLimitMax     = "O valor máximo de limite é 200"
	msgLimitNumber  = "O limite deve ser um número"
)

// maxLimit caps the page size accepted by every listing schema
const maxLimit = 200

// single compiled rule engine for all schemas
var rules = validator.New(validator.WithRequiredStructEnabled())

func init() {
	// Report failures under the json field names the caller actually sent
	rules.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})
}

// pair is a decoded query parameter in input order
type pair struct {
	key   string
	value string
}

// parsePairs decodes a raw query string keeping the parameter order, which
// url.Values would lose
func parsePairs(rawQuery string) []pair {
	var pairs []pair
	for _, part := range strings.Split(rawQuery, "&") {
		if part == "" {
			continue
		}
		k, v, _ := strings.Cut(part, "=")
		key, err := url.QueryUnescape(k)
		if err != nil {
			key = k
		}
		value, err := url.QueryUnescape(v)
		if err != nil {
			value = v
		}
		pairs = append(pairs, pair{key: key, value: value})
	}
	return pairs
}

// unknownKeys returns the strict-mode error for keys outside the schema, if any
func unknownKeys(keys []string, allowed map[string]bool) []FieldError {
	var offending []string
	for _, k := range keys {
		if !allowed[k] {
			offending = append(offending, k)
		}
	}
	if len(offending) == 0 {
		return nil
	}
	return []FieldError{{Campo: strings.Join(offending, ", "), Mensagem: msgInvalidField}}
}

// parseLimit coerces the limit parameter and enforces the schema cap
func parseLimit(value string) (int, *FieldError) {
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, &FieldError{Campo: "limit", Mensagem: msgLimitNumber}
	}
	if n > maxLimit {
		return 0, &FieldError{Campo: "limit", Mensagem: msgLimitMax}
	}
	return n, nil
}

// parseOffset coerces the offset parameter; a non-numeric value falls back to 0
func parseOffset(value string) int {
	n, err := strconv.Atoi(value)
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// runRules validates a populated schema struct and translates failures
func runRules(v any, messages map[string]string) []FieldError {
	err := rules.Struct(v)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		// Non-validation failure inside the engine; surface it as a field error
		// instead of letting it masquerade as success
		return []FieldError{{Campo: "input", Mensagem: err.Error()}}
	}
	out := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		field := fe.Field() // json name via the registered tag func
		msg, found := messages[field+":"+fe.Tag()]
		if !found {
			msg, found = messages[field]
		}
		if !found {
			msg = msgInvalidField
		}
		out = append(out, FieldError{Campo: field, Mensagem: msg})
	}
	return out
}
