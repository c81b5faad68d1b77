package validate

const msgDirection = "O valor deve ser (asc) ou (desc)"

var filterCryptosMessages = map[string]string{
	"id:min":   "O id não pode ser vazio",
	"name:min": "O nome não pode ser vazio",
}

// FilterCryptos validates the GET /cryptos query against the filter schema
func FilterCryptos(rawQuery string) (FilterCryptosInput, []FieldError) {
	var in FilterCryptosInput
	pairs := parsePairs(rawQuery)
	if errs := unknownKeys(pairKeys(pairs), filterCryptosKeys); errs != nil {
		return in, errs
	}
	for _, p := range pairs {
		switch p.key {
		case "id":
			v := p.value
			in.ID = &v
		case "name":
			v := p.value
			in.Name = &v
		case "offset":
			in.Offset = parseOffset(p.value)
		case "limit":
			n, ferr := parseLimit(p.value)
			if ferr != nil {
				return in, []FieldError{*ferr}
			}
			in.Limit = n
		}
	}
	return in, runRules(in, filterCryptosMessages)
}

// OrderCryptos validates the GET /cryptos/order query. Every key other than
// offset/limit names a sort field whose value must be asc or desc; the
// resulting ordering list preserves the order fields were supplied in.
func OrderCryptos(rawQuery string) (OrderCryptosInput, []FieldError) {
	var in OrderCryptosInput
	pairs := parsePairs(rawQuery)
	if errs := unknownKeys(pairKeys(pairs), orderCryptosKeys); errs != nil {
		return in, errs
	}
	for _, p := range pairs {
		switch p.key {
		case "offset":
			in.Offset = parseOffset(p.value)
		case "limit":
			n, ferr := parseLimit(p.value)
			if ferr != nil {
				return in, []FieldError{*ferr}
			}
			in.Limit = n
		default:
			if p.value != "asc" && p.value != "desc" {
				return in, []FieldError{{Campo: p.key, Mensagem: msgDirection}}
			}
			in.Orders = append(in.Orders, OrderField{Field: p.key, Direction: p.value})
		}
	}
	return in, nil
}
